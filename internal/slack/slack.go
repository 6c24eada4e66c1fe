// Package slack posts curated articles to a Slack channel via the Web API.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIURL = "https://slack.com/api/chat.postMessage"

type Client struct {
	apiURL  string
	token   string
	channel string
	client  *http.Client
}

func NewClient(token, channel string, timeout time.Duration) *Client {
	return &Client{
		apiURL:  defaultAPIURL,
		token:   token,
		channel: channel,
		client:  &http.Client{Timeout: timeout},
	}
}

// NewClientWithURL points the client at a non-default API endpoint.
// Tests use this to post against a local fake.
func NewClientWithURL(apiURL, token, channel string, timeout time.Duration) *Client {
	c := NewClient(token, channel, timeout)
	c.apiURL = apiURL
	return c
}

type postMessageRequest struct {
	Channel string  `json:"channel"`
	Blocks  []Block `json:"blocks,omitempty"`
	Text    string  `json:"text"`
}

// postMessageResponse is the part of the chat.postMessage reply we check.
// Slack reports semantic failures inside a 200 response, so the ok flag
// matters as much as the HTTP status.
type postMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// PostMessage sends one message to the configured channel. It is a single
// attempt with a fixed timeout; a transport error, a non-2xx status, or
// ok=false in the response body all count as failure.
func (c *Client) PostMessage(ctx context.Context, msg Message) error {
	payload := postMessageRequest{
		Channel: c.channel,
		Blocks:  msg.Blocks,
		Text:    msg.Fallback,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build slack request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("slack request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read slack response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack API error: status %d: %s", resp.StatusCode, respBody)
	}

	var pm postMessageResponse
	if err := json.Unmarshal(respBody, &pm); err != nil {
		return fmt.Errorf("failed to decode slack response: %w", err)
	}
	if !pm.OK {
		return fmt.Errorf("slack rejected message: %s", pm.Error)
	}
	return nil
}
