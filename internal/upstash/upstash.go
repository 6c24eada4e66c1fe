// Package upstash is a minimal client for the Upstash Redis REST API.
// Only the two commands the dedup store needs are implemented.
package upstash

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// restResult is the REST API response envelope: {"result": ...} on success,
// {"error": "..."} on command failure.
type restResult struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

// Get returns the stored value for key, or "" if the key does not exist.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	endpoint := fmt.Sprintf("%s/get/%s", c.baseURL, url.PathEscape(key))

	res, err := c.do(ctx, http.MethodGet, endpoint)
	if err != nil {
		return "", err
	}

	// A missing key comes back as {"result": null}.
	if string(res.Result) == "null" || len(res.Result) == 0 {
		return "", nil
	}

	var value string
	if err := json.Unmarshal(res.Result, &value); err != nil {
		return "", fmt.Errorf("unexpected GET result %s: %w", res.Result, err)
	}
	return value, nil
}

// SetEx stores value under key with a TTL. The TTL is rounded down to whole
// seconds, matching the REST API's "ex" parameter.
func (c *Client) SetEx(ctx context.Context, key, value string, ttl time.Duration) error {
	endpoint := fmt.Sprintf("%s/set/%s/%s?ex=%d",
		c.baseURL, url.PathEscape(key), url.PathEscape(value), int(ttl.Seconds()))

	_, err := c.do(ctx, http.MethodPost, endpoint)
	return err
}

func (c *Client) do(ctx context.Context, method, endpoint string) (*restResult, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstash request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstash response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstash API error: status %d: %s", resp.StatusCode, body)
	}

	var res restResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("failed to decode upstash response: %w", err)
	}
	if res.Error != "" {
		return nil, fmt.Errorf("upstash command error: %s", res.Error)
	}
	return &res, nil
}
