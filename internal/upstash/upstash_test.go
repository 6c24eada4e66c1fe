package upstash

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGetReturnsStoredValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("missing bearer auth, got %q", got)
		}
		if r.URL.Path != "/get/mykey" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"result":"1"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", time.Second)
	v, err := c.Get(context.Background(), "mykey")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "1" {
		t.Errorf("got %q, want %q", v, "1")
	}
}

func TestGetMissingKeyIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":null}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", time.Second)
	v, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "" {
		t.Errorf("missing key should be empty, got %q", v)
	}
}

func TestSetExSendsTTL(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"result":"OK"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", time.Second)
	if err := c.SetEx(context.Background(), "k", "1", 7*24*time.Hour); err != nil {
		t.Fatalf("SetEx: %v", err)
	}
	if gotPath != "/set/k/1" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if gotQuery != "ex=604800" {
		t.Errorf("unexpected query %s, want ex=604800", gotQuery)
	}
}

func TestNonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad", time.Second)
	if _, err := c.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestCommandErrorIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"WRONGTYPE"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", time.Second)
	_, err := c.Get(context.Background(), "k")
	if err == nil || !strings.Contains(err.Error(), "WRONGTYPE") {
		t.Fatalf("expected command error, got %v", err)
	}
}
