package newsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(srv *httptest.Server, maxTopics int) *Client {
	c := NewClient("test-key", 0, maxTopics)
	c.baseURL = srv.URL
	c.httpClient = srv.Client()
	return c
}

func TestHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.Header.Get("X-Api-Key") != "test-key" || q.Has("apiKey") || q.Get("pageSize") != "1" || q.Get("language") != "en" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch q.Get("q") {
		case DefaultTopics[0].Query:
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":   "ok",
				"articles": []map[string]string{{"title": "Bitcoin hits record", "url": "https://n/1"}},
			})
		case DefaultTopics[1].Query:
			w.WriteHeader(http.StatusInternalServerError)
		case DefaultTopics[2].Query:
			json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "articles": []interface{}{}})
		default:
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":   "ok",
				"articles": []map[string]string{{"title": "Other " + q.Get("q"), "url": "https://n/x"}},
			})
		}
	}))
	defer srv.Close()

	got := newTestClient(srv, 2).Headlines(context.Background())
	if len(got) != 2 {
		t.Fatalf("len(Headlines) = %d, want 2: %+v", len(got), got)
	}
	if got[0].Topic != "crypto" || got[0].Title != "Bitcoin hits record" || got[0].Link != "https://n/1" {
		t.Errorf("first headline = %+v", got[0])
	}
	if got[1].Topic != "tech" {
		t.Errorf("second headline topic = %q, want tech (ai failed, space empty)", got[1].Topic)
	}
}

func TestHeadlinesUnconfigured(t *testing.T) {
	if got := NewClient("", 0, 4).Headlines(context.Background()); got != nil {
		t.Fatalf("expected nil headlines without key, got %+v", got)
	}
	var c *Client
	if got := c.Headlines(context.Background()); got != nil {
		t.Fatalf("expected nil headlines from nil client, got %+v", got)
	}
}

func TestHeadlinesRequestErrorsDoNotLeakKey(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	c := NewClient("SECRET-KEY-123", time.Second, 1)
	c.baseURL = "http://127.0.0.1:1/v2/everything"

	if got := c.Headlines(context.Background()); len(got) != 0 {
		t.Fatalf("expected no headlines from an unreachable host, got %+v", got)
	}
	if !strings.Contains(buf.String(), "NewsAPI topic failed") {
		t.Fatalf("request failure was not logged: %q", buf.String())
	}
	if strings.Contains(buf.String(), "SECRET-KEY-123") {
		t.Errorf("API key written to logs: %q", buf.String())
	}
}
