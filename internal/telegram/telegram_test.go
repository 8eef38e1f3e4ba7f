package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/deusflow/briefing/internal/retry"
)

type botServer struct {
	mu       sync.Mutex
	requests []sendMessageRequest
	paths    []string
	failOn   int // 1-based request number that returns 400; 0 never fails
}

func (b *botServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b.requests = append(b.requests, req)
	b.paths = append(b.paths, r.URL.Path)

	if b.failOn == len(b.requests) {
		http.Error(w, `{"ok":false,"description":"Bad Request: can't parse entities"}`, http.StatusBadRequest)
		return
	}
	_, _ = w.Write([]byte(`{"ok":true}`))
}

func newTestClient(url string, chunkSize, attempts int) *Client {
	return NewClient(Config{
		Token:     "TOKEN",
		ChatID:    "42",
		BaseURL:   url,
		ChunkSize: chunkSize,
		Retry:     retry.RetryConfig{MaxAttempts: attempts, Delay: time.Millisecond},
	})
}

func TestSendDeliversChunksInOrder(t *testing.T) {
	bot := &botServer{}
	srv := httptest.NewServer(bot)
	defer srv.Close()

	text := strings.Repeat("a", 10) + strings.Repeat("b", 10) + "c"
	if err := newTestClient(srv.URL, 10, 1).Send(context.Background(), text); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if len(bot.requests) != 3 {
		t.Fatalf("got %d requests, want 3", len(bot.requests))
	}
	var got strings.Builder
	for i, req := range bot.requests {
		if bot.paths[i] != "/botTOKEN/sendMessage" {
			t.Errorf("path = %q", bot.paths[i])
		}
		if req.ChatID != "42" || req.ParseMode != "Markdown" || !req.DisableWebPagePreview {
			t.Errorf("request %d = %+v", i, req)
		}
		got.WriteString(req.Text)
	}
	if got.String() != text {
		t.Errorf("delivered %q, want %q", got.String(), text)
	}
}

func TestSendStopsAtFirstFailure(t *testing.T) {
	bot := &botServer{failOn: 2}
	srv := httptest.NewServer(bot)
	defer srv.Close()

	err := newTestClient(srv.URL, 5, 1).Send(context.Background(), strings.Repeat("z", 15))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "chunk 2/3") {
		t.Errorf("error %q does not name the failing chunk", err)
	}
	if len(bot.requests) != 2 {
		t.Errorf("got %d requests, want 2 (third chunk must not be sent)", len(bot.requests))
	}
}

func TestSendRetriesChunk(t *testing.T) {
	bot := &botServer{failOn: 1}
	srv := httptest.NewServer(bot)
	defer srv.Close()

	if err := newTestClient(srv.URL, 100, 2).Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(bot.requests) != 2 {
		t.Errorf("got %d requests, want 2", len(bot.requests))
	}
}
