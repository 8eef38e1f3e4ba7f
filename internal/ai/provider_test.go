package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name   string
		choice string
		creds  Credentials
		want   string
	}{
		{name: "nothing configured", choice: "auto", creds: Credentials{}, want: ""},
		{name: "auto prefers openai", choice: "", creds: Credentials{OpenAI: "k", Anthropic: "k"}, want: "openai"},
		{name: "auto falls through to anthropic", choice: "auto", creds: Credentials{Anthropic: "k"}, want: "anthropic"},
		{name: "explicit provider without key", choice: "anthropic", creds: Credentials{OpenAI: "k"}, want: ""},
		{name: "explicit openai", choice: "OpenAI", creds: Credentials{OpenAI: "k"}, want: "openai"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Select(context.Background(), tt.choice, tt.creds)
			assert.Equal(t, nil, err)
			got := ""
			if p != nil {
				got = p.Name()
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectUnknownProvider(t *testing.T) {
	_, err := Select(context.Background(), "llama", Credentials{})
	assert.Equal(t, true, errors.Is(err, ErrUnknownProvider))
}

func TestOpenAIProviderChat(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    "chatcmpl-1",
			"model": "gpt-4o-mini",
			"choices": []map[string]interface{}{
				{"index": 0, "message": map[string]interface{}{"role": "assistant", "content": "  *Digest*  "}},
			},
		})
	}))
	defer srv.Close()

	p := NewOpenAIProvider("test-key", srv.URL+"/v1")
	resp, err := p.Chat(context.Background(), ChatRequest{Prompt: "hello", MaxTokens: 100, Temperature: 0.7})

	assert.Equal(t, nil, err)
	assert.Equal(t, "*Digest*", resp.Content)
	assert.Equal(t, "openai", resp.Provider)
	assert.Equal(t, "gpt-4o-mini", gotBody["model"])
}

func TestOpenAIProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("test-key", srv.URL+"/v1")
	_, err := p.Chat(context.Background(), ChatRequest{Prompt: "hello"})
	assert.NotEqual(t, nil, err)
}

func TestAnthropicProviderChat(t *testing.T) {
	var gotBody map[string]interface{}
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			http.NotFound(w, r)
			return
		}
		gotKey = r.Header.Get("X-Api-Key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":          "msg_1",
			"type":        "message",
			"role":        "assistant",
			"model":       "claude-haiku-4-5",
			"stop_reason": "end_turn",
			"content": []map[string]interface{}{
				{"type": "text", "text": "  *Digest*"},
				{"type": "text", "text": " done  "},
			},
			"usage": map[string]interface{}{"input_tokens": 10, "output_tokens": 5},
		})
	}))
	defer srv.Close()

	p := NewAnthropicProvider("test-key", srv.URL)
	resp, err := p.Chat(context.Background(), ChatRequest{Prompt: "hello", MaxTokens: 1200, Temperature: 0.7})

	assert.Equal(t, nil, err)
	assert.Equal(t, "*Digest* done", resp.Content)
	assert.Equal(t, "anthropic", resp.Provider)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, float64(1200), gotBody["max_tokens"])
}

func TestAnthropicProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"bad prompt"}}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider("test-key", srv.URL)
	_, err := p.Chat(context.Background(), ChatRequest{Prompt: "hello"})
	assert.NotEqual(t, nil, err)
}
