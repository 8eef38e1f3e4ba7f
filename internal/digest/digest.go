// Package digest turns aggregated sector news into the message body, using an
// AI provider when one is configured and a plain listing otherwise.
package digest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/deusflow/briefing/internal/ai"
	"github.com/deusflow/briefing/internal/metrics"
	"github.com/deusflow/briefing/internal/news"
)

const (
	maxTokens   = 1200
	temperature = 0.7
)

// Summarizer produces the digest text. It never fails: any enrichment
// problem degrades to FormatRaw.
type Summarizer struct {
	provider  ai.Provider
	timeout   time.Duration
	recipient string
}

// New creates a Summarizer. A nil provider disables enrichment.
func New(provider ai.Provider, timeout time.Duration, recipient string) *Summarizer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Summarizer{provider: provider, timeout: timeout, recipient: recipient}
}

// Summarize returns the enrichment response verbatim on success.
func (s *Summarizer) Summarize(ctx context.Context, sectors []news.CategoryNews) string {
	if s.provider == nil {
		slog.Info("AI provider not configured, using raw headlines")
		return FormatRaw(sectors)
	}

	text, err := s.enrich(ctx, sectors)
	if err != nil {
		slog.Warn("AI summary failed, using raw headlines", "provider", s.provider.Name(), "error", err)
		metrics.Global.RecordEnrichment(false)
		return FormatRaw(sectors)
	}
	metrics.Global.RecordEnrichment(true)
	return text
}

func (s *Summarizer) enrich(ctx context.Context, sectors []news.CategoryNews) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.provider.Chat(ctx, ai.ChatRequest{
		Prompt:      BuildPrompt(s.recipient, sectors),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}
	if resp == nil || resp.Content == "" {
		return "", errors.New("empty response")
	}
	slog.Info("AI summary ready", "provider", resp.Provider, "model", resp.Model)
	return resp.Content, nil
}
