package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/deusflow/briefing/internal/metrics"
	"github.com/deusflow/briefing/internal/retry"
)

const defaultBaseURL = "https://api.telegram.org"

// Config controls how a Client talks to the Bot API.
type Config struct {
	Token     string
	ChatID    string
	Timeout   time.Duration
	ChunkSize int
	ChunkMode string
	Retry     retry.RetryConfig
	BaseURL   string
}

// Client delivers long Markdown messages as ordered chunks.
type Client struct {
	token     string
	chatID    string
	baseURL   string
	chunkSize int
	chunkMode string
	retry     retry.RetryConfig
	http      *http.Client
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Retry.MaxAttempts < 1 {
		cfg.Retry.MaxAttempts = 1
	}
	return &Client{
		token:     cfg.Token,
		chatID:    cfg.ChatID,
		baseURL:   cfg.BaseURL,
		chunkSize: cfg.ChunkSize,
		chunkMode: cfg.ChunkMode,
		retry:     cfg.Retry,
		http:      &http.Client{Timeout: cfg.Timeout},
	}
}

// Send splits text and posts the chunks in order. The first chunk that
// fails aborts the rest; chunks already delivered stay delivered.
func (c *Client) Send(ctx context.Context, text string) error {
	chunks := ChunkMode(text, c.chunkSize, c.chunkMode)
	for i, chunk := range chunks {
		err := retry.WithRetry(ctx, c.retry, func() error {
			return c.sendOnce(ctx, chunk)
		})
		if err != nil {
			return fmt.Errorf("send chunk %d/%d: %w", i+1, len(chunks), err)
		}
		metrics.Global.IncrementChunksSent()
		slog.Debug("Chunk delivered", "chunk", i+1, "total", len(chunks))
	}
	slog.Info("Message sent to Telegram", "chunks", len(chunks))
	return nil
}

func (c *Client) sendOnce(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:                c.chatID,
		Text:                  text,
		ParseMode:             "Markdown",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("error make JSON: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error HTTP request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			slog.Debug("Failed to close response body", "error", err)
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram API error: status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}
