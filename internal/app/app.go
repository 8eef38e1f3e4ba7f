// Package app wires one briefing run: collect, summarize, compose, deliver.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/deusflow/briefing/internal/ai"
	"github.com/deusflow/briefing/internal/compose"
	"github.com/deusflow/briefing/internal/config"
	"github.com/deusflow/briefing/internal/digest"
	"github.com/deusflow/briefing/internal/metrics"
	"github.com/deusflow/briefing/internal/news"
	"github.com/deusflow/briefing/internal/newsapi"
	"github.com/deusflow/briefing/internal/retry"
	"github.com/deusflow/briefing/internal/rotation"
	"github.com/deusflow/briefing/internal/rss"
	"github.com/deusflow/briefing/internal/scraper"
	"github.com/deusflow/briefing/internal/telegram"
)

const maxGlobalTopics = 4

var selectProvider = ai.Select

// Sender delivers the final message.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Options replaces collaborators that New would otherwise build from config.
// Zero values mean "build from config".
type Options struct {
	Sectors  []news.Category
	Provider ai.Provider
	Sender   Sender
	Out      io.Writer
	Now      func() time.Time
}

type App struct {
	cfg        *config.Config
	sectors    []news.Category
	tables     *rotation.Tables
	aggregator *news.Aggregator
	summarizer *digest.Summarizer
	provider   ai.Provider
	headlines  *newsapi.Client
	composer   *compose.Composer
	sender     Sender
	out        io.Writer
	now        func() time.Time
}

func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	sectors := opts.Sectors
	if sectors == nil {
		var err error
		sectors, err = config.LoadSectors(cfg.SectorsConfigPath, cfg.ArticlesPerSector)
		if err != nil {
			return nil, fmt.Errorf("load sectors: %w", err)
		}
	}

	tables, err := rotation.Load()
	if err != nil {
		return nil, fmt.Errorf("load rotation tables: %w", err)
	}

	provider := opts.Provider
	if provider == nil && cfg.Edition == config.EditionMorning {
		provider, err = selectProvider(ctx, cfg.AIProvider, ai.Credentials{
			OpenAI:    cfg.OpenAIKey,
			Gemini:    cfg.GeminiKey,
			Anthropic: cfg.AnthropicKey,
		})
		if errors.Is(err, ai.ErrUnknownProvider) {
			return nil, fmt.Errorf("select AI provider: %w", err)
		}
		if err != nil {
			// A broken enrichment backend only costs the run its AI digest.
			slog.Warn("AI provider unavailable, using raw listing", "provider", cfg.AIProvider, "error", err)
			provider = nil
		}
	}
	if provider != nil {
		slog.Info("AI enrichment enabled", "provider", provider.Name())
	} else {
		slog.Info("AI enrichment disabled, using raw listing")
	}

	sender := opts.Sender
	if sender == nil && !cfg.DryRun {
		sender = telegram.NewClient(telegram.Config{
			Token:     cfg.TelegramToken,
			ChatID:    cfg.TelegramChatID,
			Timeout:   cfg.SendTimeout,
			ChunkSize: cfg.ChunkSize,
			ChunkMode: cfg.ChunkMode,
			Retry:     retry.RetryConfig{MaxAttempts: cfg.SendRetryAttempts, Delay: 2 * time.Second, Backoff: true},
		})
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	fetcher := rss.NewFetcher(cfg.FetchTimeout, cfg.SummaryMaxRunes)
	fallback := news.NewFallbackResolver(fetcher, scraper.New(cfg.ScrapeTimeout))

	return &App{
		cfg:        cfg,
		sectors:    sectors,
		tables:     tables,
		aggregator: news.NewAggregator(fetcher, fallback, cfg.FetchConcurrency),
		summarizer: digest.New(provider, cfg.AITimeout, cfg.RecipientName),
		provider:   provider,
		headlines:  newsapi.NewClient(cfg.NewsAPIKey, cfg.FetchTimeout, maxGlobalTopics),
		composer:   compose.New(cfg.RecipientName, cfg.BrandName),
		sender:     sender,
		out:        out,
		now:        func() time.Time { return now().In(loc) },
	}, nil
}

// Run builds config-driven collaborators and performs a single pass.
func Run(ctx context.Context, cfg *config.Config) error {
	a, err := New(ctx, cfg, Options{})
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run(ctx)
}

// Run performs one pass. Only delivery failures are returned; every
// acquisition or enrichment problem degrades into a shorter message.
func (a *App) Run(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.Global.FinishRun(time.Since(start))
		slog.Info("Run statistics", "stats", metrics.Global.GetStats())
	}()

	msg := a.Compose(ctx)

	if a.cfg.DryRun || a.sender == nil {
		slog.Info("Dry run, message not sent", "length", len([]rune(msg)))
		if _, err := fmt.Fprintln(a.out, msg); err != nil {
			return fmt.Errorf("write message: %w", err)
		}
		metrics.Global.SetHealthy()
		return nil
	}

	if err := a.sender.Send(ctx, msg); err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("deliver briefing: %w", err)
	}
	metrics.Global.SetHealthy()
	slog.Info("Briefing delivered", "edition", a.cfg.Edition, "duration", time.Since(start))
	return nil
}

// Compose collects news for the configured edition and renders the message.
func (a *App) Compose(ctx context.Context) string {
	now := a.now()
	entry := a.tables.ForDate(now)
	slog.Debug("Rotation entry selected", "index", entry.Index, "date", now.Format("2006-01-02"))

	var sectors []news.Category
	for _, s := range a.sectors {
		if s.InEdition(a.cfg.Edition) {
			sectors = append(sectors, s)
		}
	}
	collected := a.aggregator.Collect(ctx, sectors)

	if a.cfg.Edition == config.EditionEnglish {
		return a.composer.English(now, entry, digest.FormatRaw(collected), a.headlines.Headlines(ctx))
	}
	return a.composer.Morning(now, a.summarizer.Summarize(ctx, collected), entry)
}

// Close releases provider resources that hold connections.
func (a *App) Close() {
	if c, ok := a.provider.(interface{ Close() }); ok {
		c.Close()
	}
}
