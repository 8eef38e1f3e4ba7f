package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EditionMorning = "morning"
	EditionEnglish = "english"
)

type Config struct {
	// Telegram settings
	TelegramToken     string
	TelegramChatID    string
	ChunkSize         int
	ChunkMode         string // chars | lines
	SendRetryAttempts int
	SendTimeout       time.Duration

	// Enrichment settings
	OpenAIKey    string
	GeminiKey    string
	AnthropicKey string
	AIProvider   string // openai | gemini | anthropic | auto
	AITimeout    time.Duration

	// NewsAPI settings
	NewsAPIKey string

	// Feed settings
	SectorsConfigPath string
	ArticlesPerSector int
	FetchConcurrency  int
	FetchTimeout      time.Duration
	ScrapeTimeout     time.Duration
	SummaryMaxRunes   int

	// Message settings
	Edition       string
	RecipientName string
	BrandName     string
	Timezone      string
	Location      *time.Location

	// App settings
	DryRun               bool
	Debug                bool
	EnableHTTPMonitoring bool
	MonitoringPort       string
}

func Load() (*Config, error) {
	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID: os.Getenv("TELEGRAM_CHAT_ID"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		GeminiKey:      os.Getenv("GEMINI_API_KEY"),
		AnthropicKey:   os.Getenv("ANTHROPIC_API_KEY"),
		NewsAPIKey:     os.Getenv("NEWS_API_KEY"),

		AIProvider:        strings.ToLower(getEnvOrDefault("AI_PROVIDER", "auto")),
		SectorsConfigPath: getEnvOrDefault("SECTORS_CONFIG_PATH", "configs/sectors.yaml"),
		Edition:           strings.ToLower(getEnvOrDefault("BRIEF_EDITION", EditionMorning)),
		ChunkMode:         strings.ToLower(getEnvOrDefault("CHUNK_MODE", "chars")),
		RecipientName:     getEnvOrDefault("RECIPIENT_NAME", "Rezi"),
		BrandName:         getEnvOrDefault("BRAND_NAME", "ASTROMAN"),
		Timezone:          getEnvOrDefault("TIMEZONE", "UTC"),
		MonitoringPort:    getEnvOrDefault("MONITORING_PORT", "8080"),

		ArticlesPerSector: getEnvIntOrDefault("ARTICLES_PER_SECTOR", 3),
		FetchConcurrency:  getEnvIntOrDefault("FETCH_CONCURRENCY", 4),
		SummaryMaxRunes:   getEnvIntOrDefault("SUMMARY_MAX_RUNES", 200),
		ChunkSize:         getEnvIntOrDefault("MESSAGE_CHUNK_SIZE", 4000),
		SendRetryAttempts: getEnvIntOrDefault("SEND_RETRY_ATTEMPTS", 1),

		FetchTimeout:  getEnvDurationOrDefault("FETCH_TIMEOUT", 12*time.Second),
		ScrapeTimeout: getEnvDurationOrDefault("SCRAPE_TIMEOUT", 15*time.Second),
		AITimeout:     getEnvDurationOrDefault("AI_TIMEOUT", 30*time.Second),
		SendTimeout:   getEnvDurationOrDefault("SEND_TIMEOUT", 15*time.Second),

		DryRun:               getEnvBool("DRY_RUN"),
		Debug:                getEnvBool("DEBUG"),
		EnableHTTPMonitoring: getEnvBool("ENABLE_HTTP_MONITORING"),
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDurationOrDefault accepts Go durations ("15s") or plain seconds ("15").
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && v
}

func (c *Config) Validate() error {
	if !c.DryRun {
		if c.TelegramToken == "" {
			return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
		}
		if c.TelegramChatID == "" {
			return fmt.Errorf("TELEGRAM_CHAT_ID is required")
		}
	}
	if c.Edition != EditionMorning && c.Edition != EditionEnglish {
		return fmt.Errorf("BRIEF_EDITION must be 'morning' or 'english'")
	}
	if c.ChunkMode != "chars" && c.ChunkMode != "lines" {
		return fmt.Errorf("CHUNK_MODE must be 'chars' or 'lines'")
	}
	switch c.AIProvider {
	case "auto", "openai", "gemini", "anthropic":
	default:
		return fmt.Errorf("AI_PROVIDER must be one of auto, openai, gemini, anthropic")
	}
	return nil
}
