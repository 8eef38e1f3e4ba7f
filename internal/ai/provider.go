package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Provider is the interface every enrichment backend implements.
type Provider interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	Name() string // "openai", "gemini" or "anthropic"
}

// ChatRequest is a provider-agnostic single-turn request.
type ChatRequest struct {
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// ChatResponse is a provider-agnostic response.
type ChatResponse struct {
	Content  string
	Model    string
	Provider string
}

// Credentials carries the API keys of every supported backend.
type Credentials struct {
	OpenAI    string
	Gemini    string
	Anthropic string
}

// ErrUnknownProvider is returned by Select for a name it does not recognise.
var ErrUnknownProvider = errors.New("unknown AI provider")

// Select returns the provider named by choice, or for "auto"/"" the first
// backend with a credential in the order openai, gemini, anthropic.
// A nil Provider with nil error means enrichment is disabled.
func Select(ctx context.Context, choice string, creds Credentials) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "", "auto":
		switch {
		case creds.OpenAI != "":
			return NewOpenAIProvider(creds.OpenAI, ""), nil
		case creds.Gemini != "":
			return newGemini(ctx, creds.Gemini)
		case creds.Anthropic != "":
			return NewAnthropicProvider(creds.Anthropic, ""), nil
		}
		return nil, nil
	case "openai":
		if creds.OpenAI == "" {
			return nil, nil
		}
		return NewOpenAIProvider(creds.OpenAI, ""), nil
	case "gemini":
		if creds.Gemini == "" {
			return nil, nil
		}
		return newGemini(ctx, creds.Gemini)
	case "anthropic":
		if creds.Anthropic == "" {
			return nil, nil
		}
		return NewAnthropicProvider(creds.Anthropic, ""), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownProvider, choice)
	}
}

func newGemini(ctx context.Context, apiKey string) (Provider, error) {
	p, err := NewGeminiProvider(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return p, nil
}
