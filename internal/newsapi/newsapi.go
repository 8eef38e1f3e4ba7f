package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const baseURL = "https://newsapi.org/v2/everything"

// Topic is one keyword query against the everything endpoint.
type Topic struct {
	Name  string
	Query string
}

// DefaultTopics are queried in order until the topic budget is spent.
var DefaultTopics = []Topic{
	{Name: "crypto", Query: "cryptocurrency OR bitcoin OR ethereum"},
	{Name: "ai", Query: "artificial intelligence OR AI OR machine learning"},
	{Name: "space", Query: "astronomy OR space OR NASA OR SpaceX"},
	{Name: "tech", Query: "technology OR startup OR innovation"},
	{Name: "stocks", Query: "stock market OR trading OR nasdaq"},
	{Name: "ecommerce", Query: "e-commerce OR online shopping OR retail"},
}

// Headline is the newest article found for a topic.
type Headline struct {
	Topic string
	Title string
	Link  string
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	topics     []Topic
	maxTopics  int
}

func NewClient(apiKey string, timeout time.Duration, maxTopics int) *Client {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		topics:     DefaultTopics,
		maxTopics:  maxTopics,
	}
}

type everythingResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"articles"`
}

// Headlines returns at most maxTopics headlines, one per topic. Topics that
// fail or come back empty are skipped; an unconfigured client returns nil.
func (c *Client) Headlines(ctx context.Context) []Headline {
	if c == nil || c.apiKey == "" {
		return nil
	}

	var out []Headline
	for _, topic := range c.topics {
		if c.maxTopics > 0 && len(out) >= c.maxTopics {
			break
		}
		h, err := c.fetchTopic(ctx, topic)
		if err != nil {
			slog.Warn("NewsAPI topic failed", "topic", topic.Name, "error", err)
			continue
		}
		if h != nil {
			out = append(out, *h)
		}
	}
	return out
}

func (c *Client) fetchTopic(ctx context.Context, topic Topic) (*Headline, error) {
	params := url.Values{}
	params.Set("q", topic.Query)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	// The key travels in a header so request errors, which embed the URL,
	// never carry it into logs.
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var data everythingResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(data.Articles) == 0 {
		return nil, nil
	}

	a := data.Articles[0]
	title := strings.TrimSpace(a.Title)
	if title == "" {
		title = "No title"
	}
	return &Headline{Topic: topic.Name, Title: title, Link: a.URL}, nil
}
