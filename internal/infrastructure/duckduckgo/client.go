package duckduckgo

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/janhq/jan-ask/internal/config"
	"github.com/janhq/jan-ask/internal/domain/grounding"
	"github.com/janhq/jan-ask/internal/infrastructure/httpclients"
)

// Client queries the DuckDuckGo instant-answer API.
type Client struct {
	httpClient *resty.Client
	endpoint   string
	maxTopics  int
	log        zerolog.Logger
}

var _ grounding.DuckDuckGoFetcher = (*Client)(nil)

// NewClient creates a DuckDuckGo instant-answer fetcher.
func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	return &Client{
		httpClient: httpclients.NewClient("duckduckgo", cfg.DuckDuckGoTimeout),
		endpoint:   cfg.DuckDuckGoBaseURL,
		maxTopics:  cfg.DuckDuckGoMaxTopics,
		log:        log.With().Str("component", "duckduckgo-client").Logger(),
	}
}

type instantAnswer struct {
	Heading       string  `json:"Heading"`
	Abstract      string  `json:"Abstract"`
	AbstractText  string  `json:"AbstractText"`
	AbstractURL   string  `json:"AbstractURL"`
	RelatedTopics []topic `json:"RelatedTopics"`
}

type topic struct {
	Text     string  `json:"Text"`
	FirstURL string  `json:"FirstURL"`
	Name     string  `json:"Name"`
	Topics   []topic `json:"Topics"`
}

// Fetch returns the abstract followed by related topic texts, one per line.
// Failures and empty answers yield "".
func (c *Client) Fetch(ctx context.Context, query string) string {
	var answer instantAnswer
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":           query,
			"format":      "json",
			"no_redirect": "1",
			"no_html":     "1",
		}).
		ForceContentType("application/json").
		SetResult(&answer).
		Get(c.endpoint)
	if err != nil {
		c.log.Warn().Err(err).Msg("duckduckgo request failed")
		return ""
	}
	if resp.StatusCode() != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode()).Msg("duckduckgo returned non-200 status")
		return ""
	}
	return c.summarize(answer)
}

func (c *Client) summarize(answer instantAnswer) string {
	var lines []string
	abstract := strings.TrimSpace(answer.Abstract)
	if abstract == "" {
		abstract = strings.TrimSpace(answer.AbstractText)
	}
	if abstract != "" {
		lines = append(lines, abstract)
	}

	topics := 0
	for _, t := range flattenTopics(answer.RelatedTopics) {
		if c.maxTopics > 0 && topics >= c.maxTopics {
			break
		}
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		lines = append(lines, text)
		topics++
	}
	return strings.Join(lines, "\n")
}

// flattenTopics expands named topic groups into their member topics.
func flattenTopics(topics []topic) []topic {
	var out []topic
	for _, t := range topics {
		if len(t.Topics) > 0 {
			out = append(out, flattenTopics(t.Topics)...)
			continue
		}
		out = append(out, t)
	}
	return out
}
