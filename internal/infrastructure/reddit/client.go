package reddit

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/janhq/jan-ask/internal/config"
	"github.com/janhq/jan-ask/internal/domain/grounding"
	"github.com/janhq/jan-ask/internal/infrastructure/httpclients"
)

var postIDPattern = regexp.MustCompile(`/comments/([A-Za-z0-9]+)`)

// Client fetches Reddit posts through the Pushshift search API.
type Client struct {
	httpClient   *resty.Client
	baseURL      string
	searchSize   int
	maxBodyChars int
	log          zerolog.Logger
}

var _ grounding.RedditFetcher = (*Client)(nil)

// NewClient creates a Pushshift backed Reddit fetcher.
func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	return &Client{
		httpClient:   httpclients.NewClient("pushshift", cfg.RedditTimeout),
		baseURL:      strings.TrimRight(cfg.PushshiftBaseURL, "/"),
		searchSize:   cfg.RedditSearchSize,
		maxBodyChars: cfg.RedditMaxBodyChars,
		log:          log.With().Str("component", "reddit-client").Logger(),
	}
}

type searchResponse struct {
	Data []post `json:"data"`
}

type post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Selftext  string `json:"selftext"`
	Subreddit string `json:"subreddit"`
	Score     int    `json:"score"`
	Permalink string `json:"permalink"`
	FullLink  string `json:"full_link"`
}

// ExtractPostID returns the post id of a reddit.com comments URL.
func ExtractPostID(input string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(input))
	if err != nil || u.Host == "" {
		return "", false
	}
	if !strings.Contains(strings.ToLower(u.Host), "reddit.com") {
		return "", false
	}
	m := postIDPattern.FindStringSubmatch(u.Path)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Fetch looks up the post when query is a Reddit URL and otherwise runs a
// keyword search. Any failure yields an empty context.
func (c *Client) Fetch(ctx context.Context, query string) grounding.RedditContext {
	req := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		ForceContentType("application/json")

	var endpoint string
	if id, ok := ExtractPostID(query); ok {
		endpoint = c.baseURL + "/reddit/submission/search/"
		req.SetQueryParam("ids", id)
	} else {
		endpoint = c.baseURL + "/reddit/search/submission"
		req.SetQueryParams(map[string]string{
			"q":         query,
			"size":      strconv.Itoa(c.searchSize),
			"sort":      "desc",
			"sort_type": "score",
		})
	}

	var result searchResponse
	resp, err := req.SetResult(&result).Get(endpoint)
	if err != nil {
		c.log.Warn().Err(err).Msg("pushshift request failed")
		return grounding.RedditContext{}
	}
	if resp.StatusCode() != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode()).Msg("pushshift returned non-200 status")
		return grounding.RedditContext{}
	}
	return c.build(result.Data)
}

func (c *Client) build(posts []post) grounding.RedditContext {
	var out grounding.RedditContext
	blocks := make([]string, 0, len(posts))
	for _, p := range posts {
		title := strings.TrimSpace(html.UnescapeString(p.Title))
		body := cleanBody(p.Selftext)
		body = truncate(body, c.maxBodyChars)
		if title == "" && body == "" {
			continue
		}

		block := "Title: " + title
		if body != "" {
			block += "\n" + body
		}
		blocks = append(blocks, block)
		out.Snippets = append(out.Snippets, grounding.ContextSnippet{
			Title:  title,
			Body:   body,
			Source: grounding.SourceReddit,
		})
		out.Threads = append(out.Threads, grounding.Thread{
			ID:        p.ID,
			Title:     title,
			URL:       threadURL(p),
			Subreddit: p.Subreddit,
			Score:     p.Score,
		})
	}
	out.Text = strings.Join(blocks, "\n\n")
	return out
}

func cleanBody(raw string) string {
	body := strings.TrimSpace(html.UnescapeString(raw))
	switch body {
	case "[deleted]", "[removed]":
		return ""
	}
	return body
}

func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

func threadURL(p post) string {
	if p.FullLink != "" {
		return p.FullLink
	}
	if p.Permalink != "" {
		return "https://www.reddit.com" + p.Permalink
	}
	if p.ID != "" {
		return fmt.Sprintf("https://www.reddit.com/comments/%s", p.ID)
	}
	return ""
}
