package grounding

import "context"

// RedditFetcher returns Reddit context for a query or URL. Failures yield the
// zero RedditContext.
type RedditFetcher interface {
	Fetch(ctx context.Context, query string) RedditContext
}

// DuckDuckGoFetcher returns instant-answer text for a query, or "" on failure.
type DuckDuckGoFetcher interface {
	Fetch(ctx context.Context, query string) string
}
