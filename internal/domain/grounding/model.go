package grounding

// Source names an external context provider.
type Source string

const (
	SourceReddit     Source = "reddit"
	SourceDuckDuckGo Source = "duckduckgo"
)

// ContextSnippet is one piece of fetched context.
type ContextSnippet struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Source Source `json:"source"`
}

// Thread summarises a Reddit post for display next to the answer.
type Thread struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Subreddit string `json:"subreddit"`
	Score     int    `json:"score"`
}

// RedditContext is the Reddit fetcher output. The zero value means no context.
type RedditContext struct {
	Text     string           `json:"text"`
	Snippets []ContextSnippet `json:"snippets,omitempty"`
	Threads  []Thread         `json:"threads,omitempty"`
}

// Empty reports whether no Reddit text was found.
func (r RedditContext) Empty() bool {
	return r.Text == ""
}

// Contexts holds everything gathered for one prompt.
type Contexts struct {
	Reddit     RedditContext
	DuckDuckGo string
}

// Empty reports whether no source produced any text.
func (c Contexts) Empty() bool {
	return c.Reddit.Empty() && c.DuckDuckGo == ""
}

// Options selects which fetchers run for a request.
type Options struct {
	Reddit     bool
	DuckDuckGo bool
}
