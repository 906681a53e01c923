package render

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// AllowedTags is the fixed set of elements kept by Sanitize.
var AllowedTags = []string{
	"a", "abbr", "acronym", "b", "blockquote", "code", "em", "i", "li", "ol", "strong", "ul",
	"p", "pre", "h1", "h2", "h3", "h4", "h5", "h6", "img",
	"table", "thead", "tbody", "tfoot", "tr", "th", "td", "caption",
	"hr", "br", "sup", "details", "summary",
}

var markerPattern = regexp.MustCompile(` ?\((Reddit|DuckDuckGo)\)`)

// Renderer turns model markdown into sanitized HTML. It is safe for
// concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New builds a renderer with the fixed markdown options and allow-list.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
				gmhtml.WithUnsafe(),
			),
		),
		policy: newPolicy(),
	}
}

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(AllowedTags...)
	p.AllowAttrs("style", "class").Globally()
	p.AllowAttrs("href", "title", "target", "rel").OnElements("a")
	p.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")
	p.AllowAttrs("data-tooltip").OnElements("sup")
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowRelativeURLs(true)
	p.RequireParseableURLs(true)
	return p
}

// Render annotates provenance markers, converts markdown to HTML and
// sanitizes the result.
func (r *Renderer) Render(markdown string) string {
	annotated := AnnotateMarkers(markdown)
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(annotated), &buf); err != nil {
		return r.Sanitize("<p>" + html.EscapeString(markdown) + "</p>")
	}
	return r.Sanitize(buf.String())
}

// Sanitize applies the allow-list. Its output is a fixed point.
func (r *Renderer) Sanitize(unsafe string) string {
	return r.policy.Sanitize(unsafe)
}

// AnnotateMarkers replaces each (Reddit) or (DuckDuckGo) marker, including
// one preceding space, with a superscript badge.
func AnnotateMarkers(markdown string) string {
	return markerPattern.ReplaceAllStringFunc(markdown, func(m string) string {
		source := strings.Trim(strings.TrimSpace(m), "()")
		return badge(source)
	})
}

func badge(source string) string {
	return `<sup class="provenance provenance-` + strings.ToLower(source) +
		`" data-tooltip="Source: ` + source + `">[` + source + `]</sup>`
}

var defaultRenderer = New()

// Render uses the package default renderer.
func Render(markdown string) string {
	return defaultRenderer.Render(markdown)
}

// Sanitize uses the package default renderer.
func Sanitize(unsafe string) string {
	return defaultRenderer.Sanitize(unsafe)
}
