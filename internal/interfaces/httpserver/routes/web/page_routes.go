package web

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/janhq/jan-ask/internal/domain/ask"
	"github.com/janhq/jan-ask/internal/domain/grounding"
	"github.com/janhq/jan-ask/internal/domain/registry"
	"github.com/janhq/jan-ask/internal/interfaces/httpserver/handlers"
)

// Routes serves the single-page form.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes builds the page route registrar.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{handlers: handlerProvider}
}

// Register attaches the form routes at the root.
func (r *Routes) Register(engine *gin.Engine) {
	h := r.handlers.Ask
	engine.GET("/", getIndex(h))
	engine.POST("/", postSubmit(h))
	engine.POST("/submit", postSubmit(h))
}

type modelOption struct {
	Name     string
	Provider registry.Provider
	Selected bool
}

type pageData struct {
	Input               string
	Models              []modelOption
	RedditAvailable     bool
	DuckDuckGoAvailable bool
	UseReddit           bool
	UseDuckDuckGo       bool

	Submitted  bool
	Model      string
	Provider   registry.Provider
	Outcome    ask.Outcome
	Message    string
	ResultHTML template.HTML
	Threads    []grounding.Thread
	Duration   string
}

func getIndex(h *handlers.AskHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		defaults := h.Defaults()
		c.HTML(http.StatusOK, "index", pageData{
			Models:              modelOptions(h.Models(), h.DefaultModel()),
			RedditAvailable:     defaults.Reddit,
			DuckDuckGoAvailable: defaults.DuckDuckGo,
			UseReddit:           defaults.Reddit,
			UseDuckDuckGo:       defaults.DuckDuckGo,
		})
	}
}

func postSubmit(h *handlers.AskHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		input, ok := c.GetPostForm("user_input")
		if !ok {
			input = c.PostForm("prompt")
		}
		req := ask.Request{
			Input:         input,
			Model:         strings.TrimSpace(c.PostForm("model")),
			UseReddit:     checked(c.PostForm("use_reddit")),
			UseDuckDuckGo: checked(c.PostForm("use_duckduckgo")),
		}

		resp := h.Ask(c.Request.Context(), req)

		defaults := h.Defaults()
		selected := resp.Model
		if selected == "" {
			selected = h.DefaultModel()
		}
		c.HTML(http.StatusOK, "index", pageData{
			Input:               resp.Input,
			Models:              modelOptions(h.Models(), selected),
			RedditAvailable:     defaults.Reddit,
			DuckDuckGoAvailable: defaults.DuckDuckGo,
			UseReddit:           req.UseReddit,
			UseDuckDuckGo:       req.UseDuckDuckGo,
			Submitted:           true,
			Model:               selected,
			Provider:            resp.Provider,
			Outcome:             resp.Outcome,
			Message:             resp.Message,
			// resp.HTML has already passed the sanitizer allow-list.
			ResultHTML: template.HTML(resp.HTML),
			Threads:    resp.Threads,
			Duration:   resp.Duration.Round(time.Millisecond).String(),
		})
	}
}

func modelOptions(models []registry.ModelDescriptor, selected string) []modelOption {
	out := make([]modelOption, 0, len(models)+1)
	found := false
	for _, m := range models {
		isSelected := m.Name == selected
		found = found || isSelected
		out = append(out, modelOption{Name: m.Name, Provider: m.Provider, Selected: isSelected})
	}
	if !found && selected != "" {
		out = append(out, modelOption{Name: selected, Provider: registry.DefaultProvider, Selected: true})
	}
	return out
}

func checked(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
