package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/jan-ask/internal/app"
	"github.com/janhq/jan-ask/internal/config"
	"github.com/janhq/jan-ask/internal/domain/ask"
	"github.com/janhq/jan-ask/internal/interfaces/httpserver"
	"github.com/janhq/jan-ask/pkg/testhelpers"
)

type upstream struct {
	llm         *testhelpers.ChatServer
	redditCalls atomic.Int32
	duckCalls   atomic.Int32
}

type harness struct {
	handler  http.Handler
	upstream *upstream
}

// newHarness starts fake provider, Pushshift and DuckDuckGo servers. reply
// handles the chat completion endpoint.
func newHarness(t *testing.T, reply http.HandlerFunc) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	up := &upstream{llm: testhelpers.NewChatServer(t, reply)}

	pushshift := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		up.redditCalls.Add(1)
		_, _ = w.Write([]byte(`{"data":[{"id":"abc","title":"Go tips","selftext":"Use gofmt","subreddit":"golang","score":10}]}`))
	}))
	t.Cleanup(pushshift.Close)

	ddg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		up.duckCalls.Add(1)
		_, _ = w.Write([]byte(`{"Abstract":"Go is an open source programming language."}`))
	}))
	t.Cleanup(ddg.Close)

	cfg := &config.Config{
		ServiceName:           "jan-ask-test",
		Environment:           "test",
		LogPIILevel:           "hashed",
		XAIAPIKey:             "xai-test",
		XAIBaseURL:            up.llm.URL,
		OpenAIAPIKey:          "openai-test",
		OpenAIBaseURL:         up.llm.URL,
		CompletionTimeout:     2 * time.Second,
		CompletionTemperature: 0.7,
		RedditEnabled:         true,
		PushshiftBaseURL:      pushshift.URL,
		RedditTimeout:         time.Second,
		RedditSearchSize:      5,
		RedditMaxBodyChars:    2000,
		DuckDuckGoEnabled:     true,
		DuckDuckGoBaseURL:     ddg.URL + "/",
		DuckDuckGoTimeout:     time.Second,
		DuckDuckGoMaxTopics:   5,
		ShutdownTimeout:       time.Second,
	}

	svc, gatherer, err := app.NewAskService(cfg, zerolog.Nop())
	require.NoError(t, err)
	srv := httpserver.New(cfg, zerolog.Nop(), svc, gatherer.Enabled())
	return &harness{handler: srv.Handler(), upstream: up}
}

func (h *harness) submit(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)
	return w
}

func TestIndexPage(t *testing.T) {
	h := newHarness(t, testhelpers.Reply("unused"))

	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `name="user_input"`)
	assert.Contains(t, body, `<option value="grok-beta" selected>`)
	assert.Contains(t, body, `name="use_reddit" checked`)
	assert.Contains(t, body, `name="use_duckduckgo" checked`)
	assert.NotContains(t, body, `class="result"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestSubmitRendersMarkdown(t *testing.T) {
	h := newHarness(t, testhelpers.Reply("**Hi**"))

	w := h.submit(t, "/submit", url.Values{"user_input": {"hello"}, "model": {"grok-beta"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<strong>Hi</strong>")
	assert.Contains(t, w.Body.String(), ">hello</textarea>")
	assert.Equal(t, 1, h.upstream.llm.Calls())
	assert.Equal(t, int32(0), h.upstream.redditCalls.Load())
	assert.Equal(t, int32(0), h.upstream.duckCalls.Load())
	assert.Equal(t, "hello", h.upstream.llm.LastUserMessage())
	assert.Equal(t, "Bearer xai-test", h.upstream.llm.LastAuthorization())
}

func TestSubmitRootAndLegacyPromptField(t *testing.T) {
	h := newHarness(t, testhelpers.Reply("**Hi**"))

	w := h.submit(t, "/", url.Values{"prompt": {"hello"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<strong>Hi</strong>")
}

func TestSubmitEmptyInput(t *testing.T) {
	h := newHarness(t, testhelpers.Reply("unused"))

	w := h.submit(t, "/submit", url.Values{"user_input": {"   "}, "use_reddit": {"on"}, "use_duckduckgo": {"on"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ask.MessageEmptyInput)
	assert.Equal(t, 0, h.upstream.llm.Calls())
	assert.Equal(t, int32(0), h.upstream.redditCalls.Load())
	assert.Equal(t, int32(0), h.upstream.duckCalls.Load())
}

func TestSubmitUpstreamError(t *testing.T) {
	h := newHarness(t, testhelpers.Fail(http.StatusInternalServerError, "upstream exploded"))

	w := h.submit(t, "/submit", url.Values{"user_input": {"hello"}, "model": {"gpt-4o"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Error 500: upstream exploded")
	assert.Contains(t, w.Body.String(), `data-outcome="upstream_error"`)
}

func TestSubmitWithContextShowsProvenance(t *testing.T) {
	h := newHarness(t, testhelpers.Reply("Use gofmt on every save (Reddit)."))

	w := h.submit(t, "/submit", url.Values{
		"user_input":     {"go formatting tips"},
		"use_reddit":     {"on"},
		"use_duckduckgo": {"on"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `class="provenance provenance-reddit"`)
	assert.Contains(t, body, `data-tooltip="Source: Reddit"`)
	assert.Contains(t, body, "Go tips")
	assert.Equal(t, int32(1), h.upstream.redditCalls.Load())
	assert.Equal(t, int32(1), h.upstream.duckCalls.Load())

	prompt := h.upstream.llm.LastUserMessage()
	assert.True(t, strings.HasPrefix(prompt, "### Reddit context\nTitle: Go tips\nUse gofmt"))
	assert.Contains(t, prompt, "### DuckDuckGo context\nGo is an open source programming language.")
	assert.True(t, strings.HasSuffix(prompt, "### User input\ngo formatting tips"))
}

func TestSubmitStripsUnsafeModelOutput(t *testing.T) {
	h := newHarness(t, testhelpers.Reply(`Hello <script>alert(1)</script><a href="javascript:alert(2)" onclick="steal()">x</a>`))

	w := h.submit(t, "/submit", url.Values{"user_input": {"hello"}})

	body := w.Body.String()
	assert.NotContains(t, body, "<script>alert(1)")
	assert.NotContains(t, body, "javascript:alert(2)")
	assert.NotContains(t, body, "steal()")
	assert.Contains(t, body, "Hello")
}

func TestAPIAsk(t *testing.T) {
	h := newHarness(t, testhelpers.Reply("**Hi**"))

	payload, _ := json.Marshal(map[string]any{"input": "hello", "model": "gpt-4o-mini", "use_reddit": false, "use_duckduckgo": false})
	req := httptest.NewRequest(http.MethodPost, "/v1/ask", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ask.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ask.OutcomeAnswered, resp.Outcome)
	assert.Equal(t, "openai", string(resp.Provider))
	assert.Contains(t, resp.HTML, "<strong>Hi</strong>")
	assert.Equal(t, int32(0), h.upstream.redditCalls.Load())
}

func TestAPIAskDefaultsSourcesFromConfig(t *testing.T) {
	h := newHarness(t, testhelpers.Reply("ok"))

	req := httptest.NewRequest(http.MethodPost, "/v1/ask", strings.NewReader(`{"input":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(1), h.upstream.redditCalls.Load())
	assert.Equal(t, int32(1), h.upstream.duckCalls.Load())
}

func TestAPIAskMalformedJSON(t *testing.T) {
	h := newHarness(t, testhelpers.Reply("unused"))

	req := httptest.NewRequest(http.MethodPost, "/v1/ask", strings.NewReader(`{"input":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, h.upstream.llm.Calls())
}

func TestAPIModels(t *testing.T) {
	h := newHarness(t, testhelpers.Reply("unused"))

	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/models", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Default string `json:"default"`
		Data    []struct {
			Name     string `json:"name"`
			Provider string `json:"provider"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "grok-beta", resp.Default)
	require.Len(t, resp.Data, 8)
	assert.Equal(t, "gpt-4o", resp.Data[4].Name)
	assert.Equal(t, "openai", resp.Data[4].Provider)
}

func TestProbesAndMetrics(t *testing.T) {
	h := newHarness(t, testhelpers.Reply("unused"))

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		assert.NoError(t, testhelpers.CheckHealth(h.handler, path), path)
	}
}
