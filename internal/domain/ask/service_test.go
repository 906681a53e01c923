package ask

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/jan-ask/internal/domain/completion"
	"github.com/janhq/jan-ask/internal/domain/grounding"
	"github.com/janhq/jan-ask/internal/domain/prompt"
	"github.com/janhq/jan-ask/internal/domain/registry"
	"github.com/janhq/jan-ask/internal/domain/render"
	"github.com/janhq/jan-ask/pkg/telemetry"
)

type fakeGatherer struct {
	calls    int
	opts     grounding.Options
	contexts grounding.Contexts
}

func (f *fakeGatherer) Gather(ctx context.Context, query string, opts grounding.Options) grounding.Contexts {
	f.calls++
	f.opts = opts
	return f.contexts
}

type fakeCompletion struct {
	calls    int
	provider registry.Provider
	model    string
	messages []prompt.Message
	result   completion.Result
	err      error
	panicMsg string
}

func (f *fakeCompletion) Complete(ctx context.Context, provider registry.Provider, model string, messages []prompt.Message) (completion.Result, error) {
	f.calls++
	f.provider = provider
	f.model = model
	f.messages = messages
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.result, f.err
}

func newTestService(g *fakeGatherer, c *fakeCompletion) *Service {
	return NewService(
		registry.DefaultRegistry(),
		g,
		c,
		render.New(),
		telemetry.NewSanitizer(telemetry.PIILevelHashed, "test"),
		zerolog.Nop(),
	)
}

func TestAskAnswered(t *testing.T) {
	g := &fakeGatherer{}
	c := &fakeCompletion{result: completion.Result{Status: completion.StatusSuccess, Text: "**Hi**"}}
	svc := newTestService(g, c)

	resp := svc.Ask(context.Background(), Request{Input: "hello", Model: "grok-beta"})

	assert.Equal(t, OutcomeAnswered, resp.Outcome)
	assert.True(t, resp.Answered())
	assert.Contains(t, resp.HTML, "<strong>Hi</strong>")
	assert.Equal(t, "**Hi**", resp.Markdown)
	assert.Empty(t, resp.Message)
	assert.Equal(t, registry.ProviderXAI, resp.Provider)
	assert.Equal(t, registry.ProviderXAI, c.provider)
	require.Len(t, c.messages, 2)
	assert.Equal(t, "hello", c.messages[1].Content)
}

func TestAskEmptyInputMakesNoCalls(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		g := &fakeGatherer{}
		c := &fakeCompletion{}
		svc := newTestService(g, c)

		resp := svc.Ask(context.Background(), Request{Input: input, UseReddit: true, UseDuckDuckGo: true})

		assert.Equal(t, OutcomeEmptyInput, resp.Outcome)
		assert.Equal(t, MessageEmptyInput, resp.Message)
		assert.Equal(t, 0, g.calls)
		assert.Equal(t, 0, c.calls)
	}
}

func TestAskOutcomeMessages(t *testing.T) {
	tests := []struct {
		name     string
		result   completion.Result
		err      error
		outcome  Outcome
		message  string
		upstream int
	}{
		{
			name:     "upstream error",
			result:   completion.Result{Status: completion.StatusUpstreamError, StatusCode: 500, Body: "internal failure"},
			outcome:  OutcomeUpstreamError,
			message:  "Error 500: internal failure",
			upstream: 500,
		},
		{
			name:    "timeout",
			result:  completion.Result{Status: completion.StatusTimeout},
			outcome: OutcomeTimeout,
			message: MessageTimeout,
		},
		{
			name:    "empty content",
			result:  completion.Result{Status: completion.StatusEmpty},
			outcome: OutcomeEmptyContent,
			message: MessageEmptyContent,
		},
		{
			name:    "unexpected error",
			err:     errors.New("decode failed"),
			outcome: OutcomeUnexpectedError,
			message: MessageUnexpected,
		},
		{
			name:    "unknown status",
			result:  completion.Result{Status: completion.Status("weird")},
			outcome: OutcomeUnexpectedError,
			message: MessageUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &fakeCompletion{result: tt.result, err: tt.err}
			svc := newTestService(&fakeGatherer{}, c)

			resp := svc.Ask(context.Background(), Request{Input: "q", Model: "gpt-4o"})

			assert.Equal(t, tt.outcome, resp.Outcome)
			assert.Equal(t, tt.message, resp.Message)
			assert.Equal(t, tt.upstream, resp.UpstreamStatus)
			assert.Empty(t, resp.HTML)
		})
	}
}

func TestAskRecoversPanic(t *testing.T) {
	c := &fakeCompletion{panicMsg: "nil map write"}
	svc := newTestService(&fakeGatherer{}, c)

	var resp Response
	assert.NotPanics(t, func() {
		resp = svc.Ask(context.Background(), Request{Input: "q"})
	})
	assert.Equal(t, OutcomeUnexpectedError, resp.Outcome)
	assert.Equal(t, MessageUnexpected, resp.Message)
}

func TestAskModelResolution(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		expected string
		provider registry.Provider
	}{
		{"default model", "", "grok-beta", registry.ProviderXAI},
		{"openai model", "gpt-4o-mini", "gpt-4o-mini", registry.ProviderOpenAI},
		{"unknown model", "mystery-1", "mystery-1", registry.ProviderXAI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &fakeCompletion{result: completion.Result{Status: completion.StatusSuccess, Text: "ok"}}
			svc := newTestService(&fakeGatherer{}, c)

			resp := svc.Ask(context.Background(), Request{Input: "q", Model: tt.model})

			assert.Equal(t, tt.expected, resp.Model)
			assert.Equal(t, tt.expected, c.model)
			assert.Equal(t, tt.provider, c.provider)
		})
	}
}

func TestAskPassesContextAndThreads(t *testing.T) {
	g := &fakeGatherer{contexts: grounding.Contexts{
		Reddit: grounding.RedditContext{
			Text:    "Title: Go\nGo is fun",
			Threads: []grounding.Thread{{ID: "abc", Title: "Go"}},
		},
	}}
	c := &fakeCompletion{result: completion.Result{Status: completion.StatusSuccess, Text: "Go is fun (Reddit)."}}
	svc := newTestService(g, c)

	resp := svc.Ask(context.Background(), Request{Input: "is go fun", UseReddit: true})

	assert.Equal(t, grounding.Options{Reddit: true}, g.opts)
	require.Len(t, c.messages, 2)
	assert.Contains(t, c.messages[1].Content, "### Reddit context\nTitle: Go\nGo is fun")
	assert.Contains(t, c.messages[1].Content, "### User input\nis go fun")
	assert.Len(t, resp.Threads, 1)
	assert.Contains(t, resp.HTML, `data-tooltip="Source: Reddit"`)
}
