package ask

import (
	"time"

	"github.com/janhq/jan-ask/internal/domain/grounding"
	"github.com/janhq/jan-ask/internal/domain/registry"
)

// Request is one form or API submission.
type Request struct {
	Input         string `json:"input"`
	Model         string `json:"model"`
	UseReddit     bool   `json:"use_reddit"`
	UseDuckDuckGo bool   `json:"use_duckduckgo"`
}

// Outcome is the terminal state of a pipeline run.
type Outcome string

const (
	OutcomeAnswered        Outcome = "answered"
	OutcomeEmptyInput      Outcome = "empty_input"
	OutcomeUpstreamError   Outcome = "upstream_error"
	OutcomeTimeout         Outcome = "timeout"
	OutcomeEmptyContent    Outcome = "empty_content"
	OutcomeUnexpectedError Outcome = "unexpected_error"
)

// User facing messages for non-answered outcomes.
const (
	MessageEmptyInput   = "Please enter a prompt to get started."
	MessageTimeout      = "The model did not respond in time. Please try again."
	MessageEmptyContent = "The model returned no content."
	MessageUnexpected   = "An unexpected error occurred. Please try again."
)

// Response is what the caller displays. Exactly one of HTML or Message is
// set.
type Response struct {
	Input          string             `json:"input"`
	Model          string             `json:"model"`
	Provider       registry.Provider  `json:"provider,omitempty"`
	Outcome        Outcome            `json:"outcome"`
	Message        string             `json:"message,omitempty"`
	HTML           string             `json:"html,omitempty"`
	Markdown       string             `json:"markdown,omitempty"`
	Threads        []grounding.Thread `json:"threads,omitempty"`
	UpstreamStatus int                `json:"upstream_status,omitempty"`
	Duration       time.Duration      `json:"duration_ns"`
}

// Answered reports whether the model produced a rendered reply.
func (r Response) Answered() bool {
	return r.Outcome == OutcomeAnswered
}
