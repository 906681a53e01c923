package completion

import (
	"context"

	"github.com/janhq/jan-ask/internal/domain/prompt"
	"github.com/janhq/jan-ask/internal/domain/registry"
)

// Status classifies a completed upstream call.
type Status string

const (
	StatusSuccess       Status = "success"
	StatusUpstreamError Status = "upstream_error"
	StatusTimeout       Status = "timeout"
	StatusEmpty         Status = "empty"
)

// Result is the classified outcome of one completion request.
type Result struct {
	Status Status
	// Text is the assistant reply when Status is StatusSuccess.
	Text string
	// StatusCode and Body carry the upstream response for StatusUpstreamError.
	StatusCode int
	Body       string
}

// Client sends one chat completion request. The returned error covers only
// failures that cannot be classified into a Result.
type Client interface {
	Complete(ctx context.Context, provider registry.Provider, model string, messages []prompt.Message) (Result, error)
}
