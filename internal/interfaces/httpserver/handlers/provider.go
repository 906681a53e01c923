package handlers

import (
	"github.com/janhq/jan-ask/internal/domain/ask"
	"github.com/janhq/jan-ask/internal/domain/grounding"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Ask *AskHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(askService *ask.Service, defaults grounding.Options) *Provider {
	return &Provider{
		Ask: NewAskHandler(askService, defaults),
	}
}
