package handlers

import (
	"context"

	"github.com/janhq/jan-ask/internal/domain/ask"
	"github.com/janhq/jan-ask/internal/domain/grounding"
	"github.com/janhq/jan-ask/internal/domain/registry"
)

// AskHandler invokes the ask pipeline for form and API routes.
type AskHandler struct {
	service  *ask.Service
	defaults grounding.Options
}

// NewAskHandler wires dependencies for ask routes. defaults drives the
// initial checkbox state of the form.
func NewAskHandler(service *ask.Service, defaults grounding.Options) *AskHandler {
	return &AskHandler{
		service:  service,
		defaults: defaults,
	}
}

// Ask runs the pipeline for one submission.
func (h *AskHandler) Ask(ctx context.Context, req ask.Request) ask.Response {
	return h.service.Ask(ctx, req)
}

// Models lists the registered models in display order.
func (h *AskHandler) Models() []registry.ModelDescriptor {
	return h.service.Registry().Models()
}

// DefaultModel is the model preselected on a fresh form.
func (h *AskHandler) DefaultModel() string {
	return h.service.Registry().DefaultModel()
}

// Defaults reports which context sources are enabled.
func (h *AskHandler) Defaults() grounding.Options {
	return h.defaults
}
