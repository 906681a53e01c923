package observability

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/janhq/jan-ask/pkg/telemetry"
)

// Standard attribute keys
const (
	AttrRequestID        = "request_id"
	AttrModel            = "llm.model"
	AttrProvider         = "llm.provider"
	AttrCompletionStatus = "llm.completion.status"
	AttrOutcome          = "ask.outcome"
	AttrInputFingerprint = "ask.input.fingerprint"
	AttrSource           = "grounding.source"
	AttrSourceHit        = "grounding.hit"
)

// WithLLMAttrs returns model routing attributes
func WithLLMAttrs(model, provider string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{}

	if model != "" {
		attrs = append(attrs, attribute.String(AttrModel, model))
	}

	if provider != "" {
		attrs = append(attrs, attribute.String(AttrProvider, provider))
	}

	return attrs
}

// WithInputAttrs identifies the user input without recording it
func WithInputAttrs(input string, sanitizer *telemetry.Sanitizer) []attribute.KeyValue {
	if input == "" || sanitizer == nil {
		return nil
	}
	return []attribute.KeyValue{attribute.String(AttrInputFingerprint, sanitizer.Fingerprint(input))}
}

// WithSourceAttrs returns grounding fetch attributes
func WithSourceAttrs(source string, hit bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrSource, source),
		attribute.Bool(AttrSourceHit, hit),
	}
}

// WithRequestID returns a request ID attribute
func WithRequestID(requestID string) attribute.KeyValue {
	return attribute.String(AttrRequestID, requestID)
}

// AddLLMAttrsToSpan adds model routing attributes to span
func AddLLMAttrsToSpan(span trace.Span, model, provider string) {
	if span == nil {
		return
	}
	span.SetAttributes(WithLLMAttrs(model, provider)...)
}
