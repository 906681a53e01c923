package ask

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/janhq/jan-ask/internal/domain/completion"
	"github.com/janhq/jan-ask/internal/domain/grounding"
	"github.com/janhq/jan-ask/internal/domain/prompt"
	"github.com/janhq/jan-ask/internal/domain/registry"
	"github.com/janhq/jan-ask/internal/infrastructure/metrics"
	"github.com/janhq/jan-ask/internal/platformerrors"
	"github.com/janhq/jan-ask/pkg/observability"
	"github.com/janhq/jan-ask/pkg/telemetry"
)

const tracerName = "jan-ask/ask"

// Gatherer collects grounding context for a query.
type Gatherer interface {
	Gather(ctx context.Context, query string, opts grounding.Options) grounding.Contexts
}

// Renderer converts model markdown into display-safe HTML.
type Renderer interface {
	Render(markdown string) string
}

// Service runs the ask pipeline for one request at a time; it holds no
// per-request state and is safe for concurrent use.
type Service struct {
	registry   *registry.Registry
	gatherer   Gatherer
	completion completion.Client
	renderer   Renderer
	sanitizer  *telemetry.Sanitizer
	log        zerolog.Logger
}

// NewService wires the pipeline.
func NewService(
	reg *registry.Registry,
	gatherer Gatherer,
	client completion.Client,
	renderer Renderer,
	sanitizer *telemetry.Sanitizer,
	log zerolog.Logger,
) *Service {
	return &Service{
		registry:   reg,
		gatherer:   gatherer,
		completion: client,
		renderer:   renderer,
		sanitizer:  sanitizer,
		log:        log.With().Str("component", "ask-service").Logger(),
	}
}

// Registry exposes the model table used by the pipeline.
func (s *Service) Registry() *registry.Registry {
	return s.registry
}

// Ask runs the pipeline and always returns a displayable Response. Panics
// below this point are recovered into OutcomeUnexpectedError.
func (s *Service) Ask(ctx context.Context, req Request) (resp Response) {
	start := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ask")
	defer span.End()
	span.SetAttributes(observability.WithRequestID(platformerrors.RequestIDFromContext(ctx)))
	span.SetAttributes(observability.WithInputAttrs(req.Input, s.sanitizer)...)

	resp = Response{Input: req.Input, Model: req.Model}

	defer func() {
		if r := recover(); r != nil {
			err := platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
				"ask pipeline panicked", fmt.Errorf("%v", r), "0f5d7e21-8a3c-4b9e-a6d4-3c2e1b7f9a80",
				map[string]any{"model": req.Model})
			platformerrors.LogError(s.log, err)
			resp = s.unexpected(resp)
		}
		resp.Duration = time.Since(start)
		span.SetAttributes(attribute.String(observability.AttrOutcome, string(resp.Outcome)))
		if resp.Outcome != OutcomeAnswered {
			span.SetStatus(codes.Error, string(resp.Outcome))
		}
		metrics.RecordOutcome(string(resp.Outcome), string(resp.Provider))
		s.log.Info().
			Str("request_id", platformerrors.RequestIDFromContext(ctx)).
			Str("model", resp.Model).
			Str("provider", string(resp.Provider)).
			Str("outcome", string(resp.Outcome)).
			Str("input", s.sanitizer.Preview(s.sanitizer.Text(req.Input), 80)).
			Str("input_fp", s.sanitizer.Fingerprint(req.Input)).
			Dur("duration", resp.Duration).
			Msg("ask completed")
	}()

	if strings.TrimSpace(req.Input) == "" {
		resp.Outcome = OutcomeEmptyInput
		resp.Message = MessageEmptyInput
		return resp
	}

	if resp.Model == "" {
		resp.Model = s.registry.DefaultModel()
	}
	if _, known := s.registry.Lookup(resp.Model); !known {
		s.log.Warn().Str("model", resp.Model).Str("provider", string(registry.DefaultProvider)).
			Msg("unknown model, defaulting provider")
	}
	resp.Provider = s.registry.ResolveProvider(resp.Model)
	observability.AddLLMAttrsToSpan(span, resp.Model, string(resp.Provider))

	contexts := s.gatherer.Gather(ctx, req.Input, grounding.Options{
		Reddit:     req.UseReddit,
		DuckDuckGo: req.UseDuckDuckGo,
	})
	resp.Threads = contexts.Reddit.Threads

	messages := prompt.Build(req.Input, contexts)
	result, err := s.complete(ctx, resp.Provider, resp.Model, messages)
	if err != nil {
		platformerrors.LogError(s.log, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "chat completion failed"))
		return s.unexpected(resp)
	}

	switch result.Status {
	case completion.StatusSuccess:
		resp.Outcome = OutcomeAnswered
		resp.Markdown = result.Text
		resp.HTML = s.renderer.Render(result.Text)
	case completion.StatusUpstreamError:
		resp.Outcome = OutcomeUpstreamError
		resp.UpstreamStatus = result.StatusCode
		resp.Message = fmt.Sprintf("Error %d: %s", result.StatusCode, result.Body)
	case completion.StatusTimeout:
		resp.Outcome = OutcomeTimeout
		resp.Message = MessageTimeout
	case completion.StatusEmpty:
		resp.Outcome = OutcomeEmptyContent
		resp.Message = MessageEmptyContent
	default:
		s.log.Error().Str("status", string(result.Status)).Msg("unknown completion status")
		return s.unexpected(resp)
	}
	return resp
}

func (s *Service) complete(ctx context.Context, provider registry.Provider, model string, messages []prompt.Message) (completion.Result, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "completion")
	defer span.End()
	observability.AddLLMAttrsToSpan(span, model, string(provider))

	result, err := s.completion.Complete(ctx, provider, model, messages)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return result, err
	}
	span.SetAttributes(attribute.String(observability.AttrCompletionStatus, string(result.Status)))
	return result, nil
}

func (s *Service) unexpected(resp Response) Response {
	resp.Outcome = OutcomeUnexpectedError
	resp.Message = MessageUnexpected
	resp.HTML = ""
	resp.Markdown = ""
	resp.UpstreamStatus = 0
	return resp
}
