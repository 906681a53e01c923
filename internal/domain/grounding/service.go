package grounding

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/janhq/jan-ask/internal/infrastructure/metrics"
	"github.com/janhq/jan-ask/pkg/observability"
)

const tracerName = "jan-ask/grounding"

// Service gathers context from the enabled sources.
type Service struct {
	reddit     RedditFetcher
	duckduckgo DuckDuckGoFetcher
	log        zerolog.Logger
}

// NewService wires the grounding service. A nil fetcher disables that source
// regardless of per-request options.
func NewService(reddit RedditFetcher, duckduckgo DuckDuckGoFetcher, log zerolog.Logger) *Service {
	return &Service{
		reddit:     reddit,
		duckduckgo: duckduckgo,
		log:        log.With().Str("component", "grounding-service").Logger(),
	}
}

// Enabled reports which sources are configured.
func (s *Service) Enabled() Options {
	return Options{Reddit: s.reddit != nil, DuckDuckGo: s.duckduckgo != nil}
}

// Gather runs the selected fetchers concurrently and waits for both.
func (s *Service) Gather(ctx context.Context, query string, opts Options) Contexts {
	var out Contexts
	g, gctx := errgroup.WithContext(ctx)

	if opts.Reddit && s.reddit != nil {
		g.Go(func() error {
			out.Reddit = observe(gctx, SourceReddit, func(ctx context.Context) (RedditContext, bool) {
				rc := s.reddit.Fetch(ctx, query)
				return rc, !rc.Empty()
			})
			return nil
		})
	}
	if opts.DuckDuckGo && s.duckduckgo != nil {
		g.Go(func() error {
			out.DuckDuckGo = observe(gctx, SourceDuckDuckGo, func(ctx context.Context) (string, bool) {
				text := s.duckduckgo.Fetch(ctx, query)
				return text, text != ""
			})
			return nil
		})
	}

	_ = g.Wait()
	s.log.Debug().
		Bool("reddit", !out.Reddit.Empty()).
		Bool("duckduckgo", out.DuckDuckGo != "").
		Msg("context gathered")
	return out
}

func observe[T any](ctx context.Context, source Source, fetch func(context.Context) (T, bool)) T {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "grounding."+string(source))
	defer span.End()

	start := time.Now()
	result, hit := fetch(ctx)
	metrics.RecordFetch(string(source), hit, time.Since(start).Seconds())
	span.SetAttributes(observability.WithSourceAttrs(string(source), hit)...)
	return result
}
