package app

import (
	"github.com/rs/zerolog"

	"github.com/janhq/jan-ask/internal/config"
	"github.com/janhq/jan-ask/internal/domain/ask"
	"github.com/janhq/jan-ask/internal/domain/grounding"
	"github.com/janhq/jan-ask/internal/domain/registry"
	"github.com/janhq/jan-ask/internal/domain/render"
	"github.com/janhq/jan-ask/internal/infrastructure/duckduckgo"
	"github.com/janhq/jan-ask/internal/infrastructure/llmprovider"
	"github.com/janhq/jan-ask/internal/infrastructure/reddit"
	"github.com/janhq/jan-ask/pkg/telemetry"
)

// NewRegistry loads MODEL_REGISTRY_FILE when set and falls back to the
// built-in table otherwise.
func NewRegistry(cfg *config.Config, log zerolog.Logger) (*registry.Registry, error) {
	if cfg.ModelRegistryFile == "" {
		return registry.DefaultRegistry(), nil
	}
	reg, err := registry.LoadFile(cfg.ModelRegistryFile)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", cfg.ModelRegistryFile).Int("models", len(reg.Models())).Msg("loaded model registry")
	return reg, nil
}

// NewGroundingService builds the context fetchers enabled in configuration.
func NewGroundingService(cfg *config.Config, log zerolog.Logger) *grounding.Service {
	var redditFetcher grounding.RedditFetcher
	if cfg.RedditEnabled {
		redditFetcher = reddit.NewClient(cfg, log)
	}
	var duckFetcher grounding.DuckDuckGoFetcher
	if cfg.DuckDuckGoEnabled {
		duckFetcher = duckduckgo.NewClient(cfg, log)
	}
	return grounding.NewService(redditFetcher, duckFetcher, log)
}

// NewSanitizer builds the log sanitizer for user text.
func NewSanitizer(cfg *config.Config) *telemetry.Sanitizer {
	return telemetry.NewSanitizer(telemetry.ParsePIILevel(cfg.LogPIILevel), cfg.ServiceName)
}

// NewAskService assembles the full pipeline from configuration.
func NewAskService(cfg *config.Config, log zerolog.Logger) (*ask.Service, *grounding.Service, error) {
	reg, err := NewRegistry(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	gatherer := NewGroundingService(cfg, log)
	svc := ask.NewService(
		reg,
		gatherer,
		llmprovider.NewClient(cfg, log),
		render.New(),
		NewSanitizer(cfg),
		log,
	)
	return svc, gatherer, nil
}

// WarnMissingKeys logs one warning per unset provider key.
func WarnMissingKeys(cfg *config.Config, log zerolog.Logger) {
	for _, key := range cfg.MissingKeys() {
		log.Warn().Str("key", key).Msg("provider API key not set; requests to this provider will be unauthenticated")
	}
}
