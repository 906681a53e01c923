//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/janhq/jan-ask/internal/app"
	"github.com/janhq/jan-ask/internal/config"
	"github.com/janhq/jan-ask/internal/domain/ask"
	"github.com/janhq/jan-ask/internal/domain/completion"
	"github.com/janhq/jan-ask/internal/domain/grounding"
	"github.com/janhq/jan-ask/internal/domain/render"
	"github.com/janhq/jan-ask/internal/infrastructure/llmprovider"
	"github.com/janhq/jan-ask/internal/infrastructure/logger"
	"github.com/janhq/jan-ask/internal/interfaces/httpserver"
)

var pipelineSet = wire.NewSet(
	app.NewRegistry,
	app.NewGroundingService,
	app.NewSanitizer,
	wire.Bind(new(ask.Gatherer), new(*grounding.Service)),
	llmprovider.NewClient,
	wire.Bind(new(completion.Client), new(*llmprovider.Client)),
	render.New,
	wire.Bind(new(ask.Renderer), new(*render.Renderer)),
	ask.NewService,
)

// BuildApplication assembles the ask service with Wire.
func BuildApplication() (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		pipelineSet,
		newSourceOptions,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newSourceOptions(gatherer *grounding.Service) grounding.Options {
	return gatherer.Enabled()
}
