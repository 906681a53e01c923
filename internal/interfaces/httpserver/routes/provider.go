package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/jan-ask/internal/interfaces/httpserver/handlers"
	v1 "github.com/janhq/jan-ask/internal/interfaces/httpserver/routes/v1"
	"github.com/janhq/jan-ask/internal/interfaces/httpserver/routes/web"
)

// Provider aggregates the page routes and the versioned API routes.
type Provider struct {
	web *web.Routes
	v1  *v1.Routes
}

// NewProvider builds the route registrars.
func NewProvider(handlerProvider *handlers.Provider) *Provider {
	return &Provider{
		web: web.NewRoutes(handlerProvider),
		v1:  v1.NewRoutes(handlerProvider),
	}
}

// Register attaches all routes to the engine.
func (p *Provider) Register(engine *gin.Engine) {
	p.web.Register(engine)
	p.v1.Register(engine)
}
