package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/jan-ask/internal/domain/registry"
	"github.com/janhq/jan-ask/internal/interfaces/httpserver/handlers"
)

type modelsResponse struct {
	Object  string                     `json:"object"`
	Default string                     `json:"default"`
	Data    []registry.ModelDescriptor `json:"data"`
}

func registerModelRoutes(router gin.IRoutes, handler *handlers.AskHandler) {
	router.GET("/models", getModels(handler))
}

func getModels(handler *handlers.AskHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, modelsResponse{
			Object:  "list",
			Default: handler.DefaultModel(),
			Data:    handler.Models(),
		})
	}
}
