package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/jan-ask/internal/domain/ask"
	"github.com/janhq/jan-ask/internal/interfaces/httpserver/handlers"
)

type askRequest struct {
	Input         string `json:"input"`
	Model         string `json:"model"`
	UseReddit     *bool  `json:"use_reddit"`
	UseDuckDuckGo *bool  `json:"use_duckduckgo"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func registerAskRoutes(router gin.IRoutes, handler *handlers.AskHandler) {
	router.POST("/ask", postAsk(handler))
}

// postAsk runs the pipeline for a JSON body. Every pipeline outcome is a
// 200; only an unreadable body is a 400. Omitted source flags fall back to
// the configured defaults.
func postAsk(handler *handlers.AskHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body askRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		defaults := handler.Defaults()
		req := ask.Request{
			Input:         body.Input,
			Model:         body.Model,
			UseReddit:     boolOr(body.UseReddit, defaults.Reddit),
			UseDuckDuckGo: boolOr(body.UseDuckDuckGo, defaults.DuckDuckGo),
		}
		c.JSON(http.StatusOK, handler.Ask(c.Request.Context(), req))
	}
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
