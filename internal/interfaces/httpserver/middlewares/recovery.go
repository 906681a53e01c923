package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/jan-ask/internal/platformerrors"
)

// Recovery converts handler panics into a 500 and a structured error log.
func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err := platformerrors.NewErrorWithContext(c.Request.Context(), platformerrors.LayerHandler,
					platformerrors.ErrorTypeInternal, "handler panicked", fmt.Errorf("%v", r),
					"e4a1c9b7-2d6f-4f03-8b5e-9c7d0a3f6e12", map[string]any{"path": c.Request.URL.Path})
				platformerrors.LogError(logger, err)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}
