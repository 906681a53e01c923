package httpclients

import (
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/janhq/jan-ask/internal/infrastructure/logger"
	"github.com/janhq/jan-ask/internal/platformerrors"
)

const userAgent = "Jan-Ask/1.0"

// NewClient returns a resty client named clientName with the given per-call
// timeout. Outbound calls carry the inbound request id and trace context and
// are logged at debug level.
func NewClient(clientName string, timeout time.Duration) *resty.Client {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)

	client.OnBeforeRequest(func(c *resty.Client, r *resty.Request) error {
		ctx := r.Context()
		if requestID := platformerrors.RequestIDFromContext(ctx); requestID != "" {
			r.SetHeader("X-Request-Id", requestID)
		}
		otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(r.Header))
		return nil
	})

	client.OnAfterResponse(func(c *resty.Client, r *resty.Response) error {
		log := logger.GetLogger()
		path := r.Request.URL
		if raw := r.Request.RawRequest; raw != nil && raw.URL != nil {
			path = raw.URL.Path
		}
		log.Debug().
			Str("request_id", platformerrors.RequestIDFromContext(r.Request.Context())).
			Str("client", clientName).
			Int("status", r.StatusCode()).
			Str("method", r.Request.Method).
			Str("path", path).
			Dur("latency", r.Time()).
			Msg("HTTP client request")
		return nil
	})

	return client
}
