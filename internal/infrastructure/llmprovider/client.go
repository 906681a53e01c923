package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/janhq/jan-ask/internal/config"
	"github.com/janhq/jan-ask/internal/domain/completion"
	"github.com/janhq/jan-ask/internal/domain/prompt"
	"github.com/janhq/jan-ask/internal/domain/registry"
	"github.com/janhq/jan-ask/internal/infrastructure/httpclients"
	"github.com/janhq/jan-ask/internal/infrastructure/metrics"
	"github.com/janhq/jan-ask/internal/platformerrors"
)

type endpoint struct {
	baseURL string
	apiKey  string
}

// Client calls OpenAI compatible chat completion endpoints for each provider.
type Client struct {
	httpClient  *resty.Client
	endpoints   map[registry.Provider]endpoint
	timeout     time.Duration
	temperature float32
	log         zerolog.Logger
}

var _ completion.Client = (*Client)(nil)

// NewClient builds a provider client from configuration.
func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	return &Client{
		httpClient: httpclients.NewClient("llm-provider", cfg.CompletionTimeout),
		endpoints: map[registry.Provider]endpoint{
			registry.ProviderXAI:    {baseURL: normalizeBaseURL(cfg.XAIBaseURL), apiKey: cfg.XAIAPIKey},
			registry.ProviderOpenAI: {baseURL: normalizeBaseURL(cfg.OpenAIBaseURL), apiKey: cfg.OpenAIAPIKey},
		},
		timeout:     cfg.CompletionTimeout,
		temperature: cfg.CompletionTemperature,
		log:         log.With().Str("component", "llm-provider-client").Logger(),
	}
}

// chatRequest mirrors the upstream payload. Stream is a pointer so that it is
// sent as false for xai and omitted for openai.
type chatRequest struct {
	Model       string                         `json:"model"`
	Messages    []openai.ChatCompletionMessage `json:"messages"`
	Temperature float32                        `json:"temperature"`
	Stream      *bool                          `json:"stream,omitempty"`
}

// Complete makes a single, non-retried completion call.
func (c *Client) Complete(ctx context.Context, provider registry.Provider, model string, messages []prompt.Message) (completion.Result, error) {
	ep, ok := c.endpoints[provider]
	if !ok {
		return completion.Result{}, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeInternal,
			fmt.Sprintf("no endpoint configured for provider %q", provider), nil, "6b1f0c52-93d4-4e0a-b7f1-2f8c4d1e9a37")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	result, err := c.do(ctx, provider, ep, model, messages)
	status := string(result.Status)
	if err != nil {
		status = "error"
	}
	metrics.RecordCompletion(string(provider), status, time.Since(start).Seconds())
	return result, err
}

func (c *Client) do(ctx context.Context, provider registry.Provider, ep endpoint, model string, messages []prompt.Message) (completion.Result, error) {
	body := chatRequest{
		Model:       model,
		Messages:    toOpenAIMessages(messages),
		Temperature: c.temperature,
	}
	if provider == registry.ProviderXAI {
		stream := false
		body.Stream = &stream
	}

	var respBody openai.ChatCompletionResponse
	resp, err := c.prepareRequest(ctx, provider, ep.apiKey).
		SetBody(body).
		SetResult(&respBody).
		Post(ep.baseURL + "/chat/completions")
	if err != nil {
		if isTimeout(ctx, err) {
			c.log.Warn().Str("provider", string(provider)).Str("model", model).Msg("completion timed out")
			return completion.Result{Status: completion.StatusTimeout}, nil
		}
		return completion.Result{}, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"chat completion request failed", err, "c3e9a7d2-5b41-4f86-9e0d-71a2b8f4c615")
	}

	if resp.StatusCode() != http.StatusOK {
		c.log.Warn().
			Str("provider", string(provider)).
			Str("model", model).
			Int("status", resp.StatusCode()).
			Msg("completion upstream error")
		return completion.Result{
			Status:     completion.StatusUpstreamError,
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
		}, nil
	}

	if len(respBody.Choices) == 0 {
		return completion.Result{Status: completion.StatusEmpty}, nil
	}
	text := respBody.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return completion.Result{Status: completion.StatusEmpty}, nil
	}
	return completion.Result{Status: completion.StatusSuccess, Text: text}, nil
}

func (c *Client) prepareRequest(ctx context.Context, provider registry.Provider, apiKey string) *resty.Request {
	req := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		ForceContentType("application/json")
	if strings.TrimSpace(apiKey) != "" {
		req.SetHeader("Authorization", fmt.Sprintf("Bearer %s", apiKey))
	} else {
		c.log.Warn().Str("provider", string(provider)).Msg("no API key configured, sending unauthenticated request")
	}
	return req
}

func toOpenAIMessages(messages []prompt.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content})
	}
	return out
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func normalizeBaseURL(base string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/")
}
