package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.HTTPPort)
	assert.Equal(t, "https://api.x.ai/v1", cfg.XAIBaseURL)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RedditTimeout)
	assert.Equal(t, 5*time.Second, cfg.DuckDuckGoTimeout)
	assert.Less(t, cfg.DuckDuckGoTimeout, cfg.RedditTimeout)
	assert.Equal(t, 5, cfg.RedditSearchSize)
	assert.InDelta(t, 0.7, cfg.CompletionTemperature, 0.0001)
	assert.True(t, cfg.RedditEnabled)
	assert.True(t, cfg.DuckDuckGoEnabled)
	assert.Equal(t, ":8000", cfg.Addr())
	assert.ElementsMatch(t, []string{"XAI_API_KEY", "OPENAI_API_KEY"}, cfg.MissingKeys())
}

func TestLoadTrimsBaseURLs(t *testing.T) {
	t.Setenv("XAI_BASE_URL", " https://xai.example/v1/ ")
	t.Setenv("PUSHSHIFT_BASE_URL", "http://pushshift.local/")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://xai.example/v1", cfg.XAIBaseURL)
	assert.Equal(t, "http://pushshift.local", cfg.PushshiftBaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero completion timeout", "COMPLETION_TIMEOUT", "0s"},
		{"negative reddit timeout", "REDDIT_TIMEOUT", "-1s"},
		{"zero search size", "REDDIT_SEARCH_SIZE", "0"},
		{"port out of range", "HTTP_PORT", "70000"},
		{"missing registry file", "MODEL_REGISTRY_FILE", "/does/not/exist.yml"},
		{"unparseable duration", "DUCKDUCKGO_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestMissingKeysWhenConfigured(t *testing.T) {
	cfg := &Config{XAIAPIKey: "x", OpenAIAPIKey: "o"}
	assert.Empty(t, cfg.MissingKeys())
}
