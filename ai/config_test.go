package ai

import (
	"testing"

	"github.com/poiesic/qagen/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
	assert.Equal(t, "GPTVectorization", cfg.EmbeddingModel)
	assert.Equal(t, "2024-02-01", cfg.APIVersion)
	assert.Empty(t, cfg.APIKey, "credentials must never have defaults")
	assert.Empty(t, cfg.APIBase, "credentials must never have defaults")
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
	})

	t.Run("with credentials", func(t *testing.T) {
		cfg := NewConfig(
			WithAPIKey("secret"),
			WithAPIBase("https://example.openai.azure.com"),
		)

		assert.Equal(t, "secret", cfg.APIKey)
		assert.Equal(t, "https://example.openai.azure.com", cfg.APIBase)
	})

	t.Run("with custom models", func(t *testing.T) {
		cfg := NewConfig(
			WithLLMModel("gpt-4o"),
			WithEmbeddingModel("text-embedding-3-small"),
			WithAPIVersion("2024-06-01"),
		)

		assert.Equal(t, "gpt-4o", cfg.LLMModel)
		assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
		assert.Equal(t, "2024-06-01", cfg.APIVersion)
	})
}

func TestFromEnv(t *testing.T) {
	t.Run("missing key fails fast", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "")
		t.Setenv(EnvAPIBase, "https://example.openai.azure.com")

		_, err := FromEnv()
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrMissingCredentials)
		assert.Contains(t, err.Error(), EnvAPIKey)
	})

	t.Run("missing base fails fast", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "secret")
		t.Setenv(EnvAPIBase, "")

		_, err := FromEnv()
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrMissingCredentials)
		assert.Contains(t, err.Error(), EnvAPIBase)
	})

	t.Run("reads credentials and applies options", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "secret")
		t.Setenv(EnvAPIBase, "https://example.openai.azure.com")

		cfg, err := FromEnv(WithLLMModel("gpt-4o"))
		require.NoError(t, err)
		assert.Equal(t, "secret", cfg.APIKey)
		assert.Equal(t, "https://example.openai.azure.com", cfg.APIBase)
		assert.Equal(t, "gpt-4o", cfg.LLMModel)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return NewConfig(
			WithAPIKey("secret"),
			WithAPIBase("https://example.openai.azure.com"),
		)
	}

	t.Run("valid config", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("normalizes trailing slash", func(t *testing.T) {
		cfg := valid()
		cfg.APIBase = "https://example.openai.azure.com/"
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "https://example.openai.azure.com", cfg.APIBase)
	})

	t.Run("missing api key", func(t *testing.T) {
		cfg := valid()
		cfg.APIKey = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrMissingCredentials)
	})

	t.Run("missing llm model", func(t *testing.T) {
		cfg := valid()
		cfg.LLMModel = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("missing embedding model", func(t *testing.T) {
		cfg := valid()
		cfg.EmbeddingModel = ""
		require.Error(t, cfg.Validate())
	})
}

func TestValidQuestionType(t *testing.T) {
	for _, qt := range QuestionTypes {
		assert.True(t, ValidQuestionType(qt), qt)
	}
	assert.False(t, ValidQuestionType("rhetorical"))
	assert.False(t, ValidQuestionType(""))
}
