// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/poiesic/qagen/core"
)

// Environment variables carrying provider credentials.
const (
	EnvAPIKey  = "AZURE_API_KEY"
	EnvAPIBase = "AZURE_API_BASE"
)

// Config holds configuration for AI service providers.
// It is assembled once at startup, before any generation call, and is
// immutable thereafter.
type Config struct {
	// APIKey is the provider credential. Read from AZURE_API_KEY.
	APIKey string

	// APIBase is the provider endpoint base URL. Read from AZURE_API_BASE.
	// Example: "https://my-resource.openai.azure.com"
	APIBase string

	// APIVersion is the Azure OpenAI API version query parameter.
	APIVersion string

	// LLMModel is the chat deployment used for question generation.
	// Example: "gpt-4o-mini"
	LLMModel string

	// EmbeddingModel is the embedding deployment used by the knowledge base.
	// Example: "GPTVectorization", "text-embedding-3-small"
	EmbeddingModel string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithAPIKey sets the provider credential.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithAPIBase sets the provider endpoint base URL.
func WithAPIBase(base string) ConfigOption {
	return func(c *Config) {
		c.APIBase = base
	}
}

// WithAPIVersion sets the Azure OpenAI API version.
func WithAPIVersion(version string) ConfigOption {
	return func(c *Config) {
		c.APIVersion = version
	}
}

// WithLLMModel sets the chat deployment identifier.
func WithLLMModel(model string) ConfigOption {
	return func(c *Config) {
		c.LLMModel = model
	}
}

// WithEmbeddingModel sets the embedding deployment identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// DefaultConfig returns a Config with the deployments the generation
// scripts have historically used. Credentials are left empty and must be
// supplied via options or FromEnv.
func DefaultConfig() *Config {
	return &Config{
		APIVersion:     "2024-02-01",
		LLMModel:       "gpt-4o-mini",
		EmbeddingModel: "GPTVectorization",
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options. This is the recommended way to create a Config.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithAPIKey(key),
//	    ai.WithAPIBase("https://my-resource.openai.azure.com"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// FromEnv creates a Config from the process environment, applying any
// additional options afterwards. Missing credentials fail fast with an
// error matching core.ErrMissingCredentials rather than proceeding with
// empty values.
func FromEnv(opts ...ConfigOption) (*Config, error) {
	key := os.Getenv(EnvAPIKey)
	if key == "" {
		return nil, fmt.Errorf("%w: %s is not set", core.ErrMissingCredentials, EnvAPIKey)
	}

	base := os.Getenv(EnvAPIBase)
	if base == "" {
		return nil, fmt.Errorf("%w: %s is not set", core.ErrMissingCredentials, EnvAPIBase)
	}

	cfg := NewConfig(append([]ConfigOption{WithAPIKey(key), WithAPIBase(base)}, opts...)...)
	return cfg, nil
}

// Normalize ensures the configuration is in a canonical form.
// Trailing slashes on the endpoint confuse the Azure path construction,
// so they are stripped.
func (c *Config) Normalize() {
	c.APIBase = strings.TrimSuffix(strings.TrimSpace(c.APIBase), "/")
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.APIKey == "" {
		return fmt.Errorf("ai config: %w: APIKey is required", core.ErrMissingCredentials)
	}
	if c.APIBase == "" {
		return fmt.Errorf("ai config: %w: APIBase is required", core.ErrMissingCredentials)
	}
	if c.APIVersion == "" {
		return errors.New("ai config: APIVersion is required")
	}
	if c.LLMModel == "" {
		return errors.New("ai config: LLMModel is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	return nil
}
