package config

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/roombot/pkg/log"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
	ProviderCustom     = "custom"
)

type ProviderConfig struct {
	Provider string `env:"LLM_PROVIDER" envDefault:"gemini"`
	Model    string `env:"LLM_MODEL" envDefault:"gemini-2.0-flash-exp"`

	GeminiAPIKey        string `env:"GEMINI_API_KEY"`
	OpenAIAPIKey        string `env:"OPENAI_API_KEY"`
	OpenRouterAPIKey    string `env:"OPENROUTER_API_KEY"`
	OllamaBaseURL       string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434/v1"`
	OllamaAPIKey        string `env:"OLLAMA_API_KEY"`
	CustomOpenAIBaseURL string `env:"CUSTOM_OPENAI_BASE_URL"`
	CustomOpenAIAPIKey  string `env:"CUSTOM_OPENAI_API_KEY"`
}

func LoadProviderConfig() (*ProviderConfig, error) {
	c := &ProviderConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func NewProviderConfig(ctx context.Context) *ProviderConfig {
	c, err := LoadProviderConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse provider config")
	}
	return c
}

// Validate checks that the selected provider has its credentials.
func (c *ProviderConfig) Validate() error {
	missing := ""
	switch c.Provider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			missing = "GEMINI_API_KEY"
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			missing = "OPENAI_API_KEY"
		}
	case ProviderOpenRouter:
		if c.OpenRouterAPIKey == "" {
			missing = "OPENROUTER_API_KEY"
		}
	case ProviderOllama:
		if c.OllamaBaseURL == "" {
			missing = "OLLAMA_BASE_URL"
		}
	case ProviderCustom:
		if c.CustomOpenAIBaseURL == "" {
			missing = "CUSTOM_OPENAI_BASE_URL"
		}
	default:
		return fmt.Errorf("unknown llm provider: %s", c.Provider)
	}
	if missing != "" {
		return fmt.Errorf("%s is required for llm provider %q", missing, c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("LLM_MODEL must not be empty")
	}
	return nil
}
