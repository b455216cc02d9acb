package llm

import "github.com/sandevgo/roombot/internal/core"

func NewOpenRouter(apiKey, model string) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Service: "openrouter",
		BaseURL: "https://openrouter.ai/api/v1",
		APIKey:  apiKey,
		Model:   model,
		ExtraHeaders: map[string]string{
			"HTTP-Referer": core.BotRepositoryURL,
			"X-Title":      core.BotName,
		},
	})
}
