package llm

func NewOpenAI(apiKey, model string) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Service: "openai",
		BaseURL: "https://api.openai.com/v1",
		APIKey:  apiKey,
		Model:   model,
	})
}
