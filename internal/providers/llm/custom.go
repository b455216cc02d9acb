package llm

func NewCustomOpenAI(baseURL, apiKey, model string) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Service: "custom",
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
	})
}
