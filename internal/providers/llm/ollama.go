package llm

// NewOllama uses Ollama's OpenAI-compatible endpoint, e.g.
// http://localhost:11434/v1. The API key is optional.
func NewOllama(baseURL, apiKey, model string) *OpenAICompatible {
	if apiKey == "" {
		apiKey = "ollama"
	}
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Service: "ollama",
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
	})
}
