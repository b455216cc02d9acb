package installer

import (
	"github.com/sandevgo/roombot/internal/config"
)

var defaultModels = map[string]string{
	config.ProviderGemini:     "gemini-2.0-flash-exp",
	config.ProviderOpenAI:     "gpt-4o-mini",
	config.ProviderOpenRouter: "google/gemini-2.0-flash-exp:free",
	config.ProviderOllama:     "llama3.2",
}

func NewProviderStep() Step {
	return &SelectStep{
		title: "Select the language model provider:",
		key:   "LLM_PROVIDER",
		options: []option{
			{label: "Gemini", value: config.ProviderGemini},
			{label: "OpenAI", value: config.ProviderOpenAI},
			{label: "OpenRouter", value: config.ProviderOpenRouter},
			{label: "Ollama", value: config.ProviderOllama},
			{label: "Custom OpenAI-compatible endpoint", value: config.ProviderCustom},
		},
	}
}

func providerIs(name string) func(*InstallState) bool {
	return func(state *InstallState) bool { return state.EnvVars["LLM_PROVIDER"] == name }
}

func NewOllamaURLStep() Step {
	s := newInputStep("OLLAMA_BASE_URL", "Ollama base URL", "http://localhost:11434/v1", false)
	s.fallback = "http://localhost:11434/v1"
	s.validate = validateURL("http", "https")
	s.when = providerIs(config.ProviderOllama)
	return s
}

func NewCustomURLStep() Step {
	s := newInputStep("CUSTOM_OPENAI_BASE_URL", "base URL of the OpenAI-compatible API", "https://llm.example.com/v1", false)
	s.validate = validateURL("http", "https")
	s.when = providerIs(config.ProviderCustom)
	return s
}

// NewModelStep suggests the usual model of the chosen provider.
func NewModelStep() Step {
	s := newInputStep("LLM_MODEL", "model name", "", false)
	s.prepare = func(s *InputStep, state *InstallState) {
		s.fallback = defaultModels[state.EnvVars["LLM_PROVIDER"]]
		s.input.Placeholder = s.fallback
	}
	return s
}
