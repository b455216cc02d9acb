package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandevgo/roombot/internal/config"
)

type providerKey struct {
	env         string
	title       string
	placeholder string
	optional    bool
}

var providerKeys = map[string]providerKey{
	config.ProviderGemini:     {env: "GEMINI_API_KEY", title: "Gemini API key", placeholder: "AIza..."},
	config.ProviderOpenAI:     {env: "OPENAI_API_KEY", title: "OpenAI API key", placeholder: "sk-..."},
	config.ProviderOpenRouter: {env: "OPENROUTER_API_KEY", title: "OpenRouter API key", placeholder: "sk-or-v1-..."},
	config.ProviderOllama:     {env: "OLLAMA_API_KEY", title: "Ollama API key", optional: true},
	config.ProviderCustom:     {env: "CUSTOM_OPENAI_API_KEY", title: "API key of the endpoint", optional: true},
}

// NewAPIKeyStep asks for the key of whichever provider was chosen.
func NewAPIKeyStep() Step {
	s := newInputStep("", "", "", true)
	s.when = func(state *InstallState) bool {
		_, ok := providerKeys[state.EnvVars["LLM_PROVIDER"]]
		return ok
	}
	s.prepare = func(s *InputStep, state *InstallState) {
		k := providerKeys[state.EnvVars["LLM_PROVIDER"]]
		s.key = k.env
		s.title = k.title
		s.optional = k.optional
		s.input.Placeholder = k.placeholder
		if k.optional {
			s.input.EchoMode = textinput.EchoNormal
		}
	}
	return s
}
