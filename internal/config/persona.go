package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const userPlaceholder = "{user}"

// Persona holds the bot's user-facing texts. Templates may contain {user}.
type Persona struct {
	Name          string   `yaml:"name"`
	Instructions  string   `yaml:"instructions"`
	Welcome       string   `yaml:"welcome"`
	JoinWelcome   string   `yaml:"join_welcome"`
	Fallback      string   `yaml:"fallback"`
	AgentKeywords []string `yaml:"agent_keywords"`
}

func DefaultPersona() *Persona {
	return &Persona{
		Name: "Gemini",
		Instructions: "You are a helpful AI assistant in a chat room.\n" +
			"Please provide a helpful, concise, and engaging response (max 2-3 sentences).\n" +
			"Keep it conversational and friendly.",
		Welcome:       "🤖 AI Assistant powered by Gemini has joined! Send me a message and I'll respond.",
		JoinWelcome:   "👋 Welcome {user}! I'm an AI assistant powered by Gemini. Send me a message to chat!",
		Fallback:      "Hi {user}! I'm having some technical difficulties right now, but I'm here and ready to help. Please try asking me something else!",
		AgentKeywords: []string{"agent", "bot", "gemini", "ai"},
	}
}

// LoadPersona reads a YAML persona file. Missing files and empty fields
// fall back to DefaultPersona.
func LoadPersona(path string) (*Persona, error) {
	p := DefaultPersona()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return nil, fmt.Errorf("failed to read persona: %w", err)
	}

	var loaded Persona
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse persona: %w", err)
	}

	if loaded.Name != "" {
		p.Name = loaded.Name
	}
	if loaded.Instructions != "" {
		p.Instructions = loaded.Instructions
	}
	if loaded.Welcome != "" {
		p.Welcome = loaded.Welcome
	}
	if loaded.JoinWelcome != "" {
		p.JoinWelcome = loaded.JoinWelcome
	}
	if loaded.Fallback != "" {
		p.Fallback = loaded.Fallback
	}
	if loaded.AgentKeywords != nil {
		p.AgentKeywords = loaded.AgentKeywords
	}
	return p, nil
}

func (p *Persona) JoinWelcomeFor(user string) string {
	return strings.ReplaceAll(p.JoinWelcome, userPlaceholder, user)
}

func (p *Persona) FallbackFor(user string) string {
	return strings.ReplaceAll(p.Fallback, userPlaceholder, user)
}

func (p *Persona) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}
