package identity

import (
	"testing"

	"github.com/sandevgo/roombot/internal/core"
	"github.com/stretchr/testify/assert"
)

var keywords = []string{"agent", "bot", "gemini", "ai"}

func TestIsAgent(t *testing.T) {
	tests := []struct {
		identity string
		want     bool
	}{
		{"gemini-agent", true},
		{"HelperBot", true},
		{"GEMINI", true},
		{"openai-relay", true},
		{"alice", false},
		{"bob", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.identity, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAgent(tt.identity, keywords))
		})
	}

	assert.False(t, IsAgent("gemini-agent", nil))
	assert.False(t, IsAgent("alice", []string{""}))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name         string
		sender       string
		participants []string
		want         string
	}{
		{name: "sender on packet", sender: "alice", participants: []string{"bob"}, want: "alice"},
		{name: "blank sender", sender: "  ", participants: []string{"bob"}, want: "bob"},
		{name: "single participant", participants: []string{"helper-bot"}, want: "helper-bot"},
		{name: "first non-agent", participants: []string{"gemini-agent", "carol", "dave"}, want: "carol"},
		{name: "only agents", participants: []string{"gemini-agent", "other-bot"}, want: core.UnknownIdentity},
		{name: "nobody", want: core.UnknownIdentity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.sender, tt.participants, keywords))
		})
	}
}
