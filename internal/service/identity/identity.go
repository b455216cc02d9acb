// Package identity decides who sent a room message and whether that sender
// is another bot.
package identity

import (
	"strings"

	"github.com/sandevgo/roombot/internal/core"
)

// IsAgent reports whether identity contains any of keywords, ignoring case.
func IsAgent(identity string, keywords []string) bool {
	lower := strings.ToLower(identity)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Resolve returns the sender identity carried by a packet. Without one it
// guesses from the remote participants: a lone participant is the sender;
// otherwise the first non-agent participant is. Returns core.UnknownIdentity
// when nothing fits.
func Resolve(sender string, participants []string, keywords []string) string {
	if sender = strings.TrimSpace(sender); sender != "" {
		return sender
	}

	if len(participants) == 1 && participants[0] != "" {
		return participants[0]
	}

	for _, p := range participants {
		if p != "" && !IsAgent(p, keywords) {
			return p
		}
	}
	return core.UnknownIdentity
}
