package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MaxHistoryPerUser bounds every user's stored history.
	MaxHistoryPerUser = 20
	// DefaultContextLimit is the number of interactions rendered into a prompt.
	DefaultContextLimit = 5
)

// FirstConversation is returned for users without any stored history.
func FirstConversation(userID string) string {
	return fmt.Sprintf("This is your first conversation with %s.", userID)
}

// RenderContext formats the most recent interactions of a history,
// oldest first, under a header naming the user.
func RenderContext(userID string, history []Interaction, limit int) string {
	if len(history) == 0 {
		return FirstConversation(userID)
	}
	if limit <= 0 {
		limit = DefaultContextLimit
	}
	if limit > len(history) {
		limit = len(history)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Recent conversation history with %s:", userID)
	for _, it := range history[len(history)-limit:] {
		fmt.Fprintf(&sb, "\n[%s] User: %s | Bot: %s",
			it.Timestamp.Format(time.DateTime),
			oneLine(it.UserMessage),
			oneLine(it.BotResponse),
		)
	}
	return sb.String()
}

// TrimHistory keeps only the newest max entries. The result never aliases
// the dropped prefix.
func TrimHistory(history []Interaction, max int) []Interaction {
	if max <= 0 || len(history) <= max {
		return history
	}
	out := make([]Interaction, max)
	copy(out, history[len(history)-max:])
	return out
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
