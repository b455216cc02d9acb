package core

import "context"

// InteractionStore keeps a bounded per-user history of exchanges.
// Implementations log and swallow persistence failures.
type InteractionStore interface {
	GetContext(ctx context.Context, userID string, limit int) string
	SaveInteraction(ctx context.Context, userID, userMessage, botResponse string)
	History(ctx context.Context, userID string) []Interaction
	Close() error
}
