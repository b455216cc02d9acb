package core

import "context"

type Completer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RemoteMemory is a hosted semantic memory service.
type RemoteMemory interface {
	Search(ctx context.Context, query, userID string, limit int) ([]MemoryRecord, error)
	Add(ctx context.Context, messages []Message, userID string, metadata map[string]any) error
	DeleteAll(ctx context.Context, userID string) error
}

// MessageHandler turns an inbound message into a reply. ok is false when
// nothing should be sent back.
type MessageHandler interface {
	Handle(ctx context.Context, msg InboundMessage) (reply string, ok bool)
}
