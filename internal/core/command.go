package core

import "context"

type CmdRouter interface {
	Execute(ctx context.Context, userID, input string) (string, bool)
	// IsPrivate reports whether the reply to input belongs to the sender only.
	IsPrivate(input string) bool
	ListCommands() []Command
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, userID string, args []string) (string, error)
}

// PrivateCommand marks commands whose reply exposes the requester's data.
type PrivateCommand interface {
	Command
	Private() bool
}
