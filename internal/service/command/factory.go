package command

import (
	"github.com/sandevgo/roombot/internal/core"
)

func NewCommands(
	provider, model string,
	mem MemoryService,
) []core.Command {
	return []core.Command{
		NewModelCommand(provider, model),
		NewMemoryCommand(mem),
		NewForgetCommand(mem),
	}
}
