package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sandevgo/roombot/internal/core"
	"github.com/sandevgo/roombot/internal/service/memory"
)

type MemoryService interface {
	RecentContext(ctx context.Context, userID string, limit int) string
	Forget(ctx context.Context, userID string) error
}

type MemoryCommand struct {
	mem       MemoryService
	formatter *ResponseFormatter
}

func NewMemoryCommand(mem MemoryService) *MemoryCommand {
	return &MemoryCommand{
		mem:       mem,
		formatter: NewResponseFormatter(),
	}
}

func (c *MemoryCommand) Name() string {
	return "memory"
}

func (c *MemoryCommand) Description() string {
	return "Show what I remember about you"
}

func (c *MemoryCommand) Private() bool { return true }

func (c *MemoryCommand) Execute(ctx context.Context, userID string, args []string) (string, error) {
	limit := core.DefaultContextLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return c.formatter.Combine(
				c.formatter.Usage("/memory [count]"),
				c.formatter.Examples([]string{"/memory", "/memory 10"}),
			), nil
		}
		limit = min(n, core.MaxHistoryPerUser)
	}

	return c.formatter.Combine(
		c.formatter.Info("Memory"),
		c.mem.RecentContext(ctx, userID, limit),
	), nil
}

type ForgetCommand struct {
	mem       MemoryService
	formatter *ResponseFormatter
}

func NewForgetCommand(mem MemoryService) *ForgetCommand {
	return &ForgetCommand{
		mem:       mem,
		formatter: NewResponseFormatter(),
	}
}

func (c *ForgetCommand) Name() string {
	return "forget"
}

func (c *ForgetCommand) Description() string {
	return "Erase your long-term memories"
}

func (c *ForgetCommand) Private() bool { return true }

func (c *ForgetCommand) Execute(ctx context.Context, userID string, args []string) (string, error) {
	if err := c.mem.Forget(ctx, userID); err != nil {
		if errors.Is(err, memory.ErrRemoteMemoryDisabled) {
			return c.formatter.Combine(
				c.formatter.Info("Forget"),
				"Long-term memory is not enabled, so there is nothing to erase. Recent history expires on its own.",
			), nil
		}
		return "", err
	}
	return c.formatter.Success(fmt.Sprintf("Long-term memories of %s erased", userID)), nil
}
