package command

import (
	"context"
	"sort"
	"strings"

	"github.com/sandevgo/roombot/internal/core"
)

type Router struct {
	commands  map[string]core.Command
	formatter *ResponseFormatter
}

// New creates a router serving commands plus the built-in /help.
func New(commands []core.Command) *Router {
	c := &Router{
		commands:  make(map[string]core.Command),
		formatter: NewResponseFormatter(),
	}

	for _, cmd := range commands {
		c.Register(cmd)
	}
	c.Register(NewHelpCommand(c))
	return c
}

func (c *Router) Register(cmd core.Command) {
	c.commands[strings.ToLower(cmd.Name())] = cmd
}

// Execute runs input when it is a slash command. ok is false for ordinary
// chat messages.
func (c *Router) Execute(ctx context.Context, userID, input string) (string, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", false
	}

	name, args := parse(input)
	cmd, ok := c.commands[name]
	if !ok {
		return c.formatter.Unknown(name), true
	}

	result, err := cmd.Execute(ctx, userID, args)
	if err != nil {
		return c.formatter.Error(name, err), true
	}
	return result, true
}

// IsPrivate reports whether input names a command whose reply should reach
// the requester only.
func (c *Router) IsPrivate(input string) bool {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return false
	}
	name, _ := parse(input)
	cmd, ok := c.commands[name].(core.PrivateCommand)
	return ok && cmd.Private()
}

func parse(input string) (string, []string) {
	parts := strings.Fields(input)
	return strings.ToLower(strings.TrimPrefix(parts[0], "/")), parts[1:]
}

// ListCommands returns the registered commands sorted by name.
func (c *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}
