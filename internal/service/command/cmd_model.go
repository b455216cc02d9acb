package command

import (
	"context"
)

type ModelCommand struct {
	provider  string
	model     string
	formatter *ResponseFormatter
}

func NewModelCommand(provider, model string) *ModelCommand {
	return &ModelCommand{
		provider:  provider,
		model:     model,
		formatter: NewResponseFormatter(),
	}
}

func (c *ModelCommand) Name() string {
	return "model"
}

func (c *ModelCommand) Description() string {
	return "Show the completion model in use"
}

func (c *ModelCommand) Execute(ctx context.Context, userID string, args []string) (string, error) {
	return c.formatter.Combine(
		c.formatter.Info("Current Model"),
		c.formatter.Label("Provider", c.provider),
		c.formatter.Label("Model", c.model),
	), nil
}
