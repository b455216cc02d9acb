package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/sandevgo/roombot/internal/config"
	"github.com/sandevgo/roombot/internal/core"
	"github.com/sandevgo/roombot/pkg/conv"
	"github.com/sandevgo/roombot/pkg/log"
)

// ReadLine is a local terminal chat against the agent, useful for trying
// prompts and memory without joining a room.
type ReadLine struct {
	cfg     *config.AppConfig
	handler core.MessageHandler
	rl      *readline.Instance
}

func NewReadLine(handler core.MessageHandler, cfg *config.AppConfig) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.CLIUser + " >>> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:     cfg,
		handler: handler,
		rl:      rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Str("user", r.cfg.CLIUser).Msg("ReadLine chat started. Type 'exit' to quit.")

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}

		if reply, ok := respond(ctx, r.handler, r.cfg.CLIUser, line); ok {
			fmt.Fprintf(r.rl.Stdout(), "%s\n", reply)
		}
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

func respond(ctx context.Context, handler core.MessageHandler, user, line string) (string, bool) {
	if line == "" {
		return "", false
	}

	reply, ok := handler.Handle(ctx, core.InboundMessage{
		ID:             uuid.NewString(),
		SenderIdentity: user,
		Payload:        []byte(line),
		Topic:          "cli",
		ReceivedAt:     time.Now().UTC(),
	})
	if !ok {
		return "", false
	}
	return conv.MarkdownToPlainText(reply), true
}
