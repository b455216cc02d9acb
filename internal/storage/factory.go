// Package storage selects the durable interaction store backend.
package storage

import (
	"context"
	"fmt"

	"github.com/sandevgo/roombot/internal/config"
	"github.com/sandevgo/roombot/internal/core"
	"github.com/sandevgo/roombot/internal/storage/jsonfile"
	"github.com/sandevgo/roombot/internal/storage/postgres"
	"github.com/sandevgo/roombot/internal/storage/sqlite"
	"github.com/sandevgo/roombot/pkg/log"
)

func NewInteractionStore(ctx context.Context, cfg *config.AppConfig) (core.InteractionStore, error) {
	logger := log.FromCtx(ctx).With().Str("backend", cfg.MemoryBackend).Logger()

	switch cfg.MemoryBackend {
	case config.BackendJSON, "":
		logger.Info().Str("path", cfg.GetMemoryFilePath()).Msg("using json memory store")
		return jsonfile.New(ctx, cfg.GetMemoryFilePath()), nil
	case config.BackendSQLite:
		logger.Info().Str("path", cfg.GetDatabasePath()).Msg("using sqlite memory store")
		store, err := sqlite.Open(ctx, cfg.GetDatabasePath())
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.BackendPostgres:
		logger.Info().Msg("using postgres memory store")
		store, err := postgres.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown memory backend: %q", cfg.MemoryBackend)
	}
}
