package storage

import (
	"context"
	"testing"

	"github.com/sandevgo/roombot/internal/config"
	"github.com/sandevgo/roombot/internal/storage/jsonfile"
	"github.com/sandevgo/roombot/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInteractionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("json", func(t *testing.T) {
		cfg := &config.AppConfig{RuntimePath: t.TempDir(), MemoryBackend: config.BackendJSON}
		store, err := NewInteractionStore(ctx, cfg)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &jsonfile.Store{}, store)
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := &config.AppConfig{RuntimePath: t.TempDir(), MemoryBackend: config.BackendSQLite}
		store, err := NewInteractionStore(ctx, cfg)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &sqlite.Interactions{}, store)
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := &config.AppConfig{RuntimePath: t.TempDir(), MemoryBackend: "redis"}
		_, err := NewInteractionStore(ctx, cfg)
		assert.Error(t, err)
	})
}
