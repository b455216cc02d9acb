package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/roombot/pkg/log"
)

const (
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type AppConfig struct {
	RuntimePath string `env:"ROOMBOT_RUNTIME_PATH" envDefault:".roombot"`

	// Transport Flags
	EnableLiveKit  bool   `env:"ENABLE_LIVEKIT" envDefault:"true"`
	EnableCLI      bool   `env:"ENABLE_CLI" envDefault:"false"`
	EnableTelegram bool   `env:"ENABLE_TELEGRAM" envDefault:"false"`
	CLIUser        string `env:"CLI_USER" envDefault:"local-user"`

	// Memory
	MemoryBackend      string `env:"MEMORY_BACKEND" envDefault:"json"`
	MemoryContextLimit int    `env:"MEMORY_CONTEXT_LIMIT" envDefault:"5"`
	DatabaseURL        string `env:"DATABASE_URL"`

	CompletionTimeout time.Duration `env:"COMPLETION_TIMEOUT" envDefault:"30s"`
	MetricsAddr       string        `env:"METRICS_ADDR"`
}

func LoadAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)

	switch c.MemoryBackend {
	case BackendJSON, BackendSQLite:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for memory backend %q", c.MemoryBackend)
		}
	default:
		return nil, fmt.Errorf("unknown memory backend: %s", c.MemoryBackend)
	}
	if c.MemoryContextLimit <= 0 {
		return nil, fmt.Errorf("MEMORY_CONTEXT_LIMIT must be positive, got %d", c.MemoryContextLimit)
	}
	return c, nil
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := LoadAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetSystemPath() string {
	return filepath.Join(c.RuntimePath, "SYSTEM.md")
}

func (c AppConfig) GetIdentityPath() string {
	return filepath.Join(c.RuntimePath, "IDENTITY.md")
}

func (c AppConfig) GetPersonaPath() string {
	return filepath.Join(c.RuntimePath, "persona.yaml")
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}

func (c AppConfig) GetMemoryFilePath() string {
	return filepath.Join(c.RuntimePath, "memory.json")
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "roombot.db")
}
