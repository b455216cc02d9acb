package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/roombot/pkg/log"
)

// RemoteMemoryConfig configures the optional hosted memory service.
type RemoteMemoryConfig struct {
	APIKey      string        `env:"REMOTE_MEMORY_API_KEY"`
	BaseURL     string        `env:"REMOTE_MEMORY_BASE_URL" envDefault:"https://api.mem0.ai"`
	SearchLimit int           `env:"REMOTE_MEMORY_SEARCH_LIMIT" envDefault:"3"`
	Timeout     time.Duration `env:"REMOTE_MEMORY_TIMEOUT" envDefault:"10s"`
}

func NewRemoteMemoryConfig(ctx context.Context) *RemoteMemoryConfig {
	c := &RemoteMemoryConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse remote memory config")
	}
	return c
}

func (c *RemoteMemoryConfig) Enabled() bool {
	return c.APIKey != ""
}
