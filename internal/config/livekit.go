package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/roombot/pkg/log"
)

type LiveKitConfig struct {
	URL       string `env:"LIVEKIT_URL,required,notEmpty"`
	APIKey    string `env:"LIVEKIT_API_KEY,required,notEmpty"`
	APISecret string `env:"LIVEKIT_API_SECRET,required,notEmpty"`

	Room     string `env:"LIVEKIT_ROOM" envDefault:"chat-room"`
	Identity string `env:"LIVEKIT_IDENTITY" envDefault:"gemini-agent"`

	TokenTTL          time.Duration `env:"LIVEKIT_TOKEN_TTL" envDefault:"1h"`
	HeartbeatInterval time.Duration `env:"LIVEKIT_HEARTBEAT_INTERVAL" envDefault:"10s"`
	WelcomeDelay      time.Duration `env:"LIVEKIT_WELCOME_DELAY" envDefault:"2s"`
	JoinWelcomeDelay  time.Duration `env:"LIVEKIT_JOIN_WELCOME_DELAY" envDefault:"1s"`
}

func LoadLiveKitConfig() (*LiveKitConfig, error) {
	c := &LiveKitConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func NewLiveKitConfig(ctx context.Context) *LiveKitConfig {
	c, err := LoadLiveKitConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LiveKit config")
	}
	return c
}
