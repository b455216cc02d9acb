package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/roombot/internal/config"
	"github.com/sandevgo/roombot/internal/core"
	"github.com/sandevgo/roombot/internal/observability"
	"github.com/sandevgo/roombot/internal/providers/llm"
	"github.com/sandevgo/roombot/internal/providers/remotemem"
	"github.com/sandevgo/roombot/internal/service/agent"
	"github.com/sandevgo/roombot/internal/service/command"
	"github.com/sandevgo/roombot/internal/service/memory"
	"github.com/sandevgo/roombot/internal/storage"
	"github.com/sandevgo/roombot/internal/transport/cli"
	"github.com/sandevgo/roombot/internal/transport/livekit"
	"github.com/sandevgo/roombot/internal/transport/telegram"
	"github.com/sandevgo/roombot/pkg/log"
	"github.com/sandevgo/roombot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	err := initEnv(ctx, config.GetRuntimePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	providerCfg := config.NewProviderConfig(ctx)
	remoteCfg := config.NewRemoteMemoryConfig(ctx)

	persona, err := config.LoadPersona(appCfg.GetPersonaPath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load persona")
	}

	metrics := observability.NewMetrics()
	if appCfg.MetricsAddr != "" {
		services = append(services, observability.NewServer(appCfg.MetricsAddr, metrics))
	}

	// 2. Storage
	store, err := storage.NewInteractionStore(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize memory store")
	}
	services = append(services, srv.NewCleanup(store.Close))

	// 3. AI Provider
	aiProvider, err := llm.NewProvider(ctx, providerCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}
	if closer, ok := aiProvider.(interface{ Close() error }); ok {
		services = append(services, srv.NewCleanup(closer.Close))
	}

	// 4. Memory
	var remote core.RemoteMemory
	if remoteCfg.Enabled() {
		logger.Info().Str("url", remoteCfg.BaseURL).Msg("remote memory enabled")
		remote = remotemem.NewClient(remoteCfg)
	}

	mem := memory.NewMemory(
		store,
		remote,
		memory.NewSysPrompt(appCfg, persona.Instructions),
		appCfg.MemoryContextLimit,
		remoteCfg.SearchLimit,
	)

	// 5. Commands & Agent
	router := command.New(command.NewCommands(providerCfg.Provider, providerCfg.Model, mem))

	ag := agent.NewAgent(
		aiProvider,
		mem,
		router,
		persona,
		appCfg.CompletionTimeout,
		metrics,
	)

	// 6. Transports
	transports, err := initTransports(ctx, appCfg, persona, ag, metrics)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	if len(transports) == 0 {
		logger.Fatal().Msg("no transport enabled, set ENABLE_LIVEKIT, ENABLE_TELEGRAM or ENABLE_CLI")
	}
	services = append(services, transports...)

	return services
}

func initTransports(
	ctx context.Context,
	cfg *config.AppConfig,
	persona *config.Persona,
	handler core.MessageHandler,
	metrics *observability.Metrics,
) ([]srv.Service, error) {
	var services []srv.Service

	// LiveKit Room
	if cfg.EnableLiveKit {
		lkCfg := config.NewLiveKitConfig(ctx)
		dispatcher := livekit.NewDispatcher(handler, persona, lkCfg, metrics)
		services = append(services, livekit.NewRoom(lkCfg, dispatcher))
	}

	// Telegram Bot
	if cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, handler)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	// Local terminal chat
	if cfg.EnableCLI {
		rl, err := cli.NewReadLine(handler, cfg)
		if err != nil {
			return nil, err
		}
		services = append(services, rl)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
