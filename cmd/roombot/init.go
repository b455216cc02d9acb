package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	envparse "github.com/caarlos0/env/v11"
	"github.com/sandevgo/roombot/internal/config"
	"github.com/sandevgo/roombot/internal/service/installer"
	"github.com/sandevgo/roombot/pkg/env"
	"github.com/sandevgo/roombot/pkg/log"
	"github.com/spf13/cobra"
)

var (
	initForce          bool
	initNonInteractive bool
)

var initCmd = &cobra.Command{
	Use:          "init",
	Aliases:      []string{"install"},
	Short:        "Set up the runtime directory with a .env and persona",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()
		logger := log.FromCtx(ctx)

		runtimePath := config.GetRuntimePath()
		if err := os.MkdirAll(runtimePath, 0o755); err != nil {
			return fmt.Errorf("failed to create runtime directory: %w", err)
		}
		cfg := &config.AppConfig{RuntimePath: runtimePath}

		// Refuse before asking anything.
		if !initForce {
			if err := checkMissing(cfg.GetEnvPath()); err != nil {
				return err
			}
		}

		var envContent string
		var err error
		if initNonInteractive {
			envContent, err = envTemplate()
		} else {
			var answers map[string]string
			if answers, err = installer.RunWizard(); err != nil {
				return err
			}
			envContent, err = envFromAnswers(answers)
		}
		if err != nil {
			return err
		}
		if err := writeIfMissing(cfg.GetEnvPath(), []byte(envContent), 0o600, initForce); err != nil {
			return err
		}
		logger.Info().Str("path", cfg.GetEnvPath()).Msg("wrote .env")

		persona, err := config.DefaultPersona().Marshal()
		if err != nil {
			return fmt.Errorf("failed to encode persona: %w", err)
		}
		if err := writeIfMissing(cfg.GetPersonaPath(), persona, 0o644, initForce); err != nil {
			return err
		}
		logger.Info().Str("path", cfg.GetPersonaPath()).Msg("wrote persona")

		if initNonInteractive {
			logger.Info().Msgf("fill in the credentials in %s, then run 'roombot start'", cfg.GetEnvPath())
		} else {
			logger.Info().Msg("setup complete, run 'roombot start'")
		}
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing files")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "write a template with placeholders instead of asking")
	rootCmd.AddCommand(initCmd)
}

// envTemplate renders every config section with its defaults and
// placeholders for the credentials.
func envTemplate() (string, error) {
	sections := []envSection{
		{"Application", &config.AppConfig{
			EnableLiveKit:      true,
			CLIUser:            "local-user",
			MemoryBackend:      config.BackendJSON,
			MemoryContextLimit: 5,
		}},
		{"LiveKit", &config.LiveKitConfig{
			URL:       "wss://your-project.livekit.cloud",
			APIKey:    "change-me",
			APISecret: "change-me",
			Room:      "chat-room",
			Identity:  "gemini-agent",
		}},
		{"LLM", &config.ProviderConfig{
			Provider:     config.ProviderGemini,
			Model:        "gemini-2.0-flash-exp",
			GeminiAPIKey: "change-me",
		}},
	}

	return renderSections(sections)
}

type envSection struct {
	title string
	cfg   any
}

// envFromAnswers fills the config sections from the wizard answers, applying
// the defaults of every field that was not asked about.
func envFromAnswers(answers map[string]string) (string, error) {
	app := &config.AppConfig{}
	sections := []envSection{
		{"Application", app},
		{"LiveKit", &config.LiveKitConfig{}},
		{"LLM", &config.ProviderConfig{}},
		{"Telegram", &config.TelegramConfig{}},
	}
	opts := envparse.Options{Environment: answers}

	var kept []envSection
	for _, s := range sections {
		switch s.title {
		case "LiveKit":
			if answers["ENABLE_LIVEKIT"] != "true" {
				continue
			}
		case "Telegram":
			if answers["ENABLE_TELEGRAM"] != "true" {
				continue
			}
		}
		if err := envparse.ParseWithOptions(s.cfg, opts); err != nil {
			return "", fmt.Errorf("invalid %s settings: %w", s.title, err)
		}
		kept = append(kept, s)
	}
	// The .env lives inside the runtime directory.
	app.RuntimePath = ""

	return renderSections(kept)
}

func renderSections(sections []envSection) (string, error) {
	var sb strings.Builder
	for _, s := range sections {
		body, err := env.MarshalEnv(s.cfg)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "# %s\n%s\n", s.title, body)
	}
	return sb.String(), nil
}

func writeIfMissing(path string, data []byte, perm os.FileMode, force bool) error {
	if !force {
		if err := checkMissing(path); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, perm)
}

func checkMissing(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
