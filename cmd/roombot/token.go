package main

import (
	"fmt"

	"github.com/sandevgo/roombot/internal/config"
	"github.com/sandevgo/roombot/internal/transport/livekit"
	"github.com/spf13/cobra"
)

var (
	tokenIdentity string
	tokenRoom     string
)

var tokenCmd = &cobra.Command{
	Use:          "token",
	Short:        "Print a room join token",
	Long:         `Signs a LiveKit join token with the configured API key, e.g. for a test client.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}

		cfg, err := config.LoadLiveKitConfig()
		if err != nil {
			return fmt.Errorf("failed to load LiveKit config: %w", err)
		}
		if tokenIdentity != "" {
			cfg.Identity = tokenIdentity
		}
		if tokenRoom != "" {
			cfg.Room = tokenRoom
		}

		token, err := livekit.NewJoinToken(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenIdentity, "identity", "i", "", "participant identity (default LIVEKIT_IDENTITY)")
	tokenCmd.Flags().StringVarP(&tokenRoom, "room", "r", "", "room name (default LIVEKIT_ROOM)")
	rootCmd.AddCommand(tokenCmd)
}
