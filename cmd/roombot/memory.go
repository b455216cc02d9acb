package main

import (
	"fmt"

	"github.com/sandevgo/roombot/internal/config"
	"github.com/sandevgo/roombot/internal/core"
	"github.com/sandevgo/roombot/internal/service/ui"
	"github.com/sandevgo/roombot/internal/storage"
	"github.com/sandevgo/roombot/pkg/log"
	"github.com/spf13/cobra"
)

var memoryLimit int

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Inspect stored conversation memory",
}

var memoryShowCmd = &cobra.Command{
	Use:          "show <user>",
	Short:        "Show the stored history of a user",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := log.NewContextWithWriter(cmd.Context(), cmd.ErrOrStderr())
		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}

		cfg, err := config.LoadAppConfig()
		if err != nil {
			return err
		}

		store, err := storage.NewInteractionStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		userID := args[0]
		history := store.History(ctx, userID)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.TitleStyle.Render(fmt.Sprintf("%s (%d/%d stored)", userID, len(history), core.MaxHistoryPerUser)))
		fmt.Fprintln(out, store.GetContext(ctx, userID, memoryLimit))
		return nil
	},
}

func init() {
	memoryShowCmd.Flags().IntVarP(&memoryLimit, "limit", "n", core.MaxHistoryPerUser, "number of interactions to show")
	memoryCmd.AddCommand(memoryShowCmd)
	rootCmd.AddCommand(memoryCmd)
}
