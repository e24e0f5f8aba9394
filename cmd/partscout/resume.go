package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func resumeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resume <session-id>",
		Short: "Resume a stopped session",
		Long: `Continue a stopped or failed session from where it left off. Rows that
were already resolved are skipped; the same manifest file must be supplied
so row positions line up.`,
		Args: cobra.ExactArgs(1),
		RunE: runResume,
	}

	// Flags
	cmd.Flags().StringP("input", "i", "", "input manifest file (CSV)")
	cmd.Flags().StringP("output", "o", "", "export file (.csv or .xlsx, default: timestamped CSV)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runResume(cmd *cobra.Command, args []string) error {
	sessionID := args[0]
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")

	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	eng, bus, err := newEngine(store)
	if err != nil {
		return err
	}

	if _, err := loadInput(eng, input); err != nil {
		return err
	}

	events, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	already, err := eng.Resume(ctx, sessionID)
	if err != nil {
		return err
	}
	slog.Info("▶️  Resuming session",
		"session_id", sessionID,
		"already_processed", already)

	watch := watchEvents(events, eng.Status().RangeSize, already)
	eng.Wait()
	<-watch

	printLeaderboard(eng.Leaderboard())

	return exportResults(eng, output)
}
