package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <session-id>",
		Short: "Export a stored session's results without reprocessing",
		Long: `Merge a stored session's resolved rows back into the manifest and write
the enriched output. Every input row appears exactly once in original
order; unresolved automotive rows are marked NOT_PROCESSED.`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}

	// Flags
	cmd.Flags().StringP("input", "i", "", "input manifest file (CSV)")
	cmd.Flags().StringP("output", "o", "", "export file (.csv or .xlsx, default: timestamped CSV)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	sessionID := args[0]
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")

	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	eng, _, err := newEngine(store)
	if err != nil {
		return err
	}

	if _, err := loadInput(eng, input); err != nil {
		return err
	}
	if err := eng.LoadSession(ctx, sessionID); err != nil {
		return err
	}

	slog.Info("📄 Exporting stored session", "session_id", sessionID)
	return exportResults(eng, output)
}
