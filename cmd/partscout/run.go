package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/partscout/partscout/internal/common"
	"github.com/partscout/partscout/internal/model"
	"github.com/partscout/partscout/internal/tabular"
)

// resultExporter is the slice of the engine the export step needs.
type resultExporter interface {
	ExportRows() ([]model.EnrichedRow, error)
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process an inventory manifest and enrich automotive parts",
		Long: `Read an inventory manifest, categorize every line item, and resolve
automotive parts against online catalogs. Progress is saved after every
row, so an interrupted run can be picked up later with 'partscout resume'.`,
		RunE: runRun,
	}

	// Flags
	cmd.Flags().StringP("input", "i", "", "input manifest file (CSV)")
	cmd.Flags().Int("start", 0, "first automotive row to process (0-based)")
	cmd.Flags().Int("end", 0, "automotive row to stop before (default: all)")
	cmd.Flags().Bool("test", false, "test mode: process only the first 50 automotive rows")
	cmd.Flags().StringP("output", "o", "", "export file (.csv or .xlsx, default: timestamped CSV)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runRun(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")
	start, _ := cmd.Flags().GetInt("start")
	end, _ := cmd.Flags().GetInt("end")
	isTest, _ := cmd.Flags().GetBool("test")
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

	counts, err := loadInput(eng, input)
	if err != nil {
		return err
	}
	slog.Info("📦 Manifest loaded",
		"file", input,
		"automotive", counts.Automotive,
		"tools", counts.Tools,
		"unknown", counts.Unknown)

	if end == 0 {
		end = counts.Automotive
	}

	events, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	sessionID, err := eng.Start(ctx, start, end, isTest)
	if err != nil {
		return err
	}

	watch := watchEvents(events, eng.Status().RangeSize, 0)
	eng.Wait()
	<-watch

	slog.Info("Session", "id", sessionID)
	printLeaderboard(eng.Leaderboard())

	return exportResults(eng, output)
}

// exportResults writes the merged enriched output, tolerating an empty run.
func exportResults(eng resultExporter, output string) error {
	rows, err := eng.ExportRows()
	if err != nil {
		if errors.Is(err, common.ErrNoResults) {
			slog.Warn("No rows were processed; nothing to export")
			return nil
		}
		return err
	}

	if output == "" {
		output = defaultExportPath()
	}
	if err := tabular.Write(output, rows); err != nil {
		return fmt.Errorf("failed to export results: %w", err)
	}

	slog.Info("📄 Results exported", "file", output, "rows", len(rows))
	return nil
}
