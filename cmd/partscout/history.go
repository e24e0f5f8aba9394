package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect snapshots of finished runs",
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyViewCmd())
	cmd.AddCommand(historyDeleteCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List history records, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			records, err := store.ListHistory(ctx)
			if err != nil {
				return fmt.Errorf("failed to list history: %w", err)
			}

			if len(records) == 0 {
				fmt.Println("No history records.")
				return nil
			}

			fmt.Printf("%-36s  %-9s  %-7s  %s\n", "RECORD", "PROCESSED", "SUCCESS", "CREATED")
			for _, r := range records {
				fmt.Printf("%-36s  %-9d  %5.1f%%  %s\n",
					r.ID, r.Summary.TotalProcessed, r.Summary.SuccessRate,
					r.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

func historyViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <record-id>",
		Short: "Show the summary and top makes of one history record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			record, err := store.GetHistory(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load history record: %w", err)
			}

			s := record.Summary
			fmt.Printf("Record %s (created %s)\n", record.ID, record.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("  Range:       rows %d-%d of %d automotive parts\n", s.StartIndex, s.EndIndex, s.TotalParts)
			fmt.Printf("  Processed:   %d\n", s.TotalProcessed)
			fmt.Printf("  Successful:  %d (%.1f%%)\n", s.SuccessfulLookups, s.SuccessRate)

			printLeaderboard(s.TopMakes)
			return nil
		},
	}
}

func historyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <record-id>",
		Short: "Delete a history record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteHistory(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete history record: %w", err)
			}

			fmt.Printf("Deleted history record %s\n", args[0])
			return nil
		},
	}
}
