package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/partscout/partscout/internal/classify"
	"github.com/partscout/partscout/internal/model"
	"github.com/partscout/partscout/internal/tabular"
)

func categorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Preview how a manifest's line items would be categorized",
		Long: `Classify every line item without contacting any external source. Useful
for checking the category split and lookup keys before starting a run.`,
		RunE: runCategorize,
	}

	// Flags
	cmd.Flags().StringP("input", "i", "", "input manifest file (CSV)")
	cmd.Flags().Bool("verbose", false, "print every row with its category and lookup key")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runCategorize(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")
	verbose, _ := cmd.Flags().GetBool("verbose")

	items, err := tabular.ReadLineItems(input)
	if err != nil {
		return err
	}

	var automotive, tools, unknown int
	for _, item := range items {
		category := classify.Classify(item)

		switch category {
		case model.CategoryAutomotive:
			automotive++
		case model.CategoryTool:
			tools++
		case model.CategoryUnknown:
			unknown++
		}

		if verbose {
			key := ""
			if category == model.CategoryAutomotive {
				key = classify.ExtractKey(item.ItemNumber)
			}
			fmt.Printf("%5d  %-12s %-20s %s\n", item.Index, category, key, item.Description)
		}
	}

	fmt.Printf("📦 %d line items: %d automotive, %d tools, %d unknown\n",
		len(items), automotive, tools, unknown)

	return nil
}
