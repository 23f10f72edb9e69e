package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/stylist/internal/cli"
	"github.com/Veraticus/stylist/internal/storage"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent recommendations for a shop",
		RunE:  runHistory,
	}

	cmd.Flags().String("shop", "", "shop identifier (required)")
	cmd.Flags().Int("limit", storage.DefaultHistoryLimit, "number of records to show")
	_ = cmd.MarkFlagRequired("shop")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	shopID, _ := cmd.Flags().GetString("shop")
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := initStorage(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	records, err := store.GetRecentRecommendations(cmd.Context(), shopID, limit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), cli.RenderHistory(records))
	return err
}
