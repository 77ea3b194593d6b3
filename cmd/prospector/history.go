package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/lead-prospector/internal/db"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect or prune stored search history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's search history, newest first",
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all of a user's search history",
	RunE:  runHistoryClear,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete one history entry by id",
	RunE:  runHistoryDelete,
}

var (
	historyDatabaseURL string
	historyUserID      string
	historyItemID      string
)

func init() {
	for _, cmd := range []*cobra.Command{historyListCmd, historyClearCmd, historyDeleteCmd} {
		cmd.Flags().StringVar(&historyDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	}
	historyListCmd.Flags().StringVar(&historyUserID, "user-id", "", "User ID (required)")
	historyClearCmd.Flags().StringVar(&historyUserID, "user-id", "", "User ID (required)")
	historyDeleteCmd.Flags().StringVar(&historyItemID, "id", "", "History entry ID (required)")

	historyCmd.AddCommand(historyListCmd, historyClearCmd, historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func openDatabase(ctx context.Context) (*db.DB, error) {
	url := historyDatabaseURL
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		return nil, fmt.Errorf("database URL is required (set DATABASE_URL or use --db-url)")
	}
	return db.Connect(ctx, url)
}

func parseRequiredUUID(value, flag string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, fmt.Errorf("--%s is required", flag)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --%s: %w", flag, err)
	}
	return id, nil
}

func runHistoryList(_ *cobra.Command, _ []string) error {
	userID, err := parseRequiredUUID(historyUserID, "user-id")
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	items, err := database.ListSearchHistory(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if len(items) == 0 {
		fmt.Println("No search history.")
		return nil
	}

	for _, item := range items {
		fmt.Printf("%s  %s  %s / %s  (%d contacts)\n",
			item.ID, item.Timestamp.Format("2006-01-02 15:04"),
			item.Params.Niche, item.Params.Location, item.ResultCount)
	}
	return nil
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	userID, err := parseRequiredUUID(historyUserID, "user-id")
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.ClearSearchHistory(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	fmt.Println("History cleared.")
	return nil
}

func runHistoryDelete(_ *cobra.Command, _ []string) error {
	id, err := parseRequiredUUID(historyItemID, "id")
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.DeleteSearchHistory(ctx, id); err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	fmt.Println("History entry deleted.")
	return nil
}
