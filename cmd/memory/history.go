package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagHistoryUser  string
	flagHistoryLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent plays for an account",
	Long: `Display the most recent finished games, newest first.

Examples:
  memory history --user alice
  memory history --user alice --limit 50`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryUser, "user", "", "Account to show (required)")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum entries to show")
	historyCmd.MarkFlagRequired("user")
}

func runHistory(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := mustOpenStore(cfg)
	defer store.Close()

	user := findUser(store, flagHistoryUser)

	entries, err := store.RecentHistory(user.ID, flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("History - %s\n", user.Username)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No games recorded yet.")
		return
	}

	fmt.Printf("  %-5s  %-5s  %-5s  %-6s  %-6s  %s\n", "Level", "Moves", "Time", "Result", "Mode", "When")
	fmt.Printf("  %-5s  %-5s  %-5s  %-6s  %-6s  %s\n", "-----", "-----", "----", "------", "----", "----")

	for _, e := range entries {
		result := "lost"
		if e.Completed {
			result = "won"
		}
		mode := "normal"
		if e.RelaxMode {
			mode = "relax"
		}
		fmt.Printf("  %-5d  %-5d  %-5s  %-6s  %-6s  %s\n",
			e.Level+1, e.Moves, fmt.Sprintf("%ds", e.TimeSpent), result, mode,
			e.CreatedAt.Format("2006-01-02 15:04"))
	}
}
