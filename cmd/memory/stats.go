package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-memory/internal/storage"
)

var flagStatsUser string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime statistics for an account",
	Long: `Display total games, wins, time played, and streaks.

Examples:
  memory stats --user alice`,
	Run: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&flagStatsUser, "user", "", "Account to show (required)")
	statsCmd.MarkFlagRequired("user")
}

// findUser resolves a username or exits with a helpful message.
func findUser(store *storage.Store, username string) *storage.User {
	user, err := store.FindUserByName(username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error looking up user: %v\n", err)
		os.Exit(1)
	}
	if user == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown user %q\n", username)
		fmt.Fprintln(os.Stderr, "Run 'memory register <name>' to create an account.")
		os.Exit(1)
	}
	return user
}

func runStats(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := mustOpenStore(cfg)
	defer store.Close()

	user := findUser(store, flagStatsUser)

	ps, err := store.GetStats(user.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Statistics - %s\n", user.Username)
	fmt.Println()

	if ps == nil {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'memory play --user %s' to get on the board!\n", user.Username)
		return
	}

	winRate := 0.0
	if ps.TotalGamesPlayed > 0 {
		winRate = float64(ps.TotalGamesWon) / float64(ps.TotalGamesPlayed) * 100
	}

	fmt.Printf("  %-16s %d\n", "Games played:", ps.TotalGamesPlayed)
	fmt.Printf("  %-16s %d (%.0f%%)\n", "Games won:", ps.TotalGamesWon, winRate)
	fmt.Printf("  %-16s %ds\n", "Time played:", ps.TotalTimePlayed)
	fmt.Printf("  %-16s %d\n", "Total moves:", ps.TotalMoves)
	fmt.Printf("  %-16s %d\n", "Current streak:", ps.CurrentStreak)
	fmt.Printf("  %-16s %d\n", "Best streak:", ps.BestStreak)
	fmt.Printf("  %-16s %s\n", "Last played:", ps.LastPlayed.Format("2006-01-02 15:04"))
}
