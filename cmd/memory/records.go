package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagRecordsUser string

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show per-level best records for an account",
	Long: `Display the best time and best moves for each completed level.
Best time and best moves are tracked independently and may come from
different plays. Relax-mode games do not set records.

Examples:
  memory records --user alice`,
	Run: runRecords,
}

func init() {
	recordsCmd.Flags().StringVar(&flagRecordsUser, "user", "", "Account to show (required)")
	recordsCmd.MarkFlagRequired("user")
}

func runRecords(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := mustOpenStore(cfg)
	defer store.Close()

	user := findUser(store, flagRecordsUser)

	records, err := store.AllRecords(user.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving records: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Records - %s\n", user.Username)
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No levels completed yet.")
		return
	}

	fmt.Printf("  %-5s  %-9s  %-10s  %-9s  %s\n", "Level", "Best time", "Best moves", "Completed", "Last played")
	fmt.Printf("  %-5s  %-9s  %-10s  %-9s  %s\n", "-----", "---------", "----------", "---------", "-----------")

	for _, r := range records {
		fmt.Printf("  %-5d  %-9s  %-10d  %-9d  %s\n",
			r.Level+1, fmt.Sprintf("%ds", r.BestTime), r.BestMoves, r.TimesCompleted,
			r.LastPlayed.Format("2006-01-02 15:04"))
	}
}
