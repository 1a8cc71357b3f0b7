// memory is a tile-matching memory game for the terminal.
//
// Usage:
//
//	memory play              - Start a game
//	memory levels            - List the level catalog
//	memory register <name>   - Create an account
//	memory stats             - Show lifetime statistics
//	memory records           - Show per-level best records
//	memory history           - Show recent plays
//	memory serve             - Start SSH server for remote play
//
// Global flags:
//
//	--config <path> - Set config file path
//	--seed <value>  - Set RNG seed for reproducible shuffles
//	--db <path>     - Set database path (default: ~/.memory/memory.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-memory/internal/config"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

var (
	// Global flags
	flagConfig string
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "memory",
	Short: "Memory - a tile-matching game in your terminal",
	Long: `Memory is a terminal-based tile-matching game. Flip cards two at a
time and clear the board within the level's move and time budget.
Five levels of increasing size, per-account records, and SSH play.

Available commands:
  play     - Start a game
  levels   - List the level catalog
  register - Create an account
  stats    - View lifetime statistics
  records  - View per-level best records
  history  - View recent plays
  serve    - Start SSH server for remote play

Examples:
  memory play
  memory play --level 3 --relax
  memory play --user alice
  memory register alice
  memory stats --user alice
  memory serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to game database (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the config file and applies the --db override.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	return cfg
}

// mustOpenStore opens the database or exits.
func mustOpenStore(cfg config.Config) *storage.Store {
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening game database: %v\n", err)
		os.Exit(1)
	}
	return store
}
