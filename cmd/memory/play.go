package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-memory/internal/auth"
	"github.com/vovakirdan/tui-memory/internal/game"
	"github.com/vovakirdan/tui-memory/internal/platform/tui"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

var (
	flagLevel    int
	flagRelax    bool
	flagUser     string
	flagPassword string
	flagGuest    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a game",
	Long: `Start the memory game.

Controls:
  Arrows/WASD - Move cursor
  Enter/Space - Flip card
  R           - Restart level
  T           - Toggle relax mode (restarts the level)
  M           - Level menu
  Tab         - Records (logged in)
  Q/Ctrl+C    - Quit

Examples:
  memory play
  memory play --level 3
  memory play --relax
  memory play --user alice
  memory play --guest
  memory play --seed 42`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start on (1-5)")
	playCmd.Flags().BoolVar(&flagRelax, "relax", false, "Play without move or time limits")
	playCmd.Flags().StringVar(&flagUser, "user", "", "Account to play as (prompts for password)")
	playCmd.Flags().StringVar(&flagPassword, "password", "", "Account password (prompted if omitted)")
	playCmd.Flags().BoolVar(&flagGuest, "guest", false, "Skip login and play without an account")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	// Get terminal size early
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open game database: %v\n", err)
		// Continue without storage - guest play still works
		store = nil
	}

	// Authenticate up front when an account is named
	var user *storage.User
	if flagUser != "" {
		if store == nil {
			fmt.Fprintln(os.Stderr, "Error: --user requires a working database")
			os.Exit(1)
		}
		user, err = loginUser(store, flagUser, flagPassword)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	startLevel := flagLevel - 1
	if startLevel < 0 || startLevel >= game.LevelCount {
		fmt.Fprintf(os.Stderr, "Error: level must be between 1 and %d\n", game.LevelCount)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "memory"})

	runErr := tui.Run(tui.Options{
		Store:      store,
		Symbols:    cfg.Theme.Symbols,
		Relax:      flagRelax || cfg.RelaxMode,
		StartLevel: startLevel,
		Seed:       flagSeed,
		User:       user,
		Guest:      flagGuest,
		Logger:     logger,
		Width:      width,
		Height:     height,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// loginUser authenticates against the store, prompting for the password
// when it was not given on the command line.
func loginUser(store *storage.Store, username, password string) (*storage.User, error) {
	if password == "" {
		fmt.Fprintf(os.Stderr, "Password for %s: ", username)
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("cannot read password: %w", err)
		}
		password = string(raw)
	}
	return auth.NewService(store).Login(username, password)
}
