package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-memory/internal/auth"
)

var flagRegisterPassword string

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create an account",
	Long: `Create a new account for score keeping.

The password is prompted unless --password is given. Usernames must be
at least 3 characters, passwords at least 4.

Examples:
  memory register alice
  memory register alice --password hunter2`,
	Args: cobra.ExactArgs(1),
	Run:  runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&flagRegisterPassword, "password", "", "Account password (prompted if omitted)")
}

func runRegister(_ *cobra.Command, args []string) {
	username := args[0]
	cfg := loadConfig()

	store := mustOpenStore(cfg)
	defer store.Close()

	password := flagRegisterPassword
	if password == "" {
		fmt.Fprintf(os.Stderr, "Password for %s: ", username)
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
			os.Exit(1)
		}
		password = string(raw)
	}

	if _, err := auth.NewService(store).Register(username, password); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Account %q created.\n", username)
	fmt.Printf("Play with 'memory play --user %s'\n", username)
}
