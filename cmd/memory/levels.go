package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-memory/internal/game"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the level catalog",
	Long:  `Shows the level table: deck size, move budget, and time budget.`,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	catalog := game.NewCatalog(rand.New(rand.NewSource(1)))

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-5s  %-5s  %-5s  %-4s  %s\n", "Level", "Cards", "Moves", "Time", "Grid")
	fmt.Printf("  %-5s  %-5s  %-5s  %-4s  %s\n", "-----", "-----", "-----", "----", "----")

	for i := 0; i < catalog.LevelCount(); i++ {
		def := catalog.DefinitionAt(i)
		cards := len(def.Symbols) * 2
		rows := (cards + def.Columns - 1) / def.Columns
		fmt.Printf("  %-5d  %-5d  %-5d  %-4s  %dx%d\n",
			def.Index+1, cards, def.MaxMoves, fmt.Sprintf("%ds", def.TimeLimit), rows, def.Columns)
	}

	fmt.Println()
	fmt.Println("Run 'memory play --level <n>' to start on a level.")
	fmt.Println("Run 'memory play --relax' to play without budgets.")
}
