package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-memory/internal/game"
)

// Card cell dimensions. Wide enough for double-width emoji faces.
const (
	cardWidth  = 5
	cardHeight = 1
)

var (
	styleHiddenCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Foreground(lipgloss.Color("245")).
			Width(cardWidth).
			Height(cardHeight).
			Align(lipgloss.Center, lipgloss.Center)

	styleRevealedCard = styleHiddenCard.
				BorderForeground(lipgloss.Color("12")).
				Foreground(lipgloss.Color("15"))

	styleMatchedCard = styleHiddenCard.
				BorderForeground(lipgloss.Color("10")).
				Faint(true)

	styleErrorCard = styleHiddenCard.
			BorderForeground(lipgloss.Color("9")).
			Foreground(lipgloss.Color("9"))

	styleCursorBorder = lipgloss.Color("11")

	styleTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("13")).
			Bold(true)

	styleHUD = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	styleHUDWarn = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	styleFlash = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	styleOverlay = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("13")).
			Padding(1, 4).
			Align(lipgloss.Center)

	styleControls = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// renderCard renders a single card cell. The cursor gets a highlighted
// border regardless of card state.
func renderCard(c game.Card, underCursor bool) string {
	var style lipgloss.Style
	face := "?"

	switch c.State {
	case game.CardHidden:
		style = styleHiddenCard
	case game.CardRevealed:
		style = styleRevealedCard
		face = c.Symbol
	case game.CardMatched:
		style = styleMatchedCard
		face = c.Symbol
	case game.CardError:
		style = styleErrorCard
		face = "!"
	}

	if underCursor {
		style = style.BorderForeground(styleCursorBorder)
	}
	return style.Render(face)
}

// renderBoard lays the deck out in the level's column grid, left to
// right, top to bottom.
func renderBoard(snap game.Snapshot, cursor int) string {
	cols := snap.Columns
	if cols < 1 {
		cols = 1
	}

	var rows []string
	for start := 0; start < len(snap.Deck); start += cols {
		end := start + cols
		if end > len(snap.Deck) {
			end = len(snap.Deck)
		}
		cells := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cells = append(cells, renderCard(snap.Deck[i], i == cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderHUD shows the level header and the move/time budgets.
func renderHUD(snap game.Snapshot, player string) string {
	var sb strings.Builder

	sb.WriteString(styleTitle.Render(fmt.Sprintf("Level %d", snap.Level+1)))
	if snap.Relax {
		sb.WriteString(styleHUD.Render("  relax"))
	}
	if player != "" {
		sb.WriteString(styleHUD.Render("  " + player))
	}
	sb.WriteString("\n")

	if snap.Relax {
		sb.WriteString(styleHUD.Render(fmt.Sprintf("Moves: %d    Time: %ds", snap.Moves, snap.Elapsed)))
	} else {
		movesLine := fmt.Sprintf("Moves: %d/%d", snap.Moves, snap.MaxMoves)
		timeLine := fmt.Sprintf("Time: %ds", snap.Remaining)
		if snap.MaxMoves-snap.Moves <= 2 || snap.Remaining <= 5 {
			sb.WriteString(styleHUDWarn.Render(movesLine + "    " + timeLine))
		} else {
			sb.WriteString(styleHUD.Render(movesLine + "    " + timeLine))
		}
	}
	return sb.String()
}

// renderOverlay renders the end-of-level banner for terminal states.
func renderOverlay(snap game.Snapshot, gameWon bool) string {
	switch {
	case gameWon:
		return styleOverlay.Render("You won the game!\n\nr: play again   m: levels   q: quit")
	case snap.State == game.StateLevelComplete:
		return styleOverlay.Render(fmt.Sprintf("Level %d complete!\n\nNext level starting...", snap.Level+1))
	case snap.State == game.StateGameOver:
		reason := "Out of moves"
		if snap.OverReason == game.OverTimeUp {
			reason = "Time's up"
		}
		return styleOverlay.Render(fmt.Sprintf("Game over: %s\n\nr: retry   m: levels   q: quit", reason))
	}
	return ""
}

// centerText centers a block of text within the given dimensions.
func centerText(text string, width, height int) string {
	if width <= 0 || height <= 0 {
		return text
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}
