package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-memory/internal/game"
)

// LevelMenu is the in-game level picker. It renders as a modal over the
// board and lets the player jump to any level at any time.
type LevelMenu struct {
	catalog *game.Catalog
	cursor  int
}

// NewLevelMenu creates a level menu over the given catalog.
func NewLevelMenu(catalog *game.Catalog) LevelMenu {
	return LevelMenu{catalog: catalog}
}

// Reset positions the cursor on the currently played level.
func (lm *LevelMenu) Reset(current int) {
	if current < 0 || current >= lm.catalog.LevelCount() {
		current = 0
	}
	lm.cursor = current
}

// Handle applies a menu action. It returns the selected level index and
// true once the player confirms a choice; selected is -1 otherwise.
func (lm *LevelMenu) Handle(action MenuAction) (selected int, done bool) {
	switch action {
	case MenuActionUp:
		if lm.cursor > 0 {
			lm.cursor--
		}
	case MenuActionDown:
		if lm.cursor < lm.catalog.LevelCount()-1 {
			lm.cursor++
		}
	case MenuActionSelect:
		return lm.cursor, true
	}
	return -1, false
}

// View renders the menu.
func (lm LevelMenu) View() string {
	var sb strings.Builder
	sb.WriteString(styleTitle.Render("Select level"))
	sb.WriteString("\n\n")

	for i := 0; i < lm.catalog.LevelCount(); i++ {
		def := lm.catalog.DefinitionAt(i)
		line := fmt.Sprintf("Level %d   %2d cards  %2d moves  %2ds",
			def.Index+1, len(def.Symbols)*2, def.MaxMoves, def.TimeLimit)
		if i == lm.cursor {
			sb.WriteString("> " + styleFlash.Render(line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styleControls.Render("enter: play   esc: back"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("13")).
		Padding(1, 3).
		Render(sb.String())
}
