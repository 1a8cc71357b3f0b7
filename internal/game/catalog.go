// Package game implements the memory game engine: level catalog, deck
// generation, the session state machine, the clock driver, and level
// progression. The package is pure logic with no terminal or storage
// dependencies; the platform layer renders snapshots and feeds input.
package game

import "math/rand"

// LevelCount is the number of levels in the campaign.
const LevelCount = 5

// masterSymbols is the full pool of card faces. Level symbol sets are
// prefixes of a shuffled copy of this list, so lower levels always use a
// subset of the symbols of higher levels.
var masterSymbols = []string{
	"🦄", "🍦", "🌈", "⭐", "🎈", "🍩", "🐙", "🌵",
	"🍉", "🎲", "🚀", "🐝", "🍀", "🎵", "🔮", "🐢",
}

// LevelDefinition describes one level of the campaign.
// MaxMoves and TimeLimit of 0 mean unlimited (relax mode ignores both).
type LevelDefinition struct {
	Index     int
	Symbols   []string // Distinct card faces; deck size is 2x this
	MaxMoves  int      // Comparison budget in normal mode
	TimeLimit int      // Seconds on the countdown clock in normal mode
	Columns   int      // Board width in cards
}

// levelShape fixes the difficulty curve: symbols per level, move caps,
// time caps and grid columns.
var levelShape = []struct {
	symbols  int
	maxMoves int
	timeCap  int
	columns  int
}{
	{2, 5, 15, 2},
	{3, 8, 25, 2},
	{4, 12, 40, 2},
	{6, 20, 60, 3},
	{8, 30, 90, 4},
}

// Catalog holds the immutable level table for one run. The master symbol
// list is shuffled exactly once at construction, so all sessions created
// from the same catalog share the same symbol assignment.
type Catalog struct {
	levels []LevelDefinition
}

// NewCatalog builds the level table using the given rng for the one-time
// master shuffle. Pass a custom symbol pool via NewCatalogWithSymbols.
func NewCatalog(rng *rand.Rand) *Catalog {
	return NewCatalogWithSymbols(rng, masterSymbols)
}

// NewCatalogWithSymbols builds the level table from a custom symbol pool.
// Pools with fewer than the required 16 distinct symbols fall back to the
// built-in set.
func NewCatalogWithSymbols(rng *rand.Rand, pool []string) *Catalog {
	if !validPool(pool) {
		pool = masterSymbols
	}

	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	levels := make([]LevelDefinition, len(levelShape))
	for i, shape := range levelShape {
		levels[i] = LevelDefinition{
			Index:     i,
			Symbols:   shuffled[:shape.symbols],
			MaxMoves:  shape.maxMoves,
			TimeLimit: shape.timeCap,
			Columns:   shape.columns,
		}
	}

	return &Catalog{levels: levels}
}

// validPool reports whether a custom symbol pool is usable: at least 16
// entries, all distinct, none empty.
func validPool(pool []string) bool {
	if len(pool) < len(masterSymbols) {
		return false
	}
	seen := make(map[string]bool, len(pool))
	for _, s := range pool {
		if s == "" || seen[s] {
			return false
		}
		seen[s] = true
	}
	return true
}

// LevelCount returns the number of levels.
func (c *Catalog) LevelCount() int {
	return len(c.levels)
}

// DefinitionAt returns the level definition at the given index.
// Out-of-range indices are clamped to the first level.
func (c *Catalog) DefinitionAt(index int) LevelDefinition {
	if index < 0 || index >= len(c.levels) {
		index = 0
	}
	return c.levels[index]
}

// DefaultSymbols returns a copy of the built-in symbol pool.
func DefaultSymbols() []string {
	out := make([]string, len(masterSymbols))
	copy(out, masterSymbols)
	return out
}
