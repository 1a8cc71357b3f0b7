package game

import "math/rand"

// CardState is the lifecycle state of a single card.
type CardState int

const (
	CardHidden CardState = iota
	CardRevealed
	CardMatched
	// CardError is reserved for a mismatch-flash visual state. No
	// transition currently produces it; mismatches are signalled through
	// EventMismatch instead.
	CardError
)

// String returns a human-readable name for the card state.
func (s CardState) String() string {
	switch s {
	case CardHidden:
		return "hidden"
	case CardRevealed:
		return "revealed"
	case CardMatched:
		return "matched"
	case CardError:
		return "error"
	default:
		return "unknown"
	}
}

// Card is a single tile on the board.
type Card struct {
	ID     int
	Symbol string
	State  CardState
}

// Deck is the full set of cards for one session. Length is always twice
// the symbol count; each symbol appears exactly twice.
type Deck []Card

// GenerateDeck builds a shuffled deck from the given symbols: every symbol
// duplicated once, uniformly shuffled, ids assigned 0..2K-1 after the
// shuffle, all cards hidden. Pure function of its inputs.
func GenerateDeck(rng *rand.Rand, symbols []string) Deck {
	deck := make(Deck, 0, 2*len(symbols))
	for _, sym := range symbols {
		deck = append(deck, Card{Symbol: sym}, Card{Symbol: sym})
	}

	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	for i := range deck {
		deck[i].ID = i
		deck[i].State = CardHidden
	}

	return deck
}

// revealedIDs returns the ids of cards currently face up, in deck order.
func (d Deck) revealedIDs() []int {
	var ids []int
	for _, c := range d {
		if c.State == CardRevealed {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// allMatched reports whether every card has been matched. An empty deck
// does not count as matched.
func (d Deck) allMatched() bool {
	if len(d) == 0 {
		return false
	}
	for _, c := range d {
		if c.State != CardMatched {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the deck for snapshots.
func (d Deck) Clone() Deck {
	out := make(Deck, len(d))
	copy(out, d)
	return out
}
