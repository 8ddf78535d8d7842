package domain

import "fmt"

// Symbol is the face of a card. Two cards match when their symbols are equal.
type Symbol string

// CardState is the visibility state of a card on the board.
type CardState int

const (
	// CardHidden is a face-down card that may be selected.
	CardHidden CardState = iota
	// CardSelected is a face-up card belonging to the current turn.
	CardSelected
	// CardMatched is a face-up card whose pair has been found.
	CardMatched
)

// String returns the lowercase name of the state.
func (s CardState) String() string {
	switch s {
	case CardHidden:
		return "hidden"
	case CardSelected:
		return "selected"
	case CardMatched:
		return "matched"
	default:
		return fmt.Sprintf("CardState(%d)", int(s))
	}
}

// MarshalText encodes the state by name so JSON views stay readable.
func (s CardState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Card is a single position on the board. Its identity is its Index in the deck.
type Card struct {
	Index  int       `json:"index"`
	Symbol Symbol    `json:"symbol"`
	State  CardState `json:"state"`
}

// Selectable reports whether the card can be turned face up.
func (c Card) Selectable() bool {
	return c.State == CardHidden
}

// VisibleSymbol returns the symbol when the card is face up and "" when hidden.
func (c Card) VisibleSymbol() Symbol {
	if c.State == CardHidden {
		return ""
	}
	return c.Symbol
}
