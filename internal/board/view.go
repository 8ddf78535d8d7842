// Package board keeps a serializable picture of what a player sees. View is
// the Renderer the HTTP surface hands to each game session.
package board

import (
	"slices"
	"sync"

	"github.com/phrazzld/emory/internal/domain"
	"github.com/phrazzld/emory/internal/game"
	"github.com/phrazzld/emory/internal/ranking"
)

// CardView is one card as shown to the player. Symbol is empty while the
// card is face down.
type CardView struct {
	Index  int              `json:"index"`
	State  domain.CardState `json:"state"`
	Symbol domain.Symbol    `json:"symbol,omitempty"`
}

// Feedback is the message line under the board.
type Feedback struct {
	Message string `json:"message"`
	IsError bool   `json:"is_error"`
}

// Snapshot is a copy of the board.
type Snapshot struct {
	Cards        []CardView         `json:"cards"`
	InputEnabled bool               `json:"input_enabled"`
	Feedback     *Feedback          `json:"feedback,omitempty"`
	Ranking      []ranking.Standing `json:"ranking"`
}

// View records Renderer calls into board state.
type View struct {
	mu           sync.RWMutex
	cards        []CardView
	inputEnabled bool
	feedback     *Feedback
	ranking      []ranking.Standing
}

var _ game.Renderer = (*View)(nil)

// NewView returns an empty board.
func NewView() *View {
	return &View{
		cards:   []CardView{},
		ranking: []ranking.Standing{},
	}
}

// DisplayDeck implements game.Renderer. Symbols are not copied; cards are
// laid out face down.
func (v *View) DisplayDeck(cards []domain.Card) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cards = make([]CardView, len(cards))
	for i, c := range cards {
		v.cards[i] = CardView{Index: c.Index, State: domain.CardHidden}
	}
}

// SetCardVisual implements game.Renderer. Unknown indices are ignored.
func (v *View) SetCardVisual(index int, state domain.CardState, symbol domain.Symbol) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if index < 0 || index >= len(v.cards) {
		return
	}
	if state == domain.CardHidden {
		symbol = ""
	}
	v.cards[index] = CardView{Index: index, State: state, Symbol: symbol}
}

// SetInputEnabled implements game.Renderer.
func (v *View) SetInputEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.inputEnabled = enabled
}

// ShowFeedback implements game.Renderer.
func (v *View) ShowFeedback(message string, isError bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.feedback = &Feedback{Message: message, IsError: isError}
}

// ClearFeedback implements game.Renderer.
func (v *View) ClearFeedback() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.feedback = nil
}

// ShowRanking implements game.Renderer.
func (v *View) ShowRanking(standings []ranking.Standing) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ranking = slices.Clone(standings)
	if v.ranking == nil {
		v.ranking = []ranking.Standing{}
	}
}

// Snapshot returns a copy of the board.
func (v *View) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	snap := Snapshot{
		Cards:        slices.Clone(v.cards),
		InputEnabled: v.inputEnabled,
		Ranking:      slices.Clone(v.ranking),
	}
	if v.feedback != nil {
		f := *v.feedback
		snap.Feedback = &f
	}
	return snap
}
