package game

import (
	"context"

	"github.com/phrazzld/emory/internal/domain"
	"github.com/phrazzld/emory/internal/ranking"
)

// Renderer is the presentation collaborator a Session drives. Calls are made
// while the Session holds its lock, so implementations must not call back
// into the Session.
type Renderer interface {
	// DisplayDeck lays out a fresh deck with every card face down.
	DisplayDeck(cards []domain.Card)

	// SetCardVisual shows a card in state. symbol is empty for hidden cards.
	SetCardVisual(index int, state domain.CardState, symbol domain.Symbol)

	// SetInputEnabled toggles whether the board accepts input.
	SetInputEnabled(enabled bool)

	// ShowFeedback displays a message to the player.
	ShowFeedback(message string, isError bool)

	// ClearFeedback removes any displayed message.
	ClearFeedback()

	// ShowRanking displays the leaderboard in order.
	ShowRanking(standings []ranking.Standing)
}

// NameValidator checks a raw player name before a game starts.
type NameValidator interface {
	ValidateName(raw string) error
}

// ScoreBoard records finished games. *ranking.Store implements it.
type ScoreBoard interface {
	AddScore(ctx context.Context, record domain.ScoreRecord) (domain.Ranking, error)
	Leaderboard(ctx context.Context) ([]ranking.Standing, error)
	Standings(r domain.Ranking) []ranking.Standing
}
