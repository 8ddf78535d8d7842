package api

import (
	"github.com/phrazzld/emory/internal/game"
	"github.com/phrazzld/emory/internal/ranking"
	"github.com/phrazzld/emory/internal/service"
)

// StartGameRequest is the body of POST /api/games/{id}/start.
// Blank names are rejected by the game itself.
type StartGameRequest struct {
	PlayerName string `json:"player_name" validate:"required"`
}

// SelectCardResponse is the body returned by POST /api/games/{id}/cards/{index}.
type SelectCardResponse struct {
	Result  game.SelectResult  `json:"result"`
	Game    *service.GameState `json:"game"`
	Warning string             `json:"warning,omitempty"`
}

// RankingResponse is the body returned by GET /api/ranking.
type RankingResponse struct {
	Ranking []ranking.Standing `json:"ranking"`
}
