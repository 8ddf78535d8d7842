package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/emory/internal/api/shared"
	"github.com/phrazzld/emory/internal/game"
	"github.com/phrazzld/emory/internal/platform/logger"
	"github.com/phrazzld/emory/internal/redact"
	"github.com/phrazzld/emory/internal/service"
)

// GameHandler handles game-related HTTP requests
type GameHandler struct {
	games  service.GameService
	logger *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(games service.GameService, logger *slog.Logger) *GameHandler {
	if games == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("game service cannot be nil for GameHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GameHandler{
		games:  games,
		logger: logger.With(slog.String("component", "game_handler")),
	}
}

// Routes registers the game endpoints on r.
func (h *GameHandler) Routes(r chi.Router) {
	r.Post("/games", h.CreateGame)
	r.Get("/games/{id}", h.GetGame)
	r.Delete("/games/{id}", h.EndGame)
	r.Post("/games/{id}/start", h.StartGame)
	r.Post("/games/{id}/cards/{index}", h.SelectCard)
	r.Get("/ranking", h.GetRanking)
}

// CreateGame handles POST /games requests.
func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	state, err := h.games.CreateGame(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create game")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, state)
}

// GetGame handles GET /games/{id} requests.
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	state, err := h.games.GetGame(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get game")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, state)
}

// EndGame handles DELETE /games/{id} requests.
func (h *GameHandler) EndGame(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.games.EndGame(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to end game")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartGame handles POST /games/{id}/start requests. It deals a new deck
// for the named player, restarting any game in progress.
func (h *GameHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req StartGameRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid player_name: required field", err)
		return
	}

	state, err := h.games.StartGame(r.Context(), id, req.PlayerName)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start game")
		return
	}

	log.Debug("game started via API", slog.String("game_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, state)
}

// SelectCard handles POST /games/{id}/cards/{index} requests. Selections the
// game does not accept are reported with result "ignored", not as errors.
func (h *GameHandler) SelectCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	index, err := getPathInt(r, "index")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	state, result, err := h.games.SelectCard(r.Context(), id, index)
	resp := SelectCardResponse{Result: result, Game: state}
	switch {
	case err == nil:
	case errors.Is(err, game.ErrPersistence) && state != nil:
		// The game finished; only the leaderboard write failed.
		log.Error("score not recorded",
			slog.String("game_id", id.String()),
			slog.String("error", redact.Error(err)))
		resp.Warning = GetSafeErrorMessage(err)
	default:
		HandleAPIError(w, r, err, "Failed to select card")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetRanking handles GET /ranking requests.
func (h *GameHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	standings, err := h.games.Leaderboard(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load ranking")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, RankingResponse{Ranking: standings})
}
