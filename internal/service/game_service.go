package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/emory/internal/board"
	"github.com/phrazzld/emory/internal/domain"
	"github.com/phrazzld/emory/internal/domain/deck"
	"github.com/phrazzld/emory/internal/events"
	"github.com/phrazzld/emory/internal/game"
	"github.com/phrazzld/emory/internal/platform/logger"
	"github.com/phrazzld/emory/internal/ranking"
	"github.com/phrazzld/emory/internal/task"
)

// GameState is what a player can see of one game.
type GameState struct {
	ID         uuid.UUID           `json:"id"`
	State      game.State          `json:"state"`
	PlayerName string              `json:"player_name,omitempty"`
	Attempts   int                 `json:"attempts"`
	Board      board.Snapshot      `json:"board"`
	Result     *domain.ScoreRecord `json:"result,omitempty"`
}

// GameService provides game-related operations
type GameService interface {
	// CreateGame registers a new idle game.
	CreateGame(ctx context.Context) (*GameState, error)

	// StartGame deals a fresh deck for playerName in game id.
	StartGame(ctx context.Context, id uuid.UUID, playerName string) (*GameState, error)

	// SelectCard turns a card in game id. The returned state is valid even
	// when err wraps game.ErrPersistence.
	SelectCard(ctx context.Context, id uuid.UUID, index int) (*GameState, game.SelectResult, error)

	// GetGame returns the current state of game id.
	GetGame(ctx context.Context, id uuid.UUID) (*GameState, error)

	// EndGame removes game id, cancelling any pending mismatch reset.
	EndGame(ctx context.Context, id uuid.UUID) error

	// Leaderboard returns the ranking in display order.
	Leaderboard(ctx context.Context) ([]ranking.Standing, error)
}

// ScoreBoard is the leaderboard shared by every game.
type ScoreBoard = game.ScoreBoard

// Dependencies are the collaborators shared by every hosted game.
type Dependencies struct {
	Scores    ScoreBoard
	Scheduler task.Scheduler
	Clock     task.Clock
	Emitter   events.EventEmitter
	Names     game.NameValidator
}

type hostedGame struct {
	session *game.Session
	view    *board.View
}

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	cfg      game.Config
	maxGames int
	deps     Dependencies
	logger   *slog.Logger
	base     *slog.Logger

	mu    sync.RWMutex
	games map[uuid.UUID]*hostedGame
}

var _ GameService = (*gameServiceImpl)(nil)

// NewGameService creates a new GameService hosting at most maxGames games.
// It returns an error if a required dependency is nil or the deck
// configuration is unusable.
func NewGameService(cfg game.Config, maxGames int, deps Dependencies, logger *slog.Logger) (GameService, error) {
	if deps.Scores == nil {
		return nil, domain.NewValidationError("scores", "cannot be nil", domain.ErrValidation)
	}
	if maxGames < 1 {
		return nil, domain.NewValidationError("maxGames", "must be positive", domain.ErrValidation)
	}
	if _, err := deck.Build(cfg.Symbols, cfg.PairCount); err != nil {
		return nil, domain.NewValidationError("deck", "is invalid", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	if deps.Scheduler == nil {
		deps.Scheduler = task.NewTimerScheduler(logger)
	}
	if deps.Names == nil {
		deps.Names = game.NewNameValidator()
	}

	return &gameServiceImpl{
		cfg:      cfg,
		maxGames: maxGames,
		deps:     deps,
		logger:   logger.With(slog.String("component", "game_service")),
		base:     logger,
		games:    make(map[uuid.UUID]*hostedGame),
	}, nil
}

// CreateGame implements GameService.CreateGame
func (s *gameServiceImpl) CreateGame(ctx context.Context) (*GameState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	view := board.NewView()
	session, err := game.NewSession(s.cfg, game.Dependencies{
		Renderer:  view,
		Scores:    s.deps.Scores,
		Names:     s.deps.Names,
		Scheduler: s.deps.Scheduler,
		Clock:     s.deps.Clock,
		Emitter:   s.deps.Emitter,
	}, s.base)
	if err != nil {
		log.Error("failed to create game session", slog.String("error", err.Error()))
		return nil, NewGameServiceError("create", "failed to create session", err)
	}

	s.mu.Lock()
	if len(s.games) >= s.maxGames {
		s.mu.Unlock()
		log.Warn("session cap reached", slog.Int("max_games", s.maxGames))
		return nil, ErrTooManyGames
	}
	hosted := &hostedGame{session: session, view: view}
	s.games[session.ID()] = hosted
	active := len(s.games)
	s.mu.Unlock()

	log.Info("game created",
		slog.String("game_id", session.ID().String()),
		slog.Int("active_games", active))
	return stateOf(hosted), nil
}

// StartGame implements GameService.StartGame
func (s *gameServiceImpl) StartGame(ctx context.Context, id uuid.UUID, playerName string) (*GameState, error) {
	hosted, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	if err := hosted.session.StartGame(ctx, playerName); err != nil {
		// Validation and resolving errors are expected; pass them through.
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, game.ErrResolving) {
			return nil, err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to start game",
			slog.String("game_id", id.String()),
			slog.String("error", err.Error()))
		return nil, NewGameServiceError("start", "failed to start game", err)
	}
	return stateOf(hosted), nil
}

// SelectCard implements GameService.SelectCard
func (s *gameServiceImpl) SelectCard(
	ctx context.Context,
	id uuid.UUID,
	index int,
) (*GameState, game.SelectResult, error) {
	hosted, err := s.lookup(id)
	if err != nil {
		return nil, game.ResultIgnored, err
	}

	result, err := hosted.session.SelectCard(ctx, index)
	if err != nil {
		return stateOf(hosted), result, NewGameServiceError("select", "score was not recorded", err)
	}
	return stateOf(hosted), result, nil
}

// GetGame implements GameService.GetGame
func (s *gameServiceImpl) GetGame(_ context.Context, id uuid.UUID) (*GameState, error) {
	hosted, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return stateOf(hosted), nil
}

// EndGame implements GameService.EndGame
func (s *gameServiceImpl) EndGame(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	hosted, ok := s.games[id]
	delete(s.games, id)
	s.mu.Unlock()

	if !ok {
		return ErrGameNotFound
	}
	hosted.session.Close()
	logger.FromContextOrDefault(ctx, s.logger).Info("game ended", slog.String("game_id", id.String()))
	return nil
}

// Leaderboard implements GameService.Leaderboard
func (s *gameServiceImpl) Leaderboard(ctx context.Context) ([]ranking.Standing, error) {
	standings, err := s.deps.Scores.Leaderboard(ctx)
	if err != nil {
		return nil, NewGameServiceError("leaderboard", "failed to load ranking", err)
	}
	return standings, nil
}

func (s *gameServiceImpl) lookup(id uuid.UUID) (*hostedGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hosted, ok := s.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return hosted, nil
}

func stateOf(h *hostedGame) *GameState {
	snap := h.session.Snapshot()
	return &GameState{
		ID:         snap.ID,
		State:      snap.State,
		PlayerName: snap.PlayerName,
		Attempts:   snap.Attempts,
		Board:      h.view.Snapshot(),
		Result:     snap.Result,
	}
}
