package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/emory/internal/domain"
	"github.com/phrazzld/emory/internal/game"
	"github.com/phrazzld/emory/internal/mocks"
	"github.com/phrazzld/emory/internal/ranking"
	"github.com/phrazzld/emory/internal/store"
	"github.com/phrazzld/emory/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = game.Config{
	Symbols:       []domain.Symbol{"A", "B", "C"},
	PairCount:     2,
	MismatchDelay: time.Second,
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, maxGames int, scores ScoreBoard) (GameService, *task.ManualScheduler) {
	t.Helper()
	sched := task.NewManualScheduler(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	if scores == nil {
		scores = ranking.NewStore(store.NewMemoryKVStore(), discardLogger())
	}
	svc, err := NewGameService(testConfig, maxGames, Dependencies{
		Scores:    scores,
		Scheduler: sched,
		Clock:     sched.Now,
	}, discardLogger())
	require.NoError(t, err)
	return svc, sched
}

// playToCompletion matches every pair of a started game.
func playToCompletion(t *testing.T, svc GameService, id uuid.UUID, cards []domain.Card) (*GameState, game.SelectResult, error) {
	t.Helper()
	bySymbol := make(map[domain.Symbol][]int)
	for _, c := range cards {
		bySymbol[c.Symbol] = append(bySymbol[c.Symbol], c.Index)
	}

	var (
		state  *GameState
		result game.SelectResult
		err    error
	)
	for _, idx := range bySymbol {
		_, _, err = svc.SelectCard(context.Background(), id, idx[0])
		require.NoError(t, err)
		state, result, err = svc.SelectCard(context.Background(), id, idx[1])
	}
	return state, result, err
}

func TestNewGameService(t *testing.T) {
	scores := ranking.NewStore(store.NewMemoryKVStore(), discardLogger())

	tests := []struct {
		name     string
		cfg      game.Config
		maxGames int
		scores   ScoreBoard
	}{
		{"nil scores", testConfig, 10, nil},
		{"zero cap", testConfig, 0, scores},
		{"too many pairs", game.Config{Symbols: []domain.Symbol{"A"}, PairCount: 2}, 10, scores},
		{"duplicate symbols", game.Config{Symbols: []domain.Symbol{"A", "A"}, PairCount: 2}, 10, scores},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, err := NewGameService(tc.cfg, tc.maxGames, Dependencies{Scores: tc.scores}, nil)
			assert.Nil(t, svc)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestGameService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, 10, nil)

	created, err := svc.CreateGame(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, game.StateIdle, created.State)
	assert.Empty(t, created.Board.Cards)

	got, err := svc.GetGame(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.GetGame(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestGameService_SessionCap(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, 2, nil)

	first, err := svc.CreateGame(ctx)
	require.NoError(t, err)
	_, err = svc.CreateGame(ctx)
	require.NoError(t, err)

	_, err = svc.CreateGame(ctx)
	assert.ErrorIs(t, err, ErrTooManyGames)

	require.NoError(t, svc.EndGame(ctx, first.ID))
	_, err = svc.CreateGame(ctx)
	assert.NoError(t, err)
}

func TestGameService_StartGame(t *testing.T) {
	ctx := context.Background()

	t.Run("deals a face-down board", func(t *testing.T) {
		svc, _ := newTestService(t, 10, nil)
		created, err := svc.CreateGame(ctx)
		require.NoError(t, err)

		state, err := svc.StartGame(ctx, created.ID, "Ana")
		require.NoError(t, err)
		assert.Equal(t, game.StatePlaying, state.State)
		assert.Equal(t, "Ana", state.PlayerName)
		require.Len(t, state.Board.Cards, 4)
		for _, c := range state.Board.Cards {
			assert.Empty(t, c.Symbol)
		}
		assert.True(t, state.Board.InputEnabled)
		assert.Len(t, state.Board.Ranking, len(ranking.DefaultRecords))
	})

	t.Run("validation errors pass through", func(t *testing.T) {
		svc, _ := newTestService(t, 10, nil)
		created, err := svc.CreateGame(ctx)
		require.NoError(t, err)

		_, err = svc.StartGame(ctx, created.ID, "   ")
		assert.ErrorIs(t, err, domain.ErrValidation)
		var gsErr *GameServiceError
		assert.False(t, errors.As(err, &gsErr))
	})

	t.Run("unknown game", func(t *testing.T) {
		svc, _ := newTestService(t, 10, nil)
		_, err := svc.StartGame(ctx, uuid.New(), "Ana")
		assert.ErrorIs(t, err, ErrGameNotFound)
	})
}

func TestGameService_SelectCard(t *testing.T) {
	ctx := context.Background()

	t.Run("mismatch then reset", func(t *testing.T) {
		svc, sched := newTestService(t, 10, nil)
		created, err := svc.CreateGame(ctx)
		require.NoError(t, err)
		_, err = svc.StartGame(ctx, created.ID, "Ana")
		require.NoError(t, err)

		hosted, err := svc.(*gameServiceImpl).lookup(created.ID)
		require.NoError(t, err)
		cards := hosted.session.Snapshot().Cards
		second := 1
		for cards[second].Symbol == cards[0].Symbol {
			second++
		}

		first, result, err := svc.SelectCard(ctx, created.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, game.ResultSelected, result)
		assert.Equal(t, cards[0].Symbol, first.Board.Cards[0].Symbol)

		state, result, err := svc.SelectCard(ctx, created.ID, second)
		require.NoError(t, err)
		assert.Equal(t, game.ResultMismatched, result)
		assert.Equal(t, game.StateResolving, state.State)
		assert.False(t, state.Board.InputEnabled)
		require.NotNil(t, state.Board.Feedback)
		assert.Equal(t, game.MismatchFeedback, state.Board.Feedback.Message)

		_, err = svc.StartGame(ctx, created.ID, "Bo")
		assert.ErrorIs(t, err, game.ErrResolving)

		sched.Advance(testConfig.MismatchDelay)
		state, err = svc.GetGame(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, game.StatePlaying, state.State)
		assert.Empty(t, state.Board.Cards[0].Symbol)
		assert.Nil(t, state.Board.Feedback)
	})

	t.Run("completion records the score", func(t *testing.T) {
		scores := ranking.NewStore(store.NewMemoryKVStore(), discardLogger())
		svc, sched := newTestService(t, 10, scores)
		created, err := svc.CreateGame(ctx)
		require.NoError(t, err)
		_, err = svc.StartGame(ctx, created.ID, "ana")
		require.NoError(t, err)

		impl := svc.(*gameServiceImpl)
		hosted, err := impl.lookup(created.ID)
		require.NoError(t, err)
		sched.Advance(12 * time.Second)

		state, result, err := playToCompletion(t, svc, created.ID, hosted.session.Snapshot().Cards)
		require.NoError(t, err)
		assert.Equal(t, game.ResultCompleted, result)
		assert.Equal(t, game.StateComplete, state.State)
		require.NotNil(t, state.Result)
		assert.Equal(t, domain.ScoreRecord{Name: "Ana", Time: 12, Errors: 0}, *state.Result)

		board, err := svc.Leaderboard(ctx)
		require.NoError(t, err)
		require.Len(t, board, len(ranking.DefaultRecords)+1)
		assert.Equal(t, "Ana", board[0].Name)
		assert.Equal(t, board, state.Board.Ranking)
	})

	t.Run("persistence failure returns the completed state", func(t *testing.T) {
		scores := &mocks.MockScoreBoard{
			DefaultStandings: []ranking.Standing{},
			AddScoreFn: func(context.Context, domain.ScoreRecord) (domain.Ranking, error) {
				return nil, errors.New("disk full")
			},
		}
		svc, _ := newTestService(t, 10, scores)

		created, err := svc.CreateGame(ctx)
		require.NoError(t, err)
		_, err = svc.StartGame(ctx, created.ID, "Ana")
		require.NoError(t, err)
		hosted, err := svc.(*gameServiceImpl).lookup(created.ID)
		require.NoError(t, err)

		state, result, err := playToCompletion(t, svc, created.ID, hosted.session.Snapshot().Cards)
		assert.Equal(t, game.ResultCompleted, result)
		require.NotNil(t, state)
		assert.Equal(t, game.StateComplete, state.State)
		assert.ErrorIs(t, err, game.ErrPersistence)
		var gsErr *GameServiceError
		require.True(t, errors.As(err, &gsErr))
		assert.Equal(t, "select", gsErr.Operation)
	})

	t.Run("unknown game", func(t *testing.T) {
		svc, _ := newTestService(t, 10, nil)
		state, result, err := svc.SelectCard(ctx, uuid.New(), 0)
		assert.Nil(t, state)
		assert.Equal(t, game.ResultIgnored, result)
		assert.ErrorIs(t, err, ErrGameNotFound)
	})
}

func TestGameService_EndGame(t *testing.T) {
	ctx := context.Background()
	svc, sched := newTestService(t, 10, nil)
	created, err := svc.CreateGame(ctx)
	require.NoError(t, err)
	_, err = svc.StartGame(ctx, created.ID, "Ana")
	require.NoError(t, err)

	require.NoError(t, svc.EndGame(ctx, created.ID))
	assert.Zero(t, sched.Pending())

	_, err = svc.GetGame(ctx, created.ID)
	assert.ErrorIs(t, err, ErrGameNotFound)
	assert.ErrorIs(t, svc.EndGame(ctx, created.ID), ErrGameNotFound)
}

func TestGameService_LeaderboardError(t *testing.T) {
	scores := &mocks.MockScoreBoard{DefaultError: store.ErrStoreClosed}
	svc, _ := newTestService(t, 10, scores)

	_, err := svc.Leaderboard(context.Background())
	assert.ErrorIs(t, err, store.ErrStoreClosed)
	var gsErr *GameServiceError
	require.True(t, errors.As(err, &gsErr))
	assert.Equal(t, "leaderboard", gsErr.Operation)
}

func TestGameServiceError(t *testing.T) {
	inner := errors.New("boom")
	err := NewGameServiceError("start", "failed to start game", inner)
	assert.Equal(t, "game service start failed: failed to start game: boom", err.Error())
	assert.ErrorIs(t, err, inner)

	bare := NewGameServiceError("start", "no cause", nil)
	assert.Equal(t, "game service start failed: no cause", bare.Error())
}
