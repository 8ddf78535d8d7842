package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/emory/internal/domain"
	"github.com/phrazzld/emory/internal/ranking"
)

// MockScoreBoard implements game.ScoreBoard for testing
type MockScoreBoard struct {
	// Custom behavior functions
	AddScoreFn    func(ctx context.Context, record domain.ScoreRecord) (domain.Ranking, error)
	LeaderboardFn func(ctx context.Context) ([]ranking.Standing, error)
	StandingsFn   func(r domain.Ranking) []ranking.Standing

	// Default return values
	DefaultRanking   domain.Ranking
	DefaultStandings []ranking.Standing
	DefaultError     error

	mu    sync.Mutex
	calls map[string]int
}

// AddScore implements the ScoreBoard.AddScore method
func (m *MockScoreBoard) AddScore(ctx context.Context, record domain.ScoreRecord) (domain.Ranking, error) {
	m.record("AddScore")
	if m.AddScoreFn != nil {
		return m.AddScoreFn(ctx, record)
	}
	return m.DefaultRanking, m.DefaultError
}

// Leaderboard implements the ScoreBoard.Leaderboard method
func (m *MockScoreBoard) Leaderboard(ctx context.Context) ([]ranking.Standing, error) {
	m.record("Leaderboard")
	if m.LeaderboardFn != nil {
		return m.LeaderboardFn(ctx)
	}
	return m.DefaultStandings, m.DefaultError
}

// Standings implements the ScoreBoard.Standings method
func (m *MockScoreBoard) Standings(r domain.Ranking) []ranking.Standing {
	m.record("Standings")
	if m.StandingsFn != nil {
		return m.StandingsFn(r)
	}
	return m.DefaultStandings
}

// Calls returns how many times method has been called.
func (m *MockScoreBoard) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockScoreBoard) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}
