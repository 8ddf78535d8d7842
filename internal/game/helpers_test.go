package game

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/emory/internal/domain"
	"github.com/phrazzld/emory/internal/events"
	"github.com/phrazzld/emory/internal/ranking"
	"github.com/phrazzld/emory/internal/store"
	"github.com/phrazzld/emory/internal/task"
	"github.com/stretchr/testify/require"
)

var testSymbols = []domain.Symbol{"🐶", "🐱", "🐭", "🐹", "🐰", "🦊", "🐻", "🐼"}

var testStart = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// recordingRenderer keeps the last value of every visual and a log of calls.
type recordingRenderer struct {
	mu           sync.Mutex
	calls        []string
	deckSize     int
	visuals      map[int]domain.CardState
	symbols      map[int]domain.Symbol
	inputEnabled bool
	feedback     string
	feedbackErr  bool
	standings    []ranking.Standing
	rankingShown int
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{
		visuals: make(map[int]domain.CardState),
		symbols: make(map[int]domain.Symbol),
	}
}

func (r *recordingRenderer) DisplayDeck(cards []domain.Card) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "DisplayDeck")
	r.deckSize = len(cards)
	r.visuals = make(map[int]domain.CardState, len(cards))
	r.symbols = make(map[int]domain.Symbol, len(cards))
	for _, c := range cards {
		r.visuals[c.Index] = c.State
	}
}

func (r *recordingRenderer) SetCardVisual(index int, state domain.CardState, symbol domain.Symbol) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf("SetCardVisual(%d,%s)", index, state))
	r.visuals[index] = state
	r.symbols[index] = symbol
}

func (r *recordingRenderer) SetInputEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf("SetInputEnabled(%t)", enabled))
	r.inputEnabled = enabled
}

func (r *recordingRenderer) ShowFeedback(message string, isError bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "ShowFeedback")
	r.feedback = message
	r.feedbackErr = isError
}

func (r *recordingRenderer) ClearFeedback() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "ClearFeedback")
	r.feedback = ""
	r.feedbackErr = false
}

func (r *recordingRenderer) ShowRanking(standings []ranking.Standing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "ShowRanking")
	r.standings = standings
	r.rankingShown++
}

func (r *recordingRenderer) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// eventRecorder collects emitted event types.
type eventRecorder struct {
	mu    sync.Mutex
	types []string
}

func (e *eventRecorder) HandleEvent(_ context.Context, event *events.GameEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.types = append(e.types, event.Type)
	return nil
}

func (e *eventRecorder) Types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.types...)
}

type harness struct {
	session   *Session
	renderer  *recordingRenderer
	scheduler *task.ManualScheduler
	ranking   *ranking.Store
	kv        *store.MemoryKVStore
	events    *eventRecorder
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHarness(t *testing.T, pairCount int) *harness {
	t.Helper()

	h := &harness{
		renderer:  newRecordingRenderer(),
		scheduler: task.NewManualScheduler(testStart),
		kv:        store.NewMemoryKVStore(),
		events:    &eventRecorder{},
	}
	h.ranking = ranking.NewStore(h.kv, discardLogger())

	emitter := events.NewInMemoryEventEmitter(discardLogger())
	emitter.RegisterHandler(h.events)

	session, err := NewSession(Config{
		Symbols:       testSymbols,
		PairCount:     pairCount,
		MismatchDelay: DefaultMismatchDelay,
	}, Dependencies{
		Renderer:  h.renderer,
		Scores:    h.ranking,
		Scheduler: h.scheduler,
		Clock:     h.scheduler.Now,
		Rand:      rand.New(rand.NewPCG(7, 11)),
		Emitter:   emitter,
	}, discardLogger())
	require.NoError(t, err)
	h.session = session
	return h
}

// pairs groups the dealt card indices by symbol.
func pairs(cards []domain.Card) map[domain.Symbol][]int {
	out := make(map[domain.Symbol][]int)
	for _, c := range cards {
		out[c.Symbol] = append(out[c.Symbol], c.Index)
	}
	return out
}

// mismatchedPair returns two indices holding different symbols.
func mismatchedPair(t *testing.T, cards []domain.Card) (int, int) {
	t.Helper()
	for i := 1; i < len(cards); i++ {
		if cards[i].Symbol != cards[0].Symbol {
			return 0, i
		}
	}
	t.Fatal("deck has no mismatched pair")
	return 0, 0
}
