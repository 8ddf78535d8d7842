package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/emory/internal/domain"
	"github.com/phrazzld/emory/internal/domain/deck"
	"github.com/phrazzld/emory/internal/events"
	"github.com/phrazzld/emory/internal/platform/logger"
	"github.com/phrazzld/emory/internal/task"
)

const (
	// DefaultPairCount is the number of pairs in a standard deck.
	DefaultPairCount = 8

	// DefaultMismatchDelay is how long a mismatched pair stays face up.
	DefaultMismatchDelay = 2 * time.Second

	// MismatchFeedback is shown while a mismatched pair is face up.
	MismatchFeedback = "Incorrect!"

	// CompletionFeedback is formatted with the sanitized name, the time in
	// seconds and the error count.
	CompletionFeedback = "Congratulations %s! You finished the game in %d seconds with %d errors!"

	mismatchTaskName = "mismatch_reset"
)

// Config describes the deck and timing of a Session.
type Config struct {
	Symbols       []domain.Symbol
	PairCount     int
	MismatchDelay time.Duration
}

// Dependencies are the collaborators of a Session. Renderer and Scores are
// required; the rest fall back to production defaults when nil.
type Dependencies struct {
	Renderer  Renderer
	Scores    ScoreBoard
	Names     NameValidator
	Scheduler task.Scheduler
	Clock     task.Clock
	Rand      *rand.Rand
	Emitter   events.EventEmitter
}

// Snapshot is a copy of a Session's state. Cards include their symbols
// regardless of state.
type Snapshot struct {
	ID         uuid.UUID
	State      State
	PlayerName string
	Cards      []domain.Card
	Selected   []int
	Matched    int
	Attempts   int
	StartedAt  time.Time
	Result     *domain.ScoreRecord
}

// Session runs one player's games. All methods are safe for concurrent use;
// input and the mismatch timer are serialized on one lock.
type Session struct {
	id            uuid.UUID
	builder       *deck.Builder
	mismatchDelay time.Duration

	renderer  Renderer
	scores    ScoreBoard
	names     NameValidator
	scheduler task.Scheduler
	clock     task.Clock
	emitter   events.EventEmitter
	logger    *slog.Logger

	mu         sync.Mutex
	state      State
	playerName string
	cards      []domain.Card
	selected   []int
	matched    int
	attempts   int
	startedAt  time.Time
	result     *domain.ScoreRecord
	pending    task.Handle
}

// NewSession creates an idle Session.
// If logger is nil, slog.Default() is used.
func NewSession(cfg Config, deps Dependencies, logger *slog.Logger) (*Session, error) {
	if deps.Renderer == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("renderer cannot be nil")
	}
	if deps.Scores == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("score board cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MismatchDelay < 0 {
		return nil, fmt.Errorf("mismatch delay must not be negative: %s", cfg.MismatchDelay)
	}

	builder, err := deck.NewBuilder(cfg.Symbols, cfg.PairCount, deps.Rand)
	if err != nil {
		return nil, fmt.Errorf("invalid deck configuration: %w", err)
	}

	id := uuid.New()
	s := &Session{
		id:            id,
		builder:       builder,
		mismatchDelay: cfg.MismatchDelay,
		renderer:      deps.Renderer,
		scores:        deps.Scores,
		names:         deps.Names,
		scheduler:     deps.Scheduler,
		clock:         deps.Clock,
		emitter:       deps.Emitter,
		logger: logger.With(
			slog.String("component", "game_session"),
			slog.String("game_id", id.String())),
		state: StateIdle,
	}
	if s.names == nil {
		s.names = NewNameValidator()
	}
	if s.scheduler == nil {
		s.scheduler = task.NewTimerScheduler(logger)
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	return s, nil
}

// ID returns the session's identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:         s.id,
		State:      s.state,
		PlayerName: s.playerName,
		Cards:      slices.Clone(s.cards),
		Selected:   slices.Clone(s.selected),
		Matched:    s.matched,
		Attempts:   s.attempts,
		StartedAt:  s.startedAt,
	}
	if s.result != nil {
		r := *s.result
		snap.Result = &r
	}
	return snap
}

// StartGame deals a new deck for playerName and starts the clock. It may be
// called when idle, while playing (restarting the game) or after completion.
// It returns a *domain.ValidationError for an invalid name and ErrResolving
// while a mismatched pair is face up; in both cases nothing changes.
func (s *Session) StartGame(ctx context.Context, playerName string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	if s.state == StateResolving {
		s.mu.Unlock()
		return ErrResolving
	}
	if err := s.names.ValidateName(playerName); err != nil {
		s.mu.Unlock()
		if !errors.Is(err, domain.ErrValidation) {
			err = domain.NewValidationError("name", "is invalid", err)
		}
		return err
	}

	cards, err := s.builder.Deal()
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to deal deck: %w", err)
	}

	s.cards = cards
	s.selected = s.selected[:0]
	s.matched = 0
	s.attempts = 0
	s.playerName = playerName
	s.startedAt = s.clock()
	s.result = nil
	s.pending = nil
	s.state = StatePlaying

	s.renderer.ClearFeedback()
	s.renderer.DisplayDeck(slices.Clone(cards))
	s.renderer.SetInputEnabled(true)
	if standings, err := s.scores.Leaderboard(ctx); err != nil {
		log.Warn("failed to load leaderboard", slog.String("error", err.Error()))
	} else {
		s.renderer.ShowRanking(standings)
	}
	s.mu.Unlock()

	log.Info("game started", slog.Int("card_count", len(cards)))
	s.emit(ctx, events.TypeGameStarted, events.GameStartedPayload{
		GameID:     s.id.String(),
		PlayerName: playerName,
		CardCount:  len(cards),
	})
	return nil
}

// SelectCard turns the card at index face up. Selections are ignored, with
// no state change, unless the session is playing and the card is hidden.
// The second card of a pair is evaluated at once: a match stays face up, a
// mismatch locks input until the mismatch delay has elapsed, and the last
// match completes the game and records its score.
//
// When the score cannot be recorded, SelectCard returns ResultCompleted
// together with an error wrapping ErrPersistence.
func (s *Session) SelectCard(ctx context.Context, index int) (SelectResult, error) {
	s.mu.Lock()
	if s.state != StatePlaying || index < 0 || index >= len(s.cards) ||
		len(s.selected) >= 2 || !s.cards[index].Selectable() {
		s.mu.Unlock()
		return ResultIgnored, nil
	}

	card := &s.cards[index]
	card.State = domain.CardSelected
	s.selected = append(s.selected, index)
	s.renderer.SetCardVisual(index, card.State, card.Symbol)

	if len(s.selected) < 2 {
		s.mu.Unlock()
		return ResultSelected, nil
	}

	result, pending, err := s.evaluate(ctx)
	s.mu.Unlock()

	for _, ev := range pending {
		s.emit(ctx, ev.typ, ev.payload)
	}
	return result, err
}

type pendingEvent struct {
	typ     string
	payload interface{}
}

// evaluate resolves the two selected cards. The caller holds s.mu.
func (s *Session) evaluate(ctx context.Context) (SelectResult, []pendingEvent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.attempts++
	first, second := s.selected[0], s.selected[1]
	pair := events.PairPayload{
		GameID:   s.id.String(),
		First:    first,
		Second:   second,
		Attempts: s.attempts,
	}

	if s.cards[first].Symbol != s.cards[second].Symbol {
		s.state = StateResolving
		s.renderer.ShowFeedback(MismatchFeedback, true)
		s.renderer.SetInputEnabled(false)
		s.pending = s.scheduler.Schedule(mismatchTaskName, s.mismatchDelay, func() {
			s.resolveMismatch(first, second)
		})
		log.Debug("pair mismatched", slog.Int("first", first), slog.Int("second", second))
		return ResultMismatched, []pendingEvent{{events.TypePairMismatched, pair}}, nil
	}

	for _, i := range s.selected {
		s.cards[i].State = domain.CardMatched
		s.renderer.SetCardVisual(i, domain.CardMatched, s.cards[i].Symbol)
	}
	s.selected = s.selected[:0]
	s.matched += 2
	log.Debug("pair matched", slog.Int("first", first), slog.Int("second", second))

	evs := []pendingEvent{{events.TypePairMatched, pair}}
	if s.matched < len(s.cards) {
		return ResultMatched, evs, nil
	}

	completed, err := s.complete(ctx)
	return ResultCompleted, append(evs, completed), err
}

// complete records the finished game. The caller holds s.mu.
func (s *Session) complete(ctx context.Context) (pendingEvent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.state = StateComplete
	elapsed := s.clock().Sub(s.startedAt)
	record := domain.NewScoreRecord(s.playerName, elapsed, s.attempts, s.builder.PairCount())
	s.result = &record

	s.renderer.SetInputEnabled(false)
	s.renderer.ShowFeedback(fmt.Sprintf(CompletionFeedback, record.Name, record.Time, record.Errors), false)

	ev := pendingEvent{events.TypeGameCompleted, events.GameCompletedPayload{
		GameID:   s.id.String(),
		Name:     record.Name,
		Time:     record.Time,
		Errors:   record.Errors,
		Attempts: s.attempts,
	}}

	ranking, err := s.scores.AddScore(ctx, record)
	if err != nil {
		log.Error("failed to record score",
			slog.String("error", err.Error()),
			slog.String("name", record.Name))
		return ev, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	s.renderer.ShowRanking(s.scores.Standings(ranking))

	log.Info("game completed",
		slog.String("name", record.Name),
		slog.Int("time", record.Time),
		slog.Int("errors", record.Errors))
	return ev, nil
}

// resolveMismatch hides a mismatched pair once the delay has elapsed.
func (s *Session) resolveMismatch(first, second int) {
	s.mu.Lock()
	if s.state != StateResolving {
		s.mu.Unlock()
		return
	}

	for _, i := range []int{first, second} {
		s.cards[i].State = domain.CardHidden
		s.renderer.SetCardVisual(i, domain.CardHidden, "")
	}
	s.selected = s.selected[:0]
	s.pending = nil
	s.state = StatePlaying
	s.renderer.ClearFeedback()
	s.renderer.SetInputEnabled(true)
	attempts := s.attempts
	s.mu.Unlock()

	s.emit(context.Background(), events.TypePairReset, events.PairPayload{
		GameID:   s.id.String(),
		First:    first,
		Second:   second,
		Attempts: attempts,
	})
}

// Close cancels a pending mismatch reset. A face-up mismatched pair then
// stays face up.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

func (s *Session) emit(ctx context.Context, eventType string, payload interface{}) {
	if s.emitter == nil {
		return
	}
	event, err := events.NewGameEvent(eventType, payload)
	if err != nil {
		s.logger.Error("failed to create game event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.Warn("failed to emit game event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
	}
}
