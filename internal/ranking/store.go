package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/emory/internal/domain"
	"github.com/phrazzld/emory/internal/platform/logger"
	"github.com/phrazzld/emory/internal/store"
)

// Key is the store key the leaderboard is kept under.
const Key = "ranking-emory"

// DefaultRecords seed an empty store.
var DefaultRecords = domain.Ranking{
	{Name: "Mark", Time: 50, Errors: 3},
	{Name: "Brian", Time: 60, Errors: 6},
	{Name: "Jenny", Time: 70, Errors: 7},
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the store key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithSeed overrides the records written to an empty store.
func WithSeed(seed domain.Ranking) Option {
	return func(s *Store) { s.seed = slices.Clone(seed) }
}

// WithSortPolicy overrides the leaderboard order.
func WithSortPolicy(p SortPolicy) Option {
	return func(s *Store) { s.policy = p }
}

// Store loads, seeds and saves the leaderboard. Operations on one Store are
// serialized, so AddScore's read-modify-write is atomic for its callers.
type Store struct {
	kv       store.KVStore
	key      string
	seed     domain.Ranking
	policy   SortPolicy
	validate *validator.Validate
	logger   *slog.Logger

	mu sync.Mutex
}

// NewStore creates a leaderboard store over kv.
// If logger is nil, slog.Default() is used.
func NewStore(kv store.KVStore, logger *slog.Logger, opts ...Option) *Store {
	if kv == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("kv store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		kv:       kv,
		key:      Key,
		seed:     slices.Clone(DefaultRecords),
		policy:   ByTime,
		validate: validator.New(),
		logger:   logger.With(slog.String("component", "ranking_store")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the sort policy used by Leaderboard and Standings.
func (s *Store) Policy() SortPolicy {
	return s.policy
}

// Load returns the persisted ranking. A missing, null or undecodable entry is
// replaced with the seed records, which are persisted before returning.
func (s *Store) Load(ctx context.Context) (domain.Ranking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Save overwrites the persisted ranking with r.
func (s *Store) Save(ctx context.Context, r domain.Ranking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, r)
}

// AddScore appends record to the persisted ranking and returns the result.
func (s *Store) AddScore(ctx context.Context, record domain.ScoreRecord) (domain.Ranking, error) {
	if err := s.validate.Struct(record); err != nil {
		return nil, domain.NewValidationError("score", err.Error(), domain.ErrInvalidScore)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	r = append(r, record)
	if err := s.save(ctx, r); err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("score added to ranking",
		slog.String("name", record.Name),
		slog.Int("time", record.Time),
		slog.Int("errors", record.Errors),
		slog.Int("ranking_size", len(r)))
	return r, nil
}

// Leaderboard loads the ranking and returns it in display order.
func (s *Store) Leaderboard(ctx context.Context) ([]Standing, error) {
	r, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.Standings(r), nil
}

// Standings orders r with the store's policy.
func (s *Store) Standings(r domain.Ranking) []Standing {
	return Standings(r, s.policy)
}

func (s *Store) load(ctx context.Context) (domain.Ranking, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	raw, err := s.kv.Get(ctx, s.key)
	if store.IsNotFoundError(err) {
		log.Info("no ranking stored, seeding defaults", slog.String("key", s.key))
		return s.seedRanking(ctx)
	}
	if err != nil {
		return nil, store.NewStoreError("ranking", "load", "failed to read ranking", err)
	}

	var r domain.Ranking
	if err := json.Unmarshal(raw, &r); err != nil {
		log.Warn("stored ranking is corrupt, seeding defaults",
			slog.String("key", s.key),
			slog.String("error", err.Error()))
		return s.seedRanking(ctx)
	}
	if r == nil {
		// JSON null carries no ranking.
		log.Info("stored ranking is null, seeding defaults", slog.String("key", s.key))
		return s.seedRanking(ctx)
	}
	return r, nil
}

func (s *Store) seedRanking(ctx context.Context) (domain.Ranking, error) {
	seed := slices.Clone(s.seed)
	if seed == nil {
		seed = domain.Ranking{}
	}
	if err := s.save(ctx, seed); err != nil {
		return nil, err
	}
	return seed, nil
}

func (s *Store) save(ctx context.Context, r domain.Ranking) error {
	if r == nil {
		r = domain.Ranking{}
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal ranking: %w", err)
	}
	if err := s.kv.Put(ctx, s.key, payload); err != nil {
		return store.NewStoreError("ranking", "save", "failed to write ranking", err)
	}
	return nil
}
