package task

import (
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// ManualScheduler runs tasks only when its clock is advanced. It is meant
// for tests that need deterministic control over delays.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []manualEntry
	logger  *slog.Logger
}

type manualEntry struct {
	at  time.Time
	seq int
	h   *handle
	fn  func()
}

var _ Scheduler = (*ManualScheduler)(nil)

// NewManualScheduler returns a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{
		now:    start,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Now returns the scheduler's current time. It can be used as a Clock.
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Schedule implements Scheduler.
func (s *ManualScheduler) Schedule(name string, d time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := newHandle(name)
	s.seq++
	s.pending = append(s.pending, manualEntry{at: s.now.Add(d), seq: s.seq, h: h, fn: fn})
	return h
}

// Pending returns the number of tasks that have been scheduled but not yet
// run or cancelled.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.pending {
		if e.h.Status() == StatusPending {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d and runs every task that has come
// due, in due-time order. Tasks run on the calling goroutine without the
// scheduler lock held, so they may schedule further tasks.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		s.mu.Lock()
		sort.SliceStable(s.pending, func(i, j int) bool {
			if s.pending[i].at.Equal(s.pending[j].at) {
				return s.pending[i].seq < s.pending[j].seq
			}
			return s.pending[i].at.Before(s.pending[j].at)
		})
		if len(s.pending) == 0 || s.pending[0].at.After(target) {
			s.now = target
			s.mu.Unlock()
			return
		}
		next := s.pending[0]
		s.pending = s.pending[1:]
		s.now = next.at
		s.mu.Unlock()

		run(s.logger, next.h, next.fn)
	}
}
