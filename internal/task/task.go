package task

import (
	"sync/atomic"
	"time"
)

// Status represents the current state of a deferred task.
type Status int32

// Possible task status values.
const (
	StatusPending Status = iota
	StatusRunning
	StatusCompleted
	StatusCancelled
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Handle refers to a scheduled task.
type Handle interface {
	// Name returns the name the task was scheduled with.
	Name() string

	// Stop cancels the task if it has not started. It reports whether the
	// call prevented the task from running.
	Stop() bool

	// Status returns the current task status.
	Status() Status
}

// Scheduler runs a function once after a delay.
type Scheduler interface {
	// Schedule arranges for fn to run once after d. The name is used in logs.
	Schedule(name string, d time.Duration, fn func()) Handle
}

// Clock returns the current time.
type Clock func() time.Time

// handle is the Handle shared by both schedulers.
type handle struct {
	name   string
	status atomic.Int32
	cancel func() bool
}

func newHandle(name string) *handle {
	return &handle{name: name}
}

func (h *handle) Name() string {
	return h.name
}

func (h *handle) Status() Status {
	return Status(h.status.Load())
}

func (h *handle) Stop() bool {
	if !h.status.CompareAndSwap(int32(StatusPending), int32(StatusCancelled)) {
		return false
	}
	if h.cancel != nil {
		h.cancel()
	}
	return true
}

// begin moves a pending task to running. It returns false if the task was cancelled.
func (h *handle) begin() bool {
	return h.status.CompareAndSwap(int32(StatusPending), int32(StatusRunning))
}

func (h *handle) finish() {
	h.status.Store(int32(StatusCompleted))
}
