package task

import (
	"fmt"
	"log/slog"
	"time"
)

// TimerScheduler runs tasks on Go timers. Each task runs on its own
// goroutine, so callers must synchronize any state the task touches.
type TimerScheduler struct {
	logger *slog.Logger
}

var _ Scheduler = (*TimerScheduler)(nil)

// NewTimerScheduler creates a scheduler backed by time.AfterFunc.
// If logger is nil, slog.Default() is used.
func NewTimerScheduler(logger *slog.Logger) *TimerScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TimerScheduler{logger: logger.With(slog.String("component", "timer_scheduler"))}
}

// Schedule implements Scheduler.
func (s *TimerScheduler) Schedule(name string, d time.Duration, fn func()) Handle {
	h := newHandle(name)
	s.logger.Debug("task scheduled", slog.String("task_name", name), slog.Duration("delay", d))

	timer := time.AfterFunc(d, func() {
		run(s.logger, h, fn)
	})
	h.cancel = timer.Stop
	return h
}

// run executes fn for h, logging and swallowing panics so a faulty task
// cannot crash the process from a timer goroutine.
func run(logger *slog.Logger, h *handle, fn func()) {
	if !h.begin() {
		return
	}
	defer h.finish()
	defer func() {
		if p := recover(); p != nil {
			logger.Error("task panicked",
				slog.String("task_name", h.name),
				slog.String("panic", fmt.Sprint(p)))
		}
	}()

	fn()
	logger.Debug("task completed", slog.String("task_name", h.name))
}
