// Package task schedules one-shot deferred work, such as hiding a mismatched
// pair once its display delay has elapsed. Scheduler hides the timer source
// so game logic can run against real timers in production and a manually
// advanced clock in tests.
package task
