// Package store defines the key-value persistence abstraction the leaderboard
// is written through, the errors every backend reports, and an in-memory
// backend. Durable backends live under internal/platform.
package store
