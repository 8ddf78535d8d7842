// Package ranking persists the leaderboard as a single JSON document in a
// key-value store and produces its sorted view.
//
// The whole ranking is read, modified and written back on every change;
// there are no incremental updates. A store with no entry is seeded once
// with three sample records. An entry that exists but holds an empty array
// is left alone.
package ranking
