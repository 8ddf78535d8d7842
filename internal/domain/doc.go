// Package domain contains the core entities of the memory game: cards,
// symbols, score records and the leaderboard, together with the validation
// errors they produce. It has no knowledge of storage or presentation.
package domain
