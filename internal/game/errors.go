package game

import "errors"

var (
	// ErrResolving is returned by StartGame while a mismatched pair is still
	// waiting to be hidden.
	ErrResolving = errors.New("cannot start a game while a mismatch is resolving")

	// ErrPersistence is returned when a finished game's score could not be
	// stored. The session is still complete.
	ErrPersistence = errors.New("failed to record score")
)
