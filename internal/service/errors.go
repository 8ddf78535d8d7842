package service

import (
	"errors"
	"fmt"
)

var (
	// ErrGameNotFound indicates no game is registered under the requested ID.
	// API layer should map this to HTTP 404 Not Found.
	ErrGameNotFound = errors.New("game not found")

	// ErrTooManyGames indicates the session cap has been reached.
	// API layer should map this to HTTP 503 Service Unavailable.
	ErrTooManyGames = errors.New("too many active games")
)

// GameServiceError is a custom error type for game service errors.
type GameServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for GameServiceError.
func (e *GameServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("game service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("game service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GameServiceError) Unwrap() error {
	return e.Err
}

// NewGameServiceError creates a new GameServiceError.
func NewGameServiceError(operation, message string, err error) *GameServiceError {
	return &GameServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
