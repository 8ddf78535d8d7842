package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/emory/internal/api/shared"
	"github.com/phrazzld/emory/internal/domain"
	"github.com/phrazzld/emory/internal/game"
	"github.com/phrazzld/emory/internal/service"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrResolving):
		return http.StatusConflict
	case errors.Is(err, service.ErrTooManyGames):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err that carries no
// internal detail.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return "Invalid " + verr.Field + ": " + verr.Message
	case errors.Is(err, domain.ErrValidation):
		return "Validation error"
	case errors.Is(err, service.ErrGameNotFound):
		return "Game not found"
	case errors.Is(err, game.ErrResolving):
		return "Wait for the mismatched pair to be hidden"
	case errors.Is(err, service.ErrTooManyGames):
		return "Too many active games, try again later"
	case errors.Is(err, game.ErrPersistence):
		return "Failed to record score"
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the error response for err. fallback replaces the
// generic message for server errors when it is not empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" && !errors.Is(err, game.ErrPersistence) {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
