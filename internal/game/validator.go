package game

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/emory/internal/domain"
)

// MaxNameLength bounds the raw player name, in characters.
const MaxNameLength = 40

type nameInput struct {
	Name string `validate:"required,max=40"`
}

// PlayerNameValidator accepts any name that is non-empty after trimming
// surrounding whitespace and at most MaxNameLength characters long.
type PlayerNameValidator struct {
	validate *validator.Validate
}

var _ NameValidator = (*PlayerNameValidator)(nil)

// NewNameValidator creates a PlayerNameValidator.
func NewNameValidator() *PlayerNameValidator {
	return &PlayerNameValidator{validate: validator.New()}
}

// ValidateName implements NameValidator.
func (v *PlayerNameValidator) ValidateName(raw string) error {
	if err := v.validate.Struct(nameInput{Name: strings.TrimSpace(raw)}); err != nil {
		return domain.NewValidationError("name", "must not be blank or longer than 40 characters", domain.ErrInvalidName)
	}
	return nil
}
