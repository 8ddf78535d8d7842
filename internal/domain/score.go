package domain

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ScoreRecord is one finished game on the leaderboard.
// Time is in whole seconds; Errors is attempts beyond the minimum.
type ScoreRecord struct {
	Name   string `json:"name"`
	Time   int    `json:"time" validate:"gte=0"`
	Errors int    `json:"errors"`
}

// Ranking is the full persisted leaderboard, in insertion order.
type Ranking []ScoreRecord

// NewScoreRecord builds the record for a completed game.
// errors is attempts - pairs and is not clamped.
func NewScoreRecord(rawName string, elapsed time.Duration, attempts, pairs int) ScoreRecord {
	return ScoreRecord{
		Name:   SanitizeName(rawName),
		Time:   RoundSeconds(elapsed),
		Errors: attempts - pairs,
	}
}

// Validate checks the record invariants.
func (r ScoreRecord) Validate() error {
	if r.Time < 0 {
		return NewValidationError("time", "must not be negative", ErrInvalidScore)
	}
	return nil
}

// RoundSeconds converts d to whole seconds, rounding half up.
func RoundSeconds(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d.Round(time.Second) / time.Second)
}

// SanitizeName keeps ASCII letters and single spaces between words, then
// lowercases the name and uppercases the first letter of each word.
// "  joHN  doe " becomes "John Doe".
func SanitizeName(raw string) string {
	filtered := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			return r
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, raw)

	collapsed := strings.Join(strings.Fields(filtered), " ")
	if collapsed == "" {
		return ""
	}

	// Casers are stateful and must not be shared between goroutines.
	return cases.Title(language.Und).String(strings.ToLower(collapsed))
}
