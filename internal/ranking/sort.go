package ranking

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/phrazzld/emory/internal/domain"
)

// SortPolicy decides leaderboard order.
type SortPolicy int

const (
	// ByTime orders by ascending time, then ascending errors.
	ByTime SortPolicy = iota
	// ByErrors orders by ascending errors, then ascending time.
	ByErrors
)

// String returns the policy name.
func (p SortPolicy) String() string {
	switch p {
	case ByTime:
		return "time"
	case ByErrors:
		return "errors"
	default:
		return fmt.Sprintf("SortPolicy(%d)", int(p))
	}
}

// Standing is a ranked leaderboard row with its 1-based position.
type Standing struct {
	Position int `json:"position"`
	domain.ScoreRecord
}

// Sort returns a sorted copy of r. Equal records keep insertion order.
func Sort(r domain.Ranking, policy SortPolicy) domain.Ranking {
	sorted := slices.Clone(r)
	if sorted == nil {
		sorted = domain.Ranking{}
	}

	slices.SortStableFunc(sorted, func(a, b domain.ScoreRecord) int {
		if policy == ByErrors {
			return cmp.Or(cmp.Compare(a.Errors, b.Errors), cmp.Compare(a.Time, b.Time))
		}
		return cmp.Or(cmp.Compare(a.Time, b.Time), cmp.Compare(a.Errors, b.Errors))
	})
	return sorted
}

// SortedView orders r by time, then errors.
func SortedView(r domain.Ranking) domain.Ranking {
	return Sort(r, ByTime)
}

// Standings sorts r with policy and numbers the rows from 1.
func Standings(r domain.Ranking, policy SortPolicy) []Standing {
	sorted := Sort(r, policy)
	standings := make([]Standing, len(sorted))
	for i, rec := range sorted {
		standings[i] = Standing{Position: i + 1, ScoreRecord: rec}
	}
	return standings
}
