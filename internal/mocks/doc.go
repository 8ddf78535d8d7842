// Package mocks provides centralized mock implementations for testing.
//
// Mocks use function fields for custom behavior and fall back to default
// return values when a field is nil:
//
//	scores := &mocks.MockScoreBoard{
//	    AddScoreFn: func(ctx context.Context, r domain.ScoreRecord) (domain.Ranking, error) {
//	        return nil, errors.New("disk full")
//	    },
//	}
//
// Every mock counts its calls per method; see Calls.
package mocks
