// Package deck builds and shuffles the paired symbol decks a game is dealt from.
package deck

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/phrazzld/emory/internal/domain"
)

// Common errors
var (
	ErrInvalidPairCount = errors.New("pair count must be at least 1")
	ErrNotEnoughSymbols = errors.New("pair count exceeds the number of symbols")
	ErrDuplicateSymbol  = errors.New("symbols used in a deck must be distinct")
)

// Build returns the first pairCount symbols of alphabet followed by the same
// symbols again, so the result has 2*pairCount entries and every symbol
// appears exactly twice. The result is not shuffled.
func Build(alphabet []domain.Symbol, pairCount int) ([]domain.Symbol, error) {
	if pairCount < 1 {
		return nil, ErrInvalidPairCount
	}
	if pairCount > len(alphabet) {
		return nil, fmt.Errorf("%w: %d pairs requested, %d symbols available",
			ErrNotEnoughSymbols, pairCount, len(alphabet))
	}

	used := alphabet[:pairCount]
	seen := make(map[domain.Symbol]struct{}, pairCount)
	for _, s := range used {
		if _, dup := seen[s]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSymbol, s)
		}
		seen[s] = struct{}{}
	}

	symbols := make([]domain.Symbol, 0, 2*pairCount)
	symbols = append(symbols, used...)
	symbols = append(symbols, used...)
	return symbols, nil
}

// Shuffle permutes s in place with the Fisher–Yates algorithm: for i from the
// last index down to 1, s[i] is swapped with s[j] for a uniform j in [0, i].
func Shuffle[T any](s []T, r *rand.Rand) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// NewRand returns a PRNG seeded from crypto/rand.
func NewRand() (*rand.Rand, error) {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:]))), nil
}

// Builder deals shuffled decks from a fixed alphabet.
// A Builder is not safe for concurrent use.
type Builder struct {
	alphabet  []domain.Symbol
	pairCount int
	rng       *rand.Rand
}

// NewBuilder validates the alphabet and pair count once, up front.
// If rng is nil, a crypto-seeded source is used.
func NewBuilder(alphabet []domain.Symbol, pairCount int, rng *rand.Rand) (*Builder, error) {
	if _, err := Build(alphabet, pairCount); err != nil {
		return nil, err
	}

	if rng == nil {
		var err error
		if rng, err = NewRand(); err != nil {
			return nil, err
		}
	}

	return &Builder{
		alphabet:  append([]domain.Symbol(nil), alphabet...),
		pairCount: pairCount,
		rng:       rng,
	}, nil
}

// PairCount returns the number of pairs in every dealt deck.
func (b *Builder) PairCount() int {
	return b.pairCount
}

// Deal builds, shuffles and wraps a fresh deck into hidden cards indexed
// 0..2*PairCount()-1.
func (b *Builder) Deal() ([]domain.Card, error) {
	symbols, err := Build(b.alphabet, b.pairCount)
	if err != nil {
		return nil, err
	}
	Shuffle(symbols, b.rng)

	cards := make([]domain.Card, len(symbols))
	for i, s := range symbols {
		cards[i] = domain.Card{Index: i, Symbol: s, State: domain.CardHidden}
	}
	return cards, nil
}
