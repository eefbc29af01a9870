package testutil

import (
	"math/rand/v2"
	"strings"
)

// FixedRunID returns the same run ID every time, so golden traces never
// carry a random identifier.
type FixedRunID struct {
	id string
}

// NewFixedRunID returns a generator for id, or "test-run-default" if id is empty.
func NewFixedRunID(id string) *FixedRunID {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunID{id: id}
}

// Generate returns the fixed run ID.
func (g *FixedRunID) Generate() string {
	return g.id
}

// Literals produces pseudo-random decimal literals from a fixed seed.
// The same seed always yields the same sequence. Not safe for concurrent use.
type Literals struct {
	r *rand.Rand
}

// NewLiterals returns a generator seeded with seed.
func NewLiterals(seed uint64) *Literals {
	return &Literals{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Next returns a literal of 1 to maxDigits digits, negative half the time.
// Leading zeros are allowed, so outputs exercise normalization too.
func (l *Literals) Next(maxDigits int) string {
	var sb strings.Builder
	if l.r.IntN(2) == 0 {
		sb.WriteByte('-')
	}
	n := 1 + l.r.IntN(maxDigits)
	for i := 0; i < n; i++ {
		sb.WriteByte(byte('0' + l.r.IntN(10)))
	}
	return sb.String()
}

// NonZero is like Next but never returns a literal equal to zero.
func (l *Literals) NonZero(maxDigits int) string {
	s := l.Next(maxDigits)
	if strings.Trim(s, "-0") == "" {
		return s + "1"
	}
	return s
}
