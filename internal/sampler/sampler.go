// Package sampler selects and orders questions for a session.
package sampler

import (
	"math/rand/v2"

	"github.com/mpatel/biotutor/internal/bank"
)

// Source yields values in [0, 1). Injectable so tests can fix the
// ordering; the zero value of Sampler uses math/rand/v2.
type Source func() float64

// Sampler draws session question lists from a pool.
type Sampler struct {
	src Source
}

// New returns a sampler over the given source. A nil source uses the
// shared math/rand/v2 generator.
func New(src Source) *Sampler {
	if src == nil {
		src = rand.Float64
	}
	return &Sampler{src: src}
}

// Shuffle returns a new slice with the pool's questions in random
// order. The input is never mutated.
func (s *Sampler) Shuffle(pool []bank.Question) []bank.Question {
	out := make([]bank.Question, len(pool))
	copy(out, pool)
	for i := len(out) - 1; i > 0; i-- {
		j := int(s.src() * float64(i+1))
		if j > i {
			j = i
		}
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Sample returns count questions drawn from the pool. When count is at
// most the pool size the result is count distinct questions. When the
// requested count exceeds the pool, the pool is reshuffled in
// independent passes and concatenated, so repeats are spread as evenly
// as possible. An empty pool or non-positive count yields nil.
func (s *Sampler) Sample(pool []bank.Question, count int) []bank.Question {
	if len(pool) == 0 || count <= 0 {
		return nil
	}
	if count <= len(pool) {
		return s.Shuffle(pool)[:count]
	}

	out := make([]bank.Question, 0, count)
	for len(out) < count {
		pass := s.Shuffle(pool)
		need := count - len(out)
		if need < len(pass) {
			pass = pass[:need]
		}
		out = append(out, pass...)
	}
	return out
}
