// Package rngtest provides a deterministic rng.Source for tests.
package rngtest

import "thinlens-renderer/internal/rng"

var _ rng.Source = (*Sequence)(nil)

// Sequence replays a fixed list of values, wrapping around at the end, and
// counts how many values were drawn.
type Sequence struct {
	values []float64
	next   int
	draws  int
}

// NewSequence returns a Sequence over values.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 returns the next value. An empty sequence always yields 0.5.
func (s *Sequence) Float64() float64 {
	s.draws++
	if len(s.values) == 0 {
		return 0.5
	}
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v
}

// Draws returns the number of Float64 calls so far.
func (s *Sequence) Draws() int { return s.draws }
