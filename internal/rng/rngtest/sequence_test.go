package rngtest

import "testing"

func TestSequenceWraps(t *testing.T) {
	s := NewSequence(0.1, 0.9)
	want := []float64{0.1, 0.9, 0.1}
	for i, w := range want {
		if got := s.Float64(); got != w {
			t.Errorf("draw %d = %f, want %f", i, got, w)
		}
	}
	if s.Draws() != 3 {
		t.Errorf("Draws() = %d, want 3", s.Draws())
	}
	if got := NewSequence().Float64(); got != 0.5 {
		t.Errorf("empty sequence = %f, want 0.5", got)
	}
}
