// Package rng provides the uniform random sources consumed by ray generation.
//
// A Source is never shared between goroutines: every render worker owns its
// own instance, seeded deterministically with Derive.
package rng

// Source draws uniform floats in [0, 1). *math/rand/v2.Rand satisfies it.
type Source interface {
	Float64() float64
}

// XorShift is a xorshift128 generator over four 32-bit words.
// Not safe for concurrent use.
type XorShift struct {
	x, y, z, w uint32
}

// NewXorShift seeds a generator from a 64-bit seed. Any seed, including
// zero, yields a valid non-zero state.
func NewXorShift(seed uint64) *XorShift {
	a := splitmix64(&seed)
	b := splitmix64(&seed)
	return &XorShift{
		x: uint32(a),
		y: uint32(a >> 32),
		z: uint32(b),
		w: uint32(b>>32) | 1,
	}
}

// Uint32 advances the generator.
func (r *XorShift) Uint32() uint32 {
	t := r.x ^ (r.x << 11)
	r.x, r.y, r.z = r.y, r.z, r.w
	r.w = r.w ^ (r.w >> 19) ^ t ^ (t >> 8)
	return r.w
}

// Float64 returns a uniform float in [0, 1) built from 53 random bits.
func (r *XorShift) Float64() float64 {
	hi := uint64(r.Uint32()) << 21
	lo := uint64(r.Uint32()) >> 11
	return float64(hi|lo) * (1.0 / (1 << 53))
}

// Derive mixes a base seed with stream identifiers (worker, pass, row, ...)
// so that each stream gets an independent, reproducible seed.
func Derive(seed uint64, stream ...uint64) uint64 {
	s := seed
	for _, id := range stream {
		s ^= id + 0x9e3779b97f4a7c15 + (s << 6) + (s >> 2)
		s = splitmix64(&s)
	}
	return s
}

func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
