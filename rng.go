package villagegraph

import (
	"math"
)

const (
	// mulberryIncrement is added to the state before every draw
	mulberryIncrement uint32 = 0x6d2b79f5

	// 2^32, used to scale a uint32 into [0, 1)
	twoPow32 = 4294967296.0
)

// Mulberry32 is a tiny 32-bit PRNG. Go's uint32 arithmetic wraps at 2^32
// on every add / multiply which is exactly the behaviour the mixing steps
// rely on.
type Mulberry32 struct {
	state uint32
}

// NewMulberry32 returns a stream seeded with `seed`
func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Uint32 returns the next mixed 32 bit value
func (m *Mulberry32) Uint32() uint32 {
	m.state += mulberryIncrement
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next value in [0, 1)
func (m *Mulberry32) Float64() float64 {
	return float64(m.Uint32()) / twoPow32
}

// randomRange returns a value in [min, max)
func randomRange(r Random, min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// jitter returns a value in [-spread/2, spread/2)
func jitter(r Random, spread float64) float64 {
	return (r.Float64() - 0.5) * spread
}

// pick returns an index in [0, n)
func pick(r Random, n int) int {
	return int(math.Floor(r.Float64() * float64(n)))
}

// clamp v into [lo, hi]
func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
