package villagegraph

import (
	"math"
	"testing"
)

// near compares floats that should be identical up to the odd ulp
func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6
}

func TestMulberry32Draws(t *testing.T) {
	cases := []struct {
		Seed   uint32
		Expect []float64
	}{
		{42, []float64{0.6011037519201636, 0.44829055899754167, 0.8524657934904099}},
		{0, []float64{0.26642920868471265, 0.0003297457005828619, 0.2232720274478197}},
	}

	for _, tt := range cases {
		rng := NewMulberry32(tt.Seed)
		for i, want := range tt.Expect {
			got := rng.Float64()
			if got != want {
				t.Errorf("seed %d draw %d: expected %v got %v", tt.Seed, i, want, got)
			}
		}
	}
}

func TestMulberry32Range(t *testing.T) {
	for _, seed := range []uint32{0, 1, 7, 42, math.MaxUint32} {
		rng := NewMulberry32(seed)
		for i := 0; i < 10000; i++ {
			f := rng.Float64()
			if f < 0 || f >= 1 {
				t.Fatalf("seed %d draw %d out of range: %v", seed, i, f)
			}
		}
	}
}

func TestMulberry32Restart(t *testing.T) {
	a := NewMulberry32(1337)
	b := NewMulberry32(1337)
	for i := 0; i < 100; i++ {
		if x, y := a.Uint32(), b.Uint32(); x != y {
			t.Fatalf("draw %d diverged: %d != %d", i, x, y)
		}
	}
}

// fixed returns the same value forever
type fixed float64

func (f fixed) Float64() float64 { return float64(f) }

func TestHelpers(t *testing.T) {
	if v := randomRange(fixed(0.5), 10, 20); v != 15 {
		t.Errorf("randomRange: expected 15 got %v", v)
	}
	if v := jitter(fixed(0), 2); v != -1 {
		t.Errorf("jitter: expected -1 got %v", v)
	}
	if v := pick(fixed(0.999), 4); v != 3 {
		t.Errorf("pick: expected 3 got %v", v)
	}
	if v := pick(fixed(0), 4); v != 0 {
		t.Errorf("pick: expected 0 got %v", v)
	}
	if v := clamp(-5, 0, 10); v != 0 {
		t.Errorf("clamp low: expected 0 got %v", v)
	}
	if v := clamp(50, 0, 10); v != 10 {
		t.Errorf("clamp high: expected 10 got %v", v)
	}
}
