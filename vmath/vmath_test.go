package vmath

import (
	"math"
	"testing"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		name   string
		v      float64
		scale  float64
		signed int32
		abs    uint32
	}{
		{"positive", 12.34, 10, 123, 123},
		{"half rounds away", 0.25, 10, 3, 3},
		{"negative", -7.86, 10, -79, 79},
		{"alpha", 0.4, 100, 40, 40},
		{"zero", 0, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuantizeSigned(tt.v, tt.scale); got != tt.signed {
				t.Errorf("Expected signed %d, got %d", tt.signed, got)
			}
			if got := QuantizeUnsigned(tt.v, tt.scale); got != tt.abs {
				t.Errorf("Expected unsigned %d, got %d", tt.abs, got)
			}
		})
	}
}

func TestWrapAngle(t *testing.T) {
	if got := WrapAngle(3 * math.Pi / 2); math.Abs(got+math.Pi/2) > 1e-9 {
		t.Errorf("Expected -π/2, got %f", got)
	}
	if got := WrapAngle(-3 * math.Pi / 2); math.Abs(got-math.Pi/2) > 1e-9 {
		t.Errorf("Expected π/2, got %f", got)
	}
	if got := WrapAngle(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected 0.5, got %f", got)
	}
}

func TestClampMagnitude(t *testing.T) {
	v := Vec2{X: 300, Y: 400}.ClampMagnitude(150)
	if math.Abs(v.Magnitude()-150) > 1e-9 {
		t.Errorf("Expected magnitude 150, got %f", v.Magnitude())
	}
	if math.Abs(v.X-90) > 1e-9 || math.Abs(v.Y-120) > 1e-9 {
		t.Errorf("Expected (90,120), got (%f,%f)", v.X, v.Y)
	}

	short := Vec2{X: 3, Y: 4}
	if got := short.ClampMagnitude(150); got != short {
		t.Errorf("Expected unchanged vector, got %+v", got)
	}
}

func TestBoundaryClampCircle(t *testing.T) {
	b := Boundary{W: 100, H: 50}
	p, edges := b.ClampCircle(Vec2{X: -5, Y: 60}, 10)
	if p.X != 10 || p.Y != 40 {
		t.Errorf("Expected (10,40), got (%f,%f)", p.X, p.Y)
	}
	if !edges.Has(EdgeLeft) || !edges.Has(EdgeBottom) {
		t.Errorf("Expected left and bottom edges, got %b", edges)
	}
	if edges.Has(EdgeRight | EdgeTop) {
		t.Errorf("Unexpected right/top edges in %b", edges)
	}
}

func TestFastRandRange(t *testing.T) {
	rng := NewFastRand(42)
	for i := 0; i < 1000; i++ {
		v := rng.Range(-3, 5)
		if v < -3 || v >= 5 {
			t.Fatalf("Value %f out of range", v)
		}
	}
	if got := rng.Range(2, 2); got != 2 {
		t.Errorf("Expected lo for empty range, got %f", got)
	}
}

func TestFastRandDeterministic(t *testing.T) {
	a := NewFastRand(7)
	b := NewFastRand(7)
	for i := 0; i < 10; i++ {
		if a.Next() != b.Next() {
			t.Fatal("Expected identical sequences for identical seeds")
		}
	}
}

func TestFastRandSmallSeedsSpread(t *testing.T) {
	seen := make(map[uint64]bool)
	for seed := uint64(1); seed <= 8; seed++ {
		v := NewFastRand(seed).Next()
		if v < 1<<32 {
			t.Errorf("Seed %d: expected full-width first draw, got %d", seed, v)
		}
		if seen[v] {
			t.Errorf("Seed %d: first draw %d repeats an earlier seed", seed, v)
		}
		seen[v] = true
	}
}

func TestCornersNormalizes(t *testing.T) {
	b := Corners(-15, 815, -165, 401)
	if b.X != -165 || b.Y != 401 || b.W != 150 || b.H != 414 {
		t.Errorf("Expected {-165 401 150 414}, got %+v", b)
	}
}
