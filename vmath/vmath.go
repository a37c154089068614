package vmath

import "math"

// Tau is a full rotation in radians
const Tau = 2 * math.Pi

// Distance returns the length of the (dx, dy) offset
func Distance(dx, dy float64) float64 {
	return math.Sqrt(dx*dx + dy*dy)
}

// RoundTo rounds v to the given number of decimal places
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapAngle maps an angle difference into (-π, π]
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, Tau)
	if a < 0 {
		a += Tau
	}
	return a - math.Pi
}

// --- Fixed-point wire quantization ---

// QuantizeSigned scales v and rounds half away from zero, saturating to int32
func QuantizeSigned(v, scale float64) int32 {
	q := math.Round(v * scale)
	if q > math.MaxInt32 {
		return math.MaxInt32
	}
	if q < math.MinInt32 {
		return math.MinInt32
	}
	return int32(q)
}

// QuantizeUnsigned scales v, rounds and takes the absolute value, saturating to uint32
func QuantizeUnsigned(v, scale float64) uint32 {
	q := math.Abs(math.Round(v * scale))
	if q > math.MaxUint32 || math.IsNaN(q) {
		return math.MaxUint32
	}
	return uint32(q)
}
