package vmath

import "time"

// FastRand is a xorshift64 generator
// Not safe for concurrent use; each engine owns one
type FastRand struct {
	state uint64
}

// NewFastRand seeds a generator, zero seed picks one from the wall clock
// The seed is spread with splitmix64 so small seeds start on full-width state
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	state := splitmix64(seed)
	if state == 0 {
		state = 1
	}
	return &FastRand{state: state}
}

func splitmix64(x uint64) uint64 {
	z := x + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1)
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a value in [lo, hi), lo when the range is empty
func (r *FastRand) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}
