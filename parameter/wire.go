package parameter

// Fixed-point scales of the wire snapshot, clients decode with the same factors
const (
	// CoordScale applies to positions, radius, speed, energy, timers, state metadata and aura
	CoordScale = 10.0

	// AlphaScale applies to entity alpha
	AlphaScale = 100.0
)
