package parameter

// Status effects
const (
	// SlowFactor multiplies target speed while slowed
	SlowFactor = 0.25
	// SlowRange is added to the target radius to get the release distance
	SlowRange = 150.0

	DrainPerSecond = 16.0
	DrainRange     = 150.0

	// SlippedFactor multiplies target speed while slipped
	SlippedFactor     = 2.0
	SlippedDurationMs = 100.0
)
