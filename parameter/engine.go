package parameter

import "time"

// Game Loop & Engine Timing
const (
	// TargetFrameMs is the frame interval all per-tick physics is normalised against (time_fix = delta / TargetFrameMs)
	TargetFrameMs = 1000.0 / 30.0

	// DefaultTickRate is the host tick frequency when config does not set one
	DefaultTickRate = 30

	// MaxTickDelta caps a single tick's delta so a stalled host cannot teleport entities
	MaxTickDelta = 250 * time.Millisecond
)

// Zone geometry
const (
	// CellSize is the world unit grid the margins are expressed in
	CellSize = 32.0

	// AreaWarpMargin is the horizontal overshoot past an area edge that triggers an area warp
	AreaWarpMargin = 8 * CellSize

	// WorldWarpMargin is the vertical band at area 0's left edge that triggers a world warp
	WorldWarpMargin = 2 * CellSize

	// PlayerBoundaryOverhang extends the player boundary past both horizontal area edges
	PlayerBoundaryOverhang = 10 * CellSize
)

// Event bus
const (
	// EventBusInitialCapacity is the preallocated slot count of the per-engine event bus
	EventBusInitialCapacity = 256
)

// Event drain
const (
	// EventDrainMaxRounds bounds re-dispatch when handlers enqueue further events
	EventDrainMaxRounds = 4
)
