package parameter

// Player spawn defaults, overridable through engine config
const (
	PlayerRadius       = 15.0
	PlayerSpeed        = 17.0
	PlayerRegeneration = 7.0
	PlayerEnergy       = 30.0
	PlayerMaxEnergy    = 30.0
	PlayerDiedTimer    = 60.0 // seconds

	PlayerSpawnStartX = -(10*CellSize - 155)
	PlayerSpawnStartY = 25*CellSize + 15
	PlayerSpawnEndX   = -15.0
	PlayerSpawnEndY   = 15*CellSize - 15 - 2*CellSize
)

// Player movement
const (
	// PlayerSlideRetain is the share of last tick's acceleration kept per normalised frame
	PlayerSlideRetain = 0.25

	// PlayerShiftFactor scales acceleration while shift is held
	PlayerShiftFactor = 0.5

	// PlayerMouseRange is the mouse vector length at which acceleration saturates
	PlayerMouseRange = 150.0

	// PlayerPositionPrecision is the decimal places positions are rounded to every tick
	PlayerPositionPrecision = 2
)

// Heroes
const (
	MavenAuraRadius = 180.0

	RevenantAbilityCost     = 30.0
	RevenantCooldownMs      = 8000.0
	RevenantAuraRadius      = 120.0
	RevenantDrainPerSecond  = 24.0
	RevenantMinEnergyToCast = 30.0
)
