package parameter

// Homing / Bee steering
const (
	HomingMaxDist        = 5.625 * CellSize
	HomingAngleIncrement = 0.04
	HomingFrameMs        = 30.0

	BeeMaxTurn = 0.04
	BeeFrameMs = 16.67
)

// Sniper family
const (
	SniperRange       = 20 * CellSize
	SniperThresholdMs = 3000.0
	BulletSpeed       = 10.0

	FlameSniperThresholdMs = 6000.0
	FlameSniperTimerMinMs  = 3000.0
)

// Flame family
const (
	// FlameTrailLifeMs is divided by the owner's speed to get the trail lifetime
	FlameTrailLifeMs = 5000.0
	// FlameTrailHarmlessMs is the trail age after which it no longer knocks
	FlameTrailHarmlessMs = 3500.0
)

// Periodic kinds
const (
	ChangerPeriodMs = 5000.0
	FadePeriodMs    = 7500.0

	SizerRate = 0.08

	IcicleStopMs = 2500.0

	StormPeriodMs = 2000.0
	StormPulseMs  = 1000.0
)

// Drop
const (
	DropAccelerationMs = 500.0
	DropDwellMinMs     = 1000.0
	DropDwellMaxMs     = 2000.0
	DropFadeOutMs      = 1000.0
)

// Leaf
const (
	LeafSpawnMs  = 1000.0
	LeafRemoveMs = 500.0
)

// Auras
const (
	SlowAuraRadius     = 150.0
	DrainingAuraRadius = 150.0
	PullAuraRadius     = 150.0

	// PullStrength and PullFalloff shape move = PullStrength * (dist / PullFalloff)^2
	PullStrength = 2.5
	PullFalloff  = 120.0

	// CloudStrength and CloudFalloff feed the cloud attraction amp
	CloudStrength = 3.0
	CloudFalloff  = 120.0

	CloudAlpha      = 0.4
	StormCloudAlpha = 0.8
)
