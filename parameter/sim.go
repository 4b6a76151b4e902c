package parameter

// Simulation defaults for the sandbox and profile tools
const (
	// SpawnSpeedMin and SpawnSpeedMax bound body speed in world units per second
	SpawnSpeedMin = 0.5
	SpawnSpeedMax = 4.0

	// NeighborRadius is the probe radius used by the per-tick neighbor sampling
	NeighborRadius = 3.0

	// NeighborProbesPerTick caps how many bodies run a neighbor query each tick
	NeighborProbesPerTick = 64

	// MaxTickDelta clamps dt so a stalled frame cannot tunnel bodies across the bounds
	MaxTickDelta = 0.25
)
