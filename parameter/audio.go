package parameter

import "time"

// Audio output
const (
	AudioSampleRate     = 44100
	AudioBufferDuration = 100 * time.Millisecond
	AudioMasterVolume   = 0.4
)

// Chunk cue shaping
const (
	// MinCueGap throttles repeats of the same cue; bursts of chunk churn collapse to one tone
	MinCueGap = 80 * time.Millisecond

	CueBornDuration   = 90 * time.Millisecond
	CueFreedDuration  = 120 * time.Millisecond
	CueGrowthDuration = 200 * time.Millisecond
	CueAttack         = 5 * time.Millisecond
	CueRelease        = 40 * time.Millisecond
	CueGap            = 30 * time.Millisecond
)
