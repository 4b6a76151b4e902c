package audio

import (
	"github.com/gopxl/beep"

	"github.com/lixenwraith/chunkgrid/parameter"
)

// Cue names one index event with a sound
type Cue uint8

const (
	CueChunkBorn Cue = iota
	CueChunkFreed
	CueOverflowGrowth
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueChunkBorn:
		return "chunk_born"
	case CueChunkFreed:
		return "chunk_freed"
	case CueOverflowGrowth:
		return "overflow_growth"
	default:
		return "unknown"
	}
}

// cueTones returns the segments of a cue
// Born glides up an octave, freed glides down, growth is two low saw pulses.
func cueTones(c Cue) []Tone {
	switch c {
	case CueChunkBorn:
		return []Tone{{
			From: 523.25, To: 1046.5, Wave: WaveSine,
			Length: parameter.CueBornDuration, Attack: parameter.CueAttack, Release: parameter.CueRelease,
		}}
	case CueChunkFreed:
		return []Tone{{
			From: 1046.5, To: 523.25, Wave: WaveTriangle,
			Length: parameter.CueFreedDuration, Attack: parameter.CueAttack, Release: parameter.CueRelease,
		}}
	case CueOverflowGrowth:
		pulse := Tone{
			From: 110, To: 98, Wave: WaveSaw,
			Length: parameter.CueGrowthDuration / 2, Attack: parameter.CueAttack, Release: parameter.CueAttack,
		}
		return []Tone{pulse, pulse}
	default:
		return nil
	}
}

// NewCueStreamer builds the finite streamer for a cue at the given volume
func NewCueStreamer(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	tones := cueTones(c)
	if tones == nil {
		return nil
	}
	return newVolume(Phrase(rate, parameter.CueGap, tones...), volume)
}
