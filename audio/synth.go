package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects the voice shape
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// sample evaluates one period of the wave at phase in [0,1)
func (w WaveType) sample(phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*phase - 1
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// Tone describes one cue segment: a pitch glide from From to To Hz over Length,
// faded in over Attack and out over Release with raised-cosine ramps
type Tone struct {
	From, To float64
	Length   time.Duration
	Wave     WaveType
	Attack   time.Duration
	Release  time.Duration
}

// Streamer renders the tone at rate as a finite beep.Streamer
func (t Tone) Streamer(rate beep.SampleRate) beep.Streamer {
	total := rate.N(t.Length)
	attack := min(rate.N(t.Attack), total)
	release := min(rate.N(t.Release), total-attack)
	return &voice{
		tone:    t,
		rate:    float64(rate),
		total:   total,
		attack:  attack,
		release: release,
	}
}

type voice struct {
	tone    Tone
	rate    float64
	total   int
	attack  int
	release int
	pos     int
	phase   float64
}

// freq returns the instantaneous pitch; glides are exponential unless an end is at 0 Hz
func (v *voice) freq() float64 {
	from, to := v.tone.From, v.tone.To
	if from == to || v.total <= 1 {
		return from
	}
	t := float64(v.pos) / float64(v.total-1)
	if from <= 0 || to <= 0 {
		return from + (to-from)*t
	}
	return from * math.Pow(to/from, t)
}

// gain returns the fade applied at the current position
func (v *voice) gain() float64 {
	switch {
	case v.pos < v.attack:
		return rampCos(float64(v.pos) / float64(v.attack))
	case v.release > 0 && v.pos >= v.total-v.release:
		return rampCos(float64(v.total-1-v.pos) / float64(v.release))
	}
	return 1
}

// rampCos maps [0,1] onto a smooth 0->1 curve
func rampCos(x float64) float64 {
	return 0.5 - 0.5*math.Cos(math.Pi*min(max(x, 0), 1))
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) && v.pos < v.total {
		s := v.tone.Wave.sample(v.phase) * v.gain()
		samples[n] = [2]float64{s, s}

		v.phase += v.freq() / v.rate
		v.phase -= math.Floor(v.phase)
		v.pos++
		n++
	}
	return n, n > 0
}

func (v *voice) Err() error { return nil }

// Phrase chains tones with a silent gap between each
func Phrase(rate beep.SampleRate, gap time.Duration, tones ...Tone) beep.Streamer {
	parts := make([]beep.Streamer, 0, 2*len(tones))
	for i, t := range tones {
		if i > 0 && gap > 0 {
			parts = append(parts, beep.Silence(rate.N(gap)))
		}
		parts = append(parts, t.Streamer(rate))
	}
	return beep.Seq(parts...)
}

// newVolume scales linearly; zero or less is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
