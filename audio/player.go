// Package audio plays short beep tones for chunk lifecycle events
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rotisserie/eris"

	"github.com/lixenwraith/chunkgrid/parameter"
	"github.com/lixenwraith/chunkgrid/spatial"
	"github.com/lixenwraith/chunkgrid/vmath"
)

// CuePlayer mixes cue tones onto the speaker
// Every method is safe before Initialize and after a failed Initialize; cues are then counted but not played.
type CuePlayer struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	initialized bool
	muted       bool

	now        func() time.Time
	lastPlayed [cueCount]time.Time
	triggered  [cueCount]int
}

func NewCuePlayer() *CuePlayer {
	return &CuePlayer{
		rate:   beep.SampleRate(parameter.AudioSampleRate),
		volume: parameter.AudioMasterVolume,
		mixer:  &beep.Mixer{},
		now:    time.Now,
	}
}

// Initialize opens the speaker; without an audio device this fails and the player stays silent
func (p *CuePlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(parameter.AudioBufferDuration)); err != nil {
		return eris.Wrap(err, "speaker init")
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences pending cues
func (p *CuePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// SetMuted toggles playback; triggers are still counted
func (p *CuePlayer) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

func (p *CuePlayer) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Trigger plays c unless the same cue fired within MinCueGap
// Returns whether the cue was accepted.
func (p *CuePlayer) Trigger(c Cue) bool {
	if c >= cueCount {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if last := p.lastPlayed[c]; !last.IsZero() && now.Sub(last) < parameter.MinCueGap {
		return false
	}
	p.lastPlayed[c] = now
	p.triggered[c]++

	if !p.initialized || p.muted {
		return true
	}
	s := NewCueStreamer(c, p.rate, p.volume)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	return true
}

// Triggered returns how many times c was accepted
func (p *CuePlayer) Triggered(c Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c >= cueCount {
		return 0
	}
	return p.triggered[c]
}

// Observer adapts the player to spatial.WithChunkObserver
func (p *CuePlayer) Observer() spatial.ChunkObserver {
	return func(ev spatial.ChunkEvent, _ vmath.Int2) {
		switch ev {
		case spatial.ChunkBorn:
			p.Trigger(CueChunkBorn)
		case spatial.ChunkFreed:
			p.Trigger(CueChunkFreed)
		}
	}
}
