// Package audio plays synthesized sound cues for game events.
package audio

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/bubble-drone/internal/core"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// Player mixes cue tones into the speaker. It implements core.Cuer and is safe
// to call from the game goroutine while the speaker goroutine reads the mixer.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	log         *log.Logger
}

// NewPlayer creates a player with volume in [0, 1]. It stays silent until Init.
func NewPlayer(volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: clampVolume(volume),
		log:    logger,
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences everything queued in the mixer.
func (p *Player) Close() {
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

// SetVolume changes the volume of cues played from now on.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	p.volume = clampVolume(v)
	p.mu.Unlock()
}

// Volume returns the current volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Cue implements core.Cuer.
func (p *Player) Cue(source string, e core.Effect) {
	tone, ok := Tones[e]
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.volume <= 0 {
		return
	}

	s := newVolume(NewToneGenerator(sampleRate, tone), p.volume)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.log.Debug("cue", "source", source, "effect", e)
}

// Open returns a playing cue sink, or core.NopCuer when volume is zero or the
// speaker cannot be opened. The returned close func is always safe to call.
func Open(volume float64, logger *log.Logger) (core.Cuer, func()) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if volume <= 0 {
		return core.NopCuer{}, func() {}
	}
	p := NewPlayer(volume, logger)
	if err := p.Init(); err != nil {
		logger.Warn("audio disabled", "err", err)
		return core.NopCuer{}, func() {}
	}
	return p, p.Close
}

// newVolume maps a linear volume onto beep's logarithmic scale.
// math.Log2(0) is -Inf, so zero is handled as silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func clampVolume(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
