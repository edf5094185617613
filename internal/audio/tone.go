package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/bubble-drone/internal/core"
)

// Wave is the oscillator shape of a tone.
type Wave int

const (
	Sine Wave = iota
	Square
	Noise
)

// Tone describes one synthesized cue.
type Tone struct {
	Wave     Wave
	From     float64 // start frequency, Hz
	To       float64 // end frequency, Hz
	Duration time.Duration
	Gain     float64
	Decay    float64 // envelope decay rate per second
}

// Tones maps every cue to its sound.
var Tones = map[core.Effect]Tone{
	core.EffectStart:  {Wave: Sine, From: 440, To: 880, Duration: 250 * time.Millisecond, Gain: 0.3, Decay: 4},
	core.EffectAttach: {Wave: Sine, From: 660, To: 990, Duration: 80 * time.Millisecond, Gain: 0.25, Decay: 20},
	core.EffectSpawn:  {Wave: Sine, From: 300, To: 420, Duration: 60 * time.Millisecond, Gain: 0.15, Decay: 30},
	core.EffectPop:    {Wave: Noise, From: 1200, To: 400, Duration: 90 * time.Millisecond, Gain: 0.3, Decay: 35},
	core.EffectDye:    {Wave: Square, From: 520, To: 520, Duration: 120 * time.Millisecond, Gain: 0.15, Decay: 12},
	core.EffectDeath:  {Wave: Square, From: 220, To: 55, Duration: 600 * time.Millisecond, Gain: 0.3, Decay: 3},
	core.EffectShoot:  {Wave: Noise, From: 900, To: 900, Duration: 50 * time.Millisecond, Gain: 0.2, Decay: 40},
}

// ToneGenerator streams one tone and then stops.
type ToneGenerator struct {
	sr    beep.SampleRate
	tone  Tone
	pos   int
	total int
	phase float64
	noise uint32
	hold  float64
}

// NewToneGenerator creates a generator for tone at sample rate sr.
func NewToneGenerator(sr beep.SampleRate, tone Tone) *ToneGenerator {
	return &ToneGenerator{
		sr:    sr,
		tone:  tone,
		total: sr.N(tone.Duration),
		noise: 0x9e3779b9,
	}
}

// Stream implements beep.Streamer.
func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)
		progress := float64(g.pos) / float64(g.total)
		freq := g.tone.From + (g.tone.To-g.tone.From)*progress
		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)

		var sample float64
		switch g.tone.Wave {
		case Square:
			sample = 1
			if g.phase >= 0.5 {
				sample = -1
			}
		case Noise:
			// sample and hold at the tone frequency
			if g.phase < freq/float64(g.sr) {
				g.noise = g.noise*1664525 + 1013904223
				g.hold = float64(g.noise>>8)/float64(1<<23) - 1
			}
			sample = g.hold
		default:
			sample = math.Sin(2 * math.Pi * g.phase)
		}

		// 5ms attack avoids clicks
		attack := math.Min(t/0.005, 1.0)
		envelope := attack * math.Exp(-t*g.tone.Decay)
		sample *= envelope * g.tone.Gain

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (g *ToneGenerator) Err() error {
	return nil
}
