package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/bubble-drone/internal/core"
)

func TestEveryCueHasATone(t *testing.T) {
	for e := core.EffectStart; e <= core.EffectShoot; e++ {
		if _, ok := Tones[e]; !ok {
			t.Errorf("no tone for %s", e)
		}
	}
	if _, ok := Tones[core.EffectNone]; ok {
		t.Error("EffectNone should stay silent")
	}
}

func TestToneGeneratorLength(t *testing.T) {
	sr := beep.SampleRate(8000)
	for e, tone := range Tones {
		g := NewToneGenerator(sr, tone)
		want := sr.N(tone.Duration)

		buf := make([][2]float64, 256)
		total := 0
		for {
			n, ok := g.Stream(buf)
			for i := 0; i < n; i++ {
				v := buf[i][0]
				if math.IsNaN(v) || math.Abs(v) > 1 {
					t.Fatalf("%s: sample %d = %v out of range", e, total+i, v)
				}
			}
			total += n
			if !ok {
				break
			}
		}
		if total != want {
			t.Errorf("%s: streamed %d samples, expected %d", e, total, want)
		}
		if g.Err() != nil {
			t.Errorf("%s: Err() = %v", e, g.Err())
		}
	}
}

func TestToneGeneratorIsAudible(t *testing.T) {
	g := NewToneGenerator(beep.SampleRate(8000), Tone{Wave: Sine, From: 440, To: 440, Duration: 50 * time.Millisecond, Gain: 0.5})
	buf := make([][2]float64, 400)
	n, _ := g.Stream(buf)

	peak := 0.0
	for i := 0; i < n; i++ {
		peak = math.Max(peak, math.Abs(buf[i][0]))
	}
	if peak < 0.1 {
		t.Errorf("peak = %v, expected an audible tone", peak)
	}
}

// Cues before Init must be silently dropped.
func TestPlayerWithoutInit(t *testing.T) {
	p := NewPlayer(2, nil)
	if p.Volume() != 1 {
		t.Errorf("Volume() = %v, expected clamp to 1", p.Volume())
	}

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Cue panicked without initialization: %v", r)
		}
	}()
	p.Cue("test", core.EffectPop)
	p.Cue("test", core.EffectNone)
	p.Close()

	p.SetVolume(-1)
	if p.Volume() != 0 {
		t.Errorf("Volume() = %v, expected clamp to 0", p.Volume())
	}
}

func TestOpenMuted(t *testing.T) {
	cuer, closeFn := Open(0, nil)
	defer closeFn()
	if _, ok := cuer.(core.NopCuer); !ok {
		t.Errorf("Open(0) = %T, expected core.NopCuer", cuer)
	}
}
