// Package spawner keeps levels stocked with floating bubbles.
package spawner

import (
	"time"

	"github.com/vovakirdan/bubble-drone/internal/bubble"
	"github.com/vovakirdan/bubble-drone/internal/core"
)

// Config describes one producer.
type Config struct {
	Origin   core.Vec2
	Color    bubble.Type   // color of produced bubbles
	Max      int           // live floating bubbles to keep
	Interval time.Duration // delay between refills once stocked
	RangeX   float64
	RangeY   float64
	Speed    float64 // base horizontal speed
	Freq     float64 // base vertical frequency
	Phase    float64 // base phase
	Jitter   float64 // random spread applied to speed, frequency and phase
}

// DefaultConfig returns the stock producer at origin.
func DefaultConfig(origin core.Vec2) Config {
	return Config{
		Origin:   origin,
		Max:      3,
		Interval: 10 * time.Second,
		RangeX:   5,
		RangeY:   3,
		Speed:    2,
		Freq:     2,
		Jitter:   0.5,
	}
}

// Producer fills up to Max floating bubbles at once, then tops up one bubble
// per interval while it is below Max.
type Producer struct {
	cfg     Config
	field   *bubble.Field
	rng     *core.RNG
	cues    core.Cuer
	since   time.Duration
	filling bool
	total   int
}

// New creates a producer that starts with an initial burst.
func New(cfg Config, field *bubble.Field, rng *core.RNG, cues core.Cuer) *Producer {
	if cues == nil {
		cues = core.NopCuer{}
	}
	return &Producer{cfg: cfg, field: field, rng: rng, cues: cues, filling: true}
}

// Live returns the floating bubbles of this producer still in play.
func (p *Producer) Live() int {
	return p.field.CountOwned(p)
}

// Produced returns how many bubbles this producer has released so far.
func (p *Producer) Produced() int { return p.total }

// SetInterval changes the refill delay.
func (p *Producer) SetInterval(d time.Duration) { p.cfg.Interval = d }

// Interval returns the refill delay.
func (p *Producer) Interval() time.Duration { return p.cfg.Interval }

// Update runs one tick. During the initial burst one bubble is produced per tick.
func (p *Producer) Update(dt time.Duration) {
	live := p.Live()
	if p.filling {
		if live < p.cfg.Max && p.produce() {
			return
		}
		p.filling = false
		p.since = 0
		return
	}

	p.since += dt
	if p.since < p.cfg.Interval {
		return
	}
	p.since = 0
	if live < p.cfg.Max {
		p.produce()
	}
}

func (p *Producer) produce() bool {
	b, err := p.field.SpawnFloat(p.cfg.Color)
	if err != nil {
		return false
	}
	b.Owner = p
	b.SetMotion(bubble.Motion{
		Origin: p.cfg.Origin,
		RangeX: p.cfg.RangeX,
		RangeY: p.cfg.RangeY,
		Speed:  p.rng.Jitter(p.cfg.Speed, p.cfg.Jitter),
		Freq:   p.rng.Jitter(p.cfg.Freq, p.cfg.Jitter),
		Phase:  p.rng.Jitter(p.cfg.Phase, p.cfg.Jitter),
		Time:   p.rng.Range(0, 100),
	})
	p.total++
	p.cues.Cue(b.Kind, core.EffectSpawn)
	return true
}
