package hazard

import (
	"time"

	"github.com/vovakirdan/bubble-drone/internal/core"
)

type beePhase int

const (
	beeIdle beePhase = iota
	beeOut
	beeWait
	beeBack
	beeRest // waiting for the drone to leave view before re-arming
)

// BeeConfig tunes bee behavior.
type BeeConfig struct {
	ViewRange    float64 // horizontal distance at which the bee notices the drone
	MoveDistance float64
	Speed        float64
	Pause        time.Duration // wait after shooting
	BulletSpeed  float64
	BulletRadius float64
}

// DefaultBeeConfig returns the stock bee tuning.
func DefaultBeeConfig() BeeConfig {
	return BeeConfig{
		ViewRange:    20,
		MoveDistance: 3,
		Speed:        5,
		Pause:        500 * time.Millisecond,
		BulletSpeed:  8,
		BulletRadius: 0.3,
	}
}

// Bee flies a short way left when the drone comes into view, drops one
// bullet, waits and flies home.
type Bee struct {
	Home core.Vec2
	Pos  core.Vec2

	cfg   BeeConfig
	phase beePhase
	wait  time.Duration
}

// NewBee creates a bee resting at home.
func NewBee(home core.Vec2, cfg BeeConfig) *Bee {
	return &Bee{Home: home, Pos: home, cfg: cfg}
}

// Busy reports whether the bee is on a run.
func (b *Bee) Busy() bool {
	return b.phase != beeIdle && b.phase != beeRest
}

func (b *Bee) inView(t Target) bool {
	if t == nil {
		return false
	}
	dx := t.Position().X - b.Home.X
	return dx >= -b.cfg.ViewRange && dx <= b.cfg.ViewRange
}

// Update advances the bee. It reports true on the tick the bee fires.
func (b *Bee) Update(dt time.Duration, t Target) bool {
	step := b.cfg.Speed * dt.Seconds()
	switch b.phase {
	case beeIdle:
		if b.inView(t) {
			b.phase = beeOut
		}
	case beeOut:
		target := b.Home.X - b.cfg.MoveDistance
		b.Pos.X = max(target, b.Pos.X-step)
		if b.Pos.X <= target {
			b.phase = beeWait
			b.wait = 0
			return true
		}
	case beeWait:
		b.wait += dt
		if b.wait >= b.cfg.Pause {
			b.phase = beeBack
		}
	case beeBack:
		b.Pos.X = min(b.Home.X, b.Pos.X+step)
		if b.Pos.X >= b.Home.X {
			b.phase = beeRest
		}
	case beeRest:
		if !b.inView(t) {
			b.phase = beeIdle
		}
	}
	return false
}
