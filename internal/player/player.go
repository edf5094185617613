// Package player implements the drone the player flies.
package player

import (
	"math"
	"time"

	"github.com/vovakirdan/bubble-drone/internal/core"
	"github.com/vovakirdan/bubble-drone/internal/sched"
)

// Config holds drone tuning.
type Config struct {
	Speed         float64       // world units per second
	Radius        float64       // collider radius
	Boost         float64       // extra speed multiplier while accelerated
	BoostDuration time.Duration // how long one boost lasts
	DeathDuration time.Duration // death sequence before the death notification
	Drag          float64       // velocity decay per second when no key is held
}

// DefaultConfig returns the stock drone tuning.
func DefaultConfig() Config {
	return Config{
		Speed:         5,
		Radius:        0.8,
		Boost:         1,
		BoostDuration: 5 * time.Second,
		DeathDuration: 1200 * time.Millisecond,
		Drag:          6,
	}
}

// Controller is the drone state and its reactions to bubble effects.
type Controller struct {
	cfg   Config
	sched *sched.Scheduler
	cues  core.Cuer

	pos        core.Vec2
	vel        core.Vec2
	multiplier float64
	boost      sched.Token
	holds      int
	dead       bool
	onDeath    func()
}

// New creates a drone at the origin.
func New(cfg Config, s *sched.Scheduler, cues core.Cuer) *Controller {
	if cues == nil {
		cues = core.NopCuer{}
	}
	return &Controller{cfg: cfg, sched: s, cues: cues, multiplier: 1}
}

// Reset places a fresh drone at pos.
func (c *Controller) Reset(pos core.Vec2) {
	c.sched.CancelOwner(c)
	c.pos = pos
	c.vel = core.Vec2{}
	c.multiplier = 1
	c.boost = 0
	c.holds = 0
	c.dead = false
}

// OnDeath registers the callback run once the death sequence ends.
func (c *Controller) OnDeath(fn func()) { c.onDeath = fn }

// Position returns the drone center.
func (c *Controller) Position() core.Vec2 { return c.pos }

// SetPosition moves the drone without changing its velocity.
func (c *Controller) SetPosition(p core.Vec2) { c.pos = p }

// Velocity returns the current velocity.
func (c *Controller) Velocity() core.Vec2 { return c.vel }

// Radius returns the collider radius.
func (c *Controller) Radius() float64 { return c.cfg.Radius }

// Collider returns the drone collider.
func (c *Controller) Collider() core.Circle {
	return core.Circle{C: c.pos, R: c.cfg.Radius}
}

// Speed returns the current top speed.
func (c *Controller) Speed() float64 { return c.cfg.Speed * c.multiplier }

// Multiplier returns the active speed multiplier.
func (c *Controller) Multiplier() float64 { return c.multiplier }

// Boosted reports whether an acceleration is active.
func (c *Controller) Boosted() bool { return c.multiplier > 1 }

// Move steers the drone toward dir and advances it by dt.
// A zero dir lets the drone coast to a stop. Dead drones ignore input.
func (c *Controller) Move(dir core.Vec2, dt time.Duration) {
	if c.dead {
		return
	}
	secs := dt.Seconds()
	if dir != (core.Vec2{}) {
		c.vel = dir.Norm().Scale(c.Speed())
	} else {
		c.vel = c.vel.Scale(math.Max(0, 1-c.cfg.Drag*secs))
	}
	c.pos = c.pos.Add(c.vel.Scale(secs))
}

// Collide pushes the drone out of solid boxes and stops motion into them.
func (c *Controller) Collide(boxes []core.Box) {
	for _, b := range boxes {
		depth, n := c.Collider().Penetration(b)
		if depth <= 0 {
			continue
		}
		c.pos = c.pos.Add(n.Scale(depth))
		if dot := c.vel.X*n.X + c.vel.Y*n.Y; dot < 0 {
			c.vel = c.vel.Sub(n.Scale(dot))
		}
	}
}

// Confine keeps the drone inside bounds.
func (c *Controller) Confine(bounds core.Box) {
	r := c.cfg.Radius
	c.pos.X = core.ClampF(c.pos.X, bounds.X+r, bounds.Right()-r)
	c.pos.Y = core.ClampF(c.pos.Y, bounds.Y+r, bounds.Bottom()-r)
}

// Accelerate applies a timed speed boost. A new boost restarts the timer
// instead of stacking.
func (c *Controller) Accelerate() {
	if c.dead {
		return
	}
	c.multiplier = 1 + c.cfg.Boost
	c.sched.Cancel(c.boost)
	c.boost = c.sched.After(c, c.cfg.BoostDuration, func() {
		c.multiplier = 1
		c.boost = 0
	})
}

// Dead kills the drone unless it is shielded. Input stops at once and the
// death callback runs after the death sequence. It reports whether the drone died.
func (c *Controller) Dead() bool {
	if c.dead || c.holds > 0 {
		return false
	}
	c.dead = true
	c.vel = core.Vec2{}
	c.cues.Cue("player", core.EffectDeath)
	c.sched.After(c, c.cfg.DeathDuration, func() {
		if c.onDeath != nil {
			c.onDeath()
		}
	})
	return true
}

// IsDead reports whether the drone has been destroyed.
func (c *Controller) IsDead() bool { return c.dead }

// Contain adds one shield hold.
func (c *Controller) Contain() { c.holds++ }

// Uncontain removes one shield hold.
func (c *Controller) Uncontain() {
	if c.holds > 0 {
		c.holds--
	}
}

// Invincible reports whether any shield currently holds the drone.
func (c *Controller) Invincible() bool { return c.holds > 0 }
