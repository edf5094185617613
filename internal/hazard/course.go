package hazard

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubble-drone/internal/bubble"
	"github.com/vovakirdan/bubble-drone/internal/core"
	"github.com/vovakirdan/bubble-drone/internal/pool"
)

// Options configure a Course.
type Options struct {
	Bounds         core.Box
	BulletCapacity int
	Bee            BeeConfig
	Layout         bool
	Cues           core.Cuer
	Logger         *log.Logger
}

// Course is every hazard of one level plus the pool of bee bullets.
type Course struct {
	Zones   []*DyeZone
	Spines  []*Spine
	Bees    []*Bee
	Finish  *FinishLine
	Terrain []core.Box

	opts    Options
	bullets *pool.Pool[*Bullet]
	flying  []*Bullet
	cues    core.Cuer
	log     *log.Logger
}

// NewCourse creates an empty course.
func NewCourse(opts Options) (*Course, error) {
	c := &Course{opts: opts, cues: opts.Cues, log: opts.Logger}
	if c.cues == nil {
		c.cues = core.NopCuer{}
	}
	if c.log == nil {
		c.log = log.New(io.Discard)
	}
	if c.opts.Bee == (BeeConfig{}) {
		c.opts.Bee = DefaultBeeConfig()
	}
	c.bullets = pool.New(pool.Options[*Bullet]{
		Layout: opts.Layout,
		Logger: c.log,
		OnEvict: func(_ string, b *Bullet) {
			c.drop(b)
		},
	})
	err := c.bullets.Register(pool.Asset[*Bullet]{
		Kind:     BulletKind,
		Capacity: opts.BulletCapacity,
		New:      func(string) *Bullet { return &Bullet{} },
	})
	if err != nil {
		return nil, fmt.Errorf("hazard: register bullets: %w", err)
	}
	return c, nil
}

// AddBee places a bee using the course bee tuning.
func (c *Course) AddBee(home core.Vec2) *Bee {
	b := NewBee(home, c.opts.Bee)
	c.Bees = append(c.Bees, b)
	return b
}

// SetBulletSpeed changes the speed of bullets fired from now on.
func (c *Course) SetBulletSpeed(v float64) { c.opts.Bee.BulletSpeed = v }

// Bullets returns the bullets in flight.
func (c *Course) Bullets() []*Bullet { return slices.Clone(c.flying) }

// Fire launches a bullet straight down from at.
func (c *Course) Fire(at core.Vec2) (*Bullet, error) {
	b, err := c.bullets.Acquire(BulletKind)
	if err != nil {
		return nil, err
	}
	b.Pos = at
	b.Vel = core.V(0, c.opts.Bee.BulletSpeed)
	b.Radius = c.opts.Bee.BulletRadius
	c.flying = append(c.flying, b)
	c.cues.Cue(BulletKind, core.EffectShoot)
	return b, nil
}

func (c *Course) drop(b *Bullet) {
	if i := slices.Index(c.flying, b); i >= 0 {
		c.flying = slices.Delete(c.flying, i, i+1)
	}
}

func (c *Course) release(b *Bullet) {
	c.drop(b)
	c.bullets.Release(b)
}

// Update advances every hazard by one tick. It reports whether the drone
// reached the finish line on this tick.
func (c *Course) Update(dt time.Duration, f *bubble.Field, t Target) bool {
	for _, s := range c.Spines {
		s.Update(dt)
	}

	for _, bee := range c.Bees {
		if bee.Update(dt, t) {
			if _, err := c.Fire(bee.Pos); err != nil {
				c.log.Debug("bee could not fire", "err", err)
			}
		}
	}

	for _, b := range c.Bullets() {
		if b.step(dt, c.opts.Bounds, f, t) {
			c.release(b)
		}
	}

	for _, z := range c.Zones {
		z.Apply(f)
	}
	for _, s := range c.Spines {
		s.Hit(f, t)
	}

	return c.Finish != nil && c.Finish.Reached(t)
}

// Clear returns every bullet and forgets the pool buckets.
func (c *Course) Clear() {
	c.flying = nil
	c.bullets.Clear()
}
