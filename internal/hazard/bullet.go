package hazard

import (
	"time"

	"github.com/vovakirdan/bubble-drone/internal/bubble"
	"github.com/vovakirdan/bubble-drone/internal/core"
)

// BulletKind is the pool kind of bee bullets.
const BulletKind = "Prefabs/Bullets/BeeSpine"

// Bullet is a pooled projectile fired by bees.
type Bullet struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
	Parent string

	active bool
}

// Spawn readies a bullet leaving the pool.
func (b *Bullet) Spawn() {
	b.active = true
	b.Vel = core.Vec2{}
}

// Despawn hides a bullet returning to the pool.
func (b *Bullet) Despawn() { b.active = false }

// SetParent records the scene grouping.
func (b *Bullet) SetParent(parent string) { b.Parent = parent }

// Active reports whether the bullet is in flight.
func (b *Bullet) Active() bool { return b.active }

func (b *Bullet) collider() core.Circle {
	return core.Circle{C: b.Pos, R: b.Radius}
}

// step moves the bullet and resolves what it hits. It reports whether the
// bullet is spent and should go back to the pool.
func (b *Bullet) step(dt time.Duration, bounds core.Box, f *bubble.Field, t Target) bool {
	b.Pos = b.Pos.Add(b.Vel.Scale(dt.Seconds()))
	if !bounds.Contains(b.Pos) {
		return true
	}
	c := b.collider()
	for _, bb := range f.Live() {
		if bb.IsDead() || !c.Overlaps(bb.Collider()) {
			continue
		}
		if bb.Type != bubble.Yellow {
			bb.Attacked()
		}
		return true
	}
	if t != nil && c.Overlaps(targetCircle(t)) {
		t.Dead()
		return true
	}
	return false
}
