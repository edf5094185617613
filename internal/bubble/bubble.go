package bubble

import (
	"math"

	"github.com/vovakirdan/bubble-drone/internal/core"
	"github.com/vovakirdan/bubble-drone/internal/sched"
)

// Player is what attached bubbles need from the drone.
type Player interface {
	Position() core.Vec2
	Radius() float64
	// Dead kills the player unless it is protected; it reports whether it died.
	Dead() bool
	Accelerate()
	Contain()
	Uncontain()
}

// Motion is the drift path of a floating bubble: a horizontal ping-pong
// combined with a vertical sine wave around Origin.
type Motion struct {
	Origin core.Vec2
	RangeX float64
	RangeY float64
	Speed  float64 // horizontal speed
	Freq   float64 // vertical frequency
	Phase  float64
	Time   float64 // seconds along the path
	Moving bool
}

// Position returns the point on the path at the current time.
func (m Motion) Position() core.Vec2 {
	x := core.PingPong(m.Time*m.Speed, 2*m.RangeX) - m.RangeX
	y := math.Sin((m.Time*m.Freq+m.Phase)*math.Pi) * m.RangeY
	return m.Origin.Add(core.V(x, y))
}

// Step advances the path by dt seconds when moving and returns the new position.
func (m *Motion) Step(dt float64) core.Vec2 {
	if m.Moving {
		m.Time += dt
	}
	return m.Position()
}

type compression struct {
	ratio    float64
	normal   core.Vec2
	pressing bool
	recovery sched.Token
}

// Bubble is a pooled bubble instance.
type Bubble struct {
	ID     int
	Kind   string
	Type   Type
	Mode   Mode
	Pos    core.Vec2
	Scale  float64
	Squash core.Vec2 // deformation from compression, (1, 1) at rest
	Motion Motion
	Offset core.Vec2 // from the player center while attached
	Parent string
	Owner  any // spawner that produced a floating bubble

	field    *Field
	base     Type
	gen      int
	active   bool
	dead     bool
	cooldown bool
	spent    bool
	holds    int
	player   Player
	press    compression
}

func newBubble(f *Field, kind string, t Type, m Mode) *Bubble {
	return &Bubble{field: f, Kind: kind, base: t, Mode: m}
}

// Spawn resets the instance when it leaves the pool. Floating bubbles always
// come back colorless; attached kinds keep the color of their asset.
func (b *Bubble) Spawn() {
	b.gen++
	b.active = true
	b.Type = b.base
	if b.Mode == Float {
		b.Type = None
	}
	b.Scale = 1
	b.Squash = core.V(1, 1)
	b.Motion = Motion{Speed: SpeedMin, Freq: SpeedMin, Moving: true}
	b.Offset = core.Vec2{}
	b.Owner = nil
	b.dead = false
	b.cooldown = false
	b.spent = false
	b.holds = 0
	b.player = nil
	b.press = compression{}
}

// Despawn hides the instance when it goes back to the pool.
func (b *Bubble) Despawn() {
	b.active = false
	b.player = nil
	b.Motion.Moving = false
}

// SetParent records the scene grouping of the instance.
func (b *Bubble) SetParent(parent string) {
	b.Parent = parent
}

// Active reports whether the bubble is in play.
func (b *Bubble) Active() bool { return b.active }

// IsDead reports whether the bubble has been attacked in this activation.
func (b *Bubble) IsDead() bool { return b.dead }

// Spent reports whether the color effect already ran or can no longer run.
func (b *Bubble) Spent() bool { return b.spent }

// Contained reports whether a yellow bubble currently shields this one.
func (b *Bubble) Contained() bool { return b.holds > 0 }

// Attached reports whether the bubble is stuck to a player.
func (b *Bubble) Attached() bool { return b.player != nil }

// Player returns the player the bubble is stuck to, or nil.
func (b *Bubble) Player() Player { return b.player }

// Radius returns the collider radius at the current scale.
func (b *Bubble) Radius() float64 {
	return b.field.tune.Radius * b.Scale
}

// Collider returns the circle used for contacts.
func (b *Bubble) Collider() core.Circle {
	return core.Circle{C: b.Pos, R: b.Radius()}
}

// Compression returns the current squash ratio in [0, 1].
func (b *Bubble) Compression() float64 { return b.press.ratio }

// ChangeColor recolors the bubble. Green bubbles keep their color.
// It reports whether the color changed.
func (b *Bubble) ChangeColor(t Type) bool {
	if b.Type == Green || b.Type == t {
		return false
	}
	b.Type = t
	return true
}

// ChangeSize sets the scale, clamped to the allowed size range.
func (b *Bubble) ChangeSize(scale float64) {
	b.Scale = core.ClampF(scale, SizeMin, SizeMax)
}

// SetMotion configures the drift path of a floating bubble.
func (b *Bubble) SetMotion(m Motion) {
	m.Speed = math.Max(m.Speed, SpeedMin)
	m.Freq = math.Max(m.Freq, SpeedMin)
	m.RangeX = math.Max(m.RangeX, 0)
	m.RangeY = math.Max(m.RangeY, 0)
	m.Moving = true
	b.Motion = m
	b.Pos = m.Position()
}

// Attacked pops the bubble: it stops reacting, plays its pop cue and returns
// to the pool after the pop animation. Calling it again has no effect.
func (b *Bubble) Attacked() {
	if b.dead || !b.active {
		return
	}
	f := b.field
	b.dead = true
	b.spent = true
	b.Motion.Moving = false

	f.sched.CancelOwner(b)
	f.uncover(b)
	f.pool.Protect(b, true)
	f.cues.Cue(b.Kind, core.EffectPop)
	if f.hooks.Popped != nil {
		f.hooks.Popped(b)
	}

	gen := b.gen
	f.sched.After(b, f.tune.AttackDelay, func() {
		if b.gen == gen {
			f.release(b)
		}
	})
}

func (b *Bubble) applySquash() {
	r := b.press.ratio
	n := b.press.normal
	ex := b.field.tune.Expansion
	b.Squash = core.V(
		1-math.Abs(n.X)*r+math.Abs(n.Y)*r*ex,
		1-math.Abs(n.Y)*r+math.Abs(n.X)*r*ex,
	)
}
