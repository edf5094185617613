// Package hazard holds the level objects that are not bubbles: dye zones,
// spines, bees with their bullets, and the finish line.
package hazard

import (
	"time"

	"github.com/vovakirdan/bubble-drone/internal/bubble"
	"github.com/vovakirdan/bubble-drone/internal/core"
)

// Target is the drone as seen by hazards.
type Target interface {
	Position() core.Vec2
	Radius() float64
	Dead() bool
}

func targetCircle(t Target) core.Circle {
	return core.Circle{C: t.Position(), R: t.Radius()}
}

// DyeZone recolors bubbles passing through it.
type DyeZone struct {
	Box   core.Box
	Color bubble.Type
}

// Apply recolors floating bubbles inside the zone and re-skins colorless
// attached bubbles. It returns the number of bubbles changed.
func (z *DyeZone) Apply(f *bubble.Field) int {
	n := 0
	for _, b := range f.Floats() {
		if b.Collider().TouchesBox(z.Box) && b.ChangeColor(z.Color) {
			n++
		}
	}
	for _, b := range f.Attached() {
		if !b.Collider().TouchesBox(z.Box) {
			continue
		}
		if _, ok := f.Reskin(b, z.Color); ok {
			n++
		}
	}
	return n
}

// Spine pops every bubble it touches and kills the drone on contact.
// A spine with a different To point slides back and forth between From and To.
type Spine struct {
	From  core.Vec2 // top-left corner at rest
	To    core.Vec2 // far end of the slide, equal to From when static
	Size  core.Vec2
	Speed float64 // units per second while sliding

	elapsed float64
	pos     core.Vec2
}

// NewSpine creates a static spine.
func NewSpine(box core.Box) *Spine {
	at := core.V(box.X, box.Y)
	return &Spine{From: at, To: at, Size: core.V(box.W, box.H), pos: at}
}

// NewMovingSpine creates a spine sliding between from and to.
func NewMovingSpine(from, to, size core.Vec2, speed float64) *Spine {
	return &Spine{From: from, To: to, Size: size, Speed: speed, pos: from}
}

// Box returns the current spine area.
func (s *Spine) Box() core.Box {
	return core.Box{X: s.pos.X, Y: s.pos.Y, W: s.Size.X, H: s.Size.Y}
}

// Moving reports whether the spine slides.
func (s *Spine) Moving() bool { return s.From != s.To && s.Speed > 0 }

// Update slides a moving spine.
func (s *Spine) Update(dt time.Duration) {
	if !s.Moving() {
		return
	}
	s.elapsed += dt.Seconds()
	span := s.To.Sub(s.From)
	t := core.PingPong(s.elapsed*s.Speed/span.Len(), 1)
	s.pos = s.From.Add(span.Scale(t))
}

// Hit applies the spine to bubbles and the drone.
func (s *Spine) Hit(f *bubble.Field, t Target) {
	box := s.Box()
	for _, b := range f.Live() {
		if !b.IsDead() && b.Collider().TouchesBox(box) {
			b.Attacked()
		}
	}
	if t != nil && targetCircle(t).TouchesBox(box) {
		t.Dead()
	}
}

// FinishLine completes the level the first time the drone reaches it.
type FinishLine struct {
	Box  core.Box
	done bool
}

// Reached reports true exactly once, on the first contact.
func (l *FinishLine) Reached(t Target) bool {
	if l.done || t == nil || !targetCircle(t).TouchesBox(l.Box) {
		return false
	}
	l.done = true
	return true
}

// Done reports whether the line was crossed.
func (l *FinishLine) Done() bool { return l.done }
