package bubble

import (
	"time"

	"github.com/vovakirdan/bubble-drone/internal/core"
)

// ContactKind says what an attached bubble touched.
type ContactKind int

const (
	ContactPlayer ContactKind = iota
	ContactBubble
	ContactTerrain
)

// Contact describes one touch reported to a resolver.
type Contact struct {
	Kind   ContactKind
	Other  *Bubble   // set for ContactBubble
	Point  core.Vec2 // where the touch happened
	Normal core.Vec2 // terrain surface normal, set for ContactTerrain
}

// Resolver is the effect of one bubble color.
// Attach runs when the bubble sticks to a player; Contact runs for each touch
// while the bubble is attached, until the effect is spent.
type Resolver interface {
	Attach(f *Field, b *Bubble)
	Contact(f *Field, b *Bubble, c Contact)
}

// DefaultResolvers returns the stock effect table.
func DefaultResolvers() map[Type]Resolver {
	return map[Type]Resolver{
		None:   inert{},
		Red:    redResolver{},
		Yellow: yellowResolver{},
		Orange: orangeResolver{},
		Green:  greenResolver{},
	}
}

type inert struct{}

func (inert) Attach(*Field, *Bubble)           {}
func (inert) Contact(*Field, *Bubble, Contact) {}

func (f *Field) resolver(b *Bubble) Resolver {
	if r, ok := f.resolvers[b.Type]; ok {
		return r
	}
	return inert{}
}

func (f *Field) contact(b *Bubble, c Contact) {
	if b.dead || b.spent {
		return
	}
	f.resolver(b).Contact(f, b, c)
}

func (f *Field) resolved(b *Bubble, affected int) {
	if f.hooks.Resolved != nil {
		f.hooks.Resolved(b, affected)
	}
}

// knockback pushes a popped bubble away from dir at the knockback speed.
func (f *Field) knockback(b *Bubble, dir core.Vec2) {
	dir = dir.Norm()
	left := f.tune.KnockbackDistance
	f.sched.Go(b, func(dt time.Duration) bool {
		step := min(f.tune.KnockbackSpeed*dt.Seconds(), left)
		b.Offset = b.Offset.Add(dir.Scale(step))
		if b.player == nil {
			b.Pos = b.Pos.Add(dir.Scale(step))
		}
		left -= step
		return left > 0
	})
}
