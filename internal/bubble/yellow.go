package bubble

import "github.com/vovakirdan/bubble-drone/internal/core"

// Yellow wraps the drone and its bubbles in a shield for a while, then pops.
type yellowResolver struct{}

func (yellowResolver) Attach(f *Field, b *Bubble) {
	b.spent = true
	if b.player == nil {
		b.Attacked()
		return
	}
	f.cover(b)
	b.Scale = f.tune.YellowScale
	b.Offset = core.Vec2{}
	b.Pos = b.player.Position()

	gen := b.gen
	f.sched.After(b, f.tune.YellowDuration, func() {
		if b.gen != gen {
			return
		}
		f.uncover(b)
		b.Attacked()
	})
	f.resolved(b, len(f.covers[b].held))
}

func (yellowResolver) Contact(*Field, *Bubble, Contact) {}
