package bubble

import "github.com/vovakirdan/bubble-drone/internal/core"

// Orange bursts every other bubble around it and gives the drone a speed boost.
type orangeResolver struct{}

func (orangeResolver) Attach(*Field, *Bubble) {}

func (orangeResolver) Contact(f *Field, b *Bubble, c Contact) {
	if c.Kind == ContactTerrain {
		return
	}
	b.spent = true
	p := b.player
	if p == nil {
		b.Attacked()
		return
	}

	blast := core.Circle{C: b.Pos, R: f.tune.OrangeRadius}
	victims := f.filter(func(o *Bubble) bool {
		return o != b && !o.dead && o.Type != Orange && blast.Overlaps(o.Collider())
	})
	for _, o := range victims {
		o.Attacked()
	}
	p.Accelerate()
	b.Attacked()
	f.resolved(b, len(victims))
}
