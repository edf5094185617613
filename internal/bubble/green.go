package bubble

import "math"

// Green turns the other attached bubbles green and multiplies, at the cost of size.
type greenResolver struct{}

func (greenResolver) Attach(*Field, *Bubble) {}

func (greenResolver) Contact(f *Field, b *Bubble, c Contact) {
	if c.Kind == ContactTerrain {
		return
	}
	b.spent = true
	p := b.player
	if p == nil {
		b.Attacked()
		return
	}

	attached := f.AttachedTo(p)
	ratio := f.tune.GreenSizeRatio
	recolored := 0
	for _, o := range attached {
		if o == b || o.Type == Green {
			continue
		}
		o.ChangeColor(Green)
		o.spent = true
		o.ChangeSize(o.Scale * ratio)
		recolored++
	}

	// The trigger and its new greens must not be evicted by the spawns that
	// follow. A full bucket ends the spread early.
	f.pool.Protect(b, true)
	spawn := int(math.Ceil(float64(len(attached)) * f.tune.GreenSpawn))
	at := b.Pos
	var born []*Bubble
	for range spawn {
		nb, err := f.SpawnCombine(Green)
		if err != nil {
			break
		}
		f.pool.Protect(nb, true)
		born = append(born, nb)
		nb.spent = true
		nb.ChangeSize(b.Scale)
		f.StickOnPlayer(nb, p, at, f.tune.ClosestRatio)
	}
	for _, nb := range born {
		f.pool.Protect(nb, false)
	}

	b.ChangeSize(b.Scale * ratio)
	b.Attacked()
	f.resolved(b, recolored)
}
