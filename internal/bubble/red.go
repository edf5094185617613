package bubble

// Red pops on anything solid and takes the drone down with it.
type redResolver struct{}

func (redResolver) Attach(*Field, *Bubble) {}

func (redResolver) Contact(f *Field, b *Bubble, c Contact) {
	b.spent = true
	switch c.Kind {
	case ContactPlayer:
		p := b.player
		b.Attacked()
		if p != nil {
			p.Dead()
		}
		f.knockback(b, b.Pos.Sub(c.Point))
	case ContactBubble:
		if c.Other.Type != Yellow {
			c.Other.Attacked()
		}
		b.Attacked()
		f.knockback(b, b.Pos.Sub(c.Other.Pos))
	case ContactTerrain:
		b.Attacked()
		f.knockback(b, c.Normal)
	}
	f.resolved(b, 0)
}
