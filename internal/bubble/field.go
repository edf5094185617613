package bubble

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubble-drone/internal/core"
	"github.com/vovakirdan/bubble-drone/internal/pool"
	"github.com/vovakirdan/bubble-drone/internal/sched"
)

// Hooks let the game observe bubble events, mainly for scoring.
type Hooks struct {
	Attached func(b *Bubble)               // picked up by the player
	Resolved func(b *Bubble, affected int) // color effect ran
	Popped   func(b *Bubble)               // attacked
}

// Options configure a Field.
type Options struct {
	Tuning Tuning
	// Capacity per mode; zero uses pool.DefaultCapacity.
	FloatCapacity   int
	CombineCapacity int
	// Colors limits which kinds are registered. Empty registers all of them.
	Colors []Type
	Layout bool
	Sched  *sched.Scheduler
	Cues   core.Cuer
	Logger *log.Logger
	Hooks  Hooks
}

// Field owns every live bubble of a level: their pool, their per-tick update
// and the contacts between bubbles, the player and the terrain.
type Field struct {
	tune      Tuning
	pool      *pool.Pool[*Bubble]
	sched     *sched.Scheduler
	cues      core.Cuer
	log       *log.Logger
	hooks     Hooks
	resolvers map[Type]Resolver

	player  Player
	terrain []core.Box
	live    []*Bubble
	covers  map[*Bubble]*shield
	nextID  int
}

type cover struct {
	b   *Bubble
	gen int
}

type shield struct {
	player Player
	held   []cover
}

// NewField creates a field and registers the bubble asset catalog.
func NewField(opts Options) (*Field, error) {
	f := &Field{
		tune:      opts.Tuning,
		sched:     opts.Sched,
		cues:      opts.Cues,
		log:       opts.Logger,
		hooks:     opts.Hooks,
		resolvers: DefaultResolvers(),
		covers:    make(map[*Bubble]*shield),
	}
	if f.tune == (Tuning{}) {
		f.tune = DefaultTuning()
	}
	if f.sched == nil {
		f.sched = sched.New()
	}
	if f.cues == nil {
		f.cues = core.NopCuer{}
	}
	if f.log == nil {
		f.log = log.New(io.Discard)
	}

	f.pool = pool.New(pool.Options[*Bubble]{
		Layout:  opts.Layout,
		Logger:  f.log,
		OnEvict: func(kind string, b *Bubble) { f.forget(b) },
	})

	colors := opts.Colors
	if len(colors) == 0 {
		colors = Types
	}
	for _, t := range colors {
		for _, m := range []Mode{Float, Combine} {
			capacity := opts.FloatCapacity
			if m == Combine {
				capacity = opts.CombineCapacity
			}
			err := f.pool.Register(pool.Asset[*Bubble]{
				Kind:     AssetKey(t, m),
				Capacity: capacity,
				New: func(kind string) *Bubble {
					return newBubble(f, kind, t, m)
				},
			})
			if err != nil {
				return nil, fmt.Errorf("bubble: register catalog: %w", err)
			}
		}
	}
	return f, nil
}

// Tuning returns the active tuning.
func (f *Field) Tuning() Tuning { return f.tune }

// Scheduler returns the scheduler bubbles run their timers on.
func (f *Field) Scheduler() *sched.Scheduler { return f.sched }

// SetPlayer sets the player bubbles attach to. Nil is allowed.
func (f *Field) SetPlayer(p Player) { f.player = p }

// SetTerrain sets the solid boxes attached bubbles are squeezed against.
func (f *Field) SetTerrain(boxes []core.Box) { f.terrain = boxes }

// SetResolver overrides the effect of one color.
func (f *Field) SetResolver(t Type, r Resolver) { f.resolvers[t] = r }

// Spawn acquires a bubble of kind and puts it into play.
func (f *Field) Spawn(kind string) (*Bubble, error) {
	b, err := f.pool.Acquire(kind)
	if err != nil {
		return nil, err
	}
	f.track(b)
	return b, nil
}

// SpawnFloat acquires a floating bubble of color t. Unknown color kinds fall
// back to the colorless kind and are recolored.
func (f *Field) SpawnFloat(t Type) (*Bubble, error) {
	return f.spawnColor(t, Float)
}

// SpawnCombine acquires an attachable bubble of color t, with the same fallback.
func (f *Field) SpawnCombine(t Type) (*Bubble, error) {
	return f.spawnColor(t, Combine)
}

func (f *Field) spawnColor(t Type, m Mode) (*Bubble, error) {
	b, _, err := f.pool.AcquireOr(AssetKey(t, m), AssetKey(None, m))
	if err != nil {
		f.log.Warn("bubble spawn failed", "kind", AssetKey(t, m), "err", err)
		return nil, err
	}
	f.track(b)
	b.ChangeColor(t)
	return b, nil
}

func (f *Field) track(b *Bubble) {
	f.nextID++
	b.ID = f.nextID
	f.live = append(f.live, b)
}

// release returns a bubble to the pool. It is safe to call more than once.
func (f *Field) release(b *Bubble) {
	f.forget(b)
	f.pool.Release(b)
}

// forget drops every reference the field holds to b.
func (f *Field) forget(b *Bubble) {
	f.sched.CancelOwner(b)
	f.uncover(b)
	if i := slices.Index(f.live, b); i >= 0 {
		f.live = slices.Delete(f.live, i, i+1)
	}
	b.player = nil
}

// Release puts a bubble back into the pool immediately, without a pop.
func (f *Field) Release(b *Bubble) { f.release(b) }

// Live returns the bubbles in play, oldest first.
func (f *Field) Live() []*Bubble { return slices.Clone(f.live) }

// Floats returns the floating bubbles that are still alive.
func (f *Field) Floats() []*Bubble {
	return f.filter(func(b *Bubble) bool { return b.Mode == Float && !b.dead })
}

// AttachedTo returns the living bubbles stuck to the player.
func (f *Field) AttachedTo(p Player) []*Bubble {
	if p == nil {
		return nil
	}
	return f.filter(func(b *Bubble) bool { return b.player == p && !b.dead })
}

// Attached returns the living bubbles stuck to the current player.
func (f *Field) Attached() []*Bubble { return f.AttachedTo(f.player) }

// CountOwned counts living floating bubbles produced by owner.
func (f *Field) CountOwned(owner any) int {
	return len(f.filter(func(b *Bubble) bool {
		return b.Mode == Float && !b.dead && b.Owner == owner
	}))
}

func (f *Field) filter(keep func(*Bubble) bool) []*Bubble {
	var out []*Bubble
	for _, b := range f.live {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

// Stats returns the pool counters for a kind.
func (f *Field) Stats(kind string) pool.Stats { return f.pool.Stats(kind) }

// Clear releases every bubble and drops all pool buckets.
func (f *Field) Clear() {
	for _, b := range f.live {
		f.sched.CancelOwner(b)
		f.uncover(b)
		b.player = nil
	}
	f.live = nil
	f.covers = make(map[*Bubble]*shield)
	f.pool.Clear()
}

// StickOnPlayer attaches b to p at the contact point. The offset keeps the
// contact direction and scales the contact distance by ratio.
func (f *Field) StickOnPlayer(b *Bubble, p Player, contact core.Vec2, ratio float64) {
	if p == nil {
		f.release(b)
		return
	}
	center := p.Position()
	d := contact.Sub(center)
	b.Offset = d.Norm().Scale(d.Len() * ratio)
	b.player = p
	b.Mode = Combine
	b.Pos = center.Add(b.Offset)
	b.SetParent("player")
	if !b.spent {
		f.resolver(b).Attach(f, b)
	}
}

// Reskin replaces an attached colorless bubble with one of color t at the same
// spot. Bubbles that are colored, shielded by yellow or dead are left alone.
func (f *Field) Reskin(old *Bubble, t Type) (*Bubble, bool) {
	if old.Mode != Combine || old.dead || old.Contained() || old.Type != None || old.player == nil {
		return nil, false
	}
	p := old.player
	nb, err := f.SpawnCombine(t)
	if err != nil {
		return nil, false
	}
	at := old.Pos
	f.release(old)
	f.StickOnPlayer(nb, p, at, f.tune.ReskinRatio)
	f.cues.Cue(nb.Kind, core.EffectDye)
	return nb, true
}

// handOff turns a floating bubble that touched the player into an attached one.
func (f *Field) handOff(fl *Bubble) {
	fl.cooldown = true
	nb, err := f.SpawnCombine(fl.Type)
	if err != nil {
		if errors.Is(err, pool.ErrExhausted) {
			f.log.Debug("hand-off skipped", "type", fl.Type)
		}
		fl.cooldown = false
		return
	}
	at := fl.Pos
	f.release(fl)
	f.StickOnPlayer(nb, f.player, at, f.tune.ClosestRatio)
	f.cues.Cue(nb.Kind, core.EffectAttach)
	if f.hooks.Attached != nil {
		f.hooks.Attached(nb)
	}
}

type entry struct {
	b   *Bubble
	gen int
}

func (e entry) ok() bool {
	return e.b.active && !e.b.dead && e.b.gen == e.gen
}

func (f *Field) snapshot(keep func(*Bubble) bool) []entry {
	var out []entry
	for _, b := range f.live {
		if !b.dead && keep(b) {
			out = append(out, entry{b, b.gen})
		}
	}
	return out
}

// Update advances bubbles by one tick and resolves their contacts.
// Compression is checked before color effects, so a bubble crushed this tick
// never triggers its color.
func (f *Field) Update(dt time.Duration) {
	secs := dt.Seconds()

	for _, b := range f.live {
		switch {
		case b.player != nil:
			if f.Shielding(b) {
				b.Pos = b.player.Position()
			} else {
				b.Pos = b.player.Position().Add(b.Offset)
			}
		case b.Mode == Float:
			b.Pos = b.Motion.Step(secs)
		}
	}

	attached := f.snapshot(func(b *Bubble) bool { return b.player != nil })
	for _, e := range attached {
		if e.ok() {
			f.compress(e.b)
		}
	}

	for i, e := range attached {
		if !e.ok() {
			continue
		}
		b := e.b
		if p := b.player; p != nil {
			pc := core.Circle{C: p.Position(), R: p.Radius()}
			if b.Collider().Overlaps(pc) {
				f.contact(b, Contact{Kind: ContactPlayer, Point: pc.C})
			}
		}
		for _, o := range attached[i+1:] {
			if !e.ok() {
				break
			}
			if !o.ok() || !b.Collider().Overlaps(o.b.Collider()) {
				continue
			}
			f.contact(b, Contact{Kind: ContactBubble, Other: o.b, Point: o.b.Pos})
			if o.ok() {
				f.contact(o.b, Contact{Kind: ContactBubble, Other: b, Point: b.Pos})
			}
		}
	}

	for _, e := range f.snapshot(func(b *Bubble) bool { return b.Mode == Float && b.player == nil }) {
		if e.ok() && !e.b.cooldown {
			f.touchFloat(e.b)
		}
	}
}

// touchFloat handles a floating bubble meeting the player or its bubbles.
func (f *Field) touchFloat(fl *Bubble) {
	if f.player == nil {
		return
	}
	c := fl.Collider()
	for _, o := range f.Attached() {
		if !c.Overlaps(o.Collider()) {
			continue
		}
		if o.Type == Yellow {
			if fl.Type == Red {
				fl.Attacked()
				return
			}
			continue
		}
		f.handOff(fl)
		return
	}
	if c.Overlaps(core.Circle{C: f.player.Position(), R: f.player.Radius()}) {
		f.handOff(fl)
	}
}

// compress squeezes an attached bubble against terrain. A ratio past the burst
// threshold pops it.
func (f *Field) compress(b *Bubble) {
	depth, normal := 0.0, core.Vec2{}
	c := b.Collider()
	for _, box := range f.terrain {
		if d, n := c.Penetration(box); d > depth {
			depth, normal = d, n
		}
	}

	if depth <= 0 {
		if b.press.pressing {
			b.press.pressing = false
			f.recover(b)
		}
		return
	}

	ratio := core.ClampF(depth/f.tune.MaxCompression, 0, 1)
	if ratio >= f.tune.BurstThreshold {
		b.press.ratio = ratio
		b.Attacked()
		return
	}
	f.sched.Cancel(b.press.recovery)
	b.press = compression{ratio: ratio, normal: normal, pressing: true}
	b.applySquash()
	f.contact(b, Contact{Kind: ContactTerrain, Point: b.Pos.Sub(normal.Scale(b.Radius())), Normal: normal})
}

func (f *Field) recover(b *Bubble) {
	b.press.recovery = f.sched.Go(b, func(dt time.Duration) bool {
		b.press.ratio = max(0, b.press.ratio-f.tune.RecoverySpeed*dt.Seconds())
		b.applySquash()
		return b.press.ratio > 0
	})
}

// cover shields every bubble attached to the player of y, y included,
// and the player itself.
func (f *Field) cover(y *Bubble) {
	p := y.player
	if p == nil {
		return
	}
	sh := &shield{player: p}
	for _, b := range f.AttachedTo(p) {
		b.holds++
		sh.held = append(sh.held, cover{b, b.gen})
	}
	p.Contain()
	f.covers[y] = sh
}

// uncover reverts the shield of y. It is a no-op when y is not shielding.
func (f *Field) uncover(y *Bubble) {
	sh, ok := f.covers[y]
	if !ok {
		return
	}
	delete(f.covers, y)
	for _, c := range sh.held {
		if c.b.gen == c.gen && c.b.holds > 0 {
			c.b.holds--
		}
	}
	sh.player.Uncontain()
}

// Shielding reports whether y is currently covering the player.
func (f *Field) Shielding(y *Bubble) bool {
	_, ok := f.covers[y]
	return ok
}
