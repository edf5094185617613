// Package pool recycles game entities by kind.
//
// Each kind has a bucket with a LIFO stack of idle instances and an
// insertion-ordered list of instances in use. When a bucket is at capacity the
// oldest in-use instance that is not protected is evicted and handed out again.
package pool

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
)

// DefaultCapacity is used for assets registered without a capacity.
const DefaultCapacity = 16

var (
	// ErrUnknownKind is returned when acquiring a kind that was never registered.
	ErrUnknownKind = errors.New("pool: unknown kind")
	// ErrDuplicateKind is returned when registering a kind twice.
	ErrDuplicateKind = errors.New("pool: kind already registered")
	// ErrExhausted is returned when a full bucket has nothing it may evict.
	ErrExhausted = errors.New("pool: bucket exhausted")
)

// Poolable is implemented by pooled entities.
// Spawn resets the entity to a fresh visible state; Despawn hides it.
type Poolable interface {
	comparable
	Spawn()
	Despawn()
}

// Parentable entities are grouped under a named root while idle when layout is on.
type Parentable interface {
	SetParent(parent string)
}

// Asset describes how to create instances of one kind.
type Asset[T Poolable] struct {
	Kind     string
	Capacity int
	New      func(kind string) T
	NoEvict  bool // fail with ErrExhausted instead of evicting
}

// Options configure a Pool.
type Options[T Poolable] struct {
	// Layout groups idle instances under "pool/<kind>".
	Layout bool
	Logger *log.Logger
	// OnEvict is called before an in-use instance is reclaimed,
	// so its current owner can drop references to it.
	OnEvict func(kind string, item T)
}

// Stats is a snapshot of one bucket.
type Stats struct {
	Kind      string
	Capacity  int
	Idle      int
	InUse     int
	Created   int
	Evictions int
}

type bucket[T Poolable] struct {
	idle      []T
	used      []T
	created   int
	evictions int
}

type slot struct {
	kind      string
	inUse     bool
	protected bool
}

// Pool hands out and takes back entities. It is not safe for concurrent use;
// each game instance owns its pools.
type Pool[T Poolable] struct {
	opts    Options[T]
	log     *log.Logger
	assets  map[string]Asset[T]
	buckets map[string]*bucket[T]
	slots   map[T]*slot
}

// New creates an empty pool.
func New[T Poolable](opts Options[T]) *Pool[T] {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Pool[T]{
		opts:    opts,
		log:     logger,
		assets:  make(map[string]Asset[T]),
		buckets: make(map[string]*bucket[T]),
		slots:   make(map[T]*slot),
	}
}

// Register adds an asset to the catalog.
func (p *Pool[T]) Register(a Asset[T]) error {
	if a.New == nil {
		return fmt.Errorf("pool: asset %q has no constructor", a.Kind)
	}
	if _, ok := p.assets[a.Kind]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKind, a.Kind)
	}
	if a.Capacity <= 0 {
		a.Capacity = DefaultCapacity
	}
	p.assets[a.Kind] = a
	return nil
}

// Has reports whether kind is registered.
func (p *Pool[T]) Has(kind string) bool {
	_, ok := p.assets[kind]
	return ok
}

// Acquire returns an active instance of kind.
func (p *Pool[T]) Acquire(kind string) (T, error) {
	var zero T
	asset, ok := p.assets[kind]
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	b := p.buckets[kind]
	if b == nil {
		b = &bucket[T]{}
		p.buckets[kind] = b
	}

	if n := len(b.idle); n > 0 {
		item := b.idle[n-1]
		b.idle = b.idle[:n-1]
		p.activate(b, item)
		return item, nil
	}

	if len(b.used) < asset.Capacity {
		item := asset.New(kind)
		p.slots[item] = &slot{kind: kind}
		b.created++
		p.activate(b, item)
		return item, nil
	}

	if asset.NoEvict {
		return zero, fmt.Errorf("%w: %q at capacity %d", ErrExhausted, kind, asset.Capacity)
	}
	return p.evict(kind, b)
}

// AcquireOr acquires kind, falling back to another kind when the first is unknown.
// It returns the kind that was actually used.
func (p *Pool[T]) AcquireOr(kind, fallback string) (T, string, error) {
	item, err := p.Acquire(kind)
	if err == nil || !errors.Is(err, ErrUnknownKind) {
		return item, kind, err
	}
	p.log.Debug("pool fallback", "kind", kind, "fallback", fallback)
	item, err = p.Acquire(fallback)
	return item, fallback, err
}

func (p *Pool[T]) activate(b *bucket[T], item T) {
	s := p.slots[item]
	s.inUse = true
	s.protected = false
	b.used = append(b.used, item)
	if pa, ok := any(item).(Parentable); ok && p.opts.Layout {
		pa.SetParent("")
	}
	item.Spawn()
}

// evict reclaims the oldest unprotected in-use instance and moves it to the back.
func (p *Pool[T]) evict(kind string, b *bucket[T]) (T, error) {
	var zero T
	idx := slices.IndexFunc(b.used, func(item T) bool {
		return !p.slots[item].protected
	})
	if idx < 0 {
		p.log.Warn("pool exhausted", "kind", kind, "in_use", len(b.used))
		return zero, fmt.Errorf("%w: %q all %d instances protected", ErrExhausted, kind, len(b.used))
	}

	item := b.used[idx]
	b.used = append(b.used[:idx], b.used[idx+1:]...)
	b.evictions++
	p.log.Debug("pool evicted", "kind", kind, "evictions", b.evictions)

	if p.opts.OnEvict != nil {
		p.opts.OnEvict(kind, item)
	}
	item.Despawn()
	p.activate(b, item)
	return item, nil
}

// Release returns an instance to its bucket.
// Releasing an idle or unknown instance is a no-op that returns false.
func (p *Pool[T]) Release(item T) bool {
	s, ok := p.slots[item]
	if !ok {
		p.log.Debug("pool release of unknown instance ignored")
		return false
	}
	if !s.inUse {
		p.log.Debug("pool double release ignored", "kind", s.kind)
		return false
	}
	b := p.buckets[s.kind]

	s.inUse = false
	s.protected = false
	item.Despawn()
	if pa, ok := any(item).(Parentable); ok && p.opts.Layout {
		pa.SetParent("pool/" + s.kind)
	}
	if i := slices.Index(b.used, item); i >= 0 {
		b.used = append(b.used[:i], b.used[i+1:]...)
	}
	b.idle = append(b.idle, item)
	return true
}

// Protect marks an in-use instance as not evictable, or clears the mark.
// Release clears it as well.
func (p *Pool[T]) Protect(item T, on bool) {
	if s, ok := p.slots[item]; ok && s.inUse {
		s.protected = on
	}
}

// InUse reports whether item is currently handed out.
func (p *Pool[T]) InUse(item T) bool {
	s, ok := p.slots[item]
	return ok && s.inUse
}

// KindOf returns the kind an instance belongs to.
func (p *Pool[T]) KindOf(item T) (string, bool) {
	s, ok := p.slots[item]
	if !ok {
		return "", false
	}
	return s.kind, true
}

// Active returns the in-use instances of kind, oldest first.
func (p *Pool[T]) Active(kind string) []T {
	b := p.buckets[kind]
	if b == nil {
		return nil
	}
	return slices.Clone(b.used)
}

// Stats reports bucket counters for kind.
func (p *Pool[T]) Stats(kind string) Stats {
	st := Stats{Kind: kind, Capacity: p.assets[kind].Capacity}
	if b := p.buckets[kind]; b != nil {
		st.Idle = len(b.idle)
		st.InUse = len(b.used)
		st.Created = b.created
		st.Evictions = b.evictions
	}
	return st
}

// Kinds returns the registered kinds in sorted order.
func (p *Pool[T]) Kinds() []string {
	kinds := make([]string, 0, len(p.assets))
	for k := range p.assets {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Clear drops every bucket and forgets all instances.
// Registered assets are kept, so the pool can be reused for the next level.
func (p *Pool[T]) Clear() {
	for _, b := range p.buckets {
		for _, item := range b.used {
			item.Despawn()
		}
	}
	p.buckets = make(map[string]*bucket[T])
	p.slots = make(map[T]*slot)
}
