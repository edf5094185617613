package spawner

import (
	"testing"
	"time"

	"github.com/vovakirdan/bubble-drone/internal/bubble"
	"github.com/vovakirdan/bubble-drone/internal/core"
)

const frame = time.Second / 30

func newProducer(t *testing.T, cfg Config) (*Producer, *bubble.Field) {
	t.Helper()
	f, err := bubble.NewField(bubble.Options{})
	if err != nil {
		t.Fatalf("NewField() error: %v", err)
	}
	return New(cfg, f, core.NewRNG(1), nil), f
}

func TestInitialBurst(t *testing.T) {
	p, f := newProducer(t, DefaultConfig(core.V(50, 10)))

	for i := 1; i <= 3; i++ {
		p.Update(frame)
		if p.Live() != i {
			t.Fatalf("after %d ticks Live() = %d, expected %d", i, p.Live(), i)
		}
	}
	for range 60 {
		p.Update(frame)
	}
	if p.Live() != 3 || p.Produced() != 3 {
		t.Errorf("Live() = %d, Produced() = %d, expected the burst to stop at 3", p.Live(), p.Produced())
	}
	if n := len(f.Floats()); n != 3 {
		t.Errorf("field holds %d floats, expected 3", n)
	}
}

func TestRefillAfterInterval(t *testing.T) {
	cfg := DefaultConfig(core.V(50, 10))
	cfg.Interval = time.Second
	p, f := newProducer(t, cfg)

	for range 4 {
		p.Update(frame)
	}
	f.Release(f.Floats()[0])
	if p.Live() != 2 {
		t.Fatalf("Live() = %d after release, expected 2", p.Live())
	}

	for range 20 {
		p.Update(frame)
	}
	if p.Live() != 2 {
		t.Error("refilled before the interval elapsed")
	}
	for range 15 {
		p.Update(frame)
	}
	if p.Live() != 3 {
		t.Errorf("Live() = %d after interval, expected 3", p.Live())
	}
}

func TestProducedMotion(t *testing.T) {
	cfg := DefaultConfig(core.V(50, 10))
	p, f := newProducer(t, cfg)
	p.Update(frame)

	b := f.Floats()[0]
	m := b.Motion
	if m.Origin != cfg.Origin || m.RangeX != 5 || m.RangeY != 3 {
		t.Errorf("motion = %+v, expected producer origin and ranges", m)
	}
	if m.Speed < 1.5 || m.Speed >= 2.5 || m.Freq < 1.5 || m.Freq >= 2.5 {
		t.Errorf("speed %v / freq %v outside the jitter range", m.Speed, m.Freq)
	}
	if b.Owner != p || b.Type != bubble.None {
		t.Errorf("owner = %v, type = %v", b.Owner, b.Type)
	}
}

func TestOtherOwnersNotCounted(t *testing.T) {
	p, f := newProducer(t, DefaultConfig(core.V(0, 0)))
	if _, err := f.SpawnFloat(bubble.None); err != nil {
		t.Fatal(err)
	}
	if p.Live() != 0 {
		t.Errorf("Live() = %d, expected bubbles of other owners to be ignored", p.Live())
	}
}
