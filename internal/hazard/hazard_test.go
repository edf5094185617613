package hazard

import (
	"testing"
	"time"

	"github.com/vovakirdan/bubble-drone/internal/bubble"
	"github.com/vovakirdan/bubble-drone/internal/core"
)

const frame = time.Second / 30

type drone struct {
	pos    core.Vec2
	deaths int
	shield bool
}

func (d *drone) Position() core.Vec2 { return d.pos }
func (d *drone) Radius() float64     { return 0.8 }
func (d *drone) Accelerate()         {}
func (d *drone) Contain()            {}
func (d *drone) Uncontain()          {}
func (d *drone) Dead() bool {
	if d.shield {
		return false
	}
	d.deaths++
	return true
}

func newField(t *testing.T, d *drone) *bubble.Field {
	t.Helper()
	f, err := bubble.NewField(bubble.Options{})
	if err != nil {
		t.Fatalf("NewField() error: %v", err)
	}
	f.SetPlayer(d)
	return f
}

func newCourse(t *testing.T) *Course {
	t.Helper()
	c, err := NewCourse(Options{Bounds: core.Box{X: 0, Y: 0, W: 100, H: 30}, BulletCapacity: 2})
	if err != nil {
		t.Fatalf("NewCourse() error: %v", err)
	}
	return c
}

func TestDyeZoneRecolorsFloats(t *testing.T) {
	d := &drone{pos: core.V(50, 25)}
	f := newField(t, d)
	fl, _ := f.SpawnFloat(bubble.None)
	fl.SetMotion(bubble.Motion{Origin: core.V(5, 5)})
	green, _ := f.SpawnFloat(bubble.Green)
	green.SetMotion(bubble.Motion{Origin: core.V(6, 5)})

	z := &DyeZone{Box: core.Box{X: 4, Y: 4, W: 4, H: 2}, Color: bubble.Red}
	if n := z.Apply(f); n != 1 {
		t.Errorf("Apply() = %d, expected 1", n)
	}
	if fl.Type != bubble.Red {
		t.Errorf("float type = %v, expected Red", fl.Type)
	}
	if green.Type != bubble.Green {
		t.Error("green bubbles must keep their color")
	}
}

func TestDyeZoneReskinsAttached(t *testing.T) {
	d := &drone{pos: core.V(5, 5)}
	f := newField(t, d)
	b, _ := f.SpawnCombine(bubble.None)
	f.StickOnPlayer(b, d, core.V(5, 7), 1)

	z := &DyeZone{Box: core.Box{X: 4, Y: 6.5, W: 2, H: 2}, Color: bubble.Yellow}
	z.Apply(f)

	att := f.Attached()
	if len(att) != 1 || att[0].Type != bubble.Yellow {
		t.Fatalf("attached = %v, expected one yellow bubble", att)
	}
	if b.Active() {
		t.Error("old colorless bubble should be back in the pool")
	}
}

func TestSpineHitsBubblesAndDrone(t *testing.T) {
	d := &drone{pos: core.V(10, 10)}
	f := newField(t, d)
	fl, _ := f.SpawnFloat(bubble.None)
	fl.SetMotion(bubble.Motion{Origin: core.V(10, 3)})

	s := NewSpine(core.Box{X: 9, Y: 2, W: 2, H: 1})
	s.Hit(f, d)
	if !fl.IsDead() {
		t.Error("bubble touching a spine should pop")
	}
	if d.deaths != 0 {
		t.Error("drone away from the spine should live")
	}

	d.pos = core.V(10, 3.5)
	s.Hit(f, d)
	if d.deaths != 1 {
		t.Errorf("deaths = %d, expected 1", d.deaths)
	}
}

func TestMovingSpinePingPongs(t *testing.T) {
	s := NewMovingSpine(core.V(0, 0), core.V(4, 0), core.V(1, 1), 2)

	for range 30 {
		s.Update(frame)
	}
	if got := s.Box().X; got < 1.99 || got > 2.01 {
		t.Errorf("after 1s X = %v, expected 2", got)
	}
	for range 60 {
		s.Update(frame)
	}
	if got := s.Box().X; got < 1.99 || got > 2.01 {
		t.Errorf("after 3s X = %v, expected 2 on the way back", got)
	}
}

func TestBeeRun(t *testing.T) {
	cfg := DefaultBeeConfig()
	bee := NewBee(core.V(40, 2), cfg)
	far := &drone{pos: core.V(0, 20)}
	near := &drone{pos: core.V(35, 20)}

	if bee.Update(frame, far) || bee.Busy() {
		t.Fatal("bee should wait until the drone is in view")
	}

	shots := 0
	for range 60 {
		if bee.Update(frame, near) {
			shots++
		}
	}
	if shots != 1 {
		t.Errorf("bee fired %d times on one run, expected 1", shots)
	}
	if bee.Pos != bee.Home || bee.Busy() {
		t.Errorf("bee should be home and resting, at %v", bee.Pos)
	}

	bee.Update(frame, far)
	bee.Update(frame, near)
	if !bee.Busy() {
		t.Error("bee should re-arm after the drone leaves view")
	}
}

func TestBulletSparesYellow(t *testing.T) {
	d := &drone{pos: core.V(90, 25)}
	f := newField(t, d)
	c := newCourse(t)

	yellow, _ := f.SpawnFloat(bubble.Yellow)
	yellow.SetMotion(bubble.Motion{Origin: core.V(10, 10.2)})
	b, _ := c.Fire(core.V(10, 10))

	c.Update(frame, f, d)
	if yellow.IsDead() {
		t.Error("bullets must not pop yellow bubbles")
	}
	if b.Active() || len(c.Bullets()) != 0 {
		t.Error("bullet should be released after hitting a bubble")
	}
}

func TestBulletPopsAndKills(t *testing.T) {
	d := &drone{pos: core.V(30, 10.2)}
	f := newField(t, d)
	c := newCourse(t)

	red, _ := f.SpawnFloat(bubble.Red)
	red.SetMotion(bubble.Motion{Origin: core.V(10, 10.2)})
	c.Fire(core.V(10, 10))
	c.Fire(core.V(30, 10))

	c.Update(frame, f, d)
	if !red.IsDead() {
		t.Error("bullet should pop the red bubble")
	}
	if d.deaths != 1 {
		t.Errorf("deaths = %d, expected 1", d.deaths)
	}
	if len(c.Bullets()) != 0 {
		t.Errorf("%d bullets still flying", len(c.Bullets()))
	}
}

func TestBulletLeavesBounds(t *testing.T) {
	d := &drone{pos: core.V(90, 5)}
	f := newField(t, d)
	c := newCourse(t)
	c.Fire(core.V(50, 29.9))

	c.Update(frame, f, d)
	if len(c.Bullets()) != 0 {
		t.Error("bullet outside the level should be released")
	}
}

func TestBulletPoolEvictsOldest(t *testing.T) {
	c := newCourse(t)
	first, _ := c.Fire(core.V(1, 1))
	c.Fire(core.V(2, 1))
	third, err := c.Fire(core.V(3, 1))
	if err != nil {
		t.Fatalf("Fire() error: %v", err)
	}
	if third != first {
		t.Error("third bullet should reuse the oldest one")
	}
	if n := len(c.Bullets()); n != 2 {
		t.Errorf("%d bullets flying, expected 2", n)
	}
}

func TestFinishLineOnce(t *testing.T) {
	l := &FinishLine{Box: core.Box{X: 10, Y: 0, W: 1, H: 30}}
	d := &drone{pos: core.V(10.5, 5)}

	if !l.Reached(d) {
		t.Fatal("Reached() = false on first contact")
	}
	if l.Reached(d) {
		t.Error("Reached() should report only once")
	}
}

func TestCourseFinish(t *testing.T) {
	d := &drone{pos: core.V(95, 5)}
	f := newField(t, d)
	c := newCourse(t)
	c.Finish = &FinishLine{Box: core.Box{X: 95, Y: 0, W: 2, H: 30}}

	if !c.Update(frame, f, d) {
		t.Error("Update() should report reaching the finish line")
	}
	if c.Update(frame, f, d) {
		t.Error("finish should only be reported once")
	}
}
