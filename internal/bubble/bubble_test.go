package bubble

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/bubble-drone/internal/core"
)

const frame = time.Second / 30

type fakePlayer struct {
	pos    core.Vec2
	radius float64
	holds  int
	deaths int
	boosts int
}

func (p *fakePlayer) Position() core.Vec2 { return p.pos }
func (p *fakePlayer) Radius() float64     { return p.radius }
func (p *fakePlayer) Accelerate()         { p.boosts++ }
func (p *fakePlayer) Contain()            { p.holds++ }
func (p *fakePlayer) Uncontain()          { p.holds-- }
func (p *fakePlayer) Dead() bool {
	if p.holds > 0 {
		return false
	}
	p.deaths++
	return true
}

type recorder struct {
	attached int
	resolved map[Type]int
	popped   map[*Bubble]int
}

func newTestField(t *testing.T, opts Options) (*Field, *fakePlayer, *recorder) {
	t.Helper()
	rec := &recorder{resolved: map[Type]int{}, popped: map[*Bubble]int{}}
	opts.Hooks = Hooks{
		Attached: func(*Bubble) { rec.attached++ },
		Resolved: func(b *Bubble, _ int) { rec.resolved[b.Type]++ },
		Popped:   func(b *Bubble) { rec.popped[b]++ },
	}
	f, err := NewField(opts)
	if err != nil {
		t.Fatalf("NewField() error: %v", err)
	}
	p := &fakePlayer{radius: 0.8}
	f.SetPlayer(p)
	return f, p, rec
}

func tick(f *Field, n int) {
	for range n {
		f.Scheduler().Tick(frame)
		f.Update(frame)
	}
}

// attach puts a bubble of color c on the player at exactly offset.
func attach(t *testing.T, f *Field, p *fakePlayer, c Type, offset core.Vec2) *Bubble {
	t.Helper()
	b, err := f.SpawnCombine(c)
	if err != nil {
		t.Fatalf("SpawnCombine(%v) error: %v", c, err)
	}
	f.StickOnPlayer(b, p, p.pos.Add(offset), 1)
	return b
}

func floatAt(t *testing.T, f *Field, c Type, at core.Vec2) *Bubble {
	t.Helper()
	b, err := f.SpawnFloat(c)
	if err != nil {
		t.Fatalf("SpawnFloat(%v) error: %v", c, err)
	}
	b.SetMotion(Motion{Origin: at})
	return b
}

func TestAssetKeys(t *testing.T) {
	tests := []struct {
		t        Type
		m        Mode
		expected string
	}{
		{Red, Float, "Prefabs/Bubble/Float/RedFloat"},
		{Yellow, Combine, "Prefabs/Bubble/Combine/YellowCombine"},
		{Orange, Float, "Prefabs/Bubble/Float/OrangeFloat"},
		{Green, Combine, "Prefabs/Bubble/Combine/GreenCombine"},
		{None, Float, "Prefabs/Bubble/Float/NoneFloat"},
		{Type(42), Combine, "Prefabs/Bubble/Combine/NoneCombine"},
	}

	for _, tc := range tests {
		if got := AssetKey(tc.t, tc.m); got != tc.expected {
			t.Errorf("AssetKey(%v, %v) = %q, expected %q", tc.t, tc.m, got, tc.expected)
		}
	}
}

func TestTintAndParse(t *testing.T) {
	if got := Tint(Yellow); got != (RGBA{1, 0.92, 0.016, 0.5}) {
		t.Errorf("Tint(Yellow) = %v", got)
	}
	if got := Tint(Type(-1)); got != (RGBA{1, 1, 1, 1}) {
		t.Errorf("Tint(unknown) = %v, expected white", got)
	}
	if c, ok := ParseType("orange"); !ok || c != Orange {
		t.Errorf("ParseType(\"orange\") = %v, %v", c, ok)
	}
	if _, ok := ParseType("pink"); ok {
		t.Error("ParseType(\"pink\") should fail")
	}
}

func TestMotionPath(t *testing.T) {
	m := Motion{RangeX: 5, RangeY: 3, Speed: 2, Freq: 2, Time: 0.25}
	got := m.Position()
	if math.Abs(got.X+4.5) > 1e-9 || math.Abs(got.Y-3) > 1e-9 {
		t.Errorf("Position() at t=0.25 = %v, expected (-4.5, 3)", got)
	}

	m.Moving = true
	got = m.Step(0.75)
	if math.Abs(got.X+3) > 1e-9 || math.Abs(got.Y) > 1e-9 {
		t.Errorf("Step() to t=1 = %v, expected (-3, 0)", got)
	}
}

func TestSetMotionFloorsSpeeds(t *testing.T) {
	f, _, _ := newTestField(t, Options{})
	b := floatAt(t, f, None, core.V(0, 0))

	tests := []struct {
		speed, freq         float64
		wantSpeed, wantFreq float64
	}{
		{0, -1, SpeedMin, SpeedMin},
		{0.05, 3, SpeedMin, 3},
		{2, 2, 2, 2},
	}
	for _, tt := range tests {
		b.SetMotion(Motion{Speed: tt.speed, Freq: tt.freq})
		if b.Motion.Speed != tt.wantSpeed || b.Motion.Freq != tt.wantFreq {
			t.Errorf("SetMotion(%v, %v) = (%v, %v), expected (%v, %v)",
				tt.speed, tt.freq, b.Motion.Speed, b.Motion.Freq, tt.wantSpeed, tt.wantFreq)
		}
	}
}

func TestSpawnResetsReleasedBubble(t *testing.T) {
	f, _, _ := newTestField(t, Options{})

	b := floatAt(t, f, None, core.V(20, 20))
	b.ChangeColor(Red)
	b.ChangeSize(0.2)
	b.Attacked()
	tick(f, 15)

	if st := f.Stats(FloatKey(None)); st.Idle != 1 || st.InUse != 0 {
		t.Fatalf("Stats() = %+v, expected the bubble back in the pool", st)
	}

	again, _ := f.SpawnFloat(None)
	if again != b {
		t.Fatal("expected the pooled instance to be reused")
	}
	if again.Type != None || again.Scale != 1 || again.IsDead() || again.Mode != Float {
		t.Errorf("reused bubble not reset: type=%v scale=%v dead=%v", again.Type, again.Scale, again.IsDead())
	}
}

func TestChangeColorGreenImmune(t *testing.T) {
	f, _, _ := newTestField(t, Options{})
	b, _ := f.SpawnCombine(Green)

	for _, c := range []Type{Red, Yellow, Orange, None} {
		if b.ChangeColor(c) {
			t.Errorf("ChangeColor(%v) changed a green bubble", c)
		}
	}
	if b.Type != Green {
		t.Errorf("Type = %v, expected Green", b.Type)
	}
}

func TestChangeSizeClamps(t *testing.T) {
	f, _, _ := newTestField(t, Options{})
	b, _ := f.SpawnCombine(None)

	tests := []struct{ in, expected float64 }{
		{1, SizeMax},
		{0.3, 0.3},
		{0.01, SizeMin},
	}
	for _, tc := range tests {
		b.ChangeSize(tc.in)
		if b.Scale != tc.expected {
			t.Errorf("ChangeSize(%v) scale = %v, expected %v", tc.in, b.Scale, tc.expected)
		}
	}
}

func TestAttackedIsIdempotent(t *testing.T) {
	f, _, rec := newTestField(t, Options{})
	b := floatAt(t, f, None, core.V(20, 20))

	b.Attacked()
	b.Attacked()
	f.Release(b)
	tick(f, 15)

	if rec.popped[b] != 1 {
		t.Errorf("popped %d times, expected 1", rec.popped[b])
	}
	if st := f.Stats(FloatKey(None)); st.Idle != 1 || st.InUse != 0 {
		t.Errorf("Stats() = %+v, expected a single idle instance", st)
	}
}

func TestFloatHandOff(t *testing.T) {
	f, p, rec := newTestField(t, Options{})
	fl := floatAt(t, f, None, core.V(1, 0))

	tick(f, 1)

	if fl.Active() {
		t.Error("float should be released after hand-off")
	}
	att := f.Attached()
	if len(att) != 1 {
		t.Fatalf("Attached() = %d bubbles, expected 1", len(att))
	}
	b := att[0]
	if b.Mode != Combine || b.Player() != p {
		t.Errorf("attached bubble mode=%v player=%v", b.Mode, b.Player())
	}
	if math.Abs(b.Offset.X-0.8) > 1e-9 || math.Abs(b.Offset.Y) > 1e-9 {
		t.Errorf("Offset = %v, expected (0.8, 0)", b.Offset)
	}
	if rec.attached != 1 {
		t.Errorf("Attached hook called %d times, expected 1", rec.attached)
	}
}

func TestFloatKeepsColorThroughHandOff(t *testing.T) {
	f, _, _ := newTestField(t, Options{})
	floatAt(t, f, Orange, core.V(1, 0))
	tick(f, 1)

	// The orange effect fires on the next tick, once the bubble is attached.
	var found bool
	for _, b := range f.Live() {
		if b.Type == Orange && b.Mode == Combine {
			found = true
		}
	}
	if !found {
		t.Error("expected an orange combine bubble after hand-off")
	}
}

func TestYellowShieldDestroysRedFloat(t *testing.T) {
	f, p, _ := newTestField(t, Options{})
	attach(t, f, p, Yellow, core.V(1, 0))

	red := floatAt(t, f, Red, core.V(2.5, 0))
	plain := floatAt(t, f, None, core.V(0, 2.5))
	tick(f, 1)

	if !red.IsDead() {
		t.Error("red float touching a yellow shield should be destroyed")
	}
	if plain.IsDead() || plain.Mode != Float || !plain.Active() {
		t.Error("other floats should pass through the shield untouched")
	}
	if n := len(f.Attached()); n != 1 {
		t.Errorf("Attached() = %d, expected only the yellow bubble", n)
	}
}

func TestYellowShieldLastsDuration(t *testing.T) {
	f, p, _ := newTestField(t, Options{})
	y := attach(t, f, p, Yellow, core.V(1, 0))
	other := attach(t, f, p, None, core.V(0, 3))

	if other.Contained() {
		t.Error("bubbles attached after the shield started should not be contained")
	}
	if p.holds != 1 || !y.Contained() {
		t.Fatalf("player holds = %d, yellow contained = %v", p.holds, y.Contained())
	}

	tick(f, 119)
	if p.holds != 1 || y.IsDead() {
		t.Fatalf("shield ended early at %v", f.Scheduler().Now())
	}
	tick(f, 2)
	if p.holds != 0 {
		t.Errorf("player still shielded at %v", f.Scheduler().Now())
	}
	if !y.IsDead() {
		t.Error("yellow bubble should pop when the shield ends")
	}
}

func TestYellowShieldsExistingBubbles(t *testing.T) {
	f, p, _ := newTestField(t, Options{})
	other := attach(t, f, p, None, core.V(0, 3))
	attach(t, f, p, Yellow, core.V(1, 0))

	if !other.Contained() {
		t.Error("bubble attached before the yellow should be contained")
	}
	if _, ok := f.Reskin(other, Red); ok {
		t.Error("contained bubble must not be re-skinned")
	}
}

func TestRedKillsUnshieldedPlayer(t *testing.T) {
	f, p, rec := newTestField(t, Options{})
	red := attach(t, f, p, Red, core.V(1, 0))

	tick(f, 1)
	if !red.IsDead() || p.deaths != 1 {
		t.Errorf("red dead = %v, player deaths = %d", red.IsDead(), p.deaths)
	}
	if rec.resolved[Red] != 1 {
		t.Errorf("red resolved %d times, expected 1", rec.resolved[Red])
	}

	tick(f, 1)
	if p.deaths != 1 {
		t.Errorf("red effect ran again, deaths = %d", p.deaths)
	}
}

func TestRedSparesShieldedPlayer(t *testing.T) {
	f, p, _ := newTestField(t, Options{})
	attach(t, f, p, Yellow, core.V(1, 0))
	red := attach(t, f, p, Red, core.V(-1, 0))

	tick(f, 1)
	if !red.IsDead() {
		t.Error("red bubble should still pop")
	}
	if p.deaths != 0 {
		t.Error("shielded player must not die")
	}
}

func TestOrangeChain(t *testing.T) {
	f, p, rec := newTestField(t, Options{})
	orange := attach(t, f, p, Orange, core.V(1, 0))
	near := []*Bubble{
		attach(t, f, p, None, core.V(0, 1.5)),
		attach(t, f, p, None, core.V(-1, 0)),
		attach(t, f, p, None, core.V(0, -1.5)),
	}
	far := attach(t, f, p, None, core.V(5, 0))

	tick(f, 1)

	for i, b := range near {
		if rec.popped[b] != 1 {
			t.Errorf("near bubble %d popped %d times, expected 1", i, rec.popped[b])
		}
	}
	if far.IsDead() {
		t.Error("bubble outside the blast radius should survive")
	}
	if p.boosts != 1 {
		t.Errorf("Accelerate called %d times, expected 1", p.boosts)
	}
	if !orange.IsDead() {
		t.Error("orange bubble should pop after its effect")
	}
}

func TestGreenSpread(t *testing.T) {
	f, p, _ := newTestField(t, Options{})
	green := attach(t, f, p, Green, core.V(1, 0))
	plain := attach(t, f, p, None, core.V(0, 3))
	red := attach(t, f, p, Red, core.V(-3, 0))
	green2 := attach(t, f, p, Green, core.V(0, -3))

	tick(f, 1)

	if !green.IsDead() {
		t.Error("triggering green bubble should pop")
	}
	for _, b := range []*Bubble{plain, red} {
		if b.Type != Green || b.Scale != SizeMax || !b.Spent() {
			t.Errorf("recolored bubble type=%v scale=%v spent=%v", b.Type, b.Scale, b.Spent())
		}
	}
	if green2.Scale != 1 {
		t.Errorf("already green bubble should be untouched, scale = %v", green2.Scale)
	}

	var spawned int
	for _, b := range f.Attached() {
		if b != plain && b != red && b != green2 {
			spawned++
			if b.Type != Green || !b.Spent() {
				t.Errorf("spawned bubble type=%v spent=%v", b.Type, b.Spent())
			}
		}
	}
	// Four bubbles were attached when the effect ran: ceil(4 * 0.5) = 2.
	if spawned != 2 {
		t.Errorf("spawned %d green bubbles, expected 2", spawned)
	}
	if p.deaths != 0 {
		t.Error("recolored red bubble must not kill the player")
	}
}

func TestGreenSpreadKeepsTriggerUnderPressure(t *testing.T) {
	f, p, _ := newTestField(t, Options{CombineCapacity: 2})
	green := attach(t, f, p, Green, core.V(1, 0))
	plain := attach(t, f, p, None, core.V(0, 3))
	other := attach(t, f, p, None, core.V(-3, 0))
	gen := green.gen

	tick(f, 1)

	if green.gen != gen {
		t.Fatalf("trigger gen = %d, expected %d: it was evicted and reused", green.gen, gen)
	}
	if !green.IsDead() {
		t.Error("triggering green bubble should pop")
	}
	if n := f.Stats(CombineKey(Green)).Evictions; n != 0 {
		t.Errorf("Evictions = %d, expected 0", n)
	}

	var spawned int
	for _, b := range f.Attached() {
		if b != plain && b != other {
			spawned++
		}
	}
	// The green bucket holds the popping trigger plus one new bubble.
	if spawned != 1 {
		t.Errorf("spawned %d green bubbles, expected 1", spawned)
	}
}

func TestCompressionBurstBeatsColor(t *testing.T) {
	f, p, _ := newTestField(t, Options{})
	f.SetTerrain([]core.Box{{X: 0.9, Y: -5, W: 3, H: 10}})
	red := attach(t, f, p, Red, core.V(1.2, 0))

	tick(f, 1)
	if !red.IsDead() {
		t.Fatal("deeply pressed bubble should burst")
	}
	if p.deaths != 0 {
		t.Error("burst bubble must not run its red effect")
	}
}

func TestShieldBurstsAgainstTerrain(t *testing.T) {
	f, p, _ := newTestField(t, Options{})
	y := attach(t, f, p, Yellow, core.V(1, 0))
	if !f.Shielding(y) || p.holds != 1 {
		t.Fatalf("Shielding() = %v, holds = %d before contact", f.Shielding(y), p.holds)
	}

	// The shield wraps the drone, so a wall 1.5 from the drone presses it 1.25 deep.
	f.SetTerrain([]core.Box{{X: 1.5, Y: -5, W: 3, H: 10}})
	tick(f, 1)

	if !y.IsDead() {
		t.Fatal("pressed shield should burst like any other bubble")
	}
	if f.Shielding(y) || p.holds != 0 {
		t.Errorf("Shielding() = %v, holds = %d after burst, expected the shield dropped", f.Shielding(y), p.holds)
	}
}

func TestCompressionRecovers(t *testing.T) {
	f, p, _ := newTestField(t, Options{})
	f.SetTerrain([]core.Box{{X: 3.5, Y: -5, W: 3, H: 10}})
	b := attach(t, f, p, None, core.V(3.2, 0))

	tick(f, 1)
	if b.IsDead() {
		t.Fatal("shallow contact should not burst")
	}
	if r := b.Compression(); math.Abs(r-0.2) > 1e-9 {
		t.Errorf("Compression() = %v, expected 0.2", r)
	}
	if b.Squash.X >= 1 || b.Squash.Y <= 1 {
		t.Errorf("Squash = %v, expected narrower and taller", b.Squash)
	}

	f.SetTerrain(nil)
	tick(f, 5)
	if b.Compression() != 0 || b.Squash != core.V(1, 1) {
		t.Errorf("after recovery compression = %v, squash = %v", b.Compression(), b.Squash)
	}
}

func TestDyeReskin(t *testing.T) {
	f, p, _ := newTestField(t, Options{})
	old := attach(t, f, p, None, core.V(0, 3))

	nb, ok := f.Reskin(old, Orange)
	if !ok {
		t.Fatal("Reskin() of a colorless bubble should succeed")
	}
	if old.Active() {
		t.Error("old bubble should return to the pool")
	}
	if nb.Type != Orange || nb.Offset != core.V(0, 3) {
		t.Errorf("new bubble type=%v offset=%v, expected orange at the same offset", nb.Type, nb.Offset)
	}
	if _, ok := f.Reskin(nb, Red); ok {
		t.Error("colored bubbles must not be re-skinned")
	}
}

func TestUnknownKindFallsBack(t *testing.T) {
	f, _, _ := newTestField(t, Options{Colors: []Type{None}})

	b, err := f.SpawnCombine(Green)
	if err != nil {
		t.Fatalf("SpawnCombine() error: %v", err)
	}
	if b.Kind != CombineKey(None) || b.Type != Green {
		t.Errorf("kind=%q type=%v, expected colorless kind recolored green", b.Kind, b.Type)
	}
}

func TestEvictionDropsShield(t *testing.T) {
	f, p, _ := newTestField(t, Options{CombineCapacity: 1})
	y := attach(t, f, p, Yellow, core.V(1, 0))
	if p.holds != 1 {
		t.Fatalf("player holds = %d, expected 1", p.holds)
	}

	again, err := f.SpawnCombine(Yellow)
	if err != nil {
		t.Fatalf("SpawnCombine() error: %v", err)
	}
	if again != y {
		t.Fatal("expected the shielding bubble to be evicted and reused")
	}
	if p.holds != 0 {
		t.Errorf("player holds = %d after eviction, expected 0", p.holds)
	}
	if n := f.Scheduler().Pending(y); n != 0 {
		t.Errorf("evicted bubble still has %d timers", n)
	}
}

func TestPoppingBubbleIsNotEvicted(t *testing.T) {
	f, p, _ := newTestField(t, Options{CombineCapacity: 1})
	b := attach(t, f, p, None, core.V(0, 3))
	b.Attacked()

	if _, err := f.SpawnCombine(None); err == nil {
		t.Error("a popping bubble must not be evicted")
	}
}

func TestStickWithoutPlayerReleases(t *testing.T) {
	f, _, _ := newTestField(t, Options{})
	b, _ := f.SpawnCombine(Red)
	f.StickOnPlayer(b, nil, core.V(0, 0), 1)

	if b.Active() {
		t.Error("bubble with nobody to stick to should go back to the pool")
	}
}

func TestClear(t *testing.T) {
	f, p, _ := newTestField(t, Options{})
	attach(t, f, p, Yellow, core.V(1, 0))
	floatAt(t, f, None, core.V(10, 10))

	f.Clear()
	if len(f.Live()) != 0 {
		t.Errorf("Live() = %d after Clear()", len(f.Live()))
	}
	if p.holds != 0 {
		t.Errorf("player holds = %d after Clear()", p.holds)
	}
	if f.Scheduler().Len() != 0 {
		t.Errorf("scheduler still has %d tasks", f.Scheduler().Len())
	}
}
