package drone

import "math"

// Snapshot contains the game state that matters for determinism checks.
// Positions are stored in thousandths of a world unit.
type Snapshot struct {
	Tick    uint64
	Score   int
	LevelID int
	State   string
	Popped  int

	DroneX  int
	DroneY  int
	Dead    bool
	Boosted bool

	// Each bubble is 5 ints: Type, Mode, X, Y, Dead
	BubbleCount int
	BubbleData  []int

	// Each bullet is 2 ints: X, Y
	BulletCount int
	BulletData  []int

	// Each bee is 1 int: X
	BeeData []int

	RNGState uint64
}

func milli(v float64) int {
	return int(math.Round(v * 1000))
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:    uint64(g.tick), //#nosec G115 -- tick count is always positive
		Score:   g.score,
		LevelID: g.lvl.ID,
		State:   g.state,
		Popped:  g.popped,
	}
	if g.rng != nil {
		snap.RNGState = g.rng.State()
	}
	if g.drone == nil {
		return snap
	}

	pos := g.drone.Position()
	snap.DroneX = milli(pos.X)
	snap.DroneY = milli(pos.Y)
	snap.Dead = g.drone.IsDead()
	snap.Boosted = g.drone.Boosted()

	live := g.field.Live()
	snap.BubbleCount = len(live)
	snap.BubbleData = make([]int, 0, len(live)*5)
	for _, b := range live {
		snap.BubbleData = append(snap.BubbleData, int(b.Type), int(b.Mode), milli(b.Pos.X), milli(b.Pos.Y), flag(b.IsDead()))
	}

	bullets := g.course.Bullets()
	snap.BulletCount = len(bullets)
	snap.BulletData = make([]int, 0, len(bullets)*2)
	for _, b := range bullets {
		snap.BulletData = append(snap.BulletData, milli(b.Pos.X), milli(b.Pos.Y))
	}

	snap.BeeData = make([]int, 0, len(g.course.Bees))
	for _, b := range g.course.Bees {
		snap.BeeData = append(snap.BeeData, milli(b.Pos.X))
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LevelID)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Popped)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.DroneX)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.DroneY)      //#nosec G115 -- hash computation
	h = h*31 + uint64(flag(snap.Dead))  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BubbleCount) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BulletCount) //#nosec G115 -- hash computation

	for _, r := range snap.State {
		h = h*31 + uint64(r) //#nosec G115 -- hash computation
	}
	for _, v := range snap.BubbleData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.BulletData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.BeeData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState

	return h
}
