package core

import (
	"math"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"overlapping", Box{0, 0, 10, 10}, Box{5, 5, 10, 10}, true},
		{"apart horizontally", Box{0, 0, 10, 10}, Box{15, 0, 10, 10}, false},
		{"apart vertically", Box{0, 0, 10, 10}, Box{0, 15, 10, 10}, false},
		{"adjacent edges", Box{0, 0, 10, 10}, Box{10, 0, 10, 10}, false},
		{"contained", Box{0, 0, 20, 20}, Box{5, 5, 5, 5}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxContains(t *testing.T) {
	b := Box{10, 10, 20, 15}

	tests := []struct {
		name     string
		p        Vec2
		expected bool
	}{
		{"inside", V(15, 15), true},
		{"top-left corner", V(10, 10), true},
		{"bottom-right edge (exclusive)", V(30, 25), false},
		{"outside left", V(5, 15), false},
		{"outside bottom", V(15, 30), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.Contains(tc.p); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestCirclePenetration(t *testing.T) {
	b := Box{0, 0, 2, 2}

	tests := []struct {
		name      string
		c         Circle
		depth     float64
		direction Vec2
	}{
		{"above and touching", Circle{V(0.5, -0.3), 0.5}, 0.2, V(0, -1)},
		{"left and touching", Circle{V(-0.25, 1), 0.5}, 0.25, V(-1, 0)},
		{"not touching", Circle{V(5, 5), 0.5}, 0, Vec2{}},
		{"center inside near top", Circle{V(1, 0.1), 0.5}, 0.6, V(0, -1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			depth, dir := tc.c.Penetration(b)
			if !near(depth, tc.depth) {
				t.Errorf("depth = %v, expected %v", depth, tc.depth)
			}
			if !near(dir.X, tc.direction.X) || !near(dir.Y, tc.direction.Y) {
				t.Errorf("direction = %v, expected %v", dir, tc.direction)
			}
			if tc.c.TouchesBox(b) != (tc.depth > 0) {
				t.Errorf("TouchesBox() disagrees with depth %v", depth)
			}
		})
	}
}

func TestCircleOverlaps(t *testing.T) {
	a := Circle{V(0, 0), 1}
	if !a.Overlaps(Circle{V(1.5, 0), 1}) {
		t.Error("circles 1.5 apart with radius 1 should overlap")
	}
	if a.Overlaps(Circle{V(2, 0), 1}) {
		t.Error("circles exactly touching should not overlap")
	}
}

func TestVecNorm(t *testing.T) {
	n := V(3, 4).Norm()
	if !near(n.X, 0.6) || !near(n.Y, 0.8) {
		t.Errorf("Norm() = %v, expected (0.6, 0.8)", n)
	}
	z := Vec2{}.Norm()
	if !near(z.Len(), 1) {
		t.Errorf("zero vector should normalize to a unit vector, got %v", z)
	}
}

func TestPingPong(t *testing.T) {
	tests := []struct {
		t, length, expected float64
	}{
		{0, 2, 0},
		{1, 2, 1},
		{2, 2, 2},
		{3, 2, 1},
		{4, 2, 0},
		{5, 2, 1},
		{1, 0, 0},
	}

	for _, tc := range tests {
		if got := PingPong(tc.t, tc.length); !near(got, tc.expected) {
			t.Errorf("PingPong(%v, %v) = %v, expected %v", tc.t, tc.length, got, tc.expected)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
	if got := ClampF(0.7, 0.1, 0.5); got != 0.5 {
		t.Errorf("ClampF(0.7, 0.1, 0.5) = %v, expected 0.5", got)
	}
}

func TestRNGDeterminism(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("same seed diverged at step %d", i)
		}
	}

	r := NewRNG(7)
	for i := 0; i < 1000; i++ {
		f := r.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64() = %v, out of [0, 1)", f)
		}
		if n := r.Intn(5); n < 0 || n >= 5 {
			t.Fatalf("Intn(5) = %d, out of range", n)
		}
		if j := r.Jitter(2, 0.5); j < 1.5 || j >= 2.5 {
			t.Fatalf("Jitter(2, 0.5) = %v, out of range", j)
		}
	}
}

func TestInputDirection(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionUp)
	if d := f.Direction(); d != V(-1, -1) {
		t.Errorf("Direction() = %v, expected (-1, -1)", d)
	}
	f.Set(ActionRight)
	if d := f.Direction(); d != V(0, -1) {
		t.Errorf("opposite actions should cancel, got %v", d)
	}
	f.Clear()
	if f.Has(ActionUp) {
		t.Error("Clear() should drop all actions")
	}
}
