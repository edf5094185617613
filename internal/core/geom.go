// Package core provides fundamental types for the drone game.
// It has no terminal dependency so that simulation code stays pure and testable.
package core

import "math"

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Vec2 is a point or direction in world units.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{v.X * k, v.Y * k}
}

// Len returns the Euclidean length.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between two points.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Norm returns the unit vector in the direction of v.
// The zero vector normalizes to (0, -1) so callers always get a direction.
func (v Vec2) Norm() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{0, -1}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Box is an axis-aligned rectangle in world units.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// Center returns the center point.
func (b Box) Center() Vec2 {
	return Vec2{b.X + b.W/2, b.Y + b.H/2}
}

// Contains reports whether p lies inside the box (right/bottom exclusive).
func (b Box) Contains(p Vec2) bool {
	return p.X >= b.X && p.X < b.Right() && p.Y >= b.Y && p.Y < b.Bottom()
}

// Intersects reports whether two boxes overlap.
func (b Box) Intersects(o Box) bool {
	if b.X >= o.Right() || o.X >= b.Right() {
		return false
	}
	if b.Y >= o.Bottom() || o.Y >= b.Bottom() {
		return false
	}
	return true
}

// Closest returns the point of the box nearest to p.
func (b Box) Closest(p Vec2) Vec2 {
	return Vec2{ClampF(p.X, b.X, b.Right()), ClampF(p.Y, b.Y, b.Bottom())}
}

// Circle is a round collider.
type Circle struct {
	C Vec2
	R float64
}

// Overlaps reports whether two circles touch.
func (c Circle) Overlaps(o Circle) bool {
	return c.C.Dist(o.C) < c.R+o.R
}

// Penetration returns how deep the circle reaches into the box
// and the direction pointing from the box to the circle center.
// Depth is zero when they do not touch.
func (c Circle) Penetration(b Box) (float64, Vec2) {
	closest := b.Closest(c.C)
	delta := c.C.Sub(closest)
	d := delta.Len()
	if d == 0 {
		// Center inside the box: push out through the nearest edge.
		left, right := c.C.X-b.X, b.Right()-c.C.X
		top, bottom := c.C.Y-b.Y, b.Bottom()-c.C.Y
		m := math.Min(math.Min(left, right), math.Min(top, bottom))
		switch m {
		case left:
			return m + c.R, Vec2{-1, 0}
		case right:
			return m + c.R, Vec2{1, 0}
		case top:
			return m + c.R, Vec2{0, -1}
		default:
			return m + c.R, Vec2{0, 1}
		}
	}
	if d >= c.R {
		return 0, Vec2{}
	}
	return c.R - d, delta.Scale(1 / d)
}

// TouchesBox reports whether the circle overlaps the box.
func (c Circle) TouchesBox(b Box) bool {
	depth, _ := c.Penetration(b)
	return depth > 0
}

// PingPong bounces t back and forth between 0 and length.
func PingPong(t, length float64) float64 {
	if length <= 0 {
		return 0
	}
	t = math.Mod(t, length*2)
	if t < 0 {
		t += length * 2
	}
	return length - math.Abs(t-length)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
