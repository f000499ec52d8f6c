package models

import "math"

// Bounds is an axis-aligned region of space. X and Y are the top-left corner.
type Bounds struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Contains reports whether o lies entirely inside b, edges included.
func (b Bounds) Contains(o Bounds) bool {
	return o.X >= b.X &&
		o.Y >= b.Y &&
		o.X+o.W <= b.X+b.W &&
		o.Y+o.H <= b.Y+b.H
}

// Center returns the midpoint of b.
func (b Bounds) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Quarter returns the size of a child cell, truncated to whole units.
func (b Bounds) Quarter() (float64, float64) {
	return math.Floor(b.W / 2), math.Floor(b.H / 2)
}

// Rectangle is a movable axis-aligned item. Position and size are owned by the
// host. Collision detection only writes the colliding flag.
type Rectangle struct {
	ID uint32
	X  float64
	Y  float64
	W  float64
	H  float64

	colliding bool
}

func (r *Rectangle) Bounds() Bounds {
	return Bounds{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

func (r *Rectangle) Colliding() bool {
	return r.colliding
}

func (r *Rectangle) SetColliding(v bool) {
	r.colliding = v
}

// Resolver resolves rectangle ids to their current geometry. Spatial indexes
// hold ids only and go through a Resolver every time they need a position.
type Resolver interface {
	Bounds(id uint32) (Bounds, bool)
}
