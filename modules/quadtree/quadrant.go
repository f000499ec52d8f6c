package quadtree

import "github.com/aukilabs/quadcollide/models"

// Quadrant identifies a child of a node. The values index the children array.
type Quadrant int

const (
	NoQuadrant  Quadrant = -1
	TopRight    Quadrant = 0
	TopLeft     Quadrant = 1
	BottomLeft  Quadrant = 2
	BottomRight Quadrant = 3
)

func (q Quadrant) String() string {
	switch q {
	case TopRight:
		return "top-right"
	case TopLeft:
		return "top-left"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return "none"
	}
}

// Index returns the quadrant of node that fully contains b, or NoQuadrant when
// b crosses or touches a midline.
//
// The checks are strict on both sides: a rectangle whose edge lies exactly on
// a midline fits neither half. The bottom and right halves only test the near
// edge, as the far edge can only be past the midline.
func Index(node models.Bounds, b models.Bounds) Quadrant {
	verticalMidpoint, horizontalMidpoint := node.Center()

	top := b.Y < horizontalMidpoint && b.Y+b.H < horizontalMidpoint
	bottom := b.Y > horizontalMidpoint

	switch {
	case b.X < verticalMidpoint && b.X+b.W < verticalMidpoint:
		if top {
			return TopLeft
		}
		if bottom {
			return BottomLeft
		}

	case b.X > verticalMidpoint:
		if top {
			return TopRight
		}
		if bottom {
			return BottomRight
		}
	}

	return NoQuadrant
}
