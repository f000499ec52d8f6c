package simulation

import (
	"time"

	"github.com/aukilabs/quadcollide/collision"
	"github.com/aukilabs/quadcollide/models"
)

// Frame is an immutable snapshot of the world after a tick.
type Frame struct {
	RunID      string           `json:"run_id"`
	Tick       uint64           `json:"tick"`
	Mode       collision.Mode   `json:"mode"`
	Universe   models.Bounds    `json:"universe"`
	Rectangles []RectangleState `json:"rectangles"`
	NodeBounds []models.Bounds  `json:"node_bounds,omitempty"`
	Report     collision.Report `json:"report"`
	Duration   time.Duration    `json:"duration"`
}

type RectangleState struct {
	ID        uint32  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	W         float64 `json:"w"`
	H         float64 `json:"h"`
	Colliding bool    `json:"colliding"`
}

// ColliderIDs returns the ids of the colliding rectangles, in scene order.
func (f Frame) ColliderIDs() []uint32 {
	ids := []uint32{}
	for _, r := range f.Rectangles {
		if r.Colliding {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func (w *World) snapshot(report collision.Report, duration time.Duration) Frame {
	rectangles := w.store.Rectangles()
	states := make([]RectangleState, len(rectangles))
	for i, r := range rectangles {
		states[i] = RectangleState{
			ID:        r.ID,
			X:         r.X,
			Y:         r.Y,
			W:         r.W,
			H:         r.H,
			Colliding: r.Colliding(),
		}
	}

	f := Frame{
		RunID:      w.RunID,
		Tick:       w.tick,
		Mode:       w.mode,
		Universe:   w.conf.Universe,
		Rectangles: states,
		Report:     report,
		Duration:   duration,
	}
	if w.mode.Indexed() {
		f.NodeBounds = w.index().NodeBounds()
	}
	return f
}
