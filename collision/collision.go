package collision

import (
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/quadcollide/models"
	"github.com/aukilabs/quadcollide/modules"
)

// Mode selects how colliding flags are computed.
type Mode string

const (
	// Candidates come from the quadtree.
	ModeQuadtree Mode = "qtree"

	// Candidates come from the uniform grid.
	ModeGrid Mode = "grid"

	// Every rectangle is tested against every other one.
	ModeAll Mode = "all"

	// Detection is disabled and flags are left untouched.
	ModeNone Mode = "none"
)

// Modes lists the modes in cycling order.
var Modes = []Mode{ModeQuadtree, ModeGrid, ModeAll, ModeNone}

func ParseMode(v string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(v)))
	for _, mode := range Modes {
		if m == mode {
			return m, nil
		}
	}
	return "", errors.New("unknown collision mode").WithTag("mode", v)
}

// Next returns the mode that follows m in Modes.
func (m Mode) Next() Mode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return Modes[0]
}

// Indexed reports whether the mode reads candidates from a spatial index.
func (m Mode) Indexed() bool {
	return m == ModeQuadtree || m == ModeGrid
}

// Report summarizes a detection pass.
type Report struct {
	Mode        Mode `json:"mode"`
	Checked     int  `json:"checked"`
	Comparisons int  `json:"comparisons"`
	Colliding   int  `json:"colliding"`
}

// Overlaps reports whether a and b intersect. Rectangles with the same id never
// overlap and rectangles that only share an edge or a corner do not overlap.
func Overlaps(a, b *models.Rectangle) bool {
	return a.ID != b.ID &&
		a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Y+b.H &&
		a.Y+a.H > b.Y
}

// DetectAll sets the colliding flag of every rectangle by testing it against
// every other one. The scan of a rectangle stops at its first overlap.
func DetectAll(rectangles []*models.Rectangle) Report {
	report := Report{Mode: ModeAll}

	for i, r := range rectangles {
		colliding := false
		for j, o := range rectangles {
			if i == j {
				continue
			}

			report.Comparisons++
			if Overlaps(r, o) {
				colliding = true
				break
			}
		}

		r.SetColliding(colliding)
		report.Checked++
		if colliding {
			report.Colliding++
		}
	}

	instrumentDetection(report)
	return report
}

// Lookup resolves ids to the rectangles whose flags are updated.
type Lookup interface {
	ByID(id uint32) (*models.Rectangle, bool)
}

// DetectViaIndex sets the colliding flag of every rectangle stored in index by
// testing it against its candidates only.
//
// Candidate sets are not symmetric: a rectangle held by an ancestor node does
// not see the rectangles stored below it, so such a pair may be flagged on one
// side only.
func DetectViaIndex(mode Mode, index modules.SpatialIndex, rectangles Lookup) Report {
	report := Report{Mode: mode}

	for _, id := range index.Items() {
		r, ok := rectangles.ByID(id)
		if !ok {
			logs.WithTag("id", id).
				WithTag("index", index.Name()).
				Debug("indexed rectangle not found")
			continue
		}

		colliding := false
		for _, candidateID := range index.Candidates(id) {
			c, ok := rectangles.ByID(candidateID)
			if !ok {
				continue
			}

			report.Comparisons++
			if Overlaps(r, c) {
				colliding = true
				break
			}
		}

		r.SetColliding(colliding)
		report.Checked++
		if colliding {
			report.Colliding++
		}
	}

	instrumentDetection(report)
	return report
}
