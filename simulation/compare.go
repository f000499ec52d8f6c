package simulation

import (
	"github.com/aukilabs/quadcollide/collision"
	"github.com/aukilabs/quadcollide/modules"
	"github.com/aukilabs/quadcollide/modules/grid"
	"github.com/aukilabs/quadcollide/modules/quadtree"
)

// Comparison is the result of running brute force detection and an indexed
// detection over the same scene.
type Comparison struct {
	RunID      string         `json:"run_id"`
	Tick       uint64         `json:"tick"`
	Mode       collision.Mode `json:"mode"`
	Rectangles int            `json:"rectangles"`
	BruteForce int            `json:"brute_force_colliding"`
	Indexed    int            `json:"indexed_colliding"`

	// Ids flagged by brute force only.
	Missed []uint32 `json:"missed"`

	// Ids flagged by the index only. Always empty unless the predicate is
	// broken.
	Extra []uint32 `json:"extra"`
}

func (c Comparison) Equivalent() bool {
	return len(c.Missed) == 0 && len(c.Extra) == 0
}

// CompareModes runs brute force detection and the indexed detection of mode
// over copies of the current scene. The world flags are left untouched. Modes
// that do not use an index are compared with the quadtree.
func (w *World) CompareModes(mode collision.Mode) Comparison {
	w.mutex.Lock()
	bruteForce := w.store.Clone()
	indexed := w.store.Clone()
	conf := w.conf
	tick := w.tick
	w.mutex.Unlock()

	if !mode.Indexed() {
		mode = collision.ModeQuadtree
	}

	var index modules.SpatialIndex
	switch mode {
	case collision.ModeGrid:
		index = grid.NewRegularGrid(conf.Universe, indexed, conf.GridResolution)
	default:
		index = quadtree.NewTree(conf.Universe, indexed, conf.MaxObjects, conf.MaxLevels)
	}
	index.Insert(indexed.IDs()...)

	bruteForceReport := collision.DetectAll(bruteForce.Rectangles())
	indexedReport := collision.DetectViaIndex(mode, index, indexed)

	c := Comparison{
		RunID:      w.RunID,
		Tick:       tick,
		Mode:       mode,
		Rectangles: bruteForce.Len(),
		BruteForce: bruteForceReport.Colliding,
		Indexed:    indexedReport.Colliding,
		Missed:     []uint32{},
		Extra:      []uint32{},
	}

	for _, r := range bruteForce.Rectangles() {
		o, ok := indexed.ByID(r.ID)
		if !ok {
			continue
		}

		switch {
		case r.Colliding() && !o.Colliding():
			c.Missed = append(c.Missed, r.ID)
		case !r.Colliding() && o.Colliding():
			c.Extra = append(c.Extra, r.ID)
		}
	}
	return c
}
