package modules

import (
	"github.com/aukilabs/quadcollide/models"
)

// SpatialIndex is the interface that describes a broad-phase index over the
// rectangles of a scene. Indexes store rectangle ids and resolve geometry
// through a models.Resolver.
//
// Indexes are rebuilt from scratch every tick: Clear, then Insert every id.
// Query methods must not be called while a rebuild is in progress.
type SpatialIndex interface {
	// Returns the index name.
	Name() string

	// Removes every id and every cell from the index.
	Clear()

	// Inserts the given ids in order. Ids the resolver does not know are
	// skipped.
	Insert(ids ...uint32)

	// Returns every id stored in the index, each exactly once.
	Items() []uint32

	// Returns the ids that may overlap the given one. The result may contain
	// the queried id itself.
	Candidates(id uint32) []uint32

	// Returns the bounds of the index cells, for overlay drawing.
	NodeBounds() []models.Bounds
}
