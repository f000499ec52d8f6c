package grid

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/quadcollide/models"
)

// Regular Grid Spatial Partition
//
// An uniformely sub-divided grid implementing the modules.SpatialIndex
// interface. The particularities are:
//   - the grid has a resolution that defines how large a cell is. For example,
//     a resolution of 25 makes each cell hold a 25x25 unit subdivision of the
//     universe,
//   - a rectangle is registered in every cell it touches, so two overlapping
//     rectangles always share at least one cell,
//   - rectangles outside the universe are clamped to the border cells.

const DefaultResolution = 25

type RegularGrid struct {
	Resolution float64
	Universe   models.Bounds

	resolver models.Resolver
	cells    [][][]uint32
	items    []uint32
}

func NewRegularGrid(universe models.Bounds, resolver models.Resolver, resolution float64) *RegularGrid {
	if resolution <= 0 {
		resolution = DefaultResolution
	}

	numCols := int(math.Ceil(universe.W / resolution))
	numRows := int(math.Ceil(universe.H / resolution))
	if numCols <= 0 {
		numCols = 1
	}
	if numRows <= 0 {
		numRows = 1
	}

	grid := &RegularGrid{
		Resolution: resolution,
		Universe:   universe,
		resolver:   resolver,
		cells:      make([][][]uint32, numRows),
	}
	for i := range grid.cells {
		grid.cells[i] = make([][]uint32, numCols)
	}
	return grid
}

func (grid *RegularGrid) Name() string {
	return "grid"
}

func (grid *RegularGrid) Clear() {
	for i := range grid.cells {
		for j := range grid.cells[i] {
			grid.cells[i][j] = nil
		}
	}
	grid.items = nil
}

func (grid *RegularGrid) Insert(ids ...uint32) {
	for _, id := range ids {
		b, ok := grid.resolver.Bounds(id)
		if !ok {
			logs.WithTag("id", id).
				WithTag("index", grid.Name()).
				Debug("skipping insertion of an unknown rectangle")
			continue
		}

		minCol, minRow, maxCol, maxRow := grid.cellRange(b)
		for i := minRow; i <= maxRow; i++ {
			for j := minCol; j <= maxCol; j++ {
				grid.cells[i][j] = append(grid.cells[i][j], id)
			}
		}
		grid.items = append(grid.items, id)
	}
}

func (grid *RegularGrid) Items() []uint32 {
	items := make([]uint32, len(grid.items))
	copy(items, grid.items)
	return items
}

// Candidates returns the ids registered in any cell the rectangle touches,
// without duplicates, in row-major cell order.
func (grid *RegularGrid) Candidates(id uint32) []uint32 {
	b, ok := grid.resolver.Bounds(id)
	if !ok {
		logs.WithTag("id", id).
			WithTag("index", grid.Name()).
			Warn("candidates requested for an unknown rectangle")
		return []uint32{}
	}

	minCol, minRow, maxCol, maxRow := grid.cellRange(b)

	seen := make(map[uint32]struct{})
	candidates := []uint32{}
	for i := minRow; i <= maxRow; i++ {
		for j := minCol; j <= maxCol; j++ {
			for _, c := range grid.cells[i][j] {
				if _, ok := seen[c]; ok {
					continue
				}
				seen[c] = struct{}{}
				candidates = append(candidates, c)
			}
		}
	}
	return candidates
}

// NodeBounds returns the bounds of the occupied cells.
func (grid *RegularGrid) NodeBounds() []models.Bounds {
	var bounds []models.Bounds
	for i := range grid.cells {
		for j := range grid.cells[i] {
			if len(grid.cells[i][j]) == 0 {
				continue
			}
			bounds = append(bounds, grid.cellBounds(j, i))
		}
	}
	return bounds
}

func (grid *RegularGrid) cellBounds(col, row int) models.Bounds {
	return models.Bounds{
		X: grid.Universe.X + float64(col)*grid.Resolution,
		Y: grid.Universe.Y + float64(row)*grid.Resolution,
		W: grid.Resolution,
		H: grid.Resolution,
	}
}

// cellRange returns the inclusive cell coordinates covered by b, clamped to
// the grid.
func (grid *RegularGrid) cellRange(b models.Bounds) (minCol, minRow, maxCol, maxRow int) {
	numRows := len(grid.cells)
	numCols := len(grid.cells[0])

	minCol = grid.clamp(grid.cellCoord(b.X-grid.Universe.X), numCols)
	minRow = grid.clamp(grid.cellCoord(b.Y-grid.Universe.Y), numRows)
	maxCol = grid.clamp(grid.cellCoord(b.X+b.W-grid.Universe.X), numCols)
	maxRow = grid.clamp(grid.cellCoord(b.Y+b.H-grid.Universe.Y), numRows)
	return minCol, minRow, maxCol, maxRow
}

func (grid *RegularGrid) cellCoord(v float64) int {
	return int(math.Floor(v / grid.Resolution))
}

func (grid *RegularGrid) clamp(v int, count int) int {
	if v < 0 {
		return 0
	}
	if v >= count {
		return count - 1
	}
	return v
}

type SpatialDebugInfo struct {
	Resolution float64  `json:"resolution"`
	RowCount   int      `json:"row_count"`
	ColCount   int      `json:"col_count"`
	ItemCount  int      `json:"item_count"`
	Occupancy  []uint32 `json:"occupancy"`
}

func (grid *RegularGrid) GetDebugInfo() SpatialDebugInfo {
	result := SpatialDebugInfo{
		Resolution: grid.Resolution,
		RowCount:   len(grid.cells),
		ColCount:   len(grid.cells[0]),
		ItemCount:  len(grid.items),
	}

	result.Occupancy = make([]uint32, result.RowCount*result.ColCount)
	for y := 0; y < result.RowCount; y++ {
		for x := 0; x < result.ColCount; x++ {
			result.Occupancy[y*result.ColCount+x] = uint32(len(grid.cells[y][x]))
		}
	}
	return result
}
