package grid

import (
	"testing"

	"github.com/aukilabs/quadcollide/models"
	"github.com/stretchr/testify/require"
)

var universe = models.Bounds{X: 0, Y: 0, W: 100, H: 100}

func newTestGrid(resolution float64, rects ...models.Bounds) (*RegularGrid, *models.RectangleStore) {
	store := models.NewRectangleStore()
	for _, r := range rects {
		store.Add(r)
	}

	grid := NewRegularGrid(universe, store, resolution)
	grid.Insert(store.IDs()...)
	return grid, store
}

func TestGridCreation(t *testing.T) {
	t.Run("default resolution", func(t *testing.T) {
		grid := NewRegularGrid(universe, models.NewRectangleStore(), 0)
		require.Equal(t, float64(DefaultResolution), grid.Resolution)
		require.Equal(t, "grid", grid.Name())

		info := grid.GetDebugInfo()
		require.Equal(t, 4, info.RowCount)
		require.Equal(t, 4, info.ColCount)
		require.Len(t, info.Occupancy, 16)
	})

	t.Run("partial cells are rounded up", func(t *testing.T) {
		grid := NewRegularGrid(models.Bounds{W: 101, H: 30}, models.NewRectangleStore(), 25)

		info := grid.GetDebugInfo()
		require.Equal(t, 2, info.RowCount)
		require.Equal(t, 5, info.ColCount)
	})

	t.Run("empty universe", func(t *testing.T) {
		grid := NewRegularGrid(models.Bounds{}, models.NewRectangleStore(), 10)

		info := grid.GetDebugInfo()
		require.Equal(t, 1, info.RowCount)
		require.Equal(t, 1, info.ColCount)
	})
}

func TestGridInsertion(t *testing.T) {
	grid, store := newTestGrid(25,
		models.Bounds{X: 1, Y: 1, W: 5, H: 5},
		models.Bounds{X: 20, Y: 20, W: 10, H: 10},
		models.Bounds{X: 200, Y: -50, W: 5, H: 5},
	)

	require.Equal(t, store.IDs(), grid.Items())

	info := grid.GetDebugInfo()
	require.Equal(t, 3, info.ItemCount)
	require.Equal(t, uint32(2), info.Occupancy[0])
	require.Equal(t, uint32(1), info.Occupancy[1])
	require.Equal(t, uint32(1), info.Occupancy[4])
	require.Equal(t, uint32(1), info.Occupancy[5])
	require.Equal(t, uint32(1), info.Occupancy[3])

	t.Run("unknown ids are skipped", func(t *testing.T) {
		grid.Insert(42)
		require.Len(t, grid.Items(), 3)
	})
}

func TestGridCandidates(t *testing.T) {
	grid, _ := newTestGrid(25,
		models.Bounds{X: 1, Y: 1, W: 5, H: 5},
		models.Bounds{X: 20, Y: 20, W: 10, H: 10},
		models.Bounds{X: 60, Y: 60, W: 5, H: 5},
		models.Bounds{X: 48, Y: 10, W: 4, H: 4},
	)

	require.Equal(t, []uint32{1, 2}, grid.Candidates(1))
	require.Equal(t, []uint32{1, 2, 4}, grid.Candidates(2))
	require.Equal(t, []uint32{3}, grid.Candidates(3))
	require.Equal(t, []uint32{2, 4}, grid.Candidates(4))

	candidates := grid.Candidates(42)
	require.NotNil(t, candidates)
	require.Empty(t, candidates)
}

func TestGridClear(t *testing.T) {
	grid, store := newTestGrid(25,
		models.Bounds{X: 1, Y: 1, W: 5, H: 5},
		models.Bounds{X: 60, Y: 60, W: 5, H: 5},
	)
	require.Len(t, grid.NodeBounds(), 2)

	grid.Clear()
	require.Empty(t, grid.Items())
	require.Empty(t, grid.NodeBounds())

	grid.Insert(store.IDs()...)
	require.Equal(t, store.IDs(), grid.Items())
}

func TestGridNodeBounds(t *testing.T) {
	grid, _ := newTestGrid(25, models.Bounds{X: 60, Y: 30, W: 5, H: 5})

	require.Equal(t, []models.Bounds{{X: 50, Y: 25, W: 25, H: 25}}, grid.NodeBounds())
}
