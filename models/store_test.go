package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRectangleStoreAdd(t *testing.T) {
	s := NewRectangleStore()

	a := s.Add(Bounds{X: 1, Y: 2, W: 5, H: 5})
	b := s.Add(Bounds{X: 10, Y: 20, W: 5, H: 5})
	require.Equal(t, uint32(1), a.ID)
	require.Equal(t, uint32(2), b.ID)
	require.Equal(t, 2, s.Len())
	require.Equal(t, []uint32{1, 2}, s.IDs())

	r, ok := s.ByID(2)
	require.True(t, ok)
	require.Same(t, b, r)

	bounds, ok := s.Bounds(1)
	require.True(t, ok)
	require.Equal(t, Bounds{X: 1, Y: 2, W: 5, H: 5}, bounds)
}

func TestRectangleStoreRemove(t *testing.T) {
	s := NewRectangleStore()
	for i := 0; i < 4; i++ {
		s.Add(Bounds{X: float64(i * 10), W: 5, H: 5})
	}

	t.Run("removes and keeps order", func(t *testing.T) {
		require.True(t, s.Remove(2))
		require.Equal(t, []uint32{1, 3, 4}, s.IDs())

		r, ok := s.ByID(4)
		require.True(t, ok)
		require.Equal(t, float64(30), r.X)

		_, ok = s.ByID(2)
		require.False(t, ok)
	})

	t.Run("unknown id", func(t *testing.T) {
		require.False(t, s.Remove(2))
		require.False(t, s.Remove(42))
	})

	t.Run("released id is reused", func(t *testing.T) {
		r := s.Add(Bounds{W: 5, H: 5})
		require.Equal(t, uint32(2), r.ID)
		require.Equal(t, []uint32{1, 3, 4, 2}, s.IDs())
	})
}

func TestRectangleStoreMove(t *testing.T) {
	s := NewRectangleStore()
	r := s.Add(Bounds{X: 5, Y: 5, W: 5, H: 5})

	require.True(t, s.Move(r.ID, -1, 2))
	require.Equal(t, float64(4), r.X)
	require.Equal(t, float64(7), r.Y)
	require.False(t, s.Move(42, 1, 1))
}

func TestRectangleStoreClone(t *testing.T) {
	s := NewRectangleStore()
	r := s.Add(Bounds{X: 5, Y: 5, W: 5, H: 5})
	r.SetColliding(true)

	c := s.Clone()
	require.Equal(t, s.IDs(), c.IDs())

	cr, ok := c.ByID(r.ID)
	require.True(t, ok)
	require.NotSame(t, r, cr)
	require.True(t, cr.Colliding())

	cr.SetColliding(false)
	cr.X = 50
	require.True(t, r.Colliding())
	require.Equal(t, float64(5), r.X)

	require.Equal(t, uint32(2), c.Add(Bounds{W: 1, H: 1}).ID)
}

func TestRectangleStoreRectanglesIsACopy(t *testing.T) {
	s := NewRectangleStore()
	s.Add(Bounds{W: 5, H: 5})

	rectangles := s.Rectangles()
	rectangles[0] = nil

	r, ok := s.ByID(1)
	require.True(t, ok)
	require.NotNil(t, r)
}
