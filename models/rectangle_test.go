package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoundsContains(t *testing.T) {
	b := Bounds{X: 0, Y: 0, W: 10, H: 10}

	require.True(t, b.Contains(Bounds{X: 2, Y: 2, W: 3, H: 3}))
	require.True(t, b.Contains(b))
	require.False(t, b.Contains(Bounds{X: 8, Y: 8, W: 3, H: 3}))
	require.False(t, b.Contains(Bounds{X: -1, Y: 0, W: 3, H: 3}))
}

func TestBoundsQuarter(t *testing.T) {
	w, h := Bounds{W: 101, H: 7}.Quarter()
	require.Equal(t, float64(50), w)
	require.Equal(t, float64(3), h)

	x, y := Bounds{X: 10, Y: 20, W: 101, H: 7}.Center()
	require.Equal(t, 60.5, x)
	require.Equal(t, 23.5, y)
}

func TestRectangleColliding(t *testing.T) {
	r := Rectangle{ID: 1, X: 1, Y: 2, W: 3, H: 4}
	require.False(t, r.Colliding())

	r.SetColliding(true)
	require.True(t, r.Colliding())
	require.Equal(t, Bounds{X: 1, Y: 2, W: 3, H: 4}, r.Bounds())
}
