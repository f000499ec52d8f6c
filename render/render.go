package render

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/aukilabs/quadcollide/collision"
	"github.com/aukilabs/quadcollide/models"
	"github.com/aukilabs/quadcollide/simulation"
	"github.com/gdamore/tcell/v2"
)

// DefaultTarget is the rectangle moved with the arrow keys.
const DefaultTarget = 2

var (
	styleRectangle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleColliding = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleOverlay   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleID        = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleStatus    = tcell.StyleDefault.Reverse(true)
)

type Options struct {
	// The rectangle moved with the arrow keys. Defaults to DefaultTarget.
	Target uint32

	// Draws the index node bounds.
	Overlay bool

	// Draws rectangle ids.
	ShowIDs bool

	// Ticks the world after each input. Used when the world is not animated.
	TickOnInput bool
}

// World is the simulation driven by the renderer.
type World interface {
	Frame() simulation.Frame
	Submit(in simulation.TickInput)
	CycleMode() collision.Mode
	Tick() simulation.Frame
	HandleFrame(h func(simulation.Frame)) (cancel func())
}

// Renderer draws frames on a terminal screen, scaled to fit, and translates
// terminal events into world input.
type Renderer struct {
	screen  tcell.Screen
	mutex   sync.Mutex
	opts    Options
	pressed bool
}

func New(screen tcell.Screen, opts Options) *Renderer {
	if opts.Target == 0 {
		opts.Target = DefaultTarget
	}
	return &Renderer{
		screen: screen,
		opts:   opts,
	}
}

// Draw renders f and shows it.
func (r *Renderer) Draw(f simulation.Frame) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.screen.Clear()
	v := r.viewport(f.Universe)

	if r.opts.Overlay {
		for _, b := range f.NodeBounds {
			r.drawOutline(v, b)
		}
	}

	for _, rect := range f.Rectangles {
		r.drawRectangle(v, rect)
	}

	if v.statusRow >= 0 {
		r.drawStatus(v, f)
	}
	r.screen.Show()
}

func (r *Renderer) drawRectangle(v viewport, rect simulation.RectangleState) {
	style := styleRectangle
	if rect.Colliding {
		style = styleColliding
	}

	c0, r0, c1, r1 := v.cellRange(models.Bounds{X: rect.X, Y: rect.Y, W: rect.W, H: rect.H})
	for y := r0; y <= r1; y++ {
		for x := c0; x <= c1; x++ {
			if v.inside(x, y) {
				r.screen.SetContent(x, y, '█', nil, style)
			}
		}
	}

	if r.opts.ShowIDs {
		cx, cy := v.cell(rect.X+rect.W/2, rect.Y+rect.H/2)
		r.drawText(v, cx, cy, strconv.FormatUint(uint64(rect.ID), 10), styleID)
	}
}

func (r *Renderer) drawOutline(v viewport, b models.Bounds) {
	c0, r0 := v.cell(b.X, b.Y)
	c1, r1 := v.cell(b.X+b.W, b.Y+b.H)
	c1 = min(c1, v.cols-1)
	r1 = min(r1, v.rows-1)

	for x := c0; x <= c1; x++ {
		r.setOutline(v, x, r0, '-')
		r.setOutline(v, x, r1, '-')
	}
	for y := r0; y <= r1; y++ {
		r.setOutline(v, c0, y, '|')
		r.setOutline(v, c1, y, '|')
	}
	r.setOutline(v, c0, r0, '+')
	r.setOutline(v, c1, r0, '+')
	r.setOutline(v, c0, r1, '+')
	r.setOutline(v, c1, r1, '+')
}

func (r *Renderer) setOutline(v viewport, x, y int, c rune) {
	if v.inside(x, y) {
		r.screen.SetContent(x, y, c, nil, styleOverlay)
	}
}

func (r *Renderer) drawText(v viewport, x, y int, s string, style tcell.Style) {
	for i, c := range s {
		if v.inside(x+i, y) {
			r.screen.SetContent(x+i, y, c, nil, style)
		}
	}
}

func (r *Renderer) drawStatus(v viewport, f simulation.Frame) {
	overlay := "off"
	if r.opts.Overlay {
		overlay = "on"
	}

	status := fmt.Sprintf(" mode=%s tick=%d rectangles=%d colliding=%d comparisons=%d duration=%s overlay=%s | arrows: move #%d  m: mode  t: overlay  click: add  q: quit",
		f.Mode,
		f.Tick,
		len(f.Rectangles),
		f.Report.Colliding,
		f.Report.Comparisons,
		f.Duration,
		overlay,
		r.opts.Target,
	)

	x := 0
	for _, c := range status {
		if x >= v.cols {
			break
		}
		r.screen.SetContent(x, v.statusRow, c, nil, styleStatus)
		x++
	}
	for ; x < v.cols; x++ {
		r.screen.SetContent(x, v.statusRow, ' ', nil, styleStatus)
	}
}

// Run draws every frame published by w and feeds terminal events to it until
// the user quits or ctx is canceled. The caller owns the screen and finalizes
// it, which also stops event polling.
func (r *Renderer) Run(ctx context.Context, w World) error {
	cancel := w.HandleFrame(r.Draw)
	defer cancel()

	r.Draw(w.Frame())

	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}

			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			cmd := r.Translate(ev, w.Frame().Universe)

			switch cmd.Action {
			case ActionQuit:
				return nil

			case ActionInput:
				w.Submit(cmd.Input)
				r.tickOnInput(w)

			case ActionCycleMode:
				w.CycleMode()
				r.tickOnInput(w)

			case ActionToggleOverlay:
				r.Draw(w.Frame())

			case ActionRedraw:
				r.screen.Sync()
				r.Draw(w.Frame())
			}
		}
	}
}

func (r *Renderer) tickOnInput(w World) {
	if r.opts.TickOnInput {
		w.Tick()
	}
}

// viewport maps universe coordinates to screen cells. The last row is kept
// for the status line when the screen has more than one row.
type viewport struct {
	universe  models.Bounds
	cols      int
	rows      int
	statusRow int
	scaleX    float64
	scaleY    float64
}

func (r *Renderer) viewport(universe models.Bounds) viewport {
	cols, rows := r.screen.Size()

	v := viewport{
		universe:  universe,
		cols:      cols,
		rows:      rows,
		statusRow: -1,
	}
	if rows > 1 {
		v.rows = rows - 1
		v.statusRow = rows - 1
	}
	if universe.W > 0 {
		v.scaleX = float64(v.cols) / universe.W
	}
	if universe.H > 0 {
		v.scaleY = float64(v.rows) / universe.H
	}
	return v
}

func (v viewport) cell(x, y float64) (int, int) {
	return int(math.Floor((x - v.universe.X) * v.scaleX)),
		int(math.Floor((y - v.universe.Y) * v.scaleY))
}

// cellRange returns the inclusive cells covered by b. A rectangle smaller than
// a cell covers one cell.
func (v viewport) cellRange(b models.Bounds) (c0, r0, c1, r1 int) {
	c0, r0 = v.cell(b.X, b.Y)
	c1 = int(math.Ceil((b.X+b.W-v.universe.X)*v.scaleX)) - 1
	r1 = int(math.Ceil((b.Y+b.H-v.universe.Y)*v.scaleY)) - 1
	return c0, r0, max(c0, c1), max(r0, r1)
}

// point returns the universe coordinates of the center of a cell.
func (v viewport) point(x, y int) simulation.Point {
	return simulation.Point{
		X: v.universe.X + (float64(x)+0.5)/v.scaleX,
		Y: v.universe.Y + (float64(y)+0.5)/v.scaleY,
	}
}

func (v viewport) inside(x, y int) bool {
	return x >= 0 && x < v.cols && y >= 0 && y < v.rows
}
