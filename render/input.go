package render

import (
	"github.com/aukilabs/quadcollide/models"
	"github.com/aukilabs/quadcollide/simulation"
	"github.com/gdamore/tcell/v2"
)

type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionInput
	ActionCycleMode
	ActionToggleOverlay
	ActionRedraw
)

// Command is the outcome of a terminal event.
type Command struct {
	Action Action
	Input  simulation.TickInput
}

// Translate converts a terminal event into a command. Arrow keys move the
// target rectangle by one cell. A left button press adds a rectangle centered
// on the clicked cell.
func (r *Renderer) Translate(ev tcell.Event, universe models.Bounds) Command {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return r.translateKey(ev, universe)

	case *tcell.EventMouse:
		return r.translateMouse(ev, universe)

	case *tcell.EventResize:
		return Command{Action: ActionRedraw}

	default:
		return Command{}
	}
}

func (r *Renderer) translateKey(ev *tcell.EventKey, universe models.Bounds) Command {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	v := r.viewport(universe)
	nudge := func(dx, dy float64) Command {
		return Command{
			Action: ActionInput,
			Input: simulation.TickInput{
				Target: r.opts.Target,
				NudgeX: dx,
				NudgeY: dy,
			},
		}
	}

	stepX := 1.0
	if v.scaleX > 0 {
		stepX = 1 / v.scaleX
	}
	stepY := 1.0
	if v.scaleY > 0 {
		stepY = 1 / v.scaleY
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Command{Action: ActionQuit}

	case tcell.KeyUp:
		return nudge(0, -stepY)

	case tcell.KeyDown:
		return nudge(0, stepY)

	case tcell.KeyLeft:
		return nudge(-stepX, 0)

	case tcell.KeyRight:
		return nudge(stepX, 0)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return Command{Action: ActionQuit}

		case 'm', 'M':
			return Command{Action: ActionCycleMode}

		case 't', 'T':
			r.opts.Overlay = !r.opts.Overlay
			return Command{Action: ActionToggleOverlay}
		}
	}
	return Command{}
}

func (r *Renderer) translateMouse(ev *tcell.EventMouse, universe models.Bounds) Command {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	down := ev.Buttons()&tcell.Button1 != 0
	pressed := down && !r.pressed
	r.pressed = down
	if !pressed {
		return Command{}
	}

	v := r.viewport(universe)
	x, y := ev.Position()
	if !v.inside(x, y) || v.scaleX == 0 || v.scaleY == 0 {
		return Command{}
	}

	return Command{
		Action: ActionInput,
		Input: simulation.TickInput{
			Clicks: []simulation.Point{v.point(x, y)},
		},
	}
}
