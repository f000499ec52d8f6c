package render

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aukilabs/quadcollide/collision"
	"github.com/aukilabs/quadcollide/models"
	"github.com/aukilabs/quadcollide/simulation"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

var universe = models.Bounds{X: 0, Y: 0, W: 100, H: 100}

// newTestScreen returns a 50x26 screen: a 50x25 drawing area where a cell
// covers 2x4 units, plus the status row.
func newTestScreen(t *testing.T) tcell.SimulationScreen {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(50, 26)
	t.Cleanup(screen.Fini)
	return screen
}

func newTestWorld() *simulation.World {
	w := simulation.NewWorld(simulation.Config{
		Universe: universe,
		Mode:     collision.ModeQuadtree,
	})
	w.Add(models.Bounds{X: 10, Y: 10, W: 5, H: 5})
	w.Add(models.Bounds{X: 12, Y: 12, W: 5, H: 5})
	w.Add(models.Bounds{X: 60, Y: 60, W: 5, H: 5})
	return w
}

func cellAt(screen tcell.SimulationScreen, x, y int) (rune, tcell.Color) {
	c, _, style, _ := screen.GetContent(x, y)
	fg, _, _ := style.Decompose()
	return c, fg
}

func rowText(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()

	var sb strings.Builder
	for x := 0; x < w; x++ {
		c, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(c)
	}
	return sb.String()
}

func TestRendererDraw(t *testing.T) {
	t.Run("rectangles", func(t *testing.T) {
		screen := newTestScreen(t)
		r := New(screen, Options{})

		r.Draw(newTestWorld().Tick())

		c, fg := cellAt(screen, 5, 2)
		require.Equal(t, '█', c)
		require.Equal(t, tcell.ColorRed, fg)

		c, fg = cellAt(screen, 30, 15)
		require.Equal(t, '█', c)
		require.Equal(t, tcell.ColorWhite, fg)

		c, _ = cellAt(screen, 40, 20)
		require.Equal(t, ' ', c)
	})

	t.Run("overlay", func(t *testing.T) {
		screen := newTestScreen(t)
		r := New(screen, Options{Overlay: true})

		r.Draw(newTestWorld().Tick())

		c, fg := cellAt(screen, 0, 0)
		require.Equal(t, '+', c)
		require.Equal(t, tcell.ColorGray, fg)

		c, _ = cellAt(screen, 49, 24)
		require.Equal(t, '+', c)

		c, _ = cellAt(screen, 20, 0)
		require.Equal(t, '-', c)
	})

	t.Run("overlay disabled", func(t *testing.T) {
		screen := newTestScreen(t)
		r := New(screen, Options{})

		r.Draw(newTestWorld().Tick())

		c, _ := cellAt(screen, 0, 0)
		require.Equal(t, ' ', c)
	})

	t.Run("ids", func(t *testing.T) {
		screen := newTestScreen(t)
		r := New(screen, Options{ShowIDs: true})

		r.Draw(newTestWorld().Tick())

		c, _ := cellAt(screen, 31, 15)
		require.Equal(t, '3', c)
	})

	t.Run("status line", func(t *testing.T) {
		screen := newTestScreen(t)
		r := New(screen, Options{})

		r.Draw(newTestWorld().Tick())

		status := rowText(screen, 25)
		require.Contains(t, status, "mode=qtree")
		require.Contains(t, status, "tick=1")
		require.Contains(t, status, "rectangles=3")
	})
}

func TestRendererTranslate(t *testing.T) {
	t.Run("quit", func(t *testing.T) {
		r := New(newTestScreen(t), Options{})

		for _, ev := range []tcell.Event{
			tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
			tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
			tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		} {
			require.Equal(t, ActionQuit, r.Translate(ev, universe).Action)
		}
	})

	t.Run("arrows move the target by one cell", func(t *testing.T) {
		r := New(newTestScreen(t), Options{})

		cmd := r.Translate(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), universe)
		require.Equal(t, Command{
			Action: ActionInput,
			Input:  simulation.TickInput{Target: DefaultTarget, NudgeY: -4},
		}, cmd)

		cmd = r.Translate(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), universe)
		require.Equal(t, simulation.TickInput{Target: DefaultTarget, NudgeX: 2}, cmd.Input)

		r = New(newTestScreen(t), Options{Target: 7})
		cmd = r.Translate(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), universe)
		require.Equal(t, simulation.TickInput{Target: 7, NudgeX: -2}, cmd.Input)
	})

	t.Run("mode and overlay keys", func(t *testing.T) {
		screen := newTestScreen(t)
		screen.SetSize(200, 26)
		r := New(screen, Options{})

		cmd := r.Translate(tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone), universe)
		require.Equal(t, ActionCycleMode, cmd.Action)

		world := newTestWorld()
		r.Draw(world.Tick())
		require.Contains(t, rowText(screen, 25), "overlay=off")

		cmd = r.Translate(tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone), universe)
		require.Equal(t, ActionToggleOverlay, cmd.Action)

		r.Draw(world.Tick())
		require.Contains(t, rowText(screen, 25), "overlay=on")

		cmd = r.Translate(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), universe)
		require.Equal(t, ActionNone, cmd.Action)
	})

	t.Run("click adds a rectangle", func(t *testing.T) {
		r := New(newTestScreen(t), Options{})

		cmd := r.Translate(tcell.NewEventMouse(5, 2, tcell.Button1, tcell.ModNone), universe)
		require.Equal(t, ActionInput, cmd.Action)
		require.Equal(t, []simulation.Point{{X: 11, Y: 10}}, cmd.Input.Clicks)

		cmd = r.Translate(tcell.NewEventMouse(6, 2, tcell.Button1, tcell.ModNone), universe)
		require.Equal(t, ActionNone, cmd.Action)

		cmd = r.Translate(tcell.NewEventMouse(6, 2, tcell.ButtonNone, tcell.ModNone), universe)
		require.Equal(t, ActionNone, cmd.Action)

		cmd = r.Translate(tcell.NewEventMouse(6, 2, tcell.Button1, tcell.ModNone), universe)
		require.Equal(t, []simulation.Point{{X: 13, Y: 10}}, cmd.Input.Clicks)
	})

	t.Run("click on the status line", func(t *testing.T) {
		r := New(newTestScreen(t), Options{})

		cmd := r.Translate(tcell.NewEventMouse(5, 25, tcell.Button1, tcell.ModNone), universe)
		require.Equal(t, ActionNone, cmd.Action)
	})

	t.Run("resize", func(t *testing.T) {
		r := New(newTestScreen(t), Options{})

		cmd := r.Translate(tcell.NewEventResize(80, 24), universe)
		require.Equal(t, ActionRedraw, cmd.Action)
	})
}

func TestRendererRun(t *testing.T) {
	t.Run("quit", func(t *testing.T) {
		screen := newTestScreen(t)
		world := newTestWorld()
		world.Tick()

		r := New(screen, Options{TickOnInput: true})

		done := make(chan error)
		go func() {
			done <- r.Run(context.Background(), world)
		}()

		screen.InjectKey(tcell.KeyRune, 'm', tcell.ModNone)
		screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(time.Second * 5):
			require.FailNow(t, "renderer did not quit")
		}

		f := world.Frame()
		require.Equal(t, collision.ModeGrid, f.Mode)
		require.Equal(t, uint64(2), f.Tick)
	})

	t.Run("canceled", func(t *testing.T) {
		screen := newTestScreen(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := New(screen, Options{}).Run(ctx, newTestWorld())
		require.ErrorIs(t, err, context.Canceled)
	})
}
