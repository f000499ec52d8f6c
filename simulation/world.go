package simulation

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/aukilabs/quadcollide/collision"
	"github.com/aukilabs/quadcollide/models"
	"github.com/aukilabs/quadcollide/modules"
	"github.com/aukilabs/quadcollide/modules/grid"
	"github.com/aukilabs/quadcollide/modules/quadtree"
	"github.com/google/uuid"
)

// Config describes a world. It is fixed for the lifetime of the world.
type Config struct {
	// The extents of the universe. Also the bounds of the quadtree root.
	Universe models.Bounds

	// The initial collision mode.
	Mode collision.Mode

	// Quadtree limits. Zero values take the quadtree defaults.
	MaxObjects int
	MaxLevels  int

	// The cell size of the uniform grid.
	GridResolution float64

	// Moves every rectangle by one unit on each axis at every tick.
	Jitter bool

	// Seeds the jitter and the random placement of rectangles.
	Seed uint64
}

// TickInput carries the host events that happened since the previous tick.
type TickInput struct {
	// The rectangle moved by Nudge.
	Target uint32

	// Translation applied to Target.
	NudgeX float64
	NudgeY float64

	// Positions where a rectangle is added, centered on the point.
	Clicks []Point
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Merge accumulates o into in.
func (in TickInput) Merge(o TickInput) TickInput {
	if o.Target != 0 && o.Target != in.Target {
		in.Target = o.Target
		in.NudgeX = 0
		in.NudgeY = 0
	}
	in.NudgeX += o.NudgeX
	in.NudgeY += o.NudgeY
	in.Clicks = append(in.Clicks, o.Clicks...)
	return in
}

// World owns the rectangles of a scene and the spatial indexes built over
// them. A single mutex covers a whole tick, so readers never observe a partial
// rebuild.
type World struct {
	RunID string

	mutex      sync.Mutex
	conf       Config
	rng        *rand.Rand
	store      *models.RectangleStore
	quadtree   *quadtree.Tree
	grid       *grid.RegularGrid
	mode       collision.Mode
	squareSize float64
	tick       uint64
	pending    TickInput
	lastFrame  Frame

	frameHandlerIDs models.SequentialIDGenerator
	frameHandlers   map[uint32]func(Frame)
	frameMutex      sync.RWMutex

	summary summary
}

func NewWorld(conf Config) *World {
	if conf.Mode == "" {
		conf.Mode = collision.ModeQuadtree
	}

	store := models.NewRectangleStore()
	w := &World{
		RunID:         uuid.New().String(),
		conf:          conf,
		rng:           rand.New(rand.NewPCG(conf.Seed, conf.Seed^0x9e3779b97f4a7c15)),
		store:         store,
		quadtree:      quadtree.NewTree(conf.Universe, store, conf.MaxObjects, conf.MaxLevels),
		grid:          grid.NewRegularGrid(conf.Universe, store, conf.GridResolution),
		mode:          conf.Mode,
		frameHandlers: make(map[uint32]func(Frame)),
	}
	w.lastFrame = w.snapshot(collision.Report{Mode: w.mode}, 0)
	return w
}

// Populate adds count squares of the given size at random whole positions of
// the universe.
func (w *World) Populate(count int, size float64) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.squareSize = size
	for i := 0; i < count; i++ {
		w.store.Add(models.Bounds{
			X: w.conf.Universe.X + float64(w.rng.IntN(max(int(w.conf.Universe.W), 1))),
			Y: w.conf.Universe.Y + float64(w.rng.IntN(max(int(w.conf.Universe.H), 1))),
			W: size,
			H: size,
		})
	}
	instrumentRectangles(w.store.Len())
}

// Add adds a rectangle with the given bounds and returns its id.
func (w *World) Add(b models.Bounds) uint32 {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	id := w.store.Add(b).ID
	instrumentRectangles(w.store.Len())
	return id
}

// Remove deletes a rectangle.
func (w *World) Remove(id uint32) bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	ok := w.store.Remove(id)
	instrumentRectangles(w.store.Len())
	return ok
}

func (w *World) Mode() collision.Mode {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return w.mode
}

func (w *World) SetMode(m collision.Mode) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.mode = m
}

// CycleMode switches to the next collision mode and returns it.
func (w *World) CycleMode() collision.Mode {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.mode = w.mode.Next()
	return w.mode
}

// Submit queues input for the next tick.
func (w *World) Submit(in TickInput) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.pending = w.pending.Merge(in)
}

// Tick advances the world by one frame: it applies the queued input, moves the
// rectangles, rebuilds the indexes and updates the colliding flags.
func (w *World) Tick() Frame {
	w.mutex.Lock()
	start := time.Now()

	in := w.pending
	w.pending = TickInput{}
	w.applyInput(in)

	if w.conf.Jitter {
		w.jitter()
	}

	index := w.index()
	index.Clear()
	index.Insert(w.store.IDs()...)

	var report collision.Report
	switch {
	case w.mode.Indexed():
		report = collision.DetectViaIndex(w.mode, index, w.store)

	case w.mode == collision.ModeAll:
		report = collision.DetectAll(w.store.Rectangles())

	default:
		report = collision.Report{Mode: collision.ModeNone}
	}

	w.tick++
	duration := time.Since(start)
	frame := w.snapshot(report, duration)
	w.lastFrame = frame
	info := w.quadtree.GetDebugInfo()
	w.mutex.Unlock()

	w.summary.add(frame)
	instrumentTick(frame, info)
	w.dispatch(frame)
	return frame
}

func (w *World) applyInput(in TickInput) {
	if in.Target != 0 && (in.NudgeX != 0 || in.NudgeY != 0) {
		w.store.Move(in.Target, in.NudgeX, in.NudgeY)
	}

	size := w.squareSize
	if size <= 0 {
		size = 1
	}
	for _, p := range in.Clicks {
		w.store.Add(models.Bounds{
			X: p.X - size/2,
			Y: p.Y - size/2,
			W: size,
			H: size,
		})
	}
	if len(in.Clicks) != 0 {
		instrumentRectangles(w.store.Len())
	}
}

func (w *World) jitter() {
	for _, id := range w.store.IDs() {
		w.store.Move(id, w.step(), w.step())
	}
}

func (w *World) step() float64 {
	if w.rng.IntN(2) == 0 {
		return -1
	}
	return 1
}

// index returns the index rebuilt at every tick. Brute force and disabled
// modes still rebuild the quadtree.
func (w *World) index() modules.SpatialIndex {
	if w.mode == collision.ModeGrid {
		return w.grid
	}
	return w.quadtree
}

// QuadtreeDebugInfo describes the quadtree built at the last tick.
func (w *World) QuadtreeDebugInfo() quadtree.DebugInfo {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return w.quadtree.GetDebugInfo()
}

// Frame returns the last published frame.
func (w *World) Frame() Frame {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return w.lastFrame
}

// HandleFrame registers a handler called with every published frame. Handlers
// run on the ticking goroutine, after the world lock is released.
func (w *World) HandleFrame(h func(Frame)) (cancel func()) {
	w.frameMutex.Lock()
	defer w.frameMutex.Unlock()

	id := w.frameHandlerIDs.New()
	w.frameHandlers[id] = h

	return func() {
		w.frameMutex.Lock()
		defer w.frameMutex.Unlock()

		delete(w.frameHandlers, id)
		w.frameHandlerIDs.Release(id)
	}
}

func (w *World) dispatch(f Frame) {
	w.frameMutex.RLock()
	defer w.frameMutex.RUnlock()

	for _, h := range w.frameHandlers {
		h(f)
	}
}
