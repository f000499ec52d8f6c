package models

// RectangleStore owns the rectangles of a scene. It keeps insertion order and
// resolves ids for spatial indexes.
//
// A RectangleStore is not safe for concurrent use. The simulation serializes
// access to it for a whole tick.
type RectangleStore struct {
	ids        SequentialIDGenerator
	rectangles []*Rectangle
	positions  map[uint32]int
	untracked  bool
}

func NewRectangleStore() *RectangleStore {
	return &RectangleStore{
		positions: make(map[uint32]int),
	}
}

// Add creates a rectangle with a fresh id and appends it to the store.
func (s *RectangleStore) Add(b Bounds) *Rectangle {
	r := &Rectangle{
		ID: s.ids.New(),
		X:  b.X,
		Y:  b.Y,
		W:  b.W,
		H:  b.H,
	}
	s.positions[r.ID] = len(s.rectangles)
	s.rectangles = append(s.rectangles, r)

	if !s.untracked {
		instrumentRectangleAdded()
	}
	return r
}

// Remove deletes the rectangle with the given id. Its id is released once it
// is no longer referenced by the store.
func (s *RectangleStore) Remove(id uint32) bool {
	pos, ok := s.positions[id]
	if !ok {
		return false
	}

	s.rectangles = append(s.rectangles[:pos], s.rectangles[pos+1:]...)
	delete(s.positions, id)
	for i := pos; i < len(s.rectangles); i++ {
		s.positions[s.rectangles[i].ID] = i
	}
	s.ids.Release(id)

	if !s.untracked {
		instrumentRectangleRemoved()
	}
	return true
}

func (s *RectangleStore) ByID(id uint32) (*Rectangle, bool) {
	pos, ok := s.positions[id]
	if !ok {
		return nil, false
	}
	return s.rectangles[pos], true
}

// Bounds implements Resolver.
func (s *RectangleStore) Bounds(id uint32) (Bounds, bool) {
	r, ok := s.ByID(id)
	if !ok {
		return Bounds{}, false
	}
	return r.Bounds(), true
}

// Move translates the rectangle with the given id.
func (s *RectangleStore) Move(id uint32, dx, dy float64) bool {
	r, ok := s.ByID(id)
	if !ok {
		return false
	}
	r.X += dx
	r.Y += dy
	return true
}

// Rectangles returns the rectangles in insertion order. The slice is a copy,
// the rectangles are not.
func (s *RectangleStore) Rectangles() []*Rectangle {
	rectangles := make([]*Rectangle, len(s.rectangles))
	copy(rectangles, s.rectangles)
	return rectangles
}

// IDs returns the rectangle ids in insertion order.
func (s *RectangleStore) IDs() []uint32 {
	ids := make([]uint32, len(s.rectangles))
	for i, r := range s.rectangles {
		ids[i] = r.ID
	}
	return ids
}

func (s *RectangleStore) Len() int {
	return len(s.rectangles)
}

// Clone returns a deep copy of the store. Clones are not reported in metrics.
func (s *RectangleStore) Clone() *RectangleStore {
	c := &RectangleStore{
		rectangles: make([]*Rectangle, len(s.rectangles)),
		positions:  make(map[uint32]int, len(s.positions)),
		untracked:  true,
	}
	for i, r := range s.rectangles {
		cr := *r
		c.rectangles[i] = &cr
		c.positions[r.ID] = i
	}
	c.ids.currentID = s.ids.Last()
	return c
}
