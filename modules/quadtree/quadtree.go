package quadtree

import (
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/quadcollide/models"
)

// Region quadtree
//
// A hierarchical partition of a fixed universe. The particularities are:
//   - an item is stored at the shallowest node where it does not fit a single
//     child quadrant, so items straddling a midline stay at the ancestor,
//   - a node splits once it holds more than MaxObjects items and is above
//     MaxLevels; nodes at MaxLevels keep every item they receive,
//   - child sizes are truncated to whole units, so children of an odd sized
//     node leave a one unit gap on the far edge.
//
// The tree holds rectangle ids only. Geometry is read through the resolver
// each time it is needed, which is why the tree must be rebuilt when
// rectangles move.

const (
	DefaultMaxObjects = 4
	DefaultMaxLevels  = 5
)

type Tree struct {
	MaxObjects int
	MaxLevels  int

	resolver models.Resolver
	root     node
}

type node struct {
	bounds models.Bounds
	level  int
	items  []uint32

	// nil for a leaf, otherwise indexed by Quadrant.
	children *[4]node
}

// NewTree returns an empty quadtree covering universe. Non positive limits are
// replaced by the defaults.
func NewTree(universe models.Bounds, resolver models.Resolver, maxObjects int, maxLevels int) *Tree {
	if maxObjects <= 0 {
		maxObjects = DefaultMaxObjects
	}
	if maxLevels <= 0 {
		maxLevels = DefaultMaxLevels
	}

	return &Tree{
		MaxObjects: maxObjects,
		MaxLevels:  maxLevels,
		resolver:   resolver,
		root:       node{bounds: universe},
	}
}

func (t *Tree) Name() string {
	return "qtree"
}

// Clear drops every item and every child. The root becomes an empty leaf.
func (t *Tree) Clear() {
	t.root.clear()
}

func (n *node) clear() {
	n.items = nil
	if n.children != nil {
		for i := range n.children {
			n.children[i].clear()
		}
	}
	n.children = nil
}

// Insert adds the given ids in order.
func (t *Tree) Insert(ids ...uint32) {
	for _, id := range ids {
		b, ok := t.resolver.Bounds(id)
		if !ok {
			logs.WithTag("id", id).
				WithTag("index", t.Name()).
				Debug("skipping insertion of an unknown rectangle")
			continue
		}
		t.root.insert(t, id, b)
	}
}

func (n *node) insert(t *Tree, id uint32, b models.Bounds) {
	if n.children != nil {
		if q := n.quadrant(b); q != NoQuadrant {
			n.children[q].insert(t, id, b)
			return
		}
	}

	n.items = append(n.items, id)
	if len(n.items) <= t.MaxObjects || n.level >= t.MaxLevels {
		return
	}

	if n.children == nil {
		n.split()
	}
	n.redistribute(t)
}

// redistribute moves every held item that fits a child quadrant down into that
// child. Items are partitioned first and pushed down afterwards, in their
// original order.
func (n *node) redistribute(t *Tree) {
	type move struct {
		id       uint32
		bounds   models.Bounds
		quadrant Quadrant
	}

	stays := make([]uint32, 0, len(n.items))
	var moves []move

	for _, id := range n.items {
		b, ok := t.resolver.Bounds(id)
		if !ok {
			stays = append(stays, id)
			continue
		}

		q := n.quadrant(b)
		if q == NoQuadrant {
			stays = append(stays, id)
			continue
		}
		moves = append(moves, move{id: id, bounds: b, quadrant: q})
	}

	n.items = stays
	for _, m := range moves {
		n.children[m.quadrant].insert(t, m.id, m.bounds)
	}
}

// quadrant is Index, except that the root keeps anything not fully inside the
// universe.
func (n *node) quadrant(b models.Bounds) Quadrant {
	if n.level == 0 && !n.bounds.Contains(b) {
		return NoQuadrant
	}
	return Index(n.bounds, b)
}

func (n *node) split() {
	subW, subH := n.bounds.Quarter()
	x := n.bounds.X
	y := n.bounds.Y
	level := n.level + 1

	n.children = &[4]node{
		TopRight:    {bounds: models.Bounds{X: x + subW, Y: y, W: subW, H: subH}, level: level},
		TopLeft:     {bounds: models.Bounds{X: x, Y: y, W: subW, H: subH}, level: level},
		BottomLeft:  {bounds: models.Bounds{X: x, Y: y + subH, W: subW, H: subH}, level: level},
		BottomRight: {bounds: models.Bounds{X: x + subW, Y: y + subH, W: subW, H: subH}, level: level},
	}
}

// Items returns every id stored in the tree. Children come before the items
// held by their parent.
func (t *Tree) Items() []uint32 {
	return t.root.allItems()
}

func (n *node) allItems() []uint32 {
	var items []uint32
	if n.children != nil {
		for i := range n.children {
			items = append(items, n.children[i].allItems()...)
		}
	}
	return append(items, n.items...)
}

// Candidates returns the ids that share a branch with the given one: the items
// of the deepest node the rectangle fits, then the items of every ancestor.
// Rectangles contained in different quadrants are never candidates of each
// other, even when they touch across the midline.
func (t *Tree) Candidates(id uint32) []uint32 {
	b, ok := t.resolver.Bounds(id)
	if !ok {
		logs.WithTag("id", id).
			WithTag("index", t.Name()).
			Warn("candidates requested for an unknown rectangle")
		return []uint32{}
	}
	return t.root.candidates(b)
}

func (n *node) candidates(b models.Bounds) []uint32 {
	var items []uint32
	if q := n.quadrant(b); q != NoQuadrant && n.children != nil {
		items = n.children[q].candidates(b)
	}
	return append(items, n.items...)
}

// NodeBounds returns the bounds of every node, children first.
func (t *Tree) NodeBounds() []models.Bounds {
	return t.root.allBounds()
}

func (n *node) allBounds() []models.Bounds {
	var bounds []models.Bounds
	if n.children != nil {
		for i := range n.children {
			bounds = append(bounds, n.children[i].allBounds()...)
		}
	}
	return append(bounds, n.bounds)
}
