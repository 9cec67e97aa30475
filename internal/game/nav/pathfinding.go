package nav

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/Faultbox/oni-patrol/internal/logger"
	"github.com/Faultbox/oni-patrol/pkg/math"
)

// ErrNoPath is returned when no route exists or the search gave up.
var ErrNoPath = errors.New("nav: no path")

// DefaultMaxIterations bounds a search to this many node expansions.
const DefaultMaxIterations = 1000

// pathNode is a node in the search tree.
type pathNode struct {
	cell   Cell
	cost   int
	seq    int // insertion order, breaks cost ties
	parent *pathNode
	index  int // index in heap
}

// pathHeap implements a priority queue ordered by cost, then insertion.
type pathHeap []*pathNode

func (h pathHeap) Len() int { return len(h) }
func (h pathHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].seq < h[j].seq
}
func (h pathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *pathHeap) Push(x any) {
	node := x.(*pathNode)
	node.index = len(*h)
	*h = append(*h, node)
}

func (h *pathHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[:n-1]
	return node
}

// Four-way neighbourhood: left, right, forward, back.
var directions = [4]Cell{
	{X: -1, Z: 0},
	{X: 1, Z: 0},
	{X: 0, Z: 1},
	{X: 0, Z: -1},
}

// PathFinder searches the grid inside a rectangle. It keeps its node maps
// between searches, so one PathFinder must not be shared by goroutines.
type PathFinder struct {
	bounds        cp.BB
	maxIterations int

	nodes  map[Cell]*pathNode
	closed map[Cell]struct{}
	open   pathHeap
	seq    int

	// Iterations is the expansion count of the last search.
	Iterations int

	log *zap.Logger
}

// NewPathFinder creates a path finder over the inclusive bounds.
func NewPathFinder(bounds cp.BB, maxIterations int) *PathFinder {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &PathFinder{
		bounds:        bounds,
		maxIterations: maxIterations,
		nodes:         make(map[Cell]*pathNode),
		closed:        make(map[Cell]struct{}),
		log:           logger.Named("nav"),
	}
}

// InBounds reports whether c lies inside the search rectangle.
func (pf *PathFinder) InBounds(c Cell) bool {
	return pf.bounds.ContainsVect(c.vect())
}

// FindPath returns the cells leading from start to goal. The first cell is
// a neighbour of start and the last is goal; start itself is excluded.
// Cells covered by any obstacle footprint are never entered. Equal start
// and goal yield an empty path.
//
// The search grows from goal toward start, so walking parent links from
// start reads the route in travel order.
func (pf *PathFinder) FindPath(start, goal Cell, obstacles ...Footprint) ([]Cell, error) {
	pf.Iterations = 0
	if !pf.InBounds(start) || !pf.InBounds(goal) {
		return nil, fmt.Errorf("%w: %v -> %v outside grid", ErrNoPath, start, goal)
	}
	if start == goal {
		return []Cell{}, nil
	}

	pf.reset()
	root := pf.push(goal, 0, nil)
	pf.nodes[goal] = root

	for {
		current := pf.popAdmissible(obstacles)
		if current == nil {
			pf.log.Debug("open list exhausted", zap.Any("start", start), zap.Any("goal", goal))
			return nil, fmt.Errorf("%w: open list exhausted after %d expansions", ErrNoPath, pf.Iterations)
		}

		if current.cell == start {
			return reconstructPath(current), nil
		}

		if pf.Iterations >= pf.maxIterations {
			pf.log.Debug("iteration ceiling reached", zap.Int("limit", pf.maxIterations))
			return nil, fmt.Errorf("%w: iteration ceiling %d reached", ErrNoPath, pf.maxIterations)
		}
		pf.Iterations++

		pf.closed[current.cell] = struct{}{}

		for _, dir := range directions {
			next := Cell{X: current.cell.X + dir.X, Z: current.cell.Z + dir.Z}
			if !pf.InBounds(next) || isObstacleCentre(next, obstacles) {
				continue
			}
			if _, done := pf.closed[next]; done {
				continue
			}
			if _, seen := pf.nodes[next]; seen {
				continue
			}
			pf.nodes[next] = pf.push(next, current.cost+1, current)
		}
	}
}

// FindRoute converts world positions to cells, searches, and returns the
// route as world positions at from's height.
func (pf *PathFinder) FindRoute(from, to math.Vec3, obstacles ...Footprint) ([]math.Vec3, error) {
	cells, err := pf.FindPath(CellOf(from), CellOf(to), obstacles...)
	if err != nil {
		return nil, err
	}
	route := make([]math.Vec3, len(cells))
	for i, c := range cells {
		route[i] = c.Position(from.Y)
	}
	return route, nil
}

func (pf *PathFinder) reset() {
	clear(pf.nodes)
	clear(pf.closed)
	pf.open = pf.open[:0]
	pf.seq = 0
}

func (pf *PathFinder) push(c Cell, cost int, parent *pathNode) *pathNode {
	n := &pathNode{cell: c, cost: cost, seq: pf.seq, parent: parent}
	pf.seq++
	heap.Push(&pf.open, n)
	return n
}

// popAdmissible pops the cheapest node outside every footprint. Blocked
// nodes are dropped for good.
func (pf *PathFinder) popAdmissible(obstacles []Footprint) *pathNode {
	for pf.open.Len() > 0 {
		n := heap.Pop(&pf.open).(*pathNode)
		if !isBlocked(n.cell, obstacles) {
			return n
		}
	}
	return nil
}

func isBlocked(c Cell, obstacles []Footprint) bool {
	for _, f := range obstacles {
		if f.Blocks(c) {
			return true
		}
	}
	return false
}

func isObstacleCentre(c Cell, obstacles []Footprint) bool {
	for _, f := range obstacles {
		if f.IsCentre(c) {
			return true
		}
	}
	return false
}

func reconstructPath(start *pathNode) []Cell {
	var path []Cell
	for n := start.parent; n != nil; n = n.parent {
		path = append(path, n.cell)
	}
	return path
}
