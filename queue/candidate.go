package queue

import (
	"container/heap"

	"github.com/polyforge/remesh/mesh"
	"github.com/polyforge/remesh/types"
)

// MaskFunc weighs a vertex's local detail mask, e.g. from a brush stroke.
// A nil MaskFunc is treated as a constant 1 everywhere (spec.md §4.4).
type MaskFunc func(v types.VertexID) float64

// maskWeight computes mask_weight(E) = 0.5*(mask_cb(v1)+mask_cb(v2)), or 1
// if cb is nil (spec.md §4.4).
func maskWeight(cb MaskFunc, v1, v2 types.VertexID) float64 {
	if cb == nil {
		return 1
	}
	return 0.5 * (cb(v1) + cb(v2))
}

// Candidate is one entry in either priority queue. It carries the edge's
// endpoints rather than its EdgeID so a stale entry (the edge having been
// killed by an earlier pop) is detected by FindEdge at pop time instead of
// dereferencing a recycled slot.
type Candidate struct {
	V1, V2   types.VertexID
	Priority float64
}

// candidateHeap is the shared container/heap plumbing; Kind picks max vs
// min ordering.
type candidateHeap struct {
	items []Candidate
	less  func(a, b float64) bool
}

func (h *candidateHeap) Len() int { return len(h.items) }
func (h *candidateHeap) Less(i, j int) bool {
	return h.less(h.items[i].Priority, h.items[j].Priority)
}
func (h *candidateHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *candidateHeap) Push(x any)    { h.items = append(h.items, x.(Candidate)) }
func (h *candidateHeap) Pop() any {
	old := h.items
	n := len(old)
	it := old[n-1]
	h.items = old[:n-1]
	return it
}

// SubdivideQueue is a max-heap on length2*weight2: the longest, highest
// priority-weighted edges pop first (spec.md §4.4).
type SubdivideQueue struct {
	h *candidateHeap
}

// NewSubdivideQueue creates an empty subdivide candidate queue.
func NewSubdivideQueue() *SubdivideQueue {
	return &SubdivideQueue{h: &candidateHeap{less: func(a, b float64) bool { return a > b }}}
}

// Push adds v1-v2 with squared length len2 and mask weight cb's output.
func (q *SubdivideQueue) Push(v1, v2 types.VertexID, len2 float64, cb MaskFunc) {
	w := maskWeight(cb, v1, v2)
	heap.Push(q.h, Candidate{V1: v1, V2: v2, Priority: len2 * w * w})
}

func (q *SubdivideQueue) Len() int { return q.h.Len() }

// Pop removes and returns the next candidate still valid for subdivision:
// the edge must still exist and both endpoints must still be owned by a
// leaf (spec.md §4.4). Invalid entries are discarded silently.
func (q *SubdivideQueue) Pop(m *mesh.Mesh, owned func(types.VertexID) bool) (Candidate, bool) {
	for q.h.Len() > 0 {
		c := heap.Pop(q.h).(Candidate)
		if _, ok := m.FindEdge(c.V1, c.V2); !ok {
			continue
		}
		if owned != nil && (!owned(c.V1) || !owned(c.V2)) {
			continue
		}
		return c, true
	}
	return Candidate{}, false
}

// CollapseQueue is a min-heap on length2/weight2: the shortest edges pop
// first, and a lower mask weight pushes an edge further back (spec.md
// §4.4).
type CollapseQueue struct {
	h *candidateHeap
}

// NewCollapseQueue creates an empty collapse candidate queue.
func NewCollapseQueue() *CollapseQueue {
	return &CollapseQueue{h: &candidateHeap{less: func(a, b float64) bool { return a < b }}}
}

// Push adds v1-v2 with squared length len2 and mask weight cb's output.
func (q *CollapseQueue) Push(v1, v2 types.VertexID, len2 float64, cb MaskFunc) {
	w := maskWeight(cb, v1, v2)
	if w == 0 {
		w = 1
	}
	heap.Push(q.h, Candidate{V1: v1, V2: v2, Priority: len2 / (w * w)})
}

func (q *CollapseQueue) Len() int { return q.h.Len() }

// Pop removes and returns the next candidate still valid for collapse: the
// edge must still exist, both endpoints must still be owned, the edge must
// still be manifold (exactly two loops), its current squared length must
// still be at or below the collapse threshold, and its two endpoints must
// not be an incompatible boundary-class pair (spec.md §4.4, §4.6 step 1).
func (q *CollapseQueue) Pop(m *mesh.Mesh, owned func(types.VertexID) bool, collapseThreshold2 float64, boundaryCompatible func(v1, v2 types.VertexID) bool) (Candidate, bool) {
	for q.h.Len() > 0 {
		c := heap.Pop(q.h).(Candidate)
		e, ok := m.FindEdge(c.V1, c.V2)
		if !ok {
			continue
		}
		if owned != nil && (!owned(c.V1) || !owned(c.V2)) {
			continue
		}
		if _, _, ok := m.EdgeLoopPair(e); !ok {
			continue
		}
		if m.EdgeLength2(e) > collapseThreshold2 {
			continue
		}
		if boundaryCompatible != nil && !boundaryCompatible(c.V1, c.V2) {
			continue
		}
		return c, true
	}
	return Candidate{}, false
}
