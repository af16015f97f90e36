package remesh

import (
	"github.com/polyforge/remesh/mesh"
	"github.com/polyforge/remesh/types"
)

// smoothVertex nudges v toward the centroid of its same-class neighbours,
// projected onto its tangent plane, and commits the result with a single
// compare-and-swap (spec.md §4.8). It never recomputes v's boundary
// classification itself — a scan worker calls this from inside a
// concurrent leaf walk, and CheckVertBoundary's read-modify-write on
// Vertex.Flags is not safe to race against another leaf's worker touching
// the same shared vertex. A vertex whose classification is already stale
// (NEEDS_BOUNDARY set) is left alone this call; it gets smoothed on a
// later pass once something recomputes it synchronously.
func smoothVertex(m *mesh.Mesh, v types.VertexID) {
	vert := m.Vertex(v)
	if vert.Flags.Has(types.NeedsBoundary) || vert.Flags.IsSmoothCorner() {
		return
	}
	first := m.FirstEdge(v)
	if first == mesh.NilEdge {
		return
	}

	class := vert.Flags & types.SmoothBoundaryMask

	var sum types.Vec3
	count := 0
	e := first
	for {
		n := m.OtherVert(e, v)
		nFlags := m.Vertex(n).Flags
		if nFlags&types.SmoothBoundaryMask == class {
			sum = sum.Add(m.Vertex(n).Co.Sub(vert.Co))
			count++
		}
		e = m.EdgeDiskNext(e, v)
		if e == first {
			break
		}
	}
	if count == 0 {
		return
	}

	offset := sum.Scale(1.0 / float64(count))
	normal := vert.No
	tangential := offset.Sub(normal.Scale(0.99 * offset.Dot(normal)))
	target := vert.Co.Add(tangential)

	m.CASVertexPosition(v, vert.Co, target)
}
