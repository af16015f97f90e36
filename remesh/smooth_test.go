package remesh

import (
	"testing"

	"github.com/polyforge/remesh/mesh"
	"github.com/polyforge/remesh/types"
	"github.com/stretchr/testify/require"
)

func TestSmoothVertexMovesTowardNeighborCentroidTangentially(t *testing.T) {
	m, mb, log := newTestEnv(t)
	_, _, ring := buildOctahedron(t, m, mb, log)

	v := ring[0]
	m.CheckVertBoundary(v) // clear the fresh-vertex NEEDS_BOUNDARY flag so smoothVertex doesn't skip it
	before := m.Vertex(v).Co

	smoothVertex(m, v)

	after := m.Vertex(v).Co
	require.NotEqual(t, before, after, "an off-centroid vertex with a live normal should move")

	// The full neighbour-centroid offset here is (-1,0,0), pointing
	// straight down the vertex's own normal; the 0.99 tangential
	// projection should cancel nearly all of that, leaving only a small
	// residual along the normal.
	disp := after.Sub(before)
	normal := m.Vertex(v).No.Normalize()
	require.InDelta(t, 0, disp.Dot(normal), 0.02)
	require.Less(t, disp.Dot(normal), 0.0, "the uncancelled 1% residual still points inward")
}

func TestSmoothVertexSkipsStaleBoundaryClassification(t *testing.T) {
	m, mb, log := newTestEnv(t)
	_, _, ring := buildOctahedron(t, m, mb, log)
	v := ring[0]

	m.VertModify(v, nil, func(vert *mesh.Vertex) {
		vert.Flags |= types.NeedsBoundary
	})
	before := m.Vertex(v).Co

	smoothVertex(m, v)

	require.Equal(t, before, m.Vertex(v).Co, "a vertex with a stale boundary flag is left for a later pass")
}
