package remesh

import (
	"testing"

	"github.com/polyforge/remesh/mesh"
	"github.com/polyforge/remesh/types"
	"github.com/stretchr/testify/require"
)

func TestCollapseEdgeRewritesFansAndAvoidsDuplicateFace(t *testing.T) {
	m, mb, log := newTestEnv(t)
	v0, v1, v2, v3 := buildTetrahedron(t, m, mb, log)

	cfg := newDefaultConfig()
	chain := make(deletedChain)

	// v0-v1 is shared by (v0,v1,v2) and (v0,v3,v1); collapsing it folds
	// v0 into v1 (a tie favours the second endpoint) and should leave
	// face (v1,v3,v2) alone while retiring (v2,v3,v0) without a
	// replacement, since rewriting it would duplicate (v1,v3,v2).
	did, err := collapseEdge(m, mb, log, cfg, chain, v0, v1, 1)
	require.NoError(t, err)
	require.True(t, did)

	require.False(t, m.VertexAlive(v0), "v0 folded away")
	require.True(t, m.VertexAlive(v1), "v1 survives as the tie-break winner")
	require.True(t, m.VertexAlive(v2))
	require.True(t, m.VertexAlive(v3))
	require.Equal(t, v1, chain[v0])

	require.Equal(t, 1, m.NumFaces(), "only (v1,v3,v2) should remain")
	_, ok := m.FaceExists([3]types.VertexID{v1, v3, v2})
	require.True(t, ok)

	_, ok = m.FindEdge(v0, v1)
	require.False(t, ok, "the collapsed edge itself is gone")
}

func TestCollapseEdgeRejectsIncompatibleBoundaryPair(t *testing.T) {
	m, mb, log := newTestEnv(t)
	v0, v1, _, _ := buildTetrahedron(t, m, mb, log)

	m.VertModify(v0, nil, func(vert *mesh.Vertex) {
		vert.Flags = (vert.Flags &^ types.NeedsBoundary) | types.Boundary
	})
	m.VertModify(v1, nil, func(vert *mesh.Vertex) {
		vert.Flags &^= types.NeedsBoundary
	})

	cfg := newDefaultConfig()
	chain := make(deletedChain)

	did, err := collapseEdge(m, mb, log, cfg, chain, v0, v1, 1)
	require.ErrorIs(t, err, ErrIncompatibleBoundary)
	require.False(t, did)
	require.True(t, m.VertexAlive(v0))
	require.True(t, m.VertexAlive(v1))
}

func TestCollapseEdgeRejectsSeamThatWouldBreakChain(t *testing.T) {
	m, mb, log := newTestEnv(t)
	v0, v1, _, _ := buildTetrahedron(t, m, mb, log)

	e, ok := m.FindEdge(v0, v1)
	require.True(t, ok)
	m.OrEdgeHead(e, types.FlagSeam)

	cfg := newDefaultConfig()
	chain := make(deletedChain)

	// Neither v0 nor v1 has another seam edge, so collapsing their only
	// seam edge would truncate the (length-1) seam chain rather than
	// shortening it.
	did, err := collapseEdge(m, mb, log, cfg, chain, v0, v1, 1)
	require.ErrorIs(t, err, ErrSeamChainWouldBreak)
	require.False(t, did)
}
