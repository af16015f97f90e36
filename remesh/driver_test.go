package remesh

import (
	"context"
	"testing"

	"github.com/polyforge/remesh/types"
	"github.com/stretchr/testify/require"
)

func TestDriverRunCollapsePassShrinksTightEdges(t *testing.T) {
	m, mb, log := newTestEnv(t)
	buildTetrahedron(t, m, mb, log)

	d := NewDriver(m, mb, log, WithTargetEdgeLength(2, 4))

	facesBefore := m.NumFaces()
	changed, err := d.Run(context.Background(), UpdateTopologyParams{
		Center: types.Vec3{X: 0.5, Y: 0.5, Z: 0.3},
		Radius: 5,
		Mode:   types.Collapse,
	})
	require.NoError(t, err)
	require.True(t, changed, "the tetrahedron's short edges are all well under the 2.0 collapse threshold")
	require.Less(t, m.NumFaces(), facesBefore)
}

func TestDriverRunCleanupOnlyRebuildsWatchlistVertices(t *testing.T) {
	m, mb, log := newTestEnv(t)
	_, _, ring := buildOctahedron(t, m, mb, log)

	d := NewDriver(m, mb, log)

	changed, err := d.Run(context.Background(), UpdateTopologyParams{
		Center: types.Vec3{},
		Radius: 5,
		Mode:   types.Cleanup,
	})
	require.NoError(t, err)
	require.True(t, changed)
	require.False(t, m.VertexAlive(ring[0]), "ring[0] is valence 4 and inside the region, so cleanup should rebuild it")
}

func TestDriverRunNoOpModeReportsNoChange(t *testing.T) {
	m, mb, log := newTestEnv(t)
	buildTetrahedron(t, m, mb, log)

	d := NewDriver(m, mb, log)

	changed, err := d.Run(context.Background(), UpdateTopologyParams{
		Center: types.Vec3{},
		Radius: 5,
	})
	require.NoError(t, err)
	require.False(t, changed)
}
