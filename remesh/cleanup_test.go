package remesh

import (
	"testing"

	"github.com/polyforge/remesh/types"
	"github.com/stretchr/testify/require"
)

func TestRebuildFanValence4ReplacesOctahedronVertexWithTwoTriangles(t *testing.T) {
	m, mb, log := newTestEnv(t)
	_, _, ring := buildOctahedron(t, m, mb, log)

	v := ring[0]
	require.Equal(t, 4, m.Valence(v))

	facesBefore := m.NumFaces()
	err := rebuildFan(m, mb, log, v, 4)
	require.NoError(t, err)

	require.False(t, m.VertexAlive(v))
	// 4 incident triangles come down, 2 go back up: a net loss of 2.
	require.Equal(t, facesBefore-2, m.NumFaces())
}

func TestCleanupPassSkipsOutOfRangeAndRebuildsInteriorVertex(t *testing.T) {
	m, mb, log := newTestEnv(t)
	top, _, ring := buildOctahedron(t, m, mb, log)

	cfg := newDefaultConfig()

	// top is valence 4 but far outside the query region, so it must be
	// left untouched.
	changed, err := cleanupPass(m, mb, log, cfg, []types.VertexID{top}, types.Vec3{X: 1000, Y: 1000, Z: 1000}, 0.1)
	require.NoError(t, err)
	require.False(t, changed)
	require.True(t, m.VertexAlive(top))
	require.Equal(t, 4, m.Valence(top))

	changed, err = cleanupPass(m, mb, log, cfg, []types.VertexID{ring[0]}, types.Vec3{}, 10)
	require.NoError(t, err)
	require.True(t, changed)
	require.False(t, m.VertexAlive(ring[0]))
}
