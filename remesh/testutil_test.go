package remesh

import (
	"testing"

	"github.com/polyforge/remesh/editlog"
	"github.com/polyforge/remesh/mesh"
	"github.com/polyforge/remesh/nodes"
	"github.com/polyforge/remesh/types"
	"github.com/stretchr/testify/require"
)

// newTestEnv builds a mesh, a grid-backed membership table with one big
// cell (so FaceAdd always succeeds without needing real spatial bounds),
// and a fresh in-memory log.
func newTestEnv(t *testing.T) (*mesh.Mesh, *nodes.Membership, *editlog.MemLog) {
	t.Helper()
	m := mesh.NewMesh()
	g := nodes.NewGridHierarchy(m, 1000, 256)
	mb := nodes.NewMembership(g)
	log := editlog.NewMemLog()
	return m, mb, log
}

// buildTetrahedron creates 4 vertices and 4 triangular faces, registering
// every face with mb, and returns the vertex ids in a fixed order.
func buildTetrahedron(t *testing.T, m *mesh.Mesh, mb *nodes.Membership, log editlog.Log) (v0, v1, v2, v3 types.VertexID) {
	t.Helper()
	v0 = m.VertCreate(types.Vec3{X: 0, Y: 0, Z: 0}, types.Vec3{Z: 1}, log)
	v1 = m.VertCreate(types.Vec3{X: 1, Y: 0, Z: 0}, types.Vec3{Z: 1}, log)
	v2 = m.VertCreate(types.Vec3{X: 0.5, Y: 1, Z: 0}, types.Vec3{Z: 1}, log)
	v3 = m.VertCreate(types.Vec3{X: 0.5, Y: 0.3, Z: 1}, types.Vec3{Z: 1}, log)

	tris := [4][3]types.VertexID{
		{v0, v1, v2},
		{v0, v3, v1},
		{v1, v3, v2},
		{v2, v3, v0},
	}
	for _, tri := range tris {
		f, err := m.FaceCreate(tri, nil, nil, log)
		require.NoError(t, err)
		mb.FaceAdd(m, f, log, false)
	}
	return
}

// buildOctahedron creates the 6-vertex, 8-face octahedron: a top and
// bottom apex plus a 4-vertex equatorial ring, every ring vertex at
// valence 4. ring[i] is the i-th equatorial vertex.
func buildOctahedron(t *testing.T, m *mesh.Mesh, mb *nodes.Membership, log editlog.Log) (top, bottom types.VertexID, ring [4]types.VertexID) {
	t.Helper()
	top = m.VertCreate(types.Vec3{Z: 1}, types.Vec3{Z: 1}, log)
	bottom = m.VertCreate(types.Vec3{Z: -1}, types.Vec3{Z: -1}, log)
	ring[0] = m.VertCreate(types.Vec3{X: 1}, types.Vec3{X: 1}, log)
	ring[1] = m.VertCreate(types.Vec3{Y: 1}, types.Vec3{Y: 1}, log)
	ring[2] = m.VertCreate(types.Vec3{X: -1}, types.Vec3{X: -1}, log)
	ring[3] = m.VertCreate(types.Vec3{Y: -1}, types.Vec3{Y: -1}, log)

	for i := 0; i < 4; i++ {
		a, b := ring[i], ring[(i+1)%4]
		ft, err := m.FaceCreate([3]types.VertexID{top, a, b}, nil, nil, log)
		require.NoError(t, err)
		mb.FaceAdd(m, ft, log, false)

		fb, err := m.FaceCreate([3]types.VertexID{bottom, b, a}, nil, nil, log)
		require.NoError(t, err)
		mb.FaceAdd(m, fb, log, false)
	}
	return
}
