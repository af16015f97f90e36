package queue

import (
	"context"
	"testing"

	"github.com/polyforge/remesh/mesh"
	"github.com/polyforge/remesh/nodes"
	"github.com/polyforge/remesh/types"
	"github.com/stretchr/testify/require"
)

func TestScanSeparatesSubdivideAndCollapseCandidates(t *testing.T) {
	m := mesh.NewMesh()
	g := nodes.NewGridHierarchy(m, 1000, 64)
	mb := nodes.NewMembership(g)

	// A long, thin triangle: one short edge (v0-v1) and two long ones.
	v0 := m.VertCreate(types.Vec3{}, types.Vec3{Z: 1}, nil)
	v1 := m.VertCreate(types.Vec3{X: 0.1, Y: 0.1}, types.Vec3{Z: 1}, nil)
	v2 := m.VertCreate(types.Vec3{X: 10}, types.Vec3{Z: 1}, nil)
	f, err := m.FaceCreate([3]types.VertexID{v0, v1, v2}, nil, nil, nil)
	require.NoError(t, err)
	mb.FaceAdd(m, f, nil, true)

	cfg := ScanConfig{
		Region:             Region{Center: types.Vec3{X: 5}, Radius2: 1e6},
		SubdivideThreshold: 1,
		CollapseThreshold:  0.5,
	}

	res, err := Scan(context.Background(), m, mb, cfg)
	require.NoError(t, err)
	require.Equal(t, 2, res.Subdivide.Len(), "the two long edges should queue for subdivision")
	require.Equal(t, 1, res.Collapse.Len(), "the short v0-v1 edge should queue for collapse")
}

func TestScanPopulatesLowValenceWatchlist(t *testing.T) {
	m := mesh.NewMesh()
	g := nodes.NewGridHierarchy(m, 1000, 64)
	mb := nodes.NewMembership(g)

	v0 := m.VertCreate(types.Vec3{}, types.Vec3{Z: 1}, nil)
	v1 := m.VertCreate(types.Vec3{X: 1}, types.Vec3{Z: 1}, nil)
	v2 := m.VertCreate(types.Vec3{Y: 1}, types.Vec3{Z: 1}, nil)
	f, err := m.FaceCreate([3]types.VertexID{v0, v1, v2}, nil, nil, nil)
	require.NoError(t, err)
	mb.FaceAdd(m, f, nil, true)

	cfg := ScanConfig{
		Region:             Region{Center: types.Vec3{}, Radius2: 1e6},
		SubdivideThreshold: 1e6,
		CollapseThreshold:  0,
	}
	res, err := Scan(context.Background(), m, mb, cfg)
	require.NoError(t, err)
	require.Len(t, res.LowValence, 3, "all three corners of an isolated triangle have valence 2")
}
