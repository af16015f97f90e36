package queue

import (
	"testing"

	"github.com/polyforge/remesh/types"
	"github.com/stretchr/testify/require"
)

func TestRegionVertInRangeSphere(t *testing.T) {
	r := Region{Center: types.Vec3{}, Radius2: 4}
	require.True(t, r.VertInRange(types.Vec3{X: 1}))
	require.False(t, r.VertInRange(types.Vec3{X: 10}))
}

func TestTriInRangeSphereUsesClosestSample(t *testing.T) {
	a := types.Vec3{}
	b := types.Vec3{X: 10}
	c := types.Vec3{Y: 10}

	// far from every vertex, edge midpoint, and the centroid.
	far := Region{Center: types.Vec3{X: -100}, Radius2: 1}
	require.False(t, TriInRange(far, a, b, c))

	// on top of vertex b.
	near := Region{Center: types.Vec3{X: 10}, Radius2: 1}
	require.True(t, TriInRange(near, a, b, c))
}

func TestTriInRangeProjectedDisk(t *testing.T) {
	r := Region{
		Center:          types.Vec3{X: 0.5, Y: 0.5, Z: 100},
		Radius2:         1,
		ProjectedNormal: types.Vec3{Z: 1},
	}
	a := types.Vec3{}
	b := types.Vec3{X: 1}
	c := types.Vec3{Y: 1}
	require.True(t, TriInRange(r, a, b, c))

	far := Region{
		Center:          types.Vec3{X: 50, Y: 50, Z: 100},
		Radius2:         1,
		ProjectedNormal: types.Vec3{Z: 1},
	}
	require.False(t, TriInRange(far, a, b, c))
}
