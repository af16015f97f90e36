package mesh

import "github.com/polyforge/remesh/types"

// isDegenerateTriangle reports whether a,b,c form a triangle too thin or
// too small to keep: repeated vertices, or a cross-product magnitude
// (twice the triangle's area) at or below epsilon. Adapted from
// validation/triangle.go's ValidateTriangle, swapping its 2D signed-area
// check for the 3D cross-product magnitude types.TriangleArea2 gives.
func isDegenerateTriangle(v0, v1, v2 VertexID, a, b, c Vec3, epsilon float64) bool {
	if v0 == v1 || v1 == v2 || v0 == v2 {
		return true
	}
	return types.TriangleArea2(a, b, c) <= epsilon
}
