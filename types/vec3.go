package types

import "math"

// Vec3 represents a position, direction, or normal in 3D space.
//
// Coordinates use float64 precision, suitable for sculpting-scale geometry
// with an epsilon tolerance appropriate to the mesh (see mesh.WithEpsilon).
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v+w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Sub returns v-w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Scale returns v*s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Cross returns the cross product v x w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Length2 returns the squared length of v, cheaper than Length when only
// comparisons against a squared threshold are needed.
func (v Vec3) Length2() float64 { return v.Dot(v) }

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 { return math.Sqrt(v.Length2()) }

// Dist2 returns the squared distance between v and w.
func (v Vec3) Dist2(w Vec3) float64 { return v.Sub(w).Length2() }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged rather than producing NaNs.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Lerp returns the point t of the way from v to w (t=0 -> v, t=1 -> w).
func (v Vec3) Lerp(w Vec3, t float64) Vec3 {
	return Vec3{
		v.X + (w.X-v.X)*t,
		v.Y + (w.Y-v.Y)*t,
		v.Z + (w.Z-v.Z)*t,
	}
}

// Midpoint returns the point halfway between v and w.
func (v Vec3) Midpoint(w Vec3) Vec3 { return v.Lerp(w, 0.5) }

// Centroid returns the centroid of the triangle (a,b,c).
func Centroid(a, b, c Vec3) Vec3 {
	return Vec3{
		(a.X + b.X + c.X) / 3,
		(a.Y + b.Y + c.Y) / 3,
		(a.Z + b.Z + c.Z) / 3,
	}
}

// TriangleNormal returns the (non-normalized) normal of triangle (a,b,c)
// via the cross product of two of its edges. Its length is twice the
// triangle's area, so callers needing a unit normal should call Normalize.
func TriangleNormal(a, b, c Vec3) Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}

// TriangleArea2 returns twice the area of triangle (a,b,c), i.e. the
// length of TriangleNormal(a,b,c). Near zero means a, b, c are (nearly)
// collinear.
func TriangleArea2(a, b, c Vec3) float64 {
	return TriangleNormal(a, b, c).Length()
}
