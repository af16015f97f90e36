// Package queue implements the edge priority queue described in
// spec.md §4.4 (C4): region membership predicates, the two
// container/heap-based candidate queues (subdivide/collapse), and the
// two-phase parallel-scan-then-merge construction algorithm.
package queue

import (
	"math"

	"github.com/polyforge/remesh/mesh"
	"github.com/polyforge/remesh/types"
)

// Region is the query volume a remesh call operates over: either a
// sphere (ProjectedNormal zero) or a view-projected disk (ProjectedNormal
// set), per spec.md §3/§4.4.
type Region struct {
	Center types.Vec3
	// Radius2 is the query radius squared.
	Radius2 float64
	// ProjectedNormal, if non-zero, switches the predicate from a sphere
	// test to a disk test on the plane through Center orthogonal to it.
	ProjectedNormal types.Vec3
}

func (r Region) isProjected() bool {
	return r.ProjectedNormal != (types.Vec3{})
}

// projectToPlane returns p projected onto the plane through r.Center
// orthogonal to r.ProjectedNormal.
func (r Region) projectToPlane(p types.Vec3) types.Vec3 {
	n := r.ProjectedNormal.Normalize()
	d := p.Sub(r.Center).Dot(n)
	return p.Sub(n.Scale(d))
}

// VertInRange reports whether vertex position p is within the region,
// using point-to-center distance in sphere mode or on the projected
// plane in disk mode (spec.md §4.4).
func (r Region) VertInRange(p types.Vec3) bool {
	if r.isProjected() {
		p = r.projectToPlane(p)
	}
	return p.Dist2(r.Center) <= r.Radius2
}

// TriInRange reports whether triangle (a,b,c) passes the region
// predicate: in sphere mode, the minimum squared distance from the
// center to {a, b, c, the three edge midpoints, the centroid}; in disk
// mode, the closest-point-on-triangle-to-point distance on the
// projection plane (spec.md §4.4).
func TriInRange(r Region, a, b, c types.Vec3) bool {
	if r.isProjected() {
		pa := r.projectToPlane(a)
		pb := r.projectToPlane(b)
		pc := r.projectToPlane(c)
		return closestPointOnTriangle(r.Center, pa, pb, pc).Dist2(r.Center) <= r.Radius2
	}

	centroid := types.Centroid(a, b, c)
	candidates := [7]types.Vec3{
		a, b, c,
		a.Midpoint(b), b.Midpoint(c), c.Midpoint(a),
		centroid,
	}
	best := math.Inf(1)
	for _, p := range candidates {
		if d := p.Dist2(r.Center); d < best {
			best = d
		}
	}
	return best <= r.Radius2
}

// closestPointOnTriangle returns the point on triangle (a,b,c) closest to
// p, generalizing algorithm/geometry.go's 2D point/segment/triangle
// distance helpers to 3D via barycentric clamping.
func closestPointOnTriangle(p, a, b, c types.Vec3) types.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Scale(v))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Scale(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Scale(w))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Scale(v)).Add(ac.Scale(w))
}

// faceGeometry resolves f's three corner positions, used by the scan and
// by TriInRange callers.
func faceGeometry(m *mesh.Mesh, f types.FaceID) (a, b, c types.Vec3) {
	verts := m.FaceVerts(f)
	return m.Vertex(verts[0]).Co, m.Vertex(verts[1]).Co, m.Vertex(verts[2]).Co
}
