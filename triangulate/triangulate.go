// Package triangulate provides the n-gon triangulation primitive spec.md
// §1 names as an external collaborator ("triangulation of incoming
// n-gons, which is delegated to a polygon-triangulation primitive").
//
// Adapted from algorithm/polygon/polygon.go's SignedArea/IsCCW (2D,
// shoelace formula) generalized to 3D: a polygon loop's orientation is
// read off the sign of its fan-normal's dot product with a reference
// normal instead of a 2D signed area, since a 3D loop has no single
// "up" axis to take a shoelace sum against.
package triangulate

import "github.com/polyforge/remesh/types"

// Triangulator turns one n-gon (a closed loop of >=3 positions, in loop
// order) into a set of triangles expressed as index triples into the
// input slice. The beauty flag requests the triangulator prefer
// triangles with better aspect ratio over raw speed when it has a choice
// of diagonals; implementations that only have one strategy may ignore it.
type Triangulator interface {
	Triangulate(loop []types.Vec3, beauty bool) ([][3]int, error)
}

// Fan is the reference Triangulator: it connects every vertex after the
// first two to vertex 0, producing len(loop)-2 triangles. This is the
// cheap, always-available strategy; it is correct for convex loops and
// for the near-planar loops a subdivided sculpting mesh actually produces
// around a single vertex, but can produce a sliver for a very non-convex
// loop. beauty is accepted for interface compatibility but unused: a fan
// has no alternative diagonal to choose between.
type Fan struct{}

// Triangulate implements Triangulator.
func (Fan) Triangulate(loop []types.Vec3, beauty bool) ([][3]int, error) {
	if len(loop) < 3 {
		return nil, ErrTooFewVertices
	}
	tris := make([][3]int, 0, len(loop)-2)
	for i := 1; i < len(loop)-1; i++ {
		tris = append(tris, [3]int{0, i, i + 1})
	}
	return tris, nil
}
