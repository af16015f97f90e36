package remesh

import (
	"github.com/polyforge/remesh/editlog"
	"github.com/polyforge/remesh/mesh"
	"github.com/polyforge/remesh/nodes"
	"github.com/polyforge/remesh/types"
)

// ensureTriangulatedVertex retriangulates every incident n-gon face of v,
// so that later passes can walk v's disk and radial cycles assuming every
// incident face is a triangle (spec.md §4.5 step 1, §4.6 step 1, §4.7's
// fan walk all require this as a precondition).
func ensureTriangulatedVertex(m *mesh.Mesh, mb *nodes.Membership, log editlog.Log, cfg config, v types.VertexID) error {
	for _, f := range m.VertIncidentFaces(v) {
		if m.Face(f).NumLoops <= 3 {
			continue
		}
		if err := triangulateFace(m, mb, log, cfg, f); err != nil {
			return err
		}
	}
	return nil
}

// vertPairV is a canonical (unordered) vertex pair, used as a set key for
// the diagonals a triangulation introduces.
type vertPairV struct{ A, B types.VertexID }

func canonVertPair(a, b types.VertexID) vertPairV {
	if a > b {
		a, b = b, a
	}
	return vertPairV{a, b}
}

// triangulateFace retriangulates one n-gon face in place. cfg.triangulator
// chooses which diagonals to cut; mesh.SplitFaceDiagonal — the only
// cutting primitive the mesh package exposes — is the one way to realize
// them, so an arbitrary triangle list from the collaborator is first
// reduced to the set of non-boundary (diagonal) vertex pairs it implies,
// then applied one at a time: at each step some diagonal is always
// immediately cuttable against some currently-active face (the dual tree
// of any polygon triangulation always has a leaf), so repeatedly picking
// any cuttable one converges without needing the collaborator's own
// triangle adjacency. New faces inherit f's leaf ownership.
func triangulateFace(m *mesh.Mesh, mb *nodes.Membership, log editlog.Log, cfg config, f types.FaceID) error {
	ring := m.FaceRingVerts(f)
	n := len(ring)
	positions := make([]types.Vec3, n)
	for i, v := range ring {
		positions[i] = m.Vertex(v).Co
	}

	tris, err := cfg.triangulator.Triangulate(positions, true)
	if err != nil {
		return err
	}
	diagonals := diagonalVertexPairs(ring, tris)

	owner := mb.FaceLeaf(f)
	mb.FaceRemove(m, f, log, false, false)

	active := []types.FaceID{f}
	var finalized []types.FaceID

	for len(diagonals) > 0 {
		va, vb, cutFace, idx, ok := findCuttableDiagonal(m, active, diagonals)
		if !ok {
			return ErrNonManifoldFan
		}
		diagonals = append(diagonals[:idx], diagonals[idx+1:]...)

		fa, fb, err := m.SplitFaceDiagonal(cutFace, va, vb, log)
		if err != nil {
			return err
		}
		active = removeFaceID(active, cutFace)
		for _, nf := range [2]types.FaceID{fa, fb} {
			if m.Face(nf).NumLoops == 3 {
				finalized = append(finalized, nf)
			} else {
				active = append(active, nf)
			}
		}
	}
	finalized = append(finalized, active...)

	for _, nf := range finalized {
		if owner.IsValid() {
			mb.FaceAssign(nf, owner)
		} else {
			mb.FaceAdd(m, nf, log, false)
		}
	}
	return nil
}

// diagonalVertexPairs extracts, from a triangulator's index-triple output
// over ring, the edges that are not ring-adjacent (the actual diagonals a
// triangulation introduces; ring-adjacent edges already exist).
func diagonalVertexPairs(ring []types.VertexID, tris [][3]int) []vertPairV {
	n := len(ring)
	adjacent := func(i, j int) bool {
		d := i - j
		if d < 0 {
			d = -d
		}
		return d == 1 || d == n-1
	}

	seen := make(map[vertPairV]bool)
	var out []vertPairV
	for _, t := range tris {
		idx := [3]int{t[0], t[1], t[2]}
		for k := 0; k < 3; k++ {
			i, j := idx[k], idx[(k+1)%3]
			if adjacent(i, j) {
				continue
			}
			p := canonVertPair(ring[i], ring[j])
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// findCuttableDiagonal looks for a (diagonal, face) pair where both
// endpoints are corners of the face's current ring and are not already
// ring-adjacent there (adjacent pairs have nothing left to cut).
func findCuttableDiagonal(m *mesh.Mesh, active []types.FaceID, diagonals []vertPairV) (va, vb types.VertexID, face types.FaceID, idx int, ok bool) {
	for i, d := range diagonals {
		for _, f := range active {
			if m.FaceHasVertex(f, d.A) && m.FaceHasVertex(f, d.B) && nonAdjacentInRing(m, f, d.A, d.B) {
				return d.A, d.B, f, i, true
			}
		}
	}
	return 0, 0, 0, 0, false
}

func nonAdjacentInRing(m *mesh.Mesh, f types.FaceID, va, vb types.VertexID) bool {
	ring := m.FaceRingVerts(f)
	n := len(ring)
	ia, ib := -1, -1
	for i, v := range ring {
		if v == va {
			ia = i
		}
		if v == vb {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return false
	}
	d := ia - ib
	if d < 0 {
		d = -d
	}
	return d != 1 && d != n-1
}

func removeFaceID(list []types.FaceID, f types.FaceID) []types.FaceID {
	out := list[:0]
	for _, x := range list {
		if x != f {
			out = append(out, x)
		}
	}
	return out
}
