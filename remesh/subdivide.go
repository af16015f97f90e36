package remesh

import (
	"github.com/polyforge/remesh/attrs"
	"github.com/polyforge/remesh/editlog"
	"github.com/polyforge/remesh/mesh"
	"github.com/polyforge/remesh/nodes"
	"github.com/polyforge/remesh/queue"
	"github.com/polyforge/remesh/types"
)

// faceSplitState accumulates, for one original triangle touched by phase
// 1, its pre-split identity: the tagged-edge mask phase 2 needs to look up
// a split pattern, and a snapshot of its three original corner attribute
// blocks (captured before any split enlarges the ring, so phase 2's
// customdata interpolation has something to copy from even after the
// original loops are gone).
type faceSplitState struct {
	face     types.FaceID
	edges    [3]types.EdgeID
	mask     int
	loopAttr map[types.VertexID]attrs.BlockID
}

// subdivide runs C5 (spec.md §4.5) over pending, a buffer of candidate
// edges already popped from the subdivide queue: phase 1 splits every
// edge at its midpoint, phase 2 re-triangulates every face that had at
// least one tagged edge by consulting the split-pattern table.
func subdivide(m *mesh.Mesh, mb *nodes.Membership, log editlog.Log, cfg config, pending []queue.Candidate) error {
	states := make(map[types.FaceID]*faceSplitState)

	for _, c := range pending {
		if _, ok := m.FindEdge(c.V1, c.V2); !ok {
			continue
		}

		if err := ensureTriangulatedVertex(m, mb, log, cfg, c.V1); err != nil {
			return err
		}
		if err := ensureTriangulatedVertex(m, mb, log, cfg, c.V2); err != nil {
			return err
		}

		e, ok := m.FindEdge(c.V1, c.V2)
		if !ok {
			continue
		}

		registerTaggedEdge(states, m, e)

		owner := mb.VertLeaf(c.V1)
		if !owner.IsValid() {
			owner = mb.VertLeaf(c.V2)
		}

		v1Attr := m.Vertex(c.V1).Attr
		v2Attr := m.Vertex(c.V2).Attr

		nv, _, err := log.EdgeSplitDo(m, e, 0.5)
		if err != nil {
			return err
		}

		midAttr := m.Store().Alloc(m.Store().NullBlock())
		m.Store().Interp(midAttr, []attrs.BlockID{v1Attr, v2Attr}, []float64{0.5, 0.5})
		m.VertModify(nv, nil, func(vert *mesh.Vertex) { vert.Attr = midAttr })

		if !owner.IsValid() {
			owner = mb.VertOtherLeafFind(m, nv, nodes.NoLeaf)
		}
		if owner.IsValid() {
			mb.VertOwnershipTransfer(nv, owner)
		}

		if cfg.debugSplit != nil {
			cfg.debugSplit(c.V1, c.V2)
		}
	}

	for _, st := range states {
		if err := retriangulateSplitFace(m, mb, log, st); err != nil {
			return err
		}
	}
	return nil
}

// registerTaggedEdge records e as tagged-for-split against every face
// incident to it, snapshotting each face's pre-split state the first time
// it is touched (so later edges of the same face OR together into the
// same mask instead of clobbering it).
func registerTaggedEdge(states map[types.FaceID]*faceSplitState, m *mesh.Mesh, e types.EdgeID) {
	for _, f := range edgeIncidentFaces(m, e) {
		markFaceEdge(states, m, f, e)
	}
}

func markFaceEdge(states map[types.FaceID]*faceSplitState, m *mesh.Mesh, f types.FaceID, e types.EdgeID) {
	st, ok := states[f]
	if !ok {
		verts := m.FaceVerts(f)
		st = &faceSplitState{
			face:     f,
			edges:    m.FaceEdges(f),
			loopAttr: make(map[types.VertexID]attrs.BlockID, 3),
		}
		for _, v := range verts {
			if l := m.FaceLoopAt(f, v); l != mesh.NilLoop {
				st.loopAttr[v] = m.Loop(l).Attr
			}
		}
		states[f] = st
	}
	for i, ed := range st.edges {
		if ed == e {
			st.mask |= 1 << i
			return
		}
	}
}

// edgeIncidentFaces returns the (0, 1, or 2) distinct faces incident to e,
// tolerating boundary edges (one loop) that mesh.EdgeLoopPair rejects.
func edgeIncidentFaces(m *mesh.Mesh, e types.EdgeID) []types.FaceID {
	first := m.Edge(e).Loop
	if first == mesh.NilLoop {
		return nil
	}
	var faces []types.FaceID
	seen := make(map[types.FaceID]bool)
	l := first
	for {
		face := m.Loop(l).Face
		if !seen[face] {
			seen[face] = true
			faces = append(faces, face)
		}
		l = m.Loop(l).RadialNext
		if l == first {
			break
		}
	}
	return faces
}

// retriangulateSplitFace applies phase 2 to one tagged face: look up its
// split pattern by mask, resolve ring-local diagonal indices against the
// live (enlarged) ring, and chain mesh.SplitFaceDiagonal calls to cut it.
// New faces inherit st.face's former owner; per-corner attribute blocks
// are rebuilt from the snapshot markFaceEdge took (original corners copy
// their original loop's block, midpoint corners copy the new vertex's
// already-blended attribute).
func retriangulateSplitFace(m *mesh.Mesh, mb *nodes.Membership, log editlog.Log, st *faceSplitState) error {
	pattern, ok := patternForMask(st.mask)
	if !ok {
		return nil
	}

	ring := m.FaceRingVerts(st.face)
	if len(ring) != pattern.ringLen {
		return nil
	}

	owner := mb.FaceLeaf(st.face)
	mb.FaceRemove(m, st.face, log, false, false)

	var finalized []types.FaceID
	current := st.face
	for _, d := range pattern.diagonals {
		va, vb := ring[d[0]], ring[d[1]]
		if !m.FaceHasVertex(current, va) || !m.FaceHasVertex(current, vb) {
			break
		}

		fa, fb, err := m.SplitFaceDiagonal(current, va, vb, log)
		if err != nil {
			return err
		}

		if m.Face(fa).NumLoops > 3 {
			finalized = append(finalized, fb)
			current = fa
		} else {
			finalized = append(finalized, fa)
			current = fb
		}
	}
	finalized = append(finalized, current)

	for _, f := range finalized {
		if owner.IsValid() {
			mb.FaceAssign(f, owner)
		} else {
			mb.FaceAdd(m, f, log, false)
		}
		for _, v := range m.FaceRingVerts(f) {
			src, ok := st.loopAttr[v]
			if !ok {
				src = m.Vertex(v).Attr
			}
			block := m.Store().Alloc(m.Store().NullBlock())
			m.Store().Copy(src, block)
			m.SetLoopAttr(m.FaceLoopAt(f, v), block)
		}
	}
	return nil
}
