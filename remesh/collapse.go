package remesh

import (
	"github.com/polyforge/remesh/attrs"
	"github.com/polyforge/remesh/editlog"
	"github.com/polyforge/remesh/mesh"
	"github.com/polyforge/remesh/nodes"
	"github.com/polyforge/remesh/queue"
	"github.com/polyforge/remesh/types"
)

// deletedChain records, for every vertex a collapse removed within one
// driver call, either the vertex it was folded into or types.NilVertex if
// it was orphaned and killed outright (spec.md §4.6's "deleted-vertices
// map"). A later pop in the same call resolves both endpoints through it
// before checking ownership, so a stale candidate referencing an
// already-collapsed vertex is recognized even though CollapseQueue.Pop's
// own FindEdge check already discards most of these (the dead vertex's
// edges are gone, so the raw ids no longer name a live edge).
type deletedChain map[types.VertexID]types.VertexID

// resolve follows v through the chain to its final destination. ok is
// false if v, or something it redirects to, was fully removed. The chain
// cannot cycle by construction (a vertex is recorded at most once, the
// call it survives into), but the seen-set guards against it anyway
// rather than looping forever on a corrupted chain.
func (c deletedChain) resolve(v types.VertexID) (types.VertexID, bool) {
	seen := make(map[types.VertexID]bool)
	for {
		if seen[v] {
			return types.NilVertex, false
		}
		seen[v] = true
		next, ok := c[v]
		if !ok {
			return v, true
		}
		if next == types.NilVertex {
			return types.NilVertex, false
		}
		v = next
	}
}

// collapsedFace snapshots a face's corners before it is killed, for step
// 11's post-kill wire-edge and isolated-vertex cleanup.
type collapsedFace struct {
	face  types.FaceID
	edges [3]types.EdgeID
	verts [3]types.VertexID
}

func maskValueOrZero(cfg config, v types.VertexID) float64 {
	if cfg.mask == nil {
		return 0
	}
	return cfg.mask(v)
}

// boundaryCompatible implements the collapse-time boundary check spec.md
// §4.4 step 3 and §4.6 step 3 both require: neither endpoint may be a
// CORNER, and a BOUNDARY endpoint may only collapse with another BOUNDARY
// endpoint (no boundary-to-interior collapse).
func boundaryCompatible(m *mesh.Mesh) func(v1, v2 types.VertexID) bool {
	return func(v1, v2 types.VertexID) bool {
		f1 := m.Vertex(v1).Flags
		f2 := m.Vertex(v2).Flags
		if f1.IsCorner() || f2.IsCorner() {
			return false
		}
		return f1.IsBoundary() == f2.IsBoundary()
	}
}

// hasOtherSeamEdge reports whether v has a seam-flagged edge other than
// exclude in its disk cycle.
func hasOtherSeamEdge(m *mesh.Mesh, v types.VertexID, exclude types.EdgeID) bool {
	first := m.FirstEdge(v)
	if first == mesh.NilEdge {
		return false
	}
	e := first
	for {
		if e != exclude && m.Edge(e).Head.Has(types.FlagSeam) {
			return true
		}
		e = m.EdgeDiskNext(e, v)
		if e == first {
			break
		}
	}
	return false
}

// collapsePass drains cq, collapsing up to budget candidates (spec.md
// §4.9 step 1; budget<=0 means unbounded). changed reports whether any
// collapse actually happened. A candidate rejected for a reason spec.md §7
// classifies as "skip" (non-manifold, incompatible boundary, seam-chain
// truncation) is not an error: the pass just moves on to the next
// candidate. Anything else aborts the whole pass.
func collapsePass(m *mesh.Mesh, mb *nodes.Membership, log editlog.Log, cfg config, cq *queue.CollapseQueue, chain deletedChain, collapseThreshold2 float64, budget int, strokeID int64) (bool, error) {
	owned := func(v types.VertexID) bool {
		resolved, ok := chain.resolve(v)
		if !ok {
			return false
		}
		return mb.VertLeaf(resolved).IsValid()
	}
	bc := boundaryCompatible(m)

	changed := false
	for steps := 0; budget <= 0 || steps < budget; steps++ {
		c, ok := cq.Pop(m, owned, collapseThreshold2, bc)
		if !ok {
			break
		}
		did, err := collapseEdge(m, mb, log, cfg, chain, c.V1, c.V2, strokeID)
		if err != nil {
			switch err {
			case ErrNonManifoldCollapse, ErrIncompatibleBoundary, ErrSeamChainWouldBreak, ErrNonManifoldFan:
				continue
			default:
				return changed, err
			}
		}
		if did {
			changed = true
		}
	}
	return changed, nil
}

// collapseEdge implements C6's 13 steps for one popped candidate (spec.md
// §4.6). performed reports whether the collapse actually ran; false with a
// nil error means the candidate quietly no longer applies (its edge
// vanished between pop and processing, the common case of a queue built
// before an earlier collapse in the same pass already consumed it).
func collapseEdge(m *mesh.Mesh, mb *nodes.Membership, log editlog.Log, cfg config, chain deletedChain, rawV1, rawV2 types.VertexID, strokeID int64) (bool, error) {
	v1, ok1 := chain.resolve(rawV1)
	v2, ok2 := chain.resolve(rawV2)
	if !ok1 || !ok2 || v1 == v2 {
		return false, nil
	}

	e, ok := m.FindEdge(v1, v2)
	if !ok {
		return false, nil
	}
	if _, _, ok := m.EdgeLoopPair(e); !ok {
		return false, ErrNonManifoldCollapse
	}

	// step 1: ensure both fans are all-triangle before anything below
	// walks them.
	if err := ensureTriangulatedVertex(m, mb, log, cfg, v1); err != nil {
		return false, err
	}
	if err := ensureTriangulatedVertex(m, mb, log, cfg, v2); err != nil {
		return false, err
	}

	// Triangulating either fan may have cut e's face along a different
	// diagonal, replacing e itself; re-resolve and re-validate.
	e, ok = m.FindEdge(v1, v2)
	if !ok {
		return false, nil
	}
	if _, _, ok := m.EdgeLoopPair(e); !ok {
		return false, ErrNonManifoldCollapse
	}
	bc := boundaryCompatible(m)
	if !bc(v1, v2) {
		return false, ErrIncompatibleBoundary
	}

	// step 2
	m.CheckOrigdata(v1, strokeID, maskValueOrZero(cfg, v1))
	m.CheckOrigdata(v2, strokeID, maskValueOrZero(cfg, v2))

	// step 3
	if m.Edge(e).Head.Has(types.FlagSeam) {
		if !hasOtherSeamEdge(m, v1, e) || !hasOtherSeamEdge(m, v2, e) {
			return false, ErrSeamChainWouldBreak
		}
	}

	// step 4: survivor is whichever endpoint carries the higher mask
	// value; a tie favours the second endpoint.
	vConn, vDel := v2, v1
	if maskValueOrZero(cfg, v1) > maskValueOrZero(cfg, v2) {
		vConn, vDel = v1, v2
	}

	// step 5: attribute blocks and leaf ownership are independent side
	// tables in this design (unlike a combined union in the original),
	// so interpolating vConn's block has no ownership side effect to
	// undo here.
	connAttr := m.Vertex(vConn).Attr
	delAttr := m.Vertex(vDel).Attr
	m.Store().Interp(connAttr, []attrs.BlockID{delAttr, connAttr}, []float64{0.5, 0.5})

	// step 6
	mb.VertRemove(vDel)

	// step 7
	l0, l1, ok := m.EdgeLoopPair(e)
	if !ok {
		return false, ErrNonManifoldCollapse
	}
	for _, l := range [2]types.LoopID{l0, l1} {
		f := m.Loop(l).Face
		edges := m.FaceEdges(f)
		verts := m.FaceVerts(f)

		var combined types.HeadFlag
		var others []types.EdgeID
		for _, ed := range edges {
			if ed == e {
				continue
			}
			others = append(others, ed)
			combined |= m.Edge(ed).Head &^ types.FlagHidden
		}
		for _, ed := range others {
			m.OrEdgeHead(ed, combined)
		}

		for _, w := range verts {
			m.MarkNeighborhoodDirty(w)
		}

		mb.FaceRemove(m, f, log, false, false)
		m.FaceKill(f, log)
	}

	// step 8
	if err := m.EdgeKill(e, log); err != nil {
		return false, err
	}

	// step 9: rewrite every remaining face incident to vDel to use
	// vConn instead.
	var processed []collapsedFace
	for _, f := range m.VertIncidentFaces(vDel) {
		lDel := m.FaceLoopAt(f, vDel)
		if lDel == mesh.NilLoop {
			continue
		}
		lNext := m.Loop(lDel).Next
		lNextNext := m.Loop(lNext).Next
		vB := m.Loop(lNext).Vert
		vC := m.Loop(lNextNext).Vert

		pf := collapsedFace{face: f, edges: m.FaceEdges(f), verts: m.FaceVerts(f)}

		if _, dup := m.FaceExistsTriFromLoopVert(lNext, vConn); dup {
			// The rewritten triangle would duplicate an existing face.
			// That existing face already covers this geometry, so no
			// replacement is created; f is still killed below like
			// every other face collected here, leaving no duplicate
			// behind (spec.md §7).
			processed = append(processed, pf)
			continue
		}

		owner := mb.FaceLeaf(f)
		faceCopy := m.Face(f)

		edgeDelB := m.Loop(lDel).Edge
		lPrev := m.Loop(lDel).Prev
		edgeCDel := m.Loop(lPrev).Edge

		_, connBExisted := m.FindEdge(vConn, vB)
		_, cConnExisted := m.FindEdge(vC, vConn)

		nf, err := m.FaceCreate([3]types.VertexID{vConn, vB, vC}, nil, &faceCopy, log)
		if err != nil {
			return false, err
		}
		if owner.IsValid() {
			mb.FaceAssign(nf, owner)
		} else {
			mb.FaceAdd(m, nf, log, false)
		}

		nfEdges := m.FaceEdges(nf)
		if !connBExisted {
			m.OrEdgeHead(nfEdges[0], m.Edge(edgeDelB).Head&^types.FlagHidden)
			m.Store().Swap(m.Edge(edgeDelB).Attr, m.Edge(nfEdges[0]).Attr)
		}
		if !cConnExisted {
			m.OrEdgeHead(nfEdges[2], m.Edge(edgeCDel).Head&^types.FlagHidden)
			m.Store().Swap(m.Edge(edgeCDel).Attr, m.Edge(nfEdges[2]).Attr)
		}

		processed = append(processed, pf)
	}

	// step 10: snap every loop around vDel and vConn's (pre-kill) fans
	// to one averaged attribute block.
	var loopIDs []types.LoopID
	for _, f := range m.VertIncidentFaces(vDel) {
		if l := m.FaceLoopAt(f, vDel); l != mesh.NilLoop {
			loopIDs = append(loopIDs, l)
		}
	}
	for _, f := range m.VertIncidentFaces(vConn) {
		if l := m.FaceLoopAt(f, vConn); l != mesh.NilLoop {
			loopIDs = append(loopIDs, l)
		}
	}
	if len(loopIDs) > 0 {
		srcs := make([]attrs.BlockID, len(loopIDs))
		weights := make([]float64, len(loopIDs))
		w := 1.0 / float64(len(loopIDs))
		for i, l := range loopIDs {
			srcs[i] = m.Loop(l).Attr
			weights[i] = w
		}
		first := loopIDs[0]
		m.Store().Interp(m.Loop(first).Attr, srcs, weights)
		blended := m.Loop(first).Attr
		for _, l := range loopIDs[1:] {
			m.Store().Copy(blended, m.Loop(l).Attr)
		}
	}

	// step 11
	for _, pf := range processed {
		mb.FaceRemove(m, pf.face, log, false, false)
		m.FaceKill(pf.face, log)
		for _, ed := range pf.edges {
			if m.Edge(ed).Loop == mesh.NilLoop {
				if err := m.EdgeKill(ed, log); err != nil {
					return false, err
				}
			}
		}
		for _, v := range pf.verts {
			if v == vDel {
				continue
			}
			if m.Vertex(v).Edge == mesh.NilEdge {
				mb.VertRemove(v)
				if err := m.VertKill(v, log); err != nil {
					return false, err
				}
				chain[v] = types.NilVertex
			}
		}
	}

	// step 12
	if m.VertexAlive(vConn) {
		log.VertModified(vConn)
		newCo := m.Vertex(vConn).Co.Midpoint(m.Vertex(vDel).Co)
		newNo := m.Vertex(vConn).No.Add(m.Vertex(vDel).No).Normalize()
		m.SetVertexPosition(vConn, newCo)
		m.SetVertexNormal(vConn, newNo)

		m.MarkNeighborhoodDirty(vConn)
		if first := m.FirstEdge(vConn); first != mesh.NilEdge {
			ed := first
			for {
				m.MarkNeighborhoodDirty(m.OtherVert(ed, vConn))
				ed = m.EdgeDiskNext(ed, vConn)
				if ed == first {
					break
				}
			}
		}
		for _, f := range m.VertIncidentFaces(vConn) {
			if leaf := mb.FaceLeaf(f); leaf.IsValid() {
				mb.MarkLeafDirty(leaf, types.Redraw|types.UpdateBB|types.UpdateNormals|types.UpdateTris)
			}
		}
	}

	// step 13
	if m.Vertex(vDel).Edge == mesh.NilEdge {
		if err := m.VertKill(vDel, log); err != nil {
			return false, err
		}
	}
	chain[vDel] = vConn

	if cfg.debugCollapse != nil {
		cfg.debugCollapse(vConn, vDel)
	}
	return true, nil
}
