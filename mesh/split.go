package mesh

// SplitEdgeRaw splits edge e at parameter t along (V1->V2): it creates a
// new vertex at the interpolated position/normal, shrinks e down to the
// V1-new segment, creates a new edge for the new-V2 segment, and splices
// one new loop into the ring of every face incident to e so each grows by
// exactly one corner (spec.md §4.1, §4.5 phase 1). It implements the
// editlog.Splitter interface and performs no logging itself — callers
// needing the split recorded go through a Log's EdgeSplitDo instead.
func (m *Mesh) SplitEdgeRaw(e EdgeID, t float64) (VertexID, EdgeID, error) {
	ed := m.edges[e]
	v1, v2 := ed.V1, ed.V2

	// Snapshot e's incident loops before any topology changes: once e is
	// repointed below, a loop whose corner sits at v2 no longer belongs
	// to e's radial cycle, so a live walk wouldn't visit it reliably.
	var loops []LoopID
	if first := ed.Loop; first != NilLoop {
		l := first
		for {
			loops = append(loops, l)
			l = m.loops[l].RadialNext
			if l == first {
				break
			}
		}
	}

	co := m.verts[v1].Co.Lerp(m.verts[v2].Co, t)
	no := m.verts[v1].No.Lerp(m.verts[v2].No, t)
	nv := m.VertCreate(co, no, nil)

	// Shrink e to span v1-nv: detach it from v2's disk cycle, repoint it,
	// and re-register it under its new vertex pair.
	delete(m.edgeIndex, canonPair(v1, v2))
	m.diskRemove(v2, e)
	m.edges[e].V2 = nv
	m.diskInsert(nv, e)
	m.edgeIndex[canonPair(v1, nv)] = e

	enew, err := m.EdgeGetOrCreate(nv, v2, nil, nil)
	if err != nil {
		return NilVertex, NilEdge, err
	}

	for _, l := range loops {
		// Read everything allocLoop's possible slice growth would
		// otherwise invalidate before calling it; write back by index
		// afterward rather than holding a *Loop across the call.
		vert := m.loops[l].Vert
		faceID := m.loops[l].Face
		next := m.loops[l].Next

		if vert == v1 {
			// Ring order here is ...,l(v1,edge e),l.Next(v2),...; insert
			// the new corner after l, on the enew side.
			lmID := m.allocLoop(Loop{alive: true, Vert: nv, Edge: enew, Face: faceID, Next: next, Prev: l})
			m.loops[lmID].Attr = m.cfg.store.NullBlock()
			m.loops[l].Next = lmID
			m.loops[next].Prev = lmID
			m.radialInsert(enew, lmID)
		} else {
			// Ring order here is ...,l(v2,edge e),l.Next(v1),...; the new
			// corner goes after l, on the e side, and l's own edge — now
			// touching only v2 and nv — must be repointed from e to enew.
			lmID := m.allocLoop(Loop{alive: true, Vert: nv, Edge: e, Face: faceID, Next: next, Prev: l})
			m.loops[lmID].Attr = m.cfg.store.NullBlock()
			m.loops[l].Next = lmID
			m.loops[next].Prev = lmID

			m.radialRemove(e, l)
			m.loops[l].Edge = enew
			m.radialInsert(enew, l)
			m.radialInsert(e, lmID)
		}
		m.faces[faceID].NumLoops++
	}

	m.markNeighborhoodDirty(v1)
	m.markNeighborhoodDirty(v2)
	m.markNeighborhoodDirty(nv)

	return nv, enew, nil
}

// allocLoop inserts l into the loop slice, recycling a free slot if one
// exists, and returns its id.
func (m *Mesh) allocLoop(l Loop) LoopID {
	if k := len(m.loopFree); k > 0 {
		id := m.loopFree[k-1]
		m.loopFree = m.loopFree[:k-1]
		m.loops[id] = l
		return id
	}
	id := LoopID(len(m.loops))
	m.loops = append(m.loops, l)
	return id
}
