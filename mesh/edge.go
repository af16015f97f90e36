package mesh

import (
	"github.com/polyforge/remesh/attrs"
	"github.com/polyforge/remesh/editlog"
)

// EdgeDiskNext returns the next edge in v's disk cycle after e (spec.md
// §9's "expose the disk cycle as a pair of functions first_edge(V) and
// next_edge(E, V)").
func (m *Mesh) EdgeDiskNext(e EdgeID, v VertexID) EdgeID {
	ed := &m.edges[e]
	if v == ed.V1 {
		return ed.V1Next
	}
	return ed.V2Next
}

// EdgeDiskPrev returns the previous edge in v's disk cycle before e.
func (m *Mesh) EdgeDiskPrev(e EdgeID, v VertexID) EdgeID {
	ed := &m.edges[e]
	if v == ed.V1 {
		return ed.V1Prev
	}
	return ed.V2Prev
}

// FirstEdge returns v's disk-cycle entry point, or NilEdge if isolated.
func (m *Mesh) FirstEdge(v VertexID) EdgeID { return m.verts[v].Edge }

func (m *Mesh) setDiskNext(e EdgeID, v VertexID, next EdgeID) {
	ed := &m.edges[e]
	if v == ed.V1 {
		ed.V1Next = next
	} else {
		ed.V2Next = next
	}
}

func (m *Mesh) setDiskPrev(e EdgeID, v VertexID, prev EdgeID) {
	ed := &m.edges[e]
	if v == ed.V1 {
		ed.V1Prev = prev
	} else {
		ed.V2Prev = prev
	}
}

// diskInsert splices e into v's disk cycle.
func (m *Mesh) diskInsert(v VertexID, e EdgeID) {
	vert := &m.verts[v]
	if vert.Edge == NilEdge {
		m.setDiskNext(e, v, e)
		m.setDiskPrev(e, v, e)
		vert.Edge = e
		return
	}
	first := vert.Edge
	last := m.EdgeDiskPrev(first, v)
	m.setDiskNext(last, v, e)
	m.setDiskPrev(e, v, last)
	m.setDiskNext(e, v, first)
	m.setDiskPrev(first, v, e)
}

// diskRemove splices e out of v's disk cycle.
func (m *Mesh) diskRemove(v VertexID, e EdgeID) {
	next := m.EdgeDiskNext(e, v)
	prev := m.EdgeDiskPrev(e, v)
	vert := &m.verts[v]
	if next == e {
		vert.Edge = NilEdge
		return
	}
	m.setDiskNext(prev, v, next)
	m.setDiskPrev(next, v, prev)
	if vert.Edge == e {
		vert.Edge = next
	}
}

// DiskDegree counts the edges in v's disk cycle by walking it once. This
// is the ground truth UpdateValence recomputes into the cached
// Vertex.Valence field.
func (m *Mesh) DiskDegree(v VertexID) int {
	first := m.verts[v].Edge
	if first == NilEdge {
		return 0
	}
	count := 0
	e := first
	for {
		count++
		e = m.EdgeDiskNext(e, v)
		if e == first {
			break
		}
	}
	return count
}

// FindEdge returns the edge between v1 and v2 if one exists.
func (m *Mesh) FindEdge(v1, v2 VertexID) (EdgeID, bool) {
	id, ok := m.edgeIndex[canonPair(v1, v2)]
	return id, ok
}

// EdgeGetOrCreate returns the existing edge between v1 and v2, or creates
// one (copying head flags from example if given) and logs an edge-added
// event (spec.md §4.1).
func (m *Mesh) EdgeGetOrCreate(v1, v2 VertexID, example *Edge, log editlog.Log) (EdgeID, error) {
	if id, ok := m.FindEdge(v1, v2); ok {
		return id, nil
	}

	var head HeadFlag
	if example != nil {
		head = example.Head
	}

	var id EdgeID
	e := Edge{
		alive:  true,
		V1:     v1,
		V2:     v2,
		Head:   head,
		Loop:   NilLoop,
		V1Next: NilEdge, V1Prev: NilEdge,
		V2Next: NilEdge, V2Prev: NilEdge,
	}
	if n := len(m.edgeFree); n > 0 {
		id = m.edgeFree[n-1]
		m.edgeFree = m.edgeFree[:n-1]
		m.edges[id] = e
	} else {
		id = EdgeID(len(m.edges))
		m.edges = append(m.edges, e)
	}

	m.diskInsert(v1, id)
	m.diskInsert(v2, id)
	m.edgeIndex[canonPair(v1, v2)] = id

	m.markNeighborhoodDirty(v1)
	m.markNeighborhoodDirty(v2)

	if log != nil {
		log.EdgeAdded(id)
	}
	if m.cfg.debugEdgeAdded != nil {
		m.cfg.debugEdgeAdded(id)
	}
	return id, nil
}

// EdgeKill unlinks e from both endpoints' disk cycles and frees it. e
// must be wire (no incident loop); callers remove incident faces first
// (spec.md §4.6 step 8: "Kill E (now a wire edge after step 7)").
func (m *Mesh) EdgeKill(e EdgeID, log editlog.Log) error {
	ed := &m.edges[e]
	if ed.Loop != NilLoop {
		return ErrNonManifoldEdge
	}

	if log != nil {
		log.EdgeRemoved(e)
	}

	delete(m.edgeIndex, canonPair(ed.V1, ed.V2))
	m.diskRemove(ed.V1, e)
	m.diskRemove(ed.V2, e)
	m.cfg.store.Free(ed.Attr)

	m.markNeighborhoodDirty(ed.V1)
	m.markNeighborhoodDirty(ed.V2)

	ed.alive = false
	m.edgeFree = append(m.edgeFree, e)
	return nil
}

// SetEdgeAttr frees e's current attribute block and replaces it with
// newBlock. Used by collapse step 9 to swap per-edge attribute blocks
// (crease/seam data) from a killed face's edge onto its replacement
// (spec.md §4.6).
func (m *Mesh) SetEdgeAttr(e EdgeID, newBlock attrs.BlockID) {
	m.cfg.store.Free(m.edges[e].Attr)
	m.edges[e].Attr = newBlock
}

// OrEdgeHead ORs flags into e's head-flag bits. Used by collapse step 7 to
// propagate a removed face's surviving edges' crease/seam/sharp marks onto
// each other before the face is killed (spec.md §4.6).
func (m *Mesh) OrEdgeHead(e EdgeID, flags HeadFlag) {
	m.edges[e].Head |= flags
}

// EdgeLength2 returns the squared length of e.
func (m *Mesh) EdgeLength2(e EdgeID) float64 {
	ed := &m.edges[e]
	return m.verts[ed.V1].Co.Dist2(m.verts[ed.V2].Co)
}

// OtherVert returns the endpoint of e that is not v.
func (m *Mesh) OtherVert(e EdgeID, v VertexID) VertexID {
	ed := &m.edges[e]
	if ed.V1 == v {
		return ed.V2
	}
	return ed.V1
}
