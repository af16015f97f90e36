package mesh

import (
	"github.com/polyforge/remesh/editlog"
	"github.com/polyforge/remesh/types"
)

// dirtyNeighborhoodMask is the set of flags spec.md §4.2 requires on
// every vertex whose disk or radial structure changed.
const dirtyNeighborhoodMask = types.NeedsValence | types.NeedsBoundary | types.NeedsDiskSort

// markNeighborhoodDirty sets NEEDS_VALENCE | NEEDS_BOUNDARY |
// NEEDS_DISK_SORT on v, per spec.md §4.2.
func (m *Mesh) markNeighborhoodDirty(v VertexID) {
	m.verts[v].Flags |= dirtyNeighborhoodMask
}

// MarkNeighborhoodDirty is markNeighborhoodDirty, exported for higher-level
// passes (collapse, cleanup) that touch a vertex's neighbourhood through
// operations with no primitive of their own to do this internally.
func (m *Mesh) MarkNeighborhoodDirty(v VertexID) { m.markNeighborhoodDirty(v) }

// ClearValenceScratch clears the VALENCE_SCRATCH bit on v (spec.md §4.9
// step 4, run once per driver call before C7).
func (m *Mesh) ClearValenceScratch(v VertexID) {
	m.verts[v].Flags &^= types.ValenceScratch
}

// VertCreate allocates a new vertex with the given position and normal.
// Original-data (OrigCo/OrigNo/OrigMask) is initialized from the same
// values and StrokeID left at zero so the first CheckOrigdata call for
// any real stroke id will snapshot it. The vertex starts fully dirty
// (NEEDS_VALENCE | NEEDS_BOUNDARY | NEEDS_DISK_SORT) since it has no
// topology yet to be consistent about.
func (m *Mesh) VertCreate(co, no Vec3, log editlog.Log) VertexID {
	v := Vertex{
		alive:  true,
		Co:     co,
		No:     no,
		Attr:   m.cfg.store.NullBlock(),
		Edge:   NilEdge,
		Flags:  dirtyNeighborhoodMask,
		OrigCo: co,
		OrigNo: no,
	}

	var id VertexID
	if n := len(m.vertFree); n > 0 {
		id = m.vertFree[n-1]
		m.vertFree = m.vertFree[:n-1]
		m.verts[id] = v
	} else {
		id = VertexID(len(m.verts))
		m.verts = append(m.verts, v)
	}

	if log != nil {
		log.VertAdded(id)
	}
	if m.cfg.debugVertAdded != nil {
		m.cfg.debugVertAdded(id)
	}
	return id
}

// VertKill frees v. v must be isolated (no incident edges); callers kill
// incident edges/faces first.
func (m *Mesh) VertKill(v VertexID, log editlog.Log) error {
	vert := &m.verts[v]
	if vert.Edge != NilEdge {
		return ErrNonManifoldEdge
	}

	if log != nil {
		log.VertRemoved(v)
	}

	m.cfg.store.Free(vert.Attr)
	vert.alive = false
	m.vertFree = append(m.vertFree, v)
	return nil
}

// VertModify logs a before-modify event (without touching origdata, per
// spec.md §4.6 step 12's "the host wants original coordinates
// preserved") and applies fn to the vertex in place.
func (m *Mesh) VertModify(v VertexID, log editlog.Log, fn func(*Vertex)) {
	if log != nil {
		log.VertModified(v)
	}
	fn(&m.verts[v])
}

// CheckOrigdata snapshots origco/origno/origmask if v's stroke id doesn't
// match strokeID yet (spec.md §4.2). mask is the host's current mask
// value for v (the core never interprets mask data itself, it only
// stores the snapshot the host's undo system asked for).
func (m *Mesh) CheckOrigdata(v VertexID, strokeID int64, mask float64) {
	vert := &m.verts[v]
	if vert.StrokeID == strokeID {
		return
	}
	vert.OrigCo = vert.Co
	vert.OrigNo = vert.No
	vert.OrigMask = mask
	vert.StrokeID = strokeID
}

// UpdateValence recounts v's incident edges and clears NEEDS_VALENCE
// (spec.md §4.2).
func (m *Mesh) UpdateValence(v VertexID) int {
	n := m.DiskDegree(v)
	vert := &m.verts[v]
	vert.Valence = n
	vert.Flags &^= types.NeedsValence
	return n
}

// Valence returns the cached valence, recomputing first if stale.
func (m *Mesh) Valence(v VertexID) int {
	vert := &m.verts[v]
	if vert.Flags.Has(types.NeedsValence) {
		return m.UpdateValence(v)
	}
	return vert.Valence
}

// CheckVertBoundary recomputes the boundary/corner classification bits
// from v's current disk cycle if NEEDS_BOUNDARY is set, then clears the
// flag (spec.md §4.2).
//
// Classification: a manifold interior edge has exactly two incident
// loops; an edge with exactly one incident loop is a mesh boundary edge.
// A vertex with exactly two boundary edges in its disk cycle is a simple
// BOUNDARY vertex; one with any other non-zero count (exactly 1, or more
// than 2) is a CORNER instead, where two boundary chains meet or a chain
// dead-ends, and does not also get the BOUNDARY bit. SEAM_BOUNDARY/SEAM_CORNER use the edge's
// FlagSeam head bit in the same way, independently of mesh-boundary
// status, matching spec.md §3's derived-set split between BOUNDARY kinds.
func (m *Mesh) CheckVertBoundary(v VertexID) {
	vert := &m.verts[v]
	if !vert.Flags.Has(types.NeedsBoundary) {
		return
	}

	first := vert.Edge
	meshBoundaryCount := 0
	seamCount := 0
	sharpCount := 0
	total := 0

	if first != NilEdge {
		e := first
		for {
			total++
			loopCount := m.edgeLoopCount(e)
			if loopCount <= 1 {
				meshBoundaryCount++
			}
			ed := &m.edges[e]
			if ed.Head.Has(types.FlagSeam) {
				seamCount++
			}
			if ed.Head.Has(types.FlagSharp) {
				sharpCount++
			}
			e = m.EdgeDiskNext(e, v)
			if e == first {
				break
			}
		}
	}

	var flags types.VertFlag
	switch {
	case meshBoundaryCount == 2:
		flags |= types.Boundary
	case meshBoundaryCount > 0:
		flags |= types.Corner
	}
	switch {
	case sharpCount == 2:
		flags |= types.SharpBoundary
	case sharpCount > 0:
		flags |= types.SharpCorner
	}
	switch {
	case seamCount == 2:
		flags |= types.SeamBoundary
	case seamCount > 0:
		flags |= types.SeamCorner
	}

	vert.Flags = (vert.Flags &^ (types.AllBoundaryMask | types.AllCornerMask | types.FSetBoundary | types.FSetCorner)) | flags
	vert.Flags &^= types.NeedsBoundary
}

// VertIncidentFaces returns every face with a corner at v, each listed
// once. Used by the nodes package to re-evaluate leaf ownership when a
// vertex's topology changes (spec.md §4.3).
func (m *Mesh) VertIncidentFaces(v VertexID) []FaceID {
	first := m.verts[v].Edge
	if first == NilEdge {
		return nil
	}

	var faces []FaceID
	seen := make(map[FaceID]bool)
	e := first
	for {
		ed := &m.edges[e]
		if ed.Loop != NilLoop {
			l := ed.Loop
			for {
				if m.loops[l].Vert == v && !seen[m.loops[l].Face] {
					seen[m.loops[l].Face] = true
					faces = append(faces, m.loops[l].Face)
				}
				l = m.loops[l].RadialNext
				if l == ed.Loop {
					break
				}
			}
		}
		e = m.EdgeDiskNext(e, v)
		if e == first {
			break
		}
	}
	return faces
}

// edgeLoopCount counts the loops in e's radial cycle.
func (m *Mesh) edgeLoopCount(e EdgeID) int {
	first := m.edges[e].Loop
	if first == NilLoop {
		return 0
	}
	count := 0
	l := first
	for {
		count++
		l = m.loops[l].RadialNext
		if l == first {
			break
		}
	}
	return count
}
