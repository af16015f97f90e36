package mesh

import (
	"github.com/polyforge/remesh/attrs"
	"github.com/polyforge/remesh/editlog"
)

func rotateCanonTri(a, b, c VertexID) [3]VertexID {
	switch {
	case a <= b && a <= c:
		return [3]VertexID{a, b, c}
	case b <= a && b <= c:
		return [3]VertexID{b, c, a}
	default:
		return [3]VertexID{c, a, b}
	}
}

// radialInsert splices loop l into edge e's radial cycle.
func (m *Mesh) radialInsert(e EdgeID, l LoopID) {
	ed := &m.edges[e]
	if ed.Loop == NilLoop {
		m.loops[l].RadialNext = l
		m.loops[l].RadialPrev = l
		ed.Loop = l
		return
	}
	first := ed.Loop
	last := m.loops[first].RadialPrev
	m.loops[last].RadialNext = l
	m.loops[l].RadialPrev = last
	m.loops[l].RadialNext = first
	m.loops[first].RadialPrev = l
}

// radialRemove splices loop l out of edge e's radial cycle.
func (m *Mesh) radialRemove(e EdgeID, l LoopID) {
	next := m.loops[l].RadialNext
	prev := m.loops[l].RadialPrev
	ed := &m.edges[e]
	if next == l {
		ed.Loop = NilLoop
		return
	}
	m.loops[prev].RadialNext = next
	m.loops[next].RadialPrev = prev
	if ed.Loop == l {
		ed.Loop = next
	}
}

// EdgeLoopPair returns e's two incident loops when e is manifold (exactly
// two incident loops), the fast path spec.md §4.1 names.
func (m *Mesh) EdgeLoopPair(e EdgeID) (l0, l1 LoopID, ok bool) {
	first := m.edges[e].Loop
	if first == NilLoop {
		return NilLoop, NilLoop, false
	}
	second := m.loops[first].RadialNext
	if second == first {
		return NilLoop, NilLoop, false // only one loop
	}
	if m.loops[second].RadialNext != first {
		return NilLoop, NilLoop, false // more than two loops
	}
	return first, second, true
}

// FaceExists reports whether a face with exactly this ordered vertex
// triple already exists (spec.md §8, P5).
func (m *Mesh) FaceExists(v [3]VertexID) (FaceID, bool) {
	id, ok := m.triIndex[rotateCanonTri(v[0], v[1], v[2])]
	return id, ok
}

// FaceExistsTriFromLoopVert checks whether replacing lNext's face's third
// corner with vOpp would duplicate an existing face, the fast path
// spec.md §4.6 step 9 uses during collapse: lNext is the loop *after* the
// corner being replaced, so the candidate triangle is
// (vOpp, lNext.Vert, lNext.Next.Vert). A face over the same three
// vertices in either winding counts as a duplicate.
func (m *Mesh) FaceExistsTriFromLoopVert(lNext LoopID, vOpp VertexID) (FaceID, bool) {
	lNextNext := m.loops[lNext].Next
	b, c := m.loops[lNext].Vert, m.loops[lNextNext].Vert
	if id, ok := m.FaceExists([3]VertexID{vOpp, b, c}); ok {
		return id, true
	}
	return m.FaceExists([3]VertexID{vOpp, c, b})
}

// OtherFaceAcrossEdge returns a face incident to e other than f, if one
// exists (spec.md §4.3's "radial-neighbour face").
func (m *Mesh) OtherFaceAcrossEdge(e EdgeID, f FaceID) (FaceID, bool) {
	first := m.edges[e].Loop
	if first == NilLoop {
		return NilFace, false
	}
	l := first
	for {
		if m.loops[l].Face != f {
			return m.loops[l].Face, true
		}
		l = m.loops[l].RadialNext
		if l == first {
			break
		}
	}
	return NilFace, false
}

// FaceEdges returns f's three incident edges in ring order.
func (m *Mesh) FaceEdges(f FaceID) [3]EdgeID {
	var edges [3]EdgeID
	l := m.faces[f].Loop
	for i := 0; i < 3; i++ {
		edges[i] = m.loops[l].Edge
		l = m.loops[l].Next
	}
	return edges
}

// FaceVerts returns f's three corner vertices in ring order.
func (m *Mesh) FaceVerts(f FaceID) [3]VertexID {
	var verts [3]VertexID
	l := m.faces[f].Loop
	for i := 0; i < 3; i++ {
		verts[i] = m.loops[l].Vert
		l = m.loops[l].Next
	}
	return verts
}

// FaceRingVerts returns every corner vertex of f in ring order, for
// n-gon faces transiently larger than a triangle (spec.md §4.5 phase 2,
// between Phase 1's midpoint insertion and this face's retriangulation).
func (m *Mesh) FaceRingVerts(f FaceID) []VertexID {
	n := m.faces[f].NumLoops
	verts := make([]VertexID, n)
	l := m.faces[f].Loop
	for i := 0; i < n; i++ {
		verts[i] = m.loops[l].Vert
		l = m.loops[l].Next
	}
	return verts
}

// FaceHasVertex reports whether f's current ring includes v.
func (m *Mesh) FaceHasVertex(f FaceID, v VertexID) bool {
	n := m.faces[f].NumLoops
	l := m.faces[f].Loop
	for i := 0; i < n; i++ {
		if m.loops[l].Vert == v {
			return true
		}
		l = m.loops[l].Next
	}
	return false
}

// FaceLoopAt returns the loop id at f's corner currently sitting at vertex
// v, or NilLoop if f has no such corner.
func (m *Mesh) FaceLoopAt(f FaceID, v VertexID) LoopID {
	n := m.faces[f].NumLoops
	l := m.faces[f].Loop
	for i := 0; i < n; i++ {
		if m.loops[l].Vert == v {
			return l
		}
		l = m.loops[l].Next
	}
	return NilLoop
}

// SetLoopAttr frees l's current attribute block and replaces it with
// newBlock. Used by customdata interpolation after a retriangulation
// (spec.md §4.5, §4.6) reassigns a loop's per-corner data.
func (m *Mesh) SetLoopAttr(l LoopID, newBlock attrs.BlockID) {
	m.cfg.store.Free(m.loops[l].Attr)
	m.loops[l].Attr = newBlock
}

// FaceCreate creates a triangle from v (in order), looking up or creating
// each edge as needed (or using eTri's entries when eTri is non-nil and
// an entry is valid), copying head flags and material from example when
// given (spec.md §4.1). Degenerate (collinear, or fewer than 3 distinct
// vertices) and exact-duplicate (spec.md §8, P5) triangles are rejected.
func (m *Mesh) FaceCreate(v [3]VertexID, eTri *[3]EdgeID, example *Face, log editlog.Log) (FaceID, error) {
	a, b, c := m.verts[v[0]].Co, m.verts[v[1]].Co, m.verts[v[2]].Co
	if isDegenerateTriangle(v[0], v[1], v[2], a, b, c, m.cfg.epsilon) {
		return NilFace, ErrDegenerateFace
	}
	if _, exists := m.FaceExists(v); exists {
		return NilFace, ErrDuplicateFace
	}
	var edges []EdgeID
	if eTri != nil {
		edges = eTri[:]
	}
	return m.faceCreateRing(v[:], edges, example, log)
}

// faceCreateRing is the general n-gon constructor FaceCreate and
// SplitFaceDiagonal both build on: it wires up verts[i]-verts[i+1 mod n]
// edges (reusing edgesIn[i] when valid), a ring of loops, and a face,
// without the triangle-specific degenerate/duplicate checks (those only
// make sense for n==3 and are the caller's job).
func (m *Mesh) faceCreateRing(verts []VertexID, edgesIn []EdgeID, example *Face, log editlog.Log) (FaceID, error) {
	n := len(verts)
	if n < 3 {
		return NilFace, ErrRingTooShort
	}

	var material int
	var head HeadFlag
	if example != nil {
		material = example.Material
		head = example.Head
	}

	edges := make([]EdgeID, n)
	for i := 0; i < n; i++ {
		if edgesIn != nil && i < len(edgesIn) && edgesIn[i].IsValid() {
			edges[i] = edgesIn[i]
			continue
		}
		va, vb := verts[i], verts[(i+1)%n]
		id, err := m.EdgeGetOrCreate(va, vb, nil, log)
		if err != nil {
			return NilFace, err
		}
		edges[i] = id
	}

	loopIDs := make([]LoopID, n)
	for i := 0; i < n; i++ {
		l := Loop{
			alive: true,
			Vert:  verts[i],
			Edge:  edges[i],
			Attr:  m.cfg.store.NullBlock(),
		}
		if k := len(m.loopFree); k > 0 {
			id := m.loopFree[k-1]
			m.loopFree = m.loopFree[:k-1]
			m.loops[id] = l
			loopIDs[i] = id
		} else {
			id := LoopID(len(m.loops))
			m.loops = append(m.loops, l)
			loopIDs[i] = id
		}
	}
	for i := 0; i < n; i++ {
		m.loops[loopIDs[i]].Next = loopIDs[(i+1)%n]
		m.loops[loopIDs[i]].Prev = loopIDs[(i-1+n)%n]
		m.loops[loopIDs[i]].Face = 0 // set below, once the face id is known
		m.radialInsert(edges[i], loopIDs[i])
	}

	f := Face{
		alive:    true,
		Loop:     loopIDs[0],
		NumLoops: n,
		Material: material,
		Head:     head,
		Attr:     m.cfg.store.NullBlock(),
	}
	var id FaceID
	if k := len(m.faceFree); k > 0 {
		id = m.faceFree[k-1]
		m.faceFree = m.faceFree[:k-1]
		m.faces[id] = f
	} else {
		id = FaceID(len(m.faces))
		m.faces = append(m.faces, f)
	}
	for _, lid := range loopIDs {
		m.loops[lid].Face = id
	}

	if n == 3 {
		m.triIndex[rotateCanonTri(verts[0], verts[1], verts[2])] = id
	}

	for _, v := range verts {
		m.markNeighborhoodDirty(v)
	}

	if log != nil {
		log.FaceAdded(id)
	}
	if m.cfg.debugFaceAdded != nil {
		m.cfg.debugFaceAdded(id)
	}
	return id, nil
}

// FaceKill unlinks every loop of f from its edge's radial cycle and
// frees the loops and the face.
func (m *Mesh) FaceKill(f FaceID, log editlog.Log) {
	face := &m.faces[f]
	first := face.Loop

	var verts [3]VertexID
	var loopIDs []LoopID
	l := first
	for i := 0; ; i++ {
		loop := &m.loops[l]
		if i < 3 {
			verts[i] = loop.Vert
		}
		loopIDs = append(loopIDs, l)
		next := loop.Next
		if next == first {
			break
		}
		l = next
	}

	if log != nil {
		log.FaceRemoved(f)
	}

	if face.NumLoops == 3 {
		delete(m.triIndex, rotateCanonTri(verts[0], verts[1], verts[2]))
	}

	for _, lid := range loopIDs {
		loop := &m.loops[lid]
		m.radialRemove(loop.Edge, lid)
		m.markNeighborhoodDirty(loop.Vert)
		m.cfg.store.Free(loop.Attr)
		loop.alive = false
		m.loopFree = append(m.loopFree, lid)
	}

	face.alive = false
	m.faceFree = append(m.faceFree, f)
}

// SplitFaceDiagonal cuts face f into two along a new edge between va and
// vb, both of which must already be corners of f's ring and not adjacent
// in it. This is the generic re-triangulation primitive C5's subdivide
// pass (spec.md §4.5 Phase 2) repeatedly applies to rings that grew past
// 3 vertices after earlier diagonal cuts within the same face, driving
// each side back down to a triangle one cut at a time.
func (m *Mesh) SplitFaceDiagonal(f FaceID, va, vb VertexID, log editlog.Log) (FaceID, FaceID, error) {
	face := m.faces[f]
	first := face.Loop

	var laID, lbID LoopID = NilLoop, NilLoop
	l := first
	for {
		if m.loops[l].Vert == va {
			laID = l
		}
		if m.loops[l].Vert == vb {
			lbID = l
		}
		l = m.loops[l].Next
		if l == first {
			break
		}
	}
	if laID == NilLoop || lbID == NilLoop || laID == lbID {
		return NilFace, NilFace, ErrLoopNotInFace
	}

	var side1Verts, side2Verts []VertexID
	var side1Edges, side2Edges []EdgeID

	l = laID
	for {
		side1Verts = append(side1Verts, m.loops[l].Vert)
		if l == lbID {
			break
		}
		side1Edges = append(side1Edges, m.loops[l].Edge)
		l = m.loops[l].Next
	}
	if len(side1Verts) < 3 {
		return NilFace, NilFace, ErrRingTooShort
	}

	l = lbID
	for {
		side2Verts = append(side2Verts, m.loops[l].Vert)
		if l == laID {
			break
		}
		side2Edges = append(side2Edges, m.loops[l].Edge)
		l = m.loops[l].Next
	}
	if len(side2Verts) < 3 {
		return NilFace, NilFace, ErrRingTooShort
	}

	diag, err := m.EdgeGetOrCreate(va, vb, nil, log)
	if err != nil {
		return NilFace, NilFace, err
	}
	side1Edges = append(side1Edges, diag)
	side2Edges = append(side2Edges, diag)

	m.FaceKill(f, log)

	f1, err := m.faceCreateRing(side1Verts, side1Edges, &face, log)
	if err != nil {
		return NilFace, NilFace, err
	}
	f2, err := m.faceCreateRing(side2Verts, side2Edges, &face, log)
	if err != nil {
		return NilFace, NilFace, err
	}
	return f1, f2, nil
}
