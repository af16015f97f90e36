package remesh

import (
	"github.com/polyforge/remesh/attrs"
	"github.com/polyforge/remesh/editlog"
	"github.com/polyforge/remesh/mesh"
	"github.com/polyforge/remesh/nodes"
	"github.com/polyforge/remesh/types"
)

// cleanupPass rebuilds every valence-3 or valence-4 vertex in watchlist
// still within radius*1.25 of center into a single fan of 1 or 2 triangles
// (spec.md §4.7). changed reports whether anything was rebuilt. A vertex
// whose fan can't be read as a single manifold ring (ErrNonManifoldFan) is
// skipped, not fatal to the pass.
func cleanupPass(m *mesh.Mesh, mb *nodes.Membership, log editlog.Log, cfg config, watchlist []types.VertexID, center types.Vec3, radius float64) (bool, error) {
	limit2 := (radius * 1.25) * (radius * 1.25)

	seen := make(map[types.VertexID]bool, len(watchlist))
	changed := false
	for _, v := range watchlist {
		if seen[v] {
			continue
		}
		seen[v] = true

		if !m.VertexAlive(v) {
			continue
		}
		if m.Vertex(v).Co.Dist2(center) > limit2 {
			continue
		}
		if m.Vertex(v).Edge == mesh.NilEdge {
			continue
		}

		if err := ensureTriangulatedVertex(m, mb, log, cfg, v); err != nil {
			return changed, err
		}
		m.CheckVertBoundary(v)
		if flags := m.Vertex(v).Flags; flags.IsBoundary() || flags.IsCorner() {
			continue
		}

		valence := m.Valence(v)
		if valence != 3 && valence != 4 {
			continue
		}

		if err := rebuildFan(m, mb, log, v, valence); err != nil {
			if err == ErrNonManifoldFan {
				continue
			}
			return changed, err
		}
		changed = true
	}
	return changed, nil
}

// buildFanNeighbors walks v's disk cycle and, for each consecutive pair of
// disk edges, identifies the triangle shared between them. It returns the
// neighbour vertex reached at each step and the opposing loop at that
// corner (for attribute preservation), in ring order. A repeated vertex, a
// repeated face, or a consecutive pair that shares no single triangle all
// indicate v's fan isn't the simple closed ring rebuildFan requires.
func buildFanNeighbors(m *mesh.Mesh, v types.VertexID, valence int) ([]types.VertexID, []types.LoopID, error) {
	first := m.FirstEdge(v)
	if first == mesh.NilEdge {
		return nil, nil, ErrNonManifoldFan
	}

	neighbors := make([]types.VertexID, 0, valence)
	oppLoops := make([]types.LoopID, 0, valence)
	seenVerts := make(map[types.VertexID]bool, valence)
	seenFaces := make(map[types.FaceID]bool, valence)

	e := first
	for i := 0; i < valence; i++ {
		next := m.EdgeDiskNext(e, v)

		f, ok := sharedTriangle(m, v, e, next)
		if !ok || seenFaces[f] {
			return nil, nil, ErrNonManifoldFan
		}
		seenFaces[f] = true

		n := m.OtherVert(e, v)
		if seenVerts[n] {
			return nil, nil, ErrNonManifoldFan
		}
		seenVerts[n] = true

		lOpp := oppositeLoop(m, f, v, n)
		if lOpp == mesh.NilLoop {
			return nil, nil, ErrNonManifoldFan
		}

		neighbors = append(neighbors, n)
		oppLoops = append(oppLoops, lOpp)

		e = next
	}
	if e != first {
		return nil, nil, ErrNonManifoldFan
	}
	return neighbors, oppLoops, nil
}

// sharedTriangle finds the face incident to both e1 and e2 (both required
// incident to v), if exactly one exists.
func sharedTriangle(m *mesh.Mesh, v types.VertexID, e1, e2 types.EdgeID) (types.FaceID, bool) {
	f1 := edgeIncidentFaces(m, e1)
	f2 := edgeIncidentFaces(m, e2)
	var found types.FaceID
	count := 0
	for _, a := range f1 {
		for _, b := range f2 {
			if a == b {
				found = a
				count++
			}
		}
	}
	if count != 1 {
		return types.NilFace, false
	}
	return found, true
}

// oppositeLoop returns the loop of f sitting at neighbor n, the corner
// whose attribute block is preserved when the triangle between v and n is
// torn down.
func oppositeLoop(m *mesh.Mesh, f types.FaceID, v, n types.VertexID) types.LoopID {
	return m.FaceLoopAt(f, n)
}

// rebuildFan tears down every triangle around v and replaces them with a
// single triangle (valence 3) or two triangles split along the
// lower-bend-angle diagonal (valence 4), per spec.md §4.7 S2/S3.
func rebuildFan(m *mesh.Mesh, mb *nodes.Membership, log editlog.Log, v types.VertexID, valence int) error {
	neighbors, oppLoops, err := buildFanNeighbors(m, v, valence)
	if err != nil {
		return err
	}

	incidentFaces := m.VertIncidentFaces(v)
	owner := nodes.NoLeaf
	if len(incidentFaces) > 0 {
		owner = mb.FaceLeaf(incidentFaces[0])
	}

	store := m.Store()
	preserved := make([]attrs.BlockID, len(oppLoops))
	for i, l := range oppLoops {
		b := store.Alloc(store.NullBlock())
		store.Copy(m.Loop(l).Attr, b)
		preserved[i] = b
	}
	defer func() {
		for _, b := range preserved {
			store.Free(b)
		}
	}()

	var diskEdges []types.EdgeID
	if first := m.FirstEdge(v); first != mesh.NilEdge {
		e := first
		for {
			diskEdges = append(diskEdges, e)
			e = m.EdgeDiskNext(e, v)
			if e == first {
				break
			}
		}
	}

	for _, f := range incidentFaces {
		mb.FaceRemove(m, f, log, false, false)
		m.FaceKill(f, log)
	}
	for _, e := range diskEdges {
		if m.Edge(e).Loop == mesh.NilLoop {
			if err := m.EdgeKill(e, log); err != nil {
				return err
			}
		}
	}

	var newFaces []types.FaceID
	var srcBlocks [][]attrs.BlockID

	switch valence {
	case 3:
		f, err := m.FaceCreate([3]types.VertexID{neighbors[0], neighbors[1], neighbors[2]}, nil, nil, log)
		if err != nil {
			return err
		}
		newFaces = append(newFaces, f)
		srcBlocks = append(srcBlocks, preserved)
	case 4:
		a, b, c, d := neighbors[0], neighbors[1], neighbors[2], neighbors[3]
		pa, pb, pc, pd := m.Vertex(a).Co, m.Vertex(b).Co, m.Vertex(c).Co, m.Vertex(d).Co

		nAC1 := types.TriangleNormal(pa, pb, pc)
		nAC2 := types.TriangleNormal(pa, pc, pd)
		nBD1 := types.TriangleNormal(pb, pc, pd)
		nBD2 := types.TriangleNormal(pb, pd, pa)
		dotAC := nAC1.Normalize().Dot(nAC2.Normalize())
		dotBD := nBD1.Normalize().Dot(nBD2.Normalize())

		if dotAC >= dotBD {
			f1, err := m.FaceCreate([3]types.VertexID{a, b, c}, nil, nil, log)
			if err != nil {
				return err
			}
			f2, err := m.FaceCreate([3]types.VertexID{a, c, d}, nil, nil, log)
			if err != nil {
				return err
			}
			newFaces = append(newFaces, f1, f2)
			srcBlocks = append(srcBlocks, []attrs.BlockID{preserved[0], preserved[1], preserved[2]})
			srcBlocks = append(srcBlocks, []attrs.BlockID{preserved[0], preserved[2], preserved[3]})
		} else {
			f1, err := m.FaceCreate([3]types.VertexID{b, c, d}, nil, nil, log)
			if err != nil {
				return err
			}
			f2, err := m.FaceCreate([3]types.VertexID{b, d, a}, nil, nil, log)
			if err != nil {
				return err
			}
			newFaces = append(newFaces, f1, f2)
			srcBlocks = append(srcBlocks, []attrs.BlockID{preserved[1], preserved[2], preserved[3]})
			srcBlocks = append(srcBlocks, []attrs.BlockID{preserved[1], preserved[3], preserved[0]})
		}
	}

	for i, f := range newFaces {
		if owner.IsValid() {
			mb.FaceAssign(f, owner)
		} else {
			mb.FaceAdd(m, f, log, false)
		}
		copyFanAttrs(m, f, srcBlocks[i])
		for _, w := range m.FaceVerts(f) {
			m.MarkNeighborhoodDirty(w)
		}
	}

	if err := m.VertKill(v, log); err != nil {
		return err
	}
	return nil
}

// copyFanAttrs writes each of src's blocks into f's loops positionally
// (src[i] is the corner's preserved content, looked up by matching vertex
// rather than assuming loop order matches src order).
func copyFanAttrs(m *mesh.Mesh, f types.FaceID, src []attrs.BlockID) {
	store := m.Store()
	verts := m.FaceVerts(f)
	for i, v := range verts {
		if i >= len(src) {
			continue
		}
		l := m.FaceLoopAt(f, v)
		if l == mesh.NilLoop {
			continue
		}
		block := store.Alloc(store.NullBlock())
		store.Copy(src[i], block)
		m.SetLoopAttr(l, block)
	}
}
