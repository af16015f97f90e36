package nodes

import (
	"github.com/polyforge/remesh/editlog"
	"github.com/polyforge/remesh/mesh"
	"github.com/polyforge/remesh/types"
)

// Membership is the two side-tables spec.md §3/§4.3 describe: a unique
// owning leaf per vertex, and an owning leaf per face, plus each leaf's
// reverse sets (so removal and the REBUILD_NODE_VERTS fallback don't need
// a linear scan).
type Membership struct {
	h Hierarchy

	vertLeaf map[types.VertexID]LeafID
	faceLeaf map[types.FaceID]LeafID

	leafVerts map[LeafID]map[types.VertexID]struct{}
	leafFaces map[LeafID]map[types.FaceID]struct{}
}

// NewMembership creates an empty membership table backed by h.
func NewMembership(h Hierarchy) *Membership {
	return &Membership{
		h:         h,
		vertLeaf:  make(map[types.VertexID]LeafID),
		faceLeaf:  make(map[types.FaceID]LeafID),
		leafVerts: make(map[LeafID]map[types.VertexID]struct{}),
		leafFaces: make(map[LeafID]map[types.FaceID]struct{}),
	}
}

// VertLeaf returns v's current owner, or NoLeaf.
func (mb *Membership) VertLeaf(v types.VertexID) LeafID {
	if leaf, ok := mb.vertLeaf[v]; ok {
		return leaf
	}
	return NoLeaf
}

// FaceLeaf returns f's current owner, or NoLeaf.
func (mb *Membership) FaceLeaf(f types.FaceID) LeafID {
	if leaf, ok := mb.faceLeaf[f]; ok {
		return leaf
	}
	return NoLeaf
}

func (mb *Membership) addVertToLeaf(leaf LeafID, v types.VertexID) {
	set, ok := mb.leafVerts[leaf]
	if !ok {
		set = make(map[types.VertexID]struct{})
		mb.leafVerts[leaf] = set
	}
	set[v] = struct{}{}
	mb.vertLeaf[v] = leaf
}

func (mb *Membership) removeVertFromLeaf(leaf LeafID, v types.VertexID) {
	delete(mb.leafVerts[leaf], v)
	delete(mb.vertLeaf, v)
}

func (mb *Membership) addFaceToLeaf(leaf LeafID, f types.FaceID) {
	set, ok := mb.leafFaces[leaf]
	if !ok {
		set = make(map[types.FaceID]struct{})
		mb.leafFaces[leaf] = set
	}
	set[f] = struct{}{}
	mb.faceLeaf[f] = leaf
}

func (mb *Membership) removeFaceFromLeaf(leaf LeafID, f types.FaceID) {
	delete(mb.leafFaces[leaf], f)
	delete(mb.faceLeaf, f)
}

// Leaves returns every leaf that currently owns at least one face, in no
// particular order. Used by the queue package's per-leaf parallel scan.
func (mb *Membership) Leaves() []LeafID {
	leaves := make([]LeafID, 0, len(mb.leafFaces))
	for leaf, set := range mb.leafFaces {
		if len(set) == 0 {
			continue
		}
		leaves = append(leaves, leaf)
	}
	return leaves
}

// FacesInLeaf returns a snapshot of the faces leaf currently owns.
func (mb *Membership) FacesInLeaf(leaf LeafID) []types.FaceID {
	set := mb.leafFaces[leaf]
	faces := make([]types.FaceID, 0, len(set))
	for f := range set {
		faces = append(faces, f)
	}
	return faces
}

// VertOtherLeafFind returns a leaf other than exclude that owns some face
// incident to v, or NoLeaf if none exists (spec.md §4.3).
func (mb *Membership) VertOtherLeafFind(msh *mesh.Mesh, v types.VertexID, exclude LeafID) LeafID {
	for _, f := range msh.VertIncidentFaces(v) {
		if leaf := mb.FaceLeaf(f); leaf.IsValid() && leaf != exclude {
			return leaf
		}
	}
	return NoLeaf
}

// VertOwnershipTransfer removes v from its current owner (if any) and
// inserts it into newLeaf, marking both leaves dirty (spec.md §4.3).
func (mb *Membership) VertOwnershipTransfer(v types.VertexID, newLeaf LeafID) {
	old := mb.VertLeaf(v)
	if old.IsValid() {
		mb.removeVertFromLeaf(old, v)
		mb.h.MarkDirty(old, types.UpdateOtherVerts)
	}
	mb.addVertToLeaf(newLeaf, v)
	mb.h.MarkDirty(newLeaf, types.UpdateOtherVerts)
}

// VertRemove drops v's ownership entirely, leaving it unowned.
func (mb *Membership) VertRemove(v types.VertexID) {
	leaf := mb.VertLeaf(v)
	if !leaf.IsValid() {
		return
	}
	mb.removeVertFromLeaf(leaf, v)
	mb.h.MarkDirty(leaf, types.UpdateOtherVerts)
}

// FaceRemove removes f from its owning leaf. When checkVerts is set, each
// corner vertex that would otherwise lose its only face in that leaf is
// either transferred to another leaf owning an incident face, or — when
// ensureTransfer is set and no such leaf exists — stripped of ownership
// entirely with the leaf marked REBUILD_NODE_VERTS (spec.md §4.3).
func (mb *Membership) FaceRemove(msh *mesh.Mesh, f types.FaceID, log editlog.Log, checkVerts, ensureTransfer bool) {
	leaf := mb.FaceLeaf(f)
	if !leaf.IsValid() {
		return
	}
	mb.removeFaceFromLeaf(leaf, f)

	if !checkVerts {
		return
	}

	for _, w := range msh.FaceVerts(f) {
		if !mb.ownsAnotherFaceIncidentTo(msh, leaf, w, f) {
			if other := mb.VertOtherLeafFind(msh, w, leaf); other.IsValid() {
				mb.VertOwnershipTransfer(w, other)
			} else if ensureTransfer {
				mb.VertRemove(w)
				mb.h.MarkDirty(leaf, types.RebuildNodeVerts)
			}
		}
	}
}

// ownsAnotherFaceIncidentTo reports whether leaf still owns a face
// incident to v, other than except.
func (mb *Membership) ownsAnotherFaceIncidentTo(msh *mesh.Mesh, leaf LeafID, v types.VertexID, except types.FaceID) bool {
	for _, f := range msh.VertIncidentFaces(v) {
		if f == except {
			continue
		}
		if mb.FaceLeaf(f) == leaf {
			return true
		}
	}
	return false
}

// FaceAdd assigns f a leaf and commits it. Unless forceTreeWalk is set,
// it first tries to adopt the leaf of a radial-neighbour face across one
// of f's three edges; only when no neighbour is owned (or forceTreeWalk
// is set) does it ask the Hierarchy to place f from scratch (spec.md
// §4.3). Any corner vertex of f that has no owner yet is adopted by the
// same leaf.
func (mb *Membership) FaceAdd(msh *mesh.Mesh, f types.FaceID, log editlog.Log, forceTreeWalk bool) LeafID {
	leaf := NoLeaf
	if !forceTreeWalk {
		for _, e := range msh.FaceEdges(f) {
			other, ok := msh.OtherFaceAcrossEdge(e, f)
			if !ok {
				continue
			}
			if l := mb.FaceLeaf(other); l.IsValid() {
				leaf = l
				mb.addFaceToLeaf(leaf, f)
				break
			}
		}
	}

	if !leaf.IsValid() {
		leaf = mb.h.InsertFace(f)
		mb.addFaceToLeaf(leaf, f)
		mb.h.InsertFaceFinalize(f, leaf)
	}
	for _, v := range msh.FaceVerts(f) {
		if leaf.IsValid() && !mb.VertLeaf(v).IsValid() {
			mb.addVertToLeaf(leaf, v)
		}
	}
	return leaf
}

// FaceAssign directly commits f to leaf, bypassing Hierarchy placement —
// for callers that already know the correct owner, e.g. a new face that
// inherits its parent's leaf after a split or valence-cleanup rebuild
// (spec.md §4.5, §4.6, §4.7). A NoLeaf leaf is a no-op: the caller should
// fall back to FaceAdd in that case so the face still gets placed.
func (mb *Membership) FaceAssign(f types.FaceID, leaf LeafID) {
	if !leaf.IsValid() {
		return
	}
	mb.addFaceToLeaf(leaf, f)
}

// MarkLeafDirty ORs flags into leaf's dirty-flag set via the underlying
// Hierarchy, for callers (collapse step 12, the driver's leaf-split pass)
// that only hold a LeafID and don't otherwise touch the Hierarchy directly.
func (mb *Membership) MarkLeafDirty(leaf LeafID, flags types.DirtyFlag) {
	if !leaf.IsValid() {
		return
	}
	mb.h.MarkDirty(leaf, flags)
}

// Hierarchy returns the spatial-hierarchy collaborator this membership
// table is backed by, for driver code that needs to ask for leaf splits
// directly (spec.md §4.9 step 6).
func (mb *Membership) Hierarchy() Hierarchy { return mb.h }

// VertCreateInLeaf creates a new vertex owned by leaf, seeding its
// original-data mask snapshot from maskOffset (spec.md §4.3). example, if
// non-nil, supplies the head flags to copy.
func (mb *Membership) VertCreateInLeaf(msh *mesh.Mesh, leaf LeafID, co, no types.Vec3, example *mesh.Vertex, maskOffset float64, log editlog.Log) types.VertexID {
	v := msh.VertCreate(co, no, log)
	msh.VertModify(v, nil, func(vert *mesh.Vertex) {
		if example != nil {
			vert.Head = example.Head
		}
		vert.OrigMask = maskOffset
	})
	mb.addVertToLeaf(leaf, v)
	return v
}
