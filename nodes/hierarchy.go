// Package nodes implements the spatial-hierarchy collaborator boundary
// described in spec.md §1 and §4.3 (C3 node membership): the core never
// builds or queries the hierarchy's tree structure itself, it only needs
// to know which leaf owns a face or vertex, and to ask the hierarchy to
// place a new face or split an overgrown leaf.
//
// Hierarchy is the narrow interface a host's real spatial structure
// implements; GridHierarchy is a reference implementation grounded on
// spatial/hashgrid.go's uniform-cell bucket design, generalized from a
// flat vertex index to 3D leaves that also own faces and a face-count
// limit.
package nodes

import "github.com/polyforge/remesh/types"

// LeafID indexes a leaf in a host's spatial hierarchy.
type LeafID int32

// NoLeaf is the "unowned" sentinel spec.md §3 calls NO_LEAF.
const NoLeaf LeafID = -1

// IsValid reports whether l is a real leaf index.
func (l LeafID) IsValid() bool { return l >= 0 }

// Hierarchy is the spatial-hierarchy collaborator (spec.md §6): the core
// asks it where a face belongs and when a leaf needs splitting, and reads
// a few leaf properties back, but never walks or rebuilds its tree.
type Hierarchy interface {
	// InsertFace decides which leaf F belongs in (e.g. by bounding-box
	// containment) and returns it, without yet committing the face to
	// that leaf's structures.
	InsertFace(f types.FaceID) LeafID
	// InsertFaceFinalize commits F to leaf's structures after the caller
	// has updated its own membership side-tables.
	InsertFaceFinalize(f types.FaceID, leaf LeafID)
	// NodeLimitEnsure splits leaf if its face count exceeds its limit.
	NodeLimitEnsure(leaf LeafID)
	// CheckTris validates leaf's face residency (a debug/integrity hook;
	// a host with no such check can make this a no-op).
	CheckTris(leaf LeafID)

	// LeafBounds returns leaf's axis-aligned bounding box.
	LeafBounds(leaf LeafID) (min, max types.Vec3)
	// FaceLimit returns the face count at which leaf should split.
	FaceLimit(leaf LeafID) int
	// FaceCount returns leaf's current owned-face count.
	FaceCount(leaf LeafID) int
	// MarkDirty ORs flags into leaf's dirty-flag set.
	MarkDirty(leaf LeafID, flags types.DirtyFlag)
}
