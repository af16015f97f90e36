// Package attrs defines the custom-attribute-storage collaborator
// described in spec.md §1 and §6: the core never reads or writes
// per-vertex masks, per-loop UVs, or per-face materials directly, it only
// calls a generic interpolate/copy/swap primitive against an opaque block
// identifier. The core's own side tables (mesh.Vertex.Attr,
// mesh.Loop.Attr, mesh.Edge.Attr, mesh.Face.Attr) hold nothing but a
// BlockID the host's Store resolves.
package attrs

// BlockID identifies one attribute block in a Store. Zero value BlockID(0)
// is a valid block (the store owns allocation); callers that need an
// explicit "no block" sentinel should check against their own store's
// NullBlock() instead of assuming a specific value.
type BlockID int64

// Store is the external custom-attribute collaborator. A Store is free to
// back multiple independent "layers" (vertex masks, loop UVs, face
// materials) behind a single BlockID space, or to hand out separate
// BlockID ranges per layer; the core treats every block opaquely.
type Store interface {
	// Interp writes into dst the weighted sum of the blocks named by
	// srcs, using the matching entry of weights. len(srcs) == len(weights).
	// Used for split-midpoint and collapse-survivor interpolation
	// (spec.md §4.5, §4.6).
	Interp(dst BlockID, srcs []BlockID, weights []float64)

	// Copy overwrites dst with a bitwise copy of src's block.
	Copy(src, dst BlockID)

	// Swap exchanges the contents of a and b's blocks without changing
	// their BlockID assignment. Used by collapse step 9 to preserve
	// crease/seam per-edge attribute data across a face rewrite
	// (spec.md §4.6).
	Swap(a, b BlockID)

	// Alloc reserves a new block, optionally seeded from an existing one
	// (pass NullBlock to get a zero-valued block).
	Alloc(copyFrom BlockID) BlockID

	// Free releases a block. The core calls this for every block
	// orphaned by a kill (killed vertex, killed face, killed loop).
	Free(id BlockID)

	// NullBlock returns the sentinel BlockID meaning "no attribute data".
	NullBlock() BlockID
}
