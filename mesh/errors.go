package mesh

import "errors"

var (
	// ErrInvalidVertexID indicates a vertex ID is out of range or dead.
	ErrInvalidVertexID = errors.New("mesh: invalid vertex id")

	// ErrInvalidEdgeID indicates an edge ID is out of range or dead.
	ErrInvalidEdgeID = errors.New("mesh: invalid edge id")

	// ErrInvalidFaceID indicates a face ID is out of range or dead.
	ErrInvalidFaceID = errors.New("mesh: invalid face id")

	// ErrDegenerateFace indicates a face's vertices are (near) collinear
	// or fewer than 3 distinct vertices remain after a rewrite
	// (spec.md §7).
	ErrDegenerateFace = errors.New("mesh: degenerate face")

	// ErrDuplicateFace indicates a face with the same ordered vertex
	// triple already exists (spec.md §8, P5).
	ErrDuplicateFace = errors.New("mesh: duplicate face")

	// ErrNonManifoldEdge indicates a kill was refused because the entity
	// is still in use: EdgeKill on an edge that still has incident loops,
	// or VertKill on a vertex that still has incident edges.
	ErrNonManifoldEdge = errors.New("mesh: edge is not manifold (loop count != 2)")

	// ErrLoopNotInFace indicates a loop passed to a face-local operation
	// does not belong to the face being operated on.
	ErrLoopNotInFace = errors.New("mesh: loop does not belong to face")

	// ErrRingTooShort indicates a face-split diagonal was requested on a
	// face with fewer than 4 loops (nothing to split).
	ErrRingTooShort = errors.New("mesh: face ring too short to split")
)
