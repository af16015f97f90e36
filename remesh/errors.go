package remesh

import "errors"

var (
	// ErrNonManifoldCollapse indicates a popped collapse candidate's edge
	// was no longer manifold by the time it was processed.
	ErrNonManifoldCollapse = errors.New("remesh: collapse edge is not manifold")

	// ErrIncompatibleBoundary indicates a collapse was rejected because
	// its endpoints' boundary classes are not compatible (spec.md §4.4
	// step 3, §4.6 step 3).
	ErrIncompatibleBoundary = errors.New("remesh: incompatible boundary classes for collapse")

	// ErrSeamChainWouldBreak indicates a SEAM edge collapse was rejected
	// because one endpoint has no other SEAM edge (spec.md §4.6 step 3).
	ErrSeamChainWouldBreak = errors.New("remesh: collapse would truncate a seam chain")

	// ErrNonManifoldFan indicates a valence-cleanup or fan-triangulation
	// walk hit a non-manifold edge, a repeated vertex, or two loops living
	// on the same face, and aborted (spec.md §4.7).
	ErrNonManifoldFan = errors.New("remesh: vertex fan is not a simple manifold disk")
)
