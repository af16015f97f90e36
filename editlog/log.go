// Package editlog defines the undo/redo log collaborator described in
// spec.md §1: the core never persists anything itself, it only emits
// vertex/edge/face added/modified/removed events — plus one atomic,
// log-aware primitive for edge splitting — to whatever Log the host
// supplies. A linear replay of the emitted events in reverse must
// reproduce the mesh state that existed before the call (spec.md §8, P7).
package editlog

import "github.com/polyforge/remesh/types"

// Splitter is the minimal mesh surface the atomic split primitive needs:
// perform the raw topological split with no logging of its own. mesh.Mesh
// implements this; editlog only depends on it through this interface so
// the two packages don't form an import cycle.
type Splitter interface {
	// SplitEdgeRaw splits edge e at parameter t along (v1->v2), creating
	// a new vertex and wiring the surrounding loops. It performs no
	// logging; callers needing the event recorded must go through
	// Log.EdgeSplitDo instead.
	SplitEdgeRaw(e types.EdgeID, t float64) (newVertex types.VertexID, newEdge types.EdgeID, err error)
}

// Log is the external undo/redo log collaborator (spec.md §6).
type Log interface {
	// EntryAdd opens a new named undo step. The driver calls this once
	// per phase (collapse, subdivide, cleanup) per spec.md §4.9.
	EntryAdd(name string)

	VertAdded(v types.VertexID)
	VertModified(v types.VertexID)
	VertRemoved(v types.VertexID)

	EdgeAdded(e types.EdgeID)
	EdgeRemoved(e types.EdgeID)

	FaceAdded(f types.FaceID)
	FaceRemoved(f types.FaceID)

	// EdgeSplitDo atomically performs and logs an edge split: it calls
	// s.SplitEdgeRaw(e, t), and on success additionally records the new
	// vertex and new edge as added before returning them. This mirrors
	// spec.md §4.1's "edge_split_log", the one log-aware primitive that
	// both mutates topology and records the mutation.
	EdgeSplitDo(s Splitter, e types.EdgeID, t float64) (newVertex types.VertexID, newEdge types.EdgeID, err error)
}
