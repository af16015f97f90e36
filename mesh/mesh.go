// Package mesh implements the half-edge-style triangle mesh described in
// spec.md §3-§4.1-§4.2 (C1 mesh primitives, C2 vertex annotation): vertex,
// edge, face, and loop storage with per-vertex disk cycles and per-edge
// radial cycles, plus the lazily-recomputed MV annotation side table
// (boundary/corner classification, cached valence, original-data
// snapshot).
//
// Entities are stored in ID-indexed slices with a free list per entity
// kind, grounded on cdt/adjacency.go's TriSoup (vertex/triangle arrays
// with freeList-based slot reuse), generalized from a flat triangle soup
// to full vertex/edge/face/loop storage with disk and radial cycles.
package mesh

import "github.com/polyforge/remesh/attrs"

// Vertex is one mesh vertex: position, normal, opaque attribute block,
// head flags, plus the C2 annotation fields (spec.md §3).
type Vertex struct {
	alive bool

	Co   Vec3
	No   Vec3
	Attr attrs.BlockID
	Head HeadFlag

	// Edge is one incident edge, used as the disk-cycle entry point.
	// NilEdge if the vertex is isolated.
	Edge EdgeID

	// C2 annotation (the "MV" side table of spec.md §3).
	Flags    VertFlag
	Valence  int
	OrigCo   Vec3
	OrigNo   Vec3
	OrigMask float64
	StrokeID int64
}

// Edge connects two vertices and carries one radial entry point into its
// incident loops, plus the four disk-cycle links (next/prev around each
// endpoint).
type Edge struct {
	alive bool

	V1, V2 VertexID
	Head   HeadFlag
	Attr   attrs.BlockID

	// Loop is one incident loop; NilLoop if the edge is wire (no
	// incident face).
	Loop LoopID

	V1Next, V1Prev EdgeID
	V2Next, V2Prev EdgeID
}

// Loop is one triangle corner: {vertex, edge, face} plus its face-local
// neighbours (Next/Prev, walking the face's loop ring) and its radial
// neighbours (RadialNext/RadialPrev, walking every loop incident to Edge).
type Loop struct {
	alive bool

	Vert VertexID
	Edge EdgeID
	Face FaceID
	Attr attrs.BlockID

	Next, Prev             LoopID
	RadialNext, RadialPrev LoopID
}

// Face is a polygon loop of NumLoops corners; spec.md requires NumLoops
// to be exactly 3 once n-gon triangulation has run, but the structure
// supports larger rings transiently (mid-subdivision, before Phase 2's
// re-triangulation collapses each ring back to triangles).
type Face struct {
	alive bool

	Loop     LoopID
	NumLoops int
	Material int
	Attr     attrs.BlockID
	Head     HeadFlag
}

// Mesh is a triangulated, orientable surface with boundaries allowed
// (spec.md §3). The zero value is not usable; construct with NewMesh.
type Mesh struct {
	cfg config

	verts []Vertex
	edges []Edge
	faces []Face
	loops []Loop

	vertFree []VertexID
	edgeFree []EdgeID
	faceFree []FaceID
	loopFree []LoopID

	// edgeIndex maps a canonical (min,max) vertex pair to its edge, for
	// EdgeGetOrCreate and the FaceExists family.
	edgeIndex map[vertPair]EdgeID
	// triIndex maps a rotation-canonical vertex triple (smallest id first,
	// winding kept) to its face, used
	// by FaceExists/duplicate-face detection (spec.md §8, P5).
	triIndex map[triKey]FaceID
}

type vertPair struct{ A, B VertexID }

func canonPair(a, b VertexID) vertPair {
	if a > b {
		a, b = b, a
	}
	return vertPair{a, b}
}

// triKey is a rotation-canonicalized ordered vertex triple: rotateCanonTri
// (mesh/face.go) puts the smallest id first without reversing winding, so
// two triangles with the same vertices but opposite orientation get
// different keys (spec.md §8, P5 is about *ordered* triples).
type triKey [3]VertexID

// NewMesh creates an empty mesh with the given options.
func NewMesh(opts ...Option) *Mesh {
	cfg := newDefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Mesh{
		cfg:       cfg,
		edgeIndex: make(map[vertPair]EdgeID),
		triIndex:  make(map[triKey]FaceID),
	}
}

// Store returns the attribute-block collaborator this mesh was built with.
func (m *Mesh) Store() attrs.Store { return m.cfg.store }

// Epsilon returns the configured degenerate-face tolerance.
func (m *Mesh) Epsilon() float64 { return m.cfg.epsilon }

// NumVertices returns the number of live vertices.
func (m *Mesh) NumVertices() int { return len(m.verts) - len(m.vertFree) }

// NumEdges returns the number of live edges.
func (m *Mesh) NumEdges() int { return len(m.edges) - len(m.edgeFree) }

// NumFaces returns the number of live faces.
func (m *Mesh) NumFaces() int { return len(m.faces) - len(m.faceFree) }

// NumLoops returns the number of live loops.
func (m *Mesh) NumLoops() int { return len(m.loops) - len(m.loopFree) }

// VertexAlive reports whether v references a live vertex.
func (m *Mesh) VertexAlive(v VertexID) bool {
	return v.IsValid() && int(v) < len(m.verts) && m.verts[v].alive
}

// EdgeAlive reports whether e references a live edge.
func (m *Mesh) EdgeAlive(e EdgeID) bool {
	return e.IsValid() && int(e) < len(m.edges) && m.edges[e].alive
}

// FaceAlive reports whether f references a live face.
func (m *Mesh) FaceAlive(f FaceID) bool {
	return f.IsValid() && int(f) < len(m.faces) && m.faces[f].alive
}

// LoopAlive reports whether l references a live loop.
func (m *Mesh) LoopAlive(l LoopID) bool {
	return l.IsValid() && int(l) < len(m.loops) && m.loops[l].alive
}

// Vertex returns a copy of the vertex's data. Callers needing to mutate
// fields go through the dedicated mutators below so invariants and
// annotation flags stay consistent.
func (m *Mesh) Vertex(v VertexID) Vertex { return m.verts[v] }

// Edge returns a copy of the edge's data.
func (m *Mesh) Edge(e EdgeID) Edge { return m.edges[e] }

// Face returns a copy of the face's data.
func (m *Mesh) Face(f FaceID) Face { return m.faces[f] }

// Loop returns a copy of the loop's data.
func (m *Mesh) Loop(l LoopID) Loop { return m.loops[l] }

// SetVertexPosition updates a vertex's position directly, without
// touching any annotation flags. Used by C8's tangential smoothing (which
// has its own CAS discipline) and by callers restoring original
// coordinates.
func (m *Mesh) SetVertexPosition(v VertexID, co Vec3) { m.verts[v].Co = co }

// SetVertexNormal updates a vertex's normal directly.
func (m *Mesh) SetVertexNormal(v VertexID, no Vec3) { m.verts[v].No = no }
