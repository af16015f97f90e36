package mesh

import (
	"testing"

	"github.com/polyforge/remesh/types"
)

func TestVertCreateStartsDirty(t *testing.T) {
	m := NewMesh()
	v := m.VertCreate(Vec3{}, Vec3{Z: 1}, nil)
	got := m.Vertex(v).Flags
	if !got.Has(types.NeedsValence) || !got.Has(types.NeedsBoundary) || !got.Has(types.NeedsDiskSort) {
		t.Fatalf("new vertex should start with all dirty flags set, got %v", got)
	}
}

func TestValenceRecomputesOnDemand(t *testing.T) {
	m := NewMesh()
	center := m.VertCreate(Vec3{}, Vec3{Z: 1}, nil)
	a := m.VertCreate(Vec3{X: 1}, Vec3{Z: 1}, nil)
	b := m.VertCreate(Vec3{X: -1, Y: 1}, Vec3{Z: 1}, nil)
	c := m.VertCreate(Vec3{X: -1, Y: -1}, Vec3{Z: 1}, nil)

	if _, err := m.FaceCreate([3]VertexID{center, a, b}, nil, nil, nil); err != nil {
		t.Fatalf("face 1: %v", err)
	}
	if _, err := m.FaceCreate([3]VertexID{center, b, c}, nil, nil, nil); err != nil {
		t.Fatalf("face 2: %v", err)
	}
	if _, err := m.FaceCreate([3]VertexID{center, c, a}, nil, nil, nil); err != nil {
		t.Fatalf("face 3: %v", err)
	}

	if got := m.Valence(center); got != 3 {
		t.Fatalf("center valence = %d, want 3", got)
	}
	if m.Vertex(center).Flags.Has(types.NeedsValence) {
		t.Fatalf("NEEDS_VALENCE should be cleared after Valence()")
	}
}

func TestCheckVertBoundaryClassifiesFan(t *testing.T) {
	m := NewMesh()
	center := m.VertCreate(Vec3{}, Vec3{Z: 1}, nil)
	a := m.VertCreate(Vec3{X: 1}, Vec3{Z: 1}, nil)
	b := m.VertCreate(Vec3{X: -1, Y: 1}, Vec3{Z: 1}, nil)
	c := m.VertCreate(Vec3{X: -1, Y: -1}, Vec3{Z: 1}, nil)

	// two triangles sharing the center vertex, not closing the fan: the
	// disk cycle around center has two boundary edges (to a and to c).
	if _, err := m.FaceCreate([3]VertexID{center, a, b}, nil, nil, nil); err != nil {
		t.Fatalf("face 1: %v", err)
	}
	if _, err := m.FaceCreate([3]VertexID{center, b, c}, nil, nil, nil); err != nil {
		t.Fatalf("face 2: %v", err)
	}

	m.CheckVertBoundary(center)
	flags := m.Vertex(center).Flags
	if !flags.IsBoundary() {
		t.Fatalf("center should be classified as a boundary vertex, got %v", flags)
	}
	if flags.IsCorner() {
		t.Fatalf("center should not be a corner, got %v", flags)
	}
}

func TestCheckOrigdataSnapshotsOncePerStroke(t *testing.T) {
	m := NewMesh()
	v := m.VertCreate(Vec3{X: 1, Y: 2, Z: 3}, Vec3{Z: 1}, nil)

	m.CheckOrigdata(v, 1, 0.5)
	first := m.Vertex(v)
	if first.OrigCo != (Vec3{X: 1, Y: 2, Z: 3}) || first.OrigMask != 0.5 {
		t.Fatalf("expected origdata snapshot on first call, got %+v", first)
	}

	m.SetVertexPosition(v, Vec3{X: 9, Y: 9, Z: 9})
	m.CheckOrigdata(v, 1, 0.9) // same stroke id: should be a no-op
	second := m.Vertex(v)
	if second.OrigCo != (Vec3{X: 1, Y: 2, Z: 3}) || second.OrigMask != 0.5 {
		t.Fatalf("origdata should not change within the same stroke, got %+v", second)
	}

	m.CheckOrigdata(v, 2, 0.9) // new stroke id: should resnapshot
	third := m.Vertex(v)
	if third.OrigCo != (Vec3{X: 9, Y: 9, Z: 9}) || third.OrigMask != 0.9 {
		t.Fatalf("origdata should resnapshot on new stroke id, got %+v", third)
	}
}

func TestVertKillRequiresIsolation(t *testing.T) {
	m := NewMesh()
	v0, _, _, _ := newTriangle(t, m)

	if err := m.VertKill(v0, nil); err != ErrNonManifoldEdge {
		t.Fatalf("killing a vertex with incident edges should fail, got %v", err)
	}

	isolated := m.VertCreate(Vec3{X: 5, Y: 5, Z: 5}, Vec3{Z: 1}, nil)
	if err := m.VertKill(isolated, nil); err != nil {
		t.Fatalf("VertKill on isolated vertex: %v", err)
	}
	if m.VertexAlive(isolated) {
		t.Fatalf("isolated vertex should be dead after VertKill")
	}
}
