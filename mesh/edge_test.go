package mesh

import "testing"

func TestEdgeGetOrCreateIsIdempotent(t *testing.T) {
	m := NewMesh()
	v0 := m.VertCreate(Vec3{}, Vec3{Z: 1}, nil)
	v1 := m.VertCreate(Vec3{X: 1}, Vec3{Z: 1}, nil)

	e1, err := m.EdgeGetOrCreate(v0, v1, nil, nil)
	if err != nil {
		t.Fatalf("first EdgeGetOrCreate: %v", err)
	}
	e2, err := m.EdgeGetOrCreate(v1, v0, nil, nil) // reversed order
	if err != nil {
		t.Fatalf("second EdgeGetOrCreate: %v", err)
	}
	if e1 != e2 {
		t.Fatalf("EdgeGetOrCreate should return the same edge regardless of vertex order")
	}
	if m.NumEdges() != 1 {
		t.Fatalf("want 1 edge, got %d", m.NumEdges())
	}
}

func TestDiskCycleWalksAllIncidentEdges(t *testing.T) {
	m := NewMesh()
	hub := m.VertCreate(Vec3{}, Vec3{Z: 1}, nil)
	spokes := make([]VertexID, 4)
	for i := range spokes {
		spokes[i] = m.VertCreate(Vec3{X: float64(i + 1)}, Vec3{Z: 1}, nil)
		if _, err := m.EdgeGetOrCreate(hub, spokes[i], nil, nil); err != nil {
			t.Fatalf("spoke %d: %v", i, err)
		}
	}

	if got := m.DiskDegree(hub); got != len(spokes) {
		t.Fatalf("disk degree = %d, want %d", got, len(spokes))
	}

	seen := make(map[VertexID]bool)
	first := m.FirstEdge(hub)
	e := first
	for {
		other := m.OtherVert(e, hub)
		seen[other] = true
		e = m.EdgeDiskNext(e, hub)
		if e == first {
			break
		}
	}
	for _, s := range spokes {
		if !seen[s] {
			t.Fatalf("disk cycle walk missed spoke vertex %d", s)
		}
	}
}

func TestEdgeKillRequiresWireEdge(t *testing.T) {
	m := NewMesh()
	v0, v1, _, _ := newTriangle(t, m)

	e, _ := m.FindEdge(v0, v1)
	if err := m.EdgeKill(e, nil); err != ErrNonManifoldEdge {
		t.Fatalf("killing an edge with an incident loop should fail, got %v", err)
	}

	wire, err := m.EdgeGetOrCreate(v0, m.VertCreate(Vec3{X: 9}, Vec3{Z: 1}, nil), nil, nil)
	if err != nil {
		t.Fatalf("wire edge: %v", err)
	}
	if err := m.EdgeKill(wire, nil); err != nil {
		t.Fatalf("EdgeKill on wire edge: %v", err)
	}
	if m.EdgeAlive(wire) {
		t.Fatalf("wire edge should be dead after EdgeKill")
	}
}

func TestEdgeLength2(t *testing.T) {
	m := NewMesh()
	v0 := m.VertCreate(Vec3{}, Vec3{Z: 1}, nil)
	v1 := m.VertCreate(Vec3{X: 3, Y: 4}, Vec3{Z: 1}, nil)
	e, err := m.EdgeGetOrCreate(v0, v1, nil, nil)
	if err != nil {
		t.Fatalf("EdgeGetOrCreate: %v", err)
	}
	if got := m.EdgeLength2(e); got != 25 {
		t.Fatalf("EdgeLength2 = %v, want 25", got)
	}
}
