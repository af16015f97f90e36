package mesh

import "testing"

func TestFaceExistsTriFromLoopVert(t *testing.T) {
	m := NewMesh()
	v0, v1, v2, f := newTriangle(t, m)

	// locate the loop at v1; its Next loop sits at v2.
	var lAtV1 LoopID
	l := m.faces[f].Loop
	for {
		if m.loops[l].Vert == v1 {
			lAtV1 = l
			break
		}
		l = m.loops[l].Next
		if l == m.faces[f].Loop {
			t.Fatalf("could not find loop at v1")
		}
	}

	// replacing v0's corner with v0 itself (a no-op substitution) should
	// report the existing face.
	if got, ok := m.FaceExistsTriFromLoopVert(lAtV1, v0); !ok || got != f {
		t.Fatalf("FaceExistsTriFromLoopVert should find the existing face, got %v, %v", got, ok)
	}

	other := m.VertCreate(Vec3{X: 5, Y: 5}, Vec3{Z: 1}, nil)
	if _, ok := m.FaceExistsTriFromLoopVert(lAtV1, other); ok {
		t.Fatalf("FaceExistsTriFromLoopVert should not find a face for an unused vertex")
	}
	_ = v2
}
