package types

import "testing"

func TestVertexIDIsValid(t *testing.T) {
	cases := []struct {
		id   VertexID
		want bool
	}{
		{0, true},
		{5, true},
		{NilVertex, false},
		{-2, false},
	}

	for _, c := range cases {
		if got := c.id.IsValid(); got != c.want {
			t.Errorf("VertexID(%d).IsValid() = %v, want %v", c.id, got, c.want)
		}
	}
}

func TestEdgeFaceLoopIDSentinels(t *testing.T) {
	if NilEdge.IsValid() {
		t.Error("NilEdge must not be valid")
	}
	if NilFace.IsValid() {
		t.Error("NilFace must not be valid")
	}
	if NilLoop.IsValid() {
		t.Error("NilLoop must not be valid")
	}
	if !EdgeID(0).IsValid() || !FaceID(0).IsValid() || !LoopID(0).IsValid() {
		t.Error("id 0 must be valid for every id kind")
	}
}
