package editlog

import (
	"testing"

	"github.com/polyforge/remesh/types"
)

type fakeSplitter struct {
	newVertex types.VertexID
	newEdge   types.EdgeID
	err       error
}

func (f fakeSplitter) SplitEdgeRaw(e types.EdgeID, t float64) (types.VertexID, types.EdgeID, error) {
	return f.newVertex, f.newEdge, f.err
}

func TestEdgeSplitDoLogsOnSuccess(t *testing.T) {
	l := NewMemLog()
	s := fakeSplitter{newVertex: 7, newEdge: 3}

	v, e, err := l.EdgeSplitDo(s, 1, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 7 || e != 3 {
		t.Fatalf("got (%d,%d), want (7,3)", v, e)
	}
	if len(l.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(l.Events))
	}
	if l.Events[0].Kind != VertAdded || l.Events[0].Vert != 7 {
		t.Errorf("first event = %+v, want VertAdded(7)", l.Events[0])
	}
	if l.Events[1].Kind != EdgeAdded || l.Events[1].Edge != 3 {
		t.Errorf("second event = %+v, want EdgeAdded(3)", l.Events[1])
	}
}

func TestEdgeSplitDoSkipsLogOnFailure(t *testing.T) {
	l := NewMemLog()
	s := fakeSplitter{err: errTest}

	_, _, err := l.EdgeSplitDo(s, 1, 0.5)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(l.Events) != 0 {
		t.Errorf("expected no events logged on failure, got %d", len(l.Events))
	}
}

func TestReverseOrdersEventsBackward(t *testing.T) {
	l := NewMemLog()
	l.VertAdded(1)
	l.VertAdded(2)
	l.VertRemoved(1)

	rev := l.Reverse()
	if len(rev) != 3 {
		t.Fatalf("expected 3 events, got %d", len(rev))
	}
	if rev[0].Kind != VertRemoved || rev[0].Vert != 1 {
		t.Errorf("rev[0] = %+v, want VertRemoved(1)", rev[0])
	}
	if rev[2].Kind != VertAdded || rev[2].Vert != 1 {
		t.Errorf("rev[2] = %+v, want VertAdded(1)", rev[2])
	}
}

var errTest = testErr("split failed")

type testErr string

func (e testErr) Error() string { return string(e) }
