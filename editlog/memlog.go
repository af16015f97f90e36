package editlog

import "github.com/polyforge/remesh/types"

// EventKind names one recorded mutation.
type EventKind int

const (
	EntryOpened EventKind = iota
	VertAdded
	VertModified
	VertRemoved
	EdgeAdded
	EdgeRemoved
	FaceAdded
	FaceRemoved
)

// String names an EventKind for debug output.
func (k EventKind) String() string {
	switch k {
	case EntryOpened:
		return "EntryOpened"
	case VertAdded:
		return "VertAdded"
	case VertModified:
		return "VertModified"
	case VertRemoved:
		return "VertRemoved"
	case EdgeAdded:
		return "EdgeAdded"
	case EdgeRemoved:
		return "EdgeRemoved"
	case FaceAdded:
		return "FaceAdded"
	case FaceRemoved:
		return "FaceRemoved"
	default:
		return "Unknown"
	}
}

// Event is one recorded log entry. Only the ID field matching Kind is
// meaningful (e.g. a VertAdded event only sets Vert); the rest are zero.
type Event struct {
	Kind EventKind
	Name string
	Vert types.VertexID
	Edge types.EdgeID
	Face types.FaceID
}

// MemLog is a reference Log collaborator that records every event to an
// in-memory slice, grounded on the teacher's own debug-hook pattern
// (mesh/options.go's WithDebugAddVertex/Edge/Triangle) turned from
// fire-and-forget callbacks into an append-only record suitable for the
// reverse-replay check in spec.md §8 (P7).
type MemLog struct {
	Events []Event
}

// NewMemLog creates an empty log.
func NewMemLog() *MemLog { return &MemLog{} }

func (l *MemLog) EntryAdd(name string) {
	l.Events = append(l.Events, Event{Kind: EntryOpened, Name: name})
}

func (l *MemLog) VertAdded(v types.VertexID)    { l.Events = append(l.Events, Event{Kind: VertAdded, Vert: v}) }
func (l *MemLog) VertModified(v types.VertexID) { l.Events = append(l.Events, Event{Kind: VertModified, Vert: v}) }
func (l *MemLog) VertRemoved(v types.VertexID)  { l.Events = append(l.Events, Event{Kind: VertRemoved, Vert: v}) }
func (l *MemLog) EdgeAdded(e types.EdgeID)      { l.Events = append(l.Events, Event{Kind: EdgeAdded, Edge: e}) }
func (l *MemLog) EdgeRemoved(e types.EdgeID)    { l.Events = append(l.Events, Event{Kind: EdgeRemoved, Edge: e}) }
func (l *MemLog) FaceAdded(f types.FaceID)      { l.Events = append(l.Events, Event{Kind: FaceAdded, Face: f}) }
func (l *MemLog) FaceRemoved(f types.FaceID)    { l.Events = append(l.Events, Event{Kind: FaceRemoved, Face: f}) }

// EdgeSplitDo performs the raw split via s, then logs the new vertex and
// new edge as added. If the split fails, nothing is logged.
func (l *MemLog) EdgeSplitDo(s Splitter, e types.EdgeID, t float64) (types.VertexID, types.EdgeID, error) {
	newVertex, newEdge, err := s.SplitEdgeRaw(e, t)
	if err != nil {
		return types.NilVertex, types.NilEdge, err
	}
	l.VertAdded(newVertex)
	if newEdge.IsValid() {
		l.EdgeAdded(newEdge)
	}
	return newVertex, newEdge, nil
}

// Reverse returns the recorded events in reverse order, the order a
// replayer must walk to undo this log's entries (spec.md §8, P7): undoing
// a VertAdded means removing that vertex, undoing a VertRemoved means
// re-adding it, and so on. MemLog itself does not perform replay — the
// host owns mesh reconstruction — this only orders the event stream for
// a replayer to consume.
func (l *MemLog) Reverse() []Event {
	out := make([]Event, len(l.Events))
	for i, e := range l.Events {
		out[len(l.Events)-1-i] = e
	}
	return out
}
