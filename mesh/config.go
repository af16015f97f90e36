package mesh

import "github.com/polyforge/remesh/attrs"

type config struct {
	epsilon float64
	store   attrs.Store

	debugVertAdded   func(VertexID)
	debugEdgeAdded   func(EdgeID)
	debugFaceAdded   func(FaceID)
}

// DefaultEpsilon is the default tolerance for degenerate-face checks.
const DefaultEpsilon = 1e-9

func newDefaultConfig() config {
	return config{
		epsilon: DefaultEpsilon,
		store:   attrs.NewSliceStore(1),
	}
}
