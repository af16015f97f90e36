package mesh

import "github.com/polyforge/remesh/attrs"

// Option configures a Mesh during construction.
type Option func(*config)

// WithEpsilon sets the geometric tolerance used by degenerate-face checks.
func WithEpsilon(epsilon float64) Option {
	return func(c *config) {
		if epsilon < 0 {
			epsilon = DefaultEpsilon
		}
		c.epsilon = epsilon
	}
}

// WithAttrStore installs the attribute-block collaborator (spec.md §1,
// §6). Defaults to an in-memory attrs.SliceStore(1) if never set.
func WithAttrStore(store attrs.Store) Option {
	return func(c *config) {
		if store != nil {
			c.store = store
		}
	}
}

// WithDebugVertAdded installs a hook called after a vertex is created,
// mirroring the teacher's WithDebugAddVertex (mesh/options.go).
func WithDebugVertAdded(hook func(VertexID)) Option {
	return func(c *config) { c.debugVertAdded = hook }
}

// WithDebugEdgeAdded installs a hook called after an edge is created.
func WithDebugEdgeAdded(hook func(EdgeID)) Option {
	return func(c *config) { c.debugEdgeAdded = hook }
}

// WithDebugFaceAdded installs a hook called after a face is created.
func WithDebugFaceAdded(hook func(FaceID)) Option {
	return func(c *config) { c.debugFaceAdded = hook }
}
