package remesh

import (
	"math/rand"

	"github.com/polyforge/remesh/queue"
	"github.com/polyforge/remesh/triangulate"
	"github.com/polyforge/remesh/types"
)

// Option configures a Driver during construction.
type Option func(*config)

// WithEpsilon sets the geometric tolerance degenerate-face checks use.
func WithEpsilon(epsilon float64) Option {
	return func(c *config) {
		if epsilon > 0 {
			c.epsilon = epsilon
		}
	}
}

// WithMask installs the per-vertex detail-mask callback (spec.md §4.4).
// A nil mask (the default) is treated as a constant 1 everywhere.
func WithMask(mask queue.MaskFunc) Option {
	return func(c *config) { c.mask = mask }
}

// WithTriangulator installs the n-gon triangulation collaborator used to
// ensure a vertex's fan is all-triangles before C5/C6/C7 operate on it.
// Defaults to triangulate.Fan{}.
func WithTriangulator(t triangulate.Triangulator) Option {
	return func(c *config) {
		if t != nil {
			c.triangulator = t
		}
	}
}

// WithSmoothProbability sets C8's per-vertex smoothing chance during the
// C4 scan (spec.md §4.8 default 0.25).
func WithSmoothProbability(p float64) Option {
	return func(c *config) {
		if p >= 0 && p <= 1 {
			c.smoothProb = p
		}
	}
}

// WithRandSource replaces the default deterministic rand.Source C8's
// probability gate draws from.
func WithRandSource(src rand.Source) Option {
	return func(c *config) {
		if src != nil {
			c.rng = rand.New(src)
		}
	}
}

// WithDepthStart overrides the even-subdivision recursive-expansion depth
// limit (spec.md §4.4 default 5).
func WithDepthStart(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.depthStart = depth
		}
	}
}

// WithTargetEdgeLength sets the collapse/subdivide length thresholds
// spec.md §4.9's rate limiter and §4.4's queue construction read from
// (min/max_len in the S1-S6 scenarios). Both must be positive and min
// must not exceed max, or the call is ignored.
func WithTargetEdgeLength(min, max float64) Option {
	return func(c *config) {
		if min > 0 && max > 0 && min <= max {
			c.minTargetLen = min
			c.maxTargetLen = max
		}
	}
}

// WithDebugSplit installs a hook called after C5 splits an edge, with the
// edge's original two endpoints.
func WithDebugSplit(hook func(v1, v2 types.VertexID)) Option {
	return func(c *config) { c.debugSplit = hook }
}

// WithDebugCollapse installs a hook called after C6 collapses an edge,
// with the surviving vertex and the deleted one.
func WithDebugCollapse(hook func(vConn, vDel types.VertexID)) Option {
	return func(c *config) { c.debugCollapse = hook }
}
