// Package remesh implements the dynamic topology remesher core (C4-C9):
// the priority edge queue consumers, the subdivide and collapse passes,
// valence-3/4 cleanup, tangential smoothing, and the driver entry point
// that sequences them over one spatial-hierarchy leaf membership.
package remesh

import (
	"math/rand"

	"github.com/polyforge/remesh/editlog"
	"github.com/polyforge/remesh/mesh"
	"github.com/polyforge/remesh/nodes"
	"github.com/polyforge/remesh/queue"
	"github.com/polyforge/remesh/triangulate"
	"github.com/polyforge/remesh/types"
)

type config struct {
	epsilon float64

	mask            queue.MaskFunc
	triangulator    triangulate.Triangulator
	smoothProb      float64
	rng             *rand.Rand
	depthStart      int
	expansionFactor float64

	// minTargetLen/maxTargetLen are the collapse/subdivide length
	// thresholds spec.md §4.9's rate limiter and §4.4's queue construction
	// both read from (there named min_target/max_observed and
	// min_len/max_len in the S1-S6 scenarios).
	minTargetLen float64
	maxTargetLen float64

	debugSplit    func(v1, v2 types.VertexID)
	debugCollapse func(vConn, vDel types.VertexID)
}

// DefaultDepthStart is the even-subdivision recursive-expansion depth
// limit spec.md §4.4 names.
const DefaultDepthStart = 5

// DefaultExpansionFactor is the 1.2 neighbour-qualification multiplier
// spec.md §4.4's even-subdivision expansion uses.
const DefaultExpansionFactor = 1.2

// DefaultSmoothProbability is the 0.25 per-vertex smoothing chance
// spec.md §4.8 names.
const DefaultSmoothProbability = 0.25

// DefaultMinTargetLen/DefaultMaxTargetLen are the fallback collapse/
// subdivide edge-length thresholds used when WithTargetEdgeLength is never
// called; callers driving real sculpting sessions are expected to supply
// their own (spec.md §4.9's rate limiter divides by these).
const (
	DefaultMinTargetLen = 0.5
	DefaultMaxTargetLen = 1.0
)

func newDefaultConfig() config {
	return config{
		epsilon:         1e-9,
		triangulator:    triangulate.Fan{},
		smoothProb:      DefaultSmoothProbability,
		rng:             rand.New(rand.NewSource(1)),
		depthStart:      DefaultDepthStart,
		expansionFactor: DefaultExpansionFactor,
		minTargetLen:    DefaultMinTargetLen,
		maxTargetLen:    DefaultMaxTargetLen,
	}
}

// Driver owns the C9 orchestration state for repeated remesh calls
// against one mesh/membership pair (spec.md §4.9): it sequences collapse,
// subdivide, and cleanup, owns the RNG smoothing draws from, and is the
// module's sole public entry point.
type Driver struct {
	cfg config
	log editlog.Log

	m  *mesh.Mesh
	mb *nodes.Membership

	// callID increments once per Run call and is used as the origdata
	// stroke id collapse's step 2 snapshots against (spec.md §4.2, §4.6).
	callID int64
}

// NewDriver creates a Driver over m/mb, logging every mutation to log.
func NewDriver(m *mesh.Mesh, mb *nodes.Membership, log editlog.Log, opts ...Option) *Driver {
	cfg := newDefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Driver{cfg: cfg, log: log, m: m, mb: mb}
}
