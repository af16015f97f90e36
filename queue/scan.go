package queue

import (
	"context"
	"math"

	"github.com/polyforge/remesh/mesh"
	"github.com/polyforge/remesh/nodes"
	"github.com/polyforge/remesh/types"
	"golang.org/x/sync/errgroup"
)

// ScanConfig parameterizes Scan (spec.md §4.4): the region to restrict
// candidates to, the subdivide/collapse length thresholds (plain edge
// lengths; the merge squares them), and the optional per-vertex detail
// mask.
type ScanConfig struct {
	Region             Region
	SubdivideThreshold float64 // edge length, not squared
	CollapseThreshold  float64
	Mask               MaskFunc

	// Smooth, if set, is called once per unique in-range vertex visited by
	// a leaf's worker (spec.md §4.8: "C8 runs opportunistically inside
	// C4's parallel scan"). It is responsible for its own probability
	// gate and its own compare-and-swap write discipline; Scan only
	// guarantees it is called at most once per vertex per leaf and never
	// concurrently with another call for the same leaf.
	Smooth func(v types.VertexID)
}

// Result is the scan's output: the two populated priority queues plus the
// low-valence watchlist C7 consumes (spec.md §4.9 step 4).
type Result struct {
	Subdivide *SubdivideQueue
	Collapse  *CollapseQueue
	// LowValence lists every vertex seen with valence < 5, a candidate
	// for the valence-3/4 cleanup pass.
	LowValence []types.VertexID

	// Stats summarizes every distinct in-range edge the scan touched,
	// regardless of which queue (or neither) it landed in. The driver's
	// rate limiter (spec.md §4.9) divides by these to throttle collapse
	// and subdivide step budgets for pathologically fine/coarse regions.
	Stats EdgeStats
}

// EdgeStats is the scan's aggregate edge-length summary (spec.md §4.4:
// "accumulated statistics (avg/min/max edge length, total count) are
// collected during construction").
type EdgeStats struct {
	Count     int
	SumLength float64
	MinLength float64
	MaxLength float64
}

// Avg returns the mean edge length, or 0 if no edges were seen.
func (s EdgeStats) Avg() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.SumLength / float64(s.Count)
}

type edgeSample struct {
	v1, v2 types.VertexID
	len2   float64
}

// leafScan is Phase A's per-leaf output: every edge of every in-range face
// owned by that leaf, deduplicated within the leaf but not yet across
// leaves (an edge shared by two leaves' faces is sampled twice; Phase B's
// single-threaded merge is what dedups globally).
type leafScan struct {
	edges      []edgeSample
	lowValence []types.VertexID
}

// Scan builds the subdivide and collapse candidate queues for region cfg.
// Phase A walks each leaf's faces concurrently (one goroutine per leaf,
// grounded on the teacher's candidates.go goroutine-per-unit fan-out,
// reimplemented with golang.org/x/sync/errgroup so a canceled context
// stops the remaining leaves instead of leaking goroutines). Phase B
// merges the per-leaf samples into the two heaps single-threaded,
// deduplicating edges shared by faces in different leaves and the
// low-valence watchlist (spec.md §4.4). Phase A counts each corner's
// valence by walking its disk cycle without writing to the vertex; the
// scan neither refreshes the cached valence nor recomputes any vertex's
// boundary classification.
func Scan(ctx context.Context, m *mesh.Mesh, mb *nodes.Membership, cfg ScanConfig) (Result, error) {
	leaves := mb.Leaves()
	scans := make([]leafScan, len(leaves))

	g, ctx := errgroup.WithContext(ctx)
	for i, leaf := range leaves {
		i, leaf := i, leaf
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scans[i] = scanLeaf(m, mb, leaf, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return mergeScans(m, cfg, scans), nil
}

// scanLeaf is the Phase A worker body for a single leaf.
func scanLeaf(m *mesh.Mesh, mb *nodes.Membership, leaf nodes.LeafID, cfg ScanConfig) leafScan {
	var out leafScan
	seen := make(map[types.EdgeID]bool)
	smoothed := make(map[types.VertexID]bool)

	for _, f := range mb.FacesInLeaf(leaf) {
		if !m.FaceAlive(f) {
			continue
		}
		a, b, c := faceGeometry(m, f)
		if !TriInRange(cfg.Region, a, b, c) {
			continue
		}

		edges := m.FaceEdges(f)
		verts := m.FaceVerts(f)
		for i, e := range edges {
			if seen[e] {
				continue
			}
			seen[e] = true
			v1 := verts[i]
			v2 := verts[(i+1)%3]
			out.edges = append(out.edges, edgeSample{v1: v1, v2: v2, len2: m.EdgeLength2(e)})
		}

		for _, v := range verts {
			if m.DiskDegree(v) < 5 {
				out.lowValence = append(out.lowValence, v)
			}
			if cfg.Smooth != nil && !smoothed[v] {
				smoothed[v] = true
				cfg.Smooth(v)
			}
		}
	}
	return out
}

// mergeScans is Phase B: single-threaded, so the global dedup map and the
// two heaps need no locking.
func mergeScans(m *mesh.Mesh, cfg ScanConfig, scans []leafScan) Result {
	res := Result{Subdivide: NewSubdivideQueue(), Collapse: NewCollapseQueue()}
	res.Stats.MinLength = math.Inf(1)

	subThresh2 := cfg.SubdivideThreshold * cfg.SubdivideThreshold
	colThresh2 := cfg.CollapseThreshold * cfg.CollapseThreshold

	seen := make(map[types.EdgeID]bool)
	lowValSeen := make(map[types.VertexID]bool)

	for _, s := range scans {
		for _, es := range s.edges {
			e, ok := m.FindEdge(es.v1, es.v2)
			if !ok || seen[e] {
				continue
			}
			seen[e] = true

			length := math.Sqrt(es.len2)
			res.Stats.Count++
			res.Stats.SumLength += length
			if length < res.Stats.MinLength {
				res.Stats.MinLength = length
			}
			if length > res.Stats.MaxLength {
				res.Stats.MaxLength = length
			}

			switch {
			case es.len2 >= subThresh2:
				res.Subdivide.Push(es.v1, es.v2, es.len2, cfg.Mask)
			case es.len2 <= colThresh2:
				res.Collapse.Push(es.v1, es.v2, es.len2, cfg.Mask)
			}
		}
		for _, v := range s.lowValence {
			if !lowValSeen[v] {
				lowValSeen[v] = true
				res.LowValence = append(res.LowValence, v)
			}
		}
	}
	if res.Stats.Count == 0 {
		res.Stats.MinLength = 0
	}
	return res
}
