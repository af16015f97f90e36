package remesh

import (
	"context"
	"math"
	"sync"

	"github.com/polyforge/remesh/mesh"
	"github.com/polyforge/remesh/nodes"
	"github.com/polyforge/remesh/queue"
	"github.com/polyforge/remesh/types"
)

// UpdateTopologyParams is one call's worth of remesh input: the stroke's
// footprint and which passes to run over it (spec.md §4.9).
type UpdateTopologyParams struct {
	Center types.Vec3
	Radius float64

	// ViewNormal, if UseProjected is set, switches the query region from
	// a sphere to a view-projected disk (spec.md §4.4).
	ViewNormal   types.Vec3
	UseProjected bool

	// SymAxis is unused by the core itself; it is carried through so a
	// host running symmetric strokes can tag log entries with which side
	// a call belongs to. A zero value means "no symmetry".
	SymAxis types.Vec3

	Mode types.Mode
	Mask queue.MaskFunc

	// UseFrontFace restricts the scan to front-facing geometry; the core
	// has no notion of camera facing on its own, so this is left for a
	// future Mask/Region extension point and currently has no effect
	// beyond being recorded on the call.
	UseFrontFace bool

	// UpdateHierarchy gates step 6's leaf-split requests. A host batching
	// several Run calls before the next hierarchy rebuild can set this
	// false on all but the last.
	UpdateHierarchy bool
}

// smoothHook returns the queue.ScanConfig.Smooth callback for one Run
// call: a mutex-serialized RNG draw followed by the lock-free geometry
// write. math/rand.Rand is not safe for concurrent use, but the scan's
// leaf workers call Smooth concurrently, so only the draw itself is
// serialized; smoothVertex's read-and-CAS needs no lock of its own
// (spec.md §4.8).
func (d *Driver) smoothHook() func(types.VertexID) {
	var mu sync.Mutex
	return func(v types.VertexID) {
		mu.Lock()
		roll := d.cfg.rng.Float64()
		mu.Unlock()
		if roll >= d.cfg.smoothProb {
			return
		}
		smoothVertex(d.m, v)
	}
}

// rateLimitedBudget scales base by the observed-vs-target edge length
// ratio (spec.md §4.9's rate limiter): a region whose edges are much
// longer than the collapse/subdivide targets gets a larger budget, one
// already near target gets a smaller one. The scale factor is clamped to
// [0.25, 5.0] so one pathological call can't starve or flood a pass.
func rateLimitedBudget(base int, stats queue.EdgeStats, minTarget, maxTarget float64) int {
	if stats.Count == 0 {
		return base
	}
	observedMax := stats.MaxLength
	if maxTarget > observedMax {
		observedMax = maxTarget
	}
	denom := 0.5*minTarget + 0.5*observedMax
	if denom <= 0 {
		return base
	}
	scale := stats.Avg() / denom
	if scale < 0.25 {
		scale = 0.25
	}
	if scale > 5.0 {
		scale = 5.0
	}
	return int(float64(base) * scale)
}

// drainSubdivide pops up to budget candidates (budget<=0 drains the whole
// queue) still valid at pop time.
func drainSubdivide(m *mesh.Mesh, mb *nodes.Membership, sq *queue.SubdivideQueue, budget int) []queue.Candidate {
	owned := func(v types.VertexID) bool { return mb.VertLeaf(v).IsValid() }
	var pending []queue.Candidate
	for budget <= 0 || len(pending) < budget {
		c, ok := sq.Pop(m, owned)
		if !ok {
			break
		}
		pending = append(pending, c)
	}
	return pending
}

// cleanupWatchlistFromRegion collects every vertex of every face owned by
// a leaf with at least one face inside region, for a CLEANUP-only call
// that has no subdivide/collapse scan result to source its watchlist from
// (spec.md §4.9 step 4's watchlist is normally the scan's low-valence
// list; this is the fallback when Mode excludes Subdivide so no scan
// necessarily touched the region's full vertex set).
func cleanupWatchlistFromRegion(m *mesh.Mesh, mb *nodes.Membership, region queue.Region) []types.VertexID {
	seen := make(map[types.VertexID]bool)
	var out []types.VertexID
	for _, leaf := range mb.Leaves() {
		for _, f := range mb.FacesInLeaf(leaf) {
			if !m.FaceAlive(f) {
				continue
			}
			for _, v := range m.FaceVerts(f) {
				if seen[v] {
					continue
				}
				if !region.VertInRange(m.Vertex(v).Co) {
					continue
				}
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

func effectiveMask(paramsMask, cfgMask queue.MaskFunc) queue.MaskFunc {
	if paramsMask != nil {
		return paramsMask
	}
	return cfgMask
}

// Run executes one remesh call over region params.Center/params.Radius,
// sequencing collapse, subdivide, and valence cleanup per spec.md §4.9's
// seven steps. changed reports whether a collapse, subdivide, or cleanup
// step changed the mesh — a host uses this to decide whether a redraw or
// hierarchy rebuild is warranted. Vertex moves made by tangential
// smoothing during the scan are not counted.
func (d *Driver) Run(ctx context.Context, params UpdateTopologyParams) (bool, error) {
	d.callID++

	region := queue.Region{Center: params.Center, Radius2: params.Radius * params.Radius}
	if params.UseProjected {
		region.ProjectedNormal = params.ViewNormal
	}

	scanCfg := queue.ScanConfig{
		Region:             region,
		SubdivideThreshold: d.cfg.maxTargetLen,
		CollapseThreshold:  d.cfg.minTargetLen,
		Mask:               effectiveMask(params.Mask, d.cfg.mask),
		Smooth:             d.smoothHook(),
	}

	result, err := queue.Scan(ctx, d.m, d.mb, scanCfg)
	if err != nil {
		return false, err
	}

	chain := make(deletedChain)
	changed := false

	// step 1 + 2: collapse pass, budget rate-limited off the scan's edge
	// length statistics.
	if params.Mode.Has(types.Collapse) {
		d.log.EntryAdd("collapse")
		budget := rateLimitedBudget(result.Collapse.Len(), result.Stats, d.cfg.minTargetLen, d.cfg.maxTargetLen)
		did, err := collapsePass(d.m, d.mb, d.log, d.cfg, result.Collapse, chain, d.cfg.minTargetLen*d.cfg.minTargetLen, budget, d.callID)
		if err != nil {
			return changed, err
		}
		changed = changed || did
	}

	// step 3: subdivide pass, budget from the region's area over the
	// average target edge length (how many new triangles could fit).
	if params.Mode.Has(types.Subdivide) {
		d.log.EntryAdd("subdivide")
		avgTarget := 0.5 * (d.cfg.minTargetLen + d.cfg.maxTargetLen)
		budget := result.Subdivide.Len()
		if avgTarget > 0 {
			budget = int(math.Pi * (params.Radius / avgTarget) * (params.Radius / avgTarget))
		}
		pending := drainSubdivide(d.m, d.mb, result.Subdivide, budget)
		if len(pending) > 0 {
			if err := subdivide(d.m, d.mb, d.log, d.cfg, pending); err != nil {
				return changed, err
			}
			changed = true
		}
	}

	// step 4: build the valence-cleanup watchlist.
	watchlist := append([]types.VertexID(nil), result.LowValence...)
	if params.Mode.Has(types.Cleanup) && !params.Mode.Has(types.Subdivide) {
		watchlist = append(watchlist, cleanupWatchlistFromRegion(d.m, d.mb, region)...)
	}
	for _, v := range watchlist {
		if d.m.VertexAlive(v) {
			d.m.ClearValenceScratch(v)
		}
	}

	// step 5: valence-3/4 cleanup.
	if params.Mode.Has(types.Cleanup) {
		d.log.EntryAdd("cleanup")
		did, err := cleanupPass(d.m, d.mb, d.log, d.cfg, watchlist, params.Center, params.Radius)
		if err != nil {
			return changed, err
		}
		changed = changed || did
	}

	// steps 6-7: ask the hierarchy to re-settle leaves that may have
	// outgrown their face limit, and to re-validate residency. Hierarchy
	// exposes no way to enumerate which leaves got marked dirty by the
	// passes above, so every currently-owning leaf is offered instead;
	// a host's Hierarchy implementation is expected to no-op on leaves
	// it didn't actually mark (spec.md §4.9).
	if changed {
		for _, leaf := range d.mb.Leaves() {
			if params.UpdateHierarchy {
				d.mb.Hierarchy().NodeLimitEnsure(leaf)
			}
			d.mb.Hierarchy().CheckTris(leaf)
		}
	}

	return changed, nil
}
