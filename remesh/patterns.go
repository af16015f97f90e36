package remesh

// splitPattern holds, for one of the three base subdivision shapes
// (subdivide-one, subdivide-two-adjacent, subdivide-all-three edges of a
// triangle), the diagonal cuts needed to re-triangulate the enlarged ring
// Phase 1's midpoint insertion produces. Index pairs are ring-local
// positions: position 2*i is original corner i, position 2*i+1 is the
// midpoint inserted on original edge i (present only when that edge was
// tagged; the ring is built by walking the three corners in order and
// splicing in a midpoint slot after each tagged one).
//
// This is the literal, non-recomputed form of the per-face split-pattern
// table spec.md §9 requires: which diagonals to cut is decided once here
// per tagged-edge-mask, not re-derived by a generic n-gon triangulator at
// remesh time, so every implementation consulting this table produces the
// same output triangulation for the same input. The canonical choice
// below is a fan from the first inserted midpoint to every non-adjacent
// ring vertex — sound for any of the 7 reachable masks (0 never reaches
// Phase 2, since a face with no tagged edge is never collected) and, for
// the three base shapes, exactly the one-edge/two-adjacent-edge/all-three
// topologies spec.md §9 names; masks differing only by rotation reduce to
// the same ring-index pattern once expressed relative to the lowest
// tagged bit, which this table does not need to enumerate separately.
type splitPattern struct {
	ringLen int
	// diagonals are ring-local index pairs, applied in order: each cut
	// shrinks the remaining ring, so later indices are always resolved
	// by vertex identity (via SplitFaceDiagonal's own loop lookup) rather
	// than by literal ring position.
	diagonals [][2]int
}

// splitPatterns is indexed by the 3-bit tagged-edge mask (bit i set when
// original edge i — between corner i and corner i+1 mod 3 — was split).
// Mask 0 is never consulted (no tagged edge means no Phase 2 work);
// patternForMask returns ok=false for it.
var splitPatterns = map[int]splitPattern{
	// one edge tagged: quad, 1 diagonal.
	0b001: {ringLen: 4, diagonals: [][2]int{{1, 3}}},
	0b010: {ringLen: 4, diagonals: [][2]int{{2, 0}}},
	0b100: {ringLen: 4, diagonals: [][2]int{{3, 1}}},

	// two adjacent edges tagged: pentagon, 2 diagonals, fanned from the
	// first tagged edge's midpoint.
	0b011: {ringLen: 5, diagonals: [][2]int{{1, 3}, {1, 4}}},
	0b110: {ringLen: 5, diagonals: [][2]int{{2, 4}, {2, 0}}},
	0b101: {ringLen: 5, diagonals: [][2]int{{1, 3}, {1, 4}}},

	// all three edges tagged: hexagon, 3 diagonals, fanned from the first
	// midpoint.
	0b111: {ringLen: 6, diagonals: [][2]int{{1, 3}, {1, 4}, {1, 5}}},
}

// patternForMask returns the split pattern for mask, if one exists.
func patternForMask(mask int) (splitPattern, bool) {
	p, ok := splitPatterns[mask]
	return p, ok
}
