package nodes

import "errors"

// ErrCorruptLeafIndex indicates a face or vertex claims a leaf index the
// Hierarchy collaborator doesn't recognize — the one fatal condition
// spec.md §7 names ("a corrupted leaf-index side-table"), reported up to
// the host rather than handled locally.
var ErrCorruptLeafIndex = errors.New("nodes: corrupt leaf index")
