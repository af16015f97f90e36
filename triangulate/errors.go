package triangulate

import "errors"

// ErrTooFewVertices indicates a loop with fewer than 3 vertices was
// handed to a Triangulator.
var ErrTooFewVertices = errors.New("triangulate: loop has fewer than 3 vertices")
