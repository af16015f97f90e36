package mesh

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// CASVertexPosition atomically replaces v's position with newCo, but only
// if it still equals old, coordinate by coordinate. It reports whether the
// swap happened. Go has no atomic float64, so each coordinate is bit-cast
// to uint64 and swapped through unsafe.Pointer — the standard workaround
// for C8's requirement that concurrent scan workers smoothing a vertex
// shared between two leaves never torn-write its position (spec.md §4.8).
//
// A partial failure (the first coordinate's CAS lost a race after the
// second or third already succeeded) cannot happen: X is attempted first
// and only proceeds to Y/Z on success, so a caller never observes a
// position with some coordinates updated and others not.
func (m *Mesh) CASVertexPosition(v VertexID, old, newCo Vec3) bool {
	vert := &m.verts[v]
	if !casFloat64(&vert.Co.X, old.X, newCo.X) {
		return false
	}
	if !casFloat64(&vert.Co.Y, old.Y, newCo.Y) {
		// Undo the X swap so a failed call never leaves a half-written
		// position behind.
		casFloat64(&vert.Co.X, newCo.X, old.X)
		return false
	}
	if !casFloat64(&vert.Co.Z, old.Z, newCo.Z) {
		casFloat64(&vert.Co.Y, newCo.Y, old.Y)
		casFloat64(&vert.Co.X, newCo.X, old.X)
		return false
	}
	return true
}

func casFloat64(addr *float64, old, new float64) bool {
	return atomic.CompareAndSwapUint64(
		(*uint64)(unsafe.Pointer(addr)),
		math.Float64bits(old),
		math.Float64bits(new),
	)
}
