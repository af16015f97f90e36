package attrs

// SliceStore is a reference Store backed by fixed-width []float64 blocks.
// It exists so the remesh packages can be exercised end-to-end without a
// host-supplied attribute system; a production sculpt tool would bring its
// own Store wrapping its native mask/UV/material layout instead (spec.md
// §1 lists custom attribute storage as an external collaborator).
type SliceStore struct {
	width int
	data  map[BlockID][]float64
	next  BlockID
}

// NewSliceStore creates a store whose blocks each hold width float64
// components (e.g. width=1 for a scalar mask, width=2 for a UV pair).
func NewSliceStore(width int) *SliceStore {
	return &SliceStore{
		width: width,
		data:  make(map[BlockID][]float64),
		next:  1, // 0 is reserved as NullBlock
	}
}

// NullBlock returns the sentinel meaning "no attribute data".
func (s *SliceStore) NullBlock() BlockID { return 0 }

// Alloc reserves a new block, seeding it from copyFrom if that block
// exists and is not NullBlock.
func (s *SliceStore) Alloc(copyFrom BlockID) BlockID {
	id := s.next
	s.next++

	block := make([]float64, s.width)
	if src, ok := s.data[copyFrom]; ok {
		copy(block, src)
	}
	s.data[id] = block
	return id
}

// Free releases a block's storage.
func (s *SliceStore) Free(id BlockID) {
	if id == s.NullBlock() {
		return
	}
	delete(s.data, id)
}

// Interp writes the weighted sum of srcs into dst.
func (s *SliceStore) Interp(dst BlockID, srcs []BlockID, weights []float64) {
	out := s.ensure(dst)
	for i := range out {
		out[i] = 0
	}
	for i, src := range srcs {
		block, ok := s.data[src]
		if !ok {
			continue
		}
		w := weights[i]
		for k := 0; k < s.width && k < len(block); k++ {
			out[k] += block[k] * w
		}
	}
}

// Copy overwrites dst with src's contents.
func (s *SliceStore) Copy(src, dst BlockID) {
	out := s.ensure(dst)
	in, ok := s.data[src]
	if !ok {
		return
	}
	copy(out, in)
}

// Swap exchanges a and b's contents in place (their BlockIDs are
// unchanged, only the data backing them moves).
func (s *SliceStore) Swap(a, b BlockID) {
	ba := s.ensure(a)
	bb := s.ensure(b)
	for i := 0; i < s.width; i++ {
		ba[i], bb[i] = bb[i], ba[i]
	}
}

// Value returns a copy of a block's components, for tests and debugging.
func (s *SliceStore) Value(id BlockID) []float64 {
	block, ok := s.data[id]
	if !ok {
		return nil
	}
	out := make([]float64, len(block))
	copy(out, block)
	return out
}

func (s *SliceStore) ensure(id BlockID) []float64 {
	if id == s.NullBlock() {
		// Writes to the null block are discarded; reading it always
		// yields the zero block.
		return make([]float64, s.width)
	}
	block, ok := s.data[id]
	if !ok {
		block = make([]float64, s.width)
		s.data[id] = block
	}
	return block
}
