package succinct

import "iter"

// BitVector is a growable sequence of bits.
//
// Views returned by AsSlice and AsSliceMut borrow the vector's storage and
// become invalid after any call that changes its length (Push, Pop,
// Resize). A FlatPopcount built over the vector becomes invalid after any
// mutation at all.
type BitVector struct {
	w words
}

// NewBitVector returns an empty vector.
func NewBitVector() *BitVector { return new(BitVector) }

// BitVectorWithCapacity returns an empty vector with room for n bits.
func BitVectorWithCapacity(n uint) *BitVector {
	return &BitVector{w: newWords(0, n)}
}

// NewZeroed returns a vector of n zero bits.
func NewZeroed(n uint) *BitVector {
	return &BitVector{w: newWords(n, n)}
}

// FromSeq builds a vector from a sequence that is claimed to produce
// exactly n bits. It fails with ErrLengthMismatch if it produces more or
// fewer.
func FromSeq(n uint, seq iter.Seq[bool]) (*BitVector, error) {
	bv := BitVectorWithCapacity(n)
	for v := range seq {
		if bv.w.n == n {
			return nil, ErrLengthMismatch.New("sequence claimed %d bits but produced more", n)
		}
		bv.w.push(v)
	}
	if bv.w.n != n {
		return nil, ErrLengthMismatch.New("sequence claimed %d bits but produced %d", n, bv.w.n)
	}
	return bv, nil
}

// FromBools builds a vector holding bs.
func FromBools(bs []bool) *BitVector {
	bv := BitVectorWithCapacity(uint(len(bs)))
	for _, v := range bs {
		bv.w.push(v)
	}
	return bv
}

// Len returns the number of bits.
func (bv *BitVector) Len() uint { return bv.w.n }

// Cap returns the number of bits the vector can hold before it has to
// reallocate.
func (bv *BitVector) Cap() uint { return uint(cap(bv.w.buf)) * wordBits }

// Push appends v, growing the storage when the last word is full.
func (bv *BitVector) Push(v bool) { bv.w.push(v) }

// Pop removes and returns the last bit. ok is false if the vector is
// empty.
func (bv *BitVector) Pop() (v, ok bool) { return bv.w.pop() }

// Get returns the bit at position i.
func (bv *BitVector) Get(i uint) (bool, error) { return bv.w.Get(i) }

// Set stores v at position i.
func (bv *BitVector) Set(i uint, v bool) error { return bv.w.Set(i, v) }

// Flip inverts the bit at position i.
func (bv *BitVector) Flip(i uint) error {
	if i >= bv.w.n {
		return indexError(i, bv.w.n)
	}
	bv.w.flipBit(i)
	return nil
}

// Resize sets the length to n, appending zero bits or dropping bits from
// the end.
func (bv *BitVector) Resize(n uint) { bv.w.Resize(n) }

// Ones returns the number of set bits.
func (bv *BitVector) Ones() uint { return bv.w.ones(0, bv.w.n) }

// Raw returns the backing words, least significant bit first. Bits past
// Len are zero. The slice aliases the vector and must not be written to.
func (bv *BitVector) Raw() []uint64 { return bv.w.Raw() }

// AsSlice returns a read-only view of the whole vector.
func (bv *BitVector) AsSlice() Slice {
	return Slice{bitRange{w: &bv.w, start: 0, end: bv.w.n}}
}

// AsSliceMut returns a read-write view of the whole vector.
func (bv *BitVector) AsSliceMut() SliceMut {
	return SliceMut{bitRange{w: &bv.w, start: 0, end: bv.w.n}}
}

// Iter returns an iterator over the bits in order.
func (bv *BitVector) Iter() Iter { return bv.AsSlice().Iter() }

func (bv *BitVector) All() iter.Seq[bool] { return bv.AsSlice().All() }

// Equal reports whether the vector holds the same bits as b.
func (bv *BitVector) Equal(b Bits) bool { return Equal(bv.AsSlice(), b) }

// Clone returns a copy that shares no storage with bv.
func (bv *BitVector) Clone() *BitVector { return &BitVector{w: bv.w.clone()} }

func (bv *BitVector) String() string { return bv.AsSlice().String() }
