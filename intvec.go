package succinct

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

// IntVector stores unsigned integers of a fixed bit width back to back
// with no padding between them. An element may straddle two words.
type IntVector struct {
	w     words
	width uint
	mask  uint64 // 1 << width - 1
	n     uint
}

// WidthFor returns the smallest width able to hold v. It is at least 1.
func WidthFor(v uint64) uint {
	if v == 0 {
		return 1
	}
	return uint(bits.Len64(v))
}

func checkWidth(width uint) error {
	if width == 0 || width > wordBits {
		return ErrInvalidWidth.New("width is %d but must be in [1, %d]", width, wordBits)
	}
	return nil
}

// NewIntVector returns an empty vector of width bit elements with room for
// capacity elements.
func NewIntVector(width, capacity uint) (*IntVector, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	return newIntVector(width, capacity), nil
}

func newIntVector(width, capacity uint) *IntVector {
	return &IntVector{
		w:     newWords(0, width*capacity),
		width: width,
		mask:  uint64(1)<<width - 1,
	}
}

// IntVectorFrom builds a vector from a sequence that is claimed to produce
// exactly n values. It fails with ErrValueOverflow if a value does not fit
// in width bits and with ErrLengthMismatch if the sequence produces more
// or fewer than n values.
func IntVectorFrom(width, n uint, seq iter.Seq[uint64]) (*IntVector, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	v := newIntVector(width, n)
	for val := range seq {
		if v.n == n {
			return nil, ErrLengthMismatch.New("sequence claimed %d values but produced more", n)
		}
		if err := v.Push(val); err != nil {
			return nil, err
		}
	}
	if v.n != n {
		return nil, ErrLengthMismatch.New("sequence claimed %d values but produced %d", n, v.n)
	}
	return v, nil
}

// IntVectorFromSlice builds a vector holding vals.
func IntVectorFromSlice(width uint, vals []uint64) (*IntVector, error) {
	return IntVectorFrom(width, uint(len(vals)), func(yield func(uint64) bool) {
		for _, val := range vals {
			if !yield(val) {
				return
			}
		}
	})
}

// Len returns the number of elements.
func (v *IntVector) Len() uint { return v.n }

// Width returns the number of bits used by each element.
func (v *IntVector) Width() uint { return v.width }

// Cap returns the number of elements the vector can hold before it has to
// reallocate.
func (v *IntVector) Cap() uint { return uint(cap(v.w.buf)) * wordBits / v.width }

// Raw returns the backing words. The slice aliases the vector and must
// not be written to.
func (v *IntVector) Raw() []uint64 { return v.w.Raw() }

func (v *IntVector) overflow(val uint64) error {
	return ErrValueOverflow.New("value %d does not fit in %d bits", val, v.width)
}

// Get returns the element at position i.
func (v *IntVector) Get(i uint) (uint64, error) {
	if i >= v.n {
		return 0, indexError(i, v.n)
	}
	return v.w.read(i*v.width, v.width), nil
}

// GetUnchecked is Get without the bounds check. The result is undefined
// for i >= Len and it may panic.
func (v *IntVector) GetUnchecked(i uint) uint64 { return v.w.read(i*v.width, v.width) }

// Set stores val at position i. It fails with ErrValueOverflow if val does
// not fit in Width bits, leaving the vector unchanged.
func (v *IntVector) Set(i uint, val uint64) error {
	if i >= v.n {
		return indexError(i, v.n)
	}
	if val > v.mask {
		return v.overflow(val)
	}
	v.w.write(i*v.width, v.width, val)
	return nil
}

// Push appends val. It fails with ErrValueOverflow if val does not fit in
// Width bits.
func (v *IntVector) Push(val uint64) error {
	if val > v.mask {
		return v.overflow(val)
	}
	v.push(val)
	return nil
}

func (v *IntVector) push(val uint64) {
	off := v.n * v.width
	v.w.Resize(off + v.width)
	v.w.write(off, v.width, val)
	v.n++
}

// Pop removes and returns the last element. ok is false if the vector is
// empty.
func (v *IntVector) Pop() (val uint64, ok bool) {
	if v.n == 0 {
		return 0, false
	}
	v.n--
	val = v.w.read(v.n*v.width, v.width)
	v.w.Resize(v.n * v.width)
	return val, true
}

// Resize sets the length to n, appending zeros or dropping elements from
// the end.
func (v *IntVector) Resize(n uint) {
	v.w.Resize(n * v.width)
	v.n = n
}

// Compress re-encodes the vector with the smallest width that holds its
// largest element.
func (v *IntVector) Compress() {
	var hi uint64
	for i := uint(0); i < v.n; i++ {
		if val := v.GetUnchecked(i); val > hi {
			hi = val
		}
	}

	width := WidthFor(hi)
	if width == v.width {
		return
	}

	out := newIntVector(width, v.n)
	for i := uint(0); i < v.n; i++ {
		out.push(v.GetUnchecked(i))
	}
	*v = *out
}

// Iter returns an iterator over the elements in order.
func (v *IntVector) Iter() IntIter { return IntIter{v: v} }

func (v *IntVector) All() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for it := v.Iter(); it.Next(); {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

func (v *IntVector) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := uint(0); i < v.n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, v.GetUnchecked(i))
	}
	b.WriteByte(']')
	return b.String()
}

//
// iterator
//

// IntIter walks the elements of an IntVector in order.
type IntIter struct {
	v   *IntVector
	i   uint
	val uint64
}

func (it *IntIter) Next() bool {
	if it.i >= it.v.n {
		return false
	}
	it.val = it.v.GetUnchecked(it.i)
	it.i++
	return true
}

// Value returns the element produced by the last call to Next.
func (it *IntIter) Value() uint64 { return it.val }

// Len returns the number of elements not yet produced.
func (it *IntIter) Len() uint { return it.v.n - it.i }
