package succinct

import (
	"iter"
	"strings"
)

// Bits is a read-only view of a bit sequence. Positions are relative to
// the start of the view. Slice and SliceMut implement it.
//
// A view borrows the storage of the vector it was taken from. It must not
// be used after a call that changes the length of that vector.
type Bits interface {
	Len() uint
	Get(i uint) (bool, error)
	Ones() uint
	Slice(start, end uint) (Slice, error)
	SplitAt(i uint) (Slice, Slice, error)
	Iter() Iter
	All() iter.Seq[bool]
	String() string

	view() bitRange
}

// MutBits is a view that can also change the bits it covers. Two
// overlapping MutBits must never be used at the same time.
type MutBits interface {
	Bits
	Set(i uint, v bool) error
	Flip(i uint) error
	Fill(v bool)
	SliceMut(start, end uint) (SliceMut, error)
	SplitAtMut(i uint) (SliceMut, SliceMut, error)
}

var (
	_ Bits    = Slice{}
	_ MutBits = SliceMut{}
)

// bitRange is the representation shared by both kinds of view: the bits
// [start, end) of w.
type bitRange struct {
	w          *words
	start, end uint
}

func (r bitRange) view() bitRange { return r }

// Len returns the number of bits in the view.
func (r bitRange) Len() uint { return r.end - r.start }

// Get returns the bit at position i of the view.
func (r bitRange) Get(i uint) (bool, error) {
	if i >= r.Len() {
		return false, indexError(i, r.Len())
	}
	return r.w.bit(r.start + i), nil
}

// Ones returns the number of set bits in the view.
func (r bitRange) Ones() uint {
	if r.w == nil {
		return 0
	}
	return r.w.ones(r.start, r.end)
}

func (r bitRange) sub(start, end uint) (bitRange, error) {
	if start > end || end > r.Len() {
		return bitRange{}, rangeError(start, end, r.Len())
	}
	return bitRange{w: r.w, start: r.start + start, end: r.start + end}, nil
}

func (r bitRange) split(i uint) (bitRange, bitRange, error) {
	if i > r.Len() {
		return bitRange{}, bitRange{}, rangeError(i, r.Len(), r.Len())
	}
	mid := r.start + i
	return bitRange{w: r.w, start: r.start, end: mid},
		bitRange{w: r.w, start: mid, end: r.end}, nil
}

// Iter returns an iterator over the bits of the view.
func (r bitRange) Iter() Iter { return Iter{w: r.w, pos: r.start, end: r.end} }

func (r bitRange) All() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for it := r.Iter(); it.Next(); {
			if !yield(it.Bool()) {
				return
			}
		}
	}
}

func (r bitRange) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for it := r.Iter(); it.Next(); {
		if it.pos-1 > r.start {
			b.WriteString(", ")
		}
		if it.Bool() {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	b.WriteByte('}')
	return b.String()
}

// Slice is a read-only view of a bit range.
type Slice struct{ bitRange }

// Slice returns the view [start, end) of s. It fails with ErrInvalidRange
// unless start <= end <= Len().
func (s Slice) Slice(start, end uint) (Slice, error) {
	r, err := s.sub(start, end)
	return Slice{r}, err
}

// SplitAt returns the views [0, i) and [i, Len()).
func (s Slice) SplitAt(i uint) (Slice, Slice, error) {
	a, b, err := s.split(i)
	return Slice{a}, Slice{b}, err
}

// SliceMut is a read-write view of a bit range.
type SliceMut struct{ bitRange }

// ReadOnly returns a read-only view of the same range.
func (s SliceMut) ReadOnly() Slice { return Slice(s) }

func (s SliceMut) Slice(start, end uint) (Slice, error) {
	r, err := s.sub(start, end)
	return Slice{r}, err
}

func (s SliceMut) SplitAt(i uint) (Slice, Slice, error) {
	a, b, err := s.split(i)
	return Slice{a}, Slice{b}, err
}

// SliceMut returns the read-write view [start, end) of s.
func (s SliceMut) SliceMut(start, end uint) (SliceMut, error) {
	r, err := s.sub(start, end)
	return SliceMut{r}, err
}

// SplitAtMut returns the disjoint views [0, i) and [i, Len()). Both may
// be written to independently.
func (s SliceMut) SplitAtMut(i uint) (SliceMut, SliceMut, error) {
	a, b, err := s.split(i)
	return SliceMut{a}, SliceMut{b}, err
}

// Set stores v at position i of the view.
func (s SliceMut) Set(i uint, v bool) error {
	if i >= s.Len() {
		return indexError(i, s.Len())
	}
	s.w.setBit(s.start+i, v)
	return nil
}

// Flip inverts the bit at position i of the view.
func (s SliceMut) Flip(i uint) error {
	if i >= s.Len() {
		return indexError(i, s.Len())
	}
	s.w.flipBit(s.start + i)
	return nil
}

// Fill sets every bit of the view to v, a word at a time.
func (s SliceMut) Fill(v bool) {
	for off := s.start; off < s.end; {
		width := min(wordBits-off&wordMask, s.end-off)
		var val uint64
		if v {
			val = 1<<width - 1
		}
		s.w.write(off, width, val)
		off += width
	}
}

// Equal reports whether a and b hold the same bits. The backing storage
// and offsets of the views do not matter.
func Equal(a, b Bits) bool {
	x, y := a.view(), b.view()
	if x.Len() != y.Len() {
		return false
	}
	for off, n := uint(0), x.Len(); off < n; off += wordBits {
		width := min(wordBits, n-off)
		if x.w.read(x.start+off, width) != y.w.read(y.start+off, width) {
			return false
		}
	}
	return true
}

//
// iterator
//

// Iter walks the bits of a view in order.
//
//	for it := s.Iter(); it.Next(); {
//		fmt.Println(it.Bool())
//	}
type Iter struct {
	w        *words
	pos, end uint
	val      bool
}

// Next advances to the next bit, reporting false when there are none.
func (it *Iter) Next() bool {
	if it.pos >= it.end {
		return false
	}
	it.val = it.w.bit(it.pos)
	it.pos++
	return true
}

// Bool returns the bit produced by the last call to Next.
func (it *Iter) Bool() bool { return it.val }

// Len returns the number of bits not yet produced.
func (it *Iter) Len() uint { return it.end - it.pos }
