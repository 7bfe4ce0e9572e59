package succinct

import "math/bits"

const (
	wordBits = 64
	wordExp  = 6
	wordMask = wordBits - 1
)

// words is the storage every structure in the package is built on. Bit i
// lives in word i/64 at bit i%64, least significant bit first. Exactly
// wordsFor(n) words are in use and every bit at a position >= n is zero.
type words struct {
	buf []uint64
	n   uint // logical length in bits
}

func wordsFor(n uint) uint { return (n + wordMask) >> wordExp }

func newWords(n, capacity uint) words {
	if capacity < n {
		capacity = n
	}
	return words{
		buf: make([]uint64, wordsFor(n), wordsFor(capacity)),
		n:   n,
	}
}

func (w *words) Len() uint { return w.n }

// Raw returns the words in use. The slice aliases the storage and must
// be treated as read-only.
func (w *words) Raw() []uint64 { return w.buf }

func (w *words) Get(i uint) (bool, error) {
	if i >= w.n {
		return false, indexError(i, w.n)
	}
	return w.bit(i), nil
}

func (w *words) Set(i uint, v bool) error {
	if i >= w.n {
		return indexError(i, w.n)
	}
	w.setBit(i, v)
	return nil
}

func (w *words) bit(i uint) bool { return w.buf[i>>wordExp]>>(i&wordMask)&1 != 0 }

func (w *words) setBit(i uint, v bool) {
	if v {
		w.buf[i>>wordExp] |= 1 << (i & wordMask)
	} else {
		w.buf[i>>wordExp] &^= 1 << (i & wordMask)
	}
}

func (w *words) flipBit(i uint) { w.buf[i>>wordExp] ^= 1 << (i & wordMask) }

// reserve makes room for n bits, at least doubling the allocation when it
// has to grow.
func (w *words) reserve(n uint) {
	need := wordsFor(n)
	if need <= uint(cap(w.buf)) {
		return
	}
	size := 2 * uint(cap(w.buf))
	if size < need {
		size = need
	}
	buf := make([]uint64, len(w.buf), size)
	copy(buf, w.buf)
	w.buf = buf
}

// Resize sets the length to n bits. Growing appends zero bits, shrinking
// clears the bits that fall past the new end of the last word.
func (w *words) Resize(n uint) {
	switch {
	case n < w.n:
		w.n = n
		w.buf = w.buf[:wordsFor(n)]
		w.clearPadding()

	case n > w.n:
		w.reserve(n)
		old := len(w.buf)
		w.buf = w.buf[:wordsFor(n)]
		clear(w.buf[old:]) // may be stale from an earlier shrink
		w.n = n
	}
}

func (w *words) clearPadding() {
	if off := w.n & wordMask; off != 0 {
		w.buf[len(w.buf)-1] &= 1<<off - 1
	}
}

func (w *words) push(v bool) {
	if w.n&wordMask == 0 {
		w.reserve(w.n + 1)
		w.buf = append(w.buf, 0)
	}
	if v {
		w.buf[w.n>>wordExp] |= 1 << (w.n & wordMask)
	}
	w.n++
}

func (w *words) pop() (v, ok bool) {
	if w.n == 0 {
		return false, false
	}
	w.n--
	v = w.bit(w.n)
	w.setBit(w.n, false)
	if w.n&wordMask == 0 {
		w.buf = w.buf[:len(w.buf)-1]
	}
	return v, true
}

// read returns the width bits starting at bit off in the low order bits
// of the result. width must be in [1, 64] and the field must be in use.
func (w *words) read(off, width uint) uint64 {
	idx, shift := off>>wordExp, off&wordMask
	val := w.buf[idx] >> shift

	// the field continues into the next word.
	if shift+width > wordBits {
		val |= w.buf[idx+1] << (wordBits - shift)
	}

	// shifting by 64 yields zero, so this is all ones for width 64.
	return val & (1<<width - 1)
}

// write stores the low width bits of val at bit off. val must not have
// any bits set at or above width.
func (w *words) write(off, width uint, val uint64) {
	idx, shift := off>>wordExp, off&wordMask
	mask := uint64(1)<<width - 1

	w.buf[idx] = w.buf[idx]&^(mask<<shift) | val<<shift
	if shift+width > wordBits {
		rest := wordBits - shift
		w.buf[idx+1] = w.buf[idx+1]&^(mask>>rest) | val>>rest
	}
}

func (w *words) ones(start, end uint) uint { return onesIn(w.buf, start, end) }

func (w *words) clone() words {
	buf := make([]uint64, len(w.buf))
	copy(buf, w.buf)
	return words{buf: buf, n: w.n}
}

// onesIn counts the set bits of buf in [start, end).
func onesIn(buf []uint64, start, end uint) uint {
	if start >= end {
		return 0
	}

	first, last := start>>wordExp, (end-1)>>wordExp
	lo := ^uint64(0) << (start & wordMask)
	hi := ^uint64(0) >> (wordMask - ((end - 1) & wordMask))

	if first == last {
		return uint(bits.OnesCount64(buf[first] & lo & hi))
	}

	n := bits.OnesCount64(buf[first] & lo)
	for _, word := range buf[first+1 : last] {
		n += bits.OnesCount64(word)
	}
	return uint(n + bits.OnesCount64(buf[last]&hi))
}
