package succinct

import (
	"math/bits"

	"github.com/zeebo/mon"
)

//
// the index keeps one cumulative count per block of B bits
//
// | counts[0] = 0 | counts[1] | ... | counts[blocks] = ones |
//
// counts[j] is the number of set bits in [0, j*B). the last entry is the
// total population, which lets rank(len) read a count even when len is a
// multiple of B. counts are packed at the bit width of the population.
//
// rank adds the popcount of the partial block to the count of the block.
// select first finds the block holding the bit, which is the largest j
// with counts[j] <= k, and then scans the words of that block.
//
// | samples[0] | samples[1] | ... |
//
// samples[m] is the block holding the one of rank m*sampleRate. the block
// holding the one of rank k lies in [samples[m], samples[m+1]] for
// m = k/sampleRate, so block localization starts from the nearest sample.
//

// FlatPopcount answers rank and select queries over a BitVector. It is
// immutable once built and safe for concurrent use. It reads the words of
// the vector it was built from: mutating that vector invalidates it.
type FlatPopcount struct {
	buf     []uint64
	n       uint
	shift   uint // log2 of the block size
	counts  *IntVector
	samples *IntVector
	ones    uint
	strat   Strategy
}

// sampleRate is the number of ones between entries of the select samples.
const sampleRate = 8192

// Build constructs the index over bv.
func Build(bv *BitVector, opts Options) (_ *FlatPopcount, err error) {
	defer mon.Start().Stop(&err)

	opts, err = opts.normalize()
	if err != nil {
		return nil, err
	}

	buf, n := bv.w.buf, bv.w.n
	shift := uint(bits.TrailingZeros(opts.BlockSize))
	blocks := (n + opts.BlockSize - 1) >> shift
	ones := onesIn(buf, 0, n)

	counts := newIntVector(WidthFor(uint64(ones)), blocks+1)
	samples := newIntVector(WidthFor(uint64(blocks)), ones/sampleRate+1)
	acc, target := uint(0), uint(0)
	for j := uint(0); j < blocks; j++ {
		counts.push(uint64(acc))
		acc += onesIn(buf, j<<shift, min((j+1)<<shift, n))
		for ; target < acc; target += sampleRate {
			samples.push(uint64(j))
		}
	}
	counts.push(uint64(acc))

	return &FlatPopcount{
		buf:     buf,
		n:       n,
		shift:   shift,
		counts:  counts,
		samples: samples,
		ones:    ones,
		strat:   opts.Strategy,
	}, nil
}

// Len returns the number of bits in the indexed vector.
func (f *FlatPopcount) Len() uint { return f.n }

// Ones returns the number of set bits in the indexed vector.
func (f *FlatPopcount) Ones() uint { return f.ones }

// BlockSize returns the number of bits covered by each cumulative count.
func (f *FlatPopcount) BlockSize() uint { return 1 << f.shift }

// Strategy returns the block localization algorithm used by Select.
func (f *FlatPopcount) Strategy() Strategy { return f.strat }

// Blocks returns the number of blocks, not counting the sentinel.
func (f *FlatPopcount) Blocks() uint { return f.counts.Len() - 1 }

// CounterWidth returns the bit width of each stored cumulative count.
func (f *FlatPopcount) CounterWidth() uint { return f.counts.Width() }

func (f *FlatPopcount) countAt(j uint) uint  { return uint(f.counts.GetUnchecked(j)) }
func (f *FlatPopcount) sampleAt(m uint) uint { return uint(f.samples.GetUnchecked(m)) }

// Cumulative returns the number of set bits before block j. j may be
// Blocks(), in which case it is the total population.
func (f *FlatPopcount) Cumulative(j uint) (uint, error) {
	v, err := f.counts.Get(j)
	return uint(v), err
}

// Get returns the bit at position i.
func (f *FlatPopcount) Get(i uint) (bool, error) {
	if i >= f.n {
		return false, indexError(i, f.n)
	}
	return f.buf[i>>wordExp]>>(i&wordMask)&1 != 0, nil
}

// Rank returns the number of set bits in [0, i). i may be Len().
func (f *FlatPopcount) Rank(i uint) (uint, error) {
	if i > f.n {
		return 0, ErrIndexOutOfBounds.New("rank position is %d but length is %d", i, f.n)
	}
	return f.rank(i), nil
}

// RankZero returns the number of unset bits in [0, i). i may be Len().
func (f *FlatPopcount) RankZero(i uint) (uint, error) {
	if i > f.n {
		return 0, ErrIndexOutOfBounds.New("rank position is %d but length is %d", i, f.n)
	}
	return i - f.rank(i), nil
}

func (f *FlatPopcount) rank(i uint) uint {
	j := i >> f.shift
	return f.countAt(j) + onesIn(f.buf, j<<f.shift, i)
}

// Select returns the position of the set bit with rank k, counting from
// zero: Select(0) is the first set bit. It fails with ErrOutOfRange if
// k >= Ones().
func (f *FlatPopcount) Select(k uint) (uint, error) {
	if k >= f.ones {
		return 0, ErrOutOfRange.New("select of one %d but there are %d ones", k, f.ones)
	}

	var j uint
	switch f.strat {
	case Linear:
		j = f.findBlockLinear(k)
	case BinarySearch:
		j = f.findBlockBinary(k)
	}

	return f.scan(j<<f.shift, k-f.countAt(j)), nil
}

// bounds returns the first and last block that can hold the one of rank k.
func (f *FlatPopcount) bounds(k uint) (first, last uint) {
	m := k / sampleRate
	first, last = f.sampleAt(m), f.Blocks()-1
	if m+1 < f.samples.Len() {
		last = f.sampleAt(m + 1)
	}
	return first, last
}

// findBlockLinear returns the largest j with counts[j] <= k, scanning
// forward from the preceding sample. The final count is the population,
// which is larger than k, so it stops in range.
func (f *FlatPopcount) findBlockLinear(k uint) uint {
	j, _ := f.bounds(k)
	for f.countAt(j+1) <= k {
		j++
	}
	return j
}

// findBlockBinary returns the same block as findBlockLinear by searching
// for the first count larger than k between the surrounding samples.
// counts[first] <= k and counts[last+1] > k.
func (f *FlatPopcount) findBlockBinary(k uint) uint {
	first, last := f.bounds(k)
	lo, hi := first+1, last+1
	for lo < hi {
		mid := lo + (hi-lo)/2
		if f.countAt(mid) > k {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo - 1
}

// scan returns the position of the set bit with rank r counted from pos.
// There must be more than r set bits at or after pos.
func (f *FlatPopcount) scan(pos, r uint) uint {
	idx, off := pos>>wordExp, pos&wordMask

check:
	word := f.buf[idx] >> off

	// use popcount to traverse a word at a time.
	if count := uint(bits.OnesCount64(word)); count <= r {
		r -= count
		idx, off = idx+1, 0
		goto check
	}

	return idx<<wordExp + off + selectInWord(word, r)
}

// selectInWord returns the index of the set bit with rank r in word. word
// must have more than r set bits.
func selectInWord(word uint64, r uint) uint {
	acc := uint(0)

	// narrow down to the byte holding the bit.
	if count := uint(bits.OnesCount32(uint32(word))); count <= r {
		acc += 32
		word >>= 32
		r -= count
	}
	if count := uint(bits.OnesCount16(uint16(word))); count <= r {
		acc += 16
		word >>= 16
		r -= count
	}
	if count := uint(bits.OnesCount8(uint8(word))); count <= r {
		acc += 8
		word >>= 8
		r -= count
	}

	// clear off the r lowest order bits in word
	for ; r > 0; r-- {
		word &= word - 1
	}

	return acc + uint(bits.TrailingZeros64(word))
}
