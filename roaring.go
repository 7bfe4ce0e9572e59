package succinct

import (
	"math"
	"math/bits"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/zeebo/mon"
)

// FromRoaring returns a vector of n bits with the members of bm set. It
// fails with ErrIndexOutOfBounds if bm has a member >= n.
func FromRoaring(bm *roaring.Bitmap, n uint) (_ *BitVector, err error) {
	defer mon.Start().Stop(&err)

	if !bm.IsEmpty() {
		if hi := uint(bm.Maximum()); hi >= n {
			return nil, indexError(hi, n)
		}
	}

	bv := NewZeroed(n)
	for it := bm.Iterator(); it.HasNext(); {
		bv.w.setBit(uint(it.Next()), true)
	}
	return bv, nil
}

// Roaring returns a bitmap holding the positions of the set bits. It fails
// with ErrOutOfRange if a set bit does not fit in 32 bits.
func (bv *BitVector) Roaring() (_ *roaring.Bitmap, err error) {
	defer mon.Start().Stop(&err)

	bm := roaring.New()
	for idx, word := range bv.w.buf {
		for ; word != 0; word &= word - 1 {
			pos := uint(idx)<<wordExp + uint(bits.TrailingZeros64(word))
			if pos > math.MaxUint32 {
				return nil, ErrOutOfRange.New("bit %d does not fit in a roaring bitmap", pos)
			}
			bm.Add(uint32(pos))
		}
	}
	return bm, nil
}
