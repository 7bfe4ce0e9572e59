package succinct

import "github.com/zeebo/errs"

// Error classes returned by the package. Use Has to test for a kind, for
// example ErrOutOfRange.Has(err).
var (
	ErrIndexOutOfBounds = errs.Class("index out of bounds")
	ErrInvalidRange     = errs.Class("invalid range")
	ErrInvalidWidth     = errs.Class("invalid width")
	ErrValueOverflow    = errs.Class("value overflow")
	ErrLengthMismatch   = errs.Class("length mismatch")
	ErrOutOfRange       = errs.Class("out of range")
	ErrInvalidBlockSize = errs.Class("invalid block size")
	ErrInvalidStrategy  = errs.Class("invalid strategy")
)

func indexError(i, n uint) error {
	return ErrIndexOutOfBounds.New("index is %d but length is %d", i, n)
}

func rangeError(start, end, n uint) error {
	return ErrInvalidRange.New("range [%d, %d) not within [0, %d)", start, end, n)
}
