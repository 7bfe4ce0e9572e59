package succinct

import "strings"

// DefaultBlockSize is the number of bits per rank block used when
// Options.BlockSize is zero.
const DefaultBlockSize = 512

// Strategy selects how Select finds the block holding the requested bit.
// Every strategy returns the same answers.
type Strategy uint8

const (
	// Linear scans the cumulative counts from the first block.
	Linear Strategy = iota

	// BinarySearch bisects the cumulative counts.
	BinarySearch
)

func (s Strategy) String() string {
	switch s {
	case Linear:
		return "linear"
	case BinarySearch:
		return "binary-search"
	default:
		return "unknown"
	}
}

// ParseStrategy returns the strategy named by s.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return Linear, nil
	case "binary-search", "binary":
		return BinarySearch, nil
	default:
		return 0, ErrInvalidStrategy.New("unknown strategy %q", s)
	}
}

// Strategies lists every strategy.
var Strategies = []Strategy{Linear, BinarySearch}

// Options configures Build.
type Options struct {
	// BlockSize is the number of bits covered by each cumulative count.
	// It must be a power of two. Zero means DefaultBlockSize.
	BlockSize uint

	// Strategy is the block localization algorithm used by Select.
	Strategy Strategy
}

func DefaultOptions() Options {
	return Options{BlockSize: DefaultBlockSize, Strategy: Linear}
}

func (o Options) normalize() (Options, error) {
	if o.BlockSize == 0 {
		o.BlockSize = DefaultBlockSize
	}
	if o.BlockSize&(o.BlockSize-1) != 0 {
		return o, ErrInvalidBlockSize.New("block size %d is not a power of two", o.BlockSize)
	}
	switch o.Strategy {
	case Linear, BinarySearch:
	default:
		return o, ErrInvalidStrategy.New("unknown strategy %d", uint8(o.Strategy))
	}
	return o, nil
}
