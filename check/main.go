package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/bits"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/zeebo/errs"
	"github.com/zeebo/mon"
	"github.com/zeebo/mon/monhandler"
	"github.com/zeebo/pcg"
	"github.com/zeebo/succinct"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/cpu"
)

var (
	length   = flag.Uint("bits", 1<<24, "number of bits in the vector")
	density  = flag.Uint("density", 50, "percent of bits that are set")
	block    = flag.Uint("block", succinct.DefaultBlockSize, "bits per rank block")
	strategy = flag.String("strategy", "all", "select strategy: all, linear or binary-search")
	queries  = flag.Int("queries", 1000000, "number of rank queries per strategy")
	workers  = flag.Int("workers", runtime.GOMAXPROCS(0), "number of auditing goroutines")
	addr     = flag.String("addr", "", "serve monitoring on this address and wait for ctrl+c")

	rng pcg.T
)

func stats() {
	defer fmt.Println()

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	mon.Times(func(name string, state *mon.State) bool {
		sum, avg := state.Average()
		fmt.Fprintf(tw, "%s\t%v\t%v\t%v\n",
			name, state.Total(), time.Duration(sum), time.Duration(avg))
		return true
	})
}

func popcount() string {
	switch runtime.GOARCH {
	case "amd64", "386":
		return fmt.Sprintf("popcnt=%v", cpu.X86.HasPOPCNT)
	case "arm64":
		return fmt.Sprintf("asimd=%v", cpu.ARM64.HasASIMD)
	default:
		return "generic"
	}
}

func main() {
	flag.Parse()

	if *addr != "" {
		go func() {
			if err := http.ListenAndServe(*addr, monhandler.Handler{}); err != nil {
				log.Printf("%+v", errs.Wrap(err))
			}
		}()
	}

	if err := run(); err != nil {
		log.Fatalf("%+v", err)
	}
	stats()

	if *addr != "" {
		fmt.Println("done. waiting for ctrl+c...")
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT)
		<-ch
		fmt.Println()
	}
}

func strategies() ([]succinct.Strategy, error) {
	if *strategy == "all" {
		return succinct.Strategies, nil
	}
	strat, err := succinct.ParseStrategy(*strategy)
	if err != nil {
		return nil, err
	}
	return []succinct.Strategy{strat}, nil
}

func run() error {
	if *density > 100 {
		return errs.New("density %d is not a percent", *density)
	}
	if *workers < 1 {
		return errs.New("need at least one worker")
	}
	strats, err := strategies()
	if err != nil {
		return err
	}

	fmt.Printf("arch: %s %s\n", runtime.GOARCH, popcount())

	n := *length
	bv := succinct.BitVectorWithCapacity(n)
	for i := uint(0); i < n; i++ {
		bv.Push(uint(rng.Uint32n(100)) < *density)
	}

	// prefix counts at every word boundary, computed without the index.
	raw := bv.Raw()
	prefix := make([]uint, len(raw)+1)
	for i, word := range raw {
		prefix[i+1] = prefix[i] + uint(bits.OnesCount64(word))
	}
	oracle := func(i uint) uint {
		r := prefix[i/64]
		if off := i % 64; off != 0 {
			r += uint(bits.OnesCount64(raw[i/64] & (1<<off - 1)))
		}
		return r
	}

	qs := make([]uint, *queries)
	for i := range qs {
		qs[i] = uint(rng.Uint64() % uint64(n+1))
	}

	var indexes []*succinct.FlatPopcount
	for _, strat := range strats {
		f, err := succinct.Build(bv, succinct.Options{BlockSize: *block, Strategy: strat})
		if err != nil {
			return errs.Wrap(err)
		}
		indexes = append(indexes, f)

		fmt.Printf("%s: len: %d ones: %d blocks: %d width: %d\n",
			strat, f.Len(), f.Ones(), f.Blocks(), f.CounterWidth())
	}

	for _, f := range indexes {
		if err := audit(context.Background(), f, indexes[0], qs, oracle); err != nil {
			return errs.Wrap(err)
		}
		fmt.Printf("%s: audited %d queries\n", f.Strategy(), len(qs))
	}

	return nil
}

// audit checks rank against the oracle, select against rank, and every
// answer against the reference index.
func audit(ctx context.Context, f, ref *succinct.FlatPopcount, qs []uint, oracle func(uint) uint) (err error) {
	defer mon.Start().Stop(&err)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < *workers; w++ {
		g.Go(func() error {
			for i := w; i < len(qs); i += *workers {
				if i%4096 == 0 && ctx.Err() != nil {
					return nil
				}

				q := qs[i]
				r, err := f.Rank(q)
				if err != nil {
					return err
				}
				if exp := oracle(q); r != exp {
					return errs.New("%s: rank(%d) = %d, want %d", f.Strategy(), q, r, exp)
				}

				if r == f.Ones() {
					continue
				}
				s, err := f.Select(r)
				if err != nil {
					return err
				}
				if s < q || oracle(s) != r || oracle(s+1) != r+1 {
					return errs.New("%s: select(%d) = %d after rank(%d)", f.Strategy(), r, s, q)
				}

				if f != ref {
					exp, err := ref.Select(r)
					if err != nil {
						return err
					}
					if s != exp {
						return errs.New("%s: select(%d) = %d but %s gives %d",
							f.Strategy(), r, s, ref.Strategy(), exp)
					}
				}
			}
			return nil
		})
	}
	return g.Wait()
}
