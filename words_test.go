package succinct

import (
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/pcg"
)

// assertPadding checks that no bit past the logical length is set.
func assertPadding(t *testing.T, w *words) {
	t.Helper()
	assert.Equal(t, uint(len(w.buf)), wordsFor(w.n))
	if off := w.n & wordMask; off != 0 {
		assert.Equal(t, w.buf[len(w.buf)-1]>>off, uint64(0))
	}
}

func TestWords(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		w := newWords(130, 0)

		assert.NoError(t, w.Set(0, true))
		assert.NoError(t, w.Set(64, true))
		assert.NoError(t, w.Set(129, true))

		assert.Equal(t, w.buf[0], uint64(1))
		assert.Equal(t, w.buf[1], uint64(1))
		assert.Equal(t, w.buf[2], uint64(2))

		v, err := w.Get(129)
		assert.NoError(t, err)
		assert.That(t, v)

		_, err = w.Get(130)
		assert.That(t, ErrIndexOutOfBounds.Has(err))
		assert.That(t, ErrIndexOutOfBounds.Has(w.Set(130, true)))
	})

	t.Run("Round Trip", func(t *testing.T) {
		const n = 1000
		w := newWords(n, 0)
		exp := make([]bool, n)

		for j := 0; j < 5000; j++ {
			i, v := uint(pcg.Uint32n(n)), pcg.Uint32n(2) == 1
			assert.NoError(t, w.Set(i, v))
			exp[i] = v
		}

		for i := uint(0); i < n; i++ {
			v, err := w.Get(i)
			assert.NoError(t, err)
			assert.Equal(t, v, exp[i])
		}
	})

	t.Run("Resize", func(t *testing.T) {
		w := newWords(200, 0)
		for i := uint(0); i < 200; i++ {
			w.setBit(i, true)
		}

		w.Resize(70)
		assertPadding(t, &w)
		assert.Equal(t, w.ones(0, w.n), uint(70))

		// growing again must not expose the bits dropped above.
		w.Resize(200)
		assertPadding(t, &w)
		assert.Equal(t, w.ones(0, w.n), uint(70))

		w.Resize(0)
		assertPadding(t, &w)
		assert.Equal(t, len(w.buf), 0)
	})

	t.Run("Push Pop", func(t *testing.T) {
		var w words
		var exp []bool

		for j := 0; j < 2000; j++ {
			if pcg.Uint32n(3) == 0 {
				v, ok := w.pop()
				if len(exp) == 0 {
					assert.That(t, !ok)
				} else {
					assert.That(t, ok)
					assert.Equal(t, v, exp[len(exp)-1])
					exp = exp[:len(exp)-1]
				}
			} else {
				v := pcg.Uint32n(2) == 1
				w.push(v)
				exp = append(exp, v)
			}
			assertPadding(t, &w)
			assert.Equal(t, w.n, uint(len(exp)))
		}

		for i, v := range exp {
			assert.Equal(t, w.bit(uint(i)), v)
		}
	})

	t.Run("Fuzz", func(t *testing.T) {
		for width := uint(1); width <= 64; width++ {
			exp := make([]uint64, 10)
			w := newWords(width*10, 0)
			check := func() {
				t.Helper()
				for i := uint(0); i < 10; i++ {
					assert.Equal(t, exp[i], w.read(i*width, width))
				}
			}

			for j := 0; j < 100; j++ {
				i, v := uint(pcg.Uint32n(10)), pcg.Uint64()&(1<<width-1)
				w.write(i*width, width, v)
				exp[i] = v
				check()
			}
			assertPadding(t, &w)
		}
	})

	t.Run("Ones", func(t *testing.T) {
		w := newWords(300, 0)
		for i := uint(0); i < 300; i += 3 {
			w.setBit(i, true)
		}

		naive := func(start, end uint) (n uint) {
			for i := start; i < end; i++ {
				if w.bit(i) {
					n++
				}
			}
			return n
		}

		for j := 0; j < 1000; j++ {
			a, b := uint(pcg.Uint32n(301)), uint(pcg.Uint32n(301))
			if a > b {
				a, b = b, a
			}
			assert.Equal(t, w.ones(a, b), naive(a, b))
		}
		assert.Equal(t, w.ones(10, 10), uint(0))
	})
}

func BenchmarkWords(b *testing.B) {
	b.Run("Read", func(b *testing.B) {
		w := newWords(4096*8, 0)
		for i := 0; i < b.N; i++ {
			w.read(uint(pcg.Uint32n(4096*8/11))*11, 11)
		}
	})

	b.Run("Write", func(b *testing.B) {
		w := newWords(4096*8, 0)
		for i := 0; i < b.N; i++ {
			w.write(uint(pcg.Uint32n(4096*8/11))*11, 11, 0)
		}
	})

	b.Run("Ones", func(b *testing.B) {
		w := newWords(4096*8, 0)
		for i := 0; i < b.N; i++ {
			w.ones(3, 4096*8-3)
		}
	})
}
