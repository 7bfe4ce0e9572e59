package succinct

import (
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/pcg"
)

func TestIntVector(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		v, err := IntVectorFromSlice(3, []uint64{5, 0, 7, 2})
		assert.NoError(t, err)
		assert.Equal(t, v.Len(), uint(4))
		assert.Equal(t, v.Width(), uint(3))
		assert.Equal(t, v.String(), "[5, 0, 7, 2]")

		for i, exp := range []uint64{5, 0, 7, 2} {
			got, err := v.Get(uint(i))
			assert.NoError(t, err)
			assert.Equal(t, got, exp)
			assert.Equal(t, v.GetUnchecked(uint(i)), exp)
		}

		// 12 bits in a single word: 010 111 000 101
		assert.Equal(t, v.Raw()[0], uint64(0x5c5))
	})

	t.Run("Overflow", func(t *testing.T) {
		v, err := IntVectorFromSlice(3, []uint64{5, 0, 7, 2})
		assert.NoError(t, err)
		before := append([]uint64(nil), v.Raw()...)

		assert.That(t, ErrValueOverflow.Has(v.Set(1, 8)))
		assert.That(t, ErrValueOverflow.Has(v.Push(8)))
		assert.Equal(t, v.Len(), uint(4))
		assert.Equal(t, v.Raw(), before)

		_, err = IntVectorFromSlice(3, []uint64{1, 8})
		assert.That(t, ErrValueOverflow.Has(err))
	})

	t.Run("Invalid Width", func(t *testing.T) {
		_, err := NewIntVector(0, 10)
		assert.That(t, ErrInvalidWidth.Has(err))
		_, err = NewIntVector(65, 10)
		assert.That(t, ErrInvalidWidth.Has(err))
		_, err = IntVectorFromSlice(0, nil)
		assert.That(t, ErrInvalidWidth.Has(err))

		v, err := NewIntVector(64, 10)
		assert.NoError(t, err)
		assert.NoError(t, v.Push(^uint64(0)))
		got, err := v.Get(0)
		assert.NoError(t, err)
		assert.Equal(t, got, ^uint64(0))
	})

	t.Run("Out Of Bounds", func(t *testing.T) {
		v, err := NewIntVector(7, 0)
		assert.NoError(t, err)

		_, err = v.Get(0)
		assert.That(t, ErrIndexOutOfBounds.Has(err))
		assert.That(t, ErrIndexOutOfBounds.Has(v.Set(0, 1)))

		_, ok := v.Pop()
		assert.That(t, !ok)
	})

	t.Run("Length Mismatch", func(t *testing.T) {
		seq := func(yield func(uint64) bool) {
			for i := uint64(0); i < 5; i++ {
				if !yield(i) {
					return
				}
			}
		}

		v, err := IntVectorFrom(3, 5, seq)
		assert.NoError(t, err)
		assert.Equal(t, v.String(), "[0, 1, 2, 3, 4]")

		_, err = IntVectorFrom(3, 4, seq)
		assert.That(t, ErrLengthMismatch.Has(err))
		_, err = IntVectorFrom(3, 6, seq)
		assert.That(t, ErrLengthMismatch.Has(err))
	})

	t.Run("Fuzz", func(t *testing.T) {
		for width := uint(1); width <= 64; width++ {
			const n = 50
			mask := uint64(1)<<width - 1

			v, err := NewIntVector(width, n)
			assert.NoError(t, err)
			v.Resize(n)
			assert.Equal(t, uint(len(v.Raw())), wordsFor(n*width))

			exp := make([]uint64, n)
			for j := 0; j < 500; j++ {
				i, val := uint(pcg.Uint32n(n)), pcg.Uint64()&mask
				assert.NoError(t, v.Set(i, val))
				exp[i] = val
			}

			for i := uint(0); i < n; i++ {
				got, err := v.Get(i)
				assert.NoError(t, err)
				assert.Equal(t, got, exp[i])
			}
			assertPadding(t, &v.w)

			if width < 64 {
				assert.That(t, ErrValueOverflow.Has(v.Set(0, mask+1)))
			}
		}
	})

	t.Run("Push Pop", func(t *testing.T) {
		v, err := NewIntVector(13, 0)
		assert.NoError(t, err)

		for i := uint64(0); i < 300; i++ {
			assert.NoError(t, v.Push(i*27%8192))
		}
		assert.Equal(t, v.Len(), uint(300))
		assert.That(t, v.Cap() >= 300)

		for i := uint64(300); i > 0; i-- {
			got, ok := v.Pop()
			assert.That(t, ok)
			assert.Equal(t, got, (i-1)*27%8192)
			assert.Equal(t, v.w.n, v.Len()*13)
			assertPadding(t, &v.w)
		}
	})

	t.Run("Iter", func(t *testing.T) {
		v, err := IntVectorFromSlice(9, []uint64{300, 1, 511, 0, 42})
		assert.NoError(t, err)

		it := v.Iter()
		assert.Equal(t, it.Len(), uint(5))

		var got []uint64
		for it.Next() {
			got = append(got, it.Value())
		}
		assert.Equal(t, got, []uint64{300, 1, 511, 0, 42})

		got = got[:0]
		for val := range v.All() {
			got = append(got, val)
		}
		assert.Equal(t, got, []uint64{300, 1, 511, 0, 42})
	})

	t.Run("Compress", func(t *testing.T) {
		v, err := IntVectorFromSlice(64, []uint64{3, 17, 9, 0})
		assert.NoError(t, err)

		v.Compress()
		assert.Equal(t, v.Width(), uint(5))
		assert.Equal(t, v.String(), "[3, 17, 9, 0]")
		assert.That(t, ErrValueOverflow.Has(v.Set(0, 32)))

		assert.Equal(t, WidthFor(0), uint(1))
		assert.Equal(t, WidthFor(1), uint(1))
		assert.Equal(t, WidthFor(8), uint(4))
		assert.Equal(t, WidthFor(^uint64(0)), uint(64))
	})
}

func BenchmarkIntVector(b *testing.B) {
	v, _ := NewIntVector(11, 4096)
	v.Resize(4096)

	b.Run("Get", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			v.GetUnchecked(uint(pcg.Uint32n(4096)))
		}
	})

	b.Run("Set", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = v.Set(uint(pcg.Uint32n(4096)), 0)
		}
	})
}
