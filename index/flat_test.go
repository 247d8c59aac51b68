package index

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFlat(t *testing.T) {
	t.Run("valid dimension", func(t *testing.T) {
		f, err := NewFlat(3)
		require.NoError(t, err)
		assert.Equal(t, 3, f.Dim())
		assert.Equal(t, 0, f.Len())
	})

	t.Run("invalid dimension", func(t *testing.T) {
		for _, dim := range []int{0, -1} {
			_, err := NewFlat(dim)
			assert.ErrorIs(t, err, ErrInvalidDimension, "dim %d", dim)
		}
	})
}

func TestFlat_Add(t *testing.T) {
	t.Run("assigns consecutive rows", func(t *testing.T) {
		f, err := NewFlat(2)
		require.NoError(t, err)

		require.NoError(t, f.Add([]float32{1, 0}, []float32{0, 1}))
		assert.Equal(t, 2, f.Len())
		assert.Equal(t, []float32{1, 0}, f.Row(0))
		assert.Equal(t, []float32{0, 1}, f.Row(1))
	})

	t.Run("rejects wrong dimension", func(t *testing.T) {
		f, err := NewFlat(2)
		require.NoError(t, err)

		err = f.Add([]float32{1, 0, 0})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
		assert.Equal(t, 0, f.Len())
	})
}

func TestFlat_Search(t *testing.T) {
	newIndex := func(t *testing.T) *Flat {
		f, err := NewFlat(3)
		require.NoError(t, err)
		require.NoError(t, f.Add(
			[]float32{1, 0, 0},
			[]float32{0, 1, 0},
			[]float32{0.6, 0.8, 0},
		))
		return f
	}

	t.Run("ranks by inner product descending", func(t *testing.T) {
		f := newIndex(t)

		hits, err := f.Search([]float32{1, 0, 0}, 3)
		require.NoError(t, err)
		require.Len(t, hits, 3)

		assert.Equal(t, 0, hits[0].Row)
		assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
		assert.Equal(t, 2, hits[1].Row)
		assert.InDelta(t, 0.6, hits[1].Score, 1e-6)
		assert.Equal(t, 1, hits[2].Row)
	})

	t.Run("truncates to k", func(t *testing.T) {
		f := newIndex(t)

		hits, err := f.Search([]float32{1, 0, 0}, 2)
		require.NoError(t, err)
		assert.Len(t, hits, 2)
	})

	t.Run("k beyond corpus returns everything", func(t *testing.T) {
		f := newIndex(t)

		hits, err := f.Search([]float32{1, 0, 0}, 100)
		require.NoError(t, err)
		assert.Len(t, hits, 3)
	})

	t.Run("ties break by ascending row", func(t *testing.T) {
		f, err := NewFlat(2)
		require.NoError(t, err)
		require.NoError(t, f.Add([]float32{0, 1}, []float32{0, 1}, []float32{0, 1}))

		hits, err := f.Search([]float32{0, 1}, 3)
		require.NoError(t, err)
		require.Len(t, hits, 3)
		assert.Equal(t, []int{0, 1, 2}, []int{hits[0].Row, hits[1].Row, hits[2].Row})
	})

	t.Run("wrong query dimension", func(t *testing.T) {
		f := newIndex(t)

		_, err := f.Search([]float32{1, 0}, 3)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("empty index", func(t *testing.T) {
		f, err := NewFlat(3)
		require.NoError(t, err)

		hits, err := f.Search([]float32{1, 0, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("non-positive k", func(t *testing.T) {
		f := newIndex(t)

		hits, err := f.Search([]float32{1, 0, 0}, 0)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})
}

func TestNormalize(t *testing.T) {
	t.Run("produces unit length", func(t *testing.T) {
		v := Normalize([]float32{3, 4})
		assert.InDelta(t, 0.6, v[0], 1e-6)
		assert.InDelta(t, 0.8, v[1], 1e-6)

		var norm float64
		for _, x := range v {
			norm += float64(x) * float64(x)
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-6)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		in := []float32{3, 4}
		_ = Normalize(in)
		assert.Equal(t, []float32{3, 4}, in)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		assert.Equal(t, []float32{0, 0, 0}, Normalize([]float32{0, 0, 0}))
	})

	t.Run("empty vector", func(t *testing.T) {
		assert.Empty(t, Normalize(nil))
	})
}

func TestDot(t *testing.T) {
	assert.InDelta(t, 11.0, Dot([]float32{1, 2}, []float32{3, 4}), 1e-6)
	assert.Equal(t, float32(0), Dot([]float32{1, 0}, []float32{0, 1}))
	assert.Equal(t, float32(0), Dot(nil, []float32{1}))
}
