package index

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrDimensionMismatch indicates a vector whose length differs from the index dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrInvalidDimension indicates a non-positive index dimension.
	ErrInvalidDimension = errors.New("dimension must be positive")
)

// Hit is a single nearest-neighbor match: the index row and its inner
// product with the query vector.
type Hit struct {
	Row   int
	Score float32
}

// Flat is a brute-force inner-product index over unit-normalized vectors.
// When every stored vector and the query are unit length, inner product
// equals cosine similarity.
//
// Rows are dense and 0-based, in insertion order. The index is safe for
// concurrent reads once populated; Add must not race with Search.
type Flat struct {
	dim     int
	vectors [][]float32
}

// NewFlat creates an empty flat index for vectors of the given dimension.
func NewFlat(dim int) (*Flat, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimension, dim)
	}
	return &Flat{dim: dim}, nil
}

// Dim returns the vector dimension.
func (f *Flat) Dim() int { return f.dim }

// Len returns the number of stored vectors.
func (f *Flat) Len() int { return len(f.vectors) }

// Row returns the stored vector at the given row.
func (f *Flat) Row(i int) []float32 { return f.vectors[i] }

// Add appends vectors to the index, assigning consecutive rows.
func (f *Flat) Add(vectors ...[]float32) error {
	for _, v := range vectors {
		if len(v) != f.dim {
			return fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, f.dim, len(v))
		}
	}
	f.vectors = append(f.vectors, vectors...)
	return nil
}

// Search returns up to k rows ranked by inner product with the query,
// highest first. Ties are broken by ascending row so results are
// deterministic.
func (f *Flat) Search(query []float32, k int) ([]Hit, error) {
	if len(query) != f.dim {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, f.dim, len(query))
	}
	if k <= 0 || len(f.vectors) == 0 {
		return nil, nil
	}

	hits := make([]Hit, len(f.vectors))
	for i, v := range f.vectors {
		hits[i] = Hit{Row: i, Score: Dot(query, v)}
	}

	slices.SortFunc(hits, func(a, b Hit) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return a.Row - b.Row
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Dot calculates the dot product of two vectors.
func Dot(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// Normalize normalizes a vector to unit length.
// Returns a new vector. If the input is a zero vector, returns a zero vector.
func Normalize(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var magnitude float32
	for _, val := range v {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	// Can't normalize zero vector
	if magnitude == 0 {
		return make([]float32, len(v))
	}

	result := make([]float32, len(v))
	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}
