package mock

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	ctx := context.Background()
	m := NewMockEmbedder()

	first, err := m.EmbedText(ctx, "backend engineer")
	require.NoError(t, err)
	second, err := m.EmbedText(ctx, "backend engineer")
	require.NoError(t, err)
	other, err := m.EmbedText(ctx, "devops engineer")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Len(t, first, 384)
	assert.Equal(t, 3, m.CallCount())
}

func TestMockEmbedder_UnitLength(t *testing.T) {
	m := NewMockEmbedder()

	v, err := m.EmbedText(context.Background(), "some text")
	require.NoError(t, err)

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-4)
}

func TestMockEmbedder_Injection(t *testing.T) {
	ctx := context.Background()
	m := NewMockEmbedder()

	boom := errors.New("down")
	m.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, boom
	}
	m.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return make([][]float32, len(texts)), nil
	}

	_, err := m.EmbedText(ctx, "anything")
	assert.ErrorIs(t, err, boom)

	vectors, err := m.EmbedTexts(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, vectors, 2)

	m.Reset()
	assert.Equal(t, 0, m.CallCount())
	v, err := m.EmbedText(ctx, "anything")
	require.NoError(t, err)
	assert.Len(t, v, 384)
}
