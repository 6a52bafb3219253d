package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"scaled copy", []float32{1, 2, 3}, []float32{2, 4, 6}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 1}, []float32{-1, -1}, -1},
		{"zero vector", []float32{0, 0, 0}, []float32{1, 2, 3}, 0},
		{"both zero", []float32{0, 0}, []float32{0, 0}, 0},
		{"empty", []float32{}, []float32{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineSimilarity(tt.a, tt.b)
			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-6)
		})
	}
}

func TestCosineSimilaritySymmetricAndBounded(t *testing.T) {
	pairs := [][2][]float32{
		{{0.3, -1.2, 4}, {2, 0.5, -0.7}},
		{{1e-3, 5, 5}, {7, 7, 0}},
		{{-3, -2, -1}, {1, 2, 3}},
	}

	for _, p := range pairs {
		ab, err := CosineSimilarity(p[0], p[1])
		assert.NoError(t, err)
		ba, err := CosineSimilarity(p[1], p[0])
		assert.NoError(t, err)

		assert.InDelta(t, ab, ba, 1e-9)
		assert.GreaterOrEqual(t, ab, -1.0-1e-9)
		assert.LessOrEqual(t, ab, 1.0+1e-9)
	}
}

func TestCosineSimilarityDimensionMismatch(t *testing.T) {
	_, err := CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestNormalizeVector(t *testing.T) {
	got := normalizeVector([]float32{3, 4})
	assert.InDelta(t, 0.6, got[0], 1e-6)
	assert.InDelta(t, 0.8, got[1], 1e-6)

	zero := []float32{0, 0}
	assert.Equal(t, zero, normalizeVector(zero))
}
