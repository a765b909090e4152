package clustools

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_SymmetricZeroDiagonal(t *testing.T) {
	for _, n := range []int{1, 2, 5, 17} {
		m, err := Normalize(randomRaw(n, int64(n)), n, MeasureDistance)
		require.NoError(t, err)
		for i := 0; i < n; i++ {
			assert.Zero(t, m.At(i, i), "diagonal (%d,%d)", i, i)
			for j := 0; j < n; j++ {
				assert.Equal(t, m.At(i, j), m.At(j, i), "(%d,%d) not symmetric", i, j)
			}
		}
	}
}

func TestNormalize_HarmonicMeanBounds(t *testing.T) {
	n := 12
	raw := randomRaw(n, 7)
	m, err := Normalize(raw, n, MeasureDistance)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := raw[i*n+j], raw[j*n+i]
			d := m.At(i, j)
			assert.GreaterOrEqual(t, d, math.Min(a, b)-1e-12)
			assert.LessOrEqual(t, d, math.Max(a, b)+1e-12)
		}
	}
}

func TestNormalize_Formula(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"both zero", 0, 0, 0},
		{"one zero", 0, 0.4, 0.2},
		{"other zero", 0.6, 0, 0.3},
		{"harmonic", 0.2, 0.6, 0.3},
		{"equal", 0.5, 0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Normalize([]float64{0, tt.a, tt.b, 0}, 2, MeasureDistance)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, m.At(0, 1), 1e-12)
			assert.InDelta(t, tt.want, m.At(1, 0), 1e-12)
		})
	}
}

func TestNormalize_SimilarityInverted(t *testing.T) {
	// Similarities 0.8 and 0.6 become distances 0.2 and 0.4.
	m, err := Normalize([]float64{1, 0.8, 0.6, 1}, 2, MeasureSimilarity)
	require.NoError(t, err)
	assert.InDelta(t, 2*0.2*0.4/0.6, m.At(0, 1), 1e-12)
	assert.Zero(t, m.At(0, 0))
}

func TestNormalize_MalformedInput(t *testing.T) {
	tests := []struct {
		name string
		raw  []float64
		n    int
	}{
		{"length mismatch", []float64{0, 1, 1}, 2},
		{"negative n", nil, -1},
		{"NaN", []float64{0, math.NaN(), 1, 0}, 2},
		{"Inf", []float64{0, math.Inf(1), 1, 0}, 2},
		{"negative score", []float64{0, -0.5, 1, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw, tt.n, MeasureDistance)
			require.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestNormalize_SimilarityAboveOneRejected(t *testing.T) {
	_, err := Normalize([]float64{1, 1.5, 0.5, 1}, 2, MeasureSimilarity)
	require.ErrorIs(t, err, ErrMalformedInput)
}
