package clustools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThresholdComponents(t *testing.T) {
	m := mustMatrix(t, groupsRows())
	tests := []struct {
		cutoff float64
		want   [][]int
	}{
		{0.05, [][]int{{0}, {1}, {2}, {3}, {4}, {5}}},
		{0.15, [][]int{{0, 1, 2}, {3}, {4}, {5}}},
		{0.5, [][]int{{0, 1, 2}, {3, 4}, {5}}},
		{1, [][]int{{0, 1, 2, 3, 4, 5}}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ThresholdComponents(m, tt.cutoff), "cutoff %g", tt.cutoff)
	}
}

func TestThresholdComponents_Chain(t *testing.T) {
	// 0-1 and 1-2 are close, 0-2 is not: one component through chaining.
	m := mustMatrix(t, [][]float64{
		{0, 0.1, 0.9},
		{0.1, 0, 0.1},
		{0.9, 0.1, 0},
	})
	assert.Equal(t, [][]int{{0, 1, 2}}, ThresholdComponents(m, 0.5))
}
