package clustools

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// flatten turns a square [][]float64 into row-major form.
func flatten(rows [][]float64) []float64 {
	n := len(rows)
	out := make([]float64, 0, n*n)
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}

func mustMatrix(t testing.TB, rows [][]float64) *Matrix {
	t.Helper()
	m, err := NewMatrix(len(rows), flatten(rows))
	require.NoError(t, err)
	return m
}

// twoPairs is d(0,1)=d(2,3)=0.1 with every cross pair at 0.9.
func twoPairs() [][]float64 {
	return [][]float64{
		{0, 0.1, 0.9, 0.9},
		{0.1, 0, 0.9, 0.9},
		{0.9, 0.9, 0, 0.1},
		{0.9, 0.9, 0.1, 0},
	}
}

// randomRaw returns an asymmetric n×n score array in (0, 1) with a zero
// diagonal.
func randomRaw(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	raw := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				raw[i*n+j] = 0.01 + 0.99*rng.Float64()
			}
		}
	}
	return raw
}

func randomMatrix(t testing.TB, n int, seed int64) *Matrix {
	t.Helper()
	m, err := Normalize(randomRaw(n, seed), n, MeasureDistance)
	require.NoError(t, err)
	return m
}

// activeSets returns the sorted member ids of every active cluster, ordered
// by smallest member.
func activeSets(r *Result) [][]int {
	var sets [][]int
	for _, c := range r.Active() {
		ids := c.MemberIDs()
		sort.Ints(ids)
		sets = append(sets, ids)
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i][0] < sets[j][0] })
	return sets
}

// requirePartition checks that every element sits in exactly one active
// cluster and that its ClusterID points at that cluster.
func requirePartition(t *testing.T, r *Result) {
	t.Helper()
	seen := make(map[int]int)
	for _, c := range r.Active() {
		require.Equal(t, c, r.Clusters[c.ID()], "master list index must equal cluster id")
		for _, el := range c.Members() {
			seen[el.ID]++
			require.Equal(t, c.ID(), el.ClusterID, "element %d points at the wrong cluster", el.ID)
		}
	}
	require.Len(t, seen, len(r.Elements))
	for id, count := range seen {
		require.Equal(t, 1, count, "element %d appears in %d active clusters", id, count)
	}
}
