package clustools

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func kmedoidConfig(k int, seed int64) Config {
	cfg := DefaultConfig()
	cfg.Policy = PolicyKMedoid
	cfg.K = k
	cfg.Seed = seed
	return cfg
}

func TestKMedoid_TwoPairs(t *testing.T) {
	m := mustMatrix(t, twoPairs())
	for seed := int64(1); seed <= 20; seed++ {
		res, err := RunMatrix(m, kmedoidConfig(2, seed))
		require.NoError(t, err)
		requirePartition(t, res)
		assert.Equal(t, [][]int{{0, 1}, {2, 3}}, activeSets(res), "seed %d", seed)
		assert.Equal(t, seed, res.Seed)
		assert.Equal(t, 2, res.K)
		assert.GreaterOrEqual(t, res.Iterations, 1)
		assert.True(t, res.Converged)

		// Retired singletons plus a roster of two.
		require.Len(t, res.Clusters, 6)
		for id := 0; id < 4; id++ {
			assert.False(t, res.Clusters[id].Active())
		}
	}
}

func TestKMedoid_KFromCutoff(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy = PolicyKMedoid
	cfg.Cutoff = 2
	cfg.Seed = 3
	res, err := RunMatrix(mustMatrix(t, twoPairs()), cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, res.K)
	assert.Len(t, res.Active(), 2)
}

func TestKMedoid_SameSeedSameResult(t *testing.T) {
	m := randomMatrix(t, 40, 8)
	a, err := RunMatrix(m, kmedoidConfig(4, 99))
	require.NoError(t, err)
	b, err := RunMatrix(m, kmedoidConfig(4, 99))
	require.NoError(t, err)
	assert.Equal(t, a.Labels(), b.Labels())
	assert.Equal(t, a.Iterations, b.Iterations)
}

func TestKMedoid_FixedPoint(t *testing.T) {
	m := randomMatrix(t, 40, 12)
	e := newEngine(m, zap.NewNop())
	_, err := e.kmedoid(5, 100, rand.New(rand.NewSource(12)))
	require.NoError(t, err)

	roster := e.clusters[40:]
	require.Len(t, roster, 5)
	medoids := make([]int, len(roster))
	for i, c := range roster {
		medoids[i] = c.Mean()
	}
	before := make([][]int, len(roster))
	for i, c := range roster {
		before[i] = c.MemberIDs()
	}

	// One more assignment + update cycle changes nothing.
	e.assign(roster, medoids)
	for i, c := range roster {
		assert.Equal(t, before[i], c.MemberIDs())
		assert.Equal(t, medoids[i], c.CalcMean(m))
	}
}

func TestKMedoid_PartitionsEveryElement(t *testing.T) {
	m := randomMatrix(t, 60, 21)
	for _, k := range []int{1, 3, 7, 60} {
		res, err := RunMatrix(m, kmedoidConfig(k, int64(k)))
		require.NoError(t, err)
		requirePartition(t, res)
		for _, c := range res.Active() {
			assert.Equal(t, c.MaxDistance(), c.CalcMaxDistance(m))
		}
	}
}

func TestKMedoid_NonConvergence(t *testing.T) {
	// Element 1 is the medoid of the whole set. With k=1 and a different
	// starting medoid the first update has to move it.
	m := mustMatrix(t, [][]float64{
		{0, 0.1, 0.2},
		{0.1, 0, 0.1},
		{0.2, 0.1, 0},
	})
	seed := int64(1)
	for rand.New(rand.NewSource(seed)).Perm(3)[0] == 1 {
		seed++
	}

	cfg := kmedoidConfig(1, seed)
	cfg.MaxIterations = 1
	res, err := RunMatrix(m, cfg)
	require.ErrorIs(t, err, ErrNonConvergence)
	require.NotNil(t, res)
	assert.Equal(t, 1, res.Iterations)
	assert.False(t, res.Converged)
	assert.False(t, res.Report().Converged)
	requirePartition(t, res)

	cfg.MaxIterations = 100
	res, err = RunMatrix(m, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Iterations)
	assert.Equal(t, 1, res.Active()[0].Mean())
}

func TestKMedoid_KTooLarge(t *testing.T) {
	_, err := RunMatrix(mustMatrix(t, twoPairs()), kmedoidConfig(5, 1))
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestKMedoid_DuplicateMedoidsRetireEmptyCluster(t *testing.T) {
	// 0 and 1 are identical, so whichever roster cluster comes second in a
	// tie between them can end up empty.
	m := mustMatrix(t, [][]float64{
		{0, 0, 0.8},
		{0, 0, 0.8},
		{0.8, 0.8, 0},
	})
	for seed := int64(1); seed <= 10; seed++ {
		res, err := RunMatrix(m, kmedoidConfig(3, seed))
		require.NoError(t, err)
		requirePartition(t, res)
		for _, c := range res.Active() {
			assert.NotZero(t, c.Len())
		}
	}
}
