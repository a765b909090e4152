package clustools

import (
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"
)

// kmedoid partitions the elements around k medoids. Initial medoids are k
// distinct elements sampled with rng. Each iteration moves every medoid to
// the member minimizing the distance sum within its cluster, then reassigns
// every element to its nearest medoid. It stops when no medoid moves, or
// returns ErrNonConvergence after maxIter iterations.
//
// The k roster clusters are created once and reused across iterations; the
// initial singletons are all retired.
func (e *engine) kmedoid(k, maxIter int, rng *rand.Rand) (int, error) {
	for _, c := range e.clusters {
		c.deactivate()
	}

	roster := make([]*Cluster, k)
	medoids := make([]int, k)
	for i, idx := range rng.Perm(e.m.N())[:k] {
		c := NewCluster(len(e.clusters), []*Element{e.elements[idx]}, 0)
		c.mean = idx
		e.clusters = append(e.clusters, c)
		roster[i] = c
		medoids[i] = idx
	}
	e.assign(roster, medoids)

	iterations, converged := 0, false
	for !converged && iterations < maxIter {
		iterations++
		converged = true
		for i, c := range roster {
			if md := c.CalcMean(e.m); md != medoids[i] {
				medoids[i] = md
				converged = false
			}
		}
		e.assign(roster, medoids)
		e.log.Debug("kmedoid iteration",
			zap.Int("iteration", iterations), zap.Bool("converged", converged))
	}

	for _, c := range roster {
		if c.Len() == 0 {
			c.deactivate()
			continue
		}
		c.CalcMaxDistance(e.m)
	}

	if !converged {
		e.log.Warn("kmedoid did not converge", zap.Int("iterations", iterations))
		return iterations, fmt.Errorf("%w after %d iterations", ErrNonConvergence, iterations)
	}
	return iterations, nil
}

// assign moves every element to the roster cluster with the nearest medoid.
// Ties go to the first medoid in roster order.
func (e *engine) assign(roster []*Cluster, medoids []int) {
	buckets := make([][]*Element, len(roster))
	for _, el := range e.elements {
		best, bestDist := 0, math.Inf(1)
		for k, md := range medoids {
			if d := e.m.At(el.ID, md); d < bestDist {
				best, bestDist = k, d
			}
		}
		el.ClusterID = roster[best].id
		buckets[best] = append(buckets[best], el)
	}
	for k, c := range roster {
		c.setMembers(buckets[k])
	}
}
