package clustools

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Silhouette returns the mean silhouette-like score over every member of the
// active, non-empty clusters. For an element with intra-cluster mean distance
// a and smallest mean distance b to another active cluster the score is
// (b - a) / max(a, b). Elements of singleton clusters score 0, as do all
// elements when there is only one active cluster.
func Silhouette(m *Matrix, clusters []*Cluster) float64 {
	active := make([]*Cluster, 0, len(clusters))
	for _, c := range clusters {
		if c.Active() && c.Len() > 0 {
			active = append(active, c)
		}
	}

	type slot struct{ id, own int }
	var slots []slot
	for ci, c := range active {
		for _, el := range c.members {
			slots = append(slots, slot{el.ID, ci})
		}
	}
	if len(slots) == 0 {
		return 0
	}

	scores := make([]float64, len(slots))
	parallelRows(len(slots), defaultWorkers(), func(start, end int) {
		for i := start; i < end; i++ {
			scores[i] = silhouetteScore(m, slots[i].id, slots[i].own, active)
		}
	})
	return stat.Mean(scores, nil)
}

// silhouetteScore scores element id, a member of active[own].
func silhouetteScore(m *Matrix, id, own int, active []*Cluster) float64 {
	c := active[own]
	if c.Len() < 2 {
		return 0
	}
	// The self distance is zero, so summing over all members is safe.
	intra := distanceTo(m, id, c) / float64(c.Len()-1)

	inter := math.Inf(1)
	for ci, other := range active {
		if ci == own {
			continue
		}
		if avg := distanceTo(m, id, other) / float64(other.Len()); avg < inter {
			inter = avg
		}
	}
	if math.IsInf(inter, 1) {
		return 0
	}

	den := math.Max(intra, inter)
	if den == 0 {
		return 0
	}
	return (inter - intra) / den
}

// distanceTo sums the distances from element id to every member of c.
func distanceTo(m *Matrix, id int, c *Cluster) float64 {
	var sum float64
	for _, el := range c.members {
		sum += m.At(id, el.ID)
	}
	return sum
}
