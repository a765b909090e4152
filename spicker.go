package clustools

import "go.uber.org/zap"

// spicker partitions the elements SPICKER-style (Yang & Skolnick, 2004):
// take the row with the most eligible neighbors below cutoff, turn the
// eligible part of that neighborhood into a cluster, retire its members, and
// repeat until nothing is left. Rows of retired elements still compete as
// centers. Retired elements are tracked in an eligibility mask so the matrix
// itself is never modified.
func (e *engine) spicker(cutoff float64) {
	n := e.m.N()
	eligible := make([]bool, n)
	for i := range eligible {
		eligible[i] = true
	}

	for remaining := n; remaining > 0; {
		center := e.densestRow(eligible, cutoff)

		id := len(e.clusters)
		var members []*Element
		for j := 0; j < n; j++ {
			if !eligible[j] || e.m.At(center, j) >= cutoff {
				continue
			}
			el := e.elements[j]
			e.clusters[el.ClusterID].deactivate()
			el.ClusterID = id
			eligible[j] = false
			members = append(members, el)
			remaining--
		}

		c := NewCluster(id, members, 0)
		c.CalcMaxDistance(e.m)
		e.clusters = append(e.clusters, c)
		e.log.Debug("spicker cluster",
			zap.Int("cluster", id), zap.Int("center", center),
			zap.Int("size", len(members)), zap.Int("remaining", remaining))
	}
}

// densestRow returns the row with the most eligible columns strictly below
// cutoff. Every row competes, assigned or not; an eligible row counts
// itself. Ties keep the lowest index.
func (e *engine) densestRow(eligible []bool, cutoff float64) int {
	n := e.m.N()
	best, bestCount := -1, -1
	for i := 0; i < n; i++ {
		count := 0
		for j := 0; j < n; j++ {
			if eligible[j] && e.m.At(i, j) < cutoff {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = i, count
		}
	}
	return best
}
