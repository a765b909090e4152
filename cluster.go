package clustools

import "math"

// Cluster is a group of elements plus statistics derived from them.
//
// A cluster is active while it is part of the current partition. Merges never
// edit a cluster's members; they create a new cluster and deactivate both
// parents, which stay in the master list for traceability.
type Cluster struct {
	id          int
	members     []*Element
	maxDistance float64
	active      bool

	// Filled in by the Calc* methods; -1 until computed.
	centroid int
	mean     int
	radius   float64
}

// NewCluster returns an active cluster. maxDistance is the diameter known so
// far; pass 0 for singletons.
func NewCluster(id int, members []*Element, maxDistance float64) *Cluster {
	return &Cluster{
		id:          id,
		members:     members,
		maxDistance: maxDistance,
		active:      true,
		centroid:    -1,
		mean:        -1,
	}
}

// ID returns the cluster id.
func (c *Cluster) ID() int { return c.id }

// Members returns the member elements in insertion order.
func (c *Cluster) Members() []*Element { return c.members }

// MemberIDs returns the member element ids in insertion order.
func (c *Cluster) MemberIDs() []int { return elementIDs(c.members) }

// Len returns the number of members.
func (c *Cluster) Len() int { return len(c.members) }

// Active reports whether the cluster is part of the current partition.
func (c *Cluster) Active() bool { return c.active }

func (c *Cluster) deactivate() { c.active = false }

// setMembers replaces the member list. Only the k-medoid policy reassigns
// members in place.
func (c *Cluster) setMembers(members []*Element) { c.members = members }

// MaxDistance returns the diameter recorded for the cluster.
func (c *Cluster) MaxDistance() float64 { return c.maxDistance }

// SetMaxDistance records d as the cluster diameter. Link-driven policies call
// it for every link whose ends are already in the cluster; since links arrive
// in ascending order the last call holds the true diameter.
func (c *Cluster) SetMaxDistance(d float64) { c.maxDistance = d }

// CalcMaxDistance recomputes the diameter with a full scan of member pairs,
// stores it and returns it.
func (c *Cluster) CalcMaxDistance(m *Matrix) float64 {
	var maxDist float64
	for i, a := range c.members {
		for _, b := range c.members[i+1:] {
			if d := m.At(a.ID, b.ID); d > maxDist {
				maxDist = d
			}
		}
	}
	c.maxDistance = maxDist
	return maxDist
}

// CalcCentroid picks the member whose largest distance to any other member is
// smallest (the minimax center) and returns its id together with that
// distance, which becomes the cluster radius. Ties keep the first member found.
// An empty cluster returns -1.
func (c *Cluster) CalcCentroid(m *Matrix) (centroid int, radius float64) {
	centroid, radius = -1, math.Inf(1)
	for _, a := range c.members {
		var rowMax float64
		for _, b := range c.members {
			if d := m.At(a.ID, b.ID); d > rowMax {
				rowMax = d
			}
		}
		if rowMax < radius {
			centroid, radius = a.ID, rowMax
		}
	}
	if centroid < 0 {
		radius = 0
	}
	c.centroid, c.radius = centroid, radius
	return centroid, radius
}

// CalcMean picks the medoid: the member with the smallest sum of distances to
// all other members. Ties keep the first member found. An empty cluster keeps
// its previous medoid.
func (c *Cluster) CalcMean(m *Matrix) int {
	if len(c.members) == 0 {
		return c.mean
	}
	c.mean = medoid(m, c.members)
	return c.mean
}

// Centroid returns the id set by the last CalcCentroid, or -1.
func (c *Cluster) Centroid() int { return c.centroid }

// Radius returns the radius set by the last CalcCentroid.
func (c *Cluster) Radius() float64 { return c.radius }

// Mean returns the medoid id set by the last CalcMean, or -1.
func (c *Cluster) Mean() int { return c.mean }

// Pairs returns the number of unordered member pairs.
func (c *Cluster) Pairs() int {
	n := len(c.members)
	return n * (n - 1) / 2
}

// DistanceSum returns the sum of distances over all unordered member pairs.
func (c *Cluster) DistanceSum(m *Matrix) float64 {
	var sum float64
	for i, a := range c.members {
		for _, b := range c.members[i+1:] {
			sum += m.At(a.ID, b.ID)
		}
	}
	return sum
}

// AvDistance returns the mean intra-cluster distance, 0 for singletons.
func (c *Cluster) AvDistance(m *Matrix) float64 {
	pairs := c.Pairs()
	if pairs == 0 {
		return 0
	}
	return c.DistanceSum(m) / float64(pairs)
}

// medoid returns the id of the element in elems minimizing its distance sum
// to the others. elems must not be empty.
func medoid(m *Matrix, elems []*Element) int {
	best, bestSum := -1, math.Inf(1)
	for _, a := range elems {
		var sum float64
		for _, b := range elems {
			sum += m.At(a.ID, b.ID)
		}
		if sum < bestSum {
			best, bestSum = a.ID, sum
		}
	}
	return best
}
