package clustools

import (
	"math"

	"go.uber.org/zap"
)

// Merge records one agglomeration step: clusters Left and Right were joined
// into cluster Into because of a link at Distance. Size is the member count
// of the new cluster.
type Merge struct {
	Left, Right int
	Into        int
	Distance    float64
	Size        int
}

// engine holds the mutable state of one clustering run: the element registry
// and the append-only master cluster list, indexed by cluster id.
type engine struct {
	m        *Matrix
	elements []*Element
	clusters []*Cluster
	merges   []Merge
	log      *zap.Logger
}

// newEngine creates one singleton cluster per element.
func newEngine(m *Matrix, log *zap.Logger) *engine {
	n := m.N()
	e := &engine{
		m:        m,
		elements: newElements(n),
		clusters: make([]*Cluster, 0, 2*n),
		log:      log,
	}
	for _, el := range e.elements {
		e.clusters = append(e.clusters, NewCluster(el.ID, []*Element{el}, 0))
	}
	return e
}

// owner returns the cluster currently holding element id.
func (e *engine) owner(id int) *Cluster {
	return e.clusters[e.elements[id].ClusterID]
}

// merge creates a new cluster holding the members of a then b, points every
// member at it and retires both parents.
func (e *engine) merge(a, b *Cluster, dist float64) *Cluster {
	id := len(e.clusters)
	members := make([]*Element, 0, a.Len()+b.Len())
	members = append(members, a.members...)
	members = append(members, b.members...)
	for _, el := range members {
		el.ClusterID = id
	}
	a.deactivate()
	b.deactivate()

	c := NewCluster(id, members, dist)
	e.clusters = append(e.clusters, c)
	e.merges = append(e.merges, Merge{Left: a.id, Right: b.id, Into: id, Distance: dist, Size: len(members)})
	e.log.Debug("merged clusters",
		zap.Int("left", a.id), zap.Int("right", b.id), zap.Int("into", id),
		zap.Float64("distance", dist), zap.Int("size", len(members)))
	return c
}

// linkage is a merge-acceptance criterion for two distinct clusters whose
// connecting link is already below the cutoff.
type linkage func(m *Matrix, a, b *Cluster, cutoff float64) bool

// singleLink accepts any link below the cutoff.
func singleLink(*Matrix, *Cluster, *Cluster, float64) bool { return true }

// completeLink accepts only if every cross pair is below the cutoff.
func completeLink(m *Matrix, a, b *Cluster, cutoff float64) bool {
	for _, x := range a.members {
		for _, y := range b.members {
			if m.At(x.ID, y.ID) >= cutoff {
				return false
			}
		}
	}
	return true
}

// averageLink accepts if the mean cross distance is below the cutoff.
func averageLink(m *Matrix, a, b *Cluster, cutoff float64) bool {
	var sum float64
	for _, x := range a.members {
		for _, y := range b.members {
			sum += m.At(x.ID, y.ID)
		}
	}
	return sum/float64(a.Len()*b.Len()) < cutoff
}

type action int

const (
	actionSkip action = iota
	actionRecordDiameter
	actionMerge
)

// decide classifies link l. Links inside one cluster only update its
// diameter. Links between clusters merge them when below the cutoff and
// accepted by the linkage; otherwise they are dropped for good.
func (e *engine) decide(l Link, cutoff float64, accept linkage) action {
	a, b := e.owner(l.A), e.owner(l.B)
	if a == b {
		return actionRecordDiameter
	}
	if l.Distance >= cutoff {
		return actionSkip
	}
	if !accept(e.m, a, b, cutoff) {
		return actionSkip
	}
	return actionMerge
}

// runLinks drains q, applying decide to each link in ascending order.
// Unrestricted hierarchical clustering is runLinks with an infinite cutoff
// and singleLink.
func (e *engine) runLinks(q *LinkQueue, cutoff float64, accept linkage) {
	var merged, rejected int
	for {
		l, ok := q.Pop()
		if !ok {
			break
		}
		switch e.decide(l, cutoff, accept) {
		case actionRecordDiameter:
			e.owner(l.A).SetMaxDistance(l.Distance)
		case actionMerge:
			e.merge(e.owner(l.A), e.owner(l.B), l.Distance)
			merged++
		default:
			if l.Distance < cutoff {
				rejected++
			}
		}
	}
	e.log.Debug("link queue drained",
		zap.Int("merges", merged), zap.Int("rejected", rejected),
		zap.Float64("cutoff", cutoff))
}

// linkageFor maps the link-driven policies to their cutoff and criterion.
func linkageFor(p Policy, cutoff float64) (float64, linkage) {
	switch p {
	case PolicyHierarchical:
		return math.Inf(1), singleLink
	case PolicyStrict:
		return cutoff, completeLink
	case PolicyUPGMA:
		return cutoff, averageLink
	default:
		return cutoff, singleLink
	}
}
