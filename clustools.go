package clustools

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Result contains the output of a clustering run.
type Result struct {
	// Policy and Measure are the resolved configuration of the run.
	Policy  Policy
	Measure Measure

	// Cutoff is the distance threshold that was applied (already inverted
	// for similarity input). Zero for PolicyKMedoid and PolicyHierarchical,
	// which apply none.
	Cutoff float64

	// K is the medoid count for PolicyKMedoid, 0 otherwise.
	K int

	// Seed is the seed used for medoid sampling, 0 for other policies.
	Seed int64

	// Iterations is the number of k-medoid assign/update rounds.
	Iterations int

	// Converged is false only when k-medoid stopped at MaxIterations.
	Converged bool

	// Matrix is the normalized distance matrix the run operated on.
	Matrix *Matrix

	// Elements is the element registry; Elements[i].ClusterID names the
	// active cluster holding element i.
	Elements []*Element

	// Clusters is the master cluster list including retired clusters.
	// Clusters[id].ID() == id.
	Clusters []*Cluster

	// Merges is the agglomeration history of the link-driven policies.
	Merges []Merge
}

// Run normalizes raw scores and clusters them. raw is a flat []float64 of
// length n*n in row-major order, raw[i*n+j] being the score from i to j.
// Returns an error if the config or the input is invalid.
func Run(raw []float64, n int, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	m, err := Normalize(raw, n, cfg.Measure)
	if err != nil {
		return nil, err
	}
	return clusterMatrix(m, cfg)
}

// RunMatrix clusters an already normalized distance matrix. cfg.Measure only
// affects how Cutoff is interpreted.
func RunMatrix(m *Matrix, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return clusterMatrix(m, cfg)
}

func clusterMatrix(m *Matrix, cfg Config) (*Result, error) {
	n := m.N()
	if cfg.Policy == PolicyKMedoid && cfg.K > n && n > 0 {
		return nil, fmt.Errorf("%w: K=%d exceeds the number of elements %d", ErrInvalidConfiguration, cfg.K, n)
	}

	e := newEngine(m, cfg.Logger)
	res := &Result{
		Policy:    cfg.Policy,
		Measure:   cfg.Measure,
		Matrix:    m,
		Converged: true,
	}

	var err error
	switch cfg.Policy {
	case PolicyKMedoid:
		res.K = cfg.K
		res.Seed = cfg.Seed
		if res.Seed == 0 {
			res.Seed = time.Now().UnixNano()
		}
		if n > 0 {
			res.Iterations, err = e.kmedoid(cfg.K, cfg.MaxIterations, rand.New(rand.NewSource(res.Seed)))
			res.Converged = err == nil
		}
	case PolicySpicker:
		res.Cutoff = cfg.DistanceCutoff()
		e.spicker(res.Cutoff)
	default:
		cutoff, accept := linkageFor(cfg.Policy, cfg.DistanceCutoff())
		if !math.IsInf(cutoff, 1) {
			res.Cutoff = cutoff
		}
		e.runLinks(GenerateLinks(m), cutoff, accept)
	}

	res.Elements = e.elements
	res.Clusters = e.clusters
	res.Merges = e.merges
	cfg.Logger.Debug("clustering finished",
		zap.String("policy", string(cfg.Policy)), zap.Int("elements", n),
		zap.Int("clusters", len(res.Active())))
	return res, err
}

// Active returns the clusters of the final partition in id order.
func (r *Result) Active() []*Cluster {
	var out []*Cluster
	for _, c := range r.Clusters {
		if c.Active() {
			out = append(out, c)
		}
	}
	return out
}

// Orphans returns the number of active singleton clusters.
func (r *Result) Orphans() int {
	var count int
	for _, c := range r.Active() {
		if c.Len() == 1 {
			count++
		}
	}
	return count
}

// ClusterOf returns the active cluster holding element id.
func (r *Result) ClusterOf(id int) *Cluster {
	return r.Clusters[r.Elements[id].ClusterID]
}

// Labels returns, for every element, the id of the cluster holding it.
func (r *Result) Labels() []int {
	labels := make([]int, len(r.Elements))
	for i, el := range r.Elements {
		labels[i] = el.ClusterID
	}
	return labels
}

// Silhouette returns the silhouette-like score of the final partition.
func (r *Result) Silhouette() float64 {
	return Silhouette(r.Matrix, r.Clusters)
}

// Linkage returns the merge history as dendrogram rows
// [left, right, distance, size], in merge order. Cluster ids below n are the
// initial singletons.
func (r *Result) Linkage() [][4]float64 {
	rows := make([][4]float64, len(r.Merges))
	for i, mg := range r.Merges {
		rows[i] = [4]float64{float64(mg.Left), float64(mg.Right), mg.Distance, float64(mg.Size)}
	}
	return rows
}
