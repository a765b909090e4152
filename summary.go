package clustools

// Summary is the per-cluster view handed to reporting code.
type Summary struct {
	ID          int     `json:"id"`
	Members     []int   `json:"members"`
	Centroid    int     `json:"centroid"`
	Mean        int     `json:"mean"`
	Radius      float64 `json:"radius"`
	Diameter    float64 `json:"diameter"`
	Pairs       int     `json:"pairs"`
	DistanceSum float64 `json:"distance_sum"`
	AvDistance  float64 `json:"av_distance"`
}

// Report aggregates the final partition.
type Report struct {
	Policy         Policy    `json:"policy"`
	Measure        Measure   `json:"measure"`
	Cutoff         float64   `json:"cutoff"`
	K              int       `json:"k,omitempty"`
	Seed           int64     `json:"seed,omitempty"`
	Iterations     int       `json:"iterations,omitempty"`
	Converged      bool      `json:"converged"`
	Elements       int       `json:"elements"`
	Clusters       []Summary `json:"clusters"`
	ActiveClusters int       `json:"active_clusters"`
	Orphans        int       `json:"orphans"`
	Silhouette     float64   `json:"silhouette"`
}

// Summaries computes the statistics of every active cluster, in id order.
// Centroid, radius and medoid are computed and cached on the clusters.
func (r *Result) Summaries() []Summary {
	active := r.Active()
	out := make([]Summary, 0, len(active))
	for _, c := range active {
		centroid, radius := c.CalcCentroid(r.Matrix)
		sum := c.DistanceSum(r.Matrix)
		s := Summary{
			ID:          c.ID(),
			Members:     c.MemberIDs(),
			Centroid:    centroid,
			Mean:        c.CalcMean(r.Matrix),
			Radius:      radius,
			Diameter:    c.MaxDistance(),
			Pairs:       c.Pairs(),
			DistanceSum: sum,
		}
		if s.Pairs > 0 {
			s.AvDistance = sum / float64(s.Pairs)
		}
		out = append(out, s)
	}
	return out
}

// Report builds the full reporting view of the run.
func (r *Result) Report() Report {
	summaries := r.Summaries()
	var orphans int
	for _, s := range summaries {
		if len(s.Members) == 1 {
			orphans++
		}
	}
	return Report{
		Policy:         r.Policy,
		Measure:        r.Measure,
		Cutoff:         r.Cutoff,
		K:              r.K,
		Seed:           r.Seed,
		Iterations:     r.Iterations,
		Converged:      r.Converged,
		Elements:       len(r.Elements),
		Clusters:       summaries,
		ActiveClusters: len(summaries),
		Orphans:        orphans,
		Silhouette:     r.Silhouette(),
	}
}
