// Package clustools clusters n elements given only a pairwise, possibly
// asymmetric, score matrix.
//
// Raw scores are first normalized into a symmetric distance matrix by taking
// the harmonic mean of the two directed scores of every pair (similarities
// are inverted to 1 - score beforehand). The matrix is then partitioned with
// one of several policies:
//
//   - hierarchical: merge on every link, smallest distance first, until one
//     cluster remains.
//   - hierarchical_cutoff: single-link agglomeration, links below the cutoff merge.
//   - strict: complete-link agglomeration, every cross pair must be below the cutoff.
//   - upgma: average-link agglomeration, the mean cross distance must be below the cutoff.
//   - spicker: greedy density-based picking of the most populated neighborhood.
//   - kmedoid: partitional clustering around K medoids.
//
// Basic usage:
//
//	cfg := clustools.DefaultConfig()
//	cfg.Policy = clustools.PolicyStrict
//	cfg.Cutoff = 0.3
//	result, err := clustools.Run(raw, n, cfg)
//	// result.Active() is the final partition
//	// result.Report() adds centroid, medoid, radius, diameter and the
//	// silhouette-like score of the partition
//
// For matrices that are already normalized:
//
//	m, err := clustools.NewMatrix(n, dist)
//	result, err := clustools.RunMatrix(m, cfg)
//
// # Cluster lifecycle
//
// Every element starts in its own singleton cluster. Link-driven merges append
// a new cluster to Result.Clusters and retire both parents, so the master list
// keeps at most 2n-1 clusters and cluster ids are never reused. SPICKER also
// appends new clusters; k-medoid retires the singletons and reuses a roster of
// K clusters across iterations. Result.Active returns the final partition.
package clustools
