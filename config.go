package clustools

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Policy selects the clustering strategy.
type Policy string

const (
	// PolicyHierarchical merges on every link until one cluster remains.
	PolicyHierarchical Policy = "hierarchical"
	// PolicyHierarchicalCutoff is single-link clustering: links below the
	// cutoff always merge their clusters.
	PolicyHierarchicalCutoff Policy = "hierarchical_cutoff"
	// PolicyStrict is complete-link clustering: two clusters merge only if
	// every cross pair is below the cutoff.
	PolicyStrict Policy = "strict"
	// PolicyUPGMA is average-link clustering: two clusters merge only if the
	// mean cross distance is below the cutoff.
	PolicyUPGMA Policy = "upgma"
	// PolicySpicker repeatedly takes the element with the most neighbors
	// below the cutoff and turns its neighborhood into a cluster.
	PolicySpicker Policy = "spicker"
	// PolicyKMedoid partitions the elements around K medoids.
	PolicyKMedoid Policy = "kmedoid"
)

// Measure says how raw scores are to be read.
type Measure string

const (
	// MeasureDistance treats raw scores as distances (0 = identical).
	MeasureDistance Measure = "distance"
	// MeasureSimilarity treats raw scores as similarities in [0, 1]; they
	// are inverted to 1 - score before normalization.
	MeasureSimilarity Measure = "similarity"
)

// Config controls a clustering run.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Policy is the clustering strategy. Default: PolicyHierarchicalCutoff.
	Policy Policy

	// Measure says whether raw scores are distances or similarities.
	// Default: MeasureDistance.
	Measure Measure

	// Cutoff gates merges for the link policies and neighborhoods for SPICKER.
	// With MeasureSimilarity it is a similarity and the distance threshold
	// actually applied is 1 - Cutoff (see DistanceCutoff). For PolicyKMedoid
	// it doubles as the cluster count when K is zero. Default: 0.5.
	Cutoff float64

	// K is the number of medoids for PolicyKMedoid. 0 means int(Cutoff).
	K int

	// Seed drives the initial medoid sampling of PolicyKMedoid. 0 means a
	// time-based seed; the seed actually used is reported in Result.Seed.
	Seed int64

	// MaxIterations caps the k-medoid assign/update loop. Exceeding it
	// returns ErrNonConvergence. Default: 100.
	MaxIterations int

	// Logger receives debug events for merges and iterations. nil disables
	// logging.
	Logger *zap.Logger
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Policy:        PolicyHierarchicalCutoff,
		Measure:       MeasureDistance,
		Cutoff:        0.5,
		MaxIterations: 100,
	}
}

// DistanceCutoff returns the threshold applied to normalized distances.
// Similarity cutoffs are inverted; the k-medoid policy never inverts because
// its cutoff is a count.
func (c Config) DistanceCutoff() float64 {
	if c.Measure == MeasureSimilarity && c.Policy != PolicyKMedoid {
		return 1 - c.Cutoff
	}
	return c.Cutoff
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Policy == "" {
		cfg.Policy = def.Policy
	}
	if cfg.Measure == "" {
		cfg.Measure = def.Measure
	}
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = def.MaxIterations
	}
	if cfg.Policy == PolicyKMedoid && cfg.K == 0 {
		cfg.K = int(cfg.Cutoff)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	switch cfg.Policy {
	case PolicyHierarchical, PolicyHierarchicalCutoff, PolicyStrict,
		PolicyUPGMA, PolicySpicker, PolicyKMedoid:
		// valid
	default:
		return fmt.Errorf("%w: unknown Policy %q", ErrInvalidConfiguration, cfg.Policy)
	}
	switch cfg.Measure {
	case MeasureDistance, MeasureSimilarity:
	default:
		return fmt.Errorf("%w: unknown Measure %q", ErrInvalidConfiguration, cfg.Measure)
	}
	if math.IsNaN(cfg.Cutoff) || math.IsInf(cfg.Cutoff, 0) {
		return fmt.Errorf("%w: Cutoff must be finite, got %f", ErrInvalidConfiguration, cfg.Cutoff)
	}
	if cfg.MaxIterations < 1 {
		return fmt.Errorf("%w: MaxIterations must be >= 1, got %d", ErrInvalidConfiguration, cfg.MaxIterations)
	}

	if cfg.Policy == PolicyKMedoid {
		if cfg.K < 1 {
			return fmt.Errorf("%w: K must be >= 1, got %d", ErrInvalidConfiguration, cfg.K)
		}
		return nil
	}

	if cfg.Measure == MeasureSimilarity && (cfg.Cutoff < 0 || cfg.Cutoff > 1) {
		return fmt.Errorf("%w: similarity Cutoff must be in [0, 1], got %f", ErrInvalidConfiguration, cfg.Cutoff)
	}
	cutoff := cfg.DistanceCutoff()
	if cutoff < 0 {
		return fmt.Errorf("%w: Cutoff must be >= 0, got %f", ErrInvalidConfiguration, cfg.Cutoff)
	}
	// A zero distance cutoff gives SPICKER no neighbors at all, not even the
	// center itself.
	if cfg.Policy == PolicySpicker && cutoff == 0 {
		return fmt.Errorf("%w: spicker needs a distance cutoff > 0, got %f", ErrInvalidConfiguration, cutoff)
	}
	return nil
}
