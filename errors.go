package clustools

import "errors"

var (
	// ErrMalformedInput is returned when raw scores cannot be turned into an
	// n×n distance matrix (wrong length, NaN/Inf, negative distances).
	ErrMalformedInput = errors.New("clustools: malformed input")

	// ErrInvalidConfiguration is returned before any clustering work begins
	// when a Config field is out of range.
	ErrInvalidConfiguration = errors.New("clustools: invalid configuration")

	// ErrNonConvergence is returned by the k-medoid policy when medoids are
	// still moving after Config.MaxIterations iterations. The partial result
	// is returned alongside it.
	ErrNonConvergence = errors.New("clustools: k-medoid did not converge")
)
