package clustools

import "fmt"

// Normalize turns a raw, possibly asymmetric score array into a symmetric
// distance matrix. raw is flat row-major of length n*n; raw[i*n+j] is the
// score from i's perspective toward j. With MeasureSimilarity every score is
// first inverted to 1 - score.
//
// Each unordered pair gets the harmonic mean of its two directed scores:
//
//	2·a·b / (a + b)
//
// When exactly one direction is zero the arithmetic mean is used instead, and
// when both are zero the distance is zero. The diagonal is always zero.
func Normalize(raw []float64, n int, measure Measure) (*Matrix, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative element count %d", ErrMalformedInput, n)
	}
	if len(raw) != n*n {
		return nil, fmt.Errorf("%w: raw length %d does not match n*n = %d (n=%d)", ErrMalformedInput, len(raw), n*n, n)
	}

	scores := raw
	if measure == MeasureSimilarity {
		scores = make([]float64, len(raw))
		for i, s := range raw {
			scores[i] = 1 - s
		}
	}

	m := newMatrix(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := scores[i*n+j], scores[j*n+i]
			if err := checkScore(i, j, a); err != nil {
				return nil, err
			}
			if err := checkScore(j, i, b); err != nil {
				return nil, err
			}
			m.set(i, j, harmonicMean(a, b))
		}
	}
	return m, nil
}

// harmonicMean is symmetric in its operands, including the zero fallbacks.
func harmonicMean(a, b float64) float64 {
	switch {
	case a == 0 && b == 0:
		return 0
	case a == 0 || b == 0:
		return (a + b) / 2
	default:
		return 2 * a * b / (a + b)
	}
}
