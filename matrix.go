package clustools

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// symmetryTolerance is the largest |d(i,j) - d(j,i)| accepted by NewMatrix.
const symmetryTolerance = 1e-9

// Matrix is a normalized n×n distance matrix: symmetric, non-negative, zero
// on the diagonal. Symmetry is structural since the storage is a
// gonum SymDense holding only one triangle.
type Matrix struct {
	n   int
	sym *mat.SymDense
}

// newMatrix allocates an all-zero n×n matrix.
func newMatrix(n int) *Matrix {
	m := &Matrix{n: n}
	if n > 0 {
		m.sym = mat.NewSymDense(n, nil)
	}
	return m
}

// NewMatrix wraps an already normalized distance matrix. dist is a flat
// []float64 of length n*n in row-major order. It must be symmetric, have a
// zero diagonal and contain only finite non-negative values.
func NewMatrix(n int, dist []float64) (*Matrix, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative element count %d", ErrMalformedInput, n)
	}
	if len(dist) != n*n {
		return nil, fmt.Errorf("%w: dist length %d does not match n*n = %d (n=%d)", ErrMalformedInput, len(dist), n*n, n)
	}

	m := newMatrix(n)
	for i := 0; i < n; i++ {
		if d := dist[i*n+i]; d != 0 {
			return nil, fmt.Errorf("%w: diagonal entry (%d,%d) = %g, want 0", ErrMalformedInput, i, i, d)
		}
		for j := i + 1; j < n; j++ {
			a, b := dist[i*n+j], dist[j*n+i]
			if err := checkScore(i, j, a); err != nil {
				return nil, err
			}
			if err := checkScore(j, i, b); err != nil {
				return nil, err
			}
			if math.Abs(a-b) > symmetryTolerance {
				return nil, fmt.Errorf("%w: entries (%d,%d)=%g and (%d,%d)=%g are not symmetric", ErrMalformedInput, i, j, a, j, i, b)
			}
			m.sym.SetSym(i, j, a)
		}
	}
	return m, nil
}

// checkScore rejects values that cannot be distances.
func checkScore(i, j int, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: score (%d,%d) is not finite", ErrMalformedInput, i, j)
	}
	if v < 0 {
		return fmt.Errorf("%w: score (%d,%d) = %g is negative", ErrMalformedInput, i, j, v)
	}
	return nil
}

// N returns the number of elements.
func (m *Matrix) N() int { return m.n }

// At returns the distance between elements i and j.
func (m *Matrix) At(i, j int) float64 { return m.sym.At(i, j) }

func (m *Matrix) set(i, j int, v float64) { m.sym.SetSym(i, j, v) }

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	row := make([]float64, m.n)
	for j := range row {
		row[j] = m.sym.At(i, j)
	}
	return row
}

// Dense returns the full matrix as a flat row-major []float64 of length n*n.
func (m *Matrix) Dense() []float64 {
	out := make([]float64, m.n*m.n)
	for i := 0; i < m.n; i++ {
		for j := i + 1; j < m.n; j++ {
			d := m.sym.At(i, j)
			out[i*m.n+j] = d
			out[j*m.n+i] = d
		}
	}
	return out
}

// Symmetric exposes the underlying gonum matrix for read-only use.
// It is nil when the matrix has no elements.
func (m *Matrix) Symmetric() mat.Symmetric {
	if m.sym == nil {
		return nil
	}
	return m.sym
}

// Clone returns an independent copy.
func (m *Matrix) Clone() *Matrix {
	c := newMatrix(m.n)
	if m.sym != nil {
		c.sym.CopySym(m.sym)
	}
	return c
}
