package sparse

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Symbolic is the ordering and band structure of a matrix pattern.
// It can be reused to factorize matrices with the same pattern.
type Symbolic struct {
	n         int
	perm      []int // position -> original index
	inv       []int // original index -> position
	bandwidth int
}

// Analyze computes the symbolic factorization of a square matrix.
func Analyze(a *CSR) (*Symbolic, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrInvalidArgument)
	}
	if a.rows != a.cols {
		return nil, fmt.Errorf("%w: matrix is %dx%d, not square", ErrInvalidArgument, a.rows, a.cols)
	}
	n := a.rows
	for i := 0; i < n; i++ {
		if a.rowPtr[i] == a.rowPtr[i+1] {
			return nil, fmt.Errorf("%w: row %d is structurally empty", ErrSingularMatrix, i)
		}
	}

	s := &Symbolic{n: n, perm: rcm(pattern(a)), inv: make([]int, n)}
	for k, i := range s.perm {
		s.inv[i] = k
	}
	for i := 0; i < n; i++ {
		a.Row(i, func(j int, _ float64) {
			if d := abs(s.inv[i] - s.inv[j]); d > s.bandwidth {
				s.bandwidth = d
			}
		})
	}
	return s, nil
}

// Dim returns the matrix order.
func (s *Symbolic) Dim() int { return s.n }

// Bandwidth returns the half-bandwidth after reordering.
func (s *Symbolic) Bandwidth() int { return s.bandwidth }

// Factorization is a numeric band Cholesky factorization of a reordered
// symmetric positive definite matrix.
type Factorization struct {
	ready bool
	n     int
	perm  []int
	inv   []int
	chol  mat.BandCholesky
}

// Factorize performs the numeric factorization of a, which must share the
// pattern analysed by s.
func (s *Symbolic) Factorize(a *CSR) (*Factorization, error) {
	if a == nil || a.rows != s.n || a.cols != s.n {
		return nil, fmt.Errorf("%w: matrix does not match the analysed pattern", ErrInvalidArgument)
	}
	f := &Factorization{ready: true, n: s.n, perm: s.perm, inv: s.inv}
	if s.n == 0 {
		return f, nil
	}

	band := mat.NewSymBandDense(s.n, s.bandwidth, nil)
	var err error
	for i := 0; i < s.n && err == nil; i++ {
		a.Row(i, func(j int, v float64) {
			pi, pj := s.inv[i], s.inv[j]
			if pi > pj {
				return
			}
			if pj-pi > s.bandwidth {
				err = fmt.Errorf("%w: entry (%d, %d) outside the analysed band", ErrInvalidArgument, i, j)
				return
			}
			band.SetSymBand(pi, pj, v)
		})
	}
	if err != nil {
		return nil, err
	}

	if ok := f.chol.Factorize(band); !ok {
		return nil, fmt.Errorf("%w: matrix is not positive definite", ErrSingularMatrix)
	}
	if c := f.chol.Cond(); c > mat.ConditionTolerance || math.IsNaN(c) {
		return nil, fmt.Errorf("%w: condition number %.3g", ErrSingularMatrix, c)
	}
	return f, nil
}

// Dim returns the order of the factorized matrix.
func (f *Factorization) Dim() int { return f.n }

// Solve returns x such that A·x = rhs.
func (f *Factorization) Solve(rhs []float64) ([]float64, error) {
	if f == nil || !f.ready {
		return nil, ErrNotFactorized
	}
	if len(rhs) != f.n {
		return nil, fmt.Errorf("%w: right-hand side length %d, matrix order %d", ErrInvalidArgument, len(rhs), f.n)
	}
	if f.n == 0 {
		return []float64{}, nil
	}

	b := mat.NewVecDense(f.n, nil)
	for i, v := range rhs {
		b.SetVec(f.inv[i], v)
	}
	var y mat.VecDense
	if err := f.chol.SolveVecTo(&y, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularMatrix, err)
	}
	x := make([]float64, f.n)
	for i := range x {
		x[i] = y.AtVec(f.inv[i])
	}
	return x, nil
}

// Residual returns max_i |(A·x)_i - rhs_i|.
func Residual(a *CSR, x, rhs []float64) (float64, error) {
	if len(rhs) != a.rows {
		return 0, fmt.Errorf("%w: right-hand side length %d, matrix has %d rows", ErrInvalidArgument, len(rhs), a.rows)
	}
	r, err := a.MulVec(x)
	if err != nil {
		return 0, err
	}
	if len(r) == 0 {
		return 0, nil
	}
	floats.Sub(r, rhs)
	return floats.Norm(r, math.Inf(1)), nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
