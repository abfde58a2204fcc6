package sparse

import (
	"fmt"
	"sort"
)

// CSR is a compressed sparse row matrix.
type CSR struct {
	rows   int
	cols   int
	rowPtr []int
	colIdx []int
	values []float64
}

// Dims returns the number of rows and columns.
func (m *CSR) Dims() (int, int) { return m.rows, m.cols }

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int { return len(m.values) }

// At returns the entry at (i, j), or 0 when it is not stored.
func (m *CSR) At(i, j int) float64 {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return 0
	}
	start, end := m.rowPtr[i], m.rowPtr[i+1]
	k := sort.SearchInts(m.colIdx[start:end], j) + start
	if k < end && m.colIdx[k] == j {
		return m.values[k]
	}
	return 0
}

// Row calls fn for each stored entry of row i in column order.
func (m *CSR) Row(i int, fn func(j int, v float64)) {
	for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
		fn(m.colIdx[k], m.values[k])
	}
}

// MulVec returns m·x.
func (m *CSR) MulVec(x []float64) ([]float64, error) {
	if len(x) != m.cols {
		return nil, fmt.Errorf("%w: vector length %d, matrix has %d columns", ErrInvalidArgument, len(x), m.cols)
	}
	y := make([]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		var s float64
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			s += m.values[k] * x[m.colIdx[k]]
		}
		y[i] = s
	}
	return y, nil
}
