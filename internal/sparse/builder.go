// Package sparse assembles symmetric stiffness matrices from triplets and
// solves them with a reverse Cuthill-McKee ordering followed by a band
// Cholesky factorization.
package sparse

import (
	"fmt"
	"slices"
)

// Triplet is a single (row, col, value) contribution.
type Triplet struct {
	Row   int
	Col   int
	Value float64
}

// Builder collects triplets. It is append-only; duplicates are summed when
// the matrix is compressed.
type Builder struct {
	rows    int
	cols    int
	entries []Triplet
}

// NewBuilder creates a builder for a rows×cols matrix with room for
// capacity triplets.
func NewBuilder(rows, cols, capacity int) *Builder {
	if capacity < 0 {
		capacity = 0
	}
	return &Builder{rows: rows, cols: cols, entries: make([]Triplet, 0, capacity)}
}

// Append adds v at (row, col).
func (b *Builder) Append(row, col int, v float64) error {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return fmt.Errorf("%w: entry (%d, %d) outside %dx%d", ErrInvalidArgument, row, col, b.rows, b.cols)
	}
	b.entries = append(b.entries, Triplet{Row: row, Col: col, Value: v})
	return nil
}

// Len returns the number of appended triplets.
func (b *Builder) Len() int { return len(b.entries) }

// Cap returns the triplet capacity.
func (b *Builder) Cap() int { return cap(b.entries) }

// Dims returns the matrix dimensions.
func (b *Builder) Dims() (int, int) { return b.rows, b.cols }

// Matrix compresses the triplets to CSR, summing duplicates.
// The builder is left unchanged.
func (b *Builder) Matrix() *CSR {
	ts := slices.Clone(b.entries)
	slices.SortFunc(ts, func(x, y Triplet) int {
		if x.Row != y.Row {
			return x.Row - y.Row
		}
		return x.Col - y.Col
	})

	m := &CSR{
		rows:   b.rows,
		cols:   b.cols,
		rowPtr: make([]int, b.rows+1),
		colIdx: make([]int, 0, len(ts)),
		values: make([]float64, 0, len(ts)),
	}
	for i, t := range ts {
		if i > 0 && ts[i-1].Row == t.Row && ts[i-1].Col == t.Col {
			m.values[len(m.values)-1] += t.Value
			continue
		}
		m.colIdx = append(m.colIdx, t.Col)
		m.values = append(m.values, t.Value)
		m.rowPtr[t.Row+1]++
	}
	for i := 0; i < b.rows; i++ {
		m.rowPtr[i+1] += m.rowPtr[i]
	}
	return m
}
