/*
NAME
  generator.go

DESCRIPTION
  generator.go builds the dense generator matrix for an LDPC code from
  its parity-check matrix: greedy pivot selection over GF(2) followed by
  G = inv(A)·B.

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

package ldpc

import "gonum.org/v1/gonum/mat"

// GeneratorKind tags which representation a GeneratorMatrix holds.
// sparse and mixed are preserved for format compatibility; this package
// only constructs dense generator matrices.
type GeneratorKind int

const (
	GeneratorUnknown GeneratorKind = iota
	GeneratorSparse
	GeneratorDense
	GeneratorMixed
)

// GeneratorMatrix is the generator side of an LDPC code: the M×(N−M)
// dense matrix G such that parity bits p = G·msg, together with the
// column permutation that maps codeword positions back to message and
// parity bit positions.
type GeneratorMatrix struct {
	Kind GeneratorKind

	M, N int

	// Cols is the N-length column permutation computed during
	// construction: Cols[0:M] are the parity-check pivot columns, and
	// Cols[M:N] are the message (data) columns, in codeword order.
	Cols []int

	// G is the dense M×(N−M) generator matrix. Rows index parity bits;
	// columns index message bits in the order given by Cols[M:N].
	G *mat.Dense

	// Redundant is the diagnostic count of parity checks that could not
	// be given an independent pivot column during construction.
	Redundant int
}

// BuildDenseGenerator constructs the dense generator matrix for the
// parity-check matrix H, per the "Generator-matrix build (dense)"
// algorithm: greedy pivoting to select an invertible M×M submatrix A,
// then G = inv(A)·B where B holds H's remaining N−M columns.
func BuildDenseGenerator(H *SparseMatrix) *GeneratorMatrix {
	M, N := H.Rows(), H.Cols()
	DH := H.ToDense()

	ai, cols, redundant := invertSelected(DH, M, N)

	b := NewDenseMatrix(M, N-M)
	for j, src := range cols[M:] {
		for i := 0; i < M; i++ {
			b.Set(i, j, DH.Get(i, src))
		}
	}

	g := Multiply(ai, b)

	return &GeneratorMatrix{
		Kind:      GeneratorDense,
		M:         M,
		N:         N,
		Cols:      cols,
		G:         denseToGonum(g),
		Redundant: redundant,
	}
}

// denseToGonum copies a GF(2) DenseMatrix into a gonum mat.Dense of 0/1
// float64 entries, giving the generator matrix gonum-backed storage
// (the equalizer also uses gonum, through its floats and stat packages).
func denseToGonum(d *DenseMatrix) *mat.Dense {
	g := mat.NewDense(d.Rows(), d.Cols(), nil)
	for i := 0; i < d.Rows(); i++ {
		for j := 0; j < d.Cols(); j++ {
			if d.Get(i, j) != 0 {
				g.Set(i, j, 1)
			}
		}
	}
	return g
}

// GetBit returns gen[row][col] as 0 or 1, reading back out of the
// float64-backed gonum storage.
func (gm *GeneratorMatrix) GetBit(row, col int) byte {
	if gm.G.At(row, col) != 0 {
		return 1
	}
	return 0
}

// invertSelected performs Gauss-Jordan elimination over GF(2), greedily
// scanning columns left to right and, for each, pivoting on the first
// available row not yet used by an earlier pivot. It returns the inverse
// of the selected M×M submatrix (expressed in the original row basis),
// the full N-length column permutation (pivot columns first, in
// discovery order, followed by the remaining columns in their original
// order), and the count of rows for which no independent pivot column
// could be found.
//
// The reference mod2dense_invert_selected this is modeled on was not
// available to model bit-for-bit; this is a standard augmented-identity
// Gauss-Jordan reduction, chosen because it satisfies the same contract
// spec'd for the original: select an invertible M×M submatrix by greedy
// column pivoting and produce its inverse.
func invertSelected(DH *DenseMatrix, M, N int) (*DenseMatrix, []int, int) {
	w := make([][]byte, M)
	r := make([][]byte, M)
	for i := 0; i < M; i++ {
		w[i] = make([]byte, N)
		for j := 0; j < N; j++ {
			w[i][j] = DH.Get(i, j)
		}
		r[i] = make([]byte, M)
		r[i][i] = 1
	}

	pos := 0
	pivotCols := make([]int, 0, M)
	isPivot := make([]bool, N)

	for c := 0; c < N && pos < M; c++ {
		pivotRow := -1
		for row := pos; row < M; row++ {
			if w[row][c] == 1 {
				pivotRow = row
				break
			}
		}
		if pivotRow == -1 {
			continue
		}
		w[pos], w[pivotRow] = w[pivotRow], w[pos]
		r[pos], r[pivotRow] = r[pivotRow], r[pos]

		for row := 0; row < M; row++ {
			if row != pos && w[row][c] == 1 {
				xorInto(w[row], w[pos])
				xorInto(r[row], r[pos])
			}
		}

		pivotCols = append(pivotCols, c)
		isPivot[c] = true
		pos++
	}

	redundant := M - pos

	cols := make([]int, 0, N)
	cols = append(cols, pivotCols...)
	for c := 0; c < N; c++ {
		if !isPivot[c] {
			cols = append(cols, c)
		}
	}

	ai := NewDenseMatrix(M, M)
	for i := 0; i < M; i++ {
		for k := 0; k < M; k++ {
			ai.Set(i, k, r[i][k])
		}
	}
	return ai, cols, redundant
}

func xorInto(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}
