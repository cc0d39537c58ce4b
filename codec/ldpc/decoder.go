/*
NAME
  decoder.go

DESCRIPTION
  decoder.go implements probability-propagation (belief propagation)
  decoding of an LDPC codeword over the Tanner graph of its parity-check
  matrix.

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

package ldpc

import "math"

// llrClip bounds the argument to exp() so it never overflows float64
// range; the source clips at the same magnitude for the same reason.
const llrClip = 745

// llrFromByte converts one packed log-likelihood-ratio byte (signed,
// units of 1/10 nat) into a likelihood ratio, matching the source's
// exp(src/10.0).
func llrFromByte(b int8) float64 {
	x := float64(b) / 10.0
	if x > llrClip {
		x = llrClip
	} else if x < -llrClip {
		x = -llrClip
	}
	return math.Exp(x)
}

// prp holds the running bit-to-check messages for every entry of the
// parity-check matrix during probability propagation.
type prp struct {
	h *SparseMatrix

	// bitToCheck indexes messages by (row, col) pair via a map keyed on
	// edgeKey(row, col); N and M are small enough in practice (hundreds
	// to low thousands) that this is simple and adequate.
	bitToCheck map[int64]float64
}

func edgeKey(row, col int) int64 { return int64(row)<<32 | int64(uint32(col)) }

// initprp initializes the bit-to-check messages from the channel
// likelihood ratios and produces the initial hard-decision guess dblk.
func initprp(h *SparseMatrix, lratio []float64) (*prp, []byte) {
	p := &prp{h: h, bitToCheck: make(map[int64]float64)}
	n := h.Cols()
	dblk := make([]byte, n)
	for j := 0; j < n; j++ {
		if lratio[j] > 1 {
			dblk[j] = 1
		}
		h.ColEntries(j, func(row int) {
			p.bitToCheck[edgeKey(row, j)] = lratio[j]
		})
	}
	return p, dblk
}

// check computes the syndrome of dblk against h: pchk[i] is the parity
// of row i's bits in dblk. It returns the number of unsatisfied checks.
func check(h *SparseMatrix, dblk []byte, pchk []byte) int {
	unsatisfied := 0
	for i := 0; i < h.Rows(); i++ {
		var parity byte
		h.RowEntries(i, func(col int) { parity ^= dblk[col] })
		pchk[i] = parity
		if parity != 0 {
			unsatisfied++
		}
	}
	return unsatisfied
}

// iterprp runs one pass of probability-propagation message updates:
// check-to-bit messages are formed from the other bits feeding each
// check (the standard tanh-domain product-of-differences update,
// approximated here in likelihood-ratio space), then bit-to-check
// messages and the hard-decision vector dblk are refreshed from the
// channel ratio combined with every incoming check message.
func (p *prp) iterprp(lratio []float64, dblk []byte) {
	h := p.h
	M, N := h.Rows(), h.Cols()

	checkToBit := make(map[int64]float64, len(p.bitToCheck))
	for i := 0; i < M; i++ {
		var cols []int
		h.RowEntries(i, func(col int) { cols = append(cols, col) })
		for _, c := range cols {
			product := 1.0
			for _, other := range cols {
				if other == c {
					continue
				}
				m := p.bitToCheck[edgeKey(i, other)]
				product *= (1 - m) / (1 + m)
			}
			var r float64
			if product <= -1 {
				r = llrClip
			} else if product >= 1 {
				r = 1 / llrClip
			} else {
				r = (1 - product) / (1 + product)
			}
			checkToBit[edgeKey(i, c)] = r
		}
	}

	belief := make([]float64, N)
	for j := 0; j < N; j++ {
		b := lratio[j]
		h.ColEntries(j, func(row int) { b *= checkToBit[edgeKey(row, j)] })
		belief[j] = b
		if b > 1 {
			dblk[j] = 1
		} else {
			dblk[j] = 0
		}
	}

	for j := 0; j < N; j++ {
		h.ColEntries(j, func(row int) {
			m := belief[j]
			if d := checkToBit[edgeKey(row, j)]; d != 0 {
				m /= d
			}
			p.bitToCheck[edgeKey(row, j)] = m
		})
	}
}

// decodePRPRP runs up to maxIter rounds of probability propagation on a
// single codeword's likelihood ratios, stopping early once every parity
// check is satisfied. It returns the decoded bit vector and the final
// syndrome.
func decodePRPRP(h *SparseMatrix, lratio []float64, maxIter int) (dblk []byte, pchk []byte) {
	p, dblk := initprp(h, lratio)
	pchk = make([]byte, h.Rows())

	for n := 0; ; n++ {
		unsatisfied := check(h, dblk, pchk)
		if n == maxIter || unsatisfied == 0 {
			break
		}
		p.iterprp(lratio, dblk)
	}
	return dblk, pchk
}
