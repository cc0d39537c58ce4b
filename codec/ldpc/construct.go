/*
NAME
  construct.go

DESCRIPTION
  construct.go builds the sparse parity-check matrix for an LDPC code:
  column-weight partitioning, the evencol/evenboth placement methods, the
  row-weight and even-column-count fixups, and four-cycle elimination.

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

package ldpc

import (
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/reelvault/unbox/strutil"
)

// PchkMethod selects how the initial 1-entries of a parity-check matrix
// are placed.
type PchkMethod int

const (
	PchkUnknown PchkMethod = iota
	PchkEvenCol
	PchkEvenBoth
)

// distribEntry is one (column weight, proportion) pair of a column
// weight distribution.
type distribEntry struct {
	weight int
	prop   float64
}

// Distribution is a column-weight distribution: a set of (weight,
// proportion) pairs describing what fraction of a parity-check matrix's
// columns should carry each weight. The hard-coded distribution used
// throughout this package, "3", gives every column weight 3.
type Distribution struct {
	entries []distribEntry
}

// ParseDistribution parses a distribution spec of the form
// "w1/p1,w2/p2,..." or, as a shorthand for a single uniform weight, a
// bare integer such as "3" (equivalent to "3/1").
func ParseDistribution(spec string) (*Distribution, error) {
	parts, err := strutil.Split(spec, ",")
	if err != nil {
		return nil, errors.Wrap(err, "ldpc: distribution")
	}
	d := &Distribution{entries: make([]distribEntry, 0, len(parts))}
	remaining := 1.0
	unassigned := 0
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		weightStr, propStr, hasProp := strings.Cut(p, "/")
		w, err := strutil.ToInteger(strings.TrimSpace(weightStr))
		if err != nil {
			return nil, errors.Wrapf(err, "ldpc: distribution weight %q", weightStr)
		}
		if !hasProp {
			unassigned++
			d.entries = append(d.entries, distribEntry{weight: w})
			continue
		}
		prop, err := strconv.ParseFloat(strings.TrimSpace(propStr), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "ldpc: distribution proportion %q", propStr)
		}
		remaining -= prop
		d.entries = append(d.entries, distribEntry{weight: w, prop: prop})
	}
	if unassigned > 0 {
		share := remaining / float64(unassigned)
		for i := range d.entries {
			if d.entries[i].prop == 0 && unassigned > 0 {
				d.entries[i].prop = share
			}
		}
	}
	return d, nil
}

// Size reports the number of (weight, proportion) entries.
func (d *Distribution) Size() int { return len(d.entries) }

// Weight reports the column weight of entry z.
func (d *Distribution) Weight(z int) int { return d.entries[z].weight }

// Prop reports the proportion of columns entry z should receive.
func (d *Distribution) Prop(z int) float64 { return d.entries[z].prop }

// columnPartition divides n columns among the distribution's entries
// proportionally, using largest-remainder rounding so the parts sum to
// exactly n.
func columnPartition(d *Distribution, n int) []int {
	part := make([]int, d.Size())
	trunc := make([]float64, d.Size())
	used := 0
	for i := 0; i < d.Size(); i++ {
		exact := d.Prop(i) * float64(n)
		cur := int(math.Floor(exact))
		part[i] = cur
		trunc[i] = exact - float64(cur)
		used += cur
	}
	for used < n {
		best := 0
		for j := 1; j < d.Size(); j++ {
			if trunc[j] > trunc[best] {
				best = j
			}
		}
		part[best]++
		used++
		trunc[best] = -1
	}
	return part
}

// BuildParityCheck constructs an M×N sparse parity-check matrix per the
// distribution d, placement method, and seed, optionally eliminating
// length-four cycles.
func BuildParityCheck(seed int64, method PchkMethod, d *Distribution, no4cycle bool, m, n int) (*SparseMatrix, error) {
	rng := rand.New(rand.NewSource(10*seed + 1))

	h := NewSparseMatrix(m, n)
	part := columnPartition(d, n)

	switch method {
	case PchkEvenCol:
		placeEvenCol(h, rng, d, part, m, n)
	case PchkEvenBoth:
		placeEvenBoth(h, rng, d, part, m, n)
	default:
		return nil, errors.New("ldpc: unknown parity-check construction method")
	}

	fixRowWeights(h, rng, m, n)
	fixEvenColumnCounts(h, rng, d, part, m, n)

	if no4cycle {
		eliminateFourCycles(h, rng, m, n)
	}

	return h, nil
}

func placeEvenCol(h *SparseMatrix, rng *rand.Rand, d *Distribution, part []int, m, n int) {
	z, left := 0, part[0]
	for j := 0; j < n; j++ {
		for left == 0 {
			z++
			if z >= d.Size() {
				return
			}
			left = part[z]
		}
		for k := 0; k < d.Weight(z); k++ {
			var i int
			for {
				i = rng.Intn(m)
				if !h.Find(i, j) {
					break
				}
			}
			h.Insert(i, j)
		}
		left--
	}
}

func placeEvenBoth(h *SparseMatrix, rng *rand.Rand, d *Distribution, part []int, m, n int) {
	cbN := 0
	for z := 0; z < d.Size(); z++ {
		cbN += d.Weight(z) * part[z]
	}
	if cbN == 0 {
		return
	}

	u := make([]int, cbN)
	for k := cbN - 1; k >= 0; k-- {
		u[k] = k % m
	}

	t := 0
	z, left := 0, part[0]
	for j := 0; j < n; j++ {
		for left == 0 {
			z++
			if z >= d.Size() {
				return
			}
			left = part[z]
		}
		for k := 0; k < d.Weight(z); k++ {
			i := t
			for i < cbN && h.Find(u[i], j) {
				i++
			}
			if i == cbN {
				var row int
				for {
					row = rng.Intn(m)
					if !h.Find(row, j) {
						break
					}
				}
				h.Insert(row, j)
			} else {
				for {
					i = t + rng.Intn(cbN-t)
					if !h.Find(u[i], j) {
						break
					}
				}
				h.Insert(u[i], j)
				u[i] = u[t]
				t++
			}
		}
		left--
	}
}

// fixRowWeights ensures every row has weight at least 2, inserting one or
// two random 1-entries into rows that fall short.
func fixRowWeights(h *SparseMatrix, rng *rand.Rand, m, n int) {
	for i := 0; i < m; i++ {
		if h.CountRow(i) == 0 {
			h.Insert(i, rng.Intn(n))
		}
		if h.CountRow(i) == 1 && n > 1 {
			var first int
			h.RowEntries(i, func(col int) { first = col })
			var j int
			for {
				j = rng.Intn(n)
				if j != first {
					break
				}
			}
			h.Insert(i, j)
		}
	}
}

// fixEvenColumnCounts inserts two extra random 1-entries when every
// column weight in the distribution is even, to break parity
// regularities that would otherwise make every column's check trivially
// satisfiable in pairs.
func fixEvenColumnCounts(h *SparseMatrix, rng *rand.Rand, d *Distribution, part []int, m, n int) {
	nFull := 0
	allEven := true
	for z := 0; z < d.Size(); z++ {
		if d.Weight(z) == m {
			nFull += part[z]
		}
		if d.Weight(z)%2 == 1 {
			allEven = false
		}
	}
	if !allEven || n-nFull <= 1 {
		return
	}
	for a := 0; a < 2; a++ {
		var i, j int
		for {
			i, j = rng.Intn(m), rng.Intn(n)
			if !h.Find(i, j) {
				break
			}
		}
		h.Insert(i, j)
	}
}

// eliminateFourCycles runs up to 10 passes trying to remove length-four
// cycles (two columns sharing two rows): for each found, one offending
// entry is deleted and reinserted in the same column at a freshly chosen
// free row. A pass that makes no change ends elimination early.
func eliminateFourCycles(h *SparseMatrix, rng *rand.Rand, m, n int) {
	for pass := 0; pass < 10; pass++ {
		changed := 0
		for j := 0; j < n; j++ {
			found := false
			h.ColEntries(j, func(row int) {
				if found {
					return
				}
				h.RowEntries(row, func(col2 int) {
					if found || col2 == j {
						return
					}
					h.ColEntries(col2, func(row2 int) {
						if found || row2 == row {
							return
						}
						h.RowEntries(row2, func(col3 int) {
							if !found && col3 == j {
								var newRow int
								for {
									newRow = rng.Intn(m)
									if !h.Find(newRow, j) {
										break
									}
								}
								h.Delete(row, j)
								h.Insert(newRow, j)
								changed++
								found = true
							}
						})
					})
				})
			})
		}
		if changed == 0 {
			break
		}
	}
}
