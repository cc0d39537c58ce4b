/*
NAME
  meansource.go

DESCRIPTION
  meansource.go provides a self-contained MeanSource: it buckets a
  tile's pixel histogram into quantile bands and reports each band's
  mean, standing in for the format's out-of-scope embedded per-tile
  calibration data.

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

package equalizer

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/reelvault/unbox/image8"
)

// DefaultMeanSource computes per-tile symbol centroids directly from the
// tile's own pixel histogram: it sorts the tile's pixel values, splits
// them into symbols equal-count quantile bands, and reports each band's
// mean (computed with gonum/stat). It is a reasonable stand-in for calibration
// data this module does not own, useful for tests and for any caller
// without real calibration data.
type DefaultMeanSource struct {
	Image *image8.Image8

	blockWidth, blockHeight int
}

// NewDefaultMeanSource builds a MeanSource over img, tiled the same way
// Equalize will tile it.
func NewDefaultMeanSource(img *image8.Image8, blockWidth, blockHeight int) *DefaultMeanSource {
	return &DefaultMeanSource{Image: img, blockWidth: blockWidth, blockHeight: blockHeight}
}

// TileMeans implements MeanSource.
func (d *DefaultMeanSource) TileMeans(tileRow, tileCol, symbols int) []float64 {
	rows := maxInt(1, d.Image.Height/d.blockHeight)
	cols := maxInt(1, d.Image.Width/d.blockWidth)

	rowBounds := tileBounds(d.Image.Height, rows)
	colBounds := tileBounds(d.Image.Width, cols)
	y0, y1 := rowBounds[tileRow], rowBounds[tileRow+1]
	x0, x1 := colBounds[tileCol], colBounds[tileCol+1]

	values := make([]float64, 0, (x1-x0)*(y1-y0))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			values = append(values, float64(d.Image.At(x, y)))
		}
	}
	sort.Float64s(values)

	means := make([]float64, symbols)
	if len(values) == 0 {
		return means
	}
	for k := 0; k < symbols; k++ {
		lo := k * len(values) / symbols
		hi := (k + 1) * len(values) / symbols
		if hi == lo {
			means[k] = values[lo]
			continue
		}
		means[k] = stat.Mean(values[lo:hi], nil)
	}
	// Guard against degenerate tiles (constant or near-constant pixel
	// values) collapsing every band to the same mean, which would make
	// every threshold equal and classify() always return 0: nudge ties
	// apart by index so thresholds stay strictly increasing.
	for k := 1; k < len(means); k++ {
		if means[k] <= means[k-1] {
			means[k] = means[k-1] + 1
		}
	}
	return means
}
