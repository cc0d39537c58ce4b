/*
NAME
  equalizer.go

DESCRIPTION
  equalizer.go implements the adaptive per-tile LMS equalizer: it fits a
  small 2D filter per tile to the tile's expected symbol means, applies
  the fitted filter with edge clamping, and quantizes the result into
  symbol indices.

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

// Package equalizer implements the adaptive image equalizer: block-wise
// LMS filter fitting and quantization of pixels into symbol indices.
package equalizer

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/reelvault/unbox/image8"
	"github.com/reelvault/unbox/viewport"
)

// filterSize is N from the fit algorithm: the filter is always 5×5.
const filterSize = 5

// fitPasses is the fixed number of LMS update passes per tile.
const fitPasses = 10

// mu is the fixed LMS step-size scaling factor, 1/(2N²).
const mu = 1.0 / (2 * filterSize * filterSize)

// FilterCoeff2D is a square, odd-sized grid of filter coefficients,
// addressed in row-major order. A freshly constructed FilterCoeff2D is
// the identity filter: 1 at the center, 0 elsewhere.
type FilterCoeff2D struct {
	size  int
	coefs []float64
}

// NewFilterCoeff2D allocates a size×size identity filter. size must be
// odd.
func NewFilterCoeff2D(size int) (*FilterCoeff2D, error) {
	if size < 1 || size%2 == 0 {
		return nil, fmt.Errorf("equalizer: filter size %d must be odd and positive", size)
	}
	f := &FilterCoeff2D{size: size, coefs: make([]float64, size*size)}
	f.Set(size/2, size/2, 1)
	return f, nil
}

func (f *FilterCoeff2D) Size() int { return f.size }

func (f *FilterCoeff2D) At(row, col int) float64 { return f.coefs[row*f.size+col] }
func (f *FilterCoeff2D) Set(row, col int, v float64) {
	f.coefs[row*f.size+col] = v
}

// FloatMatrix is a rectangular array of float64, row-major.
type FloatMatrix struct {
	Rows, Cols int
	Data       []float64
}

// NewFloatMatrix allocates a zeroed rows×cols FloatMatrix.
func NewFloatMatrix(rows, cols int) *FloatMatrix {
	return &FloatMatrix{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

func (m *FloatMatrix) At(row, col int) float64    { return m.Data[row*m.Cols+col] }
func (m *FloatMatrix) Set(row, col int, v float64) { m.Data[row*m.Cols+col] = v }

// MultipageFloatMatrix is an array of FloatMatrix pages, indexed
// (page, row, col), with one page per tile addressed as (tileRow,
// tileCol) in row-major order: the same (row, col) order MeanSource
// uses, so producer and consumer of tile means agree on the index order
// rather than leaving it ambiguous between caller and callee. Equalize
// itself reads tile means through MeanSource, not through this type.
type MultipageFloatMatrix struct {
	pageRows, pageCols int
	pages              []*FloatMatrix
}

// NewMultipageFloatMatrix allocates pageRows×pageCols pages, each
// rows×cols.
func NewMultipageFloatMatrix(pageRows, pageCols, rows, cols int) *MultipageFloatMatrix {
	m := &MultipageFloatMatrix{pageRows: pageRows, pageCols: pageCols}
	m.pages = make([]*FloatMatrix, pageRows*pageCols)
	for i := range m.pages {
		m.pages[i] = NewFloatMatrix(rows, cols)
	}
	return m
}

// Page returns the page at (tileRow, tileCol).
func (m *MultipageFloatMatrix) Page(tileRow, tileCol int) *FloatMatrix {
	return m.pages[tileRow*m.pageCols+tileCol]
}

// MeanSource supplies, for a given tile, a monotonically non-decreasing
// vector of symbols expected gray-level means: the target symbol
// centroids the equalizer fits its filter towards. The boxing format's
// embedded per-tile calibration data is out of scope for this module;
// callers with access to it should implement MeanSource directly over
// it. DefaultMeanSource is provided as a self-contained stand-in.
type MeanSource interface {
	TileMeans(tileRow, tileCol, symbols int) []float64
}

// tileBounds computes the pixel-range boundaries of cols (or rows) tiles
// covering an axis of length n, such that consecutive boundaries are
// contiguous and the last boundary equals n exactly.
func tileBounds(n, tiles int) []int {
	bounds := make([]int, tiles+1)
	for c := 0; c <= tiles; c++ {
		bounds[c] = int(float64(c)*float64(n)/float64(tiles) + 0.5)
	}
	return bounds
}

// Equalize fits and applies the adaptive equalizer to in, writing
// symbol indices in [0, symbolsPerPixel) to out. in and out must have
// identical dimensions. means supplies each tile's expected symbol
// centroids.
func Equalize(out, in *image8.Image8, symbolsPerPixel, blockWidth, blockHeight int, means MeanSource) error {
	if out.Width != in.Width || out.Height != in.Height {
		return fmt.Errorf("equalizer: out dimensions %dx%d do not match in %dx%d", out.Width, out.Height, in.Width, in.Height)
	}

	srcView, err := viewport.New(in.Data, in.Width, in.Height, in.Stride)
	if err != nil {
		return fmt.Errorf("equalizer: source viewport: %w", err)
	}
	dstView, err := viewport.New(out.Data, out.Width, out.Height, out.Stride)
	if err != nil {
		return fmt.Errorf("equalizer: destination viewport: %w", err)
	}

	rows := maxInt(1, in.Height/blockHeight)
	cols := maxInt(1, in.Width/blockWidth)

	rowBounds := tileBounds(in.Height, rows)
	colBounds := tileBounds(in.Width, cols)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			y0, y1 := rowBounds[r], rowBounds[r+1]
			x0, x1 := colBounds[c], colBounds[c+1]

			mean := means.TileMeans(r, c, symbolsPerPixel)
			thresholds := thresholdsFromMeans(mean)

			tile := srcView.Clone()
			tile.Reset()
			tile.SetView(x1-x0, y1-y0, x0, y0)

			filter, err := NewFilterCoeff2D(filterSize)
			if err != nil {
				return err
			}
			fitTile(filter, tile, mean, thresholds)
			applyAndQuantize(filter, srcView, dstView, x0, y0, x1-x0, y1-y0, thresholds)
		}
	}
	return nil
}

// thresholdsFromMeans computes the S−1 decision thresholds T_k =
// (mean[k]+mean[k+1])/2 between adjacent symbol centroids.
func thresholdsFromMeans(mean []float64) []float64 {
	t := make([]float64, len(mean)-1)
	for k := range t {
		t[k] = (mean[k] + mean[k+1]) / 2
	}
	return t
}

// classify maps a filtered value to a symbol index: the smallest k with
// y < thresholds[k], or len(thresholds) (S−1) if none.
func classify(y float64, thresholds []float64) int {
	for k, t := range thresholds {
		if y < t {
			return k
		}
	}
	return len(thresholds)
}

// fitTile runs the fixed-size signal-energy pass followed by the 10 LMS
// update passes over a tile's interior, mutating filter in place. tile is
// a viewport already windowed to the tile's rectangle, so lookups are by
// tile-local coordinate.
func fitTile(filter *FilterCoeff2D, tile *viewport.Viewport[byte], mean, thresholds []float64) {
	d := filterSize / 2

	interiorW, interiorH := tile.Width()-2*d, tile.Height()-2*d
	if interiorW <= 0 || interiorH <= 0 {
		return
	}

	window := make([]float64, filterSize*filterSize)
	energy := NewFloatMatrix(interiorH, interiorW)
	for m := 0; m < interiorH; m++ {
		for n := 0; n < interiorW; n++ {
			for i := 0; i < filterSize; i++ {
				for j := 0; j < filterSize; j++ {
					window[i*filterSize+j] = float64(tile.At(n+j, m+i))
				}
			}
			energy.Set(m, n, floats.Dot(window, window))
		}
	}

	for pass := 0; pass < fitPasses; pass++ {
		for m := 0; m < interiorH; m++ {
			for n := 0; n < interiorW; n++ {
				var y float64
				for i := 0; i < filterSize; i++ {
					for j := 0; j < filterSize; j++ {
						y += filter.At(i, j) * float64(tile.At(n+j, m+i))
					}
				}
				k := classify(y, thresholds)
				e := mean[k] - y

				// Zero (or NaN) energy divides through uncorrected: a
				// degenerate window's NaN/Inf is meant to propagate into
				// the tile's filter, not be silently skipped.
				scale := (mu * e) / energy.At(m, n)
				for i := 0; i < filterSize; i++ {
					for j := 0; j < filterSize; j++ {
						delta := scale * float64(tile.At(n+j, m+i))
						filter.Set(i, j, filter.At(i, j)+delta)
					}
				}
			}
		}
	}
}

// applyAndQuantize applies the fitted filter across the whole tile with
// edge-clamped neighbor lookups, then quantizes each result to a symbol
// index written into out. src and out are viewports over the full image;
// x0, y0, w, h locate the tile within them so edge clamping can reach
// past the tile's own boundary into the rest of the image.
func applyAndQuantize(filter *FilterCoeff2D, src, out *viewport.Viewport[byte], x0, y0, w, h int, thresholds []float64) {
	d := filterSize / 2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float64
			for i := 0; i < filterSize; i++ {
				for j := 0; j < filterSize; j++ {
					sx := clamp(x0+x-d+j, 0, src.Width()-1)
					sy := clamp(y0+y-d+i, 0, src.Height()-1)
					acc += filter.At(i, j) * float64(src.At(sx, sy))
				}
			}
			out.Set(x0+x, y0+y, byte(classify(acc, thresholds)))
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
