/*
NAME
  equalizer_test.go

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

package equalizer

import (
	"testing"

	"github.com/reelvault/unbox/image8"
)

func TestNewFilterCoeff2DIdentity(t *testing.T) {
	f, err := NewFilterCoeff2D(5)
	if err != nil {
		t.Fatalf("NewFilterCoeff2D: %v", err)
	}
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			want := 0.0
			if i == 2 && j == 2 {
				want = 1
			}
			if f.At(i, j) != want {
				t.Errorf("At(%d,%d) = %v, want %v", i, j, f.At(i, j), want)
			}
		}
	}
}

func TestNewFilterCoeff2DRejectsEven(t *testing.T) {
	if _, err := NewFilterCoeff2D(4); err == nil {
		t.Error("expected error for even filter size")
	}
}

func TestTileBoundsSumsToWidth(t *testing.T) {
	bounds := tileBounds(97, 7)
	if bounds[0] != 0 {
		t.Errorf("bounds[0] = %d, want 0", bounds[0])
	}
	if bounds[len(bounds)-1] != 97 {
		t.Errorf("last bound = %d, want 97", bounds[len(bounds)-1])
	}
	for i := 1; i < len(bounds); i++ {
		if bounds[i] < bounds[i-1] {
			t.Fatalf("bounds not monotonic at %d: %v", i, bounds)
		}
	}
}

func TestClassifyPicksSmallestBelowThreshold(t *testing.T) {
	thresholds := []float64{10, 20, 30}
	cases := []struct {
		y    float64
		want int
	}{
		{5, 0},
		{15, 1},
		{25, 2},
		{35, 3},
	}
	for _, c := range cases {
		if got := classify(c.y, thresholds); got != c.want {
			t.Errorf("classify(%v) = %d, want %d", c.y, got, c.want)
		}
	}
}

// constantMeans always returns evenly spaced centroids, independent of
// tile position, used to exercise Equalize without a real MeanSource.
type constantMeans struct{ means []float64 }

func (c constantMeans) TileMeans(int, int, int) []float64 { return c.means }

func TestEqualizeDimensionMismatch(t *testing.T) {
	in, _ := image8.New(10, 10)
	out, _ := image8.New(8, 10)
	err := Equalize(out, in, 4, 5, 5, constantMeans{means: []float64{0, 64, 128, 192}})
	if err == nil {
		t.Error("expected error for mismatched dimensions")
	}
}

func TestEqualizeCleanQuantizedImageIsStable(t *testing.T) {
	const w, h, symbols = 20, 20, 4
	means := []float64{32, 96, 160, 224}

	in, err := image8.New(w, h)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Build an image already exactly at the tile means, checkerboarded
	// by symbol so the filter's identity start already classifies every
	// pixel correctly regardless of the fit.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			in.Set(x, y, byte(means[(x+y)%symbols]))
		}
	}

	out, err := image8.New(w, h)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := Equalize(out, in, symbols, w, h, constantMeans{means: means}); err != nil {
		t.Fatalf("Equalize: %v", err)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			want := byte((x + y) % symbols)
			if got := out.At(x, y); got != want {
				t.Errorf("out.At(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}
