/*
NAME
  viewport.go

DESCRIPTION
  viewport.go provides a non-owning, windowed view into a two dimensional
  buffer of elements.

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

// Package viewport provides windowed, non-owning access into a larger
// linear buffer of typed elements, arranged as a two dimensional grid of
// scanlines.
package viewport

import "fmt"

// Viewport is a rectangular window into a backing buffer of elements of
// type T. The buffer is organised as a one dimensional array of scanlines,
// buf.scanline elements apart. A Viewport never owns its buffer; the
// caller must ensure the buffer outlives the Viewport.
type Viewport[T any] struct {
	width, height     int
	xOffset, yOffset  int
	buf               []T
	bufWidth          int
	bufHeight         int
	scanline          int
}

// New creates a Viewport over buf, a bufWidth x bufHeight grid of elements
// with scanline elements between the start of consecutive rows. New
// returns an error if width, height or scanline is less than 1, or buf is
// nil.
func New[T any](buf []T, bufWidth, bufHeight, scanline int) (*Viewport[T], error) {
	if buf == nil {
		return nil, fmt.Errorf("viewport: nil buffer")
	}
	if bufWidth < 1 || bufHeight < 1 || scanline < 1 {
		return nil, fmt.Errorf("viewport: invalid dimensions %dx%d, scanline %d", bufWidth, bufHeight, scanline)
	}
	return &Viewport[T]{
		width:    bufWidth,
		height:   bufHeight,
		buf:      buf,
		bufWidth: bufWidth,
		bufHeight: bufHeight,
		scanline: scanline,
	}, nil
}

// Clone returns a copy of v that references the same backing buffer.
func (v *Viewport[T]) Clone() *Viewport[T] {
	c := *v
	return &c
}

// Reset restores the view to the full extent of the backing buffer with
// zero offsets.
func (v *Viewport[T]) Reset() {
	v.width = v.bufWidth
	v.height = v.bufHeight
	v.xOffset = 0
	v.yOffset = 0
}

// clamp restricts x to [lo, hi].
func clamp(lo, hi, x int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// SetView translates the view's offset by (dx, dy), clamped to the buffer
// bounds, then sets the view to w x h, clamped to the space remaining
// after the new offset. A negative w or h means "to the end of the
// buffer". SetView never fails.
func (v *Viewport[T]) SetView(w, h, dx, dy int) {
	v.xOffset = clamp(0, v.bufWidth, v.xOffset+dx)
	v.yOffset = clamp(0, v.bufHeight, v.yOffset+dy)

	if w < 0 {
		w = v.bufWidth - v.xOffset
	}
	if h < 0 {
		h = v.bufHeight - v.yOffset
	}

	v.width = clamp(0, v.bufWidth-v.xOffset, w)
	v.height = clamp(0, v.bufHeight-v.yOffset, h)
}

// Scanline returns the backing slice starting at the first element of
// view-row y, i.e. logical position (0, y).
func (v *Viewport[T]) Scanline(y int) []T {
	start := v.scanline*(y+v.yOffset) + v.xOffset
	return v.buf[start:]
}

// At returns the element at logical position (x, y) within the view.
func (v *Viewport[T]) At(x, y int) T {
	return v.buf[v.scanline*(y+v.yOffset)+v.xOffset+x]
}

// Set assigns the element at logical position (x, y) within the view.
func (v *Viewport[T]) Set(x, y int, val T) {
	v.buf[v.scanline*(y+v.yOffset)+v.xOffset+x] = val
}

// Width returns the width of the current view.
func (v *Viewport[T]) Width() int { return v.width }

// Height returns the height of the current view.
func (v *Viewport[T]) Height() int { return v.height }

// OffsetX returns the horizontal offset of the current view.
func (v *Viewport[T]) OffsetX() int { return v.xOffset }

// OffsetY returns the vertical offset of the current view.
func (v *Viewport[T]) OffsetY() int { return v.yOffset }

// BufferWidth returns the width of the backing buffer.
func (v *Viewport[T]) BufferWidth() int { return v.bufWidth }

// BufferHeight returns the height of the backing buffer.
func (v *Viewport[T]) BufferHeight() int { return v.bufHeight }

// ScanlineSize returns the number of elements between the start of one
// scanline and the next in the backing buffer.
func (v *Viewport[T]) ScanlineSize() int { return v.scanline }
