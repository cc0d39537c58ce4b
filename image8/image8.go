/*
NAME
  image8.go

DESCRIPTION
  image8.go defines the 8-bit grayscale buffer type that the equalizer and
  codec pipeline operate on.

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

// Package image8 provides a rectangular buffer of 8-bit grayscale
// pixels, readable with At and Row and writable with Set. File I/O and container decode are out of scope; an
// Image8 is always constructed in memory from already-decoded pixels.
package image8

import "fmt"

// Image8 is a row-major 8-bit grayscale image with an optional stride
// (scanline size) distinct from its width.
type Image8 struct {
	Width, Height int
	Stride        int
	Data          []byte
}

// New allocates an Image8 of the given dimensions with stride equal to
// width.
func New(width, height int) (*Image8, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("image8: invalid dimensions %dx%d", width, height)
	}
	return &Image8{
		Width:  width,
		Height: height,
		Stride: width,
		Data:   make([]byte, width*height),
	}, nil
}

// NewFromData wraps existing pixel data as an Image8. data must be at
// least stride*height bytes long.
func NewFromData(data []byte, width, height, stride int) (*Image8, error) {
	if width < 1 || height < 1 || stride < width {
		return nil, fmt.Errorf("image8: invalid dimensions %dx%d, stride %d", width, height, stride)
	}
	if len(data) < stride*height {
		return nil, fmt.Errorf("image8: data too small: %d bytes for %dx%d stride %d", len(data), width, height, stride)
	}
	return &Image8{Width: width, Height: height, Stride: stride, Data: data}, nil
}

// At returns the pixel at (x, y).
func (i *Image8) At(x, y int) byte {
	return i.Data[y*i.Stride+x]
}

// Set assigns the pixel at (x, y).
func (i *Image8) Set(x, y int, v byte) {
	i.Data[y*i.Stride+x] = v
}

// Row returns the backing slice for scanline y.
func (i *Image8) Row(y int) []byte {
	return i.Data[y*i.Stride : y*i.Stride+i.Width]
}
