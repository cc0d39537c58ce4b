/*
NAME
  image8_test.go

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

package image8

import "testing"

func TestNewInvalidDimensions(t *testing.T) {
	if _, err := New(0, 10); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := New(10, -1); err == nil {
		t.Error("expected error for negative height")
	}
}

func TestNewFromDataTooSmall(t *testing.T) {
	if _, err := NewFromData(make([]byte, 5), 4, 4, 4); err == nil {
		t.Error("expected error for undersized data")
	}
}

func TestAtSetWithStride(t *testing.T) {
	img, err := NewFromData(make([]byte, 40), 4, 4, 10)
	if err != nil {
		t.Fatalf("NewFromData: %v", err)
	}
	img.Set(2, 1, 42)
	if got := img.At(2, 1); got != 42 {
		t.Errorf("At(2,1) = %d, want 42", got)
	}
	// Confirm stride, not width, controls row spacing.
	if got := img.Data[1*10+2]; got != 42 {
		t.Errorf("pixel not placed at strided offset: got %d", got)
	}
}

func TestRowLength(t *testing.T) {
	img, err := New(4, 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	row := img.Row(1)
	if len(row) != 4 {
		t.Errorf("len(Row(1)) = %d, want 4", len(row))
	}
}
