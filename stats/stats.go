/*
NAME
  stats.go

DESCRIPTION
  stats.go defines the statistics accumulated across a codec pipeline's
  decode pass.

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

// Package stats holds the decode-time bookkeeping codecs accumulate into
// as they are chained in a pipeline.
package stats

// DecodeStats accumulates forward-error-correction bookkeeping across one
// or more codec Decode calls. A codec that is not error-correcting (e.g.
// a trailing integrity check) resets it; an error-correcting codec
// accumulates into it.
type DecodeStats struct {
	// FECAccumulatedAmount and FECAccumulatedWeight are codec-specific
	// bookkeeping of how much forward error correction was applied.
	FECAccumulatedAmount float64
	FECAccumulatedWeight float64

	// ResolvedErrors counts bits that were flipped by error correction in
	// a block that subsequently verified.
	ResolvedErrors int

	// UnresolvedErrors counts bits that were flipped by error correction
	// in a block that still failed to verify.
	UnresolvedErrors int
}

// Reset zeroes all fields, as the CRC-64 codec does on every decode.
func (s *DecodeStats) Reset() {
	*s = DecodeStats{}
}
