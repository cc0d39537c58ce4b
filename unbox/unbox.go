/*
NAME
  unbox.go

DESCRIPTION
  unbox.go implements the top-level frame decode orchestrator: given a
  cropped grayscale frame and a codec pipeline, it runs the equalizer,
  packs the resulting symbol image into bytes, drives the pipeline, and
  reports a typed result code.

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

// Package unbox implements the decode pipeline for a single frame: it
// composes the equalizer and a codec pipeline into one call that takes a
// cropped grayscale image and returns a recovered payload.
package unbox

import (
	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"

	"github.com/reelvault/unbox/codec"
	"github.com/reelvault/unbox/equalizer"
	"github.com/reelvault/unbox/image8"
	"github.com/reelvault/unbox/stats"
)

// Log receives per-frame diagnostics (pipeline failures, CRC mismatches).
// Nil by default so Decoder carries no mandatory global state; set it
// before calling Decode to capture diagnostics.
var Log logging.Logger

func logDebug(msg string, args ...interface{}) {
	if Log != nil {
		Log.Debug(msg, args...)
	}
}

// ResultCode is the typed outcome of a frame decode.
type ResultCode int

const (
	// OK indicates the payload was recovered and verified.
	OK ResultCode = iota
	// MetadataError indicates the out-of-scope metadata layer failed to
	// supply required parameters. This package never produces it itself;
	// it exists so callers that layer metadata loading on top of Decoder
	// can report failures through the same result-code taxonomy.
	MetadataError
	// BorderTrackingError indicates the out-of-scope border-tracking
	// layer failed to produce a cropped data-area image; like
	// MetadataError, callers report it, not this package.
	BorderTrackingError
	// DataDecodeError indicates the equalizer or codec pipeline failed
	// for a reason other than a verification mismatch (e.g. malformed
	// input dimensions).
	DataDecodeError
	// CRCMismatchError indicates the pipeline ran to completion but the
	// final verification (ordinarily the CRC-64 codec) reported failure.
	CRCMismatchError
	// ConfigError indicates a codec pipeline was misconfigured (a
	// required property missing at construction time, surfaced to the
	// caller before Decode is ever reached).
	ConfigError
	// ProcessAbort indicates decode was aborted for a reason outside the
	// error taxonomy above (e.g. a panic recovered by a wrapping
	// caller); Decoder itself never returns it.
	ProcessAbort
)

// String names a ResultCode for logging.
func (r ResultCode) String() string {
	switch r {
	case OK:
		return "OK"
	case MetadataError:
		return "metadata-error"
	case BorderTrackingError:
		return "border-tracking-error"
	case DataDecodeError:
		return "data-decode-error"
	case CRCMismatchError:
		return "CRC-mismatch-error"
	case ConfigError:
		return "config-error"
	case ProcessAbort:
		return "process-abort"
	default:
		return "unknown-result"
	}
}

// Decoder runs the equalizer and a codec pipeline against successive
// cropped frames. A Decoder holds no mutable state of its own beyond its
// configuration; distinct Decoders share nothing and may run
// concurrently on separate frames.
type Decoder struct {
	SymbolsPerPixel         int
	BlockWidth, BlockHeight int
	Pipeline                codec.Pipeline
}

// NewDecoder constructs a Decoder from its equalizer parameters and
// codec pipeline.
func NewDecoder(symbolsPerPixel, blockWidth, blockHeight int, pipeline codec.Pipeline) (*Decoder, error) {
	if symbolsPerPixel < 2 {
		return nil, errors.Errorf("unbox: symbols_per_pixel %d must be at least 2", symbolsPerPixel)
	}
	if blockWidth < 1 || blockHeight < 1 {
		return nil, errors.Errorf("unbox: block size %dx%d must be positive", blockWidth, blockHeight)
	}
	return &Decoder{
		SymbolsPerPixel: symbolsPerPixel,
		BlockWidth:      blockWidth,
		BlockHeight:     blockHeight,
		Pipeline:        pipeline,
	}, nil
}

// Decode runs one frame through the equalizer and codec pipeline. in is
// already cropped to the logical data area (border tracking's output);
// means supplies the equalizer's per-tile symbol centroids.
func (d *Decoder) Decode(in *image8.Image8, means equalizer.MeanSource) ([]byte, stats.DecodeStats, ResultCode, error) {
	symbols, err := image8.New(in.Width, in.Height)
	if err != nil {
		return nil, stats.DecodeStats{}, DataDecodeError, errors.Wrap(err, "unbox: allocating symbol image")
	}

	if err := equalizer.Equalize(symbols, in, d.SymbolsPerPixel, d.BlockWidth, d.BlockHeight, means); err != nil {
		return nil, stats.DecodeStats{}, DataDecodeError, errors.Wrap(err, "unbox: equalize")
	}

	packed := packSymbols(symbols)

	var st stats.DecodeStats
	payload, ok, err := d.Pipeline.Decode(packed, nil, &st, nil)
	if err != nil {
		return nil, st, DataDecodeError, errors.Wrap(err, "unbox: codec pipeline decode")
	}
	if !ok {
		logDebug("pipeline verification failed", "resolved", st.ResolvedErrors, "unresolved", st.UnresolvedErrors)
		return payload, st, CRCMismatchError, nil
	}
	return payload, st, OK, nil
}

// packSymbols flattens a symbol-index image into one byte per pixel, in
// row-major scan order, for the codec pipeline to consume.
func packSymbols(symbols *image8.Image8) []byte {
	out := make([]byte, symbols.Width*symbols.Height)
	for y := 0; y < symbols.Height; y++ {
		copy(out[y*symbols.Width:(y+1)*symbols.Width], symbols.Row(y))
	}
	return out
}
