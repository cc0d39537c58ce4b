/*
NAME
  codec.go

DESCRIPTION
  codec.go defines the polymorphic codec contract and the pipeline that
  composes codecs for encode and decode.

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

// Package codec defines the codec interface that the CRC-64 and LDPC
// codecs implement, and the Pipeline that composes a sequence of them.
package codec

import (
	"github.com/pkg/errors"

	"github.com/reelvault/unbox/config"
	"github.com/reelvault/unbox/stats"
)

// Codec is a block-oriented codec: something that can encode a
// decoded-size block into an encoded-size block and back, optionally
// correcting errors on the way back. Codec instances own any internal
// state (matrices, scratch buffers) they allocate during construction.
type Codec interface {
	// Name identifies the codec, e.g. "CRC-64" or "LDPC".
	Name() string

	// IsErrorCorrecting reports whether Decode can correct bit errors, as
	// opposed to merely detecting them.
	IsErrorCorrecting() bool

	// InitCapacity configures the codec to operate on blocks of the given
	// encoded size, and returns an error if size is too small for the
	// codec's overhead.
	InitCapacity(size int) error

	// DecodedBlockSize and EncodedBlockSize report the block sizes
	// InitCapacity configured, in bytes and encoded symbols respectively.
	DecodedBlockSize() int
	EncodedBlockSize() int

	// SetProperty updates a codec property after construction.
	SetProperty(name string, value config.Value) error

	// Encode consumes a byte slice of length a multiple of
	// DecodedBlockSize and returns the encoded block stream.
	Encode(data []byte) ([]byte, error)

	// Decode consumes an encoded block stream and returns the decoded
	// payload along with whether every block verified. erasures, when
	// non-nil, is a parallel slice of flags marking erased symbols;
	// codecs that ignore erasures document it. stats accumulates FEC
	// bookkeeping across the call. userData is passed through unexamined,
	// the way the source threads an opaque pointer through codec_decode
	// for callers that need to correlate a decode call with their own
	// state; codecs that don't use it ignore it.
	Decode(data []byte, erasures []bool, stats *stats.DecodeStats, userData any) ([]byte, bool, error)
}

// Factory constructs a Codec from a property bag and the global config.
type Factory func(properties config.Properties, global *config.Global) (Codec, error)

// Pipeline is an ordered sequence of codecs. Encode applies them in
// construction order; Decode applies them in reverse, since each codec's
// decode output is the next (upstream) codec's decode input.
type Pipeline []Codec

// Encode runs data through every codec in construction order.
func (p Pipeline) Encode(data []byte) ([]byte, error) {
	var err error
	for _, c := range p {
		data, err = c.Encode(data)
		if err != nil {
			return nil, errors.Wrapf(err, "codec %s encode failed", c.Name())
		}
	}
	return data, nil
}

// Decode runs data through every codec in reverse construction order,
// accumulating into st. Decode returns false if any codec reports its
// block could not be verified; it does not stop at that codec but still
// runs the remaining upstream codecs so stats reflect the full
// pipeline's assessment of the damage.
func (p Pipeline) Decode(data []byte, erasures []bool, st *stats.DecodeStats, userData any) ([]byte, bool, error) {
	ok := true
	for i := len(p) - 1; i >= 0; i-- {
		c := p[i]
		var err error
		var good bool
		data, good, err = c.Decode(data, erasures, st, userData)
		if err != nil {
			return nil, false, errors.Wrapf(err, "codec %s decode failed", c.Name())
		}
		if !good {
			ok = false
		}
	}
	return data, ok, nil
}
