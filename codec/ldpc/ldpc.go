/*
NAME
  ldpc.go

DESCRIPTION
  ldpc.go wires the parity-check construction, generator-matrix build,
  bit packing, and probability-propagation decoder into the Codec
  interface.

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

// Package ldpc implements the LDPC error-correcting codec: sparse
// parity-check matrix construction, dense generator-matrix construction,
// and probability-propagation (belief propagation) decoding over the
// resulting Tanner graph.
package ldpc

import (
	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"

	"github.com/reelvault/unbox/codec"
	"github.com/reelvault/unbox/config"
	"github.com/reelvault/unbox/stats"
)

// Log receives construction diagnostics (missing or malformed
// properties). It is nil by default so the package carries no mandatory
// global state; set it before calling New to capture diagnostics.
var Log logging.Logger

func logError(msg string, args ...interface{}) {
	if Log != nil {
		Log.Error(msg, args...)
	}
}

// Name is the codec name reported by Codec.Name.
const Name = "LDPC"

// Hard-coded design parameters. These mirror the source's hard-coded
// choices exactly and are not exposed as tunables.
const (
	seed             = 1
	distributionSpec = "3"
	iterations       = 25
)

const (
	paramMessageSize = "message_size"
	paramParitySize  = "parity_size"
)

// Codec is the LDPC error-correcting codec.
type Codec struct {
	pchk *SparseMatrix
	gen  *GeneratorMatrix

	m, k int // parity bits, message bits

	decodedBlockSize int
	encodedBlockSize int
}

var _ codec.Codec = (*Codec)(nil)

// New constructs an LDPC Codec from properties. Both "message_size" and
// "parity_size" are required Uint properties giving byte counts; they
// are converted to bits internally.
func New(properties config.Properties, _ *config.Global) (codec.Codec, error) {
	msgVal, err := properties.Require(paramMessageSize)
	if err != nil {
		logError("required property not set", "property", paramMessageSize)
		return nil, err
	}
	msgBytes, err := msgVal.AsUint()
	if err != nil {
		return nil, errors.Wrap(err, "ldpc: message_size")
	}

	paritySizeVal, err := properties.Require(paramParitySize)
	if err != nil {
		logError("required property not set", "property", paramParitySize)
		return nil, err
	}
	parityBytes, err := paritySizeVal.AsUint()
	if err != nil {
		return nil, errors.Wrap(err, "ldpc: parity_size")
	}

	k := int(msgBytes) * 8
	m := int(parityBytes) * 8

	dist, err := ParseDistribution(distributionSpec)
	if err != nil {
		return nil, errors.Wrap(err, "ldpc: distribution")
	}

	h, err := BuildParityCheck(seed, PchkEvenBoth, dist, true, m, m+k)
	if err != nil {
		return nil, errors.Wrap(err, "ldpc: parity-check construction")
	}

	gen := BuildDenseGenerator(h)

	c := &Codec{
		pchk:             h,
		gen:              gen,
		m:                m,
		k:                k,
		decodedBlockSize: k / 8,
		encodedBlockSize: m + k,
	}
	return c, nil
}

func (c *Codec) Name() string            { return Name }
func (c *Codec) IsErrorCorrecting() bool { return true }
func (c *Codec) DecodedBlockSize() int   { return c.decodedBlockSize }
func (c *Codec) EncodedBlockSize() int   { return c.encodedBlockSize }

// SetProperty is a no-op: the matrices are fixed at construction.
func (c *Codec) SetProperty(string, config.Value) error { return nil }

// InitCapacity is a no-op: block sizes are derived from message_size and
// parity_size at construction, not from a separate capacity parameter.
func (c *Codec) InitCapacity(int) error { return nil }

// Encode walks data in decodedBlockSize strides, LDPC-encoding each block
// into encodedBlockSize codeword bits (one byte per bit, 0 or 1).
func (c *Codec) Encode(data []byte) ([]byte, error) {
	if c.decodedBlockSize == 0 || len(data)%c.decodedBlockSize != 0 {
		return nil, errors.Errorf("ldpc: input length %d not a multiple of block size %d", len(data), c.decodedBlockSize)
	}
	blocks := len(data) / c.decodedBlockSize
	out := make([]byte, blocks*c.encodedBlockSize)

	for b := 0; b < blocks; b++ {
		src := data[b*c.decodedBlockSize : (b+1)*c.decodedBlockSize]
		msgBits := unpackData(src)

		cblk := make([]byte, c.m+c.k)
		p := denseEncodeParity(c.gen, msgBits)
		for i, col := range c.gen.Cols[:c.m] {
			cblk[col] = p[i]
		}
		for i, col := range c.gen.Cols[c.m:] {
			cblk[col] = msgBits[i]
		}

		copy(out[b*c.encodedBlockSize:(b+1)*c.encodedBlockSize], cblk)
	}
	return out, nil
}

// denseEncodeParity computes the parity bits p = G·msg over GF(2), where
// msg is given in the order gen.Cols[M:N] expects.
func denseEncodeParity(gen *GeneratorMatrix, msg []byte) []byte {
	p := make([]byte, gen.M)
	for i := 0; i < gen.M; i++ {
		var bit byte
		for j := 0; j < gen.N-gen.M; j++ {
			if gen.GetBit(i, j) != 0 {
				bit ^= msg[j]
			}
		}
		p[i] = bit
	}
	return p
}

// Decode walks data in encodedBlockSize strides, each byte a signed LLR
// character, running probability-propagation decoding and extracting the
// decodedBlockSize-byte payload of each block. st accumulates resolved
// and unresolved bit alterations across every block in data.
func (c *Codec) Decode(data []byte, _ []bool, st *stats.DecodeStats, _ any) ([]byte, bool, error) {
	if c.encodedBlockSize == 0 || len(data)%c.encodedBlockSize != 0 {
		return nil, false, errors.Errorf("ldpc: input length %d not a multiple of block size %d", len(data), c.encodedBlockSize)
	}
	blocks := len(data) / c.encodedBlockSize
	out := make([]byte, blocks*c.decodedBlockSize)
	ok := true

	n := c.m + c.k
	lratio := make([]float64, n)
	hardDecision := make([]byte, n)

	for b := 0; b < blocks; b++ {
		src := data[b*c.encodedBlockSize : (b+1)*c.encodedBlockSize]
		for i := 0; i < n; i++ {
			lratio[i] = llrFromByte(int8(src[i]))
			if lratio[i] > 1 {
				hardDecision[i] = 1
			} else {
				hardDecision[i] = 0
			}
		}

		dblk, pchk := decodePRPRP(c.pchk, lratio, iterations)

		alterations := 0
		for i := 0; i < n; i++ {
			if hardDecision[i] != dblk[i] {
				alterations++
			}
		}

		dataBlock := make([]byte, c.k)
		for i, col := range c.gen.Cols[c.m:] {
			dataBlock[i] = dblk[col]
		}

		unsatisfied := 0
		for _, p := range pchk {
			if p != 0 {
				unsatisfied++
			}
		}
		if unsatisfied != 0 {
			st.UnresolvedErrors += alterations
			ok = false
		} else {
			st.ResolvedErrors += alterations
		}

		copy(out[b*c.decodedBlockSize:(b+1)*c.decodedBlockSize], packData(dataBlock))
	}
	return out, ok, nil
}
