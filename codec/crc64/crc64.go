/*
NAME
  crc64.go

DESCRIPTION
  crc64.go implements the trailing-checksum integrity codec: the terminal,
  non-correcting check in the pipeline.

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

// Package crc64 implements the CRC-64 integrity codec: it appends an
// 8-byte trailing checksum on encode, and verifies and strips it on
// decode. It never corrects errors.
package crc64

import (
	stdcrc64 "hash/crc64"

	"github.com/pkg/errors"

	"github.com/reelvault/unbox/codec"
	"github.com/reelvault/unbox/config"
	"github.com/reelvault/unbox/stats"
)

// Name is the codec name reported by Codec.Name.
const Name = "CRC-64"

// crcSize is the size in bytes of the trailing checksum.
const crcSize = 8

const (
	paramPolynom = "polynom"
	paramSeed    = "seed"
)

// Codec is the CRC-64 integrity codec. It is not error-correcting: Decode
// either verifies or fails, and resets stats to zero either way.
type Codec struct {
	polynom uint64
	seed    uint64
	table   *stdcrc64.Table

	encodedSize int
	decodedSize int
}

var _ codec.Codec = (*Codec)(nil)

// New constructs a CRC-64 Codec from properties. Both "polynom" and
// "seed" are required ULongLong properties; New returns an error naming
// whichever is missing.
func New(properties config.Properties, _ *config.Global) (codec.Codec, error) {
	polyVal, err := properties.Require(paramPolynom)
	if err != nil {
		return nil, err
	}
	poly, err := polyVal.AsULongLong()
	if err != nil {
		return nil, errors.Wrap(err, "crc64: polynom")
	}

	seedVal, err := properties.Require(paramSeed)
	if err != nil {
		return nil, err
	}
	seed, err := seedVal.AsULongLong()
	if err != nil {
		return nil, errors.Wrap(err, "crc64: seed")
	}

	// stdcrc64.MakeTable builds a reflected (LSB-first) table from poly;
	// the polynom property is taken in that same reflected convention
	// rather than the source's normal-form, non-reflected one.
	c := &Codec{
		polynom: poly,
		seed:    seed,
		table:   stdcrc64.MakeTable(poly),
	}
	if err := c.InitCapacity(crcSize); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Codec) Name() string            { return Name }
func (c *Codec) IsErrorCorrecting() bool { return false }
func (c *Codec) DecodedBlockSize() int   { return c.decodedSize }
func (c *Codec) EncodedBlockSize() int   { return c.encodedSize }

// SetProperty is a no-op for this codec; it has no mutable properties
// after construction.
func (c *Codec) SetProperty(string, config.Value) error { return nil }

// InitCapacity sets the encoded block size. size must be at least 8
// bytes (room for the trailing CRC); the decoded size is size-8.
func (c *Codec) InitCapacity(size int) error {
	if size < crcSize {
		return errors.Errorf("crc64: capacity %d smaller than trailer size %d", size, crcSize)
	}
	c.encodedSize = size
	c.decodedSize = size - crcSize
	return nil
}

// Encode computes the CRC-64 register over data and appends it as 8
// little-endian bytes. stdcrc64.Update is the reflected (LSB-first)
// form of the algorithm and inverts the register on entry and on exit;
// both inversions are undone here so the register starts at seed and is
// used raw. Feeding that raw register back in little-endian byte order
// is what drives a well-formed block's register to zero on decode;
// big-endian would leave it nonzero for all but byte-palindromic
// registers.
func (c *Codec) Encode(data []byte) ([]byte, error) {
	crc := ^stdcrc64.Update(^c.seed, c.table, data)
	out := make([]byte, len(data)+crcSize)
	copy(out, data)
	for i := 0; i < crcSize; i++ {
		out[len(data)+i] = byte(crc >> (8 * i))
	}
	return out, nil
}

// Decode computes the CRC-64 register over the full block (payload plus
// trailer); a well-formed block drives the register to zero. Decode
// truncates the trailer off and reports success iff the register is
// zero. st is reset to zero regardless of outcome: this codec never
// corrects.
func (c *Codec) Decode(data []byte, _ []bool, st *stats.DecodeStats, _ any) ([]byte, bool, error) {
	crc := ^stdcrc64.Update(^c.seed, c.table, data)

	st.Reset()

	size := len(data) - crcSize
	if size < 0 {
		size = 0
	}
	return data[:size], crc == 0, nil
}
