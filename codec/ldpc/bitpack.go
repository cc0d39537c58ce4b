/*
NAME
  bitpack.go

DESCRIPTION
  bitpack.go converts between byte-packed message data and the
  one-bit-per-char codeword lane layout the LDPC encoder and decoder
  operate on. The lane layout is format-compatible with the source and
  must not be altered for tidiness.

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

package ldpc

// unpackData expands src into 8 bits per input byte, written one bit per
// output byte, most-significant bit first. The source assembles these
// same 8 bits two-at-a-time into the low byte of little-endian 32-bit
// lanes; read back as a flat byte stream, that lane arrangement reduces
// to straightforward MSB-first bit order, which is what this reproduces.
func unpackData(src []byte) []byte {
	dst := make([]byte, len(src)*8)
	for i, b := range src {
		o := dst[i*8 : i*8+8]
		for k := 0; k < 8; k++ {
			o[k] = (b >> (7 - k)) & 1
		}
	}
	return dst
}

// packData is the exact inverse of unpackData: it condenses 8 one-bit
// bytes back into a single packed byte per group, most-significant bit
// first.
func packData(src []byte) []byte {
	n := len(src) / 8
	dst := make([]byte, n)
	for i := 0; i < n; i++ {
		o := src[i*8 : i*8+8]
		var b byte
		for k := 0; k < 8; k++ {
			b |= (o[k] & 1) << (7 - k)
		}
		dst[i] = b
	}
	return dst
}
