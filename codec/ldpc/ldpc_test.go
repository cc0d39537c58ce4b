/*
NAME
  ldpc_test.go

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

package ldpc

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reelvault/unbox/config"
	"github.com/reelvault/unbox/stats"
)

func newTestCodec(t *testing.T, messageBytes, parityBytes uint) *Codec {
	t.Helper()
	c, err := New(config.Properties{
		"message_size": config.Uint(messageBytes),
		"parity_size":  config.Uint(parityBytes),
	}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c.(*Codec)
}

// perfectLLRs converts a 0/1 bit vector into the signed bytes that carry
// a "certain" LLR for each bit: +10 for 1, -10 for 0, matching the
// worked LDPC scenarios.
func perfectLLRs(bits []byte) []byte {
	out := make([]byte, len(bits))
	var zero int8 = -10
	for i, b := range bits {
		if b == 1 {
			out[i] = 10
		} else {
			out[i] = byte(zero)
		}
	}
	return out
}

func TestMissingProperties(t *testing.T) {
	if _, err := New(config.Properties{"parity_size": config.Uint(10)}, nil); err == nil {
		t.Error("expected error with missing message_size")
	}
	if _, err := New(config.Properties{"message_size": config.Uint(10)}, nil); err == nil {
		t.Error("expected error with missing parity_size")
	}
}

func TestBlockSizes(t *testing.T) {
	c := newTestCodec(t, 25, 25)
	if got := c.DecodedBlockSize(); got != 25 {
		t.Errorf("DecodedBlockSize() = %d, want 25", got)
	}
	if got := c.EncodedBlockSize(); got != 400 {
		t.Errorf("EncodedBlockSize() = %d, want 400", got)
	}
}

func TestRoundTripCleanCodeword(t *testing.T) {
	c := newTestCodec(t, 25, 25)

	msg := make([]byte, 25)
	for i := range msg {
		msg[i] = 0xa5
	}

	encoded, err := c.Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) != c.EncodedBlockSize() {
		t.Fatalf("len(encoded) = %d, want %d", len(encoded), c.EncodedBlockSize())
	}

	llrs := perfectLLRs(encoded)

	var st stats.DecodeStats
	decoded, ok, err := c.Decode(llrs, nil, &st, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !ok {
		t.Fatal("Decode reported failure on a clean codeword")
	}
	if !cmp.Equal(decoded, msg) {
		t.Errorf("decoded = %v, want %v", decoded, msg)
	}
	if st.UnresolvedErrors != 0 {
		t.Errorf("UnresolvedErrors = %d, want 0", st.UnresolvedErrors)
	}
	if st.ResolvedErrors != 0 {
		t.Errorf("ResolvedErrors = %d, want 0 (no bits needed correcting)", st.ResolvedErrors)
	}
}

func TestSingleBitErrorIsCorrected(t *testing.T) {
	c := newTestCodec(t, 25, 25)

	msg := make([]byte, 25)
	for i := range msg {
		msg[i] = 0xa5
	}

	encoded, err := c.Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	llrs := perfectLLRs(encoded)
	llrs[0] = -llrs[0] // flip confidence sign on the first encoded bit.

	var st stats.DecodeStats
	decoded, ok, err := c.Decode(llrs, nil, &st, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !ok {
		t.Fatal("expected the single bit error to be resolved")
	}
	if !cmp.Equal(decoded, msg) {
		t.Errorf("decoded = %v, want %v", decoded, msg)
	}
	if st.ResolvedErrors < 1 {
		t.Errorf("ResolvedErrors = %d, want >= 1", st.ResolvedErrors)
	}
}
