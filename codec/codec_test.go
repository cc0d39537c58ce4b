/*
NAME
  codec_test.go

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

package codec

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reelvault/unbox/config"
	"github.com/reelvault/unbox/stats"
)

// tagCodec appends/strips a single marker byte, recording the order it
// was invoked in via a shared log slice. It is used to verify that
// Pipeline.Encode runs codecs forward and Pipeline.Decode runs them in
// reverse.
type tagCodec struct {
	tag byte
	log *[]string
}

func (c *tagCodec) Name() string             { return string(c.tag) }
func (c *tagCodec) IsErrorCorrecting() bool  { return false }
func (c *tagCodec) InitCapacity(int) error   { return nil }
func (c *tagCodec) DecodedBlockSize() int    { return 0 }
func (c *tagCodec) EncodedBlockSize() int    { return 0 }
func (c *tagCodec) SetProperty(string, config.Value) error { return nil }

func (c *tagCodec) Encode(data []byte) ([]byte, error) {
	*c.log = append(*c.log, "encode:"+string(c.tag))
	return append(append([]byte{}, data...), c.tag), nil
}

func (c *tagCodec) Decode(data []byte, _ []bool, _ *stats.DecodeStats, _ any) ([]byte, bool, error) {
	*c.log = append(*c.log, "decode:"+string(c.tag))
	if len(data) == 0 || data[len(data)-1] != c.tag {
		return data, false, nil
	}
	return data[:len(data)-1], true, nil
}

func TestPipelineOrder(t *testing.T) {
	var log []string
	p := Pipeline{
		&tagCodec{tag: 'A', log: &log},
		&tagCodec{tag: 'B', log: &log},
	}

	encoded, err := p.Encode([]byte("x"))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if want := []byte("xAB"); !cmp.Equal(encoded, want) {
		t.Errorf("Encode = %q, want %q", encoded, want)
	}

	log = nil
	var st stats.DecodeStats
	decoded, ok, err := p.Decode(encoded, nil, &st, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !ok {
		t.Fatal("Decode reported failure on well-formed input")
	}
	if string(decoded) != "x" {
		t.Errorf("Decode = %q, want %q", decoded, "x")
	}

	wantLog := []string{"decode:B", "decode:A"}
	if !cmp.Equal(log, wantLog) {
		t.Errorf("invocation order = %v, want %v", log, wantLog)
	}
}

func TestPipelineDecodeFailureContinues(t *testing.T) {
	var log []string
	p := Pipeline{
		&tagCodec{tag: 'A', log: &log},
		&tagCodec{tag: 'B', log: &log},
	}
	var st stats.DecodeStats
	_, ok, err := p.Decode([]byte("corrupt"), nil, &st, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if ok {
		t.Fatal("expected Decode to report failure on corrupt input")
	}
	if len(log) != 2 {
		t.Errorf("expected both codecs to run despite failure, got log %v", log)
	}
}
