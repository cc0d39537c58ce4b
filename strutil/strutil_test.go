/*
NAME
  strutil_test.go

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

package strutil

import (
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	got, err := Split("T_e_s_t_ _s_t_r_i_n_g", "_")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(got) != 11 {
		t.Fatalf("len(got) = %d, want 11", len(got))
	}
	var firsts strings.Builder
	for _, s := range got {
		if len(s) == 0 {
			continue
		}
		firsts.WriteByte(s[0])
	}
	if want := "Test string"; firsts.String() != want {
		t.Errorf("first characters = %q, want %q", firsts.String(), want)
	}
}

func TestSplitEmptyOrLongSeparator(t *testing.T) {
	cases := []struct{ s, sep string }{
		{"hello", ""},
		{"hi", "much longer separator"},
	}
	for _, c := range cases {
		got, err := Split(c.s, c.sep)
		if err != nil {
			t.Fatalf("Split(%q, %q): %v", c.s, c.sep, err)
		}
		if len(got) != 1 || got[0] != c.s {
			t.Errorf("Split(%q, %q) = %v, want [%q]", c.s, c.sep, got, c.s)
		}
	}
}

func TestSplitTrailingSeparator(t *testing.T) {
	got, err := Split("a,b,", ",")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	want := []string{"a", "b", ""}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestToInteger(t *testing.T) {
	good := map[string]int{"0": 0, "7": 7, "12345": 12345}
	for s, want := range good {
		got, err := ToInteger(s)
		if err != nil {
			t.Errorf("ToInteger(%q): %v", s, err)
			continue
		}
		if got != want {
			t.Errorf("ToInteger(%q) = %d, want %d", s, got, want)
		}
	}

	bad := []string{"", "-1", " 1", "1 ", "12a", "a"}
	for _, s := range bad {
		if _, err := ToInteger(s); err == nil {
			t.Errorf("ToInteger(%q): expected error", s)
		}
	}
}

func TestClone(t *testing.T) {
	if Clone("abc") != "abc" {
		t.Errorf("Clone mismatch")
	}
}
