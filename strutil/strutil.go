/*
NAME
  strutil.go

DESCRIPTION
  strutil.go provides the small string and integer helpers shared across
  the unboxing pipeline.

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

// Package strutil provides string and integer parsing helpers used across
// the unboxing pipeline, matching the edge-case rules of the original
// boxing_string_* functions.
package strutil

import "fmt"

// Clone returns a copy of s. Go strings are immutable, so this exists
// only to mirror the source's explicit deep-copy step; it always
// succeeds.
func Clone(s string) string {
	return s
}

// Split splits s into substrings on sep. If sep is empty or longer than
// s, Split returns a single-element slice equal to s. Otherwise Split
// scans linearly, emitting one substring per occurrence of sep,
// including a trailing empty string if s ends with sep.
func Split(s, sep string) ([]string, error) {
	if sep == "" || len(sep) > len(s) {
		return []string{s}, nil
	}

	var out []string
	start := 0
	for i := 0; i+len(sep) <= len(s); {
		if s[i:i+len(sep)] == sep {
			out = append(out, s[start:i])
			i += len(sep)
			start = i
			continue
		}
		i++
	}
	out = append(out, s[start:])
	return out, nil
}

// ToInteger parses s as an unsigned decimal integer. It rejects any
// non-digit character (including a leading '-', leading/trailing
// whitespace, or the empty string).
func ToInteger(s string) (int, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("strutil: empty string")
	}
	value := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("strutil: invalid digit %q in %q", r, s)
		}
		value = value*10 + int(r-'0')
	}
	return value, nil
}
