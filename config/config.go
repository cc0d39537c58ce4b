/*
NAME
  config.go

DESCRIPTION
  config.go provides the property bag and global settings passed to codec
  constructors, standing in for the source's GHashTable of g_variant
  values and boxing_config.

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

// Package config provides the tagged-value property bag codecs are
// constructed from, and the read-only global settings bag threaded
// through every constructor.
package config

import "fmt"

// Kind identifies the concrete type held by a Value.
type Kind int

const (
	Invalid Kind = iota
	KindUint
	KindULongLong
	KindDouble
	KindString
)

// Value is a small tagged union over the property types the codecs in
// this module use, standing in for the source's g_variant.
type Value struct {
	kind Kind
	u    uint
	ull  uint64
	d    float64
	s    string
}

// Uint wraps v as a Value of kind KindUint.
func Uint(v uint) Value { return Value{kind: KindUint, u: v} }

// ULongLong wraps v as a Value of kind KindULongLong.
func ULongLong(v uint64) Value { return Value{kind: KindULongLong, ull: v} }

// Double wraps v as a Value of kind KindDouble.
func Double(v float64) Value { return Value{kind: KindDouble, d: v} }

// String wraps v as a Value of kind KindString.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Kind returns the concrete type held by v.
func (v Value) Kind() Kind { return v.kind }

// AsUint returns v's value as a uint, or an error if v is not of kind
// KindUint.
func (v Value) AsUint() (uint, error) {
	if v.kind != KindUint {
		return 0, fmt.Errorf("config: value is not a uint (kind %d)", v.kind)
	}
	return v.u, nil
}

// AsULongLong returns v's value as a uint64, or an error if v is not of
// kind KindULongLong.
func (v Value) AsULongLong() (uint64, error) {
	if v.kind != KindULongLong {
		return 0, fmt.Errorf("config: value is not a ulonglong (kind %d)", v.kind)
	}
	return v.ull, nil
}

// AsDouble returns v's value as a float64, or an error if v is not of
// kind KindDouble.
func (v Value) AsDouble() (float64, error) {
	if v.kind != KindDouble {
		return 0, fmt.Errorf("config: value is not a double (kind %d)", v.kind)
	}
	return v.d, nil
}

// AsString returns v's value as a string, or an error if v is not of kind
// KindString.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("config: value is not a string (kind %d)", v.kind)
	}
	return v.s, nil
}

// Properties is the mapping from property name to tagged value that a
// codec constructor consumes.
type Properties map[string]Value

// Require looks up name in p and reports an error naming the missing key
// if it is absent, matching the source's "Required property '%s' not
// set" diagnostic.
func (p Properties) Require(name string) (Value, error) {
	v, ok := p[name]
	if !ok {
		return Value{}, fmt.Errorf("config: required property %q not set", name)
	}
	return v, nil
}

// Global is the read-only settings bag passed to every codec
// constructor alongside its Properties, standing in for boxing_config.
// Neither codec in this module reads from it; it is threaded through so
// constructor signatures match the framework contract third-party codecs
// are built against.
type Global struct {
	// Name identifies the format descriptor this configuration was
	// loaded from. Format loading itself is out of scope.
	Name string
}
