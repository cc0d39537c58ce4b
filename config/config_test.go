/*
NAME
  config_test.go

LICENSE
  Copyright (C) 2024 the Reelvault Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Reelvault Project.
*/

package config

import "testing"

func TestRequireMissing(t *testing.T) {
	p := Properties{}
	if _, err := p.Require("seed"); err == nil {
		t.Fatal("expected error for missing property")
	}
}

func TestRequirePresent(t *testing.T) {
	p := Properties{"seed": ULongLong(42)}
	v, err := p.Require("seed")
	if err != nil {
		t.Fatalf("Require: %v", err)
	}
	got, err := v.AsULongLong()
	if err != nil {
		t.Fatalf("AsULongLong: %v", err)
	}
	if got != 42 {
		t.Errorf("got %d, want 42", got)
	}
}

func TestValueWrongKind(t *testing.T) {
	v := Uint(5)
	if _, err := v.AsString(); err == nil {
		t.Error("expected error converting uint Value to string")
	}
	if _, err := v.AsDouble(); err == nil {
		t.Error("expected error converting uint Value to double")
	}
}
