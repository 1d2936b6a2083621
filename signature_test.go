// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import "testing"

// TestMethodSigBasic covers spec.md §8 scenario (g): [0x20, 0x02, 0x08,
// 0x0E, 0x02] parses to a method with HAS_THIS set, return type Int32,
// parameters [String, Boolean].
func TestMethodSigBasic(t *testing.T) {
	r := newReader([]byte{0x20, 0x02, 0x08, 0x0E, 0x02})
	sig, err := parseMethodSig(r)
	if err != nil {
		t.Fatalf("parseMethodSig error: %v", err)
	}
	if !sig.hasThis() {
		t.Error("expected HAS_THIS set")
	}
	if sig.ReturnType.Kind != ElementTypeI4 {
		t.Errorf("return type = %v, want I4", sig.ReturnType.Kind)
	}
	if len(sig.Params) != 2 {
		t.Fatalf("param count = %d, want 2", len(sig.Params))
	}
	if sig.Params[0].Kind != ElementTypeString {
		t.Errorf("param 0 = %v, want String", sig.Params[0].Kind)
	}
	if sig.Params[1].Kind != ElementTypeBoolean {
		t.Errorf("param 1 = %v, want Boolean", sig.Params[1].Kind)
	}
	if sig.SentinelFound {
		t.Error("no sentinel byte present, SentinelFound should be false")
	}
}

func TestTypeSigSzArray(t *testing.T) {
	r := newReader([]byte{0x1D, 0x08})
	ts, err := parseTypeSig(r)
	if err != nil {
		t.Fatalf("parseTypeSig error: %v", err)
	}
	if ts.Kind != ElementTypeSzArray {
		t.Fatalf("kind = %v, want SzArray", ts.Kind)
	}
	if ts.Elem == nil || ts.Elem.Kind != ElementTypeI4 {
		t.Fatalf("element = %v, want I4", ts.Elem)
	}
}

// TestMethodSigSentinelAtMostOnce covers SPEC_FULL.md §9 Decision D1:
// a sentinel is recognized only once, at the first 0x41 byte
// encountered among the parameters, not re-checked before every
// subsequent parameter.
func TestMethodSigSentinelAtMostOnce(t *testing.T) {
	// conv=0x05 (VARARG), paramCount=2, return=void,
	// sentinel, param0=I4, param1=I4.
	r := newReader([]byte{0x05, 0x02, 0x01, 0x41, 0x08, 0x08})
	sig, err := parseMethodSig(r)
	if err != nil {
		t.Fatalf("parseMethodSig error: %v", err)
	}
	if !sig.SentinelFound {
		t.Fatal("expected sentinel to be found")
	}
	if sig.Sentinel != 0 {
		t.Errorf("sentinel index = %d, want 0", sig.Sentinel)
	}
	if len(sig.Params) != 2 {
		t.Fatalf("param count = %d, want 2", len(sig.Params))
	}

	// A second 0x41 is not consumed as a sentinel: it reaches
	// parseTypeSig as a parameter type and is rejected.
	r = newReader([]byte{0x05, 0x02, 0x01, 0x41, 0x08, 0x41, 0x08})
	if _, err := parseMethodSig(r); err == nil {
		t.Fatal("expected an error for a second sentinel byte")
	}
}

func TestMethodSigNoParamsVoid(t *testing.T) {
	r := newReader([]byte{0x00, 0x00, 0x01})
	sig, err := parseMethodSig(r)
	if err != nil {
		t.Fatalf("parseMethodSig error: %v", err)
	}
	if sig.ReturnType.Kind != ElementTypeVoid {
		t.Errorf("return type = %v, want Void", sig.ReturnType.Kind)
	}
	if len(sig.Params) != 0 {
		t.Errorf("param count = %d, want 0", len(sig.Params))
	}
}

func TestFieldSigRoundTrip(t *testing.T) {
	w := newWriter()
	sig := FieldSig{Type: TypeSig{Kind: ElementTypeString}}
	sig.write(w)

	r := newReader(w.bytes())
	got, err := parseFieldSig(r)
	if err != nil {
		t.Fatalf("parseFieldSig error: %v", err)
	}
	if got.Type.Kind != ElementTypeString {
		t.Errorf("field type = %v, want String", got.Type.Kind)
	}
}
