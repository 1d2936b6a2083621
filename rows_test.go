// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import "testing"

func TestModuleRowRoundTrip(t *testing.T) {
	ctx := &tableContext{}
	want := ModuleRow{Generation: 0, Name: 5, Mvid: 1, EncID: 0, EncBaseID: 0}

	w := newWriter()
	want.write(w, ctx)
	r := newReader(w.bytes())
	got, err := parseModuleRow(r, ctx)
	if err != nil {
		t.Fatalf("parseModuleRow error: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestTypeDefRowRoundTripNarrowAndWide(t *testing.T) {
	for _, ctx := range []*tableContext{
		{},
		{HeapSizes: heapSizeWideStrings, RowCounts: func() [numTableIDs]uint32 {
			var rc [numTableIDs]uint32
			rc[TableField] = 1 << 17
			rc[TableMethodDef] = 1 << 17
			rc[TableTypeDef] = 1 << 17
			rc[TableTypeRef] = 1 << 17
			rc[TableTypeSpec] = 1 << 17
			return rc
		}()},
	} {
		want := TypeDefRow{
			Flags: 0x100001, TypeName: 3, TypeNamespace: 0,
			Extends: 0, FieldList: 1, MethodList: 1,
		}
		w := newWriter()
		want.write(w, ctx)
		r := newReader(w.bytes())
		got, err := parseTypeDefRow(r, ctx)
		if err != nil {
			t.Fatalf("parseTypeDefRow error: %v", err)
		}
		if got != want {
			t.Errorf("round trip = %+v, want %+v", got, want)
		}
		if r.position() != ctx.rowSize(TableTypeDef) {
			t.Errorf("consumed %d bytes, want declared size %d", r.position(), ctx.rowSize(TableTypeDef))
		}
	}
}

func TestMethodDefRowRoundTrip(t *testing.T) {
	ctx := &tableContext{}
	want := MethodDefRow{RVA: 0x2050, ImplFlags: 0, Flags: 0x0091, Name: 7, Signature: 2, ParamList: 1}

	w := newWriter()
	want.write(w, ctx)
	r := newReader(w.bytes())
	got, err := parseMethodDefRow(r, ctx)
	if err != nil {
		t.Fatalf("parseMethodDefRow error: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestCustomAttributeRowRoundTrip(t *testing.T) {
	ctx := &tableContext{}
	want := CustomAttributeRow{Parent: 9, Type: 3, Value: 12}

	w := newWriter()
	want.write(w, ctx)
	r := newReader(w.bytes())
	got, err := parseCustomAttributeRow(r, ctx)
	if err != nil {
		t.Fatalf("parseCustomAttributeRow error: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestFieldPtrRowRoundTrip(t *testing.T) {
	ctx := &tableContext{}
	want := FieldPtrRow{Field: 4}

	w := newWriter()
	want.write(w, ctx)
	r := newReader(w.bytes())
	got, err := parseFieldPtrRow(r, ctx)
	if err != nil {
		t.Fatalf("parseFieldPtrRow error: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestRawTableRoundTrip(t *testing.T) {
	orig, err := parseRawTable(newReader([]byte{1, 2, 3, 4, 5, 6}), TableFile, 2, 3)
	if err != nil {
		t.Fatalf("parseRawTable error: %v", err)
	}
	w := newWriter()
	orig.write(w)
	if string(w.bytes()) != string([]byte{1, 2, 3, 4, 5, 6}) {
		t.Errorf("rawTable.write() = %x, want original bytes", w.bytes())
	}
}
