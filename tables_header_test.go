// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import "testing"

func TestTablesHeaderRoundTrip(t *testing.T) {
	h := &tablesHeader{Major: 2, Minor: 0, HeapSizes: heapSizeWideStrings}
	h.setRowCount(TableModule, 1)
	h.setRowCount(TableTypeDef, 5)

	w := newWriter()
	h.writeTo(w)

	r := newReader(w.bytes())
	got, err := parseTablesHeader(r)
	if err != nil {
		t.Fatalf("parseTablesHeader error: %v", err)
	}
	if got.RowCounts[TableModule] != 1 || got.RowCounts[TableTypeDef] != 5 {
		t.Errorf("row counts = %+v", got.RowCounts)
	}
	if got.Valid&(1<<TableModule) == 0 || got.Valid&(1<<TableTypeDef) == 0 {
		t.Errorf("valid bitmask = %#x, missing expected bits", got.Valid)
	}
	if got.HeapSizes != heapSizeWideStrings {
		t.Errorf("heap sizes = %#x, want %#x", got.HeapSizes, heapSizeWideStrings)
	}
}

func TestSetRowCountClearsValidBitAtZero(t *testing.T) {
	h := &tablesHeader{}
	h.setRowCount(TableField, 3)
	if h.Valid&(1<<TableField) == 0 {
		t.Fatal("expected Valid bit set after nonzero row count")
	}
	h.setRowCount(TableField, 0)
	if h.Valid&(1<<TableField) != 0 {
		t.Fatal("expected Valid bit cleared after zero row count")
	}
}

// TestRowSizeWidthAgreement covers spec.md §8 property 6: a table's
// declared row size, multiplied by its row count, equals the number of
// bytes a sequence of parseXRow calls actually consumes for that
// table. Exercised here on Module (fixed widths) and TypeDef (coded +
// simple widths), under both narrow and wide index configurations.
func TestRowSizeWidthAgreement(t *testing.T) {
	narrow := &tableContext{HeapSizes: 0}
	wide := &tableContext{HeapSizes: heapSizeWideStrings | heapSizeWideGUID | heapSizeWideBlob}
	wide.RowCounts[TableTypeDef] = 1 << 17
	wide.RowCounts[TableField] = 1 << 17
	wide.RowCounts[TableMethodDef] = 1 << 17

	for _, ctx := range []*tableContext{narrow, wide} {
		size := ctx.rowSize(TableModule)
		data := make([]byte, size*3)
		r := newReader(data)
		for i := 0; i < 3; i++ {
			before := r.position()
			if _, err := parseModuleRow(r, ctx); err != nil {
				t.Fatalf("parseModuleRow error: %v", err)
			}
			if advanced := r.position() - before; advanced != size {
				t.Errorf("Module row %d: advanced %d bytes, declared size %d", i, advanced, size)
			}
		}
	}

	for _, ctx := range []*tableContext{narrow, wide} {
		size := ctx.rowSize(TableTypeDef)
		data := make([]byte, size*2)
		r := newReader(data)
		for i := 0; i < 2; i++ {
			before := r.position()
			if _, err := parseTypeDefRow(r, ctx); err != nil {
				t.Fatalf("parseTypeDefRow error: %v", err)
			}
			if advanced := r.position() - before; advanced != size {
				t.Errorf("TypeDef row %d: advanced %d bytes, declared size %d", i, advanced, size)
			}
		}
	}
}

func TestCodedWidthThreshold(t *testing.T) {
	var ctx tableContext
	// TypeOrMethodDef has 1 tag bit: threshold is 2^15.
	ctx.RowCounts[TableTypeDef] = (1 << 15) - 1
	if w := ctx.codedWidth(TypeOrMethodDef); w != 2 {
		t.Errorf("codedWidth below threshold = %d, want 2", w)
	}
	ctx.RowCounts[TableTypeDef] = 1 << 15
	if w := ctx.codedWidth(TypeOrMethodDef); w != 4 {
		t.Errorf("codedWidth at threshold = %d, want 4", w)
	}
}
