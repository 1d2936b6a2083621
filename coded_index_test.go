// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import "testing"

// TestCodedIndexRoundTrip covers spec.md §8 property 5: for every
// scheme and every non-noTable target table, encoding a (table, row)
// pair and decoding it back yields the original pair.
func TestCodedIndexRoundTrip(t *testing.T) {
	for kind, scheme := range codedIndexSchemes {
		for _, table := range scheme.Tables {
			if table == noTable {
				continue
			}
			for _, row := range []uint32{1, 5, 1000} {
				value, err := encodeCodedIndex(kind, table, row)
				if err != nil {
					t.Fatalf("%s: encodeCodedIndex(%v, %d) error: %v", scheme.Name, table, row, err)
				}
				gotTable, gotRow, err := decodeCodedIndex(kind, value)
				if err != nil {
					t.Fatalf("%s: decodeCodedIndex(%#x) error: %v", scheme.Name, value, err)
				}
				if gotTable != table || gotRow != row {
					t.Errorf("%s: round trip (%v,%d) -> %#x -> (%v,%d)",
						scheme.Name, table, row, value, gotTable, gotRow)
				}
			}
		}
	}
}

func TestCodedIndexNull(t *testing.T) {
	table, row, err := decodeCodedIndex(TypeDefOrRef, 0)
	if err != nil {
		t.Fatalf("decodeCodedIndex(0) error: %v", err)
	}
	if table != noTable || row != 0 {
		t.Errorf("decodeCodedIndex(0) = (%v, %d), want (noTable, 0)", table, row)
	}
}

func TestCodedIndexInvalidTag(t *testing.T) {
	// HasCustomAttribute tag 8 is the reserved noTable slot.
	scheme := codedIndexSchemes[HasCustomAttribute]
	value := (uint32(1) << scheme.TagBits) | 8
	if _, _, err := decodeCodedIndex(HasCustomAttribute, value); err == nil {
		t.Fatal("expected errInvalidCodedIndex for reserved tag")
	}
}

func TestCodedIndexMaxRow(t *testing.T) {
	var counts [numTableIDs]uint32
	counts[TableField] = 10
	counts[TableParam] = 70000
	counts[TableProperty] = 3
	if got := codedIndexMaxRow(HasConstant, counts); got != 70000 {
		t.Errorf("codedIndexMaxRow(HasConstant) = %d, want 70000", got)
	}
}
