// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import "testing"

// TestBlobHeapParse covers spec.md §8 scenario (e): a heap initialized
// from [0x00, 0x02, 0xAB, 0xCD] returns the empty blob at offset 0 and
// [0xAB, 0xCD] at offset 1.
func TestBlobHeapParse(t *testing.T) {
	h := parseBlobHeap([]byte{0x00, 0x02, 0xAB, 0xCD})

	empty, err := h.get(0)
	if err != nil || len(empty) != 0 {
		t.Fatalf("get(0) = %x, %v, want empty", empty, err)
	}

	b, err := h.get(1)
	if err != nil {
		t.Fatalf("get(1) error: %v", err)
	}
	want := []byte{0xAB, 0xCD}
	if string(b) != string(want) {
		t.Fatalf("get(1) = %x, want %x", b, want)
	}
}

func TestBlobHeapDedup(t *testing.T) {
	h := newBlobHeap()
	off1 := h.add([]byte{0x01, 0x02})
	off2 := h.add([]byte{0x01, 0x02})
	if off1 != off2 {
		t.Fatalf("add() twice returned %d and %d, want equal", off1, off2)
	}
}
