// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import "testing"

// TestGUIDFormatting covers spec.md §8 scenario (f).
func TestGUIDFormatting(t *testing.T) {
	in := []byte{0x00, 0x84, 0x0e, 0x55, 0x9b, 0xe2, 0xd4, 0x41, 0xa7, 0x16, 0x44, 0x66, 0x55, 0x44, 0x00, 0x00}
	want := "550e8400-e29b-41d4-a716-446655440000"
	if got := formatGUID(in); got != want {
		t.Errorf("formatGUID(%x) = %q, want %q", in, got, want)
	}
}

func TestGUIDHeapNullAtZero(t *testing.T) {
	h := newGUIDHeap()
	got, err := h.get(0)
	if err != nil || got != "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("get(0) = %q, %v, want null guid", got, err)
	}
}

func TestGUIDHeapAddAndGet(t *testing.T) {
	h := newGUIDHeap()
	var raw [16]byte
	copy(raw[:], []byte{0x00, 0x84, 0x0e, 0x55, 0x9b, 0xe2, 0xd4, 0x41, 0xa7, 0x16, 0x44, 0x66, 0x55, 0x44, 0x00, 0x00})
	idx := h.add(raw)
	if idx != 1 {
		t.Fatalf("add() returned index %d, want 1", idx)
	}
	got, err := h.get(idx)
	if err != nil || got != "550e8400-e29b-41d4-a716-446655440000" {
		t.Fatalf("get(%d) = %q, %v", idx, got, err)
	}
}

func TestGUIDHeapOutOfBounds(t *testing.T) {
	h := newGUIDHeap()
	if _, err := h.get(1); err == nil {
		t.Fatal("expected InvalidGuidIndex error")
	}
}
