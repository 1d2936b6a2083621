// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import "testing"

// TestUserStringsHeapEncodesA covers spec.md §8 scenario (d): adding
// the single-char string "A" to an empty #US heap yields
// [0x00, 0x03, 0x41, 0x00, 0x00] (null, length=3, 'A' UTF-16LE, flag=0).
func TestUserStringsHeapEncodesA(t *testing.T) {
	h := newUserStringsHeap()
	off, err := h.add("A")
	if err != nil {
		t.Fatalf("add(\"A\") error: %v", err)
	}
	if off != 1 {
		t.Fatalf("add(\"A\") offset = %d, want 1", off)
	}
	want := []byte{0x00, 0x03, 0x41, 0x00, 0x00}
	if string(h.data) != string(want) {
		t.Fatalf("heap bytes = %x, want %x", h.data, want)
	}
}

func TestUserStringsHeapRoundTrip(t *testing.T) {
	h := newUserStringsHeap()
	off, err := h.add("hi")
	if err != nil {
		t.Fatalf("add error: %v", err)
	}
	parsed := parseUserStringsHeap(h.data)
	got, err := parsed.get(off)
	if err != nil || got != "hi" {
		t.Fatalf("get(%d) = %q, %v, want \"hi\"", off, got, err)
	}
}

func TestUserStringsHeapEmptyEntry(t *testing.T) {
	h := newUserStringsHeap()
	off, err := h.add("")
	if err != nil {
		t.Fatalf("add(\"\") error: %v", err)
	}
	got, err := h.get(off)
	if err != nil || got != "" {
		t.Fatalf("get(%d) = %q, %v, want empty string", off, got, err)
	}
}

func TestHasSpecialFlag(t *testing.T) {
	tests := []struct {
		s    string
		want byte
	}{
		{"A", 0},
		{"hello", 0},
		{"\x01", 1},
		{"'", 1},
		{"-", 1},
		{"é", 1}, // code unit > 0x7F
	}
	for _, tt := range tests {
		units := []uint16{}
		for _, r := range tt.s {
			units = append(units, uint16(r))
		}
		got := hasSpecialFlag(units)
		if got != tt.want {
			t.Errorf("hasSpecialFlag(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}
