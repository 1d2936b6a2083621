// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import "testing"

func TestStringsHeapDedup(t *testing.T) {
	h := newStringsHeap()
	off1 := h.add("Foo")
	off2 := h.add("Foo")
	if off1 != off2 {
		t.Fatalf("add(\"Foo\") twice returned offsets %d and %d, want equal", off1, off2)
	}
	got, err := h.get(off1)
	if err != nil || got != "Foo" {
		t.Fatalf("get(%d) = %q, %v, want \"Foo\"", off1, got, err)
	}
}

func TestStringsHeapEmptyAtZero(t *testing.T) {
	h := newStringsHeap()
	got, err := h.get(0)
	if err != nil || got != "" {
		t.Fatalf("get(0) = %q, %v, want empty string", got, err)
	}
}

func TestStringsHeapRoundTrip(t *testing.T) {
	h := newStringsHeap()
	offs := []uint32{h.add("alpha"), h.add("beta"), h.add("gamma")}

	parsed := parseStringsHeap(h.data)
	for i, s := range []string{"alpha", "beta", "gamma"} {
		got, err := parsed.get(offs[i])
		if err != nil || got != s {
			t.Fatalf("get(%d) = %q, %v, want %q", offs[i], got, err, s)
		}
	}
}

func TestStringsHeapGetInvalidUTF8(t *testing.T) {
	// 0xFF is never valid as a UTF-8 lead byte.
	h := parseStringsHeap([]byte{0x00, 0xFF, 0xFE, 0x00})
	if _, err := h.get(1); err == nil {
		t.Fatal("expected InvalidString for malformed UTF-8 run")
	}
}

func TestStringsHeapIterStopsOnCorruption(t *testing.T) {
	h := newStringsHeap()
	h.add("ok")
	data := append(h.data, 'x', 'y') // unterminated trailing garbage
	parsed := parseStringsHeap(data)

	var seen []string
	parsed.iterStrings(func(_ uint32, s string) { seen = append(seen, s) })
	if len(seen) != 2 || seen[0] != "" || seen[1] != "ok" {
		t.Fatalf("iterStrings = %v, want [\"\", \"ok\"]", seen)
	}
}
