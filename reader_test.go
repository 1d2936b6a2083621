// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import "testing"

func TestReaderPrimitives(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	r := newReader(data)

	b, err := r.readU8()
	if err != nil || b != 0x01 {
		t.Fatalf("readU8 = %v, %v", b, err)
	}

	u16, err := r.readU16()
	if err != nil || u16 != 0x0302 {
		t.Fatalf("readU16 = %x, %v", u16, err)
	}

	u32, err := r.readU32()
	if err != nil || u32 != 0x08070605 {
		t.Fatalf("readU32 = %x, %v", u32, err)
	}
}

func TestReaderUnexpectedEOF(t *testing.T) {
	r := newReader([]byte{0x01})
	if _, err := r.readU32(); err == nil {
		t.Fatal("expected UnexpectedEof")
	}
}

func TestReaderNullString(t *testing.T) {
	r := newReader([]byte{'a', 'b', 'c', 0, 'd'})
	s, err := r.readNullString()
	if err != nil || s != "abc" {
		t.Fatalf("readNullString = %q, %v", s, err)
	}
	if r.position() != 4 {
		t.Fatalf("position after readNullString = %d, want 4", r.position())
	}
}

func TestWriterReserveAndPatch(t *testing.T) {
	w := newWriter()
	w.writeU8(0xFF)
	off := w.reserve(4)
	w.writeU8(0xEE)
	w.patchU32(off, 0xDEADBEEF)

	got := w.bytes()
	want := []byte{0xFF, 0xEF, 0xBE, 0xAD, 0xDE, 0xEE}
	if string(got) != string(want) {
		t.Fatalf("patchU32 result = %x, want %x", got, want)
	}
}

func TestWriterAlign(t *testing.T) {
	w := newWriter()
	w.writeU8(0x01)
	w.align(4)
	if w.len() != 4 {
		t.Fatalf("align(4) after 1 byte -> len %d, want 4", w.len())
	}
}
