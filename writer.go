// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import "encoding/binary"

// writer owns a grow-on-append byte buffer. Operations mirror reader;
// additionally it supports align, reserve and patch, per spec.md §4.1.
// Grounded on original_source/src/writer.rs, translated to Go idiom.
type writer struct {
	buf []byte
}

func newWriter() *writer {
	return &writer{}
}

func (w *writer) bytes() []byte { return w.buf }

func (w *writer) len() int { return len(w.buf) }

func (w *writer) writeU8(v byte) {
	w.buf = append(w.buf, v)
}

func (w *writer) writeU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *writer) writeU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *writer) writeU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *writer) writeBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// writeIndex writes v as a 2- or 4-byte little-endian index.
func (w *writer) writeIndex(v uint32, wide bool) {
	if wide {
		w.writeU32(v)
		return
	}
	w.writeU16(uint16(v))
}

// writeNullString writes s followed by a single zero terminator.
func (w *writer) writeNullString(s string) {
	w.buf = append(w.buf, s...)
	w.writeU8(0)
}

// align zero-pads the buffer up to the next multiple of n.
func (w *writer) align(n int) {
	for len(w.buf)%n != 0 {
		w.writeU8(0)
	}
}

// reserve appends n zero bytes and returns the offset of that slot for
// later patching with patchU16 or patchU32.
func (w *writer) reserve(n int) int {
	off := len(w.buf)
	w.buf = append(w.buf, make([]byte, n)...)
	return off
}

func (w *writer) patchU16(offset int, v uint16) {
	binary.LittleEndian.PutUint16(w.buf[offset:], v)
}

func (w *writer) patchU32(offset int, v uint32) {
	binary.LittleEndian.PutUint32(w.buf[offset:], v)
}
