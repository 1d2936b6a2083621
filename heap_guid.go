// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import "fmt"

// guidHeap is the #GUID heap: a 1-based array of 16-byte records.
// Index 0 always denotes the null GUID and never touches storage.
// Grounded on original_source/src/heaps/guid.rs.
type guidHeap struct {
	data []byte // raw 16-byte records, 0-based in storage
}

func newGUIDHeap() *guidHeap {
	return &guidHeap{}
}

func parseGUIDHeap(data []byte) *guidHeap {
	return &guidHeap{data: data}
}

// get returns the GUID at the given 1-based index, formatted per RFC
// 4122. Index 0 returns the all-zero GUID without reading storage.
func (h *guidHeap) get(index uint32) (string, error) {
	if index == 0 {
		return "00000000-0000-0000-0000-000000000000", nil
	}
	off := (int(index) - 1) * 16
	if off < 0 || off+16 > len(h.data) {
		return "", errInvalidGuidIndex(index)
	}
	return formatGUID(h.data[off : off+16]), nil
}

// add appends a 16-byte GUID record (raw little-endian field order as
// stored in the heap) and returns its 1-based index.
func (h *guidHeap) add(raw [16]byte) uint32 {
	h.data = append(h.data, raw[:]...)
	return uint32(len(h.data) / 16)
}

func (h *guidHeap) count() int { return len(h.data) / 16 }

func (h *guidHeap) size() int { return len(h.data) }

func (h *guidHeap) writeTo(w *writer) { w.writeBytes(h.data) }

// formatGUID renders a 16-byte record in RFC 4122 text form. The first
// three fields are stored little-endian and must be byte-reversed; the
// last two fields are stored as an 8-byte big-endian run.
func formatGUID(b []byte) string {
	return fmt.Sprintf("%02x%02x%02x%02x-%02x%02x-%02x%02x-%02x%02x-%02x%02x%02x%02x%02x%02x",
		b[3], b[2], b[1], b[0],
		b[5], b[4],
		b[7], b[6],
		b[8], b[9],
		b[10], b[11], b[12], b[13], b[14], b[15])
}
