// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import "unicode/utf8"

// stringsHeap is the #Strings heap: null-terminated UTF-8 strings,
// offset-addressed, deduplicated on append. Grounded on
// original_source/src/heaps/strings.rs.
type stringsHeap struct {
	data  []byte
	index map[string]uint32
}

func newStringsHeap() *stringsHeap {
	return &stringsHeap{
		data:  []byte{0},
		index: map[string]uint32{"": 0},
	}
}

// parseStringsHeap wraps raw stream bytes as a #Strings heap. The
// dedup index starts out nil and is created empty on the first add;
// strings already present in data are never indexed, so add
// deduplicates only against strings added after the parse. This
// matches original_source's parse(), which never eagerly indexes
// existing content.
func parseStringsHeap(data []byte) *stringsHeap {
	if len(data) == 0 {
		return newStringsHeap()
	}
	h := &stringsHeap{data: data}
	return h
}

// get returns the UTF-8 string starting at offset, running to the next
// zero byte. Fails with InvalidString if offset is out of range, no
// terminator is found, or the run is not valid UTF-8, per spec.md §7
// and matching original_source/src/heaps/strings.rs:52-53's
// from_utf8(...).map_err(...).
func (h *stringsHeap) get(offset uint32) (string, error) {
	o := int(offset)
	if o < 0 || o >= len(h.data) {
		return "", errInvalidString(o)
	}
	end := o
	for end < len(h.data) && h.data[end] != 0 {
		end++
	}
	if end >= len(h.data) {
		return "", errInvalidString(o)
	}
	if !utf8.Valid(h.data[o:end]) {
		return "", errInvalidString(o)
	}
	return string(h.data[o:end]), nil
}

// add appends s (UTF-8 encoded, followed by a zero terminator) if not
// already present, and returns its offset. Repeated adds of the same
// string return the same offset (heap deduplication, spec.md §8 property 1).
func (h *stringsHeap) add(s string) uint32 {
	if h.index == nil {
		h.index = make(map[string]uint32)
	}
	if off, ok := h.index[s]; ok {
		return off
	}
	off := uint32(len(h.data))
	h.data = append(h.data, s...)
	h.data = append(h.data, 0)
	h.index[s] = off
	return off
}

func (h *stringsHeap) size() int { return len(h.data) }

func (h *stringsHeap) usesWideIndices() bool { return len(h.data) > 0xFFFF }

func (h *stringsHeap) writeTo(w *writer) { w.writeBytes(h.data) }

// iterStrings visits every (offset, string) pair in declaration order,
// stopping silently on the first malformed entry (spec.md §4.3's
// "best-effort forensic scan" contract for heap iteration).
func (h *stringsHeap) iterStrings(visit func(offset uint32, s string)) {
	i := 0
	for i < len(h.data) {
		start := i
		for i < len(h.data) && h.data[i] != 0 {
			i++
		}
		if i >= len(h.data) {
			return
		}
		visit(uint32(start), string(h.data[start:i]))
		i++
	}
}
