// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import (
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"
)

// userStringsHeap is the #US heap: compressed-length UTF-16LE entries
// with a trailing "has-special" flag byte. Grounded on
// original_source/src/heaps/us.rs; the UTF-16 transform itself is kept
// from the teacher's helper.go DecodeUTF16String, which reaches for
// golang.org/x/text/encoding/unicode rather than hand-rolling UTF-16
// surrogate handling.
type userStringsHeap struct {
	data []byte
}

var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func newUserStringsHeap() *userStringsHeap {
	return &userStringsHeap{data: []byte{0}}
}

func parseUserStringsHeap(data []byte) *userStringsHeap {
	if len(data) == 0 {
		return newUserStringsHeap()
	}
	return &userStringsHeap{data: data}
}

// hasSpecialFlag computes the trailing flag byte per spec.md §3: 1 if
// any UTF-16 code unit exceeds 0x7F, equals one of 0x01..0x08, lies in
// 0x0E..0x1F, or equals 0x27 or 0x2D; else 0.
func hasSpecialFlag(units []uint16) byte {
	for _, u := range units {
		if u > 0x7F ||
			(u >= 0x01 && u <= 0x08) ||
			(u >= 0x0E && u <= 0x1F) ||
			u == 0x27 || u == 0x2D {
			return 1
		}
	}
	return 0
}

// get reads the compressed-length entry at offset. A length of 0
// represents an empty string with no payload.
func (h *userStringsHeap) get(offset uint32) (string, error) {
	r := newReader(h.data)
	r.seek(int(offset))
	length, err := r.readCompressedUint()
	if err != nil {
		return "", errInvalidUserString(int(offset))
	}
	if length == 0 {
		return "", nil
	}
	strLen := int(length) - 1
	if strLen%2 != 0 {
		return "", errInvalidUserString(int(offset))
	}
	payload, err := r.readBytes(strLen)
	if err != nil {
		return "", errInvalidUserString(int(offset))
	}
	// skip the trailing flag byte, not otherwise consulted by get().
	if _, err := r.readU8(); err != nil {
		return "", errInvalidUserString(int(offset))
	}
	s, err := utf16LE.NewDecoder().String(string(payload))
	if err != nil {
		return "", errInvalidUserString(int(offset))
	}
	return s, nil
}

// add encodes s to UTF-16LE, computes the flag byte, and appends
// length‖payload‖flag to the heap, returning the offset of the new entry.
func (h *userStringsHeap) add(s string) (uint32, error) {
	off := uint32(len(h.data))
	if s == "" {
		w := newWriter()
		w.writeCompressedUint(0)
		h.data = append(h.data, w.bytes()...)
		return off, nil
	}
	units := utf16.Encode([]rune(s))
	payload, err := utf16LE.NewEncoder().String(s)
	if err != nil {
		return 0, err
	}
	w := newWriter()
	w.writeCompressedUint(uint32(len(payload) + 1))
	w.writeBytes([]byte(payload))
	w.writeU8(hasSpecialFlag(units))
	h.data = append(h.data, w.bytes()...)
	return off, nil
}

func (h *userStringsHeap) size() int { return len(h.data) }

func (h *userStringsHeap) writeTo(w *writer) { w.writeBytes(h.data) }

// iterUserStrings visits every (offset, string) pair, stopping silently
// at the first malformed entry.
func (h *userStringsHeap) iterUserStrings(visit func(offset uint32, s string)) {
	r := newReader(h.data)
	for r.remaining() > 0 {
		start := r.position()
		length, err := r.readCompressedUint()
		if err != nil {
			return
		}
		if length == 0 {
			visit(uint32(start), "")
			continue
		}
		strLen := int(length) - 1
		if strLen%2 != 0 {
			return
		}
		payload, err := r.readBytes(strLen)
		if err != nil {
			return
		}
		if _, err := r.readU8(); err != nil {
			return
		}
		s, err := utf16LE.NewDecoder().String(string(payload))
		if err != nil {
			return
		}
		visit(uint32(start), s)
	}
}
