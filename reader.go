// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import "encoding/binary"

// reader holds an immutable byte slice and a cursor, per spec.md §4.1.
// Every read fails with errUnexpectedEOF when the cursor plus the needed
// byte count exceeds the buffer. Modeled on the teacher's bounds-checked
// ReadUint32(offset) family in helper.go, recast onto a cursor per
// SPEC_FULL.md §9 Decision D5.
type reader struct {
	data []byte
	pos  int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

// position returns the current cursor offset.
func (r *reader) position() int { return r.pos }

// remaining returns the number of unread bytes.
func (r *reader) remaining() int { return len(r.data) - r.pos }

// seek moves the cursor to an absolute offset.
func (r *reader) seek(offset int) { r.pos = offset }

func (r *reader) ensure(n int) error {
	if r.pos < 0 || n < 0 || r.pos+n > len(r.data) {
		return errUnexpectedEOF(r.pos, n)
	}
	return nil
}

// readBytes reads and returns n raw bytes, advancing the cursor.
func (r *reader) readBytes(n int) ([]byte, error) {
	if err := r.ensure(n); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// peekU8 returns the next byte without advancing the cursor.
func (r *reader) peekU8() (byte, error) {
	if err := r.ensure(1); err != nil {
		return 0, err
	}
	return r.data[r.pos], nil
}

func (r *reader) readU8() (byte, error) {
	if err := r.ensure(1); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) readU16() (uint16, error) {
	if err := r.ensure(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *reader) readU32() (uint32, error) {
	if err := r.ensure(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *reader) readU64() (uint64, error) {
	if err := r.ensure(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

// readIndex reads either a 2-byte or 4-byte little-endian index,
// depending on wide, returning it widened to uint32.
func (r *reader) readIndex(wide bool) (uint32, error) {
	if wide {
		return r.readU32()
	}
	v, err := r.readU16()
	return uint32(v), err
}

// readNullString reads a null-terminated byte run starting at the
// current cursor and returns it as a string, without validating UTF-8;
// callers validate it themselves with the error kind appropriate to
// what is being read (e.g. root.go's parseStreamHeader returns
// InvalidStreamName, stringsHeap.get returns InvalidString).
func (r *reader) readNullString() (string, error) {
	start := r.pos
	for {
		b, err := r.readU8()
		if err != nil {
			return "", err
		}
		if b == 0 {
			return string(r.data[start : r.pos-1]), nil
		}
	}
}

// slice returns a read-only sub-slice of the underlying buffer without
// moving the cursor. Parse uses it to cut the tables stream out of the
// metadata buffer by its absolute offset.
func (r *reader) slice(offset, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > len(r.data) {
		return nil, errUnexpectedEOF(offset, length)
	}
	return r.data[offset : offset+length], nil
}

func (r *reader) len() int { return len(r.data) }
