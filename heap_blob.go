// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

// blobHeap is the #Blob heap: compressed-length-prefixed byte runs,
// offset-addressed, deduplicated on append. Structurally identical to
// #Strings except it carries raw bytes rather than null-terminated
// UTF-8 text. Grounded on original_source/src/heaps/blob.rs.
type blobHeap struct {
	data  []byte
	index map[string]uint32
}

func newBlobHeap() *blobHeap {
	return &blobHeap{data: []byte{0}, index: map[string]uint32{"": 0}}
}

func parseBlobHeap(data []byte) *blobHeap {
	if len(data) == 0 {
		return newBlobHeap()
	}
	return &blobHeap{data: data}
}

// get returns the blob at offset.
func (h *blobHeap) get(offset uint32) ([]byte, error) {
	r := newReader(h.data)
	r.seek(int(offset))
	length, err := r.readCompressedUint()
	if err != nil {
		return nil, errInvalidBlob(int(offset))
	}
	if length == 0 {
		return []byte{}, nil
	}
	b, err := r.readBytes(int(length))
	if err != nil {
		return nil, errInvalidBlob(int(offset))
	}
	return b, nil
}

// add appends b (prefixed with its compressed length) if not already
// present, returning its offset. Identical byte runs are deduplicated.
func (h *blobHeap) add(b []byte) uint32 {
	if h.index == nil {
		h.index = make(map[string]uint32)
	}
	key := string(b)
	if off, ok := h.index[key]; ok {
		return off
	}
	off := uint32(len(h.data))
	w := newWriter()
	w.writeCompressedUint(uint32(len(b)))
	w.writeBytes(b)
	h.data = append(h.data, w.bytes()...)
	h.index[key] = off
	return off
}

func (h *blobHeap) size() int { return len(h.data) }

func (h *blobHeap) usesWideIndices() bool { return len(h.data) > 0xFFFF }

func (h *blobHeap) writeTo(w *writer) { w.writeBytes(h.data) }

// iterBlobs visits every (offset, blob) pair, stopping silently at the
// first malformed entry.
func (h *blobHeap) iterBlobs(visit func(offset uint32, b []byte)) {
	r := newReader(h.data)
	for r.remaining() > 0 {
		start := r.position()
		length, err := r.readCompressedUint()
		if err != nil {
			return
		}
		b, err := r.readBytes(int(length))
		if err != nil {
			return
		}
		visit(uint32(start), b)
	}
}
