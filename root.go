// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import "unicode/utf8"

// metadataSignature is the fixed "BSJB" sentinel opening every CLI
// metadata root, ECMA-335 §II.24.2.1.
const metadataSignature uint32 = 0x424A5342

// Well-known stream names, ECMA-335 §II.24.2.2.
const (
	streamTables     = "#~"
	streamTablesUnc  = "#-"
	streamStrings    = "#Strings"
	streamUserString = "#US"
	streamGUID       = "#GUID"
	streamBlob       = "#Blob"
)

// streamHeader is one entry in the metadata root's stream directory.
type streamHeader struct {
	Offset uint32
	Size   uint32
	Name   string
}

// metadataRoot is the fixed header at offset 0 of a metadata blob.
// Grounded on original_source/src/root.rs and spec.md §4.4.
type metadataRoot struct {
	MajorVersion   uint16
	MinorVersion   uint16
	Reserved       uint32
	VersionString  string
	Flags          uint16
	Streams        []streamHeader
}

// parseMetadataRoot reads the BSJB header and stream directory starting
// at the reader's current cursor.
func parseMetadataRoot(r *reader) (*metadataRoot, error) {
	sig, err := r.readU32()
	if err != nil {
		return nil, err
	}
	if sig != metadataSignature {
		return nil, errInvalidSignature(sig)
	}
	root := &metadataRoot{}
	if root.MajorVersion, err = r.readU16(); err != nil {
		return nil, err
	}
	if root.MinorVersion, err = r.readU16(); err != nil {
		return nil, err
	}
	if root.Reserved, err = r.readU32(); err != nil {
		return nil, err
	}
	length, err := r.readU32()
	if err != nil {
		return nil, err
	}
	start := r.position()
	versionBytes, err := r.readBytes(int(length))
	if err != nil {
		return nil, err
	}
	end := 0
	for end < len(versionBytes) && versionBytes[end] != 0 {
		end++
	}
	if !utf8.Valid(versionBytes[:end]) {
		return nil, errInvalidString(start)
	}
	root.VersionString = string(versionBytes[:end])
	if root.Flags, err = r.readU16(); err != nil {
		return nil, err
	}
	count, err := r.readU16()
	if err != nil {
		return nil, err
	}
	root.Streams = make([]streamHeader, 0, count)
	for i := 0; i < int(count); i++ {
		sh, err := parseStreamHeader(r)
		if err != nil {
			return nil, err
		}
		root.Streams = append(root.Streams, sh)
	}
	return root, nil
}

// parseStreamHeader reads one { offset, size, padded-name } record.
func parseStreamHeader(r *reader) (streamHeader, error) {
	offset, err := r.readU32()
	if err != nil {
		return streamHeader{}, err
	}
	size, err := r.readU32()
	if err != nil {
		return streamHeader{}, err
	}
	start := r.position()
	name, err := r.readNullString()
	if err != nil {
		return streamHeader{}, errInvalidStreamName(start)
	}
	if !utf8.ValidString(name) {
		return streamHeader{}, errInvalidStreamName(start)
	}
	// pad the name (including its terminator) to the next 4-byte boundary.
	consumed := r.position() - start
	for consumed%4 != 0 {
		if _, err := r.readU8(); err != nil {
			return streamHeader{}, errInvalidStreamName(start)
		}
		consumed++
	}
	return streamHeader{Offset: offset, Size: size, Name: name}, nil
}

// writeTo serializes the root header exactly as parsed.
func (root *metadataRoot) writeTo(w *writer) {
	w.writeU32(metadataSignature)
	w.writeU16(root.MajorVersion)
	w.writeU16(root.MinorVersion)
	w.writeU32(root.Reserved)

	vw := newWriter()
	vw.writeNullString(root.VersionString)
	vw.align(4)
	w.writeU32(uint32(vw.len()))
	w.writeBytes(vw.bytes())

	w.writeU16(root.Flags)
	w.writeU16(uint16(len(root.Streams)))
	for _, sh := range root.Streams {
		w.writeU32(sh.Offset)
		w.writeU32(sh.Size)
		nw := newWriter()
		nw.writeNullString(sh.Name)
		nw.align(4)
		w.writeBytes(nw.bytes())
	}
}

// findStream returns the stream header with the given name, if present.
func (root *metadataRoot) findStream(name string) (streamHeader, bool) {
	for _, sh := range root.Streams {
		if sh.Name == name {
			return sh, true
		}
	}
	return streamHeader{}, false
}

// tablesStreamHeader returns whichever of #~ or #- is present, and
// whether the layout is the uncompressed (#-, pointer-table-enabled)
// form.
func (root *metadataRoot) tablesStreamHeader() (sh streamHeader, uncompressed bool, ok bool) {
	if sh, ok := root.findStream(streamTables); ok {
		return sh, false, true
	}
	if sh, ok := root.findStream(streamTablesUnc); ok {
		return sh, true, true
	}
	return streamHeader{}, false, false
}
