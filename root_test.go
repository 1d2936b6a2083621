// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import "testing"

func buildRootBytes() []byte {
	w := newWriter()
	root := &metadataRoot{
		MajorVersion:  1,
		MinorVersion:  1,
		VersionString: "v4.0.30319",
		Flags:         0,
		Streams: []streamHeader{
			{Offset: 0, Size: 8, Name: streamTables},
			{Offset: 8, Size: 4, Name: streamStrings},
		},
	}
	root.writeTo(w)
	return w.bytes()
}

func TestParseMetadataRootRoundTrip(t *testing.T) {
	data := buildRootBytes()
	r := newReader(data)
	root, err := parseMetadataRoot(r)
	if err != nil {
		t.Fatalf("parseMetadataRoot error: %v", err)
	}
	if root.VersionString != "v4.0.30319" {
		t.Errorf("version string = %q, want v4.0.30319", root.VersionString)
	}
	if len(root.Streams) != 2 {
		t.Fatalf("stream count = %d, want 2", len(root.Streams))
	}
	if root.Streams[0].Name != streamTables || root.Streams[1].Name != streamStrings {
		t.Errorf("unexpected stream names: %+v", root.Streams)
	}
}

func TestParseMetadataRootInvalidSignature(t *testing.T) {
	data := buildRootBytes()
	data[0] = 0x00
	r := newReader(data)
	if _, err := parseMetadataRoot(r); err == nil {
		t.Fatal("expected errInvalidSignature")
	}
}

func TestFindStreamAndTablesHeader(t *testing.T) {
	root := &metadataRoot{Streams: []streamHeader{
		{Name: streamTablesUnc, Offset: 10, Size: 20},
		{Name: streamBlob, Offset: 30, Size: 4},
	}}
	sh, ok := root.findStream(streamBlob)
	if !ok || sh.Offset != 30 {
		t.Fatalf("findStream(#Blob) = %+v, %v", sh, ok)
	}
	if _, ok := root.findStream(streamGUID); ok {
		t.Fatal("expected #GUID not found")
	}

	tsh, uncompressed, ok := root.tablesStreamHeader()
	if !ok || !uncompressed || tsh.Offset != 10 {
		t.Fatalf("tablesStreamHeader() = %+v, %v, %v", tsh, uncompressed, ok)
	}
}

func TestParseMetadataRootInvalidUTF8VersionString(t *testing.T) {
	w := newWriter()
	w.writeU32(metadataSignature)
	w.writeU16(1)
	w.writeU16(1)
	w.writeU32(0)
	vw := newWriter()
	vw.writeBytes([]byte{0xFF, 0xFE})
	vw.writeU8(0)
	vw.align(4)
	w.writeU32(uint32(vw.len()))
	w.writeBytes(vw.bytes())
	w.writeU16(0)
	w.writeU16(0)

	r := newReader(w.bytes())
	if _, err := parseMetadataRoot(r); err == nil {
		t.Fatal("expected InvalidString for malformed UTF-8 version string")
	}
}

func TestParseStreamHeaderInvalidUTF8Name(t *testing.T) {
	w := newWriter()
	w.writeU32(0)
	w.writeU32(0)
	nw := newWriter()
	nw.writeBytes([]byte{0xFF, 0xFE})
	nw.writeU8(0)
	nw.align(4)
	w.writeBytes(nw.bytes())

	r := newReader(w.bytes())
	if _, err := parseStreamHeader(r); err == nil {
		t.Fatal("expected InvalidStreamName for malformed UTF-8 stream name")
	}
}

func TestStreamHeaderNamePadding(t *testing.T) {
	// "#~" (2 bytes) + null terminator = 3 bytes, padded to 4.
	w := newWriter()
	w.writeU32(0)
	w.writeU32(0)
	nw := newWriter()
	nw.writeBytes([]byte(streamTables))
	nw.writeU8(0)
	nw.align(4)
	if nw.len() != 4 {
		t.Fatalf("padded name length = %d, want 4", nw.len())
	}
	w.writeBytes(nw.bytes())

	r := newReader(w.bytes())
	sh, err := parseStreamHeader(r)
	if err != nil {
		t.Fatalf("parseStreamHeader error: %v", err)
	}
	if sh.Name != streamTables {
		t.Errorf("name = %q, want %q", sh.Name, streamTables)
	}
	if r.position() != len(w.bytes()) {
		t.Errorf("cursor at %d, want %d (all bytes consumed)", r.position(), len(w.bytes()))
	}
}
