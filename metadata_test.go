// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import (
	"os"
	"testing"
)

// buildSampleMetadata assembles a minimal but structurally complete
// Metadata in memory: one Module, one Assembly with a public key, one
// AssemblyRef, and a TypeDef/MethodDef pair, exercising the Bytes/Parse
// round trip end to end.
func buildSampleMetadata(t *testing.T) *Metadata {
	t.Helper()
	return newSampleMetadata()
}

func newSampleMetadata() *Metadata {
	strings := newStringsHeap()
	guids := newGUIDHeap()
	blobs := newBlobHeap()
	us := newUserStringsHeap()

	moduleName := strings.add("Sample.dll")
	var mvid [16]byte
	mvidIdx := guids.add(mvid)

	asmName := strings.add("Sample")
	asmCulture := strings.add("")
	pubKey := blobs.add([]byte("fake-public-key"))

	refName := strings.add("mscorlib")
	refCulture := strings.add("")
	refToken := blobs.add([]byte{0xb7, 0x7a, 0x5c, 0x56, 0x19, 0x34, 0xe0, 0x89})

	typeName := strings.add("Program")
	typeNs := strings.add("Sample")
	methodName := strings.add("Main")
	methodSig := blobs.add([]byte{0x00, 0x00, 0x01})

	m := &Metadata{
		Root: &metadataRoot{MajorVersion: 1, MinorVersion: 1, VersionString: "v4.0.30319"},
		TablesHeader: &tablesHeader{Major: 2, Minor: 0},
		Strings:      strings,
		UserStrings:  us,
		GUIDs:        guids,
		Blobs:        blobs,
		Modules: []ModuleRow{
			{Generation: 0, Name: moduleName, Mvid: mvidIdx},
		},
		Assemblies: []AssemblyRow{
			{HashAlgID: 0x8004, MajorVersion: 1, MinorVersion: 0, Name: asmName, Culture: asmCulture, PublicKey: pubKey},
		},
		AssemblyRefs: []AssemblyRefRow{
			{MajorVersion: 4, MinorVersion: 0, Name: refName, Culture: refCulture, PublicKeyOrToken: refToken},
		},
		TypeDefs: []TypeDefRow{
			{Flags: 0x100001, TypeName: typeName, TypeNamespace: typeNs, FieldList: 1, MethodList: 1},
		},
		MethodDefs: []MethodDefRow{
			{RVA: 0x2050, Flags: 0x0091, Name: methodName, Signature: methodSig, ParamList: 1},
		},
	}
	return m
}

func TestMetadataBytesParseRoundTrip(t *testing.T) {
	m := buildSampleMetadata(t)
	data, err := m.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}

	got, err := Parse(data, Options{})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if got.Version() != "v4.0.30319" {
		t.Errorf("Version() = %q", got.Version())
	}
	if len(got.Modules) != 1 || len(got.TypeDefs) != 1 || len(got.MethodDefs) != 1 {
		t.Fatalf("unexpected row counts: modules=%d typedefs=%d methods=%d",
			len(got.Modules), len(got.TypeDefs), len(got.MethodDefs))
	}

	asm, ok := got.Assembly()
	if !ok {
		t.Fatal("expected an Assembly row")
	}
	if asm.Name != "Sample" {
		t.Errorf("Assembly().Name = %q, want Sample", asm.Name)
	}
	if asm.VersionString() != "1.0.0.0" {
		t.Errorf("Assembly().VersionString() = %q, want 1.0.0.0", asm.VersionString())
	}
	if _, ok := asm.PublicKeyToken(); !ok {
		t.Error("expected PublicKeyToken to be derivable")
	}

	refs := got.AssemblyRefs()
	if len(refs) != 1 || refs[0].Name != "mscorlib" {
		t.Fatalf("AssemblyRefs() = %+v", refs)
	}
	if refs[0].VersionString() != "4.0.0.0" {
		t.Errorf("AssemblyRefs()[0].VersionString() = %q, want 4.0.0.0", refs[0].VersionString())
	}

	types := got.Types()
	if len(types) != 1 || types[0].FullName() != "Sample.Program" {
		t.Fatalf("Types() = %+v", types)
	}

	methods := got.Methods()
	if len(methods) != 1 || methods[0].Name != "Main" {
		t.Fatalf("Methods() = %+v", methods)
	}
}

func TestParseFile(t *testing.T) {
	m := buildSampleMetadata(t)
	data, err := m.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}

	path := t.TempDir() + "/sample.winmd"
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	got, err := ParseFile(path, Options{})
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if got.Version() != "v4.0.30319" {
		t.Errorf("ParseFile().Version() = %q", got.Version())
	}
	asm, ok := got.Assembly()
	if !ok || asm.Name != "Sample" {
		t.Errorf("ParseFile().Assembly() = %+v, %v", asm, ok)
	}
}

func TestParseRejectsMissingTablesStream(t *testing.T) {
	w := newWriter()
	root := &metadataRoot{MajorVersion: 1, MinorVersion: 1, VersionString: "v4.0.30319"}
	root.writeTo(w)
	if _, err := Parse(w.bytes(), Options{}); err != ErrTablesStreamRequired {
		t.Fatalf("Parse() error = %v, want ErrTablesStreamRequired", err)
	}
}

// FuzzParse exercises Parse against arbitrary byte slices, the same
// byte-slice-in entrypoint the teacher's fuzz.go wraps around
// NewBytes+Parse for PE images. Go's native fuzzing replaces the
// teacher's go-fuzz harness; Parse must never panic on malformed
// input, only return an error.
func FuzzParse(f *testing.F) {
	seed, err := newSampleMetadata().Bytes()
	if err != nil {
		f.Fatalf("Bytes() error: %v", err)
	}
	f.Add(seed)
	f.Add([]byte{})
	f.Add([]byte{0x42, 0x53, 0x4A, 0x42})

	f.Fuzz(func(t *testing.T, data []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Parse panicked on input: %v", r)
			}
		}()
		_, _ = Parse(data, Options{})
	})
}
