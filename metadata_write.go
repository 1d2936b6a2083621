// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

// Bytes re-serializes m into a fresh metadata blob. Control flow
// ascends per spec.md §2: compute heap sizes, compute table row
// counts, derive index widths from both, lay out stream offsets, emit
// the root, then emit each stream at its declared offset with 4-byte
// inter-stream alignment. Byte-identical round-trip is not guaranteed
// (heaps deduplicate, unmodeled tables may shift) but the re-emitted
// bytes are a valid, conformant metadata blob per spec.md §6.
func (m *Metadata) Bytes() ([]byte, error) {
	header := m.buildTablesHeader()
	ctx := newTableContext(header, m.Uncompressed)

	tablesBuf := newWriter()
	header.writeTo(tablesBuf)
	if err := m.writeTables(tablesBuf, ctx); err != nil {
		return nil, err
	}

	tablesStreamName := streamTables
	if m.Uncompressed {
		tablesStreamName = streamTablesUnc
	}

	streams := []struct {
		name string
		data []byte
	}{
		{tablesStreamName, tablesBuf.bytes()},
		{streamStrings, m.Strings.data},
		{streamUserString, m.UserStrings.data},
		{streamGUID, m.GUIDs.data},
		{streamBlob, m.Blobs.data},
	}

	root := &metadataRoot{
		MajorVersion:  m.Root.MajorVersion,
		MinorVersion:  m.Root.MinorVersion,
		Reserved:      m.Root.Reserved,
		VersionString: m.Root.VersionString,
		Flags:         m.Root.Flags,
	}

	headerLen := rootHeaderLen(root, streams)
	offset := headerLen
	root.Streams = make([]streamHeader, 0, len(streams))
	for _, s := range streams {
		root.Streams = append(root.Streams, streamHeader{
			Offset: uint32(offset),
			Size:   uint32(len(s.data)),
			Name:   s.name,
		})
		offset += paddedLen(len(s.data), 4)
	}

	out := newWriter()
	root.writeTo(out)
	for _, s := range streams {
		out.writeBytes(s.data)
		out.align(4)
	}
	return out.bytes(), nil
}

// rootHeaderLen computes the byte length of the root header and stream
// directory without needing to know the final stream offsets, which
// only depend on names and the version string, not on content sizes.
func rootHeaderLen(root *metadataRoot, streams []struct {
	name string
	data []byte
}) int {
	probe := newWriter()
	probeRoot := &metadataRoot{
		MajorVersion: root.MajorVersion, MinorVersion: root.MinorVersion,
		Reserved: root.Reserved, VersionString: root.VersionString, Flags: root.Flags,
	}
	for _, s := range streams {
		probeRoot.Streams = append(probeRoot.Streams, streamHeader{Name: s.name})
	}
	probeRoot.writeTo(probe)
	return probe.len()
}

func paddedLen(n, align int) int {
	for n%align != 0 {
		n++
	}
	return n
}

// buildTablesHeader recomputes row counts and the valid bitmask from
// the current in-memory row slices, per spec.md §4.5's set_row_count
// contract (n==0 clears the bit). HeapSizes flags are recomputed from
// the final heap byte sizes.
func (m *Metadata) buildTablesHeader() *tablesHeader {
	h := &tablesHeader{
		Reserved: m.TablesHeader.Reserved,
		Major:    m.TablesHeader.Major,
		Minor:    m.TablesHeader.Minor,
		Sorted:   m.TablesHeader.Sorted,
	}
	if m.Strings.usesWideIndices() {
		h.HeapSizes |= heapSizeWideStrings
	}
	if m.GUIDs.count() > 0xFFFF {
		h.HeapSizes |= heapSizeWideGUID
	}
	if m.Blobs.usesWideIndices() {
		h.HeapSizes |= heapSizeWideBlob
	}

	set := func(id TableID, n int) { h.setRowCount(id, uint32(n)) }
	set(TableModule, len(m.Modules))
	set(TableTypeRef, len(m.TypeRefs))
	set(TableTypeDef, len(m.TypeDefs))
	set(TableFieldPtr, len(m.FieldPtrs))
	set(TableField, len(m.Fields))
	set(TableMethodPtr, len(m.MethodPtrs))
	set(TableMethodDef, len(m.MethodDefs))
	set(TableParamPtr, len(m.ParamPtrs))
	set(TableParam, len(m.Params))
	set(TableInterfaceImpl, len(m.InterfaceImpls))
	set(TableMemberRef, len(m.MemberRefs))
	set(TableConstant, len(m.Constants))
	set(TableCustomAttribute, len(m.CustomAttributes))
	set(TableFieldMarshal, len(m.FieldMarshals))
	set(TableDeclSecurity, len(m.DeclSecurities))
	set(TableClassLayout, len(m.ClassLayouts))
	set(TableFieldLayout, len(m.FieldLayouts))
	set(TableStandAloneSig, len(m.StandAloneSigs))
	set(TableEventMap, len(m.EventMaps))
	set(TableEventPtr, len(m.EventPtrs))
	set(TableEvent, len(m.Events))
	set(TablePropertyMap, len(m.PropertyMaps))
	set(TablePropertyPtr, len(m.PropertyPtrs))
	set(TableProperty, len(m.Properties))
	set(TableMethodSemantics, len(m.MethodSemanticsRows))
	set(TableMethodImpl, len(m.MethodImpls))
	set(TableModuleRef, len(m.ModuleRefs))
	set(TableTypeSpec, len(m.TypeSpecs))
	set(TableImplMap, len(m.ImplMaps))
	set(TableFieldRVA, len(m.FieldRVAs))
	set(TableEncLog, len(m.EncLogs))
	set(TableEncMap, len(m.EncMaps))
	set(TableAssembly, len(m.Assemblies))
	setRaw(h, TableAssemblyProcessor, m.AssemblyProcessors)
	setRaw(h, TableAssemblyOS, m.AssemblyOSes)
	set(TableAssemblyRef, len(m.AssemblyRefs))
	setRaw(h, TableAssemblyRefProcessor, m.AssemblyRefProcessors)
	setRaw(h, TableAssemblyRefOS, m.AssemblyRefOSes)
	setRaw(h, TableFile, m.Files)
	setRaw(h, TableExportedType, m.ExportedTypes)
	setRaw(h, TableManifestResource, m.ManifestResources)
	set(TableNestedClass, len(m.NestedClasses))
	set(TableGenericParam, len(m.GenericParams))
	set(TableMethodSpec, len(m.MethodSpecs))
	set(TableGenericParamConstraint, len(m.GenericParamConstraints))
	return h
}

func setRaw(h *tablesHeader, id TableID, t *rawTable) {
	if t == nil {
		h.setRowCount(id, 0)
		return
	}
	h.setRowCount(id, t.RowCount)
}

// writeTables emits every table's rows in ascending ID order, mirroring
// parseTables.
func (m *Metadata) writeTables(w *writer, ctx *tableContext) error {
	for id := TableID(0); id <= TableGenericParamConstraint; id++ {
		if ctx.RowCounts[id] == 0 {
			continue
		}
		switch id {
		case TableModule:
			writeRows(w, ctx, m.Modules)
		case TableTypeRef:
			writeRows(w, ctx, m.TypeRefs)
		case TableTypeDef:
			writeRows(w, ctx, m.TypeDefs)
		case TableFieldPtr:
			writeRows(w, ctx, m.FieldPtrs)
		case TableField:
			writeRows(w, ctx, m.Fields)
		case TableMethodPtr:
			writeRows(w, ctx, m.MethodPtrs)
		case TableMethodDef:
			writeRows(w, ctx, m.MethodDefs)
		case TableParamPtr:
			writeRows(w, ctx, m.ParamPtrs)
		case TableParam:
			writeRows(w, ctx, m.Params)
		case TableInterfaceImpl:
			writeRows(w, ctx, m.InterfaceImpls)
		case TableMemberRef:
			writeRows(w, ctx, m.MemberRefs)
		case TableConstant:
			writeRows(w, ctx, m.Constants)
		case TableCustomAttribute:
			writeRows(w, ctx, m.CustomAttributes)
		case TableFieldMarshal:
			writeRows(w, ctx, m.FieldMarshals)
		case TableDeclSecurity:
			writeRows(w, ctx, m.DeclSecurities)
		case TableClassLayout:
			writeRows(w, ctx, m.ClassLayouts)
		case TableFieldLayout:
			writeRows(w, ctx, m.FieldLayouts)
		case TableStandAloneSig:
			writeRows(w, ctx, m.StandAloneSigs)
		case TableEventMap:
			writeRows(w, ctx, m.EventMaps)
		case TableEventPtr:
			writeRows(w, ctx, m.EventPtrs)
		case TableEvent:
			writeRows(w, ctx, m.Events)
		case TablePropertyMap:
			writeRows(w, ctx, m.PropertyMaps)
		case TablePropertyPtr:
			writeRows(w, ctx, m.PropertyPtrs)
		case TableProperty:
			writeRows(w, ctx, m.Properties)
		case TableMethodSemantics:
			writeRows(w, ctx, m.MethodSemanticsRows)
		case TableMethodImpl:
			writeRows(w, ctx, m.MethodImpls)
		case TableModuleRef:
			writeRows(w, ctx, m.ModuleRefs)
		case TableTypeSpec:
			writeRows(w, ctx, m.TypeSpecs)
		case TableImplMap:
			writeRows(w, ctx, m.ImplMaps)
		case TableFieldRVA:
			writeRows(w, ctx, m.FieldRVAs)
		case TableEncLog:
			writeRows(w, ctx, m.EncLogs)
		case TableEncMap:
			writeRows(w, ctx, m.EncMaps)
		case TableAssembly:
			writeRows(w, ctx, m.Assemblies)
		case TableAssemblyProcessor:
			m.AssemblyProcessors.write(w)
		case TableAssemblyOS:
			m.AssemblyOSes.write(w)
		case TableAssemblyRef:
			writeRows(w, ctx, m.AssemblyRefs)
		case TableAssemblyRefProcessor:
			m.AssemblyRefProcessors.write(w)
		case TableAssemblyRefOS:
			m.AssemblyRefOSes.write(w)
		case TableFile:
			m.Files.write(w)
		case TableExportedType:
			m.ExportedTypes.write(w)
		case TableManifestResource:
			m.ManifestResources.write(w)
		case TableNestedClass:
			writeRows(w, ctx, m.NestedClasses)
		case TableGenericParam:
			writeRows(w, ctx, m.GenericParams)
		case TableMethodSpec:
			writeRows(w, ctx, m.MethodSpecs)
		case TableGenericParamConstraint:
			writeRows(w, ctx, m.GenericParamConstraints)
		}
	}
	return nil
}

type writableRow interface {
	write(w *writer, ctx *tableContext)
}

func writeRows[T writableRow](w *writer, ctx *tableContext, rows []T) {
	for _, row := range rows {
		row.write(w, ctx)
	}
}
