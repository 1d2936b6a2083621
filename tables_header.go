// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

// Heap-size flag bits in the tables header, spec.md §3/§6.
const (
	heapSizeWideStrings = 0x01
	heapSizeWideGUID    = 0x02
	heapSizeWideBlob    = 0x04
)

// tablesHeader is the tables-stream prolog (ECMA-335 §II.24.2.6).
type tablesHeader struct {
	Reserved  uint32
	Major     byte
	Minor     byte
	HeapSizes byte
	Reserved2 byte
	Valid     uint64
	Sorted    uint64
	RowCounts [numTableIDs]uint32
}

// parseTablesHeader reads the 24-byte fixed prolog followed by one u32
// row count for every bit set in Valid, in ascending table-ID order.
func parseTablesHeader(r *reader) (*tablesHeader, error) {
	h := &tablesHeader{}
	var err error
	if h.Reserved, err = r.readU32(); err != nil {
		return nil, err
	}
	if h.Major, err = r.readU8(); err != nil {
		return nil, err
	}
	if h.Minor, err = r.readU8(); err != nil {
		return nil, err
	}
	if h.HeapSizes, err = r.readU8(); err != nil {
		return nil, err
	}
	if h.Reserved2, err = r.readU8(); err != nil {
		return nil, err
	}
	if h.Valid, err = r.readU64(); err != nil {
		return nil, err
	}
	if h.Sorted, err = r.readU64(); err != nil {
		return nil, err
	}
	for i := 0; i < numTableIDs; i++ {
		if h.Valid&(uint64(1)<<uint(i)) == 0 {
			continue
		}
		n, err := r.readU32()
		if err != nil {
			return nil, err
		}
		h.RowCounts[i] = n
	}
	return h, nil
}

// writeTo emits the prolog and row counts for exactly the tables
// flagged in Valid, mirroring parseTablesHeader.
func (h *tablesHeader) writeTo(w *writer) {
	w.writeU32(h.Reserved)
	w.writeU8(h.Major)
	w.writeU8(h.Minor)
	w.writeU8(h.HeapSizes)
	w.writeU8(h.Reserved2)
	w.writeU64(h.Valid)
	w.writeU64(h.Sorted)
	for i := 0; i < numTableIDs; i++ {
		if h.Valid&(uint64(1)<<uint(i)) == 0 {
			continue
		}
		w.writeU32(h.RowCounts[i])
	}
}

// setRowCount updates both RowCounts[table] and the corresponding
// Valid bit (cleared when n == 0), per spec.md §4.5.
func (h *tablesHeader) setRowCount(table TableID, n uint32) {
	h.RowCounts[table] = n
	if n == 0 {
		h.Valid &^= uint64(1) << uint(table)
	} else {
		h.Valid |= uint64(1) << uint(table)
	}
}

// tableContext is the derived layout context from which every row
// field width is computed: heap-size flags, per-table row counts, and
// whether the uncompressed (#-) layout with Ptr tables is in effect.
// Grounded on original_source/src/tables/context.rs, extended to all
// 38 tables per spec.md §4.6 (the Rust source only covers ~25).
type tableContext struct {
	HeapSizes      byte
	RowCounts      [numTableIDs]uint32
	Uncompressed   bool
}

func newTableContext(h *tablesHeader, uncompressed bool) *tableContext {
	return &tableContext{HeapSizes: h.HeapSizes, RowCounts: h.RowCounts, Uncompressed: uncompressed}
}

func (c *tableContext) stringWidth() int {
	if c.HeapSizes&heapSizeWideStrings != 0 {
		return 4
	}
	return 2
}

func (c *tableContext) guidWidth() int {
	if c.HeapSizes&heapSizeWideGUID != 0 {
		return 4
	}
	return 2
}

func (c *tableContext) blobWidth() int {
	if c.HeapSizes&heapSizeWideBlob != 0 {
		return 4
	}
	return 2
}

// simpleWidth returns the index width for a direct reference into
// table: 4 if its row count exceeds 0xFFFF, else 2.
func (c *tableContext) simpleWidth(table TableID) int {
	if c.RowCounts[table] > 0xFFFF {
		return 4
	}
	return 2
}

// codedWidth returns the index width for a coded-index scheme: 4 if
// any target table's row count is >= 2^(16 - tag_bits), else 2.
func (c *tableContext) codedWidth(kind CodedIndexKind) int {
	scheme := codedIndexSchemes[kind]
	threshold := uint32(1) << (16 - scheme.TagBits)
	if codedIndexMaxRow(kind, c.RowCounts) >= threshold {
		return 4
	}
	return 2
}

// rowSize returns the on-disk byte width of one row of table under
// this context. Every table ID in spec.md §4.6's field table is
// covered, including the raw-retained tables (sized by their minimal
// known layout so that an unmodeled row's bytes can still be skipped
// and re-spliced — see SPEC_FULL.md §9 Decision D2).
func (c *tableContext) rowSize(table TableID) int {
	str, guid, blob := c.stringWidth(), c.guidWidth(), c.blobWidth()
	sw := c.simpleWidth
	cw := c.codedWidth

	switch table {
	case TableModule:
		return 2 + str + 3*guid
	case TableTypeRef:
		return cw(ResolutionScope) + 2*str
	case TableTypeDef:
		return 4 + 2*str + cw(TypeDefOrRef) + sw(TableField) + sw(TableMethodDef)
	case TableFieldPtr:
		return sw(TableField)
	case TableField:
		return 2 + str + blob
	case TableMethodPtr:
		return sw(TableMethodDef)
	case TableMethodDef:
		return 4 + 2 + 2 + str + blob + sw(TableParam)
	case TableParamPtr:
		return sw(TableParam)
	case TableParam:
		return 2 + 2 + str
	case TableInterfaceImpl:
		return sw(TableTypeDef) + cw(TypeDefOrRef)
	case TableMemberRef:
		return cw(MemberRefParent) + str + blob
	case TableConstant:
		return 1 + 1 + cw(HasConstant) + blob
	case TableCustomAttribute:
		return cw(HasCustomAttribute) + cw(CustomAttributeType) + blob
	case TableFieldMarshal:
		return cw(HasFieldMarshal) + blob
	case TableDeclSecurity:
		return 2 + cw(HasDeclSecurity) + blob
	case TableClassLayout:
		return 2 + 4 + sw(TableTypeDef)
	case TableFieldLayout:
		return 4 + sw(TableField)
	case TableStandAloneSig:
		return blob
	case TableEventMap:
		return sw(TableTypeDef) + sw(TableEvent)
	case TableEventPtr:
		return sw(TableEvent)
	case TableEvent:
		return 2 + str + cw(TypeDefOrRef)
	case TablePropertyMap:
		return sw(TableTypeDef) + sw(TableProperty)
	case TablePropertyPtr:
		return sw(TableProperty)
	case TableProperty:
		return 2 + str + blob
	case TableMethodSemantics:
		return 2 + sw(TableMethodDef) + cw(HasSemantics)
	case TableMethodImpl:
		return sw(TableTypeDef) + cw(MethodDefOrRef) + cw(MethodDefOrRef)
	case TableModuleRef:
		return str
	case TableTypeSpec:
		return blob
	case TableImplMap:
		return 2 + cw(MemberForwarded) + str + sw(TableModuleRef)
	case TableFieldRVA:
		return 4 + sw(TableField)
	case TableEncLog:
		return 4 + 4
	case TableEncMap:
		return 4
	case TableAssembly:
		return 4 + 4*2 + 4 + blob + str + str
	case TableAssemblyProcessor:
		return 4
	case TableAssemblyOS:
		return 4 + 4 + 4
	case TableAssemblyRef:
		return 4*2 + 4 + blob + str + str + blob
	case TableAssemblyRefProcessor:
		return 4 + sw(TableAssemblyRef)
	case TableAssemblyRefOS:
		return 4 + 4 + 4 + sw(TableAssemblyRef)
	case TableFile:
		return 4 + str + blob
	case TableExportedType:
		return 4 + 4 + str + str + cw(Implementation)
	case TableManifestResource:
		return 4 + 4 + str + cw(Implementation)
	case TableNestedClass:
		return sw(TableTypeDef) + sw(TableTypeDef)
	case TableGenericParam:
		return 2 + 2 + cw(TypeOrMethodDef) + str
	case TableMethodSpec:
		return cw(MethodDefOrRef) + blob
	case TableGenericParamConstraint:
		return sw(TableGenericParam) + cw(TypeDefOrRef)
	default:
		if unmodeledTables[table] {
			return c.rawRowSize(table)
		}
		return 0
	}
}
