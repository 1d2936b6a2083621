// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

// noTable marks an unused tag slot within a coded-index scheme's target
// list (e.g. HasCustomAttribute's reserved slot, CustomAttributeType's
// two reserved slots). Decoding a value whose tag selects such a slot
// is invalid.
const noTable TableID = 0xFF

// CodedIndexKind names one of the 13 ECMA-335 coded-index schemes,
// spec.md §3.
type CodedIndexKind int

const (
	TypeDefOrRef CodedIndexKind = iota
	HasConstant
	HasCustomAttribute
	HasFieldMarshal
	HasDeclSecurity
	MemberRefParent
	HasSemantics
	MethodDefOrRef
	MemberForwarded
	Implementation
	CustomAttributeType
	ResolutionScope
	TypeOrMethodDef
)

// codedIndexScheme describes one scheme's tag-bit width and its ordered
// target-table list, indexed by tag value.
type codedIndexScheme struct {
	Name    string
	TagBits uint
	Tables  []TableID
}

var codedIndexSchemes = map[CodedIndexKind]codedIndexScheme{
	TypeDefOrRef: {
		Name: "TypeDefOrRef", TagBits: 2,
		Tables: []TableID{TableTypeDef, TableTypeRef, TableTypeSpec},
	},
	HasConstant: {
		Name: "HasConstant", TagBits: 2,
		Tables: []TableID{TableField, TableParam, TableProperty},
	},
	HasCustomAttribute: {
		Name: "HasCustomAttribute", TagBits: 5,
		Tables: []TableID{
			TableMethodDef, TableField, TableTypeRef, TableTypeDef,
			TableParam, TableInterfaceImpl, TableMemberRef, TableModule,
			noTable, TableProperty, TableEvent, TableStandAloneSig,
			TableModuleRef, TableTypeSpec, TableAssembly, TableAssemblyRef,
			TableFile, TableExportedType, TableManifestResource,
			TableGenericParam, TableGenericParamConstraint, TableMethodSpec,
		},
	},
	HasFieldMarshal: {
		Name: "HasFieldMarshal", TagBits: 1,
		Tables: []TableID{TableField, TableParam},
	},
	HasDeclSecurity: {
		Name: "HasDeclSecurity", TagBits: 2,
		Tables: []TableID{TableTypeDef, TableMethodDef, TableAssembly},
	},
	MemberRefParent: {
		Name: "MemberRefParent", TagBits: 3,
		Tables: []TableID{TableTypeDef, TableTypeRef, TableModuleRef, TableMethodDef, TableTypeSpec},
	},
	HasSemantics: {
		Name: "HasSemantics", TagBits: 1,
		Tables: []TableID{TableEvent, TableProperty},
	},
	MethodDefOrRef: {
		Name: "MethodDefOrRef", TagBits: 1,
		Tables: []TableID{TableMethodDef, TableMemberRef},
	},
	MemberForwarded: {
		Name: "MemberForwarded", TagBits: 1,
		Tables: []TableID{TableField, TableMethodDef},
	},
	Implementation: {
		Name: "Implementation", TagBits: 2,
		Tables: []TableID{TableFile, TableAssemblyRef, TableExportedType},
	},
	CustomAttributeType: {
		Name: "CustomAttributeType", TagBits: 3,
		Tables: []TableID{noTable, noTable, TableMethodDef, TableMemberRef, noTable},
	},
	ResolutionScope: {
		Name: "ResolutionScope", TagBits: 2,
		Tables: []TableID{TableModule, TableModuleRef, TableAssemblyRef, TableTypeRef},
	},
	TypeOrMethodDef: {
		Name: "TypeOrMethodDef", TagBits: 1,
		Tables: []TableID{TableTypeDef, TableMethodDef},
	},
}

// decodeCodedIndex splits a raw coded-index value into its target table
// and 1-based row number. A value of 0 decodes as (noTable, 0), the
// "null coded index" per spec.md §3.
func decodeCodedIndex(kind CodedIndexKind, value uint32) (TableID, uint32, error) {
	scheme := codedIndexSchemes[kind]
	tagMask := uint32(1)<<scheme.TagBits - 1
	tag := value & tagMask
	row := value >> scheme.TagBits
	if value == 0 {
		return noTable, 0, nil
	}
	if int(tag) >= len(scheme.Tables) || scheme.Tables[tag] == noTable {
		return noTable, 0, errInvalidCodedIndex(scheme.Name, value)
	}
	return scheme.Tables[tag], row, nil
}

// encodeCodedIndex packs a (table, row) pair into a raw coded-index
// value for the given scheme. table must appear in the scheme's target
// list; row 0 with any table encodes the null coded index.
func encodeCodedIndex(kind CodedIndexKind, table TableID, row uint32) (uint32, error) {
	scheme := codedIndexSchemes[kind]
	if row == 0 {
		return 0, nil
	}
	for tag, t := range scheme.Tables {
		if t == table {
			return (row << scheme.TagBits) | uint32(tag), nil
		}
	}
	return 0, errInvalidCodedIndex(scheme.Name, uint32(table))
}

// codedIndexMaxRow returns the largest row count among a scheme's
// target tables, used to decide whether the coded index needs the
// 4-byte wide form (spec.md §3: width is 4 if any target's row count
// is ≥ 2^(16 - tag_bits)).
func codedIndexMaxRow(kind CodedIndexKind, rowCounts [numTableIDs]uint32) uint32 {
	scheme := codedIndexSchemes[kind]
	var max uint32
	for _, t := range scheme.Tables {
		if t == noTable {
			continue
		}
		if n := rowCounts[t]; n > max {
			max = n
		}
	}
	return max
}
