// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

// TableID identifies one of the 38 ECMA-335 metadata tables by its
// on-disk bit position in the tables header's valid-table bitmask.
// Numeric values are authoritative per spec.md §3.
type TableID uint32

// Table ID constants, ECMA-335 §II.22.
const (
	TableModule                  TableID = 0x00
	TableTypeRef                 TableID = 0x01
	TableTypeDef                 TableID = 0x02
	TableFieldPtr                TableID = 0x03
	TableField                   TableID = 0x04
	TableMethodPtr               TableID = 0x05
	TableMethodDef                TableID = 0x06
	TableParamPtr                TableID = 0x07
	TableParam                   TableID = 0x08
	TableInterfaceImpl           TableID = 0x09
	TableMemberRef               TableID = 0x0A
	TableConstant                TableID = 0x0B
	TableCustomAttribute         TableID = 0x0C
	TableFieldMarshal            TableID = 0x0D
	TableDeclSecurity            TableID = 0x0E
	TableClassLayout             TableID = 0x0F
	TableFieldLayout             TableID = 0x10
	TableStandAloneSig           TableID = 0x11
	TableEventMap                TableID = 0x12
	TableEventPtr                TableID = 0x13
	TableEvent                   TableID = 0x14
	TablePropertyMap             TableID = 0x15
	TablePropertyPtr             TableID = 0x16
	TableProperty                TableID = 0x17
	TableMethodSemantics         TableID = 0x18
	TableMethodImpl              TableID = 0x19
	TableModuleRef               TableID = 0x1A
	TableTypeSpec                TableID = 0x1B
	TableImplMap                 TableID = 0x1C
	TableFieldRVA                TableID = 0x1D
	TableEncLog                  TableID = 0x1E
	TableEncMap                  TableID = 0x1F
	TableAssembly                TableID = 0x20
	TableAssemblyProcessor       TableID = 0x21
	TableAssemblyOS              TableID = 0x22
	TableAssemblyRef             TableID = 0x23
	TableAssemblyRefProcessor    TableID = 0x24
	TableAssemblyRefOS           TableID = 0x25
	TableFile                    TableID = 0x26
	TableExportedType            TableID = 0x27
	TableManifestResource        TableID = 0x28
	TableNestedClass             TableID = 0x29
	TableGenericParam            TableID = 0x2A
	TableMethodSpec              TableID = 0x2B
	TableGenericParamConstraint  TableID = 0x2C
)

// numTableIDs is the size of the valid/sorted bitmasks and row-count
// vector: 64 slots even though only 0x00-0x2C are defined.
const numTableIDs = 64

// tableIDNames maps each defined table ID to its ECMA-335 name, used in
// error messages and debug output.
var tableIDNames = map[TableID]string{
	TableModule:                 "Module",
	TableTypeRef:                "TypeRef",
	TableTypeDef:                "TypeDef",
	TableFieldPtr:               "FieldPtr",
	TableField:                  "Field",
	TableMethodPtr:              "MethodPtr",
	TableMethodDef:              "MethodDef",
	TableParamPtr:               "ParamPtr",
	TableParam:                  "Param",
	TableInterfaceImpl:          "InterfaceImpl",
	TableMemberRef:              "MemberRef",
	TableConstant:               "Constant",
	TableCustomAttribute:        "CustomAttribute",
	TableFieldMarshal:           "FieldMarshal",
	TableDeclSecurity:           "DeclSecurity",
	TableClassLayout:            "ClassLayout",
	TableFieldLayout:            "FieldLayout",
	TableStandAloneSig:          "StandAloneSig",
	TableEventMap:               "EventMap",
	TableEventPtr:               "EventPtr",
	TableEvent:                  "Event",
	TablePropertyMap:            "PropertyMap",
	TablePropertyPtr:            "PropertyPtr",
	TableProperty:               "Property",
	TableMethodSemantics:        "MethodSemantics",
	TableMethodImpl:             "MethodImpl",
	TableModuleRef:              "ModuleRef",
	TableTypeSpec:               "TypeSpec",
	TableImplMap:                "ImplMap",
	TableFieldRVA:               "FieldRva",
	TableEncLog:                 "EncLog",
	TableEncMap:                 "EncMap",
	TableAssembly:               "Assembly",
	TableAssemblyProcessor:      "AssemblyProcessor",
	TableAssemblyOS:             "AssemblyOs",
	TableAssemblyRef:            "AssemblyRef",
	TableAssemblyRefProcessor:   "AssemblyRefProcessor",
	TableAssemblyRefOS:          "AssemblyRefOs",
	TableFile:                   "File",
	TableExportedType:           "ExportedType",
	TableManifestResource:       "ManifestResource",
	TableNestedClass:            "NestedClass",
	TableGenericParam:           "GenericParam",
	TableMethodSpec:             "MethodSpec",
	TableGenericParamConstraint: "GenericParamConstraint",
}

func (id TableID) String() string {
	if name, ok := tableIDNames[id]; ok {
		return name
	}
	return "Unknown"
}

// ptrTables is the set of indirection tables only present when the
// tables stream is #- (uncompressed). SPEC_FULL.md §9 Decision D3.
var ptrTables = map[TableID]bool{
	TableFieldPtr:    true,
	TableMethodPtr:   true,
	TableParamPtr:    true,
	TableEventPtr:    true,
	TablePropertyPtr: true,
}

// unmodeledTables are retained only as raw row bytes, per SPEC_FULL.md
// §9 Decision D2 (spec.md §9 Open Questions, second bullet).
var unmodeledTables = map[TableID]bool{
	TableAssemblyProcessor: true,
	TableAssemblyOS:        true,
	TableAssemblyRefProcessor: true,
	TableAssemblyRefOS:     true,
	TableFile:              true,
	TableExportedType:      true,
	TableManifestResource:  true,
}
