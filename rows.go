// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

// Row types for the 33 modeled, non-pointer-indirection tables. Field
// names, order, and doc comments are grounded on the teacher's
// dotnet_metadata_tables.go; parse/write pairing and the use of a
// shared tableContext for index widths follow
// original_source/src/tables/rows.rs, generalized from its 10 modeled
// tables to all tables spec.md §4.6 lists.

// ModuleRow is a row of the Module table (0x00). There is exactly one
// in a well-formed assembly.
type ModuleRow struct {
	// Generation is reserved, shall be zero.
	Generation uint16
	// Name is an index into #Strings: the module's file name.
	Name uint32
	// Mvid is an index into #GUID: used to distinguish between
	// versions of the same module.
	Mvid uint32
	// EncID is an index into #GUID: reserved, used only during
	// Edit-and-Continue.
	EncID uint32
	// EncBaseID is an index into #GUID: reserved, used only during
	// Edit-and-Continue.
	EncBaseID uint32
}

func parseModuleRow(r *reader, ctx *tableContext) (ModuleRow, error) {
	var row ModuleRow
	var err error
	if row.Generation, err = r.readU16(); err != nil {
		return row, err
	}
	if row.Name, err = r.readIndex(ctx.stringWidth() == 4); err != nil {
		return row, err
	}
	if row.Mvid, err = r.readIndex(ctx.guidWidth() == 4); err != nil {
		return row, err
	}
	if row.EncID, err = r.readIndex(ctx.guidWidth() == 4); err != nil {
		return row, err
	}
	if row.EncBaseID, err = r.readIndex(ctx.guidWidth() == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row ModuleRow) write(w *writer, ctx *tableContext) {
	w.writeU16(row.Generation)
	w.writeIndex(row.Name, ctx.stringWidth() == 4)
	w.writeIndex(row.Mvid, ctx.guidWidth() == 4)
	w.writeIndex(row.EncID, ctx.guidWidth() == 4)
	w.writeIndex(row.EncBaseID, ctx.guidWidth() == 4)
}

// TypeRefRow is a row of the TypeRef table (0x01): a reference to a
// type defined outside the current module.
type TypeRefRow struct {
	// ResolutionScope is a ResolutionScope coded index: where the type
	// is defined (Module, ModuleRef, AssemblyRef, or TypeRef for
	// nested types).
	ResolutionScope uint32
	// TypeName is an index into #Strings.
	TypeName uint32
	// TypeNamespace is an index into #Strings.
	TypeNamespace uint32
}

func parseTypeRefRow(r *reader, ctx *tableContext) (TypeRefRow, error) {
	var row TypeRefRow
	var err error
	if row.ResolutionScope, err = r.readIndex(ctx.codedWidth(ResolutionScope) == 4); err != nil {
		return row, err
	}
	if row.TypeName, err = r.readIndex(ctx.stringWidth() == 4); err != nil {
		return row, err
	}
	if row.TypeNamespace, err = r.readIndex(ctx.stringWidth() == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row TypeRefRow) write(w *writer, ctx *tableContext) {
	w.writeIndex(row.ResolutionScope, ctx.codedWidth(ResolutionScope) == 4)
	w.writeIndex(row.TypeName, ctx.stringWidth() == 4)
	w.writeIndex(row.TypeNamespace, ctx.stringWidth() == 4)
}

// TypeDefRow is a row of the TypeDef table (0x02): a type defined in
// the current module.
type TypeDefRow struct {
	// Flags holds TypeAttributes (visibility, layout, semantics).
	Flags uint32
	// TypeName is an index into #Strings.
	TypeName uint32
	// TypeNamespace is an index into #Strings.
	TypeNamespace uint32
	// Extends is a TypeDefOrRef coded index: the base type, or the
	// null coded index for System.Object / interfaces.
	Extends uint32
	// FieldList is an index into the Field table: the first of a
	// contiguous run owned by this type.
	FieldList uint32
	// MethodList is an index into the MethodDef table: the first of a
	// contiguous run owned by this type.
	MethodList uint32
}

func parseTypeDefRow(r *reader, ctx *tableContext) (TypeDefRow, error) {
	var row TypeDefRow
	var err error
	if row.Flags, err = r.readU32(); err != nil {
		return row, err
	}
	if row.TypeName, err = r.readIndex(ctx.stringWidth() == 4); err != nil {
		return row, err
	}
	if row.TypeNamespace, err = r.readIndex(ctx.stringWidth() == 4); err != nil {
		return row, err
	}
	if row.Extends, err = r.readIndex(ctx.codedWidth(TypeDefOrRef) == 4); err != nil {
		return row, err
	}
	if row.FieldList, err = r.readIndex(ctx.simpleWidth(TableField) == 4); err != nil {
		return row, err
	}
	if row.MethodList, err = r.readIndex(ctx.simpleWidth(TableMethodDef) == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row TypeDefRow) write(w *writer, ctx *tableContext) {
	w.writeU32(row.Flags)
	w.writeIndex(row.TypeName, ctx.stringWidth() == 4)
	w.writeIndex(row.TypeNamespace, ctx.stringWidth() == 4)
	w.writeIndex(row.Extends, ctx.codedWidth(TypeDefOrRef) == 4)
	w.writeIndex(row.FieldList, ctx.simpleWidth(TableField) == 4)
	w.writeIndex(row.MethodList, ctx.simpleWidth(TableMethodDef) == 4)
}

// FieldRow is a row of the Field table (0x04).
type FieldRow struct {
	// Flags holds FieldAttributes.
	Flags uint16
	// Name is an index into #Strings.
	Name uint32
	// Signature is an index into #Blob: a FieldSig.
	Signature uint32
}

func parseFieldRow(r *reader, ctx *tableContext) (FieldRow, error) {
	var row FieldRow
	var err error
	if row.Flags, err = r.readU16(); err != nil {
		return row, err
	}
	if row.Name, err = r.readIndex(ctx.stringWidth() == 4); err != nil {
		return row, err
	}
	if row.Signature, err = r.readIndex(ctx.blobWidth() == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row FieldRow) write(w *writer, ctx *tableContext) {
	w.writeU16(row.Flags)
	w.writeIndex(row.Name, ctx.stringWidth() == 4)
	w.writeIndex(row.Signature, ctx.blobWidth() == 4)
}

// MethodDefRow is a row of the MethodDef table (0x06).
type MethodDefRow struct {
	// RVA is the method body's relative virtual address, or 0 for
	// abstract/runtime-provided methods. This library does not resolve
	// or decode method bodies; the RVA is retained opaquely.
	RVA uint32
	// ImplFlags holds MethodImplAttributes.
	ImplFlags uint16
	// Flags holds MethodAttributes.
	Flags uint16
	// Name is an index into #Strings.
	Name uint32
	// Signature is an index into #Blob: a MethodDefSig.
	Signature uint32
	// ParamList is an index into the Param table: the first of a
	// contiguous run owned by this method.
	ParamList uint32
}

func parseMethodDefRow(r *reader, ctx *tableContext) (MethodDefRow, error) {
	var row MethodDefRow
	var err error
	if row.RVA, err = r.readU32(); err != nil {
		return row, err
	}
	if row.ImplFlags, err = r.readU16(); err != nil {
		return row, err
	}
	if row.Flags, err = r.readU16(); err != nil {
		return row, err
	}
	if row.Name, err = r.readIndex(ctx.stringWidth() == 4); err != nil {
		return row, err
	}
	if row.Signature, err = r.readIndex(ctx.blobWidth() == 4); err != nil {
		return row, err
	}
	if row.ParamList, err = r.readIndex(ctx.simpleWidth(TableParam) == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row MethodDefRow) write(w *writer, ctx *tableContext) {
	w.writeU32(row.RVA)
	w.writeU16(row.ImplFlags)
	w.writeU16(row.Flags)
	w.writeIndex(row.Name, ctx.stringWidth() == 4)
	w.writeIndex(row.Signature, ctx.blobWidth() == 4)
	w.writeIndex(row.ParamList, ctx.simpleWidth(TableParam) == 4)
}

// ParamRow is a row of the Param table (0x08).
type ParamRow struct {
	// Flags holds ParamAttributes.
	Flags uint16
	// Sequence is the ordinal position: 0 for the return value, 1..N
	// for parameters in order.
	Sequence uint16
	// Name is an index into #Strings.
	Name uint32
}

func parseParamRow(r *reader, ctx *tableContext) (ParamRow, error) {
	var row ParamRow
	var err error
	if row.Flags, err = r.readU16(); err != nil {
		return row, err
	}
	if row.Sequence, err = r.readU16(); err != nil {
		return row, err
	}
	if row.Name, err = r.readIndex(ctx.stringWidth() == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row ParamRow) write(w *writer, ctx *tableContext) {
	w.writeU16(row.Flags)
	w.writeU16(row.Sequence)
	w.writeIndex(row.Name, ctx.stringWidth() == 4)
}

// InterfaceImplRow is a row of the InterfaceImpl table (0x09).
type InterfaceImplRow struct {
	// Class is an index into TypeDef: the implementing type.
	Class uint32
	// Interface is a TypeDefOrRef coded index: the implemented
	// interface.
	Interface uint32
}

func parseInterfaceImplRow(r *reader, ctx *tableContext) (InterfaceImplRow, error) {
	var row InterfaceImplRow
	var err error
	if row.Class, err = r.readIndex(ctx.simpleWidth(TableTypeDef) == 4); err != nil {
		return row, err
	}
	if row.Interface, err = r.readIndex(ctx.codedWidth(TypeDefOrRef) == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row InterfaceImplRow) write(w *writer, ctx *tableContext) {
	w.writeIndex(row.Class, ctx.simpleWidth(TableTypeDef) == 4)
	w.writeIndex(row.Interface, ctx.codedWidth(TypeDefOrRef) == 4)
}

// MemberRefRow is a row of the MemberRef table (0x0A): a reference to
// a field or method, possibly defined outside the current module.
type MemberRefRow struct {
	// Class is a MemberRefParent coded index.
	Class uint32
	// Name is an index into #Strings.
	Name uint32
	// Signature is an index into #Blob: a FieldSig or MethodRefSig.
	Signature uint32
}

func parseMemberRefRow(r *reader, ctx *tableContext) (MemberRefRow, error) {
	var row MemberRefRow
	var err error
	if row.Class, err = r.readIndex(ctx.codedWidth(MemberRefParent) == 4); err != nil {
		return row, err
	}
	if row.Name, err = r.readIndex(ctx.stringWidth() == 4); err != nil {
		return row, err
	}
	if row.Signature, err = r.readIndex(ctx.blobWidth() == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row MemberRefRow) write(w *writer, ctx *tableContext) {
	w.writeIndex(row.Class, ctx.codedWidth(MemberRefParent) == 4)
	w.writeIndex(row.Name, ctx.stringWidth() == 4)
	w.writeIndex(row.Signature, ctx.blobWidth() == 4)
}

// ConstantRow is a row of the Constant table (0x0B): a compile-time
// literal value attached to a Field, Param, or Property.
type ConstantRow struct {
	// Type is the ElementType byte of the constant's type.
	Type byte
	// Padding is unused, always zero.
	Padding byte
	// Parent is a HasConstant coded index.
	Parent uint32
	// Value is an index into #Blob: the literal's encoded bytes.
	Value uint32
}

func parseConstantRow(r *reader, ctx *tableContext) (ConstantRow, error) {
	var row ConstantRow
	var err error
	if row.Type, err = r.readU8(); err != nil {
		return row, err
	}
	if row.Padding, err = r.readU8(); err != nil {
		return row, err
	}
	if row.Parent, err = r.readIndex(ctx.codedWidth(HasConstant) == 4); err != nil {
		return row, err
	}
	if row.Value, err = r.readIndex(ctx.blobWidth() == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row ConstantRow) write(w *writer, ctx *tableContext) {
	w.writeU8(row.Type)
	w.writeU8(row.Padding)
	w.writeIndex(row.Parent, ctx.codedWidth(HasConstant) == 4)
	w.writeIndex(row.Value, ctx.blobWidth() == 4)
}

// CustomAttributeRow is a row of the CustomAttribute table (0x0C).
type CustomAttributeRow struct {
	// Parent is a HasCustomAttribute coded index: the annotated entity.
	Parent uint32
	// Type is a CustomAttributeType coded index: the attribute's
	// constructor.
	Type uint32
	// Value is an index into #Blob: the attribute's fixed and named
	// argument encoding.
	Value uint32
}

func parseCustomAttributeRow(r *reader, ctx *tableContext) (CustomAttributeRow, error) {
	var row CustomAttributeRow
	var err error
	if row.Parent, err = r.readIndex(ctx.codedWidth(HasCustomAttribute) == 4); err != nil {
		return row, err
	}
	if row.Type, err = r.readIndex(ctx.codedWidth(CustomAttributeType) == 4); err != nil {
		return row, err
	}
	if row.Value, err = r.readIndex(ctx.blobWidth() == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row CustomAttributeRow) write(w *writer, ctx *tableContext) {
	w.writeIndex(row.Parent, ctx.codedWidth(HasCustomAttribute) == 4)
	w.writeIndex(row.Type, ctx.codedWidth(CustomAttributeType) == 4)
	w.writeIndex(row.Value, ctx.blobWidth() == 4)
}

// FieldMarshalRow is a row of the FieldMarshal table (0x0D).
type FieldMarshalRow struct {
	// Parent is a HasFieldMarshal coded index.
	Parent uint32
	// NativeType is an index into #Blob: the marshaling descriptor.
	NativeType uint32
}

func parseFieldMarshalRow(r *reader, ctx *tableContext) (FieldMarshalRow, error) {
	var row FieldMarshalRow
	var err error
	if row.Parent, err = r.readIndex(ctx.codedWidth(HasFieldMarshal) == 4); err != nil {
		return row, err
	}
	if row.NativeType, err = r.readIndex(ctx.blobWidth() == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row FieldMarshalRow) write(w *writer, ctx *tableContext) {
	w.writeIndex(row.Parent, ctx.codedWidth(HasFieldMarshal) == 4)
	w.writeIndex(row.NativeType, ctx.blobWidth() == 4)
}

// DeclSecurityRow is a row of the DeclSecurity table (0x0E).
type DeclSecurityRow struct {
	// Action is a SecurityAction value.
	Action uint16
	// Parent is a HasDeclSecurity coded index.
	Parent uint32
	// PermissionSet is an index into #Blob.
	PermissionSet uint32
}

func parseDeclSecurityRow(r *reader, ctx *tableContext) (DeclSecurityRow, error) {
	var row DeclSecurityRow
	var err error
	if row.Action, err = r.readU16(); err != nil {
		return row, err
	}
	if row.Parent, err = r.readIndex(ctx.codedWidth(HasDeclSecurity) == 4); err != nil {
		return row, err
	}
	if row.PermissionSet, err = r.readIndex(ctx.blobWidth() == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row DeclSecurityRow) write(w *writer, ctx *tableContext) {
	w.writeU16(row.Action)
	w.writeIndex(row.Parent, ctx.codedWidth(HasDeclSecurity) == 4)
	w.writeIndex(row.PermissionSet, ctx.blobWidth() == 4)
}

// ClassLayoutRow is a row of the ClassLayout table (0x0F).
type ClassLayoutRow struct {
	PackingSize uint16
	ClassSize   uint32
	// Parent is an index into TypeDef.
	Parent uint32
}

func parseClassLayoutRow(r *reader, ctx *tableContext) (ClassLayoutRow, error) {
	var row ClassLayoutRow
	var err error
	if row.PackingSize, err = r.readU16(); err != nil {
		return row, err
	}
	if row.ClassSize, err = r.readU32(); err != nil {
		return row, err
	}
	if row.Parent, err = r.readIndex(ctx.simpleWidth(TableTypeDef) == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row ClassLayoutRow) write(w *writer, ctx *tableContext) {
	w.writeU16(row.PackingSize)
	w.writeU32(row.ClassSize)
	w.writeIndex(row.Parent, ctx.simpleWidth(TableTypeDef) == 4)
}

// FieldLayoutRow is a row of the FieldLayout table (0x10).
type FieldLayoutRow struct {
	Offset uint32
	// Field is an index into Field.
	Field uint32
}

func parseFieldLayoutRow(r *reader, ctx *tableContext) (FieldLayoutRow, error) {
	var row FieldLayoutRow
	var err error
	if row.Offset, err = r.readU32(); err != nil {
		return row, err
	}
	if row.Field, err = r.readIndex(ctx.simpleWidth(TableField) == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row FieldLayoutRow) write(w *writer, ctx *tableContext) {
	w.writeU32(row.Offset)
	w.writeIndex(row.Field, ctx.simpleWidth(TableField) == 4)
}

// StandAloneSigRow is a row of the StandAloneSig table (0x11): used
// for call-site signatures and local-variable signatures of methods
// with no MethodDef signature scope.
type StandAloneSigRow struct {
	// Signature is an index into #Blob.
	Signature uint32
}

func parseStandAloneSigRow(r *reader, ctx *tableContext) (StandAloneSigRow, error) {
	var row StandAloneSigRow
	var err error
	if row.Signature, err = r.readIndex(ctx.blobWidth() == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row StandAloneSigRow) write(w *writer, ctx *tableContext) {
	w.writeIndex(row.Signature, ctx.blobWidth() == 4)
}

// EventMapRow is a row of the EventMap table (0x12): associates a
// type with its contiguous run of Event rows.
type EventMapRow struct {
	// Parent is an index into TypeDef.
	Parent uint32
	// EventList is an index into Event: the first of a contiguous run.
	EventList uint32
}

func parseEventMapRow(r *reader, ctx *tableContext) (EventMapRow, error) {
	var row EventMapRow
	var err error
	if row.Parent, err = r.readIndex(ctx.simpleWidth(TableTypeDef) == 4); err != nil {
		return row, err
	}
	if row.EventList, err = r.readIndex(ctx.simpleWidth(TableEvent) == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row EventMapRow) write(w *writer, ctx *tableContext) {
	w.writeIndex(row.Parent, ctx.simpleWidth(TableTypeDef) == 4)
	w.writeIndex(row.EventList, ctx.simpleWidth(TableEvent) == 4)
}

// EventRow is a row of the Event table (0x14).
type EventRow struct {
	// Flags holds EventAttributes.
	Flags uint16
	// Name is an index into #Strings.
	Name uint32
	// EventType is a TypeDefOrRef coded index: the event's delegate
	// type.
	EventType uint32
}

func parseEventRow(r *reader, ctx *tableContext) (EventRow, error) {
	var row EventRow
	var err error
	if row.Flags, err = r.readU16(); err != nil {
		return row, err
	}
	if row.Name, err = r.readIndex(ctx.stringWidth() == 4); err != nil {
		return row, err
	}
	if row.EventType, err = r.readIndex(ctx.codedWidth(TypeDefOrRef) == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row EventRow) write(w *writer, ctx *tableContext) {
	w.writeU16(row.Flags)
	w.writeIndex(row.Name, ctx.stringWidth() == 4)
	w.writeIndex(row.EventType, ctx.codedWidth(TypeDefOrRef) == 4)
}

// PropertyMapRow is a row of the PropertyMap table (0x15).
type PropertyMapRow struct {
	// Parent is an index into TypeDef.
	Parent uint32
	// PropertyList is an index into Property: the first of a
	// contiguous run.
	PropertyList uint32
}

func parsePropertyMapRow(r *reader, ctx *tableContext) (PropertyMapRow, error) {
	var row PropertyMapRow
	var err error
	if row.Parent, err = r.readIndex(ctx.simpleWidth(TableTypeDef) == 4); err != nil {
		return row, err
	}
	if row.PropertyList, err = r.readIndex(ctx.simpleWidth(TableProperty) == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row PropertyMapRow) write(w *writer, ctx *tableContext) {
	w.writeIndex(row.Parent, ctx.simpleWidth(TableTypeDef) == 4)
	w.writeIndex(row.PropertyList, ctx.simpleWidth(TableProperty) == 4)
}

// PropertyRow is a row of the Property table (0x17).
type PropertyRow struct {
	// Flags holds PropertyAttributes.
	Flags uint16
	// Name is an index into #Strings.
	Name uint32
	// Type is an index into #Blob: a PropertySig, despite the name
	// (ECMA-335 calls this field "Type" even though it encodes a full
	// signature, not a bare type token).
	Type uint32
}

func parsePropertyRow(r *reader, ctx *tableContext) (PropertyRow, error) {
	var row PropertyRow
	var err error
	if row.Flags, err = r.readU16(); err != nil {
		return row, err
	}
	if row.Name, err = r.readIndex(ctx.stringWidth() == 4); err != nil {
		return row, err
	}
	if row.Type, err = r.readIndex(ctx.blobWidth() == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row PropertyRow) write(w *writer, ctx *tableContext) {
	w.writeU16(row.Flags)
	w.writeIndex(row.Name, ctx.stringWidth() == 4)
	w.writeIndex(row.Type, ctx.blobWidth() == 4)
}

// MethodSemanticsRow is a row of the MethodSemantics table (0x18):
// binds an accessor method to the Event or Property it implements.
type MethodSemanticsRow struct {
	// Semantics holds MethodSemanticsAttributes (Setter, Getter,
	// Other, AddOn, RemoveOn, Fire).
	Semantics uint16
	// Method is an index into MethodDef.
	Method uint32
	// Association is a HasSemantics coded index.
	Association uint32
}

func parseMethodSemanticsRow(r *reader, ctx *tableContext) (MethodSemanticsRow, error) {
	var row MethodSemanticsRow
	var err error
	if row.Semantics, err = r.readU16(); err != nil {
		return row, err
	}
	if row.Method, err = r.readIndex(ctx.simpleWidth(TableMethodDef) == 4); err != nil {
		return row, err
	}
	if row.Association, err = r.readIndex(ctx.codedWidth(HasSemantics) == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row MethodSemanticsRow) write(w *writer, ctx *tableContext) {
	w.writeU16(row.Semantics)
	w.writeIndex(row.Method, ctx.simpleWidth(TableMethodDef) == 4)
	w.writeIndex(row.Association, ctx.codedWidth(HasSemantics) == 4)
}

// MethodImplRow is a row of the MethodImpl table (0x19): an explicit
// interface or virtual method override.
type MethodImplRow struct {
	// Class is an index into TypeDef.
	Class uint32
	// Body is a MethodDefOrRef coded index: the overriding method.
	Body uint32
	// Decl is a MethodDefOrRef coded index: the overridden method.
	Decl uint32
}

func parseMethodImplRow(r *reader, ctx *tableContext) (MethodImplRow, error) {
	var row MethodImplRow
	var err error
	if row.Class, err = r.readIndex(ctx.simpleWidth(TableTypeDef) == 4); err != nil {
		return row, err
	}
	if row.Body, err = r.readIndex(ctx.codedWidth(MethodDefOrRef) == 4); err != nil {
		return row, err
	}
	if row.Decl, err = r.readIndex(ctx.codedWidth(MethodDefOrRef) == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row MethodImplRow) write(w *writer, ctx *tableContext) {
	w.writeIndex(row.Class, ctx.simpleWidth(TableTypeDef) == 4)
	w.writeIndex(row.Body, ctx.codedWidth(MethodDefOrRef) == 4)
	w.writeIndex(row.Decl, ctx.codedWidth(MethodDefOrRef) == 4)
}

// ModuleRefRow is a row of the ModuleRef table (0x1A): a reference to
// an unmanaged module consumed via P/Invoke.
type ModuleRefRow struct {
	// Name is an index into #Strings.
	Name uint32
}

func parseModuleRefRow(r *reader, ctx *tableContext) (ModuleRefRow, error) {
	var row ModuleRefRow
	var err error
	if row.Name, err = r.readIndex(ctx.stringWidth() == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row ModuleRefRow) write(w *writer, ctx *tableContext) {
	w.writeIndex(row.Name, ctx.stringWidth() == 4)
}

// TypeSpecRow is a row of the TypeSpec table (0x1B): a type signature
// too complex to represent as a TypeDefOrRef (arrays, generic
// instantiations, pointers).
type TypeSpecRow struct {
	// Signature is an index into #Blob: a TypeSpec signature.
	Signature uint32
}

func parseTypeSpecRow(r *reader, ctx *tableContext) (TypeSpecRow, error) {
	var row TypeSpecRow
	var err error
	if row.Signature, err = r.readIndex(ctx.blobWidth() == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row TypeSpecRow) write(w *writer, ctx *tableContext) {
	w.writeIndex(row.Signature, ctx.blobWidth() == 4)
}

// ImplMapRow is a row of the ImplMap table (0x1C): a P/Invoke binding.
type ImplMapRow struct {
	// MappingFlags holds PInvokeAttributes.
	MappingFlags uint16
	// MemberForwarded is a MemberForwarded coded index.
	MemberForwarded uint32
	// ImportName is an index into #Strings.
	ImportName uint32
	// ImportScope is an index into ModuleRef.
	ImportScope uint32
}

func parseImplMapRow(r *reader, ctx *tableContext) (ImplMapRow, error) {
	var row ImplMapRow
	var err error
	if row.MappingFlags, err = r.readU16(); err != nil {
		return row, err
	}
	if row.MemberForwarded, err = r.readIndex(ctx.codedWidth(MemberForwarded) == 4); err != nil {
		return row, err
	}
	if row.ImportName, err = r.readIndex(ctx.stringWidth() == 4); err != nil {
		return row, err
	}
	if row.ImportScope, err = r.readIndex(ctx.simpleWidth(TableModuleRef) == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row ImplMapRow) write(w *writer, ctx *tableContext) {
	w.writeU16(row.MappingFlags)
	w.writeIndex(row.MemberForwarded, ctx.codedWidth(MemberForwarded) == 4)
	w.writeIndex(row.ImportName, ctx.stringWidth() == 4)
	w.writeIndex(row.ImportScope, ctx.simpleWidth(TableModuleRef) == 4)
}

// FieldRVARow is a row of the FieldRVA table (0x1D): maps a field with
// an initial value (e.g. a RVA static) to its data's relative virtual
// address.
type FieldRVARow struct {
	RVA uint32
	// Field is an index into Field.
	Field uint32
}

func parseFieldRVARow(r *reader, ctx *tableContext) (FieldRVARow, error) {
	var row FieldRVARow
	var err error
	if row.RVA, err = r.readU32(); err != nil {
		return row, err
	}
	if row.Field, err = r.readIndex(ctx.simpleWidth(TableField) == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row FieldRVARow) write(w *writer, ctx *tableContext) {
	w.writeU32(row.RVA)
	w.writeIndex(row.Field, ctx.simpleWidth(TableField) == 4)
}

// EncLogRow is a row of the EncLog table (0x1E), used only during
// Edit-and-Continue.
type EncLogRow struct {
	Token    uint32
	FuncCode uint32
}

func parseEncLogRow(r *reader, ctx *tableContext) (EncLogRow, error) {
	var row EncLogRow
	var err error
	if row.Token, err = r.readU32(); err != nil {
		return row, err
	}
	if row.FuncCode, err = r.readU32(); err != nil {
		return row, err
	}
	return row, nil
}

func (row EncLogRow) write(w *writer, ctx *tableContext) {
	w.writeU32(row.Token)
	w.writeU32(row.FuncCode)
}

// EncMapRow is a row of the EncMap table (0x1F), used only during
// Edit-and-Continue.
type EncMapRow struct {
	Token uint32
}

func parseEncMapRow(r *reader, ctx *tableContext) (EncMapRow, error) {
	var row EncMapRow
	var err error
	if row.Token, err = r.readU32(); err != nil {
		return row, err
	}
	return row, nil
}

func (row EncMapRow) write(w *writer, ctx *tableContext) {
	w.writeU32(row.Token)
}

// AssemblyRow is a row of the Assembly table (0x20): at most one per
// module, declaring its own identity.
type AssemblyRow struct {
	// HashAlgID identifies the algorithm used to hash the assembly's
	// files (AssemblyHashAlgorithm).
	HashAlgID uint32
	MajorVersion uint16
	MinorVersion uint16
	BuildNumber  uint16
	RevisionNumber uint16
	// Flags holds AssemblyFlags.
	Flags uint32
	// PublicKey is an index into #Blob.
	PublicKey uint32
	// Name is an index into #Strings.
	Name uint32
	// Culture is an index into #Strings.
	Culture uint32
}

func parseAssemblyRow(r *reader, ctx *tableContext) (AssemblyRow, error) {
	var row AssemblyRow
	var err error
	if row.HashAlgID, err = r.readU32(); err != nil {
		return row, err
	}
	if row.MajorVersion, err = r.readU16(); err != nil {
		return row, err
	}
	if row.MinorVersion, err = r.readU16(); err != nil {
		return row, err
	}
	if row.BuildNumber, err = r.readU16(); err != nil {
		return row, err
	}
	if row.RevisionNumber, err = r.readU16(); err != nil {
		return row, err
	}
	if row.Flags, err = r.readU32(); err != nil {
		return row, err
	}
	if row.PublicKey, err = r.readIndex(ctx.blobWidth() == 4); err != nil {
		return row, err
	}
	if row.Name, err = r.readIndex(ctx.stringWidth() == 4); err != nil {
		return row, err
	}
	if row.Culture, err = r.readIndex(ctx.stringWidth() == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row AssemblyRow) write(w *writer, ctx *tableContext) {
	w.writeU32(row.HashAlgID)
	w.writeU16(row.MajorVersion)
	w.writeU16(row.MinorVersion)
	w.writeU16(row.BuildNumber)
	w.writeU16(row.RevisionNumber)
	w.writeU32(row.Flags)
	w.writeIndex(row.PublicKey, ctx.blobWidth() == 4)
	w.writeIndex(row.Name, ctx.stringWidth() == 4)
	w.writeIndex(row.Culture, ctx.stringWidth() == 4)
}

// AssemblyRefRow is a row of the AssemblyRef table (0x23): a reference
// to an external assembly dependency.
type AssemblyRefRow struct {
	MajorVersion   uint16
	MinorVersion   uint16
	BuildNumber    uint16
	RevisionNumber uint16
	// Flags holds AssemblyFlags.
	Flags uint32
	// PublicKeyOrToken is an index into #Blob: a full public key, or
	// (the common case) an 8-byte public-key token.
	PublicKeyOrToken uint32
	// Name is an index into #Strings.
	Name uint32
	// Culture is an index into #Strings.
	Culture uint32
	// HashValue is an index into #Blob: an optional hash of the
	// referenced assembly's bytes.
	HashValue uint32
}

func parseAssemblyRefRow(r *reader, ctx *tableContext) (AssemblyRefRow, error) {
	var row AssemblyRefRow
	var err error
	if row.MajorVersion, err = r.readU16(); err != nil {
		return row, err
	}
	if row.MinorVersion, err = r.readU16(); err != nil {
		return row, err
	}
	if row.BuildNumber, err = r.readU16(); err != nil {
		return row, err
	}
	if row.RevisionNumber, err = r.readU16(); err != nil {
		return row, err
	}
	if row.Flags, err = r.readU32(); err != nil {
		return row, err
	}
	if row.PublicKeyOrToken, err = r.readIndex(ctx.blobWidth() == 4); err != nil {
		return row, err
	}
	if row.Name, err = r.readIndex(ctx.stringWidth() == 4); err != nil {
		return row, err
	}
	if row.Culture, err = r.readIndex(ctx.stringWidth() == 4); err != nil {
		return row, err
	}
	if row.HashValue, err = r.readIndex(ctx.blobWidth() == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row AssemblyRefRow) write(w *writer, ctx *tableContext) {
	w.writeU16(row.MajorVersion)
	w.writeU16(row.MinorVersion)
	w.writeU16(row.BuildNumber)
	w.writeU16(row.RevisionNumber)
	w.writeU32(row.Flags)
	w.writeIndex(row.PublicKeyOrToken, ctx.blobWidth() == 4)
	w.writeIndex(row.Name, ctx.stringWidth() == 4)
	w.writeIndex(row.Culture, ctx.stringWidth() == 4)
	w.writeIndex(row.HashValue, ctx.blobWidth() == 4)
}

// NestedClassRow is a row of the NestedClass table (0x29).
type NestedClassRow struct {
	// Nested is an index into TypeDef.
	Nested uint32
	// Enclosing is an index into TypeDef.
	Enclosing uint32
}

func parseNestedClassRow(r *reader, ctx *tableContext) (NestedClassRow, error) {
	var row NestedClassRow
	var err error
	if row.Nested, err = r.readIndex(ctx.simpleWidth(TableTypeDef) == 4); err != nil {
		return row, err
	}
	if row.Enclosing, err = r.readIndex(ctx.simpleWidth(TableTypeDef) == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row NestedClassRow) write(w *writer, ctx *tableContext) {
	w.writeIndex(row.Nested, ctx.simpleWidth(TableTypeDef) == 4)
	w.writeIndex(row.Enclosing, ctx.simpleWidth(TableTypeDef) == 4)
}

// GenericParamRow is a row of the GenericParam table (0x2A).
type GenericParamRow struct {
	// Number is the 0-based ordinal of the generic parameter.
	Number uint16
	// Flags holds GenericParamAttributes (variance, constraints).
	Flags uint16
	// Owner is a TypeOrMethodDef coded index.
	Owner uint32
	// Name is an index into #Strings.
	Name uint32
}

func parseGenericParamRow(r *reader, ctx *tableContext) (GenericParamRow, error) {
	var row GenericParamRow
	var err error
	if row.Number, err = r.readU16(); err != nil {
		return row, err
	}
	if row.Flags, err = r.readU16(); err != nil {
		return row, err
	}
	if row.Owner, err = r.readIndex(ctx.codedWidth(TypeOrMethodDef) == 4); err != nil {
		return row, err
	}
	if row.Name, err = r.readIndex(ctx.stringWidth() == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row GenericParamRow) write(w *writer, ctx *tableContext) {
	w.writeU16(row.Number)
	w.writeU16(row.Flags)
	w.writeIndex(row.Owner, ctx.codedWidth(TypeOrMethodDef) == 4)
	w.writeIndex(row.Name, ctx.stringWidth() == 4)
}

// MethodSpecRow is a row of the MethodSpec table (0x2B): a generic
// method instantiation.
type MethodSpecRow struct {
	// Method is a MethodDefOrRef coded index: the generic method
	// definition being instantiated.
	Method uint32
	// Instantiation is an index into #Blob: the type-argument list.
	Instantiation uint32
}

func parseMethodSpecRow(r *reader, ctx *tableContext) (MethodSpecRow, error) {
	var row MethodSpecRow
	var err error
	if row.Method, err = r.readIndex(ctx.codedWidth(MethodDefOrRef) == 4); err != nil {
		return row, err
	}
	if row.Instantiation, err = r.readIndex(ctx.blobWidth() == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row MethodSpecRow) write(w *writer, ctx *tableContext) {
	w.writeIndex(row.Method, ctx.codedWidth(MethodDefOrRef) == 4)
	w.writeIndex(row.Instantiation, ctx.blobWidth() == 4)
}

// GenericParamConstraintRow is a row of the GenericParamConstraint
// table (0x2C).
type GenericParamConstraintRow struct {
	// Owner is an index into GenericParam.
	Owner uint32
	// Constraint is a TypeDefOrRef coded index: a base type or
	// interface the generic parameter must satisfy.
	Constraint uint32
}

func parseGenericParamConstraintRow(r *reader, ctx *tableContext) (GenericParamConstraintRow, error) {
	var row GenericParamConstraintRow
	var err error
	if row.Owner, err = r.readIndex(ctx.simpleWidth(TableGenericParam) == 4); err != nil {
		return row, err
	}
	if row.Constraint, err = r.readIndex(ctx.codedWidth(TypeDefOrRef) == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row GenericParamConstraintRow) write(w *writer, ctx *tableContext) {
	w.writeIndex(row.Owner, ctx.simpleWidth(TableGenericParam) == 4)
	w.writeIndex(row.Constraint, ctx.codedWidth(TypeDefOrRef) == 4)
}
