// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

// Signature parser for the blobs referenced by Field.Signature,
// MethodDef.Signature, MemberRef.Signature, Property.Type,
// StandAloneSig.Signature and TypeSpec.Signature. MethodSpec.Instantiation
// blobs (calling convention 0x0A) have no parser here.
// Grounded on original_source/src/signature.rs's ElementType table and
// recursive TypeSig grammar; the method-signature sentinel handling
// implements SPEC_FULL.md §9 Decision D1 rather than the source's
// per-parameter peek.

// ElementType tags the recursive type-signature grammar, ECMA-335
// §II.23.1.16.
type ElementType byte

const (
	ElementTypeVoid         ElementType = 0x01
	ElementTypeBoolean      ElementType = 0x02
	ElementTypeChar         ElementType = 0x03
	ElementTypeI1           ElementType = 0x04
	ElementTypeU1           ElementType = 0x05
	ElementTypeI2           ElementType = 0x06
	ElementTypeU2           ElementType = 0x07
	ElementTypeI4           ElementType = 0x08
	ElementTypeU4           ElementType = 0x09
	ElementTypeI8           ElementType = 0x0A
	ElementTypeU8           ElementType = 0x0B
	ElementTypeR4           ElementType = 0x0C
	ElementTypeR8           ElementType = 0x0D
	ElementTypeString       ElementType = 0x0E
	ElementTypePtr          ElementType = 0x0F
	ElementTypeByRef        ElementType = 0x10
	ElementTypeValueType    ElementType = 0x11
	ElementTypeClass        ElementType = 0x12
	ElementTypeVar          ElementType = 0x13
	ElementTypeArray        ElementType = 0x14
	ElementTypeGenericInst  ElementType = 0x15
	ElementTypeTypedByRef   ElementType = 0x16
	ElementTypeIntPtr       ElementType = 0x18
	ElementTypeUIntPtr      ElementType = 0x19
	ElementTypeFnPtr        ElementType = 0x1B
	ElementTypeObject       ElementType = 0x1C
	ElementTypeSzArray      ElementType = 0x1D
	ElementTypeMVar         ElementType = 0x1E
	ElementTypeCModReqd     ElementType = 0x1F
	ElementTypeCModOpt      ElementType = 0x20
	ElementTypeSentinel     ElementType = 0x41
	ElementTypePinned       ElementType = 0x45
)

// Calling-convention bits, low nibble + flag bits of the leading
// signature byte, ECMA-335 §II.23.2.1-3.
const (
	callingConvDefault  = 0x00
	callingConvVarArg   = 0x05
	callingConvField    = 0x06
	callingConvLocalSig = 0x07
	callingConvProperty = 0x08
	callingConvMaskKind = 0x0F

	callingConvGeneric    = 0x10
	callingConvHasThis    = 0x20
	callingConvExplicitThis = 0x40
)

// TypeSig is a parsed signature type, a tagged sum over the grammar in
// spec.md §4.7.
type TypeSig struct {
	// Kind is one of the ElementType constants identifying which
	// fields below are meaningful.
	Kind ElementType
	// Token is the coded TypeDefOrRef token for Class/ValueType, left
	// shifted as encoded (consumers treat it opaquely per spec.md §4.7).
	Token uint32
	// Elem is the nested type for Ptr, ByRef, SzArray, Pinned,
	// CModReqd/CModOpt, and the element type of Array.
	Elem *TypeSig
	// ArrayRank is the compressed rank for Array.
	ArrayRank uint32
	// ArraySizes are the compressed per-dimension sizes for Array.
	ArraySizes []uint32
	// ArrayLoBounds are the signed per-dimension lower bounds for Array.
	ArrayLoBounds []int32
	// GenericIsValueType distinguishes GENERICINST's 0x11/0x12 marker.
	GenericIsValueType bool
	// GenericArgs are the instantiated type arguments for GenericInst.
	GenericArgs []TypeSig
	// VarIndex is the compressed index for Var/MVar.
	VarIndex uint32
	// FnPtrSig is the nested method signature for FnPtr.
	FnPtrSig *MethodSig
	// ModifierToken is the compressed coded token for CModReqd/CModOpt.
	ModifierToken uint32
}

// parseTypeSig recursively parses a TypeSig starting at the reader's
// current cursor.
func parseTypeSig(r *reader) (TypeSig, error) {
	b, err := r.readU8()
	if err != nil {
		return TypeSig{}, err
	}
	et := ElementType(b)
	switch et {
	case ElementTypeVoid, ElementTypeBoolean, ElementTypeChar,
		ElementTypeI1, ElementTypeU1, ElementTypeI2, ElementTypeU2,
		ElementTypeI4, ElementTypeU4, ElementTypeI8, ElementTypeU8,
		ElementTypeR4, ElementTypeR8, ElementTypeString,
		ElementTypeTypedByRef, ElementTypeIntPtr, ElementTypeUIntPtr,
		ElementTypeObject:
		return TypeSig{Kind: et}, nil

	case ElementTypeClass, ElementTypeValueType:
		tok, err := r.readCompressedUint()
		if err != nil {
			return TypeSig{}, err
		}
		return TypeSig{Kind: et, Token: tok}, nil

	case ElementTypePtr, ElementTypeByRef, ElementTypeSzArray, ElementTypePinned:
		nested, err := parseTypeSig(r)
		if err != nil {
			return TypeSig{}, err
		}
		return TypeSig{Kind: et, Elem: &nested}, nil

	case ElementTypeArray:
		elem, err := parseTypeSig(r)
		if err != nil {
			return TypeSig{}, err
		}
		rank, err := r.readCompressedUint()
		if err != nil {
			return TypeSig{}, err
		}
		sizeCount, err := r.readCompressedUint()
		if err != nil {
			return TypeSig{}, err
		}
		sizes := make([]uint32, sizeCount)
		for i := range sizes {
			if sizes[i], err = r.readCompressedUint(); err != nil {
				return TypeSig{}, err
			}
		}
		loCount, err := r.readCompressedUint()
		if err != nil {
			return TypeSig{}, err
		}
		los := make([]int32, loCount)
		for i := range los {
			if los[i], err = r.readCompressedInt(); err != nil {
				return TypeSig{}, err
			}
		}
		return TypeSig{Kind: et, Elem: &elem, ArrayRank: rank, ArraySizes: sizes, ArrayLoBounds: los}, nil

	case ElementTypeGenericInst:
		marker, err := r.readU8()
		if err != nil {
			return TypeSig{}, err
		}
		tok, err := r.readCompressedUint()
		if err != nil {
			return TypeSig{}, err
		}
		argCount, err := r.readCompressedUint()
		if err != nil {
			return TypeSig{}, err
		}
		args := make([]TypeSig, argCount)
		for i := range args {
			if args[i], err = parseTypeSig(r); err != nil {
				return TypeSig{}, err
			}
		}
		return TypeSig{
			Kind: et, Token: tok,
			GenericIsValueType: marker == byte(ElementTypeValueType),
			GenericArgs:        args,
		}, nil

	case ElementTypeVar, ElementTypeMVar:
		idx, err := r.readCompressedUint()
		if err != nil {
			return TypeSig{}, err
		}
		return TypeSig{Kind: et, VarIndex: idx}, nil

	case ElementTypeFnPtr:
		sig, err := parseMethodSig(r)
		if err != nil {
			return TypeSig{}, err
		}
		return TypeSig{Kind: et, FnPtrSig: &sig}, nil

	case ElementTypeCModReqd, ElementTypeCModOpt:
		tok, err := r.readCompressedUint()
		if err != nil {
			return TypeSig{}, err
		}
		nested, err := parseTypeSig(r)
		if err != nil {
			return TypeSig{}, err
		}
		return TypeSig{Kind: et, ModifierToken: tok, Elem: &nested}, nil

	default:
		return TypeSig{}, errInvalidBlob(r.position() - 1)
	}
}

func (t TypeSig) write(w *writer) {
	w.writeU8(byte(t.Kind))
	switch t.Kind {
	case ElementTypeClass, ElementTypeValueType:
		w.writeCompressedUint(t.Token)
	case ElementTypePtr, ElementTypeByRef, ElementTypeSzArray, ElementTypePinned:
		t.Elem.write(w)
	case ElementTypeArray:
		t.Elem.write(w)
		w.writeCompressedUint(t.ArrayRank)
		w.writeCompressedUint(uint32(len(t.ArraySizes)))
		for _, s := range t.ArraySizes {
			w.writeCompressedUint(s)
		}
		w.writeCompressedUint(uint32(len(t.ArrayLoBounds)))
		for _, lo := range t.ArrayLoBounds {
			w.writeCompressedInt(lo)
		}
	case ElementTypeGenericInst:
		if t.GenericIsValueType {
			w.writeU8(byte(ElementTypeValueType))
		} else {
			w.writeU8(byte(ElementTypeClass))
		}
		w.writeCompressedUint(t.Token)
		w.writeCompressedUint(uint32(len(t.GenericArgs)))
		for _, a := range t.GenericArgs {
			a.write(w)
		}
	case ElementTypeVar, ElementTypeMVar:
		w.writeCompressedUint(t.VarIndex)
	case ElementTypeFnPtr:
		t.FnPtrSig.write(w)
	case ElementTypeCModReqd, ElementTypeCModOpt:
		w.writeCompressedUint(t.ModifierToken)
		t.Elem.write(w)
	}
}

// MethodSig is a parsed method, property, or local-variable signature
// depending on its CallingConvention.
type MethodSig struct {
	CallingConvention byte
	GenericParamCount uint32
	ReturnType        TypeSig
	Params            []TypeSig
	// Sentinel is the index of the first varargs-only parameter (i.e.
	// the position immediately after the 0x41 marker), and whether a
	// sentinel was present at all. SPEC_FULL.md §9 Decision D1: at
	// most one sentinel is recognized, matching the ECMA-335 grammar
	// rather than the buggy per-parameter peek some implementations
	// carry over from hand-translating the reference parser.
	Sentinel      int
	SentinelFound bool
}

func (s MethodSig) hasThis() bool    { return s.CallingConvention&callingConvHasThis != 0 }
func (s MethodSig) isGeneric() bool  { return s.CallingConvention&callingConvGeneric != 0 }
func (s MethodSig) kind() byte       { return s.CallingConvention & callingConvMaskKind }

// parseMethodSig parses a method, property, or local-variable
// signature depending on the leading calling-convention byte, per
// spec.md §4.7's top-level dispatch.
func parseMethodSig(r *reader) (MethodSig, error) {
	conv, err := r.readU8()
	if err != nil {
		return MethodSig{}, err
	}
	sig := MethodSig{CallingConvention: conv}
	switch conv & callingConvMaskKind {
	case callingConvField:
		t, err := parseTypeSig(r)
		if err != nil {
			return MethodSig{}, err
		}
		sig.ReturnType = t
		return sig, nil

	case callingConvLocalSig:
		count, err := r.readCompressedUint()
		if err != nil {
			return MethodSig{}, err
		}
		sig.Params = make([]TypeSig, 0, count)
		for i := uint32(0); i < count; i++ {
			t, err := parseLocalVarType(r)
			if err != nil {
				return MethodSig{}, err
			}
			sig.Params = append(sig.Params, t)
		}
		return sig, nil

	case callingConvProperty:
		count, err := r.readCompressedUint()
		if err != nil {
			return MethodSig{}, err
		}
		ret, err := parseTypeSig(r)
		if err != nil {
			return MethodSig{}, err
		}
		sig.ReturnType = ret
		sig.Params = make([]TypeSig, 0, count)
		for i := uint32(0); i < count; i++ {
			t, err := parseTypeSig(r)
			if err != nil {
				return MethodSig{}, err
			}
			sig.Params = append(sig.Params, t)
		}
		return sig, nil

	default:
		if sig.isGeneric() {
			gpc, err := r.readCompressedUint()
			if err != nil {
				return MethodSig{}, err
			}
			sig.GenericParamCount = gpc
		}
		paramCount, err := r.readCompressedUint()
		if err != nil {
			return MethodSig{}, err
		}
		ret, err := parseTypeSig(r)
		if err != nil {
			return MethodSig{}, err
		}
		sig.ReturnType = ret
		sig.Params = make([]TypeSig, 0, paramCount)
		for i := uint32(0); i < paramCount; i++ {
			if !sig.SentinelFound {
				b, err := r.peekU8()
				if err == nil && ElementType(b) == ElementTypeSentinel {
					r.readU8()
					sig.SentinelFound = true
					sig.Sentinel = len(sig.Params)
				}
			}
			t, err := parseTypeSig(r)
			if err != nil {
				return MethodSig{}, err
			}
			sig.Params = append(sig.Params, t)
		}
		return sig, nil
	}
}

// parseLocalVarType parses one entry of a local-variable signature,
// each of which may carry a PINNED prefix before its type.
func parseLocalVarType(r *reader) (TypeSig, error) {
	b, err := r.peekU8()
	if err != nil {
		return TypeSig{}, err
	}
	if ElementType(b) == ElementTypePinned {
		r.readU8()
		nested, err := parseTypeSig(r)
		if err != nil {
			return TypeSig{}, err
		}
		return TypeSig{Kind: ElementTypePinned, Elem: &nested}, nil
	}
	return parseTypeSig(r)
}

func (s MethodSig) write(w *writer) {
	w.writeU8(s.CallingConvention)
	switch s.kind() {
	case callingConvField:
		s.ReturnType.write(w)
	case callingConvLocalSig:
		w.writeCompressedUint(uint32(len(s.Params)))
		for _, p := range s.Params {
			p.write(w)
		}
	case callingConvProperty:
		w.writeCompressedUint(uint32(len(s.Params)))
		s.ReturnType.write(w)
		for _, p := range s.Params {
			p.write(w)
		}
	default:
		if s.isGeneric() {
			w.writeCompressedUint(s.GenericParamCount)
		}
		w.writeCompressedUint(uint32(len(s.Params)))
		s.ReturnType.write(w)
		for i, p := range s.Params {
			if s.SentinelFound && i == s.Sentinel {
				w.writeU8(byte(ElementTypeSentinel))
			}
			p.write(w)
		}
	}
}

// FieldSig is a parsed Field.Signature blob: calling-convention byte
// 0x06 followed by a single type.
type FieldSig struct {
	Type TypeSig
}

func parseFieldSig(r *reader) (FieldSig, error) {
	conv, err := r.readU8()
	if err != nil {
		return FieldSig{}, err
	}
	if conv&callingConvMaskKind != callingConvField {
		return FieldSig{}, errInvalidBlob(r.position() - 1)
	}
	t, err := parseTypeSig(r)
	if err != nil {
		return FieldSig{}, err
	}
	return FieldSig{Type: t}, nil
}

func (s FieldSig) write(w *writer) {
	w.writeU8(callingConvField)
	s.Type.write(w)
}

// PropertySig is a parsed Property.Type blob.
type PropertySig struct {
	HasThis bool
	Type    TypeSig
	Params  []TypeSig
}

func parsePropertySig(r *reader) (PropertySig, error) {
	sig, err := parseMethodSig(r)
	if err != nil {
		return PropertySig{}, err
	}
	return PropertySig{HasThis: sig.hasThis(), Type: sig.ReturnType, Params: sig.Params}, nil
}

func (s PropertySig) write(w *writer) {
	conv := byte(callingConvProperty)
	if s.HasThis {
		conv |= callingConvHasThis
	}
	ms := MethodSig{CallingConvention: conv, ReturnType: s.Type, Params: s.Params}
	ms.write(w)
}

// LocalVarSig is a parsed StandAloneSig blob used for a method's local
// variables.
type LocalVarSig struct {
	Locals []TypeSig
}

func parseLocalVarSig(r *reader) (LocalVarSig, error) {
	conv, err := r.readU8()
	if err != nil {
		return LocalVarSig{}, err
	}
	if conv&callingConvMaskKind != callingConvLocalSig {
		return LocalVarSig{}, errInvalidBlob(r.position() - 1)
	}
	count, err := r.readCompressedUint()
	if err != nil {
		return LocalVarSig{}, err
	}
	locals := make([]TypeSig, 0, count)
	for i := uint32(0); i < count; i++ {
		t, err := parseLocalVarType(r)
		if err != nil {
			return LocalVarSig{}, err
		}
		locals = append(locals, t)
	}
	return LocalVarSig{Locals: locals}, nil
}

func (s LocalVarSig) write(w *writer) {
	w.writeU8(callingConvLocalSig)
	w.writeCompressedUint(uint32(len(s.Locals)))
	for _, l := range s.Locals {
		l.write(w)
	}
}
