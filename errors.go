// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a structured metadata error.
type Kind int

// Error kinds, abstract per ECMA-335 Partition II failure modes.
const (
	KindInvalidSignature Kind = iota
	KindUnexpectedEOF
	KindInvalidStreamName
	KindStreamNotFound
	KindInvalidString
	KindInvalidUserString
	KindInvalidCompressedInt
	KindInvalidGuidIndex
	KindInvalidBlob
	KindInvalidTableID
	KindInvalidCodedIndex
	KindRowIndexOutOfBounds
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindInvalidSignature:
		return "invalid signature"
	case KindUnexpectedEOF:
		return "unexpected eof"
	case KindInvalidStreamName:
		return "invalid stream name"
	case KindStreamNotFound:
		return "stream not found"
	case KindInvalidString:
		return "invalid string"
	case KindInvalidUserString:
		return "invalid user string"
	case KindInvalidCompressedInt:
		return "invalid compressed int"
	case KindInvalidGuidIndex:
		return "invalid guid index"
	case KindInvalidBlob:
		return "invalid blob"
	case KindInvalidTableID:
		return "invalid table id"
	case KindInvalidCodedIndex:
		return "invalid coded index"
	case KindRowIndexOutOfBounds:
		return "row index out of bounds"
	case KindValidation:
		return "validation error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type returned by positional failures:
// parse errors that need an offset, a table name, or a coded-index kind
// to be actionable. Simple unconditional failures instead use the
// package-level sentinel errors declared below, matching the teacher's
// convention in helper.go.
type Error struct {
	Kind      Kind
	Offset    int
	Needed    int
	Name      string
	Value     uint32
	RowIndex  uint32
	MaxRow    uint32
	Signature uint32
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidSignature:
		return fmt.Sprintf("clrmeta: invalid metadata signature: got 0x%08X", e.Signature)
	case KindUnexpectedEOF:
		return fmt.Sprintf("clrmeta: unexpected eof at offset %d needing %d bytes", e.Offset, e.Needed)
	case KindInvalidStreamName:
		return fmt.Sprintf("clrmeta: invalid stream name at offset %d", e.Offset)
	case KindStreamNotFound:
		return fmt.Sprintf("clrmeta: stream not found: %s", e.Name)
	case KindInvalidString:
		return fmt.Sprintf("clrmeta: invalid string at offset %d", e.Offset)
	case KindInvalidUserString:
		return fmt.Sprintf("clrmeta: invalid user string at offset %d", e.Offset)
	case KindInvalidCompressedInt:
		return fmt.Sprintf("clrmeta: invalid compressed integer at offset %d", e.Offset)
	case KindInvalidGuidIndex:
		return fmt.Sprintf("clrmeta: invalid guid index %d", e.Value)
	case KindInvalidBlob:
		return fmt.Sprintf("clrmeta: invalid blob at offset %d", e.Offset)
	case KindInvalidTableID:
		return fmt.Sprintf("clrmeta: invalid table id 0x%02X", e.Value)
	case KindInvalidCodedIndex:
		return fmt.Sprintf("clrmeta: invalid coded index %s value=%d", e.Name, e.Value)
	case KindRowIndexOutOfBounds:
		return fmt.Sprintf("clrmeta: row index out of bounds in table %s: index=%d max=%d", e.Name, e.RowIndex, e.MaxRow)
	case KindValidation:
		return fmt.Sprintf("clrmeta: validation failed: %s", e.Name)
	default:
		return "clrmeta: error"
	}
}

// Is reports whether target has the same Kind, so callers can write
// errors.Is(err, &clrmeta.Error{Kind: clrmeta.KindUnexpectedEOF}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func errUnexpectedEOF(offset, needed int) error {
	return &Error{Kind: KindUnexpectedEOF, Offset: offset, Needed: needed}
}

func errInvalidSignature(got uint32) error {
	return &Error{Kind: KindInvalidSignature, Signature: got}
}

func errInvalidStreamName(offset int) error {
	return &Error{Kind: KindInvalidStreamName, Offset: offset}
}

func errStreamNotFound(name string) error {
	return &Error{Kind: KindStreamNotFound, Name: name}
}

func errInvalidString(offset int) error {
	return &Error{Kind: KindInvalidString, Offset: offset}
}

func errInvalidUserString(offset int) error {
	return &Error{Kind: KindInvalidUserString, Offset: offset}
}

func errInvalidCompressedInt(offset int) error {
	return &Error{Kind: KindInvalidCompressedInt, Offset: offset}
}

func errInvalidGuidIndex(n uint32) error {
	return &Error{Kind: KindInvalidGuidIndex, Value: n}
}

func errInvalidBlob(offset int) error {
	return &Error{Kind: KindInvalidBlob, Offset: offset}
}

func errInvalidTableID(id uint32) error {
	return &Error{Kind: KindInvalidTableID, Value: id}
}

func errInvalidCodedIndex(name string, value uint32) error {
	return &Error{Kind: KindInvalidCodedIndex, Name: name, Value: value}
}

func errRowIndexOutOfBounds(table string, index, max uint32) error {
	return &Error{Kind: KindRowIndexOutOfBounds, Name: table, RowIndex: index, MaxRow: max}
}

// Sentinel errors for unconditional library-misuse failures, matching
// the teacher's errors.New-declared package vars in helper.go.
var (
	// ErrNoModuleRow is returned by strict validation when the Module
	// table (always required by ECMA-335) has no rows.
	ErrNoModuleRow = errors.New("clrmeta: metadata has no Module table row")
	// ErrTablesStreamRequired is returned when neither #~ nor #- is present.
	ErrTablesStreamRequired = errors.New("clrmeta: tables stream (#~ or #-) is required")
	// ErrMultipleSentinels would be returned by a hypothetical strict
	// signature validator that rejects more than one 0x41 sentinel byte;
	// this implementation's parser never produces this state since it
	// stops scanning for a sentinel after the first one (see MethodSig).
	ErrMultipleSentinels = errors.New("clrmeta: method signature contains more than one sentinel")
)
