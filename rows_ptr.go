// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

// Row types for the five *Ptr indirection tables, present only when
// the tables stream is named #- (the "uncompressed" layout). Each is a
// single simple-table index into the table it redirects.
// SPEC_FULL.md §9 Decision D3.

// FieldPtrRow is a row of the FieldPtr table (0x03).
type FieldPtrRow struct {
	Field uint32
}

func parseFieldPtrRow(r *reader, ctx *tableContext) (FieldPtrRow, error) {
	var row FieldPtrRow
	var err error
	if row.Field, err = r.readIndex(ctx.simpleWidth(TableField) == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row FieldPtrRow) write(w *writer, ctx *tableContext) {
	w.writeIndex(row.Field, ctx.simpleWidth(TableField) == 4)
}

// MethodPtrRow is a row of the MethodPtr table (0x05).
type MethodPtrRow struct {
	Method uint32
}

func parseMethodPtrRow(r *reader, ctx *tableContext) (MethodPtrRow, error) {
	var row MethodPtrRow
	var err error
	if row.Method, err = r.readIndex(ctx.simpleWidth(TableMethodDef) == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row MethodPtrRow) write(w *writer, ctx *tableContext) {
	w.writeIndex(row.Method, ctx.simpleWidth(TableMethodDef) == 4)
}

// ParamPtrRow is a row of the ParamPtr table (0x07).
type ParamPtrRow struct {
	Param uint32
}

func parseParamPtrRow(r *reader, ctx *tableContext) (ParamPtrRow, error) {
	var row ParamPtrRow
	var err error
	if row.Param, err = r.readIndex(ctx.simpleWidth(TableParam) == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row ParamPtrRow) write(w *writer, ctx *tableContext) {
	w.writeIndex(row.Param, ctx.simpleWidth(TableParam) == 4)
}

// EventPtrRow is a row of the EventPtr table (0x13).
type EventPtrRow struct {
	Event uint32
}

func parseEventPtrRow(r *reader, ctx *tableContext) (EventPtrRow, error) {
	var row EventPtrRow
	var err error
	if row.Event, err = r.readIndex(ctx.simpleWidth(TableEvent) == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row EventPtrRow) write(w *writer, ctx *tableContext) {
	w.writeIndex(row.Event, ctx.simpleWidth(TableEvent) == 4)
}

// PropertyPtrRow is a row of the PropertyPtr table (0x16).
type PropertyPtrRow struct {
	Property uint32
}

func parsePropertyPtrRow(r *reader, ctx *tableContext) (PropertyPtrRow, error) {
	var row PropertyPtrRow
	var err error
	if row.Property, err = r.readIndex(ctx.simpleWidth(TableProperty) == 4); err != nil {
		return row, err
	}
	return row, nil
}

func (row PropertyPtrRow) write(w *writer, ctx *tableContext) {
	w.writeIndex(row.Property, ctx.simpleWidth(TableProperty) == 4)
}
