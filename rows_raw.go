// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

// rawTable holds the unparsed row bytes of one of the seven tables
// spec.md §4.6 leaves unmodeled (AssemblyProcessor, AssemblyOs,
// AssemblyRefProcessor, AssemblyRefOs, File, ExportedType,
// ManifestResource). SPEC_FULL.md §9 Decision D2: rather than silently
// eliding them, their rows are retained verbatim and spliced back at
// the correct table-ID position on write.
type rawTable struct {
	ID       TableID
	RowCount uint32
	RowSize  int
	Rows     []byte
}

// parseRawTable reads RowCount rows of rowSize bytes each, without any
// structural interpretation.
func parseRawTable(r *reader, id TableID, rowCount uint32, rowSize int) (rawTable, error) {
	n := int(rowCount) * rowSize
	rows, err := r.readBytes(n)
	if err != nil {
		return rawTable{}, err
	}
	buf := make([]byte, len(rows))
	copy(buf, rows)
	return rawTable{ID: id, RowCount: rowCount, RowSize: rowSize, Rows: buf}, nil
}

func (t rawTable) write(w *writer) {
	w.writeBytes(t.Rows)
}

// rowSize for the raw tables follows the same field-width computation
// other rows use; these are the minimal known layouts per ECMA-335
// §II.22, enough to skip and splice the table's bytes faithfully even
// though no Go struct models its fields individually.
func (c *tableContext) rawRowSize(table TableID) int {
	switch table {
	case TableAssemblyProcessor:
		return 4
	case TableAssemblyOS:
		return 4 + 4 + 4
	case TableAssemblyRefProcessor:
		return 4 + c.simpleWidth(TableAssemblyRef)
	case TableAssemblyRefOS:
		return 4 + 4 + 4 + c.simpleWidth(TableAssemblyRef)
	case TableFile:
		return 4 + c.stringWidth() + c.blobWidth()
	case TableExportedType:
		return 4 + 4 + 2*c.stringWidth() + c.codedWidth(Implementation)
	case TableManifestResource:
		return 4 + 4 + c.stringWidth() + c.codedWidth(Implementation)
	default:
		return 0
	}
}
