// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

// Validate checks that at least one Module row exists and walks a
// subset of the tables: the #Strings name of Module, TypeDef, Field,
// MethodDef, MemberRef, Assembly and AssemblyRef rows; the #Blob
// signature of Field, MethodDef and MemberRef rows and the #Blob value
// of CustomAttribute rows; and the TypeDef FieldList/MethodList and
// MethodDef ParamList indices, which must lie within [0, rows+1] (the
// "+1" slack is the empty-list-at-end convention for list-start
// indices). Other tables, other fields of the tables above, #GUID
// indices and coded indices are not checked. All failures are
// collected and returned together. Grounded on the teacher's
// anomaly.go issue-accumulation pattern, adapted from a PE anomaly
// catalog to this domain's index-resolution checks.
func (m *Metadata) Validate() []error {
	var issues []error

	if len(m.Modules) == 0 {
		issues = append(issues, ErrNoModuleRow)
	}

	checkSimple := func(table TableID, index uint32, rowCount int) {
		if index > uint32(rowCount)+1 {
			issues = append(issues, errRowIndexOutOfBounds(table.String(), index, uint32(rowCount)))
		}
	}
	checkString := func(off uint32) {
		if _, err := m.Strings.get(off); err != nil && off != 0 {
			issues = append(issues, err)
		}
	}
	checkBlob := func(off uint32) {
		if off == 0 {
			return
		}
		if _, err := m.Blobs.get(off); err != nil {
			issues = append(issues, err)
		}
	}

	for _, row := range m.Modules {
		checkString(row.Name)
	}
	for _, row := range m.TypeDefs {
		checkString(row.TypeName)
		checkSimple(TableField, row.FieldList, len(m.Fields))
		checkSimple(TableMethodDef, row.MethodList, len(m.MethodDefs))
	}
	for _, row := range m.Fields {
		checkString(row.Name)
		checkBlob(row.Signature)
	}
	for _, row := range m.MethodDefs {
		checkString(row.Name)
		checkBlob(row.Signature)
		checkSimple(TableParam, row.ParamList, len(m.Params))
	}
	for _, row := range m.MemberRefs {
		checkString(row.Name)
		checkBlob(row.Signature)
	}
	for _, row := range m.CustomAttributes {
		checkBlob(row.Value)
	}
	for _, row := range m.Assemblies {
		checkString(row.Name)
	}
	for _, row := range m.AssemblyRefs {
		checkString(row.Name)
	}

	return issues
}

// ValidateStrict runs the same checks as Validate but returns only the
// first failure, wrapped as a single *Error with KindValidation.
func (m *Metadata) ValidateStrict() error {
	issues := m.Validate()
	if len(issues) == 0 {
		return nil
	}
	return &Error{Kind: KindValidation, Name: issues[0].Error()}
}
