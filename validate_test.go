// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import "testing"

func TestValidateMissingModuleRow(t *testing.T) {
	m := buildSampleMetadata(t)
	m.Modules = nil

	issues := m.Validate()
	found := false
	for _, err := range issues {
		if err == ErrNoModuleRow {
			found = true
		}
	}
	if !found {
		t.Errorf("Validate() = %v, want ErrNoModuleRow among issues", issues)
	}
}

func TestValidateDanglingStringIndex(t *testing.T) {
	m := buildSampleMetadata(t)
	m.Modules[0].Name = 0xFFFF

	issues := m.Validate()
	if len(issues) == 0 {
		t.Fatal("expected a dangling-string-index issue")
	}
}

func TestValidateOutOfRangeSimpleIndex(t *testing.T) {
	m := buildSampleMetadata(t)
	m.TypeDefs[0].FieldList = 100

	issues := m.Validate()
	if len(issues) == 0 {
		t.Fatal("expected an out-of-range FieldList issue")
	}
}

func TestValidateStrictReturnsFirstIssue(t *testing.T) {
	m := buildSampleMetadata(t)
	m.Modules = nil

	err := m.ValidateStrict()
	if err == nil {
		t.Fatal("expected a validation error")
	}
	merr, ok := err.(*Error)
	if !ok || merr.Kind != KindValidation {
		t.Fatalf("ValidateStrict() error = %#v, want *Error{Kind: KindValidation}", err)
	}
}

func TestValidateClean(t *testing.T) {
	m := buildSampleMetadata(t)
	if issues := m.Validate(); len(issues) != 0 {
		t.Errorf("Validate() on a clean sample = %v, want none", issues)
	}
}
