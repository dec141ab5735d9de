/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package figmavars

import "testing"

func TestNormalizeVariableName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Color/Brand/Primary", "color.brand.primary"},
		{"Spacing  Small", "spacing-small"},
		{"Font   Weight   Bold", "font-weight-bold"},
		{"already.normalized", "already.normalized"},
	}

	for _, tt := range tests {
		if got := normalizeVariableName(tt.input); got != tt.want {
			t.Errorf("normalizeVariableName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuildNameTables(t *testing.T) {
	variables := map[string]*Variable{
		"VariableID:1": {ID: "VariableID:1", Name: "Color/Primary"},
	}
	collections := map[string]*Collection{
		"VariableCollectionId:1": {
			ID:            "VariableCollectionId:1",
			DefaultModeID: "1:0",
			Modes:         []Mode{{ModeID: "1:0", Name: "Light"}, {ModeID: "1:1", Name: "Dark"}},
		},
	}

	tables := buildNameTables(variables, collections)

	if tables.idToName["VariableID:1"] != "color.primary" {
		t.Errorf("got %q", tables.idToName["VariableID:1"])
	}
	if tables.modeIDToName["1:0"] != "Light" {
		t.Errorf("got %q", tables.modeIDToName["1:0"])
	}
	if tables.collectionDefaults["VariableCollectionId:1"] != "1:0" {
		t.Errorf("got %q", tables.collectionDefaults["VariableCollectionId:1"])
	}
}
