/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package dtcg

import (
	"strings"
	"testing"
)

func TestValidate_DraftRejectsRef(t *testing.T) {
	data := map[string]any{
		"color": map[string]any{
			"alias": map[string]any{"$ref": "#/color/base"},
		},
	}
	errs := Validate(data, Draft)
	if len(errs) == 0 {
		t.Fatal("expected a validation error for $ref in draft schema")
	}
}

func TestValidate_DraftRejectsStructuredColor(t *testing.T) {
	data := map[string]any{
		"color": map[string]any{
			"base": map[string]any{
				"$type": "color",
				"$value": map[string]any{
					"colorSpace": "srgb",
					"components": []any{1.0, 0.0, 0.0},
				},
			},
		},
	}
	errs := Validate(data, Draft)
	if len(errs) == 0 {
		t.Fatal("expected a validation error for structured color in draft schema")
	}
}

func TestValidate_V2025RejectsStringColor(t *testing.T) {
	data := map[string]any{
		"color": map[string]any{
			"base": map[string]any{"$type": "color", "$value": "#ff0000"},
		},
	}
	errs := Validate(data, V2025_10)
	if len(errs) == 0 {
		t.Fatal("expected a validation error for string color in 2025.10 schema")
	}
}

func TestValidate_V2025RejectsRootAndGroupMarkerTogether(t *testing.T) {
	data := map[string]any{
		"$root": map[string]any{"$type": "color", "$value": map[string]any{"colorSpace": "srgb", "components": []any{0.0, 0.0, 0.0}}},
		"_":     map[string]any{"$type": "color", "$value": map[string]any{"colorSpace": "srgb", "components": []any{1.0, 1.0, 1.0}}},
	}
	errs := Validate(data, V2025_10)
	found := false
	for _, e := range errs {
		if e.Message == "conflicting root token patterns: both $root and a group marker found" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected conflicting root token patterns error, got %v", errs)
	}
}

func TestValidate_CleanDocumentsProduceNoErrors(t *testing.T) {
	draft := map[string]any{
		"color": map[string]any{
			"base": map[string]any{"$type": "color", "$value": "#ff0000"},
		},
	}
	if errs := Validate(draft, Draft); len(errs) != 0 {
		t.Errorf("expected no errors for clean draft document, got %v", errs)
	}

	v2025 := map[string]any{
		"color": map[string]any{
			"base": map[string]any{
				"$type":  "color",
				"$value": map[string]any{"colorSpace": "srgb", "components": []any{1.0, 0.0, 0.0}},
			},
		},
	}
	if errs := Validate(v2025, V2025_10); len(errs) != 0 {
		t.Errorf("expected no errors for clean 2025.10 document, got %v", errs)
	}
}

func TestValidate_StructureRejectsUnknownType(t *testing.T) {
	data := map[string]any{
		"color": map[string]any{
			"base": map[string]any{"$type": "wavelength", "$value": "#ff0000"},
		},
	}
	errs := Validate(data, Draft)
	found := false
	for _, e := range errs {
		if strings.Contains(e.Message, `unknown token $type "wavelength"`) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an unknown-$type error, got %v", errs)
	}
}

func TestValidate_StructureRejectsMissingValue(t *testing.T) {
	data := map[string]any{
		"color": map[string]any{
			"base": map[string]any{"$type": "color"},
		},
	}
	errs := Validate(data, Draft)
	found := false
	for _, e := range errs {
		if e.Message == "token is missing $value" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a missing-$value error, got %v", errs)
	}
}

func TestValidate_StructureRejectsNonStringSchema(t *testing.T) {
	data := map[string]any{
		"$schema": 42.0,
		"color": map[string]any{
			"base": map[string]any{"$type": "color", "$value": "#ff0000"},
		},
	}
	errs := Validate(data, Draft)
	found := false
	for _, e := range errs {
		if strings.Contains(e.Message, "$schema must be a string") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a non-string $schema error, got %v", errs)
	}
}

func TestValidate_StructureRejectsBadValueShape(t *testing.T) {
	data := map[string]any{
		"spacing": map[string]any{
			"base": map[string]any{"$type": "dimension", "$value": 16.0},
		},
	}
	errs := Validate(data, Draft)
	found := false
	for _, e := range errs {
		if strings.Contains(e.Message, "invalid shape") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an invalid-shape error for a numeric dimension value, got %v", errs)
	}
}

func TestValidate_StructureAcceptsAliasStringForAnyType(t *testing.T) {
	data := map[string]any{
		"spacing": map[string]any{
			"base":  map[string]any{"$type": "dimension", "$value": "16px"},
			"alias": map[string]any{"$type": "dimension", "$value": "{spacing.base}"},
		},
	}
	if errs := Validate(data, Draft); len(errs) != 0 {
		t.Errorf("expected alias string value to satisfy shape check, got %v", errs)
	}
}

func TestValidate_StructureRecursesThroughRoot(t *testing.T) {
	data := map[string]any{
		"$root": map[string]any{
			"$type": "color",
			"base":  map[string]any{"$value": 7.0},
		},
	}
	errs := Validate(data, V2025_10)
	found := false
	for _, e := range errs {
		if strings.Contains(e.Message, "invalid shape") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected structural validation to recurse through $root, got %v", errs)
	}
}

func TestValidationError_ErrorFormatting(t *testing.T) {
	e := &ValidationError{Path: "color.base", Message: "bad thing", Suggestion: "fix it"}
	want := "color.base: bad thing (fix it)"
	if got := e.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
