/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package dtcg

import "testing"

func TestDetectVersion_SchemaURL(t *testing.T) {
	data := map[string]any{"$schema": "https://www.designtokens.org/schemas/2025.10.json"}
	if v := DetectVersion(data); v != V2025_10 {
		t.Errorf("expected V2025_10, got %s", v)
	}
}

func TestDetectVersion_UnrecognizedSchemaURLFallsBackToDuckTyping(t *testing.T) {
	data := map[string]any{
		"$schema": "https://example.com/unknown.json",
		"color": map[string]any{
			"primary": map[string]any{"$extends": "#/color/base"},
		},
	}
	if v := DetectVersion(data); v != V2025_10 {
		t.Errorf("expected V2025_10 via duck-typing, got %s", v)
	}
}

func TestDetectVersion_DuckTypeRef(t *testing.T) {
	data := map[string]any{
		"color": map[string]any{
			"alias": map[string]any{"$ref": "#/color/base"},
		},
	}
	if v := DetectVersion(data); v != V2025_10 {
		t.Errorf("expected V2025_10, got %s", v)
	}
}

func TestDetectVersion_DuckTypeStructuredColor(t *testing.T) {
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
	if v := DetectVersion(data); v != V2025_10 {
		t.Errorf("expected V2025_10, got %s", v)
	}
}

func TestDetectVersion_DefaultsToDraft(t *testing.T) {
	data := map[string]any{
		"color": map[string]any{
			"base": map[string]any{"$type": "color", "$value": "#ff0000"},
		},
	}
	if v := DetectVersion(data); v != Draft {
		t.Errorf("expected Draft, got %s", v)
	}
}

func TestFromURL_Unrecognized(t *testing.T) {
	if _, err := FromURL("https://example.com/nope.json"); err == nil {
		t.Error("expected error for unrecognized schema url")
	}
}
