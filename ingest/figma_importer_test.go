/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tokenpipe.dev/tokenpipe/config"
	"tokenpipe.dev/tokenpipe/figmavars"
	"tokenpipe.dev/tokenpipe/internal/ingesterr"
)

func TestFigmaImporter_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/files/abc123/variables/local":
			w.Write([]byte(`{"meta":{"variables":{"VariableID:1":{
				"id": "VariableID:1",
				"name": "Color/Primary",
				"variable_collection_id": "coll:1",
				"resolved_type": "COLOR",
				"values_by_mode": {"1:0": {"type": "VALUE", "value": {"r": 1, "g": 0, "b": 0}}}
			}}}}`))
		case "/v1/files/abc123/variable-collections":
			w.Write([]byte(`{"meta":{"variableCollections":{"coll:1":{
				"id": "coll:1",
				"default_mode_id": "1:0",
				"modes": [{"mode_id": "1:0", "name": "Light"}]
			}}}}`))
		}
	}))
	defer server.Close()

	imp := &FigmaImporter{
		Spec: config.SourceSpec{Type: config.SourceTypeFigma, FileKey: "abc123"},
		Client: &figmavars.Client{
			APIKey:  "test-key",
			FileKey: "abc123",
			BaseURL: server.URL,
		},
	}

	result, err := imp.Ingest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := result.TokenSet.Lookup("color.primary"); !ok {
		t.Errorf("expected color.primary, got %v", result.TokenSet.Names())
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestFigmaImporter_VariablesFetchFailureIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	imp := &FigmaImporter{
		Spec: config.SourceSpec{Type: config.SourceTypeFigma, FileKey: "abc123"},
		Client: &figmavars.Client{
			APIKey:  "bad-key",
			FileKey: "abc123",
			BaseURL: server.URL,
		},
	}

	_, err := imp.Ingest(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if ingesterr.ClassOf(err) != ingesterr.ClassFatal {
		t.Errorf("expected ClassFatal, got %v", ingesterr.ClassOf(err))
	}
}

func TestFigmaImporter_CollectionsFailureBecomesWarning(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/files/abc123/variables/local":
			w.Write([]byte(`{"meta":{"variables":{"VariableID:1":{
				"id": "VariableID:1",
				"name": "Color/Primary",
				"resolved_type": "COLOR",
				"values_by_mode": {"1:0": {"type": "VALUE", "value": {"r": 1, "g": 0, "b": 0}}}
			}}}}`))
		case "/v1/files/abc123/variable-collections":
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	imp := &FigmaImporter{
		Spec: config.SourceSpec{Type: config.SourceTypeFigma, FileKey: "abc123"},
		Client: &figmavars.Client{
			APIKey:  "test-key",
			FileKey: "abc123",
			BaseURL: server.URL,
		},
	}

	result, err := imp.Ingest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected a warning about the failed collections fetch")
	}
	if _, ok := result.TokenSet.Lookup("color.primary"); !ok {
		t.Errorf("expected color.primary to still be ingested, got %v", result.TokenSet.Names())
	}
}
