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
	"tokenpipe.dev/tokenpipe/internal/ingesterr"
	"tokenpipe.dev/tokenpipe/internal/mapfs"
)

func TestDTCGImporter_LocalFile(t *testing.T) {
	fs := mapfs.New()
	fs.AddFile("/tokens.json", `{
		"color": {
			"primary": {"$type": "color", "$value": "#ff0000"}
		}
	}`, 0o644)

	imp := &DTCGImporter{
		Spec:         config.SourceSpec{Type: config.SourceTypeDTCG, Path: "/tokens.json"},
		FileSystem:   fs,
		GroupMarkers: []string{"_"},
	}

	result, err := imp.Ingest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := result.TokenSet.Lookup("color.primary"); !ok {
		t.Errorf("expected color.primary in result, got %v", result.TokenSet.Names())
	}
}

func TestDTCGImporter_MissingFileIsFatal(t *testing.T) {
	fs := mapfs.New()
	imp := &DTCGImporter{
		Spec:       config.SourceSpec{Type: config.SourceTypeDTCG, Path: "/nope.json"},
		FileSystem: fs,
	}

	_, err := imp.Ingest(context.Background())
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if ingesterr.ClassOf(err) != ingesterr.ClassFatal {
		t.Errorf("expected ClassFatal, got %v", ingesterr.ClassOf(err))
	}
}

func TestDTCGImporter_InvalidDocumentIsValidationError(t *testing.T) {
	fs := mapfs.New()
	// The $ref duck-types this document as 2025.10, which then rejects
	// the bare string color value on "other".
	fs.AddFile("/tokens.json", `{
		"color": {
			"base": {"$ref": "#/color/other"},
			"other": {"$type": "color", "$value": "#ff0000"}
		}
	}`, 0o644)

	imp := &DTCGImporter{
		Spec:       config.SourceSpec{Type: config.SourceTypeDTCG, Path: "/tokens.json"},
		FileSystem: fs,
	}

	_, err := imp.Ingest(context.Background())
	if err == nil {
		t.Fatal("expected a validation error for a string color in a duck-typed 2025.10 document")
	}
	if ingesterr.ClassOf(err) != ingesterr.ClassValidation {
		t.Errorf("expected ClassValidation, got %v", ingesterr.ClassOf(err))
	}
}

func TestDTCGImporter_RemoteURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"color": {"primary": {"$type": "color", "$value": "#00ff00"}}}`))
	}))
	defer server.Close()

	imp := &DTCGImporter{
		Spec: config.SourceSpec{Type: config.SourceTypeDTCG, URL: server.URL},
	}

	result, err := imp.Ingest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := result.TokenSet.Lookup("color.primary"); !ok {
		t.Errorf("expected color.primary in result, got %v", result.TokenSet.Names())
	}
}

func TestDTCGImporter_RemoteNon200IsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	imp := &DTCGImporter{
		Spec: config.SourceSpec{Type: config.SourceTypeDTCG, URL: server.URL},
	}

	_, err := imp.Ingest(context.Background())
	if err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
	if ingesterr.ClassOf(err) != ingesterr.ClassFatal {
		t.Errorf("expected ClassFatal, got %v", ingesterr.ClassOf(err))
	}
}

func TestDTCGImporter_SoftFailuresBecomeWarnings(t *testing.T) {
	fs := mapfs.New()
	fs.AddFile("/tokens.json", `{
		"color": {
			"good": {"$type": "color", "$value": "#ff0000"},
			"bad": {"$type": "color", "$value": "not-a-color"}
		}
	}`, 0o644)

	imp := &DTCGImporter{
		Spec:       config.SourceSpec{Type: config.SourceTypeDTCG, Path: "/tokens.json"},
		FileSystem: fs,
	}

	result, err := imp.Ingest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %v", result.Warnings)
	}
	if _, ok := result.TokenSet.Lookup("color.good"); !ok {
		t.Errorf("expected color.good to survive the bad sibling token")
	}
}
