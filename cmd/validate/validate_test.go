/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package validate

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"tokenpipe.dev/tokenpipe/ingest"
	"tokenpipe.dev/tokenpipe/token"
)

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stderr = w

	fn()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestReportCrossValidation_MissingTypes(t *testing.T) {
	cross := ingest.CrossValidationResult{MissingTypes: []token.Type{token.Color, token.Spacing}}

	out := captureStderr(t, func() {
		reportCrossValidation("tokens.json", cross)
	})

	if !strings.Contains(out, "missing required type coverage: color") {
		t.Errorf("expected a color report, got %q", out)
	}
	if !strings.Contains(out, "missing required type coverage: spacing") {
		t.Errorf("expected a spacing report, got %q", out)
	}
}

func TestReportCrossValidation_DanglingAlias(t *testing.T) {
	cross := ingest.CrossValidationResult{
		Aliases: []ingest.AliasViolation{{TokenName: "color.primary", Reference: "color.missing"}},
	}

	out := captureStderr(t, func() {
		reportCrossValidation("tokens.json", cross)
	})

	if !strings.Contains(out, "dangling alias") {
		t.Errorf("expected a dangling alias report, got %q", out)
	}
	if !strings.Contains(out, "color.primary") || !strings.Contains(out, "color.missing") {
		t.Errorf("expected the violation's token and reference names, got %q", out)
	}
}

func TestReportCrossValidation_Cycle(t *testing.T) {
	cross := ingest.CrossValidationResult{Cycle: []string{"a", "b", "a"}}

	out := captureStderr(t, func() {
		reportCrossValidation("tokens.json", cross)
	})

	if !strings.Contains(out, "circular alias reference") {
		t.Errorf("expected a cycle report, got %q", out)
	}
}

func TestReportCrossValidation_Clean(t *testing.T) {
	out := captureStderr(t, func() {
		reportCrossValidation("tokens.json", ingest.CrossValidationResult{})
	})

	if out != "" {
		t.Errorf("expected no output for a clean result, got %q", out)
	}
}
