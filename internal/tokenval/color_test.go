/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package tokenval_test

import (
	"math"
	"testing"

	"tokenpipe.dev/tokenpipe/internal/tokenval"
)

func TestParseColor_Hex(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		r, g, b, a    float64
	}{
		{"3-digit shortcut", "#F73", 1.0, 0.4667, 0.2, 1.0},
		{"6-digit", "#FF5733", 1.0, 0.3412, 0.2, 1.0},
		{"8-digit with alpha", "#FF573380", 1.0, 0.3412, 0.2, 0.5020},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok, err := tokenval.ParseColor(tt.input)
			if !ok {
				t.Fatalf("ParseColor(%q) failed, err=%v", tt.input, err)
			}
			assertNear(t, "r", v.R, tt.r)
			assertNear(t, "g", v.G, tt.g)
			assertNear(t, "b", v.B, tt.b)
			assertNear(t, "a", v.Alpha(), tt.a)
		})
	}
}

func TestParseColor_LegacyRGB(t *testing.T) {
	v, ok, err := tokenval.ParseColor("rgb(255, 87, 51)")
	if !ok {
		t.Fatalf("unexpected failure: %v", err)
	}
	assertNear(t, "r", v.R, 1.0)
	assertNear(t, "a", v.Alpha(), 1.0)
}

func TestParseColor_LegacyRGBA_MissingAlphaDefaultsToOne(t *testing.T) {
	v, ok, _ := tokenval.ParseColor("rgba(255, 87, 51)")
	if !ok {
		t.Fatalf("expected rgba without alpha to parse")
	}
	assertNear(t, "a", v.Alpha(), 1.0)
}

func TestParseColor_EmptyInput(t *testing.T) {
	_, ok, err := tokenval.ParseColor("")
	if ok {
		t.Fatalf("expected empty input to yield no value")
	}
	if err != nil {
		t.Fatalf("expected no diagnostic for empty input, got %v", err)
	}
}

func TestParseColor_UnknownLeading_CarriesDiagnostic(t *testing.T) {
	_, ok, err := tokenval.ParseColor("not-a-color(1,2,3)")
	if ok {
		t.Fatalf("expected unknown format to yield no value")
	}
	if err == nil {
		t.Fatalf("expected a soft diagnostic for unrecognized format")
	}
}

func TestParseColor_InvalidHexChar(t *testing.T) {
	_, ok, _ := tokenval.ParseColor("#GGG")
	if ok {
		t.Fatalf("expected invalid hex digits to fail")
	}
}

func TestParseColor_RoundTripBounds(t *testing.T) {
	inputs := []string{"#000000", "#FFFFFF", "#F73", "rgba(10, 20, 30, 0.4)", "rgb(0, 0, 0)"}
	for _, in := range inputs {
		v, ok, _ := tokenval.ParseColor(in)
		if !ok {
			t.Fatalf("expected %q to parse", in)
		}
		for _, ch := range []float64{v.R, v.G, v.B, v.Alpha()} {
			if math.IsNaN(ch) {
				t.Fatalf("%q produced NaN channel", in)
			}
			if ch < 0 || ch > 1 {
				t.Fatalf("%q produced out-of-range channel %v", in, ch)
			}
		}
	}
}

func assertNear(t *testing.T, label string, got, want float64) {
	t.Helper()
	const eps = 0.001
	if math.Abs(got-want) > eps {
		t.Errorf("%s: got %v, want %v", label, got, want)
	}
}
