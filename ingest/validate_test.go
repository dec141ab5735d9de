/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ingest

import (
	"testing"

	"tokenpipe.dev/tokenpipe/token"
)

func mustColorValue(t *testing.T) token.TokenValueOrAlias {
	t.Helper()
	v, err := token.NewValue(token.Color, token.ColorValue{R: 1, G: 0, B: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return v
}

func TestValidateCrossToken_CleanSetReportsMissingRequiredTypes(t *testing.T) {
	ts := token.NewTokenSet(token.Metadata{Source: token.SourceDTCG})
	ts.Add(token.NewNormalizedToken("color.primary", token.Color, mustColorValue(t)))

	result := ValidateCrossToken(ts)
	if result.Clean() {
		t.Fatal("expected the result to report missing required types")
	}
	if len(result.MissingTypes) != len(token.RequiredTypes)-1 {
		t.Errorf("expected all but color to be missing, got %v", result.MissingTypes)
	}
}

func buildFullyCoveredSet(t *testing.T) *token.TokenSet {
	t.Helper()
	ts := token.NewTokenSet(token.Metadata{Source: token.SourceDTCG})

	colorVal := mustColorValue(t)
	ts.Add(token.NewNormalizedToken("color.primary", token.Color, colorVal))

	dimVal, err := token.NewValue(token.Spacing, token.DimensionValue{Value: 4, Unit: token.UnitPx})
	if err != nil {
		t.Fatal(err)
	}
	ts.Add(token.NewNormalizedToken("spacing.small", token.Spacing, dimVal))

	typoVal, err := token.NewValue(token.Typography, token.TypographyValue{
		FontFamily: "Inter",
		FontSize:   token.DimensionValue{Value: 16, Unit: token.UnitPx},
	})
	if err != nil {
		t.Fatal(err)
	}
	ts.Add(token.NewNormalizedToken("font.body", token.Typography, typoVal))

	radiusVal, err := token.NewValue(token.BorderRadius, token.BorderRadiusValue{Value: 4, Unit: token.RadiusPx})
	if err != nil {
		t.Fatal(err)
	}
	ts.Add(token.NewNormalizedToken("radius.small", token.BorderRadius, radiusVal))

	shadowVal, err := token.NewValue(token.Shadow, token.ShadowValue{Color: token.ColorValue{R: 0, G: 0, B: 0}})
	if err != nil {
		t.Fatal(err)
	}
	ts.Add(token.NewNormalizedToken("shadow.elevated", token.Shadow, shadowVal))

	return ts
}

func TestValidateCrossToken_FullCoverageIsClean(t *testing.T) {
	ts := buildFullyCoveredSet(t)
	result := ValidateCrossToken(ts)
	if !result.Clean() {
		t.Errorf("expected a fully covered token set to be clean, got %+v", result)
	}
}

func TestValidateCrossToken_DanglingAliasInPrimaryValue(t *testing.T) {
	ts := buildFullyCoveredSet(t)
	ts.Add(token.NewNormalizedToken("color.alias", token.Color, token.NewAlias("color.nonexistent")))

	result := ValidateCrossToken(ts)
	if len(result.Aliases) != 1 {
		t.Fatalf("expected one dangling alias, got %v", result.Aliases)
	}
	v := result.Aliases[0]
	if v.TokenName != "color.alias" || v.Reference != "color.nonexistent" || v.Mode != "" {
		t.Errorf("got %+v", v)
	}
}

func TestValidateCrossToken_DanglingAliasInMode(t *testing.T) {
	ts := buildFullyCoveredSet(t)
	tok := token.NewNormalizedToken("color.themed", token.Color, mustColorValue(t))
	tok.SetModes(map[string]token.TokenValueOrAlias{"dark": token.NewAlias("color.missing")})
	ts.Add(tok)

	result := ValidateCrossToken(ts)
	if len(result.Aliases) != 1 {
		t.Fatalf("expected one dangling alias, got %v", result.Aliases)
	}
	v := result.Aliases[0]
	if v.Mode != "dark" {
		t.Errorf("expected mode dark, got %q", v.Mode)
	}
	if v.String() != "color.themed (mode: dark) -> color.missing" {
		t.Errorf("got %q", v.String())
	}
}

func TestValidateCrossToken_ResolvedAliasIsNotDangling(t *testing.T) {
	ts := buildFullyCoveredSet(t)
	ts.Add(token.NewNormalizedToken("color.alias", token.Color, token.NewAlias("color.primary")))

	result := ValidateCrossToken(ts)
	if len(result.Aliases) != 0 {
		t.Errorf("expected no dangling aliases, got %v", result.Aliases)
	}
}

func TestValidateCrossToken_DetectsCycle(t *testing.T) {
	ts := buildFullyCoveredSet(t)
	ts.Add(token.NewNormalizedToken("color.a", token.Color, token.NewAlias("color.b")))
	ts.Add(token.NewNormalizedToken("color.b", token.Color, token.NewAlias("color.a")))

	result := ValidateCrossToken(ts)
	if len(result.Cycle) == 0 {
		t.Fatal("expected a cycle to be detected")
	}
}

func TestValidateCrossToken_SelfReferenceIsACycle(t *testing.T) {
	ts := buildFullyCoveredSet(t)
	ts.Add(token.NewNormalizedToken("color.loop", token.Color, token.NewAlias("color.loop")))

	result := ValidateCrossToken(ts)
	if len(result.Cycle) == 0 {
		t.Fatal("expected a self-reference to be detected as a cycle")
	}
}
