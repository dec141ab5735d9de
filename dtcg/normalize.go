/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package dtcg

import (
	"fmt"
	"regexp"
	"strings"

	"tokenpipe.dev/tokenpipe/internal/tokenval"
	"tokenpipe.dev/tokenpipe/token"
)

// curlyBraceRefPattern matches a value string that is *entirely* a
// {token.path} reference, as opposed to one interpolated into a larger
// string (DTCG tokens never interpolate; a full match is an alias).
var curlyBraceRefPattern = regexp.MustCompile(`^\{([^}]+)\}$`)

// Normalize converts flattened, extends-resolved RawTokens into the
// shared token model: each token's dotted path is normalized to its
// final name (token.NormalizeName), its raw $value is dispatched to
// the internal/tokenval parser for its declared $type, and the result
// is keyed in the returned TokenSet by that normalized name. A token
// whose value can't be parsed for its declared type produces a
// warning and is skipped rather than aborting the whole document
// (spec.md §6 soft failure policy): one malformed token in a
// thousand-token file should not sink the rest.
func Normalize(tokens []*RawToken, meta token.Metadata) (*token.TokenSet, []string) {
	ts := token.NewTokenSet(meta)
	var warnings []string

	for _, rt := range tokens {
		name := token.NormalizeName(rt.Name)

		typ, err := token.TypeFromString(rt.Type)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		// A dimension whose path mentions "spacing" is a spacing token.
		if typ == token.Dimension && strings.Contains(name, "spacing") {
			typ = token.Spacing
		}

		if ref, ok := aliasReference(rt.Value); ok {
			nt := token.NewNormalizedToken(name, typ, token.NewAlias(token.NormalizeName(ref)))
			nt.Description = rt.Description
			if ts.Add(nt) {
				warnings = append(warnings, fmt.Sprintf("%s: duplicate token name, later definition wins", name))
			}
			continue
		}

		value, ok, err := parseValue(typ, rt.Value)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: could not parse %T value for type %s", name, rt.Value, typ))
			continue
		}

		tv, err := token.NewValue(typ, value)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", name, err))
			continue
		}

		nt := token.NewNormalizedToken(name, typ, tv)
		nt.Description = rt.Description
		if ts.Add(nt) {
			warnings = append(warnings, fmt.Sprintf("%s: duplicate token name, later definition wins", name))
		}
	}

	return ts, warnings
}

func aliasReference(value any) (string, bool) {
	str, ok := value.(string)
	if !ok {
		return "", false
	}
	m := curlyBraceRefPattern.FindStringSubmatch(str)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func parseValue(typ token.Type, raw any) (any, bool, error) {
	switch typ {
	case token.Color:
		str, ok := raw.(string)
		if !ok {
			return nil, false, fmt.Errorf("color value must be a string, got %T", raw)
		}
		return tokenval.ParseColor(str)

	case token.Dimension, token.Spacing:
		str, ok := raw.(string)
		if !ok {
			return nil, false, fmt.Errorf("dimension value must be a string, got %T", raw)
		}
		v, ok := tokenval.ParseDimension(str)
		return v, ok, nil

	case token.BorderRadius:
		str, ok := raw.(string)
		if !ok {
			return nil, false, fmt.Errorf("borderRadius value must be a string, got %T", raw)
		}
		v, ok := tokenval.ParseBorderRadius(str)
		return v, ok, nil

	case token.Shadow:
		return tokenval.ParseShadow(raw)

	case token.Typography:
		return parseTypography(raw)

	case token.Number:
		switch v := raw.(type) {
		case float64:
			return v, true, nil
		case int:
			return v, true, nil
		default:
			return nil, false, fmt.Errorf("number value must be numeric, got %T", raw)
		}

	case token.String:
		str, ok := raw.(string)
		return str, ok, nil

	case token.Boolean:
		b, ok := raw.(bool)
		return b, ok, nil

	default:
		return nil, false, fmt.Errorf("unsupported token type %s", typ)
	}
}

func parseTypography(raw any) (token.TypographyValue, bool, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return token.TypographyValue{}, false, fmt.Errorf("typography value must be an object, got %T", raw)
	}

	fontFamily, _ := obj["fontFamily"].(string)
	if fontFamily == "" {
		return token.TypographyValue{}, false, fmt.Errorf("typography value requires fontFamily")
	}

	fontSizeRaw, ok := obj["fontSize"].(string)
	if !ok {
		return token.TypographyValue{}, false, fmt.Errorf("typography value requires fontSize")
	}
	fontSize, ok := tokenval.ParseDimension(fontSizeRaw)
	if !ok {
		return token.TypographyValue{}, false, fmt.Errorf("typography fontSize %q could not be parsed", fontSizeRaw)
	}

	tv := token.TypographyValue{FontFamily: fontFamily, FontSize: fontSize}

	if fw, ok := obj["fontWeight"]; ok {
		tv.FontWeight = parseFontWeight(fw)
	}
	if lh, ok := obj["lineHeight"]; ok {
		tv.LineHeight = parseLineHeight(lh)
	}
	if ls, ok := obj["letterSpacing"].(string); ok {
		if d, ok := tokenval.ParseDimension(ls); ok {
			tv.LetterSpacing = &d
		}
	}
	if tc, ok := obj["textCase"].(string); ok {
		tv.TextCase = tc
	}
	if td, ok := obj["textDecoration"].(string); ok {
		tv.TextDecoration = td
	}

	return tv, true, nil
}

func parseFontWeight(raw any) *token.FontWeight {
	switch v := raw.(type) {
	case float64:
		n := int(v)
		return &token.FontWeight{Numeric: &n}
	case string:
		return &token.FontWeight{Named: v}
	default:
		return nil
	}
}

func parseLineHeight(raw any) *token.LineHeight {
	switch v := raw.(type) {
	case float64:
		return &token.LineHeight{Unitless: &v}
	case string:
		if d, ok := tokenval.ParseDimension(v); ok {
			return &token.LineHeight{Dimension: &d}
		}
	}
	return nil
}
