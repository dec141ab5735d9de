/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package figmavars

import (
	"fmt"
	"math"
	"sort"

	"tokenpipe.dev/tokenpipe/internal/tokenval"
	"tokenpipe.dev/tokenpipe/token"
)

// Normalize runs the five-step procedure of spec.md §4.7 across every
// variable: resolve its token type, compute its normalized name,
// choose its default mode, parse every mode's value, and emit a
// NormalizedToken with the others folded into Modes. Unsupported
// types and unparseable values become warnings, never abort the run.
func Normalize(variables map[string]*Variable, collections map[string]*Collection, meta token.Metadata) (*token.TokenSet, []string) {
	tables := buildNameTables(variables, collections)
	ts := token.NewTokenSet(meta)
	var warnings []string

	for _, v := range orderedByID(variables) {
		typ, ok := mapResolvedType(v.ResolvedType)
		if !ok {
			warnings = append(warnings, fmt.Sprintf(`Unsupported variable type "%s" for variable "%s" (%s). Skipping.`, v.ResolvedType, v.Name, v.ID))
			continue
		}

		name := normalizeVariableName(v.Name)

		if len(v.ValuesByMode) == 0 {
			warnings = append(warnings, fmt.Sprintf("%s (%s): no values_by_mode entries, skipping", name, v.ID))
			continue
		}

		defaultModeID := chooseDefaultMode(v, tables.collectionDefaults)

		var primary *token.TokenValueOrAlias
		modes := make(map[string]token.TokenValueOrAlias)

		for _, mv := range v.ValuesByMode {
			tv, ok, warn := resolveModeValue(typ, mv.Value, tables.idToName)
			if warn != "" {
				warnings = append(warnings, fmt.Sprintf("%s (%s, mode %s): %s", name, v.ID, mv.ModeID, warn))
			}
			if !ok {
				continue
			}

			if mv.ModeID == defaultModeID {
				primary = &tv
			} else {
				modes[modeHumanName(mv.ModeID, tables.modeIDToName)] = tv
			}
		}

		if primary == nil {
			warnings = append(warnings, fmt.Sprintf("%s (%s): default mode value could not be parsed, skipping", name, v.ID))
			continue
		}

		nt := token.NewNormalizedToken(name, typ, *primary)
		nt.Description = v.Description
		nt.SetModes(modes)

		if ts.Add(nt) {
			warnings = append(warnings, fmt.Sprintf("%s: duplicate token name (variable %s), later definition wins", name, v.ID))
		}
	}

	return ts, warnings
}

func mapResolvedType(resolvedType string) (token.Type, bool) {
	switch resolvedType {
	case "COLOR":
		return token.Color, true
	case "FLOAT":
		return token.Number, true
	case "STRING":
		return token.String, true
	case "BOOLEAN":
		return token.Boolean, true
	default:
		return token.Unknown, false
	}
}

// chooseDefaultMode picks the collection's default_mode_id if that
// mode is present among the variable's values; otherwise the first
// mode in ValuesByMode's (preserved) insertion order.
func chooseDefaultMode(v *Variable, collectionDefaults map[string]string) string {
	if defaultID, ok := collectionDefaults[v.VariableCollectionID]; ok {
		for _, mv := range v.ValuesByMode {
			if mv.ModeID == defaultID {
				return defaultID
			}
		}
	}
	return v.ValuesByMode[0].ModeID
}

func modeHumanName(modeID string, modeIDToName map[string]string) string {
	if name, ok := modeIDToName[modeID]; ok && name != "" {
		return name
	}
	return modeID
}

// resolveModeValue parses one values_by_mode entry, returning a
// human-readable warning string on partial failure (never an error:
// every failure here is a per-token soft failure per spec.md §7).
func resolveModeValue(typ token.Type, vv VariableValue, idToName map[string]string) (token.TokenValueOrAlias, bool, string) {
	switch vv.Type {
	case "ALIAS":
		id, ok := vv.Value.(string)
		if !ok {
			return token.TokenValueOrAlias{}, false, "alias value is not a string id"
		}
		name, ok := idToName[id]
		if !ok {
			return token.TokenValueOrAlias{}, false, fmt.Sprintf("alias target %q does not resolve to a known variable", id)
		}
		return token.NewAlias(name), true, ""

	case "VALUE":
		return resolvePrimitiveValue(typ, vv.Value)

	default:
		return token.TokenValueOrAlias{}, false, fmt.Sprintf("unrecognized values_by_mode entry type %q", vv.Type)
	}
}

func resolvePrimitiveValue(typ token.Type, raw any) (token.TokenValueOrAlias, bool, string) {
	switch typ {
	case token.Color:
		var cv token.ColorValue
		switch v := raw.(type) {
		case string:
			parsed, ok, err := tokenval.ParseColor(v)
			if err != nil {
				return token.TokenValueOrAlias{}, false, err.Error()
			}
			if !ok {
				return token.TokenValueOrAlias{}, false, fmt.Sprintf("color value %q could not be parsed", v)
			}
			cv = parsed
		case map[string]any:
			parsed, ok := colorFromRGBAObject(v)
			if !ok {
				return token.TokenValueOrAlias{}, false, "color value missing r/g/b channels"
			}
			cv = parsed
		default:
			return token.TokenValueOrAlias{}, false, fmt.Sprintf("color value has unsupported shape %T", raw)
		}
		tv, err := token.NewValue(token.Color, cv)
		if err != nil {
			return token.TokenValueOrAlias{}, false, err.Error()
		}
		return tv, true, ""

	case token.Number:
		n, ok := raw.(float64)
		if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
			return token.TokenValueOrAlias{}, false, "number value is not finite"
		}
		tv, err := token.NewValue(token.Number, n)
		if err != nil {
			return token.TokenValueOrAlias{}, false, err.Error()
		}
		return tv, true, ""

	case token.String:
		s, ok := raw.(string)
		if !ok {
			return token.TokenValueOrAlias{}, false, "string value is not a string"
		}
		tv, err := token.NewValue(token.String, s)
		if err != nil {
			return token.TokenValueOrAlias{}, false, err.Error()
		}
		return tv, true, ""

	case token.Boolean:
		b, ok := raw.(bool)
		if !ok {
			return token.TokenValueOrAlias{}, false, "boolean value is not a boolean"
		}
		tv, err := token.NewValue(token.Boolean, b)
		if err != nil {
			return token.TokenValueOrAlias{}, false, err.Error()
		}
		return tv, true, ""

	default:
		return token.TokenValueOrAlias{}, false, fmt.Sprintf("unsupported token type %s", typ)
	}
}

// colorFromRGBAObject reads a Figma {r,g,b,a} color; channels arrive
// already normalized to [0,1], unlike the hex/css literals C1 parses.
func colorFromRGBAObject(obj map[string]any) (token.ColorValue, bool) {
	r, ok1 := obj["r"].(float64)
	g, ok2 := obj["g"].(float64)
	b, ok3 := obj["b"].(float64)
	if !ok1 || !ok2 || !ok3 {
		return token.ColorValue{}, false
	}

	cv := token.ColorValue{R: r, G: g, B: b}
	if a, ok := obj["a"].(float64); ok {
		cv.A = &a
	}
	return cv, true
}

// orderedByID sorts variables by id before normalization so collision
// warnings are emitted in a deterministic order (spec.md §5).
func orderedByID(variables map[string]*Variable) []*Variable {
	ids := make([]string, 0, len(variables))
	for id := range variables {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]*Variable, 0, len(ids))
	for _, id := range ids {
		result = append(result, variables[id])
	}
	return result
}
