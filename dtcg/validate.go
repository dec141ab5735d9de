/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package dtcg

import (
	"fmt"
	"strings"
)

// ValidationError is a single structural diagnostic against a DTCG
// document: a mismatch between what the document contains and what its
// detected (or declared) schema generation allows.
type ValidationError struct {
	Path       string
	Message    string
	Suggestion string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	if e.Path != "" {
		sb.WriteString(e.Path)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.Suggestion != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Suggestion)
		sb.WriteString(")")
	}
	return sb.String()
}

// allowedTokenTypes is the closed set of $type values a TOKEN node may
// declare in a DTCG document (spec.md §4.4 rule 4). number, string, and
// boolean are valid normalized token types (spec.md §3) but are never
// declared directly by a DTCG document in this spec's scope, so they
// are deliberately absent here.
var allowedTokenTypes = map[string]bool{
	"color":         true,
	"dimension":     true,
	"fontFamily":    true,
	"fontSize":      true,
	"fontWeight":    true,
	"lineHeight":    true,
	"letterSpacing": true,
	"borderRadius":  true,
	"shadow":        true,
}

// Validate checks a parsed document both structurally (spec.md §4.4:
// $schema typing, $type allow-list, $value presence and shape) and for
// internal consistency against its schema generation: draft documents
// must not use 2025.10-only syntax ($ref, $extends, $root, structured
// color objects), and 2025.10 documents must not mix in draft-only
// group markers alongside $root, or use bare string colors. Rule 1
// ("the document root is an object") is satisfied by construction: the
// data parameter is already a map[string]any, which Parse's YAML and
// JSON paths both reject producing from a non-object root.
func Validate(data map[string]any, version Version) []ValidationError {
	errs := validateStructure(data, nil, "")

	switch version {
	case Draft:
		errs = append(errs, validateDraft(data, nil)...)
	case V2025_10:
		errs = append(errs, validateV2025(data, nil)...)
	}

	return errs
}

// validateStructure walks a parsed document enforcing spec.md §4.4
// rules 2-7: $schema, when present, must be a string; a node's $type,
// own or inherited from an enclosing group (the same inheritance
// flattenGroup applies), must be one of allowedTokenTypes; a node
// carrying $value is a TOKEN and must resolve to a $type (own or
// inherited) whose allowed shape its $value matches; any other
// map-valued, non-"$"-prefixed child is a GROUP and is recursed into
// with the current type as its children's inherited type.
func validateStructure(data map[string]any, path []string, inheritedType string) []ValidationError {
	var errs []ValidationError
	pathStr := strings.Join(path, ".")

	if schema, ok := data["$schema"]; ok {
		if _, isString := schema.(string); !isString {
			schemaPath := "$schema"
			if pathStr != "" {
				schemaPath = pathStr + ".$schema"
			}
			errs = append(errs, ValidationError{
				Path:    schemaPath,
				Message: fmt.Sprintf("$schema must be a string, got %T", schema),
			})
		}
	}

	currentType := inheritedType
	if typ, declared := data["$type"]; declared {
		typStr, isString := typ.(string)
		switch {
		case !isString:
			errs = append(errs, ValidationError{
				Path:    pathStr,
				Message: fmt.Sprintf("$type must be a string, got %T", typ),
			})
		case !allowedTokenTypes[typStr]:
			errs = append(errs, ValidationError{
				Path:       pathStr,
				Message:    fmt.Sprintf("unknown token $type %q", typStr),
				Suggestion: "must be one of color, dimension, fontFamily, fontSize, fontWeight, lineHeight, letterSpacing, borderRadius, shadow",
			})
		default:
			currentType = typStr
		}
	}

	if value, hasValue := data["$value"]; hasValue {
		switch {
		case currentType == "":
			errs = append(errs, ValidationError{
				Path:    pathStr,
				Message: "token has $value but no $type, own or inherited",
			})
		case allowedTokenTypes[currentType] && !valueShapeOK(currentType, value):
			errs = append(errs, ValidationError{
				Path:    pathStr,
				Message: fmt.Sprintf("$value has an invalid shape for $type %q: %T", currentType, value),
			})
		}
		return errs
	}

	children := make(map[string]map[string]any)
	for key, value := range data {
		if strings.HasPrefix(key, "$") && key != "$root" {
			continue
		}
		if valueMap, ok := value.(map[string]any); ok {
			children[key] = valueMap
		}
	}

	if len(children) == 0 {
		if _, ownType := data["$type"]; ownType {
			errs = append(errs, ValidationError{
				Path:    pathStr,
				Message: "token is missing $value",
			})
		}
		return errs
	}

	for key, valueMap := range children {
		currentPath := path
		if key != "$root" {
			currentPath = append(path[:len(path):len(path)], key)
		}
		errs = append(errs, validateStructure(valueMap, currentPath, currentType)...)
	}

	return errs
}

// valueShapeOK reports whether value is a permissible primitive shape
// for a TOKEN declaring $type typ (spec.md §4.4 rule 6). Final numeric
// parsing (dimension units, color channel ranges, and so on) is left
// to the normalizer (C6); this only rules out shapes that could never
// be valid, such as a color given as a number.
func valueShapeOK(typ string, value any) bool {
	switch typ {
	case "color":
		switch value.(type) {
		case string, map[string]any:
			return true
		default:
			return false
		}
	case "dimension", "fontFamily", "fontSize", "letterSpacing", "borderRadius":
		_, ok := value.(string)
		return ok
	case "fontWeight", "lineHeight":
		switch value.(type) {
		case string, float64:
			return true
		default:
			return false
		}
	case "shadow":
		switch value.(type) {
		case string, map[string]any, []any:
			return true
		default:
			return false
		}
	default:
		return true
	}
}

func validateDraft(data map[string]any, path []string) []ValidationError {
	var errs []ValidationError

	for key, value := range data {
		currentPath := append(path[:len(path):len(path)], key)
		pathStr := strings.Join(currentPath, ".")

		switch key {
		case "$ref":
			errs = append(errs, ValidationError{
				Path:       pathStr,
				Message:    "$ref is not valid in draft schema",
				Suggestion: "use curly-brace references like {token.path}, or declare $schema as 2025.10",
			})
			continue
		case "$extends":
			errs = append(errs, ValidationError{
				Path:       pathStr,
				Message:    "$extends is not valid in draft schema",
				Suggestion: "declare $schema as 2025.10 to use group extensions",
			})
			continue
		case "$root":
			errs = append(errs, ValidationError{
				Path:       pathStr,
				Message:    "$root is not valid in draft schema",
				Suggestion: "use a group marker like \"_\", or declare $schema as 2025.10",
			})
			continue
		}

		valueMap, ok := value.(map[string]any)
		if !ok {
			continue
		}

		if isColorToken(valueMap, path) {
			if rawValue, hasValue := valueMap["$value"]; hasValue {
				if colorMap, isMap := rawValue.(map[string]any); isMap {
					if _, hasColorSpace := colorMap["colorSpace"]; hasColorSpace {
						errs = append(errs, ValidationError{
							Path:       pathStr,
							Message:    "structured color values are not valid in draft schema",
							Suggestion: "use a string color like \"#RRGGBB\", or declare $schema as 2025.10",
						})
					}
				}
			}
		}

		errs = append(errs, validateDraft(valueMap, currentPath)...)
	}

	return errs
}

func validateV2025(data map[string]any, path []string) []ValidationError {
	var errs []ValidationError

	hasRoot := false
	hasGroupMarker := false
	groupMarkerPath := ""

	for key, value := range data {
		currentPath := append(path[:len(path):len(path)], key)
		pathStr := strings.Join(currentPath, ".")

		if key == "$schema" {
			continue
		}
		if key == "$root" {
			hasRoot = true
		}
		if isGroupMarker(key) {
			hasGroupMarker = true
			groupMarkerPath = pathStr
		}

		valueMap, ok := value.(map[string]any)
		if !ok {
			continue
		}

		if isColorToken(valueMap, path) {
			if rawValue, hasValue := valueMap["$value"]; hasValue {
				if colorStr, isString := rawValue.(string); isString {
					errs = append(errs, ValidationError{
						Path:       pathStr,
						Message:    fmt.Sprintf("string color value %q is not valid in 2025.10 schema", colorStr),
						Suggestion: "use a structured color object with colorSpace and components",
					})
				}
			}
		}

		errs = append(errs, validateV2025(valueMap, currentPath)...)
	}

	switch {
	case hasRoot && hasGroupMarker:
		errs = append(errs, ValidationError{
			Path:       strings.Join(path, "."),
			Message:    "conflicting root token patterns: both $root and a group marker found",
			Suggestion: "use only $root in 2025.10 schema",
		})
	case hasGroupMarker:
		errs = append(errs, ValidationError{
			Path:       groupMarkerPath,
			Message:    "group marker tokens are deprecated in 2025.10 schema",
			Suggestion: "use $root instead",
		})
	}

	return errs
}

func isColorToken(valueMap map[string]any, parentPath []string) bool {
	if t, ok := valueMap["$type"].(string); ok {
		return t == "color"
	}
	for i := len(parentPath) - 1; i >= 0; i-- {
		if parentPath[i] == "color" || parentPath[i] == "colors" {
			return true
		}
	}
	return false
}

func isGroupMarker(key string) bool {
	return key == "_" || key == "-" || key == "."
}
