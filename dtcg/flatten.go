/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package dtcg

import (
	"maps"
	"slices"
	"sort"
	"strings"
)

// RawToken is one token as it comes out of flattening: still carrying
// its raw, untyped $value and unvalidated $type string. normalize.go
// converts RawTokens into token.NormalizedToken; nothing before that
// point inspects value shapes beyond what flattening itself needs.
type RawToken struct {
	// Name is the dot-joined path to this token, e.g. "color.brand.primary".
	Name string
	Path []string

	Type        string
	Value       any
	Description string
	Extensions  map[string]any
	Deprecated  bool
}

// Flatten walks a parsed DTCG document and returns every token it
// contains, handling $type inheritance from enclosing groups and the
// draft schema's transparent group markers ("_" and friends, via
// groupMarkers) alongside the 2025.10 $root keyword. A group whose
// children are entirely typography-property tokens (fontFamily,
// fontSize, and optionally fontWeight/lineHeight/letterSpacing) is
// composed into one synthetic typography token instead of emitting
// its children individually.
func Flatten(data map[string]any, version Version, groupMarkers []string) []*RawToken {
	var result []*RawToken
	flattenGroup(data, nil, "", groupMarkers, version, &result)
	return result
}

// typographyPropertyKeys is the set of child keys a typography group
// may contain (spec.md §4.5); any other non-metadata key disqualifies
// the group from composition.
var typographyPropertyKeys = map[string]bool{
	"fontFamily":    true,
	"fontSize":      true,
	"fontWeight":    true,
	"lineHeight":    true,
	"letterSpacing": true,
}

// typographyPropertyTypes is the set of $type values a typography
// group's children may declare.
var typographyPropertyTypes = map[string]bool{
	"fontFamily":    true,
	"fontSize":      true,
	"fontWeight":    true,
	"lineHeight":    true,
	"letterSpacing": true,
	"dimension":     true,
}

// isTypographyGroup reports whether every non-metadata child of data
// is itself a $type-bearing typography-property token, with at least
// fontFamily and fontSize among them.
func isTypographyGroup(data map[string]any) bool {
	if len(data) == 0 {
		return false
	}

	hasFontFamily := false
	hasFontSize := false

	for key, value := range data {
		if !typographyPropertyKeys[key] {
			return false
		}

		childMap, ok := value.(map[string]any)
		if !ok {
			return false
		}
		childType, _ := childMap["$type"].(string)
		if !typographyPropertyTypes[childType] {
			return false
		}
		if _, hasValue := childMap["$value"]; !hasValue {
			return false
		}

		switch key {
		case "fontFamily":
			hasFontFamily = true
		case "fontSize":
			hasFontSize = true
		}
	}

	return hasFontFamily && hasFontSize
}

// buildTypographyRawToken composes a typography group's children into
// one synthetic RawToken, carrying each property's raw $value forward
// for parseTypography (normalize.go) to parse.
func buildTypographyRawToken(path []string, groupMap, children map[string]any) *RawToken {
	composed := make(map[string]any, len(typographyPropertyKeys))
	for key := range typographyPropertyKeys {
		childMap, ok := children[key].(map[string]any)
		if !ok {
			continue
		}
		if v, ok := childMap["$value"]; ok {
			composed[key] = v
		}
	}

	rt := &RawToken{
		Name:  strings.Join(path, "."),
		Path:  slices.Clone(path),
		Type:  "typography",
		Value: composed,
	}
	if desc, ok := groupMap["$description"].(string); ok {
		rt.Description = desc
	}
	return rt
}

func flattenGroup(data map[string]any, jsonPath []string, inheritedType string, groupMarkers []string, version Version, result *[]*RawToken) {
	currentType := inheritedType
	if t, ok := data["$type"].(string); ok {
		currentType = t
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		if strings.HasPrefix(k, "$") && k != "$root" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		valueMap, ok := data[key].(map[string]any)
		if !ok {
			continue
		}

		isRoot := isRootToken(key, version, groupMarkers)
		_, hasValue := valueMap["$value"]
		_, hasRef := valueMap["$ref"]
		hasRef = hasRef && version != Draft
		isTransparentMarker := slices.Contains(groupMarkers, key) && !hasValue && !hasRef

		var currentPath []string
		if isTransparentMarker || isRoot {
			currentPath = jsonPath
		} else {
			currentPath = slices.Clip(append(jsonPath, key))
		}

		if hasValue || hasRef {
			*result = append(*result, buildRawToken(currentPath, valueMap, currentType))
		}

		if (!hasValue && !hasRef) || isRoot {
			filtered := filterMetadata(valueMap)

			if isTypographyGroup(filtered) {
				*result = append(*result, buildTypographyRawToken(currentPath, valueMap, filtered))
				continue
			}

			childType := currentType
			if t, ok := valueMap["$type"].(string); ok {
				childType = t
			}
			flattenGroup(filtered, currentPath, childType, groupMarkers, version, result)
		}
	}
}

func isRootToken(key string, version Version, groupMarkers []string) bool {
	switch version {
	case V2025_10:
		return key == "$root"
	case Draft:
		return slices.Contains(groupMarkers, key)
	default:
		return false
	}
}

func filterMetadata(valueMap map[string]any) map[string]any {
	result := make(map[string]any, len(valueMap))
	maps.Copy(result, valueMap)
	for _, k := range []string{"$type", "$value", "$description", "$extensions", "$deprecated", "$schema"} {
		delete(result, k)
	}
	return result
}

func buildRawToken(path []string, valueMap map[string]any, inheritedType string) *RawToken {
	value := valueMap["$value"]
	if value == nil {
		if ref, ok := valueMap["$ref"].(string); ok {
			value = "{" + strings.ReplaceAll(strings.TrimPrefix(ref, "#/"), "/", ".") + "}"
		}
	}

	rt := &RawToken{
		Name:  strings.Join(path, "."),
		Path:  slices.Clone(path),
		Value: value,
	}

	if t, ok := valueMap["$type"].(string); ok {
		rt.Type = t
	} else {
		rt.Type = inheritedType
	}
	if desc, ok := valueMap["$description"].(string); ok {
		rt.Description = desc
	}
	if ext, ok := valueMap["$extensions"].(map[string]any); ok {
		rt.Extensions = ext
	}
	if dep, ok := valueMap["$deprecated"]; ok {
		if b, ok := dep.(bool); ok {
			rt.Deprecated = b
		} else if _, ok := dep.(string); ok {
			rt.Deprecated = true
		}
	}

	return rt
}
