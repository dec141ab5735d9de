/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package dtcg

import "fmt"

// Version is the DTCG schema generation a document was authored against.
// tokenpipe normalizes both into the same token model, but a handful of
// structural checks (color value shape, group-inheritance syntax) only
// make sense relative to one generation or the other.
type Version int

const (
	// Unknown means no generation could be determined.
	Unknown Version = iota
	// Draft is the editor's-draft generation: string color values,
	// curly-brace-only references, "_"-style group markers.
	Draft
	// V2025_10 is the 2025.10 generation: structured color objects,
	// $ref JSON Pointers, $extends, and $root.
	V2025_10
)

func (v Version) String() string {
	switch v {
	case Draft:
		return "draft"
	case V2025_10:
		return "v2025.10"
	default:
		return "unknown"
	}
}

// FromURL maps a $schema URL to a Version.
func FromURL(url string) (Version, error) {
	switch url {
	case "https://www.designtokens.org/schemas/draft.json":
		return Draft, nil
	case "https://www.designtokens.org/schemas/2025.10.json":
		return V2025_10, nil
	default:
		return Unknown, fmt.Errorf("unrecognized schema url: %s", url)
	}
}

// DetectVersion determines a document's schema generation, in priority
// order: an explicit $schema field, then duck-typing on generation-
// specific features, defaulting to Draft when nothing else matches.
func DetectVersion(data map[string]any) Version {
	if schemaURL, ok := data["$schema"].(string); ok {
		if v, err := FromURL(schemaURL); err == nil {
			return v
		}
	}

	if duckTyped := duckTypeVersion(data); duckTyped != Unknown {
		return duckTyped
	}

	return Draft
}

func duckTypeVersion(data map[string]any) Version {
	for _, feature := range []string{"$ref", "$extends", "$root"} {
		if hasFeature(data, feature) {
			return V2025_10
		}
	}
	if hasStructuredColorObjects(data) {
		return V2025_10
	}
	return Unknown
}

func hasFeature(data map[string]any, name string) bool {
	if _, ok := data[name]; ok {
		return true
	}
	for _, v := range data {
		if hasFeatureInValue(v, name) {
			return true
		}
	}
	return false
}

func hasFeatureInValue(v any, name string) bool {
	switch x := v.(type) {
	case map[string]any:
		return hasFeature(x, name)
	case []any:
		for _, elem := range x {
			if hasFeatureInValue(elem, name) {
				return true
			}
		}
	}
	return false
}

func hasStructuredColorObjects(v any) bool {
	switch x := v.(type) {
	case map[string]any:
		if t, _ := x["$type"].(string); t == "color" {
			if value, ok := x["$value"].(map[string]any); ok {
				if _, hasColorSpace := value["colorSpace"]; hasColorSpace {
					return true
				}
			}
		}
		for _, child := range x {
			if hasStructuredColorObjects(child) {
				return true
			}
		}
	case []any:
		for _, elem := range x {
			if hasStructuredColorObjects(elem) {
				return true
			}
		}
	}
	return false
}
