/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package dtcg implements the Design Tokens Community Group ingest
// pipeline: parsing a document into a raw tree, validating it,
// flattening it to individual tokens, resolving $extends group
// inheritance, and normalizing each token into the shared token model.
package dtcg

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Parse decodes a DTCG document from either JSON (with comments, via
// jsonc) or YAML into a root map. It does not validate or flatten.
func Parse(data []byte) (map[string]any, error) {
	var raw map[string]any

	if isLikelyJSON(data) {
		clean := jsonc.ToJSON(data)
		if err := json.Unmarshal(clean, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse dtcg json: %w", err)
		}
		return raw, nil
	}

	var yamlRaw any
	if err := yaml.Unmarshal(data, &yamlRaw); err != nil {
		return nil, fmt.Errorf("failed to parse dtcg yaml: %w", err)
	}

	normalized, ok := normalizeMap(yamlRaw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("dtcg document root must be an object")
	}
	return normalized, nil
}

// isLikelyJSON reports whether data looks like JSON rather than YAML:
// JSON documents for this pipeline are always a top-level object.
func isLikelyJSON(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r', 0xEF, 0xBB, 0xBF:
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}

// normalizeMap converts YAML's map[any]any (produced for non-string
// keys) into map[string]any recursively, so every downstream consumer
// of a parsed document can assume string keys unconditionally.
func normalizeMap(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, val := range x {
			x[k] = normalizeMap(val)
		}
		return x
	case map[any]any:
		result := make(map[string]any, len(x))
		for k, val := range x {
			result[fmt.Sprintf("%v", k)] = normalizeMap(val)
		}
		return result
	case []any:
		for i, val := range x {
			x[i] = normalizeMap(val)
		}
		return x
	default:
		return v
	}
}
