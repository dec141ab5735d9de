/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package tokenval

import (
	"fmt"

	"tokenpipe.dev/tokenpipe/token"
)

// ErrShadowStringUnsupported is the diagnostic ParseShadow returns when
// given a bare string. Spec.md §4.3 explicitly leaves string-form
// shadows unsupported.
var ErrShadowStringUnsupported = fmt.Errorf("string-form shadow values are not supported")

// ParseShadow decodes a structured shadow object, or the first element
// of an array of shadow objects — the remainder of the array is
// silently dropped, a documented limitation (spec.md §4.3, §9).
func ParseShadow(value any) (token.ShadowValue, bool, error) {
	switch v := value.(type) {
	case string:
		return token.ShadowValue{}, false, ErrShadowStringUnsupported
	case []any:
		if len(v) == 0 {
			return token.ShadowValue{}, false, nil
		}
		return parseShadowObject(v[0])
	case map[string]any:
		return parseShadowObject(v)
	default:
		return token.ShadowValue{}, false, nil
	}
}

func parseShadowObject(value any) (token.ShadowValue, bool, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return token.ShadowValue{}, false, nil
	}

	colorRaw, _ := obj["color"].(string)
	color, ok, diag := ParseColor(colorRaw)
	if !ok {
		return token.ShadowValue{}, false, diag
	}

	result := token.ShadowValue{
		Color:   color,
		OffsetX: numericOrZero(obj["offsetX"]),
		OffsetY: numericOrZero(obj["offsetY"]),
		Blur:    numericOrZero(obj["blur"]),
	}

	if spreadRaw, present := obj["spread"]; present {
		if spread, ok := spreadRaw.(float64); ok {
			result.Spread = &spread
		}
	}
	if insetRaw, present := obj["inset"]; present {
		if inset, ok := insetRaw.(bool); ok {
			result.Inset = &inset
		}
	}

	return result, true, nil
}

func numericOrZero(v any) float64 {
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return f
}
