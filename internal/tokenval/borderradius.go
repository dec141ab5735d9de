/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package tokenval

import (
	"regexp"
	"strconv"
	"strings"

	"tokenpipe.dev/tokenpipe/token"
)

// BorderRadiusPattern extends DimensionPattern with a bare "%" unit,
// resolving the open question in spec.md §9: a DTCG borderRadius token
// whose $value is "50%" gets its own permissive unit set rather than
// being rejected by the dimension parser or silently coerced into one
// of its units.
var BorderRadiusPattern = regexp.MustCompile(`(?i)^(-?\d+(?:\.\d+)?)(px|rem|em|%)$`)

// ParseBorderRadius decodes a single border-radius literal. Per-corner
// overrides are assembled by the caller (the DTCG normalizer) from a
// structured $value object; this function only handles one scalar.
func ParseBorderRadius(s string) (token.BorderRadiusValue, bool) {
	s = strings.TrimSpace(s)
	m := BorderRadiusPattern.FindStringSubmatch(s)
	if m == nil {
		return token.BorderRadiusValue{}, false
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil || !isFinite(value) {
		return token.BorderRadiusValue{}, false
	}

	unit := token.BorderRadiusUnit(strings.ToLower(m[2]))
	return token.BorderRadiusValue{Value: value, Unit: unit}, true
}
