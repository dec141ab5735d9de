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

// DimensionPattern matches <number><unit> literals, case-insensitive
// on the unit, per spec.md §4.2.
var DimensionPattern = regexp.MustCompile(`(?i)^(-?\d+(?:\.\d+)?)(px|rem|em|pt)$`)

// ParseDimension decodes a "<number><unit>" literal. Non-string input
// is represented by the caller never invoking this with anything but
// a string; units outside {px,rem,em,pt} and malformed numbers both
// yield ok == false.
func ParseDimension(s string) (token.DimensionValue, bool) {
	s = strings.TrimSpace(s)
	m := DimensionPattern.FindStringSubmatch(s)
	if m == nil {
		return token.DimensionValue{}, false
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil || !isFinite(value) {
		return token.DimensionValue{}, false
	}

	unit := token.DimensionUnit(strings.ToLower(m[2]))
	return token.DimensionValue{Value: value, Unit: unit}, true
}
