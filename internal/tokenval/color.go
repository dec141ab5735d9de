/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package tokenval parses the primitive design-token value grammars
// (color, dimension, border-radius, shadow) into the normalized model
// in tokenpipe.dev/tokenpipe/token. Each parser follows the same
// "no-value on failure" contract: a parse that cannot succeed never
// panics or returns an error for the common case, it just reports ok
// == false so callers can skip the token and move on.
package tokenval

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mazznoer/csscolorparser"

	"tokenpipe.dev/tokenpipe/token"
)

const numberPattern = `(-?\d+(?:\.\d+)?)`

// LegacyRGBPattern and LegacyRGBAPattern match the CSS3 comma-separated
// functional color notations spec.md §4.1 specifies.
var (
	LegacyRGBPattern  = regexp.MustCompile(`^rgb\(\s*` + numberPattern + `\s*,\s*` + numberPattern + `\s*,\s*` + numberPattern + `\s*\)$`)
	LegacyRGBAPattern = regexp.MustCompile(`^rgba\(\s*` + numberPattern + `\s*,\s*` + numberPattern + `\s*,\s*` + numberPattern + `\s*(?:,\s*` + numberPattern + `\s*)?\)$`)
)

// ParseColor decodes a color literal (hex 3/6/8, rgb(...), rgba(...))
// into a normalized RGBA ColorValue with channels in [0,1].
//
// Empty input and unrecognized leading sequences both yield ok == false;
// the latter additionally returns a non-nil diagnostic error the caller
// may surface as a warning (spec requires this distinction: an unknown
// format is worth telling someone about, an empty string is not).
func ParseColor(s string) (token.ColorValue, bool, error) {
	if s == "" {
		return token.ColorValue{}, false, nil
	}

	switch {
	case strings.HasPrefix(s, "#"):
		v, ok := parseHex(s[1:])
		return v, ok, nil
	case strings.HasPrefix(s, "rgba("):
		v, ok := parseLegacyRGBA(s)
		return v, ok, nil
	case strings.HasPrefix(s, "rgb("):
		v, ok := parseLegacyRGB(s)
		return v, ok, nil
	default:
		if v, ok := parseCSSNamed(s); ok {
			return v, true, nil
		}
		return token.ColorValue{}, false, fmt.Errorf("unrecognized color format: %q", s)
	}
}

func parseHex(hex string) (token.ColorValue, bool) {
	if !isHexString(hex) {
		return token.ColorValue{}, false
	}

	switch len(hex) {
	case 3:
		r := hexByteDoubled(hex[0:1])
		g := hexByteDoubled(hex[1:2])
		b := hexByteDoubled(hex[2:3])
		return finiteColor(r/255, g/255, b/255, 1.0)
	case 6:
		r := hexByte(hex[0:2])
		g := hexByte(hex[2:4])
		b := hexByte(hex[4:6])
		return finiteColor(r/255, g/255, b/255, 1.0)
	case 8:
		r := hexByte(hex[0:2])
		g := hexByte(hex[2:4])
		b := hexByte(hex[4:6])
		a := hexByte(hex[6:8])
		return finiteColor(r/255, g/255, b/255, a/255)
	default:
		return token.ColorValue{}, false
	}
}

func isHexString(s string) bool {
	if len(s) != 3 && len(s) != 6 && len(s) != 8 {
		return false
	}
	for _, c := range s {
		if !isHexDigit(byte(c)) {
			return false
		}
	}
	return true
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexByte(nibbles string) float64 {
	n, err := strconv.ParseInt(nibbles, 16, 32)
	if err != nil {
		return math.NaN()
	}
	return float64(n)
}

func hexByteDoubled(nibble string) float64 {
	n, err := strconv.ParseInt(nibble+nibble, 16, 32)
	if err != nil {
		return math.NaN()
	}
	return float64(n)
}

func parseLegacyRGB(s string) (token.ColorValue, bool) {
	m := LegacyRGBPattern.FindStringSubmatch(s)
	if m == nil {
		return token.ColorValue{}, false
	}
	r, g, b := parseFloat(m[1]), parseFloat(m[2]), parseFloat(m[3])
	return finiteColor(r/255, g/255, b/255, 1.0)
}

func parseLegacyRGBA(s string) (token.ColorValue, bool) {
	m := LegacyRGBAPattern.FindStringSubmatch(s)
	if m == nil {
		return token.ColorValue{}, false
	}
	r, g, b := parseFloat(m[1]), parseFloat(m[2]), parseFloat(m[3])
	a := 1.0
	if m[4] != "" {
		a = parseFloat(m[4])
	}
	return finiteColor(r/255, g/255, b/255, a)
}

// parseCSSNamed handles CSS color keywords and functional notations
// (hsl, hwb, lab, ...) that the spec's own grammar doesn't cover but
// real-world DTCG documents frequently contain.
func parseCSSNamed(s string) (token.ColorValue, bool) {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return token.ColorValue{}, false
	}
	return finiteColor(c.R, c.G, c.B, c.A)
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func finiteColor(r, g, b, a float64) (token.ColorValue, bool) {
	if !isFinite(r) || !isFinite(g) || !isFinite(b) || !isFinite(a) {
		return token.ColorValue{}, false
	}
	return token.ColorValue{R: r, G: g, B: b, A: &a}, true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
