/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package token defines the normalized design token model that every
// importer converges on, regardless of source format.
package token

import "fmt"

// Type is the closed set of normalized token kinds.
type Type int

const (
	// Unknown marks a token whose type could not be determined.
	Unknown Type = iota
	Color
	Spacing
	Typography
	BorderRadius
	Shadow
	Dimension
	Number
	String
	Boolean
)

// String returns the canonical lowercase name of the type.
func (t Type) String() string {
	switch t {
	case Color:
		return "color"
	case Spacing:
		return "spacing"
	case Typography:
		return "typography"
	case BorderRadius:
		return "borderRadius"
	case Shadow:
		return "shadow"
	case Dimension:
		return "dimension"
	case Number:
		return "number"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the type as its canonical name.
func (t Type) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// TypeFromString parses a canonical type name back into a Type.
func TypeFromString(s string) (Type, error) {
	switch s {
	case "color":
		return Color, nil
	case "spacing":
		return Spacing, nil
	case "typography":
		return Typography, nil
	case "borderRadius":
		return BorderRadius, nil
	case "shadow":
		return Shadow, nil
	case "dimension":
		return Dimension, nil
	case "number":
		return Number, nil
	case "string":
		return String, nil
	case "boolean":
		return Boolean, nil
	default:
		return Unknown, fmt.Errorf("unrecognized token type: %q", s)
	}
}

// RequiredTypes is the set of types the cross-token validator requires
// at least one token of, per the required-type coverage check.
var RequiredTypes = []Type{Color, Spacing, Typography, BorderRadius, Shadow}
