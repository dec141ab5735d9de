/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeName converts a raw path-like name (a DTCG dotted path or a
// Figma variable name) into the normalized token name spec invariant 1
// requires: lowercase, "/" replaced with ".", and whitespace runs
// collapsed to a single hyphen. Shared by the DTCG normalizer (C6) and
// the variables normalizer (C7) so the two sources agree on what a
// given raw name becomes.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "/", ".")
	name = whitespaceRun.ReplaceAllString(name, "-")
	return name
}

// NormalizedToken is one token in the interchange model every importer
// converges on. Instances are built once by a normalizer and are
// immutable thereafter.
type NormalizedToken struct {
	// ID is Name with dots replaced by hyphens (spec invariant 2).
	ID string `json:"id"`

	// Name is lowercase and dot-separated (spec invariant 1).
	Name string `json:"name"`

	Type Type `json:"type"`

	// Value is the default/primary value (or alias) for this token.
	Value TokenValueOrAlias `json:"value"`

	// Modes holds additional per-mode values, keyed by human-readable
	// mode name (or mode ID as a fallback). Never present-but-empty:
	// an empty map is collapsed to nil (spec invariant 5).
	Modes map[string]TokenValueOrAlias `json:"modes,omitempty"`

	Description string         `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// NewNormalizedToken builds a token from a normalized name, enforcing
// invariants 1 and 2 in one place rather than at every normalizer call
// site.
func NewNormalizedToken(name string, typ Type, value TokenValueOrAlias) *NormalizedToken {
	return &NormalizedToken{
		ID:    strings.ReplaceAll(name, ".", "-"),
		Name:  name,
		Type:  typ,
		Value: value,
	}
}

// SetModes assigns the per-mode map, collapsing an empty map to nil so
// callers never need to special-case len(Modes) == 0 vs. Modes == nil.
func (t *NormalizedToken) SetModes(modes map[string]TokenValueOrAlias) {
	if len(modes) == 0 {
		t.Modes = nil
		return
	}
	t.Modes = modes
}

// SourceKind is the closed set of ingest sources a TokenSet can report.
type SourceKind string

const (
	SourceFigma SourceKind = "figma"
	SourceDTCG  SourceKind = "dtcg"
)

// Metadata describes provenance for a TokenSet.
type Metadata struct {
	Source      SourceKind `json:"source"`
	Name        string     `json:"name,omitempty"`
	Version     string     `json:"version,omitempty"`
	Description string     `json:"description,omitempty"`
}

// TokenSet is the aggregated, normalized output of one ingest
// invocation: a name-keyed token map plus its provenance metadata.
type TokenSet struct {
	Tokens   map[string]*NormalizedToken `json:"tokens"`
	Metadata Metadata                    `json:"metadata"`
}

// NewTokenSet creates an empty TokenSet with the given metadata.
func NewTokenSet(meta Metadata) *TokenSet {
	return &TokenSet{
		Tokens:   make(map[string]*NormalizedToken),
		Metadata: meta,
	}
}

// Add inserts a token by name, reporting whether a prior token with
// the same name is being overwritten (the collision case every
// normalizer must warn about and let the later value win).
func (ts *TokenSet) Add(t *NormalizedToken) (collided bool) {
	_, collided = ts.Tokens[t.Name]
	ts.Tokens[t.Name] = t
	return collided
}

// Lookup returns the token with the given name, if present.
func (ts *TokenSet) Lookup(name string) (*NormalizedToken, bool) {
	t, ok := ts.Tokens[name]
	return t, ok
}

// Names returns every token name in the set, order unspecified.
func (ts *TokenSet) Names() []string {
	names := make([]string, 0, len(ts.Tokens))
	for name := range ts.Tokens {
		names = append(names, name)
	}
	return names
}

// ByType returns every token of the given type, order unspecified.
func (ts *TokenSet) ByType(t Type) []*NormalizedToken {
	var out []*NormalizedToken
	for _, tok := range ts.Tokens {
		if tok.Type == t {
			out = append(out, tok)
		}
	}
	return out
}
