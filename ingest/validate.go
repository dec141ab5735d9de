/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ingest

import (
	"fmt"
	"sort"

	"tokenpipe.dev/tokenpipe/token"
)

// AliasViolation records a reference that does not resolve to a known
// token, qualified with its originating mode name when it came from a
// Modes entry rather than a token's primary value.
type AliasViolation struct {
	TokenName string
	Reference string
	Mode      string
}

func (v AliasViolation) String() string {
	if v.Mode == "" {
		return fmt.Sprintf("%s -> %s", v.TokenName, v.Reference)
	}
	return fmt.Sprintf("%s (mode: %s) -> %s", v.TokenName, v.Mode, v.Reference)
}

// CrossValidationResult is C9's combined report: required types with
// no representative token, dangling alias references, and any cycle
// found in the alias graph.
type CrossValidationResult struct {
	MissingTypes []token.Type
	Aliases      []AliasViolation
	Cycle        []string
}

// Clean reports whether the token set passed every check.
func (r CrossValidationResult) Clean() bool {
	return len(r.MissingTypes) == 0 && len(r.Aliases) == 0 && len(r.Cycle) == 0
}

// ValidateCrossToken runs the three independent checks spec.md §4.9
// requires across an assembled token set: required-type coverage,
// alias-target existence, and alias-graph cycle detection.
func ValidateCrossToken(ts *token.TokenSet) CrossValidationResult {
	return CrossValidationResult{
		MissingTypes: missingRequiredTypes(ts),
		Aliases:      danglingAliases(ts),
		Cycle:        findAliasCycle(ts),
	}
}

func missingRequiredTypes(ts *token.TokenSet) []token.Type {
	present := make(map[token.Type]bool)
	for _, t := range ts.Tokens {
		present[t.Type] = true
	}

	var missing []token.Type
	for _, req := range token.RequiredTypes {
		if !present[req] {
			missing = append(missing, req)
		}
	}
	return missing
}

func danglingAliases(ts *token.TokenSet) []AliasViolation {
	var violations []AliasViolation

	for _, name := range sortedNames(ts) {
		t := ts.Tokens[name]

		if t.Value.IsAlias() {
			if _, ok := ts.Lookup(t.Value.Reference); !ok {
				violations = append(violations, AliasViolation{TokenName: t.Name, Reference: t.Value.Reference})
			}
		}

		for _, modeName := range sortedModeNames(t.Modes) {
			mv := t.Modes[modeName]
			if mv.IsAlias() {
				if _, ok := ts.Lookup(mv.Reference); !ok {
					violations = append(violations, AliasViolation{TokenName: t.Name, Reference: mv.Reference, Mode: modeName})
				}
			}
		}
	}

	return violations
}

// findAliasCycle builds the alias graph from primary values only (per
// spec.md §4.9.3) and runs a depth-first, three-color search: white
// (unvisited), gray (on the current path), black (fully explored). A
// cycle is reported as the path from the re-encountered gray node
// forward to the node that closed the loop.
func findAliasCycle(ts *token.TokenSet) []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(ts.Tokens))

	var path []string
	var cycle []string

	var visit func(name string) bool
	visit = func(name string) bool {
		switch color[name] {
		case black:
			return false
		case gray:
			for i, n := range path {
				if n == name {
					cycle = append(append([]string{}, path[i:]...), name)
					return true
				}
			}
			cycle = append(append([]string{}, path...), name)
			return true
		}

		tok, ok := ts.Lookup(name)
		if !ok || !tok.Value.IsAlias() {
			color[name] = black
			return false
		}

		color[name] = gray
		path = append(path, name)

		if visit(tok.Value.Reference) {
			return true
		}

		path = path[:len(path)-1]
		color[name] = black
		return false
	}

	for _, name := range sortedNames(ts) {
		if color[name] == white {
			if visit(name) {
				return cycle
			}
		}
	}

	return nil
}

func sortedNames(ts *token.TokenSet) []string {
	names := ts.Names()
	sort.Strings(names)
	return names
}

func sortedModeNames(modes map[string]token.TokenValueOrAlias) []string {
	names := make([]string, 0, len(modes))
	for name := range modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
