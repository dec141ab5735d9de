/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package figmavars

import "tokenpipe.dev/tokenpipe/token"

// nameTables are the three read-only lookup maps built once per
// ingest and consulted by every variable's normalization: the alias
// id→name map, the mode id→human name map, and the collection
// id→default-mode-id map (spec.md §5: "shared resources inside the
// core are read-only after construction").
type nameTables struct {
	idToName           map[string]string
	modeIDToName       map[string]string
	collectionDefaults map[string]string
}

func buildNameTables(variables map[string]*Variable, collections map[string]*Collection) nameTables {
	t := nameTables{
		idToName:           make(map[string]string, len(variables)),
		modeIDToName:       make(map[string]string),
		collectionDefaults: make(map[string]string, len(collections)),
	}

	for id, v := range variables {
		t.idToName[id] = normalizeVariableName(v.Name)
	}

	for id, c := range collections {
		t.collectionDefaults[id] = c.DefaultModeID
		for _, mode := range c.Modes {
			t.modeIDToName[mode.ModeID] = mode.Name
		}
	}

	return t
}

// normalizeVariableName converts a raw Figma variable name into the
// normalized token path it becomes (spec.md §4.7 step 2): lowercase,
// "/" becomes ".", whitespace runs become "-". Delegates to the same
// helper the DTCG normalizer (C6) uses, since both sources must agree
// on what a given raw name normalizes to.
func normalizeVariableName(name string) string {
	return token.NormalizeName(name)
}
