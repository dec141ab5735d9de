/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package ingest orchestrates one source (a DTCG document or a Figma
// variables collection) through parsing, normalization, and cross-token
// validation into a single token.TokenSet.
package ingest

import (
	"context"

	"tokenpipe.dev/tokenpipe/token"
)

// Result is what one Importer produces: the normalized tokens it could
// build, plus any soft diagnostics collected along the way. Warnings
// never stop the importer; Errors record per-token failures that were
// skipped but don't by themselves fail the whole source (spec.md §6/§7
// soft-failure policy) — a non-empty Errors slice combined with a non-nil
// TokenSet means "partial success".
type Result struct {
	TokenSet *token.TokenSet
	Warnings []string
	Errors   []string
}

// Importer ingests exactly one source into a Result. A failure that
// stops the source is returned as an error built with ingesterr.New:
// ingesterr.ClassFatal when the source could not be read, fetched or
// processed, ingesterr.ClassValidation when a DTCG document fails
// structural validation. Per-token problems become Result.Warnings
// entries.
type Importer interface {
	Ingest(ctx context.Context) (*Result, error)
}
