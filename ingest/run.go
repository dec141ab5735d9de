/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ingest

import (
	"context"
	"fmt"
	"strings"

	"tokenpipe.dev/tokenpipe/config"
	"tokenpipe.dev/tokenpipe/figmavars"
	"tokenpipe.dev/tokenpipe/internal/ingesterr"
	"tokenpipe.dev/tokenpipe/internal/platform"
	"tokenpipe.dev/tokenpipe/token"
)

// SourceResult pairs one configured source with what happened when it
// was ingested: either a Result, or an error that aborted that
// source's ingest without aborting the others (spec.md §7 policy).
type SourceResult struct {
	Spec   config.SourceSpec
	Result *Result
	Err    error
}

// RunResult is the merged outcome of ingesting every configured
// source into a single token.TokenSet, plus the C9 cross-validation
// report run against the merge.
type RunResult struct {
	TokenSet        *token.TokenSet
	Warnings        []string
	Errors          []string
	SourceResults   []SourceResult
	CrossValidation CrossValidationResult
}

// Run ingests every source in cfg, merging their token sets (later
// source wins on a name collision, warned), and runs the cross-token
// validator over the result. A structural or transport failure in one
// source is recorded in SourceResults and does not stop the rest; Run
// itself only returns an error when configuration validation fails or
// every configured source failed.
func Run(ctx context.Context, cfg *config.Config, filesystem platform.FileSystem) (*RunResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, ingesterr.New(ingesterr.ClassValidation, err)
	}

	merged := token.NewTokenSet(token.Metadata{})
	var warnings, errs []string
	var sourceResults []SourceResult
	var names []string
	succeeded := 0
	worstClass := ingesterr.ClassValidation

	for _, src := range cfg.Sources {
		imp := buildImporter(src, filesystem)

		res, err := imp.Ingest(ctx)
		if err != nil {
			errs = append(errs, err.Error())
			if ingesterr.ClassOf(err) == ingesterr.ClassFatal {
				worstClass = ingesterr.ClassFatal
			}
			sourceResults = append(sourceResults, SourceResult{Spec: src, Err: err})
			continue
		}

		succeeded++
		warnings = append(warnings, res.Warnings...)
		errs = append(errs, res.Errors...)
		if res.TokenSet != nil && res.TokenSet.Metadata.Name != "" {
			names = append(names, res.TokenSet.Metadata.Name)
		}
		mergeInto(merged, res.TokenSet, &warnings)
		sourceResults = append(sourceResults, SourceResult{Spec: src, Result: res})
	}

	if len(cfg.Sources) > 0 && succeeded == 0 {
		return nil, ingesterr.New(worstClass, fmt.Errorf("all sources failed: %s", strings.Join(errs, "; ")))
	}

	if succeeded == 1 {
		for _, sr := range sourceResults {
			if sr.Result != nil {
				merged.Metadata = sr.Result.TokenSet.Metadata
			}
		}
	} else if len(names) > 0 {
		merged.Metadata = token.Metadata{Name: strings.Join(names, " + ")}
	}

	cross := ValidateCrossToken(merged)

	return &RunResult{
		TokenSet:        merged,
		Warnings:        warnings,
		Errors:          errs,
		SourceResults:   sourceResults,
		CrossValidation: cross,
	}, nil
}

func buildImporter(src config.SourceSpec, filesystem platform.FileSystem) Importer {
	switch src.Type {
	case config.SourceTypeFigma:
		return &FigmaImporter{
			Spec: src,
			Client: &figmavars.Client{
				APIKey:  src.APIKey,
				FileKey: src.FileKey,
				BaseURL: src.BaseURL,
			},
		}
	default:
		return &DTCGImporter{
			Spec:         src,
			FileSystem:   filesystem,
			GroupMarkers: []string{"_"},
		}
	}
}

// mergeInto folds src's tokens into dst, warning on every name
// collision and letting the later (src's) definition win, matching
// the single-source collision policy every normalizer already follows.
func mergeInto(dst, src *token.TokenSet, warnings *[]string) {
	if src == nil {
		return
	}
	for _, name := range src.Names() {
		tok, _ := src.Lookup(name)
		if dst.Add(tok) {
			*warnings = append(*warnings, fmt.Sprintf("%s: duplicate token name across sources, later source wins", name))
		}
	}
}
