/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ingest

import (
	"context"
	"fmt"

	"tokenpipe.dev/tokenpipe/config"
	"tokenpipe.dev/tokenpipe/figmavars"
	"tokenpipe.dev/tokenpipe/internal/ingesterr"
	"tokenpipe.dev/tokenpipe/token"
)

// FigmaImporter ingests one Figma file's Variables REST API response.
type FigmaImporter struct {
	Spec   config.SourceSpec
	Client *figmavars.Client
}

func (imp *FigmaImporter) Ingest(ctx context.Context) (*Result, error) {
	client := imp.Client
	if client == nil {
		client = &figmavars.Client{
			APIKey:  imp.Spec.APIKey,
			FileKey: imp.Spec.FileKey,
			BaseURL: imp.Spec.BaseURL,
		}
	}

	fetched, err := client.Fetch(ctx)
	if err != nil {
		return nil, ingesterr.New(ingesterr.ClassFatal, err)
	}

	var warnings []string
	if fetched.CollectionsErr != nil {
		warnings = append(warnings, fmt.Sprintf("Failed to fetch variable collections: %v. Continuing with mode IDs instead of names.", fetched.CollectionsErr))
	}

	ts, normWarnings := figmavars.Normalize(fetched.Variables, fetched.Collections, token.Metadata{
		Source: token.SourceFigma,
		Name:   fmt.Sprintf("Figma Variables - %s", imp.Spec.FileKey),
	})
	warnings = append(warnings, normWarnings...)

	return &Result{TokenSet: ts, Warnings: warnings}, nil
}
