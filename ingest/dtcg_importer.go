/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tokenpipe.dev/tokenpipe/config"
	"tokenpipe.dev/tokenpipe/dtcg"
	"tokenpipe.dev/tokenpipe/internal/ingesterr"
	"tokenpipe.dev/tokenpipe/internal/platform"
	"tokenpipe.dev/tokenpipe/token"
)

// dtcgHTTPTimeout and dtcgHTTPMaxSize bound a remote DTCG document
// fetch exactly as the teacher's HTTPFetcher bounds CDN fetches: a
// hanging or oversized response must not hang or OOM the ingest run.
const (
	dtcgHTTPTimeout = 30 * time.Second
	dtcgHTTPMaxSize = 10 << 20 // 10 MiB
)

// DTCGImporter ingests one DTCG source: a local file (Spec.Path) or a
// remote document (Spec.URL), chosen by a one-line scheme sniff rather
// than the teacher's full npm:/jsr:/CDN-fallback specifier resolution,
// which is out of scope here.
type DTCGImporter struct {
	Spec       config.SourceSpec
	FileSystem platform.FileSystem
	HTTPClient *http.Client
	// GroupMarkers are the draft-schema transparent group marker keys
	// ("_", by convention) applied when flattening.
	GroupMarkers []string
}

func (imp *DTCGImporter) Ingest(ctx context.Context) (*Result, error) {
	data, err := imp.fetch(ctx)
	if err != nil {
		return nil, ingesterr.New(ingesterr.ClassFatal, fmt.Errorf("DTCG import failed: %v", err))
	}

	doc, err := dtcg.Parse(data)
	if err != nil {
		return nil, ingesterr.New(ingesterr.ClassFatal, fmt.Errorf("DTCG import failed: %v", err))
	}

	version := dtcg.DetectVersion(doc)

	if validationErrs := dtcg.Validate(doc, version); len(validationErrs) > 0 {
		msgs := make([]string, len(validationErrs))
		for i, ve := range validationErrs {
			msgs[i] = ve.Error()
		}
		return nil, ingesterr.New(ingesterr.ClassValidation,
			fmt.Errorf("DTCG import failed: %w: %s", ingesterr.ErrDTCGInvalid, strings.Join(msgs, "; ")))
	}

	flattened := dtcg.Flatten(doc, version, imp.GroupMarkers)

	extended, err := dtcg.ResolveExtends(flattened, doc, version)
	if err != nil {
		return nil, ingesterr.New(ingesterr.ClassFatal, fmt.Errorf("DTCG import failed: %w", err))
	}

	ts, warnings := dtcg.Normalize(extended, token.Metadata{
		Source: token.SourceDTCG,
		Name:   fmt.Sprintf("DTCG Tokens - %s", imp.locator()),
	})

	return &Result{TokenSet: ts, Warnings: warnings}, nil
}

func (imp *DTCGImporter) locator() string {
	if imp.Spec.URL != "" {
		return imp.Spec.URL
	}
	return imp.Spec.Path
}

func (imp *DTCGImporter) fetch(ctx context.Context) ([]byte, error) {
	if imp.Spec.URL != "" {
		return imp.fetchRemote(ctx, imp.Spec.URL)
	}
	if strings.HasPrefix(imp.Spec.Path, "http://") || strings.HasPrefix(imp.Spec.Path, "https://") {
		return imp.fetchRemote(ctx, imp.Spec.Path)
	}
	return imp.FileSystem.ReadFile(imp.Spec.Path)
}

func (imp *DTCGImporter) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	client := imp.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: dtcgHTTPTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "tokenpipe/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	return io.ReadAll(io.LimitReader(resp.Body, dtcgHTTPMaxSize))
}
