/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package figmavars

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tokenpipe.dev/tokenpipe/internal/ingesterr"
)

const (
	defaultBaseURL = "https://api.figma.com"
	httpTimeout    = 30 * time.Second
	maxBodySize    = 20 << 20 // 20 MiB
)

// Client fetches a Figma file's variables and variable collections.
type Client struct {
	APIKey     string
	FileKey    string
	BaseURL    string
	HTTPClient *http.Client
}

// FetchResult is what one Client.Fetch call gathers: the variables
// table (always required) and the collections table (best-effort; a
// failure here degrades to a warning rather than aborting ingest, per
// spec.md §4.8).
type FetchResult struct {
	Variables      map[string]*Variable
	Collections    map[string]*Collection
	CollectionsErr error
}

// Fetch retrieves variables and collections concurrently, settling
// both regardless of which one fails first: a collections failure is
// recoverable (FetchResult.CollectionsErr), a variables failure is
// not and is returned directly.
func (c *Client) Fetch(ctx context.Context) (*FetchResult, error) {
	result := &FetchResult{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		vars, err := c.fetchVariables(gctx)
		if err != nil {
			return fmt.Errorf("%w: %v", ingesterr.ErrVariablesFetchFailed, err)
		}
		result.Variables = vars
		return nil
	})

	g.Go(func() error {
		cols, err := c.fetchCollections(ctx)
		if err != nil {
			result.CollectionsErr = err
			return nil
		}
		result.Collections = cols
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) fetchVariables(ctx context.Context) (map[string]*Variable, error) {
	body, err := c.get(ctx, fmt.Sprintf("/v1/files/%s/variables/local", c.FileKey))
	if err != nil {
		return nil, err
	}

	var raw struct {
		Meta struct {
			Variables map[string]json.RawMessage `json:"variables"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decoding variables response: %w", err)
	}

	result := make(map[string]*Variable, len(raw.Meta.Variables))
	for id, rawVar := range raw.Meta.Variables {
		v, err := decodeVariable(rawVar)
		if err != nil {
			return nil, fmt.Errorf("decoding variable %s: %w", id, err)
		}
		result[id] = v
	}
	return result, nil
}

func (c *Client) fetchCollections(ctx context.Context) (map[string]*Collection, error) {
	body, err := c.get(ctx, fmt.Sprintf("/v1/files/%s/variable-collections", c.FileKey))
	if err != nil {
		return nil, err
	}

	var resp collectionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding variable-collections response: %w", err)
	}
	return resp.Meta.VariableCollections, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(base, "/")+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Figma-Token", c.APIKey)

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: httpTimeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyHTTPError(resp, body)
	}

	return body, nil
}

// classifyHTTPError maps a non-2xx Figma API response to the
// canonical messages spec.md §4.8 requires callers to see, in
// preference order: auth, not-found, rate-limit, body "err" field,
// generic status.
func classifyHTTPError(resp *http.Response, body []byte) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("Authentication failed: Invalid or expired Personal Access Token")
	case http.StatusNotFound:
		return fmt.Errorf("File not found: Invalid file key")
	case http.StatusTooManyRequests:
		if retry := resp.Header.Get("Retry-After"); retry != "" {
			return fmt.Errorf("Rate limit exceeded. Retry after %s seconds", retry)
		}
		return fmt.Errorf("Rate limit exceeded")
	}

	var withErr struct {
		Err string `json:"err"`
	}
	if json.Unmarshal(body, &withErr) == nil && withErr.Err != "" {
		return errors.New(withErr.Err)
	}

	return fmt.Errorf("API request failed with status %d", resp.StatusCode)
}

// decodeVariable decodes one Figma variable, reading values_by_mode
// token-by-token instead of into a map so ValuesByMode preserves the
// response's insertion order (normalize.go's default-mode fallback
// depends on this order when default_mode_id isn't present).
func decodeVariable(raw json.RawMessage) (*Variable, error) {
	var shallow struct {
		ID                   string          `json:"id"`
		Name                 string          `json:"name"`
		VariableCollectionID string          `json:"variable_collection_id"`
		ResolvedType         string          `json:"resolved_type"`
		Description          string          `json:"description"`
		ValuesByMode         json.RawMessage `json:"values_by_mode"`
	}
	if err := json.Unmarshal(raw, &shallow); err != nil {
		return nil, err
	}

	v := &Variable{
		ID:                   shallow.ID,
		Name:                 shallow.Name,
		VariableCollectionID: shallow.VariableCollectionID,
		ResolvedType:         shallow.ResolvedType,
		Description:          shallow.Description,
	}

	if len(shallow.ValuesByMode) == 0 {
		return v, nil
	}

	dec := json.NewDecoder(bytes.NewReader(shallow.ValuesByMode))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("values_by_mode: expected object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		modeID, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("values_by_mode: expected string key")
		}

		var vv VariableValue
		if err := dec.Decode(&vv); err != nil {
			return nil, fmt.Errorf("values_by_mode[%s]: %w", modeID, err)
		}

		v.ValuesByMode = append(v.ValuesByMode, ModeValue{ModeID: modeID, Value: vv})
	}

	return v, nil
}
