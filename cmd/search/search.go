/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package search provides the search command for tokenpipe.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"tokenpipe.dev/tokenpipe/config"
	"tokenpipe.dev/tokenpipe/ingest"
	"tokenpipe.dev/tokenpipe/internal/platform"
	"tokenpipe.dev/tokenpipe/token"
)

// Cmd is the search cobra command.
var Cmd = &cobra.Command{
	Use:   "search <query> [path-or-fileKey...]",
	Short: "Search normalized tokens by name, value, or type",
	Long: `Search ingests every trailing argument the same way "list" does, then
filters the resulting normalized tokens by name, value, or type, with
optional regex support.`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("name", false, "Search names only")
	Cmd.Flags().Bool("value", false, "Search values only")
	Cmd.Flags().String("type", "", "Filter by token type")
	Cmd.Flags().Bool("regex", false, "Query is a regex")
	Cmd.Flags().Bool("figma", false, "Treat trailing arguments as Figma file keys instead of DTCG paths")
	Cmd.Flags().String("format", "table", "Output format: table, json, names")
}

func run(cmd *cobra.Command, args []string) error {
	query := args[0]
	sources := args[1:]

	nameOnly, _ := cmd.Flags().GetBool("name")
	valueOnly, _ := cmd.Flags().GetBool("value")
	typeFilter, _ := cmd.Flags().GetString("type")
	useRegex, _ := cmd.Flags().GetBool("regex")
	figma, _ := cmd.Flags().GetBool("figma")
	format, _ := cmd.Flags().GetString("format")

	var pattern *regexp.Regexp
	if useRegex {
		compiled, err := regexp.Compile(query)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		pattern = compiled
	}

	filesystem := platform.NewOSFileSystem()

	cfg := &config.Config{}
	if len(sources) == 0 {
		cfg = config.LoadOrDefault(filesystem, ".")
	} else {
		for _, src := range sources {
			if figma {
				cfg.Sources = append(cfg.Sources, config.SourceSpec{Type: config.SourceTypeFigma, FileKey: src})
			} else {
				cfg.Sources = append(cfg.Sources, config.SourceSpec{Type: config.SourceTypeDTCG, Path: src})
			}
		}
	}

	expanded, err := cfg.ExpandSources(filesystem, ".")
	if err != nil {
		return fmt.Errorf("error expanding sources: %w", err)
	}
	cfg.Sources = expanded

	result, err := ingest.Run(context.Background(), cfg, filesystem)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	matches := filterTokens(result.TokenSet, query, typeFilter, nameOnly, valueOnly, pattern)

	switch format {
	case "json":
		return outputJSON(matches)
	case "names":
		return outputNames(matches)
	default:
		return outputTable(matches)
	}
}

// filterTokens returns every token in ts matching query against its
// name, value, or both (per nameOnly/valueOnly), additionally
// restricted to typeFilter when non-empty. query is matched literally
// (case-insensitive substring) unless pattern is set, in which case
// pattern takes over entirely.
func filterTokens(ts *token.TokenSet, query, typeFilter string, nameOnly, valueOnly bool, pattern *regexp.Regexp) []*token.NormalizedToken {
	var matches []*token.NormalizedToken

	for _, name := range ts.Names() {
		tok, _ := ts.Lookup(name)

		if typeFilter != "" && tok.Type.String() != typeFilter {
			continue
		}

		value := valueString(tok)

		matched := false
		switch {
		case nameOnly:
			matched = matchString(tok.Name, query, pattern)
		case valueOnly:
			matched = matchString(value, query, pattern)
		default:
			matched = matchString(tok.Name, query, pattern) ||
				matchString(value, query, pattern) ||
				matchString(tok.Type.String(), query, pattern) ||
				matchString(tok.Description, query, pattern)
		}

		if matched {
			matches = append(matches, tok)
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	return matches
}

func matchString(s, query string, pattern *regexp.Regexp) bool {
	if pattern != nil {
		return pattern.MatchString(s)
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(query))
}

func valueString(tok *token.NormalizedToken) string {
	if tok.Value.IsAlias() {
		return "{" + tok.Value.Reference + "}"
	}
	if b, err := json.Marshal(tok.Value); err == nil {
		return string(b)
	}
	return ""
}

func outputTable(tokens []*token.NormalizedToken) error {
	for _, tok := range tokens {
		fmt.Printf("%-40s %-12s %s\n", tok.Name, tok.Type, valueString(tok))
	}
	return nil
}

func outputJSON(tokens []*token.NormalizedToken) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(tokens)
}

func outputNames(tokens []*token.NormalizedToken) error {
	for _, tok := range tokens {
		fmt.Println(tok.Name)
	}
	return nil
}
