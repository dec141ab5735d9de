/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package list provides the list command for tokenpipe.
package list

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"tokenpipe.dev/tokenpipe/config"
	"tokenpipe.dev/tokenpipe/ingest"
	"tokenpipe.dev/tokenpipe/internal/platform"
	"tokenpipe.dev/tokenpipe/token"
)

// Cmd is the list cobra command.
var Cmd = &cobra.Command{
	Use:   "list [path-or-fileKey...]",
	Short: "List normalized tokens from one or more sources",
	Long: `List ingests every argument as a DTCG source (a path) or, with
--figma, a Figma file key, then prints the resulting normalized tokens.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().String("type", "", "Filter by token type")
	Cmd.Flags().Bool("figma", false, "Treat arguments as Figma file keys instead of DTCG paths")
	Cmd.Flags().String("format", "table", "Output format: table, json")
}

func run(cmd *cobra.Command, args []string) error {
	typeFilter, _ := cmd.Flags().GetString("type")
	figma, _ := cmd.Flags().GetBool("figma")
	format, _ := cmd.Flags().GetString("format")

	filesystem := platform.NewOSFileSystem()

	cfg := &config.Config{}
	if len(args) == 0 {
		cfg = config.LoadOrDefault(filesystem, ".")
	} else {
		for _, arg := range args {
			if figma {
				cfg.Sources = append(cfg.Sources, config.SourceSpec{Type: config.SourceTypeFigma, FileKey: arg})
			} else {
				cfg.Sources = append(cfg.Sources, config.SourceSpec{Type: config.SourceTypeDTCG, Path: arg})
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

	tokens := filterByType(result.TokenSet, typeFilter)

	switch format {
	case "json":
		return outputJSON(tokens)
	default:
		return outputTable(tokens)
	}
}

func filterByType(ts *token.TokenSet, typeFilter string) []*token.NormalizedToken {
	var tokens []*token.NormalizedToken
	for _, name := range ts.Names() {
		tok, _ := ts.Lookup(name)
		tokens = append(tokens, tok)
	}

	if typeFilter != "" {
		filtered := make([]*token.NormalizedToken, 0, len(tokens))
		for _, tok := range tokens {
			if tok.Type.String() == typeFilter {
				filtered = append(filtered, tok)
			}
		}
		tokens = filtered
	}

	sort.Slice(tokens, func(i, j int) bool { return tokens[i].Name < tokens[j].Name })
	return tokens
}

func outputTable(tokens []*token.NormalizedToken) error {
	for _, tok := range tokens {
		value := "{...}"
		if tok.Value.IsAlias() {
			value = "{" + tok.Value.Reference + "}"
		} else if b, err := json.Marshal(tok.Value); err == nil {
			value = string(b)
		}
		fmt.Printf("%-40s %-12s %s\n", tok.Name, tok.Type, value)
	}
	return nil
}

func outputJSON(tokens []*token.NormalizedToken) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(tokens)
}
