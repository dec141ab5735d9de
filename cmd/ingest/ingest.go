/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package ingest provides the ingest command for tokenpipe.
package ingest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tokenpipe.dev/tokenpipe/config"
	"tokenpipe.dev/tokenpipe/ingest"
	"tokenpipe.dev/tokenpipe/internal/ingesterr"
	"tokenpipe.dev/tokenpipe/internal/logger"
	"tokenpipe.dev/tokenpipe/internal/platform"
)

// Cmd is the ingest cobra command.
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest design tokens from DTCG documents and Figma variables",
	Long: `Ingest reads every configured source (DTCG documents, Figma variable
collections), normalizes them into one token set, and prints it as JSON.`,
	RunE: run,
}

func init() {
	Cmd.Flags().String("config", "", "Path to a design-tokens config file (default: .config/design-tokens.{yaml,json})")
	Cmd.Flags().StringArray("source", nil, `Inline source, "dtcg:<path>" or "figma:<fileKey>" (repeatable)`)
	Cmd.Flags().Bool("debug", false, "Include stack traces with debug diagnostics")
	Cmd.Flags().Bool("strict", false, "Exit non-zero if any source produced warnings")
}

func run(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	sourceFlags, _ := cmd.Flags().GetStringArray("source")
	debug, _ := cmd.Flags().GetBool("debug")
	strict, _ := cmd.Flags().GetBool("strict")

	logger.SetDebug(debug)

	filesystem := platform.NewOSFileSystem()

	cfg, err := loadConfig(filesystem, configPath)
	if err != nil {
		return err
	}

	for _, flag := range sourceFlags {
		spec, err := parseSourceFlag(flag)
		if err != nil {
			return err
		}
		cfg.Sources = append(cfg.Sources, spec)
	}

	expanded, err := cfg.ExpandSources(filesystem, ".")
	if err != nil {
		return fmt.Errorf("error expanding config sources: %w", err)
	}
	cfg.Sources = expanded

	result, err := ingest.Run(cmd.Context(), cfg, filesystem)
	if err != nil {
		logger.Error("%v", err)
		return err
	}

	for _, w := range result.Warnings {
		logger.Warn("%s", w)
	}
	for _, e := range result.Errors {
		logger.Error("%s", e)
	}
	for _, sr := range result.SourceResults {
		if sr.Err != nil {
			logger.Error("source %v: %v", sr.Spec, sr.Err)
		}
	}

	out, err := json.MarshalIndent(result.TokenSet, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling token set: %w", err)
	}
	fmt.Println(string(out))

	if strict && (len(result.Warnings) > 0 || len(result.Errors) > 0) {
		return ingesterr.New(ingesterr.ClassValidation, fmt.Errorf("strict mode: %d warning(s), %d error(s) reported", len(result.Warnings), len(result.Errors)))
	}

	return nil
}

func loadConfig(filesystem platform.FileSystem, configPath string) (*config.Config, error) {
	if configPath == "" {
		return config.LoadOrDefault(filesystem, "."), nil
	}

	data, err := filesystem.ReadFile(configPath)
	if err != nil {
		return nil, ingesterr.New(ingesterr.ClassValidation, fmt.Errorf("error reading config %s: %w", configPath, err))
	}

	cfg, err := config.ParseFile(configPath, data)
	if err != nil {
		return nil, ingesterr.New(ingesterr.ClassValidation, fmt.Errorf("error parsing config %s: %w", configPath, err))
	}
	return cfg, nil
}

func parseSourceFlag(flag string) (config.SourceSpec, error) {
	typ, rest, ok := strings.Cut(flag, ":")
	if !ok {
		return config.SourceSpec{}, fmt.Errorf(`invalid --source %q, expected "dtcg:<path>" or "figma:<fileKey>"`, flag)
	}

	switch typ {
	case "dtcg":
		return config.SourceSpec{Type: config.SourceTypeDTCG, Path: rest}, nil
	case "figma":
		return config.SourceSpec{Type: config.SourceTypeFigma, FileKey: rest}, nil
	default:
		return config.SourceSpec{}, fmt.Errorf(`invalid --source type %q, expected "dtcg" or "figma"`, typ)
	}
}
