/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validate provides the validate command for tokenpipe.
package validate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tokenpipe.dev/tokenpipe/config"
	"tokenpipe.dev/tokenpipe/dtcg"
	"tokenpipe.dev/tokenpipe/ingest"
	"tokenpipe.dev/tokenpipe/internal/platform"
	"tokenpipe.dev/tokenpipe/token"
)

// Cmd is the validate cobra command.
var Cmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate DTCG design token files",
	Long:  `Validate DTCG design token files for structural correctness and cross-token consistency.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  run,
}

func init() {
	Cmd.Flags().Bool("strict", false, "Fail on warnings, not just structural/cross-token errors")
	Cmd.Flags().Bool("quiet", false, "Only output errors")
}

func run(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	strict, _ := cmd.Flags().GetBool("strict")

	filesystem := platform.NewOSFileSystem()

	files := args
	if len(files) == 0 {
		cfg := config.LoadOrDefault(filesystem, ".")
		expanded, err := cfg.ExpandSources(filesystem, ".")
		if err != nil {
			return fmt.Errorf("error expanding config sources: %w", err)
		}
		for _, src := range expanded {
			if src.Type == config.SourceTypeDTCG {
				files = append(files, src.Path)
			}
		}
	}

	if len(files) == 0 {
		return fmt.Errorf("no files specified and no DTCG sources found in config")
	}

	hasErrors := false

	for _, file := range files {
		if !quiet {
			fmt.Printf("Validating %s...\n", file)
		}

		data, err := filesystem.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", file, err)
			hasErrors = true
			continue
		}

		doc, err := dtcg.Parse(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", file, err)
			hasErrors = true
			continue
		}

		version := dtcg.DetectVersion(doc)

		structuralErrs := dtcg.Validate(doc, version)
		for _, ve := range structuralErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", file, ve.Error())
		}
		if len(structuralErrs) > 0 {
			hasErrors = true
			continue
		}

		flattened := dtcg.Flatten(doc, version, []string{"_"})
		extended, err := dtcg.ResolveExtends(flattened, doc, version)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
			hasErrors = true
			continue
		}

		ts, warnings := dtcg.Normalize(extended, token.Metadata{Source: token.SourceDTCG, Name: file})
		if !quiet {
			for _, w := range warnings {
				fmt.Printf("  warning: %s\n", w)
			}
		}
		if strict && len(warnings) > 0 {
			hasErrors = true
		}

		cross := ingest.ValidateCrossToken(ts)
		if !cross.Clean() {
			reportCrossValidation(file, cross)
			hasErrors = true
			continue
		}

		if !quiet {
			fmt.Printf("  %d tokens, schema: %s\n", len(ts.Tokens), version)
		}
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}

	if !quiet {
		fmt.Println("All files valid.")
	}
	return nil
}

func reportCrossValidation(file string, cross ingest.CrossValidationResult) {
	for _, t := range cross.MissingTypes {
		fmt.Fprintf(os.Stderr, "%s: missing required type coverage: %s\n", file, t)
	}
	for _, v := range cross.Aliases {
		fmt.Fprintf(os.Stderr, "%s: dangling alias: %s\n", file, v.String())
	}
	if len(cross.Cycle) > 0 {
		fmt.Fprintf(os.Stderr, "%s: circular alias reference: %v\n", file, cross.Cycle)
	}
}
