/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for tokenpipe.
package cmd

import (
	"github.com/spf13/cobra"

	"tokenpipe.dev/tokenpipe/cmd/ingest"
	"tokenpipe.dev/tokenpipe/cmd/list"
	"tokenpipe.dev/tokenpipe/cmd/search"
	"tokenpipe.dev/tokenpipe/cmd/validate"
	"tokenpipe.dev/tokenpipe/cmd/version"
)

var rootCmd = &cobra.Command{
	Use:   "tokenpipe",
	Short: "Ingest and normalize design tokens from multiple sources",
	Long:  `tokenpipe ingests design tokens from DTCG documents and Figma variable collections into one normalized token set.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(ingest.Cmd)
	rootCmd.AddCommand(list.Cmd)
	rootCmd.AddCommand(search.Cmd)
	rootCmd.AddCommand(validate.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
