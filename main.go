/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Command tokenpipe ingests design tokens from DTCG documents and Figma
// variable collections into a normalized token set.
package main

import (
	"os"

	"tokenpipe.dev/tokenpipe/cmd"
	"tokenpipe.dev/tokenpipe/internal/ingesterr"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	switch ingesterr.ClassOf(err) {
	case ingesterr.ClassFatal:
		os.Exit(2)
	default:
		os.Exit(1)
	}
}
