/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package logger provides a configurable logger that can be silenced for
// embedding tokenpipe in other tools.
package logger

import (
	"io"
	"log"
	"os"
	"runtime/debug"
)

var (
	// Default logs to stderr. Set to io.Discard for silent mode.
	output io.Writer = os.Stderr
	logger *log.Logger

	// debugEnabled gates Debug output. Off by default since stack traces
	// are noisy in normal ingest runs.
	debugEnabled bool
)

func init() {
	logger = log.New(output, "", 0)
}

// SetOutput configures the logger output destination.
// Use io.Discard to silence all logging.
func SetOutput(w io.Writer) {
	output = w
	logger = log.New(output, "", 0)
}

// SetDebug enables or disables Debug output.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	logger.Printf("warning: "+format, args...)
}

// Error logs an error message.
func Error(format string, args ...any) {
	logger.Printf("error: "+format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	logger.Printf(format, args...)
}

// Debug logs a debug message along with the current call stack, but only
// when debugging has been enabled with SetDebug.
func Debug(format string, args ...any) {
	if !debugEnabled {
		return
	}
	logger.Printf(format, args...)
	logger.Printf("%s", debug.Stack())
}
