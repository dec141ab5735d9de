/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"tokenpipe.dev/tokenpipe/internal/platform"
)

// ExpandSources expands glob patterns in local DTCG source paths,
// replacing one glob-bearing SourceSpec with one literal-path SourceSpec
// per match. Sources with a URL, a Figma source, or a non-glob path pass
// through unchanged.
func (c *Config) ExpandSources(filesystem platform.FileSystem, rootDir string) ([]SourceSpec, error) {
	var result []SourceSpec

	for _, src := range c.Sources {
		if src.Type != SourceTypeDTCG || src.Path == "" || !containsGlob(src.Path) {
			result = append(result, src)
			continue
		}

		matches, err := expandGlob(filesystem, absolutize(rootDir, src.Path))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			expanded := src
			expanded.Path = m
			result = append(result, expanded)
		}
	}

	return result, nil
}

func absolutize(rootDir, pattern string) string {
	if filepath.IsAbs(pattern) {
		return pattern
	}
	return filepath.Join(rootDir, pattern)
}

// containsGlob returns true if the pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// expandGlob expands a glob pattern against the filesystem.
func expandGlob(filesystem platform.FileSystem, pattern string) ([]string, error) {
	baseDir := pattern
	for containsGlob(baseDir) {
		baseDir = filepath.Dir(baseDir)
	}

	relPattern := strings.TrimPrefix(pattern, baseDir)
	relPattern = strings.TrimPrefix(relPattern, string(filepath.Separator))

	var matches []string

	err := fs.WalkDir(filesystem, baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		relPath := strings.TrimPrefix(path, baseDir)
		relPath = strings.TrimPrefix(relPath, string(filepath.Separator))

		if ok, _ := doublestar.Match(relPattern, relPath); ok {
			matches = append(matches, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return matches, nil
}
