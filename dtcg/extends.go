/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package dtcg

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"tokenpipe.dev/tokenpipe/internal/ingesterr"
)

// groupExtension is one $extends relationship found in the document:
// the group at path inherits every token from the group at extendsPath.
type groupExtension struct {
	path        []string
	extendsPath []string
}

// ResolveExtends applies every $extends relationship in a 2025.10
// document to a flattened token list, appending copies of inherited
// tokens under the extending group's path. It is a no-op for draft
// documents, which have no $extends syntax. Must run between Flatten
// (C5) and Normalize (C6): normalize never sees unresolved inheritance.
func ResolveExtends(tokens []*RawToken, data map[string]any, version Version) ([]*RawToken, error) {
	if version != V2025_10 {
		return tokens, nil
	}

	extensions := findExtensions(data, nil)
	if len(extensions) == 0 {
		return tokens, nil
	}

	if cycle := findExtensionCycle(extensions); cycle != nil {
		return nil, fmt.Errorf("%w in $extends: %s", ingesterr.ErrCircularReference, strings.Join(cycle, " -> "))
	}

	sorted := topologicalSortExtensions(extensions)

	terminalNamesByGroup := make(map[string]map[string]bool)
	for _, t := range tokens {
		if len(t.Path) == 0 {
			continue
		}
		groupPath := strings.Join(t.Path[:len(t.Path)-1], "/")
		if terminalNamesByGroup[groupPath] == nil {
			terminalNamesByGroup[groupPath] = make(map[string]bool)
		}
		terminalNamesByGroup[groupPath][t.Path[len(t.Path)-1]] = true
	}

	result := slices.Clone(tokens)
	for _, ext := range sorted {
		inherited := resolveExtension(ext, result, terminalNamesByGroup)
		result = append(result, inherited...)

		extGroupPath := strings.Join(ext.path, "/")
		if terminalNamesByGroup[extGroupPath] == nil {
			terminalNamesByGroup[extGroupPath] = make(map[string]bool)
		}
		for _, t := range inherited {
			if len(t.Path) > 0 {
				terminalNamesByGroup[extGroupPath][t.Path[len(t.Path)-1]] = true
			}
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func findExtensions(data map[string]any, currentPath []string) []groupExtension {
	var extensions []groupExtension

	for key, value := range data {
		if strings.HasPrefix(key, "$") {
			continue
		}
		valueMap, ok := value.(map[string]any)
		if !ok {
			continue
		}

		childPath := append(slices.Clone(currentPath), key)

		if ref, ok := valueMap["$extends"].(string); ok {
			if extendsPath := parseJSONPointer(ref); extendsPath != nil {
				extensions = append(extensions, groupExtension{path: childPath, extendsPath: extendsPath})
			}
		}

		extensions = append(extensions, findExtensions(valueMap, childPath)...)
	}

	return extensions
}

func parseJSONPointer(ref string) []string {
	if !strings.HasPrefix(ref, "#/") {
		return nil
	}
	path := strings.TrimPrefix(ref, "#/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func findExtensionCycle(extensions []groupExtension) []string {
	extendsMap := make(map[string]string)
	for _, ext := range extensions {
		extendsMap[strings.Join(ext.path, "/")] = strings.Join(ext.extendsPath, "/")
	}

	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	var dfs func(node string, path []string) []string
	dfs = func(node string, path []string) []string {
		visited[node] = true
		recStack[node] = true
		path = append(path, node)

		if next, ok := extendsMap[node]; ok {
			if recStack[next] {
				if i := slices.Index(path, next); i >= 0 {
					return append(path[i:], next)
				}
				return append(path, next)
			}
			if !visited[next] {
				if cycle := dfs(next, path); cycle != nil {
					return cycle
				}
			}
		}

		recStack[node] = false
		return nil
	}

	for _, ext := range extensions {
		node := strings.Join(ext.path, "/")
		if !visited[node] {
			if cycle := dfs(node, nil); cycle != nil {
				return cycle
			}
		}
	}

	return nil
}

func topologicalSortExtensions(extensions []groupExtension) []groupExtension {
	extendsMap := make(map[string]string)
	for _, ext := range extensions {
		extendsMap[strings.Join(ext.path, "/")] = strings.Join(ext.extendsPath, "/")
	}

	depths := make(map[string]int)
	var depthOf func(path string) int
	depthOf = func(path string) int {
		if d, ok := depths[path]; ok {
			return d
		}
		if next, ok := extendsMap[path]; ok {
			depths[path] = depthOf(next) + 1
		} else {
			depths[path] = 0
		}
		return depths[path]
	}
	for _, ext := range extensions {
		depthOf(strings.Join(ext.path, "/"))
	}

	result := slices.Clone(extensions)
	sort.Slice(result, func(i, j int) bool {
		return depths[strings.Join(result[i].path, "/")] < depths[strings.Join(result[j].path, "/")]
	})
	return result
}

func resolveExtension(ext groupExtension, tokens []*RawToken, terminalNames map[string]map[string]bool) []*RawToken {
	extGroupPath := strings.Join(ext.path, "/")
	basePrefix := strings.Join(ext.extendsPath, ".")
	newPrefix := strings.Join(ext.path, ".")

	existing := terminalNames[extGroupPath]
	if existing == nil {
		existing = make(map[string]bool)
	}

	var inherited []*RawToken
	for _, t := range tokens {
		if !tokenBelongsToGroup(t, ext.extendsPath) {
			continue
		}

		relativePath := t.Path[len(ext.extendsPath):]
		if len(relativePath) == 0 {
			continue
		}

		terminal := relativePath[0]
		if len(relativePath) == 1 && existing[terminal] {
			continue
		}

		newPath := append(slices.Clone(ext.path), relativePath...)
		newName := strings.Replace(t.Name, basePrefix, newPrefix, 1)

		inherited = append(inherited, &RawToken{
			Name:        newName,
			Path:        newPath,
			Type:        t.Type,
			Value:       t.Value,
			Description: t.Description,
			Extensions:  t.Extensions,
			Deprecated:  t.Deprecated,
		})
	}

	return inherited
}

func tokenBelongsToGroup(t *RawToken, groupPath []string) bool {
	if len(t.Path) <= len(groupPath) {
		return false
	}
	for i, segment := range groupPath {
		if t.Path[i] != segment {
			return false
		}
	}
	return true
}
