// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

// Package library manages the local clone of the FreeCAD parts library:
// syncing it from its git remote, listing the parts it contains, and
// checking whether the clone has fallen behind upstream.
package library

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Part is one insertable file from the parts library.
type Part struct {
	// Name is the file name without extension.
	Name string
	// RelPath is the path relative to the library root, as passed to the
	// addon's insert_part_from_library method.
	RelPath string
	// Category is the top-level library directory the part lives in.
	Category string
	// SizeBytes is the file size on disk.
	SizeBytes int64
}

// partExtensions are the file types the addon can insert.
var partExtensions = map[string]bool{
	".fcstd": true,
	".step":  true,
	".stp":   true,
}

// List walks the library clone and returns every insertable part,
// sorted by relative path. query, when non-empty, filters parts by
// case-insensitive substring match on the relative path.
func List(fsys fs.FS, query string) ([]Part, error) {
	query = strings.ToLower(query)
	var parts []Part
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return fs.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !partExtensions[ext] {
			return nil
		}
		if query != "" && !strings.Contains(strings.ToLower(path), query) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		category := ""
		if i := strings.IndexByte(path, '/'); i > 0 {
			category = path[:i]
		}
		parts = append(parts, Part{
			Name:      strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
			RelPath:   path,
			Category:  category,
			SizeBytes: info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("library: walk failed: %w", err)
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].RelPath < parts[j].RelPath })
	return parts, nil
}

// Categories returns the distinct categories of parts, in sorted order.
func Categories(parts []Part) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range parts {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}
