// Copyright 2026 The Protocompile Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resolver

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// FileSource is the capability a DependencyResolver needs from its caller:
// read a logical import path and, on failure, help suggest a correction.
// It is deliberately source-only; descriptor/compiled inputs are out of
// scope for this front end.
type FileSource interface {
	// ReadFile returns the contents of path, or ok=false if it does not
	// exist under this source (distinguished from a genuine I/O error).
	ReadFile(path string) (content string, ok bool, err error)

	// Suggest returns up to a handful of known paths that might be what the
	// caller meant by missing, for ImportNotFound diagnostics.
	Suggest(missing string) []string
}

// DirFileSource resolves import paths against an ordered list of
// filesystem directories, an import-path search-list model.
type DirFileSource struct {
	ImportPaths []string
}

var _ FileSource = (*DirFileSource)(nil)

// ReadFile tries path relative to each configured import path in order:
// search-path probing, trying each configured import directory in turn. An
// absolute path is read directly, bypassing search-path probing entirely:
// filepath.Join does not special-case an absolute second argument, so
// without this check an absolute path would be silently (and incorrectly)
// joined onto every configured import directory instead of being read as-is.
func (d *DirFileSource) ReadFile(path string) (string, bool, error) {
	if filepath.IsAbs(path) {
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), true, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}

	dirs := d.ImportPaths
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	for _, dir := range dirs {
		full := filepath.Join(dir, path)
		data, err := os.ReadFile(full)
		if err == nil {
			return string(data), true, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", false, err
		}
	}
	return "", false, nil
}

// Suggest globs every configured import path for *.proto files and keeps
// the ones whose base name doublestar-matches a fuzzy pattern built from
// missing's base name, as a "did you mean" aid for ImportNotFound.
func (d *DirFileSource) Suggest(missing string) []string {
	base := filepath.Base(missing)
	pattern := "*" + trimExt(base) + "*"

	dirs := d.ImportPaths
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	seen := map[string]bool{}
	var out []string
	for _, dir := range dirs {
		matches, err := doublestar.Glob(os.DirFS(dir), "**/*.proto")
		if err != nil {
			continue
		}
		for _, m := range matches {
			ok, _ := doublestar.Match(pattern, filepath.Base(m))
			if ok && !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
			if len(out) >= 5 {
				return out
			}
		}
	}
	return out
}

func trimExt(name string) string {
	ext := filepath.Ext(name)
	return name[:len(name)-len(ext)]
}
