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

// Package resolver implements the dependency resolver: given a set of
// entry-point proto files and a FileSource, it discovers every
// transitively imported file, detects import cycles, and returns the
// files in topological order (dependencies before dependents) ready for
// the symbol resolver. It sits between FileSource and the lexer/parser in
// the pipeline: resolving a file's dependency list requires parsing it,
// so this package lexes and parses each file itself and hands the
// resulting ASTs onward rather than re-reading them later.
package resolver

import (
	"regexp"

	"github.com/bufproto/protocompile/ast"
	"github.com/bufproto/protocompile/parser"
	"github.com/bufproto/protocompile/reporter"
	"github.com/bufproto/protocompile/resolver/wellknown"
)

// Config controls how the DependencyResolver searches for and accepts
// imports.
type Config struct {
	// ImportPaths is informational here; actual search-path probing is the
	// FileSource's responsibility (DirFileSource implements it). Kept on
	// Config because callers building a FileSource and a Config from the
	// same protoconfig document expect to find it in both places.
	ImportPaths []string

	// AllowMissingImports, when true, turns an unresolvable import into a
	// warning instead of a fatal ImportNotFound error; the importing file
	// is still compiled, with the missing dependency's symbols unavailable.
	AllowMissingImports bool

	// RecognizeWellKnownTypes, when true, satisfies imports of the standard
	// google/protobuf/*.proto files from the embedded wellknown package
	// before consulting the FileSource.
	RecognizeWellKnownTypes bool

	// MaxDepth caps the import chain length from an entry-point file. Zero
	// means unbounded.
	MaxDepth int
}

// ResolvedFile pairs a parsed AST with the dependency-resolution metadata
// associated with it.
type ResolvedFile struct {
	Path string
	AST  *ast.File

	// PackagePrefilter is the package name read textually from the raw
	// source before parsing; it exists independently of AST.Package so a
	// caller can use it without trusting the full parse.
	PackagePrefilter string

	IsWellKnown bool
}

// DependencyResolver walks the import graph of a set of entry-point files.
type DependencyResolver struct {
	Source FileSource
	Config Config
	h      *reporter.Handler
}

// New constructs a DependencyResolver. h accumulates the syntactic errors
// encountered while parsing each discovered file (a lexical error is fatal
// to its file and is returned as a ParseFailure Error); resolution errors
// (missing imports, cycles) are returned directly rather than accumulated,
// since they are always fatal to the overall compile unless
// AllowMissingImports says otherwise.
func New(source FileSource, cfg Config, h *reporter.Handler) *DependencyResolver {
	return &DependencyResolver{Source: source, Config: cfg, h: h}
}

type color int

const (
	white color = iota
	grey
	black
)

// Resolve resolves entryPoints and everything they transitively import,
// returning the discovered files in topological order: every file appears
// after all of its dependencies. Import declarations within a single file
// are visited in declaration order, so ties in the topological order are
// broken the same way.
func (r *DependencyResolver) Resolve(entryPoints ...string) ([]*ResolvedFile, error) {
	state := &resolveState{
		resolver: r,
		colors:   map[string]color{},
		resolved: map[string]*ResolvedFile{},
	}
	for _, entry := range entryPoints {
		if err := state.visit(entry, nil, 0); err != nil {
			return nil, err
		}
	}
	return state.order, nil
}

type resolveState struct {
	resolver *DependencyResolver
	colors   map[string]color
	resolved map[string]*ResolvedFile
	order    []*ResolvedFile
}

func (s *resolveState) visit(path string, chain []string, depth int) error {
	switch s.colors[path] {
	case black:
		return nil
	case grey:
		// Drop the part of the chain that leads into the loop, so the cycle
		// starts at path and ends with it repeated.
		start := 0
		for i, p := range chain {
			if p == path {
				start = i
				break
			}
		}
		cycle := append(append([]string{}, chain[start:]...), path)
		return &Error{Kind: CircularDependency, Path: path, Cycle: cycle}
	}

	cfg := s.resolver.Config
	if cfg.MaxDepth > 0 && depth > cfg.MaxDepth {
		return &Error{Kind: MaxDepthExceeded, Path: path}
	}

	s.colors[path] = grey
	chain = append(chain, path)

	src, isWellKnown, err := s.read(path)
	if err != nil {
		var rerr *Error
		if errAs(err, &rerr) {
			return rerr
		}
		return &Error{Kind: IOFailure, Path: path, Err: err}
	}
	if src == nil {
		// AllowMissingImports: treat as resolved-but-absent, do not descend.
		s.colors[path] = black
		return nil
	}

	f, perr := parser.Parse(path, *src, s.resolver.h)
	if perr != nil {
		// parser.Parse only ever returns a non-nil error when the lexer
		// itself failed; a real I/O failure is reported separately above.
		return &Error{Kind: ParseFailure, Path: path, Err: perr}
	}

	for _, imp := range f.Imports {
		if err := s.visit(imp.Path, chain, depth+1); err != nil {
			return err
		}
	}

	rf := &ResolvedFile{
		Path:             path,
		AST:              f,
		PackagePrefilter: prefilterPackage(*src),
		IsWellKnown:      isWellKnown,
	}
	s.resolved[path] = rf
	s.order = append(s.order, rf)
	s.colors[path] = black
	return nil
}

// read satisfies path from the well-known embedded set (if configured and
// applicable), then the FileSource, returning (nil, _, nil) when the import
// is missing and AllowMissingImports is set.
func (s *resolveState) read(path string) (*string, bool, error) {
	cfg := s.resolver.Config
	if cfg.RecognizeWellKnownTypes && wellknown.IsWellKnown(path) {
		src, _ := wellknown.Lookup(path)
		return &src, true, nil
	}

	content, ok, err := s.resolver.Source.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		if cfg.AllowMissingImports {
			s.resolver.h.HandleWarning(path, ast.Position{}, &Error{Kind: ImportNotFound, Path: path})
			return nil, false, nil
		}
		return nil, false, &Error{
			Kind:        ImportNotFound,
			Path:        path,
			Suggestions: s.resolver.Source.Suggest(path),
		}
	}
	return &content, false, nil
}

func errAs(err error, target **Error) bool {
	if e, ok := err.(*Error); ok {
		*target = e
		return true
	}
	return false
}

var packageRe = regexp.MustCompile(`(?m)^\s*package\s+([A-Za-z_][A-Za-z0-9_.]*)\s*;`)

// prefilterPackage extracts the package name textually, without a full
// parse: a cheap regex scan over the raw source, used for early
// diagnostics that should not depend on the file parsing cleanly.
func prefilterPackage(src string) string {
	m := packageRe.FindStringSubmatch(src)
	if m == nil {
		return ""
	}
	return m[1]
}
