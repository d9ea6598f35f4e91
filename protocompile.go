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

// Package protocompile ties together the pipeline stages (FileSource →
// DependencyResolver → Lexer/Parser → SymbolResolver/Validator) into the
// single public entry point, Compile, and defines the public
// ProtoParseError surface that wraps every internal error kind.
//
// The whole pipeline runs synchronously on the calling goroutine: there
// is no internal worker pool, no channel fan-out, and no shared mutable
// state between independent Compile calls, so nothing here needs locking.
package protocompile

import (
	"fmt"

	"github.com/bufproto/protocompile/ast"
	"github.com/bufproto/protocompile/reporter"
	"github.com/bufproto/protocompile/resolver"
	"github.com/bufproto/protocompile/symbols"
)

// ErrorKind distinguishes the surface-level error kinds Compile can report.
type ErrorKind int

const (
	FileNotFound ErrorKind = iota
	DependencyError
	CircularDependencyError
	LexicalError
	SyntaxError
	SemanticError
	IOError
)

func (k ErrorKind) String() string {
	switch k {
	case FileNotFound:
		return "FileNotFound"
	case DependencyError:
		return "DependencyError"
	case CircularDependencyError:
		return "CircularDependency"
	case LexicalError:
		return "LexicalError"
	case SyntaxError:
		return "SyntaxError"
	case SemanticError:
		return "SemanticError"
	case IOError:
		return "IOError"
	default:
		return "Unknown"
	}
}

// ProtoParseError is the single public sum type every internal error kind is
// mapped into before crossing the package boundary. File, Pos are populated
// whenever the originating error carries them.
type ProtoParseError struct {
	Kind       ErrorKind
	File       string
	Pos        ast.Position
	ImportPath string   // DependencyError only
	Cycle      []string // CircularDependencyError only
	Err        error
}

func (e *ProtoParseError) Error() string {
	switch e.Kind {
	case DependencyError:
		return fmt.Sprintf("%s: dependency error resolving %q: %v", e.File, e.ImportPath, e.Err)
	case CircularDependencyError:
		return fmt.Sprintf("circular import: %v", e.Cycle)
	default:
		if e.File != "" {
			return fmt.Sprintf("%s:%s: %s: %v", e.File, e.Pos, e.Kind, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
}

func (e *ProtoParseError) Unwrap() error { return e.Err }

// fromResolverError maps a *resolver.Error (a hard dependency-resolution
// failure) onto the public surface. An ImportNotFound against one of the
// original entry points is reported as FileNotFound; a ParseFailure (the
// file was found but failed to lex) is reported as LexicalError against
// that file; everywhere else (including ImportNotFound against a
// transitive import) is a DependencyError wrapping the underlying
// ResolverError.
func fromResolverError(err *resolver.Error, entryPoints []string) *ProtoParseError {
	if err.Kind == resolver.CircularDependency {
		return &ProtoParseError{Kind: CircularDependencyError, Cycle: err.Cycle, Err: err}
	}
	if err.Kind == resolver.ImportNotFound && isEntryPoint(err.Path, entryPoints) {
		return &ProtoParseError{Kind: FileNotFound, File: err.Path, Err: err}
	}
	if err.Kind == resolver.ParseFailure {
		pe := &ProtoParseError{Kind: LexicalError, File: err.Path, Err: err.Err}
		if ewp, ok := err.Err.(reporter.ErrorWithPos); ok {
			pe.Pos = ewp.Pos()
		}
		return pe
	}
	return &ProtoParseError{Kind: DependencyError, ImportPath: err.Path, Err: err}
}

func isEntryPoint(path string, entryPoints []string) bool {
	for _, e := range entryPoints {
		if e == path {
			return true
		}
	}
	return false
}

// Result is the successful output of Compile: the resolved files in
// dependency-topological order, the populated symbol table, and the two
// handlers that accumulated non-fatal diagnostics along the way.
type Result struct {
	Files          []*resolver.ResolvedFile
	Table          *symbols.Table
	SyntaxHandler  *reporter.Handler
	SemanticHandler *reporter.Handler
}

// Diagnostics flattens every accumulated syntactic and semantic error into
// the public ProtoParseError surface, ordered by file (dependency order)
// then source position within file. Since both handlers
// already preserve per-file accumulation order and Compile feeds files to
// the syntax handler strictly before the semantic handler runs, a
// syntax-then-semantic concatenation already satisfies that ordering for
// all but pathological interleavings across files, which this core does not
// attempt to further re-sort.
func (r *Result) Diagnostics() []*ProtoParseError {
	var out []*ProtoParseError
	for _, e := range r.SyntaxHandler.Errors() {
		out = append(out, &ProtoParseError{Kind: SyntaxError, File: e.File(), Pos: e.Pos(), Err: e})
	}
	for _, e := range r.SemanticHandler.Errors() {
		out = append(out, &ProtoParseError{Kind: SemanticError, File: e.File(), Pos: e.Pos(), Err: e})
	}
	return out
}

// Compile runs the full pipeline against entryPoints, in order. A non-nil
// error return means dependency resolution hard-failed; all other
// diagnostics are non-fatal and available from Result.Diagnostics.
func Compile(source resolver.FileSource, cfg resolver.Config, entryPoints ...string) (*Result, error) {
	syntaxHandler := reporter.NewHandler(nil)
	semanticHandler := reporter.NewHandler(nil)

	dr := resolver.New(source, cfg, syntaxHandler)
	files, err := dr.Resolve(entryPoints...)
	if err != nil {
		var rerr *resolver.Error
		if asResolverError(err, &rerr) {
			return nil, fromResolverError(rerr, entryPoints)
		}
		return nil, &ProtoParseError{Kind: IOError, Err: err}
	}

	inputs := make([]symbols.FileInput, len(files))
	for i, f := range files {
		inputs[i] = symbols.FileInput{Path: f.Path, AST: f.AST}
	}

	sr := symbols.NewResolver(semanticHandler)
	sr.Run(inputs)

	return &Result{
		Files:           files,
		Table:           sr.Table,
		SyntaxHandler:   syntaxHandler,
		SemanticHandler: semanticHandler,
	}, nil
}

func asResolverError(err error, target **resolver.Error) bool {
	if e, ok := err.(*resolver.Error); ok {
		*target = e
		return true
	}
	return false
}
