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

// Package reporter contains the types used for reporting errors and
// warnings from the compiler pipeline (lexer, parser, resolver, symbol
// resolver). Every stage is handed a *Handler rather than panicking or
// returning early, so that a single error never aborts an entire parse.
package reporter

import (
	"errors"
	"fmt"

	"github.com/bufproto/protocompile/ast"
)

// ErrInvalidSource is returned by Handler.Error when errors were reported
// but the configured Reporter never itself returned a non-nil error (i.e.
// it chose to keep collecting).
var ErrInvalidSource = errors.New("invalid proto source")

// ErrorWithPos is an error that carries the source position of the
// offending token or node.
type ErrorWithPos interface {
	error
	Pos() ast.Position
	File() string
}

type errorWithPos struct {
	file string
	pos  ast.Position
	err  error
}

func (e errorWithPos) Error() string {
	return fmt.Sprintf("%s:%s: %s", e.file, e.pos, e.err)
}

func (e errorWithPos) Pos() ast.Position { return e.pos }
func (e errorWithPos) File() string      { return e.file }
func (e errorWithPos) Unwrap() error     { return e.err }

// Error wraps err with the given file and position, producing an
// ErrorWithPos. If err is already an ErrorWithPos, it is returned as-is.
func Error(file string, pos ast.Position, err error) ErrorWithPos {
	if ewp, ok := err.(ErrorWithPos); ok {
		return ewp
	}
	return errorWithPos{file: file, pos: pos, err: err}
}

// Errorf is a convenience constructor combining fmt.Errorf and Error.
func Errorf(file string, pos ast.Position, format string, args ...any) ErrorWithPos {
	return errorWithPos{file: file, pos: pos, err: fmt.Errorf(format, args...)}
}

// ErrorReporter is invoked for every error encountered during a pipeline
// stage. Returning a non-nil error aborts the operation immediately with
// that error; returning nil allows the stage to continue accumulating
// further errors.
type ErrorReporter func(ErrorWithPos) error

// WarningReporter is invoked for non-fatal diagnostics. Warnings never abort
// an operation.
type WarningReporter func(ErrorWithPos)

// Reporter handles both errors and warnings produced by the pipeline.
type Reporter interface {
	Error(ErrorWithPos) error
	Warning(ErrorWithPos)
}

// NewReporter builds a Reporter from a pair of callback functions. Either
// may be nil.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithPos) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithPos) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler accumulates errors and warnings on behalf of one parse/resolve
// invocation and forwards them to a Reporter. It is not safe for concurrent
// use by design: the pipeline is single-threaded and cooperative, with no
// shared mutable state between invocations, so Handler needs no locking.
type Handler struct {
	reporter Reporter
	errs     []ErrorWithPos
	warnings []ErrorWithPos
	aborted  error
}

// NewHandler creates a Handler that forwards to rep. If rep is nil, a
// default reporter is used that collects every error without aborting.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(func(ErrorWithPos) error { return nil }, nil)
	}
	return &Handler{reporter: rep}
}

// HandleErrorf records an error at pos, built from a format string, and
// reports it to the underlying Reporter.
func (h *Handler) HandleErrorf(file string, pos ast.Position, format string, args ...any) error {
	return h.HandleError(Errorf(file, pos, format, args...))
}

// HandleError records err (promoting it to an ErrorWithPos if it is not
// already one) and reports it to the underlying Reporter. If the handler has
// already aborted, the same abort error is returned without reporting err
// again.
func (h *Handler) HandleError(err ErrorWithPos) error {
	if h.aborted != nil {
		return h.aborted
	}
	h.errs = append(h.errs, err)
	if reportErr := h.reporter.Error(err); reportErr != nil {
		h.aborted = reportErr
		return reportErr
	}
	return nil
}

// HandleWarning records and reports a warning. Warnings never abort.
func (h *Handler) HandleWarning(file string, pos ast.Position, err error) {
	w := Error(file, pos, err)
	h.warnings = append(h.warnings, w)
	h.reporter.Warning(w)
}

// Errors returns every error handled so far, in the order they were
// reported.
func (h *Handler) Errors() []ErrorWithPos {
	return h.errs
}

// Warnings returns every warning handled so far.
func (h *Handler) Warnings() []ErrorWithPos {
	return h.warnings
}

// Error returns nil if no errors were ever handled. If errors were handled
// but the Reporter never chose to abort, ErrInvalidSource is returned.
// Otherwise the Reporter's abort error is returned.
func (h *Handler) Error() error {
	if h.aborted != nil {
		return h.aborted
	}
	if len(h.errs) > 0 {
		return ErrInvalidSource
	}
	return nil
}

// Aborted reports whether the Reporter has requested an immediate abort.
func (h *Handler) Aborted() bool {
	return h.aborted != nil
}
