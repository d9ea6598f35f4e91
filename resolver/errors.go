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
	"fmt"
	"strings"
)

// ErrorKind distinguishes the ways dependency resolution can fail,
// mirroring the lexer/parser package's Kind-tagged error style.
type ErrorKind int

const (
	ImportNotFound ErrorKind = iota
	CircularDependency
	MaxDepthExceeded
	IOFailure
	InvalidPath
	ParseFailure
)

func (k ErrorKind) String() string {
	switch k {
	case ImportNotFound:
		return "ImportNotFound"
	case CircularDependency:
		return "CircularDependency"
	case MaxDepthExceeded:
		return "MaxDepthExceeded"
	case IOFailure:
		return "IOFailure"
	case InvalidPath:
		return "InvalidPath"
	case ParseFailure:
		return "ParseFailure"
	default:
		return "Unknown"
	}
}

// Error reports a failure of the dependency resolution pass. Path is the
// import path that could not be resolved (for ImportNotFound/InvalidPath/
// IOFailure/ParseFailure) or the importing file (for MaxDepthExceeded);
// Cycle is only populated for CircularDependency, naming the import chain
// that closes the loop, first entry repeated last.
type Error struct {
	Kind        ErrorKind
	Path        string
	Cycle       []string
	Suggestions []string
	Err         error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ImportNotFound:
		msg := fmt.Sprintf("import %q not found", e.Path)
		if len(e.Suggestions) > 0 {
			msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
		}
		return msg
	case CircularDependency:
		return fmt.Sprintf("circular import: %s", strings.Join(e.Cycle, " -> "))
	case MaxDepthExceeded:
		return fmt.Sprintf("import depth exceeded while resolving %q", e.Path)
	case IOFailure:
		return fmt.Sprintf("reading %q: %v", e.Path, e.Err)
	case InvalidPath:
		return fmt.Sprintf("invalid import path %q", e.Path)
	case ParseFailure:
		return fmt.Sprintf("%q: %v", e.Path, e.Err)
	default:
		return "dependency resolution error"
	}
}

func (e *Error) Unwrap() error { return e.Err }
