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

package lexer

import (
	"fmt"

	"github.com/bufproto/protocompile/ast"
)

// ErrorKind tags the variants of Error.
type ErrorKind int

const (
	InvalidEscape ErrorKind = iota
	UnterminatedString
	UnterminatedComment
	UnexpectedCharacter
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidEscape:
		return "invalid escape sequence"
	case UnterminatedString:
		return "unterminated string literal"
	case UnterminatedComment:
		return "unterminated block comment"
	case UnexpectedCharacter:
		return "unexpected character"
	default:
		return "lexer error"
	}
}

// Error is a fatal lexical error. Lexing stops at the first Error: unlike
// parser errors, a tokenization failure is fatal to the whole file.
type Error struct {
	Kind ErrorKind
	Pos  ast.Position
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Kind)
}
