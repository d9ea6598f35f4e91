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

package parser

import "fmt"

// Error is a single syntactic problem detected while parsing. Unlike a
// lexer.Error, a parser Error is recoverable: the parser synchronizes and
// keeps going, accumulating as many of these as it can.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

func errUnexpectedToken(description, got string) *Error {
	return &Error{Msg: fmt.Sprintf("expected %s, found %s", description, got)}
}

func errMissing(what string) *Error {
	return &Error{Msg: fmt.Sprintf("missing %s", what)}
}
