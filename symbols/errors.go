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

package symbols

import (
	"fmt"

	"github.com/bufproto/protocompile/ast"
)

// ErrorKind enumerates the semantic validation error kinds the resolver
// can report.
type ErrorKind int

const (
	DuplicateSymbol ErrorKind = iota
	UnresolvedType
	InvalidFieldNumber
	DuplicateFieldNumber
	DuplicateFieldName
	ReservedNumberUsed
	ReservedNameUsed
	InvalidMapKey
	MissingEnumZeroValue
	DuplicateEnumValueName
	InvalidPackageComponent
	InvalidExtendTarget
	InvalidRPCType
)

func (k ErrorKind) String() string {
	switch k {
	case DuplicateSymbol:
		return "DuplicateSymbol"
	case UnresolvedType:
		return "UnresolvedType"
	case InvalidFieldNumber:
		return "InvalidFieldNumber"
	case DuplicateFieldNumber:
		return "DuplicateFieldNumber"
	case DuplicateFieldName:
		return "DuplicateFieldName"
	case ReservedNumberUsed:
		return "ReservedNumberUsed"
	case ReservedNameUsed:
		return "ReservedNameUsed"
	case InvalidMapKey:
		return "InvalidMapKey"
	case MissingEnumZeroValue:
		return "MissingEnumZeroValue"
	case DuplicateEnumValueName:
		return "DuplicateEnumValueName"
	case InvalidPackageComponent:
		return "InvalidPackageComponent"
	case InvalidExtendTarget:
		return "InvalidExtendTarget"
	case InvalidRPCType:
		return "InvalidRPCType"
	default:
		return "Unknown"
	}
}

// Error is a single non-fatal semantic finding from Pass A or Pass B. It is
// reported through a *reporter.Handler rather than returned, matching the
// lexer/parser packages' accumulate-and-continue style.
type Error struct {
	Kind ErrorKind
	File string
	Pos  ast.Position
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%s: %s", e.File, e.Pos, e.Msg)
}

func newError(kind ErrorKind, file string, pos ast.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, File: file, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
