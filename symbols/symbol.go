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

// Package symbols implements the symbol resolver and validator: a two-pass
// walk over the dependency-ordered file set that builds a
// fully-qualified-name table, resolves every type reference against it,
// and enforces proto3's field/name/enum/package rules.
package symbols

import "github.com/bufproto/protocompile/ast"

// Kind classifies what a Symbol's FQN names.
type Kind int

const (
	KindMessage Kind = iota
	KindEnum
	KindEnumValue
	KindField
	KindOneof
	KindService
	KindRPC
	KindExtensionField
)

func (k Kind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindEnum:
		return "enum"
	case KindEnumValue:
		return "enum value"
	case KindField:
		return "field"
	case KindOneof:
		return "oneof"
	case KindService:
		return "service"
	case KindRPC:
		return "rpc"
	case KindExtensionField:
		return "extension field"
	default:
		return "symbol"
	}
}

// Symbol is one entry in the SymbolTable: fqn, kind, package, parent,
// fieldNumber, and extendedType.
type Symbol struct {
	FQN     string
	Kind    Kind
	File    string
	Pos     ast.Position
	Package string
	Parent  string // FQN of the enclosing message/enum/service, "" for top-level

	// FieldNumber is only meaningful for KindField/KindExtensionField (the
	// field number) and KindEnumValue (the value's number).
	FieldNumber int32

	// ExtendedType is only meaningful for KindExtensionField: the FQN the
	// extension field was declared against.
	ExtendedType string
}
