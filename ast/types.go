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

package ast

// FieldType is the sum type for a field's declared type. Exactly one
// of the concrete implementations below is held by any FieldNode.Type.
type FieldType interface {
	isFieldType()
	String() string
}

// ScalarType is one of the fifteen proto3 scalar types.
type ScalarType struct {
	Kind ScalarKind
}

func (ScalarType) isFieldType()     {}
func (t ScalarType) String() string { return t.Kind.String() }

// MessageType is a bare (unqualified) identifier naming a message, resolved
// later against the symbol table. The parser.ResolveEnumFieldTypes post-pass may
// rewrite a MessageType into an EnumType once the full set of declared enum
// names in the file is known; nothing else mutates a parsed AST.
type MessageType struct {
	Name string
}

func (MessageType) isFieldType()     {}
func (t MessageType) String() string { return t.Name }

// EnumType is a bare identifier known (by the post-parse resolver) to name
// an enum rather than a message. Never produced directly by the parser.
type EnumType struct {
	Name string
}

func (EnumType) isFieldType()     {}
func (t EnumType) String() string { return t.Name }

// QualifiedType is any dotted type reference (e.g. google.protobuf.Timestamp),
// preserved verbatim from the source and resolved by FQN lookup.
type QualifiedType struct {
	Name string
}

func (QualifiedType) isFieldType()     {}
func (t QualifiedType) String() string { return t.Name }

// MapType is a map<key, value> field type. The key is restricted at
// validation time to the scalars IsValidMapKeyScalar accepts (integral,
// bool, or string); the value may not itself be a map.
type MapType struct {
	Key   FieldType
	Value FieldType
}

func (MapType) isFieldType() {}
func (t MapType) String() string {
	return "map<" + t.Key.String() + ", " + t.Value.String() + ">"
}

// IsValidMapKeyScalar reports whether t is one of the scalar kinds permitted
// as a map key: any integral type, bool, or string. Never float, double,
// bytes, enum, or message.
func IsValidMapKeyScalar(t FieldType) bool {
	s, ok := t.(ScalarType)
	if !ok {
		return false
	}
	switch s.Kind {
	case Int32, Int64, UInt32, UInt64, SInt32, SInt64, Fixed32, Fixed64, SFixed32, SFixed64, Bool, String:
		return true
	default:
		return false
	}
}
