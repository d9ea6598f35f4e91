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

// ProtoVersion is the normalized syntax declaration. Proto3 is the only
// canonical value the core ever produces: "proto2" is silently mapped to
// it rather than rejected.
type ProtoVersion int

const (
	Proto3 ProtoVersion = iota
)

// ImportModifier distinguishes a plain import from `public`/`weak` imports.
// The modifier is recognized syntactically but carries no semantic weight
// in this core.
type ImportModifier int

const (
	ImportPlain ImportModifier = iota
	ImportPublic
	ImportWeak
)

// FieldLabel is a field's cardinality.
type FieldLabel int

const (
	Singular FieldLabel = iota
	Optional
	Repeated
)

// File is the root AST node for a single parsed .proto source file (called
// ProtoAST in the data model).
type File struct {
	Pos     Position
	Syntax  ProtoVersion
	Package *PackageNode // nil if no package declaration was present
	Imports []*ImportNode
	Options []*OptionNode
	Messages []*MessageNode
	Enums    []*EnumNode
	Services []*ServiceNode
	Extends  []*ExtendNode
}

// PackageNode is a `package a.b.c;` declaration.
type PackageNode struct {
	Pos  Position
	Name string
}

// ImportNode is a single `import [public|weak] "path";` declaration.
type ImportNode struct {
	Pos      Position
	Path     string
	Modifier ImportModifier
}

// OptionValue is the sum type of values an option may hold.
type OptionValue interface {
	isOptionValue()
}

type OptionString string
type OptionNumber float64
type OptionBool bool
type OptionIdentifier string

func (OptionString) isOptionValue()     {}
func (OptionNumber) isOptionValue()     {}
func (OptionBool) isOptionValue()       {}
func (OptionIdentifier) isOptionValue() {}

// OptionNode is a single `option name = value;` (or field-option) entry.
// IsCustom is true when the name was written in parentheses in the source,
// e.g. `option (my.custom.option) = true;`.
type OptionNode struct {
	Pos      Position
	Name     string
	Value    OptionValue
	IsCustom bool
}

// ReservedRange is an inclusive field-number range reserved within a message,
// expanded at parse time from either a single number or a `N to M` range.
type ReservedRange struct {
	Pos      Position
	Start    int32
	End      int32 // inclusive; equal to Start for a single reserved number
}

// MessageNode is a `message Name { ... }` declaration.
type MessageNode struct {
	Pos      Position
	Name     string
	Fields   []*FieldNode
	Messages []*MessageNode
	Enums    []*EnumNode
	Oneofs   []*OneofNode
	Options  []*OptionNode

	ReservedRanges []ReservedRange
	ReservedNames  []string
}

// ReservedNumbers expands ReservedRanges into the flat set of individually
// reserved field numbers.
func (m *MessageNode) ReservedNumbers() map[int32]bool {
	out := make(map[int32]bool)
	for _, r := range m.ReservedRanges {
		for n := r.Start; n <= r.End; n++ {
			out[n] = true
		}
	}
	return out
}

// FieldNode is a single field declaration within a message or oneof.
type FieldNode struct {
	Pos     Position
	Name    string
	Type    FieldType
	Number  int32
	Label   FieldLabel
	Options []*OptionNode
}

// OneofNode is a `oneof name { ... }` group. Every field within it is
// implicitly Singular.
type OneofNode struct {
	Pos     Position
	Name    string
	Fields  []*FieldNode
	Options []*OptionNode
}

// EnumValueNode is a single `NAME = NUMBER [options];` entry in an enum.
type EnumValueNode struct {
	Pos     Position
	Name    string
	Number  int32
	Options []*OptionNode
}

// EnumNode is an `enum Name { ... }` declaration.
type EnumNode struct {
	Pos     Position
	Name    string
	Values  []*EnumValueNode
	Options []*OptionNode
}

// RpcMethodNode is a single `rpc Name(Input) returns (Output);` entry.
type RpcMethodNode struct {
	Pos              Position
	Name             string
	InputType        string
	OutputType       string
	ClientStreaming  bool
	ServerStreaming  bool
	Options          []*OptionNode
}

// ServiceNode is a `service Name { ... }` declaration.
type ServiceNode struct {
	Pos     Position
	Name    string
	Methods []*RpcMethodNode
	Options []*OptionNode
}

// ExtendNode is an `extend Target { ... }` block. Proto3 restricts
// extension targets to messages under google.protobuf; every field inside
// must carry an explicit Optional label.
type ExtendNode struct {
	Pos          Position
	ExtendedType string
	Fields       []*FieldNode
	Options      []*OptionNode
}
