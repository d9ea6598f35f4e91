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

import "github.com/bufproto/protocompile/ast"

// ResolveEnumFieldTypes is the post-parse pass that collects every enum
// simple name declared anywhere in the file (top-level and nested) and
// rewrites any field whose type is ast.MessageType(name) to
// ast.EnumType(name) when name is in that set. ast.QualifiedType is never
// rewritten. This is the only mutation ever performed on a parsed AST.
//
// The set of enum names is deliberately global across the file, not scoped
// per-message: this allows an unqualified cross-message nested-enum
// reference to be silently reclassified. Strict proto3 scoping would
// reject such references; this implementation does not, by design.
func ResolveEnumFieldTypes(f *ast.File) {
	names := map[string]bool{}
	collectEnumNames(f.Enums, names)
	for _, m := range f.Messages {
		collectEnumNamesFromMessage(m, names)
	}

	for _, m := range f.Messages {
		rewriteMessage(m, names)
	}
	for _, e := range f.Extends {
		for _, field := range e.Fields {
			field.Type = rewriteType(field.Type, names)
		}
	}
}

func collectEnumNames(enums []*ast.EnumNode, names map[string]bool) {
	for _, e := range enums {
		names[e.Name] = true
	}
}

func collectEnumNamesFromMessage(m *ast.MessageNode, names map[string]bool) {
	collectEnumNames(m.Enums, names)
	for _, nested := range m.Messages {
		collectEnumNamesFromMessage(nested, names)
	}
}

func rewriteMessage(m *ast.MessageNode, names map[string]bool) {
	for _, f := range m.Fields {
		f.Type = rewriteType(f.Type, names)
	}
	for _, o := range m.Oneofs {
		for _, f := range o.Fields {
			f.Type = rewriteType(f.Type, names)
		}
	}
	for _, nested := range m.Messages {
		rewriteMessage(nested, names)
	}
}

// rewriteType applies the Message(name)->Enum(name) rewrite recursively,
// including inside map value types.
func rewriteType(t ast.FieldType, names map[string]bool) ast.FieldType {
	switch v := t.(type) {
	case ast.MessageType:
		if names[v.Name] {
			return ast.EnumType{Name: v.Name}
		}
		return v
	case ast.MapType:
		return ast.MapType{Key: rewriteType(v.Key, names), Value: rewriteType(v.Value, names)}
	default:
		return t
	}
}
