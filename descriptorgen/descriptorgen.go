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

// Package descriptorgen is a downstream consumer of the resolved compiler
// output: given a resolved AST and its symbol table, it produces a
// *descriptorpb.FileDescriptorProto per source file, exactly the shape a
// real protoc-like pipeline would hand to google.golang.org/protobuf for
// further processing. It lives outside the core pipeline stages and
// depends on them only through their public, already-resolved output.
package descriptorgen

import (
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/bufproto/protocompile/ast"
	"github.com/bufproto/protocompile/resolver"
	"github.com/bufproto/protocompile/symbols"
)

// Generate converts every resolved file into a FileDescriptorProto, in the
// same order the files were supplied. table is used to turn every type
// reference into a fully-qualified, leading-dot TypeName the way a real
// descriptor requires.
func Generate(files []*resolver.ResolvedFile, table *symbols.Table) []*descriptorpb.FileDescriptorProto {
	out := make([]*descriptorpb.FileDescriptorProto, len(files))
	for i, f := range files {
		out[i] = generateFile(f, table)
	}
	return out
}

func generateFile(f *resolver.ResolvedFile, table *symbols.Table) *descriptorpb.FileDescriptorProto {
	fd := &descriptorpb.FileDescriptorProto{
		Name:   proto.String(f.Path),
		Syntax: proto.String("proto3"),
	}
	if f.AST.Package != nil {
		fd.Package = proto.String(f.AST.Package.Name)
	}
	for _, imp := range f.AST.Imports {
		fd.Dependency = append(fd.Dependency, imp.Path)
	}

	g := &generator{table: table, pkg: fd.GetPackage()}
	for _, m := range f.AST.Messages {
		fd.MessageType = append(fd.MessageType, g.message(m))
	}
	for _, e := range f.AST.Enums {
		fd.EnumType = append(fd.EnumType, g.enum(e))
	}
	for _, s := range f.AST.Services {
		fd.Service = append(fd.Service, g.service(s))
	}
	for _, ext := range f.AST.Extends {
		fd.Extension = append(fd.Extension, g.extensionFields(ext)...)
	}
	return fd
}

type generator struct {
	table *symbols.Table
	pkg   string
}

func (g *generator) message(m *ast.MessageNode) *descriptorpb.DescriptorProto {
	d := &descriptorpb.DescriptorProto{Name: proto.String(m.Name)}
	for _, f := range m.Fields {
		d.Field = append(d.Field, g.field(f, nil))
	}
	for i, o := range m.Oneofs {
		d.OneofDecl = append(d.OneofDecl, &descriptorpb.OneofDescriptorProto{Name: proto.String(o.Name)})
		idx := int32(i)
		for _, f := range o.Fields {
			d.Field = append(d.Field, g.field(f, &idx))
		}
	}
	for _, nested := range m.Messages {
		d.NestedType = append(d.NestedType, g.message(nested))
	}
	for _, e := range m.Enums {
		d.EnumType = append(d.EnumType, g.enum(e))
	}
	for _, rr := range m.ReservedRanges {
		d.ReservedRange = append(d.ReservedRange, &descriptorpb.DescriptorProto_ReservedRange{
			Start: proto.Int32(rr.Start),
			End:   proto.Int32(rr.End + 1), // descriptor ranges are [start, end)
		})
	}
	d.ReservedName = append(d.ReservedName, m.ReservedNames...)

	// map<K,V> fields synthesize a nested "FooEntry" message, the same
	// representation protoc itself produces.
	for _, f := range m.Fields {
		if mt, ok := f.Type.(ast.MapType); ok {
			d.NestedType = append(d.NestedType, g.mapEntryMessage(f.Name, mt))
		}
	}
	return d
}

func (g *generator) field(f *ast.FieldNode, oneofIndex *int32) *descriptorpb.FieldDescriptorProto {
	fd := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(f.Name),
		Number: proto.Int32(f.Number),
		Label:  proto.Enum(labelFor(f.Label)),
	}
	if oneofIndex != nil {
		fd.OneofIndex = oneofIndex
	}

	switch t := f.Type.(type) {
	case ast.MapType:
		fd.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
		fd.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
		fd.TypeName = proto.String("." + g.qualify(mapEntryName(f.Name)))
	case ast.ScalarType:
		fd.Type = scalarDescriptorType(t.Kind).Enum()
	case ast.MessageType:
		fd.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
		fd.TypeName = proto.String(g.resolveTypeName(t.Name))
	case ast.EnumType:
		fd.Type = descriptorpb.FieldDescriptorProto_TYPE_ENUM.Enum()
		fd.TypeName = proto.String(g.resolveTypeName(t.Name))
	case ast.QualifiedType:
		fd.TypeName = proto.String(g.resolveTypeName(t.Name))
		if sym, ok := g.table.Lookup(strings.TrimPrefix(t.Name, ".")); ok && sym.Kind == symbols.KindEnum {
			fd.Type = descriptorpb.FieldDescriptorProto_TYPE_ENUM.Enum()
		} else {
			fd.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
		}
	}
	return fd
}

// mapEntryMessage synthesizes the nested message descriptor a map<K,V>
// field is represented as in descriptor form: two fields, key=1 and
// value=2, with the MapEntry option set.
func (g *generator) mapEntryMessage(fieldName string, mt ast.MapType) *descriptorpb.DescriptorProto {
	entry := &descriptorpb.DescriptorProto{
		Name:    proto.String(mapEntryName(fieldName)),
		Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
	}
	keyField := &ast.FieldNode{Name: "key", Type: mt.Key, Number: 1, Label: ast.Singular}
	valField := &ast.FieldNode{Name: "value", Type: mt.Value, Number: 2, Label: ast.Singular}
	entry.Field = append(entry.Field, g.field(keyField, nil), g.field(valField, nil))
	return entry
}

func mapEntryName(fieldName string) string {
	return camelCase(fieldName) + "Entry"
}

func camelCase(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

func (g *generator) enum(e *ast.EnumNode) *descriptorpb.EnumDescriptorProto {
	ed := &descriptorpb.EnumDescriptorProto{Name: proto.String(e.Name)}
	for _, v := range e.Values {
		ed.Value = append(ed.Value, &descriptorpb.EnumValueDescriptorProto{
			Name:   proto.String(v.Name),
			Number: proto.Int32(v.Number),
		})
	}
	return ed
}

func (g *generator) service(s *ast.ServiceNode) *descriptorpb.ServiceDescriptorProto {
	sd := &descriptorpb.ServiceDescriptorProto{Name: proto.String(s.Name)}
	for _, m := range s.Methods {
		sd.Method = append(sd.Method, &descriptorpb.MethodDescriptorProto{
			Name:            proto.String(m.Name),
			InputType:       proto.String(g.resolveTypeName(m.InputType)),
			OutputType:      proto.String(g.resolveTypeName(m.OutputType)),
			ClientStreaming: proto.Bool(m.ClientStreaming),
			ServerStreaming: proto.Bool(m.ServerStreaming),
		})
	}
	return sd
}

func (g *generator) extensionFields(ext *ast.ExtendNode) []*descriptorpb.FieldDescriptorProto {
	out := make([]*descriptorpb.FieldDescriptorProto, 0, len(ext.Fields))
	for _, f := range ext.Fields {
		fd := g.field(f, nil)
		fd.Extendee = proto.String(g.resolveTypeName(ext.ExtendedType))
		out = append(out, fd)
	}
	return out
}

// resolveTypeName turns a parsed type-reference string into the leading-dot
// fully-qualified name a descriptor expects, consulting the symbol table
// when the reference was unqualified.
func (g *generator) resolveTypeName(name string) string {
	trimmed := strings.TrimPrefix(name, ".")
	if sym, ok := g.table.Lookup(trimmed); ok {
		return "." + sym.FQN
	}
	return "." + g.qualify(trimmed)
}

func (g *generator) qualify(name string) string {
	if g.pkg == "" {
		return name
	}
	return g.pkg + "." + name
}

func labelFor(l ast.FieldLabel) descriptorpb.FieldDescriptorProto_Label {
	switch l {
	case ast.Repeated:
		return descriptorpb.FieldDescriptorProto_LABEL_REPEATED
	default:
		return descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	}
}

func scalarDescriptorType(k ast.ScalarKind) descriptorpb.FieldDescriptorProto_Type {
	switch k {
	case ast.Double:
		return descriptorpb.FieldDescriptorProto_TYPE_DOUBLE
	case ast.Float:
		return descriptorpb.FieldDescriptorProto_TYPE_FLOAT
	case ast.Int32:
		return descriptorpb.FieldDescriptorProto_TYPE_INT32
	case ast.Int64:
		return descriptorpb.FieldDescriptorProto_TYPE_INT64
	case ast.UInt32:
		return descriptorpb.FieldDescriptorProto_TYPE_UINT32
	case ast.UInt64:
		return descriptorpb.FieldDescriptorProto_TYPE_UINT64
	case ast.SInt32:
		return descriptorpb.FieldDescriptorProto_TYPE_SINT32
	case ast.SInt64:
		return descriptorpb.FieldDescriptorProto_TYPE_SINT64
	case ast.Fixed32:
		return descriptorpb.FieldDescriptorProto_TYPE_FIXED32
	case ast.Fixed64:
		return descriptorpb.FieldDescriptorProto_TYPE_FIXED64
	case ast.SFixed32:
		return descriptorpb.FieldDescriptorProto_TYPE_SFIXED32
	case ast.SFixed64:
		return descriptorpb.FieldDescriptorProto_TYPE_SFIXED64
	case ast.Bool:
		return descriptorpb.FieldDescriptorProto_TYPE_BOOL
	case ast.String:
		return descriptorpb.FieldDescriptorProto_TYPE_STRING
	case ast.Bytes:
		return descriptorpb.FieldDescriptorProto_TYPE_BYTES
	default:
		return descriptorpb.FieldDescriptorProto_TYPE_STRING
	}
}
