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
	"regexp"
	"strings"

	"github.com/bufproto/protocompile/ast"
	"github.com/bufproto/protocompile/reporter"
)

// FileInput is one parsed file handed to the resolver, in dependency-
// topological order: the set of parsed ASTs and their packages.
type FileInput struct {
	Path string
	AST  *ast.File
}

// Resolver runs Pass A (declaration) and Pass B (resolution and
// validation) over a file set.
type Resolver struct {
	Table *Table
	h     *reporter.Handler
}

// NewResolver constructs a Resolver backed by a fresh Table. h receives
// every semantic error; resolution continues regardless, errors are
// accumulated rather than aborting the walk.
func NewResolver(h *reporter.Handler) *Resolver {
	return &Resolver{Table: NewTable(), h: h}
}

// Run executes both passes over files, which must already be in
// dependency-topological order.
func (r *Resolver) Run(files []FileInput) {
	for _, f := range files {
		r.declareFile(f)
	}
	for _, f := range files {
		r.resolveFile(f)
	}
}

func (r *Resolver) report(kind ErrorKind, file string, pos ast.Position, format string, args ...any) {
	_ = r.h.HandleErrorf(file, pos, "%s", newError(kind, file, pos, format, args...).Msg)
}

func fqn(pkg, parent, name string) string {
	if parent != "" {
		return parent + "." + name
	}
	if pkg != "" {
		return pkg + "." + name
	}
	return name
}

// --- Pass A: declaration --------------------------------------------------

func (r *Resolver) declareFile(fi FileInput) {
	pkg := ""
	if fi.AST.Package != nil {
		pkg = fi.AST.Package.Name
	}
	for _, m := range fi.AST.Messages {
		r.declareMessage(fi.Path, pkg, "", m)
	}
	for _, e := range fi.AST.Enums {
		r.declareEnum(fi.Path, pkg, "", e)
	}
	for _, s := range fi.AST.Services {
		r.declareService(fi.Path, pkg, s)
	}
	for _, ext := range fi.AST.Extends {
		r.declareExtend(fi.Path, pkg, ext)
	}
}

func (r *Resolver) declare(file string, sym *Symbol) {
	if existing, ok := r.Table.Insert(sym); !ok {
		r.report(DuplicateSymbol, file, sym.Pos, "%q is already declared (as %s, at %s:%s)",
			sym.FQN, existing.Kind, existing.File, existing.Pos)
	}
}

func (r *Resolver) declareMessage(file, pkg, parent string, m *ast.MessageNode) {
	self := fqn(pkg, parent, m.Name)
	r.declare(file, &Symbol{FQN: self, Kind: KindMessage, File: file, Pos: m.Pos, Package: pkg, Parent: parent})

	for _, f := range m.Fields {
		r.declareField(file, pkg, self, f, KindField, "")
	}
	for _, o := range m.Oneofs {
		oneofFQN := fqn(pkg, self, o.Name)
		r.declare(file, &Symbol{FQN: oneofFQN, Kind: KindOneof, File: file, Pos: o.Pos, Package: pkg, Parent: self})
		for _, f := range o.Fields {
			r.declareField(file, pkg, self, f, KindField, "")
		}
	}
	for _, nested := range m.Messages {
		r.declareMessage(file, pkg, self, nested)
	}
	for _, en := range m.Enums {
		r.declareEnum(file, pkg, self, en)
	}
}

func (r *Resolver) declareField(file, pkg, parent string, f *ast.FieldNode, kind Kind, extendedType string) {
	self := fqn(pkg, parent, f.Name)
	r.declare(file, &Symbol{
		FQN: self, Kind: kind, File: file, Pos: f.Pos, Package: pkg, Parent: parent,
		FieldNumber: f.Number, ExtendedType: extendedType,
	})
}

func (r *Resolver) declareEnum(file, pkg, parent string, e *ast.EnumNode) {
	self := fqn(pkg, parent, e.Name)
	r.declare(file, &Symbol{FQN: self, Kind: KindEnum, File: file, Pos: e.Pos, Package: pkg, Parent: parent})
	for _, v := range e.Values {
		valFQN := fqn(pkg, self, v.Name)
		r.declare(file, &Symbol{FQN: valFQN, Kind: KindEnumValue, File: file, Pos: v.Pos, Package: pkg, Parent: self, FieldNumber: v.Number})
	}
}

func (r *Resolver) declareService(file, pkg string, s *ast.ServiceNode) {
	self := fqn(pkg, "", s.Name)
	r.declare(file, &Symbol{FQN: self, Kind: KindService, File: file, Pos: s.Pos, Package: pkg})
	for _, method := range s.Methods {
		methFQN := fqn(pkg, self, method.Name)
		r.declare(file, &Symbol{FQN: methFQN, Kind: KindRPC, File: file, Pos: method.Pos, Package: pkg, Parent: self})
	}
}

func (r *Resolver) declareExtend(file, pkg string, ext *ast.ExtendNode) {
	for _, f := range ext.Fields {
		r.declareField(file, pkg, "", f, KindExtensionField, ext.ExtendedType)
	}
}

// --- Pass B: resolution and validation ------------------------------------

var packageComponentRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z_0-9]*$`)

func (r *Resolver) resolveFile(fi FileInput) {
	pkg := ""
	if fi.AST.Package != nil {
		pkg = fi.AST.Package.Name
		for _, c := range strings.Split(pkg, ".") {
			if !packageComponentRe.MatchString(c) {
				r.report(InvalidPackageComponent, fi.Path, fi.AST.Package.Pos, "invalid package component %q", c)
			}
		}
	}

	for _, m := range fi.AST.Messages {
		r.resolveMessage(fi.Path, pkg, nil, m)
	}
	for _, e := range fi.AST.Enums {
		r.validateEnum(fi.Path, e)
	}
	for _, s := range fi.AST.Services {
		r.resolveService(fi.Path, pkg, nil, s)
	}
	for _, ext := range fi.AST.Extends {
		r.resolveExtend(fi.Path, pkg, ext)
	}
}

func (r *Resolver) resolveMessage(file, pkg string, enclosing []string, m *ast.MessageNode) {
	self := fqn(pkg, headOr(enclosing, ""), m.Name)
	scope := append([]string{self}, enclosing...)

	used := newFieldScope(m.ReservedNumbers(), m.ReservedNames)
	for _, f := range m.Fields {
		r.resolveField(file, pkg, scope, m, f, used)
	}
	for _, o := range m.Oneofs {
		for _, f := range o.Fields {
			r.resolveField(file, pkg, scope, m, f, used)
		}
	}
	for _, nested := range m.Messages {
		r.resolveMessage(file, pkg, scope, nested)
	}
	for _, en := range m.Enums {
		r.validateEnum(file, en)
	}
}

func headOr(scope []string, def string) string {
	if len(scope) == 0 {
		return def
	}
	return scope[0]
}

// fieldScope tracks the field-number and field-name namespace shared by a
// message's direct fields and all of its oneofs' fields: a number or name
// must not be reused anywhere in this shared scope.
type fieldScope struct {
	numbers     map[int32]bool
	names       map[string]bool
	reservedNum map[int32]bool
	reservedNme map[string]bool
}

func newFieldScope(reservedNum map[int32]bool, reservedNames []string) *fieldScope {
	s := &fieldScope{
		numbers:     map[int32]bool{},
		names:       map[string]bool{},
		reservedNum: reservedNum,
		reservedNme: map[string]bool{},
	}
	for _, n := range reservedNames {
		s.reservedNme[n] = true
	}
	return s
}

func (r *Resolver) resolveField(file, pkg string, scope []string, m *ast.MessageNode, f *ast.FieldNode, used *fieldScope) {
	if used.reservedNum[f.Number] {
		r.report(ReservedNumberUsed, file, f.Pos, "field number %d is reserved in message %q", f.Number, m.Name)
	} else if used.numbers[f.Number] {
		r.report(DuplicateFieldNumber, file, f.Pos, "field number %d is already used in message %q", f.Number, m.Name)
	}
	used.numbers[f.Number] = true

	if used.reservedNme[f.Name] {
		r.report(ReservedNameUsed, file, f.Pos, "field name %q is reserved in message %q", f.Name, m.Name)
	} else if used.names[f.Name] {
		r.report(DuplicateFieldName, file, f.Pos, "field name %q is already used in message %q", f.Name, m.Name)
	}
	used.names[f.Name] = true

	r.resolveFieldType(file, pkg, scope, f.Pos, f.Type)
}

func (r *Resolver) resolveFieldType(file, pkg string, scope []string, pos ast.Position, t ast.FieldType) {
	switch v := t.(type) {
	case ast.MapType:
		if !ast.IsValidMapKeyScalar(v.Key) {
			r.report(InvalidMapKey, file, pos, "invalid map key type %s", v.Key)
		}
		if _, isMap := v.Value.(ast.MapType); isMap {
			r.report(InvalidMapKey, file, pos, "map value may not itself be a map")
		}
		r.resolveFieldType(file, pkg, scope, pos, v.Value)
	case ast.MessageType:
		r.resolveTypeName(file, pkg, scope, pos, v.Name)
	case ast.EnumType:
		r.resolveTypeName(file, pkg, scope, pos, v.Name)
	case ast.QualifiedType:
		r.resolveTypeName(file, pkg, scope, pos, v.Name)
	case ast.ScalarType:
		// always resolved; nothing to look up.
	}
}

// resolveTypeName implements the qualified/unqualified lookup order and
// reports UnresolvedType on failure. It does not validate the kind
// of the symbol found: a bare reference resolving to an enum rather than a
// message is accepted, matching real-world proto3 behavior where the
// parser cannot always distinguish the two ahead of resolution.
func (r *Resolver) resolveTypeName(file, pkg string, scope []string, pos ast.Position, name string) (*Symbol, bool) {
	if strings.Contains(name, ".") {
		trimmed := strings.TrimPrefix(name, ".")
		if sym, ok := r.Table.Lookup(trimmed); ok {
			return sym, true
		}
		r.report(UnresolvedType, file, pos, "unresolved type %q", name)
		return nil, false
	}

	for _, s := range scope {
		if sym, ok := r.Table.Lookup(fqn("", s, name)); ok {
			return sym, true
		}
	}
	if pkg != "" {
		if sym, ok := r.Table.Lookup(fqn("", pkg, name)); ok {
			return sym, true
		}
	}
	if sym, ok := r.Table.Lookup(name); ok {
		return sym, true
	}
	// Imported packages' top-level types: the file set handed to the
	// resolver is exactly the transitive import closure computed by the
	// dependency resolver, so a global search by simple name over every
	// top-level symbol stands in for "search each imported package".
	if sym, ok := r.findTopLevelBySimpleName(name); ok {
		return sym, true
	}

	r.report(UnresolvedType, file, pos, "unresolved type %q", name)
	return nil, false
}

func (r *Resolver) findTopLevelBySimpleName(name string) (*Symbol, bool) {
	var found *Symbol
	r.Table.byFQN.Scan(func(_ string, sym *Symbol) bool {
		if sym.Parent != "" {
			return true
		}
		if simpleName(sym.FQN) == name {
			found = sym
			return false
		}
		return true
	})
	return found, found != nil
}

func simpleName(fqnStr string) string {
	idx := strings.LastIndex(fqnStr, ".")
	if idx < 0 {
		return fqnStr
	}
	return fqnStr[idx+1:]
}

func (r *Resolver) validateEnum(file string, e *ast.EnumNode) {
	if len(e.Values) == 0 {
		r.report(MissingEnumZeroValue, file, e.Pos, "enum %q must declare at least one value", e.Name)
		return
	}
	if e.Values[0].Number != 0 {
		r.report(MissingEnumZeroValue, file, e.Values[0].Pos, "the first value of enum %q must have number 0", e.Name)
	}
	seen := map[string]bool{}
	for _, v := range e.Values {
		if seen[v.Name] {
			r.report(DuplicateEnumValueName, file, v.Pos, "value name %q is already used in enum %q", v.Name, e.Name)
		}
		seen[v.Name] = true
	}
}

func (r *Resolver) resolveService(file, pkg string, scope []string, s *ast.ServiceNode) {
	for _, method := range s.Methods {
		r.resolveRPCType(file, pkg, scope, method.Pos, method.InputType)
		r.resolveRPCType(file, pkg, scope, method.Pos, method.OutputType)
	}
}

func (r *Resolver) resolveRPCType(file, pkg string, scope []string, pos ast.Position, typeName string) {
	sym, ok := r.resolveTypeName(file, pkg, scope, pos, typeName)
	if !ok {
		return
	}
	if sym.Kind != KindMessage {
		r.report(InvalidRPCType, file, pos, "rpc type %q must be a message, found %s", typeName, sym.Kind)
	}
}

func (r *Resolver) resolveExtend(file, pkg string, ext *ast.ExtendNode) {
	sym, ok := r.resolveTypeName(file, pkg, nil, ext.Pos, ext.ExtendedType)
	if !ok {
		return
	}
	if sym.Kind != KindMessage || !strings.HasPrefix(sym.FQN, "google.protobuf.") {
		r.report(InvalidExtendTarget, file, ext.Pos, "extend target %q does not resolve to a message under google.protobuf", ext.ExtendedType)
	}
	for _, f := range ext.Fields {
		if f.Label != ast.Optional {
			r.report(InvalidExtendTarget, file, f.Pos, "extension field %q must carry an explicit optional label", f.Name)
		}
		r.resolveFieldType(file, pkg, nil, f.Pos, f.Type)
	}
}
