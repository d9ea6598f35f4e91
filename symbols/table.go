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

import "github.com/tidwall/btree"

// Table is the SymbolTable: an FQN-keyed map, plus the package-scoped and
// extended-type indexes the resolution passes need. The primary index is
// a btree.Map rather than a built-in map so that AllSorted and the
// resolver's scans over every symbol visit them in FQN order at no cost
// beyond an in-order scan.
type Table struct {
	byFQN       btree.Map[string, *Symbol]
	byPackage   map[string][]*Symbol
	byExtension map[string][]*Symbol
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{
		byPackage:   map[string][]*Symbol{},
		byExtension: map[string][]*Symbol{},
	}
}

// Insert adds sym under its FQN. If a symbol with the same FQN already
// exists, Insert leaves the table unchanged and returns the existing symbol
// with ok=false, so the caller can raise DuplicateSymbol.
func (t *Table) Insert(sym *Symbol) (existing *Symbol, ok bool) {
	if prev, found := t.byFQN.Get(sym.FQN); found {
		return prev, false
	}
	t.byFQN.Set(sym.FQN, sym)
	t.byPackage[sym.Package] = append(t.byPackage[sym.Package], sym)
	if sym.Kind == KindExtensionField {
		t.byExtension[sym.ExtendedType] = append(t.byExtension[sym.ExtendedType], sym)
	}
	return nil, true
}

// Lookup finds a symbol by exact FQN.
func (t *Table) Lookup(fqn string) (*Symbol, bool) {
	return t.byFQN.Get(fqn)
}

// InPackage returns every symbol declared in pkg, in declaration order.
// Nested symbols (fields, enum values, nested messages, rpcs) are included
// alongside the top-level ones.
func (t *Table) InPackage(pkg string) []*Symbol {
	return t.byPackage[pkg]
}

// ExtensionsOf returns the extension fields declared against extendedFQN.
func (t *Table) ExtensionsOf(extendedFQN string) []*Symbol {
	return t.byExtension[extendedFQN]
}

// Len reports the number of distinct FQNs in the table.
func (t *Table) Len() int {
	return t.byFQN.Len()
}

// AllSorted returns every symbol in FQN order.
func (t *Table) AllSorted() []*Symbol {
	out := make([]*Symbol, 0, t.byFQN.Len())
	t.byFQN.Scan(func(_ string, sym *Symbol) bool {
		out = append(out, sym)
		return true
	})
	return out
}
