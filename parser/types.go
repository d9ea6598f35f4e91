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

// parseFieldType parses a field's TYPE production: `map<...>`, a scalar
// type name, or a (possibly dotted) message/enum type reference.
func (p *Parser) parseFieldType() (ast.FieldType, bool) {
	t := p.next()
	if t.Kind == ast.TokenKeyword && t.Keyword == ast.KeywordMap {
		return p.parseMapType()
	}
	if t.Kind != ast.TokenIdentifier {
		p.errorf(t.Pos, "expected a field type, found %s", describe(t))
		return nil, false
	}
	if kind, ok := ast.ScalarKinds[t.Text]; ok {
		p.advance()
		return ast.ScalarType{Kind: kind}, true
	}

	name := t.Text
	p.advance()
	qualified := false
	for p.isSymbol(".") {
		p.advance()
		qualified = true
		nt := p.next()
		if nt.Kind != ast.TokenIdentifier {
			p.errorf(nt.Pos, "expected an identifier after '.', found %s", describe(nt))
			return ast.QualifiedType{Name: name}, false
		}
		name += "." + nt.Text
		p.advance()
	}
	if qualified {
		return ast.QualifiedType{Name: name}, true
	}
	return ast.MessageType{Name: name}, true
}

// parseMapType parses `map < KEY_TYPE , VALUE_TYPE >`. The key type is
// parsed like any other field type but restricted at validation time.
func (p *Parser) parseMapType() (ast.FieldType, bool) {
	p.advance() // consume 'map'
	if _, ok := p.expectSymbol("<"); !ok {
		return nil, false
	}
	key, ok := p.parseFieldType()
	if !ok {
		return nil, false
	}
	if _, ok := p.expectSymbol(","); !ok {
		return nil, false
	}
	val, ok := p.parseFieldType()
	if !ok {
		return nil, false
	}
	if _, ok := p.expectSymbol(">"); !ok {
		return nil, false
	}
	return ast.MapType{Key: key, Value: val}, true
}

// parseTypeRef parses a bare or dotted type reference, used for rpc
// input/output types and extend targets, which are stored as plain strings
// rather than FieldType values.
func (p *Parser) parseTypeRef() (string, ast.Position, bool) {
	return p.parseDottedName()
}
