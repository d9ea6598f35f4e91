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

var enumBodyStarters = map[ast.Keyword]bool{ast.KeywordOption: true}

// parseEnum parses `enum NAME { (option | value)* }`.
func (p *Parser) parseEnum() *ast.EnumNode {
	pos := p.advance().Pos // consume 'enum'
	name, ok := p.parseTypeName("enum")
	if !ok {
		p.synchronize()
		return nil
	}
	e := &ast.EnumNode{Pos: pos, Name: name}
	if _, ok := p.expectSymbol("{"); !ok {
		p.synchronize()
		return e
	}

	for {
		t := p.next()
		if t.Kind == ast.TokenSymbol && t.Text == "}" {
			p.advance()
			return e
		}
		if t.Kind == ast.TokenEOF {
			p.errorf(t.Pos, "unexpected end of file inside enum %q", e.Name)
			return e
		}
		if t.Kind == ast.TokenSymbol && t.Text == ";" {
			p.advance()
			continue
		}
		if t.Kind == ast.TokenKeyword && t.Keyword == ast.KeywordOption {
			if opt, ok := p.parseOptionDecl(); ok {
				e.Options = append(e.Options, opt)
			}
			continue
		}
		if v := p.parseEnumValue(); v != nil {
			e.Values = append(e.Values, v)
		}
	}
}

// parseEnumValue parses `VNAME = INT [OPTIONS]? ;`.
func (p *Parser) parseEnumValue() *ast.EnumValueNode {
	nameTok := p.next()
	if nameTok.Kind != ast.TokenIdentifier {
		p.errorf(nameTok.Pos, "expected an enum value name, found %s", describe(nameTok))
		p.synchronizeWithin(enumBodyStarters)
		return nil
	}
	p.advance()

	if _, ok := p.expectSymbol("="); !ok {
		p.synchronizeWithin(enumBodyStarters)
		return nil
	}

	negative := false
	if p.isSymbol("-") {
		p.advance()
		negative = true
	}
	numTok := p.next()
	if numTok.Kind != ast.TokenInt {
		p.errorf(numTok.Pos, "expected an enum value number, found %s", describe(numTok))
		p.synchronizeWithin(enumBodyStarters)
		return nil
	}
	p.advance()
	num := numTok.Int
	if negative {
		num = -num
	}

	opts := p.parseFieldOptions()
	p.expectSymbol(";")

	return &ast.EnumValueNode{Pos: nameTok.Pos, Name: nameTok.Text, Number: int32(num), Options: opts}
}
