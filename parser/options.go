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

// parseOptionDecl parses `option NAME = VALUE ;` (a file-, message-, or
// declaration-level option statement). It consumes the leading 'option'
// keyword itself.
func (p *Parser) parseOptionDecl() (*ast.OptionNode, bool) {
	p.advance() // consume 'option'
	opt, ok := p.parseOptionNameAndValue()
	p.expectSymbol(";")
	return opt, ok
}

// parseOptionNameAndValue parses `NAME = VALUE`, shared by both
// `option NAME = VALUE ;` declarations and field-option entries inside
// `[ ... ]`.
func (p *Parser) parseOptionNameAndValue() (*ast.OptionNode, bool) {
	name, pos, isCustom, ok := p.parseOptionName()
	if !ok {
		return nil, false
	}
	if _, ok := p.expectSymbol("="); !ok {
		return nil, false
	}
	val, ok := p.parseOptionValue()
	if !ok {
		return nil, false
	}
	return &ast.OptionNode{Pos: pos, Name: name, Value: val, IsCustom: isCustom}, true
}

// parseOptionName parses either a bare dotted identifier, or a parenthesized
// dotted identifier denoting a custom option, e.g. `(my.custom.option)`.
func (p *Parser) parseOptionName() (name string, pos ast.Position, isCustom bool, ok bool) {
	if p.isSymbol("(") {
		openPos := p.advance().Pos
		inner, _, innerOK := p.parseDottedName()
		if !innerOK {
			return "", openPos, true, false
		}
		if _, ok := p.expectSymbol(")"); !ok {
			return "", openPos, true, false
		}
		return inner, openPos, true, true
	}
	n, namePos, nameOK := p.parseDottedName()
	return n, namePos, false, nameOK
}

// parseOptionValue parses one of: string, integer, float, bool, or
// identifier. A leading '-' is accepted on numeric values (unary minus is
// not part of the lexical literal; the parser applies it).
func (p *Parser) parseOptionValue() (ast.OptionValue, bool) {
	negative := false
	if p.isSymbol("-") {
		p.advance()
		negative = true
	}

	t := p.next()
	switch t.Kind {
	case ast.TokenString:
		if negative {
			p.errorf(t.Pos, "unary minus is not valid on a string option value")
		}
		p.advance()
		return ast.OptionString(t.Str), true
	case ast.TokenInt:
		p.advance()
		v := float64(t.Int)
		if negative {
			v = -v
		}
		return ast.OptionNumber(v), true
	case ast.TokenFloat:
		p.advance()
		v := t.Float
		if negative {
			v = -v
		}
		return ast.OptionNumber(v), true
	case ast.TokenBool:
		if negative {
			p.errorf(t.Pos, "unary minus is not valid on a boolean option value")
		}
		p.advance()
		return ast.OptionBool(t.Bool), true
	case ast.TokenIdentifier:
		p.advance()
		if negative {
			p.errorf(t.Pos, "unary minus is not valid on an identifier option value")
		}
		return ast.OptionIdentifier(t.Text), true
	default:
		p.errorf(t.Pos, "expected an option value, found %s", describe(t))
		return nil, false
	}
}

// parseFieldOptions parses `[ OPT (, OPT)* ]`.
func (p *Parser) parseFieldOptions() []*ast.OptionNode {
	if !p.isSymbol("[") {
		return nil
	}
	p.advance()
	var opts []*ast.OptionNode
	for {
		if opt, ok := p.parseOptionNameAndValue(); ok {
			opts = append(opts, opt)
		} else {
			break
		}
		if p.isSymbol(",") {
			p.advance()
			continue
		}
		break
	}
	p.expectSymbol("]")
	return opts
}
