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

import (
	"github.com/bufproto/protocompile/ast"
)

var messageBodyStarters = map[ast.Keyword]bool{
	ast.KeywordMessage:  true,
	ast.KeywordEnum:     true,
	ast.KeywordOneof:    true,
	ast.KeywordOption:   true,
	ast.KeywordReserved: true,
	ast.KeywordRepeated: true,
	ast.KeywordOptional: true,
}

// parseMessage parses `message NAME { body }`.
func (p *Parser) parseMessage() *ast.MessageNode {
	pos := p.advance().Pos // consume 'message'
	name, ok := p.parseTypeName("message")
	if !ok {
		p.synchronize()
		return nil
	}
	m := &ast.MessageNode{Pos: pos, Name: name}
	if _, ok := p.expectSymbol("{"); !ok {
		p.synchronize()
		return m
	}

	for {
		t := p.next()
		if t.Kind == ast.TokenSymbol && t.Text == "}" {
			p.advance()
			return m
		}
		if t.Kind == ast.TokenEOF {
			p.errorf(t.Pos, "unexpected end of file inside message %q", m.Name)
			return m
		}
		if t.Kind == ast.TokenSymbol && t.Text == ";" {
			// stray semicolon: harmless, proto allows empty statements
			p.advance()
			continue
		}

		switch {
		case t.Kind == ast.TokenKeyword && t.Keyword == ast.KeywordMessage:
			if nested := p.parseMessage(); nested != nil {
				m.Messages = append(m.Messages, nested)
			}
		case t.Kind == ast.TokenKeyword && t.Keyword == ast.KeywordEnum:
			if nested := p.parseEnum(); nested != nil {
				m.Enums = append(m.Enums, nested)
			}
		case t.Kind == ast.TokenKeyword && t.Keyword == ast.KeywordOneof:
			if nested := p.parseOneof(); nested != nil {
				m.Oneofs = append(m.Oneofs, nested)
			}
		case t.Kind == ast.TokenKeyword && t.Keyword == ast.KeywordOption:
			if opt, ok := p.parseOptionDecl(); ok {
				m.Options = append(m.Options, opt)
			}
		case t.Kind == ast.TokenKeyword && t.Keyword == ast.KeywordReserved:
			p.parseReserved(m)
		default:
			field := p.parseField(messageBodyStarters)
			if field != nil {
				m.Fields = append(m.Fields, field)
			}
		}
	}
}

// parseTypeName parses a single identifier name for a message/enum/
// service/oneof declaration.
func (p *Parser) parseTypeName(what string) (string, bool) {
	t := p.next()
	if t.Kind != ast.TokenIdentifier {
		p.errorf(t.Pos, "expected a %s name, found %s", what, describe(t))
		return "", false
	}
	p.advance()
	return t.Text, true
}

// parseFieldName allows an identifier or any keyword other than syntax,
// package, import. Permitting other keywords as field names is intentional.
func (p *Parser) parseFieldName() (string, ast.Position, bool) {
	t := p.next()
	switch t.Kind {
	case ast.TokenIdentifier:
		p.advance()
		return t.Text, t.Pos, true
	case ast.TokenKeyword:
		if t.Keyword == ast.KeywordSyntax || t.Keyword == ast.KeywordPackage || t.Keyword == ast.KeywordImport {
			p.errorf(t.Pos, "%q may not be used as a field name", t.Text)
			return "", t.Pos, false
		}
		p.advance()
		return string(t.Keyword), t.Pos, true
	default:
		p.errorf(t.Pos, "expected a field name, found %s", describe(t))
		return "", t.Pos, false
	}
}

// parseField parses `[repeated | optional]? TYPE NAME = INT [OPTIONS]? ;`.
// recoverPoints is used to synchronize on failure without leaving the
// enclosing body.
func (p *Parser) parseField(recoverPoints map[ast.Keyword]bool) *ast.FieldNode {
	start := p.next().Pos
	label := ast.Singular
	if p.isKeyword(ast.KeywordRepeated) {
		p.advance()
		label = ast.Repeated
	} else if p.isKeyword(ast.KeywordOptional) {
		p.advance()
		label = ast.Optional
	}

	typ, ok := p.parseFieldType()
	if !ok {
		p.synchronizeWithin(recoverPoints)
		return nil
	}
	name, namePos, ok := p.parseFieldName()
	if !ok {
		p.synchronizeWithin(recoverPoints)
		return nil
	}
	if _, ok := p.expectSymbol("="); !ok {
		p.synchronizeWithin(recoverPoints)
		return nil
	}
	numTok := p.next()
	if numTok.Kind != ast.TokenInt {
		p.errorf(numTok.Pos, "expected a field number, found %s", describe(numTok))
		p.synchronizeWithin(recoverPoints)
		return nil
	}
	p.advance()
	if numTok.Int < 1 || numTok.Int > 536870911 {
		p.errorf(numTok.Pos, "field number %d is out of range (must be between 1 and 536870911)", numTok.Int)
	} else if numTok.Int >= 19000 && numTok.Int <= 19999 {
		p.errorf(numTok.Pos, "field number %d falls in the reserved implementation range 19000-19999", numTok.Int)
	}

	opts := p.parseFieldOptions()
	p.expectSymbol(";")

	_ = namePos
	return &ast.FieldNode{
		Pos:     start,
		Name:    name,
		Type:    typ,
		Number:  int32(numTok.Int),
		Label:   label,
		Options: opts,
	}
}

// parseOneof parses `oneof NAME { (option | field)* }`.
// Fields are implicitly Singular; an explicit repeated/optional prefix on a
// oneof member is an error.
func (p *Parser) parseOneof() *ast.OneofNode {
	pos := p.advance().Pos // consume 'oneof'
	name, ok := p.parseTypeName("oneof")
	if !ok {
		p.synchronize()
		return nil
	}
	o := &ast.OneofNode{Pos: pos, Name: name}
	if _, ok := p.expectSymbol("{"); !ok {
		p.synchronize()
		return o
	}

	oneofStarters := map[ast.Keyword]bool{ast.KeywordOption: true}
	for {
		t := p.next()
		if t.Kind == ast.TokenSymbol && t.Text == "}" {
			p.advance()
			return o
		}
		if t.Kind == ast.TokenEOF {
			p.errorf(t.Pos, "unexpected end of file inside oneof %q", o.Name)
			return o
		}
		if t.Kind == ast.TokenSymbol && t.Text == ";" {
			p.advance()
			continue
		}
		if t.Kind == ast.TokenKeyword && t.Keyword == ast.KeywordOption {
			if opt, ok := p.parseOptionDecl(); ok {
				o.Options = append(o.Options, opt)
			}
			continue
		}
		if t.Kind == ast.TokenKeyword && (t.Keyword == ast.KeywordRepeated || t.Keyword == ast.KeywordOptional) {
			p.errorf(t.Pos, "unexpected %q: oneof members may not have an explicit label", t.Text)
		}
		field := p.parseField(oneofStarters)
		if field != nil {
			field.Label = ast.Singular
			o.Fields = append(o.Fields, field)
		}
	}
}

// parseReserved parses `reserved (INT | INT to INT | STRING) (, ...)* ;`.
// Numeric ranges are expanded eagerly.
func (p *Parser) parseReserved(m *ast.MessageNode) {
	pos := p.advance().Pos // consume 'reserved'
	first := p.next()

	if first.Kind == ast.TokenString {
		for {
			t := p.next()
			if t.Kind != ast.TokenString {
				p.errorf(t.Pos, "expected a reserved name string, found %s", describe(t))
				break
			}
			p.advance()
			m.ReservedNames = append(m.ReservedNames, t.Str)
			if p.isSymbol(",") {
				p.advance()
				continue
			}
			break
		}
		p.expectSymbol(";")
		return
	}

	for {
		t := p.next()
		if t.Kind != ast.TokenInt {
			p.errorf(t.Pos, "expected a reserved field number, found %s", describe(t))
			break
		}
		p.advance()
		start := int32(t.Int)
		end := start
		if p.isKeyword(ast.KeywordTo) {
			p.advance()
			endTok := p.next()
			if endTok.Kind != ast.TokenInt {
				p.errorf(endTok.Pos, "expected an end field number after 'to', found %s", describe(endTok))
				break
			}
			p.advance()
			end = int32(endTok.Int)
		}
		m.ReservedRanges = append(m.ReservedRanges, ast.ReservedRange{Pos: pos, Start: start, End: end})
		if p.isSymbol(",") {
			p.advance()
			continue
		}
		break
	}
	p.expectSymbol(";")
}
