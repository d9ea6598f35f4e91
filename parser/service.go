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

var serviceBodyStarters = map[ast.Keyword]bool{ast.KeywordOption: true, ast.KeywordRPC: true}

// parseService parses `service NAME { (option | rpc)* }`.
func (p *Parser) parseService() *ast.ServiceNode {
	pos := p.advance().Pos // consume 'service'
	name, ok := p.parseTypeName("service")
	if !ok {
		p.synchronize()
		return nil
	}
	s := &ast.ServiceNode{Pos: pos, Name: name}
	if _, ok := p.expectSymbol("{"); !ok {
		p.synchronize()
		return s
	}

	for {
		t := p.next()
		if t.Kind == ast.TokenSymbol && t.Text == "}" {
			p.advance()
			return s
		}
		if t.Kind == ast.TokenEOF {
			p.errorf(t.Pos, "unexpected end of file inside service %q", s.Name)
			return s
		}
		if t.Kind == ast.TokenSymbol && t.Text == ";" {
			p.advance()
			continue
		}
		switch {
		case t.Kind == ast.TokenKeyword && t.Keyword == ast.KeywordOption:
			if opt, ok := p.parseOptionDecl(); ok {
				s.Options = append(s.Options, opt)
			}
		case t.Kind == ast.TokenKeyword && t.Keyword == ast.KeywordRPC:
			if m := p.parseRPCMethod(); m != nil {
				s.Methods = append(s.Methods, m)
			}
		default:
			p.errorf(t.Pos, "expected 'option' or 'rpc', found %s", describe(t))
			p.synchronizeWithin(serviceBodyStarters)
		}
	}
}

// parseRPCMethod parses:
//
//	rpc NAME ( [stream]? TYPE ) returns ( [stream]? TYPE ) ( ; | { option* } )
func (p *Parser) parseRPCMethod() *ast.RpcMethodNode {
	pos := p.advance().Pos // consume 'rpc'
	name, ok := p.parseTypeName("rpc method")
	if !ok {
		p.synchronizeWithin(serviceBodyStarters)
		return nil
	}
	m := &ast.RpcMethodNode{Pos: pos, Name: name}

	if _, ok := p.expectSymbol("("); !ok {
		p.synchronizeWithin(serviceBodyStarters)
		return m
	}
	if p.isKeyword(ast.KeywordStream) {
		p.advance()
		m.ClientStreaming = true
	}
	in, _, ok := p.parseTypeRef()
	if !ok {
		p.synchronizeWithin(serviceBodyStarters)
		return m
	}
	m.InputType = in
	if _, ok := p.expectSymbol(")"); !ok {
		p.synchronizeWithin(serviceBodyStarters)
		return m
	}

	if _, ok := p.expectKeyword(ast.KeywordReturns); !ok {
		p.synchronizeWithin(serviceBodyStarters)
		return m
	}
	if _, ok := p.expectSymbol("("); !ok {
		p.synchronizeWithin(serviceBodyStarters)
		return m
	}
	if p.isKeyword(ast.KeywordStream) {
		p.advance()
		m.ServerStreaming = true
	}
	out, _, ok := p.parseTypeRef()
	if !ok {
		p.synchronizeWithin(serviceBodyStarters)
		return m
	}
	m.OutputType = out
	if _, ok := p.expectSymbol(")"); !ok {
		p.synchronizeWithin(serviceBodyStarters)
		return m
	}

	if p.isSymbol(";") {
		p.advance()
		return m
	}
	if _, ok := p.expectSymbol("{"); !ok {
		p.synchronizeWithin(serviceBodyStarters)
		return m
	}
	for {
		t := p.next()
		if t.Kind == ast.TokenSymbol && t.Text == "}" {
			p.advance()
			return m
		}
		if t.Kind == ast.TokenEOF {
			p.errorf(t.Pos, "unexpected end of file inside rpc %q", m.Name)
			return m
		}
		if t.Kind == ast.TokenSymbol && t.Text == ";" {
			p.advance()
			continue
		}
		if t.Kind == ast.TokenKeyword && t.Keyword == ast.KeywordOption {
			if opt, ok := p.parseOptionDecl(); ok {
				m.Options = append(m.Options, opt)
			}
			continue
		}
		p.errorf(t.Pos, "expected 'option', found %s", describe(t))
		p.synchronizeWithin(map[ast.Keyword]bool{ast.KeywordOption: true})
	}
}
