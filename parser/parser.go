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

// Package parser implements a recursive-descent proto3 parser: one-token
// lookahead, a mutable cursor, an error-recovery "synchronize" phase, and
// an error accumulator threaded through every parse_* routine instead of
// exceptions.
package parser

import (
	"fmt"

	"github.com/bufproto/protocompile/ast"
	"github.com/bufproto/protocompile/lexer"
	"github.com/bufproto/protocompile/reporter"
)

// Parse tokenizes and parses a single proto3 source file. Once tokenization
// succeeds it always produces an *ast.File (with placeholder/partial content
// where recovery skipped material). Lexical errors are fatal and returned
// immediately with a nil AST; syntactic errors are reported to h and parsing
// continues.
func Parse(filename, src string, h *reporter.Handler) (*ast.File, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		var lexErr *lexer.Error
		pos := ast.Position{Line: 1, Column: 1}
		if e, ok := err.(*lexer.Error); ok {
			lexErr = e
			pos = e.Pos
		}
		_ = lexErr
		return nil, reporter.Error(filename, pos, err)
	}

	p := &Parser{toks: toks, file: filename, h: h}
	f := p.parseFile()
	ResolveEnumFieldTypes(f)
	return f, nil
}

// Parser holds the mutable cursor and error accumulator for one file.
type Parser struct {
	toks []ast.Token
	idx  int
	file string
	h    *reporter.Handler
}

// cur returns the token at the cursor. The token list always ends in Eof, so
// this is always in bounds.
func (p *Parser) cur() ast.Token {
	if p.idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.idx]
}

// advance consumes and returns the current token.
func (p *Parser) advance() ast.Token {
	t := p.cur()
	if t.Kind != ast.TokenEOF {
		p.idx++
	}
	return t
}

// skipIgnorable advances the cursor past any run of whitespace, newline, or
// comment tokens. Every grammar point that allows interleaved
// whitespace/comments calls this first.
func (p *Parser) skipIgnorable() {
	for p.cur().Ignorable() {
		p.idx++
	}
}

// next is skipIgnorable followed by cur: the next significant token.
func (p *Parser) next() ast.Token {
	p.skipIgnorable()
	return p.cur()
}

func (p *Parser) atEOF() bool {
	return p.next().Kind == ast.TokenEOF
}

func describe(t ast.Token) string {
	switch t.Kind {
	case ast.TokenEOF:
		return "end of file"
	case ast.TokenIdentifier:
		return fmt.Sprintf("identifier %q", t.Text)
	case ast.TokenKeyword:
		return fmt.Sprintf("keyword %q", t.Text)
	case ast.TokenSymbol:
		return fmt.Sprintf("%q", t.Text)
	case ast.TokenString:
		return "string literal"
	case ast.TokenInt:
		return "integer literal"
	case ast.TokenFloat:
		return "float literal"
	case ast.TokenBool:
		return "boolean literal"
	default:
		return "token"
	}
}

func (p *Parser) errorf(pos ast.Position, format string, args ...any) {
	_ = p.h.HandleErrorf(p.file, pos, format, args...)
}

// expectSymbol consumes the next significant token if it is the symbol sym,
// reporting an error and leaving the cursor in place otherwise.
func (p *Parser) expectSymbol(sym string) (ast.Token, bool) {
	t := p.next()
	if t.Kind == ast.TokenSymbol && t.Text == sym {
		p.advance()
		return t, true
	}
	p.errorf(t.Pos, "%s", errUnexpectedToken(fmt.Sprintf("%q", sym), describe(t)))
	return t, false
}

func (p *Parser) expectKeyword(kw ast.Keyword) (ast.Token, bool) {
	t := p.next()
	if t.Kind == ast.TokenKeyword && t.Keyword == kw {
		p.advance()
		return t, true
	}
	p.errorf(t.Pos, "%s", errUnexpectedToken(fmt.Sprintf("keyword %q", kw), describe(t)))
	return t, false
}

func (p *Parser) isSymbol(sym string) bool {
	t := p.next()
	return t.Kind == ast.TokenSymbol && t.Text == sym
}

func (p *Parser) isKeyword(kw ast.Keyword) bool {
	t := p.next()
	return t.Kind == ast.TokenKeyword && t.Keyword == kw
}

// topLevelStarters are the keywords that legitimately begin a new top-level
// declaration; synchronize() stops as soon as it sees one of these (or a
// depth-zero '}'/';' or Eof).
var topLevelStarters = map[ast.Keyword]bool{
	ast.KeywordPackage: true,
	ast.KeywordImport:  true,
	ast.KeywordOption:  true,
	ast.KeywordMessage: true,
	ast.KeywordEnum:    true,
	ast.KeywordService: true,
	ast.KeywordExtend:  true,
	ast.KeywordSyntax:  true,
}

// synchronize implements error recovery: advance until a top-level
// recovery point (a token starting a new top-level declaration, or a '}' or
// ';', which is consumed) or Eof. Brace nesting is not tracked: the first
// '}' or ';' reached ends the skip, whatever its depth. When the cursor
// already sits on a top-level starter or Eof, nothing is consumed.
func (p *Parser) synchronize() {
	advanced := false
	for {
		t := p.next()
		if t.Kind == ast.TokenEOF {
			return
		}
		if t.Kind == ast.TokenKeyword && topLevelStarters[t.Keyword] {
			return
		}
		if t.Kind == ast.TokenSymbol && (t.Text == "}" || t.Text == ";") {
			p.advance()
			return
		}
		p.advance()
		advanced = true
	}
	// safety guard: the loop above always either returns or sets advanced,
	// and always consumes at least one token before doing so unless it hit
	// Eof or a starter on the very first iteration (in which case no
	// advance was needed: the caller is already at a synchronization point).
	_ = advanced
}

// synchronizeWithin is used for recovery inside a nested body (message,
// enum, oneof, service): it additionally treats the starter keywords valid
// inside that body as recovery points, alongside '}'/';'/Eof.
func (p *Parser) synchronizeWithin(starters map[ast.Keyword]bool) {
	for {
		t := p.next()
		if t.Kind == ast.TokenEOF {
			return
		}
		if t.Kind == ast.TokenKeyword && starters[t.Keyword] {
			return
		}
		if t.Kind == ast.TokenSymbol && t.Text == "}" {
			return
		}
		if t.Kind == ast.TokenSymbol && t.Text == ";" {
			p.advance()
			return
		}
		p.advance()
	}
}

// parseFile parses the top-level File production: an optional syntax
// declaration followed by any number of package/import/option/message/
// enum/service/extend declarations.
func (p *Parser) parseFile() *ast.File {
	f := &ast.File{Syntax: ast.Proto3}
	f.Pos = p.next().Pos

	// still attempt to parse the rest of the file for maximum recovery even
	// if the syntax declaration itself was malformed or missing.
	p.parseSyntax(f)

	for !p.atEOF() {
		t := p.next()
		if t.Kind != ast.TokenKeyword {
			p.errorf(t.Pos, "expected a top-level declaration, found %s", describe(t))
			p.synchronize()
			continue
		}
		switch t.Keyword {
		case ast.KeywordPackage:
			p.parsePackage(f)
		case ast.KeywordImport:
			p.parseImport(f)
		case ast.KeywordOption:
			if opt, ok := p.parseOptionDecl(); ok {
				f.Options = append(f.Options, opt)
			}
		case ast.KeywordMessage:
			if m := p.parseMessage(); m != nil {
				f.Messages = append(f.Messages, m)
			}
		case ast.KeywordEnum:
			if e := p.parseEnum(); e != nil {
				f.Enums = append(f.Enums, e)
			}
		case ast.KeywordService:
			if s := p.parseService(); s != nil {
				f.Services = append(f.Services, s)
			}
		case ast.KeywordExtend:
			if e := p.parseExtend(); e != nil {
				f.Extends = append(f.Extends, e)
			}
		case ast.KeywordSyntax:
			p.errorf(t.Pos, "syntax declaration must be the first element in the file")
			// 'syntax' is itself a top-level starter, so consume it first or
			// synchronize would stop on it and this loop would never advance.
			p.advance()
			p.synchronize()
		default:
			p.errorf(t.Pos, "unexpected top-level declaration %s", describe(t))
			p.synchronize()
		}
	}

	return f
}

// parseSyntax parses `syntax = STRING ;`, the required first declaration.
// "proto2" is silently normalized to Proto3; any other value reports
// invalidSyntax and proceeds as proto3.
func (p *Parser) parseSyntax(f *ast.File) bool {
	t := p.next()
	if t.Kind != ast.TokenKeyword || t.Keyword != ast.KeywordSyntax {
		p.errorf(t.Pos, "%s", errMissing("required syntax declaration"))
		return false
	}
	p.advance()
	if _, ok := p.expectSymbol("="); !ok {
		p.synchronize()
		return false
	}
	strTok := p.next()
	if strTok.Kind != ast.TokenString {
		p.errorf(strTok.Pos, `expected "proto3", found %s`, describe(strTok))
		p.synchronize()
		return false
	}
	p.advance()
	switch strTok.Str {
	case "proto3", "proto2":
		// both map to proto3 processing; proto2 is accepted with no
		// group/required support.
	default:
		p.errorf(strTok.Pos, "invalid syntax value %q: must be \"proto3\" or \"proto2\"", strTok.Str)
	}
	f.Syntax = ast.Proto3
	p.expectSymbol(";")
	return true
}

// parseDottedName parses a sequence of identifiers joined by '.'. Keywords
// are permitted as components.
func (p *Parser) parseDottedName() (string, ast.Position, bool) {
	t := p.next()
	if !isNameComponent(t) {
		p.errorf(t.Pos, "expected a name, found %s", describe(t))
		return "", t.Pos, false
	}
	start := t.Pos
	name := componentText(t)
	p.advance()
	for p.isSymbol(".") {
		p.advance()
		t := p.next()
		if !isNameComponent(t) {
			p.errorf(t.Pos, "expected an identifier after '.', found %s", describe(t))
			return name, start, false
		}
		name += "." + componentText(t)
		p.advance()
	}
	return name, start, true
}

func isNameComponent(t ast.Token) bool {
	return t.Kind == ast.TokenIdentifier || t.Kind == ast.TokenKeyword
}

func componentText(t ast.Token) string {
	if t.Kind == ast.TokenKeyword {
		return string(t.Keyword)
	}
	return t.Text
}

// parsePackage parses `package a.b.c;`. At most one package declaration is
// permitted per file; subsequent ones are reported but do not overwrite the
// first.
func (p *Parser) parsePackage(f *ast.File) {
	pos := p.advance().Pos // consume 'package'
	name, namePos, ok := p.parseDottedName()
	if !ok {
		p.synchronize()
		return
	}
	p.expectSymbol(";")
	if f.Package != nil {
		p.errorf(pos, "duplicate package declaration")
		return
	}
	f.Package = &ast.PackageNode{Pos: namePos, Name: name}
}

// parseImport parses `import [public|weak]? STRING ;`.
func (p *Parser) parseImport(f *ast.File) {
	pos := p.advance().Pos // consume 'import'
	modifier := ast.ImportPlain
	if p.isKeyword(ast.KeywordPublic) {
		p.advance()
		modifier = ast.ImportPublic
	} else if p.isKeyword(ast.KeywordWeak) {
		p.advance()
		modifier = ast.ImportWeak
	}
	strTok := p.next()
	if strTok.Kind != ast.TokenString {
		p.errorf(strTok.Pos, "expected an import path string, found %s", describe(strTok))
		p.synchronize()
		return
	}
	p.advance()
	p.expectSymbol(";")
	f.Imports = append(f.Imports, &ast.ImportNode{Pos: pos, Path: strTok.Str, Modifier: modifier})
}
