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
	"strings"

	"github.com/bufproto/protocompile/ast"
)

var extendBodyStarters = map[ast.Keyword]bool{ast.KeywordOption: true, ast.KeywordOptional: true, ast.KeywordRepeated: true}

// parseExtend parses `extend DOTTED_NAME { (option | optional-field)* }`.
// Proto3 requires the extended type to be a message
// under google.protobuf; a target that is not textually under that
// namespace is reported immediately (invalidExtendTarget) but the body is
// still parsed, for maximal recovery. Each field inside the body must carry
// an explicit `optional` label; one without it reports missingFieldLabel.
func (p *Parser) parseExtend() *ast.ExtendNode {
	pos := p.advance().Pos // consume 'extend'
	target, targetPos, ok := p.parseDottedName()
	if !ok {
		p.synchronize()
		return nil
	}
	if !strings.HasPrefix(target, "google.protobuf.") {
		p.errorf(targetPos, "invalid extend target %q: proto3 only allows extending types under google.protobuf", target)
	}

	e := &ast.ExtendNode{Pos: pos, ExtendedType: target}
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
			p.errorf(t.Pos, "unexpected end of file inside extend %q", e.ExtendedType)
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

		if !(t.Kind == ast.TokenKeyword && t.Keyword == ast.KeywordOptional) {
			p.errorf(t.Pos, "missing required 'optional' label on extend field")
		}
		field := p.parseField(extendBodyStarters)
		if field != nil {
			field.Label = ast.Optional
			e.Fields = append(e.Fields, field)
		}
	}
}
