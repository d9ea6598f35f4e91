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

package reporter

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/bufproto/protocompile/ast"
)

// RenderSnippet renders the source line containing pos, with a caret
// pointing at the offending column, in the classic two-line diagnostic
// format:
//
//	  | message Foo { string x = 1 }
//	  |                      ^
//
// Column placement accounts for multi-byte/wide runes by measuring the
// prefix up to pos.Column in grapheme clusters rather than bytes, so
// combining marks and other non-single-width runes don't throw off the
// caret.
func RenderSnippet(source string, pos ast.Position) string {
	lines := strings.Split(source, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return ""
	}
	line := lines[pos.Line-1]

	clusters := graphemes(line)
	col := pos.Column - 1
	if col < 0 {
		col = 0
	}
	if col > len(clusters) {
		col = len(clusters)
	}

	var prefix strings.Builder
	for i := 0; i < col; i++ {
		prefix.WriteString(clusters[i])
	}
	width := uniseg.StringWidth(prefix.String())

	var b strings.Builder
	b.WriteString("  | ")
	b.WriteString(line)
	b.WriteByte('\n')
	b.WriteString("  | ")
	b.WriteString(strings.Repeat(" ", width))
	b.WriteByte('^')
	return b.String()
}

func graphemes(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}
