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

package lexer_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufproto/protocompile/ast"
	"github.com/bufproto/protocompile/lexer"
)

func TestLexIdentifiersAndKeywords(t *testing.T) {
	t.Parallel()

	toks, err := lexer.Lex(`message Foo bar_Baz2`)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(toks), 4)
	assert.Equal(t, ast.TokenKeyword, toks[0].Kind)
	assert.Equal(t, ast.KeywordMessage, toks[0].Keyword)
	assert.Equal(t, 1, toks[0].Pos.Line)
	assert.Equal(t, 1, toks[0].Pos.Column)
	assert.Equal(t, ast.TokenIdentifier, toks[2].Kind)
	assert.Equal(t, "Foo", toks[2].Text)
}

func TestLexBoolLiteralsAreNotKeywords(t *testing.T) {
	t.Parallel()

	toks, err := lexer.Lex(`true false`)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(toks), 2)
	assert.Equal(t, ast.TokenBool, toks[0].Kind)
	assert.True(t, toks[0].Bool)
}

func TestLexIntegerRoundTrip(t *testing.T) {
	t.Parallel()

	for _, n := range []int64{0, 1, 7, 42, 19000, 536870911, 2147483647} {
		for _, form := range []string{
			fmt.Sprintf("%d", n),
			fmt.Sprintf("0x%x", n),
		} {
			toks, err := lexer.Lex(form)
			require.NoError(t, err, form)
			require.Len(t, toks, 2, form)
			assert.Equal(t, ast.TokenInt, toks[0].Kind, form)
			assert.Equal(t, n, toks[0].Int, form)
			assert.Equal(t, ast.TokenEOF, toks[1].Kind)
		}
	}
}

func TestLexOctalInteger(t *testing.T) {
	t.Parallel()

	toks, err := lexer.Lex("017")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, int64(15), toks[0].Int)
}

func TestLexFloatLiterals(t *testing.T) {
	t.Parallel()

	cases := map[string]float64{
		"1.5":   1.5,
		"0.5":   0.5,
		"1e10":  1e10,
		"1E-10": 1e-10,
		"2.5e3": 2.5e3,
	}
	for text, want := range cases {
		toks, err := lexer.Lex(text)
		require.NoError(t, err, text)
		require.Len(t, toks, 2, text)
		assert.Equal(t, ast.TokenFloat, toks[0].Kind, text)
		assert.InDelta(t, want, toks[0].Float, 1e-9, text)
	}
}

func TestLexStringEscapeRoundTrip(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		`"\n"`:   "\n",
		`"\t"`:   "\t",
		`"\r"`:   "\r",
		`"\\"`:   "\\",
		`"\""`:   "\"",
		`'\''`:   "'",
		`"\x41"`: "A",
		`"\0"`:   "\x00",
	}
	for text, want := range cases {
		toks, err := lexer.Lex(text)
		require.NoError(t, err, text)
		require.Len(t, toks, 2, text)
		assert.Equal(t, ast.TokenString, toks[0].Kind, text)
		assert.Equal(t, want, toks[0].Str, text)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	t.Parallel()

	_, err := lexer.Lex(`"abc`)
	require.Error(t, err)
	var lexErr *lexer.Error
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, lexer.UnterminatedString, lexErr.Kind)
}

func TestLexUnterminatedBlockComment(t *testing.T) {
	t.Parallel()

	_, err := lexer.Lex(`/* abc`)
	require.Error(t, err)
	var lexErr *lexer.Error
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, lexer.UnterminatedComment, lexErr.Kind)
}

func TestLexInvalidEscape(t *testing.T) {
	t.Parallel()

	_, err := lexer.Lex(`"\q"`)
	require.Error(t, err)
	var lexErr *lexer.Error
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, lexer.InvalidEscape, lexErr.Kind)
}

func TestLexUnexpectedCharacter(t *testing.T) {
	t.Parallel()

	_, err := lexer.Lex("message Foo { string x = 1; } #")
	require.Error(t, err)
	var lexErr *lexer.Error
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, lexer.UnexpectedCharacter, lexErr.Kind)
}

func TestLexPositionMonotonicity(t *testing.T) {
	t.Parallel()

	src := "syntax = \"proto3\";\npackage a.b.c;\n\nmessage M {\n  string name = 1; // comment\n}\n"
	toks, err := lexer.Lex(src)
	require.NoError(t, err)

	for i := 1; i < len(toks); i++ {
		prev, cur := toks[i-1].Pos, toks[i].Pos
		assert.False(t, cur.Less(prev), "token %d position %v is before %v", i, cur, prev)
	}
}

func TestLexCommentsAreRetainedAsTokens(t *testing.T) {
	t.Parallel()

	toks, err := lexer.Lex("// hello\n/* world */x")
	require.NoError(t, err)

	var kinds []ast.TokenKind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Contains(t, kinds, ast.TokenComment)
	assert.Contains(t, kinds, ast.TokenIdentifier)
}

func TestLexCRLFIsOneNewline(t *testing.T) {
	t.Parallel()

	toks, err := lexer.Lex("a\r\nb")
	require.NoError(t, err)
	require.Len(t, toks, 4) // a, newline, b, eof
	assert.Equal(t, 2, toks[2].Pos.Line)
	assert.Equal(t, 1, toks[2].Pos.Column)
}
