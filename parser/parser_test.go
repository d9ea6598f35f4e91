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

package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufproto/protocompile/ast"
	"github.com/bufproto/protocompile/parser"
	"github.com/bufproto/protocompile/reporter"
)

func mustParse(t *testing.T, src string) (*ast.File, *reporter.Handler) {
	t.Helper()
	h := reporter.NewHandler(nil)
	f, err := parser.Parse("test.proto", src, h)
	require.NoError(t, err)
	require.NotNil(t, f)
	return f, h
}

func TestParseBasicMessage(t *testing.T) {
	t.Parallel()

	f, h := mustParse(t, `syntax = "proto3"; package a.b; message M { string name = 1; int32 age = 2; }`)

	assert.Empty(t, h.Errors())
	assert.Equal(t, ast.Proto3, f.Syntax)
	require.NotNil(t, f.Package)
	assert.Equal(t, "a.b", f.Package.Name)
	require.Len(t, f.Messages, 1)

	m := f.Messages[0]
	assert.Equal(t, "M", m.Name)
	require.Len(t, m.Fields, 2)
	assert.Equal(t, "name", m.Fields[0].Name)
	assert.Equal(t, ast.ScalarType{Kind: ast.String}, m.Fields[0].Type)
	assert.Equal(t, int32(1), m.Fields[0].Number)
	assert.Equal(t, ast.Singular, m.Fields[0].Label)
	assert.Equal(t, "age", m.Fields[1].Name)
	assert.Equal(t, ast.ScalarType{Kind: ast.Int32}, m.Fields[1].Type)
	assert.Equal(t, int32(2), m.Fields[1].Number)
}

func TestParseReservedRangeAndNames(t *testing.T) {
	t.Parallel()

	f, h := mustParse(t, `syntax = "proto3"; message M { reserved 1 to 3, 5; reserved "old"; string x = 4; }`)
	assert.Empty(t, h.Errors())

	m := f.Messages[0]
	nums := m.ReservedNumbers()
	for _, n := range []int32{1, 2, 3, 5} {
		assert.True(t, nums[n], "expected %d reserved", n)
	}
	assert.False(t, nums[4])
	assert.Equal(t, []string{"old"}, m.ReservedNames)
	require.Len(t, m.Fields, 1)
	assert.Equal(t, int32(4), m.Fields[0].Number)
}

func TestParseQualifiedRPCTypes(t *testing.T) {
	t.Parallel()

	f, h := mustParse(t, `syntax = "proto3";
service Pinger {
  rpc Ping(google.protobuf.Empty) returns (google.protobuf.Empty);
}`)
	assert.Empty(t, h.Errors())

	require.Len(t, f.Services, 1)
	require.Len(t, f.Services[0].Methods, 1)
	method := f.Services[0].Methods[0]
	assert.Equal(t, "google.protobuf.Empty", method.InputType)
	assert.Equal(t, "google.protobuf.Empty", method.OutputType)
}

func TestParseMapField(t *testing.T) {
	t.Parallel()

	f, h := mustParse(t, `syntax = "proto3"; message M { map<string, int32> m = 1; }`)
	assert.Empty(t, h.Errors())

	field := f.Messages[0].Fields[0]
	assert.Equal(t, "m", field.Name)
	assert.Equal(t, int32(1), field.Number)
	want := ast.MapType{Key: ast.ScalarType{Kind: ast.String}, Value: ast.ScalarType{Kind: ast.Int32}}
	assert.Equal(t, want, field.Type)
}

func TestParseProto2SyntaxIsNormalized(t *testing.T) {
	t.Parallel()

	f, h := mustParse(t, `syntax = "proto2"; message M {}`)
	assert.Empty(t, h.Errors())
	assert.Equal(t, ast.Proto3, f.Syntax)
}

func TestParseInvalidSyntaxValueStillProceeds(t *testing.T) {
	t.Parallel()

	f, h := mustParse(t, `syntax = "proto4"; message M {}`)
	require.Len(t, h.Errors(), 1)
	assert.Equal(t, ast.Proto3, f.Syntax)
	require.Len(t, f.Messages, 1)
}

func TestParseRecoversFromUnexpectedTokenAtTopLevel(t *testing.T) {
	t.Parallel()

	f, h := mustParse(t, `syntax = "proto3";
42;
message M { string x = 1; }`)
	require.NotEmpty(t, h.Errors())
	require.Len(t, f.Messages, 1)
	assert.Equal(t, "M", f.Messages[0].Name)
}

func TestParseFieldKeywordAsName(t *testing.T) {
	t.Parallel()

	// "stream" is a keyword but not syntax/package/import, so it is legal
	// as a field name.
	f, h := mustParse(t, `syntax = "proto3"; message M { string stream = 1; }`)
	assert.Empty(t, h.Errors())
	assert.Equal(t, "stream", f.Messages[0].Fields[0].Name)
}

func TestParseExtendRequiresWellKnownTarget(t *testing.T) {
	t.Parallel()

	f, h := mustParse(t, `syntax = "proto3"; extend my.pkg.Foo { optional string x = 1; }`)
	require.Len(t, h.Errors(), 1)
	require.Len(t, f.Extends, 1)
	assert.Equal(t, "my.pkg.Foo", f.Extends[0].ExtendedType)
}

func TestParseExtendFieldMissingOptionalLabel(t *testing.T) {
	t.Parallel()

	_, h := mustParse(t, `syntax = "proto3"; extend google.protobuf.FileOptions { string x = 50000; }`)
	require.NotEmpty(t, h.Errors())
}

func TestParseOneofDisallowsLabels(t *testing.T) {
	t.Parallel()

	_, h := mustParse(t, `syntax = "proto3"; message M { oneof o { repeated string x = 1; } }`)
	require.NotEmpty(t, h.Errors())
}

func TestParseCustomOption(t *testing.T) {
	t.Parallel()

	f, h := mustParse(t, `syntax = "proto3"; option (my.custom.option) = "hi";`)
	assert.Empty(t, h.Errors())
	require.Len(t, f.Options, 1)
	assert.True(t, f.Options[0].IsCustom)
	assert.Equal(t, "my.custom.option", f.Options[0].Name)
	assert.Equal(t, ast.OptionString("hi"), f.Options[0].Value)
}

func TestParseMissingSyntaxStillParsesBody(t *testing.T) {
	t.Parallel()

	f, h := mustParse(t, `message M { string x = 1; }`)
	require.NotEmpty(t, h.Errors())
	require.Len(t, f.Messages, 1)
}

// TestParseIsWhitespaceInsensitive structurally diffs the AST produced from
// two differently-formatted sources that should parse to the same tree
// modulo position, which a field-by-field assert.Equal would need to
// special-case by hand for every node kind.
func TestParseIsWhitespaceInsensitive(t *testing.T) {
	t.Parallel()

	compact := `syntax="proto3";package a;message M{string name=1;int32 age=2;}`
	spaced := `
		syntax = "proto3";

		package a;

		message M {
		  string name = 1;
		  int32  age  = 2;
		}
	`

	f1, h1 := mustParse(t, compact)
	f2, h2 := mustParse(t, spaced)
	assert.Empty(t, h1.Errors())
	assert.Empty(t, h2.Errors())

	ignorePos := cmp.FilterPath(func(p cmp.Path) bool {
		return p.Last().String() == ".Pos"
	}, cmp.Ignore())

	if diff := cmp.Diff(f1, f2, ignorePos); diff != "" {
		t.Errorf("ASTs differ beyond position (-compact +spaced):\n%s", diff)
	}
}
