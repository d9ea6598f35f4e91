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

package protocompile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufproto/protocompile"
	"github.com/bufproto/protocompile/resolver"
)

type memSource map[string]string

func (m memSource) ReadFile(path string) (string, bool, error) {
	c, ok := m[path]
	return c, ok, nil
}

func (m memSource) Suggest(string) []string { return nil }

func TestCompileEndToEndSuccess(t *testing.T) {
	t.Parallel()

	src := memSource{
		"a.proto": `syntax = "proto3";
package a;
import "b.proto";
message M {
  b.Thing thing = 1;
  string name = 2;
}`,
		"b.proto": `syntax = "proto3"; package b; message Thing {}`,
	}

	res, err := protocompile.Compile(src, resolver.Config{}, "a.proto")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Empty(t, res.Diagnostics())
	assert.Equal(t, 2, len(res.Files))

	sym, ok := res.Table.Lookup("a.M")
	require.True(t, ok)
	assert.Equal(t, "a.proto", sym.File)
}

func TestCompileReturnsDependencyErrorForMissingImport(t *testing.T) {
	t.Parallel()

	src := memSource{
		"a.proto": `syntax = "proto3"; import "missing.proto"; message M {}`,
	}

	_, err := protocompile.Compile(src, resolver.Config{}, "a.proto")
	require.Error(t, err)
	var perr *protocompile.ProtoParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, protocompile.DependencyError, perr.Kind)
	assert.Equal(t, "missing.proto", perr.ImportPath)
}

func TestCompileReturnsFileNotFoundForMissingEntryPoint(t *testing.T) {
	t.Parallel()

	src := memSource{}

	_, err := protocompile.Compile(src, resolver.Config{}, "missing.proto")
	require.Error(t, err)
	var perr *protocompile.ProtoParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, protocompile.FileNotFound, perr.Kind)
}

func TestCompileCollectsSemanticDiagnosticsWithoutFailing(t *testing.T) {
	t.Parallel()

	src := memSource{
		"a.proto": `syntax = "proto3"; enum E { FOO = 1; }`,
	}

	res, err := protocompile.Compile(src, resolver.Config{}, "a.proto")
	require.NoError(t, err)
	diags := res.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, protocompile.SemanticError, diags[0].Kind)
}

func TestCompileAcceptsNegativeEnumValue(t *testing.T) {
	t.Parallel()

	src := memSource{
		"a.proto": `syntax = "proto3"; enum E { OK = 0; BAD = -1; }`,
	}

	res, err := protocompile.Compile(src, resolver.Config{}, "a.proto")
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics())
}

func TestCompileReturnsLexicalErrorForUnlexableImport(t *testing.T) {
	t.Parallel()

	src := memSource{
		"a.proto": `syntax = "proto3"; import "b.proto"; message M {}`,
		"b.proto": `syntax = "proto3"; message N { string s = "unterminated`,
	}

	_, err := protocompile.Compile(src, resolver.Config{}, "a.proto")
	require.Error(t, err)
	var perr *protocompile.ProtoParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, protocompile.LexicalError, perr.Kind)
	assert.Equal(t, "b.proto", perr.File)
}
