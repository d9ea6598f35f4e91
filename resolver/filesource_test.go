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

package resolver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufproto/protocompile/resolver"
)

func TestDirFileSourceReadsAbsolutePathDirectly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	abs := filepath.Join(dir, "entry.proto")
	require.NoError(t, os.WriteFile(abs, []byte(`syntax = "proto3";`), 0o600))

	// A search path that shares no prefix with abs: if ReadFile ever joined
	// the absolute path onto it instead of reading it directly, the lookup
	// would miss.
	src := &resolver.DirFileSource{ImportPaths: []string{t.TempDir()}}

	content, ok, err := src.ReadFile(abs)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `syntax = "proto3";`, content)
}

func TestDirFileSourceReadsAbsolutePathEvenWithNoImportPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	abs := filepath.Join(dir, "entry.proto")
	require.NoError(t, os.WriteFile(abs, []byte(`syntax = "proto3";`), 0o600))

	src := &resolver.DirFileSource{}
	content, ok, err := src.ReadFile(abs)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `syntax = "proto3";`, content)
}

func TestDirFileSourceAbsolutePathMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	abs := filepath.Join(t.TempDir(), "missing.proto")
	src := &resolver.DirFileSource{ImportPaths: []string{t.TempDir()}}

	_, ok, err := src.ReadFile(abs)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDirFileSourceRelativePathSearchesImportPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.proto"), []byte(`syntax = "proto3";`), 0o600))

	src := &resolver.DirFileSource{ImportPaths: []string{t.TempDir(), dir}}
	content, ok, err := src.ReadFile("a.proto")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `syntax = "proto3";`, content)
}
