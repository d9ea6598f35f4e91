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

package reporter_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufproto/protocompile/ast"
	"github.com/bufproto/protocompile/reporter"
)

func TestHandlerCollectsByDefault(t *testing.T) {
	t.Parallel()

	h := reporter.NewHandler(nil)
	require.NoError(t, h.HandleErrorf("a.proto", ast.Position{Line: 1, Column: 1}, "boom %d", 1))
	require.NoError(t, h.HandleErrorf("a.proto", ast.Position{Line: 2, Column: 1}, "boom %d", 2))

	assert.Len(t, h.Errors(), 2)
	assert.ErrorIs(t, h.Error(), reporter.ErrInvalidSource)
}

func TestHandlerAbortsWhenReporterReturnsError(t *testing.T) {
	t.Parallel()

	abort := errors.New("stop")
	rep := reporter.NewReporter(func(reporter.ErrorWithPos) error { return abort }, nil)
	h := reporter.NewHandler(rep)

	err := h.HandleErrorf("a.proto", ast.Position{Line: 1, Column: 1}, "boom")
	require.ErrorIs(t, err, abort)
	assert.True(t, h.Aborted())

	// further errors don't get reported again, same abort is returned
	err2 := h.HandleErrorf("a.proto", ast.Position{Line: 2, Column: 1}, "boom again")
	require.ErrorIs(t, err2, abort)
	assert.Len(t, h.Errors(), 1)
}

func TestRenderSnippet(t *testing.T) {
	t.Parallel()

	src := "message Foo {\n  string x = 1;\n}\n"
	out := reporter.RenderSnippet(src, ast.Position{Line: 2, Column: 10})
	assert.Contains(t, out, "string x = 1;")
	assert.Contains(t, out, "^")
}
