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

package descriptorgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/bufproto/protocompile"
	"github.com/bufproto/protocompile/descriptorgen"
	"github.com/bufproto/protocompile/resolver"
)

type memSource map[string]string

func (m memSource) ReadFile(path string) (string, bool, error) {
	c, ok := m[path]
	return c, ok, nil
}

func (m memSource) Suggest(string) []string { return nil }

func compile(t *testing.T, src memSource, entry string) *protocompile.Result {
	t.Helper()
	res, err := protocompile.Compile(src, resolver.Config{}, entry)
	require.NoError(t, err)
	require.Empty(t, res.Diagnostics())
	return res
}

func findMessage(t *testing.T, fd *descriptorpb.FileDescriptorProto, name string) *descriptorpb.DescriptorProto {
	t.Helper()
	for _, m := range fd.GetMessageType() {
		if m.GetName() == name {
			return m
		}
	}
	require.Failf(t, "message not found", "%s", name)
	return nil
}

func TestGenerateBasicMessage(t *testing.T) {
	t.Parallel()

	src := memSource{
		"a.proto": `syntax = "proto3";
package a;
message M {
  string name = 1;
  repeated int32 vals = 2;
}`,
	}
	res := compile(t, src, "a.proto")

	fds := descriptorgen.Generate(res.Files, res.Table)
	require.Len(t, fds, 1)

	fd := fds[0]
	assert.Equal(t, "a.proto", fd.GetName())
	assert.Equal(t, "a", fd.GetPackage())
	assert.Equal(t, "proto3", fd.GetSyntax())

	m := findMessage(t, fd, "M")
	require.Len(t, m.GetField(), 2)
	assert.Equal(t, "name", m.GetField()[0].GetName())
	assert.Equal(t, descriptorpb.FieldDescriptorProto_TYPE_STRING, m.GetField()[0].GetType())
	assert.Equal(t, descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL, m.GetField()[0].GetLabel())

	assert.Equal(t, "vals", m.GetField()[1].GetName())
	assert.Equal(t, descriptorpb.FieldDescriptorProto_TYPE_INT32, m.GetField()[1].GetType())
	assert.Equal(t, descriptorpb.FieldDescriptorProto_LABEL_REPEATED, m.GetField()[1].GetLabel())
}

func TestGenerateCrossFileMessageReference(t *testing.T) {
	t.Parallel()

	src := memSource{
		"a.proto": `syntax = "proto3";
package a;
import "b.proto";
message M {
  b.Thing thing = 1;
}`,
		"b.proto": `syntax = "proto3"; package b; message Thing {}`,
	}
	res := compile(t, src, "a.proto")

	fds := descriptorgen.Generate(res.Files, res.Table)
	require.Len(t, fds, 2)

	var aFd *descriptorpb.FileDescriptorProto
	for _, fd := range fds {
		if fd.GetName() == "a.proto" {
			aFd = fd
		}
	}
	require.NotNil(t, aFd)

	m := findMessage(t, aFd, "M")
	require.Len(t, m.GetField(), 1)
	f := m.GetField()[0]
	assert.Equal(t, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, f.GetType())
	assert.Equal(t, ".b.Thing", f.GetTypeName())
}

func TestGenerateMapFieldSynthesizesEntryMessage(t *testing.T) {
	t.Parallel()

	src := memSource{
		"a.proto": `syntax = "proto3";
package a;
message M {
  map<string, int32> counts = 1;
}`,
	}
	res := compile(t, src, "a.proto")

	fds := descriptorgen.Generate(res.Files, res.Table)
	m := findMessage(t, fds[0], "M")

	require.Len(t, m.GetField(), 1)
	f := m.GetField()[0]
	assert.Equal(t, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, f.GetType())
	assert.Equal(t, descriptorpb.FieldDescriptorProto_LABEL_REPEATED, f.GetLabel())
	assert.Equal(t, ".a.CountsEntry", f.GetTypeName())

	require.Len(t, m.GetNestedType(), 1)
	entry := m.GetNestedType()[0]
	assert.Equal(t, "CountsEntry", entry.GetName())
	assert.True(t, entry.GetOptions().GetMapEntry())
	require.Len(t, entry.GetField(), 2)
	assert.Equal(t, "key", entry.GetField()[0].GetName())
	assert.Equal(t, int32(1), entry.GetField()[0].GetNumber())
	assert.Equal(t, descriptorpb.FieldDescriptorProto_TYPE_STRING, entry.GetField()[0].GetType())
	assert.Equal(t, "value", entry.GetField()[1].GetName())
	assert.Equal(t, int32(2), entry.GetField()[1].GetNumber())
	assert.Equal(t, descriptorpb.FieldDescriptorProto_TYPE_INT32, entry.GetField()[1].GetType())
}

func TestGenerateEnumAndService(t *testing.T) {
	t.Parallel()

	src := memSource{
		"a.proto": `syntax = "proto3";
package a;
enum Status {
  STATUS_UNSPECIFIED = 0;
  STATUS_OK = 1;
}
message Req {}
message Resp {}
service Svc {
  rpc Do(Req) returns (Resp);
}`,
	}
	res := compile(t, src, "a.proto")

	fd := descriptorgen.Generate(res.Files, res.Table)[0]

	require.Len(t, fd.GetEnumType(), 1)
	e := fd.GetEnumType()[0]
	assert.Equal(t, "Status", e.GetName())
	require.Len(t, e.GetValue(), 2)
	assert.Equal(t, "STATUS_OK", e.GetValue()[1].GetName())
	assert.Equal(t, int32(1), e.GetValue()[1].GetNumber())

	require.Len(t, fd.GetService(), 1)
	s := fd.GetService()[0]
	assert.Equal(t, "Svc", s.GetName())
	require.Len(t, s.GetMethod(), 1)
	meth := s.GetMethod()[0]
	assert.Equal(t, "Do", meth.GetName())
	assert.Equal(t, ".a.Req", meth.GetInputType())
	assert.Equal(t, ".a.Resp", meth.GetOutputType())
}

func TestGenerateReservedRangesAndNames(t *testing.T) {
	t.Parallel()

	src := memSource{
		"a.proto": `syntax = "proto3";
package a;
message M {
  reserved 2, 9 to 11;
  reserved "foo", "bar";
  string name = 1;
}`,
	}
	res := compile(t, src, "a.proto")

	fd := descriptorgen.Generate(res.Files, res.Table)[0]
	m := findMessage(t, fd, "M")

	require.Len(t, m.GetReservedRange(), 2)
	assert.Equal(t, int32(2), m.GetReservedRange()[0].GetStart())
	assert.Equal(t, int32(3), m.GetReservedRange()[0].GetEnd())
	assert.Equal(t, int32(9), m.GetReservedRange()[1].GetStart())
	assert.Equal(t, int32(12), m.GetReservedRange()[1].GetEnd())
	assert.ElementsMatch(t, []string{"foo", "bar"}, m.GetReservedName())
}
