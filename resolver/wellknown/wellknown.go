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

// Package wellknown embeds minimal-but-accurate proto3 source for the
// google.protobuf well-known types. When a DependencyResolver is
// configured to recognize them (Config.RecognizeWellKnownTypes), an
// import of "google/protobuf/any.proto" (etc.) is satisfied from this
// embedded set instead of requiring the caller's FileSource to provide it.
package wellknown

import "embed"

//go:embed google/protobuf/*.proto
var files embed.FS

// Paths lists the import paths this package can satisfy, in a stable order.
var Paths = []string{
	"google/protobuf/any.proto",
	"google/protobuf/timestamp.proto",
	"google/protobuf/duration.proto",
	"google/protobuf/empty.proto",
	"google/protobuf/struct.proto",
	"google/protobuf/wrappers.proto",
	"google/protobuf/field_mask.proto",
}

// Lookup returns the embedded source for path and true, or ("", false) if
// path is not one of the well-known types this package carries.
func Lookup(path string) (string, bool) {
	if !IsWellKnown(path) {
		return "", false
	}
	data, err := files.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// IsWellKnown reports whether path names one of the embedded well-known
// types, without reading its content.
func IsWellKnown(path string) bool {
	for _, p := range Paths {
		if p == path {
			return true
		}
	}
	return false
}
