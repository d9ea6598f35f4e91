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

// Package protoconfig is the ambient glue between a YAML configuration file
// and resolver.Config. It is not one of the four core subsystems (lexer,
// parser, symbols, resolver) and never touches lexing, parsing, or
// resolution directly; it only loads and validates the options a caller
// would otherwise build resolver.Config with by hand.
package protoconfig

import (
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/bufproto/protocompile/resolver"
)

// Document is the on-disk shape of a protocompile config file.
type Document struct {
	ImportPaths             []string `yaml:"import_paths"`
	AllowMissingImports     bool     `yaml:"allow_missing_imports"`
	RecognizeWellKnownTypes bool     `yaml:"recognize_well_known_types"`
	MaxDepth                int      `yaml:"max_depth"`
	EntryPoints             []string `yaml:"entry_points"`
}

// Load reads and parses a YAML document from path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("protoconfig: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a YAML document from r.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("protoconfig: decoding config: %w", err)
	}
	if doc.MaxDepth < 0 {
		return nil, fmt.Errorf("protoconfig: max_depth must not be negative, got %d", doc.MaxDepth)
	}
	for _, p := range doc.ImportPaths {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("protoconfig: import_paths entry %q is not a valid glob pattern", p)
		}
	}
	return &doc, nil
}

// ResolverConfig builds the resolver.Config the document describes, ready
// to hand to resolver.New or protocompile.Compile.
func (d *Document) ResolverConfig() resolver.Config {
	return resolver.Config{
		ImportPaths:             d.ImportPaths,
		AllowMissingImports:     d.AllowMissingImports,
		RecognizeWellKnownTypes: d.RecognizeWellKnownTypes,
		MaxDepth:                d.MaxDepth,
	}
}

// FileSource builds the resolver.FileSource the document's import_paths
// describe: a DirFileSource searching each configured directory in order.
func (d *Document) FileSource() resolver.FileSource {
	return &resolver.DirFileSource{ImportPaths: d.ImportPaths}
}
