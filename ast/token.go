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

package ast

// Keyword is one of the reserved words of the proto3 lexical grammar.
// Scalar type names (int32, string, ...) are deliberately excluded: they are
// ordinary identifiers that the parser interprets contextually.
type Keyword string

// The closed keyword set. true/false are lexed as BoolLiteral tokens rather
// than Keyword tokens, but are reserved words nonetheless.
const (
	KeywordSyntax   Keyword = "syntax"
	KeywordPackage  Keyword = "package"
	KeywordImport   Keyword = "import"
	KeywordOption   Keyword = "option"
	KeywordMessage  Keyword = "message"
	KeywordEnum     Keyword = "enum"
	KeywordService  Keyword = "service"
	KeywordRPC      Keyword = "rpc"
	KeywordReturns  Keyword = "returns"
	KeywordStream   Keyword = "stream"
	KeywordOneof    Keyword = "oneof"
	KeywordMap      Keyword = "map"
	KeywordReserved Keyword = "reserved"
	KeywordRepeated Keyword = "repeated"
	KeywordOptional Keyword = "optional"
	KeywordExtend   Keyword = "extend"
	KeywordPublic   Keyword = "public"
	KeywordWeak     Keyword = "weak"
	KeywordTo       Keyword = "to"
)

// Keywords is the closed set of Keyword-kind reserved words, keyed by text.
var Keywords = map[string]Keyword{
	string(KeywordSyntax):   KeywordSyntax,
	string(KeywordPackage):  KeywordPackage,
	string(KeywordImport):   KeywordImport,
	string(KeywordOption):   KeywordOption,
	string(KeywordMessage):  KeywordMessage,
	string(KeywordEnum):     KeywordEnum,
	string(KeywordService):  KeywordService,
	string(KeywordRPC):      KeywordRPC,
	string(KeywordReturns):  KeywordReturns,
	string(KeywordStream):   KeywordStream,
	string(KeywordOneof):    KeywordOneof,
	string(KeywordMap):      KeywordMap,
	string(KeywordReserved): KeywordReserved,
	string(KeywordRepeated): KeywordRepeated,
	string(KeywordOptional): KeywordOptional,
	string(KeywordExtend):   KeywordExtend,
	string(KeywordPublic):   KeywordPublic,
	string(KeywordWeak):     KeywordWeak,
	string(KeywordTo):       KeywordTo,
}

// ScalarKind enumerates the fifteen proto3 scalar field types.
type ScalarKind int

const (
	_ ScalarKind = iota
	Double
	Float
	Int32
	Int64
	UInt32
	UInt64
	SInt32
	SInt64
	Fixed32
	Fixed64
	SFixed32
	SFixed64
	Bool
	String
	Bytes
)

// ScalarKinds maps scalar type spellings to their ScalarKind. Scalar names
// are not keywords; they are identifiers the parser recognizes by text.
var ScalarKinds = map[string]ScalarKind{
	"double":   Double,
	"float":    Float,
	"int32":    Int32,
	"int64":    Int64,
	"uint32":   UInt32,
	"uint64":   UInt64,
	"sint32":   SInt32,
	"sint64":   SInt64,
	"fixed32":  Fixed32,
	"fixed64":  Fixed64,
	"sfixed32": SFixed32,
	"sfixed64": SFixed64,
	"bool":     Bool,
	"string":   String,
	"bytes":    Bytes,
}

func (k ScalarKind) String() string {
	for name, kind := range ScalarKinds {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// TokenKind tags the variant held by a Token.
type TokenKind int

const (
	TokenIdentifier TokenKind = iota
	TokenKeyword
	TokenInt
	TokenFloat
	TokenString
	TokenBool
	TokenSymbol
	TokenComment
	TokenWhitespace
	TokenNewline
	TokenEOF
)

// CommentKind distinguishes line comments from block comments.
type CommentKind int

const (
	LineComment CommentKind = iota
	BlockComment
)

// Token is a single lexed unit: a kind tag, a source position, and whichever
// payload field is relevant to that kind. Only one payload field is
// meaningful for any given Kind.
type Token struct {
	Kind    TokenKind
	Pos     Position
	Text    string      // Identifier, Symbol, and the raw spelling of Int/Float
	Keyword Keyword     // set when Kind == TokenKeyword
	Int     int64       // set when Kind == TokenInt
	Float   float64     // set when Kind == TokenFloat
	Str     string      // decoded payload when Kind == TokenString
	Bool    bool        // set when Kind == TokenBool
	Comment CommentKind // set when Kind == TokenComment
}

// Ignorable reports whether the parser's lookahead helpers should skip this
// token by default. Ignorable tokens remain in the stream so that higher
// layers may still inspect them (e.g. to attach comments).
func (t Token) Ignorable() bool {
	switch t.Kind {
	case TokenComment, TokenWhitespace, TokenNewline:
		return true
	default:
		return false
	}
}
