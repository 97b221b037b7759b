// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package lexer

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/consensys/go-catlang/pkg/util/source"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals spaces, tabs and carriage returns.
const WHITESPACE uint = 1

// COMMENT signals "/* ... */"
const COMMENT uint = 2

// NEWLINE signals "\n"
const NEWLINE uint = 3

// KEYWORD signals one of the reserved words (see KEYWORDS).
const KEYWORD uint = 4

// IDENTIFIER signals a variable, type, function or macro name.
const IDENTIFIER uint = 5

// NUMBER signals an integer literal
const NUMBER uint = 6

// STRING signals a quoted string
const STRING uint = 7

// OPERATOR signals a one or two character operator (see OPERATORS).
const OPERATOR uint = 8

// Unterminated strings and comments are matched only so they can be reported.
const unterminatedString uint = 9
const unterminatedComment uint = 10

// KEYWORDS identifies the closed set of reserved words.  Observe that "extern"
// is reserved, although no statement currently starts with it.
var KEYWORDS = []string{"let", "fn", "return", "if", "extern"}

// OPERATORS identifies the closed set of operators, where the two character
// operators come first.
var OPERATORS = []string{
	"->", "==", "!=", "<=", ">=", "+=", "-=", "*=", "/=",
	"*", "/", "+", "-", "=", ":", ";", "!", ",", "(", ")", "{", "}", "<", ">",
}

// Token is a single lexical unit of the source text.  Tokens are produced once,
// and are not modified thereafter.
type Token struct {
	Kind uint
	// Text of the token.  For strings this excludes the enclosing quotes, and
	// for newlines it is "\n".
	Text string
	// Span of the token within the original source file.
	Span source.Span
}

// Is checks whether this token has a given kind and text.
func (t Token) Is(kind uint, text string) bool {
	return t.Kind == kind && t.Text == text
}

// IsOperator checks whether this token is a given operator.
func (t Token) IsOperator(op string) bool {
	return t.Is(OPERATOR, op)
}

// IsKeyword checks whether this token is a given keyword.
func (t Token) IsKeyword(word string) bool {
	return t.Is(KEYWORD, word)
}

// Source returns the text which lexes back into this token.
func (t Token) Source() string {
	if t.Kind == STRING {
		return "\"" + t.Text + "\""
	}
	//
	return t.Text
}

// String returns a human-readable description of this token, as used in error
// messages.
func (t Token) String() string {
	switch t.Kind {
	case KEYWORD:
		return fmt.Sprintf("keyword '%s'", t.Text)
	case IDENTIFIER:
		return fmt.Sprintf("identifier '%s'", t.Text)
	case STRING:
		return fmt.Sprintf("string literal '%s'", t.Text)
	case NUMBER:
		return fmt.Sprintf("int literal '%s'", t.Text)
	case OPERATOR:
		return fmt.Sprintf("operator '%s'", t.Text)
	case NEWLINE:
		return "newline"
	default:
		return strconv.Quote(t.Text)
	}
}

// IsKeyword checks whether a given word is reserved.
func IsKeyword(word string) bool {
	return slices.Contains(KEYWORDS, word)
}

// NewToken constructs a token which does not originate from a source file.
// This is used when the parser splices tokens (e.g. for compound assignment).
func NewToken(kind uint, text string) Token {
	return Token{kind, text, source.NewSpan(0, 0)}
}
