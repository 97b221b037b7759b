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
	"strings"
	"testing"

	"github.com/consensys/go-catlang/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kt struct {
	kind uint
	text string
}

func TestLex_Let(t *testing.T) {
	checkTokens(t, "let x: i32 = 5;",
		kt{KEYWORD, "let"}, kt{IDENTIFIER, "x"}, kt{OPERATOR, ":"}, kt{IDENTIFIER, "i32"},
		kt{OPERATOR, "="}, kt{NUMBER, "5"}, kt{OPERATOR, ";"})
}

func TestLex_Function(t *testing.T) {
	checkTokens(t, "fn add(a: i64) -> i64 {\n}",
		kt{KEYWORD, "fn"}, kt{IDENTIFIER, "add"}, kt{OPERATOR, "("}, kt{IDENTIFIER, "a"},
		kt{OPERATOR, ":"}, kt{IDENTIFIER, "i64"}, kt{OPERATOR, ")"}, kt{OPERATOR, "->"},
		kt{IDENTIFIER, "i64"}, kt{OPERATOR, "{"}, kt{NEWLINE, "\n"}, kt{OPERATOR, "}"})
}

func TestLex_MultiCharOperators(t *testing.T) {
	checkTokens(t, "== != <= >= += -= *= /= -> < > = !",
		kt{OPERATOR, "=="}, kt{OPERATOR, "!="}, kt{OPERATOR, "<="}, kt{OPERATOR, ">="},
		kt{OPERATOR, "+="}, kt{OPERATOR, "-="}, kt{OPERATOR, "*="}, kt{OPERATOR, "/="},
		kt{OPERATOR, "->"}, kt{OPERATOR, "<"}, kt{OPERATOR, ">"}, kt{OPERATOR, "="},
		kt{OPERATOR, "!"})
}

func TestLex_AdjacentOperators(t *testing.T) {
	checkTokens(t, "x-=1",
		kt{IDENTIFIER, "x"}, kt{OPERATOR, "-="}, kt{NUMBER, "1"})
	checkTokens(t, "a--b",
		kt{IDENTIFIER, "a"}, kt{OPERATOR, "-"}, kt{OPERATOR, "-"}, kt{IDENTIFIER, "b"})
}

func TestLex_Keywords(t *testing.T) {
	checkTokens(t, "let fn return if extern letter iffy",
		kt{KEYWORD, "let"}, kt{KEYWORD, "fn"}, kt{KEYWORD, "return"}, kt{KEYWORD, "if"},
		kt{KEYWORD, "extern"}, kt{IDENTIFIER, "letter"}, kt{IDENTIFIER, "iffy"})
}

func TestLex_Macro(t *testing.T) {
	checkTokens(t, "syscall!(60, 0)",
		kt{IDENTIFIER, "syscall!"}, kt{OPERATOR, "("}, kt{NUMBER, "60"}, kt{OPERATOR, ","},
		kt{NUMBER, "0"}, kt{OPERATOR, ")"})
	// A bang not attached to an identifier is an operator
	checkTokens(t, "a != b",
		kt{IDENTIFIER, "a"}, kt{OPERATOR, "!="}, kt{IDENTIFIER, "b"})
	checkTokens(t, "a!=b",
		kt{IDENTIFIER, "a"}, kt{OPERATOR, "!="}, kt{IDENTIFIER, "b"})
}

func TestLex_Numbers(t *testing.T) {
	checkTokens(t, "0 42 0x1F 0b101 1_000",
		kt{NUMBER, "0"}, kt{NUMBER, "42"}, kt{NUMBER, "0x1F"}, kt{NUMBER, "0b101"},
		kt{NUMBER, "1_000"})
}

func TestLex_Strings(t *testing.T) {
	checkTokens(t, `let s = "hello world\n";`,
		kt{KEYWORD, "let"}, kt{IDENTIFIER, "s"}, kt{OPERATOR, "="},
		kt{STRING, `hello world\n`}, kt{OPERATOR, ";"})
	checkTokens(t, `"say \"hi\""`, kt{STRING, `say \"hi\"`})
	checkTokens(t, `"a /* b */ c"`, kt{STRING, "a /* b */ c"})
}

func TestLex_Comments(t *testing.T) {
	checkTokens(t, "a /* comment */ b", kt{IDENTIFIER, "a"}, kt{IDENTIFIER, "b"})
	// Newlines inside comments are preserved for line counting
	checkTokens(t, "a /* one\ntwo\n */ b",
		kt{IDENTIFIER, "a"}, kt{NEWLINE, "\n"}, kt{NEWLINE, "\n"}, kt{IDENTIFIER, "b"})
	checkTokens(t, "x /**/ / y", kt{IDENTIFIER, "x"}, kt{OPERATOR, "/"}, kt{IDENTIFIER, "y"})
}

func TestLex_Newlines(t *testing.T) {
	checkTokens(t, "a\r\n\nb",
		kt{IDENTIFIER, "a"}, kt{NEWLINE, "\n"}, kt{NEWLINE, "\n"}, kt{IDENTIFIER, "b"})
}

func TestLex_InvalidOperator(t *testing.T) {
	checkError(t, "let x = 1 @ 2;", 1, "'@' is not a valid operator")
	checkError(t, "fn main() {\n  x = a #$ b;\n}", 2, "'#$' is not a valid operator")
	checkError(t, "let a = [1];", 1, "'[' is not a valid operator")
}

func TestLex_Unterminated(t *testing.T) {
	checkError(t, "let s = \"abc;\n", 1, "unterminated string literal")
	checkError(t, "\n\n/* never closed", 3, "unterminated comment")
}

func TestLex_Spans(t *testing.T) {
	tokens, err := LexString("let  xy")
	require.Nil(t, err)
	require.Len(t, tokens, 2)
	//
	assert.Equal(t, source.NewSpan(0, 3), tokens[0].Span)
	assert.Equal(t, source.NewSpan(5, 7), tokens[1].Span)
}

func TestLex_RoundTrip(t *testing.T) {
	inputs := []string{
		"fn main() -> i32 {\n\tlet x: i32 = 5;\n\treturn x;\n}",
		"fn puts(s: i64) -> i32;\nfn main() {\n\tputs(\"hi\");\n\tsyscall!(60, 0);\n}",
		"if (a >= b + 1) { a -= 2 * b / 3; }",
	}
	//
	for _, input := range inputs {
		first, err := LexString(input)
		require.Nil(t, err)
		// Reconstruct source text from the tokens
		var builder strings.Builder
		for _, tok := range first {
			builder.WriteString(tok.Source())
			builder.WriteString(" ")
		}
		//
		second, err := LexString(builder.String())
		require.Nil(t, err)
		require.Equal(t, len(first), len(second))
		//
		for i := range first {
			assert.Equal(t, first[i].Kind, second[i].Kind)
			assert.Equal(t, first[i].Text, second[i].Text)
		}
	}
}

func TestToken_String(t *testing.T) {
	assert.Equal(t, "identifier 'x'", NewToken(IDENTIFIER, "x").String())
	assert.Equal(t, "operator '('", NewToken(OPERATOR, "(").String())
	assert.Equal(t, "newline", NewToken(NEWLINE, "\n").String())
	assert.Equal(t, "int literal '5'", NewToken(NUMBER, "5").String())
	assert.Equal(t, "keyword 'fn'", NewToken(KEYWORD, "fn").String())
}

func checkTokens(t *testing.T, input string, expected ...kt) {
	t.Helper()
	//
	tokens, err := LexString(input)
	require.Nil(t, err, "unexpected error lexing %q", input)
	//
	actual := make([]kt, len(tokens))
	for i, tok := range tokens {
		actual[i] = kt{tok.Kind, tok.Text}
	}
	//
	assert.Equal(t, expected, actual, "lexing %q", input)
}

func checkError(t *testing.T, input string, line int64, msg string) {
	t.Helper()
	//
	_, err := LexString(input)
	require.NotNil(t, err, "expected error lexing %q", input)
	assert.Equal(t, source.LEX_ERROR, err.Kind())
	assert.Equal(t, line, err.Line())
	assert.Equal(t, msg, err.Message())
}
