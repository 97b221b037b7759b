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
	"unicode"

	"github.com/consensys/go-catlang/pkg/util/source"
	"github.com/consensys/go-catlang/pkg/util/source/lex"
)

// Rule for describing (non-newline) whitespace
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\r')))

// Rule for describing numbers.  A number is either a hexadecimal, binary, or
// decimal one.  Allowing (and ignoring) '_' in the middle of a number for
// readability.
var (
	binaryStart = lex.Sequence(lex.String("0b"), lex.Within('0', '1'))
	binaryRest  = lex.Or(lex.Within('0', '1'), lex.Unit('_'))

	decimalStart = lex.Within('0', '9')
	decimalRest  = lex.Or(lex.Within('0', '9'), lex.Unit('_'))

	hexDigit = lex.Or(
		lex.Within('0', '9'),
		lex.Within('A', 'F'),
		lex.Within('a', 'f'),
	)
	hexStart = lex.Sequence(lex.String("0x"), hexDigit)
	hexRest  = lex.Or(hexDigit, lex.Unit('_'))

	number = lex.Or(
		lex.SequenceNullableLast(binaryStart, lex.Many(binaryRest)),
		lex.SequenceNullableLast(hexStart, lex.Many(hexRest)),
		lex.SequenceNullableLast(decimalStart, lex.Many(decimalRest)),
	)
)

var identifierStart lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

var identifierRest lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

var identifierWord lex.Scanner[rune] = lex.SequenceNullableLast(identifierStart, lex.Many(identifierRest))

// Rule for describing identifiers, which may end in a '!' when naming a macro.
// A '!' followed by '=' is left for the "!=" operator.
func identifier(items []rune) uint {
	n := identifierWord(items)
	//
	if n > 0 && n < uint(len(items)) && items[n] == '!' && (n+1 == uint(len(items)) || items[n+1] != '=') {
		n++
	}
	//
	return n
}

// Rule for describing strings in quotes
var strung lex.Scanner[rune] = lex.Delimited([]rune{'"'}, []rune{'"'}, '\\')

// Rule for describing block comments.
var comment lex.Scanner[rune] = lex.Delimited([]rune("/*"), []rune("*/"))

// lexing rules
var rules []lex.LexRule[rune] = buildRules()

func buildRules() []lex.LexRule[rune] {
	var rules []lex.LexRule[rune]
	// Comments must come before '/'
	rules = append(rules,
		lex.Rule(comment, COMMENT),
		lex.Rule(lex.String("/*"), unterminatedComment),
		lex.Rule(whitespace, WHITESPACE),
		lex.Rule(lex.Unit('\n'), NEWLINE),
		lex.Rule(strung, STRING),
		lex.Rule(lex.Unit('"'), unterminatedString),
		lex.Rule(number, NUMBER))
	//
	for _, kw := range KEYWORDS {
		rules = append(rules, lex.Rule(lex.Word(kw, lex.Or(identifierRest, lex.Unit('!'))), KEYWORD))
	}
	//
	rules = append(rules, lex.Rule(identifier, IDENTIFIER))
	//
	for _, op := range OPERATORS {
		rules = append(rules, lex.Rule(lex.String(op), OPERATOR))
	}
	//
	return append(rules, lex.Rule(lex.Eof[rune](), END_OF))
}

// LexString is a convenience function for lexing text which is not held in a
// file.
func LexString(text string) ([]Token, *source.Error) {
	return Lex(source.NewSourceFile("", []byte(text)))
}

// Lex a given source file into a flat sequence of tokens.  Whitespace and
// comments are removed, but a NEWLINE token is retained for every newline in
// the original text (including those inside comments), since newlines
// terminate some statements and are used downstream for counting lines.
func Lex(srcfile *source.File) ([]Token, *source.Error) {
	var (
		contents = srcfile.Contents()
		lexer    = lex.NewLexer(contents, rules...)
		tokens   []Token
	)
	//
	for lexer.HasNext() {
		tok := lexer.Next()
		//
		switch tok.Kind {
		case END_OF, WHITESPACE:
			// ignore
		case COMMENT:
			for i, n := 0, strings.Count(srcfile.Text(tok.Span), "\n"); i < n; i++ {
				tokens = append(tokens, Token{NEWLINE, "\n", tok.Span})
			}
		case unterminatedString:
			return nil, lexError(srcfile, tok.Span, "unterminated string literal")
		case unterminatedComment:
			return nil, lexError(srcfile, tok.Span, "unterminated comment")
		case STRING:
			text := srcfile.Text(tok.Span)
			tokens = append(tokens, Token{STRING, text[1 : len(text)-1], tok.Span})
		default:
			tokens = append(tokens, Token{tok.Kind, srcfile.Text(tok.Span), tok.Span})
		}
	}
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start := int(lexer.Index())
		end := start + unknownRun(contents[start:])
		span := source.NewSpan(start, end)
		//
		return nil, lexError(srcfile, span, "'%s' is not a valid operator", srcfile.Text(span))
	}
	//
	return tokens, nil
}

// Determine the length of the maximal run of unrecognised characters starting
// at the beginning of the given text.  This always returns at least one.
func unknownRun(text []rune) int {
	n := 1
	//
	for n < len(text) {
		c := text[n]
		//
		if unicode.IsSpace(c) || unicode.IsLetter(c) || unicode.IsDigit(c) ||
			c == '_' || c == '"' || strings.ContainsRune(operatorChars, c) {
			break
		}
		//
		n++
	}
	//
	return n
}

// Characters which can start an operator.
const operatorChars = "*/+-=:;!,(){}<>"

func lexError(srcfile *source.File, span source.Span, format string, args ...any) *source.Error {
	line := srcfile.FindFirstEnclosingLine(span)
	return source.Errorf(source.LEX_ERROR, int64(line.Number()), format, args...)
}
