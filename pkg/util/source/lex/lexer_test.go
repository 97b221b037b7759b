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
package lex

import (
	"testing"

	"github.com/consensys/go-catlang/pkg/util/source"
	"github.com/stretchr/testify/assert"
)

func TestLexer_Empty(t *testing.T) {
	checkLexer(t, "", 0, Token{END_OF, source.NewSpan(0, 0)})
}

func TestLexer_Braces(t *testing.T) {
	checkLexer(t, "( )", 0,
		Token{LBRACE, source.NewSpan(0, 1)},
		Token{WSPACE, source.NewSpan(1, 2)},
		Token{RBRACE, source.NewSpan(2, 3)},
		Token{END_OF, source.NewSpan(3, 3)},
	)
}

func TestLexer_Number(t *testing.T) {
	checkLexer(t, "(90)", 0,
		Token{LBRACE, source.NewSpan(0, 1)},
		Token{NUMBER, source.NewSpan(1, 3)},
		Token{RBRACE, source.NewSpan(3, 4)},
		Token{END_OF, source.NewSpan(4, 4)},
	)
}

func TestLexer_Unknown(t *testing.T) {
	checkLexer(t, "1x", 1, Token{NUMBER, source.NewSpan(0, 1)})
}

func TestLexer_LongestOperatorFirst(t *testing.T) {
	checkLexer(t, "->-", 0,
		Token{ARROW, source.NewSpan(0, 2)},
		Token{DASH, source.NewSpan(2, 3)},
		Token{END_OF, source.NewSpan(3, 3)},
	)
}

func TestScannerSequence(t *testing.T) {
	rule := Sequence(Unit('a'), Unit('b'), Unit('c'))
	//
	assert.Equal(t, uint(0), rule([]rune("acc")))
	assert.Equal(t, uint(0), rule([]rune("ab")))
	assert.Equal(t, uint(3), rule([]rune("abcd")))
}

func TestScannerSequenceNullableLast(t *testing.T) {
	rule := SequenceNullableLast(Unit('a'), Many(Unit('b')))
	//
	assert.Equal(t, uint(1), rule([]rune("a")))
	assert.Equal(t, uint(3), rule([]rune("abbc")))
	assert.Equal(t, uint(0), rule([]rune("bb")))
}

func TestScannerWord(t *testing.T) {
	rule := Word("let", Within('a', 'z'))
	//
	assert.Equal(t, uint(3), rule([]rune("let x")))
	assert.Equal(t, uint(0), rule([]rune("lettuce")))
	assert.Equal(t, uint(3), rule([]rune("let")))
}

func TestScannerNot(t *testing.T) {
	rule := Many(Not('"', '\n'))
	//
	assert.Equal(t, uint(5), rule([]rune("hello\"")))
	assert.Equal(t, uint(0), rule([]rune("\n")))
}

func TestScannerDelimited(t *testing.T) {
	comment := Delimited([]rune("/*"), []rune("*/"))
	str := Delimited([]rune{'"'}, []rune{'"'}, '\\')
	//
	assert.Equal(t, uint(7), comment([]rune("/* x */ y")))
	assert.Equal(t, uint(0), comment([]rune("/* x")))
	assert.Equal(t, uint(4), comment([]rune("/**/")))
	assert.Equal(t, uint(6), str([]rune(`"a\"b" c`)))
	assert.Equal(t, uint(0), str([]rune(`"abc`)))
}

func TestScannerUntil(t *testing.T) {
	assert.Equal(t, uint(3), Until('\n')([]rune("abc\ndef")))
	assert.Equal(t, uint(3), Until('\n')([]rune("abc")))
}

// ==================================================================
// Framework
// ==================================================================

const END_OF uint = 0
const WSPACE uint = 1
const LBRACE uint = 2
const RBRACE uint = 3
const NUMBER uint = 4
const ARROW uint = 5
const DASH uint = 6

var rules = []LexRule[rune]{
	Rule(Unit('('), LBRACE),
	Rule(Unit(')'), RBRACE),
	Rule(Unit('-', '>'), ARROW),
	Rule(Unit('-'), DASH),
	Rule(Many(Or(Unit(' '), Unit('\t'))), WSPACE),
	Rule(Many(Within('0', '9')), NUMBER),
	Rule(Eof[rune](), END_OF),
}

func checkLexer(t *testing.T, input string, remainder uint, expected ...Token) {
	lexer := NewLexer([]rune(input), rules...)
	tokens := lexer.Collect()
	//
	assert.Equal(t, expected, tokens)
	assert.Equal(t, remainder, lexer.Remaining())
}
