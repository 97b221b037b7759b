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
package ast

import (
	"strings"
	"testing"

	"github.com/consensys/go-catlang/pkg/catlang/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitArguments_Simple(t *testing.T) {
	args, n, ok := split(t, "1, x + 2, \"s\")")
	//
	require.True(t, ok)
	assert.Equal(t, 8, n)
	require.Len(t, args, 3)
	assert.Equal(t, "1", args[0].String())
	assert.Equal(t, "x + 2", args[1].String())
	assert.Equal(t, `"s"`, args[2].String())
}

func TestSplitArguments_Empty(t *testing.T) {
	args, n, ok := split(t, ") + 1")
	//
	require.True(t, ok)
	assert.Equal(t, 1, n)
	assert.Empty(t, args)
}

func TestSplitArguments_Nested(t *testing.T) {
	args, _, ok := split(t, "foo(1, bar(2, 3)), 4)")
	//
	require.True(t, ok)
	require.Len(t, args, 2)
	assert.Equal(t, "foo ( 1 , bar ( 2 , 3 ) )", args[0].String())
	assert.Equal(t, "4", args[1].String())
}

func TestSplitArguments_Newlines(t *testing.T) {
	args, n, ok := split(t, "1,\n2\n)")
	//
	require.True(t, ok)
	assert.Equal(t, 6, n)
	require.Len(t, args, 2)
	assert.Equal(t, "2", args[1].String())
}

func TestSplitArguments_Unclosed(t *testing.T) {
	_, _, ok := split(t, "1, foo(2)")
	//
	assert.False(t, ok)
}

func TestCmpOp_Negate(t *testing.T) {
	for _, symbol := range []string{"==", "!=", ">", ">=", "<", "<="} {
		op, ok := LookupCmpOp(symbol)
		require.True(t, ok)
		assert.Equal(t, symbol, op.String())
		assert.NotEqual(t, op, op.Negate())
		assert.Equal(t, op, op.Negate().Negate())
	}
	//
	assert.Equal(t, NEQ, EQ.Negate())
	assert.Equal(t, LTEQ, GT.Negate())
	assert.Equal(t, GTEQ, LT.Negate())
	//
	_, ok := LookupCmpOp("=")
	assert.False(t, ok)
}

func TestPrint(t *testing.T) {
	var (
		builder strings.Builder
		i32     = "i32"
		init    = expr(t, "a + 1")
		block   = BlockStatement{
			&FunctionPrototype{Name: "puts", ParamTypes: []string{"i64"}, ReturnType: &i32},
			&Newline{},
			&FunctionDefinition{Name: "main", ParamNames: []string{"a"}, ParamTypes: []string{"i32"},
				ReturnType: &i32, Body: BlockStatement{
					&VariableDefinition{Name: "x", Type: &i32, Init: &init},
					&IfStatement{Left: expr(t, "x"), Operator: GT, Right: expr(t, "1"), Body: BlockStatement{
						&FunctionCall{Name: "puts", Args: []Expression{expr(t, `"big"`)}},
					}},
					&ReturnStatement{Expr: expr(t, "x")},
				}},
		}
	)
	//
	require.NoError(t, Print(&builder, block))
	//
	expected := "FunctionPrototype puts(i64) -> i32\n" +
		"FunctionDefinition main(a: i32) -> i32\n" +
		"\tVariableDefinition x: i32 = a + 1\n" +
		"\tIfStatement x > 1\n" +
		"\t\tFunctionCall puts(\"big\")\n" +
		"\tReturnStatement x\n"
	assert.Equal(t, expected, builder.String())
}

func TestLines(t *testing.T) {
	block := BlockStatement{
		&Newline{},
		&FunctionDefinition{Name: "f", Body: BlockStatement{&Newline{}, &Newline{}}},
	}
	//
	assert.Equal(t, int64(4), Lines(block))
	assert.Equal(t, int64(1), Lines(nil))
}

func split(t *testing.T, text string) ([]Expression, int, bool) {
	tokens, err := lexer.LexString(text)
	require.Nil(t, err)
	//
	return SplitArguments(tokens)
}

func expr(t *testing.T, text string) Expression {
	tokens, err := lexer.LexString(text)
	require.Nil(t, err)
	//
	return NewExpression(tokens...)
}
