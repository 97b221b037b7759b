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

	"github.com/consensys/go-catlang/pkg/catlang/lexer"
)

// Expression is an un-parsed sequence of tokens whose evaluation is deferred
// to the code generator.  Expressions are a flat alternation of operands and
// the binary operators "+", "-", "*" and "/", all of which have the same
// precedence and associate to the left.  An operand is an integer literal, a
// string literal, a variable or a (function or macro) call.
type Expression struct {
	Tokens []lexer.Token
}

// NewExpression constructs an expression from a given sequence of tokens.
func NewExpression(tokens ...lexer.Token) Expression {
	return Expression{tokens}
}

// IsEmpty checks whether this expression has no tokens at all.
func (e Expression) IsEmpty() bool {
	return len(e.Tokens) == 0
}

// First returns the first token of this expression.
func (e Expression) First() lexer.Token {
	return e.Tokens[0]
}

func (e Expression) String() string {
	var builder strings.Builder
	//
	for i, tok := range e.Tokens {
		if i != 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(tok.Source())
	}
	//
	return builder.String()
}

// SplitArguments splits the argument list of a call into its constituent
// expressions.  The given tokens must start immediately after the opening
// parenthesis of the call.  Arguments are separated by commas which are not
// nested inside a further call, and the list ends at the matching closing
// parenthesis.  Newlines within the list are stripped.  This returns the
// arguments, and the number of tokens consumed (including the closing
// parenthesis).  If there is no matching closing parenthesis, this returns
// false.
func SplitArguments(tokens []lexer.Token) ([]Expression, int, bool) {
	var (
		args  []Expression
		arg   []lexer.Token
		depth = 1
	)
	//
	for i, tok := range tokens {
		switch {
		case tok.Kind == lexer.NEWLINE:
			continue
		case tok.IsOperator("("):
			depth++
		case tok.IsOperator(")"):
			depth--
			//
			if depth == 0 {
				if len(arg) > 0 || len(args) > 0 {
					args = append(args, Expression{arg})
				}
				//
				return args, i + 1, true
			}
		case tok.IsOperator(",") && depth == 1:
			args = append(args, Expression{arg})
			arg = nil
			//
			continue
		}
		//
		arg = append(arg, tok)
	}
	//
	return nil, len(tokens), false
}
