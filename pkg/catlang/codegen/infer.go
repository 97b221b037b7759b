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
package codegen

import (
	"github.com/consensys/go-catlang/pkg/catlang/ast"
	"github.com/consensys/go-catlang/pkg/catlang/lexer"
	"github.com/consensys/go-catlang/pkg/catlang/register"
	"github.com/consensys/go-catlang/pkg/util/source"
)

// Infer the type of an expression from its first operand alone.  Calls give
// the return type of the function or macro, variables give their declared
// type, int literals default to i32 and string literals are pointers (i64).
func (s *State) infer(expr ast.Expression) (register.DataType, *source.Error) {
	var tokens = expr.Tokens
	//
	if expr.IsEmpty() {
		return register.DataType{}, s.errorf(source.TYPE_ERROR, "expected an identifier, int literal, or string "+
			"literal as the first element of expression, but got nothing")
	}
	//
	switch first := tokens[0]; {
	case isCall(tokens, 0):
		returns, err := s.returnType(first.Text)
		if err != nil {
			return register.DataType{}, err
		} else if returns == nil {
			return register.DataType{}, s.errorf(source.TYPE_ERROR, "attempted to use return value of '%s' in "+
				"expression but it does not return anything", first.Text)
		}
		//
		return *returns, nil
	case first.Kind == lexer.IDENTIFIER:
		v, ok := s.current.lookup(first.Text)
		if !ok {
			return register.DataType{}, s.errorf(source.UNDEFINED_SYMBOL, "attempted to use variable '%s' in "+
				"expression but it is not defined in the current scope", first.Text)
		}
		//
		return v.Type, nil
	case first.Kind == lexer.NUMBER, first.IsOperator("-") && len(tokens) > 1 && tokens[1].Kind == lexer.NUMBER:
		return register.I32, nil
	case first.Kind == lexer.STRING:
		return register.I64, nil
	default:
		return register.DataType{}, s.errorf(source.TYPE_ERROR, "expected an identifier, int literal, or string "+
			"literal as the first element of expression, but got %s instead", first.String())
	}
}
