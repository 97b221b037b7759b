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
	"math/big"
	"strings"

	"github.com/consensys/go-catlang/pkg/catlang/ast"
	"github.com/consensys/go-catlang/pkg/catlang/lexer"
	"github.com/consensys/go-catlang/pkg/catlang/register"
	"github.com/consensys/go-catlang/pkg/util/source"
)

// Evaluate an expression whose result must have a given type.  Expressions are
// evaluated left-to-right, with all operators sharing the same precedence.  A
// single operand is returned as is (e.g. as an immediate or a stack slot),
// otherwise the result is accumulated in the scratch register.
func (s *State) evaluate(expr ast.Expression, expected register.DataType) (Value, *source.Error) {
	var (
		fn     = s.current
		tokens = expr.Tokens
	)
	//
	if expr.IsEmpty() {
		return Value{}, s.errorf(source.PARSE_ERROR, "expected int literal, string literal or identifier in "+
			"expression, but got nothing")
	}
	//
	root, i, err := s.operand(tokens, 0, expected)
	if err != nil || i == len(tokens) {
		return root, err
	}
	//
	scratch := register.Scratch(expected.Width)
	s.load(scratch, root)
	//
	for i < len(tokens) {
		var (
			op    = tokens[i]
			saved *Variable
			value Value
		)
		//
		if !isArithmetic(op) {
			return Value{}, s.errorf(source.PARSE_ERROR, "unexpected %s in expression evaluation", op.String())
		} else if i+1 == len(tokens) {
			return Value{}, s.errorf(source.PARSE_ERROR, "expected an operand after %s in expression", op.String())
		}
		// Evaluating a call may itself use the scratch register
		if isCall(tokens, i+1) {
			tmp := fn.temporary(register.I64)
			fn.emit("mov %s, %s", tmp.Value(), register.Scratch(register.QWORD))
			saved = &tmp
		}
		//
		if value, i, err = s.operand(tokens, i+1, expected); err != nil {
			return Value{}, err
		}
		//
		if saved != nil {
			fn.emit("mov %s, %s", register.Scratch(register.QWORD), saved.Value())
		}
		//
		s.apply(op.Text, scratch, value)
	}
	//
	return Register(scratch), nil
}

// Evaluate the operand starting at a given position in a token sequence,
// returning the value and the position following it.
func (s *State) operand(tokens []lexer.Token, i int, expected register.DataType) (Value, int, *source.Error) {
	var (
		tok = tokens[i]
		fn  = s.current
	)
	//
	switch {
	case tok.Kind == lexer.NUMBER:
		return s.number(tok.Text, false, expected, i+1)
	case tok.IsOperator("-") && i+1 < len(tokens) && tokens[i+1].Kind == lexer.NUMBER:
		return s.number(tokens[i+1].Text, true, expected, i+2)
	case tok.Kind == lexer.STRING:
		if expected != register.I64 {
			return Value{}, 0, s.errorf(source.TYPE_ERROR, "expected expression to evaluate to type '%s', but "+
				"string literals have type '%s'", expected, register.I64)
		}
		//
		return Value{LABEL, s.literal(tok.Text), register.QWORD}, i + 1, nil
	case isCall(tokens, i):
		return s.callOperand(tokens, i, expected)
	case tok.Kind == lexer.IDENTIFIER:
		v, ok := fn.lookup(tok.Text)
		if !ok {
			return Value{}, 0, s.errorf(source.UNDEFINED_SYMBOL, "variable '%s' is not defined in the current scope",
				tok.Text)
		} else if v.Type != expected {
			return Value{}, 0, s.errorf(source.TYPE_ERROR, "expected expression to evaluate to type '%s', but "+
				"the type of '%s' is '%s'", expected, tok.Text, v.Type)
		}
		//
		return v.Value(), i + 1, nil
	default:
		return Value{}, 0, s.errorf(source.PARSE_ERROR, "expected int literal, string literal or identifier in "+
			"expression, but got %s", tok.String())
	}
}

// Evaluate a call to a function or macro whose result is used as an operand.
func (s *State) callOperand(tokens []lexer.Token, i int, expected register.DataType) (Value, int, *source.Error) {
	var (
		name = tokens[i].Text
		kind = "function"
	)
	//
	args, n, ok := ast.SplitArguments(tokens[i+2:])
	if !ok {
		return Value{}, 0, s.errorf(source.PARSE_ERROR, "expected operator ')' to close call to '%s'", name)
	}
	//
	returns, err := s.returnType(name)
	//
	if err != nil {
		return Value{}, 0, err
	} else if isMacro(name) {
		kind = "macro"
	}
	//
	if returns == nil {
		return Value{}, 0, s.errorf(source.TYPE_ERROR, "attempted to get return value of %s '%s', but it does not "+
			"return anything", kind, name)
	} else if *returns != expected {
		return Value{}, 0, s.errorf(source.TYPE_ERROR, "expected expression to evaluate to '%s', but the return "+
			"type of '%s' is '%s'", expected, name, returns)
	}
	//
	var value = Register(register.Accumulator(expected.Width))
	//
	if isMacro(name) {
		value, err = s.callMacro(name, args)
	} else {
		_, err = s.callFunction(name, args)
	}
	//
	return value, i + 2 + n, err
}

// Determine the return type of a function or macro, which may be nil.
func (s *State) returnType(name string) (*register.DataType, *source.Error) {
	if isMacro(name) {
		m, ok := lookupMacro(name)
		if !ok {
			return nil, s.errorf(source.UNDEFINED_SYMBOL, "macro '%s' does not exist", name)
		}
		//
		return m.Returns, nil
	}
	//
	sig, ok := s.functions[name]
	if !ok {
		return nil, s.errorf(source.UNDEFINED_SYMBOL, "undefined function '%s'", name)
	}
	//
	return sig.Return, nil
}

// Evaluate an integer literal.  Literals can be used at any width, but a notice
// is raised when the value does not fit.
func (s *State) number(text string, negative bool, expected register.DataType, next int) (Value, int,
	*source.Error) {
	val, ok := parseNumber(text)
	if !ok {
		return Value{}, 0, s.errorf(source.PARSE_ERROR, "invalid int literal '%s'", text)
	} else if negative {
		val.Neg(val)
	}
	//
	if !expected.Fits(val) {
		s.notice("int literal '%s' does not fit in type '%s'", val.String(), expected)
	}
	//
	return Immediate(val, expected.Width), next, nil
}

// Apply an arithmetic operator to the scratch register.
func (s *State) apply(op string, scratch string, value Value) {
	var (
		fn = s.current
		w  = register.WidthOf(scratch)
	)
	// Ensure the operand can be encoded
	if value.Kind == LABEL || value.IsWide() {
		aux := register.Auxiliary(w)
		s.load(aux, value)
		value = Register(aux)
	}
	//
	switch op {
	case "+":
		fn.emit("add %s, %s", scratch, value)
	case "-":
		fn.emit("sub %s, %s", scratch, value)
	case "*":
		if w != register.BYTE {
			fn.emit("imul %s, %s", scratch, value)
		} else if value.Kind == IMMEDIATE {
			// No 8-bit form exists, hence widen.  The low byte is unaffected.
			fn.emit("imul %s, %s", register.Resize(scratch, register.WORD), value)
		} else {
			aux := register.Auxiliary(register.WORD)
			fn.emit("movsx %s, %s", aux, value)
			fn.emit("imul %s, %s", register.Resize(scratch, register.WORD), aux)
		}
	case "/":
		var (
			acc = register.Accumulator(w)
			aux = register.Auxiliary(w)
		)
		//
		s.load(aux, value)
		fn.emit("mov %s, %s", acc, scratch)
		fn.emit("%s", register.SignExtend(w))
		fn.emit("idiv %s", aux)
		fn.emit("mov %s, %s", scratch, acc)
	default:
		panic("unknown arithmetic operator " + op)
	}
}

// Parse an integer literal, which may be hexadecimal ("0x"), binary ("0b") or
// decimal, and may contain '_' separators.
func parseNumber(text string) (*big.Int, bool) {
	var (
		val  big.Int
		base = 10
	)
	//
	text = strings.ReplaceAll(text, "_", "")
	//
	switch {
	case strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X"):
		base, text = 16, text[2:]
	case strings.HasPrefix(text, "0b") || strings.HasPrefix(text, "0B"):
		base, text = 2, text[2:]
	}
	//
	if _, ok := val.SetString(text, base); !ok {
		return nil, false
	}
	//
	return &val, true
}

func isArithmetic(tok lexer.Token) bool {
	return tok.IsOperator("+") || tok.IsOperator("-") || tok.IsOperator("*") || tok.IsOperator("/")
}

// Check whether a call starts at a given position.
func isCall(tokens []lexer.Token, i int) bool {
	return i+1 < len(tokens) && tokens[i].Kind == lexer.IDENTIFIER && tokens[i+1].IsOperator("(")
}

func isMacro(name string) bool {
	return strings.HasSuffix(name, "!")
}
