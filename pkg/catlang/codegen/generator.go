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
	"github.com/consensys/go-catlang/pkg/catlang/register"
	"github.com/consensys/go-catlang/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Generate assembly for a given block, accumulating the result in the given
// state.  Generation stops at the first error, which is returned with the line
// on which it arose.
func Generate(state *State, block ast.BlockStatement) *source.Error {
	for _, node := range block {
		if err := state.generate(node); err != nil {
			return err
		}
	}
	//
	return nil
}

func (s *State) generate(node ast.Node) *source.Error {
	switch n := node.(type) {
	case *ast.Newline:
		s.line++
		return nil
	case *ast.FunctionDefinition:
		return s.generateFunction(n)
	case *ast.FunctionPrototype:
		return s.generatePrototype(n)
	}
	// Everything else must be within a function body
	if s.current == nil {
		return s.errorf(source.PARSE_ERROR, "%s outside of a function", describe(node))
	}
	//
	switch n := node.(type) {
	case *ast.ReturnStatement:
		return s.generateReturn(n)
	case *ast.IfStatement:
		return s.generateIf(n)
	case *ast.VariableDefinition:
		return s.generateLet(n)
	case *ast.VariableAssignment:
		return s.generateAssignment(n)
	case *ast.MacroCall:
		_, err := s.callMacro(n.Name, n.Args)
		return err
	case *ast.FunctionCall:
		_, err := s.callFunction(n.Name, n.Args)
		return err
	default:
		panic("unknown node encountered")
	}
}

// ============================================================================
// Functions
// ============================================================================

func (s *State) generatePrototype(n *ast.FunctionPrototype) *source.Error {
	sig, err := s.signature(n.Name, n.ParamTypes, n.ReturnType)
	if err != nil {
		return err
	}
	//
	if existing, ok := s.functions[n.Name]; ok {
		if !existing.Equals(sig) {
			return s.errorf(source.REDEFINITION, "conflicting declaration of function '%s'", n.Name)
		}
		// Redeclaring an identical signature is permitted.
		return nil
	}
	//
	s.functions[n.Name] = sig
	s.externs = append(s.externs, n.Name)
	//
	return nil
}

func (s *State) generateFunction(n *ast.FunctionDefinition) *source.Error {
	if s.current != nil {
		return s.errorf(source.PARSE_ERROR, "function '%s' cannot be defined inside function '%s'", n.Name,
			s.current.Name())
	}
	//
	sig, err := s.signature(n.Name, n.ParamTypes, n.ReturnType)
	if err != nil {
		return err
	}
	//
	if existing, ok := s.functions[n.Name]; ok && existing.Defined {
		return s.errorf(source.REDEFINITION, "function '%s' is already defined", n.Name)
	} else if ok && !existing.Equals(sig) {
		return s.errorf(source.REDEFINITION, "definition of function '%s' conflicts with its declaration", n.Name)
	} else if ok {
		sig = existing
	}
	// Register before the body, so that recursive calls resolve.
	sig.Defined = true
	s.functions[n.Name] = sig
	//
	fn := newFunction(n.Name, sig)
	s.current = fn
	fn.enterScope()
	// Spill parameters into the frame
	for i, name := range n.ParamNames {
		v, ok := fn.declare(name, sig.Params[i])
		if !ok {
			return s.errorf(source.REDEFINITION, "parameter '%s' is declared twice in function '%s'", name, n.Name)
		}
		//
		reg, _ := register.Argument(i, v.Type.Width)
		fn.emit("mov %s, %s", v.Value(), reg)
	}
	//
	if err := Generate(s, n.Body); err != nil {
		return err
	}
	// Falling off the end returns
	if !fn.endsWithEpilogue() {
		fn.epilogue()
	}
	//
	fn.exitScope()
	//
	log.Debugf("function %s uses %d bytes of stack (frame adjustment %d)", n.Name, fn.StackSize(),
		fn.FrameAdjustment())
	//
	fn.Render(&s.text)
	s.current = nil
	//
	return nil
}

// Resolve the signature of a function.
func (s *State) signature(name string, params []string, returns *string) (*Signature, *source.Error) {
	var sig Signature
	//
	if len(params) > register.MaxArguments {
		return nil, s.errorf(source.ARITY_ERROR, "function '%s' declares %d parameters, but at most %d are supported",
			name, len(params), register.MaxArguments)
	}
	//
	for _, param := range params {
		datatype, err := s.resolveType(param)
		if err != nil {
			return nil, err
		}
		//
		sig.Params = append(sig.Params, datatype)
	}
	//
	if returns != nil {
		datatype, err := s.resolveType(*returns)
		if err != nil {
			return nil, err
		}
		//
		sig.Return = &datatype
	}
	//
	return &sig, nil
}

func (s *State) resolveType(name string) (register.DataType, *source.Error) {
	if datatype, ok := register.Lookup(name); ok {
		return datatype, nil
	}
	//
	return register.DataType{}, s.errorf(source.TYPE_ERROR, "'%s' is not a valid type", name)
}

// ============================================================================
// Statements
// ============================================================================

func (s *State) generateReturn(n *ast.ReturnStatement) *source.Error {
	fn := s.current
	returns := fn.signature.Return
	//
	switch {
	case returns == nil && !n.Expr.IsEmpty():
		return s.errorf(source.TYPE_ERROR, "attempted to return a value from function '%s', which does not return "+
			"anything, did you forget to specify the return type in the signature?", fn.Name())
	case returns != nil && n.Expr.IsEmpty():
		return s.errorf(source.TYPE_ERROR, "function '%s' must return a value of type '%s'", fn.Name(), returns)
	case returns != nil:
		value, err := s.evaluate(n.Expr, *returns)
		if err != nil {
			return err
		}
		//
		s.load(register.Accumulator(returns.Width), value)
	}
	//
	fn.epilogue()
	//
	return nil
}

func (s *State) generateIf(n *ast.IfStatement) *source.Error {
	fn := s.current
	// Type of comparison is determined by the left-hand side
	datatype, err := s.infer(n.Left)
	if err != nil {
		return err
	}
	//
	left, err := s.evaluate(n.Left, datatype)
	if err != nil {
		return err
	} else if left.Kind == REGISTER {
		// Evaluating the right-hand side could clobber this
		left = s.spill(left)
	}
	//
	right, err := s.evaluate(n.Right, datatype)
	if err != nil {
		return err
	}
	//
	acc := register.Accumulator(datatype.Width)
	// Right-hand side must be a valid source operand which survives loading the
	// left-hand side.
	if right.Kind == LABEL || right.IsWide() || right.InRegister(acc) {
		aux := register.Auxiliary(datatype.Width)
		s.load(aux, right)
		right = Register(aux)
	}
	//
	s.load(acc, left)
	fn.emit("cmp %s, %s", acc, right)
	// Branch over the body when the condition does not hold
	label := s.newLabel()
	fn.emit("%s %s", jump(n.Operator.Negate()), label)
	//
	fn.enterScope()
	//
	if err := Generate(s, n.Body); err != nil {
		return err
	}
	//
	fn.exitScope()
	fn.label(label)
	//
	return nil
}

func (s *State) generateLet(n *ast.VariableDefinition) *source.Error {
	var (
		fn       = s.current
		datatype register.DataType
		value    Value
		err      *source.Error
	)
	//
	if n.Type != nil {
		datatype, err = s.resolveType(*n.Type)
	} else {
		datatype, err = s.infer(*n.Init)
	}
	//
	if err != nil {
		return err
	} else if fn.declaredInScope(n.Name) {
		return s.errorf(source.REDEFINITION, "variable '%s' is already defined in this scope", n.Name)
	}
	// Initialiser is evaluated before the variable comes into scope
	if n.Init != nil {
		if value, err = s.evaluate(*n.Init, datatype); err != nil {
			return err
		}
	}
	//
	v, ok := fn.declare(n.Name, datatype)
	if !ok {
		panic("variable declared during evaluation of its initialiser")
	}
	//
	if n.Init != nil {
		s.store(v, value)
	}
	//
	return nil
}

func (s *State) generateAssignment(n *ast.VariableAssignment) *source.Error {
	v, ok := s.current.lookup(n.Name)
	if !ok {
		return s.errorf(source.UNDEFINED_SYMBOL, "attempted to assign a value to variable '%s', but it is not "+
			"defined in the current scope", n.Name)
	}
	//
	value, err := s.evaluate(n.Expr, v.Type)
	if err != nil {
		return err
	}
	//
	s.store(v, value)
	//
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

// Store a value into a variable.
func (s *State) store(v Variable, value Value) {
	var (
		fn  = s.current
		dst = v.Value()
	)
	//
	switch {
	case value.Kind == MEMORY && value.Operand == dst.Operand:
		// nothing to do
	case value.Kind == MEMORY || value.Kind == LABEL || value.IsWide():
		// Route through the accumulator
		acc := register.Accumulator(v.Type.Width)
		s.load(acc, value)
		fn.emit("mov %s, %s", dst, acc)
	default:
		fn.emit("mov %s, %s", dst, value)
	}
}

// Load a value into a given register.
func (s *State) load(reg string, value Value) {
	fn := s.current
	//
	switch {
	case value.Kind == LABEL:
		fn.emit("lea %s, [rel %s]", register.Resize(reg, register.QWORD), value)
	case value.Kind == REGISTER && value.Operand == reg:
		// already there
	default:
		fn.emit("mov %s, %s", reg, value)
	}
}

// Spill a value into a fresh stack slot, returning that slot.
func (s *State) spill(value Value) Value {
	tmp := s.current.temporary(register.TYPES[value.Width])
	s.store(tmp, value)
	//
	return tmp.Value()
}

// Determine the conditional jump taken when a comparison holds.
func jump(op ast.CmpOp) string {
	switch op {
	case ast.EQ:
		return "je"
	case ast.NEQ:
		return "jne"
	case ast.GT:
		return "jg"
	case ast.GTEQ:
		return "jge"
	case ast.LT:
		return "jl"
	default:
		return "jle"
	}
}

// Describe a statement for use in error messages.
func describe(node ast.Node) string {
	switch node.(type) {
	case *ast.ReturnStatement:
		return "return statement"
	case *ast.IfStatement:
		return "if statement"
	case *ast.VariableDefinition:
		return "variable definition"
	case *ast.VariableAssignment:
		return "variable assignment"
	case *ast.MacroCall:
		return "macro call"
	default:
		return "function call"
	}
}
