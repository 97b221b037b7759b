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
	"fmt"

	"github.com/consensys/go-catlang/pkg/catlang/ast"
	"github.com/consensys/go-catlang/pkg/catlang/register"
	"github.com/consensys/go-catlang/pkg/util/source"
)

// Generate a call to a given function.  Every argument is evaluated before any
// is moved into its register, since evaluating one argument (e.g. a nested
// call) could otherwise clobber a register holding an earlier one.
func (s *State) callFunction(name string, args []ast.Expression) (*Signature, *source.Error) {
	fn := s.current
	//
	sig, ok := s.functions[name]
	if !ok {
		return nil, s.errorf(source.UNDEFINED_SYMBOL, "undefined function '%s'", name)
	} else if len(args) != len(sig.Params) {
		return nil, s.arityError("function", name, len(sig.Params), len(sig.Params), len(args))
	}
	//
	queue, err := s.evaluateArguments(args, sig.Params)
	if err != nil {
		return nil, err
	}
	// Flush the queue
	for i, value := range queue {
		reg, _ := register.Argument(i, value.Width)
		s.load(reg, value)
	}
	// Variadic callees expect the number of vector registers used in al.
	fn.emit("xor eax, eax")
	fn.emit("call %s", name)
	//
	fn.calls = true
	//
	return sig, nil
}

// Evaluate a sequence of arguments against their expected types.  Any which end
// up in a register are spilled to the stack, so that they survive the
// evaluation of later arguments.
func (s *State) evaluateArguments(args []ast.Expression, types []register.DataType) ([]Value, *source.Error) {
	queue := make([]Value, len(args))
	//
	for i, arg := range args {
		value, err := s.evaluate(arg, types[i])
		if err != nil {
			return nil, err
		} else if value.Kind == REGISTER {
			value = s.spill(value)
		}
		//
		queue[i] = value
	}
	//
	return queue, nil
}

// Construct an error for a call with the wrong number of arguments.
func (s *State) arityError(kind string, name string, lowest int, highest int, given int) *source.Error {
	var expected string
	//
	switch {
	case lowest != highest:
		expected = fmt.Sprintf("between %d and %d arguments", lowest, highest)
	case lowest == 1:
		expected = "1 argument"
	default:
		expected = fmt.Sprintf("%d arguments", lowest)
	}
	//
	verb := "were"
	if given == 1 {
		verb = "was"
	}
	//
	return s.errorf(source.ARITY_ERROR, "%s '%s' accepts %s but %d %s given", kind, name, expected, given, verb)
}
