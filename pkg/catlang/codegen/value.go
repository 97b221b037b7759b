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
	"math"
	"math/big"

	"github.com/consensys/go-catlang/pkg/catlang/register"
)

// IMMEDIATE signals a constant operand.
const IMMEDIATE uint = 0

// LABEL signals the address of a data section entry.
const LABEL uint = 1

// MEMORY signals a stack slot.
const MEMORY uint = 2

// REGISTER signals a value held in a register.
const REGISTER uint = 3

// Value describes where the result of evaluating an expression can be found.
type Value struct {
	Kind uint
	// Operand as it should appear in an instruction.  For memory operands this
	// includes the size keyword (e.g. "dword [rbp-12]").
	Operand string
	// Width of the value
	Width register.Width
}

// Immediate constructs a constant value.
func Immediate(value *big.Int, w register.Width) Value {
	return Value{IMMEDIATE, value.String(), w}
}

// Register constructs a value held in a given register.
func Register(reg string) Value {
	return Value{REGISTER, reg, register.WidthOf(reg)}
}

// InRegister checks whether this value is held in a given register family.
func (v Value) InRegister(reg string) bool {
	return v.Kind == REGISTER && register.Resize(v.Operand, register.QWORD) == register.Resize(reg, register.QWORD)
}

// IsWide checks whether this value is an immediate which cannot be encoded as a
// (sign-extended) 32-bit operand, hence must first be loaded into a register.
func (v Value) IsWide() bool {
	if v.Kind != IMMEDIATE || v.Width != register.QWORD {
		return false
	}
	//
	var val big.Int
	//
	val.SetString(v.Operand, 10)
	//
	return !val.IsInt64() || val.Int64() < math.MinInt32 || val.Int64() > math.MaxInt32
}

func (v Value) String() string {
	return v.Operand
}

// Variable describes a local variable (or parameter) held in the stack frame.
type Variable struct {
	Name string
	// Offset below the frame pointer
	Offset int
	Type   register.DataType
}

// Address returns the address of this variable, without a size keyword.
func (v Variable) Address() string {
	return fmt.Sprintf("[rbp-%d]", v.Offset)
}

// Value returns this variable as a memory operand.
func (v Variable) Value() Value {
	return Value{MEMORY, fmt.Sprintf("%s %s", v.Type.Width.String(), v.Address()), v.Type.Width}
}
