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
package register

import (
	"math/big"
)

// Width identifies the physical width class of a value.
type Width uint8

// BYTE is an 8-bit value
const BYTE Width = 0

// WORD is a 16-bit value
const WORD Width = 1

// DWORD is a 32-bit value
const DWORD Width = 2

// QWORD is a 64-bit value
const QWORD Width = 3

// String returns the assembler size specifier for this width.
func (w Width) String() string {
	switch w {
	case BYTE:
		return "byte"
	case WORD:
		return "word"
	case DWORD:
		return "dword"
	case QWORD:
		return "qword"
	default:
		panic("unknown width")
	}
}

// Bytes returns the number of bytes occupied by a value of this width.
func (w Width) Bytes() int {
	return 1 << w
}

// DataType describes one of the (fixed) signed integer types of the language.
type DataType struct {
	// Name of this type as written in source (e.g. "i32")
	Name string
	// Physical width class
	Width Width
}

// I8 is the 8-bit signed integer type.
var I8 = DataType{"i8", BYTE}

// I16 is the 16-bit signed integer type.
var I16 = DataType{"i16", WORD}

// I32 is the 32-bit signed integer type.  This is the type given to integer
// literals when no other type is known.
var I32 = DataType{"i32", DWORD}

// I64 is the 64-bit signed integer type.  This is the pointer-width type, and
// hence the type of string literals.
var I64 = DataType{"i64", QWORD}

// TYPES identifies all available data types.
var TYPES = []DataType{I8, I16, I32, I64}

// Lookup a data type by its source name.
func Lookup(name string) (DataType, bool) {
	for _, t := range TYPES {
		if t.Name == name {
			return t, true
		}
	}
	//
	return DataType{}, false
}

// Size returns the number of bytes occupied by a value of this type.
func (t DataType) Size() int {
	return t.Width.Bytes()
}

// Fits checks whether a given value can be represented by this type.
func (t DataType) Fits(value *big.Int) bool {
	var (
		bits  = uint(t.Size() * 8)
		upper = new(big.Int).Lsh(big.NewInt(1), bits-1)
		lower = new(big.Int).Neg(upper)
	)
	// Unsigned interpretations are also accepted (e.g. 0xFF for an i8)
	unsigned := new(big.Int).Lsh(big.NewInt(1), bits)
	//
	return value.Cmp(lower) >= 0 && value.Cmp(unsigned) < 0
}

func (t DataType) String() string {
	return t.Name
}
