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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name  string
		width Width
		size  int
		spec  string
	}{
		{"i8", BYTE, 1, "byte"},
		{"i16", WORD, 2, "word"},
		{"i32", DWORD, 4, "dword"},
		{"i64", QWORD, 8, "qword"},
	}
	//
	for _, tt := range tests {
		datatype, ok := Lookup(tt.name)
		//
		assert.True(t, ok, tt.name)
		assert.Equal(t, tt.width, datatype.Width)
		assert.Equal(t, tt.size, datatype.Size())
		assert.Equal(t, tt.spec, datatype.Width.String())
		assert.Equal(t, tt.name, datatype.String())
	}
	//
	for _, name := range []string{"u8", "i128", "int", ""} {
		_, ok := Lookup(name)
		assert.False(t, ok, name)
	}
}

func TestArgumentRegisters(t *testing.T) {
	expected := map[Width][]string{
		BYTE:  {"dil", "sil", "dl", "cl", "r8b", "r9b"},
		WORD:  {"di", "si", "dx", "cx", "r8w", "r9w"},
		DWORD: {"edi", "esi", "edx", "ecx", "r8d", "r9d"},
		QWORD: {"rdi", "rsi", "rdx", "rcx", "r8", "r9"},
	}
	//
	for w, names := range expected {
		for i, name := range names {
			reg, ok := Argument(i, w)
			assert.True(t, ok)
			assert.Equal(t, name, reg)
		}
		//
		_, ok := Argument(MaxArguments, w)
		assert.False(t, ok)
	}
}

func TestSyscallRegisters(t *testing.T) {
	expected := []string{"rax", "rdi", "rsi", "rdx", "r10", "r8", "r9"}
	//
	for i, name := range expected {
		reg, ok := Syscall(i)
		assert.True(t, ok)
		assert.Equal(t, name, reg)
	}
	//
	_, ok := Syscall(MaxSyscallArguments)
	assert.False(t, ok)
}

func TestFixedRegisters(t *testing.T) {
	assert.Equal(t, "eax", Accumulator(DWORD))
	assert.Equal(t, "al", Accumulator(BYTE))
	assert.Equal(t, "rbx", Scratch(QWORD))
	assert.Equal(t, "bx", Scratch(WORD))
	assert.Equal(t, "r11d", Auxiliary(DWORD))
	assert.Equal(t, "r11b", Auxiliary(BYTE))
	assert.Equal(t, "cdq", SignExtend(DWORD))
	assert.Equal(t, "cqo", SignExtend(QWORD))
	assert.Equal(t, "cbw", SignExtend(BYTE))
}

func TestResize(t *testing.T) {
	assert.Equal(t, "rax", Resize("eax", QWORD))
	assert.Equal(t, "r11w", Resize("r11", WORD))
	assert.Equal(t, BYTE, WidthOf("sil"))
	assert.True(t, IsRegister("ebx"))
	assert.False(t, IsRegister("[rbp-12]"))
	assert.False(t, IsRegister("L0"))
	assert.Panics(t, func() { Resize("xmm0", QWORD) })
}

func TestFits(t *testing.T) {
	assert.True(t, I8.Fits(big.NewInt(127)))
	assert.True(t, I8.Fits(big.NewInt(-128)))
	assert.True(t, I8.Fits(big.NewInt(255)))
	assert.False(t, I8.Fits(big.NewInt(256)))
	assert.False(t, I8.Fits(big.NewInt(-129)))
	assert.True(t, I32.Fits(big.NewInt(2147483647)))
	assert.False(t, I32.Fits(big.NewInt(1<<32)))
	assert.True(t, I64.Fits(big.NewInt(1<<40)))
}
