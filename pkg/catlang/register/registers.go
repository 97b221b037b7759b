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

// MaxArguments is the number of function arguments which can be passed in
// registers under the calling convention.
const MaxArguments = 6

// MaxSyscallArguments is the number of values (including the syscall number)
// which can be passed to a system call.
const MaxSyscallArguments = 7

// Each family lists the register names for widths BYTE, WORD, DWORD and QWORD.
type family [4]string

var (
	rax = family{"al", "ax", "eax", "rax"}
	rbx = family{"bl", "bx", "ebx", "rbx"}
	rcx = family{"cl", "cx", "ecx", "rcx"}
	rdx = family{"dl", "dx", "edx", "rdx"}
	rsi = family{"sil", "si", "esi", "rsi"}
	rdi = family{"dil", "di", "edi", "rdi"}
	r8  = family{"r8b", "r8w", "r8d", "r8"}
	r9  = family{"r9b", "r9w", "r9d", "r9"}
	r10 = family{"r10b", "r10w", "r10d", "r10"}
	r11 = family{"r11b", "r11w", "r11d", "r11"}
)

var families = []family{rax, rbx, rcx, rdx, rsi, rdi, r8, r9, r10, r11}

// Registers used for passing function arguments, in order.
var arguments = []family{rdi, rsi, rdx, rcx, r8, r9}

// Registers used for passing syscall number and arguments, in order.
var syscalls = []family{rax, rdi, rsi, rdx, r10, r8, r9}

// Accumulator returns the register holding function return values, which also
// serves as the working register for comparisons and division.
func Accumulator(w Width) string {
	return rax[w]
}

// Scratch returns the register in which compound expressions are evaluated.
// This register is callee-saved, hence is preserved across calls.
func Scratch(w Width) string {
	return rbx[w]
}

// Auxiliary returns the temporary register used to hold a divisor.
func Auxiliary(w Width) string {
	return r11[w]
}

// Argument returns the register used to pass the nth argument (counting from 0)
// of a given width, or false if that argument is not passed in a register.
func Argument(n int, w Width) (string, bool) {
	if n < 0 || n >= len(arguments) {
		return "", false
	}
	//
	return arguments[n][w], true
}

// Syscall returns the (64-bit) register used to pass the nth value of a system
// call, where the 0th value is the syscall number itself.
func Syscall(n int) (string, bool) {
	if n < 0 || n >= len(syscalls) {
		return "", false
	}
	//
	return syscalls[n][QWORD], true
}

// SignExtend returns the instruction which sign-extends the accumulator into
// the dividend register(s) ahead of a division of the given width.
func SignExtend(w Width) string {
	switch w {
	case BYTE:
		return "cbw"
	case WORD:
		return "cwd"
	case DWORD:
		return "cdq"
	default:
		return "cqo"
	}
}

// IsRegister checks whether a given operand names a general purpose register.
func IsRegister(operand string) bool {
	_, _, ok := find(operand)
	return ok
}

// Resize returns the name of the register in the same family as a given
// register, but of a different width.
func Resize(reg string, w Width) string {
	if f, _, ok := find(reg); ok {
		return f[w]
	}
	//
	panic("unknown register " + reg)
}

// WidthOf returns the width of a given register.
func WidthOf(reg string) Width {
	if _, w, ok := find(reg); ok {
		return w
	}
	//
	panic("unknown register " + reg)
}

func find(reg string) (family, Width, bool) {
	for _, f := range families {
		for w, name := range f {
			if name == reg {
				return f, Width(w), true
			}
		}
	}
	//
	return family{}, 0, false
}
