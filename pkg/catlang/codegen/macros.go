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
	"strings"

	"github.com/consensys/go-catlang/pkg/catlang/ast"
	"github.com/consensys/go-catlang/pkg/catlang/lexer"
	"github.com/consensys/go-catlang/pkg/catlang/register"
	"github.com/consensys/go-catlang/pkg/util/source"
	"github.com/consensys/go-catlang/pkg/util/source/lex"
)

// Macro describes a built-in macro.  The set of macros is fixed.
type Macro struct {
	Name string
	// Bounds on the number of arguments
	MinArgs int
	MaxArgs int
	// Return type, or nil if the macro does not produce a value.
	Returns *register.DataType
	// Emits the macro, returning its value (if any).
	emit func(*State, []ast.Expression) (Value, *source.Error)
}

var macros map[string]*Macro

func init() {
	macros = make(map[string]*Macro)
	//
	for _, m := range []*Macro{
		{"asm!", 1, 1, nil, asmMacro},
		{"syscall!", 1, register.MaxSyscallArguments, &register.I64, syscallMacro},
		{"typeof!", 1, 1, &register.I64, typeofMacro},
	} {
		macros[m.Name] = m
	}
}

func lookupMacro(name string) (*Macro, bool) {
	m, ok := macros[name]
	return m, ok
}

// Generate a call to a given macro.
func (s *State) callMacro(name string, args []ast.Expression) (Value, *source.Error) {
	m, ok := lookupMacro(name)
	//
	if !ok {
		return Value{}, s.errorf(source.UNDEFINED_SYMBOL, "macro '%s' does not exist", name)
	} else if len(args) < m.MinArgs || len(args) > m.MaxArgs {
		return Value{}, s.arityError("macro", name, m.MinArgs, m.MaxArgs, len(args))
	}
	//
	return m.emit(s, args)
}

// ============================================================================
// syscall!
// ============================================================================

// Invoke a system call, where the first argument is the syscall number.  The
// result is left in the accumulator.
func syscallMacro(s *State, args []ast.Expression) (Value, *source.Error) {
	var (
		fn    = s.current
		types = make([]register.DataType, len(args))
	)
	//
	for i := range types {
		types[i] = register.I64
	}
	//
	queue, err := s.evaluateArguments(args, types)
	if err != nil {
		return Value{}, err
	}
	//
	for i, value := range queue {
		reg, _ := register.Syscall(i)
		s.load(reg, value)
	}
	//
	fn.emit("syscall")
	//
	return Register(register.Accumulator(register.QWORD)), nil
}

// ============================================================================
// typeof!
// ============================================================================

// Produce a string naming the declared type of a variable.
func typeofMacro(s *State, args []ast.Expression) (Value, *source.Error) {
	tokens := args[0].Tokens
	//
	if len(tokens) != 1 || tokens[0].Kind != lexer.IDENTIFIER {
		return Value{}, s.errorf(source.PARSE_ERROR, "expected a variable name in call to macro 'typeof!'")
	}
	//
	v, ok := s.current.lookup(tokens[0].Text)
	if !ok {
		return Value{}, s.errorf(source.UNDEFINED_SYMBOL, "variable '%s' is not defined in the current scope",
			tokens[0].Text)
	}
	//
	return Value{LABEL, s.literal(v.Type.Name), register.QWORD}, nil
}

// ============================================================================
// asm!
// ============================================================================

// Emit inline assembly.  The contents are not checked, except that "{name}"
// is replaced by the stack address of the given variable, and ';' separates
// instructions.
func asmMacro(s *State, args []ast.Expression) (Value, *source.Error) {
	var (
		fn     = s.current
		tokens = args[0].Tokens
	)
	//
	if len(tokens) != 1 || tokens[0].Kind != lexer.STRING {
		return Value{}, s.errorf(source.TYPE_ERROR, "expected a string literal in call to macro 'asm!'")
	}
	//
	instructions, err := s.expandAssembly(tokens[0].Text)
	if err != nil {
		return Value{}, err
	}
	//
	for _, inst := range instructions {
		fn.emit("%s", inst)
	}
	// Inline assembly may push onto the stack, or call.
	fn.calls = true
	//
	s.notice("macro 'asm!' is unstable, inline assembly is emitted without being checked")
	//
	return Value{}, nil
}

// ASM_WHITESPACE signals spaces and tabs.
const ASM_WHITESPACE uint = 0

// ASM_VARIABLE signals a "{name}" reference to a variable.
const ASM_VARIABLE uint = 1

// ASM_SEPARATOR signals a ';' between instructions.
const ASM_SEPARATOR uint = 2

// ASM_TEXT signals anything else, which is passed through.
const ASM_TEXT uint = 3

var asmRules = []lex.LexRule[rune]{
	lex.Rule(lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'))), ASM_WHITESPACE),
	lex.Rule(lex.Delimited([]rune{'{'}, []rune{'}'}), ASM_VARIABLE),
	lex.Rule(lex.Unit(';'), ASM_SEPARATOR),
	lex.Rule(lex.Many(lex.Not(' ', '\t', '{', '}', ';')), ASM_TEXT),
}

// Expand the text of an asm! macro into a sequence of instructions.
func (s *State) expandAssembly(text string) ([]string, *source.Error) {
	var (
		contents     = []rune(text)
		scanner      = lex.NewLexer(contents, asmRules...)
		instructions []string
		builder      strings.Builder
	)
	//
	for _, tok := range scanner.Collect() {
		fragment := string(contents[tok.Span.Start():tok.Span.End()])
		//
		switch tok.Kind {
		case ASM_VARIABLE:
			name := strings.TrimSpace(fragment[1 : len(fragment)-1])
			//
			v, ok := s.current.lookup(name)
			if !ok {
				return nil, s.errorf(source.UNDEFINED_SYMBOL, "undeclared variable '%s' in asm! macro call", name)
			}
			//
			builder.WriteString(v.Address())
		case ASM_SEPARATOR:
			instructions = appendInstruction(instructions, builder.String())
			builder.Reset()
		default:
			builder.WriteString(fragment)
		}
	}
	//
	if scanner.Remaining() != 0 {
		return nil, s.errorf(source.PARSE_ERROR, "unexpected '%c' in asm! macro call", contents[scanner.Index()])
	}
	//
	instructions = appendInstruction(instructions, builder.String())
	//
	if len(instructions) == 0 {
		return nil, s.errorf(source.PARSE_ERROR, "expected at least one instruction in asm! macro call")
	}
	//
	return instructions, nil
}

func appendInstruction(instructions []string, inst string) []string {
	if inst = strings.TrimSpace(inst); inst != "" {
		return append(instructions, inst)
	}
	//
	return instructions
}
