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
	"strings"

	"github.com/consensys/go-catlang/pkg/catlang/register"
)

// Size of the area below the stack pointer which can be used without adjusting
// it, provided no calls are made.
const redZone = 128

// Offset (below the frame pointer) of the saved scratch register.
const savedScratch = 8

// Marks the position of a function epilogue within the body.
const epilogueMarker = "\x00epilogue"

// Function holds the state of the function currently being generated.  The body
// is buffered until it is complete, since only then is the size of the frame
// known.
type Function struct {
	name      string
	signature *Signature
	// Lines of the body, where epilogues are marked (but not yet written).
	lines []string
	// Innermost scope is last.
	scopes []map[string]Variable
	// Number of bytes in use below the frame pointer.
	stackSize int
	// Set when a call instruction is emitted.
	calls bool
}

func newFunction(name string, signature *Signature) *Function {
	return &Function{name, signature, nil, nil, savedScratch, false}
}

// Name returns the name of this function.
func (p *Function) Name() string {
	return p.name
}

// StackSize returns the number of bytes below the frame pointer used by this
// function, including the saved scratch register.
func (p *Function) StackSize() int {
	return p.stackSize
}

// FrameAdjustment returns the number of bytes by which the stack pointer must
// be lowered on entry, or 0 if no adjustment is required.  When calls are made
// the adjustment ensures the stack is 16-byte aligned at each call site.
func (p *Function) FrameAdjustment() int {
	locals := p.stackSize - savedScratch
	//
	if !p.calls && locals <= redZone {
		return 0
	}
	//
	return align(locals, 16) + 8
}

func (p *Function) emit(format string, args ...any) {
	p.lines = append(p.lines, "\t"+fmt.Sprintf(format, args...))
}

func (p *Function) label(name string) {
	p.lines = append(p.lines, name+":")
}

func (p *Function) epilogue() {
	p.lines = append(p.lines, epilogueMarker)
}

func (p *Function) endsWithEpilogue() bool {
	n := len(p.lines)
	return n > 0 && p.lines[n-1] == epilogueMarker
}

// ============================================================================
// Scopes
// ============================================================================

func (p *Function) enterScope() {
	p.scopes = append(p.scopes, make(map[string]Variable))
}

func (p *Function) exitScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

// Lookup a variable by name, starting from the innermost scope.
func (p *Function) lookup(name string) (Variable, bool) {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if v, ok := p.scopes[i][name]; ok {
			return v, true
		}
	}
	//
	return Variable{}, false
}

// Check whether a variable of the given name is declared in the innermost
// scope.
func (p *Function) declaredInScope(name string) bool {
	_, ok := p.scopes[len(p.scopes)-1][name]
	return ok
}

// Declare a new variable in the innermost scope, allocating a fresh stack slot
// for it.  This fails if the name is already declared in that scope.
func (p *Function) declare(name string, datatype register.DataType) (Variable, bool) {
	if p.declaredInScope(name) {
		return Variable{}, false
	}
	//
	v := p.allocate(name, datatype)
	p.scopes[len(p.scopes)-1][name] = v
	//
	return v, true
}

// Allocate an anonymous stack slot for holding an intermediate value.
func (p *Function) temporary(datatype register.DataType) Variable {
	return p.allocate("", datatype)
}

// Allocate a stack slot below all those allocated so far.  Slots are never
// reused.
func (p *Function) allocate(name string, datatype register.DataType) Variable {
	size := datatype.Size()
	p.stackSize = align(p.stackSize+size, size)
	//
	return Variable{name, p.stackSize, datatype}
}

// ============================================================================
// Rendering
// ============================================================================

// Render writes the complete function (prologue, body and epilogues) to a given
// builder.
func (p *Function) Render(out *strings.Builder) {
	adjustment := p.FrameAdjustment()
	//
	fmt.Fprintf(out, "global %s\n%s:\n", p.name, p.name)
	out.WriteString("\tpush rbp\n")
	out.WriteString("\tmov rbp, rsp\n")
	out.WriteString("\tpush rbx\n")
	//
	if adjustment != 0 {
		fmt.Fprintf(out, "\tsub rsp, %d\n", adjustment)
	}
	//
	for _, line := range p.lines {
		if line != epilogueMarker {
			out.WriteString(line)
			out.WriteString("\n")
		} else if adjustment != 0 {
			fmt.Fprintf(out, "\tmov rbx, [rbp-%d]\n", savedScratch)
			out.WriteString("\tleave\n")
			out.WriteString("\tret\n")
		} else {
			out.WriteString("\tpop rbx\n")
			out.WriteString("\tpop rbp\n")
			out.WriteString("\tret\n")
		}
	}
	//
	out.WriteString("\n")
}

// Round n up to the nearest multiple of m.
func align(n int, m int) int {
	return (n + m - 1) / m * m
}
