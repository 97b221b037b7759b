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
	"slices"
	"strings"

	"github.com/consensys/go-catlang/pkg/catlang/register"
	"github.com/consensys/go-catlang/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Signature describes the parameters and return type of a function.
type Signature struct {
	Params []register.DataType
	// Return type, or nil if the function does not return a value.
	Return *register.DataType
	// Set once a body has been generated for this function.
	Defined bool
}

// Equals checks whether two signatures have the same parameter and return
// types.
func (p *Signature) Equals(other *Signature) bool {
	if !slices.Equal(p.Params, other.Params) {
		return false
	} else if p.Return == nil || other.Return == nil {
		return p.Return == other.Return
	}
	//
	return *p.Return == *other.Return
}

// State holds everything accumulated during the generation of a single
// compilation unit.  A state should not be reused across compilations.
type State struct {
	// Current line (counting from 1)
	line int64
	// Entries of the data section
	data []string
	// Generated functions
	text strings.Builder
	// Functions declared by prototype, in order of declaration.
	externs []string
	// Global function table
	functions map[string]*Signature
	// Function currently being generated (or nil at the top level).
	current *Function
	// Counters for branch labels and string literals
	labels   uint
	literals uint
	// Advisory messages raised so far
	notices []source.Notice
}

// NewState constructs an empty generator state.
func NewState() *State {
	return &State{line: 1, functions: make(map[string]*Signature)}
}

// Line returns the line currently being generated.
func (s *State) Line() int64 {
	return s.line
}

// Notices returns the advisory messages raised during generation.
func (s *State) Notices() []source.Notice {
	return s.notices
}

// Function returns the signature of a given function, if it has been declared.
func (s *State) Function(name string) (*Signature, bool) {
	sig, ok := s.functions[name]
	return sig, ok
}

// Assembly returns the generated assembly, with the data section first.
// Functions which were declared by prototype, but never defined, are declared
// as external symbols.
func (s *State) Assembly() string {
	var out strings.Builder
	//
	out.WriteString("section .data\n")
	//
	for _, entry := range s.data {
		out.WriteString(entry)
		out.WriteString("\n")
	}
	//
	out.WriteString("section .text\n")
	//
	for _, name := range s.externs {
		if !s.functions[name].Defined {
			fmt.Fprintf(&out, "extern %s\n", name)
		}
	}
	//
	out.WriteString(s.text.String())
	//
	return out.String()
}

// Add a string literal to the data section, returning its label.
func (s *State) literal(text string) string {
	label := fmt.Sprintf("L%d", s.literals)
	s.literals++
	// Backquoted strings interpret escapes, hence only the quote itself needs
	// escaping.
	text = strings.ReplaceAll(text, "`", "\\`")
	s.data = append(s.data, fmt.Sprintf("\t%s: db `%s`, 0", label, text))
	//
	return label
}

// Allocate a fresh branch label.
func (s *State) newLabel() string {
	label := fmt.Sprintf(".L%d", s.labels)
	s.labels++
	//
	return label
}

// Raise an advisory message on the current line.
func (s *State) notice(format string, args ...any) {
	notice := source.Notice{Line: s.line, Message: fmt.Sprintf(format, args...)}
	log.Warn(notice.String())
	s.notices = append(s.notices, notice)
}

func (s *State) errorf(kind source.ErrorKind, format string, args ...any) *source.Error {
	return source.Errorf(kind, s.line, format, args...)
}
