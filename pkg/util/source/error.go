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
package source

import (
	"fmt"
)

// ErrorKind classifies the errors which can arise during compilation.
type ErrorKind uint8

// LEX_ERROR signals an unrecognised run of characters.
const LEX_ERROR ErrorKind = 0

// PARSE_ERROR signals a structural grammar violation.
const PARSE_ERROR ErrorKind = 1

// TYPE_ERROR signals a mismatch between an expected and an actual data type.
const TYPE_ERROR ErrorKind = 2

// ARITY_ERROR signals the wrong number of arguments to a function or macro.
const ARITY_ERROR ErrorKind = 3

// UNDEFINED_SYMBOL signals a reference to an unknown function, macro or
// variable.
const UNDEFINED_SYMBOL ErrorKind = 4

// REDEFINITION signals a name declared twice in the same namespace.
const REDEFINITION ErrorKind = 5

func (k ErrorKind) String() string {
	switch k {
	case LEX_ERROR:
		return "lex error"
	case PARSE_ERROR:
		return "parse error"
	case TYPE_ERROR:
		return "type error"
	case ARITY_ERROR:
		return "arity error"
	case UNDEFINED_SYMBOL:
		return "undefined symbol"
	case REDEFINITION:
		return "redefinition"
	default:
		return "unknown error"
	}
}

// Error is a structured compilation error which retains the source line on
// which it arose, along with an error message.  Errors are terminal: the first
// one encountered is returned through every layer of the compiler.
type Error struct {
	kind ErrorKind
	// Line number (counting from 1) current when the error arose.
	line int64
	// Error message being reported
	msg string
}

// NewError constructs a new error of a given kind on a given line.
func NewError(kind ErrorKind, line int64, msg string) *Error {
	return &Error{kind, line, msg}
}

// Errorf constructs a new error of a given kind on a given line, whose message
// is formatted according to a format specifier.
func Errorf(kind ErrorKind, line int64, format string, args ...any) *Error {
	return &Error{kind, line, fmt.Sprintf(format, args...)}
}

// Kind returns the classification of this error.
func (p *Error) Kind() ErrorKind {
	return p.kind
}

// Line returns the line number on which this error arose.
func (p *Error) Line() int64 {
	return p.line
}

// Message returns the message to be reported.
func (p *Error) Message() string {
	return p.msg
}

// At returns a copy of this error relocated by a given number of lines.  This
// is used when a nested region (e.g. a block statement) was processed with its
// own line counter.
func (p *Error) At(offset int64) *Error {
	return &Error{p.kind, p.line + offset, p.msg}
}

// Error implements the error interface.
func (p *Error) Error() string {
	return fmt.Sprintf("[line %d] %s", p.line, p.msg)
}

// Notice is an advisory message raised during compilation.  Unlike an error, a
// notice does not stop compilation.
type Notice struct {
	// Line number on which the notice was raised.
	Line int64
	// Message being reported
	Message string
}

func (p Notice) String() string {
	return fmt.Sprintf("[line %d] %s", p.Line, p.Message)
}
