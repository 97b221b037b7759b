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
package ast

// Node represents a single statement in the abstract syntax tree.  The set of
// node kinds is closed.
type Node interface {
	node()
}

// BlockStatement is an ordered sequence of statements.  Nesting is expressed
// by containment, e.g. the body of an if statement is itself a block.
type BlockStatement []Node

// FunctionDefinition defines a function with a body.
type FunctionDefinition struct {
	Name string
	// Names of the parameters, in order.
	ParamNames []string
	// Declared types of the parameters, in order.
	ParamTypes []string
	// Declared return type, or nil if the function returns nothing.
	ReturnType *string
	Body       BlockStatement
}

// FunctionPrototype declares the signature of an externally defined function.
type FunctionPrototype struct {
	Name       string
	ParamTypes []string
	ReturnType *string
}

// ReturnStatement returns the value of an expression from the enclosing
// function.
type ReturnStatement struct {
	Expr Expression
}

// IfStatement executes its body when a comparison between two expressions
// holds.
type IfStatement struct {
	Left     Expression
	Operator CmpOp
	Right    Expression
	Body     BlockStatement
}

// VariableDefinition declares a new local variable.  Either the type or the
// initialiser may be omitted (but not both).
type VariableDefinition struct {
	Name string
	// Declared type, or nil if it should be inferred from the initialiser.
	Type *string
	// Initialiser, or nil if the variable is left uninitialised.
	Init *Expression
}

// VariableAssignment assigns a new value to an existing variable.  Compound
// assignments (e.g. "x += 1") are desugared into plain assignments by the
// parser.
type VariableAssignment struct {
	Name string
	Expr Expression
}

// MacroCall invokes one of the built-in macros (whose names end in '!').
type MacroCall struct {
	Name string
	Args []Expression
}

// FunctionCall invokes a function, discarding any value it returns.
type FunctionCall struct {
	Name string
	Args []Expression
}

// Newline marks the end of a source line, allowing the line number to be
// tracked without needing to re-lex.
type Newline struct{}

func (*FunctionDefinition) node() {}
func (*FunctionPrototype) node()  {}
func (*ReturnStatement) node()    {}
func (*IfStatement) node()        {}
func (*VariableDefinition) node() {}
func (*VariableAssignment) node() {}
func (*MacroCall) node()          {}
func (*FunctionCall) node()       {}
func (*Newline) node()            {}

// Lines returns the number of source lines spanned by a given block, which is
// one more than the number of newline markers it contains (including those in
// nested blocks).
func Lines(block BlockStatement) int64 {
	return 1 + newlines(block)
}

func newlines(block BlockStatement) int64 {
	var count int64
	//
	for _, n := range block {
		switch n := n.(type) {
		case *Newline:
			count++
		case *FunctionDefinition:
			count += newlines(n.Body)
		case *IfStatement:
			count += newlines(n.Body)
		}
	}
	//
	return count
}
