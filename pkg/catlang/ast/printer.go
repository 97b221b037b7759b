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

import (
	"fmt"
	"io"
	"strings"
)

// Print writes a human-readable rendering of a given block to a writer, with
// one statement per line and nested blocks indented.  Newline markers are not
// printed.
func Print(w io.Writer, block BlockStatement) error {
	return printBlock(w, block, 0)
}

func printBlock(w io.Writer, block BlockStatement, indent int) error {
	for _, n := range block {
		if _, ok := n.(*Newline); ok {
			continue
		}
		//
		if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("\t", indent), String(n)); err != nil {
			return err
		}
		//
		var body BlockStatement
		//
		switch n := n.(type) {
		case *FunctionDefinition:
			body = n.Body
		case *IfStatement:
			body = n.Body
		default:
			continue
		}
		//
		if err := printBlock(w, body, indent+1); err != nil {
			return err
		}
	}
	//
	return nil
}

// String returns a one-line rendering of a given node (excluding any nested
// block).
func String(n Node) string {
	switch n := n.(type) {
	case *FunctionDefinition:
		params := make([]string, len(n.ParamNames))
		for i := range n.ParamNames {
			params[i] = fmt.Sprintf("%s: %s", n.ParamNames[i], n.ParamTypes[i])
		}
		//
		return fmt.Sprintf("FunctionDefinition %s(%s)%s", n.Name, strings.Join(params, ", "),
			returnString(n.ReturnType))
	case *FunctionPrototype:
		return fmt.Sprintf("FunctionPrototype %s(%s)%s", n.Name, strings.Join(n.ParamTypes, ", "),
			returnString(n.ReturnType))
	case *ReturnStatement:
		return fmt.Sprintf("ReturnStatement %s", n.Expr.String())
	case *IfStatement:
		return fmt.Sprintf("IfStatement %s %s %s", n.Left.String(), n.Operator.String(), n.Right.String())
	case *VariableDefinition:
		var str = fmt.Sprintf("VariableDefinition %s", n.Name)
		if n.Type != nil {
			str = fmt.Sprintf("%s: %s", str, *n.Type)
		}
		//
		if n.Init != nil {
			str = fmt.Sprintf("%s = %s", str, n.Init.String())
		}
		//
		return str
	case *VariableAssignment:
		return fmt.Sprintf("VariableAssignment %s = %s", n.Name, n.Expr.String())
	case *MacroCall:
		return fmt.Sprintf("MacroCall %s(%s)", n.Name, argsString(n.Args))
	case *FunctionCall:
		return fmt.Sprintf("FunctionCall %s(%s)", n.Name, argsString(n.Args))
	case *Newline:
		return "Newline"
	default:
		panic("unknown node encountered")
	}
}

func returnString(ret *string) string {
	if ret == nil {
		return ""
	}
	//
	return " -> " + *ret
}

func argsString(args []Expression) string {
	strs := make([]string, len(args))
	//
	for i, arg := range args {
		strs[i] = arg.String()
	}
	//
	return strings.Join(strs, ", ")
}
