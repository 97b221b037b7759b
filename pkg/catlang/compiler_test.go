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
package catlang

import (
	"strings"
	"testing"

	"github.com/consensys/go-catlang/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloWorld = `/* prints a greeting */
fn puts(s: i64) -> i32;

fn main() -> i32 {
	let greeting = "hello world";
	puts(greeting);
	return 0;
}
`

func TestCompile_HelloWorld(t *testing.T) {
	out, err := CompileString(helloWorld)
	require.Nil(t, err)
	//
	assert.True(t, strings.HasPrefix(out.Assembly, "section .data\n\tL0: db `hello world`, 0\nsection .text\n"))
	assert.Contains(t, out.Assembly, "extern puts\n")
	assert.Contains(t, out.Assembly, "global main\nmain:\n")
	assert.Contains(t, out.Assembly, "\tmov rdi, qword [rbp-16]\n\txor eax, eax\n\tcall puts\n")
	assert.Empty(t, out.Notices)
}

func TestCompile_Deterministic(t *testing.T) {
	first, err := CompileString(helloWorld)
	require.Nil(t, err)
	//
	second, err := CompileString(helloWorld)
	require.Nil(t, err)
	//
	assert.Equal(t, first.Assembly, second.Assembly)
}

func TestCompile_Notices(t *testing.T) {
	out, err := CompileString("fn main() {\n\tasm!(\"nop\")\n}")
	require.Nil(t, err)
	//
	require.Len(t, out.Notices, 1)
	assert.Equal(t, int64(2), out.Notices[0].Line)
	assert.Contains(t, out.Assembly, "\tnop\n")
}

func TestCompile_Errors(t *testing.T) {
	checkError(t, "fn main() {\n\tlet x = 1 @ 2;\n}", source.LEX_ERROR, 2, "'@' is not a valid operator")
	checkError(t, "fn main() {\n\tlet x;\n}", source.PARSE_ERROR, 2,
		"variable 'x' requires either a type or an initial value")
	checkError(t, "fn main() {\n\n\tfoo(1);\n}", source.UNDEFINED_SYMBOL, 3, "undefined function 'foo'")
	checkError(t, "fn foo(a: i32, b: i32) {}\nfn main() {\n\tfoo(1, 2, 3);\n}", source.ARITY_ERROR, 3,
		"function 'foo' accepts 2 arguments but 3 were given")
	checkError(t, "fn main() {\n\tlet x: i8 = \"s\";\n}", source.TYPE_ERROR, 2,
		"expected expression to evaluate to type 'i8', but string literals have type 'i64'")
	checkError(t, "fn main() {}\n/* comment\n */fn main() {}", source.REDEFINITION, 3,
		"function 'main' is already defined")
}

func TestCompile_ErrorString(t *testing.T) {
	_, err := CompileString("\n\nreturn 1;")
	require.NotNil(t, err)
	assert.Equal(t, "[line 3] return statement outside of a function", err.Error())
}

func checkError(t *testing.T, text string, kind source.ErrorKind, line int64, msg string) {
	out, err := CompileString(text)
	//
	require.NotNil(t, err, "expected error for %q", text)
	assert.Equal(t, Output{}, out)
	assert.Equal(t, kind, err.Kind())
	assert.Equal(t, line, err.Line())
	assert.Equal(t, msg, err.Message())
}
