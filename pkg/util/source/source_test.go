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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindLine(t *testing.T) {
	file := NewSourceFile("test.cat", []byte("fn main() {\n\tlet x: i32 = 1;\n}"))
	//
	tests := []struct {
		number int64
		text   string
	}{
		{1, "fn main() {"},
		{2, "\tlet x: i32 = 1;"},
		{3, "}"},
		{9, "}"},
	}
	//
	for _, tt := range tests {
		line := file.FindLine(tt.number)
		assert.Equal(t, tt.text, line.String(), "line %d", tt.number)
	}
}

func TestFindFirstEnclosingLine(t *testing.T) {
	file := NewSourceFile("test.cat", []byte("a\nbc\ndef"))
	line := file.FindFirstEnclosingLine(NewSpan(3, 4))
	//
	assert.Equal(t, 2, line.Number())
	assert.Equal(t, "bc", line.String())
	assert.Equal(t, 2, line.Start())
	assert.Equal(t, 2, line.Length())
}

func TestIsASCII(t *testing.T) {
	assert.True(t, NewSourceFile("a", []byte("let x = 1;")).IsASCII())
	assert.False(t, NewSourceFile("b", []byte("let ü = 1;")).IsASCII())
}

func TestErrorRelocation(t *testing.T) {
	err := Errorf(TYPE_ERROR, 2, "expected '%s'", "i32")
	moved := err.At(4)
	//
	assert.Equal(t, int64(6), moved.Line())
	assert.Equal(t, int64(2), err.Line())
	assert.Equal(t, TYPE_ERROR, moved.Kind())
	assert.Equal(t, "[line 6] expected 'i32'", moved.Error())
}

func TestSpanInvariant(t *testing.T) {
	assert.Panics(t, func() { NewSpan(3, 2) })
	//
	span := NewSpan(2, 5)
	assert.Equal(t, 3, span.Length())
}
