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
package termio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnsiEscape(t *testing.T) {
	assert.Equal(t, "\033[31m", NewAnsiEscape().FgColour(TERM_RED).Build())
	assert.Equal(t, "\033[1;33m", BoldAnsiEscape().FgColour(TERM_YELLOW).Build())
	assert.Equal(t, "\033[32;44m", NewAnsiEscape().FgColour(TERM_GREEN).BgColour(TERM_BLUE).Build())
	assert.Equal(t, "\033[0m", ResetAnsiEscape().Build())
	assert.Equal(t, "\033[31mx\033[0m", NewAnsiEscape().FgColour(TERM_RED).Wrap("x"))
}

func TestTablePrinter(t *testing.T) {
	var buf strings.Builder
	//
	table := NewTablePrinter(2, 2)
	table.SetRow(0, "a", "bbb")
	table.SetRow(1, "cc", "d")
	//
	require.NoError(t, table.Print(&buf))
	assert.Equal(t, " a  | bbb |\n cc | d   |\n", buf.String())
	assert.Equal(t, "cc", table.Get(0, 1))
	assert.Equal(t, uint(2), table.Height())
}

func TestTablePrinter_Truncate(t *testing.T) {
	var buf strings.Builder
	//
	table := NewTablePrinter(1, 1)
	table.Set(0, 0, "abcdefgh")
	table.SetMaxWidth(0, 5)
	//
	require.NoError(t, table.Print(&buf))
	assert.Equal(t, " abc.. |\n", buf.String())
}

func TestTablePrinter_Escapes(t *testing.T) {
	var buf strings.Builder
	//
	table := NewTablePrinter(1, 1)
	table.Set(0, 0, "x")
	table.SetEscape(0, 0, NewAnsiEscape().FgColour(TERM_RED))
	//
	require.NoError(t, table.Print(&buf))
	assert.Equal(t, "\033[31m x\033[0m |\n", buf.String())
	//
	buf.Reset()
	table.AnsiEscapes(false)
	require.NoError(t, table.Print(&buf))
	assert.Equal(t, " x |\n", buf.String())
}
