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
package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/consensys/go-catlang/pkg/catlang/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	config, err := ParseConfig([]byte("output: hello\nbinary: true\nlink-libc: true\nkeep-asm: true\n"))
	require.NoError(t, err)
	//
	assert.Equal(t, Config{Output: "hello", Binary: true, LinkLibc: true, Assembler: "nasm", KeepAsm: true}, config)
	assert.NoError(t, config.Validate())
}

func TestParseConfig_Empty(t *testing.T) {
	config, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestParseConfig_Invalid(t *testing.T) {
	_, err := ParseConfig([]byte("binary: [1, 2"))
	assert.Error(t, err)
}

func TestReadConfig(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("assembler: yasm\nlinker: ld.gold\n"), 0644))
	//
	config, err := ReadConfig(filename)
	require.NoError(t, err)
	assert.Equal(t, "yasm", config.Assembler)
	assert.Equal(t, "ld.gold", config.Linker)
	//
	_, err = ReadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	config := DefaultConfig()
	config.LinkLibc = true
	//
	err := config.Validate()
	require.Error(t, err)
	assert.Equal(t, "--link-libc option is set but --binary option isn't, try removing it", err.Error())
	//
	config.Binary = true
	assert.NoError(t, config.Validate())
	//
	config.Assembler = ""
	assert.Error(t, config.Validate())
}

func TestOutputFor(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, "dir/hello.asm", config.OutputFor("dir/hello.cat"))
	assert.Equal(t, "hello.asm", config.OutputFor("hello"))
	//
	config.Binary = true
	assert.Equal(t, "dir/hello", config.OutputFor("dir/hello.cat"))
	assert.Equal(t, "hello.out", config.OutputFor("hello"))
	//
	config.Output = "prog"
	assert.Equal(t, "prog", config.OutputFor("dir/hello.cat"))
}

func TestToolchainCommands(t *testing.T) {
	toolchain := DefaultConfig().Toolchain()
	assert.Equal(t, [][]string{
		{"nasm", "-f", "elf64", "x.asm", "-o", "x.o"},
		{"ld", "x.o", "-o", "x"},
	}, toolchain.Commands("x.asm", "x.o", "x"))
	//
	toolchain.LinkLibc = true
	assert.Equal(t, []string{"gcc", "-no-pie", "x.o", "-o", "x"}, toolchain.Commands("x.asm", "x.o", "x")[1])
	//
	toolchain.Linker = "clang"
	assert.Equal(t, []string{"clang", "-no-pie", "x.o", "-o", "x"}, toolchain.Commands("x.asm", "x.o", "x")[1])
}

func TestTokenTable(t *testing.T) {
	var buf strings.Builder
	//
	tokens, err := lexer.LexString("let x = \"hi\";\nreturn x;")
	require.Nil(t, err)
	//
	table := tokenTable(tokens, false)
	table.AnsiEscapes(false)
	require.NoError(t, table.Print(&buf))
	//
	rows := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, rows, 8)
	assert.Equal(t, " 1 | keyword    | let    |", rows[0])
	assert.Equal(t, " 1 | string     | \"hi\"   |", rows[3])
	assert.Equal(t, " 2 | keyword    | return |", rows[5])
	//
	assert.Equal(t, uint(9), tokenTable(tokens, true).Height())
}
