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
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-catlang/pkg/catlang/lexer"
	"github.com/consensys/go-catlang/pkg/util/termio"
	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [flags] source_file",
	Short: "print the tokens of a source file.",
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		srcfile := readSourceFile(cmd, args)
		//
		tokens, err := lexer.Lex(srcfile)
		if err != nil {
			printError(srcfile, err)
			os.Exit(1)
		}
		//
		table := tokenTable(tokens, getFlag(cmd, "newlines"))
		table.AnsiEscapes(termio.IsTerminal(os.Stdout))
		//
		if err := table.Print(os.Stdout); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	},
}

// Construct a table with one row per token, giving its line, kind and text.
func tokenTable(tokens []lexer.Token, newlines bool) *termio.TablePrinter {
	var (
		rows []lexer.Token
		nums []int
		line = 1
	)
	//
	for _, tok := range tokens {
		if tok.Kind != lexer.NEWLINE || newlines {
			rows = append(rows, tok)
			nums = append(nums, line)
		}
		//
		if tok.Kind == lexer.NEWLINE {
			line++
		}
	}
	//
	table := termio.NewTablePrinter(3, uint(len(rows)))
	//
	for i, tok := range rows {
		row := uint(i)
		text := strings.ReplaceAll(tok.Source(), "\n", "\\n")
		table.SetRow(row, fmt.Sprintf("%d", nums[i]), kindName(tok.Kind), text)
		//
		if colour, ok := kindColour(tok.Kind); ok {
			table.SetEscape(2, row, termio.NewAnsiEscape().FgColour(colour))
		}
	}
	//
	table.SetMaxWidth(2, 40)
	//
	return table
}

func kindName(kind uint) string {
	switch kind {
	case lexer.NEWLINE:
		return "newline"
	case lexer.KEYWORD:
		return "keyword"
	case lexer.IDENTIFIER:
		return "identifier"
	case lexer.NUMBER:
		return "number"
	case lexer.STRING:
		return "string"
	case lexer.OPERATOR:
		return "operator"
	default:
		return "unknown"
	}
}

func kindColour(kind uint) (uint, bool) {
	switch kind {
	case lexer.KEYWORD:
		return termio.TERM_BLUE, true
	case lexer.NUMBER:
		return termio.TERM_YELLOW, true
	case lexer.STRING:
		return termio.TERM_GREEN, true
	default:
		return 0, false
	}
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().Bool("newlines", false, "include newline tokens.")
}
