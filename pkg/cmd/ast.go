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

	"github.com/consensys/go-catlang/pkg/catlang/ast"
	"github.com/consensys/go-catlang/pkg/catlang/lexer"
	"github.com/consensys/go-catlang/pkg/catlang/parser"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var astCmd = &cobra.Command{
	Use:   "ast [flags] source_file",
	Short: "print the abstract syntax tree of a source file.",
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
		block, err := parser.Parse(tokens)
		if err != nil {
			printError(srcfile, err)
			os.Exit(1)
		}
		//
		log.Debugf("parsed %d lines", ast.Lines(block))
		//
		if err := ast.Print(os.Stdout, block); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(astCmd)
}
