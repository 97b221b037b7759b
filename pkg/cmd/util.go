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

	"github.com/consensys/go-catlang/pkg/util/source"
	"github.com/consensys/go-catlang/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Get an expected flag, or exit if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string flag, or exit if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Configure the log level according to the verbosity flag.
func configureLogging(cmd *cobra.Command) {
	if getFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
}

// Read the source file given as the only argument of a command.  Only ASCII
// source files are accepted.
func readSourceFile(cmd *cobra.Command, args []string) *source.File {
	if len(args) != 1 {
		fmt.Println(cmd.UsageString())
		os.Exit(1)
	}
	//
	srcfile, err := source.ReadFile(args[0])
	if err != nil {
		fatalf("input file '%s' cannot be read", args[0])
	} else if !srcfile.IsASCII() {
		fatalf("input file is not in ascii, please remove any unicode symbols")
	}
	//
	return srcfile
}

// Report an error which prevents the command from continuing, and exit.
func fatalf(format string, args ...any) {
	red := termio.NewAnsiEscape().FgColour(termio.TERM_RED)
	//
	fmt.Printf("catc: %s %s\n", termio.Highlight(os.Stdout, red, "error:"), fmt.Sprintf(format, args...))
	os.Exit(1)
}

// Print a compilation error, along with the source line on which it arose.
func printError(srcfile *source.File, err *source.Error) {
	red := termio.BoldAnsiEscape().FgColour(termio.TERM_RED)
	line := srcfile.FindLine(err.Line())
	kind := termio.Highlight(os.Stdout, red, err.Kind().String()+":")
	// Print error + line number
	fmt.Printf("%s:%d: %s %s\n", srcfile.Filename(), err.Line(), kind, err.Message())
	// Print separator line
	fmt.Println()
	// Print line
	fmt.Println(line.String())
}
