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

	"github.com/consensys/go-catlang/pkg/catlang"
	"github.com/consensys/go-catlang/pkg/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] source_file",
	Short: "compile a source file into assembly.",
	Long: `Compile a given source file into x86-64 assembly (NASM syntax).  Optionally,
	 the assembly is then assembled and linked into an executable.`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		config := loadConfig(cmd)
		srcfile := readSourceFile(cmd, args)
		stats := util.NewPerfStats()
		// Compile source file
		out, err := catlang.Compile(srcfile)
		//
		stats.Log("Compilation")
		//
		if err != nil {
			printError(srcfile, err)
			os.Exit(1)
		}
		//
		log.Debugf("compiled %s with %d notice(s)", srcfile.Filename(), len(out.Notices))
		//
		output := config.OutputFor(args[0])
		if !config.Binary {
			writeFile(output, out.Assembly)
			return
		}
		// Create executable
		asmfile := output + ".asm"
		writeFile(asmfile, out.Assembly)
		//
		if err := config.Toolchain().Build(asmfile, output); err != nil {
			fatalf("unable to create binary: %s", err)
		}
		//
		if !config.KeepAsm {
			os.Remove(asmfile)
		}
	},
}

// Load the configuration, applying any flags given explicitly on the command
// line over those from the project file.
func loadConfig(cmd *cobra.Command) Config {
	config, err := ReadConfig(getString(cmd, "config"))
	if err != nil {
		fatalf("%s", err)
	}
	//
	flags := cmd.Flags()
	//
	if flags.Changed("output") {
		config.Output = getString(cmd, "output")
	}
	//
	if flags.Changed("binary") {
		config.Binary = getFlag(cmd, "binary")
	}
	//
	if flags.Changed("link-libc") {
		config.LinkLibc = getFlag(cmd, "link-libc")
	}
	//
	if flags.Changed("assembler") {
		config.Assembler = getString(cmd, "assembler")
	}
	//
	if flags.Changed("linker") {
		config.Linker = getString(cmd, "linker")
	}
	//
	if flags.Changed("keep-asm") {
		config.KeepAsm = getFlag(cmd, "keep-asm")
	}
	//
	if err := config.Validate(); err != nil {
		fatalf("%s", err)
	}
	//
	return config
}

func writeFile(filename string, contents string) {
	log.Debugf("writing %s", filename)
	//
	if err := os.WriteFile(filename, []byte(contents), 0644); err != nil {
		fatalf("unable to write '%s': %s", filename, err)
	}
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("output", "o", "", "specify output file.")
	compileCmd.Flags().BoolP("binary", "b", false, "assemble and link the output into an executable (requires nasm and ld).")
	compileCmd.Flags().Bool("link-libc", false, "when creating an executable, link libc with gcc.")
	compileCmd.Flags().String("assembler", "nasm", "assembler used to create an executable.")
	compileCmd.Flags().String("linker", "", "linker used to create an executable (default ld, or gcc with libc).")
	compileCmd.Flags().Bool("keep-asm", false, "keep the generated assembly when creating an executable.")
}
