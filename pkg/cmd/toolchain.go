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
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Toolchain identifies the external programs used to turn generated assembly
// into an executable.
type Toolchain struct {
	Assembler string
	// Linker, where empty selects ld (or gcc when linking libc).
	Linker   string
	LinkLibc bool
}

// Commands returns the command lines which assemble a given assembly file into
// an object file, and then link that into an executable.
func (t Toolchain) Commands(asmfile string, objfile string, output string) [][]string {
	assemble := []string{t.Assembler, "-f", "elf64", asmfile, "-o", objfile}
	//
	if t.LinkLibc {
		return [][]string{assemble, {t.linker("gcc"), "-no-pie", objfile, "-o", output}}
	}
	//
	return [][]string{assemble, {t.linker("ld"), objfile, "-o", output}}
}

// Build an executable from a given assembly file.  The intermediate object
// file is removed afterwards, regardless of whether linking succeeded.
func (t Toolchain) Build(asmfile string, output string) error {
	objfile := output + ".o"
	//
	defer os.Remove(objfile)
	//
	for _, args := range t.Commands(asmfile, objfile, output) {
		log.Debugf("running %s", strings.Join(args, " "))
		//
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		//
		if err := cmd.Run(); err != nil {
			return err
		}
	}
	//
	return nil
}

func (t Toolchain) linker(fallback string) string {
	if t.Linker != "" {
		return t.Linker
	}
	//
	return fallback
}
