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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DEFAULT_CONFIG is the project file picked up from the working directory when
// no explicit configuration file is given.
const DEFAULT_CONFIG = "catc.yaml"

// Config determines how a source file is compiled and, optionally, turned into
// an executable.  Values are read from a project file, and then overridden by
// any flags given explicitly on the command line.
type Config struct {
	// Name of the output file.  When empty, this is derived from the input.
	Output string `yaml:"output"`
	// Assemble and link the generated assembly into an executable.
	Binary bool `yaml:"binary"`
	// Link against libc (using gcc) when creating an executable.
	LinkLibc bool `yaml:"link-libc"`
	// Assembler used to create object files.
	Assembler string `yaml:"assembler"`
	// Linker used to create executables.  When empty, this is ld or (when
	// linking libc) gcc.
	Linker string `yaml:"linker"`
	// Retain the generated assembly after creating an executable.
	KeepAsm bool `yaml:"keep-asm"`
}

// DefaultConfig returns the configuration used in the absence of a project
// file.
func DefaultConfig() Config {
	return Config{Assembler: "nasm"}
}

// ParseConfig parses the contents of a project file.  Fields which are not
// given retain their default values.
func ParseConfig(bytes []byte) (Config, error) {
	config := DefaultConfig()
	//
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return config, err
	}
	//
	return config, nil
}

// ReadConfig reads a project file from disk.  If no filename is given, then
// the default project file is read if it exists.
func ReadConfig(filename string) (Config, error) {
	if filename == "" {
		if _, err := os.Stat(DEFAULT_CONFIG); errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		//
		filename = DEFAULT_CONFIG
	}
	//
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return DefaultConfig(), err
	}
	//
	config, err := ParseConfig(bytes)
	if err != nil {
		return config, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return config, nil
}

// Validate checks that the options of this configuration are consistent.
func (c Config) Validate() error {
	if c.LinkLibc && !c.Binary {
		return errors.New("--link-libc option is set but --binary option isn't, try removing it")
	}
	//
	if c.Binary && c.Assembler == "" {
		return errors.New("no assembler specified")
	}
	//
	return nil
}

// OutputFor determines the name of the output file for a given input file.
// Unless an explicit output name is set, this is the input name with its
// extension replaced (by ".asm" for assembly, or removed for an executable).
func (c Config) OutputFor(input string) string {
	if c.Output != "" {
		return c.Output
	}
	//
	stem := strings.TrimSuffix(input, filepath.Ext(input))
	//
	if c.Binary {
		if stem == input {
			return stem + ".out"
		}
		//
		return stem
	}
	//
	return stem + ".asm"
}

// Toolchain returns the assembler and linker used to create executables.
func (c Config) Toolchain() Toolchain {
	return Toolchain{c.Assembler, c.Linker, c.LinkLibc}
}
