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
	"github.com/consensys/go-catlang/pkg/catlang/codegen"
	"github.com/consensys/go-catlang/pkg/catlang/lexer"
	"github.com/consensys/go-catlang/pkg/catlang/parser"
	"github.com/consensys/go-catlang/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Output is the result of a successful compilation.
type Output struct {
	// Generated assembly (NASM syntax, x86-64)
	Assembly string
	// Advisory messages raised during compilation
	Notices []source.Notice
}

// CompileString compiles source text which is not held in a file.
func CompileString(text string) (Output, *source.Error) {
	return Compile(source.NewSourceFile("", []byte(text)))
}

// Compile a given source file into assembly.  Compilation stops at the first
// error, in which case no output is produced.
func Compile(srcfile *source.File) (Output, *source.Error) {
	tokens, err := lexer.Lex(srcfile)
	if err != nil {
		return Output{}, err
	}
	//
	log.Debugf("lexed %d tokens from %s", len(tokens), srcfile.Filename())
	//
	block, err := parser.Parse(tokens)
	if err != nil {
		return Output{}, err
	}
	//
	log.Debugf("parsed %d top-level statements", len(block))
	//
	state := codegen.NewState()
	//
	if err := codegen.Generate(state, block); err != nil {
		return Output{}, err
	}
	//
	return Output{state.Assembly(), state.Notices()}, nil
}
