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
package ast

// CmpOp identifies the comparison made by an if statement.
type CmpOp uint8

// EQ signals "=="
const EQ CmpOp = 0

// NEQ signals "!="
const NEQ CmpOp = 1

// GT signals ">"
const GT CmpOp = 2

// GTEQ signals ">="
const GTEQ CmpOp = 3

// LT signals "<"
const LT CmpOp = 4

// LTEQ signals "<="
const LTEQ CmpOp = 5

// LookupCmpOp returns the comparison operator corresponding to a given
// operator symbol (if it exists).
func LookupCmpOp(symbol string) (CmpOp, bool) {
	switch symbol {
	case "==":
		return EQ, true
	case "!=":
		return NEQ, true
	case ">":
		return GT, true
	case ">=":
		return GTEQ, true
	case "<":
		return LT, true
	case "<=":
		return LTEQ, true
	}
	//
	return 0, false
}

// Negate returns the comparison which holds exactly when this one does not.
func (op CmpOp) Negate() CmpOp {
	switch op {
	case EQ:
		return NEQ
	case NEQ:
		return EQ
	case GT:
		return LTEQ
	case GTEQ:
		return LT
	case LT:
		return GTEQ
	default:
		return GT
	}
}

func (op CmpOp) String() string {
	switch op {
	case EQ:
		return "=="
	case NEQ:
		return "!="
	case GT:
		return ">"
	case GTEQ:
		return ">="
	case LT:
		return "<"
	default:
		return "<="
	}
}
