// Copyright 2016-2020, Pulumi Corporation.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

// Statement is a node executed for its effect.
type Statement interface {
	isStatement()
}

// Block is an ordered statement list; it corresponds to a lexical block of the script.
type Block struct {
	Statements []Statement
}

func (*Block) isStatement() {}

// Evaluate evaluates an expression and discards the result.
type Evaluate struct {
	Expr Expression
}

func (*Evaluate) isStatement() {}

// SetDestValue writes a value to a destination image at the current pixel and default band.
type SetDestValue struct {
	Image string
	Value Expression
}

func (*SetDestValue) isStatement() {}

// Store assigns to a scalar variable. Declare is set on the first assignment to the variable in the scope that
// declares it, so that output stages know to introduce a fresh local binding. Variables of the global scope are
// never declared here; they persist for the whole run.
type Store struct {
	Var     *Variable
	Op      Operator
	Value   Expression
	Declare bool
}

func (*Store) isStatement() {}

// ListStore assigns a list value to a list variable. Declare has the same meaning as for Store.
type ListStore struct {
	Var     *Variable
	Value   Expression
	Declare bool
}

func (*ListStore) isStatement() {}

// ListAppend appends a scalar value to a list variable.
type ListAppend struct {
	Var   *Variable
	Value Expression
}

func (*ListAppend) isStatement() {}

// LocalBinding introduces a read-only local evaluated once per pixel.
type LocalBinding struct {
	Name  string
	Value Expression
}

func (*LocalBinding) isStatement() {}

// IfElse is a conditional. Else is nil when absent.
type IfElse struct {
	Condition Expression
	Then      Statement
	Else      Statement
}

func (*IfElse) isStatement() {}

type WhileLoop struct {
	Condition Expression
	Body      Statement
}

func (*WhileLoop) isStatement() {}

// UntilLoop runs its body until the condition is true.
type UntilLoop struct {
	Condition Expression
	Body      Statement
}

func (*UntilLoop) isStatement() {}

// ForeachListLiteral iterates over the elements of a list literal.
type ForeachListLiteral struct {
	Var  string
	List *ListLiteral
	Body Statement
}

func (*ForeachListLiteral) isStatement() {}

// ForeachListVar iterates over the current elements of a list variable.
type ForeachListVar struct {
	Var  string
	List *Variable
	Body Statement
}

func (*ForeachListVar) isStatement() {}

// ForeachRange iterates over the integer values in [Lo, Hi].
type ForeachRange struct {
	Var  string
	Lo   Expression
	Hi   Expression
	Body Statement
}

func (*ForeachRange) isStatement() {}

type Break struct{}

func (*Break) isStatement() {}

type BreakIf struct {
	Condition Expression
}

func (*BreakIf) isStatement() {}
