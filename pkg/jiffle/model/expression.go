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

// Package model defines the executable representation of a compiled script: an immutable tree of expressions and
// statements describing how to compute one destination pixel per invocation. Nodes are never modified after
// construction; passes that transform a model build new nodes.
package model

import "github.com/geosolutions/jiffle/pkg/jiffle/lookup"

// Operator is the spelling of an operator carried over from the script.
type Operator string

// Expression is a node that produces a value.
type Expression interface {
	Type() lookup.JiffleType

	isExpression()
}

type IntLiteral struct {
	Value int64
}

func (*IntLiteral) Type() lookup.JiffleType { return lookup.D }
func (*IntLiteral) isExpression()           {}

type DoubleLiteral struct {
	Value float64
}

func (*DoubleLiteral) Type() lookup.JiffleType { return lookup.D }
func (*DoubleLiteral) isExpression()           {}

type BooleanLiteral struct {
	Value bool
}

func (*BooleanLiteral) Type() lookup.JiffleType { return lookup.D }
func (*BooleanLiteral) isExpression()           {}

// NaNLiteral is the not-a-number value, produced by the NaN constant aliases.
type NaNLiteral struct{}

func (*NaNLiteral) Type() lookup.JiffleType { return lookup.D }
func (*NaNLiteral) isExpression()           {}

// DefaultScalarValue initializes a global variable declared without a value.
type DefaultScalarValue struct{}

func (*DefaultScalarValue) Type() lookup.JiffleType { return lookup.D }
func (*DefaultScalarValue) isExpression()           {}

type ListLiteral struct {
	Elements []Expression
}

func (*ListLiteral) Type() lookup.JiffleType { return lookup.List }
func (*ListLiteral) isExpression()           {}

// Variable references a scalar, list or loop variable by name.
type Variable struct {
	Name    string
	VarType lookup.JiffleType
}

func (x *Variable) Type() lookup.JiffleType { return x.VarType }
func (*Variable) isExpression()             {}

// GetSourceValue reads one band of a source image at the given image coordinates.
type GetSourceValue struct {
	Image string
	Band  Expression
	X     Expression
	Y     Expression
}

func (*GetSourceValue) Type() lookup.JiffleType { return lookup.D }
func (*GetSourceValue) isExpression()           {}

type UnaryExpression struct {
	Op      Operator
	Operand Expression
}

func (x *UnaryExpression) Type() lookup.JiffleType { return x.Operand.Type() }
func (*UnaryExpression) isExpression()             {}

// PrefixExpression increments or decrements a variable and yields the new value.
type PrefixExpression struct {
	Op  Operator
	Var *Variable
}

func (x *PrefixExpression) Type() lookup.JiffleType { return x.Var.Type() }
func (*PrefixExpression) isExpression()             {}

// PostfixExpression increments or decrements a variable and yields the old value.
type PostfixExpression struct {
	Op  Operator
	Var *Variable
}

func (x *PostfixExpression) Type() lookup.JiffleType { return x.Var.Type() }
func (*PostfixExpression) isExpression()             {}

type BinaryExpression struct {
	Op    Operator
	Left  Expression
	Right Expression

	ExprType lookup.JiffleType
}

func (x *BinaryExpression) Type() lookup.JiffleType { return x.ExprType }
func (*BinaryExpression) isExpression()             {}

type TernaryExpression struct {
	Condition   Expression
	TrueResult  Expression
	FalseResult Expression

	ExprType lookup.JiffleType
}

func (x *TernaryExpression) Type() lookup.JiffleType { return x.ExprType }
func (*TernaryExpression) isExpression()             {}

// FunctionCall invokes the resolved overload of a built-in function.
type FunctionCall struct {
	Function lookup.FunctionInfo
	Args     []Expression
}

func (x *FunctionCall) Type() lookup.JiffleType { return x.Function.ReturnType }
func (*FunctionCall) isExpression()             {}
