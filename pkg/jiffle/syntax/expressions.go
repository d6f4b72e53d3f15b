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

package syntax

import "github.com/hashicorp/hcl/v2"

// Identifier is a bare name: a variable, a loop variable, a constant or an image.
type Identifier struct {
	SrcRange hcl.Range

	Name string
}

func (x *Identifier) Range() hcl.Range { return x.SrcRange }
func (*Identifier) isNode()            {}
func (*Identifier) isExpression()      {}

type IntLiteral struct {
	SrcRange hcl.Range

	Value int64
}

func (x *IntLiteral) Range() hcl.Range { return x.SrcRange }
func (*IntLiteral) isNode()            {}
func (*IntLiteral) isExpression()      {}

type FloatLiteral struct {
	SrcRange hcl.Range

	Value float64
}

func (x *FloatLiteral) Range() hcl.Range { return x.SrcRange }
func (*FloatLiteral) isNode()            {}
func (*FloatLiteral) isExpression()      {}

type BoolLiteral struct {
	SrcRange hcl.Range

	Value bool
}

func (x *BoolLiteral) Range() hcl.Range { return x.SrcRange }
func (*BoolLiteral) isNode()            {}
func (*BoolLiteral) isExpression()      {}

// StringLiteral is only legal as an option value.
type StringLiteral struct {
	SrcRange hcl.Range

	Value string
}

func (x *StringLiteral) Range() hcl.Range { return x.SrcRange }
func (*StringLiteral) isNode()            {}
func (*StringLiteral) isExpression()      {}

// NullLiteral is the `null` keyword. It is only legal as an option value.
type NullLiteral struct {
	SrcRange hcl.Range
}

func (x *NullLiteral) Range() hcl.Range { return x.SrcRange }
func (*NullLiteral) isNode()            {}
func (*NullLiteral) isExpression()      {}

type ListLiteral struct {
	SrcRange hcl.Range

	Elements []Expression
}

func (x *ListLiteral) Range() hcl.Range { return x.SrcRange }
func (*ListLiteral) isNode()            {}
func (*ListLiteral) isExpression()      {}

// RangeExpr is `lo:hi`, used as a foreach source.
type RangeExpr struct {
	SrcRange hcl.Range

	Lo Expression
	Hi Expression
}

func (x *RangeExpr) Range() hcl.Range { return x.SrcRange }
func (*RangeExpr) isNode()            {}
func (*RangeExpr) isExpression()      {}

type ParenExpr struct {
	SrcRange hcl.Range

	Expr Expression
}

func (x *ParenExpr) Range() hcl.Range { return x.SrcRange }
func (*ParenExpr) isNode()            {}
func (*ParenExpr) isExpression()      {}

// UnaryExpr applies OpSub, OpAdd or OpNot to its operand.
type UnaryExpr struct {
	SrcRange hcl.Range

	Op      Operator
	Operand Expression
}

func (x *UnaryExpr) Range() hcl.Range { return x.SrcRange }
func (*UnaryExpr) isNode()            {}
func (*UnaryExpr) isExpression()      {}

// PrefixExpr is `++target` or `--target`.
type PrefixExpr struct {
	SrcRange hcl.Range

	Op     Operator
	Target *Identifier
}

func (x *PrefixExpr) Range() hcl.Range { return x.SrcRange }
func (*PrefixExpr) isNode()            {}
func (*PrefixExpr) isExpression()      {}

// PostfixExpr is `target++` or `target--`.
type PostfixExpr struct {
	SrcRange hcl.Range

	Op     Operator
	Target *Identifier
}

func (x *PostfixExpr) Range() hcl.Range { return x.SrcRange }
func (*PostfixExpr) isNode()            {}
func (*PostfixExpr) isExpression()      {}

type BinaryExpr struct {
	SrcRange hcl.Range

	Op    Operator
	Left  Expression
	Right Expression
}

func (x *BinaryExpr) Range() hcl.Range { return x.SrcRange }
func (*BinaryExpr) isNode()            {}
func (*BinaryExpr) isExpression()      {}

// TernaryExpr is `cond ? trueResult : falseResult`.
type TernaryExpr struct {
	SrcRange hcl.Range

	Cond        Expression
	TrueResult  Expression
	FalseResult Expression
}

func (x *TernaryExpr) Range() hcl.Range { return x.SrcRange }
func (*TernaryExpr) isNode()            {}
func (*TernaryExpr) isExpression()      {}

type CallExpr struct {
	SrcRange  hcl.Range
	NameRange hcl.Range

	Name string
	Args []Expression
}

func (x *CallExpr) Range() hcl.Range { return x.SrcRange }
func (*CallExpr) isNode()            {}
func (*CallExpr) isExpression()      {}

// ImageCall reads a pixel value: `name[band][xpos, ypos]`. Band and Pixel are nil when omitted, meaning band 0 at
// the current pixel.
type ImageCall struct {
	SrcRange  hcl.Range
	NameRange hcl.Range

	Name  string
	Band  Expression
	Pixel *PixelSpec
}

func (x *ImageCall) Range() hcl.Range { return x.SrcRange }
func (*ImageCall) isNode()            {}
func (*ImageCall) isExpression()      {}

// PixelSpec holds the two coordinates of an image call.
type PixelSpec struct {
	X PixelPos
	Y PixelPos
}

// PixelPos is one coordinate. Plain coordinates are image coordinates, usually written in terms of x() and y();
// relative ones (written with a `$` prefix) are offsets from the current pixel.
type PixelPos struct {
	Expr     Expression
	Relative bool
}
