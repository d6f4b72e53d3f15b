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

// Package syntax defines the parse tree consumed by the binder. Trees are produced by an external parser and are
// never mutated once built; later passes attach their conclusions to nodes through side tables keyed by node
// identity.
package syntax

import "github.com/hashicorp/hcl/v2"

// Node is implemented by every parse tree node.
type Node interface {
	Range() hcl.Range

	isNode()
}

// Expression is a node that produces a value.
type Expression interface {
	Node

	isExpression()
}

// Statement is a node executed for its effect.
type Statement interface {
	Node

	isStatement()
}

// Block is one of the top-level declaration blocks of a script.
type Block interface {
	Node

	isBlock()
}

// Script is the root of a parse tree. Blocks are kept in source order and may repeat; the binder reports
// repeated blocks.
type Script struct {
	SrcRange hcl.Range

	Blocks []Block
	Body   []Statement
}

func (s *Script) Range() hcl.Range { return s.SrcRange }
func (*Script) isNode()            {}

// OptionsBlock is an `options { name = value; ... }` block.
type OptionsBlock struct {
	SrcRange hcl.Range

	Options []*Option
}

func (b *OptionsBlock) Range() hcl.Range { return b.SrcRange }
func (*OptionsBlock) isNode()            {}
func (*OptionsBlock) isBlock()           {}

// Option is a single option setting. Value is a literal, a constant name or the null keyword.
type Option struct {
	SrcRange  hcl.Range
	NameRange hcl.Range

	Name  string
	Value Expression
}

func (o *Option) Range() hcl.Range { return o.SrcRange }
func (*Option) isNode()            {}

// ImagesBlock is an `images { name = read|write; ... }` block.
type ImagesBlock struct {
	SrcRange hcl.Range

	Images []*ImageDecl
}

func (b *ImagesBlock) Range() hcl.Range { return b.SrcRange }
func (*ImagesBlock) isNode()            {}
func (*ImagesBlock) isBlock()           {}

// ImageDecl declares the role of one image variable.
type ImageDecl struct {
	SrcRange  hcl.Range
	RoleRange hcl.Range

	Name string
	Role string
}

func (d *ImageDecl) Range() hcl.Range { return d.SrcRange }
func (*ImageDecl) isNode()            {}

// InitBlock is an `init { name = value; ... }` block declaring variables that persist across pixels.
type InitBlock struct {
	SrcRange hcl.Range

	Vars []*InitVar
}

func (b *InitBlock) Range() hcl.Range { return b.SrcRange }
func (*InitBlock) isNode()            {}
func (*InitBlock) isBlock()           {}

// InitVar declares a global variable. Value is nil when the declaration has no initializer.
type InitVar struct {
	SrcRange hcl.Range

	Name  string
	Value Expression
}

func (v *InitVar) Range() hcl.Range { return v.SrcRange }
func (*InitVar) isNode()            {}

// Operator is the spelling of a unary, binary or assignment operator.
type Operator string

const (
	OpAssign    Operator = "="
	OpAddAssign Operator = "+="
	OpSubAssign Operator = "-="
	OpMulAssign Operator = "*="
	OpDivAssign Operator = "/="
	OpModAssign Operator = "%="

	OpPow Operator = "^"
	OpMul Operator = "*"
	OpDiv Operator = "/"
	OpMod Operator = "%"
	OpAdd Operator = "+"
	OpSub Operator = "-"

	OpLT Operator = "<"
	OpLE Operator = "<="
	OpGT Operator = ">"
	OpGE Operator = ">="
	OpEQ Operator = "=="
	OpNE Operator = "!="

	OpAnd Operator = "&&"
	OpOr  Operator = "||"
	OpXor Operator = "^|"
	OpNot Operator = "!"

	OpIncr Operator = "++"
	OpDecr Operator = "--"
)
