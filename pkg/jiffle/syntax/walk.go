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

import (
	"github.com/geosolutions/jiffle/pkg/util/contract"
	"github.com/hashicorp/hcl/v2"
)

// VisitorFunc is called for each node visited by VisitAll.
type VisitorFunc func(node Node) hcl.Diagnostics

// VisitAll walks the tree rooted at node in pre-order, calling f for every node and collecting the diagnostics it
// returns.
func VisitAll(node Node, f VisitorFunc) hcl.Diagnostics {
	diagnostics := f(node)
	for _, child := range Children(node) {
		diagnostics = append(diagnostics, VisitAll(child, f)...)
	}
	return diagnostics
}

// Children returns the direct children of node in source order.
func Children(node Node) []Node {
	var children []Node
	add := func(nodes ...Node) {
		for _, n := range nodes {
			if n != nil {
				children = append(children, n)
			}
		}
	}

	switch node := node.(type) {
	case *Script:
		for _, b := range node.Blocks {
			add(b)
		}
		for _, s := range node.Body {
			add(s)
		}
	case *OptionsBlock:
		for _, o := range node.Options {
			add(o)
		}
	case *Option:
		add(node.Value)
	case *ImagesBlock:
		for _, d := range node.Images {
			add(d)
		}
	case *ImageDecl:
	case *InitBlock:
		for _, v := range node.Vars {
			add(v)
		}
	case *InitVar:
		add(node.Value)
	case *BlockStmt:
		for _, s := range node.Stmts {
			add(s)
		}
	case *ExpressionStmt:
		add(node.Expr)
	case *AssignStmt:
		add(node.Target, node.Value)
	case *AppendStmt:
		add(node.Target, node.Value)
	case *IfStmt:
		add(node.Cond, node.Then, node.Else)
	case *WhileStmt:
		add(node.Cond, node.Body)
	case *UntilStmt:
		add(node.Cond, node.Body)
	case *ForeachStmt:
		add(node.Var, node.Source, node.Body)
	case *BreakStmt:
	case *BreakIfStmt:
		add(node.Cond)
	case *Identifier, *IntLiteral, *FloatLiteral, *BoolLiteral, *StringLiteral, *NullLiteral:
	case *ListLiteral:
		for _, e := range node.Elements {
			add(e)
		}
	case *RangeExpr:
		add(node.Lo, node.Hi)
	case *ParenExpr:
		add(node.Expr)
	case *UnaryExpr:
		add(node.Operand)
	case *PrefixExpr:
		add(node.Target)
	case *PostfixExpr:
		add(node.Target)
	case *BinaryExpr:
		add(node.Left, node.Right)
	case *TernaryExpr:
		add(node.Cond, node.TrueResult, node.FalseResult)
	case *CallExpr:
		for _, a := range node.Args {
			add(a)
		}
	case *ImageCall:
		add(node.Band)
		if node.Pixel != nil {
			add(node.Pixel.X.Expr, node.Pixel.Y.Expr)
		}
	default:
		contract.Failf("unexpected syntax node of type %T", node)
	}
	return children
}
