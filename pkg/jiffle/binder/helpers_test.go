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

package binder

import (
	"testing"

	"github.com/geosolutions/jiffle/pkg/jiffle/lookup"
	"github.com/geosolutions/jiffle/pkg/jiffle/syntax"
	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/require"
)

// Parse tree constructors. Every call returns a fresh node, since passes key their results by node identity.

func ident(name string) *syntax.Identifier { return &syntax.Identifier{Name: name} }
func num(v int64) *syntax.IntLiteral       { return &syntax.IntLiteral{Value: v} }
func float(v float64) *syntax.FloatLiteral { return &syntax.FloatLiteral{Value: v} }
func str(v string) *syntax.StringLiteral   { return &syntax.StringLiteral{Value: v} }
func null() *syntax.NullLiteral            { return &syntax.NullLiteral{} }

func neg(x syntax.Expression) *syntax.UnaryExpr {
	return &syntax.UnaryExpr{Op: syntax.OpSub, Operand: x}
}

func list(elements ...syntax.Expression) *syntax.ListLiteral {
	return &syntax.ListLiteral{Elements: elements}
}

func span(lo, hi syntax.Expression) *syntax.RangeExpr {
	return &syntax.RangeExpr{Lo: lo, Hi: hi}
}

func bin(op syntax.Operator, left, right syntax.Expression) *syntax.BinaryExpr {
	return &syntax.BinaryExpr{Op: op, Left: left, Right: right}
}

func call(name string, args ...syntax.Expression) *syntax.CallExpr {
	return &syntax.CallExpr{Name: name, Args: args}
}

// pixel reads band 0 of image at an offset from the current pixel: `image[$dx, $dy]`.
func pixel(image string, dx, dy syntax.Expression) *syntax.ImageCall {
	return &syntax.ImageCall{
		Name: image,
		Pixel: &syntax.PixelSpec{
			X: syntax.PixelPos{Expr: dx, Relative: true},
			Y: syntax.PixelPos{Expr: dy, Relative: true},
		},
	}
}

// at reads band 0 of image at the image coordinates x, y: `image[x, y]`.
func at(image string, x, y syntax.Expression) *syntax.ImageCall {
	return &syntax.ImageCall{
		Name:  image,
		Pixel: &syntax.PixelSpec{X: syntax.PixelPos{Expr: x}, Y: syntax.PixelPos{Expr: y}},
	}
}

func assign(name string, value syntax.Expression) *syntax.AssignStmt {
	return assignOp(name, syntax.OpAssign, value)
}

func assignOp(name string, op syntax.Operator, value syntax.Expression) *syntax.AssignStmt {
	return &syntax.AssignStmt{Target: ident(name), Op: op, Value: value}
}

func appendTo(name string, value syntax.Expression) *syntax.AppendStmt {
	return &syntax.AppendStmt{Target: ident(name), Value: value}
}

func eval(x syntax.Expression) *syntax.ExpressionStmt { return &syntax.ExpressionStmt{Expr: x} }

func block(stmts ...syntax.Statement) *syntax.BlockStmt { return &syntax.BlockStmt{Stmts: stmts} }

func ifElse(cond syntax.Expression, then, els syntax.Statement) *syntax.IfStmt {
	return &syntax.IfStmt{Cond: cond, Then: then, Else: els}
}

func foreach(name string, source syntax.Expression, body ...syntax.Statement) *syntax.ForeachStmt {
	return &syntax.ForeachStmt{Var: ident(name), Source: source, Body: block(body...)}
}

func while(cond syntax.Expression, body ...syntax.Statement) *syntax.WhileStmt {
	return &syntax.WhileStmt{Cond: cond, Body: block(body...)}
}

func images(nameRoles ...string) *syntax.ImagesBlock {
	b := &syntax.ImagesBlock{}
	for i := 0; i+1 < len(nameRoles); i += 2 {
		b.Images = append(b.Images, &syntax.ImageDecl{Name: nameRoles[i], Role: nameRoles[i+1]})
	}
	return b
}

func option(name string, value syntax.Expression) *syntax.Option {
	return &syntax.Option{Name: name, Value: value}
}

func options(opts ...*syntax.Option) *syntax.OptionsBlock { return &syntax.OptionsBlock{Options: opts} }

func initVar(name string, value syntax.Expression) *syntax.InitVar {
	return &syntax.InitVar{Name: name, Value: value}
}

func inits(vars ...*syntax.InitVar) *syntax.InitBlock { return &syntax.InitBlock{Vars: vars} }

func script(blocks []syntax.Block, body ...syntax.Statement) *syntax.Script {
	return &syntax.Script{Blocks: blocks, Body: body}
}

func body(stmts ...syntax.Statement) *syntax.Script { return script(nil, stmts...) }

var testRoles = ImageRoles{"src": SourceRole, "dest": DestRole}

// analyze runs the scope and type passes over s with the test image roles.
func analyze(s *syntax.Script) (*Scopes, *Types, hcl.Diagnostics) {
	scopes, diagnostics := BindVars(s, testRoles, lookup.Constants())
	types, diags := InferTypes(s, scopes, lookup.Functions(), lookup.Constants())
	return scopes, types, append(diagnostics, diags...)
}

func summaries(diagnostics hcl.Diagnostics) []string {
	var messages []string
	for _, d := range diagnostics {
		messages = append(messages, d.Summary)
	}
	return messages
}

func compile(t *testing.T, s *syntax.Script) *Result {
	result, diagnostics := Compile(s, Config{ImageRoles: testRoles})
	require.Empty(t, summaries(diagnostics))
	require.NotNil(t, result.Script)
	return result
}
