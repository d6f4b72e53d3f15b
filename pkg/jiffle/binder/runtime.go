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
	"sort"

	"github.com/geosolutions/jiffle/pkg/jiffle/lookup"
	"github.com/geosolutions/jiffle/pkg/jiffle/model"
	"github.com/geosolutions/jiffle/pkg/jiffle/syntax"
	"github.com/geosolutions/jiffle/pkg/util/contract"
	"github.com/golang/glog"
)

// resolver answers the questions lowering asks about names, types and calls.
type resolver interface {
	kindOf(x *syntax.Identifier) SymbolKind
	typeOf(x syntax.Expression) lookup.JiffleType
	callee(x *syntax.CallExpr) lookup.FunctionInfo
}

// analysis resolves against the results of the scope and type passes.
type analysis struct {
	scopes *Scopes
	types  *Types
}

func (a analysis) kindOf(x *syntax.Identifier) SymbolKind {
	return a.scopes.Nodes.Get(x).Get(x.Name).Kind
}

func (a analysis) typeOf(x syntax.Expression) lookup.JiffleType {
	return a.types.Nodes.Get(x)
}

func (a analysis) callee(x *syntax.CallExpr) lookup.FunctionInfo {
	return a.types.Calls.Get(x)
}

type lowerer struct {
	resolver resolver
	consts   *lookup.ConstantTable

	xProxy lookup.FunctionInfo
	yProxy lookup.FunctionInfo
}

func newLowerer(r resolver, funcs *lookup.FunctionTable, consts *lookup.ConstantTable) *lowerer {
	xProxy, ok := funcs.Lookup("x", nil)
	contract.Assertf(ok && xProxy.IsProxy(), "function table has no proxy for x")
	yProxy, ok := funcs.Lookup("y", nil)
	contract.Assertf(ok && yProxy.IsProxy(), "function table has no proxy for y")

	return &lowerer{resolver: r, consts: consts, xProxy: xProxy, yProxy: yProxy}
}

func (l *lowerer) currentX() model.Expression { return &model.FunctionCall{Function: l.xProxy} }
func (l *lowerer) currentY() model.Expression { return &model.FunctionCall{Function: l.yProxy} }

// currentPixel reads band 0 of image at the pixel being computed.
func (l *lowerer) currentPixel(image string) *model.GetSourceValue {
	return &model.GetSourceValue{
		Image: image,
		Band:  &model.IntLiteral{Value: 0},
		X:     l.currentX(),
		Y:     l.currentY(),
	}
}

func (l *lowerer) lowerExpression(x syntax.Expression) model.Expression {
	switch x := x.(type) {
	case *syntax.IntLiteral:
		return &model.IntLiteral{Value: x.Value}
	case *syntax.FloatLiteral:
		return &model.DoubleLiteral{Value: x.Value}
	case *syntax.BoolLiteral:
		return &model.BooleanLiteral{Value: x.Value}
	case *syntax.ParenExpr:
		return l.lowerExpression(x.Expr)
	case *syntax.Identifier:
		return l.lowerIdentifier(x)
	case *syntax.ListLiteral:
		return l.lowerList(x)
	case *syntax.UnaryExpr:
		return &model.UnaryExpression{Op: model.Operator(x.Op), Operand: l.lowerExpression(x.Operand)}
	case *syntax.PrefixExpr:
		return &model.PrefixExpression{Op: model.Operator(x.Op), Var: &model.Variable{Name: x.Target.Name, VarType: lookup.D}}
	case *syntax.PostfixExpr:
		return &model.PostfixExpression{Op: model.Operator(x.Op), Var: &model.Variable{Name: x.Target.Name, VarType: lookup.D}}
	case *syntax.BinaryExpr:
		return &model.BinaryExpression{
			Op:       model.Operator(x.Op),
			Left:     l.lowerExpression(x.Left),
			Right:    l.lowerExpression(x.Right),
			ExprType: l.resolver.typeOf(x),
		}
	case *syntax.TernaryExpr:
		return &model.TernaryExpression{
			Condition:   l.lowerExpression(x.Cond),
			TrueResult:  l.lowerExpression(x.TrueResult),
			FalseResult: l.lowerExpression(x.FalseResult),
			ExprType:    l.resolver.typeOf(x),
		}
	case *syntax.CallExpr:
		args := make([]model.Expression, len(x.Args))
		for i, a := range x.Args {
			args[i] = l.lowerExpression(a)
		}
		return &model.FunctionCall{Function: l.resolver.callee(x), Args: args}
	case *syntax.ImageCall:
		return l.lowerImageCall(x)
	default:
		contract.Failf("cannot lower expression of type %T", x)
		return nil
	}
}

func (l *lowerer) lowerIdentifier(x *syntax.Identifier) model.Expression {
	if l.consts.IsDefined(x.Name) {
		if l.consts.IsNaN(x.Name) {
			return &model.NaNLiteral{}
		}
		return &model.DoubleLiteral{Value: l.consts.Value(x.Name)}
	}

	switch kind := l.resolver.kindOf(x); kind {
	case SourceImageKind:
		return l.currentPixel(x.Name)
	case ScalarKind, LoopVarKind:
		return &model.Variable{Name: x.Name, VarType: lookup.D}
	case ListKind:
		return &model.Variable{Name: x.Name, VarType: lookup.List}
	default:
		contract.Failf("cannot read %s %s", kind, x.Name)
		return nil
	}
}

func (l *lowerer) lowerList(x *syntax.ListLiteral) *model.ListLiteral {
	elements := make([]model.Expression, len(x.Elements))
	for i, e := range x.Elements {
		elements[i] = l.lowerExpression(e)
	}
	return &model.ListLiteral{Elements: elements}
}

func (l *lowerer) lowerImageCall(x *syntax.ImageCall) *model.GetSourceValue {
	read := l.currentPixel(x.Name)
	if x.Band != nil {
		read.Band = l.lowerExpression(x.Band)
	}
	if x.Pixel != nil {
		read.X = l.lowerPosition(x.Pixel.X, l.currentX)
		read.Y = l.lowerPosition(x.Pixel.Y, l.currentY)
	}
	return read
}

// lowerPosition lowers one pixel coordinate. Relative coordinates are offsets from the current pixel.
func (l *lowerer) lowerPosition(pos syntax.PixelPos, current func() model.Expression) model.Expression {
	if !pos.Relative {
		return l.lowerExpression(pos.Expr)
	}
	if isZeroLiteral(pos.Expr) {
		return current()
	}
	return &model.BinaryExpression{
		Op:       model.Operator(syntax.OpAdd),
		Left:     current(),
		Right:    l.lowerExpression(pos.Expr),
		ExprType: lookup.D,
	}
}

func isZeroLiteral(x syntax.Expression) bool {
	switch x := x.(type) {
	case *syntax.IntLiteral:
		return x.Value == 0
	case *syntax.FloatLiteral:
		return x.Value == 0
	case *syntax.ParenExpr:
		return isZeroLiteral(x.Expr)
	default:
		return false
	}
}

type modelBuilder struct {
	*lowerer

	scopes *Scopes

	// declared holds the variables already stored to in their declaring scope.
	declared map[symbolKey]bool
}

// BuildModel lowers a bound and typed script to its executable model. The script must have passed every earlier
// pass without errors.
func BuildModel(script *syntax.Script, roles ImageRoles, options map[string]string, scopes *Scopes, types *Types,
	tables Tables) *model.Script {

	b := &modelBuilder{
		lowerer:  newLowerer(analysis{scopes: scopes, types: types}, tables.Functions, tables.Constants),
		scopes:   scopes,
		declared: map[symbolKey]bool{},
	}

	result := &model.Script{
		SourceImages: roles.SourceNames(),
		DestImages:   roles.DestNames(),
	}

	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		code, err := tables.Options.ActivationCode(name, options[name])
		contract.Assertf(err == nil, "option %s was not validated: %v", name, err)
		result.Options = append(result.Options, &model.Option{Name: name, Value: options[name], Code: code})
	}

	if initBlock := firstInitBlock(script); initBlock != nil {
		for _, v := range initBlock.Vars {
			if _, declared := scopes.Nodes[v]; !declared {
				continue
			}
			var value model.Expression = &model.DefaultScalarValue{}
			if v.Value != nil {
				value = b.lowerExpression(v.Value)
			}
			result.GlobalVars = append(result.GlobalVars, &model.GlobalVariable{Name: v.Name, Init: value})
		}
	}

	body := &model.Block{}
	for _, stmt := range script.Body {
		body.Statements = append(body.Statements, b.lowerStatement(stmt))
	}
	result.Body = body

	glog.V(7).Infof("lowered %d statement(s) and %d global variable(s)", len(body.Statements), len(result.GlobalVars))
	return result
}

// declare reports whether a store to name is its first in the scope that declares it. Globals persist across
// pixels and are never declared by a store.
func (b *modelBuilder) declare(scope *Scope, name string) bool {
	declaring := scope.DeclaringScope(name)
	if declaring.IsGlobal() {
		return false
	}
	key := symbolKey{declaring, name}
	if b.declared[key] {
		return false
	}
	b.declared[key] = true
	return true
}

func (b *modelBuilder) lowerStatement(stmt syntax.Statement) model.Statement {
	switch stmt := stmt.(type) {
	case nil:
		return nil
	case *syntax.BlockStmt:
		block := &model.Block{}
		for _, s := range stmt.Stmts {
			block.Statements = append(block.Statements, b.lowerStatement(s))
		}
		return block
	case *syntax.ExpressionStmt:
		return &model.Evaluate{Expr: b.lowerExpression(stmt.Expr)}
	case *syntax.AssignStmt:
		return b.lowerAssignment(stmt)
	case *syntax.AppendStmt:
		return &model.ListAppend{
			Var:   &model.Variable{Name: stmt.Target.Name, VarType: lookup.List},
			Value: b.lowerExpression(stmt.Value),
		}
	case *syntax.IfStmt:
		return &model.IfElse{
			Condition: b.lowerExpression(stmt.Cond),
			Then:      b.lowerStatement(stmt.Then),
			Else:      b.lowerStatement(stmt.Else),
		}
	case *syntax.WhileStmt:
		return &model.WhileLoop{Condition: b.lowerExpression(stmt.Cond), Body: b.lowerStatement(stmt.Body)}
	case *syntax.UntilStmt:
		return &model.UntilLoop{Condition: b.lowerExpression(stmt.Cond), Body: b.lowerStatement(stmt.Body)}
	case *syntax.ForeachStmt:
		return b.lowerForeach(stmt)
	case *syntax.BreakStmt:
		return &model.Break{}
	case *syntax.BreakIfStmt:
		return &model.BreakIf{Condition: b.lowerExpression(stmt.Cond)}
	default:
		contract.Failf("cannot lower statement of type %T", stmt)
		return nil
	}
}

func (b *modelBuilder) lowerAssignment(stmt *syntax.AssignStmt) model.Statement {
	scope := b.scopes.Nodes.Get(stmt)
	name := stmt.Target.Name
	value := b.lowerExpression(stmt.Value)

	switch kind := scope.Get(name).Kind; kind {
	case DestImageKind:
		return &model.SetDestValue{Image: name, Value: value}
	case ScalarKind:
		return &model.Store{
			Var:     &model.Variable{Name: name, VarType: lookup.D},
			Op:      model.Operator(stmt.Op),
			Value:   value,
			Declare: b.declare(scope, name),
		}
	case ListKind:
		return &model.ListStore{
			Var:     &model.Variable{Name: name, VarType: lookup.List},
			Value:   value,
			Declare: b.declare(scope, name),
		}
	default:
		contract.Failf("cannot assign to %s %s", kind, name)
		return nil
	}
}

func (b *modelBuilder) lowerForeach(stmt *syntax.ForeachStmt) model.Statement {
	name := stmt.Var.Name
	body := b.lowerStatement(stmt.Body)

	switch source := stmt.Source.(type) {
	case *syntax.ListLiteral:
		return &model.ForeachListLiteral{Var: name, List: b.lowerList(source), Body: body}
	case *syntax.Identifier:
		return &model.ForeachListVar{
			Var:  name,
			List: &model.Variable{Name: source.Name, VarType: lookup.List},
			Body: body,
		}
	case *syntax.RangeExpr:
		return &model.ForeachRange{
			Var:  name,
			Lo:   b.lowerExpression(source.Lo),
			Hi:   b.lowerExpression(source.Hi),
			Body: body,
		}
	default:
		contract.Failf("cannot lower foreach over %T", source)
		return nil
	}
}
