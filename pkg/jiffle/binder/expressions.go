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
	"github.com/geosolutions/jiffle/pkg/jiffle/lookup"
	"github.com/geosolutions/jiffle/pkg/jiffle/syntax"
	"github.com/geosolutions/jiffle/pkg/util/contract"
	"github.com/golang/glog"
	"github.com/hashicorp/hcl/v2"
)

// Types holds the results of type inference.
type Types struct {
	// Nodes records the type of every expression outside the options and images blocks.
	Nodes TypeMap
	// Calls records the overload each function call resolved to.
	Calls CallMap
}

type symbolKey struct {
	scope *Scope
	name  string
}

type typer struct {
	funcs  *lookup.FunctionTable
	consts *lookup.ConstantTable
	scopes *Scopes
	types  *Types

	// poisoned holds the variables whose first assignment had an erroneous value. Reads of these are not reported
	// again.
	poisoned map[symbolKey]bool
}

// InferTypes assigns a type to every expression of script and checks that values flow into compatible operators,
// functions and variables. Variables whose kind is still unknown are fixed by the first value assigned to them.
func InferTypes(script *syntax.Script, scopes *Scopes, funcs *lookup.FunctionTable,
	consts *lookup.ConstantTable) (*Types, hcl.Diagnostics) {

	t := &typer{
		funcs:    funcs,
		consts:   consts,
		scopes:   scopes,
		types:    &Types{Nodes: TypeMap{}, Calls: CallMap{}},
		poisoned: map[symbolKey]bool{},
	}

	var diagnostics hcl.Diagnostics
	if initBlock := firstInitBlock(script); initBlock != nil {
		for _, v := range initBlock.Vars {
			diagnostics = append(diagnostics, t.typeInitVar(v)...)
		}
	}
	for _, stmt := range script.Body {
		diagnostics = append(diagnostics, t.typeStatement(stmt)...)
	}

	glog.V(7).Infof("typed %d expression(s), resolved %d call(s)", len(t.types.Nodes), len(t.types.Calls))
	return t.types, diagnostics
}

func (t *typer) typeInitVar(v *syntax.InitVar) hcl.Diagnostics {
	if v.Value == nil {
		return nil
	}

	valueType, diagnostics := t.typeExpression(v.Value)
	if _, declared := t.scopes.Nodes[v]; declared {
		t.finalize(t.scopes.Global, v.Name, valueType)
	}
	return diagnostics
}

// finalize fixes the kind of an unknown variable from the type of its first value.
func (t *typer) finalize(scope *Scope, name string, valueType lookup.JiffleType) {
	switch valueType {
	case lookup.D:
		scope.resolve(name, ScalarKind)
	case lookup.List:
		scope.resolve(name, ListKind)
	default:
		t.poisoned[symbolKey{scope.DeclaringScope(name), name}] = true
	}
	glog.V(9).Infof("variable %s is %v", name, valueType)
}

func (t *typer) isPoisoned(scope *Scope, name string) bool {
	return t.poisoned[symbolKey{scope.DeclaringScope(name), name}]
}

func (t *typer) typeStatement(stmt syntax.Statement) hcl.Diagnostics {
	if stmt == nil {
		return nil
	}

	switch stmt := stmt.(type) {
	case *syntax.BlockStmt:
		var diagnostics hcl.Diagnostics
		for _, s := range stmt.Stmts {
			diagnostics = append(diagnostics, t.typeStatement(s)...)
		}
		return diagnostics
	case *syntax.ExpressionStmt:
		_, diagnostics := t.typeExpression(stmt.Expr)
		return diagnostics
	case *syntax.AssignStmt:
		return t.typeAssignment(stmt)
	case *syntax.AppendStmt:
		return t.typeAppend(stmt)
	case *syntax.IfStmt:
		diagnostics := t.typeCondition("if condition", stmt.Cond)
		diagnostics = append(diagnostics, t.typeStatement(stmt.Then)...)
		return append(diagnostics, t.typeStatement(stmt.Else)...)
	case *syntax.WhileStmt:
		diagnostics := t.typeCondition("while condition", stmt.Cond)
		return append(diagnostics, t.typeStatement(stmt.Body)...)
	case *syntax.UntilStmt:
		diagnostics := t.typeCondition("until condition", stmt.Cond)
		return append(diagnostics, t.typeStatement(stmt.Body)...)
	case *syntax.ForeachStmt:
		diagnostics := t.typeForeachSource(stmt.Source)
		return append(diagnostics, t.typeStatement(stmt.Body)...)
	case *syntax.BreakStmt:
		return nil
	case *syntax.BreakIfStmt:
		return t.typeCondition("breakif condition", stmt.Cond)
	default:
		contract.Failf("unexpected statement of type %T", stmt)
		return nil
	}
}

func (t *typer) typeCondition(what string, cond syntax.Expression) hcl.Diagnostics {
	condType, diagnostics := t.typeExpression(cond)
	if condType == lookup.List {
		diagnostics = append(diagnostics, scalarRequired(what, condType, cond.Range()))
	}
	return diagnostics
}

func (t *typer) typeAssignment(stmt *syntax.AssignStmt) hcl.Diagnostics {
	valueType, diagnostics := t.typeExpression(stmt.Value)

	name := stmt.Target.Name
	if t.consts.IsDefined(name) {
		return diagnostics
	}
	scope := t.scopes.Nodes.Get(stmt)
	sym, ok := scope.Lookup(name)
	if !ok {
		return diagnostics
	}

	rng := stmt.Range()
	switch sym.Kind {
	case UnknownKind:
		if stmt.Op == syntax.OpAssign {
			t.finalize(scope, name, valueType)
		}
	case ScalarKind:
		if valueType == lookup.List {
			diagnostics = append(diagnostics, errorf(rng, "cannot assign a list value to scalar variable %s", name))
		}
	case ListKind:
		switch {
		case stmt.Op != syntax.OpAssign:
			diagnostics = append(diagnostics, errorf(rng, "operator %s cannot be used with list variable %s", stmt.Op, name))
		case valueType == lookup.D:
			diagnostics = append(diagnostics, errorf(rng, "cannot assign a scalar value to list variable %s", name))
		}
	case DestImageKind:
		if valueType == lookup.List {
			diagnostics = append(diagnostics, errorf(rng, "cannot write a list value to destination image %s", name))
		}
	}
	return diagnostics
}

func (t *typer) typeAppend(stmt *syntax.AppendStmt) hcl.Diagnostics {
	valueType, diagnostics := t.typeExpression(stmt.Value)

	name := stmt.Target.Name
	if t.consts.IsDefined(name) {
		return diagnostics
	}
	scope := t.scopes.Nodes.Get(stmt)
	sym, ok := scope.Lookup(name)
	if !ok {
		return diagnostics
	}

	switch sym.Kind {
	case ListKind:
		if valueType == lookup.List {
			diagnostics = append(diagnostics, scalarRequired("appended value", valueType, stmt.Value.Range()))
		}
	case ScalarKind:
		diagnostics = append(diagnostics, errorf(stmt.Target.Range(), "operator << requires a list variable, %s is a scalar", name))
	case UnknownKind:
		if !t.isPoisoned(scope, name) {
			diagnostics = append(diagnostics, usedBeforeAssignment(name, stmt.Target.Range()))
		}
	}
	return diagnostics
}

func (t *typer) typeForeachSource(source syntax.Expression) hcl.Diagnostics {
	switch source := source.(type) {
	case *syntax.RangeExpr:
		var diagnostics hcl.Diagnostics
		for _, bound := range []syntax.Expression{source.Lo, source.Hi} {
			boundType, diags := t.typeExpression(bound)
			diagnostics = append(diagnostics, diags...)
			if boundType == lookup.List {
				diagnostics = append(diagnostics, scalarRequired("range bound", boundType, bound.Range()))
			}
		}
		t.types.Nodes[source] = lookup.List
		return diagnostics
	case *syntax.ListLiteral, *syntax.Identifier:
		sourceType, diagnostics := t.typeExpression(source)
		if sourceType == lookup.D {
			diagnostics = append(diagnostics, errorf(source.Range(), "foreach requires a list, found %v", sourceType))
		}
		return diagnostics
	default:
		_, diagnostics := t.typeExpression(source)
		return append(diagnostics, errorf(source.Range(),
			"foreach requires a list literal, a list variable or a range"))
	}
}

// typeExpression infers the type of x and its subexpressions. An expression whose type cannot be inferred because
// of an error, reported here or earlier, is Unknown; operators over Unknown operands are Unknown without a further
// error.
func (t *typer) typeExpression(x syntax.Expression) (lookup.JiffleType, hcl.Diagnostics) {
	typ, diagnostics := t.inferExpression(x)
	t.types.Nodes[x] = typ
	return typ, diagnostics
}

func (t *typer) inferExpression(x syntax.Expression) (lookup.JiffleType, hcl.Diagnostics) {
	switch x := x.(type) {
	case *syntax.IntLiteral, *syntax.FloatLiteral, *syntax.BoolLiteral:
		return lookup.D, nil
	case *syntax.StringLiteral:
		return lookup.UnknownType, hcl.Diagnostics{misplacedLiteral("string", x.Range())}
	case *syntax.NullLiteral:
		return lookup.UnknownType, hcl.Diagnostics{misplacedLiteral("null", x.Range())}
	case *syntax.ParenExpr:
		return t.typeExpression(x.Expr)
	case *syntax.Identifier:
		return t.typeIdentifier(x)
	case *syntax.ListLiteral:
		var diagnostics hcl.Diagnostics
		for _, e := range x.Elements {
			elementType, diags := t.typeExpression(e)
			diagnostics = append(diagnostics, diags...)
			if elementType == lookup.List {
				diagnostics = append(diagnostics, scalarRequired("list element", elementType, e.Range()))
			}
		}
		return lookup.List, diagnostics
	case *syntax.RangeExpr:
		_, diagnostics := t.typeExpression(x.Lo)
		_, diags := t.typeExpression(x.Hi)
		diagnostics = append(diagnostics, diags...)
		return lookup.UnknownType, append(diagnostics, errorf(x.Range(), "a range can only be used as a foreach source"))
	case *syntax.UnaryExpr:
		return t.typeExpression(x.Operand)
	case *syntax.PrefixExpr:
		return t.typeIncrement(x.Op, x.Target, t.scopes.Nodes.Get(x))
	case *syntax.PostfixExpr:
		return t.typeIncrement(x.Op, x.Target, t.scopes.Nodes.Get(x))
	case *syntax.BinaryExpr:
		return t.typeBinary(x)
	case *syntax.TernaryExpr:
		return t.typeTernary(x)
	case *syntax.CallExpr:
		return t.typeCall(x)
	case *syntax.ImageCall:
		return t.typeImageCall(x)
	default:
		contract.Failf("unexpected expression of type %T", x)
		return lookup.UnknownType, nil
	}
}

func (t *typer) typeIdentifier(x *syntax.Identifier) (lookup.JiffleType, hcl.Diagnostics) {
	if t.consts.IsDefined(x.Name) {
		return lookup.D, nil
	}

	scope := t.scopes.Nodes.Get(x)
	sym, ok := scope.Lookup(x.Name)
	if !ok {
		return lookup.UnknownType, nil
	}

	switch sym.Kind {
	case ScalarKind, LoopVarKind, SourceImageKind:
		return lookup.D, nil
	case ListKind:
		return lookup.List, nil
	case UnknownKind:
		if t.isPoisoned(scope, x.Name) {
			return lookup.UnknownType, nil
		}
		return lookup.UnknownType, hcl.Diagnostics{usedBeforeAssignment(x.Name, x.Range())}
	default:
		return lookup.UnknownType, nil
	}
}

func (t *typer) typeIncrement(op syntax.Operator, target *syntax.Identifier,
	scope *Scope) (lookup.JiffleType, hcl.Diagnostics) {

	sym, ok := scope.Lookup(target.Name)
	if !ok || t.consts.IsDefined(target.Name) {
		return lookup.UnknownType, nil
	}

	switch sym.Kind {
	case ScalarKind:
		return lookup.D, nil
	case ListKind:
		return lookup.UnknownType, hcl.Diagnostics{
			errorf(target.Range(), "operator %s cannot be applied to list variable %s", op, target.Name),
		}
	case UnknownKind:
		if t.isPoisoned(scope, target.Name) {
			return lookup.UnknownType, nil
		}
		return lookup.UnknownType, hcl.Diagnostics{usedBeforeAssignment(target.Name, target.Range())}
	default:
		return lookup.UnknownType, nil
	}
}

func (t *typer) typeBinary(x *syntax.BinaryExpr) (lookup.JiffleType, hcl.Diagnostics) {
	leftType, diagnostics := t.typeExpression(x.Left)
	rightType, diags := t.typeExpression(x.Right)
	diagnostics = append(diagnostics, diags...)

	if x.Op == syntax.OpPow && rightType == lookup.List {
		return lookup.UnknownType, append(diagnostics, scalarRequired("exponent", rightType, x.Right.Range()))
	}
	if leftType == lookup.UnknownType || rightType == lookup.UnknownType {
		return lookup.UnknownType, diagnostics
	}
	if leftType == lookup.List && rightType == lookup.List {
		return lookup.UnknownType, append(diagnostics, listOperands(x.Op, x.Range()))
	}
	return widen(leftType, rightType), diagnostics
}

// widen combines the types of two operands: a list with a scalar is a list, two scalars are a scalar.
func widen(a, b lookup.JiffleType) lookup.JiffleType {
	if a == lookup.List || b == lookup.List {
		return lookup.List
	}
	return lookup.D
}

func (t *typer) typeTernary(x *syntax.TernaryExpr) (lookup.JiffleType, hcl.Diagnostics) {
	diagnostics := t.typeCondition("condition", x.Cond)
	trueType, diags := t.typeExpression(x.TrueResult)
	diagnostics = append(diagnostics, diags...)
	falseType, diags := t.typeExpression(x.FalseResult)
	diagnostics = append(diagnostics, diags...)

	switch {
	case trueType == lookup.UnknownType || falseType == lookup.UnknownType:
		return lookup.UnknownType, diagnostics
	case trueType != falseType:
		return lookup.UnknownType, append(diagnostics, errorf(x.Range(),
			"branches of a conditional expression must have the same type, found %v and %v", trueType, falseType))
	default:
		return trueType, diagnostics
	}
}

func (t *typer) typeCall(x *syntax.CallExpr) (lookup.JiffleType, hcl.Diagnostics) {
	var diagnostics hcl.Diagnostics
	argTypes := make([]lookup.JiffleType, len(x.Args))
	known := true
	for i, arg := range x.Args {
		argType, diags := t.typeExpression(arg)
		diagnostics = append(diagnostics, diags...)
		argTypes[i] = argType
		known = known && argType != lookup.UnknownType
	}
	if !known {
		return lookup.UnknownType, diagnostics
	}

	info, ok := t.funcs.Lookup(x.Name, argTypes)
	if !ok {
		return lookup.UnknownType, append(diagnostics, unknownFunction(x.Name, argTypes, x.NameRange))
	}
	t.types.Calls[x] = info
	return info.ReturnType, diagnostics
}

func (t *typer) typeImageCall(x *syntax.ImageCall) (lookup.JiffleType, hcl.Diagnostics) {
	var diagnostics hcl.Diagnostics
	check := func(what string, operand syntax.Expression) {
		if operand == nil {
			return
		}
		operandType, diags := t.typeExpression(operand)
		diagnostics = append(diagnostics, diags...)
		if operandType == lookup.List {
			diagnostics = append(diagnostics, scalarRequired(what, operandType, operand.Range()))
		}
	}
	check("band index", x.Band)
	if x.Pixel != nil {
		check("pixel x position", x.Pixel.X.Expr)
		check("pixel y position", x.Pixel.Y.Expr)
	}

	sym, ok := t.scopes.Global.Lookup(x.Name)
	switch {
	case ok && sym.Kind == SourceImageKind:
		return lookup.D, diagnostics
	case ok && sym.Kind == DestImageKind:
		return lookup.UnknownType, append(diagnostics, readOfDestImage(x.Name, x.NameRange))
	default:
		return lookup.UnknownType, append(diagnostics, notAnImage(x.Name, x.NameRange))
	}
}
