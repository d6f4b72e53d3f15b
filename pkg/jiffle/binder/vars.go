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

// Scopes is the scope tree built for a script, along with the scope each node was bound in.
type Scopes struct {
	// Global holds the images and the init block variables.
	Global *Scope
	// Script is the scope of the per-pixel body.
	Script *Scope
	// Nodes maps identifiers, calls, increments, statements and accepted init variables to their scopes.
	Nodes ScopeMap
}

type varBinder struct {
	consts *lookup.ConstantTable
	scopes *Scopes

	loopDepth int
	inInit    bool
}

// BindVars builds the scope tree of script and checks how each variable is declared, assigned and read. The global
// scope is seeded with the given image roles before any statement is visited.
func BindVars(script *syntax.Script, roles ImageRoles, consts *lookup.ConstantTable) (*Scopes, hcl.Diagnostics) {
	global := NewGlobalScope()
	for _, name := range roles.SourceNames() {
		addNew(global, Symbol{Name: name, Kind: SourceImageKind})
	}
	for _, name := range roles.DestNames() {
		addNew(global, Symbol{Name: name, Kind: DestImageKind})
	}

	b := &varBinder{
		consts: consts,
		scopes: &Scopes{
			Global: global,
			Script: global.NewChild(ScriptScope),
			Nodes:  ScopeMap{},
		},
	}

	var diagnostics hcl.Diagnostics
	seenInit := false
	for _, block := range script.Blocks {
		initBlock, ok := block.(*syntax.InitBlock)
		if !ok {
			continue
		}
		if seenInit {
			diagnostics = append(diagnostics, duplicateBlock("init", initBlock.Range()))
			continue
		}
		seenInit = true
		diagnostics = append(diagnostics, b.bindInitBlock(initBlock)...)
	}

	for _, stmt := range script.Body {
		diagnostics = append(diagnostics, b.bindStatement(stmt, b.scopes.Script)...)
	}

	glog.V(7).Infof("bound %d node(s) to scopes", len(b.scopes.Nodes))
	return b.scopes, diagnostics
}

func addNew(scope *Scope, sym Symbol) {
	// Callers have already checked that sym.Name is free in scope.
	contract.IgnoreError(scope.Add(sym, false))
}

// firstInitBlock returns the init block that was bound, if any. Any further init blocks are reported and ignored.
func firstInitBlock(script *syntax.Script) *syntax.InitBlock {
	for _, block := range script.Blocks {
		if initBlock, ok := block.(*syntax.InitBlock); ok {
			return initBlock
		}
	}
	return nil
}

func (b *varBinder) bindInitBlock(initBlock *syntax.InitBlock) hcl.Diagnostics {
	var diagnostics hcl.Diagnostics
	global := b.scopes.Global

	b.inInit = true
	defer func() { b.inInit = false }()

	for _, v := range initBlock.Vars {
		if v.Value != nil {
			diagnostics = append(diagnostics, b.bindExpression(v.Value, global)...)
		}

		sym, exists := global.Lookup(v.Name)
		switch {
		case b.consts.IsDefined(v.Name):
			diagnostics = append(diagnostics, errorf(v.Range(), "init variable %s has the name of a constant", v.Name))
		case exists && sym.Kind.IsImage():
			diagnostics = append(diagnostics, errorf(v.Range(), "init variable %s has the name of an image", v.Name))
		case exists:
			diagnostics = append(diagnostics, alreadyDeclared(v.Name, v.Range()))
		default:
			kind := UnknownKind
			if v.Value == nil {
				kind = ScalarKind
			}
			addNew(global, Symbol{Name: v.Name, Kind: kind})
			b.scopes.Nodes[v] = global
		}
	}
	return diagnostics
}

func (b *varBinder) bindStatement(stmt syntax.Statement, scope *Scope) hcl.Diagnostics {
	if stmt == nil {
		return nil
	}

	switch stmt := stmt.(type) {
	case *syntax.BlockStmt:
		inner := scope.NewChild(BlockScope)
		b.scopes.Nodes[stmt] = inner

		var diagnostics hcl.Diagnostics
		for _, s := range stmt.Stmts {
			diagnostics = append(diagnostics, b.bindStatement(s, inner)...)
		}
		return diagnostics
	case *syntax.ExpressionStmt:
		b.scopes.Nodes[stmt] = scope
		return b.bindExpression(stmt.Expr, scope)
	case *syntax.AssignStmt:
		b.scopes.Nodes[stmt] = scope
		b.scopes.Nodes[stmt.Target] = scope

		var diagnostics hcl.Diagnostics
		if diag := b.checkAssignment(stmt, scope); diag != nil {
			diagnostics = append(diagnostics, diag)
		}
		return append(diagnostics, b.bindExpression(stmt.Value, scope)...)
	case *syntax.AppendStmt:
		b.scopes.Nodes[stmt] = scope
		b.scopes.Nodes[stmt.Target] = scope

		var diagnostics hcl.Diagnostics
		if diag := b.checkMutation(stmt.Target, scope); diag != nil {
			diagnostics = append(diagnostics, diag)
		}
		return append(diagnostics, b.bindExpression(stmt.Value, scope)...)
	case *syntax.IfStmt:
		b.scopes.Nodes[stmt] = scope

		diagnostics := b.bindExpression(stmt.Cond, scope)
		diagnostics = append(diagnostics, b.bindStatement(stmt.Then, scope)...)
		return append(diagnostics, b.bindStatement(stmt.Else, scope)...)
	case *syntax.WhileStmt:
		b.scopes.Nodes[stmt] = scope
		diagnostics := b.bindExpression(stmt.Cond, scope)
		return append(diagnostics, b.bindLoopBody(stmt.Body, scope.NewChild(LoopScope))...)
	case *syntax.UntilStmt:
		b.scopes.Nodes[stmt] = scope
		diagnostics := b.bindExpression(stmt.Cond, scope)
		return append(diagnostics, b.bindLoopBody(stmt.Body, scope.NewChild(LoopScope))...)
	case *syntax.ForeachStmt:
		return b.bindForeach(stmt, scope)
	case *syntax.BreakStmt:
		b.scopes.Nodes[stmt] = scope
		if b.loopDepth == 0 {
			return hcl.Diagnostics{outsideLoop("break", stmt.Range())}
		}
		return nil
	case *syntax.BreakIfStmt:
		b.scopes.Nodes[stmt] = scope

		var diagnostics hcl.Diagnostics
		if b.loopDepth == 0 {
			diagnostics = append(diagnostics, outsideLoop("breakif", stmt.Range()))
		}
		return append(diagnostics, b.bindExpression(stmt.Cond, scope)...)
	default:
		contract.Failf("unexpected statement of type %T", stmt)
		return nil
	}
}

func (b *varBinder) bindLoopBody(body syntax.Statement, loop *Scope) hcl.Diagnostics {
	b.loopDepth++
	defer func() { b.loopDepth-- }()
	return b.bindStatement(body, loop)
}

func (b *varBinder) bindForeach(stmt *syntax.ForeachStmt, scope *Scope) hcl.Diagnostics {
	var diagnostics hcl.Diagnostics

	// The source is evaluated before the loop variable exists.
	if rng, ok := stmt.Source.(*syntax.RangeExpr); ok {
		diagnostics = append(diagnostics, b.bindExpression(rng.Lo, scope)...)
		diagnostics = append(diagnostics, b.bindExpression(rng.Hi, scope)...)
	} else {
		diagnostics = append(diagnostics, b.bindExpression(stmt.Source, scope)...)
	}

	loop := scope.NewChild(LoopScope)
	name := stmt.Var.Name
	if b.consts.IsDefined(name) {
		diagnostics = append(diagnostics, errorf(stmt.Var.Range(), "loop variable %s has the name of a constant", name))
	} else if sym, ok := scope.Lookup(name); ok && sym.Kind.IsImage() {
		diagnostics = append(diagnostics, errorf(stmt.Var.Range(), "loop variable %s has the name of an image", name))
	}
	// The variable is declared even when its name is rejected so that reads in the body are not reported again.
	addNew(loop, Symbol{Name: name, Kind: LoopVarKind})

	b.scopes.Nodes[stmt] = loop
	b.scopes.Nodes[stmt.Var] = loop

	return append(diagnostics, b.bindLoopBody(stmt.Body, loop)...)
}

// checkAssignment validates the target of an assignment, declaring it in scope if it is new.
func (b *varBinder) checkAssignment(stmt *syntax.AssignStmt, scope *Scope) *hcl.Diagnostic {
	target := stmt.Target
	if b.consts.IsDefined(target.Name) {
		return invalidTarget(target.Name, "constant", target.Range())
	}

	sym, ok := scope.Lookup(target.Name)
	if !ok {
		if stmt.Op != syntax.OpAssign {
			return undefinedVariable(target.Name, target.Range())
		}
		addNew(scope, Symbol{Name: target.Name, Kind: UnknownKind})
		glog.V(9).Infof("declared %s at %v", target.Name, target.Range())
		return nil
	}

	switch sym.Kind {
	case LoopVarKind, SourceImageKind:
		return invalidTarget(target.Name, sym.Kind.String(), target.Range())
	case DestImageKind:
		if stmt.Op != syntax.OpAssign {
			return invalidDestOperator(target.Name, stmt.Op, target.Range())
		}
	}
	return nil
}

// checkMutation validates the target of an append or an increment, which must already be a variable.
func (b *varBinder) checkMutation(target *syntax.Identifier, scope *Scope) *hcl.Diagnostic {
	if b.consts.IsDefined(target.Name) {
		return invalidTarget(target.Name, "constant", target.Range())
	}

	sym, ok := scope.Lookup(target.Name)
	switch {
	case !ok:
		return undefinedVariable(target.Name, target.Range())
	case sym.Kind == LoopVarKind || sym.Kind.IsImage():
		return invalidTarget(target.Name, sym.Kind.String(), target.Range())
	}
	return nil
}

func (b *varBinder) bindExpression(x syntax.Expression, scope *Scope) hcl.Diagnostics {
	if x == nil {
		return nil
	}

	switch x := x.(type) {
	case *syntax.Identifier:
		b.scopes.Nodes[x] = scope
		if diag := b.checkRead(x, scope); diag != nil {
			return hcl.Diagnostics{diag}
		}
		return nil
	case *syntax.PrefixExpr:
		b.scopes.Nodes[x] = scope
		b.scopes.Nodes[x.Target] = scope
		if diag := b.checkMutation(x.Target, scope); diag != nil {
			return hcl.Diagnostics{diag}
		}
		return nil
	case *syntax.PostfixExpr:
		b.scopes.Nodes[x] = scope
		b.scopes.Nodes[x.Target] = scope
		if diag := b.checkMutation(x.Target, scope); diag != nil {
			return hcl.Diagnostics{diag}
		}
		return nil
	case *syntax.ImageCall:
		b.scopes.Nodes[x] = scope

		var diagnostics hcl.Diagnostics
		if sym, ok := scope.Lookup(x.Name); b.inInit && ok && sym.Kind == SourceImageKind {
			diagnostics = append(diagnostics, sourceReadInInit(x.Name, x.NameRange))
		}
		for _, child := range syntax.Children(x) {
			diagnostics = append(diagnostics, b.bindExpression(child.(syntax.Expression), scope)...)
		}
		return diagnostics
	default:
		if call, ok := x.(*syntax.CallExpr); ok {
			b.scopes.Nodes[call] = scope
		}

		var diagnostics hcl.Diagnostics
		for _, child := range syntax.Children(x) {
			diagnostics = append(diagnostics, b.bindExpression(child.(syntax.Expression), scope)...)
		}
		return diagnostics
	}
}

func (b *varBinder) checkRead(x *syntax.Identifier, scope *Scope) *hcl.Diagnostic {
	if b.consts.IsDefined(x.Name) {
		return nil
	}

	sym, ok := scope.Lookup(x.Name)
	switch {
	case !ok:
		return undefinedVariable(x.Name, x.Range())
	case sym.Kind == DestImageKind:
		return readOfDestImage(x.Name, x.Range())
	case sym.Kind == SourceImageKind && b.inInit:
		return sourceReadInInit(x.Name, x.Range())
	}
	return nil
}
