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

import "github.com/geosolutions/jiffle/pkg/util/contract"

// ExpressionVisitor is called for each expression visited by VisitExpression and VisitStatement.
type ExpressionVisitor func(x Expression)

// VisitExpression calls f for x and each of its subexpressions in pre-order.
func VisitExpression(x Expression, f ExpressionVisitor) {
	if x == nil {
		return
	}
	f(x)

	switch x := x.(type) {
	case *IntLiteral, *DoubleLiteral, *BooleanLiteral, *NaNLiteral, *DefaultScalarValue, *Variable:
	case *ListLiteral:
		for _, e := range x.Elements {
			VisitExpression(e, f)
		}
	case *GetSourceValue:
		VisitExpression(x.Band, f)
		VisitExpression(x.X, f)
		VisitExpression(x.Y, f)
	case *UnaryExpression:
		VisitExpression(x.Operand, f)
	case *PrefixExpression:
		VisitExpression(x.Var, f)
	case *PostfixExpression:
		VisitExpression(x.Var, f)
	case *BinaryExpression:
		VisitExpression(x.Left, f)
		VisitExpression(x.Right, f)
	case *TernaryExpression:
		VisitExpression(x.Condition, f)
		VisitExpression(x.TrueResult, f)
		VisitExpression(x.FalseResult, f)
	case *FunctionCall:
		for _, a := range x.Args {
			VisitExpression(a, f)
		}
	default:
		contract.Failf("unexpected expression of type %T", x)
	}
}

// VisitStatement calls f for every expression reachable from s, in source order.
func VisitStatement(s Statement, f ExpressionVisitor) {
	switch s := s.(type) {
	case nil:
	case *Block:
		for _, st := range s.Statements {
			VisitStatement(st, f)
		}
	case *Evaluate:
		VisitExpression(s.Expr, f)
	case *SetDestValue:
		VisitExpression(s.Value, f)
	case *Store:
		VisitExpression(s.Var, f)
		VisitExpression(s.Value, f)
	case *ListStore:
		VisitExpression(s.Var, f)
		VisitExpression(s.Value, f)
	case *ListAppend:
		VisitExpression(s.Var, f)
		VisitExpression(s.Value, f)
	case *LocalBinding:
		VisitExpression(s.Value, f)
	case *IfElse:
		VisitExpression(s.Condition, f)
		VisitStatement(s.Then, f)
		VisitStatement(s.Else, f)
	case *WhileLoop:
		VisitExpression(s.Condition, f)
		VisitStatement(s.Body, f)
	case *UntilLoop:
		VisitExpression(s.Condition, f)
		VisitStatement(s.Body, f)
	case *ForeachListLiteral:
		VisitExpression(s.List, f)
		VisitStatement(s.Body, f)
	case *ForeachListVar:
		VisitExpression(s.List, f)
		VisitStatement(s.Body, f)
	case *ForeachRange:
		VisitExpression(s.Lo, f)
		VisitExpression(s.Hi, f)
		VisitStatement(s.Body, f)
	case *Break:
	case *BreakIf:
		VisitExpression(s.Condition, f)
	default:
		contract.Failf("unexpected statement of type %T", s)
	}
}

// ExpressionRewriter returns the replacement for x. It is called bottom-up: the children of x have already been
// rewritten.
type ExpressionRewriter func(x Expression) Expression

// RewriteExpression rebuilds x with every subexpression passed through rw. The input tree is left untouched.
// Variables named by increments and by list statements are not offered to rw.
func RewriteExpression(x Expression, rw ExpressionRewriter) Expression {
	if x == nil {
		return nil
	}

	switch x := x.(type) {
	case *IntLiteral, *DoubleLiteral, *BooleanLiteral, *NaNLiteral, *DefaultScalarValue, *Variable,
		*PrefixExpression, *PostfixExpression:
		return rw(x)
	case *ListLiteral:
		return rw(rewriteList(x, rw))
	case *GetSourceValue:
		return rw(&GetSourceValue{
			Image: x.Image,
			Band:  RewriteExpression(x.Band, rw),
			X:     RewriteExpression(x.X, rw),
			Y:     RewriteExpression(x.Y, rw),
		})
	case *UnaryExpression:
		return rw(&UnaryExpression{Op: x.Op, Operand: RewriteExpression(x.Operand, rw)})
	case *BinaryExpression:
		return rw(&BinaryExpression{
			Op:       x.Op,
			Left:     RewriteExpression(x.Left, rw),
			Right:    RewriteExpression(x.Right, rw),
			ExprType: x.ExprType,
		})
	case *TernaryExpression:
		return rw(&TernaryExpression{
			Condition:   RewriteExpression(x.Condition, rw),
			TrueResult:  RewriteExpression(x.TrueResult, rw),
			FalseResult: RewriteExpression(x.FalseResult, rw),
			ExprType:    x.ExprType,
		})
	case *FunctionCall:
		args := make([]Expression, len(x.Args))
		for i, a := range x.Args {
			args[i] = RewriteExpression(a, rw)
		}
		return rw(&FunctionCall{Function: x.Function, Args: args})
	default:
		contract.Failf("unexpected expression of type %T", x)
		return nil
	}
}

func rewriteList(x *ListLiteral, rw ExpressionRewriter) *ListLiteral {
	elements := make([]Expression, len(x.Elements))
	for i, e := range x.Elements {
		elements[i] = RewriteExpression(e, rw)
	}
	return &ListLiteral{Elements: elements}
}

// RewriteStatement rebuilds s with every expression passed through rw.
func RewriteStatement(s Statement, rw ExpressionRewriter) Statement {
	switch s := s.(type) {
	case nil:
		return nil
	case *Block:
		return RewriteBlock(s, rw)
	case *Evaluate:
		return &Evaluate{Expr: RewriteExpression(s.Expr, rw)}
	case *SetDestValue:
		return &SetDestValue{Image: s.Image, Value: RewriteExpression(s.Value, rw)}
	case *Store:
		return &Store{Var: s.Var, Op: s.Op, Value: RewriteExpression(s.Value, rw), Declare: s.Declare}
	case *ListStore:
		return &ListStore{Var: s.Var, Value: RewriteExpression(s.Value, rw), Declare: s.Declare}
	case *ListAppend:
		return &ListAppend{Var: s.Var, Value: RewriteExpression(s.Value, rw)}
	case *LocalBinding:
		return &LocalBinding{Name: s.Name, Value: RewriteExpression(s.Value, rw)}
	case *IfElse:
		return &IfElse{
			Condition: RewriteExpression(s.Condition, rw),
			Then:      RewriteStatement(s.Then, rw),
			Else:      RewriteStatement(s.Else, rw),
		}
	case *WhileLoop:
		return &WhileLoop{Condition: RewriteExpression(s.Condition, rw), Body: RewriteStatement(s.Body, rw)}
	case *UntilLoop:
		return &UntilLoop{Condition: RewriteExpression(s.Condition, rw), Body: RewriteStatement(s.Body, rw)}
	case *ForeachListLiteral:
		return &ForeachListLiteral{Var: s.Var, List: rewriteList(s.List, rw), Body: RewriteStatement(s.Body, rw)}
	case *ForeachListVar:
		return &ForeachListVar{Var: s.Var, List: s.List, Body: RewriteStatement(s.Body, rw)}
	case *ForeachRange:
		return &ForeachRange{
			Var:  s.Var,
			Lo:   RewriteExpression(s.Lo, rw),
			Hi:   RewriteExpression(s.Hi, rw),
			Body: RewriteStatement(s.Body, rw),
		}
	case *Break:
		return &Break{}
	case *BreakIf:
		return &BreakIf{Condition: RewriteExpression(s.Condition, rw)}
	default:
		contract.Failf("unexpected statement of type %T", s)
		return nil
	}
}

// RewriteBlock is RewriteStatement for blocks.
func RewriteBlock(b *Block, rw ExpressionRewriter) *Block {
	stmts := make([]Statement, len(b.Statements))
	for i, s := range b.Statements {
		stmts[i] = RewriteStatement(s, rw)
	}
	return &Block{Statements: stmts}
}
