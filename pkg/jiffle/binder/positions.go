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
	"math"

	"github.com/geosolutions/jiffle/pkg/jiffle/lookup"
	"github.com/geosolutions/jiffle/pkg/jiffle/model"
	"github.com/geosolutions/jiffle/pkg/jiffle/model/format"
	"github.com/geosolutions/jiffle/pkg/jiffle/syntax"
	"github.com/hashicorp/hcl/v2"
)

// sourceScope resolves reads without the scope and type passes: each name is either one of the source images or a
// scalar.
type sourceScope struct {
	sources map[string]bool
	funcs   *lookup.FunctionTable
}

func (s sourceScope) kindOf(x *syntax.Identifier) SymbolKind {
	if s.sources[x.Name] {
		return SourceImageKind
	}
	return ScalarKind
}

func (sourceScope) typeOf(x syntax.Expression) lookup.JiffleType {
	return lookup.D
}

func (s sourceScope) callee(x *syntax.CallExpr) lookup.FunctionInfo {
	for _, info := range s.funcs.Overloads(x.Name) {
		if len(info.ArgTypes) == len(x.Args) {
			return info
		}
	}

	argTypes := make([]lookup.JiffleType, len(x.Args))
	for i := range argTypes {
		argTypes[i] = lookup.D
	}
	return lookup.FunctionInfo{
		ScriptName: x.Name,
		TargetName: x.Name,
		Provider:   lookup.Builtin,
		ReturnType: lookup.D,
		ArgTypes:   argTypes,
	}
}

// SourcePositions returns the distinct reads of the named source images made anywhere in script, in order of first
// occurrence. Reads are lowered exactly as BuildModel lowers them, so two reads are the same when their models have
// the same structural key. The script need not have been bound; a read whose band or position is not a valid
// expression, such as a string or a range, is skipped.
func SourcePositions(script *syntax.Script, sources []string, funcs *lookup.FunctionTable,
	consts *lookup.ConstantTable) []*model.GetSourceValue {

	scope := sourceScope{sources: map[string]bool{}, funcs: funcs}
	for _, name := range sources {
		scope.sources[name] = true
	}
	l := newLowerer(scope, funcs, consts)

	var reads []*model.GetSourceValue
	seen := map[string]bool{}
	add := func(read *model.GetSourceValue) {
		key := format.Key(read)
		if !seen[key] {
			seen[key] = true
			reads = append(reads, read)
		}
	}

	targets := map[*syntax.Identifier]bool{}
	syntax.VisitAll(script, func(n syntax.Node) hcl.Diagnostics {
		switch n := n.(type) {
		case *syntax.AssignStmt:
			targets[n.Target] = true
		case *syntax.AppendStmt:
			targets[n.Target] = true
		case *syntax.ForeachStmt:
			targets[n.Var] = true
		case *syntax.PrefixExpr:
			targets[n.Target] = true
		case *syntax.PostfixExpr:
			targets[n.Target] = true
		case *syntax.Identifier:
			if scope.sources[n.Name] && !targets[n] && !consts.IsDefined(n.Name) {
				add(l.currentPixel(n.Name))
			}
		case *syntax.ImageCall:
			if scope.sources[n.Name] && canLower(n) {
				add(l.lowerImageCall(n))
			}
		}
		return nil
	})
	return reads
}

// canLower reports whether every subexpression of x has a model form.
func canLower(x syntax.Expression) bool {
	ok := true
	syntax.VisitAll(x, func(n syntax.Node) hcl.Diagnostics {
		switch n.(type) {
		case *syntax.StringLiteral, *syntax.NullLiteral, *syntax.RangeExpr:
			ok = false
		}
		return nil
	})
	return ok
}

// Bounds is the neighborhood of the current pixel that a set of reads touches.
type Bounds struct {
	MinX, MaxX int64
	MinY, MaxY int64

	// Dynamic is set when some read is not at a constant offset from the current pixel, so that its position is
	// only known at run time.
	Dynamic bool
}

// ReadBounds summarizes reads into the range of constant pixel offsets they use.
func ReadBounds(reads []*model.GetSourceValue) Bounds {
	var b Bounds
	for _, read := range reads {
		dx, okX := pixelOffset(read.X, "x")
		dy, okY := pixelOffset(read.Y, "y")
		if !okX || !okY {
			b.Dynamic = true
			continue
		}
		b.MinX, b.MaxX = min64(b.MinX, dx), max64(b.MaxX, dx)
		b.MinY, b.MaxY = min64(b.MinY, dy), max64(b.MaxY, dy)
	}
	return b
}

// pixelOffset returns the constant offset of a lowered position from the proxy for the named coordinate.
func pixelOffset(x model.Expression, coordinate string) (int64, bool) {
	switch x := x.(type) {
	case *model.FunctionCall:
		return 0, isProxyFor(x, coordinate)
	case *model.BinaryExpression:
		call, ok := x.Left.(*model.FunctionCall)
		if !ok || !isProxyFor(call, coordinate) {
			return 0, false
		}
		offset, ok := integerValue(x.Right)
		switch {
		case !ok:
			return 0, false
		case x.Op == model.Operator(syntax.OpAdd):
			return offset, true
		case x.Op == model.Operator(syntax.OpSub):
			return -offset, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func isProxyFor(call *model.FunctionCall, coordinate string) bool {
	return call.Function.IsProxy() && call.Function.ScriptName == coordinate
}

func integerValue(x model.Expression) (int64, bool) {
	switch x := x.(type) {
	case *model.IntLiteral:
		return x.Value, true
	case *model.DoubleLiteral:
		if x.Value != math.Trunc(x.Value) || math.IsInf(x.Value, 0) {
			return 0, false
		}
		return int64(x.Value), true
	case *model.UnaryExpression:
		v, ok := integerValue(x.Operand)
		switch {
		case !ok:
			return 0, false
		case x.Op == model.Operator(syntax.OpSub):
			return -v, true
		case x.Op == model.Operator(syntax.OpAdd):
			return v, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
