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

// Package optimizer rewrites executable models to avoid redundant work.
package optimizer

import (
	"fmt"

	"github.com/geosolutions/jiffle/pkg/jiffle/lookup"
	"github.com/geosolutions/jiffle/pkg/jiffle/model"
	"github.com/geosolutions/jiffle/pkg/jiffle/model/format"
	"github.com/golang/glog"
)

// RepeatedReadOptimizer hoists source image reads that occur more than once in a script body into a single local
// binding evaluated at the start of the body. Only reads whose band and position depend on nothing but literals and
// the current pixel are hoisted, since those are guaranteed to yield the same value wherever they occur.
type RepeatedReadOptimizer struct {
	counter  int
	bindings map[string]string
}

// New returns an optimizer with no bindings.
func New() *RepeatedReadOptimizer {
	return &RepeatedReadOptimizer{bindings: map[string]string{}}
}

// ResetVariables forgets every binding name handed out so far.
func (o *RepeatedReadOptimizer) ResetVariables() {
	o.counter = 0
	o.bindings = map[string]string{}
}

// bindingName returns the name of the local binding for the read with the given structural key. Names in taken
// are never handed out.
func (o *RepeatedReadOptimizer) bindingName(key string, read *model.GetSourceValue, taken map[string]bool) string {
	if name, ok := o.bindings[key]; ok && !taken[name] {
		return name
	}
	for {
		name := fmt.Sprintf("_%s_%d", read.Image, o.counter)
		o.counter++
		if !taken[name] {
			o.bindings[key] = name
			return name
		}
	}
}

// Optimize returns a copy of script in which repeated pure reads are replaced by references to local bindings, or
// script itself if there is nothing to hoist. The input script is not modified.
func (o *RepeatedReadOptimizer) Optimize(script *model.Script) *model.Script {
	if script.Body == nil {
		return script
	}

	type group struct {
		read  *model.GetSourceValue
		count int
	}
	var keys []string
	groups := map[string]*group{}
	model.VisitStatement(script.Body, func(x model.Expression) {
		read, ok := x.(*model.GetSourceValue)
		if !ok {
			return
		}
		key := format.Key(read)
		if g, ok := groups[key]; ok {
			g.count++
			return
		}
		keys = append(keys, key)
		groups[key] = &group{read: read, count: 1}
	})

	taken := namesInUse(script)
	hoisted := map[string]string{}
	var bindings []model.Statement
	for _, key := range keys {
		g := groups[key]
		if g.count < 2 || !isPureRead(g.read) {
			continue
		}
		name := o.bindingName(key, g.read, taken)
		taken[name] = true
		hoisted[key] = name
		bindings = append(bindings, &model.LocalBinding{Name: name, Value: g.read})
		glog.V(7).Infof("hoisting %d reads of %s into %s", g.count, key, name)
	}
	if len(hoisted) == 0 {
		return script
	}

	body := model.RewriteBlock(script.Body, func(x model.Expression) model.Expression {
		if read, ok := x.(*model.GetSourceValue); ok {
			if name, ok := hoisted[format.Key(read)]; ok {
				return &model.Variable{Name: name, VarType: lookup.D}
			}
		}
		return x
	})
	body.Statements = append(bindings, body.Statements...)

	return &model.Script{
		Options:      script.Options,
		SourceImages: script.SourceImages,
		DestImages:   script.DestImages,
		GlobalVars:   script.GlobalVars,
		Body:         body,
	}
}

// namesInUse returns every variable name the script declares or mentions.
func namesInUse(script *model.Script) map[string]bool {
	names := map[string]bool{}
	for _, v := range script.GlobalVars {
		names[v.Name] = true
	}
	model.VisitStatement(script.Body, func(x model.Expression) {
		if v, ok := x.(*model.Variable); ok {
			names[v.Name] = true
		}
	})
	declaredNames(script.Body, names)
	return names
}

// declaredNames adds the names introduced by loops and local bindings under s.
func declaredNames(s model.Statement, names map[string]bool) {
	switch s := s.(type) {
	case *model.Block:
		for _, st := range s.Statements {
			declaredNames(st, names)
		}
	case *model.LocalBinding:
		names[s.Name] = true
	case *model.IfElse:
		declaredNames(s.Then, names)
		declaredNames(s.Else, names)
	case *model.WhileLoop:
		declaredNames(s.Body, names)
	case *model.UntilLoop:
		declaredNames(s.Body, names)
	case *model.ForeachListLiteral:
		names[s.Var] = true
		declaredNames(s.Body, names)
	case *model.ForeachListVar:
		names[s.Var] = true
		declaredNames(s.Body, names)
	case *model.ForeachRange:
		names[s.Var] = true
		declaredNames(s.Body, names)
	}
}

func isPureRead(read *model.GetSourceValue) bool {
	return isPure(read.Band) && isPure(read.X) && isPure(read.Y)
}

// isPure reports whether x has the same value everywhere in the body of one pixel's evaluation: it is built from
// literals and the non-volatile proxies for the current pixel.
func isPure(x model.Expression) bool {
	switch x := x.(type) {
	case *model.IntLiteral, *model.DoubleLiteral, *model.BooleanLiteral, *model.NaNLiteral:
		return true
	case *model.FunctionCall:
		return x.Function.IsProxy() && !x.Function.Volatile && len(x.Args) == 0
	case *model.UnaryExpression:
		return isPure(x.Operand)
	case *model.BinaryExpression:
		return isPure(x.Left) && isPure(x.Right)
	default:
		return false
	}
}
