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

package optimizer

import (
	"testing"

	"github.com/geosolutions/jiffle/pkg/jiffle/lookup"
	"github.com/geosolutions/jiffle/pkg/jiffle/model"
	"github.com/geosolutions/jiffle/pkg/jiffle/model/format"
	"github.com/stretchr/testify/assert"
)

var (
	xProxy = lookup.FunctionInfo{ScriptName: "x", TargetName: "_x", Provider: lookup.Proxy, ReturnType: lookup.D}
	yProxy = lookup.FunctionInfo{ScriptName: "y", TargetName: "_y", Provider: lookup.Proxy, ReturnType: lookup.D}
	random = lookup.FunctionInfo{ScriptName: "rand", TargetName: "rand", Provider: lookup.Builtin, Volatile: true,
		ReturnType: lookup.D, ArgTypes: []lookup.JiffleType{lookup.D}}
)

func proxy(info lookup.FunctionInfo) model.Expression { return &model.FunctionCall{Function: info} }

func scalar(name string) *model.Variable { return &model.Variable{Name: name, VarType: lookup.D} }

// current reads band 0 of img at the current pixel.
func current(img string) *model.GetSourceValue {
	return &model.GetSourceValue{Image: img, Band: &model.IntLiteral{}, X: proxy(xProxy), Y: proxy(yProxy)}
}

// shifted reads band 0 of img at a loop-dependent offset from the current pixel.
func shifted(img, offset string) *model.GetSourceValue {
	return &model.GetSourceValue{
		Image: img,
		Band:  &model.IntLiteral{},
		X:     &model.BinaryExpression{Op: "+", Left: proxy(xProxy), Right: scalar(offset), ExprType: lookup.D},
		Y:     proxy(yProxy),
	}
}

func testScript() *model.Script {
	return &model.Script{
		SourceImages: []string{"img"},
		DestImages:   []string{"out"},
		Body: &model.Block{Statements: []model.Statement{
			&model.Store{Var: scalar("a"), Op: "=", Value: current("img"), Declare: true},
			&model.ForeachRange{
				Var: "i",
				Lo:  &model.IntLiteral{Value: -1},
				Hi:  &model.IntLiteral{Value: 1},
				Body: &model.Block{Statements: []model.Statement{
					&model.Store{Var: scalar("a"), Op: "+=", Value: shifted("img", "i")},
				}},
			},
			&model.SetDestValue{Image: "out", Value: &model.BinaryExpression{
				Op: "+", Left: scalar("a"), Right: current("img"), ExprType: lookup.D,
			}},
		}},
	}
}

const optimized = `source img;
dest out;
const _img_0 = readSource("img", _x, _y, 0);
let a = _img_0;
foreach (i in -1:1) {
    a += readSource("img", (_x + i), _y, 0);
}
writeDest("out", (a + _img_0));
`

func TestOptimizeHoistsPureReads(t *testing.T) {
	script := testScript()
	before := format.Script(script)

	o := New()
	result := o.Optimize(script)
	assert.Equal(t, optimized, format.Script(result))
	assert.Equal(t, before, format.Script(script))

	var bindings int
	for _, s := range result.Body.Statements {
		if _, ok := s.(*model.LocalBinding); ok {
			bindings++
		}
	}
	assert.Equal(t, 1, bindings)

	o.ResetVariables()
	assert.Equal(t, optimized, format.Script(o.Optimize(script)))
}

func TestOptimizeOptimizedScript(t *testing.T) {
	o := New()
	once := o.Optimize(testScript())
	assert.Equal(t, optimized, format.Script(o.Optimize(once)))
}

func TestOptimizeLeavesImpureReads(t *testing.T) {
	volatile := func() *model.GetSourceValue {
		return &model.GetSourceValue{
			Image: "img",
			Band:  &model.IntLiteral{},
			X:     &model.FunctionCall{Function: random, Args: []model.Expression{&model.IntLiteral{Value: 3}}},
			Y:     proxy(yProxy),
		}
	}
	script := &model.Script{Body: &model.Block{Statements: []model.Statement{
		&model.Evaluate{Expr: shifted("img", "i")},
		&model.Evaluate{Expr: shifted("img", "i")},
		&model.Evaluate{Expr: volatile()},
		&model.Evaluate{Expr: volatile()},
		&model.Evaluate{Expr: current("img")},
	}}}

	result := New().Optimize(script)
	assert.True(t, result == script)
}

func TestOptimizeEmptyScript(t *testing.T) {
	script := &model.Script{}
	assert.True(t, New().Optimize(script) == script)
}

func TestIsPure(t *testing.T) {
	tests := []struct {
		x    model.Expression
		pure bool
	}{
		{&model.IntLiteral{Value: 1}, true},
		{&model.DoubleLiteral{Value: 1.5}, true},
		{proxy(xProxy), true},
		{&model.BinaryExpression{Op: "+", Left: proxy(xProxy), Right: &model.IntLiteral{Value: 1}}, true},
		{&model.UnaryExpression{Op: "-", Operand: &model.IntLiteral{Value: 1}}, true},
		{scalar("i"), false},
		{&model.FunctionCall{Function: random, Args: []model.Expression{&model.IntLiteral{}}}, false},
		{current("img"), false},
	}
	for _, tt := range tests {
		t.Run(format.Expression(tt.x), func(t *testing.T) {
			assert.Equal(t, tt.pure, isPure(tt.x))
		})
	}
}

func TestOptimizeSeparatesVariablesFromProxies(t *testing.T) {
	// readSource("img", _x, _y, 0) with a variable named _x is not a read of the current pixel.
	byVariable := func() *model.GetSourceValue {
		return &model.GetSourceValue{Image: "img", Band: &model.IntLiteral{}, X: scalar("_x"), Y: proxy(yProxy)}
	}
	script := &model.Script{Body: &model.Block{Statements: []model.Statement{
		&model.Evaluate{Expr: current("img")},
		&model.Evaluate{Expr: byVariable()},
		&model.Evaluate{Expr: current("img")},
	}}}

	result := New().Optimize(script)
	assert.Equal(t, `const _img_0 = readSource("img", _x, _y, 0);
_img_0;
readSource("img", _x, _y, 0);
_img_0;
`, format.Script(result))
	assert.Equal(t, format.Key(byVariable()), format.Key(result.Body.Statements[2].(*model.Evaluate).Expr))
}

func TestOptimizeAvoidsNamesInUse(t *testing.T) {
	script := &model.Script{
		GlobalVars: []*model.GlobalVariable{{Name: "_img_0", Init: &model.IntLiteral{}}},
		Body: &model.Block{Statements: []model.Statement{
			&model.ForeachRange{Var: "_img_1", Lo: &model.IntLiteral{}, Hi: &model.IntLiteral{}, Body: &model.Block{}},
			&model.Evaluate{Expr: current("img")},
			&model.Evaluate{Expr: current("img")},
		}},
	}

	result := New().Optimize(script)
	binding, ok := result.Body.Statements[0].(*model.LocalBinding)
	if assert.True(t, ok) {
		assert.Equal(t, "_img_2", binding.Name)
	}
}
