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
	"github.com/geosolutions/jiffle/pkg/jiffle/model"
	"github.com/geosolutions/jiffle/pkg/jiffle/model/format"
	"github.com/geosolutions/jiffle/pkg/jiffle/optimizer"
	"github.com/geosolutions/jiffle/pkg/jiffle/syntax"
	"github.com/stretchr/testify/assert"
)

func TestBuildModel(t *testing.T) {
	s := script(
		[]syntax.Block{
			options(option("outside", num(0))),
			inits(initVar("n", num(0)), initVar("z", nil)),
		},
		assign("a", bin(syntax.OpAdd, pixel("src", num(0), num(0)), pixel("src", num(1), neg(num(1))))),
		ifElse(bin(syntax.OpGT, ident("a"), num(0)),
			block(assign("b", bin(syntax.OpMul, ident("a"), num(2))), assign("dest", ident("b"))),
			block(assign("dest", ident("M_PI")))),
		assign("l", list(num(1), num(2))),
		appendTo("l", num(3)),
		foreach("v", ident("l"), assignOp("n", syntax.OpAddAssign, ident("v"))),
		foreach("k", span(num(1), num(3)), assignOp("n", syntax.OpAddAssign, ident("k"))),
		foreach("w", list(ident("NaN")), &syntax.BreakIfStmt{Cond: ident("w")}),
		assign("dest", bin(syntax.OpAdd, call("max", ident("l")), ident("src"))),
	)

	result := compile(t, s)
	assert.Equal(t, `option outside = 0;
source src;
dest dest;
global n = 0;
global z = 0.0;
let a = (readSource("src", _x, _y, 0) + readSource("src", (_x + 1), (_y + -1), 0));
if ((a > 0)) {
    let b = (a * 2);
    writeDest("dest", b);
} else {
    writeDest("dest", 3.141592653589793);
}
let l = [1, 2];
l << 3;
foreach (v in l) {
    n += v;
}
foreach (k in 1:3) {
    n += k;
}
foreach (w in [NaN]) {
    breakif (w);
}
writeDest("dest", (max(l) + readSource("src", _x, _y, 0)));
`, format.Script(result.Script))

	assert.Equal(t, "_outsideValueSet = true;\n_outsideValue = 0;", result.Script.Options[0].Code)
	assert.Nil(t, result.Optimized)
}

func TestStoreDeclaration(t *testing.T) {
	s := body(
		assign("a", num(1)),
		assign("a", num(2)),
		ifElse(num(1), block(assign("c", num(1)), assign("c", num(2)), assign("a", num(3))), nil),
		assign("c", num(3)),
		assign("dest", bin(syntax.OpAdd, ident("a"), ident("c"))),
	)

	result := compile(t, s)
	assert.Equal(t, `source src;
dest dest;
let a = 1;
a = 2;
if (1) {
    let c = 1;
    c = 2;
    a = 3;
}
let c = 3;
writeDest("dest", (a + c));
`, format.Script(result.Script))
}

func TestLowerPositionsAndBand(t *testing.T) {
	read := &syntax.ImageCall{
		Name: "src",
		Band: num(2),
		Pixel: &syntax.PixelSpec{
			X: syntax.PixelPos{Expr: num(5)},
			Y: syntax.PixelPos{Expr: call("y")},
		},
	}
	s := body(
		assign("dest", read),
		foreach("i", span(num(0), num(1)),
			assign("dest", at("src", bin(syntax.OpAdd, call("x"), ident("i")), call("y")))),
		assign("dest", pixel("src", ident("M_PI"), num(0))),
	)
	result := compile(t, s)

	var values []string
	model.VisitStatement(result.Script.Body, func(x model.Expression) {
		if read, ok := x.(*model.GetSourceValue); ok {
			values = append(values, format.Expression(read))
		}
	})
	assert.Equal(t, []string{
		`readSource("src", 5, _y, 2)`,
		`readSource("src", (_x + i), _y, 0)`,
		`readSource("src", (_x + 3.141592653589793), _y, 0)`,
	}, values)
}

func TestSourcePositions(t *testing.T) {
	s := body(
		assign("a", pixel("src", num(0), num(0))),
		assign("b", pixel("src", neg(num(2)), num(1))),
		foreach("i", span(num(0), num(2)), assignOp("a", syntax.OpAddAssign, pixel("src", ident("i"), num(0)))),
		assign("dest", bin(syntax.OpAdd, ident("src"), pixel("src", num(0), num(0)))),
	)

	result := compile(t, s)
	var reads []string
	for _, r := range result.SourcePositions {
		reads = append(reads, format.Expression(r))
	}
	assert.Equal(t, []string{
		`readSource("src", _x, _y, 0)`,
		`readSource("src", (_x + -2), (_y + 1), 0)`,
		`readSource("src", (_x + i), _y, 0)`,
	}, reads)
	assert.Equal(t, Bounds{MinX: -2, MaxX: 0, MinY: 0, MaxY: 1, Dynamic: true}, result.Bounds)

	// The positions of an unbound script are found the same way.
	unbound := SourcePositions(s, []string{"src"}, lookup.Functions(), lookup.Constants())
	assert.Len(t, unbound, 3)
	assert.Empty(t, SourcePositions(s, nil, lookup.Functions(), lookup.Constants()))
}

func TestReadBoundsWithoutReads(t *testing.T) {
	assert.Equal(t, Bounds{}, ReadBounds(nil))
}

func TestCompileImages(t *testing.T) {
	s := script([]syntax.Block{images("in", "read", "out", "write")}, assign("out", ident("in")))

	// Roles declared by the script win over the caller's.
	result, diagnostics := Compile(s, Config{ImageRoles: testRoles})
	assert.Empty(t, diagnostics)
	assert.Equal(t, ImageRoles{"in": SourceRole, "out": DestRole}, result.Images)
	assert.Equal(t, []string{"in"}, result.Script.SourceImages)

	_, diagnostics = Compile(body(assign("a", num(1))), Config{ImageRoles: ImageRoles{"src": SourceRole}})
	assert.Equal(t, []string{"no destination image is defined"}, summaries(diagnostics))
}

func TestCompileAccumulatesErrors(t *testing.T) {
	s := script(
		[]syntax.Block{
			images("src", "read", "dest", "write", "bad", "sideways"),
			options(option("nosuch", num(1))),
		},
		assign("q", ident("undefined")),
		eval(call("nosuchfn", num(1))),
		&syntax.BreakStmt{},
		assign("src", num(1)),
		assign("dest", ident("q")),
	)

	result, diagnostics := Compile(s, Config{})
	assert.Equal(t, []string{
		`invalid role "sideways" for image bad: expected read or write`,
		"unknown option nosuch",
		"undefined variable undefined",
		"break can only be used inside a loop",
		"cannot assign a value to source image src",
		"undefined function nosuchfn(D)",
	}, summaries(diagnostics))
	assert.Nil(t, result.Script)
	assert.NotNil(t, result.Types)
}

func TestCompileOptimizeReads(t *testing.T) {
	s := body(assign("dest", bin(syntax.OpAdd, pixel("src", num(0), num(0)), pixel("src", num(0), num(0)))))

	result, diagnostics := Compile(s, Config{ImageRoles: testRoles, OptimizeReads: true})
	assert.Empty(t, diagnostics)
	assert.Equal(t, `source src;
dest dest;
writeDest("dest", (readSource("src", _x, _y, 0) + readSource("src", _x, _y, 0)));
`, format.Script(result.Script))
	assert.Equal(t, `source src;
dest dest;
const _src_0 = readSource("src", _x, _y, 0);
writeDest("dest", (_src_0 + _src_0));
`, format.Script(result.Optimized))
}

func TestCompileOptimizeReadsInLoop(t *testing.T) {
	s := body(
		assign("a", at("src", num(0), num(0))),
		foreach("i", span(num(0), num(1)),
			assignOp("a", syntax.OpAddAssign, at("src", bin(syntax.OpAdd, call("x"), ident("i")), call("y")))),
		assign("dest", bin(syntax.OpAdd, ident("a"), at("src", num(0), num(0)))),
	)

	result, diagnostics := Compile(s, Config{ImageRoles: testRoles, OptimizeReads: true})
	assert.Empty(t, diagnostics)
	assert.Equal(t, `source src;
dest dest;
let a = readSource("src", 0, 0, 0);
foreach (i in 0:1) {
    a += readSource("src", (_x + i), _y, 0);
}
writeDest("dest", (a + readSource("src", 0, 0, 0)));
`, format.Script(result.Script))

	const optimized = `source src;
dest dest;
const _src_0 = readSource("src", 0, 0, 0);
let a = _src_0;
foreach (i in 0:1) {
    a += readSource("src", (_x + i), _y, 0);
}
writeDest("dest", (a + _src_0));
`
	assert.Equal(t, optimized, format.Script(result.Optimized))

	o := optimizer.New()
	assert.Equal(t, optimized, format.Script(o.Optimize(result.Script)))
	o.ResetVariables()
	assert.Equal(t, optimized, format.Script(o.Optimize(result.Script)))

	assert.Len(t, result.SourcePositions, 2)
	assert.True(t, result.Bounds.Dynamic)
}

func TestCompileKeepsVariablePositionsApart(t *testing.T) {
	// The variable _x renders like the proxy for x(), but only the proxy reads are the same read.
	s := body(
		assign("_x", num(5)),
		assign("dest", bin(syntax.OpAdd,
			bin(syntax.OpAdd, at("src", call("x"), call("y")), at("src", ident("_x"), call("y"))),
			at("src", call("x"), call("y")))),
	)

	result, diagnostics := Compile(s, Config{ImageRoles: testRoles, OptimizeReads: true})
	assert.Empty(t, diagnostics)
	assert.Equal(t, `source src;
dest dest;
const _src_0 = readSource("src", _x, _y, 0);
let _x = 5;
writeDest("dest", ((_src_0 + readSource("src", _x, _y, 0)) + _src_0));
`, format.Script(result.Optimized))

	assert.Len(t, result.SourcePositions, 2)
	assert.Equal(t, Bounds{Dynamic: true}, result.Bounds)
}

func TestCompileBindingNamesAvoidVariables(t *testing.T) {
	s := body(
		assign("_src_0", num(1)),
		assign("dest", bin(syntax.OpAdd, bin(syntax.OpAdd, ident("src"), ident("src")), ident("_src_0"))),
	)

	result, diagnostics := Compile(s, Config{ImageRoles: testRoles, OptimizeReads: true})
	assert.Empty(t, diagnostics)
	assert.Equal(t, `source src;
dest dest;
const _src_1 = readSource("src", _x, _y, 0);
let _src_0 = 1;
writeDest("dest", ((_src_1 + _src_1) + _src_0));
`, format.Script(result.Optimized))
}

func TestSourcePositionsSkipInvalidReads(t *testing.T) {
	s := body(
		assign("a", at("src", str("left"), num(0))),
		assign("b", pixel("src", span(num(0), num(1)), num(0))),
		assign("dest", pixel("src", num(1), num(0))),
	)

	reads := SourcePositions(s, []string{"src"}, lookup.Functions(), lookup.Constants())
	if assert.Len(t, reads, 1) {
		assert.Equal(t, `readSource("src", (_x + 1), _y, 0)`, format.Expression(reads[0]))
	}
	assert.Equal(t, Bounds{MinX: 0, MaxX: 1}, ReadBounds(reads))
}

func TestReadBoundsOffsets(t *testing.T) {
	s := body(
		assign("a", at("src", bin(syntax.OpSub, call("x"), num(2)), bin(syntax.OpAdd, call("y"), num(3)))),
		assign("dest", pixel("src", num(1), neg(num(1)))),
	)

	result := compile(t, s)
	assert.Equal(t, Bounds{MinX: -2, MaxX: 1, MinY: -1, MaxY: 3}, result.Bounds)
}
