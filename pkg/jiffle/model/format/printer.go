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

// Package format renders executable models as deterministic text. Expression, Statement and Script produce the
// readable form; Key produces the structural key used to recognize identical reads.
package format

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/geosolutions/jiffle/pkg/jiffle/lookup"
	"github.com/geosolutions/jiffle/pkg/jiffle/model"
	"github.com/geosolutions/jiffle/pkg/util/contract"
)

type printer struct {
	*Formatter
}

func newPrinter() *printer {
	p := &printer{}
	p.Formatter = NewFormatter(p)
	return p
}

// Expression renders a single expression.
func Expression(x model.Expression) string {
	var buf bytes.Buffer
	newPrinter().Fgen(&buf, x)
	return buf.String()
}

// Statement renders a single statement at indent level zero.
func Statement(s model.Statement) string {
	var buf bytes.Buffer
	newPrinter().genStatement(&buf, s)
	return buf.String()
}

// Script renders a whole model: options, image roles and global variables, followed by the per-pixel body.
func Script(s *model.Script) string {
	var buf bytes.Buffer
	p := newPrinter()
	for _, o := range s.Options {
		p.Fprintf(&buf, "option %s = %s;\n", o.Name, o.Value)
	}
	for _, name := range s.SourceImages {
		p.Fprintf(&buf, "source %s;\n", name)
	}
	for _, name := range s.DestImages {
		p.Fprintf(&buf, "dest %s;\n", name)
	}
	for _, v := range s.GlobalVars {
		p.Fgenf(&buf, "global %s = %v;\n", v.Name, v.Init)
	}
	if s.Body != nil {
		for _, st := range s.Body.Statements {
			p.genStatement(&buf, st)
			p.Fprint(&buf, "\n")
		}
	}
	return buf.String()
}

func (p *printer) GenBinaryExpression(w io.Writer, expr *model.BinaryExpression) {
	p.Fgenf(w, "(%v %s %v)", expr.Left, string(expr.Op), expr.Right)
}

func (p *printer) GenBooleanLiteral(w io.Writer, expr *model.BooleanLiteral) {
	p.Fprint(w, strconv.FormatBool(expr.Value))
}

func (p *printer) GenDefaultScalarValue(w io.Writer, expr *model.DefaultScalarValue) {
	p.Fprint(w, "0.0")
}

func (p *printer) GenDoubleLiteral(w io.Writer, expr *model.DoubleLiteral) {
	p.Fprint(w, formatDouble(expr.Value))
}

func formatDouble(v float64) string {
	switch {
	case math.IsNaN(v):
		return lookup.NaNLiteral
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func (p *printer) GenFunctionCall(w io.Writer, expr *model.FunctionCall) {
	if expr.Function.IsProxy() {
		p.Fprint(w, expr.Function.TargetName)
		return
	}
	p.Fprint(w, expr.Function.TargetName, "(")
	p.genList(w, expr.Args)
	p.Fprint(w, ")")
}

func (p *printer) GenGetSourceValue(w io.Writer, expr *model.GetSourceValue) {
	p.Fgenf(w, "readSource(%q, %v, %v, %v)", expr.Image, expr.X, expr.Y, expr.Band)
}

func (p *printer) GenIntLiteral(w io.Writer, expr *model.IntLiteral) {
	p.Fprint(w, strconv.FormatInt(expr.Value, 10))
}

func (p *printer) GenListLiteral(w io.Writer, expr *model.ListLiteral) {
	p.Fprint(w, "[")
	p.genList(w, expr.Elements)
	p.Fprint(w, "]")
}

func (p *printer) genList(w io.Writer, exprs []model.Expression) {
	for i, x := range exprs {
		if i > 0 {
			p.Fprint(w, ", ")
		}
		p.Fgen(w, x)
	}
}

func (p *printer) GenNaNLiteral(w io.Writer, expr *model.NaNLiteral) {
	p.Fprint(w, lookup.NaNLiteral)
}

func (p *printer) GenPostfixExpression(w io.Writer, expr *model.PostfixExpression) {
	p.Fprint(w, expr.Var.Name, string(expr.Op))
}

func (p *printer) GenPrefixExpression(w io.Writer, expr *model.PrefixExpression) {
	p.Fprint(w, string(expr.Op), expr.Var.Name)
}

func (p *printer) GenTernaryExpression(w io.Writer, expr *model.TernaryExpression) {
	p.Fgenf(w, "(%v ? %v : %v)", expr.Condition, expr.TrueResult, expr.FalseResult)
}

func (p *printer) GenUnaryExpression(w io.Writer, expr *model.UnaryExpression) {
	p.Fgenf(w, "%s%v", string(expr.Op), expr.Operand)
}

func (p *printer) GenVariable(w io.Writer, expr *model.Variable) {
	p.Fprint(w, expr.Name)
}

// genStatement writes s without leading indentation or a trailing newline. Nested blocks are indented relative to
// the current level.
func (p *printer) genStatement(w io.Writer, s model.Statement) {
	switch s := s.(type) {
	case *model.Block:
		p.Fprint(w, "{\n")
		p.Indented(func() {
			for _, st := range s.Statements {
				p.Fprint(w, p.Indent)
				p.genStatement(w, st)
				p.Fprint(w, "\n")
			}
		})
		p.Fprint(w, p.Indent, "}")
	case *model.Evaluate:
		p.Fgenf(w, "%v;", s.Expr)
	case *model.SetDestValue:
		p.Fgenf(w, "writeDest(%q, %v);", s.Image, s.Value)
	case *model.Store:
		if s.Declare {
			p.Fgenf(w, "let %s = %v;", s.Var.Name, s.Value)
		} else {
			p.Fgenf(w, "%s %s %v;", s.Var.Name, string(s.Op), s.Value)
		}
	case *model.ListStore:
		if s.Declare {
			p.Fgenf(w, "let %s = %v;", s.Var.Name, s.Value)
		} else {
			p.Fgenf(w, "%s = %v;", s.Var.Name, s.Value)
		}
	case *model.ListAppend:
		p.Fgenf(w, "%s << %v;", s.Var.Name, s.Value)
	case *model.LocalBinding:
		p.Fgenf(w, "const %s = %v;", s.Name, s.Value)
	case *model.IfElse:
		p.Fgenf(w, "if (%v) ", s.Condition)
		p.genStatement(w, s.Then)
		if s.Else != nil {
			p.Fprint(w, " else ")
			p.genStatement(w, s.Else)
		}
	case *model.WhileLoop:
		p.Fgenf(w, "while (%v) ", s.Condition)
		p.genStatement(w, s.Body)
	case *model.UntilLoop:
		p.Fgenf(w, "until (%v) ", s.Condition)
		p.genStatement(w, s.Body)
	case *model.ForeachListLiteral:
		p.Fgenf(w, "foreach (%s in %v) ", s.Var, s.List)
		p.genStatement(w, s.Body)
	case *model.ForeachListVar:
		p.Fgenf(w, "foreach (%s in %v) ", s.Var, s.List)
		p.genStatement(w, s.Body)
	case *model.ForeachRange:
		p.Fgenf(w, "foreach (%s in %v:%v) ", s.Var, s.Lo, s.Hi)
		p.genStatement(w, s.Body)
	case *model.Break:
		p.Fprint(w, "break;")
	case *model.BreakIf:
		p.Fgenf(w, "breakif (%v);", s.Condition)
	default:
		contract.Failf("unexpected statement node of type %T", s)
	}
}
