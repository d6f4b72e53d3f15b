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

package format

import (
	"fmt"
	"io"

	"github.com/geosolutions/jiffle/pkg/jiffle/model"
	"github.com/geosolutions/jiffle/pkg/util/contract"
)

type ExpressionGenerator interface {
	GenBinaryExpression(w io.Writer, expr *model.BinaryExpression)
	GenBooleanLiteral(w io.Writer, expr *model.BooleanLiteral)
	GenDefaultScalarValue(w io.Writer, expr *model.DefaultScalarValue)
	GenDoubleLiteral(w io.Writer, expr *model.DoubleLiteral)
	GenFunctionCall(w io.Writer, expr *model.FunctionCall)
	GenGetSourceValue(w io.Writer, expr *model.GetSourceValue)
	GenIntLiteral(w io.Writer, expr *model.IntLiteral)
	GenListLiteral(w io.Writer, expr *model.ListLiteral)
	GenNaNLiteral(w io.Writer, expr *model.NaNLiteral)
	GenPostfixExpression(w io.Writer, expr *model.PostfixExpression)
	GenPrefixExpression(w io.Writer, expr *model.PrefixExpression)
	GenTernaryExpression(w io.Writer, expr *model.TernaryExpression)
	GenUnaryExpression(w io.Writer, expr *model.UnaryExpression)
	GenVariable(w io.Writer, expr *model.Variable)
}

// Formatter is a convenience type that implements a number of common utilities used to emit source code.
type Formatter struct {
	// The current indent level as a string.
	Indent string

	// The ExpressionGenerator to use in {G,Fg}en{,f}
	g ExpressionGenerator
}

// NewFormatter creates a new emitter that will use the given ExpressionGenerator when generating code.
func NewFormatter(g ExpressionGenerator) *Formatter {
	return &Formatter{g: g}
}

// Indented bumps the current indentation level, invokes the given function, and then resets the indentation level to
// its prior value.
func (e *Formatter) Indented(f func()) {
	e.Indent += "    "
	f()
	e.Indent = e.Indent[:len(e.Indent)-4]
}

// Fprint prints one or more values to the generator's output stream.
func (e *Formatter) Fprint(w io.Writer, a ...interface{}) {
	_, err := fmt.Fprint(w, a...)
	contract.IgnoreError(err)
}

// Fprintln prints one or more values to the generator's output stream, followed by a newline.
func (e *Formatter) Fprintln(w io.Writer, a ...interface{}) {
	e.Fprint(w, a...)
	e.Fprint(w, "\n")
}

// Fprintf prints a formatted message to the generator's output stream.
func (e *Formatter) Fprintf(w io.Writer, format string, a ...interface{}) {
	_, err := fmt.Fprintf(w, format, a...)
	contract.IgnoreError(err)
}

// Fgen generates code for a list of strings and expression trees. The former are written directly to the destination;
// the latter are recursively generated using the appropriate gen* functions.
func (e *Formatter) Fgen(w io.Writer, vs ...interface{}) {
	for _, v := range vs {
		switch v := v.(type) {
		case string:
			_, err := fmt.Fprint(w, v)
			contract.IgnoreError(err)
		case *model.BinaryExpression:
			e.g.GenBinaryExpression(w, v)
		case *model.BooleanLiteral:
			e.g.GenBooleanLiteral(w, v)
		case *model.DefaultScalarValue:
			e.g.GenDefaultScalarValue(w, v)
		case *model.DoubleLiteral:
			e.g.GenDoubleLiteral(w, v)
		case *model.FunctionCall:
			e.g.GenFunctionCall(w, v)
		case *model.GetSourceValue:
			e.g.GenGetSourceValue(w, v)
		case *model.IntLiteral:
			e.g.GenIntLiteral(w, v)
		case *model.ListLiteral:
			e.g.GenListLiteral(w, v)
		case *model.NaNLiteral:
			e.g.GenNaNLiteral(w, v)
		case *model.PostfixExpression:
			e.g.GenPostfixExpression(w, v)
		case *model.PrefixExpression:
			e.g.GenPrefixExpression(w, v)
		case *model.TernaryExpression:
			e.g.GenTernaryExpression(w, v)
		case *model.UnaryExpression:
			e.g.GenUnaryExpression(w, v)
		case *model.Variable:
			e.g.GenVariable(w, v)
		default:
			contract.Failf("unexpected expression node of type %T", v)
		}
	}
}

// Fgenf generates code using a format string and its arguments. Any arguments that are model.Expression values are
// wrapped in a FormatFunc that calls the appropriate recursive generation function. This allows for the composition
// of standard format strings with expression code gen (e.g. `e.Fgenf(w, "(%v ? %v : %v)", c, t, f)`).
func (e *Formatter) Fgenf(w io.Writer, format string, args ...interface{}) {
	for i := range args {
		if node, ok := args[i].(model.Expression); ok {
			args[i] = FormatFunc(func(f fmt.State, c rune) { e.Fgen(f, node) })
		}
	}
	fmt.Fprintf(w, format, args...)
}

// FormatFunc adapts a function to fmt.Formatter.
type FormatFunc func(f fmt.State, c rune)

// Format invokes the FormatFunc.
func (p FormatFunc) Format(f fmt.State, c rune) {
	p(f, c)
}
