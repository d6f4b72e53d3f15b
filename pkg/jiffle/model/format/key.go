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
	"bytes"
	"io"

	"github.com/geosolutions/jiffle/pkg/jiffle/model"
)

// keyPrinter renders structural keys. It differs from the printer only where two different nodes would otherwise
// render alike: proxy calls, variables and increments carry a tag naming what they are.
type keyPrinter struct {
	*printer
}

func newKeyPrinter() *keyPrinter {
	k := &keyPrinter{printer: &printer{}}
	k.printer.Formatter = NewFormatter(k)
	return k
}

// Key renders the structural key of x. Two expressions have the same key exactly when they have the same shape and
// leaves; unlike Expression, a proxy for the current pixel never shares a key with a variable of the same name.
func Key(x model.Expression) string {
	var buf bytes.Buffer
	newKeyPrinter().Fgen(&buf, x)
	return buf.String()
}

func (k *keyPrinter) GenFunctionCall(w io.Writer, expr *model.FunctionCall) {
	if expr.Function.IsProxy() {
		k.Fprint(w, "proxy:", expr.Function.ScriptName, "()")
		return
	}
	k.Fprint(w, "call:", expr.Function.TargetName, "(")
	k.genList(w, expr.Args)
	k.Fprint(w, ")")
}

func (k *keyPrinter) GenVariable(w io.Writer, expr *model.Variable) {
	k.Fprint(w, "var:", expr.Name)
}

func (k *keyPrinter) GenPostfixExpression(w io.Writer, expr *model.PostfixExpression) {
	k.Fprint(w, "(var:", expr.Var.Name, string(expr.Op), ")")
}

func (k *keyPrinter) GenPrefixExpression(w io.Writer, expr *model.PrefixExpression) {
	k.Fprint(w, "(", string(expr.Op), "var:", expr.Var.Name, ")")
}

func (k *keyPrinter) GenIntLiteral(w io.Writer, expr *model.IntLiteral) {
	k.Fprint(w, "int:")
	k.printer.GenIntLiteral(w, expr)
}

func (k *keyPrinter) GenDoubleLiteral(w io.Writer, expr *model.DoubleLiteral) {
	k.Fprint(w, "double:")
	k.printer.GenDoubleLiteral(w, expr)
}
