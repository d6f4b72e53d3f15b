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
	"fmt"

	"github.com/geosolutions/jiffle/pkg/jiffle/lookup"
	"github.com/geosolutions/jiffle/pkg/jiffle/syntax"
	"github.com/hashicorp/hcl/v2"
)

func errorf(subject hcl.Range, f string, args ...interface{}) *hcl.Diagnostic {
	rng := subject
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  fmt.Sprintf(f, args...),
		Subject:  &rng,
	}
}

func duplicateBlock(kind string, rng hcl.Range) *hcl.Diagnostic {
	return errorf(rng, "only one %s block is allowed", kind)
}

func undefinedVariable(name string, rng hcl.Range) *hcl.Diagnostic {
	return errorf(rng, "undefined variable %s", name)
}

func usedBeforeAssignment(name string, rng hcl.Range) *hcl.Diagnostic {
	return errorf(rng, "variable %s is used before being assigned a value", name)
}

func alreadyDeclared(name string, rng hcl.Range) *hcl.Diagnostic {
	return errorf(rng, "%s is already declared", name)
}

func unknownFunction(name string, argTypes []lookup.JiffleType, rng hcl.Range) *hcl.Diagnostic {
	return errorf(rng, "undefined function %s", lookup.FormatSignature(name, argTypes))
}

func invalidTarget(name string, kind string, rng hcl.Range) *hcl.Diagnostic {
	return errorf(rng, "cannot assign a value to %s %s", kind, name)
}

func invalidDestOperator(name string, op syntax.Operator, rng hcl.Range) *hcl.Diagnostic {
	return errorf(rng, "operator %s cannot be used with destination image %s", op, name)
}

func readOfDestImage(name string, rng hcl.Range) *hcl.Diagnostic {
	return errorf(rng, "cannot read from destination image %s", name)
}

func notAnImage(name string, rng hcl.Range) *hcl.Diagnostic {
	return errorf(rng, "%s is not a source image", name)
}

func scalarRequired(what string, actual lookup.JiffleType, rng hcl.Range) *hcl.Diagnostic {
	return errorf(rng, "%s must be a scalar value, found %v", what, actual)
}

func listOperands(op syntax.Operator, rng hcl.Range) *hcl.Diagnostic {
	return errorf(rng, "operator %s cannot be applied to two lists", op)
}

func outsideLoop(stmt string, rng hcl.Range) *hcl.Diagnostic {
	return errorf(rng, "%s can only be used inside a loop", stmt)
}

func misplacedLiteral(what string, rng hcl.Range) *hcl.Diagnostic {
	return errorf(rng, "%s literals may only be used as option values", what)
}

func sourceReadInInit(name string, rng hcl.Range) *hcl.Diagnostic {
	return errorf(rng, "source image %s cannot be read in the init block", name)
}
