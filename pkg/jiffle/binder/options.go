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
	"strconv"

	"github.com/geosolutions/jiffle/pkg/jiffle/lookup"
	"github.com/geosolutions/jiffle/pkg/jiffle/syntax"
	"github.com/golang/glog"
	"github.com/hashicorp/hcl/v2"
)

// CollectOptions reads the script's options block. Each value is checked against the option table and normalized:
// numbers and named constants become numeric literals, and the null keyword becomes the NaN literal.
func CollectOptions(script *syntax.Script, table *lookup.OptionTable,
	consts *lookup.ConstantTable) (map[string]string, hcl.Diagnostics) {

	options := map[string]string{}
	var diagnostics hcl.Diagnostics

	seenBlock := false
	for _, b := range script.Blocks {
		block, ok := b.(*syntax.OptionsBlock)
		if !ok {
			continue
		}
		if seenBlock {
			diagnostics = append(diagnostics, duplicateBlock("options", block.Range()))
			continue
		}
		seenBlock = true

		for _, opt := range block.Options {
			if !table.IsDefined(opt.Name) {
				diagnostics = append(diagnostics, errorf(opt.NameRange, "unknown option %s", opt.Name))
				continue
			}
			if _, exists := options[opt.Name]; exists {
				diagnostics = append(diagnostics, errorf(opt.NameRange, "option %s is already set", opt.Name))
				continue
			}

			shape, value, ok := normalizeOptionValue(opt.Value, consts)
			if !ok {
				diagnostics = append(diagnostics, errorf(opt.Value.Range(),
					"value of option %s must be a literal, a named constant or null", opt.Name))
				continue
			}
			if err := table.Validate(opt.Name, shape, value); err != nil {
				diagnostics = append(diagnostics, errorf(opt.Value.Range(), "%v", err))
				continue
			}

			glog.V(7).Infof("option %s = %s", opt.Name, value)
			options[opt.Name] = value
		}
	}

	return options, diagnostics
}

func normalizeOptionValue(x syntax.Expression, consts *lookup.ConstantTable) (lookup.ValueShape, string, bool) {
	switch x := x.(type) {
	case *syntax.IntLiteral:
		return lookup.AnyNumber, strconv.FormatInt(x.Value, 10), true
	case *syntax.FloatLiteral:
		return lookup.AnyNumber, formatNumber(x.Value), true
	case *syntax.UnaryExpr:
		if x.Op != syntax.OpSub && x.Op != syntax.OpAdd {
			return 0, "", false
		}
		// Only numbers take a sign.
		shape, value, ok := normalizeOptionValue(x.Operand, consts)
		if !ok || shape != lookup.AnyNumber {
			return 0, "", false
		}
		if value == lookup.NaNLiteral {
			return shape, value, true
		}
		if x.Op == syntax.OpSub {
			if value[0] == '-' {
				return shape, value[1:], true
			}
			return shape, "-" + value, true
		}
		return shape, value, true
	case *syntax.Identifier:
		if !consts.IsDefined(x.Name) {
			return 0, "", false
		}
		return lookup.AnyNumber, formatNumber(consts.Value(x.Name)), true
	case *syntax.NullLiteral:
		return lookup.NullKeyword, lookup.NaNLiteral, true
	case *syntax.StringLiteral:
		return lookup.AnyString, x.Value, true
	case *syntax.ParenExpr:
		return normalizeOptionValue(x.Expr, consts)
	default:
		return 0, "", false
	}
}

func formatNumber(v float64) string {
	if math.IsNaN(v) {
		return lookup.NaNLiteral
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
