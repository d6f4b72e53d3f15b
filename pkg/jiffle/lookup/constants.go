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

package lookup

import (
	"math"
	"sort"

	"github.com/geosolutions/jiffle/pkg/util/contract"
)

// NaNLiteral is the normalized literal form of a NaN value.
const NaNLiteral = "NaN"

// ConstantTable maps constant names to their values.
type ConstantTable struct {
	values map[string]float64
}

var defaultConstants = &ConstantTable{values: map[string]float64{
	"M_E":    math.E,
	"M_PI":   math.Pi,
	"M_PI_2": math.Pi / 2,
	"M_PI_4": math.Pi / 4,
	"M_1_PI": 1 / math.Pi,
	"M_2_PI": 2 / math.Pi,

	"M_SQRT2": math.Sqrt2,

	"M_NaN": math.NaN(),
	"NaN":   math.NaN(),
}}

// Constants returns the process-wide constant table.
func Constants() *ConstantTable {
	return defaultConstants
}

// IsDefined reports whether name is a constant.
func (t *ConstantTable) IsDefined(name string) bool {
	_, ok := t.values[name]
	return ok
}

// Value returns the value of a constant. Callers must check IsDefined first.
func (t *ConstantTable) Value(name string) float64 {
	v, ok := t.values[name]
	contract.Assertf(ok, "undefined constant %q", name)
	return v
}

// IsNaN reports whether name is one of the NaN aliases.
func (t *ConstantTable) IsNaN(name string) bool {
	v, ok := t.values[name]
	return ok && math.IsNaN(v)
}

// Names returns the sorted constant names.
func (t *ConstantTable) Names() []string {
	names := make([]string, 0, len(t.values))
	for name := range t.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
