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
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// ValueShape is the kind of value an option accepts.
type ValueShape int

const (
	AnyNumber ValueShape = iota
	AnyString
	NullKeyword
)

func (s ValueShape) String() string {
	switch s {
	case AnyNumber:
		return "any-number"
	case AnyString:
		return "any-string"
	case NullKeyword:
		return "null-keyword"
	default:
		return fmt.Sprintf("ValueShape(%d)", int(s))
	}
}

// OptionInfo describes a script option: the value shapes it accepts and the code fragment it activates. The
// fragment has a single %s verb for the normalized value.
type OptionInfo struct {
	Name   string
	Shapes []ValueShape

	code string
}

// Accepts reports whether the option permits values of the given shape.
func (o OptionInfo) Accepts(shape ValueShape) bool {
	for _, s := range o.Shapes {
		if s == shape {
			return true
		}
	}
	return false
}

// OptionTable maps option names to their descriptions.
type OptionTable struct {
	options map[string]OptionInfo
}

var defaultOptions = newOptionTable(
	OptionInfo{
		Name:   "outside",
		Shapes: []ValueShape{AnyNumber, NullKeyword},
		code:   "_outsideValueSet = true;\n_outsideValue = %s;",
	},
	OptionInfo{
		Name:   "scriptName",
		Shapes: []ValueShape{AnyString},
		code:   "_scriptName = %q;",
	},
)

func newOptionTable(options ...OptionInfo) *OptionTable {
	t := &OptionTable{options: map[string]OptionInfo{}}
	for _, o := range options {
		t.options[o.Name] = o
	}
	return t
}

// Options returns the process-wide option table.
func Options() *OptionTable {
	return defaultOptions
}

// IsDefined reports whether name is a registered option.
func (t *OptionTable) IsDefined(name string) bool {
	_, ok := t.options[name]
	return ok
}

// Info returns the description of an option.
func (t *OptionTable) Info(name string) (OptionInfo, bool) {
	o, ok := t.options[name]
	return o, ok
}

// Names returns the sorted option names.
func (t *OptionTable) Names() []string {
	names := make([]string, 0, len(t.options))
	for name := range t.options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks a normalized value of the given shape against an option. Unregistered options always fail.
func (t *OptionTable) Validate(name string, shape ValueShape, value string) error {
	o, ok := t.options[name]
	if !ok {
		return errors.Errorf("unknown option %q", name)
	}
	if !o.Accepts(shape) {
		return errors.Errorf("option %q does not accept %v values", name, shape)
	}
	if shape == AnyNumber && value != NaNLiteral {
		if _, err := cast.ToFloat64E(value); err != nil {
			return errors.Errorf("option %q requires a number, got %q", name, value)
		}
	}
	return nil
}

// ActivationCode renders the code fragment activated by setting name to value.
func (t *OptionTable) ActivationCode(name, value string) (string, error) {
	o, ok := t.options[name]
	if !ok {
		return "", errors.Errorf("unknown option %q", name)
	}
	return fmt.Sprintf(o.code, value), nil
}
