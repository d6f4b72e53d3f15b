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

// Package lookup holds the static tables consulted while compiling a script: named constants, built-in function
// signatures and script options. The shared tables are built once per process and are read-only afterwards, so
// they may be used by concurrent compilations.
package lookup

import (
	"strings"

	"github.com/pkg/errors"
)

// JiffleType is the static type of an expression.
type JiffleType int

const (
	// UnknownType marks an expression whose type could not be inferred.
	UnknownType JiffleType = iota
	// D is a scalar double value.
	D
	// List is a list of scalars.
	List
)

func (t JiffleType) String() string {
	switch t {
	case D:
		return "D"
	case List:
		return "List"
	default:
		return "Unknown"
	}
}

// ParseType converts a descriptor type label into a JiffleType.
func ParseType(label string) (JiffleType, error) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "D":
		return D, nil
	case "LIST":
		return List, nil
	default:
		return UnknownType, errors.Errorf("unrecognized type label %q", label)
	}
}

// Provider is the category of a built-in function's implementation.
type Provider int

const (
	// Builtin functions are runtime helpers supplied with the evaluator.
	Builtin Provider = iota
	// MathLib functions pass straight through to the host math library.
	MathLib
	// Proxy functions stand in for a field or method of the runtime, such as the current pixel position.
	Proxy
)

var providerLabels = map[Provider]string{
	Builtin: "JIFFLE",
	MathLib: "MATH",
	Proxy:   "PROXY",
}

func (p Provider) String() string {
	return providerLabels[p]
}

// ParseProvider converts a descriptor provider label into a Provider.
func ParseProvider(label string) (Provider, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	for p, l := range providerLabels {
		if l == label {
			return p, nil
		}
	}
	return Builtin, errors.Errorf("unrecognized provider %q", label)
}

// FunctionInfo describes one overload of a built-in function.
type FunctionInfo struct {
	ScriptName string
	TargetName string
	Provider   Provider
	Volatile   bool
	ReturnType JiffleType
	ArgTypes   []JiffleType
}

// Accepts reports whether the overload matches the given argument types exactly.
func (f FunctionInfo) Accepts(argTypes []JiffleType) bool {
	if len(argTypes) != len(f.ArgTypes) {
		return false
	}
	for i, t := range argTypes {
		if f.ArgTypes[i] != t {
			return false
		}
	}
	return true
}

// IsProxy reports whether the function stands for a runtime value rather than a computation.
func (f FunctionInfo) IsProxy() bool {
	return f.Provider == Proxy
}

func (f FunctionInfo) String() string {
	return FormatSignature(f.ScriptName, f.ArgTypes)
}

func typeList(types []JiffleType) string {
	labels := make([]string, len(types))
	for i, t := range types {
		labels[i] = t.String()
	}
	return strings.Join(labels, ", ")
}

// FormatSignature renders a call signature such as `max(D, List)` for diagnostics.
func FormatSignature(name string, argTypes []JiffleType) string {
	return name + "(" + typeList(argTypes) + ")"
}
