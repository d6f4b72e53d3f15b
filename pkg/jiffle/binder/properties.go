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
	"github.com/geosolutions/jiffle/pkg/jiffle/lookup"
	"github.com/geosolutions/jiffle/pkg/jiffle/syntax"
	"github.com/geosolutions/jiffle/pkg/util/contract"
)

// Passes never annotate the parse tree itself. Each result is recorded in a side table keyed by node identity, and
// a later pass reading a node an earlier pass should have annotated fails a contract if the entry is missing.

// ScopeMap records the scope each node was bound in.
type ScopeMap map[syntax.Node]*Scope

// Get returns the scope of n.
func (m ScopeMap) Get(n syntax.Node) *Scope {
	s, ok := m[n]
	contract.Assertf(ok, "%T at %v has no scope", n, n.Range())
	return s
}

// TypeMap records the inferred type of each expression.
type TypeMap map[syntax.Node]lookup.JiffleType

// Get returns the type of n.
func (m TypeMap) Get(n syntax.Node) lookup.JiffleType {
	t, ok := m[n]
	contract.Assertf(ok, "%T at %v has no type", n, n.Range())
	return t
}

// CallMap records the overload each call site resolved to.
type CallMap map[*syntax.CallExpr]lookup.FunctionInfo

// Get returns the overload called by n.
func (m CallMap) Get(n *syntax.CallExpr) lookup.FunctionInfo {
	f, ok := m[n]
	contract.Assertf(ok, "call to %s at %v was not resolved", n.Name, n.Range())
	return f
}
