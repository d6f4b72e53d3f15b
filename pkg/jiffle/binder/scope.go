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
	"sort"

	"github.com/geosolutions/jiffle/pkg/util/contract"
	"github.com/pkg/errors"
)

// SymbolKind is the role a name plays in a script.
type SymbolKind int

const (
	// UnknownKind marks a variable whose kind is fixed by the type of its first assignment.
	UnknownKind SymbolKind = iota
	ScalarKind
	ListKind
	LoopVarKind
	SourceImageKind
	DestImageKind
)

var kindNames = [...]string{
	UnknownKind:     "unknown",
	ScalarKind:      "scalar",
	ListKind:        "list",
	LoopVarKind:     "loop variable",
	SourceImageKind: "source image",
	DestImageKind:   "destination image",
}

func (k SymbolKind) String() string { return kindNames[k] }

// IsImage reports whether k is one of the image kinds.
func (k SymbolKind) IsImage() bool {
	return k == SourceImageKind || k == DestImageKind
}

// Symbol binds a name to its kind. Symbols are values: resolving an unknown kind replaces the symbol in its scope.
type Symbol struct {
	Name string
	Kind SymbolKind
}

// ScopeKind classifies the construct that opened a scope.
type ScopeKind int

const (
	GlobalScope ScopeKind = iota
	ScriptScope
	BlockScope
	LoopScope
)

// Scope is one level of the lexical scope tree. Names are never removed from a scope.
type Scope struct {
	kind    ScopeKind
	parent  *Scope
	symbols map[string]Symbol
}

// NewGlobalScope returns an empty root scope.
func NewGlobalScope() *Scope {
	return &Scope{kind: GlobalScope, symbols: map[string]Symbol{}}
}

// NewChild opens a scope nested in s.
func (s *Scope) NewChild(kind ScopeKind) *Scope {
	contract.Assertf(kind != GlobalScope, "only the root scope may be global")
	return &Scope{kind: kind, parent: s, symbols: map[string]Symbol{}}
}

func (s *Scope) Kind() ScopeKind { return s.kind }
func (s *Scope) Parent() *Scope  { return s.parent }

// IsGlobal reports whether s is the root scope.
func (s *Scope) IsGlobal() bool { return s.parent == nil }

// Add defines sym in s. Redefining a name already present in s fails unless allowReplace is set; names in
// enclosing scopes may always be shadowed.
func (s *Scope) Add(sym Symbol, allowReplace bool) error {
	if _, exists := s.symbols[sym.Name]; exists && !allowReplace {
		return errors.Errorf("%q already declared", sym.Name)
	}
	s.symbols[sym.Name] = sym
	return nil
}

// Lookup resolves name in s or the nearest enclosing scope that defines it.
func (s *Scope) Lookup(name string) (Symbol, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if sym, ok := scope.symbols[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// Has reports whether name resolves from s.
func (s *Scope) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Get resolves name like Lookup. Callers must check Has first: an undefined name is a compiler fault.
func (s *Scope) Get(name string) Symbol {
	sym, ok := s.Lookup(name)
	contract.Assertf(ok, "symbol %q is not defined", name)
	return sym
}

// DeclaringScope returns the scope that defines name, or nil.
func (s *Scope) DeclaringScope(name string) *Scope {
	for scope := s; scope != nil; scope = scope.parent {
		if _, ok := scope.symbols[name]; ok {
			return scope
		}
	}
	return nil
}

// NamesOfKind returns the sorted names of the given kind visible from s. A name shadowed by a symbol of another
// kind is not visible.
func (s *Scope) NamesOfKind(kind SymbolKind) []string {
	seen := map[string]bool{}
	var names []string
	for scope := s; scope != nil; scope = scope.parent {
		for name, sym := range scope.symbols {
			if seen[name] {
				continue
			}
			seen[name] = true
			if sym.Kind == kind {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// resolve replaces the unknown symbol name with one of the given kind in the scope that declares it.
func (s *Scope) resolve(name string, kind SymbolKind) {
	declaring := s.DeclaringScope(name)
	contract.Assertf(declaring != nil, "resolving undeclared symbol %q", name)
	contract.Assertf(declaring.symbols[name].Kind == UnknownKind, "symbol %q is already resolved", name)

	err := declaring.Add(Symbol{Name: name, Kind: kind}, true)
	contract.Assert(err == nil)
}
