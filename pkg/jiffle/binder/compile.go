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

// Package binder performs semantic analysis of Jiffle scripts and lowers them to executable models.
//
// A compilation runs a fixed sequence of passes over one parse tree: the images and options blocks are collected,
// the scope tree is built, every expression is typed, and the typed tree is lowered to a model.Script. Each pass
// returns the script errors it finds as hcl.Diagnostics and records its conclusions in side tables keyed by syntax
// node, so the parse tree is never modified. Compile runs the whole sequence.
package binder

import (
	"github.com/geosolutions/jiffle/pkg/jiffle/lookup"
	"github.com/geosolutions/jiffle/pkg/jiffle/model"
	"github.com/geosolutions/jiffle/pkg/jiffle/optimizer"
	"github.com/geosolutions/jiffle/pkg/jiffle/syntax"
	"github.com/golang/glog"
	"github.com/hashicorp/hcl/v2"
)

// Tables are the lookup tables consulted by a compilation.
type Tables struct {
	Functions *lookup.FunctionTable
	Constants *lookup.ConstantTable
	Options   *lookup.OptionTable
}

// DefaultTables returns the built-in lookup tables.
func DefaultTables() Tables {
	return Tables{
		Functions: lookup.Functions(),
		Constants: lookup.Constants(),
		Options:   lookup.Options(),
	}
}

func (t Tables) withDefaults() Tables {
	defaults := DefaultTables()
	if t.Functions == nil {
		t.Functions = defaults.Functions
	}
	if t.Constants == nil {
		t.Constants = defaults.Constants
	}
	if t.Options == nil {
		t.Options = defaults.Options
	}
	return t
}

// Config configures a single compilation.
type Config struct {
	// ImageRoles are the image roles to use when the script has no images block.
	ImageRoles ImageRoles

	// Tables holds the lookup tables. Nil tables default to the built-in ones.
	Tables

	// OptimizeReads runs the repeated read optimizer over the model.
	OptimizeReads bool
}

// Result is the outcome of a compilation. Script and the fields derived from it are only set when the
// compilation produced no errors.
type Result struct {
	Images  ImageRoles
	Options map[string]string
	Scopes  *Scopes
	Types   *Types

	Script          *model.Script
	SourcePositions []*model.GetSourceValue
	Bounds          Bounds

	// Optimized is Script after the repeated read optimizer, when requested.
	Optimized *model.Script
}

// Compile analyzes script and lowers it to an executable model. All errors found by any pass are returned; the model
// is not built if there are any.
func Compile(script *syntax.Script, config Config) (*Result, hcl.Diagnostics) {
	tables := config.Tables.withDefaults()
	result := &Result{}

	roles, diagnostics := CollectImages(script, tables.Constants)
	switch {
	case roles == nil:
		roles = config.ImageRoles
	case len(config.ImageRoles) != 0:
		glog.Warningf("script declares its own images; ignoring %d caller-supplied image role(s)", len(config.ImageRoles))
	}
	if len(roles.DestNames()) == 0 {
		diagnostics = append(diagnostics, errorf(script.Range(), "no destination image is defined"))
	}
	result.Images = roles
	glog.V(5).Infof("images: %d source(s), %d destination(s)", len(roles.SourceNames()), len(roles.DestNames()))

	options, diags := CollectOptions(script, tables.Options, tables.Constants)
	diagnostics = append(diagnostics, diags...)
	result.Options = options
	glog.V(5).Infof("options: %d set", len(options))

	scopes, diags := BindVars(script, roles, tables.Constants)
	diagnostics = append(diagnostics, diags...)
	result.Scopes = scopes
	glog.V(5).Infof("variables bound with %d error(s)", len(diags))

	types, diags := InferTypes(script, scopes, tables.Functions, tables.Constants)
	diagnostics = append(diagnostics, diags...)
	result.Types = types
	glog.V(5).Infof("types inferred with %d error(s)", len(diags))

	if diagnostics.HasErrors() {
		return result, diagnostics
	}

	result.Script = BuildModel(script, roles, options, scopes, types, tables)
	result.SourcePositions = SourcePositions(script, roles.SourceNames(), tables.Functions, tables.Constants)
	result.Bounds = ReadBounds(result.SourcePositions)
	glog.V(5).Infof("model built; %d distinct source read(s)", len(result.SourcePositions))

	if config.OptimizeReads {
		result.Optimized = optimizer.New().Optimize(result.Script)
	}
	return result, diagnostics
}
