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
	"testing"

	"github.com/geosolutions/jiffle/pkg/jiffle/lookup"
	"github.com/geosolutions/jiffle/pkg/jiffle/syntax"
	"github.com/stretchr/testify/assert"
)

func TestCollectImages(t *testing.T) {
	roles, diagnostics := CollectImages(script([]syntax.Block{images("a", "read", "out", "write", "b", "read")}),
		lookup.Constants())
	assert.Empty(t, diagnostics)
	assert.Equal(t, []string{"a", "b"}, roles.SourceNames())
	assert.Equal(t, []string{"out"}, roles.DestNames())

	roles, diagnostics = CollectImages(body(), lookup.Constants())
	assert.Empty(t, diagnostics)
	assert.Nil(t, roles)
}

func TestCollectImagesErrors(t *testing.T) {
	s := script([]syntax.Block{
		images("a", "read", "b", "sideways", "M_PI", "read", "a", "write"),
		images("c", "read"),
	})
	roles, diagnostics := CollectImages(s, lookup.Constants())
	assert.Equal(t, []string{
		`invalid role "sideways" for image b: expected read or write`,
		"image M_PI has the name of a constant",
		"a is already declared",
		"only one images block is allowed",
	}, summaries(diagnostics))
	assert.Equal(t, ImageRoles{"a": SourceRole}, roles)
}

func TestCollectOptions(t *testing.T) {
	tests := []struct {
		value    syntax.Expression
		expected string
	}{
		{num(0), "0"},
		{float(1.5), "1.5"},
		{neg(num(2)), "-2"},
		{neg(float(-2.5)), "2.5"},
		{ident("M_PI"), "3.141592653589793"},
		{ident("M_NaN"), lookup.NaNLiteral},
		{ident("NaN"), lookup.NaNLiteral},
		{null(), lookup.NaNLiteral},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			s := script([]syntax.Block{options(option("outside", tt.value))})
			opts, diagnostics := CollectOptions(s, lookup.Options(), lookup.Constants())
			assert.Empty(t, summaries(diagnostics))
			assert.Equal(t, map[string]string{"outside": tt.expected}, opts)
		})
	}

	s := script([]syntax.Block{options(option("scriptName", str("slope")))})
	opts, diagnostics := CollectOptions(s, lookup.Options(), lookup.Constants())
	assert.Empty(t, diagnostics)
	assert.Equal(t, map[string]string{"scriptName": "slope"}, opts)
}

func TestCollectOptionsErrors(t *testing.T) {
	// An unknown option fails whatever its value.
	for _, value := range []syntax.Expression{num(1), null(), str("x"), ident("M_PI")} {
		s := script([]syntax.Block{options(option("nosuch", value))})
		opts, diagnostics := CollectOptions(s, lookup.Options(), lookup.Constants())
		assert.Equal(t, []string{"unknown option nosuch"}, summaries(diagnostics))
		assert.Empty(t, opts)
	}

	s := script([]syntax.Block{
		options(
			option("outside", num(1)),
			option("outside", num(2)),
			option("scriptName", num(3)),
			option("scriptName", ident("a")),
		),
		options(option("outside", num(4))),
	})
	opts, diagnostics := CollectOptions(s, lookup.Options(), lookup.Constants())
	assert.Len(t, diagnostics, 4)
	assert.Equal(t, "option outside is already set", diagnostics[0].Summary)
	assert.Equal(t, "value of option scriptName must be a literal, a named constant or null", diagnostics[2].Summary)
	assert.Equal(t, "only one options block is allowed", diagnostics[3].Summary)
	assert.Equal(t, map[string]string{"outside": "1"}, opts)
}

func TestCollectOptionsSignedValues(t *testing.T) {
	s := script([]syntax.Block{options(option("scriptName", neg(str("abc"))), option("outside", neg(null())))})
	opts, diagnostics := CollectOptions(s, lookup.Options(), lookup.Constants())
	assert.Equal(t, []string{
		"value of option scriptName must be a literal, a named constant or null",
		"value of option outside must be a literal, a named constant or null",
	}, summaries(diagnostics))
	assert.Empty(t, opts)

	s = script([]syntax.Block{options(option("outside", neg(neg(ident("M_PI")))))})
	opts, diagnostics = CollectOptions(s, lookup.Options(), lookup.Constants())
	assert.Empty(t, diagnostics)
	assert.Equal(t, map[string]string{"outside": "3.141592653589793"}, opts)
}
