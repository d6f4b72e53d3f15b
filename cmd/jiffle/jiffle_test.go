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

package main

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newJiffleCmd()
	cmd.SetOutput(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
	return path
}

func TestFunctions(t *testing.T) {
	out, err := run(t, "functions", "max")
	require.NoError(t, err)
	assert.Contains(t, out, "max(D, D)")
	assert.Contains(t, out, "max(List)")
	assert.NotContains(t, out, "min(")

	out, err = run(t, "functions", "rand")
	require.NoError(t, err)
	assert.Contains(t, out, "(volatile)")

	_, err = run(t, "functions", "nosuch")
	assert.EqualError(t, err, `no function named "nosuch"`)
}

func TestFunctionsFromFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "functions.yaml", "- [twice, twice, JIFFLE, false, D, D]\n")

	out, err := run(t, "--functions", path, "functions")
	require.NoError(t, err)
	assert.Contains(t, out, "twice(D)")
	assert.NotContains(t, out, "max(")
}

func TestConstantsAndOptions(t *testing.T) {
	out, err := run(t, "constants")
	require.NoError(t, err)
	assert.Contains(t, out, "M_PI")
	assert.Contains(t, out, "3.141592653589793")
	assert.Contains(t, out, "NaN")

	out, err = run(t, "options")
	require.NoError(t, err)
	assert.Contains(t, out, "any-number, null-keyword")
	assert.Contains(t, out, "scriptName")
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", "- [twice, twice, JIFFLE, false, D, D]\n")
	short := writeFile(t, dir, "short.yaml", "- [twice, twice, JIFFLE]\n")
	badType := writeFile(t, dir, "bad.yaml", "- [twice, twice, JIFFLE, false, Matrix, D]\n")

	out, err := run(t, "check", good)
	require.NoError(t, err)
	assert.Contains(t, out, "good.yaml: 1 function(s)")

	_, err = run(t, "check", good, short, badType, filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
	assert.Contains(t, err.Error(), "short.yaml")
	assert.Contains(t, err.Error(), "bad.yaml")
}
