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
	"bytes"
	// Used to embed the built-in function descriptors.
	_ "embed"
	"io"
	"io/ioutil"
	"sort"
	"sync"

	"github.com/geosolutions/jiffle/pkg/util/contract"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	yaml "gopkg.in/yaml.v2"
)

// minRecordFields is the number of fields every descriptor record carries before its argument types.
const minRecordFields = 5

//go:embed functions.yaml
var functionsDescriptor []byte

// FunctionTable maps script function names to their overloads.
type FunctionTable struct {
	functions map[string][]FunctionInfo
}

// NewFunctionTable returns an empty table.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{functions: map[string][]FunctionInfo{}}
}

var (
	defaultFunctions     *FunctionTable
	defaultFunctionsOnce sync.Once
)

// Functions returns the process-wide table built from the embedded descriptors. A missing or malformed descriptor
// set is a fatal configuration error.
func Functions() *FunctionTable {
	defaultFunctionsOnce.Do(func() {
		contract.Assertf(len(functionsDescriptor) != 0, "built-in function descriptors are missing")

		table, err := LoadFunctions(bytes.NewReader(functionsDescriptor))
		contract.Assertf(err == nil, "loading built-in function descriptors: %v", err)
		defaultFunctions = table
	})
	return defaultFunctions
}

// LoadFunctions reads a descriptor set: a YAML sequence of records, each itself a sequence of the form
// [scriptName, targetName, provider, isVolatile, returnType, argType...]. Every malformed record is reported.
func LoadFunctions(r io.Reader) (*FunctionTable, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading function descriptors")
	}

	var records [][]interface{}
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "decoding function descriptors")
	}

	table := NewFunctionTable()
	var result error
	for i, record := range records {
		info, err := parseFunctionRecord(record)
		if err == nil {
			err = table.Add(info)
		}
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "record %d", i+1))
		}
	}
	if result != nil {
		return nil, result
	}
	return table, nil
}

func parseFunctionRecord(fields []interface{}) (FunctionInfo, error) {
	if len(fields) < minRecordFields {
		return FunctionInfo{}, errors.Errorf("expected at least %d fields, found %d", minRecordFields, len(fields))
	}

	strs := make([]string, len(fields))
	for i, f := range fields {
		s, err := cast.ToStringE(f)
		if err != nil {
			return FunctionInfo{}, errors.Wrapf(err, "field %d", i+1)
		}
		strs[i] = s
	}
	if strs[0] == "" || strs[1] == "" {
		return FunctionInfo{}, errors.New("script and target names must not be empty")
	}

	provider, err := ParseProvider(strs[2])
	if err != nil {
		return FunctionInfo{}, err
	}
	volatile, err := cast.ToBoolE(fields[3])
	if err != nil {
		return FunctionInfo{}, errors.Wrapf(err, "volatile flag of %s", strs[0])
	}
	returnType, err := ParseType(strs[4])
	if err != nil {
		return FunctionInfo{}, err
	}

	var argTypes []JiffleType
	for _, label := range strs[minRecordFields:] {
		t, err := ParseType(label)
		if err != nil {
			return FunctionInfo{}, err
		}
		argTypes = append(argTypes, t)
	}

	return FunctionInfo{
		ScriptName: strs[0],
		TargetName: strs[1],
		Provider:   provider,
		Volatile:   volatile,
		ReturnType: returnType,
		ArgTypes:   argTypes,
	}, nil
}

// Add registers an overload. Registering the same name and argument types twice is an error.
func (t *FunctionTable) Add(info FunctionInfo) error {
	if _, ok := t.Lookup(info.ScriptName, info.ArgTypes); ok {
		return errors.Errorf("duplicate definition of %v", info)
	}
	t.functions[info.ScriptName] = append(t.functions[info.ScriptName], info)
	return nil
}

// Lookup finds the overload of name whose argument types match argTypes exactly.
func (t *FunctionTable) Lookup(name string, argTypes []JiffleType) (FunctionInfo, bool) {
	for _, info := range t.functions[name] {
		if info.Accepts(argTypes) {
			return info, true
		}
	}
	return FunctionInfo{}, false
}

// IsDefined reports whether an overload of name accepts argTypes.
func (t *FunctionTable) IsDefined(name string, argTypes ...JiffleType) bool {
	_, ok := t.Lookup(name, argTypes)
	return ok
}

// IsDefinedName reports whether any overload of name exists.
func (t *FunctionTable) IsDefinedName(name string) bool {
	return len(t.functions[name]) != 0
}

// Overloads returns the overloads of name in registration order.
func (t *FunctionTable) Overloads(name string) []FunctionInfo {
	return append([]FunctionInfo(nil), t.functions[name]...)
}

// Names returns the sorted set of function names.
func (t *FunctionTable) Names() []string {
	names := make([]string, 0, len(t.functions))
	for name := range t.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
