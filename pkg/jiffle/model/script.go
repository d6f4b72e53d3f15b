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

package model

// Option is a script option together with the code fragment it activates.
type Option struct {
	Name  string
	Value string
	Code  string
}

// GlobalVariable is a variable of the init block. Init is evaluated once, before the first pixel.
type GlobalVariable struct {
	Name string
	Init Expression
}

// Script is the executable model of a whole script.
type Script struct {
	Options      []*Option
	SourceImages []string
	DestImages   []string
	GlobalVars   []*GlobalVariable
	Body         *Block
}
