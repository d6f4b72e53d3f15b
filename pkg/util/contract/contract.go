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

// Package contract reports compiler-internal faults. A failed contract means the pipeline itself is broken, not
// the script being compiled, so every function here panics instead of returning an error.
package contract

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

const failMsg = "An assertion has failed"

// Assert checks a condition and Fails if it is false.
func Assert(cond bool) {
	if !cond {
		failfast(failMsg)
	}
}

// Assertf checks a condition and Failfs if it is false, formatting and logging the given message.
func Assertf(cond bool, msg string, args ...interface{}) {
	if !cond {
		failfast(fmt.Sprintf("%s: %s", failMsg, fmt.Sprintf(msg, args...)))
	}
}

// Failf unconditionally panics with the formatted message.
func Failf(msg string, args ...interface{}) {
	failfast(fmt.Sprintf(msg, args...))
}

// IgnoreError explicitly discards an error that cannot be acted upon.
func IgnoreError(err error) {
	_ = err
}

// IgnoreClose closes c and discards any error.
func IgnoreClose(c io.Closer) {
	IgnoreError(c.Close())
}

func failfast(msg string) {
	panic(errors.Errorf("fatal: %s", msg))
}
