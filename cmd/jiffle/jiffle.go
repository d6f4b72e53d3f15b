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
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/geosolutions/jiffle/pkg/jiffle/lookup"
	"github.com/geosolutions/jiffle/pkg/util/contract"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func newJiffleCmd() *cobra.Command {
	var functionsPath string

	cmd := &cobra.Command{
		Use:   "jiffle",
		Short: "Inspect the tables used to compile Jiffle scripts",
		Long: "Inspect the tables used to compile Jiffle scripts.\n" +
			"\n" +
			"The built-in functions, named constants and script options can be listed, and\n" +
			"function descriptor files can be checked before they are used.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// glog reads its settings from the standard flag set.
			contract.IgnoreError(flag.CommandLine.Parse(nil))
		},
	}
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	cmd.PersistentFlags().StringVar(&functionsPath, "functions", "",
		"read function descriptors from this file instead of the built-in set")

	loadFunctions := func() (*lookup.FunctionTable, error) {
		if functionsPath == "" {
			return lookup.Functions(), nil
		}
		return loadFunctionsFile(functionsPath)
	}

	cmd.AddCommand(newFunctionsCmd(loadFunctions))
	cmd.AddCommand(newConstantsCmd())
	cmd.AddCommand(newOptionsCmd())
	cmd.AddCommand(newCheckCmd())

	return cmd
}

func loadFunctionsFile(path string) (*lookup.FunctionTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer contract.IgnoreClose(f)

	table, err := lookup.LoadFunctions(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return table, nil
}

func newFunctionsCmd(load func() (*lookup.FunctionTable, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "functions [name]",
		Short: "List the functions scripts may call",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := load()
			if err != nil {
				return err
			}

			names := table.Names()
			if len(args) == 1 {
				if !table.IsDefinedName(args[0]) {
					return errors.Errorf("no function named %q", args[0])
				}
				names = args
			}
			for _, name := range names {
				for _, info := range table.Overloads(name) {
					printFunction(cmd.OutOrStdout(), info)
				}
			}
			return nil
		},
	}
}

func printFunction(w io.Writer, info lookup.FunctionInfo) {
	var notes []string
	if info.Volatile {
		notes = append(notes, "volatile")
	}
	line := fmt.Sprintf("%-24s %-5v %-7v %s", info.String(), info.ReturnType, info.Provider, info.TargetName)
	if len(notes) != 0 {
		line += " (" + strings.Join(notes, ", ") + ")"
	}
	fmt.Fprintln(w, line)
}

func newConstantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "constants",
		Short: "List the named constants",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			consts := lookup.Constants()
			for _, name := range consts.Names() {
				v := consts.Value(name)
				value := fmt.Sprint(v)
				if math.IsNaN(v) {
					value = lookup.NaNLiteral
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", name, value)
			}
		},
	}
}

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the options a script may set",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			opts := lookup.Options()
			for _, name := range opts.Names() {
				info, _ := opts.Info(name)
				shapes := make([]string, len(info.Shapes))
				for i, s := range info.Shapes {
					shapes[i] = s.String()
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", name, strings.Join(shapes, ", "))
			}
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Check function descriptor files",
		Long: "Check function descriptor files.\n" +
			"\n" +
			"Every file is read and every malformed record in every file is reported.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result error
			for _, path := range args {
				table, err := loadFunctionsFile(path)
				if err != nil {
					result = multierr.Append(result, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d function(s)\n", path, len(table.Names()))
			}
			return result
		},
	}
}
