// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"gitlab.com/accumulatenetwork/portfolio-bridge/internal/version"
)

var cmdVersion = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		if !printVersion(cmd.OutOrStdout()) {
			os.Exit(1)
		}
	},
}

var flagVersion struct {
	Short bool
	Check bool
}

func init() {
	cmdMain.AddCommand(cmdVersion)

	cmdVersion.Flags().BoolVar(&flagVersion.Short, "short", false, "Print only the version number")
	cmdVersion.Flags().BoolVar(&flagVersion.Check, "check", false, "Exit with status 1 if the build has no version")
}

// printVersion prints the version and returns false if --check is set and
// the version is unknown.
func printVersion(w io.Writer) bool {
	if flagVersion.Short {
		fmt.Fprintln(w, version.Version)
	} else {
		fmt.Fprintf(w, "%s %s %s/%s\n", cmdMain.Short, version.String(), runtime.GOOS, runtime.GOARCH)
	}
	return !flagVersion.Check || version.IsVersionKnown()
}
