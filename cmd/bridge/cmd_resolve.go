// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	. "gitlab.com/accumulatenetwork/portfolio-bridge/internal/util/cmd"
)

var cmdResolve = &cobra.Command{
	Use:   "resolve [eid]",
	Short: "Show the message library the bridge uses for a destination",
	Args:  cobra.ExactArgs(1),
	Run:   resolve,
}

func init() {
	cmdMain.AddCommand(cmdResolve)
}

func resolve(cmd *cobra.Command, args []string) {
	e := setup()
	ctx, cancel := e.Context(cmd)
	defer cancel()

	eid := parseEid(args[0])
	s, err := e.Bridge.Resolve(ctx, e.Payer().PublicKey(), eid)
	Check(err)

	fmt.Printf("Library:  %s %v\n", s.Name(), s.Version())
	fmt.Printf("Program:  %v\n", s.ProgramID())
	fmt.Printf("Settings: %v\n", s.SettingsAddress())
	fmt.Printf("Default:  %v\n", s.SendLibrary.IsDefault)
}
