// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/endpoint"
)

var cmdDerive = &cobra.Command{
	Use:   "derive [eid...]",
	Short: "Print the bridge's derived addresses",
	Long:  "Print the bridge's derived addresses, including the remote account of each destination given or configured.",
	Run:   derive,
}

func init() {
	cmdMain.AddCommand(cmdDerive)
}

func derive(_ *cobra.Command, args []string) {
	e := setup()
	d := e.Bridge.Deriver()
	ep := endpoint.Deriver{Program: solana.MustPublicKeyFromBase58(e.Config.Programs.Endpoint)}

	fmt.Printf("Bridge:            %v\n", d.Bridge())
	fmt.Printf("SOL vault:         %v\n", d.SolVault())
	fmt.Printf("Endpoint settings: %v\n", ep.Settings())
	fmt.Printf("OApp registry:     %v\n", ep.OAppRegistry(d.Bridge().Key))

	eids := e.Config.PeerEids()
	if len(args) > 0 {
		eids = eids[:0]
		for _, arg := range args {
			eids = append(eids, parseEid(arg))
		}
	}
	for _, eid := range eids {
		fmt.Printf("Remote %-11d %v\n", eid, d.Remote(eid))
	}
}
