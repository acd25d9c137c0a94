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
	. "gitlab.com/accumulatenetwork/portfolio-bridge/internal/util/cmd"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge"
)

var cmdInit = &cobra.Command{
	Use:   "init",
	Short: "Initialize the bridge, register it with the endpoint, and set up the configured peers",
	Args:  cobra.NoArgs,
	Run:   initBridge,
}

var flagInit struct {
	Portfolio      string
	MainnetRFQ     string
	DefaultChainID uint32
	SkipPeers      bool
}

func init() {
	cmdMain.AddCommand(cmdInit)
	cmdInit.Flags().StringVar(&flagInit.Portfolio, "portfolio", "", "Portfolio program (defaults to the configured value)")
	cmdInit.Flags().StringVar(&flagInit.MainnetRFQ, "mainnet-rfq", "", "Mainnet RFQ program (defaults to the configured value)")
	cmdInit.Flags().Uint32Var(&flagInit.DefaultChainID, "default-chain-id", 0, "Default chain ID (defaults to the configured value)")
	cmdInit.Flags().BoolVar(&flagInit.SkipPeers, "skip-peers", false, "Do not register the configured peers or configure their paths")
}

func initBridge(cmd *cobra.Command, _ []string) {
	e := setup()
	ctx, cancel := e.Context(cmd)
	defer cancel()

	params := bridge.InitParams{
		EndpointProgram: solana.MustPublicKeyFromBase58(e.Config.Programs.Endpoint),
		Portfolio:       solana.MustPublicKeyFromBase58(e.Config.Init.Portfolio),
		MainnetRFQ:      solana.MustPublicKeyFromBase58(e.Config.Init.MainnetRFQ),
		DefaultChainID:  e.Config.Init.DefaultChainID,
	}
	var err error
	if flagInit.Portfolio != "" {
		params.Portfolio, err = solana.PublicKeyFromBase58(flagInit.Portfolio)
		Checkf(err, "invalid portfolio")
	}
	if flagInit.MainnetRFQ != "" {
		params.MainnetRFQ, err = solana.PublicKeyFromBase58(flagInit.MainnetRFQ)
		Checkf(err, "invalid mainnet RFQ")
	}
	if cmd.Flags().Changed("default-chain-id") {
		params.DefaultChainID = flagInit.DefaultChainID
	}

	payer := e.Payer()
	ix, err := e.Bridge.InitBridge(ctx, payer.PublicKey(), params)
	Check(err)
	e.submit(cmd, payer, ix, "Bridge is already initialized")

	if flagInit.SkipPeers {
		return
	}
	if ix != nil && flagMain.DryRun {
		Warnf("Skipping peers: the bridge is not initialized yet")
		return
	}

	// Register every configured peer and configure its path
	peers, err := e.Config.PeerTable()
	Check(err)
	for _, eid := range e.Config.PeerEids() {
		ix, err := e.Bridge.EnsurePeer(ctx, payer.PublicKey(), eid, peers[eid])
		Check(err)
		e.submit(cmd, payer, ix, fmt.Sprintf("Peer for %d is already %s", eid, bridge.FormatPeer(peers[eid])))
		e.configurePath(cmd, payer, eid)
	}
}
