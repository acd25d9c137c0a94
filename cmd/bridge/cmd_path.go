// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	. "gitlab.com/accumulatenetwork/portfolio-bridge/internal/util/cmd"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
)

var cmdConfigurePath = &cobra.Command{
	Use:   "configure-path [eid...]",
	Short: "Configure the message path to registered peers",
	Long:  "Set the bridge's send and receive libraries, nonce, and executor for each destination. Destinations default to every configured peer. Steps that would change nothing are skipped.",
	Run:   configurePaths,
}

func init() {
	cmdMain.AddCommand(cmdConfigurePath)
}

func configurePaths(cmd *cobra.Command, args []string) {
	e := setup()
	eids := e.Config.PeerEids()
	if len(args) > 0 {
		eids = eids[:0]
		for _, arg := range args {
			eids = append(eids, parseEid(arg))
		}
	}
	if len(eids) == 0 {
		Warnf("No peers are configured")
		return
	}

	payer := e.Payer()
	for _, eid := range eids {
		e.configurePath(cmd, payer, eid)
	}
}

func (e *env) PathConfig() bridge.PathConfig {
	return bridge.PathConfig{
		Library:        solana.MustPublicKeyFromBase58(e.Config.Programs.ULN),
		Executor:       solana.MustPublicKeyFromBase58(e.Config.Programs.Executor),
		MaxMessageSize: e.Config.Path.MaxMessageSize,
	}
}

func (e *env) configurePath(cmd *cobra.Command, payer solana.PrivateKey, eid uint32) {
	ctx, cancel := e.Context(cmd)
	defer cancel()

	steps, err := e.Bridge.ConfigurePath(ctx, payer.PublicKey(), eid, e.PathConfig())
	if flagMain.DryRun && errors.Is(err, errors.PeerNotConfigured) {
		Warnf("Skipping the path to %d: no peer is registered yet", eid)
		return
	}
	Checkf(err, "configure path to %d", eid)
	if len(steps) == 0 {
		Successf("Path to %d is already configured", eid)
		return
	}
	e.submitSteps(cmd, payer, steps)
}
