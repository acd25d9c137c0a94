// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	. "gitlab.com/accumulatenetwork/portfolio-bridge/internal/util/cmd"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge"
	"golang.org/x/sync/errgroup"
)

var cmdSetPeer = &cobra.Command{
	Use:   "set-peer [eid] [peer]",
	Short: "Set the peer for a destination",
	Long:  "Set the peer for a destination. The peer may be 0x-prefixed hex or base58. If the peer is omitted, the configured peer is used.",
	Args:  cobra.RangeArgs(1, 2),
	Run:   setPeer,
}

var cmdGetPeer = &cobra.Command{
	Use:   "get-peer [eid]",
	Short: "Show the peer registered for a destination",
	Args:  cobra.ExactArgs(1),
	Run:   getPeer,
}

var cmdPeers = &cobra.Command{
	Use:   "peers",
	Short: "Compare the configured peers with the registered peers",
	Args:  cobra.NoArgs,
	Run:   listPeers,
}

var flagPeers struct {
	Sync bool
}

func init() {
	cmdMain.AddCommand(cmdSetPeer, cmdGetPeer, cmdPeers)
	cmdPeers.Flags().BoolVar(&flagPeers.Sync, "sync", false, "Register every configured peer that differs from the registered peer and configure its path")
}

func setPeer(cmd *cobra.Command, args []string) {
	e := setup()
	ctx, cancel := e.Context(cmd)
	defer cancel()

	eid := parseEid(args[0])
	var peer [32]byte
	var err error
	if len(args) > 1 {
		peer, err = bridge.ParsePeer(args[1])
		Check(err)
	} else {
		peers, err := e.Config.PeerTable()
		Check(err)
		var ok bool
		peer, ok = peers[eid]
		if !ok {
			Fatalf("no peer is configured for %d", eid)
		}
	}

	payer := e.Payer()
	ix, err := e.Bridge.EnsurePeer(ctx, payer.PublicKey(), eid, peer)
	Check(err)
	e.submit(cmd, payer, ix, fmt.Sprintf("Peer for %d is already %s", eid, bridge.FormatPeer(peer)))
}

func getPeer(cmd *cobra.Command, args []string) {
	e := setup()
	ctx, cancel := e.Context(cmd)
	defer cancel()

	eid := parseEid(args[0])
	peer, ok, err := e.Bridge.GetPeer(ctx, eid)
	Check(err)
	if !ok {
		Fatalf("no peer is registered for %d", eid)
	}
	fmt.Println(bridge.FormatPeer(peer))
}

type peerStatus struct {
	Eid        uint32
	Configured [32]byte
	Registered [32]byte
	State      bridge.PeerState
}

func (s *peerStatus) String() string {
	switch {
	case s.State == bridge.Unregistered:
		return "unregistered"
	case s.Configured != s.Registered:
		return "mismatch"
	default:
		return "ok"
	}
}

func listPeers(cmd *cobra.Command, _ []string) {
	e := setup()
	ctx, cancel := e.Context(cmd)
	defer cancel()

	peers, err := e.Config.PeerTable()
	Check(err)
	eids := e.Config.PeerEids()
	if len(eids) == 0 {
		Warnf("No peers are configured")
		return
	}

	status := make([]*peerStatus, len(eids))
	g, gctx := errgroup.WithContext(ctx)
	for i, eid := range eids {
		i, eid := i, eid
		g.Go(func() error {
			registered, ok, err := e.Bridge.GetPeer(gctx, eid)
			if err != nil {
				return err
			}
			s := &peerStatus{Eid: eid, Configured: peers[eid], Registered: registered}
			if ok {
				s.State = bridge.Registered
			}
			status[i] = s
			return nil
		})
	}
	Check(g.Wait())

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EID\tCONFIGURED\tREGISTERED\tSTATUS")
	for _, s := range status {
		registered := "-"
		if s.State == bridge.Registered {
			registered = bridge.FormatPeer(s.Registered)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%v\n", s.Eid, bridge.FormatPeer(s.Configured), registered, s)
	}
	Check(tw.Flush())

	if !flagPeers.Sync {
		return
	}

	payer := e.Payer()
	for _, s := range status {
		if s.String() == "ok" {
			continue
		}
		ix, err := e.Bridge.SetPeer(payer.PublicKey(), s.Eid, s.Configured)
		Check(err)
		e.submit(cmd, payer, ix, "")
	}
	for _, s := range status {
		e.configurePath(cmd, payer, s.Eid)
	}
}
