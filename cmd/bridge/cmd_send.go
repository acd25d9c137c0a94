// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	. "gitlab.com/accumulatenetwork/portfolio-bridge/internal/util/cmd"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge/xfer"
)

var cmdSend = &cobra.Command{
	Use:   "send [eid]",
	Short: "Send an XFER message to a destination",
	Args:  cobra.ExactArgs(1),
	Run:   send,
}

var cmdQuote = &cobra.Command{
	Use:   "quote [eid]",
	Short: "Quote the fee for sending an XFER message to a destination",
	Args:  cobra.ExactArgs(1),
	Run:   quote,
}

var flagMessage struct {
	Tx         string
	Trader     string
	Symbol     string
	Quantity   uint64
	Nonce      uint64
	Timestamp  uint32
	CustomData string
}

func init() {
	cmdMain.AddCommand(cmdSend, cmdQuote)
	for _, cmd := range []*cobra.Command{cmdSend, cmdQuote} {
		cmd.Flags().StringVar(&flagMessage.Tx, "tx", xfer.Deposit.String(), "Transaction type")
		cmd.Flags().StringVar(&flagMessage.Trader, "trader", "", "Trader address, hex or base58 (defaults to the payer)")
		cmd.Flags().StringVar(&flagMessage.Symbol, "symbol", "", "Token symbol")
		cmd.Flags().Uint64Var(&flagMessage.Quantity, "quantity", 0, "Quantity in the token's smallest unit")
		cmd.Flags().Uint64Var(&flagMessage.Nonce, "nonce", 0, "Message nonce")
		cmd.Flags().Uint32Var(&flagMessage.Timestamp, "timestamp", 0, "Message timestamp (defaults to now)")
		cmd.Flags().StringVar(&flagMessage.CustomData, "custom-data", "", "Custom data, 0x-prefixed hex, at most 18 bytes")
		_ = cmd.MarkFlagRequired("symbol")
	}
}

func parseMessage(e *env) xfer.XFER {
	tx, ok := xfer.TxByName(flagMessage.Tx)
	if !ok {
		Fatalf("unknown transaction type %q", flagMessage.Tx)
	}

	var trader [32]byte
	var err error
	if flagMessage.Trader == "" {
		trader = e.Payer().PublicKey()
	} else {
		trader, err = bridge.ParsePeer(flagMessage.Trader)
		Checkf(err, "invalid trader")
	}

	symbol, err := xfer.PadSymbol(flagMessage.Symbol)
	Check(err)

	ts := flagMessage.Timestamp
	if ts == 0 {
		ts = uint32(time.Now().Unix())
	}

	msg := xfer.New(tx, trader, symbol, flagMessage.Quantity, ts)
	msg.Nonce = flagMessage.Nonce
	if flagMessage.CustomData != "" {
		b, err := hexutil.Decode(flagMessage.CustomData)
		Checkf(err, "invalid custom data")
		if len(b) > xfer.CustomDataLength {
			Fatalf("custom data is longer than %d bytes", xfer.CustomDataLength)
		}
		copy(msg.CustomData[:], b)
	}
	return msg
}

func send(cmd *cobra.Command, args []string) {
	e := setup()
	ctx, cancel := e.Context(cmd)
	defer cancel()

	eid := parseEid(args[0])
	msg := parseMessage(e)
	payer := e.Payer()

	ix, err := e.Bridge.Send(ctx, payer.PublicKey(), eid, msg)
	Check(err)
	e.submit(cmd, payer, ix, "")
}

func quote(cmd *cobra.Command, args []string) {
	e := setup()
	ctx, cancel := e.Context(cmd)
	defer cancel()

	eid := parseEid(args[0])
	msg := parseMessage(e)
	payer := e.Payer()

	if flagMain.DryRun {
		ix, err := e.Bridge.Quote(ctx, payer.PublicKey(), eid, msg)
		Check(err)
		e.submit(cmd, payer, ix, "")
		return
	}

	fee, err := e.Bridge.SimulateQuote(ctx, payer.PublicKey(), eid, msg)
	Check(err)
	fmt.Printf("Native fee:   %s\n", formatLamports(fee.NativeFee))
	fmt.Printf("LZ token fee: %d\n", fee.LzTokenFee)

	balance, err := e.Client.GetBalance(ctx, payer.PublicKey())
	Check(err)
	fmt.Printf("Balance:      %s\n", formatLamports(balance))
	if balance < fee.NativeFee {
		Warnf("The payer cannot afford the fee")
	}
}
