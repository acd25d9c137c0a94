// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	. "gitlab.com/accumulatenetwork/portfolio-bridge/internal/util/cmd"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge/instructions"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/ledger"
)

var spewConfig = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}

// submit signs and submits the instruction, or prints it if this is a dry
// run. A nil instruction means there is nothing to do.
func (e *env) submit(cmd *cobra.Command, payer solana.PrivateKey, ix *solana.GenericInstruction, noop string) {
	if ix == nil {
		Successf("%s", noop)
		return
	}

	if flagMain.DryRun {
		fmt.Println(instructions.Describe(ix))
		v, err := instructions.Decode(mustData(ix))
		Check(err)
		spewConfig.Dump(v)
		printAccounts(ix)
		return
	}

	e.sendAndConfirm(cmd, payer, instructions.Name(mustData(ix)), ix)
}

// submitSteps submits each step of a setup in order, or prints them if this
// is a dry run.
func (e *env) submitSteps(cmd *cobra.Command, payer solana.PrivateKey, steps []bridge.SetupStep) {
	for _, s := range steps {
		if flagMain.DryRun {
			fmt.Printf("%s(%v, %d accounts)\n", s.Name, s.Instruction.ProgramID(), len(s.Instruction.Accounts()))
			printAccounts(s.Instruction)
			continue
		}
		e.sendAndConfirm(cmd, payer, s.Name, s.Instruction)
	}
}

func (e *env) sendAndConfirm(cmd *cobra.Command, payer solana.PrivateKey, name string, ix *solana.GenericInstruction) {
	ctx, cancel := context.WithTimeout(cmd.Context(), e.Config.RPC.ConfirmTimeout.Get())
	defer cancel()

	submitter := &ledger.Submitter{Client: e.Client}
	sig, err := submitter.Submit(ctx, []solana.PrivateKey{payer}, ix)
	Checkf(err, "submit %s", name)
	Successf("Submitted %s: %v", name, sig)
}

func printAccounts(ix *solana.GenericInstruction) {
	for i, a := range ix.Accounts() {
		fmt.Printf("  %2d %v %s\n", i, a.PublicKey, accountFlags(a))
	}
}

func mustData(ix *solana.GenericInstruction) []byte {
	data, err := ix.Data()
	Check(err)
	return data
}

func accountFlags(a *solana.AccountMeta) string {
	s := []byte("--")
	if a.IsWritable {
		s[0] = 'w'
	}
	if a.IsSigner {
		s[1] = 's'
	}
	return string(s)
}

func formatLamports(v uint64) string {
	return fmt.Sprintf("%s SOL (%s lamports)", humanize.FtoaWithDigits(float64(v)/float64(solana.LAMPORTS_PER_SOL), 9), humanize.Comma(int64(v)))
}
