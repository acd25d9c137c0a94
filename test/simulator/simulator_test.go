// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package simulator

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/portfolio-bridge/internal/logging"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/ledger"
)

type writeProgram struct {
	fail bool
}

func (p writeProgram) Invoke(tx *Tx, ix solana.Instruction) ([]byte, error) {
	a := ix.Accounts()[0]
	tx.Put(&ledger.AccountInfo{Address: a.PublicKey, Owner: ix.ProgramID(), Lamports: 1})
	if p.fail {
		return nil, errors.Conflict.With("fail")
	}
	return []byte{1, 2, 3}, nil
}

func TestSimulateDiscardsWrites(t *testing.T) {
	sim := New(logging.NewTestLogger(t))
	prog, target := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	sim.Register(prog, writeProgram{})

	ix := solana.NewInstruction(prog, solana.AccountMetaSlice{solana.NewAccountMeta(target, true, false)}, nil)
	r, err := sim.Simulate(context.Background(), target, ix)
	require.NoError(t, err)

	data, err := r.ReturnData(prog)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, data)

	_, err = sim.GetAccountInfo(context.Background(), target)
	require.ErrorIs(t, err, errors.NotFound)

	_, err = sim.Execute(context.Background(), nil, ix)
	require.NoError(t, err)
	_, err = sim.GetAccountInfo(context.Background(), target)
	require.NoError(t, err)
}

func TestExecuteIsAtomic(t *testing.T) {
	sim := New(logging.NewTestLogger(t))
	good, bad := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	a, b := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	sim.Register(good, writeProgram{})
	sim.Register(bad, writeProgram{fail: true})

	_, err := sim.Execute(context.Background(), nil,
		solana.NewInstruction(good, solana.AccountMetaSlice{solana.NewAccountMeta(a, true, false)}, nil),
		solana.NewInstruction(bad, solana.AccountMetaSlice{solana.NewAccountMeta(b, true, false)}, nil))
	require.ErrorIs(t, err, errors.Conflict)

	_, err = sim.GetAccountInfo(context.Background(), a)
	require.ErrorIs(t, err, errors.NotFound)
}

func TestExecuteChecksSigners(t *testing.T) {
	sim := New(logging.NewTestLogger(t))
	prog, signer := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	sim.Register(prog, writeProgram{})

	ix := solana.NewInstruction(prog, solana.AccountMetaSlice{solana.NewAccountMeta(signer, true, true)}, nil)
	_, err := sim.Execute(context.Background(), nil, ix)
	require.ErrorIs(t, err, errors.Unauthorized)

	_, err = sim.Execute(context.Background(), []solana.PublicKey{signer}, ix)
	require.NoError(t, err)
}
