// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package ledger provides read, simulate and submit access to the ledger.
package ledger

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/anchor"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
)

// AccountInfo is the state of an account.
type AccountInfo struct {
	Address    solana.PublicKey
	Owner      solana.PublicKey
	Lamports   uint64
	Executable bool
	Data       []byte
}

// Reader reads accounts. GetAccountInfo returns an error with the NotFound
// status if the account does not exist.
type Reader interface {
	GetAccountInfo(ctx context.Context, address solana.PublicKey) (*AccountInfo, error)
}

// Simulator simulates a transaction made of the given instructions, paid
// for by payer, without signature verification.
type Simulator interface {
	Simulate(ctx context.Context, payer solana.PublicKey, instructions ...solana.Instruction) (*SimulationResult, error)
}

// Ledger reads and simulates.
type Ledger interface {
	Reader
	Simulator
}

// SimulationResult is the outcome of a simulated transaction.
type SimulationResult struct {
	Logs          []string
	UnitsConsumed uint64
}

// ReturnData returns the data returned by the given program.
func (r *SimulationResult) ReturnData(program solana.PublicKey) ([]byte, error) {
	return ParseReturnData(r.Logs, program)
}

// Exists returns true if the account exists. Errors other than NotFound are
// returned.
func Exists(ctx context.Context, r Reader, address solana.PublicKey) (bool, error) {
	_, err := r.GetAccountInfo(ctx, address)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errors.NotFound):
		return false, nil
	default:
		return false, err
	}
}

// LoadAccount reads an Anchor account and decodes it into v.
func LoadAccount(ctx context.Context, r Reader, address solana.PublicKey, disc anchor.Discriminator, v any) (*AccountInfo, error) {
	info, err := r.GetAccountInfo(ctx, address)
	if err != nil {
		return nil, err
	}

	err = anchor.Decode(disc, info.Data, v)
	if err != nil {
		return nil, errors.EncodingError.WithFormat("load %v: %w", address, err)
	}
	return info, nil
}
