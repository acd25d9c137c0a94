// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package bridge

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge/instructions"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge/xfer"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/lz"
)

// AccountSource provides the remaining accounts for a path.
// [msglib.Strategy] implements it.
type AccountSource interface {
	RemainingAccountsFor(ctx context.Context, path lz.Path) (solana.AccountMetaSlice, error)
}

// Assembler builds send and quote instructions. The fixed accounts are
// derived; the remaining accounts come from the strategy and are appended
// exactly as returned.
type Assembler struct {
	deriver          PDADeriver
	endpointSettings solana.PublicKey
}

func NewAssembler(program, endpointSettings solana.PublicKey) *Assembler {
	return &Assembler{PDADeriver{program}, endpointSettings}
}

func (a *Assembler) BuildSend(ctx context.Context, path lz.Path, strategy AccountSource, message xfer.XFER) (*solana.GenericInstruction, error) {
	remaining, err := strategy.RemainingAccountsFor(ctx, path)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("remaining accounts for %v: %w", path, err)
	}

	return instructions.New(a.deriver.Program).
		Send(path.DstEid, message).
		WithRemote(a.deriver.Remote(path.DstEid).Key).
		WithBridge(a.deriver.Bridge().Key).
		WithEndpointSettings(a.endpointSettings).
		WithRemainingAccounts(remaining...).
		Build()
}

func (a *Assembler) BuildQuote(ctx context.Context, path lz.Path, strategy AccountSource, message xfer.XFER) (*solana.GenericInstruction, error) {
	remaining, err := strategy.RemainingAccountsFor(ctx, path)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("remaining accounts for %v: %w", path, err)
	}

	return instructions.New(a.deriver.Program).
		Quote(path.DstEid, path.Receiver, message).
		WithBridge(a.deriver.Bridge().Key).
		WithEndpointSettings(a.endpointSettings).
		WithRemainingAccounts(remaining...).
		Build()
}
