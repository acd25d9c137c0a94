// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package msglib

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/lz"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/pda"
)

// MessageLibSeed is the seed of a library's settings account.
const MessageLibSeed = "MessageLib"

// Simple is the simple message library, which has no workers and charges
// a flat fee.
type Simple struct {
	program solana.PublicKey
	version lz.Version
}

var _ lz.Library = (*Simple)(nil)

func NewSimple(program solana.PublicKey, version lz.Version) *Simple {
	return &Simple{program, version}
}

func (s *Simple) Name() string                { return "simple" }
func (s *Simple) ProgramID() solana.PublicKey { return s.program }
func (s *Simple) Version() lz.Version         { return s.version }

func (s *Simple) SettingsAddress() solana.PublicKey {
	return pda.MustFind(s.program, []byte(MessageLibSeed)).Key
}

func (s *Simple) SendAccounts(_ context.Context, payer solana.PublicKey, _ lz.Path) (solana.AccountMetaSlice, error) {
	return solana.AccountMetaSlice{
		solana.NewAccountMeta(s.program, false, false),
		solana.NewAccountMeta(s.SettingsAddress(), true, false),
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	}, nil
}
