// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package bridge

import (
	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/pda"
)

const (
	BridgeSeed   = "Bridge"
	SolVaultSeed = "SolVault"
	RemoteSeed   = "Remote"
)

// PDADeriver derives the bridge program's addresses. Derivation is pure:
// the same inputs always produce the same address and bump.
type PDADeriver struct {
	Program solana.PublicKey
}

// Bridge derives the bridge's identity, the OApp registered with the
// endpoint.
func (d PDADeriver) Bridge() pda.Address {
	return pda.MustFind(d.Program, []byte(BridgeSeed))
}

// SolVault derives the bridge's native token vault.
func (d PDADeriver) SolVault() pda.Address {
	return pda.MustFind(d.Program, []byte(SolVaultSeed))
}

// Remote derives the peer record for a destination.
func (d PDADeriver) Remote(dstEid uint32) pda.Address {
	bridge := d.Bridge().Key
	return pda.MustFind(d.Program, []byte(RemoteSeed), bridge[:], pda.U32BE(dstEid))
}
