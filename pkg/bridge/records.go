// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package bridge

import (
	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/anchor"
)

var (
	StateDiscriminator  = anchor.AccountDiscriminator("Bridge")
	RemoteDiscriminator = anchor.AccountDiscriminator("Remote")
)

// GlobalConfig is the portfolio configuration stored with the bridge.
type GlobalConfig struct {
	Portfolio      solana.PublicKey
	MainnetRFQ     solana.PublicKey
	DefaultChainID uint32
}

// State is the bridge's on-chain record.
type State struct {
	EndpointProgram solana.PublicKey
	SolVaultBump    uint8
	Bump            uint8
	Admin           solana.PublicKey
	GlobalConfig    GlobalConfig
}

// Remote is the peer record of a destination.
type Remote struct {
	Address [32]byte
	Bump    uint8
}
