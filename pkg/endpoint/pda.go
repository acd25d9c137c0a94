// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package endpoint

import (
	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/pda"
)

const (
	SettingsSeed             = "Endpoint"
	OAppSeed                 = "OApp"
	SendLibraryConfigSeed    = "SendLibraryConfig"
	ReceiveLibraryConfigSeed = "ReceiveLibraryConfig"
	MessageLibSeed           = "MessageLib"
	NonceSeed                = "Nonce"
	PendingNonceSeed         = "PendingNonce"
	EventAuthoritySeed       = "__event_authority"
)

// Deriver derives the endpoint program's addresses.
type Deriver struct {
	Program solana.PublicKey
}

func (d Deriver) Settings() pda.Address {
	return pda.MustFind(d.Program, []byte(SettingsSeed))
}

func (d Deriver) OAppRegistry(oapp solana.PublicKey) pda.Address {
	return pda.MustFind(d.Program, []byte(OAppSeed), oapp[:])
}

func (d Deriver) SendLibraryConfig(oapp solana.PublicKey, dstEid uint32) pda.Address {
	return pda.MustFind(d.Program, []byte(SendLibraryConfigSeed), oapp[:], pda.U32BE(dstEid))
}

func (d Deriver) DefaultSendLibraryConfig(dstEid uint32) pda.Address {
	return pda.MustFind(d.Program, []byte(SendLibraryConfigSeed), pda.U32BE(dstEid))
}

func (d Deriver) ReceiveLibraryConfig(oapp solana.PublicKey, srcEid uint32) pda.Address {
	return pda.MustFind(d.Program, []byte(ReceiveLibraryConfigSeed), oapp[:], pda.U32BE(srcEid))
}

// MessageLibInfo derives the registration record of a message library,
// keyed by the library's settings account.
func (d Deriver) MessageLibInfo(msgLib solana.PublicKey) pda.Address {
	return pda.MustFind(d.Program, []byte(MessageLibSeed), msgLib[:])
}

func (d Deriver) Nonce(oapp solana.PublicKey, dstEid uint32, receiver [32]byte) pda.Address {
	return pda.MustFind(d.Program, []byte(NonceSeed), oapp[:], pda.U32BE(dstEid), receiver[:])
}

func (d Deriver) PendingNonce(oapp solana.PublicKey, dstEid uint32, receiver [32]byte) pda.Address {
	return pda.MustFind(d.Program, []byte(PendingNonceSeed), oapp[:], pda.U32BE(dstEid), receiver[:])
}

// EventAuthority derives the event authority of an Anchor program. It is
// shared by the endpoint and the message libraries.
func EventAuthority(program solana.PublicKey) pda.Address {
	return pda.MustFind(program, []byte(EventAuthoritySeed))
}

func (d Deriver) EventAuthority() pda.Address {
	return EventAuthority(d.Program)
}
