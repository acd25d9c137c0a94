// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package endpoint

import (
	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/anchor"
)

var (
	SendLibraryConfigDiscriminator    = anchor.AccountDiscriminator("SendLibraryConfig")
	MessageLibInfoDiscriminator       = anchor.AccountDiscriminator("MessageLibInfo")
	EndpointSettingsDiscriminator     = anchor.AccountDiscriminator("EndpointSettings")
	ReceiveLibraryConfigDiscriminator = anchor.AccountDiscriminator("ReceiveLibraryConfig")
	OAppRegistryDiscriminator         = anchor.AccountDiscriminator("OAppRegistry")
	NonceDiscriminator                = anchor.AccountDiscriminator("Nonce")
	VersionDiscriminator              = anchor.InstructionDiscriminator("version")
)

// SendLibraryConfig is the send library configured for an OApp and
// destination, or the default for a destination.
type SendLibraryConfig struct {
	MessageLib solana.PublicKey
	Bump       uint8
}

// MessageLibType is the direction a library is registered for.
type MessageLibType uint8

const (
	MessageLibTypeSend MessageLibType = iota
	MessageLibTypeReceive
	MessageLibTypeSendAndReceive
)

func (t MessageLibType) CanSend() bool {
	return t == MessageLibTypeSend || t == MessageLibTypeSendAndReceive
}

// MessageLibInfo is the endpoint's registration record for a library.
type MessageLibInfo struct {
	MessageLibType MessageLibType
	Bump           uint8
	MessageLibBump uint8
}

// Settings is the endpoint's settings record.
type Settings struct {
	Eid         uint32
	Bump        uint8
	Admin       solana.PublicKey
	LzTokenMint *solana.PublicKey `bin:"optional"`
}

// Timeout is the grace period during which a replaced receive library is
// still accepted.
type Timeout struct {
	MessageLib solana.PublicKey
	Expiry     uint64
}

// ReceiveLibraryConfig is the receive library configured for an OApp and
// source.
type ReceiveLibraryConfig struct {
	MessageLib solana.PublicKey
	Timeout    *Timeout `bin:"optional"`
	Bump       uint8
}

// OAppRegistry is the endpoint's registration record for an OApp. The
// delegate may change the OApp's configuration.
type OAppRegistry struct {
	Delegate solana.PublicKey
	Bump     uint8
}

// Nonce is the message nonce state of a path.
type Nonce struct {
	Bump          uint8
	OutboundNonce uint64
	InboundNonce  uint64
}
