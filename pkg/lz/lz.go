// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package lz defines the contracts between the bridge client and the
// messaging protocol's endpoint program and message libraries.
package lz

//go:generate go run github.com/vektra/mockery/v2@v2.42.1

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
)

// Path identifies a message path from a sender on the source endpoint to a
// receiver on the destination endpoint. A Path is a value and is not
// modified after it is constructed.
type Path struct {
	SrcEid   uint32
	DstEid   uint32
	Sender   [32]byte
	Receiver [32]byte
}

func (p Path) String() string {
	return fmt.Sprintf("%d:%x -> %d:%x", p.SrcEid, p.Sender[:4], p.DstEid, p.Receiver[:4])
}

// ReceiverHex returns the receiver as 0x-prefixed hex.
func (p Path) ReceiverHex() string { return "0x" + hex.EncodeToString(p.Receiver[:]) }

// Version is a message library's version descriptor.
type Version struct {
	Major           uint64
	Minor           uint8
	EndpointVersion uint8
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.EndpointVersion)
}

// SendLibrary describes the send library configured for a path.
type SendLibrary struct {
	// MsgLib is the library's settings account.
	MsgLib solana.PublicKey

	// ProgramID is the program that owns MsgLib.
	ProgramID solana.PublicKey

	// IsDefault is set when the OApp has no library of its own and the
	// endpoint's default library applies.
	IsDefault bool
}

// MessagingFee is the fee quoted for sending a message.
type MessagingFee struct {
	NativeFee  uint64
	LzTokenFee uint64
}

// Library is a message library implementation. It contributes the accounts
// the endpoint forwards to the library when a message is sent or quoted.
type Library interface {
	// Name is a short human readable name, such as "simple" or "uln".
	Name() string

	// ProgramID returns the library program.
	ProgramID() solana.PublicKey

	// SettingsAddress returns the library's settings account, the
	// account the endpoint's send library configuration refers to.
	SettingsAddress() solana.PublicKey

	// Version returns the version triple the library was selected for.
	Version() Version

	// SendAccounts returns the library's own accounts for the path, in the
	// order the library program expects them.
	SendAccounts(ctx context.Context, payer solana.PublicKey, path Path) (solana.AccountMetaSlice, error)
}

// Endpoint is the messaging protocol's endpoint program, as seen by the
// bridge client.
type Endpoint interface {
	// ProgramID returns the endpoint program.
	ProgramID() solana.PublicKey

	// SettingsAddress returns the endpoint's settings account.
	SettingsAddress() solana.PublicKey

	// GetSendLibrary returns the send library configured for the OApp and
	// destination. It returns nil if no library is configured or the
	// configured library is blocked.
	GetSendLibrary(ctx context.Context, oapp solana.PublicKey, dstEid uint32) (*SendLibrary, error)

	// GetMessageLibVersion returns the version reported by the library
	// program, or nil if the library does not report one.
	GetMessageLibVersion(ctx context.Context, payer, library solana.PublicKey) (*Version, error)

	// GetSendAccountsForCPI returns the ordered account list the OApp must
	// pass to the endpoint's send (or quote) instruction for the path,
	// including the library's accounts.
	GetSendAccountsForCPI(ctx context.Context, payer solana.PublicKey, path Path, library Library) (solana.AccountMetaSlice, error)

	// RegisterOAppAccounts returns the accounts of the endpoint's OApp
	// registration instruction.
	RegisterOAppAccounts(payer, oapp solana.PublicKey) solana.AccountMetaSlice
}

// UnsupportedVersionError is returned when a library reports a version that
// has no strategy. It carries the raw descriptor.
type UnsupportedVersionError struct {
	Library solana.PublicKey
	Version *Version
}

func (e *UnsupportedVersionError) Error() string {
	if e.Version == nil {
		return fmt.Sprintf("unsupported message library version: library %v did not report a version", e.Library)
	}
	return fmt.Sprintf("unsupported message library version: library %v reported {major: %d, minor: %d, endpointVersion: %d}",
		e.Library, e.Version.Major, e.Version.Minor, e.Version.EndpointVersion)
}

func (e *UnsupportedVersionError) StatusCode() errors.Status { return errors.UnsupportedLibraryVersion }

func (e *UnsupportedVersionError) Is(target error) bool {
	return target == errors.UnsupportedLibraryVersion
}
