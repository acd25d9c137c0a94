// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package endpoint

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/anchor"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/ledger"
)

var (
	InitSendLibraryDiscriminator    = anchor.InstructionDiscriminator("init_send_library")
	SetSendLibraryDiscriminator     = anchor.InstructionDiscriminator("set_send_library")
	InitReceiveLibraryDiscriminator = anchor.InstructionDiscriminator("init_receive_library")
	SetReceiveLibraryDiscriminator  = anchor.InstructionDiscriminator("set_receive_library")
	InitNonceDiscriminator          = anchor.InstructionDiscriminator("init_nonce")
	InitConfigDiscriminator         = anchor.InstructionDiscriminator("init_config")
	SetConfigDiscriminator          = anchor.InstructionDiscriminator("set_config")
)

// Message library configuration types.
const (
	ConfigTypeExecutor   uint32 = 1
	ConfigTypeSendUln    uint32 = 2
	ConfigTypeReceiveUln uint32 = 3
)

type InitSendLibraryParams struct {
	Sender solana.PublicKey
	Eid    uint32
}

type SetSendLibraryParams struct {
	Sender solana.PublicKey
	Eid    uint32
	NewLib solana.PublicKey
}

type InitReceiveLibraryParams struct {
	Receiver solana.PublicKey
	Eid      uint32
}

type SetReceiveLibraryParams struct {
	Receiver    solana.PublicKey
	Eid         uint32
	NewLib      solana.PublicKey
	GracePeriod uint64
}

type InitNonceParams struct {
	LocalOApp  solana.PublicKey
	RemoteEid  uint32
	RemoteOApp [32]byte
}

type InitConfigParams struct {
	OApp solana.PublicKey
	Eid  uint32
}

type SetConfigParams struct {
	OApp       solana.PublicKey
	Eid        uint32
	ConfigType uint32
	Config     []byte
}

func (e *Endpoint) instruction(disc anchor.Discriminator, accounts solana.AccountMetaSlice, args any) (*solana.GenericInstruction, error) {
	data, err := anchor.Encode(disc, args)
	if err != nil {
		return nil, errors.EncodingError.Wrap(err)
	}
	return solana.NewInstruction(e.deriver.Program, accounts, data), nil
}

// InitSendLibrary creates the OApp's send library configuration for the
// destination. Until it is set the endpoint's default applies.
func (e *Endpoint) InitSendLibrary(delegate, oapp solana.PublicKey, dstEid uint32) (*solana.GenericInstruction, error) {
	return e.instruction(InitSendLibraryDiscriminator, solana.AccountMetaSlice{
		solana.NewAccountMeta(delegate, true, true),
		solana.NewAccountMeta(e.deriver.OAppRegistry(oapp).Key, false, false),
		solana.NewAccountMeta(e.deriver.SendLibraryConfig(oapp, dstEid).Key, true, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	}, &InitSendLibraryParams{oapp, dstEid})
}

// SetSendLibrary sets the OApp's send library for the destination. msgLib
// is the library's settings account.
func (e *Endpoint) SetSendLibrary(delegate, oapp solana.PublicKey, dstEid uint32, msgLib solana.PublicKey) (*solana.GenericInstruction, error) {
	return e.instruction(SetSendLibraryDiscriminator, solana.AccountMetaSlice{
		solana.NewAccountMeta(delegate, false, true),
		solana.NewAccountMeta(e.deriver.OAppRegistry(oapp).Key, false, false),
		solana.NewAccountMeta(e.deriver.SendLibraryConfig(oapp, dstEid).Key, true, false),
		solana.NewAccountMeta(e.deriver.MessageLibInfo(msgLib).Key, false, false),
		solana.NewAccountMeta(e.deriver.EventAuthority().Key, false, false),
		solana.NewAccountMeta(e.deriver.Program, false, false),
	}, &SetSendLibraryParams{oapp, dstEid, msgLib})
}

func (e *Endpoint) InitReceiveLibrary(delegate, oapp solana.PublicKey, srcEid uint32) (*solana.GenericInstruction, error) {
	return e.instruction(InitReceiveLibraryDiscriminator, solana.AccountMetaSlice{
		solana.NewAccountMeta(delegate, true, true),
		solana.NewAccountMeta(e.deriver.OAppRegistry(oapp).Key, false, false),
		solana.NewAccountMeta(e.deriver.ReceiveLibraryConfig(oapp, srcEid).Key, true, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	}, &InitReceiveLibraryParams{oapp, srcEid})
}

// SetReceiveLibrary sets the OApp's receive library for the source with no
// grace period for the previous library.
func (e *Endpoint) SetReceiveLibrary(delegate, oapp solana.PublicKey, srcEid uint32, msgLib solana.PublicKey) (*solana.GenericInstruction, error) {
	return e.instruction(SetReceiveLibraryDiscriminator, solana.AccountMetaSlice{
		solana.NewAccountMeta(delegate, false, true),
		solana.NewAccountMeta(e.deriver.OAppRegistry(oapp).Key, false, false),
		solana.NewAccountMeta(e.deriver.ReceiveLibraryConfig(oapp, srcEid).Key, true, false),
		solana.NewAccountMeta(e.deriver.MessageLibInfo(msgLib).Key, false, false),
		solana.NewAccountMeta(e.deriver.EventAuthority().Key, false, false),
		solana.NewAccountMeta(e.deriver.Program, false, false),
	}, &SetReceiveLibraryParams{Receiver: oapp, Eid: srcEid, NewLib: msgLib})
}

// InitNonce creates the nonce records of the path to receiver.
func (e *Endpoint) InitNonce(delegate, oapp solana.PublicKey, dstEid uint32, receiver [32]byte) (*solana.GenericInstruction, error) {
	return e.instruction(InitNonceDiscriminator, solana.AccountMetaSlice{
		solana.NewAccountMeta(delegate, true, true),
		solana.NewAccountMeta(e.deriver.OAppRegistry(oapp).Key, false, false),
		solana.NewAccountMeta(e.deriver.Nonce(oapp, dstEid, receiver).Key, true, false),
		solana.NewAccountMeta(e.deriver.PendingNonce(oapp, dstEid, receiver).Key, true, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	}, &InitNonceParams{oapp, dstEid, receiver})
}

// InitConfig creates the OApp's configuration in a message library. The
// library's own accounts are forwarded to it after the endpoint's.
func (e *Endpoint) InitConfig(delegate, oapp solana.PublicKey, eid uint32, msgLib, libProgram solana.PublicKey, libAccounts solana.AccountMetaSlice) (*solana.GenericInstruction, error) {
	accounts := e.configAccounts(delegate, oapp, msgLib, libProgram)
	return e.instruction(InitConfigDiscriminator, append(accounts, libAccounts...), &InitConfigParams{oapp, eid})
}

// SetConfig sets one of the OApp's message library configurations. config
// is the Borsh encoding of the value for configType.
func (e *Endpoint) SetConfig(delegate, oapp solana.PublicKey, eid uint32, msgLib, libProgram solana.PublicKey, libAccounts solana.AccountMetaSlice, configType uint32, config []byte) (*solana.GenericInstruction, error) {
	accounts := e.configAccounts(delegate, oapp, msgLib, libProgram)
	return e.instruction(SetConfigDiscriminator, append(accounts, libAccounts...), &SetConfigParams{oapp, eid, configType, config})
}

func (e *Endpoint) configAccounts(delegate, oapp, msgLib, libProgram solana.PublicKey) solana.AccountMetaSlice {
	return solana.AccountMetaSlice{
		solana.NewAccountMeta(delegate, false, true),
		solana.NewAccountMeta(e.deriver.OAppRegistry(oapp).Key, false, false),
		solana.NewAccountMeta(e.deriver.MessageLibInfo(msgLib).Key, false, false),
		solana.NewAccountMeta(msgLib, false, false),
		solana.NewAccountMeta(libProgram, false, false),
	}
}

// OAppSendLibrary returns the OApp's own send library configuration for the
// destination, ignoring the default, or nil if it has not been created.
func (e *Endpoint) OAppSendLibrary(ctx context.Context, oapp solana.PublicKey, dstEid uint32) (*SendLibraryConfig, error) {
	cfg := new(SendLibraryConfig)
	return loadOptional(ctx, e.ledger, e.deriver.SendLibraryConfig(oapp, dstEid).Key, SendLibraryConfigDiscriminator, cfg)
}

// OAppReceiveLibrary returns the OApp's own receive library configuration
// for the source, or nil if it has not been created.
func (e *Endpoint) OAppReceiveLibrary(ctx context.Context, oapp solana.PublicKey, srcEid uint32) (*ReceiveLibraryConfig, error) {
	cfg := new(ReceiveLibraryConfig)
	return loadOptional(ctx, e.ledger, e.deriver.ReceiveLibraryConfig(oapp, srcEid).Key, ReceiveLibraryConfigDiscriminator, cfg)
}

// HasNonce returns true if the nonce records of the path exist.
func (e *Endpoint) HasNonce(ctx context.Context, oapp solana.PublicKey, dstEid uint32, receiver [32]byte) (bool, error) {
	return ledger.Exists(ctx, e.ledger, e.deriver.Nonce(oapp, dstEid, receiver).Key)
}

func loadOptional[T any](ctx context.Context, r ledger.Reader, address solana.PublicKey, disc anchor.Discriminator, v *T) (*T, error) {
	_, err := ledger.LoadAccount(ctx, r, address, disc, v)
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, errors.NotFound):
		return nil, nil
	default:
		return nil, err
	}
}
