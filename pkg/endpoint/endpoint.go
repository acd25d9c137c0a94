// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package endpoint talks to the messaging protocol's endpoint program.
package endpoint

import (
	"context"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/internal/logging"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/ledger"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/lz"
)

// Options are the options for [New].
type Options struct {
	Ledger ledger.Ledger

	// BlockedLibrary is the settings account of the blocked message
	// library. A path configured with it has no usable library.
	BlockedLibrary solana.PublicKey

	Logger logging.Logger
}

// Endpoint implements [lz.Endpoint] by reading the endpoint program's
// accounts and simulating instructions.
type Endpoint struct {
	deriver Deriver
	ledger  ledger.Ledger
	blocked solana.PublicKey
	logger  logging.OptionalLogger
}

var _ lz.Endpoint = (*Endpoint)(nil)

func New(program solana.PublicKey, opts Options) *Endpoint {
	e := new(Endpoint)
	e.deriver = Deriver{program}
	e.ledger = opts.Ledger
	e.blocked = opts.BlockedLibrary
	e.logger.Set(opts.Logger, "module", "endpoint")
	return e
}

func (e *Endpoint) ProgramID() solana.PublicKey { return e.deriver.Program }

func (e *Endpoint) SettingsAddress() solana.PublicKey { return e.deriver.Settings().Key }

func (e *Endpoint) Deriver() Deriver { return e.deriver }

func (e *Endpoint) GetSendLibrary(ctx context.Context, oapp solana.PublicKey, dstEid uint32) (*lz.SendLibrary, error) {
	lib := new(lz.SendLibrary)

	// OApp specific configuration
	cfg := new(SendLibraryConfig)
	_, err := ledger.LoadAccount(ctx, e.ledger, e.deriver.SendLibraryConfig(oapp, dstEid).Key, SendLibraryConfigDiscriminator, cfg)
	switch {
	case err == nil && !cfg.MessageLib.IsZero():
		lib.MsgLib = cfg.MessageLib
	case err == nil, errors.Is(err, errors.NotFound):
		// Fall back to the default
		lib.IsDefault = true
	default:
		return nil, errors.UnknownError.WithFormat("load send library config: %w", err)
	}

	if lib.IsDefault {
		_, err = ledger.LoadAccount(ctx, e.ledger, e.deriver.DefaultSendLibraryConfig(dstEid).Key, SendLibraryConfigDiscriminator, cfg)
		switch {
		case err == nil:
			lib.MsgLib = cfg.MessageLib
		case errors.Is(err, errors.NotFound):
			e.logger.Debug("No send library", "oapp", oapp, "dst-eid", dstEid)
			return nil, nil
		default:
			return nil, errors.UnknownError.WithFormat("load default send library config: %w", err)
		}
	}

	if lib.MsgLib.IsZero() || lib.MsgLib.Equals(e.blocked) {
		e.logger.Debug("Send library is blocked", "oapp", oapp, "dst-eid", dstEid, "library", lib.MsgLib)
		return nil, nil
	}

	// The library program owns its settings account
	info, err := e.ledger.GetAccountInfo(ctx, lib.MsgLib)
	switch {
	case err == nil:
		lib.ProgramID = info.Owner
	case errors.Is(err, errors.NotFound):
		return nil, nil
	default:
		return nil, errors.UnknownError.WithFormat("load send library %v: %w", lib.MsgLib, err)
	}

	return lib, nil
}

func (e *Endpoint) GetMessageLibVersion(ctx context.Context, payer, library solana.PublicKey) (*lz.Version, error) {
	ix := solana.NewInstruction(library, solana.AccountMetaSlice{}, VersionDiscriminator[:])
	r, err := e.ledger.Simulate(ctx, payer, ix)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("query version of %v: %w", library, err)
	}

	b, err := r.ReturnData(library)
	switch {
	case err == nil:
	case errors.Is(err, errors.NotFound):
		return nil, nil
	default:
		return nil, err
	}

	v := new(lz.Version)
	err = bin.NewBorshDecoder(b).Decode(v)
	if err != nil {
		return nil, errors.EncodingError.WithFormat("decode version of %v: %w", library, err)
	}
	return v, nil
}

func (e *Endpoint) GetSendAccountsForCPI(ctx context.Context, payer solana.PublicKey, path lz.Path, library lz.Library) (solana.AccountMetaSlice, error) {
	oapp := solana.PublicKey(path.Sender)
	msgLib := library.SettingsAddress()

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(e.deriver.Program, false, false),
		solana.NewAccountMeta(oapp, false, false),
		solana.NewAccountMeta(library.ProgramID(), false, false),
		solana.NewAccountMeta(e.deriver.SendLibraryConfig(oapp, path.DstEid).Key, false, false),
		solana.NewAccountMeta(e.deriver.DefaultSendLibraryConfig(path.DstEid).Key, false, false),
		solana.NewAccountMeta(e.deriver.MessageLibInfo(msgLib).Key, false, false),
		solana.NewAccountMeta(e.deriver.Settings().Key, false, false),
		solana.NewAccountMeta(e.deriver.Nonce(oapp, path.DstEid, path.Receiver).Key, true, false),
		solana.NewAccountMeta(e.deriver.EventAuthority().Key, false, false),
		solana.NewAccountMeta(e.deriver.Program, false, false),
	}

	libAccounts, err := library.SendAccounts(ctx, payer, path)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("%s library accounts: %w", library.Name(), err)
	}
	return append(accounts, libAccounts...), nil
}

func (e *Endpoint) RegisterOAppAccounts(payer, oapp solana.PublicKey) solana.AccountMetaSlice {
	return solana.AccountMetaSlice{
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(oapp, false, true),
		solana.NewAccountMeta(e.deriver.OAppRegistry(oapp).Key, true, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(e.deriver.EventAuthority().Key, false, false),
		solana.NewAccountMeta(e.deriver.Program, false, false),
	}
}

// LoadSettings reads the endpoint's settings record.
func (e *Endpoint) LoadSettings(ctx context.Context) (*Settings, error) {
	s := new(Settings)
	_, err := ledger.LoadAccount(ctx, e.ledger, e.deriver.Settings().Key, EndpointSettingsDiscriminator, s)
	if err != nil {
		return nil, err
	}
	return s, nil
}
