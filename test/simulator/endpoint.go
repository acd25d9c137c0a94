// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package simulator

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/anchor"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/endpoint"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/ledger"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/lz"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/msglib"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/pda"
)

// EndpointProgram executes the endpoint's OApp configuration instructions.
// Library configuration is applied to ULN accounts directly instead of by
// CPI.
type EndpointProgram struct {
	Deriver endpoint.Deriver
}

func NewEndpointProgram(program solana.PublicKey) *EndpointProgram {
	return &EndpointProgram{Deriver: endpoint.Deriver{Program: program}}
}

func (p *EndpointProgram) Invoke(tx *Tx, ix solana.Instruction) ([]byte, error) {
	data, err := ix.Data()
	if err != nil {
		return nil, err
	}
	if len(data) < anchor.DiscriminatorLength {
		return nil, errors.BadRequest.With("instruction data too short")
	}

	accounts := ix.Accounts()
	disc := anchor.Discriminator(data[:anchor.DiscriminatorLength])
	switch disc {
	case endpoint.InitSendLibraryDiscriminator:
		args := new(endpoint.InitSendLibraryParams)
		if err := p.decode(tx, accounts, disc, data, args, func() solana.PublicKey { return args.Sender }); err != nil {
			return nil, err
		}
		cfg := p.Deriver.SendLibraryConfig(args.Sender, args.Eid)
		return nil, p.create(tx, cfg.Key, endpoint.SendLibraryConfigDiscriminator, &endpoint.SendLibraryConfig{Bump: cfg.Bump})

	case endpoint.SetSendLibraryDiscriminator:
		args := new(endpoint.SetSendLibraryParams)
		if err := p.decode(tx, accounts, disc, data, args, func() solana.PublicKey { return args.Sender }); err != nil {
			return nil, err
		}
		if err := p.checkLibrary(tx, args.NewLib); err != nil {
			return nil, err
		}
		address := p.Deriver.SendLibraryConfig(args.Sender, args.Eid).Key
		cfg := new(endpoint.SendLibraryConfig)
		if err := tx.LoadAnchor(address, endpoint.SendLibraryConfigDiscriminator, cfg); err != nil {
			return nil, err
		}
		if cfg.MessageLib == args.NewLib {
			return nil, errors.Conflict.With("same value")
		}
		cfg.MessageLib = args.NewLib
		return nil, tx.PutAnchor(address, p.Deriver.Program, endpoint.SendLibraryConfigDiscriminator, cfg)

	case endpoint.InitReceiveLibraryDiscriminator:
		args := new(endpoint.InitReceiveLibraryParams)
		if err := p.decode(tx, accounts, disc, data, args, func() solana.PublicKey { return args.Receiver }); err != nil {
			return nil, err
		}
		cfg := p.Deriver.ReceiveLibraryConfig(args.Receiver, args.Eid)
		return nil, p.create(tx, cfg.Key, endpoint.ReceiveLibraryConfigDiscriminator, &endpoint.ReceiveLibraryConfig{Bump: cfg.Bump})

	case endpoint.SetReceiveLibraryDiscriminator:
		args := new(endpoint.SetReceiveLibraryParams)
		if err := p.decode(tx, accounts, disc, data, args, func() solana.PublicKey { return args.Receiver }); err != nil {
			return nil, err
		}
		if err := p.checkLibrary(tx, args.NewLib); err != nil {
			return nil, err
		}
		address := p.Deriver.ReceiveLibraryConfig(args.Receiver, args.Eid).Key
		cfg := new(endpoint.ReceiveLibraryConfig)
		if err := tx.LoadAnchor(address, endpoint.ReceiveLibraryConfigDiscriminator, cfg); err != nil {
			return nil, err
		}
		if cfg.MessageLib == args.NewLib {
			return nil, errors.Conflict.With("same value")
		}
		cfg.MessageLib = args.NewLib
		return nil, tx.PutAnchor(address, p.Deriver.Program, endpoint.ReceiveLibraryConfigDiscriminator, cfg)

	case endpoint.InitNonceDiscriminator:
		args := new(endpoint.InitNonceParams)
		if err := p.decode(tx, accounts, disc, data, args, func() solana.PublicKey { return args.LocalOApp }); err != nil {
			return nil, err
		}
		nonce := p.Deriver.Nonce(args.LocalOApp, args.RemoteEid, args.RemoteOApp)
		if err := p.create(tx, nonce.Key, endpoint.NonceDiscriminator, &endpoint.Nonce{Bump: nonce.Bump}); err != nil {
			return nil, err
		}
		pending := p.Deriver.PendingNonce(args.LocalOApp, args.RemoteEid, args.RemoteOApp)
		tx.Put(&ledger.AccountInfo{Address: pending.Key, Owner: p.Deriver.Program})
		return nil, nil

	case endpoint.InitConfigDiscriminator:
		args := new(endpoint.InitConfigParams)
		if err := p.decode(tx, accounts, disc, data, args, func() solana.PublicKey { return args.OApp }); err != nil {
			return nil, err
		}
		uln, err := p.library(tx, accounts)
		if err != nil {
			return nil, err
		}
		send := pda.MustFind(uln.ProgramID(), []byte(msglib.SendConfigSeed), pda.U32BE(args.Eid), args.OApp[:])
		if _, ok := tx.Get(send.Key); ok {
			return nil, errors.Conflict.WithFormat("account %v already in use", send.Key)
		}
		recv := pda.MustFind(uln.ProgramID(), []byte(msglib.ReceiveConfigSeed), pda.U32BE(args.Eid), args.OApp[:])
		err = tx.PutAnchor(send.Key, uln.ProgramID(), msglib.SendConfigDiscriminator, &msglib.SendConfig{Bump: send.Bump})
		if err != nil {
			return nil, err
		}
		return nil, tx.PutAnchor(recv.Key, uln.ProgramID(), msglib.ReceiveConfigDiscriminator, &msglib.ReceiveConfig{Bump: recv.Bump})

	case endpoint.SetConfigDiscriminator:
		args := new(endpoint.SetConfigParams)
		if err := p.decode(tx, accounts, disc, data, args, func() solana.PublicKey { return args.OApp }); err != nil {
			return nil, err
		}
		uln, err := p.library(tx, accounts)
		if err != nil {
			return nil, err
		}
		if args.ConfigType != endpoint.ConfigTypeExecutor {
			return nil, errors.BadRequest.WithFormat("unsupported config type %d", args.ConfigType)
		}
		executor := new(msglib.ExecutorConfig)
		if err := bin.NewBorshDecoder(args.Config).Decode(executor); err != nil {
			return nil, errors.EncodingError.Wrap(err)
		}
		address := uln.SendConfigAddress(args.OApp, args.Eid)
		cfg := new(msglib.SendConfig)
		if err := tx.LoadAnchor(address, msglib.SendConfigDiscriminator, cfg); err != nil {
			return nil, err
		}
		cfg.Executor = *executor
		return nil, tx.PutAnchor(address, uln.ProgramID(), msglib.SendConfigDiscriminator, cfg)

	default:
		return nil, errors.BadRequest.WithFormat("unsupported instruction %x", disc[:])
	}
}

// decode decodes the arguments and checks that the first account is the
// OApp's delegate and has signed.
func (p *EndpointProgram) decode(tx *Tx, accounts []*solana.AccountMeta, disc anchor.Discriminator, data []byte, args any, oapp func() solana.PublicKey) error {
	err := anchor.Decode(disc, data, args)
	if err != nil {
		return err
	}

	reg := new(endpoint.OAppRegistry)
	err = tx.LoadAnchor(p.Deriver.OAppRegistry(oapp()).Key, endpoint.OAppRegistryDiscriminator, reg)
	if err != nil {
		return err
	}
	if len(accounts) == 0 || !accounts[0].IsSigner || !accounts[0].PublicKey.Equals(reg.Delegate) {
		return errors.Unauthorized.WithFormat("signer is not the delegate of %v", oapp())
	}
	return expectAccount(accounts, 1, "OApp registry", p.Deriver.OAppRegistry(oapp()).Key)
}

func (p *EndpointProgram) create(tx *Tx, address solana.PublicKey, disc anchor.Discriminator, v any) error {
	if _, ok := tx.Get(address); ok {
		return errors.Conflict.WithFormat("account %v already in use", address)
	}
	return tx.PutAnchor(address, p.Deriver.Program, disc, v)
}

func (p *EndpointProgram) checkLibrary(tx *Tx, msgLib solana.PublicKey) error {
	info := new(endpoint.MessageLibInfo)
	err := tx.LoadAnchor(p.Deriver.MessageLibInfo(msgLib).Key, endpoint.MessageLibInfoDiscriminator, info)
	if err != nil {
		return errors.NotFound.WithFormat("library %v is not registered", msgLib)
	}
	return nil
}

// library checks the message library accounts of a configuration
// instruction and returns the library.
func (p *EndpointProgram) library(tx *Tx, accounts []*solana.AccountMeta) (*msglib.ULN, error) {
	if len(accounts) < 5 {
		return nil, errors.BadRequest.With("missing accounts")
	}
	msgLib, program := accounts[3].PublicKey, accounts[4].PublicKey
	err := p.checkLibrary(tx, msgLib)
	if err != nil {
		return nil, err
	}
	uln := msglib.NewULN(program, msglib.ULNVersion, nil, solana.PublicKey{})
	err = expectAccount(accounts, 3, "message library", uln.SettingsAddress())
	if err != nil {
		return nil, err
	}
	return uln, nil
}

// RegisterLibrary installs a message library program reporting version and
// registers its settings account with the endpoint. It returns the settings
// account.
func (l *Ledger) RegisterLibrary(endpointProgram, library solana.PublicKey, version *lz.Version) (solana.PublicKey, error) {
	d := endpoint.Deriver{Program: endpointProgram}
	msgLib := pda.MustFind(library, []byte(msglib.MessageLibSeed))

	l.Register(library, &LibraryProgram{Version: version})
	l.SetAccount(&ledger.AccountInfo{Address: msgLib.Key, Owner: library})

	info := d.MessageLibInfo(msgLib.Key)
	err := l.SetAnchorAccount(info.Key, endpointProgram, endpoint.MessageLibInfoDiscriminator, &endpoint.MessageLibInfo{
		MessageLibType: endpoint.MessageLibTypeSendAndReceive,
		Bump:           info.Bump,
		MessageLibBump: msgLib.Bump,
	})
	if err != nil {
		return solana.PublicKey{}, err
	}
	return msgLib.Key, nil
}
