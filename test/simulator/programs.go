// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package simulator

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge/instructions"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/endpoint"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/ledger"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/lz"
)

// BridgeProgram executes the bridge program's instructions. Send records
// the message instead of forwarding it; quote returns Fee.
type BridgeProgram struct {
	Deriver bridge.PDADeriver
	Fee     lz.MessagingFee
	Sent    []*instructions.SendParams
}

func NewBridgeProgram(program solana.PublicKey) *BridgeProgram {
	return &BridgeProgram{Deriver: bridge.PDADeriver{Program: program}}
}

func (p *BridgeProgram) Invoke(tx *Tx, ix solana.Instruction) ([]byte, error) {
	data, err := ix.Data()
	if err != nil {
		return nil, err
	}
	args, err := instructions.Decode(data)
	if err != nil {
		return nil, err
	}

	accounts := ix.Accounts()
	switch args := args.(type) {
	case *instructions.InitBridgeParams:
		return nil, p.initBridge(tx, accounts, args)
	case *instructions.SetRemoteParams:
		return nil, p.setRemote(tx, accounts, args)
	case *instructions.SendParams:
		return nil, p.send(tx, accounts, args)
	case *instructions.QuoteParams:
		return p.quote(tx, accounts)
	default:
		return nil, errors.BadRequest.WithFormat("unsupported instruction %T", args)
	}
}

func expectAccount(accounts []*solana.AccountMeta, i int, name string, want solana.PublicKey) error {
	if len(accounts) <= i {
		return errors.BadRequest.WithFormat("missing %s account", name)
	}
	if !accounts[i].PublicKey.Equals(want) {
		return errors.BadRequest.WithFormat("%s: want %v, got %v", name, want, accounts[i].PublicKey)
	}
	return nil
}

func (p *BridgeProgram) initBridge(tx *Tx, accounts []*solana.AccountMeta, args *instructions.InitBridgeParams) error {
	b, v := p.Deriver.Bridge(), p.Deriver.SolVault()
	if len(accounts) < 5 {
		return errors.BadRequest.With("missing accounts")
	}
	for _, err := range []error{
		expectAccount(accounts, 1, "bridge", b.Key),
		expectAccount(accounts, 2, "SOL vault", v.Key),
		expectAccount(accounts, 4, "endpoint program", args.EndpointProgram),
	} {
		if err != nil {
			return err
		}
	}
	if _, ok := tx.Get(b.Key); ok {
		return errors.Conflict.WithFormat("account %v already in use", b.Key)
	}

	state := &bridge.State{
		EndpointProgram: args.EndpointProgram,
		SolVaultBump:    v.Bump,
		Bump:            b.Bump,
		Admin:           accounts[0].PublicKey,
		GlobalConfig: bridge.GlobalConfig{
			Portfolio:      args.Portfolio,
			MainnetRFQ:     args.MainnetRFQ,
			DefaultChainID: args.DefaultChainID,
		},
	}
	tx.Put(&ledger.AccountInfo{Address: v.Key, Owner: p.Deriver.Program})
	err := tx.PutAnchor(b.Key, p.Deriver.Program, bridge.StateDiscriminator, state)
	if err != nil {
		return err
	}

	// Registration with the endpoint makes the admin the OApp's delegate
	reg := endpoint.Deriver{Program: args.EndpointProgram}.OAppRegistry(b.Key)
	return tx.PutAnchor(reg.Key, args.EndpointProgram, endpoint.OAppRegistryDiscriminator, &endpoint.OAppRegistry{
		Delegate: state.Admin,
		Bump:     reg.Bump,
	})
}

func (p *BridgeProgram) setRemote(tx *Tx, accounts []*solana.AccountMeta, args *instructions.SetRemoteParams) error {
	state := new(bridge.State)
	err := tx.LoadAnchor(p.Deriver.Bridge().Key, bridge.StateDiscriminator, state)
	if err != nil {
		return err
	}

	remote := p.Deriver.Remote(args.DstEid)
	for _, err := range []error{
		expectAccount(accounts, 0, "admin", state.Admin),
		expectAccount(accounts, 1, "bridge", p.Deriver.Bridge().Key),
		expectAccount(accounts, 2, "remote", remote.Key),
	} {
		if err != nil {
			return errors.Unauthorized.Wrap(err)
		}
	}

	return tx.PutAnchor(remote.Key, p.Deriver.Program, bridge.RemoteDiscriminator, &bridge.Remote{
		Address: args.Remote,
		Bump:    remote.Bump,
	})
}

func (p *BridgeProgram) send(tx *Tx, accounts []*solana.AccountMeta, args *instructions.SendParams) error {
	remote := p.Deriver.Remote(args.DstEid)
	err := expectAccount(accounts, 0, "remote", remote.Key)
	if err != nil {
		return err
	}
	err = tx.LoadAnchor(remote.Key, bridge.RemoteDiscriminator, new(bridge.Remote))
	if err != nil {
		return err
	}
	p.Sent = append(p.Sent, args)
	return nil
}

func (p *BridgeProgram) quote(tx *Tx, accounts []*solana.AccountMeta) ([]byte, error) {
	err := expectAccount(accounts, 0, "bridge", p.Deriver.Bridge().Key)
	if err != nil {
		return nil, err
	}
	if _, ok := tx.Get(p.Deriver.Bridge().Key); !ok {
		return nil, errors.NotFound.With("bridge is not initialized")
	}
	return bin.MarshalBorsh(&p.Fee)
}

// LibraryProgram answers a message library's version query. A nil
// Version returns nothing.
type LibraryProgram struct {
	Version *lz.Version
}

func (p *LibraryProgram) Invoke(_ *Tx, ix solana.Instruction) ([]byte, error) {
	data, err := ix.Data()
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(data, endpoint.VersionDiscriminator[:]) {
		return nil, errors.BadRequest.With("unsupported instruction")
	}
	if p.Version == nil {
		return nil, nil
	}
	return bin.MarshalBorsh(p.Version)
}

// ConfigureSendLibrary installs a message library reporting version and
// configures it as the send library of oapp for the destination, or as the
// destination's default if oapp is zero. It returns the library's settings
// account.
func (l *Ledger) ConfigureSendLibrary(endpointProgram, oapp solana.PublicKey, dstEid uint32, library solana.PublicKey, version *lz.Version) (solana.PublicKey, error) {
	msgLib, err := l.RegisterLibrary(endpointProgram, library, version)
	if err != nil {
		return solana.PublicKey{}, err
	}

	d := endpoint.Deriver{Program: endpointProgram}
	cfg := d.DefaultSendLibraryConfig(dstEid)
	if !oapp.IsZero() {
		cfg = d.SendLibraryConfig(oapp, dstEid)
	}
	err = l.SetAnchorAccount(cfg.Key, endpointProgram, endpoint.SendLibraryConfigDiscriminator, &endpoint.SendLibraryConfig{
		MessageLib: msgLib,
		Bump:       cfg.Bump,
	})
	if err != nil {
		return solana.PublicKey{}, err
	}
	return msgLib, nil
}
