// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package bridge

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge/instructions"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/ledger"
)

// Registry reads and writes peer records.
type Registry struct {
	deriver PDADeriver
	reader  ledger.Reader
}

func NewRegistry(program solana.PublicKey, reader ledger.Reader) *Registry {
	return &Registry{PDADeriver{program}, reader}
}

// GetPeer returns the peer registered for the destination. It returns
// false if no peer is registered. Read failures other than a missing
// record are returned.
func (r *Registry) GetPeer(ctx context.Context, dstEid uint32) ([32]byte, bool, error) {
	remote := new(Remote)
	_, err := ledger.LoadAccount(ctx, r.reader, r.deriver.Remote(dstEid).Key, RemoteDiscriminator, remote)
	switch {
	case err == nil:
		return remote.Address, true, nil
	case errors.Is(err, errors.NotFound):
		return [32]byte{}, false, nil
	default:
		return [32]byte{}, false, errors.UnknownError.WithFormat("load peer for %d: %w", dstEid, err)
	}
}

// SetPeer builds an instruction that creates or overwrites the peer record
// for the destination. It does not compare against the stored value; see
// [Bridge.EnsurePeer]. The zero address is rejected.
func (r *Registry) SetPeer(admin solana.PublicKey, dstEid uint32, peer [32]byte) (*solana.GenericInstruction, error) {
	if peer == [32]byte{} {
		return nil, errors.BadRequest.WithFormat("peer for %d is the zero address", dstEid)
	}
	return instructions.New(r.deriver.Program).
		SetRemote(dstEid, peer).
		WithAdmin(admin).
		WithBridge(r.deriver.Bridge().Key).
		WithRemote(r.deriver.Remote(dstEid).Key).
		Build()
}
