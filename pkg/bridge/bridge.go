// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package bridge builds the portfolio bridge program's instructions and
// resolves the message path to a destination.
package bridge

import (
	"context"
	"sync/atomic"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/internal/logging"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge/instructions"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge/xfer"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/endpoint"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/ledger"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/lz"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/msglib"
)

// PeerState is the registration state of a destination.
type PeerState int

const (
	Unregistered PeerState = iota
	Registered
)

func (s PeerState) String() string {
	if s == Registered {
		return "registered"
	}
	return "unregistered"
}

// Options are the options for [New].
type Options struct {
	Ledger ledger.Ledger

	// SrcEid is the endpoint id of this chain.
	SrcEid uint32

	// NewEndpoint creates the endpoint collaborator for the endpoint
	// program the bridge is registered with. Defaults to an [endpoint.Endpoint]
	// reading from Ledger.
	NewEndpoint func(program solana.PublicKey) lz.Endpoint

	// Libraries is the message library dispatch table. Defaults to
	// [msglib.DefaultTable] with PriceFeed.
	Libraries msglib.Table
	PriceFeed solana.PublicKey

	Metrics *msglib.Metrics
	Logger  logging.Logger
}

// InitParams are the parameters of [Bridge.InitBridge].
type InitParams struct {
	EndpointProgram solana.PublicKey
	Portfolio       solana.PublicKey
	MainnetRFQ      solana.PublicKey
	DefaultChainID  uint32
}

// Bridge is the client of a bridge program.
type Bridge struct {
	deriver  PDADeriver
	ledger   ledger.Ledger
	srcEid   uint32
	registry *Registry
	opts     Options
	logger   logging.OptionalLogger

	handle atomic.Pointer[endpointHandle]
}

// endpointHandle bundles the collaborators that depend on the endpoint
// program recorded in the bridge's state.
type endpointHandle struct {
	endpoint  lz.Endpoint
	resolver  *msglib.Resolver
	assembler *Assembler
}

func New(program solana.PublicKey, opts Options) *Bridge {
	b := new(Bridge)
	b.deriver = PDADeriver{program}
	b.ledger = opts.Ledger
	b.srcEid = opts.SrcEid
	b.registry = NewRegistry(program, opts.Ledger)
	b.logger.Set(opts.Logger, "module", "bridge")

	if opts.NewEndpoint == nil {
		opts.NewEndpoint = func(program solana.PublicKey) lz.Endpoint {
			return endpoint.New(program, endpoint.Options{Ledger: opts.Ledger, Logger: opts.Logger})
		}
	}
	if opts.Libraries == nil {
		opts.Libraries = msglib.DefaultTable(opts.Ledger, opts.PriceFeed)
	}
	b.opts = opts
	return b
}

func (b *Bridge) Program() solana.PublicKey { return b.deriver.Program }
func (b *Bridge) Deriver() PDADeriver       { return b.deriver }
func (b *Bridge) Registry() *Registry       { return b.registry }

// State loads the bridge's on-chain record.
func (b *Bridge) State(ctx context.Context) (*State, error) {
	s := new(State)
	_, err := ledger.LoadAccount(ctx, b.ledger, b.deriver.Bridge().Key, StateDiscriminator, s)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("load bridge state: %w", err)
	}
	return s, nil
}

// Endpoint returns the endpoint the bridge is registered with. The handle
// is loaded from the bridge's state on first use. Concurrent first calls
// may each load it; the first to finish wins and a failed load is not
// kept.
func (b *Bridge) Endpoint(ctx context.Context) (lz.Endpoint, error) {
	h, err := b.endpointHandle(ctx)
	if err != nil {
		return nil, err
	}
	return h.endpoint, nil
}

func (b *Bridge) endpointHandle(ctx context.Context) (*endpointHandle, error) {
	if h := b.handle.Load(); h != nil {
		return h, nil
	}

	state, err := b.State(ctx)
	if err != nil {
		return nil, err
	}

	h := new(endpointHandle)
	h.endpoint = b.opts.NewEndpoint(state.EndpointProgram)
	h.resolver = msglib.NewResolver(h.endpoint, msglib.Options{
		Table:   b.opts.Libraries,
		Metrics: b.opts.Metrics,
		Logger:  b.opts.Logger,
	})
	h.assembler = NewAssembler(b.deriver.Program, h.endpoint.SettingsAddress())

	if !b.handle.CompareAndSwap(nil, h) {
		return b.handle.Load(), nil
	}
	b.logger.Debug("Loaded endpoint", "program", state.EndpointProgram)
	return h, nil
}

// InitBridge builds the instruction that creates the bridge and registers
// it with the endpoint. It returns nil if the bridge already exists.
func (b *Bridge) InitBridge(ctx context.Context, payer solana.PublicKey, params InitParams) (*solana.GenericInstruction, error) {
	bridge := b.deriver.Bridge().Key
	ok, err := ledger.Exists(ctx, b.ledger, bridge)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("check bridge: %w", err)
	}
	if ok {
		b.logger.Info("Bridge is already initialized", "bridge", bridge)
		return nil, nil
	}

	ep := b.opts.NewEndpoint(params.EndpointProgram)
	return instructions.New(b.deriver.Program).InitBridge().
		WithAuthority(payer).
		WithBridge(bridge).
		WithSolVault(b.deriver.SolVault().Key).
		WithPortfolio(params.Portfolio).
		WithMainnetRFQ(params.MainnetRFQ).
		WithDefaultChainID(params.DefaultChainID).
		WithEndpointRegistration(params.EndpointProgram, ep.RegisterOAppAccounts(payer, bridge)).
		Build()
}

// GetPeer returns the peer registered for the destination, and false if
// there is none.
func (b *Bridge) GetPeer(ctx context.Context, dstEid uint32) ([32]byte, bool, error) {
	return b.registry.GetPeer(ctx, dstEid)
}

// PeerState returns the registration state of the destination.
func (b *Bridge) PeerState(ctx context.Context, dstEid uint32) (PeerState, error) {
	_, ok, err := b.registry.GetPeer(ctx, dstEid)
	switch {
	case err != nil:
		return Unregistered, err
	case ok:
		return Registered, nil
	default:
		return Unregistered, nil
	}
}

// SetPeer builds the instruction that registers or replaces the peer.
func (b *Bridge) SetPeer(admin solana.PublicKey, dstEid uint32, peer [32]byte) (*solana.GenericInstruction, error) {
	return b.registry.SetPeer(admin, dstEid, peer)
}

// EnsurePeer builds the instruction that registers the peer, or returns
// nil if the stored peer already equals it. Only a missing record counts
// as unregistered; other read failures are returned.
func (b *Bridge) EnsurePeer(ctx context.Context, admin solana.PublicKey, dstEid uint32, peer [32]byte) (*solana.GenericInstruction, error) {
	current, ok, err := b.registry.GetPeer(ctx, dstEid)
	if err != nil {
		return nil, err
	}
	if ok && current == peer {
		b.logger.Info("Peer is unchanged", "dst-eid", dstEid, "peer", FormatPeer(peer))
		return nil, nil
	}
	return b.registry.SetPeer(admin, dstEid, peer)
}

// Path returns the message path to the destination. It fails with
// PeerNotConfigured if no peer is registered.
func (b *Bridge) Path(ctx context.Context, dstEid uint32) (lz.Path, error) {
	peer, ok, err := b.registry.GetPeer(ctx, dstEid)
	if err != nil {
		return lz.Path{}, err
	}
	if !ok {
		return lz.Path{}, errors.PeerNotConfigured.WithFormat("no peer is configured for %d", dstEid)
	}

	return lz.Path{
		SrcEid:   b.srcEid,
		DstEid:   dstEid,
		Sender:   b.deriver.Bridge().Key,
		Receiver: peer,
	}, nil
}

// Resolve returns the message library strategy for the destination.
func (b *Bridge) Resolve(ctx context.Context, payer solana.PublicKey, dstEid uint32) (*msglib.Strategy, error) {
	h, err := b.endpointHandle(ctx)
	if err != nil {
		return nil, err
	}
	return h.resolver.Resolve(ctx, payer, b.deriver.Bridge().Key, dstEid)
}

// prepare reads the peer and resolves the library. Both are read on every
// call. The peer is read first so a destination without one fails with
// PeerNotConfigured even if the bridge is not initialized.
func (b *Bridge) prepare(ctx context.Context, payer solana.PublicKey, dstEid uint32) (*endpointHandle, lz.Path, *msglib.Strategy, error) {
	path, err := b.Path(ctx, dstEid)
	if err != nil {
		return nil, lz.Path{}, nil, err
	}

	h, err := b.endpointHandle(ctx)
	if err != nil {
		return nil, lz.Path{}, nil, err
	}

	strategy, err := h.resolver.Resolve(ctx, payer, path.Sender, dstEid)
	if err != nil {
		return nil, lz.Path{}, nil, err
	}
	return h, path, strategy, nil
}

// Send builds the instruction that sends the message to the destination's
// peer.
func (b *Bridge) Send(ctx context.Context, payer solana.PublicKey, dstEid uint32, message xfer.XFER) (*solana.GenericInstruction, error) {
	h, path, strategy, err := b.prepare(ctx, payer, dstEid)
	if err != nil {
		return nil, err
	}

	ix, err := h.assembler.BuildSend(ctx, path, strategy, message)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("Built send", "dst-eid", dstEid, "library", strategy.Name(), "accounts", len(ix.Accounts()))
	return ix, nil
}

// Quote builds the instruction that quotes the fee for sending the message
// to the destination's peer.
func (b *Bridge) Quote(ctx context.Context, payer solana.PublicKey, dstEid uint32, message xfer.XFER) (*solana.GenericInstruction, error) {
	h, path, strategy, err := b.prepare(ctx, payer, dstEid)
	if err != nil {
		return nil, err
	}
	return h.assembler.BuildQuote(ctx, path, strategy, message)
}

// SimulateQuote simulates the quote instruction and decodes the fee it
// returns.
func (b *Bridge) SimulateQuote(ctx context.Context, payer solana.PublicKey, dstEid uint32, message xfer.XFER) (*lz.MessagingFee, error) {
	ix, err := b.Quote(ctx, payer, dstEid, message)
	if err != nil {
		return nil, err
	}

	r, err := b.ledger.Simulate(ctx, payer, ix)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("simulate quote: %w", err)
	}

	data, err := r.ReturnData(b.deriver.Program)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("quote result: %w", err)
	}

	fee := new(lz.MessagingFee)
	err = bin.NewBorshDecoder(data).Decode(fee)
	if err != nil {
		return nil, errors.EncodingError.WithFormat("decode quote result: %w", err)
	}
	return fee, nil
}
