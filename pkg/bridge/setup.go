// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package bridge

import (
	"context"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/endpoint"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/msglib"
)

// DefaultMaxMessageSize is the executor's maximum message size used when
// [PathConfig] does not set one.
const DefaultMaxMessageSize = 10000

// PathConfig is the configuration [Bridge.ConfigurePath] applies to a path.
type PathConfig struct {
	// Library is the ULN program, used as both the send and the receive
	// library.
	Library solana.PublicKey

	// Executor is the executor program.
	Executor solana.PublicKey

	MaxMessageSize uint32
}

// SetupStep is one instruction of a path setup.
type SetupStep struct {
	Name        string
	Instruction *solana.GenericInstruction
}

// pathSetup holds what every step of a path setup reads.
type pathSetup struct {
	admin    solana.PublicKey
	oapp     solana.PublicKey
	eid      uint32
	peer     [32]byte
	endpoint *endpoint.Endpoint
	uln      *msglib.ULN
	msgLib   solana.PublicKey
	executor msglib.ExecutorConfig
}

// ConfigurePath returns the instructions that configure the path to the
// destination's peer: the OApp's send and receive libraries, the path's
// nonce, and the library's send configuration with the executor. Each step
// reads the current state and is omitted when there is nothing to change,
// so an empty result means the path is already configured. The peer must be
// registered.
func (b *Bridge) ConfigurePath(ctx context.Context, admin solana.PublicKey, dstEid uint32, cfg PathConfig) ([]SetupStep, error) {
	if cfg.Library.IsZero() {
		return nil, errors.BadRequest.With("missing message library")
	}
	if cfg.Executor.IsZero() {
		return nil, errors.BadRequest.With("missing executor")
	}
	if cfg.MaxMessageSize == 0 {
		cfg.MaxMessageSize = DefaultMaxMessageSize
	}

	peer, ok, err := b.registry.GetPeer(ctx, dstEid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.PeerNotConfigured.WithFormat("no peer is configured for %d", dstEid)
	}

	state, err := b.State(ctx)
	if err != nil {
		return nil, err
	}

	s := new(pathSetup)
	s.admin = admin
	s.oapp = b.deriver.Bridge().Key
	s.eid = dstEid
	s.peer = peer
	s.endpoint = endpoint.New(state.EndpointProgram, endpoint.Options{Ledger: b.ledger, Logger: b.opts.Logger})
	s.uln = msglib.NewULN(cfg.Library, msglib.ULNVersion, b.ledger, b.opts.PriceFeed)
	s.msgLib = s.uln.SettingsAddress()
	s.executor = msglib.ExecutorConfig{
		MaxMessageSize: cfg.MaxMessageSize,
		Executor:       msglib.ExecutorConfigAddress(cfg.Executor),
	}

	var steps []SetupStep
	for _, step := range []struct {
		name string
		fn   func(context.Context) (*solana.GenericInstruction, error)
	}{
		{"init-send-library", s.initSendLibrary},
		{"set-send-library", s.setSendLibrary},
		{"init-receive-library", s.initReceiveLibrary},
		{"set-receive-library", s.setReceiveLibrary},
		{"init-nonce", s.initNonce},
		{"init-uln-config", s.initUlnConfig},
		{"set-executor", s.setExecutor},
	} {
		ix, err := step.fn(ctx)
		if err != nil {
			return nil, errors.UnknownError.WithFormat("%s: %w", step.name, err)
		}
		if ix == nil {
			continue
		}
		steps = append(steps, SetupStep{step.name, ix})
	}

	b.logger.Debug("Path setup", "dst-eid", dstEid, "steps", len(steps))
	return steps, nil
}

func (s *pathSetup) initSendLibrary(ctx context.Context) (*solana.GenericInstruction, error) {
	cfg, err := s.endpoint.OAppSendLibrary(ctx, s.oapp, s.eid)
	if err != nil || cfg != nil {
		return nil, err
	}
	return s.endpoint.InitSendLibrary(s.admin, s.oapp, s.eid)
}

func (s *pathSetup) setSendLibrary(ctx context.Context) (*solana.GenericInstruction, error) {
	cfg, err := s.endpoint.OAppSendLibrary(ctx, s.oapp, s.eid)
	if err != nil {
		return nil, err
	}
	if cfg != nil && cfg.MessageLib == s.msgLib {
		return nil, nil
	}
	return s.endpoint.SetSendLibrary(s.admin, s.oapp, s.eid, s.msgLib)
}

func (s *pathSetup) initReceiveLibrary(ctx context.Context) (*solana.GenericInstruction, error) {
	cfg, err := s.endpoint.OAppReceiveLibrary(ctx, s.oapp, s.eid)
	if err != nil || cfg != nil {
		return nil, err
	}
	return s.endpoint.InitReceiveLibrary(s.admin, s.oapp, s.eid)
}

func (s *pathSetup) setReceiveLibrary(ctx context.Context) (*solana.GenericInstruction, error) {
	cfg, err := s.endpoint.OAppReceiveLibrary(ctx, s.oapp, s.eid)
	if err != nil {
		return nil, err
	}
	if cfg != nil && cfg.MessageLib == s.msgLib {
		return nil, nil
	}
	return s.endpoint.SetReceiveLibrary(s.admin, s.oapp, s.eid, s.msgLib)
}

func (s *pathSetup) initNonce(ctx context.Context) (*solana.GenericInstruction, error) {
	ok, err := s.endpoint.HasNonce(ctx, s.oapp, s.eid, s.peer)
	if err != nil || ok {
		return nil, err
	}
	return s.endpoint.InitNonce(s.admin, s.oapp, s.eid, s.peer)
}

func (s *pathSetup) initUlnConfig(ctx context.Context) (*solana.GenericInstruction, error) {
	cfg, err := s.uln.OAppSendConfig(ctx, s.oapp, s.eid)
	if err != nil || cfg != nil {
		return nil, err
	}
	accounts := s.uln.InitConfigAccounts(s.endpoint.SettingsAddress(), s.admin, s.oapp, s.eid)
	return s.endpoint.InitConfig(s.admin, s.oapp, s.eid, s.msgLib, s.uln.ProgramID(), accounts)
}

func (s *pathSetup) setExecutor(ctx context.Context) (*solana.GenericInstruction, error) {
	cfg, err := s.uln.OAppSendConfig(ctx, s.oapp, s.eid)
	if err != nil {
		return nil, err
	}
	if cfg != nil && cfg.Executor == s.executor {
		return nil, nil
	}

	value, err := bin.MarshalBorsh(&s.executor)
	if err != nil {
		return nil, errors.EncodingError.Wrap(err)
	}
	accounts := s.uln.SetConfigAccounts(s.endpoint.SettingsAddress(), s.oapp, s.eid)
	return s.endpoint.SetConfig(s.admin, s.oapp, s.eid, s.msgLib, s.uln.ProgramID(), accounts, endpoint.ConfigTypeExecutor, value)
}
