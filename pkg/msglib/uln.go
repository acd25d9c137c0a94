// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package msglib

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/anchor"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/ledger"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/lz"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/pda"
)

const (
	SendConfigSeed     = "SendConfig"
	ReceiveConfigSeed  = "ReceiveConfig"
	PriceFeedSeed      = "PriceFeed"
	EventAuthoritySeed = "__event_authority"
	ExecutorConfigSeed = "ExecutorConfig"
)

var (
	SendConfigDiscriminator    = anchor.AccountDiscriminator("SendConfig")
	ReceiveConfigDiscriminator = anchor.AccountDiscriminator("ReceiveConfig")
)

// ExecutorConfigAddress derives the config account of an executor program,
// the account a path's executor configuration refers to.
func ExecutorConfigAddress(executor solana.PublicKey) solana.PublicKey {
	return pda.MustFind(executor, []byte(ExecutorConfigSeed)).Key
}

// UlnConfig is the verifier configuration of a path.
type UlnConfig struct {
	Confirmations        uint64
	RequiredDvnCount     uint8
	OptionalDvnCount     uint8
	OptionalDvnThreshold uint8
	RequiredDvns         []solana.PublicKey
	OptionalDvns         []solana.PublicKey
}

// ExecutorConfig is the executor configuration of a path. Executor is the
// executor's config account.
type ExecutorConfig struct {
	MaxMessageSize uint32
	Executor       solana.PublicKey
}

// SendConfig is the ULN send configuration of an OApp, or the default for
// a destination.
type SendConfig struct {
	Bump     uint8
	Uln      UlnConfig
	Executor ExecutorConfig
}

// ReceiveConfig is the ULN receive configuration of an OApp, or the default
// for a source.
type ReceiveConfig struct {
	Bump uint8
	Uln  UlnConfig
}

// Merge returns the effective configuration: fields the OApp leaves unset
// are taken from the default.
func (c *SendConfig) Merge(def *SendConfig) *SendConfig {
	if c == nil {
		return def
	}

	m := new(SendConfig)
	m.Bump = c.Bump
	m.Uln = c.Uln
	if c.Uln.Confirmations == 0 {
		m.Uln.Confirmations = def.Uln.Confirmations
	}
	if c.Uln.RequiredDvnCount == 0 {
		m.Uln.RequiredDvnCount = def.Uln.RequiredDvnCount
		m.Uln.RequiredDvns = def.Uln.RequiredDvns
	}
	if c.Uln.OptionalDvnCount == 0 {
		m.Uln.OptionalDvnCount = def.Uln.OptionalDvnCount
		m.Uln.OptionalDvnThreshold = def.Uln.OptionalDvnThreshold
		m.Uln.OptionalDvns = def.Uln.OptionalDvns
	}
	m.Executor = c.Executor
	if c.Executor.MaxMessageSize == 0 {
		m.Executor.MaxMessageSize = def.Executor.MaxMessageSize
	}
	if c.Executor.Executor.IsZero() {
		m.Executor.Executor = def.Executor.Executor
	}
	return m
}

// Workers returns the executor followed by the required then optional
// DVNs.
func (c *SendConfig) Workers() []solana.PublicKey {
	w := make([]solana.PublicKey, 0, 1+len(c.Uln.RequiredDvns)+len(c.Uln.OptionalDvns))
	w = append(w, c.Executor.Executor)
	w = append(w, c.Uln.RequiredDvns...)
	w = append(w, c.Uln.OptionalDvns...)
	return w
}

// ULN is the ultra light node message library. Its accounts depend on the
// path's executor and DVNs, which are read from the ledger.
type ULN struct {
	program   solana.PublicKey
	version   lz.Version
	reader    ledger.Reader
	priceFeed solana.PublicKey
}

var _ lz.Library = (*ULN)(nil)

// NewULN returns the ULN library. Worker fees are priced by priceFeed.
func NewULN(program solana.PublicKey, version lz.Version, reader ledger.Reader, priceFeed solana.PublicKey) *ULN {
	return &ULN{program, version, reader, priceFeed}
}

func (u *ULN) Name() string                { return "uln" }
func (u *ULN) ProgramID() solana.PublicKey { return u.program }
func (u *ULN) Version() lz.Version         { return u.version }

func (u *ULN) SettingsAddress() solana.PublicKey {
	return pda.MustFind(u.program, []byte(MessageLibSeed)).Key
}

func (u *ULN) SendConfigAddress(oapp solana.PublicKey, dstEid uint32) solana.PublicKey {
	return pda.MustFind(u.program, []byte(SendConfigSeed), pda.U32BE(dstEid), oapp[:]).Key
}

func (u *ULN) DefaultSendConfigAddress(dstEid uint32) solana.PublicKey {
	return pda.MustFind(u.program, []byte(SendConfigSeed), pda.U32BE(dstEid)).Key
}

func (u *ULN) ReceiveConfigAddress(oapp solana.PublicKey, srcEid uint32) solana.PublicKey {
	return pda.MustFind(u.program, []byte(ReceiveConfigSeed), pda.U32BE(srcEid), oapp[:]).Key
}

func (u *ULN) DefaultReceiveConfigAddress(srcEid uint32) solana.PublicKey {
	return pda.MustFind(u.program, []byte(ReceiveConfigSeed), pda.U32BE(srcEid)).Key
}

// OAppSendConfig returns the OApp's own send configuration for the
// destination, or nil if it has not been created.
func (u *ULN) OAppSendConfig(ctx context.Context, oapp solana.PublicKey, dstEid uint32) (*SendConfig, error) {
	cfg := new(SendConfig)
	_, err := ledger.LoadAccount(ctx, u.reader, u.SendConfigAddress(oapp, dstEid), SendConfigDiscriminator, cfg)
	switch {
	case err == nil:
		return cfg, nil
	case errors.Is(err, errors.NotFound):
		return nil, nil
	default:
		return nil, errors.UnknownError.WithFormat("load send config for %d: %w", dstEid, err)
	}
}

// InitConfigAccounts returns the accounts the endpoint forwards to the
// library when it creates the OApp's configuration. The endpoint settings
// account signs by CPI.
func (u *ULN) InitConfigAccounts(endpointSettings, payer, oapp solana.PublicKey, eid uint32) solana.AccountMetaSlice {
	return solana.AccountMetaSlice{
		solana.NewAccountMeta(endpointSettings, false, false),
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(u.SettingsAddress(), false, false),
		solana.NewAccountMeta(u.SendConfigAddress(oapp, eid), true, false),
		solana.NewAccountMeta(u.ReceiveConfigAddress(oapp, eid), true, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	}
}

// SetConfigAccounts returns the accounts the endpoint forwards to the
// library when it changes the OApp's configuration.
func (u *ULN) SetConfigAccounts(endpointSettings, oapp solana.PublicKey, eid uint32) solana.AccountMetaSlice {
	return solana.AccountMetaSlice{
		solana.NewAccountMeta(endpointSettings, false, false),
		solana.NewAccountMeta(u.SettingsAddress(), false, false),
		solana.NewAccountMeta(u.SendConfigAddress(oapp, eid), true, false),
		solana.NewAccountMeta(u.ReceiveConfigAddress(oapp, eid), true, false),
		solana.NewAccountMeta(u.DefaultSendConfigAddress(eid), false, false),
		solana.NewAccountMeta(u.DefaultReceiveConfigAddress(eid), false, false),
		solana.NewAccountMeta(pda.MustFind(u.program, []byte(EventAuthoritySeed)).Key, false, false),
		solana.NewAccountMeta(u.program, false, false),
	}
}

// EffectiveSendConfig reads the OApp and default send configurations and
// merges them.
func (u *ULN) EffectiveSendConfig(ctx context.Context, oapp solana.PublicKey, dstEid uint32) (*SendConfig, error) {
	def := new(SendConfig)
	_, err := ledger.LoadAccount(ctx, u.reader, u.DefaultSendConfigAddress(dstEid), SendConfigDiscriminator, def)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("load default send config for %d: %w", dstEid, err)
	}

	cfg := new(SendConfig)
	_, err = ledger.LoadAccount(ctx, u.reader, u.SendConfigAddress(oapp, dstEid), SendConfigDiscriminator, cfg)
	switch {
	case err == nil:
		return cfg.Merge(def), nil
	case errors.Is(err, errors.NotFound):
		return def, nil
	default:
		return nil, errors.UnknownError.WithFormat("load send config for %d: %w", dstEid, err)
	}
}

func (u *ULN) SendAccounts(ctx context.Context, payer solana.PublicKey, path lz.Path) (solana.AccountMetaSlice, error) {
	oapp := solana.PublicKey(path.Sender)
	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(u.program, false, false),
		solana.NewAccountMeta(u.SettingsAddress(), false, false),
		solana.NewAccountMeta(u.SendConfigAddress(oapp, path.DstEid), false, false),
		solana.NewAccountMeta(u.DefaultSendConfigAddress(path.DstEid), false, false),
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(pda.MustFind(u.program, []byte(EventAuthoritySeed)).Key, false, false),
		solana.NewAccountMeta(u.program, false, false),
	}

	cfg, err := u.EffectiveSendConfig(ctx, oapp, path.DstEid)
	if err != nil {
		return nil, err
	}
	if cfg.Executor.Executor.IsZero() {
		return nil, errors.NotFound.WithFormat("no executor configured for %d", path.DstEid)
	}

	priceFeedConfig := pda.MustFind(u.priceFeed, []byte(PriceFeedSeed)).Key
	for _, worker := range cfg.Workers() {
		// The worker's program owns its config account
		info, err := u.reader.GetAccountInfo(ctx, worker)
		if err != nil {
			return nil, errors.UnknownError.WithFormat("load worker %v: %w", worker, err)
		}

		accounts = append(accounts,
			solana.NewAccountMeta(info.Owner, false, false),
			solana.NewAccountMeta(worker, true, false),
			solana.NewAccountMeta(u.priceFeed, false, false),
			solana.NewAccountMeta(priceFeedConfig, false, false),
		)
	}
	return accounts, nil
}
