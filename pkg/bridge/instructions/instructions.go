// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package instructions builds and decodes the bridge program's
// instructions.
package instructions

import (
	"bytes"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/anchor"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge/xfer"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
)

var (
	InitBridgeDiscriminator = anchor.InstructionDiscriminator("init_bridge")
	SetRemoteDiscriminator  = anchor.InstructionDiscriminator("set_remote")
	SendDiscriminator       = anchor.InstructionDiscriminator("send")
	QuoteDiscriminator      = anchor.InstructionDiscriminator("quote")
)

type InitBridgeParams struct {
	Portfolio       solana.PublicKey
	MainnetRFQ      solana.PublicKey
	DefaultChainID  uint32
	EndpointProgram solana.PublicKey
}

type SetRemoteParams struct {
	DstEid uint32
	Remote [32]byte
}

type SendParams struct {
	DstEid  uint32
	Message xfer.XFER
}

type QuoteParams struct {
	DstEid   uint32
	Receiver [32]byte
	Message  xfer.XFER
}

// Decode decodes instruction data produced by one of the builders. It
// returns one of *InitBridgeParams, *SetRemoteParams, *SendParams, or
// *QuoteParams.
func Decode(data []byte) (any, error) {
	if len(data) < anchor.DiscriminatorLength {
		return nil, errors.EncodingError.WithFormat("instruction data too short: %d bytes", len(data))
	}

	var v any
	disc := anchor.Discriminator(data[:anchor.DiscriminatorLength])
	switch disc {
	case InitBridgeDiscriminator:
		v = new(InitBridgeParams)
	case SetRemoteDiscriminator:
		v = new(SetRemoteParams)
	case SendDiscriminator:
		v = new(SendParams)
	case QuoteDiscriminator:
		v = new(QuoteParams)
	default:
		return nil, errors.EncodingError.WithFormat("unknown instruction %x", disc[:])
	}

	err := anchor.Decode(disc, data, v)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	return v, nil
}

// Name returns the instruction name for the discriminator at the start of
// data, or an empty string.
func Name(data []byte) string {
	if len(data) < anchor.DiscriminatorLength {
		return ""
	}
	switch {
	case bytes.HasPrefix(data, InitBridgeDiscriminator[:]):
		return "init_bridge"
	case bytes.HasPrefix(data, SetRemoteDiscriminator[:]):
		return "set_remote"
	case bytes.HasPrefix(data, SendDiscriminator[:]):
		return "send"
	case bytes.HasPrefix(data, QuoteDiscriminator[:]):
		return "quote"
	}
	return ""
}

// Builder builds instructions for a bridge program.
type Builder struct {
	parser
	program solana.PublicKey
}

// New returns a builder for the given program. The program may be a
// [solana.PublicKey] or a base58 string.
func New(program any) Builder {
	var b Builder
	b.program = b.parsePublicKey(program)
	b.require("program", b.program)
	return b
}

func (b Builder) build(disc anchor.Discriminator, accounts solana.AccountMetaSlice, args any) (*solana.GenericInstruction, error) {
	if !b.ok() {
		return nil, b.err()
	}

	data, err := anchor.Encode(disc, args)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	return solana.NewInstruction(b.program, accounts, data), nil
}

type InitBridgeBuilder struct {
	b         Builder
	authority solana.PublicKey
	bridge    solana.PublicKey
	solVault  solana.PublicKey
	register  solana.AccountMetaSlice
	params    InitBridgeParams
}

func (b Builder) InitBridge() InitBridgeBuilder {
	return InitBridgeBuilder{b: b}
}

func (b InitBridgeBuilder) WithAuthority(v any) InitBridgeBuilder {
	b.authority = b.b.parsePublicKey(v)
	return b
}

func (b InitBridgeBuilder) WithBridge(v any) InitBridgeBuilder {
	b.bridge = b.b.parsePublicKey(v)
	return b
}

func (b InitBridgeBuilder) WithSolVault(v any) InitBridgeBuilder {
	b.solVault = b.b.parsePublicKey(v)
	return b
}

func (b InitBridgeBuilder) WithPortfolio(v any) InitBridgeBuilder {
	b.params.Portfolio = b.b.parsePublicKey(v)
	return b
}

func (b InitBridgeBuilder) WithMainnetRFQ(v any) InitBridgeBuilder {
	b.params.MainnetRFQ = b.b.parsePublicKey(v)
	return b
}

func (b InitBridgeBuilder) WithDefaultChainID(id uint32) InitBridgeBuilder {
	b.params.DefaultChainID = id
	return b
}

// WithEndpointRegistration sets the endpoint program and the accounts of
// its OApp registration instruction. The accounts are appended after the
// endpoint program with their signer flags cleared, since the bridge
// program signs for its own PDA.
func (b InitBridgeBuilder) WithEndpointRegistration(program any, accounts solana.AccountMetaSlice) InitBridgeBuilder {
	b.params.EndpointProgram = b.b.parsePublicKey(program)
	b.register = make(solana.AccountMetaSlice, 0, len(accounts))
	for _, a := range accounts {
		b.register = append(b.register, solana.NewAccountMeta(a.PublicKey, a.IsWritable, false))
	}
	return b
}

func (b InitBridgeBuilder) Build() (*solana.GenericInstruction, error) {
	b.b.require("authority", b.authority)
	b.b.require("bridge", b.bridge)
	b.b.require("SOL vault", b.solVault)
	b.b.require("portfolio", b.params.Portfolio)
	b.b.require("mainnet RFQ", b.params.MainnetRFQ)
	b.b.require("endpoint program", b.params.EndpointProgram)
	if len(b.register) == 0 {
		b.b.errorf(errors.BadRequest, "missing endpoint registration accounts")
	}

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(b.authority, true, true),
		solana.NewAccountMeta(b.bridge, true, false),
		solana.NewAccountMeta(b.solVault, true, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(b.params.EndpointProgram, false, false),
	}
	accounts = append(accounts, b.register...)
	return b.b.build(InitBridgeDiscriminator, accounts, &b.params)
}

type SetRemoteBuilder struct {
	b      Builder
	admin  solana.PublicKey
	bridge solana.PublicKey
	remote solana.PublicKey
	params SetRemoteParams
}

func (b Builder) SetRemote(dstEid uint32, address any) SetRemoteBuilder {
	c := SetRemoteBuilder{b: b}
	c.params.DstEid = dstEid
	c.params.Remote = c.b.parseBytes32(address)
	return c
}

func (b SetRemoteBuilder) WithAdmin(v any) SetRemoteBuilder {
	b.admin = b.b.parsePublicKey(v)
	return b
}

func (b SetRemoteBuilder) WithBridge(v any) SetRemoteBuilder {
	b.bridge = b.b.parsePublicKey(v)
	return b
}

func (b SetRemoteBuilder) WithRemote(v any) SetRemoteBuilder {
	b.remote = b.b.parsePublicKey(v)
	return b
}

func (b SetRemoteBuilder) Build() (*solana.GenericInstruction, error) {
	b.b.require("admin", b.admin)
	b.b.require("bridge", b.bridge)
	b.b.require("remote", b.remote)

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(b.admin, true, true),
		solana.NewAccountMeta(b.bridge, false, false),
		solana.NewAccountMeta(b.remote, true, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	}
	return b.b.build(SetRemoteDiscriminator, accounts, &b.params)
}

type SendBuilder struct {
	b         Builder
	remote    solana.PublicKey
	bridge    solana.PublicKey
	endpoint  solana.PublicKey
	remaining solana.AccountMetaSlice
	params    SendParams
}

func (b Builder) Send(dstEid uint32, message xfer.XFER) SendBuilder {
	c := SendBuilder{b: b}
	c.params.DstEid = dstEid
	c.params.Message = message
	return c
}

func (b SendBuilder) WithRemote(v any) SendBuilder {
	b.remote = b.b.parsePublicKey(v)
	return b
}

func (b SendBuilder) WithBridge(v any) SendBuilder {
	b.bridge = b.b.parsePublicKey(v)
	return b
}

func (b SendBuilder) WithEndpointSettings(v any) SendBuilder {
	b.endpoint = b.b.parsePublicKey(v)
	return b
}

// WithRemainingAccounts appends accounts after the fixed accounts, in
// order.
func (b SendBuilder) WithRemainingAccounts(accounts ...*solana.AccountMeta) SendBuilder {
	b.remaining = append(b.remaining[:len(b.remaining):len(b.remaining)], accounts...)
	return b
}

func (b SendBuilder) Build() (*solana.GenericInstruction, error) {
	b.b.require("remote", b.remote)
	b.b.require("bridge", b.bridge)
	b.b.require("endpoint settings", b.endpoint)
	validateMessage(&b.b.parser, &b.params.Message)
	if len(b.remaining) == 0 {
		b.b.errorf(errors.BadRequest, "missing remaining accounts")
	}

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(b.remote, false, false),
		solana.NewAccountMeta(b.bridge, false, false),
		solana.NewAccountMeta(b.endpoint, false, false),
	}
	accounts = append(accounts, b.remaining...)
	return b.b.build(SendDiscriminator, accounts, &b.params)
}

type QuoteBuilder struct {
	b         Builder
	bridge    solana.PublicKey
	endpoint  solana.PublicKey
	remaining solana.AccountMetaSlice
	params    QuoteParams
}

func (b Builder) Quote(dstEid uint32, receiver any, message xfer.XFER) QuoteBuilder {
	c := QuoteBuilder{b: b}
	c.params.DstEid = dstEid
	c.params.Receiver = c.b.parseBytes32(receiver)
	c.params.Message = message
	return c
}

func (b QuoteBuilder) WithBridge(v any) QuoteBuilder {
	b.bridge = b.b.parsePublicKey(v)
	return b
}

func (b QuoteBuilder) WithEndpointSettings(v any) QuoteBuilder {
	b.endpoint = b.b.parsePublicKey(v)
	return b
}

func (b QuoteBuilder) WithRemainingAccounts(accounts ...*solana.AccountMeta) QuoteBuilder {
	b.remaining = append(b.remaining[:len(b.remaining):len(b.remaining)], accounts...)
	return b
}

func (b QuoteBuilder) Build() (*solana.GenericInstruction, error) {
	b.b.require("bridge", b.bridge)
	b.b.require("endpoint settings", b.endpoint)
	validateMessage(&b.b.parser, &b.params.Message)
	if len(b.remaining) == 0 {
		b.b.errorf(errors.BadRequest, "missing remaining accounts")
	}

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(b.bridge, false, false),
		solana.NewAccountMeta(b.endpoint, false, false),
	}
	accounts = append(accounts, b.remaining...)
	return b.b.build(QuoteDiscriminator, accounts, &b.params)
}

func validateMessage(p *parser, m *xfer.XFER) {
	if !m.Transaction.Valid() {
		p.errorf(errors.BadRequest, "invalid message: %v", m.Transaction)
	}
	if !m.MessageType.Valid() {
		p.errorf(errors.BadRequest, "invalid message: %v", m.MessageType)
	}
}

// Describe returns a one-line description of the instruction, for logging.
func Describe(ix *solana.GenericInstruction) string {
	data, _ := ix.Data()
	name := Name(data)
	if name == "" {
		name = "unknown"
	}
	return fmt.Sprintf("%s(%v, %d accounts, %d bytes)", name, ix.ProgramID(), len(ix.Accounts()), len(data))
}
