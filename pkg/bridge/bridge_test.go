// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package bridge_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/portfolio-bridge/internal/logging"
	. "gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge/instructions"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge/xfer"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/endpoint"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/lz"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/msglib"
	"gitlab.com/accumulatenetwork/portfolio-bridge/test/simulator"
)

var (
	bridgeProgram   = solana.MustPublicKeyFromBase58("DD12vMyLdwszDCAzLhsUPwBmzJXv611dUCPhqwpZQYG4")
	endpointProgram = solana.MustPublicKeyFromBase58("76y77prsiCMvXMjuoZ5VRrhG5qYBrUMYTE5WgHqgjEn6")
	mainnetRFQ      = solana.MustPublicKeyFromBase58("CUmdZmnaTZh8g7oFPbQxh3GHPtSVz9Wyw1RXxmUeUxeQ")
	ulnProgram      = solana.MustPublicKeyFromBase58("7a4WjyR8VZ7yZz5XJAKm39BUGn5iT9CKcv2pmG9tdXVH")
	executorProgram = solana.MustPublicKeyFromBase58("6doghB248px58JSSwG4qejQ46kFMW4AMj7vzJnWZHNZn")
)

const (
	srcEid = 40168
	dstEid = 40267
)

func key(b byte) solana.PublicKey {
	var k solana.PublicKey
	k[0] = b
	k[31] = b
	return k
}

func peer(t *testing.T) [32]byte {
	p, err := ParsePeer("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	require.NoError(t, err)
	return p
}

func message(t *testing.T) xfer.XFER {
	symbol, err := xfer.PadSymbol("USDC")
	require.NoError(t, err)
	return xfer.New(xfer.Deposit, key(9), symbol, 1_000_000, 1700000000)
}

type harness struct {
	*testing.T
	sim     *simulator.Ledger
	program *simulator.BridgeProgram
	bridge  *Bridge
	admin   solana.PublicKey
}

func newHarness(t *testing.T) *harness {
	logger := logging.NewTestLogger(t)
	h := &harness{T: t}
	h.sim = simulator.New(logger)
	h.program = simulator.NewBridgeProgram(bridgeProgram)
	h.sim.Register(bridgeProgram, h.program)
	h.bridge = New(bridgeProgram, Options{Ledger: h.sim, SrcEid: srcEid, Logger: logger})
	h.admin = solana.NewWallet().PublicKey()
	return h
}

func (h *harness) execute(ixs ...solana.Instruction) {
	h.Helper()
	_, err := h.sim.Execute(context.Background(), []solana.PublicKey{h.admin}, ixs...)
	require.NoError(h, err)
}

var initParams = InitParams{
	EndpointProgram: endpointProgram,
	Portfolio:       key(1),
	MainnetRFQ:      mainnetRFQ,
	DefaultChainID:  12,
}

func (h *harness) init() {
	h.Helper()
	ix, err := h.bridge.InitBridge(context.Background(), h.admin, initParams)
	require.NoError(h, err)
	require.NotNil(h, ix)
	h.execute(ix)
}

func (h *harness) setPeer(p [32]byte) {
	h.Helper()
	ix, err := h.bridge.SetPeer(h.admin, dstEid, p)
	require.NoError(h, err)
	h.execute(ix)
}

func (h *harness) configureLibrary(version lz.Version) solana.PublicKey {
	h.Helper()
	lib, err := h.sim.ConfigureSendLibrary(endpointProgram, solana.PublicKey{}, dstEid, key(7), &version)
	require.NoError(h, err)
	return lib
}

func TestDerivation(t *testing.T) {
	d := PDADeriver{Program: bridgeProgram}

	b := d.Bridge()
	assert.Equal(t, "BmmRy2hjqxeMERH3R4arTdohBCC7cjhqPNiAq52iGpNj", b.Key.String())
	assert.Equal(t, uint8(254), b.Bump)

	v := d.SolVault()
	assert.Equal(t, "9SYDYN3zBAYi2saSNutKNcP1SPuEkM4Hb1e2YiuRbp1n", v.Key.String())
	assert.Equal(t, uint8(254), v.Bump)

	r := d.Remote(dstEid)
	assert.Equal(t, "E1Pf3NsC2TdnXrv5Q3NaDEvmhhtKofGFXbTdhULD6qfs", r.Key.String())
	assert.Equal(t, uint8(254), r.Bump)

	// Deterministic and distinct per destination
	assert.Equal(t, r, d.Remote(dstEid))
	assert.NotEqual(t, r.Key, d.Remote(dstEid+1).Key)
	assert.NotEqual(t, r.Key, PDADeriver{Program: key(1)}.Remote(dstEid).Key)
}

func TestParsePeer(t *testing.T) {
	evm := "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	long := "0x" + common.Bytes2Hex(make([]byte, 33))

	cases := []struct {
		Name  string
		Input string
		Error bool
	}{
		{"EVM", evm, false},
		{"Full", "0x" + "11" + common.Bytes2Hex(make([]byte, 31)), false},
		{"Base58", bridgeProgram.String(), false},
		{"TooLong", long, true},
		{"BadHex", "0xzz", true},
		{"BadBase58", "not-an-address", true},
		{"Empty", "0x", true},
		{"ZeroHex", "0x00", true},
		{"ZeroBase58", "11111111111111111111111111111111", true},
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			_, err := ParsePeer(c.Input)
			if c.Error {
				require.ErrorIs(t, err, errors.BadRequest)
			} else {
				require.NoError(t, err)
			}
		})
	}

	p, err := ParsePeer(evm)
	require.NoError(t, err)
	assert.Equal(t, [12]byte{}, [12]byte(p[:12]))
	assert.Equal(t, common.HexToAddress(evm).Bytes(), p[12:])
	assert.Equal(t, common.HexToAddress(evm).Hex(), FormatPeer(p))

	p, err = ParsePeer(bridgeProgram.String())
	require.NoError(t, err)
	assert.Equal(t, bridgeProgram, solana.PublicKey(p))
	assert.Equal(t, "0x"+common.Bytes2Hex(bridgeProgram[:]), FormatPeer(p))
}

func TestInitBridge(t *testing.T) {
	h := newHarness(t)
	h.init()

	state, err := h.bridge.State(context.Background())
	require.NoError(t, err)
	assert.Equal(t, h.admin, state.Admin)
	assert.Equal(t, endpointProgram, state.EndpointProgram)
	assert.Equal(t, mainnetRFQ, state.GlobalConfig.MainnetRFQ)
	assert.Equal(t, uint32(12), state.GlobalConfig.DefaultChainID)
	assert.Equal(t, uint8(254), state.Bump)

	// A second initialization is a no-op
	ix, err := h.bridge.InitBridge(context.Background(), h.admin, initParams)
	require.NoError(t, err)
	require.Nil(t, ix)
}

func TestInitBridgeAccounts(t *testing.T) {
	h := newHarness(t)
	ix, err := h.bridge.InitBridge(context.Background(), h.admin, initParams)
	require.NoError(t, err)

	accounts := ix.Accounts()
	require.Len(t, accounts, 11)
	assert.Equal(t, h.admin, accounts[0].PublicKey)
	assert.True(t, accounts[0].IsSigner)
	assert.Equal(t, h.bridge.Deriver().Bridge().Key, accounts[1].PublicKey)
	assert.Equal(t, h.bridge.Deriver().SolVault().Key, accounts[2].PublicKey)
	assert.Equal(t, solana.SystemProgramID, accounts[3].PublicKey)
	assert.Equal(t, endpointProgram, accounts[4].PublicKey)

	// The bridge signs the registration by CPI
	for _, a := range accounts[5:] {
		if a.PublicKey.Equals(h.bridge.Deriver().Bridge().Key) {
			assert.False(t, a.IsSigner)
		}
	}
}

func TestSetPeer(t *testing.T) {
	h := newHarness(t)
	h.init()
	ctx := context.Background()

	state, err := h.bridge.PeerState(ctx, dstEid)
	require.NoError(t, err)
	require.Equal(t, Unregistered, state)

	p := peer(t)
	h.setPeer(p)

	got, ok, err := h.bridge.GetPeer(ctx, dstEid)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, p, got)

	state, err = h.bridge.PeerState(ctx, dstEid)
	require.NoError(t, err)
	require.Equal(t, Registered, state)

	// Setting the same peer twice leaves the registry unchanged
	h.setPeer(p)
	got, _, err = h.bridge.GetPeer(ctx, dstEid)
	require.NoError(t, err)
	require.Equal(t, p, got)

	ix, err := h.bridge.EnsurePeer(ctx, h.admin, dstEid, p)
	require.NoError(t, err)
	require.Nil(t, ix)

	// A different peer replaces the old one
	p2 := [32]byte{31: 1}
	ix, err = h.bridge.EnsurePeer(ctx, h.admin, dstEid, p2)
	require.NoError(t, err)
	require.NotNil(t, ix)
	h.execute(ix)

	got, _, err = h.bridge.GetPeer(ctx, dstEid)
	require.NoError(t, err)
	require.Equal(t, p2, got)
}

func TestSetPeerRejectsZeroAddress(t *testing.T) {
	h := newHarness(t)
	h.init()

	_, err := h.bridge.SetPeer(h.admin, dstEid, [32]byte{})
	require.ErrorIs(t, err, errors.BadRequest)

	state, err := h.bridge.PeerState(context.Background(), dstEid)
	require.NoError(t, err)
	require.Equal(t, Unregistered, state)
}

func TestSetPeerRequiresAdmin(t *testing.T) {
	h := newHarness(t)
	h.init()

	other := solana.NewWallet().PublicKey()
	ix, err := h.bridge.SetPeer(other, dstEid, peer(t))
	require.NoError(t, err)

	_, err = h.sim.Execute(context.Background(), []solana.PublicKey{other}, ix)
	require.ErrorIs(t, err, errors.Unauthorized)
}

func TestPeerNotConfigured(t *testing.T) {
	h := newHarness(t)
	h.init()
	h.configureLibrary(msglib.SimpleVersion)
	ctx := context.Background()

	_, err := h.bridge.Send(ctx, h.admin, dstEid, message(t))
	require.ErrorIs(t, err, errors.PeerNotConfigured)

	_, err = h.bridge.Quote(ctx, h.admin, dstEid, message(t))
	require.ErrorIs(t, err, errors.PeerNotConfigured)
}

func TestPeerNotConfiguredBeforeInit(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.bridge.Send(ctx, h.admin, dstEid, message(t))
	require.ErrorIs(t, err, errors.PeerNotConfigured)

	_, err = h.bridge.Quote(ctx, h.admin, dstEid, message(t))
	require.ErrorIs(t, err, errors.PeerNotConfigured)
}

func TestSend(t *testing.T) {
	h := newHarness(t)
	h.init()
	h.setPeer(peer(t))
	h.configureLibrary(msglib.SimpleVersion)
	ctx := context.Background()

	msg := message(t)
	ix, err := h.bridge.Send(ctx, h.admin, dstEid, msg)
	require.NoError(t, err)

	data, err := ix.Data()
	require.NoError(t, err)
	require.Equal(t, instructions.SendDiscriminator[:], data[:8])

	// Fixed accounts followed by the library's accounts
	d := h.bridge.Deriver()
	ep := endpoint.New(endpointProgram, endpoint.Options{Ledger: h.sim})
	accounts := ix.Accounts()
	require.Greater(t, len(accounts), 3)
	assert.Equal(t, d.Remote(dstEid).Key, accounts[0].PublicKey)
	assert.Equal(t, d.Bridge().Key, accounts[1].PublicKey)
	assert.Equal(t, ep.SettingsAddress(), accounts[2].PublicKey)
	assert.Equal(t, "2uk9pQh3tB5ErV7LGQJcbWjb4KeJ2UJki5qJZ8QG56G3", accounts[2].PublicKey.String())

	path := lz.Path{SrcEid: srcEid, DstEid: dstEid, Sender: d.Bridge().Key, Receiver: peer(t)}
	want, err := ep.GetSendAccountsForCPI(ctx, h.admin, path, msglib.NewSimple(key(7), msglib.SimpleVersion))
	require.NoError(t, err)
	require.Equal(t, want, solana.AccountMetaSlice(accounts[3:]))

	h.execute(ix)
	require.Len(t, h.program.Sent, 1)
	assert.Equal(t, uint32(dstEid), h.program.Sent[0].DstEid)
	assert.Equal(t, msg, h.program.Sent[0].Message)
}

func TestSendWithoutLibrary(t *testing.T) {
	h := newHarness(t)
	h.init()
	h.setPeer(peer(t))

	_, err := h.bridge.Send(context.Background(), h.admin, dstEid, message(t))
	require.ErrorIs(t, err, errors.NoLibraryConfigured)
}

func TestSendUnsupportedLibrary(t *testing.T) {
	h := newHarness(t)
	h.init()
	h.setPeer(peer(t))
	h.configureLibrary(lz.Version{Major: 9, Minor: 9, EndpointVersion: 9})

	_, err := h.bridge.Send(context.Background(), h.admin, dstEid, message(t))
	require.ErrorIs(t, err, errors.UnsupportedLibraryVersion)

	var uv *lz.UnsupportedVersionError
	require.ErrorAs(t, err, &uv)
	require.Equal(t, key(7), uv.Library)
	require.Equal(t, uint64(9), uv.Version.Major)
}

func TestQuote(t *testing.T) {
	h := newHarness(t)
	h.init()
	h.setPeer(peer(t))
	h.configureLibrary(msglib.SimpleVersion)
	h.program.Fee = lz.MessagingFee{NativeFee: 12345, LzTokenFee: 6}
	ctx := context.Background()

	ix, err := h.bridge.Quote(ctx, h.admin, dstEid, message(t))
	require.NoError(t, err)
	accounts := ix.Accounts()
	assert.Equal(t, h.bridge.Deriver().Bridge().Key, accounts[0].PublicKey)

	args, err := ix.Data()
	require.NoError(t, err)
	v, err := instructions.Decode(args)
	require.NoError(t, err)
	require.IsType(t, (*instructions.QuoteParams)(nil), v)
	assert.Equal(t, peer(t), v.(*instructions.QuoteParams).Receiver)

	fee, err := h.bridge.SimulateQuote(ctx, h.admin, dstEid, message(t))
	require.NoError(t, err)
	require.Equal(t, h.program.Fee, *fee)
}

func TestEndpointLoadIsRetried(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// The endpoint is not known until the bridge is initialized
	_, err := h.bridge.Endpoint(ctx)
	require.ErrorIs(t, err, errors.NotFound)

	h.init()
	ep, err := h.bridge.Endpoint(ctx)
	require.NoError(t, err)
	require.Equal(t, endpointProgram, ep.ProgramID())

	again, err := h.bridge.Endpoint(ctx)
	require.NoError(t, err)
	require.Same(t, ep, again)
}

func (h *harness) installPathPrograms() PathConfig {
	h.Helper()
	h.sim.Register(endpointProgram, simulator.NewEndpointProgram(endpointProgram))
	_, err := h.sim.RegisterLibrary(endpointProgram, ulnProgram, &msglib.ULNVersion)
	require.NoError(h, err)
	return PathConfig{Library: ulnProgram, Executor: executorProgram}
}

func stepNames(steps []SetupStep) []string {
	var names []string
	for _, s := range steps {
		names = append(names, s.Name)
	}
	return names
}

func (h *harness) executeSteps(steps []SetupStep) {
	h.Helper()
	var ixs []solana.Instruction
	for _, s := range steps {
		ixs = append(ixs, s.Instruction)
	}
	h.execute(ixs...)
}

func TestConfigurePath(t *testing.T) {
	h := newHarness(t)
	h.init()
	h.setPeer(peer(t))
	cfg := h.installPathPrograms()
	ctx := context.Background()
	oapp := h.bridge.Deriver().Bridge().Key

	steps, err := h.bridge.ConfigurePath(ctx, h.admin, dstEid, cfg)
	require.NoError(t, err)
	require.Equal(t, []string{
		"init-send-library",
		"set-send-library",
		"init-receive-library",
		"set-receive-library",
		"init-nonce",
		"init-uln-config",
		"set-executor",
	}, stepNames(steps))
	h.executeSteps(steps)

	// A configured path needs nothing
	steps, err = h.bridge.ConfigurePath(ctx, h.admin, dstEid, cfg)
	require.NoError(t, err)
	require.Empty(t, steps)

	// The OApp's own library replaces the default
	ep := endpoint.New(endpointProgram, endpoint.Options{Ledger: h.sim})
	lib, err := ep.GetSendLibrary(ctx, oapp, dstEid)
	require.NoError(t, err)
	require.NotNil(t, lib)
	assert.False(t, lib.IsDefault)
	assert.Equal(t, ulnProgram, lib.ProgramID)

	recv, err := ep.OAppReceiveLibrary(ctx, oapp, dstEid)
	require.NoError(t, err)
	assert.Equal(t, lib.MsgLib, recv.MessageLib)

	ok, err := ep.HasNonce(ctx, oapp, dstEid, peer(t))
	require.NoError(t, err)
	assert.True(t, ok)

	uln := msglib.NewULN(ulnProgram, msglib.ULNVersion, h.sim, solana.PublicKey{})
	sendCfg, err := uln.OAppSendConfig(ctx, oapp, dstEid)
	require.NoError(t, err)
	require.NotNil(t, sendCfg)
	assert.Equal(t, msglib.ExecutorConfig{
		MaxMessageSize: DefaultMaxMessageSize,
		Executor:       msglib.ExecutorConfigAddress(executorProgram),
	}, sendCfg.Executor)

	// Changing the executor's limit only updates the executor
	cfg.MaxMessageSize = 20000
	steps, err = h.bridge.ConfigurePath(ctx, h.admin, dstEid, cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"set-executor"}, stepNames(steps))
	h.executeSteps(steps)

	sendCfg, err = uln.OAppSendConfig(ctx, oapp, dstEid)
	require.NoError(t, err)
	assert.Equal(t, uint32(20000), sendCfg.Executor.MaxMessageSize)
}

func TestConfigurePathRequiresPeer(t *testing.T) {
	h := newHarness(t)
	h.init()
	cfg := h.installPathPrograms()

	_, err := h.bridge.ConfigurePath(context.Background(), h.admin, dstEid, cfg)
	require.ErrorIs(t, err, errors.PeerNotConfigured)

	_, err = h.bridge.ConfigurePath(context.Background(), h.admin, dstEid, PathConfig{Executor: executorProgram})
	require.ErrorIs(t, err, errors.BadRequest)
}

func TestConfigurePathRequiresDelegate(t *testing.T) {
	h := newHarness(t)
	h.init()
	h.setPeer(peer(t))
	cfg := h.installPathPrograms()

	other := solana.NewWallet().PublicKey()
	steps, err := h.bridge.ConfigurePath(context.Background(), other, dstEid, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, steps)

	_, err = h.sim.Execute(context.Background(), []solana.PublicKey{other}, steps[0].Instruction)
	require.ErrorIs(t, err, errors.Unauthorized)
}
