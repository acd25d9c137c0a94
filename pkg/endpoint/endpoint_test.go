// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package endpoint_test

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/portfolio-bridge/internal/logging"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/anchor"
	. "gitlab.com/accumulatenetwork/portfolio-bridge/pkg/endpoint"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/ledger"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/lz"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/msglib"
	"gitlab.com/accumulatenetwork/portfolio-bridge/test/simulator"
)

var program = solana.MustPublicKeyFromBase58("76y77prsiCMvXMjuoZ5VRrhG5qYBrUMYTE5WgHqgjEn6")

const dstEid = 40267

func key(b byte) solana.PublicKey {
	var k solana.PublicKey
	k[0] = b
	k[31] = b
	return k
}

func setup(t *testing.T) (*simulator.Ledger, *Endpoint) {
	logger := logging.NewTestLogger(t)
	sim := simulator.New(logger)
	return sim, New(program, Options{Ledger: sim, Logger: logger})
}

func TestSettingsAddress(t *testing.T) {
	_, ep := setup(t)
	s := ep.Deriver().Settings()
	assert.Equal(t, "2uk9pQh3tB5ErV7LGQJcbWjb4KeJ2UJki5qJZ8QG56G3", s.Key.String())
	assert.Equal(t, uint8(254), s.Bump)
	assert.Equal(t, s.Key, ep.SettingsAddress())
}

func TestLoadSettings(t *testing.T) {
	sim, ep := setup(t)
	_, err := ep.LoadSettings(context.Background())
	require.ErrorIs(t, err, errors.NotFound)

	mint := key(5)
	require.NoError(t, sim.SetAnchorAccount(ep.SettingsAddress(), program, EndpointSettingsDiscriminator, &Settings{
		Eid:         40168,
		Bump:        254,
		Admin:       key(4),
		LzTokenMint: &mint,
	}))

	s, err := ep.LoadSettings(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint32(40168), s.Eid)
	require.NotNil(t, s.LzTokenMint)
	require.Equal(t, mint, *s.LzTokenMint)
}

func TestGetSendLibrary(t *testing.T) {
	ctx := context.Background()
	oapp := key(1)

	t.Run("None", func(t *testing.T) {
		_, ep := setup(t)
		lib, err := ep.GetSendLibrary(ctx, oapp, dstEid)
		require.NoError(t, err)
		require.Nil(t, lib)
	})

	t.Run("Default", func(t *testing.T) {
		sim, ep := setup(t)
		msgLib, err := sim.ConfigureSendLibrary(program, solana.PublicKey{}, dstEid, key(7), &msglib.SimpleVersion)
		require.NoError(t, err)

		lib, err := ep.GetSendLibrary(ctx, oapp, dstEid)
		require.NoError(t, err)
		require.NotNil(t, lib)
		assert.True(t, lib.IsDefault)
		assert.Equal(t, msgLib, lib.MsgLib)
		assert.Equal(t, key(7), lib.ProgramID)
	})

	t.Run("OApp", func(t *testing.T) {
		sim, ep := setup(t)
		_, err := sim.ConfigureSendLibrary(program, solana.PublicKey{}, dstEid, key(7), &msglib.SimpleVersion)
		require.NoError(t, err)
		msgLib, err := sim.ConfigureSendLibrary(program, oapp, dstEid, key(8), &msglib.ULNVersion)
		require.NoError(t, err)

		lib, err := ep.GetSendLibrary(ctx, oapp, dstEid)
		require.NoError(t, err)
		require.NotNil(t, lib)
		assert.False(t, lib.IsDefault)
		assert.Equal(t, msgLib, lib.MsgLib)
		assert.Equal(t, key(8), lib.ProgramID)
	})

	t.Run("ZeroFallsBack", func(t *testing.T) {
		sim, ep := setup(t)
		_, err := sim.ConfigureSendLibrary(program, solana.PublicKey{}, dstEid, key(7), &msglib.SimpleVersion)
		require.NoError(t, err)
		cfg := ep.Deriver().SendLibraryConfig(oapp, dstEid)
		require.NoError(t, sim.SetAnchorAccount(cfg.Key, program, SendLibraryConfigDiscriminator, &SendLibraryConfig{Bump: cfg.Bump}))

		lib, err := ep.GetSendLibrary(ctx, oapp, dstEid)
		require.NoError(t, err)
		require.NotNil(t, lib)
		assert.True(t, lib.IsDefault)
		assert.Equal(t, key(7), lib.ProgramID)
	})

	t.Run("Blocked", func(t *testing.T) {
		sim := simulator.New(logging.NewTestLogger(t))
		msgLib, err := sim.ConfigureSendLibrary(program, solana.PublicKey{}, dstEid, key(7), &msglib.SimpleVersion)
		require.NoError(t, err)

		ep := New(program, Options{Ledger: sim, BlockedLibrary: msgLib})
		lib, err := ep.GetSendLibrary(ctx, oapp, dstEid)
		require.NoError(t, err)
		require.Nil(t, lib)
	})
}

func TestGetMessageLibVersion(t *testing.T) {
	ctx := context.Background()
	sim, ep := setup(t)

	_, err := sim.ConfigureSendLibrary(program, solana.PublicKey{}, dstEid, key(7), &msglib.ULNVersion)
	require.NoError(t, err)
	v, err := ep.GetMessageLibVersion(ctx, key(2), key(7))
	require.NoError(t, err)
	require.Equal(t, msglib.ULNVersion, *v)

	// A library that returns nothing has no version
	sim.Register(key(8), &simulator.LibraryProgram{})
	v, err = ep.GetMessageLibVersion(ctx, key(2), key(8))
	require.NoError(t, err)
	require.Nil(t, v)

	// A missing program fails
	_, err = ep.GetMessageLibVersion(ctx, key(2), key(9))
	require.Error(t, err)
}

func TestGetSendAccountsForCPI(t *testing.T) {
	_, ep := setup(t)
	d := ep.Deriver()
	oapp, payer := key(1), key(2)
	path := lz.Path{SrcEid: 40168, DstEid: dstEid, Sender: oapp, Receiver: [32]byte{31: 1}}
	lib := msglib.NewSimple(key(7), msglib.SimpleVersion)

	accounts, err := ep.GetSendAccountsForCPI(context.Background(), payer, path, lib)
	require.NoError(t, err)

	libAccounts, err := lib.SendAccounts(context.Background(), payer, path)
	require.NoError(t, err)
	require.Len(t, accounts, 10+len(libAccounts))

	want := []solana.PublicKey{
		program,
		oapp,
		key(7),
		d.SendLibraryConfig(oapp, dstEid).Key,
		d.DefaultSendLibraryConfig(dstEid).Key,
		d.MessageLibInfo(lib.SettingsAddress()).Key,
		d.Settings().Key,
		d.Nonce(oapp, dstEid, path.Receiver).Key,
		d.EventAuthority().Key,
		program,
	}
	for i, k := range want {
		assert.Equal(t, k, accounts[i].PublicKey, "account %d", i)
		assert.False(t, accounts[i].IsSigner, "account %d", i)
	}
	assert.True(t, accounts[7].IsWritable, "nonce")
	assert.Equal(t, libAccounts, solana.AccountMetaSlice(accounts[10:]))
}

type failingLedger struct {
	ledger.Ledger
}

func (failingLedger) GetAccountInfo(context.Context, solana.PublicKey) (*ledger.AccountInfo, error) {
	return nil, errors.InternalError.With("unavailable")
}

func TestGetSendLibraryError(t *testing.T) {
	ep := New(program, Options{Ledger: failingLedger{}})
	_, err := ep.GetSendLibrary(context.Background(), key(1), dstEid)
	require.Error(t, err)
	require.False(t, errors.Is(err, errors.NotFound))
}

func TestRegisterOAppAccounts(t *testing.T) {
	_, ep := setup(t)
	payer, oapp := key(2), key(1)
	accounts := ep.RegisterOAppAccounts(payer, oapp)
	require.Len(t, accounts, 6)
	assert.Equal(t, payer, accounts[0].PublicKey)
	assert.True(t, accounts[0].IsSigner)
	assert.Equal(t, oapp, accounts[1].PublicKey)
	assert.Equal(t, ep.Deriver().OAppRegistry(oapp).Key, accounts[2].PublicKey)
	assert.Equal(t, solana.SystemProgramID, accounts[3].PublicKey)
	assert.Equal(t, EventAuthority(program).Key, accounts[4].PublicKey)
	assert.Equal(t, program, accounts[5].PublicKey)
}

func TestSetSendLibraryInstruction(t *testing.T) {
	_, ep := setup(t)
	delegate, oapp, lib := key(2), key(1), key(7)
	ix, err := ep.SetSendLibrary(delegate, oapp, dstEid, lib)
	require.NoError(t, err)
	require.Equal(t, program, ix.ProgramID())

	accounts := ix.Accounts()
	require.Len(t, accounts, 6)
	assert.True(t, accounts[0].IsSigner)
	assert.False(t, accounts[0].IsWritable)
	assert.Equal(t, ep.Deriver().SendLibraryConfig(oapp, dstEid).Key, accounts[2].PublicKey)
	assert.True(t, accounts[2].IsWritable)
	assert.Equal(t, ep.Deriver().MessageLibInfo(lib).Key, accounts[3].PublicKey)

	data, err := ix.Data()
	require.NoError(t, err)
	args := new(SetSendLibraryParams)
	require.NoError(t, anchor.Decode(SetSendLibraryDiscriminator, data, args))
	assert.Equal(t, SetSendLibraryParams{Sender: oapp, Eid: dstEid, NewLib: lib}, *args)
}

func TestSetConfigForwardsLibraryAccounts(t *testing.T) {
	_, ep := setup(t)
	extra := solana.AccountMetaSlice{solana.NewAccountMeta(key(9), true, false)}
	ix, err := ep.SetConfig(key(2), key(1), dstEid, key(7), key(8), extra, ConfigTypeExecutor, []byte{1, 2})
	require.NoError(t, err)

	accounts := ix.Accounts()
	require.Len(t, accounts, 6)
	assert.Equal(t, key(7), accounts[3].PublicKey)
	assert.Equal(t, key(8), accounts[4].PublicKey)
	assert.Equal(t, key(9), accounts[5].PublicKey)
}

func TestOAppPathRecords(t *testing.T) {
	sim, ep := setup(t)
	ctx := context.Background()
	oapp, peer := key(1), [32]byte{3}

	send, err := ep.OAppSendLibrary(ctx, oapp, dstEid)
	require.NoError(t, err)
	require.Nil(t, send)
	recv, err := ep.OAppReceiveLibrary(ctx, oapp, dstEid)
	require.NoError(t, err)
	require.Nil(t, recv)
	ok, err := ep.HasNonce(ctx, oapp, dstEid, peer)
	require.NoError(t, err)
	require.False(t, ok)

	address := ep.Deriver().SendLibraryConfig(oapp, dstEid).Key
	require.NoError(t, sim.SetAnchorAccount(address, program, SendLibraryConfigDiscriminator, &SendLibraryConfig{MessageLib: key(7)}))
	send, err = ep.OAppSendLibrary(ctx, oapp, dstEid)
	require.NoError(t, err)
	require.NotNil(t, send)
	assert.Equal(t, key(7), send.MessageLib)

	_, err = New(program, Options{Ledger: failingLedger{}}).OAppSendLibrary(ctx, oapp, dstEid)
	require.Error(t, err)
}
