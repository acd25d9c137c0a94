// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package instructions

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge/xfer"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
)

var program = solana.MustPublicKeyFromBase58("DD12vMyLdwszDCAzLhsUPwBmzJXv611dUCPhqwpZQYG4")

func key(b byte) solana.PublicKey {
	var k solana.PublicKey
	k[0] = b
	k[31] = b
	return k
}

func TestSetRemote(t *testing.T) {
	peer := [32]byte{31: 0xaa}
	ix, err := New(program).
		SetRemote(40267, peer).
		WithAdmin(key(1)).
		WithBridge(key(2)).
		WithRemote(key(3)).
		Build()
	require.NoError(t, err)
	require.Equal(t, program, ix.ProgramID())

	accounts := ix.Accounts()
	require.Len(t, accounts, 4)
	assert.Equal(t, solana.NewAccountMeta(key(1), true, true), accounts[0])
	assert.Equal(t, solana.NewAccountMeta(key(2), false, false), accounts[1])
	assert.Equal(t, solana.NewAccountMeta(key(3), true, false), accounts[2])
	assert.Equal(t, solana.SystemProgramID, accounts[3].PublicKey)

	data, err := ix.Data()
	require.NoError(t, err)
	require.Equal(t, SetRemoteDiscriminator[:], data[:8])
	require.Equal(t, []byte{0x4b, 0x9d, 0, 0}, data[8:12]) // 40267 LE
	require.Equal(t, peer[:], data[12:44])

	v, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, &SetRemoteParams{DstEid: 40267, Remote: peer}, v)
	require.Equal(t, "set_remote", Name(data))
}

func TestSetRemoteHexAddress(t *testing.T) {
	ix, err := New(program).
		SetRemote(1, "0x00000000000000000000000000000000000000000000000000000000000000aa").
		WithAdmin(key(1)).
		WithBridge(key(2)).
		WithRemote(key(3)).
		Build()
	require.NoError(t, err)
	data, _ := ix.Data()
	require.Equal(t, byte(0xaa), data[43])
}

func TestBuilderCollectsErrors(t *testing.T) {
	_, err := New(program).
		SetRemote(1, []byte{1, 2, 3}).
		WithAdmin("not base58!").
		Build()
	require.Error(t, err)

	var errs Errors
	require.ErrorAs(t, err, &errs)
	// Bad address, bad admin, missing admin, missing bridge, missing remote
	require.Len(t, errs, 5)
	for _, err := range errs {
		require.ErrorIs(t, err, errors.BadRequest)
	}
}

func TestInitBridgeClearsSigners(t *testing.T) {
	endpoint := key(9)
	register := solana.AccountMetaSlice{
		solana.NewAccountMeta(key(1), true, true),  // payer
		solana.NewAccountMeta(key(2), false, true), // oapp
		solana.NewAccountMeta(key(5), true, false),
	}

	ix, err := New(program).InitBridge().
		WithAuthority(key(1)).
		WithBridge(key(2)).
		WithSolVault(key(3)).
		WithPortfolio(key(6)).
		WithMainnetRFQ(key(7)).
		WithDefaultChainID(12).
		WithEndpointRegistration(endpoint, register).
		Build()
	require.NoError(t, err)

	accounts := ix.Accounts()
	require.Len(t, accounts, 5+len(register))
	require.True(t, accounts[0].IsSigner)
	require.Equal(t, endpoint, accounts[4].PublicKey)
	for i, a := range accounts[5:] {
		require.False(t, a.IsSigner)
		require.Equal(t, register[i].PublicKey, a.PublicKey)
		require.Equal(t, register[i].IsWritable, a.IsWritable)
	}

	// The caller's slice is not modified
	require.True(t, register[0].IsSigner)

	data, _ := ix.Data()
	v, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, &InitBridgeParams{
		Portfolio:       key(6),
		MainnetRFQ:      key(7),
		DefaultChainID:  12,
		EndpointProgram: endpoint,
	}, v)
}

func TestSend(t *testing.T) {
	msg := xfer.New(xfer.Deposit, [32]byte{1}, [32]byte{'S', 'O', 'L'}, 100, 1)
	remaining := []*solana.AccountMeta{
		solana.NewAccountMeta(key(10), false, false),
		solana.NewAccountMeta(key(11), true, false),
	}

	ix, err := New(program).Send(40267, msg).
		WithRemote(key(1)).
		WithBridge(key(2)).
		WithEndpointSettings(key(3)).
		WithRemainingAccounts(remaining...).
		Build()
	require.NoError(t, err)

	var keys []solana.PublicKey
	for _, a := range ix.Accounts() {
		keys = append(keys, a.PublicKey)
	}
	require.Equal(t, []solana.PublicKey{key(1), key(2), key(3), key(10), key(11)}, keys)
	require.True(t, ix.Accounts()[4].IsWritable)

	data, _ := ix.Data()
	require.Equal(t, []byte{102, 251, 20, 187, 65, 75, 12, 69}, data[:8])
	v, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, &SendParams{DstEid: 40267, Message: msg}, v)
}

func TestSendRequiresRemainingAccounts(t *testing.T) {
	msg := xfer.New(xfer.Deposit, [32]byte{1}, [32]byte{}, 100, 1)
	_, err := New(program).Send(1, msg).
		WithRemote(key(1)).
		WithBridge(key(2)).
		WithEndpointSettings(key(3)).
		Build()
	require.ErrorIs(t, err, errors.BadRequest)
	require.Contains(t, err.Error(), "remaining accounts")
}

func TestQuote(t *testing.T) {
	msg := xfer.New(xfer.Withdraw, [32]byte{1}, [32]byte{}, 5, 1)
	msg.Transaction = 99
	_, err := New(program).Quote(1, [32]byte{}, msg).
		WithBridge(key(2)).
		WithEndpointSettings(key(3)).
		WithRemainingAccounts(solana.NewAccountMeta(key(4), false, false)).
		Build()
	require.ErrorIs(t, err, errors.BadRequest)

	msg.Transaction = xfer.Withdraw
	ix, err := New(program).Quote(1, [32]byte{7}, msg).
		WithBridge(key(2)).
		WithEndpointSettings(key(3)).
		WithRemainingAccounts(solana.NewAccountMeta(key(4), false, false)).
		Build()
	require.NoError(t, err)
	require.Len(t, ix.Accounts(), 3)
	require.Equal(t, key(2), ix.Accounts()[0].PublicKey)

	data, _ := ix.Data()
	require.Equal(t, "quote", Name(data))
}

func TestDecodeUnknown(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.ErrorIs(t, err, errors.EncodingError)
	_, err = Decode(nil)
	require.ErrorIs(t, err, errors.EncodingError)
}
