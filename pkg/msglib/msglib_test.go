// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package msglib

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/portfolio-bridge/internal/logging"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/anchor"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/ledger"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/lz"
	mocks "gitlab.com/accumulatenetwork/portfolio-bridge/test/mocks/pkg/lz"
)

var (
	oapp       = solana.MustPublicKeyFromBase58("BmmRy2hjqxeMERH3R4arTdohBCC7cjhqPNiAq52iGpNj")
	ulnProgram = solana.MustPublicKeyFromBase58("7a4WjyR8VZ7yZz5XJAKm39BUGn5iT9CKcv2pmG9tdXVH")
	executor   = solana.MustPublicKeyFromBase58("6doghB248px58JSSwG4qejQ46kFMW4AMj7vzJnWZHNZn")
	payer      = solana.MustPublicKeyFromBase58("CUmdZmnaTZh8g7oFPbQxh3GHPtSVz9Wyw1RXxmUeUxeQ")
)

func key(b byte) solana.PublicKey {
	var k solana.PublicKey
	k[0], k[31] = b, b
	return k
}

type mapReader map[solana.PublicKey]*ledger.AccountInfo

func (m mapReader) GetAccountInfo(_ context.Context, address solana.PublicKey) (*ledger.AccountInfo, error) {
	if a, ok := m[address]; ok {
		return a, nil
	}
	return nil, errors.NotFound.WithFormat("account %v not found", address)
}

func (m mapReader) put(t *testing.T, address, owner solana.PublicKey, disc anchor.Discriminator, v any) {
	var data []byte
	if v != nil {
		var err error
		data, err = anchor.Encode(disc, v)
		require.NoError(t, err)
	}
	m[address] = &ledger.AccountInfo{Address: address, Owner: owner, Data: data}
}

func TestResolverDispatch(t *testing.T) {
	cases := []struct {
		name    string
		version *lz.Version
		expect  string
		err     error
	}{
		{"simple", &lz.Version{Major: 0, Minor: 0, EndpointVersion: 2}, "simple", nil},
		{"uln", &lz.Version{Major: 3, Minor: 0, EndpointVersion: 2}, "uln", nil},
		{"unknown", &lz.Version{Major: 1, Minor: 0, EndpointVersion: 2}, "", errors.UnsupportedLibraryVersion},
		{"endpoint v1", &lz.Version{Major: 3, Minor: 0, EndpointVersion: 1}, "", errors.UnsupportedLibraryVersion},
		{"none", nil, "", errors.UnsupportedLibraryVersion},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ep := mocks.NewEndpoint(t)
			ep.EXPECT().GetSendLibrary(mock.Anything, oapp, uint32(40267)).Return(&lz.SendLibrary{MsgLib: key(1), ProgramID: ulnProgram}, nil)
			ep.EXPECT().GetMessageLibVersion(mock.Anything, payer, ulnProgram).Return(c.version, nil)

			r := NewResolver(ep, Options{Table: DefaultTable(mapReader{}, key(2)), Logger: logging.NewTestLogger(t)})
			s, err := r.Resolve(context.Background(), payer, oapp, 40267)
			if c.err != nil {
				require.ErrorIs(t, err, c.err)

				var uve *lz.UnsupportedVersionError
				require.ErrorAs(t, err, &uve)
				require.Equal(t, c.version, uve.Version)
				require.Equal(t, errors.UnsupportedLibraryVersion, errors.Code(err))
				return
			}

			require.NoError(t, err)
			require.Equal(t, c.expect, s.Name())
			require.Equal(t, ulnProgram, s.ProgramID())
			require.Equal(t, *c.version, s.Version())
		})
	}
}

func TestResolverNoLibrary(t *testing.T) {
	ep := mocks.NewEndpoint(t)
	ep.EXPECT().GetSendLibrary(mock.Anything, oapp, uint32(1)).Return(nil, nil)

	reg := prometheus.NewRegistry()
	r := NewResolver(ep, Options{Table: DefaultTable(mapReader{}, key(2)), Metrics: NewMetrics(reg)})
	_, err := r.Resolve(context.Background(), payer, oapp, 1)
	require.ErrorIs(t, err, errors.NoLibraryConfigured)

	n, err := testutil.GatherAndCount(reg, "bridge_msglib_resolutions_total")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestResolverPropagatesEndpointErrors(t *testing.T) {
	ep := mocks.NewEndpoint(t)
	ep.EXPECT().GetSendLibrary(mock.Anything, oapp, uint32(1)).Return(nil, errors.UnknownError.With("connection refused"))

	r := NewResolver(ep, Options{Table: DefaultTable(mapReader{}, key(2))})
	_, err := r.Resolve(context.Background(), payer, oapp, 1)
	require.Error(t, err)
	require.NotErrorIs(t, err, errors.NoLibraryConfigured)
	require.Contains(t, err.Error(), "connection refused")
}

func TestResolverNoCaching(t *testing.T) {
	ep := mocks.NewEndpoint(t)
	ep.EXPECT().GetSendLibrary(mock.Anything, oapp, uint32(1)).Return(&lz.SendLibrary{ProgramID: ulnProgram}, nil).Times(2)
	ep.EXPECT().GetMessageLibVersion(mock.Anything, payer, ulnProgram).Return(&SimpleVersion, nil).Once()
	ep.EXPECT().GetMessageLibVersion(mock.Anything, payer, ulnProgram).Return(&ULNVersion, nil).Once()

	r := NewResolver(ep, Options{Table: DefaultTable(mapReader{}, key(2))})
	s, err := r.Resolve(context.Background(), payer, oapp, 1)
	require.NoError(t, err)
	require.Equal(t, "simple", s.Name())

	s, err = r.Resolve(context.Background(), payer, oapp, 1)
	require.NoError(t, err)
	require.Equal(t, "uln", s.Name())
}

func TestTableWith(t *testing.T) {
	lib := mocks.NewLibrary(t)
	lib.EXPECT().Name().Return("custom")

	table := DefaultTable(mapReader{}, key(2)).With(SimpleVersion, func(solana.PublicKey, lz.Version) lz.Library { return lib })
	e, ok := table.Lookup(SimpleVersion)
	require.True(t, ok)
	require.Equal(t, "custom", e.New(key(1), SimpleVersion).Name())

	_, ok = table.Lookup(lz.Version{Major: 9})
	require.False(t, ok)
}

func TestStrategyRemainingAccounts(t *testing.T) {
	path := lz.Path{SrcEid: 40168, DstEid: 40267, Sender: oapp, Receiver: [32]byte{31: 0xaa}}
	expect := solana.AccountMetaSlice{solana.NewAccountMeta(key(7), false, false), solana.NewAccountMeta(key(8), true, false)}

	ep := mocks.NewEndpoint(t)
	ep.EXPECT().GetSendLibrary(mock.Anything, oapp, uint32(40267)).Return(&lz.SendLibrary{ProgramID: key(3)}, nil)
	ep.EXPECT().GetMessageLibVersion(mock.Anything, payer, key(3)).Return(&SimpleVersion, nil)
	ep.EXPECT().GetSendAccountsForCPI(mock.Anything, payer, path, mock.Anything).
		RunAndReturn(func(_ context.Context, _ solana.PublicKey, _ lz.Path, lib lz.Library) (solana.AccountMetaSlice, error) {
			require.Equal(t, "simple", lib.Name())
			return expect, nil
		})

	r := NewResolver(ep, Options{Table: DefaultTable(mapReader{}, key(2))})
	s, err := r.Resolve(context.Background(), payer, oapp, 40267)
	require.NoError(t, err)

	accounts, err := s.RemainingAccountsFor(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, expect, accounts)
}

func TestSimpleAccounts(t *testing.T) {
	s := NewSimple(key(3), SimpleVersion)
	accounts, err := s.SendAccounts(context.Background(), payer, lz.Path{})
	require.NoError(t, err)
	require.Len(t, accounts, 4)
	require.Equal(t, key(3), accounts[0].PublicKey)
	require.Equal(t, s.SettingsAddress(), accounts[1].PublicKey)
	require.True(t, accounts[2].IsSigner)
}

func TestULNAccounts(t *testing.T) {
	priceFeed := key(20)
	dvn1, dvn2 := key(21), key(22)
	executorProgram, dvnProgram := key(30), key(31)

	r := mapReader{}
	u := NewULN(ulnProgram, ULNVersion, r, priceFeed)
	r.put(t, u.DefaultSendConfigAddress(40267), ulnProgram, SendConfigDiscriminator, &SendConfig{
		Bump: 255,
		Uln: UlnConfig{
			Confirmations:    15,
			RequiredDvnCount: 1,
			RequiredDvns:     []solana.PublicKey{dvn1},
		},
		Executor: ExecutorConfig{MaxMessageSize: 10000, Executor: executor},
	})
	r.put(t, u.SendConfigAddress(oapp, 40267), ulnProgram, SendConfigDiscriminator, &SendConfig{
		Bump: 254,
		Uln: UlnConfig{
			RequiredDvnCount: 2,
			RequiredDvns:     []solana.PublicKey{dvn1, dvn2},
		},
	})
	r.put(t, executor, executorProgram, anchor.Discriminator{}, nil)
	r.put(t, dvn1, dvnProgram, anchor.Discriminator{}, nil)
	r.put(t, dvn2, dvnProgram, anchor.Discriminator{}, nil)

	cfg, err := u.EffectiveSendConfig(context.Background(), oapp, 40267)
	require.NoError(t, err)
	require.Equal(t, uint64(15), cfg.Uln.Confirmations)
	require.Equal(t, []solana.PublicKey{executor, dvn1, dvn2}, cfg.Workers())

	path := lz.Path{DstEid: 40267, Sender: oapp}
	accounts, err := u.SendAccounts(context.Background(), payer, path)
	require.NoError(t, err)
	require.Len(t, accounts, 8+3*4)
	require.Equal(t, u.SendConfigAddress(oapp, 40267), accounts[2].PublicKey)
	require.True(t, accounts[4].IsSigner)

	workers := accounts[8:]
	require.Equal(t, executorProgram, workers[0].PublicKey)
	require.Equal(t, executor, workers[1].PublicKey)
	require.True(t, workers[1].IsWritable)
	require.Equal(t, priceFeed, workers[2].PublicKey)
	require.Equal(t, dvnProgram, workers[4].PublicKey)
	require.Equal(t, dvn2, workers[9].PublicKey)
}

func TestULNWithoutDefaultConfig(t *testing.T) {
	u := NewULN(ulnProgram, ULNVersion, mapReader{}, key(20))
	_, err := u.SendAccounts(context.Background(), payer, lz.Path{DstEid: 1, Sender: oapp})
	require.ErrorIs(t, err, errors.NotFound)
}
