// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"bytes"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/portfolio-bridge/internal/config"
	"gitlab.com/accumulatenetwork/portfolio-bridge/internal/version"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge"
)

func TestAccountFlags(t *testing.T) {
	k := solana.NewWallet().PublicKey()
	require.Equal(t, "--", accountFlags(solana.NewAccountMeta(k, false, false)))
	require.Equal(t, "w-", accountFlags(solana.NewAccountMeta(k, true, false)))
	require.Equal(t, "ws", accountFlags(solana.NewAccountMeta(k, true, true)))
}

func TestFormatLamports(t *testing.T) {
	require.Equal(t, "1.5 SOL (1,500,000,000 lamports)", formatLamports(1_500_000_000))
	require.Equal(t, "0.000005 SOL (5,000 lamports)", formatLamports(5000))
}

func TestPeerStatus(t *testing.T) {
	cases := []struct {
		Status peerStatus
		Want   string
	}{
		{peerStatus{State: bridge.Unregistered, Configured: [32]byte{1}}, "unregistered"},
		{peerStatus{State: bridge.Registered, Configured: [32]byte{1}, Registered: [32]byte{2}}, "mismatch"},
		{peerStatus{State: bridge.Registered, Configured: [32]byte{1}, Registered: [32]byte{1}}, "ok"},
	}
	for _, c := range cases {
		require.Equal(t, c.Want, c.Status.String())
	}
}

func TestPathConfigDefaults(t *testing.T) {
	e := &env{Config: config.Default()}
	cfg := e.PathConfig()
	require.Equal(t, "7a4WjyR8VZ7yZz5XJAKm39BUGn5iT9CKcv2pmG9tdXVH", cfg.Library.String())
	require.Equal(t, "6doghB248px58JSSwG4qejQ46kFMW4AMj7vzJnWZHNZn", cfg.Executor.String())
	require.EqualValues(t, bridge.DefaultMaxMessageSize, cfg.MaxMessageSize)
}

func TestPrintVersion(t *testing.T) {
	defer func(v string) { version.Version = v }(version.Version)
	defer func() { flagVersion.Short, flagVersion.Check = false, false }()

	buf := new(bytes.Buffer)
	flagVersion.Short = true
	version.Version = "v1.2.3"
	require.True(t, printVersion(buf))
	require.Equal(t, "v1.2.3\n", buf.String())

	version.Version = "version unknown"
	flagVersion.Check = true
	require.False(t, printVersion(new(bytes.Buffer)))
}
