// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package bridge

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/mr-tron/base58"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
)

// ParsePeer parses a peer address. Hex addresses must be 0x-prefixed and
// at most 32 bytes; shorter values, such as 20-byte EVM addresses, are
// left-padded with zeros. Anything else is parsed as a base58 address. The
// zero address is rejected.
func ParsePeer(s string) ([32]byte, error) {
	var peer [32]byte
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		b, err := hexutil.Decode(s)
		if err != nil {
			return peer, errors.BadRequest.WithFormat("invalid peer %q: %w", s, err)
		}
		if len(b) > len(peer) {
			return peer, errors.BadRequest.WithFormat("invalid peer %q: longer than 32 bytes", s)
		}
		copy(peer[:], common.LeftPadBytes(b, len(peer)))
	} else {
		b, err := base58.Decode(s)
		if err != nil {
			return peer, errors.BadRequest.WithFormat("invalid peer %q: %w", s, err)
		}
		if len(b) != len(peer) {
			return peer, errors.BadRequest.WithFormat("invalid peer %q: want 32 bytes, got %d", s, len(b))
		}
		peer = [32]byte(b)
	}

	if peer == [32]byte{} {
		return peer, errors.BadRequest.WithFormat("invalid peer %q: zero address", s)
	}
	return peer, nil
}

// FormatPeer formats a peer address as 0x-prefixed hex. Peers that are
// left-padded EVM addresses are formatted with their checksum.
func FormatPeer(peer [32]byte) string {
	if [12]byte(peer[:12]) == [12]byte{} && peer != [32]byte{} {
		return common.BytesToAddress(peer[12:]).Hex()
	}
	return "0x" + hex.EncodeToString(peer[:])
}
