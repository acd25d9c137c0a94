// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

type Hex []byte

func (h Hex) MarshalJSON() ([]byte, error) {
	b := make([]byte, hex.EncodedLen(len(h)))
	hex.Encode(b, h)
	return json.Marshal(string(b))
}

func (h Hex) String() string {
	return hex.EncodeToString(h)
}

//go:inline
func AsHex(v interface{}) Hex {
	switch v := v.(type) {
	case []byte:
		u := make(Hex, len(v))
		copy(u, v)
		return u
	case [32]byte:
		return Hex(v[:])
	case *[32]byte:
		return Hex(v[:])
	case string:
		return Hex(v)
	case interface{ Bytes() []byte }:
		return Hex(v.Bytes())
	case fmt.Stringer:
		return Hex(v.String())
	default:
		return Hex(fmt.Sprint(v))
	}
}
