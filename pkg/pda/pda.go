// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package pda derives program derived addresses.
package pda

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
)

// Address is a program derived address and its bump seed.
type Address struct {
	Key  solana.PublicKey
	Bump uint8
}

func (a Address) String() string {
	return fmt.Sprintf("%v (bump %d)", a.Key, a.Bump)
}

// Find returns the canonical address for the seeds: the first off-curve
// candidate, searching bump seeds from 255 down.
func Find(program solana.PublicKey, seeds ...[]byte) (Address, error) {
	// FindProgramAddress appends the bump to the slice it is given
	s := make([][]byte, len(seeds), len(seeds)+1)
	copy(s, seeds)

	key, bump, err := solana.FindProgramAddress(s, program)
	if err != nil {
		return Address{}, errors.DerivationError.WithFormat("derive address for %v: %w", program, err)
	}
	return Address{key, bump}, nil
}

// MustFind calls [Find] and panics if derivation fails. Use it only with
// fixed seed layouts.
func MustFind(program solana.PublicKey, seeds ...[]byte) Address {
	a, err := Find(program, seeds...)
	if err != nil {
		panic(err)
	}
	return a
}

// U32BE returns v as 4 big-endian bytes.
func U32BE(v uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, v)
}
