// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package anchor implements the account and instruction framing used by
// Anchor programs: an 8-byte discriminator followed by a Borsh body.
package anchor

import (
	"bytes"
	"crypto/sha256"

	bin "github.com/gagliardetto/binary"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
)

// DiscriminatorLength is the length of an Anchor discriminator.
const DiscriminatorLength = 8

// Discriminator identifies an Anchor account type or instruction.
type Discriminator [DiscriminatorLength]byte

// Sighash returns the discriminator for a namespace and name, the first
// eight bytes of sha256("<namespace>:<name>").
func Sighash(namespace, name string) Discriminator {
	h := sha256.Sum256([]byte(namespace + ":" + name))
	return Discriminator(h[:DiscriminatorLength])
}

// InstructionDiscriminator returns the discriminator of a global
// instruction such as "set_remote".
func InstructionDiscriminator(name string) Discriminator {
	return Sighash("global", name)
}

// AccountDiscriminator returns the discriminator of an account type such as
// "Remote".
func AccountDiscriminator(name string) Discriminator {
	return Sighash("account", name)
}

// Encode returns the discriminator followed by the Borsh encoding of v.
func Encode(disc Discriminator, v interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(disc[:])
	err := bin.NewBorshEncoder(buf).Encode(v)
	if err != nil {
		return nil, errors.EncodingError.WithFormat("encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode verifies the discriminator and decodes the Borsh body into v.
// Trailing bytes are ignored.
func Decode(disc Discriminator, data []byte, v interface{}) error {
	if len(data) < DiscriminatorLength {
		return errors.EncodingError.WithFormat("data too short: want at least %d bytes, got %d", DiscriminatorLength, len(data))
	}
	if !bytes.Equal(data[:DiscriminatorLength], disc[:]) {
		return errors.EncodingError.WithFormat("discriminator mismatch: want %x, got %x", disc[:], data[:DiscriminatorLength])
	}
	err := bin.NewBorshDecoder(data[DiscriminatorLength:]).Decode(v)
	if err != nil {
		return errors.EncodingError.WithFormat("decode: %w", err)
	}
	return nil
}
