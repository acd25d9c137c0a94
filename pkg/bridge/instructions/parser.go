// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package instructions

import (
	"encoding/hex"
	"strings"

	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
)

type Errors []error

func (e Errors) Error() string {
	var errs []string
	for _, e := range e {
		errs = append(errs, e.Error())
	}
	return strings.Join(errs, "; ")
}

type parser struct {
	errs []error
}

func (p *parser) ok() bool {
	return len(p.errs) == 0
}

func (p *parser) err() error {
	switch len(p.errs) {
	case 0:
		return nil
	case 1:
		return p.errs[0]
	default:
		return Errors(p.errs)
	}
}

func (p *parser) record(err ...error) {
	errs := make([]error, 0, len(p.errs)+len(err))
	errs = append(errs, p.errs...)
	errs = append(errs, err...)
	p.errs = errs
}

func (p *parser) errorf(code errors.Status, format string, args ...interface{}) {
	p.record(code.Skip(1).WithFormat(format, args...))
}

func (p *parser) parsePublicKey(v any) solana.PublicKey {
	switch v := v.(type) {
	case solana.PublicKey:
		return v
	case *solana.PublicKey:
		if v == nil {
			return solana.PublicKey{}
		}
		return *v
	case [32]byte:
		return solana.PublicKey(v)
	case []byte:
		if len(v) != solana.PublicKeyLength {
			p.errorf(errors.BadRequest, "invalid public key: want %d bytes, got %d", solana.PublicKeyLength, len(v))
			return solana.PublicKey{}
		}
		return solana.PublicKeyFromBytes(v)
	case string:
		k, err := solana.PublicKeyFromBase58(v)
		if err != nil {
			p.errorf(errors.BadRequest, "invalid public key %q: %w", v, err)
		}
		return k
	default:
		p.errorf(errors.BadRequest, "cannot convert %T to a public key", v)
		return solana.PublicKey{}
	}
}

func (p *parser) parseBytes32(v any) [32]byte {
	switch v := v.(type) {
	case [32]byte:
		return v
	case solana.PublicKey:
		return v
	case []byte:
		var b [32]byte
		if len(v) != len(b) {
			p.errorf(errors.BadRequest, "invalid address: want 32 bytes, got %d", len(v))
			return b
		}
		copy(b[:], v)
		return b
	case string:
		s := strings.TrimPrefix(v, "0x")
		b, err := hex.DecodeString(s)
		if err != nil {
			p.errorf(errors.BadRequest, "invalid address %q: %w", v, err)
			return [32]byte{}
		}
		return p.parseBytes32(b)
	default:
		p.errorf(errors.BadRequest, "cannot convert %T to a 32-byte address", v)
		return [32]byte{}
	}
}

func (p *parser) require(name string, k solana.PublicKey) {
	if k.IsZero() {
		p.errorf(errors.BadRequest, "missing %s", name)
	}
}
