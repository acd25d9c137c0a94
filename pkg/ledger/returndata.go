// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ledger

import (
	"encoding/base64"
	"strings"

	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
)

const returnLogPrefix = "Program return: "

// ParseReturnData finds the last return data log line emitted by program
// and decodes it. The runtime logs return data as
// "Program return: <program> <base64>".
func ParseReturnData(logs []string, program solana.PublicKey) ([]byte, error) {
	for i := len(logs) - 1; i >= 0; i-- {
		rest, ok := strings.CutPrefix(logs[i], returnLogPrefix)
		if !ok {
			continue
		}

		id, data, ok := strings.Cut(rest, " ")
		if !ok || id != program.String() {
			continue
		}

		b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
		if err != nil {
			return nil, errors.EncodingError.WithFormat("decode return data of %v: %w", program, err)
		}
		return b, nil
	}
	return nil, errors.NotFound.WithFormat("%v did not return data", program)
}
