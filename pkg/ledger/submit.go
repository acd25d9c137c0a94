// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ledger

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
)

// Submitter signs, sends and confirms transactions.
type Submitter struct {
	Client *Client

	// InitialInterval is the first polling interval. Defaults to 500ms.
	InitialInterval time.Duration

	// MaxInterval caps the polling interval. Defaults to 5s.
	MaxInterval time.Duration
}

// Submit builds a transaction paid for by the first signer, signs it with
// every signer, sends it with preflight, and waits until it reaches the
// client's commitment level or ctx is done.
func (s *Submitter) Submit(ctx context.Context, signers []solana.PrivateKey, instructions ...solana.Instruction) (solana.Signature, error) {
	if len(signers) == 0 {
		return solana.Signature{}, errors.BadRequest.With("no signers")
	}
	if len(instructions) == 0 {
		return solana.Signature{}, errors.BadRequest.With("no instructions")
	}

	c := s.Client
	start := time.Now()
	hash, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	c.metrics.observe("getLatestBlockhash", start, err)
	if err != nil {
		return solana.Signature{}, errors.UnknownError.WithFormat("get latest blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(instructions, hash.Value.Blockhash, solana.TransactionPayer(signers[0].PublicKey()))
	if err != nil {
		return solana.Signature{}, errors.BadRequest.WithFormat("build transaction: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		for i := range signers {
			if signers[i].PublicKey().Equals(key) {
				return &signers[i]
			}
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, errors.Unauthorized.WithFormat("sign transaction: %w", err)
	}

	start = time.Now()
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: c.commitment,
	})
	c.metrics.observe("sendTransaction", start, err)
	if err != nil {
		return solana.Signature{}, errors.UnknownError.WithFormat("send transaction: %w", err)
	}
	c.logger.Info("Sent transaction", "signature", sig, "instructions", len(instructions))

	return sig, s.Confirm(ctx, sig)
}

// Confirm polls the signature's status with exponential backoff until it
// reaches the client's commitment level, the transaction fails, or ctx is
// done.
func (s *Submitter) Confirm(ctx context.Context, sig solana.Signature) error {
	c := s.Client
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.InitialInterval
	if b.InitialInterval == 0 {
		b.InitialInterval = 500 * time.Millisecond
	}
	b.MaxInterval = s.MaxInterval
	if b.MaxInterval == 0 {
		b.MaxInterval = 5 * time.Second
	}
	b.MaxElapsedTime = 0 // Bounded by ctx

	op := func() error {
		start := time.Now()
		out, err := c.rpc.GetSignatureStatuses(ctx, false, sig)
		c.metrics.observe("getSignatureStatuses", start, err)
		if err != nil {
			return err
		}
		if len(out.Value) == 0 || out.Value[0] == nil {
			return errors.NotFound.WithFormat("transaction %v is pending", sig)
		}

		status := out.Value[0]
		if status.Err != nil {
			return backoff.Permanent(errors.Conflict.WithFormat("transaction %v failed: %s", sig, formatTxError(status.Err)))
		}
		if !reached(status.ConfirmationStatus, c.commitment) {
			return errors.NotFound.WithFormat("transaction %v is %s", sig, status.ConfirmationStatus)
		}
		return nil
	}

	err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), func(err error, d time.Duration) {
		c.logger.Debug("Waiting for confirmation", "signature", sig, "status", err, "retry-in", d)
	})
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return errors.UnknownError.WithFormat("confirm %v: %w", sig, ctx.Err())
	}
	return err
}

var commitmentRank = map[string]int{
	string(rpc.CommitmentProcessed): 1,
	string(rpc.CommitmentConfirmed): 2,
	string(rpc.CommitmentFinalized): 3,
}

func reached(status rpc.ConfirmationStatusType, want rpc.CommitmentType) bool {
	r, ok := commitmentRank[string(want)]
	if !ok {
		r = commitmentRank[string(rpc.CommitmentConfirmed)]
	}
	return commitmentRank[string(status)] >= r
}
