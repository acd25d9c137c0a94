// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ledger

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"gitlab.com/accumulatenetwork/portfolio-bridge/internal/logging"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
)

// ClientOptions are the options for [NewClient].
type ClientOptions struct {
	// URL is the RPC endpoint.
	URL string

	// Commitment is used for reads and simulation. Defaults to confirmed.
	Commitment rpc.CommitmentType

	Metrics *Metrics
	Logger  logging.Logger
}

// Client implements [Reader] and [Simulator] over JSON-RPC.
type Client struct {
	rpc        *rpc.Client
	commitment rpc.CommitmentType
	metrics    *Metrics
	logger     logging.OptionalLogger
}

var _ Ledger = (*Client)(nil)

func NewClient(opts ClientOptions) *Client {
	c := new(Client)
	c.rpc = rpc.New(opts.URL)
	c.commitment = opts.Commitment
	if c.commitment == "" {
		c.commitment = rpc.CommitmentConfirmed
	}
	c.metrics = opts.Metrics
	c.logger.Set(opts.Logger, "module", "ledger")
	return c
}

// RPC returns the underlying RPC client.
func (c *Client) RPC() *rpc.Client { return c.rpc }

// Commitment returns the client's commitment level.
func (c *Client) Commitment() rpc.CommitmentType { return c.commitment }

func (c *Client) GetAccountInfo(ctx context.Context, address solana.PublicKey) (_ *AccountInfo, err error) {
	defer c.track("getAccountInfo", time.Now(), &err)

	out, err := c.rpc.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: c.commitment,
	})
	switch {
	case errors.Is(err, rpc.ErrNotFound):
		return nil, errors.NotFound.WithFormat("account %v not found", address)
	case err != nil:
		return nil, errors.UnknownError.WithFormat("get account %v: %w", address, err)
	case out == nil || out.Value == nil:
		return nil, errors.NotFound.WithFormat("account %v not found", address)
	}

	return &AccountInfo{
		Address:    address,
		Owner:      out.Value.Owner,
		Lamports:   out.Value.Lamports,
		Executable: out.Value.Executable,
		Data:       out.GetBinary(),
	}, nil
}

// GetBalance returns the balance of an account in lamports.
func (c *Client) GetBalance(ctx context.Context, address solana.PublicKey) (_ uint64, err error) {
	defer c.track("getBalance", time.Now(), &err)

	out, err := c.rpc.GetBalance(ctx, address, c.commitment)
	if err != nil {
		return 0, errors.UnknownError.WithFormat("get balance of %v: %w", address, err)
	}
	return out.Value, nil
}

func (c *Client) Simulate(ctx context.Context, payer solana.PublicKey, instructions ...solana.Instruction) (_ *SimulationResult, err error) {
	defer c.track("simulateTransaction", time.Now(), &err)

	// The blockhash is replaced by the node
	tx, err := solana.NewTransaction(instructions, solana.Hash{}, solana.TransactionPayer(payer))
	if err != nil {
		return nil, errors.BadRequest.WithFormat("build transaction: %w", err)
	}

	// Signatures are not verified but their count must match the header
	tx.Signatures = make([]solana.Signature, tx.Message.Header.NumRequiredSignatures)

	out, err := c.rpc.SimulateTransactionWithOpts(ctx, tx, &rpc.SimulateTransactionOpts{
		SigVerify:              false,
		ReplaceRecentBlockhash: true,
		Commitment:             c.commitment,
	})
	if err != nil {
		return nil, errors.UnknownError.WithFormat("simulate: %w", err)
	}
	if out == nil || out.Value == nil {
		return nil, errors.UnknownError.With("simulate: empty response")
	}

	r := new(SimulationResult)
	r.Logs = out.Value.Logs
	if out.Value.UnitsConsumed != nil {
		r.UnitsConsumed = *out.Value.UnitsConsumed
	}
	if out.Value.Err != nil {
		c.logger.Debug("Simulation failed", "error", out.Value.Err, "logs", r.Logs)
		return r, errors.BadRequest.WithFormat("simulation failed: %s", formatTxError(out.Value.Err))
	}
	return r, nil
}

func (c *Client) track(method string, start time.Time, err *error) {
	c.metrics.observe(method, start, *err)
}

func formatTxError(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "unknown error"
	}
	return string(b)
}
