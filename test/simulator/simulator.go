// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package simulator is an in-memory ledger for tests. It executes
// registered programs against an account map.
package simulator

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
	"gitlab.com/accumulatenetwork/portfolio-bridge/internal/logging"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/anchor"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/ledger"
)

// Program is an executable program.
type Program interface {
	Invoke(tx *Tx, ix solana.Instruction) ([]byte, error)
}

// Ledger is an in-memory ledger.
type Ledger struct {
	mu       sync.Mutex
	accounts map[solana.PublicKey]*ledger.AccountInfo
	programs map[solana.PublicKey]Program
	logger   logging.OptionalLogger
}

var _ ledger.Ledger = (*Ledger)(nil)

func New(logger logging.Logger) *Ledger {
	l := new(Ledger)
	l.accounts = map[solana.PublicKey]*ledger.AccountInfo{}
	l.programs = map[solana.PublicKey]Program{}
	l.logger.Set(logger, "module", "simulator")
	return l
}

// Register installs a program.
func (l *Ledger) Register(id solana.PublicKey, p Program) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.programs[id] = p
	l.accounts[id] = &ledger.AccountInfo{Address: id, Owner: solana.BPFLoaderUpgradeableProgramID, Executable: true}
}

// SetAccount creates or replaces an account.
func (l *Ledger) SetAccount(info *ledger.AccountInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[info.Address] = copyAccount(info)
}

// SetAnchorAccount encodes v as an Anchor account and stores it.
func (l *Ledger) SetAnchorAccount(address, owner solana.PublicKey, disc anchor.Discriminator, v any) error {
	data, err := anchor.Encode(disc, v)
	if err != nil {
		return err
	}
	l.SetAccount(&ledger.AccountInfo{Address: address, Owner: owner, Data: data})
	return nil
}

// DeleteAccount removes an account.
func (l *Ledger) DeleteAccount(address solana.PublicKey) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.accounts, address)
}

func (l *Ledger) GetAccountInfo(_ context.Context, address solana.PublicKey) (*ledger.AccountInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.accounts[address]
	if !ok {
		return nil, errors.NotFound.WithFormat("account %v not found", address)
	}
	return copyAccount(a), nil
}

// Simulate runs the instructions and discards their writes. Signatures are
// not checked.
func (l *Ledger) Simulate(_ context.Context, _ solana.PublicKey, instructions ...solana.Instruction) (*ledger.SimulationResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx := l.begin()
	r := new(ledger.SimulationResult)
	err := tx.run(instructions, &r.Logs)
	if err != nil {
		return r, errors.BadRequest.WithFormat("simulation failed: %w", err)
	}
	return r, nil
}

// Execute runs the instructions and commits their writes if every
// instruction succeeds. Every account flagged as a signer must be in
// signers.
func (l *Ledger) Execute(_ context.Context, signers []solana.PublicKey, instructions ...solana.Instruction) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, ix := range instructions {
		for _, a := range ix.Accounts() {
			if a.IsSigner && !a.PublicKey.IsAnyOf(signers...) {
				return nil, errors.Unauthorized.WithFormat("missing signature for %v", a.PublicKey)
			}
		}
	}

	tx := l.begin()
	var logs []string
	err := tx.run(instructions, &logs)
	if err != nil {
		return logs, err
	}

	for k, v := range tx.writes {
		if v == nil {
			delete(l.accounts, k)
		} else {
			l.accounts[k] = v
		}
	}
	return logs, nil
}

func (l *Ledger) begin() *Tx {
	return &Tx{l: l, writes: map[solana.PublicKey]*ledger.AccountInfo{}}
}

// Tx is the view of the ledger an instruction executes against.
type Tx struct {
	l      *Ledger
	writes map[solana.PublicKey]*ledger.AccountInfo
}

// Get returns a copy of an account.
func (t *Tx) Get(address solana.PublicKey) (*ledger.AccountInfo, bool) {
	if a, ok := t.writes[address]; ok {
		return copyAccount(a), a != nil
	}
	a, ok := t.l.accounts[address]
	if !ok {
		return nil, false
	}
	return copyAccount(a), true
}

// Put stages a write.
func (t *Tx) Put(info *ledger.AccountInfo) {
	t.writes[info.Address] = copyAccount(info)
}

// LoadAnchor decodes an Anchor account.
func (t *Tx) LoadAnchor(address solana.PublicKey, disc anchor.Discriminator, v any) error {
	a, ok := t.Get(address)
	if !ok {
		return errors.NotFound.WithFormat("account %v not found", address)
	}
	return anchor.Decode(disc, a.Data, v)
}

// PutAnchor encodes and stages an Anchor account.
func (t *Tx) PutAnchor(address, owner solana.PublicKey, disc anchor.Discriminator, v any) error {
	data, err := anchor.Encode(disc, v)
	if err != nil {
		return err
	}
	t.Put(&ledger.AccountInfo{Address: address, Owner: owner, Data: data})
	return nil
}

func (t *Tx) run(instructions []solana.Instruction, logs *[]string) error {
	for _, ix := range instructions {
		id := ix.ProgramID()
		*logs = append(*logs, fmt.Sprintf("Program %v invoke [1]", id))

		p, ok := t.l.programs[id]
		if !ok {
			*logs = append(*logs, fmt.Sprintf("Program %v failed: program not found", id))
			return errors.NotFound.WithFormat("program %v not found", id)
		}

		ret, err := p.Invoke(t, ix)
		if err != nil {
			t.l.logger.Debug("Instruction failed", "program", id, "error", err)
			*logs = append(*logs, fmt.Sprintf("Program %v failed: %v", id, err))
			return err
		}
		if len(ret) > 0 {
			*logs = append(*logs, fmt.Sprintf("Program return: %v %s", id, base64.StdEncoding.EncodeToString(ret)))
		}
		*logs = append(*logs, fmt.Sprintf("Program %v success", id))
	}
	return nil
}

func copyAccount(a *ledger.AccountInfo) *ledger.AccountInfo {
	if a == nil {
		return nil
	}
	b := *a
	b.Data = bytes.Clone(a.Data)
	return &b
}
