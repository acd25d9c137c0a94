// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package msglib selects and implements message library strategies.
package msglib

import (
	"context"
	"slices"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"gitlab.com/accumulatenetwork/portfolio-bridge/internal/logging"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/ledger"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/lz"
)

var (
	SimpleVersion = lz.Version{Major: 0, Minor: 0, EndpointVersion: 2}
	ULNVersion    = lz.Version{Major: 3, Minor: 0, EndpointVersion: 2}
)

// Constructor creates a library for a program that reported version.
type Constructor func(program solana.PublicKey, version lz.Version) lz.Library

// Entry maps a version triple to a library constructor.
type Entry struct {
	Version lz.Version
	New     Constructor
}

// Table is an ordered dispatch table. The first entry with an equal
// version wins.
type Table []Entry

func (t Table) Lookup(v lz.Version) (Entry, bool) {
	i := slices.IndexFunc(t, func(e Entry) bool { return e.Version == v })
	if i < 0 {
		return Entry{}, false
	}
	return t[i], true
}

// With returns a copy of the table with the entry prepended, so it takes
// precedence over existing entries for the same version.
func (t Table) With(v lz.Version, fn Constructor) Table {
	u := make(Table, 0, len(t)+1)
	u = append(u, Entry{v, fn})
	return append(u, t...)
}

// DefaultTable returns the table of supported libraries: simple 0.0.2 and
// ULN 3.0.2. The ULN reads send configurations with reader and prices
// workers with priceFeed.
func DefaultTable(reader ledger.Reader, priceFeed solana.PublicKey) Table {
	return Table{
		{SimpleVersion, func(p solana.PublicKey, v lz.Version) lz.Library { return NewSimple(p, v) }},
		{ULNVersion, func(p solana.PublicKey, v lz.Version) lz.Library { return NewULN(p, v, reader, priceFeed) }},
	}
}

// Metrics counts resolutions by outcome. A nil *Metrics records nothing.
type Metrics struct {
	resolutions *prometheus.CounterVec
}

// NewMetrics creates and registers the resolver metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := new(Metrics)
	m.resolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "msglib",
		Name:      "resolutions_total",
		Help:      "Message library resolutions by library",
	}, []string{"library"})
	if reg != nil {
		reg.MustRegister(m.resolutions)
	}
	return m
}

func (m *Metrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(outcome).Inc()
}

// Options are the options for [NewResolver].
type Options struct {
	// Table is the dispatch table. See [DefaultTable].
	Table   Table
	Metrics *Metrics
	Logger  logging.Logger
}

// Resolver selects the library strategy for a path. It does not cache: the
// configured library and its version are read on every call.
type Resolver struct {
	endpoint lz.Endpoint
	table    Table
	metrics  *Metrics
	logger   logging.OptionalLogger
}

func NewResolver(endpoint lz.Endpoint, opts Options) *Resolver {
	r := new(Resolver)
	r.endpoint = endpoint
	r.table = opts.Table
	r.metrics = opts.Metrics
	r.logger.Set(opts.Logger, "module", "msglib")
	return r
}

// Strategy is a resolved library bound to the endpoint and payer it was
// resolved for.
type Strategy struct {
	lz.Library
	SendLibrary lz.SendLibrary

	endpoint lz.Endpoint
	payer    solana.PublicKey
}

// RemainingAccountsFor returns the accounts that follow the bridge's fixed
// accounts in a send or quote instruction for the path.
func (s *Strategy) RemainingAccountsFor(ctx context.Context, path lz.Path) (solana.AccountMetaSlice, error) {
	return s.endpoint.GetSendAccountsForCPI(ctx, s.payer, path, s.Library)
}

// Resolve returns the strategy for the library configured for the OApp and
// destination. It fails with NoLibraryConfigured if there is none and with
// an [lz.UnsupportedVersionError] if the library's version is unknown.
func (r *Resolver) Resolve(ctx context.Context, payer, oapp solana.PublicKey, dstEid uint32) (*Strategy, error) {
	lib, err := r.endpoint.GetSendLibrary(ctx, oapp, dstEid)
	if err != nil {
		r.metrics.observe("error")
		return nil, errors.UnknownError.WithFormat("get send library: %w", err)
	}
	if lib == nil {
		r.metrics.observe("none")
		return nil, errors.NoLibraryConfigured.WithFormat("no send library configured for %v to %d", oapp, dstEid)
	}

	version, err := r.endpoint.GetMessageLibVersion(ctx, payer, lib.ProgramID)
	if err != nil {
		r.metrics.observe("error")
		return nil, errors.UnknownError.WithFormat("get message library version: %w", err)
	}

	var entry Entry
	var ok bool
	if version != nil {
		entry, ok = r.table.Lookup(*version)
	}
	if !ok {
		r.metrics.observe("unsupported")
		return nil, &lz.UnsupportedVersionError{Library: lib.ProgramID, Version: version}
	}

	s := new(Strategy)
	s.Library = entry.New(lib.ProgramID, *version)
	s.SendLibrary = *lib
	s.endpoint = r.endpoint
	s.payer = payer

	r.metrics.observe(s.Name())
	r.logger.Debug("Resolved message library", "library", s.Name(), "program", lib.ProgramID, "version", version, "default", lib.IsDefault)
	return s, nil
}
