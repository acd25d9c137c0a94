// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gitlab.com/accumulatenetwork/portfolio-bridge/internal/config"
	"gitlab.com/accumulatenetwork/portfolio-bridge/internal/logging"
	. "gitlab.com/accumulatenetwork/portfolio-bridge/internal/util/cmd"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/endpoint"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/ledger"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/lz"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/msglib"
)

var cmdMain = &cobra.Command{
	Use:               "bridge",
	Short:             "Portfolio bridge client",
	Run:               printUsageAndExit1,
	PersistentPostRun: writeMetrics,
}

var flagMain struct {
	Config    string
	EnvFiles  []string
	URL       string
	Keypair   string
	LogLevel  string
	LogFormat string
	Metrics   string
	Timeout   time.Duration
	DryRun    bool
	Debug     bool
}

func init() {
	flags := cmdMain.PersistentFlags()
	flags.StringVarP(&flagMain.Config, "config", "c", os.Getenv("BRIDGE_CONFIG"), "Configuration file (TOML, YAML, or JSON)")
	flags.StringSliceVar(&flagMain.EnvFiles, "env-file", []string{".env"}, "Files of environment variables referenced by the configuration")
	flags.StringVarP(&flagMain.URL, "url", "u", "", "RPC endpoint")
	flags.StringVarP(&flagMain.Keypair, "keypair", "k", "", "Payer keypair file")
	flags.StringVar(&flagMain.LogLevel, "log-level", "", "Log level, for example error;msglib=debug")
	flags.StringVar(&flagMain.LogFormat, "log-format", "", "Log format (text, plain, or json)")
	flags.StringVar(&flagMain.Metrics, "metrics-textfile", "", "Write metrics to a node-exporter textfile")
	flags.DurationVar(&flagMain.Timeout, "timeout", 0, "Request timeout")
	flags.BoolVarP(&flagMain.DryRun, "dry-run", "n", false, "Print instructions instead of submitting them")
	flags.BoolVar(&flagMain.Debug, "debug", false, "Print errors with their call stacks")
}

func main() {
	_ = cmdMain.Execute()
}

func printUsageAndExit1(cmd *cobra.Command, args []string) {
	_ = cmd.Usage()
	os.Exit(1)
}

// env is the state shared by commands.
type env struct {
	Config   *config.Config
	Logger   logging.Logger
	Client   *ledger.Client
	Bridge   *bridge.Bridge
	Registry *prometheus.Registry
}

var current *env

func setup() *env {
	if current != nil {
		return current
	}
	Debug = flagMain.Debug

	loader := config.NewLoader()
	flags := cmdMain.PersistentFlags()
	for key, flag := range map[string]string{
		"rpc.url":             "url",
		"rpc.request-timeout": "timeout",
		"keypair":             "keypair",
		"logging.level":       "log-level",
		"logging.format":      "log-format",
		"metrics.textfile":    "metrics-textfile",
	} {
		Check(loader.BindFlag(key, flags.Lookup(flag)))
	}

	cfg, err := loader.Load(flagMain.Config, flagMain.EnvFiles...)
	Checkf(err, "load configuration")
	Checkf(cfg.Validate(), "invalid configuration")

	e := new(env)
	e.Config = cfg
	e.Logger, err = logging.NewLogger(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	Check(err)

	var ledgerMetrics *ledger.Metrics
	var msglibMetrics *msglib.Metrics
	if cfg.Metrics.Textfile != "" {
		e.Registry = prometheus.NewRegistry()
		ledgerMetrics = ledger.NewMetrics(e.Registry)
		msglibMetrics = msglib.NewMetrics(e.Registry)
	}

	e.Client = ledger.NewClient(ledger.ClientOptions{
		URL:        cfg.RPC.URL,
		Commitment: rpc.CommitmentType(cfg.RPC.Commitment),
		Metrics:    ledgerMetrics,
		Logger:     e.Logger,
	})

	var blocked, priceFeed solana.PublicKey
	if cfg.Programs.BlockedLibrary != "" {
		blocked = solana.MustPublicKeyFromBase58(cfg.Programs.BlockedLibrary)
	}
	if cfg.Programs.PriceFeed != "" {
		priceFeed = solana.MustPublicKeyFromBase58(cfg.Programs.PriceFeed)
	}

	e.Bridge = bridge.New(solana.MustPublicKeyFromBase58(cfg.Programs.Bridge), bridge.Options{
		Ledger: e.Client,
		SrcEid: cfg.SrcEid,
		NewEndpoint: func(program solana.PublicKey) lz.Endpoint {
			return endpoint.New(program, endpoint.Options{
				Ledger:         e.Client,
				BlockedLibrary: blocked,
				Logger:         e.Logger,
			})
		},
		PriceFeed: priceFeed,
		Metrics:   msglibMetrics,
		Logger:    e.Logger,
	})

	current = e
	return e
}

// Context returns a context bounded by the request timeout.
func (e *env) Context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	if d := e.Config.RPC.RequestTimeout.Get(); d > 0 {
		return context.WithTimeout(cmd.Context(), d)
	}
	return context.WithCancel(cmd.Context())
}

func (e *env) Payer() solana.PrivateKey {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(e.Config.KeypairPath())
	Checkf(err, "load keypair %s", e.Config.Keypair)
	return key
}

func writeMetrics(*cobra.Command, []string) {
	if current == nil || current.Registry == nil {
		return
	}
	err := prometheus.WriteToTextfile(current.Config.Metrics.Textfile, current.Registry)
	if err != nil {
		Warnf("write metrics: %v", err)
	}
}

func parseEid(s string) uint32 {
	v, err := strconv.ParseUint(s, 10, 32)
	Checkf(err, "invalid endpoint id %q", s)
	return uint32(v)
}
