// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package config loads the bridge client's configuration.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gitlab.com/accumulatenetwork/portfolio-bridge/internal/logging"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/bridge"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables that override
// configuration values, for example BRIDGE_RPC_URL.
const EnvPrefix = "BRIDGE"

const DevnetRPC = "https://api.devnet.solana.com"

// LogLevel defines the default and per-module log level.
type LogLevel struct {
	Default string
	Modules [][2]string
}

// Parse parses a string such as "error;bridge=info" into a LogLevel.
func (l LogLevel) Parse(s string) LogLevel {
	for _, s := range strings.Split(s, ";") {
		s := strings.SplitN(s, "=", 2)
		if len(s) == 1 {
			l.Default = s[0]
		} else {
			l.Modules = append(l.Modules, *(*[2]string)(s))
		}
	}
	return l
}

func (l LogLevel) SetDefault(level string) LogLevel {
	l.Default = level
	return l
}

func (l LogLevel) SetModule(module, level string) LogLevel {
	l.Modules = append(l.Modules, [2]string{module, level})
	return l
}

// String converts the log level into a string, for example
// "error;bridge=info".
func (l LogLevel) String() string {
	s := new(strings.Builder)
	s.WriteString(l.Default)
	for _, m := range l.Modules {
		fmt.Fprintf(s, ";%s=%s", m[0], m[1])
	}
	return s.String()
}

var DefaultLogLevels = LogLevel{}.
	SetDefault("error").
	SetModule("bridge", "info").
	SetModule("ledger", "info").
	// SetModule("msglib", "debug").
	// SetModule("endpoint", "debug").
	String()

// Duration is a [time.Duration] that is encoded as a string such as "30s".
type Duration time.Duration

func (d Duration) Get() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

type Config struct {
	RPC      RPC               `toml:"rpc" yaml:"rpc" json:"rpc"`
	Programs Programs          `toml:"programs" yaml:"programs" json:"programs"`
	SrcEid   uint32            `toml:"src-eid" yaml:"src-eid" json:"src-eid" validate:"required"`
	Keypair  string            `toml:"keypair" yaml:"keypair" json:"keypair"`
	Logging  Logging           `toml:"logging" yaml:"logging" json:"logging"`
	Peers    map[string]string `toml:"peers" yaml:"peers" json:"peers"`
	Init     Init              `toml:"init" yaml:"init" json:"init"`
	Path     Path              `toml:"path" yaml:"path" json:"path"`
	Metrics  Metrics           `toml:"metrics" yaml:"metrics" json:"metrics"`
}

type RPC struct {
	URL            string   `toml:"url" yaml:"url" json:"url" validate:"required,url"`
	Commitment     string   `toml:"commitment" yaml:"commitment" json:"commitment" validate:"oneof=processed confirmed finalized"`
	RequestTimeout Duration `toml:"request-timeout" yaml:"request-timeout" json:"request-timeout" validate:"gte=0"`
	ConfirmTimeout Duration `toml:"confirm-timeout" yaml:"confirm-timeout" json:"confirm-timeout" validate:"gte=0"`
}

type Programs struct {
	Bridge         string `toml:"bridge" yaml:"bridge" json:"bridge" validate:"required,base58-key"`
	Endpoint       string `toml:"endpoint" yaml:"endpoint" json:"endpoint" validate:"required,base58-key"`
	PriceFeed      string `toml:"price-feed,omitempty" yaml:"price-feed,omitempty" json:"price-feed,omitempty" validate:"base58-key"`
	BlockedLibrary string `toml:"blocked-library,omitempty" yaml:"blocked-library,omitempty" json:"blocked-library,omitempty" validate:"base58-key"`
	ULN            string `toml:"uln" yaml:"uln" json:"uln" validate:"required,base58-key"`
	Executor       string `toml:"executor" yaml:"executor" json:"executor" validate:"required,base58-key"`
}

type Logging struct {
	Level  string `toml:"level" yaml:"level" json:"level"`
	Format string `toml:"format" yaml:"format" json:"format"`
}

type Init struct {
	Portfolio      string `toml:"portfolio" yaml:"portfolio" json:"portfolio" validate:"required,base58-key"`
	MainnetRFQ     string `toml:"mainnet-rfq" yaml:"mainnet-rfq" json:"mainnet-rfq" validate:"required,base58-key"`
	DefaultChainID uint32 `toml:"default-chain-id" yaml:"default-chain-id" json:"default-chain-id"`
}

// Path is the message path configuration applied to every configured peer.
// The libraries and executor are the ULN and executor programs.
type Path struct {
	MaxMessageSize uint32 `toml:"max-message-size" yaml:"max-message-size" json:"max-message-size" validate:"required"`
}

type Metrics struct {
	// Textfile is the path of a node-exporter textfile the CLI writes its
	// metrics to. Empty disables metrics.
	Textfile string `toml:"textfile,omitempty" yaml:"textfile,omitempty" json:"textfile,omitempty"`
}

// Default returns the devnet configuration.
func Default() *Config {
	c := new(Config)
	c.RPC.URL = DevnetRPC
	c.RPC.Commitment = string(rpc.CommitmentConfirmed)
	c.RPC.RequestTimeout = Duration(30 * time.Second)
	c.RPC.ConfirmTimeout = Duration(time.Minute)
	c.Programs.Bridge = "DD12vMyLdwszDCAzLhsUPwBmzJXv611dUCPhqwpZQYG4"
	c.Programs.Endpoint = "76y77prsiCMvXMjuoZ5VRrhG5qYBrUMYTE5WgHqgjEn6"
	c.Programs.ULN = "7a4WjyR8VZ7yZz5XJAKm39BUGn5iT9CKcv2pmG9tdXVH"
	c.Programs.Executor = "6doghB248px58JSSwG4qejQ46kFMW4AMj7vzJnWZHNZn"
	c.SrcEid = 40168
	c.Keypair = "~/.config/solana/id.json"
	c.Logging.Level = DefaultLogLevels
	c.Logging.Format = "text"
	c.Peers = map[string]string{}
	c.Init.Portfolio = "CUmdZmnaTZh8g7oFPbQxh3GHPtSVz9Wyw1RXxmUeUxeQ"
	c.Init.MainnetRFQ = "CUmdZmnaTZh8g7oFPbQxh3GHPtSVz9Wyw1RXxmUeUxeQ"
	c.Init.DefaultChainID = 12
	c.Path.MaxMessageSize = 10000
	return c
}

// NewValidator returns a validator for configuration structs. Fields are
// named by their TOML keys. The base58-key tag accepts an empty string or a
// base58 public key.
func NewValidator() (*validator.Validate, error) {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		return name
	})

	err := v.RegisterValidation("base58-key", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			panic(fmt.Errorf("%q is not a string", fl.FieldName()))
		}

		s := fl.Field().String()
		if len(s) == 0 {
			return true
		}
		_, err := solana.PublicKeyFromBase58(s)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	v, err := NewValidator()
	if err != nil {
		return errors.InternalError.Wrap(err)
	}

	var errs []error
	var invalid validator.ValidationErrors
	err = v.Struct(c)
	switch {
	case err == nil:
	case errors.As(err, &invalid):
		for _, e := range invalid {
			_, field, _ := strings.Cut(e.Namespace(), ".")
			errs = append(errs, errors.BadRequest.WithFormat("%s: invalid value %v (%s)", field, e.Value(), e.Tag()))
		}
	default:
		return errors.InternalError.Wrap(err)
	}

	if _, err := logging.NewLogger(io.Discard, c.Logging.Level, c.Logging.Format); err != nil {
		errs = append(errs, errors.BadRequest.WithFormat("logging: %w", err))
	}
	if _, err := c.PeerTable(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// PeerTable parses the configured peers.
func (c *Config) PeerTable() (map[uint32][32]byte, error) {
	var errs []error
	peers := make(map[uint32][32]byte, len(c.Peers))
	for eid, s := range c.Peers {
		id, err := strconv.ParseUint(eid, 10, 32)
		if err != nil {
			errs = append(errs, errors.BadRequest.WithFormat("peers: invalid endpoint id %q", eid))
			continue
		}
		peer, err := bridge.ParsePeer(s)
		if err != nil {
			errs = append(errs, errors.BadRequest.WithFormat("peers.%s: %w", eid, err))
			continue
		}
		peers[uint32(id)] = peer
	}
	return peers, errors.Join(errs...)
}

// PeerEids returns the configured endpoint ids in ascending order. Invalid
// ids are skipped.
func (c *Config) PeerEids() []uint32 {
	var eids []uint32
	for eid := range c.Peers {
		id, err := strconv.ParseUint(eid, 10, 32)
		if err == nil {
			eids = append(eids, uint32(id))
		}
	}
	slices.Sort(eids)
	return eids
}

// KeypairPath returns the keypair path with a leading ~ expanded.
func (c *Config) KeypairPath() string {
	if !strings.HasPrefix(c.Keypair, "~/") {
		return c.Keypair
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return c.Keypair
	}
	return filepath.Join(home, c.Keypair[2:])
}

// Loader loads configuration files and applies overrides from flags and
// environment variables, in that order of precedence.
type Loader struct {
	v *viper.Viper
}

var overridable = []string{
	"rpc.url",
	"rpc.commitment",
	"rpc.request-timeout",
	"rpc.confirm-timeout",
	"programs.bridge",
	"programs.endpoint",
	"programs.price-feed",
	"programs.blocked-library",
	"programs.uln",
	"programs.executor",
	"src-eid",
	"keypair",
	"logging.level",
	"logging.format",
	"init.portfolio",
	"init.mainnet-rfq",
	"init.default-chain-id",
	"path.max-message-size",
	"metrics.textfile",
}

func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for _, key := range overridable {
		_ = v.BindEnv(key)
	}
	return &Loader{v}
}

// BindFlag overrides the value at key with the flag, if it is set.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	return l.v.BindPFlag(key, flag)
}

// Load reads the file, if not empty, over the defaults and applies
// overrides. Before decoding, ${VAR} references in the file are expanded
// from the process environment and the env files.
func (l *Loader) Load(file string, envFiles ...string) (*Config, error) {
	env, err := readEnv(envFiles)
	if err != nil {
		return nil, err
	}

	c := Default()
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.UnknownError.WithFormat("read config: %w", err)
		}

		b = []byte(os.Expand(string(b), func(s string) string {
			if v, ok := os.LookupEnv(s); ok {
				return v
			}
			return env[s]
		}))

		err = decode(file, b, c)
		if err != nil {
			return nil, err
		}
	}

	err = l.override(c, env)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func readEnv(files []string) (map[string]string, error) {
	env := map[string]string{}
	for _, file := range files {
		_, err := os.Stat(file)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		m, err := godotenv.Read(file)
		if err != nil {
			return nil, errors.BadRequest.WithFormat("read %s: %w", file, err)
		}
		for k, v := range m {
			env[k] = v
		}
	}
	return env, nil
}

// Format returns the encoding of a configuration file.
func Format(file string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".toml", ".tml":
		return "toml", nil
	case ".yaml", ".yml":
		return "yaml", nil
	case ".json":
		return "json", nil
	default:
		return "", errors.BadRequest.WithFormat("unsupported config file type %q", ext)
	}
}

func decode(file string, b []byte, c *Config) error {
	format, err := Format(file)
	if err != nil {
		return err
	}

	switch format {
	case "toml":
		err = toml.Unmarshal(b, c)
	case "yaml":
		err = yaml.Unmarshal(b, c)
	case "json":
		err = json.Unmarshal(b, c)
	}
	if err != nil {
		return errors.EncodingError.WithFormat("decode %s: %w", file, err)
	}
	return nil
}

// Store writes the configuration to the file, encoded according to its
// extension.
func Store(c *Config, file string) error {
	format, err := Format(file)
	if err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	switch format {
	case "toml":
		err = toml.NewEncoder(buf).Encode(c)
	case "yaml":
		err = yaml.NewEncoder(buf).Encode(c)
	case "json":
		enc := json.NewEncoder(buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(c)
	}
	if err != nil {
		return errors.EncodingError.WithFormat("encode %s: %w", file, err)
	}

	return os.WriteFile(file, buf.Bytes(), 0600)
}

func (l *Loader) override(c *Config, env map[string]string) error {
	str := func(key string, ptr *string) {
		if l.isSet(key, env) {
			*ptr = l.get(key, env)
		}
	}
	u32 := func(key string, ptr *uint32) error {
		if !l.isSet(key, env) {
			return nil
		}
		v, err := strconv.ParseUint(l.get(key, env), 10, 32)
		if err != nil {
			return errors.BadRequest.WithFormat("%s: %w", key, err)
		}
		*ptr = uint32(v)
		return nil
	}
	dur := func(key string, ptr *Duration) error {
		if !l.isSet(key, env) {
			return nil
		}
		return ptr.UnmarshalText([]byte(l.get(key, env)))
	}

	str("rpc.url", &c.RPC.URL)
	str("rpc.commitment", &c.RPC.Commitment)
	str("programs.bridge", &c.Programs.Bridge)
	str("programs.endpoint", &c.Programs.Endpoint)
	str("programs.price-feed", &c.Programs.PriceFeed)
	str("programs.blocked-library", &c.Programs.BlockedLibrary)
	str("programs.uln", &c.Programs.ULN)
	str("programs.executor", &c.Programs.Executor)
	str("keypair", &c.Keypair)
	str("logging.level", &c.Logging.Level)
	str("logging.format", &c.Logging.Format)
	str("init.portfolio", &c.Init.Portfolio)
	str("init.mainnet-rfq", &c.Init.MainnetRFQ)
	str("metrics.textfile", &c.Metrics.Textfile)
	return errors.Join(
		u32("src-eid", &c.SrcEid),
		u32("init.default-chain-id", &c.Init.DefaultChainID),
		u32("path.max-message-size", &c.Path.MaxMessageSize),
		dur("rpc.request-timeout", &c.RPC.RequestTimeout),
		dur("rpc.confirm-timeout", &c.RPC.ConfirmTimeout),
	)
}

func (l *Loader) isSet(key string, env map[string]string) bool {
	if l.v.IsSet(key) {
		return true
	}
	_, ok := env[l.envName(key)]
	return ok
}

func (l *Loader) get(key string, env map[string]string) string {
	if l.v.IsSet(key) {
		return l.v.GetString(key)
	}
	return env[l.envName(key)]
}

func (l *Loader) envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}
