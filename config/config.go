// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/nearsdk/api/jsonrpc"
)

const (
	DefaultEndpoint       = "https://rpc.testnet.near.org"
	DefaultRequestTimeout = 30 * time.Second
	DefaultTxTimeout      = 10 * time.Second
	DefaultLogLevel       = "info"
	DefaultLogMaxSizeMB   = 8
	DefaultLogMaxBackups  = 3
)

var (
	ErrMissingEndpoint = errors.New("endpoint is required")
	ErrInvalidFinality = errors.New("invalid finality")
	ErrInvalidTimeout  = errors.New("timeout must be positive")
)

// Config is read from the CLI config file. Keys are lower case so the
// file survives being rewritten by viper.
type Config struct {
	Endpoint       string        `yaml:"endpoint" json:"endpoint"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"requestTimeout"`
	TxTimeout      time.Duration `yaml:"tx_timeout" json:"txTimeout"`
	Finality       string        `yaml:"finality" json:"finality"`
	KeyFile        string        `yaml:"key_file" json:"keyFile"`

	LogLevelName  string `yaml:"log_level" json:"logLevel"`
	LogFile       string `yaml:"log_file" json:"logFile"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb" json:"logMaxSizeMB"`
	LogMaxBackups int    `yaml:"log_max_backups" json:"logMaxBackups"`

	// Default CLI output format, text or json.
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Endpoint:       DefaultEndpoint,
		RequestTimeout: DefaultRequestTimeout,
		TxTimeout:      DefaultTxTimeout,
		Finality:       jsonrpc.FinalityFinal,
		LogLevelName:   DefaultLogLevel,
		LogMaxSizeMB:   DefaultLogMaxSizeMB,
		LogMaxBackups:  DefaultLogMaxBackups,
	}
}

// Load overlays the YAML file at [path] onto the defaults. Unknown keys
// are rejected. A missing or empty file yields the defaults.
func Load(path string) (*Config, error) {
	c := NewDefaultConfig()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.UnmarshalStrict(b, c); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s", err, path)
	}
	if err := c.Verify(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Verify() error {
	if c.Endpoint == "" {
		return ErrMissingEndpoint
	}
	switch c.Finality {
	case jsonrpc.FinalityFinal, jsonrpc.FinalityOptimistic:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFinality, c.Finality)
	}
	if c.RequestTimeout <= 0 || c.TxTimeout <= 0 {
		return ErrInvalidTimeout
	}
	_, err := c.LogLevel()
	return err
}

func (c *Config) LogLevel() (logging.Level, error) {
	return logging.ToLevel(c.LogLevelName)
}
