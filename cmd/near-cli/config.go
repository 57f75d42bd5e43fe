// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ava-labs/nearsdk/api/jsonrpc"
	"github.com/ava-labs/nearsdk/auth"
	"github.com/ava-labs/nearsdk/cli/prompt"
	"github.com/ava-labs/nearsdk/codec"
	"github.com/ava-labs/nearsdk/config"
	"github.com/ava-labs/nearsdk/utils"
)

var errMissingKeyFile = errors.New("no key file configured, run \"key generate\" or pass --key-file")

func initConfig() {
	configFile, _ := rootCmd.PersistentFlags().GetString("config")
	if configFile == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error getting home directory:", err)
			os.Exit(1)
		}
		configFile = filepath.Join(homeDir, ".near-cli", "config.yaml")
	}

	if _, err := utils.InitSubDirectory(filepath.Dir(configFile), ""); err != nil {
		fmt.Fprintln(os.Stderr, "Error creating config directory:", err)
		os.Exit(1)
	}
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error creating config file:", err)
			os.Exit(1)
		}
		_ = f.Close()
	}

	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "Error reading config:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(viper.ConfigFileUsed())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if endpoint, _ := getConfigValue(cmd, "endpoint", false); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if keyFile, _ := getConfigValue(cmd, "key_file", false); keyFile != "" {
		cfg.KeyFile = keyFile
	}
	return cfg, nil
}

func newClient(cfg *config.Config) *jsonrpc.JSONRPCClient {
	return jsonrpc.NewJSONRPCClientWithTimeout(cfg.Endpoint, cfg.RequestTimeout).WithMetrics(clientMetrics)
}

func newLogger(cfg *config.Config) (logging.Logger, error) {
	return cfg.NewLogger("near-cli")
}

func loadSigner(cfg *config.Config) (*auth.ED25519Signer, error) {
	if cfg.KeyFile == "" {
		return nil, errMissingKeyFile
	}
	return auth.SignerFromJSONFile(cfg.KeyFile)
}

// confirm asks before anything is submitted unless --yes was passed.
func confirm(cmd *cobra.Command) (bool, error) {
	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return false, err
	}
	if yes {
		return true, nil
	}
	return prompt.Continue()
}

func isJSONOutputRequested(cmd *cobra.Command) (bool, error) {
	output, err := getConfigValue(cmd, "output", false)
	if err != nil {
		return false, fmt.Errorf("failed to get output format: %w", err)
	}
	return strings.ToLower(output) == "json", nil
}

func printValue(cmd *cobra.Command, v fmt.Stringer) error {
	isJSON, err := isJSONOutputRequested(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON {
		jsonBytes, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(jsonBytes))
		return nil
	}
	fmt.Fprintln(out, v.String())
	return nil
}

// getConfigValue checks the flag named like [key], with dashes for
// underscores, before the config file.
func getConfigValue(cmd *cobra.Command, key string, required bool) (string, error) {
	flag := strings.ReplaceAll(key, "_", "-")
	if value, err := cmd.Flags().GetString(flag); err == nil && value != "" {
		return value, nil
	}

	if value := viper.GetString(key); value != "" {
		return value, nil
	}

	if required {
		return "", fmt.Errorf("required value for %s not found", key)
	}

	return "", nil
}

func setConfigValue(key, value string) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

// decodeFileBase64OrHex accepts a path, 0x-prefixed hex or base64.
func decodeFileBase64OrHex(input string) ([]byte, error) {
	if b, err := utils.LoadBytes(input, -1); err == nil {
		return b, nil
	}
	if strings.HasPrefix(input, "0x") {
		return codec.LoadHex(input, -1)
	}
	if decoded, err := base64.StdEncoding.DecodeString(input); err == nil {
		return decoded, nil
	}
	return nil, errors.New("unable to read input as a file path, or decode it as hex or base64")
}
