// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ava-labs/nearsdk/auth"
	"github.com/ava-labs/nearsdk/chain"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage keys",
}

var keyGenerateCmd = &cobra.Command{
	Use:   "generate [account-id]",
	Short: "Generate a key pair for an account and make it the default key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID := args[0]
		if err := chain.ValidateAccountID(accountID); err != nil {
			return err
		}
		path, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}
		if path == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			path = filepath.Join(homeDir, ".near-cli", "keys", accountID+".json")
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("key file %s already exists", path)
		}

		kp, err := auth.GenerateKeyPair()
		if err != nil {
			return fmt.Errorf("failed to generate key: %w", err)
		}
		signer := auth.NewSigner(accountID, kp)
		if err := auth.WriteKeyFile(path, signer); err != nil {
			return fmt.Errorf("failed to write key file: %w", err)
		}
		if err := setConfigValue("key_file", path); err != nil {
			return fmt.Errorf("failed to update config: %w", err)
		}
		return printValue(cmd, keyCmdResponse{
			AccountID: accountID,
			PublicKey: kp.EncodedPublicKey(),
			KeyFile:   path,
		})
	},
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the default key",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		signer, err := loadSigner(cfg)
		if err != nil {
			return err
		}
		return printValue(cmd, keyCmdResponse{
			AccountID: signer.AccountID(),
			PublicKey: signer.KeyPair().EncodedPublicKey(),
			KeyFile:   cfg.KeyFile,
		})
	},
}

type keyCmdResponse struct {
	AccountID string `json:"accountId"`
	PublicKey string `json:"publicKey"`
	KeyFile   string `json:"keyFile"`
}

func (r keyCmdResponse) String() string {
	return fmt.Sprintf("Account: %s\nPublic key: %s\nKey file: %s", r.AccountID, r.PublicKey, r.KeyFile)
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keyGenerateCmd, keyShowCmd)
	keyGenerateCmd.Flags().String("out", "", "Where to write the key file (default is $HOME/.near-cli/keys/<account-id>.json)")
}
