// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/ava-labs/nearsdk/api/jsonrpc"
	"github.com/ava-labs/nearsdk/chain"
	"github.com/ava-labs/nearsdk/utils"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Inspect accounts",
}

var accountViewCmd = &cobra.Command{
	Use:   "view [account-id]",
	Short: "Show the balance and keys of an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID := args[0]
		if err := chain.ValidateAccountID(accountID); err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		client := newClient(cfg)
		view, err := client.ViewAccount(cmd.Context(), accountID, cfg.Finality)
		if err != nil {
			return fmt.Errorf("failed to view account: %w", err)
		}
		keys, err := client.ViewAccessKeyList(cmd.Context(), accountID, cfg.Finality)
		if err != nil {
			return fmt.Errorf("failed to list access keys: %w", err)
		}
		return printValue(cmd, accountCmdResponse{
			AccountID: accountID,
			Account:   view,
			Keys:      keys.Keys,
		})
	},
}

type accountCmdResponse struct {
	AccountID string                  `json:"accountId"`
	Account   *jsonrpc.AccountView    `json:"account"`
	Keys      []jsonrpc.AccessKeyInfo `json:"keys"`
}

func (r accountCmdResponse) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Account: %s\n", r.AccountID)
	fmt.Fprintf(&b, "Balance: %s NEAR\n", formatYocto(r.Account.Amount))
	fmt.Fprintf(&b, "Locked: %s NEAR\n", formatYocto(r.Account.Locked))
	fmt.Fprintf(&b, "Storage used: %d bytes\n", r.Account.StorageUsage)
	fmt.Fprintf(&b, "Access keys: %d", len(r.Keys))
	for _, k := range r.Keys {
		fmt.Fprintf(&b, "\n  %s nonce=%d permission=%s", k.PublicKey, k.AccessKey.Nonce, k.AccessKey.Permission)
	}
	return b.String()
}

// formatYocto renders a decimal yoctoNEAR string as NEAR, or returns it
// unchanged when it does not parse.
func formatYocto(s string) string {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return s
	}
	return utils.FormatBalance(v)
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountViewCmd)
}
