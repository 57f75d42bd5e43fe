// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var txCmd = &cobra.Command{
	Use:   "tx [tx-hash] [sender-id]",
	Short: "Show the outcome of a transaction",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		outcome, err := newClient(cfg).Tx(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to fetch transaction: %w", err)
		}
		return printValue(cmd, txResponse{
			TxHash:  args[0],
			Success: !outcome.Status.Failed(),
			Error:   outcome.Failure(),
			Logs:    outcome.Logs(),
		})
	},
}

func init() {
	rootCmd.AddCommand(txCmd)
}
