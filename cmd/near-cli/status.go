// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/nearsdk/api/jsonrpc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of the node",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		status, err := newClient(cfg).Status(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch status: %w", err)
		}
		return printValue(cmd, statusCmdResponse{status})
	},
}

type statusCmdResponse struct {
	*jsonrpc.StatusReply
}

func (r statusCmdResponse) String() string {
	return fmt.Sprintf(
		"Chain: %s\nVersion: %s\nLatest block: %d (%s)\nSyncing: %t",
		r.ChainID,
		r.Version.Version,
		r.SyncInfo.LatestBlockHeight,
		r.SyncInfo.LatestBlockHash,
		r.SyncInfo.Syncing,
	)
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
