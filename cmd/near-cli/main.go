// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "near-cli",
	Short: "CLI for signing and submitting NEAR transactions",
	Long:  `A CLI application for building, signing and submitting transactions and for querying a NEAR node.`,

	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentPreRunE = setupMetrics
	rootCmd.PersistentPostRunE = writeMetrics

	rootCmd.PersistentFlags().String("config", "", "Config file (default is $HOME/.near-cli/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (text or json)")
	rootCmd.PersistentFlags().String("endpoint", "", "Override the default endpoint")
	rootCmd.PersistentFlags().String("key-file", "", "Override the default key file")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Submit without asking for confirmation")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write request metrics to this file when the command finishes")
}

func main() {
	Execute()
}
