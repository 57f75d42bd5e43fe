// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ava-labs/nearsdk/requester"
)

// Request metrics for the current command. Both are nil unless
// --metrics-file was passed.
var (
	metricsRegistry *prometheus.Registry
	clientMetrics   *requester.Metrics
)

func setupMetrics(cmd *cobra.Command, _ []string) error {
	metricsRegistry, clientMetrics = nil, nil

	path, err := cmd.Flags().GetString("metrics-file")
	if err != nil || path == "" {
		return err
	}
	registry := prometheus.NewRegistry()
	m, err := requester.NewMetrics(registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	metricsRegistry, clientMetrics = registry, m
	return nil
}

// writeMetrics dumps the request metrics in the Prometheus text format
// once the command has finished.
func writeMetrics(cmd *cobra.Command, _ []string) error {
	if metricsRegistry == nil {
		return nil
	}
	path, err := cmd.Flags().GetString("metrics-file")
	if err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, metricsRegistry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
