// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/nearsdk/api/jsonrpc/jsonrpctest"
	"github.com/ava-labs/nearsdk/auth"
	"github.com/ava-labs/nearsdk/chain"
	"github.com/ava-labs/nearsdk/config"
	"github.com/ava-labs/nearsdk/crypto/ed25519"
)

var testBlockHash = bytes.Repeat([]byte{0x02}, 32)

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI with a config file in [dir] and returns stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	viper.Reset()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(dir, "config.yaml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeTestKey(t *testing.T, dir string) (*auth.ED25519Signer, string) {
	priv, err := ed25519.PrivateKeyFromSeed(bytes.Repeat([]byte{0x01}, ed25519.PrivateKeySeedLen))
	require.NoError(t, err)
	signer := auth.NewSigner("alice.near", auth.NewKeyPairFromPrivateKey(priv))
	path := filepath.Join(dir, "alice.json")
	require.NoError(t, auth.WriteKeyFile(path, signer))
	return signer, path
}

func TestEndpointSet(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	out, err := run(t, dir, "endpoint")
	require.NoError(err)
	require.Equal(config.DefaultEndpoint+"\n", out)

	_, err = run(t, dir, "endpoint", "set", "http://127.0.0.1:3030")
	require.NoError(err)

	cfg, err := config.Load(filepath.Join(dir, "config.yaml"))
	require.NoError(err)
	require.Equal("http://127.0.0.1:3030", cfg.Endpoint)

	out, err = run(t, dir, "endpoint", "-o", "json")
	require.NoError(err)
	require.JSONEq(`{"endpoint":"http://127.0.0.1:3030"}`, out)
}

func TestKeyShow(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	signer, keyFile := writeTestKey(t, dir)

	_, err := run(t, dir, "key", "show")
	require.ErrorIs(err, errMissingKeyFile)

	out, err := run(t, dir, "key", "show", "--key-file", keyFile, "-o", "json")
	require.NoError(err)
	var resp keyCmdResponse
	require.NoError(json.Unmarshal([]byte(out), &resp))
	require.Equal("alice.near", resp.AccountID)
	require.Equal(signer.KeyPair().EncodedPublicKey(), resp.PublicKey)
}

func TestSignTransfer(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	signer, keyFile := writeTestKey(t, dir)
	outFile := filepath.Join(dir, "transfer.tx")

	out, err := run(t, dir,
		"sign", "transfer", "bob.near", "1",
		"--nonce", "7",
		"--block-hash", base58.Encode(testBlockHash),
		"--key-file", keyFile,
		"--out", outFile,
		"-o", "json",
	)
	require.NoError(err)

	oneNear := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(24))
	expected, err := chain.SignPaymentTx(signer, "bob.near", oneNear, 7, testBlockHash)
	require.NoError(err)

	var resp signCmdResponse
	require.NoError(json.Unmarshal([]byte(out), &resp))
	require.Equal(base64.StdEncoding.EncodeToString(expected), resp.SignedTx)

	saved, err := os.ReadFile(outFile)
	require.NoError(err)
	require.Equal(expected, saved)

	_, err = run(t, dir,
		"sign", "transfer", "bob.near", "1",
		"--nonce", "7",
		"--block-hash", base58.Encode([]byte{1, 2, 3}),
		"--key-file", keyFile,
	)
	require.ErrorIs(err, chain.ErrInvalidInput)
}

func TestStatusAndSubmit(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	node := jsonrpctest.NewNode(t)
	node.SetStatus(map[string]interface{}{
		"chain_id":  "localnet",
		"sync_info": map[string]interface{}{"latest_block_hash": base58.Encode(testBlockHash), "latest_block_height": 12},
	})
	node.Reply("broadcast_tx_async", "txhash")

	out, err := run(t, dir, "status", "--endpoint", node.URL(), "-o", "json")
	require.NoError(err)
	var status map[string]interface{}
	require.NoError(json.Unmarshal([]byte(out), &status))
	require.Equal("localnet", status["chain_id"])

	out, err = run(t, dir, "submit", "0x0102", "--wait=false", "--endpoint", node.URL(), "-o", "json")
	require.NoError(err)
	require.JSONEq(`{"txHash":"txhash","success":true}`, out)
	require.JSONEq(`["AQI="]`, string(node.CallsTo("broadcast_tx_async")[0].Params))
}

func TestStatusMetricsFile(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	node := jsonrpctest.NewNode(t)
	node.SetStatus(map[string]interface{}{
		"chain_id":  "localnet",
		"sync_info": map[string]interface{}{"latest_block_hash": base58.Encode(testBlockHash), "latest_block_height": 12},
	})

	metricsFile := filepath.Join(dir, "metrics.prom")
	_, err := run(t, dir, "status", "--endpoint", node.URL(), "--metrics-file", metricsFile, "-o", "json")
	require.NoError(err)

	b, err := os.ReadFile(metricsFile)
	require.NoError(err)
	require.Contains(string(b), "requester_requests")
	require.Contains(string(b), "requester_latency_seconds")

	// Without the flag nothing is recorded.
	require.NoError(os.Remove(metricsFile))
	_, err = run(t, dir, "status", "--endpoint", node.URL(), "-o", "json")
	require.NoError(err)
	require.NoFileExists(metricsFile)
}

func TestSend(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	signer, keyFile := writeTestKey(t, dir)

	node := jsonrpctest.NewNode(t)
	node.SetStatus(map[string]interface{}{
		"sync_info": map[string]interface{}{"latest_block_hash": base58.Encode(testBlockHash)},
	})
	node.Handle("query", func(params json.RawMessage) (interface{}, error) {
		var p map[string]string
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, err
		}
		if p["request_type"] == "view_account" {
			return map[string]string{"amount": "5000000000000000000000000", "locked": "0"}, nil
		}
		return map[string]interface{}{"nonce": 4, "permission": "FullAccess"}, nil
	})
	node.Reply("broadcast_tx_commit", map[string]interface{}{
		"status":              map[string]string{"SuccessValue": ""},
		"transaction_outcome": map[string]interface{}{"id": "sent-tx", "outcome": map[string]interface{}{"logs": []string{}}},
		"receipts_outcome":    []interface{}{},
	})

	out, err := run(t, dir, "send", "bob.near", "0.5", "-y", "--endpoint", node.URL(), "--key-file", keyFile, "-o", "json")
	require.NoError(err)
	require.JSONEq(`{"txHash":"sent-tx","success":true}`, out)

	halfNear := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(24))
	halfNear.Div(halfNear, uint256.NewInt(2))
	expected, err := chain.SignPaymentTx(signer, "bob.near", halfNear, 5, testBlockHash)
	require.NoError(err)
	calls := node.CallsTo("broadcast_tx_commit")
	require.Len(calls, 1)
	require.JSONEq(`["`+base64.StdEncoding.EncodeToString(expected)+`"]`, string(calls[0].Params))

	_, err = run(t, dir, "send", "Bob", "1", "-y", "--endpoint", node.URL(), "--key-file", keyFile)
	require.ErrorIs(err, chain.ErrInvalidAccountID)
}
