// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ava-labs/nearsdk/requester"
)

const (
	Name = "near"

	statusPath = "status"
)

// JSONRPCClient talks to a single node over its JSON-RPC interface.
type JSONRPCClient struct {
	requester *requester.EndpointRequester
}

func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	return &JSONRPCClient{requester: requester.New(uri, Name)}
}

// NewJSONRPCClientWithTimeout bounds every request, including
// SendTxAndWait, by [timeout].
func NewJSONRPCClientWithTimeout(uri string, timeout time.Duration) *JSONRPCClient {
	cli := NewJSONRPCClient(uri)
	cli.requester.WithClient(&http.Client{Timeout: timeout})
	return cli
}

// WithMetrics records every request the client makes in [m].
func (cli *JSONRPCClient) WithMetrics(m *requester.Metrics) *JSONRPCClient {
	cli.requester.WithMetrics(m)
	return cli
}

func (cli *JSONRPCClient) URI() string { return cli.requester.URI() }

// SendTx broadcasts [signedTx] without waiting for it to execute and
// returns its hash.
func (cli *JSONRPCClient) SendTx(ctx context.Context, signedTx []byte) (string, error) {
	var hash string
	err := cli.requester.SendRequest(
		ctx,
		"broadcast_tx_async",
		[]string{base64.StdEncoding.EncodeToString(signedTx)},
		&hash,
	)
	return hash, err
}

// SendTxAndWait broadcasts [signedTx] and blocks until it has executed or
// [ctx] is done.
func (cli *JSONRPCClient) SendTxAndWait(ctx context.Context, signedTx []byte) (*FinalExecutionOutcome, error) {
	resp := new(FinalExecutionOutcome)
	if err := cli.requester.SendRequest(
		ctx,
		"broadcast_tx_commit",
		[]string{base64.StdEncoding.EncodeToString(signedTx)},
		resp,
	); err != nil {
		return nil, err
	}
	return resp, nil
}

func (cli *JSONRPCClient) Status(ctx context.Context) (*StatusReply, error) {
	resp := new(StatusReply)
	if err := cli.requester.Get(ctx, statusPath, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (cli *JSONRPCClient) Validators(ctx context.Context) (*EpochValidatorInfo, error) {
	resp := new(EpochValidatorInfo)
	if err := cli.requester.SendRequest(ctx, "validators", []interface{}{nil}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Query issues a raw "query" request and decodes the result into [reply].
func (cli *JSONRPCClient) Query(ctx context.Context, params map[string]interface{}, reply interface{}) error {
	return cli.requester.SendRequest(ctx, "query", params, reply)
}

func (cli *JSONRPCClient) ViewAccount(ctx context.Context, accountID string, finality string) (*AccountView, error) {
	resp := new(AccountView)
	if err := cli.Query(ctx, map[string]interface{}{
		"request_type": "view_account",
		"account_id":   accountID,
		"finality":     finality,
	}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (cli *JSONRPCClient) ViewAccessKey(
	ctx context.Context,
	accountID string,
	publicKey string,
	finality string,
) (*AccessKeyView, error) {
	resp := new(AccessKeyView)
	if err := cli.Query(ctx, map[string]interface{}{
		"request_type": "view_access_key",
		"account_id":   accountID,
		"public_key":   publicKey,
		"finality":     finality,
	}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (cli *JSONRPCClient) ViewAccessKeyList(ctx context.Context, accountID string, finality string) (*AccessKeyList, error) {
	resp := new(AccessKeyList)
	if err := cli.Query(ctx, map[string]interface{}{
		"request_type": "view_access_key_list",
		"account_id":   accountID,
		"finality":     finality,
	}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CallFunction runs a read-only contract method.
func (cli *JSONRPCClient) CallFunction(
	ctx context.Context,
	accountID string,
	methodName string,
	args []byte,
	finality string,
) (*CallResult, error) {
	resp := new(CallResult)
	if err := cli.Query(ctx, map[string]interface{}{
		"request_type": "call_function",
		"account_id":   accountID,
		"method_name":  methodName,
		"args_base64":  base64.StdEncoding.EncodeToString(args),
		"finality":     finality,
	}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Block fetches a block by height or hash.
func (cli *JSONRPCClient) Block(ctx context.Context, blockID interface{}) (*BlockView, error) {
	resp := new(BlockView)
	if err := cli.requester.SendRequest(ctx, "block", []interface{}{blockID}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// FinalBlock fetches the latest block with the given finality.
func (cli *JSONRPCClient) FinalBlock(ctx context.Context, finality string) (*BlockView, error) {
	resp := new(BlockView)
	if err := cli.requester.SendRequest(ctx, "block", map[string]string{"finality": finality}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (cli *JSONRPCClient) Chunk(ctx context.Context, chunkID string) (json.RawMessage, error) {
	var resp json.RawMessage
	err := cli.requester.SendRequest(ctx, "chunk", []string{chunkID}, &resp)
	return resp, err
}

// Tx looks up the outcome of [txHash] sent by [senderID].
func (cli *JSONRPCClient) Tx(ctx context.Context, txHash string, senderID string) (*FinalExecutionOutcome, error) {
	resp := new(FinalExecutionOutcome)
	if err := cli.requester.SendRequest(ctx, "tx", []string{txHash, senderID}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ChangesInBlock lists the state changes of a block, chosen by either
// [blockID] or [finality].
func (cli *JSONRPCClient) ChangesInBlock(ctx context.Context, blockID string, finality string) (json.RawMessage, error) {
	params := map[string]string{}
	if blockID != "" {
		params["block_id"] = blockID
	}
	if finality != "" {
		params["finality"] = finality
	}
	var resp json.RawMessage
	err := cli.requester.SendRequest(ctx, "EXPERIMENTAL_changes_in_block", params, &resp)
	return resp, err
}

func (cli *JSONRPCClient) ValidatorsOrdered(ctx context.Context, blockHash string) ([]ValidatorStake, error) {
	var resp []ValidatorStake
	err := cli.requester.SendRequest(ctx, "EXPERIMENTAL_validators_ordered", []string{blockHash}, &resp)
	return resp, err
}

type OutcomeType string

const (
	OutcomeTransaction OutcomeType = "transaction"
	OutcomeReceipt     OutcomeType = "receipt"
)

// LightClientProof proves the outcome of a transaction (by hash and
// sender) or a receipt (by id and receiver) against [lightClientHead].
func (cli *JSONRPCClient) LightClientProof(
	ctx context.Context,
	outcomeType OutcomeType,
	id string,
	accountID string,
	lightClientHead string,
) (json.RawMessage, error) {
	params := map[string]string{
		"type":              string(outcomeType),
		"light_client_head": lightClientHead,
	}
	if outcomeType == OutcomeReceipt {
		params["receipt_id"] = id
		params["receiver_id"] = accountID
	} else {
		params["type"] = string(OutcomeTransaction)
		params["transaction_hash"] = id
		params["sender_id"] = accountID
	}
	var resp json.RawMessage
	err := cli.requester.SendRequest(ctx, "light_client_proof", params, &resp)
	return resp, err
}

func (cli *JSONRPCClient) NextLightClientBlock(ctx context.Context, lastBlockHash string) (json.RawMessage, error) {
	var resp json.RawMessage
	err := cli.requester.SendRequest(ctx, "next_light_client_block", []string{lastBlockHash}, &resp)
	return resp, err
}

func (cli *JSONRPCClient) Receipt(ctx context.Context, receiptID string) (json.RawMessage, error) {
	var resp json.RawMessage
	err := cli.requester.SendRequest(ctx, "EXPERIMENTAL_receipt", []string{receiptID}, &resp)
	return resp, err
}
