// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	FinalityFinal      = "final"
	FinalityOptimistic = "optimistic"
)

var (
	ErrNoSuccessValue = errors.New("outcome has no success value")
	ErrInvalidByte    = errors.New("byte out of range")
)

type SyncInfo struct {
	LatestBlockHash   string `json:"latest_block_hash"`
	LatestBlockHeight uint64 `json:"latest_block_height"`
	LatestBlockTime   string `json:"latest_block_time"`
	LatestStateRoot   string `json:"latest_state_root"`
	Syncing           bool   `json:"syncing"`
}

type NodeVersion struct {
	Version string `json:"version"`
	Build   string `json:"build"`
}

type StatusReply struct {
	ChainID         string      `json:"chain_id"`
	ProtocolVersion uint32      `json:"protocol_version"`
	RPCAddr         string      `json:"rpc_addr"`
	SyncInfo        SyncInfo    `json:"sync_info"`
	Version         NodeVersion `json:"version"`
	Validators      []struct {
		AccountID string `json:"account_id"`
	} `json:"validators"`
}

type AccountView struct {
	Amount        string `json:"amount"`
	Locked        string `json:"locked"`
	CodeHash      string `json:"code_hash"`
	StorageUsage  uint64 `json:"storage_usage"`
	StoragePaidAt uint64 `json:"storage_paid_at"`
	BlockHeight   uint64 `json:"block_height"`
	BlockHash     string `json:"block_hash"`
}

// AccessKeyView is an access key as reported by a node. Permission is
// either the string "FullAccess" or a FunctionCall object.
type AccessKeyView struct {
	Nonce       uint64          `json:"nonce"`
	Permission  json.RawMessage `json:"permission"`
	BlockHeight uint64          `json:"block_height,omitempty"`
	BlockHash   string          `json:"block_hash,omitempty"`
}

type AccessKeyInfo struct {
	PublicKey string        `json:"public_key"`
	AccessKey AccessKeyView `json:"access_key"`
}

type AccessKeyList struct {
	Keys        []AccessKeyInfo `json:"keys"`
	BlockHeight uint64          `json:"block_height"`
	BlockHash   string          `json:"block_hash"`
}

// ByteArray decodes the JSON array of numbers nodes use for raw bytes.
type ByteArray []byte

func (b *ByteArray) UnmarshalJSON(data []byte) error {
	var ints []uint16
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}
	out := make([]byte, len(ints))
	for i, v := range ints {
		if v > 0xff {
			return fmt.Errorf("%w: %d", ErrInvalidByte, v)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}

func (b ByteArray) MarshalJSON() ([]byte, error) {
	ints := make([]uint16, len(b))
	for i, v := range b {
		ints[i] = uint16(v)
	}
	return json.Marshal(ints)
}

type CallResult struct {
	Result      ByteArray `json:"result"`
	Logs        []string  `json:"logs"`
	BlockHeight uint64    `json:"block_height"`
	BlockHash   string    `json:"block_hash"`
	Error       string    `json:"error,omitempty"`
}

type BlockHeader struct {
	Height    uint64 `json:"height"`
	EpochID   string `json:"epoch_id"`
	Hash      string `json:"hash"`
	PrevHash  string `json:"prev_hash"`
	Timestamp uint64 `json:"timestamp"`
	GasPrice  string `json:"gas_price"`
}

type BlockView struct {
	Author string            `json:"author"`
	Header BlockHeader       `json:"header"`
	Chunks []json.RawMessage `json:"chunks"`
}

type ValidatorStake struct {
	AccountID string `json:"account_id"`
	PublicKey string `json:"public_key"`
	Stake     string `json:"stake"`
}

type EpochValidatorInfo struct {
	CurrentValidators []ValidatorStake `json:"current_validators"`
	NextValidators    []ValidatorStake `json:"next_validators"`
	EpochStartHeight  uint64           `json:"epoch_start_height"`
}

// ExecutionStatus is the outcome of a transaction or receipt. Exactly
// one of the fields is set.
type ExecutionStatus struct {
	SuccessValue     *string
	SuccessReceiptID *string
	Failure          json.RawMessage
	// Unknown, Pending and other bare string statuses.
	Other string
}

func (s *ExecutionStatus) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &s.Other)
	}
	var m struct {
		SuccessValue     *string         `json:"SuccessValue"`
		SuccessReceiptID *string         `json:"SuccessReceiptId"`
		Failure          json.RawMessage `json:"Failure"`
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	s.SuccessValue = m.SuccessValue
	s.SuccessReceiptID = m.SuccessReceiptID
	s.Failure = m.Failure
	return nil
}

func (s ExecutionStatus) MarshalJSON() ([]byte, error) {
	switch {
	case s.SuccessValue != nil:
		return json.Marshal(map[string]string{"SuccessValue": *s.SuccessValue})
	case s.SuccessReceiptID != nil:
		return json.Marshal(map[string]string{"SuccessReceiptId": *s.SuccessReceiptID})
	case s.Failure != nil:
		return json.Marshal(map[string]json.RawMessage{"Failure": s.Failure})
	default:
		return json.Marshal(s.Other)
	}
}

func (s ExecutionStatus) Failed() bool { return len(s.Failure) > 0 }

// Value decodes the base64 SuccessValue.
func (s ExecutionStatus) Value() ([]byte, error) {
	if s.SuccessValue == nil {
		return nil, ErrNoSuccessValue
	}
	return base64.StdEncoding.DecodeString(*s.SuccessValue)
}

type ExecutionOutcome struct {
	Logs        []string        `json:"logs"`
	ReceiptIDs  []string        `json:"receipt_ids"`
	GasBurnt    uint64          `json:"gas_burnt"`
	TokensBurnt string          `json:"tokens_burnt"`
	ExecutorID  string          `json:"executor_id"`
	Status      ExecutionStatus `json:"status"`
}

type ExecutionOutcomeWithID struct {
	ID        string           `json:"id"`
	BlockHash string           `json:"block_hash"`
	Outcome   ExecutionOutcome `json:"outcome"`
}

type FinalExecutionOutcome struct {
	Status             ExecutionStatus          `json:"status"`
	Transaction        json.RawMessage          `json:"transaction"`
	TransactionOutcome ExecutionOutcomeWithID   `json:"transaction_outcome"`
	ReceiptsOutcome    []ExecutionOutcomeWithID `json:"receipts_outcome"`
}

// Logs returns the logs of the transaction outcome followed by those of
// every receipt outcome.
func (o *FinalExecutionOutcome) Logs() []string {
	logs := append([]string(nil), o.TransactionOutcome.Outcome.Logs...)
	for _, r := range o.ReceiptsOutcome {
		logs = append(logs, r.Outcome.Logs...)
	}
	return logs
}

// Failure returns the failure reported in the final status, or nil.
func (o *FinalExecutionOutcome) Failure() json.RawMessage {
	if !o.Status.Failed() {
		return nil
	}
	return o.Status.Failure
}
