// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package account

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrTransactionFailed  = errors.New("transaction failed")
	ErrViewFunctionFailed = errors.New("view function failed")
	ErrMissingAccessKey   = errors.New("access key not loaded")
	ErrMissingBlockHash   = errors.New("node reported no latest block hash")
)

// TransactionError is returned when a submitted transaction executes with
// a Failure status.
type TransactionError struct {
	TxHash  string
	Failure json.RawMessage
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: tx %s: %s", ErrTransactionFailed, e.TxHash, e.Failure)
}

func (*TransactionError) Unwrap() error { return ErrTransactionFailed }

// ViewFunctionError carries the error string a node returns for a failed
// view call.
type ViewFunctionError struct {
	ContractID string
	MethodName string
	Message    string
}

func (e *ViewFunctionError) Error() string {
	return fmt.Sprintf("%s: %s.%s: %s", ErrViewFunctionFailed, e.ContractID, e.MethodName, e.Message)
}

func (*ViewFunctionError) Unwrap() error { return ErrViewFunctionFailed }
