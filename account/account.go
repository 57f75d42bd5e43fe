// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE} -destination=mock_provider.go . Provider

package account

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/holiman/uint256"
	"github.com/mr-tron/base58"
	"go.uber.org/zap"

	"github.com/ava-labs/nearsdk/api/jsonrpc"
	"github.com/ava-labs/nearsdk/chain"
	"github.com/ava-labs/nearsdk/consts"
)

// DefaultTxTimeout bounds how long SignAndSubmitTx waits for a
// transaction to execute.
const DefaultTxTimeout = 10 * time.Second

// Provider is the part of a node's JSON-RPC interface an Account uses.
type Provider interface {
	Status(ctx context.Context) (*jsonrpc.StatusReply, error)
	ViewAccount(ctx context.Context, accountID string, finality string) (*jsonrpc.AccountView, error)
	ViewAccessKey(ctx context.Context, accountID string, publicKey string, finality string) (*jsonrpc.AccessKeyView, error)
	CallFunction(ctx context.Context, accountID string, methodName string, args []byte, finality string) (*jsonrpc.CallResult, error)
	SendTxAndWait(ctx context.Context, signedTx []byte) (*jsonrpc.FinalExecutionOutcome, error)
}

var _ Provider = (*jsonrpc.JSONRPCClient)(nil)

// Account submits transactions on behalf of a single signer and tracks the
// nonce of its access key.
type Account struct {
	log      logging.Logger
	provider Provider
	signer   chain.Signer

	txTimeout time.Duration
	finality  string

	l         sync.Mutex
	state     *jsonrpc.AccountView
	accessKey *jsonrpc.AccessKeyView
}

// New loads the account and access key of [signer] from [provider].
func New(ctx context.Context, log logging.Logger, provider Provider, signer chain.Signer) (*Account, error) {
	a := &Account{
		log:       log,
		provider:  provider,
		signer:    signer,
		txTimeout: DefaultTxTimeout,
		finality:  jsonrpc.FinalityFinal,
	}
	if err := a.FetchState(ctx); err != nil {
		return nil, err
	}
	accessKey, err := provider.ViewAccessKey(ctx, signer.AccountID(), signer.PublicKey().String(), a.finality)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load access key of %s", err, signer.AccountID())
	}
	a.accessKey = accessKey
	log.Debug("loaded account",
		zap.String("account", signer.AccountID()),
		zap.String("amount", a.state.Amount),
		zap.Uint64("nonce", accessKey.Nonce),
	)
	return a, nil
}

// SetTxTimeout changes how long SignAndSubmitTx waits for execution. Zero
// leaves the caller's context as the only bound.
func (a *Account) SetTxTimeout(d time.Duration) { a.txTimeout = d }

// SetFinality changes the finality used by state queries.
func (a *Account) SetFinality(finality string) { a.finality = finality }

func (a *Account) AccountID() string { return a.signer.AccountID() }

func (a *Account) Signer() chain.Signer { return a.signer }

func (a *Account) Provider() Provider { return a.provider }

// AccessKey returns a copy of the cached access key.
func (a *Account) AccessKey() jsonrpc.AccessKeyView {
	a.l.Lock()
	defer a.l.Unlock()
	if a.accessKey == nil {
		return jsonrpc.AccessKeyView{}
	}
	return *a.accessKey
}

// State returns a copy of the account view last fetched.
func (a *Account) State() jsonrpc.AccountView {
	a.l.Lock()
	defer a.l.Unlock()
	if a.state == nil {
		return jsonrpc.AccountView{}
	}
	return *a.state
}

// FetchState refreshes the cached account view.
func (a *Account) FetchState(ctx context.Context) error {
	state, err := a.provider.ViewAccount(ctx, a.signer.AccountID(), a.finality)
	if err != nil {
		return fmt.Errorf("%w: failed to load account %s", err, a.signer.AccountID())
	}
	a.l.Lock()
	a.state = state
	a.l.Unlock()
	return nil
}

// SignAndSubmitTx signs [actions] for [receiverID] with the next nonce and
// waits for the transaction to execute. A transaction that executes with a
// Failure status returns the outcome together with a *TransactionError.
func (a *Account) SignAndSubmitTx(
	ctx context.Context,
	receiverID string,
	actions []chain.Action,
) (*jsonrpc.FinalExecutionOutcome, error) {
	stx, txBytes, err := a.sign(ctx, receiverID, actions)
	if err != nil {
		return nil, err
	}
	txHash, err := stx.Transaction.Hash()
	if err != nil {
		return nil, err
	}
	hash := base58.Encode(txHash[:])

	if a.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.txTimeout)
		defer cancel()
	}
	outcome, err := a.provider.SendTxAndWait(ctx, txBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to submit tx %s", err, hash)
	}
	for _, l := range outcome.Logs() {
		a.log.Info("transaction log",
			zap.String("tx", hash),
			zap.String("log", l),
		)
	}
	if failure := outcome.Failure(); failure != nil {
		a.log.Warn("transaction failed",
			zap.String("tx", hash),
			zap.ByteString("failure", failure),
		)
		return outcome, &TransactionError{TxHash: hash, Failure: failure}
	}
	a.log.Debug("transaction executed",
		zap.String("tx", hash),
		zap.String("receiver", receiverID),
		zap.Uint64("nonce", stx.Transaction.Nonce),
	)
	return outcome, nil
}

// sign reserves the next nonce and signs. The cached nonce only advances
// once signing succeeds.
func (a *Account) sign(ctx context.Context, receiverID string, actions []chain.Action) (*chain.SignedTransaction, []byte, error) {
	a.l.Lock()
	defer a.l.Unlock()

	if a.accessKey == nil {
		return nil, nil, ErrMissingAccessKey
	}
	status, err := a.provider.Status(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to fetch latest block", err)
	}
	if status.SyncInfo.LatestBlockHash == "" {
		return nil, nil, ErrMissingBlockHash
	}
	blockHash, err := base58.Decode(status.SyncInfo.LatestBlockHash)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid block hash %q", err, status.SyncInfo.LatestBlockHash)
	}

	nonce := a.accessKey.Nonce + 1
	stx, txBytes, err := chain.SignTransaction(receiverID, nonce, actions, blockHash, a.signer)
	if err != nil {
		return nil, nil, err
	}
	a.accessKey.Nonce = nonce
	return stx, txBytes, nil
}

// SendMoney transfers [amount] yoctoNEAR to [receiverID].
func (a *Account) SendMoney(ctx context.Context, receiverID string, amount *uint256.Int) (*jsonrpc.FinalExecutionOutcome, error) {
	return a.SignAndSubmitTx(ctx, receiverID, []chain.Action{chain.NewTransferAction(amount)})
}

// FunctionCall calls [methodName] on [contractID] with [args] encoded as
// JSON. A zero [gas] attaches consts.DefaultAttachedGas.
func (a *Account) FunctionCall(
	ctx context.Context,
	contractID string,
	methodName string,
	args interface{},
	gas uint64,
	deposit *uint256.Int,
) (*jsonrpc.FinalExecutionOutcome, error) {
	action, err := functionCallAction(methodName, args, gas, deposit)
	if err != nil {
		return nil, err
	}
	return a.SignAndSubmitTx(ctx, contractID, []chain.Action{action})
}

// CreateAccount creates [accountID] with [publicKey] as a full access key
// and funds it with [initialBalance].
func (a *Account) CreateAccount(
	ctx context.Context,
	accountID string,
	publicKey chain.PublicKey,
	initialBalance *uint256.Int,
) (*jsonrpc.FinalExecutionOutcome, error) {
	return a.SignAndSubmitTx(ctx, accountID, []chain.Action{
		chain.NewCreateAccountAction(),
		chain.NewFullAccessKeyAction(publicKey),
		chain.NewTransferAction(initialBalance),
	})
}

// DeployContract deploys [code] to this account.
func (a *Account) DeployContract(ctx context.Context, code []byte) (*jsonrpc.FinalExecutionOutcome, error) {
	return a.SignAndSubmitTx(ctx, a.AccountID(), []chain.Action{chain.NewDeployContractAction(code)})
}

// Stake stakes [amount] from this account under the validator [publicKey].
func (a *Account) Stake(ctx context.Context, publicKey chain.PublicKey, amount *uint256.Int) (*jsonrpc.FinalExecutionOutcome, error) {
	return a.SignAndSubmitTx(ctx, a.AccountID(), []chain.Action{chain.NewStakeAction(amount, publicKey)})
}

// CreateAndDeployContract creates [contractID], funds it and deploys
// [code]. A nil [publicKey] creates the account without an access key.
func (a *Account) CreateAndDeployContract(
	ctx context.Context,
	contractID string,
	publicKey *chain.PublicKey,
	code []byte,
	initialBalance *uint256.Int,
) (*jsonrpc.FinalExecutionOutcome, error) {
	actions := []chain.Action{
		chain.NewCreateAccountAction(),
		chain.NewTransferAction(initialBalance),
		chain.NewDeployContractAction(code),
	}
	if publicKey != nil {
		actions = append(actions, chain.NewFullAccessKeyAction(*publicKey))
	}
	return a.SignAndSubmitTx(ctx, contractID, actions)
}

// CreateDeployAndInitContract is CreateAndDeployContract followed by a
// call to [initMethod] (usually "new") with [args] encoded as JSON.
func (a *Account) CreateDeployAndInitContract(
	ctx context.Context,
	contractID string,
	publicKey *chain.PublicKey,
	code []byte,
	initialBalance *uint256.Int,
	initMethod string,
	args interface{},
	gas uint64,
) (*jsonrpc.FinalExecutionOutcome, error) {
	initCall, err := functionCallAction(initMethod, args, gas, nil)
	if err != nil {
		return nil, err
	}
	actions := []chain.Action{
		chain.NewCreateAccountAction(),
		chain.NewTransferAction(initialBalance),
		chain.NewDeployContractAction(code),
		initCall,
	}
	if publicKey != nil {
		actions = append(actions, chain.NewFullAccessKeyAction(*publicKey))
	}
	return a.SignAndSubmitTx(ctx, contractID, actions)
}

// ViewFunction runs the read-only [methodName] of [contractID] and decodes
// its JSON result into [reply] when [reply] is non-nil.
func (a *Account) ViewFunction(
	ctx context.Context,
	contractID string,
	methodName string,
	args interface{},
	reply interface{},
) (*jsonrpc.CallResult, error) {
	argBytes, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode args of %s", err, methodName)
	}
	res, err := a.provider.CallFunction(ctx, contractID, methodName, argBytes, a.finality)
	if err != nil {
		return nil, err
	}
	if res.Error != "" {
		return res, &ViewFunctionError{ContractID: contractID, MethodName: methodName, Message: res.Error}
	}
	if reply != nil {
		if err := json.Unmarshal(res.Result, reply); err != nil {
			return res, fmt.Errorf("%w: failed to decode result of %s", err, methodName)
		}
	}
	return res, nil
}

func functionCallAction(methodName string, args interface{}, gas uint64, deposit *uint256.Int) (chain.Action, error) {
	argBytes, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode args of %s", err, methodName)
	}
	if gas == 0 {
		gas = consts.DefaultAttachedGas
	}
	return chain.NewFunctionCallAction(methodName, argBytes, gas, deposit), nil
}
