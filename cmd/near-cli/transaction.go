// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/nearsdk/account"
	"github.com/ava-labs/nearsdk/api/jsonrpc"
	"github.com/ava-labs/nearsdk/chain"
	"github.com/ava-labs/nearsdk/utils"
)

var errCanceled = errors.New("canceled by user")

// openAccount loads the default signer's account from the node.
func openAccount(cmd *cobra.Command) (*account.Account, logging.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	signer, err := loadSigner(cfg)
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	a, err := account.New(cmd.Context(), log, newClient(cfg), signer)
	if err != nil {
		log.Stop()
		return nil, nil, err
	}
	a.SetTxTimeout(cfg.TxTimeout)
	a.SetFinality(cfg.Finality)
	return a, log, nil
}

// submit shows [actions], asks for confirmation and submits them from the
// default account.
func submit(
	cmd *cobra.Command,
	receiverID string,
	build func(a *account.Account) []chain.Action,
	send func(ctx context.Context, a *account.Account) (*jsonrpc.FinalExecutionOutcome, error),
) error {
	a, log, err := openAccount(cmd)
	if err != nil {
		return err
	}
	defer log.Stop()

	utils.Outf(
		"{{yellow}}%s{{/}} -> {{yellow}}%s{{/}}: %s\n",
		a.AccountID(),
		receiverID,
		strings.Join(utils.Map(chain.ActionName, build(a)), ", "),
	)
	ok, err := confirm(cmd)
	if err != nil {
		return err
	}
	if !ok {
		return errCanceled
	}

	outcome, err := send(cmd.Context(), a)
	var txErr *account.TransactionError
	if errors.As(err, &txErr) {
		log.Debug("transaction failed", zap.String("tx", txErr.TxHash))
		return printValue(cmd, txResponse{
			TxHash:  txErr.TxHash,
			Success: false,
			Error:   txErr.Failure,
			Logs:    outcome.Logs(),
		})
	}
	if err != nil {
		return err
	}
	resp := txResponse{
		TxHash:  outcome.TransactionOutcome.ID,
		Success: true,
		Logs:    outcome.Logs(),
	}
	if value, err := outcome.Status.Value(); err == nil && len(value) > 0 {
		if json.Valid(value) {
			resp.Result = value
		} else {
			resp.Result, _ = json.Marshal(string(value))
		}
	}
	return printValue(cmd, resp)
}

type txResponse struct {
	TxHash  string          `json:"txHash"`
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
	Logs    []string        `json:"logs,omitempty"`
}

func (r txResponse) String() string {
	var result strings.Builder
	if r.Success {
		result.WriteString(fmt.Sprintf("✅ Transaction successful (tx: %s)\n", r.TxHash))
		if len(r.Result) > 0 {
			result.WriteString(fmt.Sprintf("Result: %s\n", r.Result))
		}
	} else {
		result.WriteString(fmt.Sprintf("❌ Transaction failed (tx: %s): %s\n", r.TxHash, r.Error))
	}
	for _, l := range r.Logs {
		result.WriteString(fmt.Sprintf("Log: %s\n", l))
	}
	return strings.TrimSpace(result.String())
}

var sendCmd = &cobra.Command{
	Use:   "send [receiver-id] [amount]",
	Short: "Send NEAR to an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		receiverID := args[0]
		if err := chain.ValidateAccountID(receiverID); err != nil {
			return err
		}
		amount, err := utils.ParseBalance(args[1])
		if err != nil {
			return err
		}
		return submit(cmd, receiverID,
			func(*account.Account) []chain.Action {
				return []chain.Action{chain.NewTransferAction(amount)}
			},
			func(ctx context.Context, a *account.Account) (*jsonrpc.FinalExecutionOutcome, error) {
				return a.SendMoney(ctx, receiverID, amount)
			},
		)
	},
}

var callCmd = &cobra.Command{
	Use:   "call [contract-id] [method]",
	Short: "Call a contract method in a transaction",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		contractID, method := args[0], args[1]
		if err := chain.ValidateAccountID(contractID); err != nil {
			return err
		}
		callArgs, err := jsonArgs(cmd)
		if err != nil {
			return err
		}
		gas, err := cmd.Flags().GetUint64("gas")
		if err != nil {
			return err
		}
		deposit, err := depositFlag(cmd)
		if err != nil {
			return err
		}
		return submit(cmd, contractID,
			func(*account.Account) []chain.Action {
				return []chain.Action{chain.NewFunctionCallAction(method, callArgs, gas, deposit)}
			},
			func(ctx context.Context, a *account.Account) (*jsonrpc.FinalExecutionOutcome, error) {
				return a.FunctionCall(ctx, contractID, method, callArgs, gas, deposit)
			},
		)
	},
}

var viewCmd = &cobra.Command{
	Use:   "view [contract-id] [method]",
	Short: "Run a read-only contract method",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		contractID, method := args[0], args[1]
		callArgs, err := jsonArgs(cmd)
		if err != nil {
			return err
		}
		a, log, err := openAccount(cmd)
		if err != nil {
			return err
		}
		defer log.Stop()

		var result json.RawMessage
		res, err := a.ViewFunction(cmd.Context(), contractID, method, callArgs, &result)
		if err != nil {
			return err
		}
		return printValue(cmd, viewResponse{Result: result, Logs: res.Logs, BlockHeight: res.BlockHeight})
	},
}

type viewResponse struct {
	Result      json.RawMessage `json:"result"`
	Logs        []string        `json:"logs,omitempty"`
	BlockHeight uint64          `json:"blockHeight"`
}

func (r viewResponse) String() string {
	var result strings.Builder
	result.WriteString(fmt.Sprintf("✅ View call at block %d:\n", r.BlockHeight))
	result.WriteString(fmt.Sprintf("Result: %s", r.Result))
	for _, l := range r.Logs {
		result.WriteString(fmt.Sprintf("\nLog: %s", l))
	}
	return result.String()
}

// jsonArgs returns the --args flag, which must be valid JSON.
func jsonArgs(cmd *cobra.Command) (json.RawMessage, error) {
	raw, err := cmd.Flags().GetString("args")
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(raw)) {
		return nil, fmt.Errorf("--args is not valid JSON: %s", raw)
	}
	return json.RawMessage(raw), nil
}

func depositFlag(cmd *cobra.Command) (*uint256.Int, error) {
	raw, err := cmd.Flags().GetString("deposit")
	if err != nil {
		return nil, err
	}
	return utils.ParseBalance(raw)
}

func init() {
	rootCmd.AddCommand(sendCmd, callCmd, viewCmd)

	for _, c := range []*cobra.Command{callCmd, viewCmd} {
		c.Flags().String("args", "{}", "Method arguments as JSON")
	}
	callCmd.Flags().Uint64("gas", 0, "Gas to attach (default 100 Tgas)")
	callCmd.Flags().String("deposit", "0", "NEAR to attach")
}
