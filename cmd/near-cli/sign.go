// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/base64"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"

	"github.com/ava-labs/nearsdk/chain"
	"github.com/ava-labs/nearsdk/utils"
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign transactions offline",
}

var signTransferCmd = &cobra.Command{
	Use:   "transfer [receiver-id] [amount]",
	Short: "Sign a transfer with an explicit nonce and block hash",
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
		nonce, err := cmd.Flags().GetUint64("nonce")
		if err != nil {
			return err
		}
		rawBlockHash, err := cmd.Flags().GetString("block-hash")
		if err != nil {
			return err
		}
		blockHash, err := base58.Decode(rawBlockHash)
		if err != nil {
			return fmt.Errorf("failed to decode block hash: %w", err)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		signer, err := loadSigner(cfg)
		if err != nil {
			return err
		}
		stx, signed, err := chain.SignTransaction(
			receiverID, nonce, []chain.Action{chain.NewTransferAction(amount)}, blockHash, signer,
		)
		if err != nil {
			return fmt.Errorf("failed to sign transaction: %w", err)
		}
		hash, err := stx.Transaction.Hash()
		if err != nil {
			return err
		}

		out, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}
		if out != "" {
			if err := utils.SaveBytes(out, signed); err != nil {
				return fmt.Errorf("failed to save transaction: %w", err)
			}
		}
		return printValue(cmd, signCmdResponse{
			TxHash:   base58.Encode(hash[:]),
			SignedTx: base64.StdEncoding.EncodeToString(signed),
			File:     out,
		})
	},
}

type signCmdResponse struct {
	TxHash   string `json:"txHash"`
	SignedTx string `json:"signedTx"`
	File     string `json:"file,omitempty"`
}

func (r signCmdResponse) String() string {
	s := fmt.Sprintf("Transaction hash: %s\nSigned transaction: %s", r.TxHash, r.SignedTx)
	if r.File != "" {
		s += "\nSaved to: " + r.File
	}
	return s
}

var submitCmd = &cobra.Command{
	Use:   "submit [file|0xhex|base64]",
	Short: "Broadcast a signed transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		signed, err := decodeFileBase64OrHex(args[0])
		if err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		client := newClient(cfg)

		wait, err := cmd.Flags().GetBool("wait")
		if err != nil {
			return err
		}
		if !wait {
			hash, err := client.SendTx(cmd.Context(), signed)
			if err != nil {
				return fmt.Errorf("failed to broadcast: %w", err)
			}
			return printValue(cmd, txResponse{TxHash: hash, Success: true})
		}
		outcome, err := client.SendTxAndWait(cmd.Context(), signed)
		if err != nil {
			return fmt.Errorf("failed to broadcast: %w", err)
		}
		return printValue(cmd, txResponse{
			TxHash:  outcome.TransactionOutcome.ID,
			Success: !outcome.Status.Failed(),
			Error:   outcome.Failure(),
			Logs:    outcome.Logs(),
		})
	},
}

func init() {
	rootCmd.AddCommand(signCmd, submitCmd)
	signCmd.AddCommand(signTransferCmd)

	signTransferCmd.Flags().Uint64("nonce", 0, "Nonce to sign with, one more than the access key's current nonce")
	signTransferCmd.Flags().String("block-hash", "", "Recent block hash in base58")
	signTransferCmd.Flags().String("out", "", "Also write the signed transaction to this file")
	_ = signTransferCmd.MarkFlagRequired("nonce")
	_ = signTransferCmd.MarkFlagRequired("block-hash")

	submitCmd.Flags().Bool("wait", true, "Wait for the transaction to execute")
}
