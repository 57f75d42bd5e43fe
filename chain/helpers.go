// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "github.com/holiman/uint256"

// SignCreateAccountTx creates [newAccountID] as a sub-account of the
// signer.
func SignCreateAccountTx(signer Signer, newAccountID string, nonce uint64, blockHash []byte) ([]byte, error) {
	return SignAndSerialize(newAccountID, nonce, []Action{NewCreateAccountAction()}, blockHash, signer)
}

// SignCreateAccountWithFullAccessKeyAndBalanceTx creates [newAccountID],
// gives [newKey] full access to it and funds it with [balance].
func SignCreateAccountWithFullAccessKeyAndBalanceTx(
	signer Signer,
	newAccountID string,
	newKey PublicKey,
	balance *uint256.Int,
	nonce uint64,
	blockHash []byte,
) ([]byte, error) {
	actions := []Action{
		NewCreateAccountAction(),
		NewFullAccessKeyAction(newKey),
		NewTransferAction(balance),
	}
	return SignAndSerialize(newAccountID, nonce, actions, blockHash, signer)
}

// SignDeleteAccessKeyTx removes [key] from [targetAccountID].
func SignDeleteAccessKeyTx(signer Signer, targetAccountID string, key PublicKey, nonce uint64, blockHash []byte) ([]byte, error) {
	return SignAndSerialize(targetAccountID, nonce, []Action{NewDeleteKeyAction(key)}, blockHash, signer)
}

func SignPaymentTx(signer Signer, to string, amount *uint256.Int, nonce uint64, blockHash []byte) ([]byte, error) {
	return SignAndSerialize(to, nonce, []Action{NewTransferAction(amount)}, blockHash, signer)
}

// SignStakingTx stakes [amount] from the signer's own account under
// [validatorKey].
func SignStakingTx(signer Signer, validatorKey PublicKey, amount *uint256.Int, nonce uint64, blockHash []byte) ([]byte, error) {
	return SignAndSerialize(ownAccount(signer), nonce, []Action{NewStakeAction(amount, validatorKey)}, blockHash, signer)
}

// SignDeployContractTx deploys [code] to the signer's own account.
func SignDeployContractTx(signer Signer, code []byte, nonce uint64, blockHash []byte) ([]byte, error) {
	return SignAndSerialize(ownAccount(signer), nonce, []Action{NewDeployContractAction(code)}, blockHash, signer)
}

func SignFunctionCallTx(
	signer Signer,
	contractID string,
	methodName string,
	args []byte,
	gas uint64,
	deposit *uint256.Int,
	nonce uint64,
	blockHash []byte,
) ([]byte, error) {
	action := NewFunctionCallAction(methodName, args, gas, deposit)
	return SignAndSerialize(contractID, nonce, []Action{action}, blockHash, signer)
}

// ownAccount leaves a nil signer for SignAndSerialize to reject.
func ownAccount(signer Signer) string {
	if signer == nil {
		return ""
	}
	return signer.AccountID()
}
