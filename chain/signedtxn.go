// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"crypto/sha256"
	"fmt"
	"slices"

	"github.com/ava-labs/nearsdk/codec"
	"github.com/ava-labs/nearsdk/consts"
)

// Signer produces ed25519 signatures on behalf of an account.
type Signer interface {
	AccountID() string
	PublicKey() PublicKey
	Sign(msg []byte) ([]byte, error)
}

// SignTransaction builds a transaction from [signer] to [receiverID],
// signs the SHA-256 digest of its encoding and returns the signed
// transaction along with its encoding. The returned encoding belongs to
// the caller. Nothing is returned alongside an error.
func SignTransaction(
	receiverID string,
	nonce uint64,
	actions []Action,
	blockHash []byte,
	signer Signer,
) (*SignedTransaction, []byte, error) {
	// Assembled
	if signer == nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidInput, ErrMissingSigner)
	}
	publicKey := signer.PublicKey()
	if publicKey.IsZero() {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidInput, ErrMissingPublicKey)
	}
	if len(blockHash) == 0 {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidInput, ErrMissingBlockHash)
	}
	if len(blockHash) != consts.HashLen {
		return nil, nil, fmt.Errorf("%w: %w: got %d bytes", ErrInvalidInput, ErrInvalidBlockHash, len(blockHash))
	}
	tx := NewTx(signer.AccountID(), publicKey, nonce, receiverID, [consts.HashLen]byte(blockHash), actions)

	// Encoded
	msg, err := tx.Marshal()
	if err != nil {
		return nil, nil, err
	}

	// Hashed
	digest := sha256.Sum256(msg)

	// Signed
	sig, err := signer.Sign(digest[:])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSigning, err)
	}
	if len(sig) != consts.SignatureLen {
		return nil, nil, fmt.Errorf("%w: expected %d signature bytes, got %d", ErrSigning, consts.SignatureLen, len(sig))
	}
	signature := Signature{KeyType: consts.ED25519KeyType, Data: [consts.SignatureLen]byte(sig)}

	// Finalized: a SignedTransaction is its transaction followed by its
	// signature, so the encoding from above is reused.
	p := codec.NewWriter(len(msg) + consts.ByteLen + consts.SignatureLen)
	p.PackFixedBytes(msg)
	if err := encoder.EncodeTo(p, signature, codec.Struct(signature.SchemaName())); err != nil {
		return nil, nil, err
	}

	stx := &SignedTransaction{
		Transaction: tx,
		Signature:   signature,
		bytes:       p.Bytes(),
	}
	return stx, slices.Clone(stx.bytes), nil
}

// SignAndSerialize is like [SignTransaction] but only returns the
// encoding, ready to be submitted.
func SignAndSerialize(
	receiverID string,
	nonce uint64,
	actions []Action,
	blockHash []byte,
	signer Signer,
) ([]byte, error) {
	_, b, err := SignTransaction(receiverID, nonce, actions, blockHash, signer)
	return b, err
}
