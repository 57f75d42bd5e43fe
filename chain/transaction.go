// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"crypto/sha256"
	"slices"

	"github.com/ava-labs/nearsdk/codec"
	"github.com/ava-labs/nearsdk/consts"
)

var (
	_ codec.StructValue = (*Transaction)(nil)
	_ codec.StructValue = (*SignedTransaction)(nil)
)

// Transaction is the unsigned body that gets hashed and signed.
type Transaction struct {
	SignerID   string
	PublicKey  PublicKey
	Nonce      uint64
	ReceiverID string
	BlockHash  [consts.HashLen]byte
	Actions    []Action
}

func NewTx(
	signerID string,
	publicKey PublicKey,
	nonce uint64,
	receiverID string,
	blockHash [consts.HashLen]byte,
	actions []Action,
) *Transaction {
	return &Transaction{
		SignerID:   signerID,
		PublicKey:  publicKey,
		Nonce:      nonce,
		ReceiverID: receiverID,
		BlockHash:  blockHash,
		Actions:    actions,
	}
}

func (*Transaction) SchemaName() string { return "Transaction" }

func (t *Transaction) FieldValue(name string) (any, bool) {
	switch name {
	case "signerId":
		return t.SignerID, true
	case "publicKey":
		return t.PublicKey, true
	case "nonce":
		return t.Nonce, true
	case "receiverId":
		return t.ReceiverID, true
	case "blockHash":
		return t.BlockHash, true
	case "actions":
		return codec.List[Action](t.Actions), true
	default:
		return nil, false
	}
}

// Marshal returns the canonical encoding of the transaction.
func (t *Transaction) Marshal() ([]byte, error) {
	return encoder.EncodeStruct(t)
}

// Hash returns the SHA-256 digest of the canonical encoding. This is the
// message a signer signs.
func (t *Transaction) Hash() ([consts.HashLen]byte, error) {
	b, err := t.Marshal()
	if err != nil {
		return [consts.HashLen]byte{}, err
	}
	return sha256.Sum256(b), nil
}

// SignedTransaction is a transaction paired with the signature over its
// hash.
type SignedTransaction struct {
	Transaction *Transaction
	Signature   Signature

	bytes []byte
}

func (*SignedTransaction) SchemaName() string { return "SignedTransaction" }

func (s *SignedTransaction) FieldValue(name string) (any, bool) {
	switch name {
	case "transaction":
		if s.Transaction == nil {
			return nil, false
		}
		return s.Transaction, true
	case "signature":
		return s.Signature, true
	default:
		return nil, false
	}
}

// Marshal returns the canonical encoding of the signed transaction.
func (s *SignedTransaction) Marshal() ([]byte, error) {
	return encoder.EncodeStruct(s)
}

// Bytes returns a copy of the encoding produced when the transaction was
// signed, or nil if it was built by hand.
func (s *SignedTransaction) Bytes() []byte { return slices.Clone(s.bytes) }
