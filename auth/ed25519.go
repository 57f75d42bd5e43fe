// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"github.com/ava-labs/nearsdk/chain"
	"github.com/ava-labs/nearsdk/crypto/ed25519"
)

var _ chain.Signer = (*ED25519Signer)(nil)

// KeyPair is an ed25519 key pair.
type KeyPair struct {
	priv ed25519.PrivateKey
}

// NewKeyPair parses a secret key in "ed25519:<base58>" form.
func NewKeyPair(secretKey string) (*KeyPair, error) {
	priv, err := ed25519.PrivateKeyFromString(secretKey)
	if err != nil {
		return nil, err
	}
	return &KeyPair{priv: priv}, nil
}

func NewKeyPairFromPrivateKey(priv ed25519.PrivateKey) *KeyPair {
	return &KeyPair{priv: priv}
}

func GenerateKeyPair() (*KeyPair, error) {
	priv, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &KeyPair{priv: priv}, nil
}

func (k *KeyPair) PrivateKey() ed25519.PrivateKey { return k.priv }

func (k *KeyPair) PublicKey() chain.PublicKey {
	return chain.NewED25519PublicKey(k.priv.PublicKey())
}

// EncodedPublicKey is the "ed25519:<base58>" form of the public key.
func (k *KeyPair) EncodedPublicKey() string {
	return k.priv.PublicKey().String()
}

// SecretKey is the "ed25519:<base58>" form of the expanded private key.
func (k *KeyPair) SecretKey() string {
	return k.priv.String()
}

func (k *KeyPair) Sign(msg []byte) ed25519.Signature {
	return ed25519.Sign(msg, k.priv)
}

// Verify checks [sig] over [msg] against this key pair.
func (k *KeyPair) Verify(msg []byte, sig ed25519.Signature) bool {
	return ed25519.Verify(msg, k.priv.PublicKey(), sig)
}

// ED25519Signer signs transactions for [AccountID] with an ed25519 key.
type ED25519Signer struct {
	accountID string
	keyPair   *KeyPair
}

func NewSigner(accountID string, keyPair *KeyPair) *ED25519Signer {
	return &ED25519Signer{accountID: accountID, keyPair: keyPair}
}

func (s *ED25519Signer) AccountID() string { return s.accountID }

func (s *ED25519Signer) KeyPair() *KeyPair { return s.keyPair }

func (s *ED25519Signer) PublicKey() chain.PublicKey {
	if s.keyPair == nil {
		return chain.PublicKey{}
	}
	return s.keyPair.PublicKey()
}

func (s *ED25519Signer) Sign(msg []byte) ([]byte, error) {
	if s.keyPair == nil {
		return nil, ErrMissingKey
	}
	sig := s.keyPair.Sign(msg)
	return sig[:], nil
}

// VerifySignedTransaction checks that [stx] carries a valid ed25519
// signature over its transaction hash by the transaction's public key.
func VerifySignedTransaction(stx *chain.SignedTransaction) error {
	if err := checkKeyTypes(stx); err != nil {
		return err
	}
	hash, err := stx.Transaction.Hash()
	if err != nil {
		return err
	}
	if !ed25519.Verify(hash[:], stx.Transaction.PublicKey.Data, stx.Signature.Data) {
		return ed25519.ErrInvalidSignature
	}
	return nil
}

func checkKeyTypes(stx *chain.SignedTransaction) error {
	if stx == nil || stx.Transaction == nil {
		return ErrMissingTransaction
	}
	if stx.Transaction.PublicKey.KeyType != ed25519KeyType || stx.Signature.KeyType != ed25519KeyType {
		return ed25519.ErrUnsupportedKeyType
	}
	return nil
}
