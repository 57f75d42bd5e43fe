// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"crypto/sha256"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/nearsdk/chain"
	"github.com/ava-labs/nearsdk/crypto/ed25519"
)

func TestSignerSignsTransactionHash(t *testing.T) {
	require := require.New(t)

	kp, err := GenerateKeyPair()
	require.NoError(err)
	signer := NewSigner("alice.near", kp)

	blockHash := make([]byte, 32)
	blockHash[0] = 1
	stx, b, err := chain.SignTransaction(
		"bob.near",
		3,
		[]chain.Action{chain.NewTransferAction(uint256.NewInt(10))},
		blockHash,
		signer,
	)
	require.NoError(err)
	require.NotEmpty(b)
	require.Equal("alice.near", stx.Transaction.SignerID)
	require.Equal(kp.PublicKey(), stx.Transaction.PublicKey)
	require.NoError(VerifySignedTransaction(stx))

	txBytes, err := stx.Transaction.Marshal()
	require.NoError(err)
	digest := sha256.Sum256(txBytes)
	require.True(kp.Verify(digest[:], stx.Signature.Data))

	stx.Transaction.Nonce++
	require.ErrorIs(VerifySignedTransaction(stx), ed25519.ErrInvalidSignature)
}

func TestSignerWithoutKey(t *testing.T) {
	require := require.New(t)

	signer := NewSigner("alice.near", nil)
	require.True(signer.PublicKey().IsZero())
	_, err := signer.Sign([]byte("msg"))
	require.ErrorIs(err, ErrMissingKey)

	// The pipeline rejects the signer before anything is signed.
	_, err = chain.SignAndSerialize("bob.near", 1, nil, make([]byte, 32), signer)
	require.ErrorIs(err, chain.ErrInvalidInput)
}

func TestSignerFromJSON(t *testing.T) {
	r := require.New(t)

	kp, err := GenerateKeyPair()
	r.NoError(err)
	priv := kp.PrivateKey()
	seed := priv[:ed25519.PrivateKeySeedLen]

	tests := []struct {
		name string
		file KeyFile
		err  error
	}{
		{
			name: "secret key",
			file: KeyFile{AccountID: "a.near", SecretKey: kp.SecretKey()},
		},
		{
			name: "legacy private key with public key",
			file: KeyFile{AccountID: "a.near", PrivateKey: kp.SecretKey(), PublicKey: kp.EncodedPublicKey()},
		},
		{
			name: "seed without prefix",
			file: KeyFile{AccountID: "a.near", SecretKey: base58.Encode(seed)},
		},
		{
			name: "missing account",
			file: KeyFile{SecretKey: kp.SecretKey()},
			err:  ErrMissingAccountID,
		},
		{
			name: "missing secret",
			file: KeyFile{AccountID: "a.near"},
			err:  ErrMissingSecretKey,
		},
		{
			name: "public key mismatch",
			file: KeyFile{AccountID: "a.near", SecretKey: kp.SecretKey(), PublicKey: "ed25519:11111111111111111111111111111111"},
			err:  ErrPublicKeyMismatch,
		},
		{
			name: "bad secret",
			file: KeyFile{AccountID: "a.near", SecretKey: "ed25519:abc"},
			err:  ed25519.ErrInvalidPrivateKey,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			b, err := json.Marshal(tt.file)
			require.NoError(err)
			s, err := SignerFromJSON(b)
			require.ErrorIs(err, tt.err)
			if tt.err != nil {
				return
			}
			require.Equal("a.near", s.AccountID())
			require.Equal(kp.PublicKey(), s.PublicKey())
		})
	}

	_, err = SignerFromJSON([]byte("{"))
	r.Error(err)
}

func TestWriteKeyFile(t *testing.T) {
	require := require.New(t)

	kp, err := GenerateKeyPair()
	require.NoError(err)
	signer := NewSigner("alice.near", kp)

	path := filepath.Join(t.TempDir(), "keys", "alice.near.json")
	require.NoError(WriteKeyFile(path, signer))

	info, err := os.Stat(path)
	require.NoError(err)
	require.Equal(os.FileMode(0o600), info.Mode().Perm())

	loaded, err := SignerFromJSONFile(path)
	require.NoError(err)
	require.Equal(signer.AccountID(), loaded.AccountID())
	require.Equal(signer.KeyPair().PrivateKey(), loaded.KeyPair().PrivateKey())

	_, err = SignerFromJSONFile(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(err, os.ErrNotExist)

	require.ErrorIs(WriteKeyFile(path, NewSigner("x", nil)), ErrMissingKey)
}
