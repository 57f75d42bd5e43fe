// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/perms"
)

// KeyFile is the JSON credential file written by wallets and the CLI.
// Older files name the secret "private_key".
type KeyFile struct {
	AccountID  string `json:"account_id"`
	PublicKey  string `json:"public_key,omitempty"`
	SecretKey  string `json:"secret_key,omitempty"`
	PrivateKey string `json:"private_key,omitempty"`
}

// Signer loads the key pair named by the file. If a public key is
// present it must match the secret key.
func (f *KeyFile) Signer() (*ED25519Signer, error) {
	if f.AccountID == "" {
		return nil, ErrMissingAccountID
	}
	secret := f.SecretKey
	if secret == "" {
		secret = f.PrivateKey
	}
	if secret == "" {
		return nil, ErrMissingSecretKey
	}
	kp, err := NewKeyPair(secret)
	if err != nil {
		return nil, err
	}
	if f.PublicKey != "" && f.PublicKey != kp.EncodedPublicKey() {
		return nil, fmt.Errorf("%w: %s", ErrPublicKeyMismatch, f.PublicKey)
	}
	return NewSigner(f.AccountID, kp), nil
}

func SignerFromJSON(b []byte) (*ED25519Signer, error) {
	var f KeyFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	return f.Signer()
}

func SignerFromJSONFile(path string) (*ED25519Signer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := SignerFromJSON(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, path)
	}
	return s, nil
}

// NewKeyFile describes [s] in key file form.
func NewKeyFile(s *ED25519Signer) *KeyFile {
	return &KeyFile{
		AccountID: s.AccountID(),
		PublicKey: s.KeyPair().EncodedPublicKey(),
		SecretKey: s.KeyPair().SecretKey(),
	}
}

// WriteKeyFile stores [s] at [path], readable only by its owner.
func WriteKeyFile(path string, s *ED25519Signer) error {
	if s == nil || s.KeyPair() == nil {
		return ErrMissingKey
	}
	b, err := json.MarshalIndent(NewKeyFile(s), "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), perms.ReadWriteExecute); err != nil {
		return err
	}
	return perms.WriteFile(path, b, perms.ReadOnly|0o200)
}
