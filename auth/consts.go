// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"errors"

	"github.com/ava-labs/nearsdk/consts"
)

const ed25519KeyType = consts.ED25519KeyType

var (
	ErrMissingKey         = errors.New("signer has no key")
	ErrMissingAccountID   = errors.New("missing account id")
	ErrMissingSecretKey   = errors.New("missing secret key")
	ErrMissingTransaction = errors.New("missing transaction")
	ErrPublicKeyMismatch  = errors.New("public key does not match secret key")
)
