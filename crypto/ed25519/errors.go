// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import "errors"

var (
	ErrInvalidPrivateKey  = errors.New("invalid private key")
	ErrInvalidPublicKey   = errors.New("invalid public key")
	ErrUnsupportedKeyType = errors.New("unsupported key type")
	ErrInvalidSignature   = errors.New("invalid signature")
)
