// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	// ErrInvalidInput is returned when a transaction cannot be assembled
	// from the provided arguments.
	ErrInvalidInput = errors.New("invalid input")
	// ErrSigning is returned when the signer fails or produces a signature
	// of the wrong length.
	ErrSigning = errors.New("signing failed")

	ErrMissingSigner    = errors.New("missing signer")
	ErrMissingPublicKey = errors.New("signer has no public key")
	ErrMissingBlockHash = errors.New("missing block hash")
	ErrInvalidBlockHash = errors.New("invalid block hash length")
)
