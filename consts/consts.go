// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	ByteLen    = 1
	Uint16Len  = 2
	IntLen     = 4
	Uint64Len  = 8
	Uint128Len = 16

	MaxUint8  = ^uint8(0)
	MaxUint32 = ^uint32(0)
	MaxUint64 = ^uint64(0)
	MaxUint   = ^uint(0)
	MaxInt    = int(MaxUint >> 1)

	HashLen         = 32
	PublicKeyLen    = 32
	SignatureLen    = 64
	ED25519KeyType  = uint8(0)
	ED25519KeyLabel = "ed25519"

	// NearDecimals is the number of yoctoNEAR decimals in one NEAR.
	NearDecimals = 24

	// DefaultAttachedGas is attached to function calls when the caller
	// does not choose an amount (100 Tgas).
	DefaultAttachedGas = uint64(100_000_000_000_000)
)
