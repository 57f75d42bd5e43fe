// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/mr-tron/base58"

	"github.com/ava-labs/nearsdk/codec"
	"github.com/ava-labs/nearsdk/consts"
)

var (
	_ codec.StructValue = PublicKey{}
	_ codec.StructValue = Signature{}
)

// PublicKey is a typed public key. KeyType 0 is ed25519.
type PublicKey struct {
	KeyType uint8
	Data    [consts.PublicKeyLen]byte
}

func NewED25519PublicKey(data [consts.PublicKeyLen]byte) PublicKey {
	return PublicKey{KeyType: consts.ED25519KeyType, Data: data}
}

// IsZero reports whether no key material is set.
func (k PublicKey) IsZero() bool {
	return k.Data == [consts.PublicKeyLen]byte{}
}

// String renders the key as "ed25519:<base58>".
func (k PublicKey) String() string {
	return consts.ED25519KeyLabel + ":" + base58.Encode(k.Data[:])
}

func (PublicKey) SchemaName() string { return "PublicKey" }

func (k PublicKey) FieldValue(name string) (any, bool) {
	switch name {
	case "keyType":
		return k.KeyType, true
	case "data":
		return k.Data, true
	default:
		return nil, false
	}
}

// Signature is a typed signature. KeyType 0 is ed25519.
type Signature struct {
	KeyType uint8
	Data    [consts.SignatureLen]byte
}

func (Signature) SchemaName() string { return "Signature" }

func (s Signature) FieldValue(name string) (any, bool) {
	switch name {
	case "keyType":
		return s.KeyType, true
	case "data":
		return s.Data, true
	default:
		return nil, false
	}
}
