// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/hdevalence/ed25519consensus"
	"github.com/mr-tron/base58"

	"github.com/ava-labs/nearsdk/consts"
)

type (
	PublicKey  [ed25519.PublicKeySize]byte
	PrivateKey [ed25519.PrivateKeySize]byte
	Signature  [ed25519.SignatureSize]byte
)

// Signatures are checked with the ZIP-215 rules
// (https://zips.z.cash/zip-0215), which accept every signature produced
// by a conforming ed25519 signer.
const (
	PublicKeyLen  = ed25519.PublicKeySize
	PrivateKeyLen = ed25519.PrivateKeySize
	// PrivateKeySeedLen is defined because ed25519.PrivateKey
	// is formatted as privateKey = seed|publicKey. We use this const
	// to extract the publicKey below.
	PrivateKeySeedLen = ed25519.SeedSize
	SignatureLen      = ed25519.SignatureSize

	// MinBatchSize is the smallest number of signatures worth checking
	// with a [Batch].
	MinBatchSize = 4

	keyPrefix = consts.ED25519KeyLabel + ":"
)

var (
	EmptyPublicKey  = [ed25519.PublicKeySize]byte{}
	EmptyPrivateKey = [ed25519.PrivateKeySize]byte{}
)

// GeneratePrivateKey returns a Ed25519 PrivateKey.
func GeneratePrivateKey() (PrivateKey, error) {
	_, k, err := ed25519.GenerateKey(nil)
	if err != nil {
		return EmptyPrivateKey, err
	}
	return PrivateKey(k), nil
}

// PrivateKeyFromSeed expands a 32 byte seed.
func PrivateKeyFromSeed(seed []byte) (PrivateKey, error) {
	if len(seed) != PrivateKeySeedLen {
		return EmptyPrivateKey, fmt.Errorf("%w: seed is %d bytes", ErrInvalidPrivateKey, len(seed))
	}
	return PrivateKey(ed25519.NewKeyFromSeed(seed)), nil
}

// PublicKey returns a PublicKey associated with the Ed25519 PrivateKey p.
// The PublicKey is the last 32 bytes of p.
func (p PrivateKey) PublicKey() PublicKey {
	return PublicKey(p[PrivateKeySeedLen:])
}

// String renders the key as "ed25519:<base58>", the format used by key
// files.
func (p PrivateKey) String() string {
	return keyPrefix + base58.Encode(p[:])
}

func (p PublicKey) String() string {
	return keyPrefix + base58.Encode(p[:])
}

// Sign returns a valid signature for msg using pk.
func Sign(msg []byte, pk PrivateKey) Signature {
	sig := ed25519.Sign(pk[:], msg)
	return Signature(sig)
}

// Verify returns whether s is a valid signature of msg by p.
func Verify(msg []byte, p PublicKey, s Signature) bool {
	return ed25519consensus.Verify(p[:], msg, s[:])
}

type Batch struct {
	bv ed25519consensus.BatchVerifier
}

func NewBatch(size int) *Batch {
	return &Batch{bv: ed25519consensus.NewPreallocatedBatchVerifier(size)}
}

func (b *Batch) Add(msg []byte, p PublicKey, s Signature) {
	b.bv.Add(p[:], msg, s[:])
}

// Verify reports whether every signature added to b is valid. It does
// not say which one failed.
func (b *Batch) Verify() bool {
	return b.bv.Verify()
}

// PrivateKeyFromString parses "ed25519:<base58>" (the prefix is optional).
// Both the 64 byte expanded key and its 32 byte seed are accepted. An
// expanded key whose public half does not match its seed is rejected.
func PrivateKeyFromString(s string) (PrivateKey, error) {
	b, err := decodeKey(s)
	if err != nil {
		return EmptyPrivateKey, fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
	}
	switch len(b) {
	case PrivateKeySeedLen:
		return PrivateKeyFromSeed(b)
	case PrivateKeyLen:
		k, err := PrivateKeyFromSeed(b[:PrivateKeySeedLen])
		if err != nil {
			return EmptyPrivateKey, err
		}
		if k != PrivateKey(b) {
			return EmptyPrivateKey, fmt.Errorf("%w: public key does not match seed", ErrInvalidPrivateKey)
		}
		return k, nil
	default:
		return EmptyPrivateKey, fmt.Errorf("%w: %d bytes", ErrInvalidPrivateKey, len(b))
	}
}

// PublicKeyFromString parses "ed25519:<base58>" (the prefix is optional).
func PublicKeyFromString(s string) (PublicKey, error) {
	b, err := decodeKey(s)
	if err != nil {
		return EmptyPublicKey, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	if len(b) != PublicKeyLen {
		return EmptyPublicKey, fmt.Errorf("%w: %d bytes", ErrInvalidPublicKey, len(b))
	}
	return PublicKey(b), nil
}

func decodeKey(s string) ([]byte, error) {
	if label, data, ok := strings.Cut(s, ":"); ok {
		if label != consts.ED25519KeyLabel {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedKeyType, label)
		}
		s = data
	}
	return base58.Decode(s)
}
