// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"

	oed25519 "github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
)

var (
	TestPrivateKey = PrivateKey(
		[PrivateKeyLen]byte{
			32, 241, 118, 222, 210, 13, 164, 128, 3, 18,
			109, 215, 176, 215, 168, 171, 194, 181, 4, 11,
			253, 199, 173, 240, 107, 148, 127, 190, 48, 164,
			12, 48, 115, 50, 124, 153, 59, 53, 196, 150, 168,
			143, 151, 235, 222, 128, 136, 161, 9, 40, 139, 85,
			182, 153, 68, 135, 62, 166, 45, 235, 251, 246, 69, 7,
		},
	)
	TestPublicKey = []byte{
		115, 50, 124, 153, 59, 53, 196, 150, 168, 143, 151, 235,
		222, 128, 136, 161, 9, 40, 139, 85, 182, 153, 68, 135,
		62, 166, 45, 235, 251, 246, 69, 7,
	}
	oed25519options = &oed25519.Options{
		Verify: oed25519.VerifyOptionsZIP_215,
	}
)

func TestGeneratePrivateKeyDifferent(t *testing.T) {
	require := require.New(t)
	const numKeysToGenerate int = 10

	m := make(map[PrivateKey]bool)
	for i := 0; i < numKeysToGenerate; i++ {
		priv, err := GeneratePrivateKey()
		require.NoError(err)
		require.NotEqual(EmptyPrivateKey, priv)
		require.False(m[priv], "Duplicate PrivateKey generated")
		m[priv] = true
	}
}

func TestPublicKeyValid(t *testing.T) {
	require := require.New(t)

	var expectedPubKey PublicKey
	copy(expectedPubKey[:], TestPublicKey)
	require.Equal(expectedPubKey, TestPrivateKey.PublicKey())
}

func TestPrivateKeyFromSeed(t *testing.T) {
	require := require.New(t)

	priv, err := PrivateKeyFromSeed(TestPrivateKey[:PrivateKeySeedLen])
	require.NoError(err)
	require.Equal(TestPrivateKey, priv)

	_, err = PrivateKeyFromSeed(TestPrivateKey[:16])
	require.ErrorIs(err, ErrInvalidPrivateKey)
}

func TestSignVerify(t *testing.T) {
	require := require.New(t)

	msg := []byte("msg")
	sig := Sign(msg, TestPrivateKey)
	require.Equal(Signature(ed25519.Sign(TestPrivateKey[:], msg)), sig)
	require.True(Verify(msg, TestPrivateKey.PublicKey(), sig))
	require.False(Verify([]byte("diff msg"), TestPrivateKey.PublicKey(), sig))

	sig[0]++
	require.False(Verify(msg, TestPrivateKey.PublicKey(), sig))
}

func TestVerifyMatchesOasis(t *testing.T) {
	require := require.New(t)

	for i := 0; i < 16; i++ {
		pub, priv, err := oed25519.GenerateKey(nil)
		require.NoError(err)
		msg := make([]byte, 32)
		_, err = rand.Read(msg)
		require.NoError(err)

		// Signatures from an independent implementation verify here, and
		// ours verify there.
		require.True(Verify(msg, PublicKey(pub), Signature(oed25519.Sign(priv, msg))))

		k := PrivateKey(priv)
		ours := Sign(msg, k)
		require.True(oed25519.VerifyWithOptions(pub, msg, ours[:], oed25519options))
	}
}

func TestBatch(t *testing.T) {
	require := require.New(t)

	const numItems = 8
	batch := NewBatch(numItems)
	obv := oed25519.NewBatchVerifierWithCapacity(numItems)
	msgs := make([][]byte, numItems)
	for i := range msgs {
		priv, err := GeneratePrivateKey()
		require.NoError(err)
		msgs[i] = []byte{byte(i)}
		sig := Sign(msgs[i], priv)
		pub := priv.PublicKey()
		batch.Add(msgs[i], pub, sig)
		obv.AddWithOptions(pub[:], msgs[i], sig[:], oed25519options)
	}
	require.True(batch.Verify())
	require.True(obv.VerifyBatchOnly(nil))

	bad := NewBatch(2)
	sig := Sign([]byte("a"), TestPrivateKey)
	bad.Add([]byte("a"), TestPrivateKey.PublicKey(), sig)
	bad.Add([]byte("b"), TestPrivateKey.PublicKey(), sig)
	require.False(bad.Verify())
}

func TestKeyStrings(t *testing.T) {
	require := require.New(t)

	s := TestPrivateKey.String()
	require.Equal("ed25519:"+base58.Encode(TestPrivateKey[:]), s)

	priv, err := PrivateKeyFromString(s)
	require.NoError(err)
	require.Equal(TestPrivateKey, priv)

	// Seeds and unprefixed keys are accepted.
	priv, err = PrivateKeyFromString(base58.Encode(TestPrivateKey[:PrivateKeySeedLen]))
	require.NoError(err)
	require.Equal(TestPrivateKey, priv)

	pub, err := PublicKeyFromString(TestPrivateKey.PublicKey().String())
	require.NoError(err)
	require.Equal(TestPrivateKey.PublicKey(), pub)
}

func TestKeyStringsInvalid(t *testing.T) {
	require := require.New(t)

	_, err := PrivateKeyFromString("secp256k1:" + base58.Encode(TestPrivateKey[:]))
	require.ErrorIs(err, ErrUnsupportedKeyType)
	require.ErrorIs(err, ErrInvalidPrivateKey)

	_, err = PrivateKeyFromString("ed25519:0OIl")
	require.ErrorIs(err, ErrInvalidPrivateKey)

	_, err = PrivateKeyFromString("ed25519:" + base58.Encode(TestPrivateKey[:20]))
	require.ErrorIs(err, ErrInvalidPrivateKey)

	tampered := TestPrivateKey
	tampered[PrivateKeyLen-1]++
	_, err = PrivateKeyFromString(tampered.String())
	require.ErrorIs(err, ErrInvalidPrivateKey)

	_, err = PublicKeyFromString("ed25519:" + base58.Encode(TestPublicKey[:31]))
	require.ErrorIs(err, ErrInvalidPublicKey)
}
