// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"crypto/sha256"
	"errors"
	"sync"
	"testing"

	"github.com/holiman/uint256"
	"github.com/near/borsh-go"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/nearsdk/codec"
)

var errSignerUnavailable = errors.New("signer unavailable")

type stubSigner struct {
	accountID string
	publicKey PublicKey
	sig       []byte
	err       error

	mu       sync.Mutex
	messages [][]byte
}

func (s *stubSigner) AccountID() string { return s.accountID }

func (s *stubSigner) PublicKey() PublicKey { return s.publicKey }

func (s *stubSigner) Sign(msg []byte) ([]byte, error) {
	s.mu.Lock()
	s.messages = append(s.messages, append([]byte(nil), msg...))
	s.mu.Unlock()
	return s.sig, s.err
}

func newStubSigner() *stubSigner {
	return &stubSigner{
		accountID: "alice",
		publicKey: testKey(0x01),
		sig:       repeat(0xab, 64),
	}
}

func TestSignAndSerialize(t *testing.T) {
	require := require.New(t)

	signer := newStubSigner()
	blockHash := repeat(0x02, 32)
	actions := []Action{NewTransferAction(uint256.NewInt(1000))}

	expectedTx := concat(
		str("alice"),
		[]byte{0}, repeat(0x01, 32),
		u64(7),
		str("bob"),
		repeat(0x02, 32),
		u32(1), []byte{3}, u128(1000),
	)

	stx, b, err := SignTransaction("bob", 7, actions, blockHash, signer)
	require.NoError(err)

	// The signer sees the digest, never the raw encoding.
	digest := sha256.Sum256(expectedTx)
	require.Len(signer.messages, 1)
	require.Equal(digest[:], signer.messages[0])

	require.Equal(concat(expectedTx, []byte{0}, repeat(0xab, 64)), b)
	require.Equal(b, stx.Bytes())

	// Reusing the transaction encoding matches a full re-encode.
	full, err := stx.Marshal()
	require.NoError(err)
	require.Equal(b, full)

	txBytes, err := stx.Transaction.Marshal()
	require.NoError(err)
	require.Equal(expectedTx, txBytes)

	hash, err := stx.Transaction.Hash()
	require.NoError(err)
	require.Equal(digest, hash)
}

func TestSignAndSerializeIdempotent(t *testing.T) {
	require := require.New(t)

	signer := newStubSigner()
	blockHash := repeat(0x02, 32)
	actions := []Action{
		NewCreateAccountAction(),
		NewFullAccessKeyAction(testKey(0x05)),
		NewTransferAction(uint256.NewInt(1)),
	}

	first, err := SignAndSerialize("carol", 1, actions, blockHash, signer)
	require.NoError(err)
	second, err := SignAndSerialize("carol", 1, actions, blockHash, signer)
	require.NoError(err)
	require.Equal(first, second)
	require.Equal(signer.messages[0], signer.messages[1])
}

func TestSignTransactionInvalidInput(t *testing.T) {
	blockHash := repeat(0x02, 32)
	noKey := newStubSigner()
	noKey.publicKey = PublicKey{}

	tests := []struct {
		name      string
		signer    Signer
		blockHash []byte
		err       error
	}{
		{
			name:      "nil signer",
			signer:    nil,
			blockHash: blockHash,
			err:       ErrMissingSigner,
		},
		{
			name:      "empty public key",
			signer:    noKey,
			blockHash: blockHash,
			err:       ErrMissingPublicKey,
		},
		{
			name:      "missing block hash",
			signer:    newStubSigner(),
			blockHash: nil,
			err:       ErrMissingBlockHash,
		},
		{
			name:      "short block hash",
			signer:    newStubSigner(),
			blockHash: repeat(0x02, 31),
			err:       ErrInvalidBlockHash,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			stx, b, err := SignTransaction("bob", 1, nil, tt.blockHash, tt.signer)
			require.ErrorIs(err, ErrInvalidInput)
			require.ErrorIs(err, tt.err)
			require.Nil(stx)
			require.Nil(b)
		})
	}
}

func TestSignTransactionSigningFailure(t *testing.T) {
	tests := []struct {
		name string
		sig  []byte
		err  error
	}{
		{
			name: "signer error",
			err:  errSignerUnavailable,
		},
		{
			name: "short signature",
			sig:  repeat(0xab, 63),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			signer := newStubSigner()
			signer.sig = tt.sig
			signer.err = tt.err

			b, err := SignAndSerialize("bob", 1, nil, repeat(0x02, 32), signer)
			require.ErrorIs(err, ErrSigning)
			if tt.err != nil {
				require.ErrorIs(err, tt.err)
			}
			require.Nil(b)
		})
	}
}

func TestSignTransactionEncodingFailure(t *testing.T) {
	require := require.New(t)

	signer := newStubSigner()
	b, err := SignAndSerialize("bob", 1, []Action{nil}, repeat(0x02, 32), signer)
	require.ErrorIs(err, codec.ErrEncoding)
	require.Nil(b)
	require.Empty(signer.messages)

	// Invalid UTF-8 in a receiver id
	b, err = SignAndSerialize("\xff", 1, nil, repeat(0x02, 32), signer)
	require.ErrorIs(err, codec.ErrInvalidUTF8)
	require.Nil(b)
}

func TestSignTransactionNilPayload(t *testing.T) {
	require := require.New(t)

	signer := newStubSigner()
	var (
		stx *SignedTransaction
		b   []byte
		err error
	)
	require.NotPanics(func() {
		stx, b, err = SignTransaction("bob", 1, []Action{(*Transfer)(nil)}, repeat(0x02, 32), signer)
	})
	require.ErrorIs(err, codec.ErrEncoding)
	require.ErrorIs(err, codec.ErrTypeMismatch)
	require.Nil(stx)
	require.Nil(b)
	require.Empty(signer.messages)

	addKey := NewAddKeyAction(testKey(0x05), &AccessKey{
		Nonce:      1,
		Permission: (*FunctionCallPermission)(nil),
	})
	tx := NewTx("alice", testKey(0x01), 1, "bob", [32]byte{}, []Action{addKey})
	require.NotPanics(func() { b, err = tx.Marshal() })
	require.ErrorIs(err, codec.ErrEncoding)
	require.ErrorIs(err, codec.ErrTypeMismatch)
	require.Nil(b)

	require.NotPanics(func() {
		b, err = SignAndSerialize("bob", 1, []Action{addKey}, repeat(0x02, 32), signer)
	})
	require.ErrorIs(err, codec.ErrEncoding)
	require.Nil(b)
}

func TestSignTransactionZeroBlockHash(t *testing.T) {
	require := require.New(t)

	signer := newStubSigner()
	blockHash := make([]byte, 32)

	expectedTx := concat(
		str("alice"),
		[]byte{0}, repeat(0x01, 32),
		u64(1),
		str("bob"),
		blockHash,
		u32(0),
	)
	stx, b, err := SignTransaction("bob", 1, nil, blockHash, signer)
	require.NoError(err)
	require.Len(b, 158)
	require.Equal(concat(expectedTx, []byte{0}, repeat(0xab, 64)), b)

	digest := sha256.Sum256(expectedTx)
	require.Equal(digest[:], signer.messages[0])

	full, err := stx.Marshal()
	require.NoError(err)
	require.Equal(b, full)
}

func TestSignTransactionBytesNotShared(t *testing.T) {
	require := require.New(t)

	stx, b, err := SignTransaction("bob", 1, nil, repeat(0x02, 32), newStubSigner())
	require.NoError(err)

	want := stx.Bytes()
	b[0] ^= 0xff
	require.Equal(want, stx.Bytes())

	got := stx.Bytes()
	got[1] ^= 0xff
	require.Equal(want, stx.Bytes())
}

func TestSignHelpers(t *testing.T) {
	require := require.New(t)

	signer := newStubSigner()
	blockHash := repeat(0x02, 32)
	amount := uint256.NewInt(5)

	b, err := SignPaymentTx(signer, "bob", amount, 3, blockHash)
	require.NoError(err)
	expected, err := SignAndSerialize("bob", 3, []Action{NewTransferAction(amount)}, blockHash, signer)
	require.NoError(err)
	require.Equal(expected, b)

	// Staking and deploying target the signer's own account.
	b, err = SignStakingTx(signer, testKey(9), amount, 4, blockHash)
	require.NoError(err)
	expected, err = SignAndSerialize("alice", 4, []Action{NewStakeAction(amount, testKey(9))}, blockHash, signer)
	require.NoError(err)
	require.Equal(expected, b)

	b, err = SignDeployContractTx(signer, []byte{0, 0x61, 0x73, 0x6d}, 5, blockHash)
	require.NoError(err)
	expected, err = SignAndSerialize("alice", 5, []Action{NewDeployContractAction([]byte{0, 0x61, 0x73, 0x6d})}, blockHash, signer)
	require.NoError(err)
	require.Equal(expected, b)

	b, err = SignCreateAccountWithFullAccessKeyAndBalanceTx(signer, "new.alice", testKey(3), amount, 6, blockHash)
	require.NoError(err)
	expected, err = SignAndSerialize("new.alice", 6, []Action{
		NewCreateAccountAction(),
		NewFullAccessKeyAction(testKey(3)),
		NewTransferAction(amount),
	}, blockHash, signer)
	require.NoError(err)
	require.Equal(expected, b)

	_, err = SignStakingTx(nil, testKey(9), amount, 4, blockHash)
	require.ErrorIs(err, ErrMissingSigner)

	for _, sign := range []func() ([]byte, error){
		func() ([]byte, error) { return SignCreateAccountTx(signer, "x.alice", 1, blockHash) },
		func() ([]byte, error) { return SignDeleteAccessKeyTx(signer, "alice", testKey(4), 1, blockHash) },
		func() ([]byte, error) {
			return SignFunctionCallTx(signer, "contract", "m", []byte("{}"), 1, nil, 1, blockHash)
		},
	} {
		b, err := sign()
		require.NoError(err)
		require.NotEmpty(b)
	}
}

// borshTx mirrors the wire layout with plain Go types so an independent
// encoder can produce the expected bytes. Enums are written as their
// variant index followed by the payload.
type borshTx struct {
	SignerID   string
	KeyType    uint8
	Key        [32]byte
	Nonce      uint64
	ReceiverID string
	BlockHash  [32]byte
	Actions    []borshDeleteAccount
	SigType    uint8
	Sig        [64]byte
}

type borshDeleteAccount struct {
	Variant       uint8
	BeneficiaryID string
}

func TestSignedTransactionMatchesBorsh(t *testing.T) {
	require := require.New(t)

	signer := newStubSigner()
	blockHash := repeat(0x02, 32)
	b, err := SignAndSerialize("alice", 42, []Action{
		NewDeleteAccountAction("bob"),
		NewDeleteAccountAction("carol"),
	}, blockHash, signer)
	require.NoError(err)

	ref := borshTx{
		SignerID:   "alice",
		Nonce:      42,
		ReceiverID: "alice",
		Actions: []borshDeleteAccount{
			{Variant: 7, BeneficiaryID: "bob"},
			{Variant: 7, BeneficiaryID: "carol"},
		},
	}
	copy(ref.Key[:], repeat(0x01, 32))
	copy(ref.BlockHash[:], blockHash)
	copy(ref.Sig[:], repeat(0xab, 64))

	expected, err := borsh.Serialize(ref)
	require.NoError(err)
	require.Equal(expected, b)
}

func TestSignTransactionConcurrent(t *testing.T) {
	require := require.New(t)

	signer := newStubSigner()
	blockHash := repeat(0x02, 32)
	expected, err := SignPaymentTx(signer, "bob", uint256.NewInt(1), 1, blockHash)
	require.NoError(err)

	var wg sync.WaitGroup
	results := make([][]byte, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = SignPaymentTx(signer, "bob", uint256.NewInt(1), 1, blockHash)
		}(i)
	}
	wg.Wait()
	for _, b := range results {
		require.Equal(expected, b)
	}
}
