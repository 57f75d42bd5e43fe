// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateAccountID(t *testing.T) {
	valid := []string{
		"ok",
		"bob.near",
		"app.alice.near",
		"a-b_c.d",
		"0x1",
		strings.Repeat("a", MaxAccountIDLen),
		"98793cd91a3f870fb126f66285808c7e094afcfc4eda8a970f6648cdf0dbd6de",
	}
	for _, id := range valid {
		require.NoError(t, ValidateAccountID(id), id)
	}

	invalid := []string{
		"",
		"a",
		strings.Repeat("a", MaxAccountIDLen+1),
		"Alice.near",
		"alice..near",
		".alice",
		"alice.",
		"alice-.near",
		"al ice",
		"alice@near",
	}
	for _, id := range invalid {
		require.ErrorIs(t, ValidateAccountID(id), ErrInvalidAccountID, id)
	}
}
