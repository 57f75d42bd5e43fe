// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestSaveBytes(t *testing.T) {
	require := require.New(t)

	filename := filepath.Join(t.TempDir(), "SaveBytes")
	b := bytes.Repeat([]byte{0x07}, 32)
	require.NoError(SaveBytes(filename, b), "Error during call to SaveBytes")
	require.FileExists(filename, "SaveBytes did not create file")

	info, err := os.Stat(filename)
	require.NoError(err)
	require.Equal(os.FileMode(0o600), info.Mode().Perm())

	saved, err := os.ReadFile(filename)
	require.NoError(err, "Reading saved file threw an error")
	require.Equal(b, saved)
}

func TestLoadBytesIncorrectLength(t *testing.T) {
	require := require.New(t)

	fileName := filepath.Join(t.TempDir(), "TestLoadBytes")
	require.NoError(os.WriteFile(fileName, []byte{1, 2, 3, 4, 5}, 0o600), "Error writing using OS during tests")

	_, err := LoadBytes(fileName, 32)
	require.ErrorIs(err, ErrInvalidSize)
}

func TestLoadBytesInvalidFile(t *testing.T) {
	require := require.New(t)

	_, err := LoadBytes("FileNameDoesntExist", 32)
	require.ErrorIs(err, os.ErrNotExist)
}

func TestLoadBytes(t *testing.T) {
	require := require.New(t)

	fileName := filepath.Join(t.TempDir(), "TestLoadBytes")
	b := []byte("signed transaction")
	require.NoError(os.WriteFile(fileName, b, 0o600))

	loaded, err := LoadBytes(fileName, len(b))
	require.NoError(err)
	require.Equal(b, loaded)

	loaded, err = LoadBytes(fileName, -1)
	require.NoError(err)
	require.Equal(b, loaded)
}

func TestFormatAndParseBalance(t *testing.T) {
	require := require.New(t)

	oneNear := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(24))
	testCases := []struct {
		input    *uint256.Int
		expected string
	}{
		{oneNear, "1.000000000000000000000000"},
		{uint256.NewInt(1), "0.000000000000000000000001"},
		{uint256.NewInt(123456789), "0.000000000000000123456789"},
		{new(uint256.Int).Mul(oneNear, uint256.NewInt(2500)), "2500.000000000000000000000000"},
		{new(uint256.Int), "0.000000000000000000000000"},
	}

	for _, tc := range testCases {
		formatted := FormatBalance(tc.input)
		require.Equal(tc.expected, formatted)

		parsed, err := ParseBalance(tc.expected)
		require.NoError(err)
		require.Equal(tc.input, parsed)
	}
	require.Equal("0.000000000000000000000000", FormatBalance(nil))
}

func TestParseBalance(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		err      error
	}{
		{input: "1", expected: "1000000000000000000000000"},
		{input: "0.5", expected: "500000000000000000000000"},
		{input: ".25", expected: "250000000000000000000000"},
		{input: " 3. ", expected: "3000000000000000000000000"},
		{input: "", err: ErrInvalidBalance},
		{input: ".", err: ErrInvalidBalance},
		{input: "-1", err: ErrInvalidBalance},
		{input: "1e3", err: ErrInvalidBalance},
		{input: "1.2.3", err: ErrInvalidBalance},
		{input: "0.0000000000000000000000001", err: ErrInvalidBalance},
		// 2^128 yoctoNEAR
		{input: "340282366920938.463463374607431768211456", err: ErrBalanceTooHigh},
		{input: "340282366920938.463463374607431768211455", expected: "340282366920938463463374607431768211455"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require := require.New(t)
			v, err := ParseBalance(tt.input)
			require.ErrorIs(err, tt.err)
			if tt.err != nil {
				return
			}
			require.Equal(tt.expected, v.Dec())
		})
	}
}

func TestMap(t *testing.T) {
	require := require.New(t)
	require.Equal([]int{2, 4, 6}, Map(func(i int) int { return 2 * i }, []int{1, 2, 3}))
	require.Empty(Map(func(i int) int { return i }, nil))
}
