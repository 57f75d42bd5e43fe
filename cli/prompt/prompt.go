// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"github.com/manifoldco/promptui"

	"github.com/ava-labs/nearsdk/chain"
	"github.com/ava-labs/nearsdk/codec"
	"github.com/ava-labs/nearsdk/crypto/ed25519"
	"github.com/ava-labs/nearsdk/utils"
)

var (
	ErrInputEmpty          = errors.New("input is empty")
	ErrInputTooLarge       = errors.New("input is too large")
	ErrInvalidChoice       = errors.New("invalid choice")
	ErrIndexOutOfRange     = errors.New("index out-of-range")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

func Bytes(label string) ([]byte, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := codec.LoadHex(input, -1)
			return err
		},
	}
	hexString, err := promptText.Run()
	if err != nil {
		return nil, err
	}
	return codec.LoadHex(hexString, -1)
}

func AccountID(label string) (string, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			return chain.ValidateAccountID(strings.TrimSpace(input))
		},
	}
	accountID, err := promptText.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(accountID), nil
}

// PublicKey reads an "ed25519:<base58>" key.
func PublicKey(label string) (chain.PublicKey, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := ed25519.PublicKeyFromString(strings.TrimSpace(input))
			return err
		},
	}
	raw, err := promptText.Run()
	if err != nil {
		return chain.PublicKey{}, err
	}
	pk, err := ed25519.PublicKeyFromString(strings.TrimSpace(raw))
	if err != nil {
		return chain.PublicKey{}, err
	}
	return chain.NewED25519PublicKey(pk), nil
}

func String(label string, minLen int, maxLen int) (string, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) < minLen {
				return ErrInputEmpty
			}
			if len(input) > maxLen {
				return ErrInputTooLarge
			}
			return nil
		},
	}
	text, err := promptText.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Amount reads an amount of NEAR and returns it in yoctoNEAR. A nil
// [balance] disables the balance check.
func Amount(
	label string,
	balance *uint256.Int,
	f func(input *uint256.Int) error,
) (*uint256.Int, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			amount, err := utils.ParseBalance(input)
			if err != nil {
				return err
			}
			if balance != nil && amount.Gt(balance) {
				return ErrInsufficientBalance
			}
			if f != nil {
				return f(amount)
			}
			return nil
		},
	}
	rawAmount, err := promptText.Run()
	if err != nil {
		return nil, err
	}
	return utils.ParseBalance(strings.TrimSpace(rawAmount))
}

func Uint(
	label string,
	maxValue uint64,
) (uint64, error) {
	stringToUint := func(input string, maxValue uint64) (uint64, error) {
		input = strings.TrimSpace(input)

		if len(input) == 0 {
			return 0, ErrInputEmpty
		}
		amount, err := strconv.ParseUint(input, 10, 64)
		if err != nil {
			return 0, err
		}
		if amount > maxValue {
			return 0, fmt.Errorf("%d must be <= %d", amount, maxValue)
		}
		return amount, nil
	}

	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := stringToUint(input, maxValue)
			return err
		},
	}
	rawAmount, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return stringToUint(rawAmount, maxValue)
}

func Choice(label string, maxChoice int) (int, error) {
	if maxChoice == 1 {
		utils.Outf("{{yellow}}%s:{{/}} 0 [auto-selected]\n", label)
		return 0, nil
	}
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			index, err := strconv.Atoi(input)
			if err != nil {
				return err
			}
			if index >= maxChoice || index < 0 {
				return ErrIndexOutOfRange
			}
			return nil
		},
	}
	rawIndex, err := promptText.Run()
	if err != nil {
		return -1, err
	}
	return strconv.Atoi(rawIndex)
}

func Continue() (bool, error) {
	promptText := promptui.Prompt{
		Label:    "continue (y/n)",
		Validate: validateYesNo,
	}
	rawContinue, err := promptText.Run()
	if err != nil {
		return false, err
	}
	cont := strings.ToLower(rawContinue)
	if cont == "n" {
		utils.Outf("{{red}}exiting...{{/}}\n")
		return false, nil
	}
	return true, nil
}

func Bool(label string) (bool, error) {
	promptText := promptui.Prompt{
		Label:    label + " (y/n)",
		Validate: validateYesNo,
	}
	rawContinue, err := promptText.Run()
	if err != nil {
		return false, err
	}
	cont := strings.ToLower(rawContinue)
	if cont == "n" {
		return false, nil
	}
	return true, nil
}

func validateYesNo(input string) error {
	if len(input) == 0 {
		return ErrInputEmpty
	}
	lower := strings.ToLower(input)
	if lower == "y" || lower == "n" {
		return nil
	}
	return ErrInvalidChoice
}
