// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"errors"
	"fmt"
)

const (
	MinAccountIDLen = 2
	MaxAccountIDLen = 64
)

var ErrInvalidAccountID = errors.New("invalid account id")

// ValidateAccountID checks the account naming rules: lower case letters
// and digits in parts separated by a single '-', '_' or '.'.
func ValidateAccountID(id string) error {
	if len(id) < MinAccountIDLen || len(id) > MaxAccountIDLen {
		return fmt.Errorf("%w: %q must be %d to %d characters", ErrInvalidAccountID, id, MinAccountIDLen, MaxAccountIDLen)
	}
	lastSeparator := true
	for i := 0; i < len(id); i++ {
		switch c := id[i]; {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			lastSeparator = false
		case c == '-' || c == '_' || c == '.':
			if lastSeparator {
				return fmt.Errorf("%w: %q has a misplaced %q", ErrInvalidAccountID, id, c)
			}
			lastSeparator = true
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidAccountID, id, c)
		}
	}
	if lastSeparator {
		return fmt.Errorf("%w: %q ends with a separator", ErrInvalidAccountID, id)
	}
	return nil
}
