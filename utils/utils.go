// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/holiman/uint256"
	"github.com/onsi/ginkgo/v2/formatter"

	"github.com/ava-labs/nearsdk/consts"
)

var (
	ErrInvalidSize    = errors.New("invalid size")
	ErrInvalidBalance = errors.New("invalid balance")
	ErrBalanceTooHigh = errors.New("balance exceeds u128")
)

func InitSubDirectory(rootPath string, name string) (string, error) {
	p := path.Join(rootPath, name)
	return p, os.MkdirAll(p, perms.ReadWriteExecute)
}

// Outputs to stdout.
//
// e.g.,
//
//	Out("{{green}}{{bold}}hi there %q{{/}}", "aa")
//	Out("{{magenta}}{{bold}}hi therea{{/}} {{cyan}}{{underline}}b{{/}}")
//
// ref.
// https://github.com/onsi/ginkgo/blob/v2.0.0/formatter/formatter.go#L52-L73
func Outf(format string, args ...interface{}) {
	s := formatter.F(format, args...)
	fmt.Fprint(formatter.ColorableStdOut, s)
}

func GetHost(uri string) (string, error) {
	purl, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	host, _, err := net.SplitHostPort(purl.Host)
	return host, err
}

func GetPort(uri string) (string, error) {
	purl, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	return purl.Port(), err
}

// FormatBalance renders an amount of yoctoNEAR in NEAR with all 24
// decimals. A nil balance is zero.
func FormatBalance(bal *uint256.Int) string {
	digits := "0"
	if bal != nil {
		digits = bal.Dec()
	}
	if len(digits) <= consts.NearDecimals {
		digits = strings.Repeat("0", consts.NearDecimals-len(digits)+1) + digits
	}
	split := len(digits) - consts.NearDecimals
	return digits[:split] + "." + digits[split:]
}

// ParseBalance parses an amount of NEAR, with at most 24 decimals, into
// yoctoNEAR.
func ParseBalance(bal string) (*uint256.Int, error) {
	bal = strings.TrimSpace(bal)
	whole, frac, _ := strings.Cut(bal, ".")
	if len(whole) == 0 && len(frac) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBalance, bal)
	}
	if len(frac) > consts.NearDecimals {
		return nil, fmt.Errorf("%w: more than %d decimals", ErrInvalidBalance, consts.NearDecimals)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBalance, bal)
	}
	digits := whole + frac + strings.Repeat("0", consts.NearDecimals-len(frac))
	v, err := uint256.FromDecimal(digits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBalanceTooHigh, err)
	}
	if v.BitLen() > 128 {
		return nil, ErrBalanceTooHigh
	}
	return v, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// SaveBytes writes [b] to [filename], readable only by the owner.
func SaveBytes(filename string, b []byte) error {
	return os.WriteFile(filename, b, perms.ReadWrite)
}

// LoadBytes reads [filename]. A non-negative [expectedSize] must match the
// file length.
func LoadBytes(filename string, expectedSize int) ([]byte, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if expectedSize != -1 && len(b) != expectedSize {
		return nil, fmt.Errorf("%w: expected %d bytes, found %d", ErrInvalidSize, expectedSize, len(b))
	}
	return b, nil
}

// Map returns f applied to every element of a, in order.
func Map[T any, R any](f func(T) R, a []T) []R {
	b := make([]R, len(a))
	for i, v := range a {
		b[i] = f(v)
	}
	return b
}
