// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/holiman/uint256"

	"github.com/ava-labs/nearsdk/codec"
)

var (
	_ AccessKeyPermission = (*FunctionCallPermission)(nil)
	_ AccessKeyPermission = (*FullAccessPermission)(nil)
	_ codec.StructValue   = (*AccessKey)(nil)
)

// AccessKeyPermission is either a [FunctionCallPermission] or a
// [FullAccessPermission].
type AccessKeyPermission interface {
	codec.EnumValue
	codec.StructValue

	isAccessKeyPermission()
}

// FunctionCallPermission restricts a key to calling [MethodNames] on
// [ReceiverID]. An empty MethodNames allows every method. A nil Allowance
// means the key may spend without limit.
type FunctionCallPermission struct {
	Allowance   *uint256.Int
	ReceiverID  string
	MethodNames []string
}

func (*FunctionCallPermission) isAccessKeyPermission() {}

func (*FunctionCallPermission) Discriminant() string { return "functionCall" }

func (p *FunctionCallPermission) Payload() any { return p }

func (*FunctionCallPermission) SchemaName() string { return "FunctionCallPermission" }

func (p *FunctionCallPermission) FieldValue(name string) (any, bool) {
	switch name {
	case "allowance":
		return codec.FromPointer(p.Allowance), true
	case "receiverId":
		return p.ReceiverID, true
	case "methodNames":
		return codec.List[string](p.MethodNames), true
	default:
		return nil, false
	}
}

type FullAccessPermission struct{}

func (*FullAccessPermission) isAccessKeyPermission() {}

func (*FullAccessPermission) Discriminant() string { return "fullAccess" }

func (p *FullAccessPermission) Payload() any { return p }

func (*FullAccessPermission) SchemaName() string { return "FullAccessPermission" }

func (*FullAccessPermission) FieldValue(string) (any, bool) { return nil, false }

// AccessKey is the nonce and permission attached to a public key.
type AccessKey struct {
	Nonce      uint64
	Permission AccessKeyPermission
}

func NewFullAccessKey(nonce uint64) *AccessKey {
	return &AccessKey{Nonce: nonce, Permission: &FullAccessPermission{}}
}

// NewFunctionCallAccessKey copies [allowance] and [methodNames].
func NewFunctionCallAccessKey(nonce uint64, allowance *uint256.Int, receiverID string, methodNames []string) *AccessKey {
	return &AccessKey{
		Nonce: nonce,
		Permission: &FunctionCallPermission{
			Allowance:   copyAmount(allowance),
			ReceiverID:  receiverID,
			MethodNames: append([]string(nil), methodNames...),
		},
	}
}

func (*AccessKey) SchemaName() string { return "AccessKey" }

func (k *AccessKey) FieldValue(name string) (any, bool) {
	switch name {
	case "nonce":
		return k.Nonce, true
	case "permission":
		if k.Permission == nil {
			return nil, false
		}
		return k.Permission, true
	default:
		return nil, false
	}
}

func copyAmount(v *uint256.Int) *uint256.Int {
	if v == nil {
		return nil
	}
	return new(uint256.Int).Set(v)
}
