// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/nearsdk/codec"
	"github.com/ava-labs/nearsdk/consts"
)

// Registry is the wire layout of transactions and everything they carry.
var Registry = codec.MustNewRegistry(
	codec.StructDef("Signature",
		codec.F("keyType", codec.U8),
		codec.F("data", codec.FixedBytes(consts.SignatureLen)),
	),
	codec.StructDef("SignedTransaction",
		codec.F("transaction", codec.Struct("Transaction")),
		codec.F("signature", codec.Struct("Signature")),
	),
	codec.StructDef("Transaction",
		codec.F("signerId", codec.Str),
		codec.F("publicKey", codec.Struct("PublicKey")),
		codec.F("nonce", codec.U64),
		codec.F("receiverId", codec.Str),
		codec.F("blockHash", codec.FixedBytes(consts.HashLen)),
		codec.F("actions", codec.Sequence(codec.Enum("Action"))),
	),
	codec.StructDef("PublicKey",
		codec.F("keyType", codec.U8),
		codec.F("data", codec.FixedBytes(consts.PublicKeyLen)),
	),
	codec.StructDef("AccessKey",
		codec.F("nonce", codec.U64),
		codec.F("permission", codec.Enum("AccessKeyPermission")),
	),
	codec.EnumDef("AccessKeyPermission", "enum",
		codec.V("functionCall", codec.Struct("FunctionCallPermission")),
		codec.V("fullAccess", codec.Struct("FullAccessPermission")),
	),
	codec.StructDef("FunctionCallPermission",
		codec.F("allowance", codec.Option(codec.U128)),
		codec.F("receiverId", codec.Str),
		codec.F("methodNames", codec.Sequence(codec.Str)),
	),
	codec.StructDef("FullAccessPermission"),
	codec.EnumDef("Action", "enum",
		codec.V("createAccount", codec.Struct("CreateAccount")),
		codec.V("deployContract", codec.Struct("DeployContract")),
		codec.V("functionCall", codec.Struct("FunctionCall")),
		codec.V("transfer", codec.Struct("Transfer")),
		codec.V("stake", codec.Struct("Stake")),
		codec.V("addKey", codec.Struct("AddKey")),
		codec.V("deleteKey", codec.Struct("DeleteKey")),
		codec.V("deleteAccount", codec.Struct("DeleteAccount")),
	),
	codec.StructDef("CreateAccount"),
	codec.StructDef("DeployContract",
		codec.F("code", codec.Bytes),
	),
	codec.StructDef("FunctionCall",
		codec.F("methodName", codec.Str),
		codec.F("args", codec.Bytes),
		codec.F("gas", codec.U64),
		codec.F("deposit", codec.U128),
	),
	codec.StructDef("Transfer",
		codec.F("deposit", codec.U128),
	),
	codec.StructDef("Stake",
		codec.F("stake", codec.U128),
		codec.F("publicKey", codec.Struct("PublicKey")),
	),
	codec.StructDef("AddKey",
		codec.F("publicKey", codec.Struct("PublicKey")),
		codec.F("accessKey", codec.Struct("AccessKey")),
	),
	codec.StructDef("DeleteKey",
		codec.F("publicKey", codec.Struct("PublicKey")),
	),
	codec.StructDef("DeleteAccount",
		codec.F("beneficiaryId", codec.Str),
	),
)

var encoder = codec.NewEncoder(Registry)

func init() {
	// Every Go variant must be declared, under the entry its payload
	// claims, or encoding would fail at the first transaction using it.
	for _, a := range []Action{
		&CreateAccount{}, &DeployContract{}, &FunctionCall{}, &Transfer{},
		&Stake{}, &AddKey{}, &DeleteKey{}, &DeleteAccount{},
	} {
		mustDeclare("Action", a)
	}
	for _, p := range []AccessKeyPermission{&FunctionCallPermission{}, &FullAccessPermission{}} {
		mustDeclare("AccessKeyPermission", p)
	}
}

func mustDeclare(enum string, v interface {
	codec.EnumValue
	codec.StructValue
},
) {
	i, err := Registry.VariantIndex(enum, v.Discriminant())
	if err != nil {
		panic(err)
	}
	if got := Registry.MustLookup(enum).Variants[i].Type.Name(); got != v.SchemaName() {
		panic(fmt.Sprintf("%s.%s is declared as %s but %T encodes as %s", enum, v.Discriminant(), got, v, v.SchemaName()))
	}
}
