// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/ava-labs/nearsdk/codec"
)

var (
	_ Action = (*CreateAccount)(nil)
	_ Action = (*DeployContract)(nil)
	_ Action = (*FunctionCall)(nil)
	_ Action = (*Transfer)(nil)
	_ Action = (*Stake)(nil)
	_ Action = (*AddKey)(nil)
	_ Action = (*DeleteKey)(nil)
	_ Action = (*DeleteAccount)(nil)
)

// Action is one operation carried by a [Transaction]. The set of actions
// is closed: only the types in this file implement it.
type Action interface {
	codec.EnumValue
	codec.StructValue

	isAction()
}

type CreateAccount struct{}

func NewCreateAccountAction() Action { return &CreateAccount{} }

func (*CreateAccount) isAction()                     {}
func (*CreateAccount) Discriminant() string          { return "createAccount" }
func (a *CreateAccount) Payload() any                { return a }
func (*CreateAccount) SchemaName() string            { return "CreateAccount" }
func (*CreateAccount) FieldValue(string) (any, bool) { return nil, false }

// DeployContract replaces the contract code of the receiver account.
type DeployContract struct {
	Code []byte
}

func NewDeployContractAction(code []byte) Action {
	return &DeployContract{Code: append([]byte(nil), code...)}
}

func (*DeployContract) isAction()            {}
func (*DeployContract) Discriminant() string { return "deployContract" }
func (a *DeployContract) Payload() any       { return a }
func (*DeployContract) SchemaName() string   { return "DeployContract" }

func (a *DeployContract) FieldValue(name string) (any, bool) {
	if name == "code" {
		return a.Code, true
	}
	return nil, false
}

// FunctionCall invokes [MethodName] on the receiver contract with [Args],
// attaching [Gas] and [Deposit].
type FunctionCall struct {
	MethodName string
	Args       []byte
	Gas        uint64
	Deposit    uint256.Int
}

func NewFunctionCallAction(methodName string, args []byte, gas uint64, deposit *uint256.Int) Action {
	return &FunctionCall{
		MethodName: methodName,
		Args:       append([]byte(nil), args...),
		Gas:        gas,
		Deposit:    amount(deposit),
	}
}

func (*FunctionCall) isAction()            {}
func (*FunctionCall) Discriminant() string { return "functionCall" }
func (a *FunctionCall) Payload() any       { return a }
func (*FunctionCall) SchemaName() string   { return "FunctionCall" }

func (a *FunctionCall) FieldValue(name string) (any, bool) {
	switch name {
	case "methodName":
		return a.MethodName, true
	case "args":
		return a.Args, true
	case "gas":
		return a.Gas, true
	case "deposit":
		return a.Deposit, true
	default:
		return nil, false
	}
}

// Transfer moves [Deposit] yoctoNEAR from the signer to the receiver.
type Transfer struct {
	Deposit uint256.Int
}

func NewTransferAction(deposit *uint256.Int) Action {
	return &Transfer{Deposit: amount(deposit)}
}

func (*Transfer) isAction()            {}
func (*Transfer) Discriminant() string { return "transfer" }
func (a *Transfer) Payload() any       { return a }
func (*Transfer) SchemaName() string   { return "Transfer" }

func (a *Transfer) FieldValue(name string) (any, bool) {
	if name == "deposit" {
		return a.Deposit, true
	}
	return nil, false
}

// Stake locks [Stake] for validation under [PublicKey].
type Stake struct {
	Stake     uint256.Int
	PublicKey PublicKey
}

func NewStakeAction(stake *uint256.Int, publicKey PublicKey) Action {
	return &Stake{Stake: amount(stake), PublicKey: publicKey}
}

func (*Stake) isAction()            {}
func (*Stake) Discriminant() string { return "stake" }
func (a *Stake) Payload() any       { return a }
func (*Stake) SchemaName() string   { return "Stake" }

func (a *Stake) FieldValue(name string) (any, bool) {
	switch name {
	case "stake":
		return a.Stake, true
	case "publicKey":
		return a.PublicKey, true
	default:
		return nil, false
	}
}

// AddKey attaches [AccessKey] to the receiver account under [PublicKey].
type AddKey struct {
	PublicKey PublicKey
	AccessKey *AccessKey
}

func NewAddKeyAction(publicKey PublicKey, accessKey *AccessKey) Action {
	return &AddKey{PublicKey: publicKey, AccessKey: accessKey}
}

// NewFullAccessKeyAction adds [publicKey] with full access and nonce 0.
func NewFullAccessKeyAction(publicKey PublicKey) Action {
	return NewAddKeyAction(publicKey, NewFullAccessKey(0))
}

// NewFunctionCallAccessKeyAction adds [publicKey] restricted to
// [methodNames] of [receiverID], with nonce 0.
func NewFunctionCallAccessKeyAction(
	publicKey PublicKey,
	allowance *uint256.Int,
	receiverID string,
	methodNames []string,
) Action {
	return NewAddKeyAction(publicKey, NewFunctionCallAccessKey(0, allowance, receiverID, methodNames))
}

func (*AddKey) isAction()            {}
func (*AddKey) Discriminant() string { return "addKey" }
func (a *AddKey) Payload() any       { return a }
func (*AddKey) SchemaName() string   { return "AddKey" }

func (a *AddKey) FieldValue(name string) (any, bool) {
	switch name {
	case "publicKey":
		return a.PublicKey, true
	case "accessKey":
		if a.AccessKey == nil {
			return nil, false
		}
		return a.AccessKey, true
	default:
		return nil, false
	}
}

type DeleteKey struct {
	PublicKey PublicKey
}

func NewDeleteKeyAction(publicKey PublicKey) Action {
	return &DeleteKey{PublicKey: publicKey}
}

func (*DeleteKey) isAction()            {}
func (*DeleteKey) Discriminant() string { return "deleteKey" }
func (a *DeleteKey) Payload() any       { return a }
func (*DeleteKey) SchemaName() string   { return "DeleteKey" }

func (a *DeleteKey) FieldValue(name string) (any, bool) {
	if name == "publicKey" {
		return a.PublicKey, true
	}
	return nil, false
}

// DeleteAccount removes the receiver account and sends its balance to
// [BeneficiaryID].
type DeleteAccount struct {
	BeneficiaryID string
}

func NewDeleteAccountAction(beneficiaryID string) Action {
	return &DeleteAccount{BeneficiaryID: beneficiaryID}
}

func (*DeleteAccount) isAction()            {}
func (*DeleteAccount) Discriminant() string { return "deleteAccount" }
func (a *DeleteAccount) Payload() any       { return a }
func (*DeleteAccount) SchemaName() string   { return "DeleteAccount" }

func (a *DeleteAccount) FieldValue(name string) (any, bool) {
	if name == "beneficiaryId" {
		return a.BeneficiaryID, true
	}
	return nil, false
}

// ActionName returns a short human readable description of [a].
func ActionName(a Action) string {
	switch act := a.(type) {
	case *CreateAccount:
		return "CreateAccount"
	case *DeployContract:
		return fmt.Sprintf("DeployContract(%d bytes)", len(act.Code))
	case *FunctionCall:
		return fmt.Sprintf("FunctionCall(%s)", act.MethodName)
	case *Transfer:
		return fmt.Sprintf("Transfer(%s)", act.Deposit.ToBig())
	case *Stake:
		return fmt.Sprintf("Stake(%s, %s)", act.Stake.ToBig(), act.PublicKey)
	case *AddKey:
		return fmt.Sprintf("AddKey(%s)", act.PublicKey)
	case *DeleteKey:
		return fmt.Sprintf("DeleteKey(%s)", act.PublicKey)
	case *DeleteAccount:
		return fmt.Sprintf("DeleteAccount(%s)", act.BeneficiaryID)
	default:
		return fmt.Sprintf("unknown action %T", a)
	}
}

// amount returns a copy of [v], treating nil as zero.
func amount(v *uint256.Int) uint256.Int {
	if v == nil {
		return uint256.Int{}
	}
	return *v
}
