// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrSchema is matched by every error caused by a defect in a schema
	// definition or a lookup outside of it.
	ErrSchema = errors.New("schema error")
	// ErrEncoding is matched by every error caused by a value that does not
	// fit the type it is being encoded as.
	ErrEncoding = errors.New("encoding error")

	ErrUnknownName        = errors.New("unknown schema name")
	ErrUnknownVariant     = errors.New("unknown variant")
	ErrDuplicateName      = errors.New("duplicate name")
	ErrUnsupportedType    = errors.New("unsupported type")
	ErrTooManyItems       = errors.New("too many items")
	ErrFieldNotPopulated  = errors.New("field is not populated")
	ErrTypeMismatch       = errors.New("type mismatch")
	ErrInvalidSize        = errors.New("invalid size")
	ErrNegative           = errors.New("negative value")
	ErrOverflow           = errors.New("value overflows width")
	ErrInvalidUTF8        = errors.New("invalid utf-8")
	ErrMaxDepth           = errors.New("max depth exceeded")
)

// Kind separates schema defects from bad values.
type Kind uint8

const (
	KindSchemaError Kind = iota + 1
	KindEncodingError
)

func (k Kind) String() string {
	switch k {
	case KindSchemaError:
		return "schema"
	case KindEncodingError:
		return "encoding"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	if k == KindSchemaError {
		return ErrSchema
	}
	return ErrEncoding
}

// Error is returned by the registry and the encoder. It matches both
// its Kind sentinel ([ErrSchema] or [ErrEncoding]) and its cause with
// errors.Is.
type Error struct {
	Kind Kind
	// Path locates the failing value, e.g. Transaction.actions[0].transfer.deposit.
	Path string
	Err  error
	Msg  string

	// badValue marks a schema miss caused by the value being encoded, which
	// also matches [ErrEncoding].
	badValue bool
}

func (e *Error) Error() string {
	msg := e.Err.Error()
	if e.Msg != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Msg)
	}
	if e.Path == "" {
		return fmt.Sprintf("%s error: %s", e.Kind, msg)
	}
	return fmt.Sprintf("%s error at %s: %s", e.Kind, e.Path, msg)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel() || (e.badValue && target == ErrEncoding)
}

func schemaErr(path string, err error, format string, args ...any) error {
	return &Error{Kind: KindSchemaError, Path: path, Err: err, Msg: fmt.Sprintf(format, args...)}
}

// unknownVariantErr reports a value whose discriminant its enum does not
// declare. It matches both [ErrSchema] and [ErrEncoding].
func unknownVariantErr(path string, format string, args ...any) error {
	return &Error{Kind: KindSchemaError, Path: path, Err: ErrUnknownVariant, Msg: fmt.Sprintf(format, args...), badValue: true}
}

func encodingErr(path string, err error, format string, args ...any) error {
	return &Error{Kind: KindEncodingError, Path: path, Err: err, Msg: fmt.Sprintf(format, args...)}
}

// IsSchemaError reports whether err is (or wraps) a schema defect.
func IsSchemaError(err error) bool { return errors.Is(err, ErrSchema) }

// IsEncodingError reports whether err is (or wraps) a value/type mismatch.
func IsEncodingError(err error) bool { return errors.Is(err, ErrEncoding) }
